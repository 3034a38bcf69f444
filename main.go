// Package main implements the main entry point for a ZX80, ZX81 and Sharp MZ BASIC detokenizer
// and Z80 disassembler
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/cli"
	"github.com/retroenv/zxdetok/internal/config"
	"github.com/retroenv/zxdetok/internal/fileprocessor"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, decOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			if msg := usageErr.Error(); msg != "" {
				logger.Error(msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}
	if len(files) == 0 {
		logger.Fatal("No files found matching the batch pattern", log.String("pattern", opts.Batch))
	}

	batch := opts.Batch != ""
	failed := false
	for _, file := range files {
		fileOpts := opts
		fileOpts.Input = file
		fileOpts.Output = fileprocessor.OutputFor(opts, file, batch)

		if err := fileprocessor.ProcessFile(ctx, logger, fileOpts, decOptions); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				os.Exit(1)
			}
			logger.Error("Conversion failed", log.Err(err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
	logger.Info("Conversion completed successfully")
}
