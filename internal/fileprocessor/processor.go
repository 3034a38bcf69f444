// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/config"
	"github.com/retroenv/zxdetok/internal/options"
	"github.com/retroenv/zxdetok/internal/pipeline"
)

const outputExtension = ".bas"

// ProcessFile handles the complete file processing workflow. The output file
// is only created after the program was decoded successfully.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, decOpts options.Decoder) error {
	p := pipeline.New(logger)

	if opts.Output == config.StdoutOutput {
		if _, err := p.Execute(ctx, opts, decOpts, os.Stdout); err != nil {
			return fmt.Errorf("processing %s: %w", opts.Input, err)
		}
		return nil
	}

	var buf bytes.Buffer
	if _, err := p.Execute(ctx, opts, decOpts, &buf); err != nil {
		return fmt.Errorf("processing %s: %w", opts.Input, err)
	}

	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", opts.Output, err)
	}
	logger.Debug("Wrote listing", log.String("file", opts.Output), log.Int("size", buf.Len()))
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file.
// The input extension is kept, so game.o and game.p of a batch get their
// own listings.
func GenerateOutputFilename(inputFile string) string {
	return inputFile + outputExtension
}

// OutputFor returns the output of an input file. Info and dump mode print on the
// console unless a single file has an explicit output, batch processing and a
// missing output name result in a generated name.
func OutputFor(opts options.Program, inputFile string, batch bool) string {
	switch {
	case (opts.Info || opts.Dump) && (batch || opts.Output == ""):
		return config.StdoutOutput
	case batch:
		return GenerateOutputFilename(inputFile)
	case opts.Output != "":
		return opts.Output
	default:
		return GenerateOutputFilename(inputFile)
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("zxdetok", log.String("version", buildinfo.Version(version, commit, date)))
}
