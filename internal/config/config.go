// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/options"
)

// StdoutOutput is the output name that prints the listing on the console.
const StdoutOutput = "-"

// CreateLogger creates a logger with appropriate settings. Printing the
// listing on the console implies quiet mode unless debugging is enabled.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug:
		cfg.Level = log.DebugLevel
	case opts.Quiet, opts.Output == StdoutOutput && !opts.Info:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
