// Package detector handles machine detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/mzf"
	"github.com/retroenv/zxdetok/internal/options"
)

// Detector handles machine detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the machine from options or file auto-detection.
// It first checks if a system is explicitly specified in options, otherwise
// attempts to detect the system from the input filename extension.
func (d *Detector) Detect(opts options.Program) arch.System {
	system, _ := arch.SystemFromString(opts.System)
	if system == "" {
		system = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected system",
			log.Stringer("system", system),
			log.String("file", opts.Input))
	}
	return system
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".p", ".81", ".p81":
		return arch.ZX81
	case ".mzf", ".mzt":
		// refined by the file type of the tape header once loaded
		return arch.SP5025
	case ".wav":
		// only ZX81 recordings carry a file name that can be stripped
		return arch.ZX81
	default:
		// .o, .80 and unknown extensions
		return arch.ZX80
	}
}

// Refine determines the system of a Sharp tape file from the file type of its
// header. An explicitly specified system is kept.
func (d *Detector) Refine(opts options.Program, system arch.System, data []byte) arch.System {
	if _, ok := arch.SystemFromString(opts.System); ok || !mzf.HasExtension(opts.Input) {
		return system
	}

	header, err := mzf.ParseHeader(data)
	if err != nil {
		return system
	}
	detected, ok := header.Type.System()
	if !ok {
		d.logger.Warn("Unknown tape file type",
			log.Hex("type", byte(header.Type)),
			log.Stringer("system", system))
		return system
	}

	d.logger.Debug("Detected system from tape header",
		log.Stringer("type", header.Type),
		log.Stringer("system", detected))
	return detected
}
