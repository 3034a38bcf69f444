// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/options"
	"github.com/retroenv/zxdetok/internal/tape"
)

// ErrFileNotFound is returned when the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

const tapeExtension = ".wav"

// Loader handles loading program images from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new program loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the program image of the input file. Tape recordings are
// converted to the image that the machine would have loaded.
func (l *Loader) Load(opts options.Program, system arch.System) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, opts.Input)
		}
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	if strings.EqualFold(filepath.Ext(opts.Input), tapeExtension) {
		return l.loadTape(file, system)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}
	return data, nil
}

func (l *Loader) loadTape(file *os.File, system arch.System) ([]byte, error) {
	profile, err := arch.ProfileFor(system)
	if err != nil {
		return nil, fmt.Errorf("getting memory layout: %w", err)
	}

	data, err := tape.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding tape recording: %w", err)
	}
	l.logger.Debug("Decoded tape recording", log.Int("size", len(data)))

	if !profile.FileName {
		return data, nil
	}

	name, image := tape.StripName(data)
	l.logger.Debug("Stripped tape file name", log.Int("name_length", len(name)))
	return image, nil
}
