// Package pipeline orchestrates the detokenizer workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/app"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/charset"
	"github.com/retroenv/zxdetok/internal/decoder"
	"github.com/retroenv/zxdetok/internal/detector"
	"github.com/retroenv/zxdetok/internal/disasm"
	"github.com/retroenv/zxdetok/internal/loader"
	"github.com/retroenv/zxdetok/internal/mzbasic"
	"github.com/retroenv/zxdetok/internal/mzf"
	"github.com/retroenv/zxdetok/internal/options"
	"github.com/retroenv/zxdetok/internal/program"
	"github.com/retroenv/zxdetok/internal/writer"
	"golang.org/x/term"
)

// Pipeline orchestrates the complete detokenizer workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new detokenizer pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute runs the complete detokenizer pipeline. In info and dump mode and
// for disassembled machine code no program is returned.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, decOpts options.Decoder, out io.Writer) (*program.Program, error) {
	// Detect the machine
	system := p.detector.Detect(opts)

	data, err := p.loader.Load(opts, system)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	system = p.detector.Refine(opts, system, data)

	return p.ExecuteWithData(ctx, data, opts, decOpts, out, system)
}

// ExecuteWithData runs the pipeline with a program image that is already in memory.
func (p *Pipeline) ExecuteWithData(ctx context.Context, data []byte, opts options.Program,
	decOpts options.Decoder, out io.Writer, system arch.System) (*program.Program, error) {

	app.PrintInfo(p.logger, opts, system, len(data))
	tapeHeader := system.SharpBasic() || mzf.HasExtension(opts.Input)

	switch {
	case opts.Info:
		if err := app.WriteInfo(out, data, system, tapeHeader); err != nil {
			return nil, fmt.Errorf("writing info: %w", err)
		}
		return nil, nil

	case opts.Dump:
		if err := app.WriteDump(out, data); err != nil {
			return nil, fmt.Errorf("writing dump: %w", err)
		}
		return nil, nil

	case system == arch.Z80:
		return nil, p.disassemble(ctx, data, opts, tapeHeader, out)

	case system.SharpBasic():
		dec, err := mzbasic.New(p.logger, system)
		if err != nil {
			return nil, fmt.Errorf("creating decoder: %w", err)
		}
		prg, err := dec.Decode(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("decoding: %w", err)
		}
		return prg, p.write(prg, out, decOpts)
	}

	decOpts.System = system
	decOpts.Inverse = inverseMode(opts, out)

	dec, err := decoder.New(p.logger, system, decOpts)
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}

	prg, err := dec.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return prg, p.write(prg, out, decOpts)
}

func (p *Pipeline) write(prg *program.Program, out io.Writer, decOpts options.Decoder) error {
	w := writer.New(out, writer.Options{Variables: decOpts.Variables})
	if err := w.Write(prg); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}

	p.logger.Debug("Decoded program",
		log.Int("lines", len(prg.Lines)),
		log.Int("variables", len(prg.Variables.Records)))
	return nil
}

// disassemble disassembles machine code. The load and execution address of
// a tape header are used unless an origin was specified.
func (p *Pipeline) disassemble(ctx context.Context, data []byte, opts options.Program,
	tapeHeader bool, out io.Writer) error {

	disOpts := options.NewDisassembler(opts)
	image := disasm.Image{Data: data}

	if tapeHeader {
		header, err := mzf.ParseHeader(data)
		if err != nil {
			return fmt.Errorf("parsing tape header: %w", err)
		}
		image = disasm.Image{
			Data:    header.Body(data),
			Origin:  header.LoadAddress,
			Exec:    header.ExecAddress,
			HasExec: true,
		}
	}
	if disOpts.OriginSet {
		image.Origin = disOpts.Origin
	}

	dis := disasm.New(p.logger, disOpts)
	if err := dis.Process(ctx, image, out); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

// inverseMode selects reverse video escapes only if requested and the
// output is a terminal.
func inverseMode(opts options.Program, out io.Writer) charset.Inverse {
	if !opts.Color {
		return charset.InverseMarker
	}
	f, ok := out.(interface{ Fd() uintptr })
	if ok && term.IsTerminal(int(f.Fd())) {
		return charset.InverseANSI
	}
	return charset.InverseMarker
}
