// Package decoder implements the detokenizer of a saved program image.
package decoder

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/basic"
	"github.com/retroenv/zxdetok/internal/charset"
	"github.com/retroenv/zxdetok/internal/options"
	"github.com/retroenv/zxdetok/internal/program"
	"github.com/retroenv/zxdetok/internal/vars"
)

const lineLengthSize = 2

// Decoder converts a program image into its listing.
type Decoder struct {
	logger  *log.Logger
	options options.Decoder
	profile *arch.Profile

	charset *charset.Charset
	lines   *basic.LineDecoder
	vars    *vars.Decoder
}

// New creates a new decoder for the given system.
func New(logger *log.Logger, system arch.System, opts options.Decoder) (*Decoder, error) {
	profile, err := arch.ProfileFor(system)
	if err != nil {
		return nil, fmt.Errorf("getting memory layout: %w", err)
	}

	cs, err := charset.New(system, charset.Options{
		VendorTokens: opts.VendorTokens,
		Inverse:      opts.Inverse,
	})
	if err != nil {
		return nil, fmt.Errorf("creating character set: %w", err)
	}

	d := &Decoder{
		logger:  logger,
		options: opts,
		profile: profile,
		charset: cs,
		lines:   basic.New(cs, basic.Options{ShowNumbers: opts.ShowNumbers}),
		vars:    vars.New(logger, cs, profile),
	}
	return d, nil
}

// Decode decodes the program lines and the variables area of an image.
// A damaged variables area does not fail the decode, the error is stored
// in the returned program.
func (d *Decoder) Decode(ctx context.Context, data []byte) (*program.Program, error) {
	header, err := program.ParseHeader(data, d.profile)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	d.logger.Debug("Parsed header",
		log.Hex("program_end", header.ProgramEndAddress),
		log.Hex("vars", header.VarsAddress),
		log.Int("boundary", header.ProgramEnd))

	prg := program.New(d.profile.System, header, len(data))

	cursor, err := d.decodeLines(ctx, prg, data)
	if err != nil {
		return nil, err
	}

	if !d.options.Variables {
		return prg, nil
	}

	start := max(cursor, header.VarsStart)
	area, err := d.vars.Decode(data[start:])
	prg.Variables = area
	if err != nil {
		prg.VariablesErr = fmt.Errorf("variables area at offset %d: %w", start, err)
		d.logger.Warn("Decoding variables failed", log.Err(prg.VariablesErr))
	}

	return prg, nil
}

// decodeLines decodes all lines up to the program boundary and returns the
// offset following the last processed byte.
func (d *Decoder) decodeLines(ctx context.Context, prg *program.Program, data []byte) (int, error) {
	cursor := prg.Header.ProgramStart
	boundary := prg.Header.ProgramEnd

	for cursor < boundary {
		if err := ctx.Err(); err != nil {
			return cursor, fmt.Errorf("decoding lines: %w", err)
		}

		if data[cursor] == arch.EndMarker {
			d.logger.Debug("End of program marker found", log.Int("offset", cursor))
			break
		}
		if cursor+arch.LineNumSize > len(data) {
			d.logger.Warn("Truncated line number", log.Int("offset", cursor))
			return len(data), nil
		}

		number := binary.BigEndian.Uint16(data[cursor:])
		cursor += arch.LineNumSize

		var content []byte
		if d.profile.LineLength {
			content, cursor = d.sizedLine(data, cursor, number)
		} else {
			content, cursor = terminatedLine(data, cursor)
		}

		prg.AddLine(number, d.lines.Decode(content))
	}

	return cursor, nil
}

// terminatedLine returns the content of a line that ends with a NEWLINE
// byte or the end of data, and the offset following it.
func terminatedLine(data []byte, offset int) ([]byte, int) {
	end := bytes.IndexByte(data[offset:], arch.LineEnd)
	if end < 0 {
		return data[offset:], len(data)
	}
	return data[offset : offset+end], offset + end + 1
}

// sizedLine returns the content of a line that is prefixed with its length,
// the length includes the NEWLINE byte.
func (d *Decoder) sizedLine(data []byte, offset int, number uint16) ([]byte, int) {
	if offset+lineLengthSize > len(data) {
		d.logger.Warn("Truncated line length", log.Uint16("line", number))
		return nil, len(data)
	}

	length := int(binary.LittleEndian.Uint16(data[offset:]))
	offset += lineLengthSize
	end := offset + length
	if end > len(data) {
		d.logger.Warn("Line exceeds the data",
			log.Uint16("line", number),
			log.Int("length", length))
		end = len(data)
	}

	content := data[offset:end]
	if n := len(content); n > 0 && content[n-1] == arch.LineEnd {
		content = content[:n-1]
	}
	return content, end
}
