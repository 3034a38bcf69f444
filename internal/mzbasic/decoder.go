// Package mzbasic implements the detokenizer of the Sharp MZ BASIC dialects.
package mzbasic

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/charset"
	"github.com/retroenv/zxdetok/internal/mzf"
	"github.com/retroenv/zxdetok/internal/program"
)

const (
	tokenBase = 0x80

	lineHeaderSize = 4 // length and line number

	lineEnd     = 0x0D
	lineEndZero = 0x00
	quote       = '"'

	integerTag = 0x0B
	lineRefTag = 0x0C
	hexTag     = 0x11
	floatTag   = 0x15

	floatSize    = 5
	mantissaBits = 7 // bits per mantissa byte, bit 0 is unused

	saPrefix     = 0x80
	saRem        = 0x80
	saData       = 0x81
	spRem        = 0x80
	spData       = 0x81
	mzRem        = 0x97
	mzData       = 0x94
	mzStatements = 0xFE
	mzFunctions  = 0xFF

	badNumber = "[BADNUM]"
)

// Decoder converts the BASIC program of a Sharp MZ tape file into its listing.
type Decoder struct {
	logger *log.Logger
	system arch.System
	tokens tokenizer
}

// tokenizer resolves a token byte of a dialect. It returns the keyword,
// the offset following the consumed bytes and whether the rest of the line
// is literal text.
type tokenizer func(body []byte, offset int, b byte) (string, int, bool)

// New creates a new decoder for the given Sharp BASIC dialect.
func New(logger *log.Logger, system arch.System) (*Decoder, error) {
	d := &Decoder{
		logger: logger,
		system: system,
	}

	switch system {
	case arch.SA5510:
		d.tokens = saToken
	case arch.SP5025:
		d.tokens = spToken
	case arch.MZ1Z013B:
		d.tokens = mzToken
	default:
		return nil, fmt.Errorf("unsupported system '%s'", system)
	}
	return d, nil
}

// Decode decodes all program lines that follow the tape header.
func (d *Decoder) Decode(ctx context.Context, data []byte) (*program.Program, error) {
	header, err := mzf.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("parsing tape header: %w", err)
	}

	d.logger.Debug("Parsed tape header",
		log.Stringer("type", header.Type),
		log.String("name", header.Name),
		log.Uint16("size", header.Size))

	prg := program.New(d.system, program.Header{ProgramStart: mzf.HeaderSize}, len(data))

	offset := mzf.HeaderSize
	for offset+2 <= len(data) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("decoding lines: %w", err)
		}

		length := int(binary.LittleEndian.Uint16(data[offset:]))
		if length == 0 {
			d.logger.Debug("End of program marker found", log.Int("offset", offset))
			break
		}
		if offset+lineHeaderSize > len(data) {
			d.logger.Warn("Truncated line number", log.Int("offset", offset))
			break
		}

		number := binary.LittleEndian.Uint16(data[offset+2:])
		end := offset + max(length, lineHeaderSize)
		if end > len(data) {
			d.logger.Warn("Line exceeds the data",
				log.Uint16("line", number),
				log.Int("length", length))
			end = len(data)
		}

		prg.AddLine(number, d.decodeLine(data[offset+lineHeaderSize:end]))
		offset = end
	}

	prg.Header.ProgramEnd = offset
	prg.Header.VarsStart = offset
	return prg, nil
}

// decodeLine converts the body of a line. A CR inside a string is shown as
// a glyph unless it is the last byte of the line.
func (d *Decoder) decodeLine(body []byte) string {
	var sb strings.Builder
	inQuote := false
	literal := false

	for i := 0; i < len(body); {
		b := body[i]
		i++

		if literal {
			if b == lineEnd || b == lineEndZero {
				break
			}
			writeLiteral(&sb, b)
			continue
		}

		if b == lineEndZero || (b == lineEnd && (!inQuote || i == len(body))) {
			break
		}

		switch {
		case b == quote:
			inQuote = !inQuote
			sb.WriteByte(quote)

		case inQuote:
			if s, ok := charset.SharpControl(b); ok {
				sb.WriteString(s)
			} else if s, ok := charset.Sharp(b); ok {
				sb.WriteString(s)
			}

		case b == integerTag || b == lineRefTag:
			i = writeWord(&sb, body, i, func(v uint16) string { return strconv.Itoa(int(v)) })

		case b == hexTag:
			i = writeWord(&sb, body, i, func(v uint16) string { return fmt.Sprintf("$%X", v) })

		case b == floatTag:
			i = writeFloat(&sb, body, i)

		case b >= tokenBase:
			var text string
			text, i, literal = d.tokens(body, i, b)
			sb.WriteString(text)

		default:
			if s, ok := charset.Sharp(b); ok {
				sb.WriteString(s)
			}
		}
	}

	return sb.String()
}

func writeLiteral(sb *strings.Builder, b byte) {
	if s, ok := charset.Sharp(b); ok {
		sb.WriteString(s)
		return
	}
	sb.WriteString(charset.SharpPlaceholder)
}

// writeWord writes a little endian 16 bit payload, a truncated payload
// consumes the rest of the line.
func writeWord(sb *strings.Builder, body []byte, offset int, format func(uint16) string) int {
	if offset+2 > len(body) {
		sb.WriteString(badNumber)
		return len(body)
	}
	sb.WriteString(format(binary.LittleEndian.Uint16(body[offset:])))
	return offset + 2
}

func writeFloat(sb *strings.Builder, body []byte, offset int) int {
	if offset+floatSize > len(body) {
		sb.WriteString(badNumber)
		return len(body)
	}
	v := DecodeFloat(body[offset : offset+floatSize])
	sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	return offset + floatSize
}

// DecodeFloat converts the 5 byte floating point format of Sharp BASIC.
// The first byte is the exponent with a bias of 0x80, the following 4 bytes
// hold the mantissa in bits 7 to 1 with an implicit 0.5 added.
func DecodeFloat(data []byte) float64 {
	exponent := data[0]
	if exponent == 0 {
		return 0
	}

	mantissa := 0.5
	weight := 1
	for _, b := range data[1:floatSize] {
		for bit := mantissaBits; bit >= 1; bit-- {
			if b&(1<<bit) != 0 {
				mantissa += math.Ldexp(1, -weight)
			}
			weight++
		}
	}
	return math.Ldexp(mantissa, int(exponent)-tokenBase)
}

func unknownToken(b byte) string {
	return fmt.Sprintf("[0x%02X]", b)
}

func unknownPrefixed(prefix, b byte) string {
	return fmt.Sprintf("[0x%02X 0x%02X]", prefix, b)
}

// saToken resolves SA-5510 tokens, statements use the 0x80 prefix byte.
func saToken(body []byte, offset int, b byte) (string, int, bool) {
	if b != saPrefix {
		if s, ok := lookup(saFunctions, b); ok {
			return s, offset, false
		}
		return unknownToken(b), offset, false
	}

	if offset >= len(body) {
		return unknownToken(b), offset, false
	}
	next := body[offset]
	offset++
	if s, ok := lookup(saStatements, next); ok {
		return s, offset, next == saRem || next == saData
	}
	return unknownPrefixed(b, next), offset, false
}

func spToken(_ []byte, offset int, b byte) (string, int, bool) {
	if s, ok := lookup(spTokens, b); ok {
		return s, offset, b == spRem || b == spData
	}
	return unknownToken(b), offset, false
}

// mzToken resolves 1Z-013B tokens, 0xFE and 0xFF prefix extended keywords.
func mzToken(body []byte, offset int, b byte) (string, int, bool) {
	var table []string
	switch b {
	case mzStatements:
		table = mzStatementsExt
	case mzFunctions:
		table = mzFunctionsExt
	default:
		if s, ok := lookup(mzTokens, b); ok {
			return s, offset, b == mzRem || b == mzData
		}
		return unknownToken(b), offset, false
	}

	if offset >= len(body) {
		return unknownToken(b), offset, false
	}
	next := body[offset]
	offset++
	if s, ok := lookup(table, next); ok {
		return s, offset, false
	}
	return unknownPrefixed(b, next), offset, false
}
