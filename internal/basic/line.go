// Package basic decodes the content of tokenized BASIC program lines.
package basic

import (
	"strings"

	"github.com/retroenv/zxdetok/internal/charset"
	"github.com/retroenv/zxdetok/internal/number"
)

// state is the decoding mode of the current position in a line.
type state int

const (
	stateNormal     state = iota // tokens, number literals and characters
	stateComment                 // rest of the line after REM, characters only
	stateLineNumber              // digits directly following GO TO, GO SUB, RUN or LIST
)

// Options of the line decoder.
type Options struct {
	ShowNumbers bool // append the value of hidden number literals
}

// LineDecoder decodes the bytes of a single program line.
type LineDecoder struct {
	charset *charset.Charset
	options Options
}

// New returns a line decoder using the given character set.
func New(cs *charset.Charset, options Options) *LineDecoder {
	return &LineDecoder{
		charset: cs,
		options: options,
	}
}

// Decode returns the display text of a line. The line must not contain
// the line number or the terminating NEWLINE byte.
func (d *LineDecoder) Decode(line []byte) string {
	var sb strings.Builder
	st := stateNormal

	for i := 0; i < len(line); {
		b := line[i]

		switch st {
		case stateComment:
			sb.WriteString(d.charset.Decode(b))
			i++

		case stateLineNumber:
			if digit, ok := d.charset.Digit(b); ok {
				sb.WriteByte(digit)
				i++
				continue
			}
			st = stateNormal // reprocess the byte in normal mode

		default:
			consumed, next := d.decodeNormal(&sb, line[i:])
			i += consumed
			st = next
		}
	}

	return sb.String()
}

// decodeNormal decodes the element at the start of data and returns the
// number of consumed bytes and the state for the following byte.
func (d *LineDecoder) decodeNormal(sb *strings.Builder, data []byte) (int, state) {
	b := data[0]

	if d.charset.IsNumberMarker(b) {
		return d.decodeNumber(sb, data), stateNormal
	}

	text, ok := d.charset.Token(b)
	if !ok {
		sb.WriteString(d.charset.Decode(b))
		return 1, stateNormal
	}

	sb.WriteString(text)
	switch {
	case d.charset.IsComment(b):
		return 1, stateComment
	case d.charset.TakesLineNumber(b):
		return 1, stateLineNumber
	default:
		return 1, stateNormal
	}
}

// decodeNumber handles an inline number literal. The literal is hidden as
// the line already contains its digits as characters.
func (d *LineDecoder) decodeNumber(sb *strings.Builder, data []byte) int {
	text, err := number.Read(data)
	if err != nil {
		// the marker is the float tag, only a short payload can fail
		sb.WriteString("[BADNUM]")
		return len(data)
	}

	if d.options.ShowNumbers {
		sb.WriteString("[=" + text + "]")
	}
	return number.Size
}
