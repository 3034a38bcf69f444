// Package charset provides the character and keyword tables of the Sinclair
// machines and resolves single byte codes to their display text. It also
// contains the Sharp ASCII variant used by the Sharp MZ machines.
package charset

import (
	"fmt"

	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/zxdetok/internal/arch"
)

// Inverse selects how characters with the inverse video bit are rendered.
type Inverse int

// Supported inverse character renderings.
const (
	InverseMarker Inverse = iota // prefix the glyph with InverseMarkerPrefix
	InverseANSI                  // wrap the glyph in ANSI reverse video escapes
)

// InverseMarkerPrefix marks an inverted character in plain text output.
const InverseMarkerPrefix = "%"

const (
	ansiReverse      = "\x1b[7m"
	ansiReverseReset = "\x1b[27m"
	inverseBit       = 0x80
)

// Options of the character set.
type Options struct {
	VendorTokens bool // merge the ZXpand keyword extension
	Inverse      Inverse
}

// Charset holds the lookup tables of one machine. It is built once and only
// read afterwards.
type Charset struct {
	system  arch.System
	inverse Inverse

	tokens   map[byte]string
	base     map[byte]string
	graphics map[byte]string
	extended map[byte]string

	comment          byte
	lineNumberTokens set.Set[byte]
	numberMarkers    set.Set[byte]
}

// tables is the raw table definition of a machine.
type tables struct {
	tokens       map[byte]string
	vendorTokens map[byte]string
	base         map[byte]string
	graphics     map[byte]string
	extended     map[byte]string

	comment          byte
	lineNumberTokens []byte
	numberMarkers    []byte
}

// New returns the character set of the given system.
func New(system arch.System, opts Options) (*Charset, error) {
	var t tables
	switch system {
	case arch.ZX80:
		t = zx80Tables()
	case arch.ZX81:
		t = zx81Tables()
	default:
		return nil, fmt.Errorf("unsupported system '%s'", system)
	}

	if opts.VendorTokens {
		for code, text := range t.vendorTokens {
			t.tokens[code] = text
		}
	}

	c := &Charset{
		system:           system,
		inverse:          opts.Inverse,
		tokens:           t.tokens,
		base:             t.base,
		graphics:         t.graphics,
		extended:         t.extended,
		comment:          t.comment,
		lineNumberTokens: set.New[byte](),
		numberMarkers:    set.New[byte](),
	}
	for _, code := range t.lineNumberTokens {
		c.lineNumberTokens.Add(code)
	}
	for _, code := range t.numberMarkers {
		c.numberMarkers.Add(code)
	}
	return c, nil
}

// System returns the system the tables belong to.
func (c *Charset) System() arch.System {
	return c.system
}

// Decode resolves a single character code to its display text.
// The lookup order is graphics, extended glyphs, base characters and last the
// inverse of a base character, so codes with the high bit that have an own
// glyph are never shown inverted.
// Codes that are not mapped by any table result in a visible placeholder
// that contains the code, decoding never fails.
func (c *Charset) Decode(code byte) string {
	if s, ok := c.graphics[code]; ok {
		return s
	}
	if s, ok := c.extended[code]; ok {
		return s
	}
	if s, ok := c.base[code]; ok {
		return s
	}
	if code&inverseBit != 0 {
		if s, ok := c.base[code&^inverseBit]; ok {
			return c.invert(s)
		}
	}
	return Unknown(code)
}

// Unknown returns the placeholder for an unmapped code.
func Unknown(code byte) string {
	return fmt.Sprintf("[UNK:%d]", code)
}

// Token returns the keyword text of a token code.
func (c *Charset) Token(code byte) (string, bool) {
	s, ok := c.tokens[code]
	return s, ok
}

// Base returns the glyph of a code in the base character table.
func (c *Charset) Base(code byte) (string, bool) {
	s, ok := c.base[code]
	return s, ok
}

// Digit returns the decimal digit of a code if the base table maps
// the code to an ASCII digit.
func (c *Charset) Digit(code byte) (byte, bool) {
	s, ok := c.base[code]
	if !ok || len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	return s[0], true
}

// IsComment returns whether the code is the REM keyword token.
func (c *Charset) IsComment(code byte) bool {
	return code == c.comment
}

// TakesLineNumber returns whether the keyword token can be directly followed
// by a line number, like GO TO or RUN.
func (c *Charset) TakesLineNumber(code byte) bool {
	return c.lineNumberTokens.Contains(code)
}

// IsNumberMarker returns whether the code introduces an inline number literal.
func (c *Charset) IsNumberMarker(code byte) bool {
	return c.numberMarkers.Contains(code)
}

func (c *Charset) invert(s string) string {
	if c.inverse == InverseANSI {
		return ansiReverse + s + ansiReverseReset
	}
	return InverseMarkerPrefix + s
}
