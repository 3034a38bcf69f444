// Package vars decodes the variables area that follows the program lines.
package vars

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/charset"
)

var (
	// ErrArrayLength is returned when the declared size of an array does not
	// match its dimensions and element size.
	ErrArrayLength = errors.New("invalid array length")
	// ErrTruncated is returned when a record extends beyond the end of the data.
	ErrTruncated = errors.New("truncated variable record")
)

// Area is the decoded variables area.
type Area struct {
	Records      []Record
	Unrecognized int  // number of skipped bytes with an unknown tag
	Terminated   bool // the end marker was found
	Size         int  // number of bytes processed
}

// Decoder decodes the records of a variables area.
type Decoder struct {
	logger  *log.Logger
	charset *charset.Charset
	profile *arch.Profile
}

// parser decodes the record whose tag byte is at data[offset] and returns
// the number of consumed bytes including the tag.
type parser func(d *Decoder, data []byte, offset int) (Record, int, error)

type tagRange struct {
	first, last byte
	parse       parser
}

var tagRanges = []tagRange{
	{0x40, 0x5F, parseString},
	{0x60, 0x7F, parseNumber},
	{0x81, 0x9F, parseNumericArray},
	{0xA0, 0xBF, parseLongName},
	{0xC0, 0xDF, parseStringArray},
	{0xE0, 0xFF, parseLoop},
}

// New returns a variables area decoder for the given machine.
func New(logger *log.Logger, cs *charset.Charset, profile *arch.Profile) *Decoder {
	return &Decoder{
		logger:  logger,
		charset: cs,
		profile: profile,
	}
}

// Decode decodes all records until the end marker or the end of data.
// On a record error the records decoded so far are returned together
// with the error.
func (d *Decoder) Decode(data []byte) (Area, error) {
	var area Area

	offset := 0
	for offset < len(data) {
		tag := data[offset]
		if tag == arch.EndMarker {
			area.Terminated = true
			offset++
			break
		}

		parse := lookupParser(tag)
		if parse == nil {
			d.logger.Warn("Unrecognized variable tag",
				log.Hex("tag", tag),
				log.Int("offset", offset))
			area.Unrecognized++
			offset++
			continue
		}

		record, consumed, err := parse(d, data, offset)
		if err != nil {
			area.Size = offset
			return area, fmt.Errorf("decoding variable at offset %d: %w", offset, err)
		}
		area.Records = append(area.Records, record)
		offset += consumed
	}

	if !area.Terminated {
		d.logger.Debug("Variables area ended without end marker", log.Int("size", len(data)))
	}
	area.Size = offset
	return area, nil
}

func lookupParser(tag byte) parser {
	for _, r := range tagRanges {
		if tag >= r.first && tag <= r.last {
			return r.parse
		}
	}
	return nil
}

// letter returns the variable letter encoded in the low bits of a tag.
func (d *Decoder) letter(tag byte) string {
	return d.charset.Decode(tag&0x1F | 0x20)
}

// text decodes a sequence of character codes.
func (d *Decoder) text(data []byte) string {
	s := make([]byte, 0, len(data))
	for _, b := range data {
		s = append(s, d.charset.Decode(b)...)
	}
	return string(s)
}
