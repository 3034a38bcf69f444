package program

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/retroenv/zxdetok/internal/arch"
)

// ErrTruncatedHeader is returned when the image is shorter than the
// saved system variables.
var ErrTruncatedHeader = errors.New("truncated header")

// Header contains the system variables saved in front of the program.
type Header struct {
	Raw []byte

	ProgramEndAddress uint16
	VarsAddress       uint16
	EditLineAddress   uint16

	ProgramStart int // offset of the first program line
	ProgramEnd   int // offset where the program lines end
	VarsStart    int // offset of the variables area
}

// ParseHeader reads the system variables and computes the offsets of the
// program and variables areas in the image. Offsets are clamped to the image.
func ParseHeader(data []byte, profile *arch.Profile) (Header, error) {
	if len(data) < profile.HeaderSize {
		return Header{}, fmt.Errorf("%w: %d of %d bytes", ErrTruncatedHeader, len(data), profile.HeaderSize)
	}

	h := Header{
		Raw:               data[:profile.HeaderSize],
		ProgramEndAddress: binary.LittleEndian.Uint16(data[profile.ProgramEndField:]),
		VarsAddress:       binary.LittleEndian.Uint16(data[profile.VarsField:]),
		EditLineAddress:   binary.LittleEndian.Uint16(data[profile.EditLineField:]),
		ProgramStart:      profile.HeaderSize,
	}

	h.ProgramEnd = clampedOffset(profile, h.ProgramEndAddress, len(data))

	h.VarsStart = clampedOffset(profile, h.VarsAddress, len(data))
	if h.VarsStart < h.ProgramStart {
		h.VarsStart = h.ProgramStart
	}

	return h, nil
}

// ProgramSize returns the number of bytes between the header and the
// end of the program.
func (h Header) ProgramSize() int {
	if h.ProgramEnd < h.ProgramStart {
		return 0
	}
	return h.ProgramEnd - h.ProgramStart
}

func clampedOffset(profile *arch.Profile, address uint16, size int) int {
	offset, ok := profile.Offset(address)
	if !ok {
		return 0
	}
	return min(offset, size)
}
