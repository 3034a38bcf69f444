// Package mzf parses the tape file container of the Sharp MZ machines.
package mzf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/charset"
)

// HeaderSize is the size of the header that precedes the file body.
const HeaderSize = 128

const (
	nameOffset    = 0x01
	nameSize      = 17
	nameEnd       = 0x0D
	sizeOffset    = 0x12
	loadOffset    = 0x14
	execOffset    = 0x16
	commentOffset = 0x18
)

// ErrTruncatedHeader is returned when the file is shorter than the header.
var ErrTruncatedHeader = errors.New("truncated MZF header")

// FileType is the attribute byte of the header.
type FileType byte

// Known file types.
const (
	MachineCode FileType = 0x01
	Basic       FileType = 0x02 // SA-5510 or SP-5025 BASIC program
	Basic1Z013B FileType = 0x05
)

// String returns a description of the file type.
func (t FileType) String() string {
	switch t {
	case MachineCode:
		return "Machine Code (Z80)"
	case Basic:
		return "BASIC (SP-5025) or BASIC (SA-5510)"
	case Basic1Z013B:
		return "BASIC (1Z-013B)"
	default:
		return "Unknown Type"
	}
}

// System returns the system that decodes the body of the file type.
// Plain BASIC files default to SP-5025 as both MZ-80K dialects share the type.
func (t FileType) System() (arch.System, bool) {
	switch t {
	case MachineCode:
		return arch.Z80, true
	case Basic:
		return arch.SP5025, true
	case Basic1Z013B:
		return arch.MZ1Z013B, true
	default:
		return "", false
	}
}

// Header is the parsed MZF header.
type Header struct {
	Type        FileType
	Name        string
	Size        uint16 // size of the body in bytes
	LoadAddress uint16
	ExecAddress uint16
	Comment     []byte
}

// ParseHeader parses the header at the start of the file.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d of %d bytes", ErrTruncatedHeader, len(data), HeaderSize)
	}

	return Header{
		Type:        FileType(data[0]),
		Name:        decodeName(data[nameOffset : nameOffset+nameSize]),
		Size:        binary.LittleEndian.Uint16(data[sizeOffset:]),
		LoadAddress: binary.LittleEndian.Uint16(data[loadOffset:]),
		ExecAddress: binary.LittleEndian.Uint16(data[execOffset:]),
		Comment:     data[commentOffset:HeaderSize],
	}, nil
}

// Body returns the file content following the header. The size field of
// the header limits the body if the file contains trailing bytes.
func (h Header) Body(data []byte) []byte {
	if len(data) <= HeaderSize {
		return nil
	}
	body := data[HeaderSize:]
	if int(h.Size) > 0 && int(h.Size) < len(body) {
		body = body[:h.Size]
	}
	return body
}

// HasExtension returns whether the file name uses an extension of the
// MZF container.
func HasExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mzf", ".mzt":
		return true
	default:
		return false
	}
}

func decodeName(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if b == nameEnd {
			break
		}
		if s, ok := charset.Sharp(b); ok {
			sb.WriteString(s)
		} else {
			sb.WriteString(charset.SharpPlaceholder)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
