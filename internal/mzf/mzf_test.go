package mzf

import (
	"encoding/binary"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/zxdetok/internal/arch"
)

func newImage(fileType FileType, name string, body []byte) []byte {
	data := make([]byte, HeaderSize)
	data[0] = byte(fileType)
	copy(data[nameOffset:], name)
	data[nameOffset+len(name)] = nameEnd
	binary.LittleEndian.PutUint16(data[sizeOffset:], uint16(len(body)))
	binary.LittleEndian.PutUint16(data[loadOffset:], 0x1200)
	binary.LittleEndian.PutUint16(data[execOffset:], 0x1204)
	return append(data, body...)
}

func TestParseHeader(t *testing.T) {
	data := newImage(MachineCode, "GAME", []byte{0x00, 0xC9})
	data[nameOffset+1] = 161 // Sharp ASCII lower case a

	header, err := ParseHeader(data)
	assert.NoError(t, err)
	assert.Equal(t, MachineCode, header.Type)
	assert.Equal(t, "GaME", header.Name)
	assert.Equal(t, uint16(2), header.Size)
	assert.Equal(t, uint16(0x1200), header.LoadAddress)
	assert.Equal(t, uint16(0x1204), header.ExecAddress)
	assert.Len(t, header.Comment, HeaderSize-commentOffset)
	assert.Equal(t, []byte{0x00, 0xC9}, header.Body(data))
}

func TestParseHeaderTruncated(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, ErrTruncatedHeader)
}

func TestBody(t *testing.T) {
	data := newImage(Basic, "X", []byte{1, 2, 3})

	header, err := ParseHeader(append(data, 0xFF, 0xFF))
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, header.Body(append(data, 0xFF, 0xFF)))

	// a size beyond the file keeps all available bytes
	binary.LittleEndian.PutUint16(data[sizeOffset:], 100)
	header, err = ParseHeader(data)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, header.Body(data))

	assert.Empty(t, header.Body(data[:HeaderSize]))
}

func TestFileType(t *testing.T) {
	tests := []struct {
		fileType   FileType
		wantSystem arch.System
		wantOK     bool
		wantText   string
	}{
		{MachineCode, arch.Z80, true, "Machine Code (Z80)"},
		{Basic, arch.SP5025, true, "BASIC (SP-5025) or BASIC (SA-5510)"},
		{Basic1Z013B, arch.MZ1Z013B, true, "BASIC (1Z-013B)"},
		{FileType(0x03), "", false, "Unknown Type"},
	}

	for _, tt := range tests {
		t.Run(tt.wantText, func(t *testing.T) {
			system, ok := tt.fileType.System()
			assert.Equal(t, tt.wantSystem, system)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, tt.fileType.String())
		})
	}
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("game.mzf"))
	assert.True(t, HasExtension("dir/GAME.MZT"))
	assert.False(t, HasExtension("game.p"))
	assert.False(t, HasExtension("mzf"))
}
