package app

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/mzf"
	"github.com/retroenv/zxdetok/internal/program"
)

func TestWriteInfoZX80(t *testing.T) {
	data := make([]byte, 50)
	for i := range 40 {
		data[i] = byte(i)
	}
	data[8], data[9] = 0x32, 0x40
	data[10], data[11] = 0x35, 0x40

	var buf bytes.Buffer
	assert.NoError(t, WriteInfo(&buf, data, arch.ZX80, false))

	out := buf.String()
	assert.Contains(t, out, "System:    ZX80\n")
	assert.Contains(t, out, "File size: 50 bytes\n")
	assert.Contains(t, out, "Header (40 bytes):\n")
	assert.Contains(t, out, "0000  00 01 02 03 04 05 06 07 32 40 35 40 0C 0D 0E 0F\n")
	assert.Contains(t, out, "0020  20 21 22 23 24 25 26 27\n")
	assert.Contains(t, out, "  VARS   0x4032  offset 50\n")
	assert.Contains(t, out, "  E_LINE 0x4035  offset 53\n")
	assert.Contains(t, out, "Program size: 10 bytes\n")
	assert.False(t, bytes.Contains(buf.Bytes(), []byte("D_FILE")))
}

func TestWriteInfoZX81(t *testing.T) {
	data := make([]byte, 130)
	data[3], data[4] = 0x8D, 0x40
	data[7], data[8] = 0x00, 0x10

	var buf bytes.Buffer
	assert.NoError(t, WriteInfo(&buf, data, arch.ZX81, false))

	out := buf.String()
	assert.Contains(t, out, "Header (116 bytes):\n")
	assert.Contains(t, out, "  D_FILE 0x408D  offset 132\n")
	assert.Contains(t, out, "  VARS   0x1000  below load address\n")
}

func TestWriteInfoTruncated(t *testing.T) {
	var buf bytes.Buffer
	err := WriteInfo(&buf, []byte{0xAA, 0xBB}, arch.ZX80, false)
	assert.True(t, errors.Is(err, program.ErrTruncatedHeader))
	assert.Contains(t, buf.String(), "0000  AA BB\n")
}

func TestWriteInfoTapeHeader(t *testing.T) {
	data := make([]byte, mzf.HeaderSize+4)
	data[0] = byte(mzf.MachineCode)
	copy(data[1:], "DEMO\r")
	data[0x12], data[0x13] = 0x04, 0x00
	data[0x14], data[0x15] = 0x00, 0x12
	data[0x16], data[0x17] = 0x02, 0x12

	var buf bytes.Buffer
	assert.NoError(t, WriteInfo(&buf, data, arch.Z80, true))

	out := buf.String()
	assert.Contains(t, out, "System:    z80\n")
	assert.Contains(t, out, "File size: 132 bytes\n")
	assert.Contains(t, out, "Header (128 bytes):\n")
	assert.Contains(t, out, "  Type   0x01    Machine Code (Z80)\n")
	assert.Contains(t, out, "  Name   DEMO\n")
	assert.Contains(t, out, "  Size   0x0004  4 bytes\n")
	assert.Contains(t, out, "  Load   0x1200\n")
	assert.Contains(t, out, "  Exec   0x1202\n")
}

func TestWriteInfoWithoutTapeHeader(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteInfo(&buf, []byte{0x00, 0xC9}, arch.Z80, false))
	assert.Equal(t, "System:    z80\nFile size: 2 bytes\n", buf.String())
}

func TestWriteInfoTruncatedTapeHeader(t *testing.T) {
	var buf bytes.Buffer
	err := WriteInfo(&buf, []byte{0x02, 0x41}, arch.SP5025, true)
	assert.ErrorIs(t, err, mzf.ErrTruncatedHeader)
	assert.Contains(t, buf.String(), "0000  02 41\n")
}

func TestWriteDump(t *testing.T) {
	data := []byte("Hello, world!\x00\x01\x02ZX")

	var buf bytes.Buffer
	assert.NoError(t, WriteDump(&buf, data))

	expected := "0000  48 65 6C 6C 6F 2C 20 77 6F 72 6C 64 21 00 01 02  |Hello, world!...|\n" +
		"0010  5A 58                                            |ZX|\n" +
		"0012\n"
	assert.Equal(t, expected, buf.String())
}
