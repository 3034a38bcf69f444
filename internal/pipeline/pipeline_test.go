package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/charset"
	"github.com/retroenv/zxdetok/internal/loader"
	"github.com/retroenv/zxdetok/internal/mzf"
	"github.com/retroenv/zxdetok/internal/options"
	"github.com/retroenv/zxdetok/internal/program"
)

// zx80Program contains "12 PRINT 012" and an inverse string followed by an
// empty variables area.
func zx80Program() []byte {
	data := make([]byte, 40)
	lines := []byte{
		0x00, 0x0C, 244, 28, 29, 30, 0x76,
		0x00, 0x14, 244, 1, 0x80 | 38, 1, 0x76,
	}
	end := 0x4000 + 40 + len(lines)
	data[8], data[9] = byte(end), byte(end>>8)
	data = append(data, lines...)
	return append(data, 0x80)
}

// tapeFile builds a Sharp tape file with the given body loaded and started
// at 0x1200.
func tapeFile(fileType mzf.FileType, body []byte) []byte {
	data := make([]byte, mzf.HeaderSize)
	data[0] = byte(fileType)
	copy(data[1:], "TEST\r")
	data[0x12], data[0x13] = byte(len(body)), byte(len(body)>>8)
	data[0x15], data[0x17] = 0x12, 0x12
	return append(data, body...)
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestExecute(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := options.Program{}
	opts.Input = createTempFile(t, "test.o", zx80Program())

	var buf bytes.Buffer
	prg, err := p.Execute(context.Background(), opts, options.NewDecoder(opts), &buf)
	assert.NoError(t, err)
	assert.NotNil(t, prg)
	assert.Equal(t, arch.ZX80, prg.System)
	assert.Equal(t, "12 PRINT 012\n20 PRINT \"%A\"\n", buf.String())
}

func TestExecuteInfo(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := options.Program{}
	opts.Info = true

	var buf bytes.Buffer
	prg, err := p.ExecuteWithData(context.Background(), zx80Program(), opts, options.NewDecoder(opts), &buf, arch.ZX80)
	assert.NoError(t, err)
	assert.True(t, prg == nil)
	assert.Contains(t, buf.String(), "File size: 55 bytes")
	assert.False(t, bytes.Contains(buf.Bytes(), []byte("PRINT")))
}

func TestExecuteSharpBasic(t *testing.T) {
	p := New(log.NewTestLogger(t))

	body := []byte{
		0x0A, 0x00, 0x0A, 0x00, 0x85, '"', 'H', 'I', '"', 0x0D, // 10 PRINT"HI"
		0x00, 0x00,
	}
	opts := options.Program{}
	opts.Input = createTempFile(t, "test.mzf", tapeFile(mzf.Basic, body))

	var buf bytes.Buffer
	prg, err := p.Execute(context.Background(), opts, options.NewDecoder(opts), &buf)
	assert.NoError(t, err)
	assert.Equal(t, arch.SP5025, prg.System)
	assert.Equal(t, "10 PRINT\"HI\"\n", buf.String())
}

func TestExecuteMachineCode(t *testing.T) {
	p := New(log.NewTestLogger(t))

	body := []byte{0x18, 0xFE} // JR 1200H
	opts := options.Program{}
	opts.Input = createTempFile(t, "test.mzt", tapeFile(mzf.MachineCode, body))

	var buf bytes.Buffer
	prg, err := p.Execute(context.Background(), opts, options.NewDecoder(opts), &buf)
	assert.NoError(t, err)
	assert.True(t, prg == nil)
	assert.Equal(t, "  ORG 1200H\n\nstart:\n  JR start               ;1200 > 18 FE         ..\n", buf.String())
}

func TestExecuteRawMachineCode(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := options.Program{}
	opts.System = "z80"
	opts.Origin = 0x8000
	opts.OriginSet = true
	opts.NoHexComments = true
	opts.Input = createTempFile(t, "test.bin", []byte{0xC3, 0x00, 0x80})

	var buf bytes.Buffer
	_, err := p.Execute(context.Background(), opts, options.NewDecoder(opts), &buf)
	assert.NoError(t, err)
	assert.Equal(t, "  ORG 8000H\n\n_label_8000:\n  JP _label_8000\n", buf.String())
}

func TestExecuteDump(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := options.Program{}
	opts.Dump = true

	var buf bytes.Buffer
	prg, err := p.ExecuteWithData(context.Background(), []byte("ZX"), opts, options.NewDecoder(opts), &buf, arch.ZX81)
	assert.NoError(t, err)
	assert.True(t, prg == nil)
	assert.Equal(t, "0000  5A 58"+strings.Repeat("   ", 14)+"  |ZX|\n0002\n", buf.String())
}

func TestExecuteErrors(t *testing.T) {
	p := New(log.NewTestLogger(t))

	t.Run("missing file", func(t *testing.T) {
		opts := options.Program{}
		opts.Input = filepath.Join(t.TempDir(), "missing.o")

		_, err := p.Execute(context.Background(), opts, options.NewDecoder(opts), &bytes.Buffer{})
		assert.True(t, errors.Is(err, loader.ErrFileNotFound))
	})

	t.Run("truncated header", func(t *testing.T) {
		opts := options.Program{}
		opts.Input = createTempFile(t, "short.p", make([]byte, 20))

		_, err := p.Execute(context.Background(), opts, options.NewDecoder(opts), &bytes.Buffer{})
		assert.True(t, errors.Is(err, program.ErrTruncatedHeader))
	})

	t.Run("truncated tape header", func(t *testing.T) {
		opts := options.Program{}
		opts.Input = createTempFile(t, "short.mzf", make([]byte, 20))

		_, err := p.Execute(context.Background(), opts, options.NewDecoder(opts), &bytes.Buffer{})
		assert.ErrorIs(t, err, mzf.ErrTruncatedHeader)
	})
}

func TestInverseMode(t *testing.T) {
	opts := options.Program{}
	assert.Equal(t, charset.InverseMarker, inverseMode(opts, &bytes.Buffer{}))

	opts.Color = true
	assert.Equal(t, charset.InverseMarker, inverseMode(opts, &bytes.Buffer{}))

	// a regular file is not a terminal
	f, err := os.Create(filepath.Join(t.TempDir(), "out.bas"))
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, charset.InverseMarker, inverseMode(opts, f))
}
