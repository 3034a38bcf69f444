package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/mzf"
	"github.com/retroenv/zxdetok/internal/options"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		systemOpt  string
		inputFile  string
		wantSystem arch.System
	}{
		{
			name:       "explicit ZX81 system option",
			systemOpt:  "zx81",
			inputFile:  "game.o",
			wantSystem: arch.ZX81,
		},
		{
			name:       "explicit ZX80 system option",
			systemOpt:  "80",
			inputFile:  "game.p",
			wantSystem: arch.ZX80,
		},
		{
			name:       "detect from .o extension",
			inputFile:  "game.o",
			wantSystem: arch.ZX80,
		},
		{
			name:       "detect from .80 extension",
			inputFile:  "dir/game.80",
			wantSystem: arch.ZX80,
		},
		{
			name:       "detect from .P extension",
			inputFile:  "GAME.P",
			wantSystem: arch.ZX81,
		},
		{
			name:       "detect from .81 extension",
			inputFile:  "game.81",
			wantSystem: arch.ZX81,
		},
		{
			name:       "tape recording",
			inputFile:  "game.wav",
			wantSystem: arch.ZX81,
		},
		{
			name:       "sharp tape file",
			inputFile:  "game.mzf",
			wantSystem: arch.SP5025,
		},
		{
			name:       "sharp tape file with .mzt extension",
			inputFile:  "GAME.MZT",
			wantSystem: arch.SP5025,
		},
		{
			name:       "explicit machine code system option",
			systemOpt:  "z80",
			inputFile:  "game.bin",
			wantSystem: arch.Z80,
		},
		{
			name:       "unknown extension defaults to ZX80",
			inputFile:  "game.bin",
			wantSystem: arch.ZX80,
		},
		{
			name:       "invalid system option falls back to detection",
			systemOpt:  "spectrum",
			inputFile:  "game.p",
			wantSystem: arch.ZX81,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{}
			opts.System = tt.systemOpt
			opts.Input = tt.inputFile

			assert.Equal(t, tt.wantSystem, d.Detect(opts))
		})
	}
}

func TestRefine(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tapeFile := func(fileType mzf.FileType) []byte {
		data := make([]byte, mzf.HeaderSize)
		data[0] = byte(fileType)
		return data
	}

	tests := []struct {
		name       string
		systemOpt  string
		inputFile  string
		data       []byte
		wantSystem arch.System
	}{
		{
			name:       "machine code",
			inputFile:  "game.mzf",
			data:       tapeFile(mzf.MachineCode),
			wantSystem: arch.Z80,
		},
		{
			name:       "1Z-013B BASIC",
			inputFile:  "game.mzt",
			data:       tapeFile(mzf.Basic1Z013B),
			wantSystem: arch.MZ1Z013B,
		},
		{
			name:       "MZ-80K BASIC",
			inputFile:  "game.mzf",
			data:       tapeFile(mzf.Basic),
			wantSystem: arch.SP5025,
		},
		{
			name:       "explicit system option is kept",
			systemOpt:  "sa5510",
			inputFile:  "game.mzf",
			data:       tapeFile(mzf.MachineCode),
			wantSystem: arch.SA5510,
		},
		{
			name:       "unknown file type",
			inputFile:  "game.mzf",
			data:       tapeFile(0x7F),
			wantSystem: arch.SP5025,
		},
		{
			name:       "truncated header",
			inputFile:  "game.mzf",
			data:       []byte{0x01},
			wantSystem: arch.SP5025,
		},
		{
			name:       "not a tape file",
			inputFile:  "game.p",
			data:       tapeFile(mzf.MachineCode),
			wantSystem: arch.ZX81,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{}
			opts.System = tt.systemOpt
			opts.Input = tt.inputFile

			system := d.Detect(opts)
			assert.Equal(t, tt.wantSystem, d.Refine(opts, system, tt.data))
		})
	}
}
