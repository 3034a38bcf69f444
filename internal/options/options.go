// Package options contains the program options.
package options

import (
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/charset"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string
	Output string // output .bas file, "-" for stdout
	Batch  string // batch process files matching pattern (e.g. *.p)
}

// Flags contains behavior options.
type Flags struct {
	System string // target system (default: detect by extension and tape header)
	Info   bool   // print header information only, skip decoding
	Dump   bool   // print a hex and ASCII dump of the file
	Debug  bool
	Quiet  bool

	Origin    uint16 // load address of machine code without tape header
	OriginSet bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	ZXpand      bool // merge the ZXpand keyword extension
	Numbers     bool // show the values of hidden number literals
	NoVariables bool // omit the variables area from the listing
	Color       bool // render inverse characters with ANSI escapes on terminals

	NoHexComments    bool // omit address, opcode bytes and ASCII comments of disassembled code
	OutputUnofficial bool // use mnemonics for undocumented Z80 instructions
}

// Program options of the detokenizer.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Decoder defines options to control the decoder.
type Decoder struct {
	System arch.System

	VendorTokens bool
	ShowNumbers  bool
	Variables    bool
	Inverse      charset.Inverse
}

// NewDecoder returns decoder options based on the program options.
func NewDecoder(opts Program) Decoder {
	return Decoder{
		VendorTokens: opts.ZXpand,
		ShowNumbers:  opts.Numbers,
		Variables:    !opts.NoVariables,
		Inverse:      charset.InverseMarker,
	}
}

// Disassembler defines options to control the Z80 disassembler.
type Disassembler struct {
	Origin    uint16
	OriginSet bool // origin overrides the load address of the tape header

	HexComments                 bool
	OutputUnofficialAsMnemonics bool // output undocumented opcodes as mnemonics instead of DB
}

// NewDisassembler returns disassembler options based on the program options.
func NewDisassembler(opts Program) Disassembler {
	return Disassembler{
		Origin:                      opts.Origin,
		OriginSet:                   opts.OriginSet,
		HexComments:                 !opts.NoHexComments,
		OutputUnofficialAsMnemonics: opts.OutputUnofficial,
	}
}
