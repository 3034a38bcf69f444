// Package arch contains the supported systems and the memory layout of the
// Sinclair machines. It acts as a bridge between the file level driver and the
// machine specific character set and variables layout.
package arch

import (
	"fmt"
	"strings"
)

// System identifies a supported machine.
type System string

// Supported systems.
const (
	ZX80 System = "zx80"
	ZX81 System = "zx81"

	SA5510   System = "sa5510" // Sharp MZ-80K BASIC SA-5510
	SP5025   System = "sp5025" // Sharp MZ-80K BASIC SP-5025
	MZ1Z013B System = "1z013b" // Sharp MZ-700 BASIC 1Z-013B

	Z80 System = "z80" // Z80 machine code
)

// String returns the system name.
func (s System) String() string {
	return string(s)
}

// Sinclair returns whether the system stores a Sinclair program image.
func (s System) Sinclair() bool {
	return s == ZX80 || s == ZX81
}

// SharpBasic returns whether the system is one of the Sharp MZ BASIC dialects.
func (s System) SharpBasic() bool {
	switch s {
	case SA5510, SP5025, MZ1Z013B:
		return true
	default:
		return false
	}
}

// SystemFromString parses a system name, the empty string is returned
// together with false for an unknown name.
func SystemFromString(name string) (System, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zx80", "80":
		return ZX80, true
	case "zx81", "81", "ts1000":
		return ZX81, true
	case "sa5510", "sa-5510", "sa":
		return SA5510, true
	case "sp5025", "sp-5025", "sp":
		return SP5025, true
	case "1z013b", "1z-013b", "1z":
		return MZ1Z013B, true
	case "z80", "mc":
		return Z80, true
	default:
		return "", false
	}
}

// Systems returns the names of all supported systems.
func Systems() []System {
	return []System{ZX80, ZX81, SA5510, SP5025, MZ1Z013B, Z80}
}

// Markers shared by both machines.
const (
	EndMarker   = 0x80 // end of program lines or of the variables area
	LineEnd     = 0x76 // NEWLINE, terminates the content of a program line
	LineNumSize = 2    // line numbers are stored high byte first
)

// Profile describes where a machine stores its program and variables.
type Profile struct {
	System System
	Name   string

	HeaderSize int    // size of the saved system variables preceding the program
	LoadBase   uint16 // address the first byte of the file is loaded to

	ProgramEndField int // header offset of the address where the program ends
	VarsField       int // header offset of the address of the variables area
	EditLineField   int // header offset of the address of the edit line

	LineLength bool // lines carry a little-endian length after the line number
	ValueSize  int  // size of a numeric value in the variables area
	LoopStep   bool // loop-control records carry a STEP value
	FileName   bool // tape recordings start with a file name
}

var profiles = map[System]*Profile{
	ZX80: {
		System:          ZX80,
		Name:            "ZX80",
		HeaderSize:      40,
		LoadBase:        0x4000,
		ProgramEndField: 8,
		VarsField:       8,
		EditLineField:   10,
		ValueSize:       2,
	},
	ZX81: {
		System:          ZX81,
		Name:            "ZX81",
		HeaderSize:      116,
		LoadBase:        0x4009,
		ProgramEndField: 3,
		VarsField:       7,
		EditLineField:   11,
		LineLength:      true,
		ValueSize:       5,
		LoopStep:        true,
		FileName:        true,
	},
}

// ProfileFor returns the memory layout of the given system.
func ProfileFor(system System) (*Profile, error) {
	profile, ok := profiles[system]
	if !ok {
		return nil, fmt.Errorf("unsupported system '%s'", system)
	}
	return profile, nil
}

// Offset converts a memory address into an offset of the file image.
// Addresses below the load base return false.
func (p *Profile) Offset(address uint16) (int, bool) {
	if address < p.LoadBase {
		return 0, false
	}
	return int(address - p.LoadBase), true
}
