package z80

import (
	"github.com/retroenv/retrogolib/arch/cpu/z80"
	"github.com/retroenv/zxdetok/internal/instruction"
)

var _ instruction.Instruction = (*Instruction)(nil)

// Instruction wraps a Z80 instruction definition of retrogolib.
type Instruction struct {
	ins *z80.Instruction
}

// IsCall returns true if the instruction calls a subroutine, RST is a call
// to a fixed address.
func (i Instruction) IsCall() bool {
	if i.ins == nil {
		return false
	}
	return i.ins.Name == z80.CallName || i.ins.Name == z80.RstName
}

// IsNil returns true if the instruction is nil.
func (i Instruction) IsNil() bool {
	return i.ins == nil
}

// Name returns the instruction name.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// Unofficial returns true if the instruction is not official.
func (i Instruction) Unofficial() bool {
	if i.ins == nil {
		return false
	}
	return i.ins.Unofficial || z80.IsUnofficialInstruction(i.ins.Name)
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.ins != nil && i.ins.Name == z80.RetName
}
