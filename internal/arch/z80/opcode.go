package z80

import (
	"github.com/retroenv/retrogolib/arch/cpu/z80"
	"github.com/retroenv/zxdetok/internal/instruction"
)

var _ instruction.Opcode = (*Opcode)(nil)

// Opcode wraps a Z80 opcode table entry of retrogolib.
type Opcode struct {
	op z80.Opcode
}

// Instruction returns the instruction associated with this opcode.
func (o Opcode) Instruction() instruction.Instruction {
	return Instruction{ins: o.op.Instruction}
}

// IsBranching returns true if the opcode jumps, calls, returns or restarts.
func (o Opcode) IsBranching() bool {
	if o.op.Instruction == nil {
		return false
	}
	return z80.BranchingInstructions.Contains(o.op.Instruction.Name)
}

// Size returns the size of the opcode including its prefix and operands.
func (o Opcode) Size() int {
	return int(o.op.Size)
}
