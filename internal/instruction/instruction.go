// Package instruction contains fundamental types for CPU instructions and opcodes.
package instruction

// Instruction represents a CPU instruction.
type Instruction interface {
	// IsCall returns true if the instruction is a call.
	IsCall() bool
	// IsNil returns true if the instruction is nil.
	IsNil() bool
	// Name returns the instruction name.
	Name() string
	// Unofficial returns true if the instruction is not official.
	Unofficial() bool
}

// Opcode represents an opcode.
type Opcode interface {
	// Instruction returns the instruction of the opcode.
	Instruction() Instruction
	// IsBranching returns true if the opcode can transfer control to another address.
	IsBranching() bool
	// Size returns the size of the opcode and its operands in bytes.
	Size() int
}
