// Package z80 decodes Z80 machine code into assembly mnemonics.
//
// The opcode tables of retrogolib provide the instruction, its size and
// whether it is unofficial. The operands are rendered from the bit fields
// of the opcode, which splits into x (bits 7-6), y (bits 5-3), z (bits 2-0)
// and the pair p (bits 5-4) and q (bit 3).
package z80

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/z80"
)

// DataMnemonic is used for bytes that do not decode to an instruction.
const DataMnemonic = "DB"

const indexedCBSize = 4 // prefix, CB, displacement and opcode

var (
	registers8     = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	registers16    = [4]string{"BC", "DE", "HL", "SP"}
	stackRegisters = [4]string{"BC", "DE", "HL", "AF"}
	conditions     = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
	aluOps         = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
	rotateOps      = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
	accumulatorOps = [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}
	interruptModes = [8]string{"0", "0", "1", "2", "0", "0", "1", "2"}
	blockOps       = [4][4]string{
		{"LDI", "CPI", "INI", "OUTI"},
		{"LDD", "CPD", "IND", "OUTD"},
		{"LDIR", "CPIR", "INIR", "OTIR"},
		{"LDDR", "CPDR", "INDR", "OTDR"},
	}
)

// Decoded is a decoded instruction.
type Decoded struct {
	Opcode     Opcode
	Size       int
	Mnemonic   string
	Operands   []string
	Unofficial bool

	Target    uint16 // destination of a jump, call or restart
	HasTarget bool

	targetOperand int
}

// String returns the instruction in assembler syntax.
func (d Decoded) String() string {
	return d.Format("")
}

// Format returns the instruction in assembler syntax, a non empty label
// replaces the branch target operand.
func (d Decoded) Format(label string) string {
	operands := d.Operands
	if label != "" && d.HasTarget {
		operands = slices.Clone(operands)
		operands[d.targetOperand] = label
	}
	if len(operands) == 0 {
		return d.Mnemonic
	}
	return d.Mnemonic + " " + strings.Join(operands, ",")
}

// IsData returns whether the bytes are output as data.
func (d Decoded) IsData() bool {
	return d.Mnemonic == DataMnemonic
}

// Data returns a data definition for the given bytes.
func Data(data ...byte) Decoded {
	operands := make([]string, len(data))
	for i, b := range data {
		operands[i] = fmt.Sprintf("$%02X", b)
	}
	return Decoded{
		Size:     len(data),
		Mnemonic: DataMnemonic,
		Operands: operands,
	}
}

// Decode decodes the instruction at the start of data, pc is its address.
// Bytes that do not form a complete instruction are returned as data.
func Decode(data []byte, pc uint16) Decoded {
	if len(data) == 0 {
		return Decoded{}
	}

	switch data[0] {
	case z80.PrefixCB:
		return decodeCB(data)
	case z80.PrefixED:
		return decodeED(data)
	case z80.PrefixDD:
		return decodeIndexed(data, "IX", &z80.DDOpcodes)
	case z80.PrefixFD:
		return decodeIndexed(data, "IY", &z80.FDOpcodes)
	}

	op := z80.Opcodes[data[0]]
	if op.Instruction == nil || len(data) < int(op.Size) {
		return Data(data[0])
	}

	r := &renderer{data: data, pos: 1, pc: pc}
	return r.finish(op, r.base(data[0]))
}

func decodeCB(data []byte) Decoded {
	if len(data) < 2 {
		return Data(data[0])
	}

	op := z80.CBOpcodes[data[1]]
	r := &renderer{data: data, pos: 2}
	return r.finish(op, r.bitOp(data[1], r.reg8(data[1]&7)))
}

func decodeED(data []byte) Decoded {
	if len(data) < 2 {
		return Data(data[0])
	}

	op := z80.EDOpcodes[data[1]]
	if op.Instruction == nil {
		return Data(data[0], data[1])
	}
	if len(data) < int(op.Size) {
		return Data(data[0])
	}

	r := &renderer{data: data, pos: 2}
	return r.finish(op, r.extended(data[1]))
}

// decodeIndexed decodes IX and IY instructions. A prefix that is not
// followed by an indexed instruction is a single data byte.
func decodeIndexed(data []byte, index string, table *[256]z80.Opcode) Decoded {
	if len(data) < 2 {
		return Data(data[0])
	}

	if data[1] == z80.PrefixCB {
		if len(data) < 4 {
			return Data(data[0])
		}
		return decodeIndexedCB(data, index)
	}

	op := table[data[1]]
	if op.Instruction == nil || len(data) < int(op.Size) {
		return Data(data[0])
	}

	r := &renderer{data: data, pos: 2, index: index}
	return r.finish(op, r.base(data[1]))
}

// decodeIndexedCB decodes the bit instructions on (IX+d) and (IY+d), the
// displacement precedes the opcode byte.
func decodeIndexedCB(data []byte, index string) Decoded {
	op := data[3]
	r := &renderer{data: data, pos: 2, index: index}
	mem := r.mem()

	out := r.bitOp(op, mem)
	z := op & 7
	if z != 6 {
		// the result is copied into a register as well, BIT has no result
		if op>>6 != 1 {
			out.operands = append(out.operands, registers8[z])
		}
		r.undocumented = true
	}

	entry := z80.CBOpcodes[op]
	entry.Size = indexedCBSize
	return r.finish(entry, out)
}

// rendered is the mnemonic and operands of an instruction.
type rendered struct {
	mnemonic string
	operands []string
}

func ins(mnemonic string, operands ...string) rendered {
	return rendered{mnemonic: mnemonic, operands: operands}
}

type renderer struct {
	data  []byte
	pos   int // offset of the next operand byte
	pc    uint16
	index string // IX or IY for indexed instructions

	undocumented bool

	target        uint16
	hasTarget     bool
	targetOperand int
}

func (r *renderer) finish(op z80.Opcode, out rendered) Decoded {
	opcode := Opcode{op: op}
	return Decoded{
		Opcode:        opcode,
		Size:          int(op.Size),
		Mnemonic:      out.mnemonic,
		Operands:      out.operands,
		Unofficial:    r.undocumented || opcode.Instruction().Unofficial(),
		Target:        r.target,
		HasTarget:     r.hasTarget,
		targetOperand: r.targetOperand,
	}
}

func (r *renderer) next() byte {
	b := r.data[r.pos]
	r.pos++
	return b
}

func (r *renderer) imm8() string {
	return fmt.Sprintf("%02XH", r.next())
}

func (r *renderer) word() uint16 {
	lo := r.next()
	hi := r.next()
	return uint16(lo) | uint16(hi)<<8
}

func (r *renderer) imm16() string {
	return fmt.Sprintf("%04XH", r.word())
}

func (r *renderer) addr16() string {
	return fmt.Sprintf("(%04XH)", r.word())
}

func (r *renderer) port() string {
	return fmt.Sprintf("(%02XH)", r.next())
}

// branch renders a destination address and records it as the target of
// the operand at the given position.
func (r *renderer) branch(target uint16, operand int) string {
	r.target = target
	r.hasTarget = true
	r.targetOperand = operand
	return fmt.Sprintf("%04XH", target)
}

func (r *renderer) relative(operand int) string {
	offset := int8(r.next())
	return r.branch(r.pc+2+uint16(offset), operand)
}

func (r *renderer) absolute(operand int) string {
	return r.branch(r.word(), operand)
}

func (r *renderer) hl() string {
	if r.index != "" {
		return r.index
	}
	return "HL"
}

// mem returns (HL) or the indexed memory operand with its displacement.
func (r *renderer) mem() string {
	if r.index == "" {
		return registers8[6]
	}
	displacement := int8(r.next())
	return fmt.Sprintf("(%s%+03XH)", r.index, int(displacement))
}

// reg8 returns an 8 bit register operand, H and L address the halves of
// the index register for indexed instructions.
func (r *renderer) reg8(i byte) string {
	switch {
	case i == 6:
		return r.mem()
	case r.index != "" && (i == 4 || i == 5):
		r.undocumented = true
		return r.index + registers8[i]
	default:
		return registers8[i]
	}
}

func (r *renderer) reg16(p byte) string {
	if p == 2 {
		return r.hl()
	}
	return registers16[p]
}

func (r *renderer) stackReg(p byte) string {
	if p == 2 {
		return r.hl()
	}
	return stackRegisters[p]
}

func (r *renderer) alu(y byte, operand string) rendered {
	switch y {
	case 0, 1, 3:
		return ins(aluOps[y], "A", operand)
	default:
		return ins(aluOps[y], operand)
	}
}

func (r *renderer) base(op byte) rendered {
	x, y, z := op>>6, (op>>3)&7, op&7
	switch x {
	case 0:
		return r.block0(y, z)
	case 1:
		return r.load(y, z)
	case 2:
		return r.alu(y, r.reg8(z))
	default:
		return r.block3(y, z)
	}
}

func (r *renderer) block0(y, z byte) rendered {
	p, q := y>>1, y&1
	switch z {
	case 0:
		switch y {
		case 0:
			return ins("NOP")
		case 1:
			return ins("EX", "AF", "AF'")
		case 2:
			return ins("DJNZ", r.relative(0))
		case 3:
			return ins("JR", r.relative(0))
		default:
			return ins("JR", conditions[y-4], r.relative(1))
		}
	case 1:
		if q == 0 {
			return ins("LD", r.reg16(p), r.imm16())
		}
		return ins("ADD", r.hl(), r.reg16(p))
	case 2:
		return r.indirectLoad(p, q)
	case 3:
		if q == 0 {
			return ins("INC", r.reg16(p))
		}
		return ins("DEC", r.reg16(p))
	case 4:
		return ins("INC", r.reg8(y))
	case 5:
		return ins("DEC", r.reg8(y))
	case 6:
		return ins("LD", r.reg8(y), r.imm8())
	default:
		return ins(accumulatorOps[y])
	}
}

func (r *renderer) indirectLoad(p, q byte) rendered {
	if q == 0 {
		switch p {
		case 0:
			return ins("LD", "(BC)", "A")
		case 1:
			return ins("LD", "(DE)", "A")
		case 2:
			return ins("LD", r.addr16(), r.hl())
		default:
			return ins("LD", r.addr16(), "A")
		}
	}

	switch p {
	case 0:
		return ins("LD", "A", "(BC)")
	case 1:
		return ins("LD", "A", "(DE)")
	case 2:
		return ins("LD", r.hl(), r.addr16())
	default:
		return ins("LD", "A", r.addr16())
	}
}

// load decodes LD r,r'. With an indexed memory operand the other operand
// is a plain register.
func (r *renderer) load(y, z byte) rendered {
	switch {
	case y == 6 && z == 6:
		return ins("HALT")
	case z == 6:
		return ins("LD", registers8[y], r.mem())
	case y == 6:
		return ins("LD", r.mem(), registers8[z])
	default:
		return ins("LD", r.reg8(y), r.reg8(z))
	}
}

func (r *renderer) block3(y, z byte) rendered {
	p, q := y>>1, y&1
	switch z {
	case 0:
		return ins("RET", conditions[y])
	case 1:
		if q == 0 {
			return ins("POP", r.stackReg(p))
		}
		switch p {
		case 0:
			return ins("RET")
		case 1:
			return ins("EXX")
		case 2:
			return ins("JP", "("+r.hl()+")")
		default:
			return ins("LD", "SP", r.hl())
		}
	case 2:
		return ins("JP", conditions[y], r.absolute(1))
	case 3:
		return r.misc(y)
	case 4:
		return ins("CALL", conditions[y], r.absolute(1))
	case 5:
		if q == 0 {
			return ins("PUSH", r.stackReg(p))
		}
		return ins("CALL", r.absolute(0))
	case 6:
		return r.alu(y, r.imm8())
	default:
		restart := uint16(y) * 8
		r.branch(restart, 0)
		return ins("RST", fmt.Sprintf("%02XH", restart))
	}
}

func (r *renderer) misc(y byte) rendered {
	switch y {
	case 0:
		return ins("JP", r.absolute(0))
	case 2:
		return ins("OUT", r.port(), "A")
	case 3:
		return ins("IN", "A", r.port())
	case 4:
		return ins("EX", "(SP)", r.hl())
	case 5:
		return ins("EX", "DE", "HL")
	case 6:
		return ins("DI")
	default:
		return ins("EI")
	}
}

// bitOp decodes the rotate, shift and bit instructions of the CB page.
func (r *renderer) bitOp(op byte, operand string) rendered {
	y := (op >> 3) & 7
	bit := strconv.Itoa(int(y))
	switch op >> 6 {
	case 0:
		return ins(rotateOps[y], operand)
	case 1:
		return ins("BIT", bit, operand)
	case 2:
		return ins("RES", bit, operand)
	default:
		return ins("SET", bit, operand)
	}
}

func (r *renderer) extended(op byte) rendered {
	x, y, z := op>>6, (op>>3)&7, op&7
	if x == 2 {
		return ins(blockOps[y-4][z])
	}

	p, q := y>>1, y&1
	switch z {
	case 0:
		if y == 6 {
			return ins("IN", "F", "(C)")
		}
		return ins("IN", registers8[y], "(C)")
	case 1:
		if y == 6 {
			return ins("OUT", "(C)", "0")
		}
		return ins("OUT", "(C)", registers8[y])
	case 2:
		if q == 0 {
			return ins("SBC", "HL", registers16[p])
		}
		return ins("ADC", "HL", registers16[p])
	case 3:
		if q == 0 {
			return ins("LD", r.addr16(), registers16[p])
		}
		return ins("LD", registers16[p], r.addr16())
	case 4:
		return ins("NEG")
	case 5:
		if y == 1 {
			return ins("RETI")
		}
		return ins("RETN")
	case 6:
		return ins("IM", interruptModes[y])
	default:
		return r.extendedMisc(y)
	}
}

func (r *renderer) extendedMisc(y byte) rendered {
	switch y {
	case 0:
		return ins("LD", "I", "A")
	case 1:
		return ins("LD", "R", "A")
	case 2:
		return ins("LD", "A", "I")
	case 3:
		return ins("LD", "A", "R")
	case 4:
		return ins("RRD")
	case 5:
		return ins("RLD")
	default:
		return ins("NOP")
	}
}
