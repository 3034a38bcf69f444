package disasm

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/zxdetok/internal/arch/z80"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	entryLabel  = "start"

	execMarker = ">"
)

// codeLine is a decoded instruction or data definition of the image.
type codeLine struct {
	address uint16
	data    []byte
	decoded z80.Decoded
	comment string
}

// processJumpDestinations names all jump destinations. Destinations that point
// inside of an instruction turn the instruction into data.
func (dis *Disasm) processJumpDestinations() {
	for _, address := range set.Sorted(dis.branchDestinations) {
		if _, ok := dis.index[address]; !ok {
			dis.handleJumpIntoInstruction(address)
		}

		var name string
		switch {
		case dis.image.HasExec && address == dis.image.Exec:
			name = entryLabel
		case dis.callDestinations.Contains(address):
			name = fmt.Sprintf(funcNaming, address)
		default:
			name = fmt.Sprintf(labelNaming, address)
		}
		dis.labels[address] = name
	}
}

// handleJumpIntoInstruction converts an instruction that has a jump destination
// inside of its opcode bytes into single data bytes.
func (dis *Disasm) handleJumpIntoInstruction(address uint16) {
	// look backwards for instruction start
	start := address - 1
	for {
		if _, ok := dis.index[start]; ok {
			break
		}
		start--
	}

	i := dis.index[start]
	line := dis.code[i]

	replacement := make([]*codeLine, len(line.data))
	for j, b := range line.data {
		replacement[j] = &codeLine{
			address: line.address + uint16(j),
			data:    line.data[j : j+1],
			decoded: z80.Data(b),
		}
	}
	replacement[0].comment = "branch into instruction detected: " + line.decoded.String()

	dis.code = slices.Replace(dis.code, i, i+1, replacement...)
	dis.buildIndex()
}

func (dis *Disasm) write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "  ORG %04XH\n", dis.image.Origin)

	for _, line := range dis.code {
		if name, ok := dis.labels[line.address]; ok {
			fmt.Fprintf(bw, "\n%s:\n", name)
		}
		fmt.Fprintln(bw, dis.formatLine(line))
	}
	return bw.Flush()
}

// formatLine returns the instruction followed by an optional comment with
// the address, the opcode bytes and their ASCII representation.
func (dis *Disasm) formatLine(line *codeLine) string {
	code := line.decoded.String()
	if line.decoded.HasTarget {
		code = line.decoded.Format(dis.labels[line.decoded.Target])
	}

	if !dis.options.HexComments {
		if line.comment == "" {
			return "  " + code
		}
		return fmt.Sprintf("  %-22s ; %s", code, line.comment)
	}

	marker := " "
	if dis.image.HasExec && line.address == dis.image.Exec {
		marker = execMarker
	}
	hex := make([]string, len(line.data))
	for i, b := range line.data {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	s := fmt.Sprintf("  %-22s ;%04X %-15s %s", code, line.address,
		marker+" "+strings.Join(hex, " "), printable(line.data))
	if line.comment != "" {
		s += " " + line.comment
	}
	return s
}

func printable(data []byte) string {
	b := make([]byte, len(data))
	for i, c := range data {
		if c >= 0x20 && c < 0x7F {
			b[i] = c
		} else {
			b[i] = '.'
		}
	}
	return string(b)
}
