// Package disasm implements a Z80 disassembler for machine code images.
package disasm

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/zxdetok/internal/arch/z80"
	"github.com/retroenv/zxdetok/internal/options"
)

// Image is a machine code image and the address it is loaded to.
type Image struct {
	Data   []byte
	Origin uint16

	Exec    uint16 // execution start address
	HasExec bool
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	image Image
	code  []*codeLine
	index map[uint16]int // address to code line

	branchDestinations set.Set[uint16] // set of all addresses that are branched to
	callDestinations   set.Set[uint16]
	labels             map[uint16]string
}

// New creates a new disassembler.
func New(logger *log.Logger, options options.Disassembler) *Disasm {
	return &Disasm{
		logger:  logger,
		options: options,
	}
}

// Process disassembles the image and writes the assembler listing.
func (dis *Disasm) Process(ctx context.Context, image Image, w io.Writer) error {
	if int(image.Origin)+len(image.Data) > 0x10000 {
		return fmt.Errorf("image of %d bytes at origin 0x%04X exceeds the address space",
			len(image.Data), image.Origin)
	}

	dis.image = image
	dis.branchDestinations = set.New[uint16]()
	dis.callDestinations = set.New[uint16]()
	dis.labels = map[uint16]string{}

	if err := dis.disassemble(ctx); err != nil {
		return err
	}
	dis.processJumpDestinations()

	if err := dis.write(w); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}

	dis.logger.Debug("Disassembled image",
		log.Hex("origin", image.Origin),
		log.Int("instructions", len(dis.code)),
		log.Int("labels", len(dis.labels)))
	return nil
}

// disassemble decodes the image in a linear sweep and collects all branch
// destinations that are inside of the image.
func (dis *Disasm) disassemble(ctx context.Context) error {
	data := dis.image.Data
	dis.code = make([]*codeLine, 0, len(data))

	for offset := 0; offset < len(data); {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}

		address := dis.image.Origin + uint16(offset)
		decoded := z80.Decode(data[offset:], address)
		raw := data[offset : offset+decoded.Size]

		line := &codeLine{
			address: address,
			data:    raw,
			decoded: decoded,
		}
		if decoded.Unofficial && !dis.options.OutputUnofficialAsMnemonics {
			line.comment = decoded.String()
			line.decoded = z80.Data(raw...)
		}
		dis.code = append(dis.code, line)
		offset += decoded.Size
	}

	dis.buildIndex()

	for _, line := range dis.code {
		d := line.decoded
		if !d.HasTarget || !dis.inImage(d.Target) {
			continue
		}
		dis.branchDestinations.Add(d.Target)
		if d.Opcode.Instruction().IsCall() {
			dis.callDestinations.Add(d.Target)
		}
	}
	if dis.image.HasExec && dis.inImage(dis.image.Exec) {
		dis.branchDestinations.Add(dis.image.Exec)
	}
	return nil
}

func (dis *Disasm) buildIndex() {
	dis.index = make(map[uint16]int, len(dis.code))
	for i, line := range dis.code {
		dis.index[line.address] = i
	}
}

func (dis *Disasm) inImage(address uint16) bool {
	return address >= dis.image.Origin && int(address-dis.image.Origin) < len(dis.image.Data)
}
