// Package app provides the main application helpers of the detokenizer.
package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/mzf"
	"github.com/retroenv/zxdetok/internal/options"
	"github.com/retroenv/zxdetok/internal/program"
)

const bytesPerRow = 16

// PrintInfo prints the information about the input file.
func PrintInfo(logger *log.Logger, opts options.Program, system arch.System, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing program",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", size),
	)
	if opts.ZXpand && system != arch.ZX80 {
		logger.Warn("ZXpand keywords are only supported for the ZX80")
	}
}

// WriteInfo writes the file size, a hex dump of the header and the parsed
// system variables. Files of the Sharp machines show the fields of their tape
// header instead, raw machine code has no header at all.
func WriteInfo(w io.Writer, data []byte, system arch.System, tapeHeader bool) error {
	if !system.Sinclair() {
		return writeTapeInfo(w, data, system, tapeHeader)
	}

	profile, err := arch.ProfileFor(system)
	if err != nil {
		return fmt.Errorf("getting memory layout: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "System:    %s\n", profile.Name)
	fmt.Fprintf(&sb, "File size: %d bytes\n\n", len(data))

	headerSize := min(len(data), profile.HeaderSize)
	fmt.Fprintf(&sb, "Header (%d bytes):\n", headerSize)
	writeHexDump(&sb, data[:headerSize])

	header, err := program.ParseHeader(data, profile)
	if err != nil {
		if _, werr := io.WriteString(w, sb.String()); werr != nil {
			return fmt.Errorf("writing info: %w", werr)
		}
		return fmt.Errorf("parsing header: %w", err)
	}

	sb.WriteString("\nSystem variables:\n")
	if profile.ProgramEndField != profile.VarsField {
		writeSysVar(&sb, "D_FILE", header.ProgramEndAddress, profile)
	}
	writeSysVar(&sb, "VARS", header.VarsAddress, profile)
	writeSysVar(&sb, "E_LINE", header.EditLineAddress, profile)
	fmt.Fprintf(&sb, "\nProgram size: %d bytes\n", header.ProgramSize())

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing info: %w", err)
	}
	return nil
}

func writeTapeInfo(w io.Writer, data []byte, system arch.System, tapeHeader bool) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "System:    %s\n", system)
	fmt.Fprintf(&sb, "File size: %d bytes\n", len(data))

	var parseErr error
	if tapeHeader {
		headerSize := min(len(data), mzf.HeaderSize)
		fmt.Fprintf(&sb, "\nHeader (%d bytes):\n", headerSize)
		writeHexDump(&sb, data[:headerSize])

		var header mzf.Header
		header, parseErr = mzf.ParseHeader(data)
		if parseErr == nil {
			sb.WriteString("\nTape header:\n")
			fmt.Fprintf(&sb, "  Type   0x%02X    %s\n", byte(header.Type), header.Type)
			fmt.Fprintf(&sb, "  Name   %s\n", header.Name)
			fmt.Fprintf(&sb, "  Size   0x%04X  %d bytes\n", header.Size, header.Size)
			fmt.Fprintf(&sb, "  Load   0x%04X\n", header.LoadAddress)
			fmt.Fprintf(&sb, "  Exec   0x%04X\n", header.ExecAddress)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing info: %w", err)
	}
	if parseErr != nil {
		return fmt.Errorf("parsing tape header: %w", parseErr)
	}
	return nil
}

// WriteDump writes a hex and ASCII dump of the whole file.
func WriteDump(w io.Writer, data []byte) error {
	var sb strings.Builder
	for row := 0; row < len(data); row += bytesPerRow {
		end := min(row+bytesPerRow, len(data))
		fmt.Fprintf(&sb, "%04X ", row)
		for i := row; i < row+bytesPerRow; i++ {
			if i < end {
				fmt.Fprintf(&sb, " %02X", data[i])
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString("  |")
		for _, b := range data[row:end] {
			if b >= 0x20 && b < 0x7F {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}
	fmt.Fprintf(&sb, "%04X\n", len(data))

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}

func writeSysVar(sb *strings.Builder, name string, address uint16, profile *arch.Profile) {
	offset, ok := profile.Offset(address)
	if !ok {
		fmt.Fprintf(sb, "  %-6s 0x%04X  below load address\n", name, address)
		return
	}
	fmt.Fprintf(sb, "  %-6s 0x%04X  offset %d\n", name, address, offset)
}

func writeHexDump(sb *strings.Builder, data []byte) {
	for row := 0; row < len(data); row += bytesPerRow {
		end := min(row+bytesPerRow, len(data))
		fmt.Fprintf(sb, "%04X ", row)
		for _, b := range data[row:end] {
			fmt.Fprintf(sb, " %02X", b)
		}
		sb.WriteByte('\n')
	}
}
