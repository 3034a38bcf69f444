// Package writer implements the listing file output.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/zxdetok/internal/program"
)

// Writer writes a decoded program as text listing.
type Writer struct {
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	Variables bool // append the variables area after the program lines
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write outputs all program lines followed by the variables.
func (w *Writer) Write(prg *program.Program) error {
	for _, line := range prg.Lines {
		if err := w.writeLine(line); err != nil {
			return err
		}
	}

	if !w.options.Variables || len(prg.Variables.Records) == 0 {
		return nil
	}
	return w.writeVariables(prg)
}

func (w *Writer) writeLine(line program.Line) error {
	text := strings.TrimSpace(line.Text)
	if _, err := fmt.Fprintf(w.writer, "%d %s\n", line.Number, text); err != nil {
		return fmt.Errorf("writing line %d: %w", line.Number, err)
	}
	return nil
}

// writeVariables separates the variables from the program with an empty line.
func (w *Writer) writeVariables(prg *program.Program) error {
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}

	for _, record := range prg.Variables.Records {
		for _, line := range record.Lines() {
			if _, err := fmt.Fprintln(w.writer, line); err != nil {
				return fmt.Errorf("writing variable %s: %w", record.Name(), err)
			}
		}
	}
	return nil
}
