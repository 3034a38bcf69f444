// Package program represents a decoded BASIC program.
package program

import (
	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/vars"
)

// Line is a decoded program line.
type Line struct {
	Number uint16
	Text   string
}

// Program defines a decoded program with its lines and variables.
type Program struct {
	System arch.System
	Header Header
	Size   int // size of the decoded image in bytes

	Lines     []Line
	Variables vars.Area

	// VariablesErr is set when the variables area could not be fully decoded.
	// The records that were decoded before the error are kept.
	VariablesErr error
}

// New creates a new program for the given header.
func New(system arch.System, header Header, size int) *Program {
	return &Program{
		System: system,
		Header: header,
		Size:   size,
	}
}

// AddLine appends a decoded line.
func (p *Program) AddLine(number uint16, text string) {
	p.Lines = append(p.Lines, Line{Number: number, Text: text})
}
