// Package memory provides the bounds-checked byte store of the virtual machine.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout.
//
//	0x000-0x04F: built-in font glyphs
//	0x050-0x1FF: reserved for the interpreter
//	0x200-0xFFF: program space
const (
	// Size is the total addressable memory in bytes.
	Size = 4096

	// ProgramStart is the address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// FontStart is the address of the first font glyph.
	FontStart = 0x000

	// MaxProgramSize is the largest program that fits into program space.
	MaxProgramSize = Size - ProgramStart
)

// ErrOutOfBounds is returned for any access whose range exceeds the memory size.
var ErrOutOfBounds = errors.New("memory access out of bounds")

// Memory is a flat fixed-size byte store.
type Memory struct {
	data [Size]byte
}

// New returns a zeroed memory.
func New() *Memory {
	return &Memory{}
}

// Read returns a view of length bytes starting at offset.
// The returned slice aliases the store and must not be retained across writes.
func (m *Memory) Read(offset, length int) ([]byte, error) {
	if err := checkRange(offset, length); err != nil {
		return nil, err
	}
	return m.data[offset : offset+length], nil
}

// ReadWord reads the big-endian 16-bit word at offset.
func (m *Memory) ReadWord(offset int) (uint16, error) {
	b, err := m.Read(offset, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Write copies data into the store starting at offset.
func (m *Memory) Write(offset int, data []byte) error {
	if err := checkRange(offset, len(data)); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

// Clear zeroes the whole store.
func (m *Memory) Clear() {
	m.data = [Size]byte{}
}

func checkRange(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > Size {
		return fmt.Errorf("%w: offset $%04X length %d", ErrOutOfBounds, offset, length)
	}
	return nil
}
