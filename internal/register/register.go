// Package register provides the register file and the call stack of the virtual machine.
package register

import "github.com/retroenv/retrochip8/internal/memory"

const (
	// Count is the number of general purpose registers V0-VF.
	Count = 16

	// Flag is the index of VF, the carry, borrow and collision output.
	Flag = 0xF

	// InstructionSize is the width of an instruction in bytes.
	InstructionSize = 2
)

// File contains all registers of the virtual machine.
type File struct {
	V  [Count]uint8 // general purpose registers
	I  uint16       // address register
	PC uint16       // program counter
	SP uint8        // stack pointer
	DT uint8        // delay timer
	ST uint8        // sound timer
}

// New returns a register file in its power-on state.
func New() File {
	return File{
		PC: memory.ProgramStart,
	}
}

// Reset restores the power-on state.
func (f *File) Reset() {
	*f = New()
}

// SetFlag writes VF as 1 when set is true and 0 otherwise.
func (f *File) SetFlag(set bool) {
	if set {
		f.V[Flag] = 1
	} else {
		f.V[Flag] = 0
	}
}
