package cpu

import (
	"errors"
	"fmt"
)

// ErrProgramTooLarge is returned when a program does not fit into program space.
var ErrProgramTooLarge = errors.New("program too large")

// Fault describes an instruction cycle that could not be completed.
// It wraps the cause, which is one of instruction.ErrInvalidOpcode,
// memory.ErrOutOfBounds, register.ErrStackOverflow or register.ErrStackUnderflow.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at $%04X (opcode $%04X): %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
