package register

import (
	"errors"
	"fmt"
)

// StackDepth is the number of nested subroutine calls supported.
const StackDepth = 16

var (
	// ErrStackOverflow is returned when calling a subroutine with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack holds the return addresses of active subroutine calls.
// The register file stack pointer indexes the next free entry.
type Stack struct {
	entries [StackDepth]uint16
}

// Call pushes the address of the instruction following the current one
// and jumps to target. On overflow neither the stack nor the registers change.
func (s *Stack) Call(f *File, target uint16) error {
	if int(f.SP) >= StackDepth {
		return fmt.Errorf("%w: calling $%03X at depth %d", ErrStackOverflow, target, f.SP)
	}
	s.entries[f.SP] = f.PC + InstructionSize
	f.SP++
	f.PC = target
	return nil
}

// Return pops the most recent return address into the program counter.
// On underflow neither the stack nor the registers change.
func (s *Stack) Return(f *File) error {
	if f.SP == 0 {
		return ErrStackUnderflow
	}
	if int(f.SP) > StackDepth {
		return fmt.Errorf("%w: stack pointer %d exceeds depth", ErrStackOverflow, f.SP)
	}
	f.SP--
	f.PC = s.entries[f.SP]
	return nil
}

// Entries returns a copy of the stack contents.
func (s *Stack) Entries() [StackDepth]uint16 {
	return s.entries
}

// Reset clears all entries.
func (s *Stack) Reset() {
	s.entries = [StackDepth]uint16{}
}
