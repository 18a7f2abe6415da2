// Package instruction decodes 16-bit CHIP-8 opcodes into instruction variants.
//
// All instructions are 2 bytes, stored big-endian. The operands are taken
// from fixed bit fields of the opcode:
//
//	NNN: lowest 12 bits, an address
//	NN:  lowest 8 bits, an immediate byte
//	N:   lowest 4 bits, a nibble
//	X:   bits 8-11, a register index
//	Y:   bits 4-7, a register index
package instruction

import "fmt"

// Op identifies an instruction variant.
type Op uint8

// Instruction variants, named after the opcode pattern in the comment.
const (
	Invalid Op = iota
	Cls        // 00E0
	Ret        // 00EE
	Jp         // 1NNN
	Call       // 2NNN
	SeImm      // 3XNN
	SneImm     // 4XNN
	SeReg      // 5XY0
	LdImm      // 6XNN
	AddImm     // 7XNN
	LdReg      // 8XY0
	Or         // 8XY1
	And        // 8XY2
	Xor        // 8XY3
	AddReg     // 8XY4
	Sub        // 8XY5
	Shr        // 8XY6
	Subn       // 8XY7
	Shl        // 8XYE
	SneReg     // 9XY0
	LdI        // ANNN
	JpV0       // BNNN
	Rnd        // CXNN
	Drw        // DXYN
	Skp        // EX9E
	Sknp       // EXA1
	LdVxDt     // FX07
	LdVxK      // FX0A
	LdDtVx     // FX15
	LdStVx     // FX18
	AddI       // FX1E
	LdF        // FX29
	Bcd        // FX33
	LdMemV     // FX55
	LdVMem     // FX65
)

var opNames = [...]string{
	Invalid: "Invalid",
	Cls:     "Cls",
	Ret:     "Ret",
	Jp:      "Jp",
	Call:    "Call",
	SeImm:   "SeImm",
	SneImm:  "SneImm",
	SeReg:   "SeReg",
	LdImm:   "LdImm",
	AddImm:  "AddImm",
	LdReg:   "LdReg",
	Or:      "Or",
	And:     "And",
	Xor:     "Xor",
	AddReg:  "AddReg",
	Sub:     "Sub",
	Shr:     "Shr",
	Subn:    "Subn",
	Shl:     "Shl",
	SneReg:  "SneReg",
	LdI:     "LdI",
	JpV0:    "JpV0",
	Rnd:     "Rnd",
	Drw:     "Drw",
	Skp:     "Skp",
	Sknp:    "Sknp",
	LdVxDt:  "LdVxDt",
	LdVxK:   "LdVxK",
	LdDtVx:  "LdDtVx",
	LdStVx:  "LdStVx",
	AddI:    "AddI",
	LdF:     "LdF",
	Bcd:     "Bcd",
	LdMemV:  "LdMemV",
	LdVMem:  "LdVMem",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Instruction is a decoded opcode with its operands.
// Only the operands used by the variant are set.
type Instruction struct {
	Op     Op
	Opcode uint16

	X   uint8  // register index
	Y   uint8  // register index
	N   uint8  // nibble
	NN  uint8  // immediate byte
	NNN uint16 // address
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s($%04X)", i.Op, i.Opcode)
}
