// Package disasm formats decoded CHIP-8 instructions as assembly text and
// produces listings of program images.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns the assembly notation of an instruction, for example
// "LD V1, $0A".
func Format(ins instruction.Instruction) string {
	name := strings.ToUpper(Mnemonic(ins.Op))
	if params := formatParams(ins); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// Mnemonic returns the assembler mnemonic of an instruction
// variant as defined by the retrogolib CHIP-8 instruction set.
func Mnemonic(op instruction.Op) string {
	ins, ok := instructions[op]
	if !ok {
		return ""
	}
	return ins.Name
}

var instructions = map[instruction.Op]*chip8.Instruction{
	instruction.Cls:    chip8.Cls,
	instruction.Ret:    chip8.Ret,
	instruction.Jp:     chip8.Jp,
	instruction.JpV0:   chip8.Jp,
	instruction.Call:   chip8.Call,
	instruction.SeImm:  chip8.Se,
	instruction.SeReg:  chip8.Se,
	instruction.SneImm: chip8.Sne,
	instruction.SneReg: chip8.Sne,
	instruction.LdImm:  chip8.Ld,
	instruction.LdReg:  chip8.Ld,
	instruction.LdI:    chip8.Ld,
	instruction.LdVxDt: chip8.Ld,
	instruction.LdVxK:  chip8.Ld,
	instruction.LdDtVx: chip8.Ld,
	instruction.LdStVx: chip8.Ld,
	instruction.LdF:    chip8.Ld,
	instruction.Bcd:    chip8.Ld,
	instruction.LdMemV: chip8.Ld,
	instruction.LdVMem: chip8.Ld,
	instruction.AddImm: chip8.Add,
	instruction.AddReg: chip8.Add,
	instruction.AddI:   chip8.Add,
	instruction.Or:     chip8.Or,
	instruction.And:    chip8.And,
	instruction.Xor:    chip8.Xor,
	instruction.Sub:    chip8.Sub,
	instruction.Subn:   chip8.Subn,
	instruction.Shr:    chip8.Shr,
	instruction.Shl:    chip8.Shl,
	instruction.Rnd:    chip8.Rnd,
	instruction.Drw:    chip8.Drw,
	instruction.Skp:    chip8.Skp,
	instruction.Sknp:   chip8.Sknp,
}

// formatParams formats the operands of an instruction.
func formatParams(ins instruction.Instruction) string {
	switch ins.Op {
	case instruction.Cls, instruction.Ret:
		return "" // No parameters
	case instruction.Jp, instruction.Call:
		return fmt.Sprintf("$%03X", ins.NNN)
	case instruction.JpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case instruction.SeImm, instruction.SneImm, instruction.LdImm, instruction.AddImm, instruction.Rnd:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case instruction.SeReg, instruction.SneReg, instruction.LdReg, instruction.AddReg,
		instruction.Or, instruction.And, instruction.Xor, instruction.Sub, instruction.Subn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case instruction.Shr, instruction.Shl:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case instruction.LdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case instruction.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case instruction.Skp, instruction.Sknp:
		return fmt.Sprintf("V%X", ins.X)
	case instruction.LdVxDt:
		return fmt.Sprintf("V%X, DT", ins.X)
	case instruction.LdVxK:
		return fmt.Sprintf("V%X, K", ins.X)
	case instruction.LdDtVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case instruction.LdStVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case instruction.AddI:
		return fmt.Sprintf("I, V%X", ins.X)
	case instruction.LdF:
		return fmt.Sprintf("F, V%X", ins.X)
	case instruction.Bcd:
		return fmt.Sprintf("B, V%X", ins.X)
	case instruction.LdMemV:
		return fmt.Sprintf("[I], V%X", ins.X)
	case instruction.LdVMem:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}

// Lookup finds the retrogolib opcode definition matching a 16-bit word.
func Lookup(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// Listing writes one line per 2-byte word of program, addressed from base.
// Words that do not decode are written as data bytes.
func Listing(w io.Writer, program []byte, base uint16) error {
	for offset := 0; offset < len(program); offset += 2 {
		address := base + uint16(offset)

		if offset+1 >= len(program) {
			if _, err := fmt.Fprintf(w, "$%04X  %02X       .byte $%02X\n", address, program[offset], program[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			break
		}

		word := uint16(program[offset])<<8 | uint16(program[offset+1])
		var code string
		if ins, err := instruction.Decode(word); err == nil {
			code = Format(ins)
		} else {
			code = fmt.Sprintf(".word $%04X", word)
		}

		if _, err := fmt.Fprintf(w, "$%04X  %02X %02X    %s\n", address, program[offset], program[offset+1], code); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
