package instruction

import (
	"errors"
	"fmt"
)

// ErrInvalidOpcode is returned for opcodes that match no known instruction.
var ErrInvalidOpcode = errors.New("invalid opcode")

// Decode returns the instruction variant of the opcode.
// The top nibble selects the instruction family, families with sub-opcodes
// are resolved by the low nibble or the low byte.
func Decode(opcode uint16) (Instruction, error) {
	x := ExtractRegisterX(opcode)
	y := ExtractRegisterY(opcode)
	n := uint8(opcode & 0x000F)
	nn := uint8(opcode & 0x00FF)
	nnn := opcode & 0x0FFF

	ins := Instruction{Opcode: opcode}

	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			ins.Op = Cls
		case 0x00EE:
			ins.Op = Ret
		}

	case 0x1:
		ins.Op, ins.NNN = Jp, nnn
	case 0x2:
		ins.Op, ins.NNN = Call, nnn
	case 0x3:
		ins.Op, ins.X, ins.NN = SeImm, x, nn
	case 0x4:
		ins.Op, ins.X, ins.NN = SneImm, x, nn

	case 0x5:
		if n == 0 {
			ins.Op, ins.X, ins.Y = SeReg, x, y
		}

	case 0x6:
		ins.Op, ins.X, ins.NN = LdImm, x, nn
	case 0x7:
		ins.Op, ins.X, ins.NN = AddImm, x, nn

	case 0x8:
		ins.Op = aluOp(n)
		ins.X, ins.Y = x, y

	case 0x9:
		if n == 0 {
			ins.Op, ins.X, ins.Y = SneReg, x, y
		}

	case 0xA:
		ins.Op, ins.NNN = LdI, nnn
	case 0xB:
		ins.Op, ins.NNN = JpV0, nnn
	case 0xC:
		ins.Op, ins.X, ins.NN = Rnd, x, nn
	case 0xD:
		ins.Op, ins.X, ins.Y, ins.N = Drw, x, y, n

	case 0xE:
		switch nn {
		case 0x9E:
			ins.Op = Skp
		case 0xA1:
			ins.Op = Sknp
		}
		ins.X = x

	case 0xF:
		ins.Op = miscOp(nn)
		ins.X = x
	}

	if ins.Op == Invalid {
		return Instruction{Opcode: opcode}, fmt.Errorf("%w: $%04X", ErrInvalidOpcode, opcode)
	}
	return ins, nil
}

// aluOp resolves the 8XYN register arithmetic family.
func aluOp(n uint8) Op {
	switch n {
	case 0x0:
		return LdReg
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddReg
	case 0x5:
		return Sub
	case 0x6:
		return Shr
	case 0x7:
		return Subn
	case 0xE:
		return Shl
	default:
		return Invalid
	}
}

// miscOp resolves the FXNN timer, keypad and memory family.
func miscOp(nn uint8) Op {
	switch nn {
	case 0x07:
		return LdVxDt
	case 0x0A:
		return LdVxK
	case 0x15:
		return LdDtVx
	case 0x18:
		return LdStVx
	case 0x1E:
		return AddI
	case 0x29:
		return LdF
	case 0x33:
		return Bcd
	case 0x55:
		return LdMemV
	case 0x65:
		return LdVMem
	default:
		return Invalid
	}
}

// ExtractRegisterX extracts the X register nibble from an opcode.
func ExtractRegisterX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// ExtractRegisterY extracts the Y register nibble from an opcode.
func ExtractRegisterY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}
