package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/register"
)

// pcKind is the program counter update requested by an executed instruction.
type pcKind int

const (
	pcNext   pcKind = iota // advance by one instruction
	pcSkip                 // skip the following instruction
	pcJump                 // set to an absolute address
	pcRepeat               // keep, the instruction runs again next cycle
)

type pcAction struct {
	kind    pcKind
	address uint16
}

var (
	next   = pcAction{kind: pcNext}
	skip   = pcAction{kind: pcSkip}
	repeat = pcAction{kind: pcRepeat}
)

func jump(address uint16) pcAction {
	return pcAction{kind: pcJump, address: address}
}

// skipIf returns skip when cond is true and next otherwise.
func skipIf(cond bool) pcAction {
	if cond {
		return skip
	}
	return next
}

func (c *CPU) apply(action pcAction) {
	switch action.kind {
	case pcNext:
		c.registers.PC += register.InstructionSize
	case pcSkip:
		c.registers.PC += 2 * register.InstructionSize
	case pcJump:
		c.registers.PC = action.address
	case pcRepeat:
	}
}

// execute applies the semantics of one decoded instruction.
// Flag results are written to VF after the arithmetic result, so that VF
// holds the flag when it is also the destination register.
func (c *CPU) execute(ins instruction.Instruction) (pcAction, error) {
	r := &c.registers
	v := &r.V
	x, y := ins.X, ins.Y

	switch ins.Op {
	case instruction.Cls:
		c.frame.Clear()
		c.redraw = true
		return next, nil

	case instruction.Ret:
		if err := c.stack.Return(r); err != nil {
			return next, err
		}
		return jump(r.PC), nil

	case instruction.Jp:
		return jump(ins.NNN), nil

	case instruction.Call:
		if err := c.stack.Call(r, ins.NNN); err != nil {
			return next, err
		}
		return jump(r.PC), nil

	case instruction.SeImm:
		return skipIf(v[x] == ins.NN), nil
	case instruction.SneImm:
		return skipIf(v[x] != ins.NN), nil
	case instruction.SeReg:
		return skipIf(v[x] == v[y]), nil
	case instruction.SneReg:
		return skipIf(v[x] != v[y]), nil

	case instruction.LdImm:
		v[x] = ins.NN
	case instruction.AddImm:
		v[x] += ins.NN

	case instruction.LdReg:
		v[x] = v[y]
	case instruction.Or:
		v[x] |= v[y]
	case instruction.And:
		v[x] &= v[y]
	case instruction.Xor:
		v[x] ^= v[y]

	case instruction.AddReg:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = uint8(sum)
		r.SetFlag(sum > 0xFF)

	case instruction.Sub:
		noBorrow := v[x] >= v[y]
		v[x] -= v[y]
		r.SetFlag(noBorrow)

	case instruction.Subn:
		noBorrow := v[y] >= v[x]
		v[x] = v[y] - v[x]
		r.SetFlag(noBorrow)

	case instruction.Shr:
		src := c.shiftSource(ins)
		v[x] = src >> 1
		r.SetFlag(src&0x01 != 0)

	case instruction.Shl:
		src := c.shiftSource(ins)
		v[x] = src << 1
		r.SetFlag(src&0x80 != 0)

	case instruction.LdI:
		r.I = ins.NNN

	case instruction.JpV0:
		return jump(ins.NNN + uint16(v[0])), nil

	case instruction.Rnd:
		v[x] = uint8(c.rng.Uint32()) & ins.NN

	case instruction.Drw:
		return c.draw(ins)

	case instruction.Skp:
		return skipIf(c.keys.Get(v[x]&0x0F) == keypad.Pressed), nil
	case instruction.Sknp:
		return skipIf(c.keys.Get(v[x]&0x0F) != keypad.Pressed), nil

	case instruction.LdVxK:
		key, ok := c.keys.FindReleased()
		if !ok {
			return repeat, nil
		}
		v[x] = key

	case instruction.LdVxDt:
		v[x] = r.DT
	case instruction.LdDtVx:
		r.DT = v[x]
		c.delayTimer.Restart()
	case instruction.LdStVx:
		r.ST = v[x]
		c.soundTimer.Restart()

	case instruction.AddI:
		r.I += uint16(v[x])

	case instruction.LdF:
		r.I = memory.FontStart + uint16(v[x]&0x0F)*GlyphHeight

	case instruction.Bcd:
		value := v[x]
		digits := []byte{value / 100, value / 10 % 10, value % 10}
		if err := c.memory.Write(int(r.I), digits); err != nil {
			return next, err
		}

	case instruction.LdMemV:
		if err := c.memory.Write(int(r.I), v[:int(x)+1]); err != nil {
			return next, err
		}
		c.advanceIndex(x)

	case instruction.LdVMem:
		b, err := c.memory.Read(int(r.I), int(x)+1)
		if err != nil {
			return next, err
		}
		copy(v[:], b)
		c.advanceIndex(x)

	default:
		return next, fmt.Errorf("%w: unhandled op %s", instruction.ErrInvalidOpcode, ins.Op)
	}

	return next, nil
}

// shiftSource returns the value that 8XY6 and 8XYE shift.
func (c *CPU) shiftSource(ins instruction.Instruction) uint8 {
	if c.quirks.ShiftSource == ShiftInPlace {
		return c.registers.V[ins.X]
	}
	return c.registers.V[ins.Y]
}

func (c *CPU) advanceIndex(x uint8) {
	if c.quirks.IncrementIndex {
		c.registers.I += uint16(x) + 1
	}
}

func (c *CPU) draw(ins instruction.Instruction) (pcAction, error) {
	sprite, err := c.memory.Read(int(c.registers.I), int(ins.N))
	if err != nil {
		return next, err
	}

	px := int(c.registers.V[ins.X])
	py := int(c.registers.V[ins.Y])
	collided := c.frame.Draw(sprite, px, py)
	c.registers.SetFlag(collided)
	c.redraw = true
	return next, nil
}
