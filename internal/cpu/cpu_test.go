package cpu

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/register"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestCPU(t *testing.T, program []byte, opts ...Option) *CPU {
	t.Helper()

	opts = append([]Option{WithLogger(log.NewTestLogger(t)), WithTrace(true)}, opts...)
	c, err := New(opts...)
	assert.NoError(t, err)
	assert.NoError(t, c.Load(program))
	return c
}

func steps(t *testing.T, c *CPU, n int) {
	t.Helper()
	for range n {
		assert.NoError(t, c.Step())
	}
}

func TestNew(t *testing.T) {
	c, err := New()
	assert.NoError(t, err)

	regs := c.Registers()
	assert.Equal(t, uint16(memory.ProgramStart), regs.PC)
	assert.Equal(t, uint8(0), regs.SP)
	assert.Equal(t, uint32(clock.DefaultRate), c.Speed())
	assert.Equal(t, DefaultQuirks(), c.Quirks())

	glyphs, err := c.ReadMemory(memory.FontStart, len(font))
	assert.NoError(t, err)
	assert.Equal(t, font[:], glyphs)
}

func TestNew_InvalidSpeed(t *testing.T) {
	_, err := New(WithSpeed(0))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, clock.ErrInvalidRate))
}

func TestLoad(t *testing.T) {
	c, err := New()
	assert.NoError(t, err)

	assert.NoError(t, c.Load([]byte{0x60, 0x0A}))
	b, err := c.ReadMemory(memory.ProgramStart, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x0A}, b)

	assert.NoError(t, c.Load(make([]byte, memory.MaxProgramSize)))

	err = c.Load(make([]byte, memory.MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
}

func TestStep_LoadAdd(t *testing.T) {
	c := newTestCPU(t, []byte{0x60, 0x0A, 0x70, 0x05})
	steps(t, c, 2)

	regs := c.Registers()
	assert.Equal(t, uint8(0x0F), regs.V[0])
	assert.Equal(t, uint16(0x204), regs.PC)
}

func TestStep_AddImmediateWraps(t *testing.T) {
	c := newTestCPU(t, []byte{0x60, 0xFF, 0x70, 0x02})
	steps(t, c, 2)

	regs := c.Registers()
	assert.Equal(t, uint8(0x01), regs.V[0])
	assert.Equal(t, uint8(0), regs.V[register.Flag])
}

func TestStep_InvalidOpcode(t *testing.T) {
	c := newTestCPU(t, []byte{0x00, 0x00})

	err := c.Step()
	assert.Error(t, err)

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(memory.ProgramStart), fault.PC)
	assert.Equal(t, uint16(0x0000), fault.Opcode)
	assert.True(t, errors.Is(err, instruction.ErrInvalidOpcode))
	assert.Equal(t, uint16(memory.ProgramStart), c.Registers().PC)
}

func TestStep_StackOverflow(t *testing.T) {
	c := newTestCPU(t, []byte{0x22, 0x00})
	steps(t, c, register.StackDepth)

	err := c.Step()
	assert.True(t, errors.Is(err, register.ErrStackOverflow))

	regs := c.Registers()
	assert.Equal(t, uint8(register.StackDepth), regs.SP)
	assert.Equal(t, uint16(0x200), regs.PC)
}

func TestStep_StackUnderflow(t *testing.T) {
	c := newTestCPU(t, []byte{0x00, 0xEE})

	err := c.Step()
	assert.True(t, errors.Is(err, register.ErrStackUnderflow))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x00EE), fault.Opcode)
}

func TestStep_MemoryOutOfBounds(t *testing.T) {
	// LD I, $FFF; LD [I], V1
	c := newTestCPU(t, []byte{0xAF, 0xFF, 0xF1, 0x55})
	steps(t, c, 1)

	err := c.Step()
	assert.True(t, errors.Is(err, memory.ErrOutOfBounds))
	assert.Equal(t, uint16(0x202), c.Registers().PC)
}

func TestStep_FetchOutOfBounds(t *testing.T) {
	c := newTestCPU(t, []byte{0x1F, 0xFF})
	steps(t, c, 1)

	err := c.Step()
	assert.True(t, errors.Is(err, memory.ErrOutOfBounds))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0xFFF), fault.PC)
}

func TestStep_DrawTwice(t *testing.T) {
	program := []byte{
		0xA2, 0x08, // LD I, $208
		0xD0, 0x01, // DRW V0, V0, 1
		0xD0, 0x01, // DRW V0, V0, 1
		0x12, 0x06, // JP $206
		0xFF,
	}
	c := newTestCPU(t, program)
	assert.True(t, c.Redraw())
	assert.False(t, c.Redraw())

	steps(t, c, 2)
	assert.Equal(t, uint8(0), c.Registers().V[register.Flag])
	assert.True(t, c.Redraw())

	frame := c.Frame()
	for x := range 8 {
		assert.True(t, frame.Pixel(x, 0))
	}
	assert.False(t, frame.Pixel(8, 0))

	steps(t, c, 1)
	assert.Equal(t, uint8(1), c.Registers().V[register.Flag])
	assert.Equal(t, display.Frame{}, c.Frame())
}

func TestStep_ClearScreen(t *testing.T) {
	program := []byte{
		0xF0, 0x29, // LD F, V0
		0xD0, 0x05, // DRW V0, V0, 5
		0x00, 0xE0, // CLS
	}
	c := newTestCPU(t, program)
	steps(t, c, 2)
	frame := c.Frame()
	assert.True(t, frame.Pixel(0, 0))

	_ = c.Redraw()
	steps(t, c, 1)
	assert.Equal(t, display.Frame{}, c.Frame())
	assert.True(t, c.Redraw())
}

func TestStep_KeyWait(t *testing.T) {
	c := newTestCPU(t, []byte{0xF3, 0x0A})

	steps(t, c, 1)
	assert.Equal(t, uint16(0x200), c.Registers().PC)

	assert.NoError(t, c.HandleKey(5, keypad.Pressed))
	steps(t, c, 1)
	assert.Equal(t, uint16(0x200), c.Registers().PC)
	assert.Equal(t, keypad.Pressed, c.Key(5))

	assert.NoError(t, c.HandleKey(5, keypad.Released))
	steps(t, c, 1)

	regs := c.Registers()
	assert.Equal(t, uint8(5), regs.V[3])
	assert.Equal(t, uint16(0x202), regs.PC)
	assert.Equal(t, keypad.Idle, c.Key(5))
}

func TestHandleKey_Invalid(t *testing.T) {
	c := newTestCPU(t, nil)
	err := c.HandleKey(16, keypad.Pressed)
	assert.True(t, errors.Is(err, keypad.ErrInvalidKey))
}

func TestReleasedEdgeLastsOneCycle(t *testing.T) {
	c := newTestCPU(t, []byte{0x60, 0x00, 0x60, 0x00})

	assert.NoError(t, c.HandleKey(0xA, keypad.Released))
	steps(t, c, 1)
	assert.Equal(t, keypad.Idle, c.Key(0xA))
}

func TestTimers_DecayOverOneSecond(t *testing.T) {
	program := []byte{
		0xF0, 0x15, // LD DT, V0
		0xF1, 0x18, // LD ST, V1
		0x12, 0x04, // JP $204
	}

	tests := []struct {
		name  string
		value uint8
		after uint8
	}{
		{"above 60", 200, 140},
		{"exactly 60", 60, 0},
		{"below 60", 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, program, WithTrace(false))
			regs := c.Registers()
			regs.V[0] = tt.value
			regs.V[1] = tt.value
			c.SetRegisters(regs)

			steps(t, c, 1)
			assert.Equal(t, tt.value, c.Registers().DT)
			steps(t, c, 1)
			assert.True(t, c.Sound())

			// both timers were set within the last two cycles, the
			// remaining accumulated units are below one decrement
			cycles, err := c.Update(time.Second)
			assert.NoError(t, err)
			assert.Equal(t, clock.DefaultRate, cycles)

			regs = c.Registers()
			assert.Equal(t, tt.after, regs.DT)
			assert.Equal(t, tt.after, regs.ST)
			assert.Equal(t, tt.after > 0, c.Sound())
		})
	}
}

func TestUpdate_CarriesPartialCycles(t *testing.T) {
	c := newTestCPU(t, []byte{0x12, 0x00}, WithTrace(false), WithSpeed(1000))

	cycles, err := c.Update(1500 * time.Microsecond)
	assert.NoError(t, err)
	assert.Equal(t, 1, cycles)

	cycles, err = c.Update(500 * time.Microsecond)
	assert.NoError(t, err)
	assert.Equal(t, 1, cycles)
}

func TestUpdate_StopsAtFault(t *testing.T) {
	c := newTestCPU(t, []byte{0x60, 0x01, 0x00, 0x00})

	cycles, err := c.Update(time.Second)
	assert.Error(t, err)
	assert.Equal(t, 1, cycles)
	assert.Equal(t, uint16(0x202), c.Registers().PC)
}

func TestSetSpeed(t *testing.T) {
	c := newTestCPU(t, []byte{0x12, 0x00}, WithTrace(false))

	err := c.SetSpeed(0)
	assert.True(t, errors.Is(err, clock.ErrInvalidRate))
	assert.Equal(t, uint32(clock.DefaultRate), c.Speed())

	assert.NoError(t, c.SetSpeed(1000))
	assert.Equal(t, uint32(1000), c.Speed())

	cycles, err := c.Update(time.Second)
	assert.NoError(t, err)
	assert.Equal(t, 1000, cycles)
}

func TestSetSpeed_TimersKeepRealTime(t *testing.T) {
	program := []byte{
		0xF0, 0x15, // LD DT, V0
		0x12, 0x02, // JP $202
	}
	c := newTestCPU(t, program, WithTrace(false))
	regs := c.Registers()
	regs.V[0] = 100
	c.SetRegisters(regs)
	steps(t, c, 1)

	assert.NoError(t, c.SetSpeed(1200))
	_, err := c.Update(time.Second)
	assert.NoError(t, err)
	assert.Equal(t, uint8(40), c.Registers().DT)
}

func TestReset(t *testing.T) {
	c := newTestCPU(t, []byte{0x60, 0x0A, 0xA2, 0x00, 0xD0, 0x05, 0x22, 0x00})
	steps(t, c, 4)
	assert.NoError(t, c.HandleKey(1, keypad.Pressed))

	c.Reset()

	regs := c.Registers()
	assert.Equal(t, register.New(), regs)
	assert.Equal(t, [register.StackDepth]uint16{}, c.Stack())
	assert.Equal(t, display.Frame{}, c.Frame())
	assert.Equal(t, keypad.Idle, c.Key(1))

	program, err := c.ReadMemory(memory.ProgramStart, 8)
	assert.NoError(t, err)
	assert.Equal(t, make([]byte, 8), program)

	glyphs, err := c.ReadMemory(memory.FontStart, len(font))
	assert.NoError(t, err)
	assert.Equal(t, font[:], glyphs)
}

func TestReadMemory_ReturnsCopy(t *testing.T) {
	c := newTestCPU(t, []byte{0x60, 0x0A})

	b, err := c.ReadMemory(memory.ProgramStart, 2)
	assert.NoError(t, err)
	b[0] = 0

	b, err = c.ReadMemory(memory.ProgramStart, 2)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x60), b[0])

	_, err = c.ReadMemory(memory.Size-1, 2)
	assert.True(t, errors.Is(err, memory.ErrOutOfBounds))
}

func TestSetQuirks(t *testing.T) {
	c := newTestCPU(t, nil)
	q, err := QuirksForProfile("xochip")
	assert.NoError(t, err)

	c.SetQuirks(q)
	assert.Equal(t, q, c.Quirks())
}

func TestFrameRGBA(t *testing.T) {
	c := newTestCPU(t, []byte{0xD0, 0x01})
	steps(t, c, 1)

	dst := make([]byte, display.PixelCount*4)
	c.FrameRGBA(dst, color.RGBA{R: 0xFF, A: 0xFF}, color.RGBA{A: 0xFF})

	// I points at the font glyph for 0, its first row is $F0
	assert.Equal(t, byte(0xFF), dst[0])
	assert.Equal(t, byte(0x00), dst[4*4])
}
