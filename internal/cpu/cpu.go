// Package cpu implements the CHIP-8 virtual machine: instruction cycle,
// executor, timing and the ownership of memory, registers, stack, frame
// buffer and keypad.
//
// A CPU is not safe for concurrent use. All methods run to completion on
// the caller's goroutine; the blocking key wait instruction is realized by
// not advancing the program counter, so control returns to the host after
// every cycle.
package cpu

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/register"
	"github.com/retroenv/retrogolib/log"
)

// CPU is a CHIP-8 virtual machine instance.
type CPU struct {
	logger *log.Logger
	trace  bool
	quirks Quirks
	rng    *rand.Rand

	memory    *memory.Memory
	registers register.File
	stack     register.Stack
	frame     *display.FrameBuffer
	keys      keypad.Keypad
	clock     *clock.Clock

	delayTimer clock.Timer
	soundTimer clock.Timer

	redraw bool
}

// New returns a virtual machine with the font loaded and registers in
// their power-on state.
func New(opts ...Option) (*CPU, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	clk, err := clock.New(cfg.speed)
	if err != nil {
		return nil, fmt.Errorf("creating clock: %w", err)
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	}

	c := &CPU{
		logger:    cfg.logger,
		trace:     cfg.trace,
		quirks:    cfg.quirks,
		rng:       rng,
		memory:    memory.New(),
		registers: register.New(),
		frame:     display.New(cfg.quirks.SpriteEdge),
		clock:     clk,
		redraw:    true,
	}
	c.loadFont()
	return c, nil
}

// Load copies the program into memory at the program start address.
func (c *CPU) Load(program []byte) error {
	if len(program) > memory.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes (max: %d)", ErrProgramTooLarge, len(program), memory.MaxProgramSize)
	}
	if err := c.memory.Write(memory.ProgramStart, program); err != nil {
		return fmt.Errorf("writing program: %w", err)
	}

	c.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("address", memory.ProgramStart))
	return nil
}

// Reset restores the power-on state: memory is cleared and the font
// reloaded, registers, stack, timers, keypad and frame are zeroed. Any
// loaded program has to be loaded again. The random source is kept.
func (c *CPU) Reset() {
	c.memory.Clear()
	c.loadFont()
	c.registers.Reset()
	c.stack.Reset()
	c.frame.Clear()
	c.keys.Reset()
	c.clock.Reset()
	c.delayTimer.Restart()
	c.soundTimer.Restart()
	c.redraw = true
}

// Step executes exactly one instruction cycle: decode, execute, apply the
// program counter action, advance the timers and clear released keys.
// A returned error is a *Fault, the state of the machine is then unchanged
// by the failed instruction except for effects it completed before failing.
func (c *CPU) Step() error {
	pc := c.registers.PC
	opcode, err := c.memory.ReadWord(int(pc))
	if err != nil {
		return &Fault{PC: pc, Err: err}
	}

	ins, err := instruction.Decode(opcode)
	if err != nil {
		return &Fault{PC: pc, Opcode: opcode, Err: err}
	}

	if c.trace {
		c.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.String("instruction", disasm.Format(ins)))
	}

	action, err := c.execute(ins)
	if err != nil {
		return &Fault{PC: pc, Opcode: opcode, Err: err}
	}
	c.apply(action)

	rate := c.clock.Rate()
	c.registers.DT = c.delayTimer.Tick(c.registers.DT, rate)
	c.registers.ST = c.soundTimer.Tick(c.registers.ST, rate)

	c.keys.ResetReleased()
	return nil
}

// Update advances the machine by the elapsed wall-clock time, running as
// many cycles as became due at the configured speed. Partial cycles carry
// over to the next call. It stops at the first fault and returns the number
// of completed cycles.
func (c *CPU) Update(elapsed time.Duration) (int, error) {
	cycles := c.clock.Cycles(elapsed)
	for i := range cycles {
		if err := c.Step(); err != nil {
			return i, err
		}
	}
	return cycles, nil
}

// Speed returns the instructions executed per second.
func (c *CPU) Speed() uint32 {
	return c.clock.Rate()
}

// SetSpeed changes the instructions executed per second. The clock period
// and the timer decay scaling change immediately.
func (c *CPU) SetSpeed(instructionsPerSecond uint32) error {
	old := c.clock.Rate()
	if err := c.clock.SetRate(instructionsPerSecond); err != nil {
		return fmt.Errorf("setting speed: %w", err)
	}
	c.delayTimer.Rescale(old, instructionsPerSecond)
	c.soundTimer.Rescale(old, instructionsPerSecond)
	return nil
}

// Quirks returns the active compatibility quirks.
func (c *CPU) Quirks() Quirks {
	return c.quirks
}

// SetQuirks changes the active compatibility quirks.
func (c *CPU) SetQuirks(q Quirks) {
	c.quirks = q
	c.frame.SetEdgeMode(q.SpriteEdge)
}

// Registers returns a copy of the register file.
func (c *CPU) Registers() register.File {
	return c.registers
}

// SetRegisters replaces the register file.
func (c *CPU) SetRegisters(f register.File) {
	c.registers = f
}

// Stack returns a copy of the call stack entries.
func (c *CPU) Stack() [register.StackDepth]uint16 {
	return c.stack.Entries()
}

// ReadMemory returns a copy of length bytes of memory starting at offset.
func (c *CPU) ReadMemory(offset, length int) ([]byte, error) {
	b, err := c.memory.Read(offset, length)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// Frame returns a snapshot of the display.
func (c *CPU) Frame() display.Frame {
	return c.frame.Snapshot()
}

// FrameRGBA writes the display as 4 bytes per pixel into dst, which must
// hold display.PixelCount*4 bytes.
func (c *CPU) FrameRGBA(dst []byte, on, off color.RGBA) {
	frame := c.frame.Snapshot()
	frame.RGBA(dst, on, off)
}

// Redraw reports whether the display changed since the last call.
func (c *CPU) Redraw() bool {
	redraw := c.redraw
	c.redraw = false
	return redraw
}

// Sound reports whether the sound timer is active and a tone should play.
func (c *CPU) Sound() bool {
	return c.registers.ST > 0
}

// HandleKey posts a key transition from the host.
func (c *CPU) HandleKey(key uint8, state keypad.State) error {
	if err := c.keys.Set(key, state); err != nil {
		return fmt.Errorf("handling key event: %w", err)
	}
	return nil
}

// Key returns the current state of a key.
func (c *CPU) Key(key uint8) keypad.State {
	return c.keys.Get(key)
}

func (c *CPU) loadFont() {
	// the font always fits at its fixed offset
	_ = c.memory.Write(memory.FontStart, font[:])
}
