// Package terminal runs a virtual machine in an ANSI terminal.
//
// Terminals report key presses but no key releases. Every keystroke is
// posted as a press and released after a configurable hold duration, a
// repeated keystroke of a held key extends the hold.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when standard input is not a terminal.
var ErrNotTerminal = errors.New("standard input is not a terminal")

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
	keyBell   = "\a"
)

// Config contains the terminal frontend settings.
type Config struct {
	KeyHold   time.Duration // time a key stays pressed after a keystroke
	FrameRate int           // machine updates and screen refreshes per second
	NoSound   bool          // do not ring the terminal bell
}

// Host connects a virtual machine to a terminal.
type Host struct {
	logger *log.Logger
	cfg    Config
	in     *os.File
	out    io.Writer

	held     map[uint8]time.Time // release deadline per pressed key
	sounding bool
}

// New returns a terminal host using the process standard input and output.
func New(logger *log.Logger, cfg Config) *Host {
	return &Host{
		logger: logger,
		cfg:    cfg,
		in:     os.Stdin,
		out:    os.Stdout,
		held:   map[uint8]time.Time{},
	}
}

// Run switches the terminal to raw mode and runs the machine until the
// context is canceled, Escape or Ctrl-C is pressed, input ends or the
// machine faults.
func (h *Host) Run(ctx context.Context, machine *cpu.CPU) error {
	fd := int(h.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(h.out, escShowCursor)
		_ = term.Restore(fd, oldState)
	}()

	if _, err := io.WriteString(h.out, escClear+escHideCursor); err != nil {
		return fmt.Errorf("preparing screen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan []byte)
	go readInput(ctx, h.in, input)

	return h.loop(ctx, machine, input)
}

func (h *Host) loop(ctx context.Context, machine *cpu.CPU, input <-chan []byte) error {
	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.FrameRate))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case chunk, ok := <-input:
			if !ok {
				return nil
			}
			if quit := h.handleInput(machine, chunk, time.Now()); quit {
				return nil
			}

		case now := <-ticker.C:
			h.releaseKeys(machine, now)

			if _, err := machine.Update(now.Sub(last)); err != nil {
				return fmt.Errorf("running machine: %w", err)
			}
			last = now

			if err := h.present(machine); err != nil {
				return err
			}
		}
	}
}

// handleInput posts the keystrokes of one read and reports whether the
// user asked to quit. A lone Escape quits, longer chunks starting with
// Escape are control sequences such as cursor keys and are ignored.
func (h *Host) handleInput(machine *cpu.CPU, chunk []byte, now time.Time) bool {
	if len(chunk) == 1 && chunk[0] == keyEscape {
		return true
	}
	if len(chunk) > 0 && chunk[0] == keyEscape {
		return false
	}

	for _, b := range chunk {
		if b == keyCtrlC {
			return true
		}

		key, ok := host.KeyForRune(rune(b))
		if !ok {
			continue
		}
		if _, pressed := h.held[key]; !pressed {
			if err := machine.HandleKey(key, keypad.Pressed); err != nil {
				h.logger.Error("Handling key failed", log.Err(err))
				continue
			}
		}
		h.held[key] = now.Add(h.cfg.KeyHold)
	}
	return false
}

// releaseKeys releases all keys whose hold duration expired.
func (h *Host) releaseKeys(machine *cpu.CPU, now time.Time) {
	for key, deadline := range h.held {
		if now.Before(deadline) {
			continue
		}
		delete(h.held, key)
		if err := machine.HandleKey(key, keypad.Released); err != nil {
			h.logger.Error("Handling key failed", log.Err(err))
		}
	}
}

// present redraws the screen when the frame changed and rings the bell
// when the sound timer starts.
func (h *Host) present(machine *cpu.CPU) error {
	if machine.Redraw() {
		frame := machine.Frame()
		if err := Render(h.out, &frame); err != nil {
			return err
		}
	}

	sounding := machine.Sound()
	if sounding && !h.sounding && !h.cfg.NoSound {
		if _, err := io.WriteString(h.out, keyBell); err != nil {
			return fmt.Errorf("ringing bell: %w", err)
		}
	}
	h.sounding = sounding
	return nil
}

// readInput forwards chunks read from r until reading fails or the
// context is canceled. The channel is closed when reading fails.
func readInput(ctx context.Context, r io.Reader, input chan<- []byte) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case input <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			close(input)
			return
		}
	}
}
