// Package window runs a virtual machine in a desktop window using ebiten,
// with a square wave beeper on oto.
package window

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/colornames"
)

// Config contains the window frontend settings.
type Config struct {
	Title      string
	Scale      int
	Foreground string // color name of lit pixels
	Background string // color name of unlit pixels
	NoSound    bool
	ToneHz     int
	SampleRate int
}

// keys maps the keyboard keys of host.Layout to ebiten keys.
var keys = [4][4]ebiten.Key{
	{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4},
	{ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR},
	{ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF},
	{ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV},
}

// Host connects a virtual machine to a window.
type Host struct {
	logger *log.Logger
	cfg    Config
}

// New returns a window host.
func New(logger *log.Logger, cfg Config) *Host {
	return &Host{
		logger: logger,
		cfg:    cfg,
	}
}

// Run opens the window and runs the machine until the window is closed,
// Escape is pressed, the context is canceled or the machine faults.
// It has to be called from the main goroutine.
func (h *Host) Run(ctx context.Context, machine *cpu.CPU) error {
	g, err := newGame(ctx, machine, h.cfg)
	if err != nil {
		return err
	}

	if !h.cfg.NoSound {
		b, err := newBeeper(h.cfg.SampleRate, h.cfg.ToneHz)
		if err != nil {
			h.logger.Warn("Sound disabled", log.Err(err))
		} else {
			g.beeper = b
			defer func() {
				if err := b.Close(); err != nil {
					h.logger.Error("Closing beeper failed", log.Err(err))
				}
			}()
		}
	}

	ebiten.SetWindowSize(display.Width*h.cfg.Scale, display.Height*h.cfg.Scale)
	ebiten.SetWindowTitle(h.cfg.Title)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// game implements ebiten.Game.
type game struct {
	ctx     context.Context
	machine *cpu.CPU
	keyMap  map[ebiten.Key]uint8
	beeper  *beeper

	on, off color.RGBA
	pixels  []byte
	last    time.Time
}

func newGame(ctx context.Context, machine *cpu.CPU, cfg Config) (*game, error) {
	on, ok := colornames.Map[cfg.Foreground]
	if !ok {
		return nil, fmt.Errorf("unsupported color name: %s", cfg.Foreground)
	}
	off, ok := colornames.Map[cfg.Background]
	if !ok {
		return nil, fmt.Errorf("unsupported color name: %s", cfg.Background)
	}

	keyMap := make(map[ebiten.Key]uint8, 16)
	for row := range keys {
		for col, k := range keys[row] {
			key, _ := host.KeyForRune(host.Layout[row][col])
			keyMap[k] = key
		}
	}

	return &game{
		ctx:     ctx,
		machine: machine,
		keyMap:  keyMap,
		on:      on,
		off:     off,
		pixels:  make([]byte, display.PixelCount*4),
		last:    time.Now(),
	}, nil
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for k, key := range g.keyMap {
		var err error
		switch {
		case inpututil.IsKeyJustPressed(k):
			err = g.machine.HandleKey(key, keypad.Pressed)
		case inpututil.IsKeyJustReleased(k):
			err = g.machine.HandleKey(key, keypad.Released)
		}
		if err != nil {
			return err
		}
	}

	now := time.Now()
	elapsed := now.Sub(g.last)
	g.last = now

	if _, err := g.machine.Update(elapsed); err != nil {
		return fmt.Errorf("running machine: %w", err)
	}

	if g.beeper != nil {
		g.beeper.SetActive(g.machine.Sound())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.machine.Redraw() {
		g.machine.FrameRGBA(g.pixels, g.on, g.off)
	}
	screen.WritePixels(g.pixels)
}

func (g *game) Layout(_, _ int) (int, int) {
	return display.Width, display.Height
}
