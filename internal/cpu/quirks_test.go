package cpu

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

func TestQuirksForProfile(t *testing.T) {
	tests := []struct {
		name     string
		expected Quirks
	}{
		{ProfileDefault, Quirks{ShiftSource: ShiftFromVY, SpriteEdge: display.Clip}},
		{ProfileCosmac, Quirks{ShiftSource: ShiftFromVY, SpriteEdge: display.Clip, IncrementIndex: true}},
		{ProfileSchip, Quirks{ShiftSource: ShiftInPlace, SpriteEdge: display.Clip}},
		{"XOCHIP", Quirks{ShiftSource: ShiftFromVY, SpriteEdge: display.Wrap, IncrementIndex: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := QuirksForProfile(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, q)
		})
	}

	_, err := QuirksForProfile("megachip")
	assert.ErrorContains(t, err, "megachip")
}

func TestProfileNames(t *testing.T) {
	assert.Equal(t, []string{"cosmac", "default", "schip", "xochip"}, ProfileNames())
}

func TestSpriteEdgeQuirk(t *testing.T) {
	// LD V0, 60; LD F, V1; DRW V0, V1, 1 draws $F0 at x 60..63
	// LD V0, 62; DRW V0, V1, 1 erases x 62,63 and clips or wraps x 64,65
	program := []byte{0x60, 0x3C, 0xF1, 0x29, 0xD0, 0x11, 0x60, 0x3E, 0xD0, 0x11}

	tests := []struct {
		name    string
		profile string
		wrapped bool
	}{
		{"clip", ProfileDefault, false},
		{"wrap", ProfileXOChip, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := QuirksForProfile(tt.profile)
			assert.NoError(t, err)
			c := newTestCPU(t, program, WithQuirks(q))
			steps(t, c, 5)

			frame := c.Frame()
			assert.True(t, frame.Pixel(60, 0))
			assert.True(t, frame.Pixel(61, 0))
			assert.False(t, frame.Pixel(62, 0))
			assert.False(t, frame.Pixel(63, 0))
			assert.Equal(t, tt.wrapped, frame.Pixel(0, 0))
			assert.Equal(t, tt.wrapped, frame.Pixel(1, 0))
			assert.Equal(t, uint8(1), c.Registers().V[0xF])
		})
	}
}
