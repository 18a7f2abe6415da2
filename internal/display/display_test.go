package display

import (
	"image/color"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFrameBuffer_DrawTwice(t *testing.T) {
	b := New(Clip)

	collided := b.Draw([]byte{0xFF}, 0, 0)
	assert.False(t, collided)

	frame := b.Snapshot()
	for x := range Width {
		assert.Equal(t, x < 8, frame.Pixel(x, 0))
	}

	collided = b.Draw([]byte{0xFF}, 0, 0)
	assert.True(t, collided)

	assert.Equal(t, Frame{}, b.Snapshot())
}

func TestFrameBuffer_DrawRestoresPriorState(t *testing.T) {
	b := New(Clip)
	b.Draw([]byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, 10, 5)
	before := b.Snapshot()

	sprite := []byte{0x20, 0x60, 0x20, 0x20, 0x70}
	b.Draw(sprite, 12, 6)
	b.Draw(sprite, 12, 6)

	assert.Equal(t, before, b.Snapshot())
}

func TestFrameBuffer_Clear(t *testing.T) {
	b := New(Wrap)
	b.Draw([]byte{0xFF, 0xAA, 0x55}, 60, 30)

	b.Clear()

	assert.Equal(t, Frame{}, b.Snapshot())
}

func TestFrameBuffer_StartCoordinatesWrap(t *testing.T) {
	b := New(Clip)

	b.Draw([]byte{0x80}, Width+3, Height+2)

	frame := b.Snapshot()
	assert.True(t, frame.Pixel(3, 2))
}

func TestFrameBuffer_EdgeModes(t *testing.T) {
	tests := []struct {
		name      string
		edge      EdgeMode
		wantRight bool
		wantLeft  bool
		wantTop   bool
	}{
		{"clip discards overflowing pixels", Clip, true, false, false},
		{"wrap draws on the opposite side", Wrap, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.edge)
			// 2 pixels wide, 2 rows high, starting one pixel from the bottom right corner
			b.Draw([]byte{0xC0, 0xC0}, Width-1, Height-1)

			frame := b.Snapshot()
			assert.Equal(t, tt.wantRight, frame.Pixel(Width-1, Height-1))
			assert.Equal(t, tt.wantLeft, frame.Pixel(0, Height-1))
			assert.Equal(t, tt.wantTop, frame.Pixel(Width-1, 0))
			assert.Equal(t, tt.wantTop, frame.Pixel(0, 0))
		})
	}
}

func TestFrameBuffer_CollisionOnlyOnErase(t *testing.T) {
	b := New(Clip)
	b.Draw([]byte{0x80}, 0, 0)

	// shares no lit pixel with the first sprite
	assert.False(t, b.Draw([]byte{0x40}, 0, 0))
	assert.True(t, b.Draw([]byte{0xC0}, 0, 0))
}

func TestFrame_RGBA(t *testing.T) {
	b := New(Clip)
	b.Draw([]byte{0x80}, 1, 0)
	frame := b.Snapshot()

	on := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	off := color.RGBA{A: 0xFF}
	buf := make([]byte, PixelCount*4)
	frame.RGBA(buf, on, off)

	assert.Equal(t, []byte{0, 0, 0, 0xFF}, buf[0:4])
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, buf[4:8])
}

func TestFrame_String(t *testing.T) {
	b := New(Clip)
	b.Draw([]byte{0xA0}, 0, 0)
	frame := b.Snapshot()

	rows := strings.Split(strings.TrimSuffix(frame.String(), "\n"), "\n")
	assert.Len(t, rows, Height)
	assert.Equal(t, "#.#"+strings.Repeat(".", Width-3), rows[0])
	assert.Equal(t, strings.Repeat(".", Width), rows[1])
}

func TestEdgeMode_String(t *testing.T) {
	assert.Equal(t, "clip", Clip.String())
	assert.Equal(t, "wrap", Wrap.String())
}
