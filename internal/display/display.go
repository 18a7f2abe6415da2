// Package display implements the monochrome frame buffer and the sprite blitter.
package display

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	// Width of the display in pixels.
	Width = 64
	// Height of the display in pixels.
	Height = 32
	// PixelCount is the number of pixels of a frame.
	PixelCount = Width * Height

	spriteWidth = 8
)

// EdgeMode selects how sprite pixels past the display edge are handled.
type EdgeMode int

const (
	// Clip discards pixels that extend past the right or bottom edge.
	Clip EdgeMode = iota
	// Wrap draws pixels past an edge on the opposite side of the display.
	Wrap
)

func (m EdgeMode) String() string {
	switch m {
	case Clip:
		return "clip"
	case Wrap:
		return "wrap"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// Frame is a snapshot of all pixel states in row-major order.
type Frame [PixelCount]bool

// Pixel returns the state of the pixel at x, y.
func (f *Frame) Pixel(x, y int) bool {
	return f[y*Width+x]
}

// RGBA writes 4 bytes per pixel into dst, which must hold PixelCount*4 bytes.
func (f *Frame) RGBA(dst []byte, on, off color.RGBA) {
	for i, lit := range f {
		c := off
		if lit {
			c = on
		}
		o := i * 4
		dst[o] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = c.A
	}
}

// String renders the frame as text rows of '#' and '.' characters.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(PixelCount + Height)
	for y := range Height {
		for x := range Width {
			if f.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FrameBuffer holds the pixel grid the programs draw into.
type FrameBuffer struct {
	pixels Frame
	edge   EdgeMode
}

// New returns a blank frame buffer using the given edge mode.
func New(edge EdgeMode) *FrameBuffer {
	return &FrameBuffer{edge: edge}
}

// SetEdgeMode changes how subsequent draws handle the display edges.
func (b *FrameBuffer) SetEdgeMode(edge EdgeMode) {
	b.edge = edge
}

// Clear turns every pixel off.
func (b *FrameBuffer) Clear() {
	b.pixels = Frame{}
}

// Draw XORs the sprite rows onto the frame with the top left corner at x, y.
// The start coordinates wrap around the display dimensions. It returns
// whether any lit pixel was turned off.
func (b *FrameBuffer) Draw(sprite []byte, x, y int) bool {
	startX := x % Width
	startY := y % Height

	collided := false
	for row, bits := range sprite {
		py := startY + row
		if py >= Height {
			if b.edge == Clip {
				break
			}
			py %= Height
		}

		for col := range spriteWidth {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := startX + col
			if px >= Width {
				if b.edge == Clip {
					break
				}
				px %= Width
			}

			offset := py*Width + px
			if b.pixels[offset] {
				collided = true
			}
			b.pixels[offset] = !b.pixels[offset]
		}
	}
	return collided
}

// Snapshot returns a copy of the current pixel grid.
func (b *FrameBuffer) Snapshot() Frame {
	return b.pixels
}
