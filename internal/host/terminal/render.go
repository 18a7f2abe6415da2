package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/display"
)

const (
	escHome       = "\x1b[H"
	escClear      = "\x1b[2J"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
)

// Render writes the frame with one character cell per two pixel rows,
// using half block glyphs. Lines end with CRLF as the terminal is in raw mode.
func Render(w io.Writer, frame *display.Frame) error {
	var sb strings.Builder
	sb.Grow(len(escHome) + display.Height/2*(display.Width*3+2))
	sb.WriteString(escHome)

	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			top := frame.Pixel(x, y)
			bottom := frame.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
