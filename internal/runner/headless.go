package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/register"
)

// cancelCheckInterval is the number of cycles between context checks.
const cancelCheckInterval = 1024

// Headless runs a fixed number of single steps without real time pacing
// and prints the final frame and registers.
type Headless struct {
	Cycles int
	Out    io.Writer
}

// Run executes the cycles and writes the final machine state.
// A fault stops execution, the state at the fault is still written.
func (h *Headless) Run(ctx context.Context, machine *cpu.CPU) error {
	var runErr error
	executed := 0
	for ; executed < h.Cycles; executed++ {
		if executed%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				runErr = err
				break
			}
		}
		if err := machine.Step(); err != nil {
			runErr = err
			break
		}
	}

	if err := writeState(h.Out, machine, executed); err != nil {
		return err
	}
	return runErr
}

func writeState(w io.Writer, machine *cpu.CPU, cycles int) error {
	frame := machine.Frame()
	regs := machine.Registers()

	if _, err := fmt.Fprintf(w, "%scycles: %d\n%s", frame.String(), cycles, formatRegisters(regs)); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

func formatRegisters(regs register.File) string {
	var sb strings.Builder
	for i, v := range regs.V {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "V%X=$%02X", i, v)
	}
	fmt.Fprintf(&sb, "\nI=$%04X PC=$%04X SP=%d DT=%d ST=%d\n", regs.I, regs.PC, regs.SP, regs.DT, regs.ST)
	return sb.String()
}
