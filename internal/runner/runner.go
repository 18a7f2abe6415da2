// Package runner handles ROM loading and running it in the selected frontend
package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/host/terminal"
	"github.com/retroenv/retrochip8/internal/host/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const name = "retrochip8"

// Frontend runs a loaded machine until it is stopped.
type Frontend interface {
	Run(ctx context.Context, machine *cpu.CPU) error
}

// Runner handles the complete ROM processing workflow.
type Runner struct {
	logger *log.Logger
	out    io.Writer
}

// New returns a runner that prints listings and headless results to out.
func New(logger *log.Logger, out io.Writer) *Runner {
	return &Runner{
		logger: logger,
		out:    out,
	}
}

// Run loads the ROM of the options and either prints its listing or runs
// it in the selected frontend.
func (r *Runner) Run(ctx context.Context, opts options.Program) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		if err := disasm.Listing(r.out, rom, memory.ProgramStart); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}
		return nil
	}

	quirks, err := detector.New(r.logger).Detect(opts)
	if err != nil {
		return err
	}

	machine, err := r.createMachine(opts, quirks, rom)
	if err != nil {
		return err
	}
	PrintInfo(r.logger, opts, len(rom))

	frontend := r.createFrontend(opts)
	if err := frontend.Run(ctx, machine); err != nil {
		return fmt.Errorf("running %s frontend: %w", opts.Frontend, err)
	}
	return nil
}

func (r *Runner) createMachine(opts options.Program, quirks cpu.Quirks, rom []byte) (*cpu.CPU, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	machine, err := cpu.New(
		cpu.WithLogger(r.logger),
		cpu.WithTrace(opts.Trace),
		cpu.WithQuirks(quirks),
		cpu.WithSpeed(uint32(opts.Speed)),
		cpu.WithSeed(seed),
	)
	if err != nil {
		return nil, fmt.Errorf("creating machine: %w", err)
	}

	if err := machine.Load(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return machine, nil
}

func (r *Runner) createFrontend(opts options.Program) Frontend {
	switch opts.Frontend {
	case options.Headless:
		return &Headless{Cycles: opts.Cycles, Out: r.out}

	case options.Terminal:
		return terminal.New(r.logger, terminal.Config{
			KeyHold:   opts.KeyHold,
			FrameRate: opts.FrameRateHz,
			NoSound:   opts.NoSound,
		})

	default:
		return window.New(r.logger, window.Config{
			Title:      fmt.Sprintf("%s - %s", name, opts.Input),
			Scale:      opts.Scale,
			Foreground: opts.Foreground,
			Background: opts.Background,
			NoSound:    opts.NoSound,
			ToneHz:     opts.ToneHz,
			SampleRate: opts.SampleRate,
		})
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info(name, log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the ROM and the machine settings.
func PrintInfo(logger *log.Logger, opts options.Program, romSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", romSize),
		log.String("frontend", opts.Frontend),
		log.Int("speed", int(opts.Speed)),
	)
}
