// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/options"
	"golang.org/x/image/colornames"
)

const defaultKeyHold = 100 * time.Millisecond

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parse(os.Args)
}

func parse(arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(arguments[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	opts.Quirks = strings.ToLower(opts.Quirks)
	if opts.Quirks != "" {
		if _, err := cpu.QuirksForProfile(opts.Quirks); err != nil {
			return err
		}
	}

	if opts.Speed == 0 || opts.Speed > clock.MaxRate {
		return fmt.Errorf("unsupported speed: %d. Valid range: 1-%d", opts.Speed, clock.MaxRate)
	}
	if opts.Cycles < 0 {
		return fmt.Errorf("unsupported cycle count: %d", opts.Cycles)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("unsupported scale: %d", opts.Scale)
	}
	if opts.ToneHz <= 0 || opts.SampleRate <= 0 || opts.FrameRateHz <= 0 || opts.KeyHold <= 0 {
		return errors.New("tone, sample rate, refresh rate and key hold have to be positive")
	}

	opts.Foreground = strings.ToLower(opts.Foreground)
	opts.Background = strings.ToLower(opts.Background)
	for _, name := range []string{opts.Foreground, opts.Background} {
		if _, ok := colornames.Map[name]; !ok {
			return fmt.Errorf("unsupported color name: %s", name)
		}
	}

	if opts.Trace {
		opts.Debug = true
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Frontend, "f", options.Window, "frontend to run the ROM in (headless/terminal/window)")
	flags.StringVar(&opts.Quirks, "quirks", "", "quirk profile (default/cosmac/schip/xochip) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.UintVar(&opts.Speed, "speed", clock.DefaultRate, "instructions executed per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 picks a time based seed")
	flags.IntVar(&opts.Cycles, "cycles", 1000, "number of instruction cycles to run in headless mode")

	flags.IntVar(&opts.Scale, "scale", 10, "window pixel scale")
	flags.DurationVar(&opts.KeyHold, "keyhold", defaultKeyHold, "how long a terminal key press is held before it is released")
	flags.BoolVar(&opts.NoSound, "nosound", false, "disable the beeper")
	flags.StringVar(&opts.Foreground, "fg", "white", "color name of lit pixels")
	flags.StringVar(&opts.Background, "bg", "black", "color name of unlit pixels")
	flags.IntVar(&opts.ToneHz, "tone", 440, "beeper frequency in Hz")
	flags.IntVar(&opts.SampleRate, "samplerate", 44100, "audio sample rate of the beeper")
	flags.IntVar(&opts.FrameRateHz, "fps", 30, "terminal refresh rate")
}
