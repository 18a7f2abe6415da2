// Package options contains the program options.
package options

import "time"

// Frontend names.
const (
	Headless = "headless"
	Terminal = "terminal"
	Window   = "window"
)

// Frontends lists all supported frontends.
var Frontends = []string{Headless, Terminal, Window}

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"f" usage:"frontend: headless, terminal, window" default:"window"`
	Quirks   string `flag:"quirks" usage:"quirk profile: default, cosmac, schip, xochip (default: auto-detect)"`
	Disasm   bool   `flag:"disasm" usage:"print a listing of the ROM and exit"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// MachineFlags contains virtual machine options.
type MachineFlags struct {
	Speed  uint   `flag:"speed" usage:"instructions per second" default:"700"`
	Seed   uint64 `flag:"seed" usage:"random number generator seed (default: time based)"`
	Cycles int    `flag:"cycles" usage:"instruction cycles to run in headless mode" default:"1000"`
}

// HostFlags contains frontend presentation options.
type HostFlags struct {
	Scale       int           `flag:"scale" usage:"window pixel scale" default:"10"`
	KeyHold     time.Duration `flag:"keyhold" usage:"terminal key hold duration" default:"100ms"`
	NoSound     bool          `flag:"nosound" usage:"disable the beeper"`
	Foreground  string        `flag:"fg" usage:"color name of lit pixels" default:"white"`
	Background  string        `flag:"bg" usage:"color name of unlit pixels" default:"black"`
	ToneHz      int           `flag:"tone" usage:"beeper frequency in Hz" default:"440"`
	SampleRate  int           `flag:"samplerate" usage:"audio sample rate" default:"44100"`
	FrameRateHz int           `flag:"fps" usage:"terminal refresh rate" default:"30"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	MachineFlags
	HostFlags
}
