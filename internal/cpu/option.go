package cpu

import (
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrogolib/log"
)

// Option configures a CPU.
type Option func(*config)

type config struct {
	logger *log.Logger
	trace  bool
	quirks Quirks
	speed  uint32
	seed   uint64
	rng    *rand.Rand
}

func defaultConfig() config {
	logCfg := log.DefaultConfig()
	logCfg.Level = log.ErrorLevel

	return config{
		logger: log.NewWithConfig(logCfg),
		quirks: DefaultQuirks(),
		speed:  clock.DefaultRate,
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTrace enables a debug log record for every executed instruction.
func WithTrace(trace bool) Option {
	return func(c *config) {
		c.trace = trace
	}
}

// WithQuirks sets the compatibility quirks.
func WithQuirks(q Quirks) Option {
	return func(c *config) {
		c.quirks = q
	}
}

// WithSpeed sets the instructions executed per second.
func WithSpeed(instructionsPerSecond uint32) Option {
	return func(c *config) {
		c.speed = instructionsPerSecond
	}
}

// WithSeed seeds the random source used by the RND instruction.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithRandom replaces the random source used by the RND instruction.
func WithRandom(src rand.Source) Option {
	return func(c *config) {
		if src != nil {
			c.rng = rand.New(src)
		}
	}
}
