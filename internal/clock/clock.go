// Package clock converts elapsed wall-clock time into instruction cycles and
// paces the 60 Hz decay of the timer registers.
package clock

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultRate is the default number of instructions executed per second.
	DefaultRate = 700

	// MaxRate is the highest supported instruction rate.
	MaxRate = 1_000_000

	// TimerFrequency is the decrement rate of the delay and sound timers in Hz.
	TimerFrequency = 60

	// MaxElapsed caps the time accounted for by a single Cycles call.
	MaxElapsed = time.Hour
)

// ErrInvalidRate is returned for instruction rates outside of 1-MaxRate.
var ErrInvalidRate = errors.New("invalid instruction rate")

// Clock is the instruction rate governor.
//
// The residual keeps elapsed time in nanosecond*instruction units, one cycle
// is due for every second worth of units. Integer accounting carries partial
// cycles across calls exactly.
type Clock struct {
	rate     uint32
	residual uint64
}

// New returns a clock running at rate instructions per second.
func New(rate uint32) (*Clock, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	return &Clock{rate: rate}, nil
}

// Rate returns the configured instructions per second.
func (c *Clock) Rate() uint32 {
	return c.rate
}

// Period returns the duration of a single instruction.
func (c *Clock) Period() time.Duration {
	return time.Second / time.Duration(c.rate)
}

// SetRate changes the instruction rate. The fraction of a cycle accumulated
// so far is preserved.
func (c *Clock) SetRate(rate uint32) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	c.residual = c.residual * uint64(rate) / uint64(c.rate)
	c.rate = rate
	return nil
}

// Cycles adds the elapsed time and returns the number of whole cycles that
// became due. Negative durations are ignored, durations above MaxElapsed
// are capped.
func (c *Clock) Cycles(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	elapsed = min(elapsed, MaxElapsed)
	c.residual += uint64(elapsed) * uint64(c.rate)
	cycles := c.residual / uint64(time.Second)
	c.residual -= cycles * uint64(time.Second)
	return int(cycles)
}

// Reset drops any accumulated partial cycle.
func (c *Clock) Reset() {
	c.residual = 0
}

func validateRate(rate uint32) error {
	if rate == 0 || rate > MaxRate {
		return fmt.Errorf("%w: %d (valid range 1-%d)", ErrInvalidRate, rate, MaxRate)
	}
	return nil
}
