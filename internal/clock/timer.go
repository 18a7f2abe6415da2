package clock

// Timer paces the decrement of one timer register at TimerFrequency,
// measured in executed instruction cycles.
//
// Every cycle adds TimerFrequency to the accumulator, the register is
// decremented once for each instruction rate worth of accumulated units.
type Timer struct {
	acc uint64
}

// Tick accounts for one executed cycle at the given instruction rate and
// returns the decayed register value. A register at zero resets the
// accumulator so that no decrements are owed once it is set again.
func (t *Timer) Tick(value uint8, rate uint32) uint8 {
	if value == 0 {
		t.acc = 0
		return 0
	}

	t.acc += TimerFrequency
	for t.acc >= uint64(rate) && value > 0 {
		t.acc -= uint64(rate)
		value--
	}
	if value == 0 {
		t.acc = 0
	}
	return value
}

// Restart drops any accumulated partial interval.
func (t *Timer) Restart() {
	t.acc = 0
}

// Rescale adjusts the accumulated partial interval to a changed instruction rate.
func (t *Timer) Rescale(oldRate, newRate uint32) {
	if oldRate == 0 {
		t.acc = 0
		return
	}
	t.acc = t.acc * uint64(newRate) / uint64(oldRate)
}
