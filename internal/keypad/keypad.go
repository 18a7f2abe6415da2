// Package keypad implements the 16 key hexadecimal input device with
// release edge detection.
package keypad

import (
	"errors"
	"fmt"
)

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// ErrInvalidKey is returned for key indexes outside of 0-15.
var ErrInvalidKey = errors.New("invalid key")

// State is the state of a single key.
type State uint8

const (
	// Idle is a key that is neither held nor just released.
	Idle State = iota
	// Pressed is a key currently held down.
	Pressed
	// Released is a key that was let go since the last executed cycle.
	// It is an edge signal that is observed by at most one cycle.
	Released
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Keypad holds the state of all keys.
type Keypad struct {
	keys [KeyCount]State
}

// Set records a key transition.
func (k *Keypad) Set(key uint8, state State) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	if state > Released {
		return fmt.Errorf("invalid key state %d", uint8(state))
	}
	k.keys[key] = state
	return nil
}

// Get returns the state of a key. Keys outside of 0-15 are reported as Idle.
func (k *Keypad) Get(key uint8) State {
	if key >= KeyCount {
		return Idle
	}
	return k.keys[key]
}

// FindReleased returns the lowest key that is in the Released state.
func (k *Keypad) FindReleased() (uint8, bool) {
	for i, state := range k.keys {
		if state == Released {
			return uint8(i), true
		}
	}
	return 0, false
}

// ResetReleased turns every Released key back to Idle.
func (k *Keypad) ResetReleased() {
	for i, state := range k.keys {
		if state == Released {
			k.keys[i] = Idle
		}
	}
}

// Reset turns every key to Idle.
func (k *Keypad) Reset() {
	k.keys = [KeyCount]State{}
}
