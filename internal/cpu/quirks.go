package cpu

import (
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/display"
)

// ShiftSource selects the register that 8XY6 and 8XYE read the value to shift from.
type ShiftSource int

const (
	// ShiftFromVY shifts VY and stores the result in VX, as the original
	// COSMAC VIP interpreter did.
	ShiftFromVY ShiftSource = iota
	// ShiftInPlace shifts VX and ignores VY, as SUPER-CHIP interpreters do.
	ShiftInPlace
)

// Quirks selects the behaviors that differ between interpreter revisions.
type Quirks struct {
	ShiftSource ShiftSource
	SpriteEdge  display.EdgeMode

	// IncrementIndex advances I by X+1 after FX55 and FX65.
	IncrementIndex bool
}

// Quirk profile names.
const (
	ProfileDefault = "default"
	ProfileCosmac  = "cosmac"
	ProfileSchip   = "schip"
	ProfileXOChip  = "xochip"
)

var profiles = map[string]Quirks{
	ProfileDefault: {ShiftSource: ShiftFromVY, SpriteEdge: display.Clip},
	ProfileCosmac:  {ShiftSource: ShiftFromVY, SpriteEdge: display.Clip, IncrementIndex: true},
	ProfileSchip:   {ShiftSource: ShiftInPlace, SpriteEdge: display.Clip},
	ProfileXOChip:  {ShiftSource: ShiftFromVY, SpriteEdge: display.Wrap, IncrementIndex: true},
}

// DefaultQuirks returns the quirks of the default profile.
func DefaultQuirks() Quirks {
	return profiles[ProfileDefault]
}

// QuirksForProfile returns the quirks of a named profile.
func QuirksForProfile(name string) (Quirks, error) {
	q, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Quirks{}, fmt.Errorf("unsupported quirks profile: %s. Valid options: %s",
			name, strings.Join(ProfileNames(), ", "))
	}
	return q, nil
}

// ProfileNames returns the sorted names of all quirk profiles.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
