// Package detector handles quirk profile detection.
package detector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles quirk profile detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new quirk profile detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the quirks to run a ROM with. It first checks if a
// profile is explicitly specified in options, otherwise attempts to detect
// the profile from the input filename extension.
func (d *Detector) Detect(opts options.Program) (cpu.Quirks, error) {
	profile := opts.Quirks
	if profile == "" {
		profile = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected quirks profile",
			log.String("profile", profile),
			log.String("file", opts.Input))
	}

	quirks, err := cpu.QuirksForProfile(profile)
	if err != nil {
		return cpu.Quirks{}, fmt.Errorf("detecting quirks: %w", err)
	}
	return quirks, nil
}

// detectFromFile determines the quirk profile based on file extension.
func (d *Detector) detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sc8":
		return cpu.ProfileSchip
	case ".xo8":
		return cpu.ProfileXOChip
	default:
		// .ch8, .rom and unknown extensions run with the common behavior
		return cpu.ProfileDefault
	}
}
