// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/memory"
)

var (
	// ErrEmptyROM is returned for a ROM without any content.
	ErrEmptyROM = errors.New("empty ROM")
	// ErrROMTooLarge is returned for a ROM that does not fit into program space.
	ErrROMTooLarge = errors.New("ROM too large")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file at path and returns its content.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	return rom, nil
}

// LoadFromReader reads a ROM image from reader. Images larger than the
// program space are rejected without reading them completely.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	rom, err := io.ReadAll(io.LimitReader(reader, memory.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	switch {
	case len(rom) == 0:
		return nil, ErrEmptyROM
	case len(rom) > memory.MaxProgramSize:
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrROMTooLarge, memory.MaxProgramSize)
	}
	return rom, nil
}
