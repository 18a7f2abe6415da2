package window

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	amplitude      = 0x1000
	bytesPerSample = 2
)

// squareWave is an endless mono 16-bit square wave that is silent while
// inactive. Read is called from the audio goroutine, the active flag is
// switched from the game loop.
type squareWave struct {
	active atomic.Bool
	period int // samples per wave period
	pos    int
}

func newSquareWave(sampleRate, toneHz int) *squareWave {
	period := max(sampleRate/toneHz, 2)
	return &squareWave{period: period}
}

func (s *squareWave) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample * bytesPerSample
	active := s.active.Load()

	for i := 0; i < n; i += bytesPerSample {
		var sample int16
		if active {
			if s.pos < s.period/2 {
				sample = amplitude
			} else {
				sample = -amplitude
			}
		}
		s.pos = (s.pos + 1) % s.period
		binary.LittleEndian.PutUint16(p[i:], uint16(sample))
	}
	return n, nil
}

// beeper plays the square wave while the sound timer is active.
type beeper struct {
	wave   *squareWave
	player *oto.Player
}

func newBeeper(sampleRate, toneHz int) (*beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	wave := newSquareWave(sampleRate, toneHz)
	player := ctx.NewPlayer(wave)
	player.Play()

	return &beeper{
		wave:   wave,
		player: player,
	}, nil
}

// SetActive switches the tone on or off.
func (b *beeper) SetActive(active bool) {
	b.wave.active.Store(active)
}

// Close stops playback.
func (b *beeper) Close() error {
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
