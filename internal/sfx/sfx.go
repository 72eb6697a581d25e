// Package sfx plays the short blips that accompany sprite moves.
package sfx

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	stepFreq     = 660.0
	stepDuration = 40 * time.Millisecond
	bumpFreq     = 140.0
	bumpDuration = 70 * time.Millisecond
	release      = 15 * time.Millisecond
)

// Sounds is what the game loop triggers.
type Sounds interface {
	PlayStep()
	PlayBump()
}

// Silent is a Sounds that does nothing.
type Silent struct{}

func (Silent) PlayStep() {}
func (Silent) PlayBump() {}

// Player plays effects through the system speaker.
type Player struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
}

// NewPlayer creates a player at the given linear volume (0..1).
func NewPlayer(volume float64) *Player {
	return &Player{volume: volume}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// PlayStep plays the accepted-move blip.
func (p *Player) PlayStep() {
	p.play(Step(sampleRate, p.volume))
}

// PlayBump plays the blocked-move blip.
func (p *Player) PlayBump() {
	p.play(Bump(sampleRate, p.volume))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || s == nil {
		return
	}
	speaker.Play(s)
}

// Step builds the accepted-move blip.
func Step(rate beep.SampleRate, volume float64) beep.Streamer {
	return tone(rate, stepFreq, stepDuration, volume)
}

// Bump builds the blocked-move blip.
func Bump(rate beep.SampleRate, volume float64) beep.Streamer {
	return tone(rate, bumpFreq, bumpDuration, volume)
}

func tone(rate beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil
	}
	total := rate.N(d)
	shaped := &fadeOut{
		streamer: beep.Take(total, sine),
		total:    total,
		release:  rate.N(release),
	}
	return newVolume(shaped, volume)
}

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf, so zero is
// handled as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// fadeOut ramps the last release samples down to zero to avoid a click.
type fadeOut struct {
	streamer beep.Streamer
	position int
	total    int
	release  int
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	start := f.total - f.release
	for i := 0; i < n; i++ {
		if f.position >= start && f.release > 0 {
			vol := float64(f.total-f.position) / float64(f.release)
			if vol < 0 {
				vol = 0
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		f.position++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }
