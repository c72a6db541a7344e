// Package audio plays short tones for universe events.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/pthm-cable/lambda/config"
	"github.com/pthm-cable/lambda/game"
)

// CueType identifies a sound.
type CueType int

const (
	CueNone CueType = iota
	CueMerge
	CuePush
	CuePushStop
	CueGameOver
)

func (c CueType) String() string {
	switch c {
	case CueMerge:
		return "merge"
	case CuePush:
		return "push"
	case CuePushStop:
		return "push_stop"
	case CueGameOver:
		return "game_over"
	}
	return "none"
}

// Cue is a sound to play.
type Cue struct {
	Type CueType
	Freq float64 // Hz
}

const minFreq = 80.0

// CueFor maps a universe event to a cue. Events without a sound map to CueNone.
// Merge tones drop in pitch as the surviving galaxy grows. The push cue
// starts a hum that lasts until the matching push stop cue.
func CueFor(ev game.Event, cfg config.AudioConfig) Cue {
	switch ev.Type {
	case game.EventMerged:
		d := max(ev.Value, 0.25)
		return Cue{Type: CueMerge, Freq: max(cfg.MergeTone/math.Sqrt(d), minFreq)}
	case game.EventPushStarted:
		return Cue{Type: CuePush, Freq: cfg.PushTone}
	case game.EventPushStopped:
		return Cue{Type: CuePushStop}
	case game.EventGameOver:
		return Cue{Type: CueGameOver, Freq: cfg.MergeTone}
	}
	return Cue{}
}

// Tone builds the streamer for a cue. A game-over cue is a fifth played over
// the base tone and lasts four times as long.
func Tone(c Cue, cfg config.AudioConfig) (beep.Streamer, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	length := time.Duration(cfg.CueMillis) * time.Millisecond

	freqs := []float64{c.Freq}
	if c.Type == CueGameOver {
		freqs = append(freqs, c.Freq*1.5)
		length *= 4
	}

	var voices []beep.Streamer
	for _, f := range freqs {
		sine, err := sineTone(sr, f)
		if err != nil {
			return nil, err
		}
		voices = append(voices, sine)
	}

	n := sr.N(length)
	mixed := beep.Take(n, beep.Mix(voices...))
	shaped := fade(mixed, n)
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: -1 - math.Log2(float64(len(voices)))}, nil
}

// fade applies a linear decay over n samples to avoid clicks at the end.
func fade(s beep.Streamer, n int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		k, ok := s.Stream(samples)
		for i := 0; i < k; i++ {
			g := 1 - float64(pos)/float64(n)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return k, ok
	})
}

func sineTone(sr beep.SampleRate, f float64) (beep.Streamer, error) {
	if f >= float64(sr)/2 {
		f = float64(sr)/2 - 1
	}
	sine, err := generators.SineTone(sr, f)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.1f Hz: %w", f, err)
	}
	return sine, nil
}

// Hum is a sustained tone. It ramps in over one cue length, holds until
// Release, then ramps out and ends.
type Hum struct {
	src     beep.Streamer
	ramp    int
	level   int
	release bool
}

// NewHum builds a hum at freq.
func NewHum(freq float64, cfg config.AudioConfig) (*Hum, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	sine, err := sineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	return &Hum{
		src:  &effects.Volume{Streamer: sine, Base: 2, Volume: -2},
		ramp: max(sr.N(time.Duration(cfg.CueMillis)*time.Millisecond), 1),
	}, nil
}

// Stream implements beep.Streamer.
func (h *Hum) Stream(samples [][2]float64) (int, bool) {
	if h.release && h.level == 0 {
		return 0, false
	}
	n, ok := h.src.Stream(samples)
	for i := 0; i < n; i++ {
		if h.release {
			h.level = max(h.level-1, 0)
		} else if h.level < h.ramp {
			h.level++
		}
		g := float64(h.level) / float64(h.ramp)
		samples[i][0] *= g
		samples[i][1] *= g
	}
	return n, ok
}

// Err implements beep.Streamer.
func (h *Hum) Err() error { return h.src.Err() }

// Release starts the ramp out. The caller holds the speaker lock while the
// hum is playing.
func (h *Hum) Release() { h.release = true }
