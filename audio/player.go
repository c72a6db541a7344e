package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/lambda/config"
	"github.com/pthm-cable/lambda/game"
)

// Player plays cues through the speaker. A nil Player is silent.
type Player struct {
	mu    sync.Mutex
	cfg   config.AudioConfig
	mixer *beep.Mixer
	hum   *Hum // push hum currently sounding
}

// NewPlayer initialises the speaker. It returns nil, nil when audio is
// disabled in cfg.
func NewPlayer(cfg config.AudioConfig) (*Player, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := &Player{cfg: cfg, mixer: &beep.Mixer{}}
	speaker.Play(p.mixer)
	return p, nil
}

// HandleEvents plays the cue of every event that has one.
func (p *Player) HandleEvents(events []game.Event) {
	if p == nil {
		return
	}
	for _, ev := range events {
		switch c := CueFor(ev, p.cfg); c.Type {
		case CueNone:
		case CuePush:
			p.startHum(c.Freq)
		case CuePushStop:
			p.stopHum()
		default:
			p.Play(c)
		}
	}
}

func (p *Player) startHum(freq float64) {
	h, err := NewHum(freq, p.cfg)
	if err != nil {
		slog.Warn("push hum dropped", "error", err)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Lock()
	if p.hum != nil {
		p.hum.Release()
	}
	p.hum = h
	p.mixer.Add(h)
	speaker.Unlock()
}

func (p *Player) stopHum() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hum == nil {
		return
	}
	speaker.Lock()
	p.hum.Release()
	speaker.Unlock()
	p.hum = nil
}

// Play queues one cue on the mixer.
func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	s, err := Tone(c, p.cfg)
	if err != nil {
		slog.Warn("audio cue dropped", "cue", c.Type.String(), "error", err)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.hum = nil
	speaker.Close()
}
