package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/shootout/event"
)

// Config controls cue output
type Config struct {
	Enabled        bool
	SampleRate     int
	Volume         float64 // Master volume in [0,1]
	WarningSeconds int     // Countdown cue starts at this many seconds left
}

// Player turns match events into cues mixed into one stream
// The mixer is pulled by the speaker when output is open, or by tests directly
type Player struct {
	mu     sync.Mutex
	cfg    Config
	rate   beep.SampleRate
	mixer  *beep.Mixer
	logger *log.Logger
	live   bool

	played [cueCount]int
}

// NewPlayer creates a player with an empty mixer; no device is opened
func NewPlayer(cfg Config, logger *log.Logger) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Open starts speaker output of the mixer
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live || !p.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.live = true
	return nil
}

// Close stops output and drops queued cues
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.live {
		p.mixer.Clear()
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.live = false
}

// Play queues cue c
func (p *Player) Play(c Cue) {
	if c < 0 || c >= cueCount {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled {
		return
	}
	s := withVolume(Synthesize(c, p.rate), p.cfg.Volume)
	if p.live {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	} else {
		p.mixer.Add(s)
	}
	p.played[c]++
}

// Stream exposes the mixed output, for headless sampling
func (p *Player) Stream() beep.Streamer {
	return p.mixer
}

// Pending returns the number of cues still sounding
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Played returns how often cue c was queued
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return p.played[c]
}

// EventTypes implements event.Handler
func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventScoreChanged,
		event.EventBonusChanged,
		event.EventFireStateChanged,
		event.EventTimerTick,
		event.EventMatchEnded,
	}
}

// HandleEvent implements event.Handler
func (p *Player) HandleEvent(ev event.GameEvent) {
	switch pl := ev.Payload.(type) {
	case *event.ScoreChangedPayload:
		if pl.Added <= 0 {
			return
		}
		if pl.Perfect {
			p.Play(CuePerfect)
		} else {
			p.Play(CueScore)
		}
	case *event.BonusChangedPayload:
		if pl.Value > 0 {
			p.Play(CueBonus)
		}
	case *event.FireStatePayload:
		if pl.Active {
			p.Play(CueFireOn)
		} else {
			p.Play(CueFireOff)
		}
	case *event.TimerTickPayload:
		if pl.Remaining > 0 && pl.Remaining <= p.cfg.WarningSeconds {
			p.Play(CueWarning)
		}
	case *event.MatchEndedPayload:
		p.Play(CueBuzzer)
	}
}
