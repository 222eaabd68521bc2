package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-dance/internal/config"
	"github.com/vovakirdan/tui-dance/internal/rhythm"
)

// Engine is what the game needs from an audio backend.
type Engine interface {
	rhythm.AudioSink
	StartMusic()
	PauseMusic()
	ResumeMusic()
	StopMusic()
	Close()
}

// Nop is a silent Engine, used for SSH sessions and when the speaker is
// unavailable.
type Nop struct{}

func (Nop) Trigger(rhythm.Sound) {}
func (Nop) StartMusic()          {}
func (Nop) PauseMusic()          {}
func (Nop) ResumeMusic()         {}
func (Nop) StopMusic()           {}
func (Nop) Close()               {}

// Player mixes effects and the music loop into the speaker.
type Player struct {
	mu       sync.Mutex
	rate     beep.SampleRate
	sfxVol   float64
	musicVol float64

	mixer *beep.Mixer
	music *beep.Ctrl
	ready bool

	// speaker.Lock/Unlock; swapped out in tests
	lock   func()
	unlock func()
}

// NewPlayer creates a player from the audio config. Call Init before use.
func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{
		rate:     beep.SampleRate(cfg.SampleRate),
		sfxVol:   cfg.EffectiveSFX(),
		musicVol: cfg.EffectiveMusic(),
		mixer:    &beep.Mixer{},
		lock:     speaker.Lock,
		unlock:   speaker.Unlock,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Open builds a player and initializes it. A disabled config returns Nop.
func Open(cfg config.AudioConfig) (Engine, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	p := NewPlayer(cfg)
	if err := p.Init(); err != nil {
		return Nop{}, err
	}
	return p, nil
}

// Trigger plays a one-shot effect.
func (p *Player) Trigger(s rhythm.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.sfxVol <= 0 {
		return
	}
	fx := effectFor(s, p.rate)
	if fx == nil {
		return
	}
	p.lock()
	p.mixer.Add(gain(fx, p.sfxVol))
	p.unlock()
}

// StartMusic restarts the background loop from the beginning.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	p.lock()
	defer p.unlock()

	p.dropMusic()
	p.music = &beep.Ctrl{Streamer: gain(newBeatLoop(p.rate), p.musicVol)}
	p.mixer.Add(p.music)
}

// PauseMusic holds the loop at its current position.
func (p *Player) PauseMusic() { p.setPaused(true) }

// ResumeMusic continues a paused loop.
func (p *Player) ResumeMusic() { p.setPaused(false) }

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.music == nil {
		return
	}
	p.lock()
	p.music.Paused = paused
	p.unlock()
}

// StopMusic ends the loop.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	p.lock()
	p.dropMusic()
	p.unlock()
}

// dropMusic detaches the loop; the mixer discards a Ctrl with no streamer.
// Caller holds the speaker lock.
func (p *Player) dropMusic() {
	if p.music == nil {
		return
	}
	p.music.Streamer = nil
	p.music = nil
}

// Close silences everything. The speaker itself stays open; beep has no
// way to release the device short of process exit.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	p.lock()
	p.dropMusic()
	p.mixer.Clear()
	p.unlock()
	p.ready = false
}
