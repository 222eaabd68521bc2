package rhythm

import (
	"fmt"
	"math"
)

// Session end conditions.
const (
	SessionDuration = 90.0 // seconds of PLAYING time
	MaxMisses       = 20
)

// State is the session state machine position.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Command is a non-lane session input.
type Command int

const (
	CmdConfirm Command = iota
	CmdSelectEasy
	CmdSelectNormal
	CmdPause
	CmdBack
)

// Press is one lane strike stamped with the session clock.
type Press struct {
	Lane Lane
	At   float64
}

// Input is everything collected for one tick.
type Input struct {
	Commands []Command
	Presses  []Press
}

// Sound names an audio cue emitted by the session.
type Sound int

const (
	SoundPerfect Sound = iota
	SoundGood
	SoundMiss
	SoundCombo
)

func (s Sound) String() string {
	switch s {
	case SoundPerfect:
		return "perfect"
	case SoundGood:
		return "good"
	case SoundMiss:
		return "miss"
	case SoundCombo:
		return "combo"
	default:
		return fmt.Sprintf("Sound(%d)", int(s))
	}
}

func soundFor(o Outcome) Sound {
	switch o {
	case Perfect:
		return SoundPerfect
	case Good:
		return SoundGood
	default:
		return SoundMiss
	}
}

// AudioSink receives fire-and-forget sound events. Implementations must
// not block the tick.
type AudioSink interface {
	Trigger(Sound)
}

type nopSink struct{}

func (nopSink) Trigger(Sound) {}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	State        State
	Level        Level
	Profile      Profile
	Cues         []Cue
	Feedback     []Feedback
	ComboEffects []ComboEffect
	Breakdown    Breakdown
	Clock        float64
	Elapsed      float64
	Remaining    float64
}

// Session orchestrates spawner, judge and ledger for one player.
type Session struct {
	state   State
	level   Level
	profile Profile

	spawner *Spawner
	judge   *Judge
	ledger  *Ledger
	audio   AudioSink

	cues []Cue

	clock     float64 // runs in every state
	elapsed   float64 // PLAYING time only
	lastSpawn float64 // in elapsed time
	exit      bool
}

// NewSession creates a session in MENU. A nil sink discards sounds.
func NewSession(seed int64, audio AudioSink) *Session {
	if audio == nil {
		audio = nopSink{}
	}
	return &Session{
		state:   StateMenu,
		level:   Easy,
		profile: ProfileFor(Easy),
		spawner: NewSpawner(seed),
		judge:   NewJudge(),
		ledger:  NewLedger(),
		audio:   audio,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Level returns the selected level.
func (s *Session) Level() Level { return s.level }

// Clock returns the session clock in seconds.
func (s *Session) Clock() float64 { return s.clock }

// ExitRequested reports whether MENU received a back command.
func (s *Session) ExitRequested() bool { return s.exit }

// SelectLevel changes the level outside of play. It is ignored while a
// session is running.
func (s *Session) SelectLevel(l Level) {
	if s.state == StatePlaying || s.state == StatePaused {
		return
	}
	s.level = l
	s.profile = ProfileFor(l)
}

// Breakdown returns the ledger summary.
func (s *Session) Breakdown() Breakdown { return s.ledger.Breakdown() }

// History returns the bounded score history of the current session.
func (s *Session) History() []HistoryEntry { return s.ledger.History() }

// Tick applies one batch of input and advances the session by dt seconds.
// Commands are handled first, then gameplay runs if the session is
// PLAYING, then transient queues are pruned. The clock advances last so
// every stamp inside a tick shares the same time.
func (s *Session) Tick(in Input, dt float64) {
	now := s.clock

	for _, cmd := range in.Commands {
		s.handle(cmd)
	}

	if s.state == StatePlaying {
		s.play(in.Presses, dt)
	}

	s.judge.Prune(now)
	s.ledger.Prune(now)
	s.clock += dt
}

func (s *Session) handle(cmd Command) {
	switch s.state {
	case StateMenu:
		switch cmd {
		case CmdConfirm:
			s.start()
		case CmdSelectEasy:
			s.SelectLevel(Easy)
			s.start()
		case CmdSelectNormal:
			s.SelectLevel(Normal)
			s.start()
		case CmdBack, CmdPause:
			s.exit = true
		}
	case StatePlaying:
		if cmd == CmdPause {
			s.state = StatePaused
		}
	case StatePaused:
		switch cmd {
		case CmdPause:
			s.state = StatePlaying
		case CmdBack:
			s.state = StateMenu
		}
	case StateGameOver:
		switch cmd {
		case CmdConfirm:
			s.start()
		case CmdBack, CmdPause:
			s.state = StateMenu
		}
	}
}

func (s *Session) start() {
	s.judge.Reset()
	s.ledger.Reset()
	s.cues = s.cues[:0]
	s.elapsed = 0
	// first cue spawns on the first PLAYING tick
	s.lastSpawn = -s.profile.SpawnInterval
	s.exit = false
	s.state = StatePlaying
}

func (s *Session) play(presses []Press, dt float64) {
	now := s.clock

	for i := range s.cues {
		s.cues[i].Advance(dt)
	}

	if cue, ok := s.spawner.MaybeSpawn(s.elapsed, s.lastSpawn, s.profile); ok {
		s.cues = append(s.cues, cue)
		s.lastSpawn = s.elapsed
	}

	s.prune(now)

	for _, p := range presses {
		s.strike(p)
	}

	s.elapsed += dt
	if spanReached(s.elapsed, SessionDuration) || s.ledger.Misses() >= MaxMisses {
		s.state = StateGameOver
	}
}

// prune removes cues past the line and struck cues whose feedback is gone.
// A cue nobody struck counts as one MISS.
func (s *Session) prune(now float64) {
	kept := s.cues[:0]
	for _, c := range s.cues {
		if c.Hit && spanReached(now-c.HitAt, FeedbackLifetime) {
			continue
		}
		if !c.Expired() {
			kept = append(kept, c)
			continue
		}
		if !c.Resolved() {
			c.Missed = true
			s.ledger.Record(Miss, MissScore, now)
		}
	}
	s.cues = kept
}

func (s *Session) strike(p Press) {
	p.Lane.mustValid()

	idx := -1
	best := math.Inf(1)
	for i := range s.cues {
		c := &s.cues[i]
		if c.Lane != p.Lane || c.Resolved() {
			continue
		}
		if d := c.Distance(); d < best {
			best = d
			idx = i
		}
	}
	if idx < 0 || best > MissRange {
		return
	}

	outcome := s.judge.Attempt(p.Lane, best, p.At)
	if outcome == CooldownRejected {
		return
	}
	s.cues[idx].Hit = true
	s.cues[idx].HitAt = p.At

	base := int(float64(outcome.BaseScore()) * s.profile.ScoreMultiplier)
	_, milestone := s.ledger.Record(outcome, base, p.At)

	s.audio.Trigger(soundFor(outcome))
	if milestone {
		s.audio.Trigger(SoundCombo)
	}
}

// Snapshot copies everything a renderer needs.
func (s *Session) Snapshot() Snapshot {
	cues := make([]Cue, len(s.cues))
	copy(cues, s.cues)
	return Snapshot{
		State:        s.state,
		Level:        s.level,
		Profile:      s.profile,
		Cues:         cues,
		Feedback:     s.judge.Feedback(),
		ComboEffects: s.ledger.ComboEffects(),
		Breakdown:    s.ledger.Breakdown(),
		Clock:        s.clock,
		Elapsed:      s.elapsed,
		Remaining:    math.Max(0, SessionDuration-s.elapsed),
	}
}
