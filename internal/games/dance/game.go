// Package dance adapts the rhythm session to the platform's game loop:
// it turns input frames into presses and commands, drives the music from
// session state changes and draws the playfield.
package dance

import (
	"github.com/vovakirdan/tui-dance/internal/audio"
	"github.com/vovakirdan/tui-dance/internal/config"
	"github.com/vovakirdan/tui-dance/internal/core"
	"github.com/vovakirdan/tui-dance/internal/rhythm"
)

// Records looks up stored results. *storage.Store implements it.
type Records interface {
	HighScore(difficulty string) (int, error)
}

// Game implements the dance game on top of a rhythm.Session.
type Game struct {
	session *rhythm.Session
	audio   audio.Engine
	records Records
	cfg     config.Config
	runtime core.RuntimeConfig
	prev    rhythm.State

	// best stored score of the level, looked up on game over
	best    int
	hasBest bool
}

// commandActions is the order commands are applied within a tick.
var commandActions = []struct {
	action core.Action
	cmd    rhythm.Command
}{
	{core.ActionConfirm, rhythm.CmdConfirm},
	{core.ActionSelectEasy, rhythm.CmdSelectEasy},
	{core.ActionSelectNormal, rhythm.CmdSelectNormal},
	{core.ActionPause, rhythm.CmdPause},
	{core.ActionBack, rhythm.CmdBack},
}

// New creates a game. A nil engine plays nothing.
func New(cfg config.Config, eng audio.Engine) *Game {
	if eng == nil {
		eng = audio.Nop{}
	}
	return &Game{cfg: cfg, audio: eng}
}

// SetRecords enables the best-score line on the game-over screen.
func (g *Game) SetRecords(r Records) {
	g.records = r
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "dance"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dance"
}

// Reset starts over at the menu with the configured default difficulty.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.audio.StopMusic()

	g.session = rhythm.NewSession(runtime.Seed, g.audio)
	if lvl, err := rhythm.ParseLevel(g.cfg.Gameplay.DefaultDifficulty); err == nil {
		g.session.SelectLevel(lvl)
	}
	g.prev = g.session.State()
}

// Step advances the session by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var rin rhythm.Input
	if !in.Empty() {
		rin = g.translate(in)
	}

	g.session.Tick(rin, g.runtime.FrameSeconds())
	g.syncState()

	return core.StepResult{State: g.State()}
}

// translate turns a frame into session commands and presses stamped with
// the current session clock.
func (g *Game) translate(in core.InputFrame) rhythm.Input {
	var rin rhythm.Input
	for _, ca := range commandActions {
		if in.Has(ca.action) {
			rin.Commands = append(rin.Commands, ca.cmd)
		}
	}
	now := g.session.Clock()
	for i, a := range core.LaneActions {
		if in.Has(a) {
			rin.Presses = append(rin.Presses, rhythm.Press{Lane: rhythm.Lanes[i], At: now})
		}
	}
	return rin
}

// syncState follows state transitions. The music loop runs while PLAYING,
// holds while PAUSED and stops everywhere else. Entering GAME_OVER looks
// up the stored best before this session is saved.
func (g *Game) syncState() {
	cur := g.session.State()
	if cur == g.prev {
		return
	}
	if cur == rhythm.StateGameOver {
		g.loadBest()
	}
	switch cur {
	case rhythm.StatePlaying:
		if g.prev == rhythm.StatePaused {
			g.audio.ResumeMusic()
		} else {
			g.audio.StartMusic()
		}
	case rhythm.StatePaused:
		g.audio.PauseMusic()
	default:
		g.audio.StopMusic()
	}
	g.prev = cur
}

func (g *Game) loadBest() {
	g.best, g.hasBest = 0, false
	if g.records == nil {
		return
	}
	best, err := g.records.HighScore(g.session.Level().String())
	if err != nil {
		return
	}
	g.best, g.hasBest = best, true
}

// Snapshot exposes the session for rendering and tests.
func (g *Game) Snapshot() rhythm.Snapshot {
	return g.session.Snapshot()
}

// History returns the score history of the current session.
func (g *Game) History() []rhythm.HistoryEntry {
	return g.session.History()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	b := g.session.Breakdown()
	st := g.session.State()
	return core.GameState{
		Score:      b.TotalScore,
		GameOver:   st == rhythm.StateGameOver,
		Paused:     st == rhythm.StatePaused,
		Exit:       g.session.ExitRequested(),
		Difficulty: g.session.Level().String(),
		MaxCombo:   b.MaxCombo,
		Perfect:    b.Perfect,
		Good:       b.Good,
		Miss:       b.Miss,
		Accuracy:   b.Accuracy,
	}
}
