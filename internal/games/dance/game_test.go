package dance

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dance/internal/config"
	"github.com/vovakirdan/tui-dance/internal/core"
	"github.com/vovakirdan/tui-dance/internal/rhythm"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// strikeFrame presses every lane that has an unresolved cue near the line.
func strikeFrame(g *Game) core.InputFrame {
	f := core.NewInputFrame()
	for _, c := range g.Snapshot().Cues {
		if !c.Resolved() && c.Distance() <= 15 {
			f.Set(core.LaneActions[c.Lane])
		}
	}
	return f
}

type fakeAudio struct {
	calls  []string
	sounds []rhythm.Sound
}

func (f *fakeAudio) Trigger(s rhythm.Sound) { f.sounds = append(f.sounds, s) }
func (f *fakeAudio) StartMusic()            { f.calls = append(f.calls, "start") }
func (f *fakeAudio) PauseMusic()            { f.calls = append(f.calls, "pause") }
func (f *fakeAudio) ResumeMusic()           { f.calls = append(f.calls, "resume") }
func (f *fakeAudio) StopMusic()             { f.calls = append(f.calls, "stop") }
func (f *fakeAudio) Close()                 {}

func TestGameDeterminism(t *testing.T) {
	run := func() core.GameState {
		g := New(config.DefaultConfig(), nil)
		g.Reset(testRuntime(12345))
		g.Step(frame(core.ActionSelectNormal))
		var st core.GameState
		for i := 0; i < 1500; i++ {
			st = g.Step(strikeFrame(g)).State
		}
		return st
	}

	s1, s2 := run(), run()
	if s1 != s2 {
		t.Errorf("Determinism failed: %+v vs %+v", s1, s2)
	}
	if s1.Perfect == 0 {
		t.Error("expected the strike bot to land hits")
	}
}

func TestGameDefaultDifficulty(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gameplay.DefaultDifficulty = "normal"
	g := New(cfg, nil)
	g.Reset(testRuntime(1))

	if st := g.State(); st.Difficulty != "normal" {
		t.Errorf("difficulty = %s, expected normal", st.Difficulty)
	}
	g.Step(frame(core.ActionConfirm))
	if g.Snapshot().Profile.CueSpeed != 150 {
		t.Error("confirm should start with the selected difficulty")
	}
}

func TestGameLanePressScores(t *testing.T) {
	g := New(config.DefaultConfig(), nil)
	g.Reset(testRuntime(7))
	g.Step(frame(core.ActionSelectEasy))

	for i := 0; i < 10*60; i++ {
		if st := g.Step(strikeFrame(g)).State; st.Perfect > 0 {
			if st.Score != 100 || st.Miss != 0 {
				t.Errorf("first hit state = %+v", st)
			}
			return
		}
	}
	t.Fatal("no PERFECT within ten seconds")
}

func TestGameMusicFollowsState(t *testing.T) {
	fa := &fakeAudio{}
	g := New(config.DefaultConfig(), fa)
	g.Reset(testRuntime(1))

	g.Step(frame(core.ActionConfirm)) // start
	g.Step(frame(core.ActionPause))   // pause
	g.Step(frame(core.ActionPause))   // resume
	g.Step(frame(core.ActionPause))   // pause
	g.Step(frame(core.ActionBack))    // menu
	g.Step(core.NewInputFrame())      // no change

	want := []string{"stop", "start", "pause", "resume", "pause", "stop"}
	if strings.Join(fa.calls, ",") != strings.Join(want, ",") {
		t.Errorf("music calls = %v, expected %v", fa.calls, want)
	}
}

func TestGameExitFromMenu(t *testing.T) {
	g := New(config.DefaultConfig(), nil)
	g.Reset(testRuntime(1))
	if g.Step(frame(core.ActionBack)).State.Exit != true {
		t.Error("back in the menu should request exit")
	}
}

func TestGamePauseState(t *testing.T) {
	g := New(config.DefaultConfig(), nil)
	g.Reset(testRuntime(1))
	g.Step(frame(core.ActionConfirm))

	if st := g.Step(frame(core.ActionPause)).State; !st.Paused {
		t.Error("expected paused state")
	}
	before := g.Snapshot().Elapsed
	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionLeft))
	}
	if g.Snapshot().Elapsed != before {
		t.Error("elapsed should not advance while paused")
	}
}

func TestGameOver(t *testing.T) {
	g := New(config.DefaultConfig(), nil)
	g.Reset(testRuntime(3))
	g.Step(frame(core.ActionSelectNormal))

	var st core.GameState
	for i := 0; i < 60*60 && !st.GameOver; i++ {
		st = g.Step(core.NewInputFrame()).State
	}
	if !st.GameOver || st.Miss != rhythm.MaxMisses || st.Accuracy != 0 {
		t.Errorf("unexpected final state %+v", st)
	}

	g.Step(frame(core.ActionConfirm))
	if st := g.State(); st.GameOver || st.Miss != 0 {
		t.Errorf("restart should reset the session: %+v", st)
	}
}
