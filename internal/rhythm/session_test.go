package rhythm

import (
	"reflect"
	"testing"
)

const testDT = 1.0 / 60.0

type recordingSink struct {
	sounds []Sound
}

func (r *recordingSink) Trigger(s Sound) {
	r.sounds = append(r.sounds, s)
}

func cmd(c ...Command) Input {
	return Input{Commands: c}
}

func TestSessionStateMachine(t *testing.T) {
	s := NewSession(1, nil)
	steps := []struct {
		in   Input
		want State
	}{
		{cmd(CmdPause), StateMenu}, // exit request, state unchanged
		{cmd(CmdConfirm), StatePlaying},
		{cmd(CmdConfirm), StatePlaying},
		{cmd(CmdPause), StatePaused},
		{cmd(CmdPause), StatePlaying},
		{cmd(CmdPause), StatePaused},
		{cmd(CmdBack), StateMenu},
		{cmd(CmdSelectNormal), StatePlaying},
	}
	for i, st := range steps {
		s.Tick(st.in, testDT)
		if s.State() != st.want {
			t.Fatalf("step %d: state = %s, expected %s", i, s.State(), st.want)
		}
	}
	if s.Level() != Normal {
		t.Errorf("level = %s, expected normal", s.Level())
	}
}

func TestSessionMenuExitRequest(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdBack), testDT)
	if !s.ExitRequested() {
		t.Error("back in menu should request exit")
	}
}

func TestSessionFirstCueImmediate(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdSelectEasy), testDT)
	if n := len(s.Snapshot().Cues); n != 1 {
		t.Errorf("cues after first tick = %d, expected 1", n)
	}
}

func TestSessionPauseFreezesPlay(t *testing.T) {
	s := NewSession(3, nil)
	s.Tick(cmd(CmdConfirm), testDT)
	for i := 0; i < 30; i++ {
		s.Tick(Input{}, testDT)
	}
	s.Tick(cmd(CmdPause), testDT)
	before := s.Snapshot()

	for i := 0; i < 120; i++ {
		s.Tick(Input{}, testDT)
	}
	after := s.Snapshot()

	if !reflect.DeepEqual(before.Cues, after.Cues) {
		t.Error("cues moved while paused")
	}
	if before.Elapsed != after.Elapsed {
		t.Errorf("elapsed changed while paused: %v -> %v", before.Elapsed, after.Elapsed)
	}
	if after.Clock <= before.Clock {
		t.Error("session clock should keep running while paused")
	}
}

func TestSessionEndsOnMisses(t *testing.T) {
	s := NewSession(5, nil)
	s.Tick(cmd(CmdSelectNormal), testDT)
	for i := 0; i < 60*60 && s.State() == StatePlaying; i++ {
		s.Tick(Input{}, testDT)
	}

	snap := s.Snapshot()
	if snap.State != StateGameOver {
		t.Fatalf("state = %s, expected GAME_OVER", snap.State)
	}
	if snap.Breakdown.Miss != MaxMisses {
		t.Errorf("misses = %d, expected %d", snap.Breakdown.Miss, MaxMisses)
	}
	if snap.Elapsed >= SessionDuration {
		t.Errorf("should end on misses before the time limit, elapsed %v", snap.Elapsed)
	}
}

// perfectPresses strikes every unresolved cue close to the line.
func perfectPresses(s *Session) []Press {
	var presses []Press
	for _, c := range s.Snapshot().Cues {
		if !c.Resolved() && c.Distance() <= 15 {
			presses = append(presses, Press{Lane: c.Lane, At: s.Clock()})
		}
	}
	return presses
}

func TestSessionEndsOnTime(t *testing.T) {
	sink := &recordingSink{}
	s := NewSession(9, sink)
	s.Tick(cmd(CmdSelectEasy), testDT)
	for i := 0; i < 100*60 && s.State() == StatePlaying; i++ {
		s.Tick(Input{Presses: perfectPresses(s)}, testDT)
	}

	snap := s.Snapshot()
	if snap.State != StateGameOver {
		t.Fatalf("state = %s, expected GAME_OVER", snap.State)
	}
	if snap.Elapsed < SessionDuration-testDT {
		t.Errorf("elapsed = %v, expected about %v", snap.Elapsed, SessionDuration)
	}
	b := snap.Breakdown
	if b.Miss != 0 || b.Good != 0 || b.Perfect < 50 {
		t.Fatalf("unexpected breakdown %+v", b)
	}
	if want := b.Perfect*PerfectScore + (b.Perfect/ComboBonusEvery)*ComboBonusScore; b.TotalScore != want {
		t.Errorf("total = %d, expected %d", b.TotalScore, want)
	}

	combos := 0
	for _, snd := range sink.sounds {
		if snd == SoundCombo {
			combos++
		}
	}
	if combos != b.Perfect/ComboBonusEvery {
		t.Errorf("combo sounds = %d, expected %d", combos, b.Perfect/ComboBonusEvery)
	}
}

func TestSessionMultiplier(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdSelectNormal), testDT)
	s.cues = []Cue{
		{Lane: LaneLeft, Position: JudgmentLineY + 5, Velocity: 150},
		{Lane: LaneRight, Position: JudgmentLineY + 30, Velocity: 150},
	}
	s.Tick(Input{Presses: []Press{
		{Lane: LaneLeft, At: s.Clock()},
		{Lane: LaneRight, At: s.Clock()},
	}}, 0)

	b := s.Breakdown()
	if b.TotalScore != 120+60 {
		t.Errorf("total = %d, expected 180", b.TotalScore)
	}
}

func TestSessionPressWithoutCueIsNoop(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdConfirm), testDT)
	s.cues = []Cue{{Lane: LaneUp, Position: JudgmentLineY + 200, Velocity: 100}}

	s.Tick(Input{Presses: []Press{
		{Lane: LaneUp, At: s.Clock()},
		{Lane: LaneDown, At: s.Clock()},
	}}, 0)

	if b := s.Breakdown(); b != (Breakdown{}) {
		t.Errorf("out-of-range presses changed the ledger: %+v", b)
	}
	if s.cues[0].Hit {
		t.Error("cue outside the acceptance radius should not be hit")
	}
}

func TestSessionHitCueIsInert(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdConfirm), testDT)
	s.cues = []Cue{{Lane: LaneDown, Position: JudgmentLineY, Velocity: 100}}

	s.Tick(Input{Presses: []Press{{Lane: LaneDown, At: s.Clock()}}}, 0)
	// well past the cooldown
	s.clock += 1
	s.Tick(Input{Presses: []Press{{Lane: LaneDown, At: s.Clock()}}}, 0)

	b := s.Breakdown()
	if b.Perfect != 1 || b.Miss != 0 {
		t.Errorf("breakdown = %+v, expected one PERFECT", b)
	}
}

func TestSessionCooldownLeavesCue(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdConfirm), testDT)
	s.cues = []Cue{
		{Lane: LaneLeft, Position: JudgmentLineY, Velocity: 100},
		{Lane: LaneLeft, Position: JudgmentLineY + 10, Velocity: 100},
	}
	now := s.Clock()
	s.Tick(Input{Presses: []Press{
		{Lane: LaneLeft, At: now},
		{Lane: LaneLeft, At: now + 0.05},
	}}, 0)

	if !s.cues[0].Hit || s.cues[1].Hit {
		t.Errorf("cooldown press should leave the second cue untouched: %+v", s.cues)
	}
	if b := s.Breakdown(); b.Perfect != 1 {
		t.Errorf("breakdown = %+v", b)
	}
}

func TestSessionPruneCountsMissOnce(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdConfirm), testDT)
	s.cues = []Cue{
		{Lane: LaneUp, Position: JudgmentLineY - MissRange - 1, Velocity: 100},
		{Lane: LaneDown, Position: JudgmentLineY - MissRange - 1, Velocity: 100, Hit: true},
	}
	s.prune(s.Clock())
	s.prune(s.Clock())

	if n := len(s.cues); n != 0 {
		t.Errorf("cues after prune = %d, expected 0", n)
	}
	if b := s.Breakdown(); b.Miss != 1 || b.Combo != 0 {
		t.Errorf("breakdown = %+v, expected exactly one miss", b)
	}
}

func TestSessionFeedbackExpiresWhilePaused(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdConfirm), testDT)
	s.cues = []Cue{{Lane: LaneRight, Position: JudgmentLineY, Velocity: 100}}
	s.Tick(Input{Presses: []Press{{Lane: LaneRight, At: s.Clock()}}}, testDT)
	s.Tick(cmd(CmdPause), testDT)

	if len(s.Snapshot().Feedback) != 1 {
		t.Fatal("expected live feedback")
	}
	for i := 0; i < 60; i++ {
		s.Tick(Input{}, testDT)
	}
	if len(s.Snapshot().Feedback) != 0 {
		t.Error("feedback should expire on the session clock while paused")
	}
}

func TestSessionRestartResets(t *testing.T) {
	s := NewSession(2, nil)
	s.Tick(cmd(CmdSelectNormal), testDT)
	for s.State() == StatePlaying {
		s.Tick(Input{}, testDT)
	}
	s.Tick(cmd(CmdConfirm), testDT)

	snap := s.Snapshot()
	if snap.State != StatePlaying || snap.Breakdown.Miss != 0 || len(snap.Cues) != 1 {
		t.Errorf("restart did not reset the session: %+v", snap.Breakdown)
	}
	if snap.Level != Normal {
		t.Error("restart should keep the level")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(12345, nil)
		s.Tick(cmd(CmdSelectNormal), testDT)
		for i := 0; i < 1200; i++ {
			s.Tick(Input{Presses: perfectPresses(s)}, testDT)
		}
		return s.Snapshot()
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and input should produce identical sessions")
	}
}

func TestSessionCooldownClearsAfterSixTicks(t *testing.T) {
	sink := &recordingSink{}
	s := NewSession(4, sink)
	s.Tick(cmd(CmdConfirm), testDT)

	const pairs = 100
	for i := 0; i < pairs; i++ {
		// clear the cooldown left by the previous pair
		for k := 0; k < 6; k++ {
			s.Tick(Input{}, testDT)
		}
		s.cues = []Cue{
			{Lane: LaneLeft, Position: JudgmentLineY},
			{Lane: LaneLeft, Position: JudgmentLineY + 5},
		}
		s.Tick(Input{Presses: []Press{{Lane: LaneLeft, At: s.Clock()}}}, testDT)
		for k := 0; k < 5; k++ {
			s.Tick(Input{}, testDT)
		}
		s.Tick(Input{Presses: []Press{{Lane: LaneLeft, At: s.Clock()}}}, testDT)
	}

	judged := 0
	for _, snd := range sink.sounds {
		if snd != SoundCombo {
			judged++
		}
	}
	if judged != 2*pairs {
		t.Errorf("judged strikes = %d, expected %d", judged, 2*pairs)
	}
}

func TestSessionTickBoundaries(t *testing.T) {
	tests := []struct {
		level         Level
		intervalTicks int
	}{
		{Easy, 90},
		{Normal, 60},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			s := NewSession(8, nil)
			s.SelectLevel(tt.level)

			var spawnTicks []int
			last := s.lastSpawn
			ticks := 0
			in := cmd(CmdConfirm)
			for ticks == 0 || s.State() == StatePlaying {
				s.Tick(in, testDT)
				in = Input{Presses: perfectPresses(s)}
				ticks++
				if s.lastSpawn != last {
					spawnTicks = append(spawnTicks, ticks)
					last = s.lastSpawn
				}
			}

			if s.State() != StateGameOver || s.Breakdown().Miss != 0 {
				t.Fatalf("state %s, breakdown %+v", s.State(), s.Breakdown())
			}
			if ticks != int(SessionDuration*60) {
				t.Errorf("played %d ticks, expected %d", ticks, int(SessionDuration*60))
			}
			for i := 1; i < len(spawnTicks); i++ {
				if gap := spawnTicks[i] - spawnTicks[i-1]; gap != tt.intervalTicks {
					t.Fatalf("spawn %d came %d ticks after the previous, expected %d", i, gap, tt.intervalTicks)
				}
			}
		})
	}
}

func TestSessionCompactsHitCues(t *testing.T) {
	s := NewSession(1, nil)
	s.Tick(cmd(CmdConfirm), testDT)
	s.cues = []Cue{{Lane: LaneDown, Position: JudgmentLineY, Velocity: 100}}
	s.Tick(Input{Presses: []Press{{Lane: LaneDown, At: s.Clock()}}}, 0)

	hitCues := func() int {
		n := 0
		for _, c := range s.Snapshot().Cues {
			if c.Hit {
				n++
			}
		}
		return n
	}

	for i := 0; i < 29; i++ {
		s.Tick(Input{}, testDT)
	}
	if hitCues() != 1 {
		t.Fatal("struck cue should stay while its feedback is live")
	}
	s.Tick(Input{}, testDT)
	s.Tick(Input{}, testDT)
	if n := hitCues(); n != 0 {
		t.Errorf("struck cues after feedback expired = %d, expected 0", n)
	}
	if b := s.Breakdown(); b.Perfect != 1 || b.Miss != 0 {
		t.Errorf("compaction changed the ledger: %+v", b)
	}
}
