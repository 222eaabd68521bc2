package rhythm

import "testing"

func TestLedgerTenPerfects(t *testing.T) {
	l := NewLedger()
	for i := 1; i <= 10; i++ {
		awarded, milestone := l.Record(Perfect, 100, float64(i))
		if awarded != 100 {
			t.Errorf("hit %d awarded %d, expected 100", i, awarded)
		}
		if milestone != (i == 10) {
			t.Errorf("hit %d milestone = %v", i, milestone)
		}
	}
	b := l.Breakdown()
	if b.TotalScore != 1050 {
		t.Errorf("total = %d, expected 1050", b.TotalScore)
	}
	if b.Combo != 10 || b.MaxCombo != 10 || b.Perfect != 10 {
		t.Errorf("unexpected breakdown %+v", b)
	}
	if b.Accuracy != 100 {
		t.Errorf("accuracy = %v, expected 100", b.Accuracy)
	}
}

func TestLedgerMiss(t *testing.T) {
	l := NewLedger()
	l.Record(Good, 50, 0)
	l.Record(Good, 50, 0)

	awarded, milestone := l.Record(Miss, 0, 0)
	if awarded != 0 || milestone {
		t.Errorf("miss returned (%d, %v), expected (0, false)", awarded, milestone)
	}

	b := l.Breakdown()
	if b.Combo != 0 || b.MaxCombo != 2 || b.Miss != 1 || b.TotalScore != 100 {
		t.Errorf("unexpected breakdown %+v", b)
	}
	if b.Accuracy != 66.67 {
		t.Errorf("accuracy = %v, expected 66.67", b.Accuracy)
	}
	if len(l.History()) != 2 {
		t.Error("misses should not enter score history")
	}
}

func TestLedgerAccuracyNoAttempts(t *testing.T) {
	if acc := NewLedger().Accuracy(); acc != 0 {
		t.Errorf("accuracy = %v, expected 0", acc)
	}
}

func TestLedgerMaxComboMonotonic(t *testing.T) {
	l := NewLedger()
	seq := []Outcome{Perfect, Perfect, Good, Miss, Perfect, Miss, Good, Good, Good, Good}
	prevMax, prevTotal := 0, 0
	for _, o := range seq {
		l.Record(o, o.BaseScore(), 0)
		if l.MaxCombo() < prevMax {
			t.Fatalf("max combo decreased from %d to %d", prevMax, l.MaxCombo())
		}
		if l.MaxCombo() < l.Combo() {
			t.Fatalf("max combo %d below combo %d", l.MaxCombo(), l.Combo())
		}
		if l.Total() < prevTotal {
			t.Fatalf("total decreased from %d to %d", prevTotal, l.Total())
		}
		prevMax, prevTotal = l.MaxCombo(), l.Total()
	}
	if l.MaxCombo() != 4 {
		t.Errorf("max combo = %d, expected 4", l.MaxCombo())
	}
}

func TestLedgerCooldownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when recording COOLDOWN")
		}
	}()
	NewLedger().Record(CooldownRejected, 0, 0)
}

func TestLedgerComboEffects(t *testing.T) {
	l := NewLedger()
	l.Record(Perfect, 100, 1.0)
	l.Record(Perfect, 100, 2.0)

	effects := l.ComboEffects()
	if len(effects) != 2 || effects[1].Combo != 2 {
		t.Fatalf("effects = %+v", effects)
	}

	l.Prune(3.0)
	if len(l.ComboEffects()) != 1 {
		t.Error("effect at 1.0 should expire at 3.0")
	}
	l.Prune(3.0)
	if len(l.ComboEffects()) != 1 {
		t.Error("repeated prune should be a no-op")
	}
}

func TestLedgerHistoryBounded(t *testing.T) {
	l := NewLedger()
	for i := 0; i < ScoreHistoryLimit+1; i++ {
		l.Record(Good, 50, float64(i))
	}
	h := l.History()
	if len(h) != ScoreHistoryTruncate {
		t.Fatalf("history length = %d, expected %d", len(h), ScoreHistoryTruncate)
	}
	if last := h[len(h)-1]; last.Total != l.Total() || last.Combo != 101 {
		t.Errorf("newest entry = %+v", last)
	}
}

func TestLedgerReset(t *testing.T) {
	l := NewLedger()
	l.Record(Perfect, 100, 0)
	l.Record(Miss, 0, 0)
	l.Reset()

	if b := l.Breakdown(); b != (Breakdown{}) {
		t.Errorf("breakdown after reset = %+v", b)
	}
	if len(l.History()) != 0 || len(l.ComboEffects()) != 0 {
		t.Error("reset should clear queues")
	}
}
