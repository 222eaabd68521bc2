package rhythm

import (
	"fmt"
	"math"
)

// Ledger tuning.
const (
	ComboBonusEvery      = 10
	ComboBonusScore      = 50
	ComboEffectLifetime  = 2.0
	ScoreHistoryLimit    = 100
	ScoreHistoryTruncate = 50
)

// ComboEffect is a transient "N COMBO" label created by every hit.
type ComboEffect struct {
	At    float64
	Combo int
}

// HistoryEntry records one scoring hit.
type HistoryEntry struct {
	Outcome Outcome
	Score   int
	Combo   int
	Total   int
	At      float64
}

// Breakdown is the read-only summary of a ledger.
type Breakdown struct {
	TotalScore int
	Combo      int
	MaxCombo   int
	Perfect    int
	Good       int
	Miss       int
	Accuracy   float64 // percent, rounded to 2 decimals
}

// Ledger accumulates score, combo and accuracy for one session.
// Record is the only mutation besides Prune and Reset.
type Ledger struct {
	total         int
	combo         int
	maxCombo      int
	perfect       int
	good          int
	miss          int
	totalAttempts int
	hitAttempts   int

	effects []ComboEffect
	history []HistoryEntry
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record applies one graded outcome. It returns the awarded base score
// (excluding any combo bonus) and whether a combo milestone was reached.
// CooldownRejected is not a gradable outcome and panics.
func (l *Ledger) Record(o Outcome, base int, now float64) (awarded int, milestone bool) {
	switch o {
	case Perfect, Good:
	case Miss:
		l.totalAttempts++
		l.miss++
		l.combo = 0
		return 0, false
	default:
		panic(fmt.Sprintf("rhythm: cannot record outcome %s", o))
	}

	l.totalAttempts++
	l.hitAttempts++
	if o == Perfect {
		l.perfect++
	} else {
		l.good++
	}
	l.combo++
	l.total += base

	if l.combo%ComboBonusEvery == 0 {
		l.total += ComboBonusScore
		milestone = true
	}

	l.effects = append(l.effects, ComboEffect{At: now, Combo: l.combo})
	if l.combo > l.maxCombo {
		l.maxCombo = l.combo
	}

	l.history = append(l.history, HistoryEntry{
		Outcome: o,
		Score:   base,
		Combo:   l.combo,
		Total:   l.total,
		At:      now,
	})
	if len(l.history) > ScoreHistoryLimit {
		l.history = append([]HistoryEntry(nil), l.history[len(l.history)-ScoreHistoryTruncate:]...)
	}

	return base, milestone
}

// Accuracy is the hit percentage, or 0 before any attempt.
func (l *Ledger) Accuracy() float64 {
	if l.totalAttempts == 0 {
		return 0
	}
	return float64(l.hitAttempts) / float64(l.totalAttempts) * 100
}

// Breakdown returns the current summary.
func (l *Ledger) Breakdown() Breakdown {
	return Breakdown{
		TotalScore: l.total,
		Combo:      l.combo,
		MaxCombo:   l.maxCombo,
		Perfect:    l.perfect,
		Good:       l.good,
		Miss:       l.miss,
		Accuracy:   math.Round(l.Accuracy()*100) / 100,
	}
}

func (l *Ledger) Total() int    { return l.total }
func (l *Ledger) Combo() int    { return l.combo }
func (l *Ledger) MaxCombo() int { return l.maxCombo }
func (l *Ledger) Misses() int   { return l.miss }

// Prune drops combo effects older than ComboEffectLifetime.
func (l *Ledger) Prune(now float64) {
	kept := l.effects[:0]
	for _, e := range l.effects {
		if !spanReached(now-e.At, ComboEffectLifetime) {
			kept = append(kept, e)
		}
	}
	l.effects = kept
}

// ComboEffects returns a copy of the live combo effects.
func (l *Ledger) ComboEffects() []ComboEffect {
	out := make([]ComboEffect, len(l.effects))
	copy(out, l.effects)
	return out
}

// History returns a copy of the bounded score history, oldest first.
func (l *Ledger) History() []HistoryEntry {
	out := make([]HistoryEntry, len(l.history))
	copy(out, l.history)
	return out
}

// Reset zeroes the ledger for a new session.
func (l *Ledger) Reset() {
	*l = Ledger{
		effects: l.effects[:0],
		history: l.history[:0],
	}
}
