package rhythm

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-dance/internal/core"
)

// Judgment windows, as absolute distance from the judgment line.
const (
	PerfectRange = 20.0
	GoodRange    = 40.0
	MissRange    = 80.0 // outer acceptance radius for attempts
)

// Base scores per outcome before the difficulty multiplier.
const (
	PerfectScore = 100
	GoodScore    = 50
	MissScore    = 0
)

// Timing constants in seconds of session clock.
const (
	Cooldown         = 0.1
	FeedbackLifetime = 0.5
)

// timeEpsilon absorbs the rounding error of clocks built from repeated
// fixed steps, so six 1/60 s ticks still count as a full 0.1 s.
const timeEpsilon = 1e-9

// spanReached reports whether span covers at least d seconds.
func spanReached(span, d float64) bool {
	return span >= d-timeEpsilon
}

// Outcome is the result of one judged attempt.
type Outcome int

const (
	Perfect Outcome = iota
	Good
	Miss
	CooldownRejected
)

func (o Outcome) String() string {
	switch o {
	case Perfect:
		return "PERFECT"
	case Good:
		return "GOOD"
	case Miss:
		return "MISS"
	case CooldownRejected:
		return "COOLDOWN"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// BaseScore returns the unscaled score for a gradable outcome.
func (o Outcome) BaseScore() int {
	switch o {
	case Perfect:
		return PerfectScore
	case Good:
		return GoodScore
	case Miss:
		return MissScore
	default:
		panic(fmt.Sprintf("rhythm: outcome %s has no score", o))
	}
}

// IsHit reports whether the outcome extends the combo.
func (o Outcome) IsHit() bool {
	return o == Perfect || o == Good
}

var outcomeColors = map[Outcome]core.Color{
	Perfect: core.ColorGold,
	Good:    core.ColorBrightGreen,
	Miss:    core.ColorBrightRed,
}

// FarMissColor marks a MISS graded outside the outer radius. Session
// strikes only reach cues within MissRange, so only direct Judge callers
// produce it.
const FarMissColor = core.ColorDarkRed

// Color returns the display color of an outcome.
func (o Outcome) Color() core.Color {
	if c, ok := outcomeColors[o]; ok {
		return c
	}
	return core.ColorWhite
}

// Classify grades an absolute distance from the judgment line.
func Classify(distance float64) Outcome {
	d := math.Abs(distance)
	switch {
	case d <= PerfectRange:
		return Perfect
	case d <= GoodRange:
		return Good
	default:
		return Miss
	}
}

// Feedback is a transient on-screen judgment label.
type Feedback struct {
	Text  string
	At    float64
	Color core.Color
	Far   bool
}

// Age returns seconds since the feedback was created.
func (f Feedback) Age(now float64) float64 {
	return now - f.At
}

// Judge grades attempts and enforces a per-lane cooldown.
type Judge struct {
	last     [NumLanes]float64
	feedback []Feedback
}

// NewJudge returns a judge with no lane on cooldown.
func NewJudge() *Judge {
	j := &Judge{}
	j.Reset()
	return j
}

// Attempt grades a strike in lane at the given distance. A strike within
// Cooldown of the previous graded strike in the same lane returns
// CooldownRejected and changes nothing.
func (j *Judge) Attempt(lane Lane, distance, now float64) Outcome {
	lane.mustValid()
	if !spanReached(now-j.last[lane], Cooldown) {
		return CooldownRejected
	}

	outcome := Classify(distance)
	j.last[lane] = now

	far := math.Abs(distance) > MissRange
	color := outcome.Color()
	if far {
		color = FarMissColor
	}
	j.feedback = append(j.feedback, Feedback{
		Text:  outcome.String(),
		At:    now,
		Color: color,
		Far:   far,
	})
	return outcome
}

// Prune drops feedback older than FeedbackLifetime. Calling it twice with
// the same clock is a no-op.
func (j *Judge) Prune(now float64) {
	kept := j.feedback[:0]
	for _, f := range j.feedback {
		if !spanReached(now-f.At, FeedbackLifetime) {
			kept = append(kept, f)
		}
	}
	j.feedback = kept
}

// Feedback returns a copy of the live feedback queue, oldest first.
func (j *Judge) Feedback() []Feedback {
	out := make([]Feedback, len(j.feedback))
	copy(out, j.feedback)
	return out
}

// Reset clears cooldowns and feedback.
func (j *Judge) Reset() {
	for i := range j.last {
		j.last[i] = math.Inf(-1)
	}
	j.feedback = j.feedback[:0]
}
