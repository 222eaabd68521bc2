package rhythm

import "math"

// Playfield geometry in abstract units. Cues start at StartY and travel
// toward smaller Y until they cross JudgmentLineY.
const (
	JudgmentLineY = 150.0
	StartY        = 600.0
	PlayfieldX    = 300.0
)

// Cue is a single falling arrow.
type Cue struct {
	Lane     Lane
	X        float64 // lane anchor, fixed at spawn
	Position float64 // current Y
	Velocity float64 // units per second toward the judgment line
	Hit      bool    // struck by an attempt (any outcome)
	HitAt    float64 // session clock of the strike
	Missed   bool    // passed the line without being struck
}

// Resolved reports whether the cue can no longer be judged.
func (c *Cue) Resolved() bool {
	return c.Hit || c.Missed
}

// Advance moves an unresolved cue toward the judgment line.
func (c *Cue) Advance(dt float64) {
	if c.Resolved() {
		return
	}
	c.Position -= c.Velocity * dt
}

// Distance is the absolute distance from the judgment line.
func (c *Cue) Distance() float64 {
	return math.Abs(c.Position - JudgmentLineY)
}

// Expired reports whether the cue is past the line by more than the
// outer acceptance radius and should be pruned.
func (c *Cue) Expired() bool {
	return c.Position < JudgmentLineY-MissRange
}
