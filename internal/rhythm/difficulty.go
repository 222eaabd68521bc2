package rhythm

import (
	"fmt"
	"strings"
)

// Level selects a difficulty profile.
type Level int

const (
	Easy Level = iota
	Normal
)

// Levels lists every selectable level.
var Levels = []Level{Easy, Normal}

func (l Level) String() string {
	switch l {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel accepts a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	default:
		return Easy, fmt.Errorf("rhythm: unknown difficulty %q", s)
	}
}

// Profile is the immutable parameter set for one level.
type Profile struct {
	Name            string
	CueSpeed        float64 // units per second
	SpawnInterval   float64 // seconds between spawns
	ScoreMultiplier float64
	LaneAnchors     [NumLanes]float64
}

var laneOffsets = [NumLanes]float64{30, 80, 130, 180}

func anchors() [NumLanes]float64 {
	var a [NumLanes]float64
	for i, off := range laneOffsets {
		a[i] = PlayfieldX + off
	}
	return a
}

var profiles = map[Level]Profile{
	Easy: {
		Name:            "Easy",
		CueSpeed:        100,
		SpawnInterval:   1.5,
		ScoreMultiplier: 1.0,
		LaneAnchors:     anchors(),
	},
	Normal: {
		Name:            "Normal",
		CueSpeed:        150,
		SpawnInterval:   1.0,
		ScoreMultiplier: 1.2,
		LaneAnchors:     anchors(),
	},
}

// ProfileFor returns the profile for a level. Unknown levels panic.
func ProfileFor(l Level) Profile {
	p, ok := profiles[l]
	if !ok {
		panic(fmt.Sprintf("rhythm: invalid level %d", int(l)))
	}
	return p
}

// Anchor returns the spawn X for a lane.
func (p Profile) Anchor(l Lane) float64 {
	l.mustValid()
	return p.LaneAnchors[l]
}

// Description is a short human summary of the profile.
func (p Profile) Description() string {
	return fmt.Sprintf("%s - speed %.0f, a cue every %.1fs, score x%.1f",
		p.Name, p.CueSpeed, p.SpawnInterval, p.ScoreMultiplier)
}

// TravelTime is the seconds a cue needs to reach the judgment line.
func (p Profile) TravelTime() float64 {
	return (StartY - JudgmentLineY) / p.CueSpeed
}
