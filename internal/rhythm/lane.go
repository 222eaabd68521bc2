// Package rhythm is the timing core of the dance game: cues, judgment,
// scoring, spawning and the session state machine. It has no I/O and no
// logging; the platform drives it with fixed ticks.
package rhythm

import "fmt"

// Lane identifies one of the four cue columns.
type Lane int

const (
	LaneLeft Lane = iota
	LaneDown
	LaneUp
	LaneRight
)

// NumLanes is the number of cue columns.
const NumLanes = 4

// Lanes lists every lane in display order.
var Lanes = [NumLanes]Lane{LaneLeft, LaneDown, LaneUp, LaneRight}

// Valid reports whether l is one of the four lanes.
func (l Lane) Valid() bool {
	return l >= LaneLeft && l <= LaneRight
}

func (l Lane) mustValid() {
	if !l.Valid() {
		panic(fmt.Sprintf("rhythm: invalid lane %d", int(l)))
	}
}

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "LEFT"
	case LaneDown:
		return "DOWN"
	case LaneUp:
		return "UP"
	case LaneRight:
		return "RIGHT"
	default:
		return fmt.Sprintf("Lane(%d)", int(l))
	}
}

// Glyph returns the arrow rune drawn for the lane.
func (l Lane) Glyph() rune {
	switch l {
	case LaneLeft:
		return '←'
	case LaneDown:
		return '↓'
	case LaneUp:
		return '↑'
	case LaneRight:
		return '→'
	default:
		return '?'
	}
}
