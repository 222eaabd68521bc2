package core

// Action represents a semantic game action, abstracted from physical key presses.
// The dance game maps lane actions onto cue strikes and the rest onto session commands.
type Action int

const (
	ActionNone         Action = iota
	ActionLeft                // strike the LEFT lane
	ActionDown                // strike the DOWN lane
	ActionUp                  // strike the UP lane
	ActionRight               // strike the RIGHT lane
	ActionConfirm             // Enter - start / restart
	ActionBack                // Escape in menus, Q while paused
	ActionPause               // Escape while playing or paused
	ActionSelectEasy          // 1 - pick Easy and start
	ActionSelectNormal        // 2 - pick Normal and start
	ActionQuit                // Ctrl+C - exit the program
)

// LaneActions lists the strike actions in lane order.
var LaneActions = [4]Action{ActionLeft, ActionDown, ActionUp, ActionRight}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionDown:
		return "Down"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionSelectEasy:
		return "SelectEasy"
	case ActionSelectNormal:
		return "SelectNormal"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
