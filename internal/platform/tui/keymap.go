package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dance/internal/config"
	"github.com/vovakirdan/tui-dance/internal/core"
)

// KeyMap holds the game's key bindings, built from the controls config.
type KeyMap struct {
	Left       key.Binding
	Down       key.Binding
	Up         key.Binding
	Right      key.Binding
	Start      key.Binding
	Pause      key.Binding
	Back       key.Binding
	Easy       key.Binding
	Normal     key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// NewKeyMap builds bindings from the configured key names.
func NewKeyMap(c config.ControlsConfig) KeyMap {
	return KeyMap{
		Left:       binding(c.Left, "left lane"),
		Down:       binding(c.Down, "down lane"),
		Up:         binding(c.Up, "up lane"),
		Right:      binding(c.Right, "right lane"),
		Start:      binding(c.Start, "start"),
		Pause:      binding(c.Pause, "pause"),
		Back:       binding(c.Back, "menu"),
		Easy:       binding(c.Easy, "easy"),
		Normal:     binding(c.Normal, "normal"),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
	}
}

// DefaultKeyMap uses the built-in controls.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultControls())
}

func binding(names []string, desc string) key.Binding {
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = normalizeKey(n)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(names, "/"), desc),
	)
}

// normalizeKey maps config spellings to Bubble Tea key strings.
func normalizeKey(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "space":
		return " "
	case "escape":
		return "esc"
	case "return":
		return "enter"
	default:
		return n
	}
}

// ShortHelp returns key bindings for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Down, k.Up, k.Right, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Down, k.Up, k.Right},
		{k.Start, k.Easy, k.Normal},
		{k.Pause, k.Back, k.Quit, k.Screenshot},
	}
}

// actionBindings pairs each game action with its binding.
func (k KeyMap) actionBindings() []struct {
	action  core.Action
	binding key.Binding
} {
	return []struct {
		action  core.Action
		binding key.Binding
	}{
		{core.ActionLeft, k.Left},
		{core.ActionDown, k.Down},
		{core.ActionUp, k.Up},
		{core.ActionRight, k.Right},
		{core.ActionConfirm, k.Start},
		{core.ActionPause, k.Pause},
		{core.ActionBack, k.Back},
		{core.ActionSelectEasy, k.Easy},
		{core.ActionSelectNormal, k.Normal},
	}
}

// MapKeyToFrame sets every action bound to the key.
// Returns true if the key was a quit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if key.Matches(msg, k.Quit) {
		frame.Set(core.ActionQuit)
		return true
	}
	for _, ab := range k.actionBindings() {
		if key.Matches(msg, ab.binding) {
			frame.Set(ab.action)
		}
	}
	return false
}
