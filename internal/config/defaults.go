package config

import (
	_ "embed"
)

//go:embed defaults/dance.yaml
var defaultDanceYAML []byte

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultDanceYAML))
	copy(out, defaultDanceYAML)
	return out
}

// DefaultConfig returns the built-in configuration.
// Keep in sync with defaults/dance.yaml.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			FPS:          60,
			ShowFeedback: true,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.7,
			SFXVolume:    0.8,
			MusicVolume:  0.6,
			SampleRate:   44100,
		},
		Gameplay: GameplayConfig{
			DefaultDifficulty: "easy",
		},
		Controls: DefaultControls(),
		Source:   "embedded",
	}
}

// DefaultControls returns the built-in key bindings.
func DefaultControls() ControlsConfig {
	return ControlsConfig{
		Left:   []string{"left", "a"},
		Down:   []string{"down", "s"},
		Up:     []string{"up", "w"},
		Right:  []string{"right", "d"},
		Pause:  []string{"esc", "p"},
		Start:  []string{"enter", "space"},
		Back:   []string{"q"},
		Easy:   []string{"1"},
		Normal: []string{"2"},
	}
}
