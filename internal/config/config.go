// Package config provides YAML-based configuration for the dance game:
// display, audio volumes, default difficulty and key bindings.
package config

// Config is the full user configuration.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Audio    AudioConfig    `yaml:"audio"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Controls ControlsConfig `yaml:"controls"`

	// Source is where the config was loaded from ("embedded" for defaults).
	Source string `yaml:"-"`
	// Warnings lists corrections Validate made while loading.
	Warnings []string `yaml:"-"`
}

// DisplayConfig controls rendering.
type DisplayConfig struct {
	FPS          int  `yaml:"fps"`
	ShowFeedback bool `yaml:"show_feedback"`
}

// AudioConfig holds volume levels in [0, 1].
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	MusicVolume  float64 `yaml:"music_volume"`
	SampleRate   int     `yaml:"sample_rate"`
}

// GameplayConfig holds session defaults.
type GameplayConfig struct {
	DefaultDifficulty string `yaml:"default_difficulty"` // "easy" or "normal"
}

// ControlsConfig maps each action to the key names that trigger it.
type ControlsConfig struct {
	Left   []string `yaml:"left"`
	Down   []string `yaml:"down"`
	Up     []string `yaml:"up"`
	Right  []string `yaml:"right"`
	Pause  []string `yaml:"pause"`
	Start  []string `yaml:"start"`
	Back   []string `yaml:"back"`
	Easy   []string `yaml:"easy"`
	Normal []string `yaml:"normal"`
}

// EffectiveSFX is the sound effect gain after the master volume.
func (a AudioConfig) EffectiveSFX() float64 {
	return a.MasterVolume * a.SFXVolume
}

// EffectiveMusic is the music gain after the master volume.
func (a AudioConfig) EffectiveMusic() float64 {
	return a.MasterVolume * a.MusicVolume
}
