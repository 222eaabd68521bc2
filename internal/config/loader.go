package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name under the user and local directories.
const FileName = "config.yaml"

// Load loads the dance configuration.
// Search order: customPath -> ~/.dance/config.yaml -> ./configs/dance.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names. A broken custom path is an error; broken files
// further down the search order are skipped.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg, err := Import(customPath, DefaultConfig())
		if err != nil {
			return DefaultConfig(), err
		}
		return cfg, nil
	}

	for _, path := range []string{UserConfigPath(), filepath.Join("configs", "dance.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := Import(path, DefaultConfig()); err == nil {
			return cfg, nil
		}
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultDanceYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Source = "embedded"
	cfg.Validate()
	return cfg, nil
}

// Import reads a config file and merges it over base.
func Import(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	cfg.Source = path
	cfg.Warnings = cfg.Validate()
	return cfg, nil
}

// Export writes cfg as YAML.
func Export(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: cannot encode: %w", err)
	}
	return enc.Close()
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	path = expandHome(path)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: cannot create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: cannot create %s: %w", path, err)
	}
	if err := Export(f, cfg); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns ~/.dance/config.yaml, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dance", FileName)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Validate clamps out-of-range values in place and returns a description
// of every correction made.
func (c *Config) Validate() []string {
	var fixes []string
	def := DefaultConfig()

	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		fixes = append(fixes, fmt.Sprintf("display.fps %d out of range, using %d", c.Display.FPS, def.Display.FPS))
		c.Display.FPS = def.Display.FPS
	}

	clampVol := func(name string, v *float64) {
		if *v < 0 || *v > 1 {
			clamped := clampF(*v, 0, 1)
			fixes = append(fixes, fmt.Sprintf("audio.%s %.2f clamped to %.2f", name, *v, clamped))
			*v = clamped
		}
	}
	clampVol("master_volume", &c.Audio.MasterVolume)
	clampVol("sfx_volume", &c.Audio.SFXVolume)
	clampVol("music_volume", &c.Audio.MusicVolume)

	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		fixes = append(fixes, fmt.Sprintf("audio.sample_rate %d out of range, using %d", c.Audio.SampleRate, def.Audio.SampleRate))
		c.Audio.SampleRate = def.Audio.SampleRate
	}

	switch d := strings.ToLower(strings.TrimSpace(c.Gameplay.DefaultDifficulty)); d {
	case "easy", "normal":
		c.Gameplay.DefaultDifficulty = d
	default:
		fixes = append(fixes, fmt.Sprintf("gameplay.default_difficulty %q unknown, using %s", c.Gameplay.DefaultDifficulty, def.Gameplay.DefaultDifficulty))
		c.Gameplay.DefaultDifficulty = def.Gameplay.DefaultDifficulty
	}

	dc := def.Controls
	bindings := []struct {
		name string
		keys *[]string
		def  []string
	}{
		{"left", &c.Controls.Left, dc.Left},
		{"down", &c.Controls.Down, dc.Down},
		{"up", &c.Controls.Up, dc.Up},
		{"right", &c.Controls.Right, dc.Right},
		{"pause", &c.Controls.Pause, dc.Pause},
		{"start", &c.Controls.Start, dc.Start},
		{"back", &c.Controls.Back, dc.Back},
		{"easy", &c.Controls.Easy, dc.Easy},
		{"normal", &c.Controls.Normal, dc.Normal},
	}
	for _, b := range bindings {
		if len(*b.keys) == 0 {
			fixes = append(fixes, fmt.Sprintf("controls.%s empty, using defaults", b.name))
			*b.keys = b.def
		}
	}

	return fixes
}

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
