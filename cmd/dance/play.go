package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dance/internal/audio"
	"github.com/vovakirdan/tui-dance/internal/config"
	"github.com/vovakirdan/tui-dance/internal/core"
	"github.com/vovakirdan/tui-dance/internal/games/dance"
	"github.com/vovakirdan/tui-dance/internal/platform/tui"
	"github.com/vovakirdan/tui-dance/internal/rhythm"
	"github.com/vovakirdan/tui-dance/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start the game at the difficulty menu.

Controls (defaults, see 'dance config show'):
  ←↓↑→ / A S W D - Strike a lane
  Enter/Space    - Start, restart after game over
  1 / 2          - Pick Easy / Normal and start
  Esc/P          - Pause, resume
  Q              - Back to menu
  Ctrl+C         - Quit

A session ends after 90 seconds or 20 misses.

Examples:
  dance play
  dance play --difficulty normal
  dance play --config ./my-dance.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty: easy, normal")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
}

func runPlay(cmd *cobra.Command, _ []string) {
	logger, closeLog := fileLogger()
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		fail("%v", err)
	}

	if flagDifficulty != "" {
		lvl, lvlErr := rhythm.ParseLevel(flagDifficulty)
		if lvlErr != nil {
			fail("%v", lvlErr)
		}
		cfg.Gameplay.DefaultDifficulty = lvl.String()
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	tickRate := cfg.Display.FPS
	if cmd.Flags().Changed("fps") {
		tickRate = flagFPS
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     flagSeed,
	}

	eng, err := audio.Open(cfg.Audio)
	if err != nil {
		logger.Warn("audio unavailable, playing silently", "error", err)
	}
	defer eng.Close()

	opts := tui.ModelOptions{Logger: logger}
	keys := tui.NewKeyMap(cfg.Controls)
	opts.Keys = &keys

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	game := dance.New(cfg, eng)
	if store != nil {
		game.SetRecords(store)
	}

	if runErr := tui.Run(game, runtime, opts); runErr != nil {
		fail("running game: %v", runErr)
	}
}

// loadConfig resolves the config and logs what was fixed up.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "source", cfg.Source)
	for _, w := range cfg.Warnings {
		logger.Warn("config corrected", "source", cfg.Source, "issue", w)
	}
	return cfg, nil
}
