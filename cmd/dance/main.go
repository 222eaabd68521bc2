// dance is a terminal rhythm game: strike the falling arrows as they
// cross the judgment line.
//
// Usage:
//
//	dance play               - Play (menu picks the difficulty)
//	dance list               - List difficulty levels
//	dance scores [level]     - Show high scores
//	dance board              - Interactive scoreboard
//	dance serve              - Start SSH server for remote play
//	dance config show|init   - Print or write the configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible sessions
//	--db <path>         - Set database path (default: ~/.dance/scores.db)
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Log file for interactive play (default: ~/.dance/dance.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dance",
	Short: "Dance - a rhythm game for your terminal",
	Long: `Dance is a four-lane rhythm game. Arrows fall toward the judgment
line; strike the matching lane as they cross it.

Available commands:
  play     - Start a session
  list     - Show difficulty levels
  scores   - View high scores
  board    - Interactive scoreboard
  serve    - Start SSH server for remote play
  config   - Show or write the configuration

Examples:
  dance play
  dance play --difficulty normal
  dance scores easy
  dance serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dance/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.dance/dance.log", "Log file used while playing")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dance",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to the --log-file path so the alt screen stays clean.
// The returned closer must be called on exit.
func fileLogger() (*log.Logger, func()) {
	path := expandHome(flagLogFile)
	if path == "" {
		return newLogger(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
