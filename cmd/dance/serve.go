package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dance/internal/audio"
	"github.com/vovakirdan/tui-dance/internal/games/dance"
	"github.com/vovakirdan/tui-dance/internal/platform/tui"
	"github.com/vovakirdan/tui-dance/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dance SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session starting at the difficulty menu.
Remote sessions are silent. Scores are stored per-server (all users share
the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dance/host_key

Examples:
  dance serve                           # Listen on :23234 with auto-generated key
  dance serve --ssh :2222               # Listen on port 2222
  dance serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	cfg, err := loadConfig(logger)
	if err != nil {
		fail("%v", err)
	}
	cfg.Audio.Enabled = false

	tickRate := cfg.Display.FPS
	if cmd.Flags().Changed("fps") {
		tickRate = flagFPS
	}
	keys := tui.NewKeyMap(cfg.Controls)

	srvCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    tickRate,
		Keys:        &keys,
		NewGame: func(store *storage.Store) tui.Game {
			g := dance.New(cfg, audio.Nop{})
			if store != nil {
				g.SetRecords(store)
			}
			return g
		},
	}

	server, err := tui.NewSSHServer(srvCfg, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting dance SSH server on %s\n", srvCfg.Address)
	fmt.Println(connectHint(srvCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}

// connectHint suggests an ssh command for the listen address.
func connectHint(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "Connect with: ssh " + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if port == "22" {
		return "Connect with: ssh " + host
	}
	return fmt.Sprintf("Connect with: ssh %s -p %s", host, port)
}
