package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dance/internal/platform/tui"
	"github.com/vovakirdan/tui-dance/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse high scores interactively",
	Long:  `Open the scoreboard. Tab switches difficulty, arrows scroll, q quits.`,
	Args:  cobra.NoArgs,
	Run:   runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if err := tui.RunScoreboard(store, width, height); err != nil {
		store.Close()
		fail("running scoreboard: %v", err)
	}
}
