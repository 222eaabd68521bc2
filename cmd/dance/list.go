package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dance/internal/rhythm"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulty levels",
	Long:  `Shows every difficulty with its cue speed, spawn interval and score multiplier.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	fmt.Println("Difficulty levels:")
	fmt.Println()

	fmt.Printf("  %-8s  %-8s  %s\n", "ID", "Travel", "Description")
	fmt.Printf("  %-8s  %-8s  %s\n", "--", "------", "-----------")

	for _, lvl := range rhythm.Levels {
		p := rhythm.ProfileFor(lvl)
		fmt.Printf("  %-8s  %-8s  %s\n", lvl, fmt.Sprintf("%.1fs", p.TravelTime()), p.Description())
	}

	fmt.Println()
	fmt.Println("Run 'dance play --difficulty <id>' to preselect a level in the menu.")
}
