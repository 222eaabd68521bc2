package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dance/internal/rhythm"
	"github.com/vovakirdan/tui-dance/internal/storage"
)

var (
	flagScoreLimit int
	flagRecent     bool
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the top scores per difficulty, or for a single one.

--recent lists the latest sessions of every difficulty instead.
--clear deletes the stored scores of the named difficulty, or of all of
them when none is given.

Examples:
  dance scores
  dance scores normal --limit 20
  dance scores --recent
  dance scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest sessions instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete stored scores")
	scoresCmd.MarkFlagsMutuallyExclusive("recent", "clear")
}

func runScores(_ *cobra.Command, args []string) {
	levels := rhythm.Levels
	if len(args) == 1 {
		lvl, err := rhythm.ParseLevel(args[0])
		if err != nil {
			fail("%v", err)
		}
		levels = []rhythm.Level{lvl}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = clearScores(os.Stdout, store, levels)
	case flagRecent:
		err = printRecent(os.Stdout, store, flagScoreLimit)
	default:
		err = printTop(os.Stdout, store, levels, flagScoreLimit)
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
}

func printTop(w io.Writer, store *storage.Store, levels []rhythm.Level, limit int) error {
	for i, lvl := range levels {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := printLevel(w, store, lvl, limit); err != nil {
			return err
		}
	}
	return nil
}

func printLevel(w io.Writer, store *storage.Store, lvl rhythm.Level, limit int) error {
	scores, err := store.TopScores(lvl.String(), limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", rhythm.ProfileFor(lvl).Name)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintf(w, "Play 'dance play --difficulty %s' to set the first high score!\n", lvl)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-12s  %-7s  %s\n", "Rank", "Score", "Combo", "P/G/M", "Acc", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-12s  %-7s  %s\n", "----", "-----", "-----", "-----", "---", "----")
	for i, e := range scores {
		fmt.Fprintf(w, "  %-4d  %-8d  %-5d  %-12s  %6.2f%%  %s\n",
			i+1, e.Score, e.MaxCombo,
			fmt.Sprintf("%d/%d/%d", e.Perfect, e.Good, e.Miss),
			e.Accuracy, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats(lvl.String())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nBest: %d  Sessions: %d  Avg accuracy: %.2f%%\n",
		stats.HighScore, stats.Sessions, stats.AvgAccuracy)
	return nil
}

func printRecent(w io.Writer, store *storage.Store, limit int) error {
	scores, err := store.RecentScores(limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Recent Sessions\n\n")
	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-16s  %-8s  %-8s  %-5s  %s\n", "Date", "Level", "Score", "Combo", "Acc")
	fmt.Fprintf(w, "  %-16s  %-8s  %-8s  %-5s  %s\n", "----", "-----", "-----", "-----", "---")
	for _, e := range scores {
		fmt.Fprintf(w, "  %-16s  %-8s  %-8d  %-5d  %6.2f%%\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Difficulty, e.Score, e.MaxCombo, e.Accuracy)
	}
	return nil
}

func clearScores(w io.Writer, store *storage.Store, levels []rhythm.Level) error {
	for _, lvl := range levels {
		if err := store.ClearScores(lvl.String()); err != nil {
			return err
		}
		fmt.Fprintf(w, "Cleared %s scores\n", lvl)
	}
	return nil
}
