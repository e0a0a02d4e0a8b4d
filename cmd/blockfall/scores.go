package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagScoresAll         bool
	flagScoresClear       bool
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Without a mode, show a summary for every mode. With a mode, show its
top 10 games (or every game with --all).

Examples:
  blockfall scores
  blockfall scores blockfall_marathon
  blockfall scores blockfall --all
  blockfall scores blockfall --clear
  blockfall scores -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "List every recorded game instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the given mode")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse scores in the terminal UI")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresInteractive {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if len(args) == 0 {
		if flagScoresClear {
			return errors.New("--clear needs a mode")
		}
		return printSummary(out, store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'blockfall list' to see available modes)", gameID)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", registry.Title(gameID))
		return nil
	}

	return printScores(out, store, gameID)
}

// printScores prints the best games of one mode.
func printScores(out io.Writer, store *storage.Store, gameID string) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n", registry.Title(gameID))
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'blockfall play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Lines", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.Lines, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Games: %d  Lines cleared: %d\n", stats.HighScore, stats.GamesCount, stats.TotalLines)
	}
	return nil
}

// printSummary prints one line of statistics per registered mode.
func printSummary(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  %-22s  %5s  %8s  %10s  %10s  %s\n", "Mode", "Games", "Best", "Best lines", "Avg score", "Last played")
	for _, g := range registry.List() {
		s, ok := all[g.ID]
		if !ok {
			fmt.Fprintf(out, "  %-22s  %5d  %8s  %10s  %10s  %s\n", g.Title, 0, "-", "-", "-", "never")
			continue
		}
		last := "-"
		if !s.LastPlayed.IsZero() {
			last = s.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "  %-22s  %5d  %8d  %10d  %10.0f  %s\n", g.Title, s.GamesCount, s.HighScore, s.BestLines, s.AvgScore, last)
	}
	return nil
}
