package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start blockfall in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a mode and Tab to browse
the high scores. Leaving a paused or finished game (Esc/B) returns to the
menu.

Examples:
  blockfall menu
  blockfall menu --fps 30
  blockfall menu --db ./scores.db --difficulty easy`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closer, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
