package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode, blockfall (classic) by default.

Controls:
  Left/Right, A/D   - Move
  Up, W, X          - Rotate clockwise
  Z                 - Rotate counter-clockwise
  Down, S           - Soft drop
  Space             - Hard drop
  Mouse             - Move the pointer over the well to steer, click to drop
  P                 - Pause
  R                 - Restart
  Esc/B             - Leave (when paused or over)
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot

Difficulty options:
  easy   - Slow start, longer lock delay, ghost piece on
  normal - Start at 30% speed
  hard   - Start at 70% speed, shorter lock delay, no ghost piece
  fixed  - No speed-up in marathon

Examples:
  blockfall play
  blockfall play blockfall_marathon
  blockfall play --difficulty hard
  blockfall play --config ./my-blockfall.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := blockfall.IDClassic
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'blockfall list' to see available modes)", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closer, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "mode", gameID, "seed", flagSeed, "config", flagConfig, "difficulty", flagDifficulty)
	if err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
