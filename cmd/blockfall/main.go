// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall list              - List game modes
//	blockfall play [mode]       - Play a mode (default: blockfall)
//	blockfall menu              - Pick modes and view scores interactively
//	blockfall scores [mode]     - Show high scores
//	blockfall serve             - Start SSH server for remote play
//	blockfall config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.blockfall/scores.db)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/storage"

	// Import modes to register them
	_ "github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string

	// Game configuration flags, shared by play, menu, serve and config
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle for your terminal",
	Long: `Blockfall drops tetromino pieces into a well. Complete rows to clear
them and score; the game ends when a new piece has no room to spawn.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker and scoreboard
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  blockfall play
  blockfall play blockfall_marathon --difficulty hard
  blockfall menu
  blockfall serve --ssh :2222
  blockfall scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive commands log nowhere by default)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	for _, cmd := range []*cobra.Command{playCmd, menuCmd, serveCmd, configCmd} {
		addGameFlags(cmd)
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// addGameFlags registers the configuration flags on a command.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom blockfall config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}
