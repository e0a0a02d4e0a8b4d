package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the blockfall configuration as YAML after the file lookup and the
difficulty preset have been applied. The output is a valid config file.

Lookup order:
  1. --config <path>
  2. ~/.blockfall/configs/blockfall.yaml
  3. ./configs/blockfall.yaml
  4. built-in defaults

Examples:
  blockfall config > ~/.blockfall/configs/blockfall.yaml
  blockfall config --difficulty hard
  blockfall config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults, ignoring config files")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagConfigDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		return err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyBlockfallPreset(&cfg, preset)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
