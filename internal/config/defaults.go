package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default blockfall configuration.
// It matches defaults/blockfall.yaml and is used when the embedded file
// cannot be decoded.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Rows: 20,
			Cols: 10,
		},
		Timing: TimingConfig{
			GravityFrames:   48,
			SoftDropFrames:  2,
			LockDelayFrames: 30,
		},
		Display: DisplayConfig{
			PreviewCount: 4,
			Ghost:        true,
			CellWidth:    2,
		},
		Steering: SteeringConfig{
			Enabled: true,
			Slots:   0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionLines,
				MaxAt: 150,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  3.0,
				MinGravityFrames: 2,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
