// Package config provides YAML-based configuration loading and difficulty
// management for blockfall.
package config

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/tetris"
)

// BlockfallConfig contains all tunable parameters of a blockfall session.
type BlockfallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Display    DisplayConfig    `yaml:"display"`
	Steering   SteeringConfig   `yaml:"steering"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playfield dimensions in cells.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// TimingConfig defines frame-based timings. One frame is one simulation tick.
type TimingConfig struct {
	GravityFrames   int `yaml:"gravity_frames"`    // Ticks per automatic fall at level 0
	SoftDropFrames  int `yaml:"soft_drop_frames"`  // Repeat cadence while drop is held
	LockDelayFrames int `yaml:"lock_delay_frames"` // Failed falls before a resting piece locks
}

// DisplayConfig controls what the renderer draws.
type DisplayConfig struct {
	PreviewCount int  `yaml:"preview_count"` // Upcoming pieces shown, 0 hides the panel
	Ghost        bool `yaml:"ghost"`         // Draw the landing position
	CellWidth    int  `yaml:"cell_width"`    // Terminal columns per board cell (1 or 2)
}

// SteeringConfig controls absolute pointer steering (mouse column targeting).
type SteeringConfig struct {
	Enabled bool `yaml:"enabled"`
	Slots   int  `yaml:"slots"` // Target slots across the board, 0 means one per column
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// Progression types.
const (
	ProgressionLines = "lines"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Lines/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`   // Gravity speed-up factor at max difficulty
	MinGravityFrames int     `yaml:"min_gravity_frames"` // Fastest allowed gravity period
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Engine converts the board and timing sections into engine parameters.
func (c BlockfallConfig) Engine(seed int64) tetris.Config {
	return tetris.Config{
		Rows:            c.Board.Rows,
		Cols:            c.Board.Cols,
		GravityFrames:   c.Timing.GravityFrames,
		SoftDropFrames:  c.Timing.SoftDropFrames,
		LockDelayFrames: c.Timing.LockDelayFrames,
		Seed:            seed,
	}
}

// Validate reports the first invalid value in the configuration.
func (c BlockfallConfig) Validate() error {
	if err := c.Engine(0).Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	d := c.Display
	if d.PreviewCount < 0 || d.PreviewCount > tetris.PreviewLength {
		return fmt.Errorf("config: display.preview_count must be 0..%d, got %d", tetris.PreviewLength, d.PreviewCount)
	}
	if d.CellWidth != 1 && d.CellWidth != 2 {
		return fmt.Errorf("config: display.cell_width must be 1 or 2, got %d", d.CellWidth)
	}
	if c.Steering.Slots < 0 {
		return fmt.Errorf("config: steering.slots must not be negative, got %d", c.Steering.Slots)
	}

	diff := c.Difficulty
	if diff.InitialLevel < 0 || diff.InitialLevel > 1 {
		return fmt.Errorf("config: difficulty.initial_level must be within [0, 1], got %g", diff.InitialLevel)
	}
	switch diff.Progression.Type {
	case ProgressionLines, ProgressionTime, ProgressionNone:
	default:
		return fmt.Errorf("config: difficulty.progression.type %q is not one of lines, time, none", diff.Progression.Type)
	}
	if diff.Progression.MaxAt < 0 {
		return fmt.Errorf("config: difficulty.progression.max_at must not be negative, got %d", diff.Progression.MaxAt)
	}
	if diff.Scaling.SpeedMultiplier < 0 {
		return fmt.Errorf("config: difficulty.scaling.speed_multiplier must not be negative, got %g", diff.Scaling.SpeedMultiplier)
	}
	if diff.Scaling.MinGravityFrames < 1 {
		return fmt.Errorf("config: difficulty.scaling.min_gravity_frames must be at least 1, got %d", diff.Scaling.MinGravityFrames)
	}
	if c.Timing.GravityFrames < diff.Scaling.MinGravityFrames {
		return fmt.Errorf("config: timing.gravity_frames %d is faster than difficulty.scaling.min_gravity_frames %d",
			c.Timing.GravityFrames, diff.Scaling.MinGravityFrames)
	}
	return nil
}
