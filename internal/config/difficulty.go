package config

import "math"

// DifficultyManager calculates the gravity period from game progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the current difficulty level (0.0 to 1.0) from cleared lines
// or elapsed ticks, depending on the progression type.
func (d *DifficultyManager) Level(lines int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionLines:
		progress = float64(lines) / maxAt
	case ProgressionTime:
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GravityFrames returns the gravity period for the current difficulty.
// The fall rate grows from 1x at level 0 to (1 + speed_multiplier)x at
// level 1, and the period never drops below min_gravity_frames.
func (d *DifficultyManager) GravityFrames(base, lines int, ticks uint64) int {
	level := d.Level(lines, ticks)
	frames := int(math.Round(float64(base) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier)))
	return max(frames, d.cfg.Scaling.MinGravityFrames, 1)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
