package config

import "math"

// CurriculumManager scales arena hazards as training progresses.
type CurriculumManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewCurriculumManager creates a new curriculum manager.
func NewCurriculumManager(cfg DifficultyConfig) *CurriculumManager {
	return &CurriculumManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether progression is active.
func (c *CurriculumManager) IsEnabled() bool {
	return c.cfg.Enabled && c.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) after the given number of
// finished episodes and wins.
func (c *CurriculumManager) Level(episodes, wins int) float64 {
	if !c.IsEnabled() {
		return c.initialLevel
	}

	maxAt := float64(c.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch c.cfg.Progression.Type {
	case "episodes":
		progress = float64(episodes) / maxAt
	case "wins":
		progress = float64(wins) / maxAt
	default:
		return c.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return c.initialLevel + progress*(1.0-c.initialLevel)
}

// RollSpeed returns the barrel roll speed for a level.
func (c *CurriculumManager) RollSpeed(base, level float64) float64 {
	return base * (1.0 + level*c.cfg.Scaling.SpeedMultiplier)
}

// SpawnInterval shrinks a spawn interval (seconds) for a level.
// The result never drops below a quarter of the base interval.
func (c *CurriculumManager) SpawnInterval(base, level float64) float64 {
	reduction := clampF(level*c.cfg.Scaling.SpawnReduction, 0.0, 0.75)
	return base * (1.0 - reduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
