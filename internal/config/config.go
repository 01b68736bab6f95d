// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import "sort"

// Match3Config contains all configuration for the match-3 puzzle game.
type Match3Config struct {
	Board      Match3Board         `yaml:"board"`
	Rules      Match3Rules         `yaml:"rules"`
	Hints      Match3Hints         `yaml:"hints"`
	Animation  Match3Animation     `yaml:"animation"`
	Layouts    map[string][]string `yaml:"layouts"`
	Difficulty DifficultyConfig    `yaml:"difficulty"`
}

// Match3Board defines board dimensions and palette.
type Match3Board struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Colors int    `yaml:"colors"`
	Layout string `yaml:"layout"` // Named obstacle layout; empty or "open" for a clear board
}

// Match3Rules defines win and loss conditions.
type Match3Rules struct {
	MoveLimit   int `yaml:"move_limit"`   // 0 disables the move budget
	TargetScore int `yaml:"target_score"` // 0 disables the score target
}

// Match3Hints defines hint timing.
type Match3Hints struct {
	DelayTicks int `yaml:"delay_ticks"` // Idle ticks before a hint appears; 0 disables hints
}

// Match3Animation defines tick budgets for board animation phases.
type Match3Animation struct {
	SwapTicks   int `yaml:"swap_ticks"`
	RejectTicks int `yaml:"reject_ticks"`
	ClearTicks  int `yaml:"clear_ticks"`
	FallTicks   int `yaml:"fall_ticks"`
}

// LayoutRows returns the obstacle mask rows for the configured layout.
// Rows use '#' for obstacle cells; anything else is an open cell.
// Returns nil for an unknown or open layout.
func (c Match3Config) LayoutRows() []string {
	if c.Board.Layout == "" || c.Board.Layout == "open" {
		return nil
	}
	return c.Layouts[c.Board.Layout]
}

// LayoutNames returns the configured layout names in sorted order,
// with "open" always first.
func (c Match3Config) LayoutNames() []string {
	names := make([]string, 0, len(c.Layouts)+1)
	names = append(names, "open")
	for name := range c.Layouts {
		if name == "open" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ColorRamp int `yaml:"color_ramp"` // Extra palette colors unlocked at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

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
