package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Width:  8,
			Height: 8,
			Colors: 6,
			Layout: "open",
		},
		Rules: Match3Rules{
			MoveLimit:   30,
			TargetScore: 5000,
		},
		Hints: Match3Hints{
			DelayTicks: 180, // 6 seconds at the default 30 fps
		},
		Animation: Match3Animation{
			SwapTicks:   4,
			RejectTicks: 6,
			ClearTicks:  8,
			FallTicks:   5,
		},
		Layouts: map[string][]string{
			"pillars": {
				"........",
				"........",
				"..#..#..",
				"........",
				"........",
				"..#..#..",
				"........",
				"........",
			},
			"corners": {
				"#......#",
				"........",
				"........",
				"........",
				"........",
				"........",
				"........",
				"#......#",
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				ColorRamp: 2,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_endless":
		return defaultMatch3YAML
	default:
		return nil
	}
}
