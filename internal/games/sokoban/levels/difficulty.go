package levels

import (
	"fmt"
	"strings"
)

// Difficulty is the declared difficulty of a level.
type Difficulty int

const (
	Unknown Difficulty = iota
	Easy
	Medium
	Hard
)

// String returns the lower-case name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name. An empty string is Unknown.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return Unknown, nil
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Unknown, fmt.Errorf("unknown difficulty %q", s)
}

// PresetCeiling returns the hardest difficulty a preset admits.
// Presets are easy, medium, hard and all.
func PresetCeiling(preset string) (Difficulty, error) {
	if strings.EqualFold(preset, "all") || preset == "" {
		return Hard, nil
	}
	d, err := ParseDifficulty(preset)
	if err != nil || d == Unknown {
		return Unknown, fmt.Errorf("unknown difficulty preset %q", preset)
	}
	return d, nil
}

// Filter returns the levels whose difficulty does not exceed ceiling.
// Levels of Unknown difficulty always pass.
func Filter(lvls []Level, ceiling Difficulty) []Level {
	out := make([]Level, 0, len(lvls))
	for _, lvl := range lvls {
		if lvl.Difficulty == Unknown || lvl.Difficulty <= ceiling {
			out = append(out, lvl)
		}
	}
	return out
}
