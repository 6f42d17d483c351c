package config

import "strings"

// DifficultyPreset represents a named difficulty level. It caps the declared
// difficulty of the levels offered to the player.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyAll    DifficultyPreset = "all"
)

// Presets lists the presets in increasing order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyAll}

// ParsePreset parses a preset name case-insensitively. An empty name is "all".
func ParsePreset(s string) (DifficultyPreset, bool) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyAll, true
	}
	return p, p.Valid()
}

// Valid reports whether p is one of the known presets.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyAll:
		return true
	}
	return false
}
