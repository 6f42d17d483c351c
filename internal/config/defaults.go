package config

import (
	_ "embed"
)

//go:embed defaults/sbokena.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		TickRate:           30,
		CompleteDelayTicks: 90, // 3 seconds at 30 ticks
		UndoLimit:          256,
		LevelsDir:          "~/.sbokena/levels",
		ReplayDir:          "~/.sbokena/replays",
		DBPath:             "~/.sbokena/records.db",
		Difficulty:         DifficultyAll,
		Theme:              "default",
		Glyphs: Glyphs{
			Wall:      Glyph{Char: "█", Color: "gray"},
			Floor:     Glyph{Char: "·", Color: "gray"},
			Goal:      Glyph{Char: "○", Color: "yellow"},
			Button:    Glyph{Char: "▫", Color: "magenta"},
			Door:      Glyph{Char: "▒", Color: "red"},
			DoorOpen:  Glyph{Char: "░", Color: "green"},
			Portal:    Glyph{Char: "◎", Color: "bright_blue"},
			DirFloor:  Glyph{Color: "cyan"},
			Player:    Glyph{Char: "@", Color: "bright_white"},
			Box:       Glyph{Char: "■", Color: "orange"},
			BoxOnGoal: Glyph{Char: "■", Color: "bright_green"},
			DirBox:    Glyph{Char: "▣", Color: "bright_yellow"},
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}
