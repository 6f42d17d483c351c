// Package config provides YAML-based configuration loading and difficulty
// presets for the sokoban platform.
package config

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Themes lists the menu themes the front end knows.
var Themes = []string{"default", "mono"}

// Config contains all user-tunable settings.
type Config struct {
	TickRate           int              `yaml:"tick_rate"`
	CompleteDelayTicks int              `yaml:"complete_delay_ticks"`
	UndoLimit          int              `yaml:"undo_limit"`
	LevelsDir          string           `yaml:"levels_dir"`
	ReplayDir          string           `yaml:"replay_dir"`
	DBPath             string           `yaml:"db_path"`
	Difficulty         DifficultyPreset `yaml:"difficulty"`
	Theme              string           `yaml:"theme"`
	Glyphs             Glyphs           `yaml:"glyphs"`
}

// Glyph is how one kind of cell is drawn.
type Glyph struct {
	Char  string `yaml:"char"`
	Color string `yaml:"color"`
}

// Rune returns the first rune of Char, or fallback when Char is empty.
func (g Glyph) Rune(fallback rune) rune {
	if g.Char == "" {
		return fallback
	}
	r, _ := utf8.DecodeRuneInString(g.Char)
	return r
}

// Glyphs holds the glyph for every drawable kind. Directional floors always
// use arrow characters; only their color is configurable.
type Glyphs struct {
	Wall      Glyph `yaml:"wall"`
	Floor     Glyph `yaml:"floor"`
	Goal      Glyph `yaml:"goal"`
	Button    Glyph `yaml:"button"`
	Door      Glyph `yaml:"door"`
	DoorOpen  Glyph `yaml:"door_open"`
	Portal    Glyph `yaml:"portal"`
	DirFloor  Glyph `yaml:"dir_floor"`
	Player    Glyph `yaml:"player"`
	Box       Glyph `yaml:"box"`
	BoxOnGoal Glyph `yaml:"box_on_goal"`
	DirBox    Glyph `yaml:"dir_box"`
}

// Validate checks that the config values are usable.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.CompleteDelayTicks < 0 {
		return fmt.Errorf("complete_delay_ticks must not be negative, got %d", c.CompleteDelayTicks)
	}
	if c.UndoLimit < 0 {
		return fmt.Errorf("undo_limit must not be negative, got %d", c.UndoLimit)
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", c.Difficulty)
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}
