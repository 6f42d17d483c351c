package core

import "github.com/vovakirdan/sbokena/internal/config"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW            int // Screen width in characters
	ScreenH            int // Screen height in characters
	TickRate           int // Simulation ticks per second
	UndoLimit          int // Maximum undo depth, 0 for unlimited
	CompleteDelayTicks int // Ticks the level-complete screen stays up
	StartLevel         int // Level index to begin at
	Glyphs             config.Glyphs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:            80,
		ScreenH:            24,
		TickRate:           30,
		UndoLimit:          256,
		CompleteDelayTicks: 90,
		Glyphs:             config.DefaultConfig().Glyphs,
	}
}

// RuntimeFrom builds a RuntimeConfig from user configuration, keeping the
// default screen size.
func RuntimeFrom(c config.Config) RuntimeConfig {
	rc := DefaultConfig()
	rc.TickRate = c.TickRate
	rc.UndoLimit = c.UndoLimit
	rc.CompleteDelayTicks = c.CompleteDelayTicks
	rc.Glyphs = c.Glyphs
	return rc
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level    int  // Current level index
	Moves    int  // Moves made on the current level
	Solved   bool // Current level is complete, waiting to advance
	GameOver bool // Every level has been completed
	Paused   bool // Whether the game is paused
}

// Completion describes a level that was just solved.
type Completion struct {
	LevelID  string
	Moves    int
	Solution string // Moves as U/D/L/R letters
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Completed is set only on the tick a level becomes solved.
	Completed *Completion
}
