package sokoban

import (
	"slices"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateSolved   GameStateType = "level_solved"
	StateWon      GameStateType = "pack_complete"
	StatePaused   GameStateType = "paused"
	StateNoLevels GameStateType = "no_levels"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Pack     string
	Level    int // 1-indexed for display
	LevelID  string
	Moves    int
	Solution string
	Player   core.Position
	Boxes    []core.Position // Box and DirBox positions, sorted
	Covered  int
	Goals    int
	UndoLeft int
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.world == nil:
		state = StateNoLevels
	case g.paused:
		state = StatePaused
	case g.won:
		state = StateWon
	case g.solved:
		state = StateSolved
	}

	s := Snapshot{
		Tick:     g.tick,
		Pack:     g.pack.ID,
		Level:    g.levelIndex + 1,
		LevelID:  g.Level().ID,
		Moves:    g.moves,
		Solution: core.FormatSolution(g.path),
		UndoLeft: len(g.history),
		State:    state,
	}
	if g.world == nil {
		return s
	}

	s.Player, _ = g.world.PlayerPosition()
	for pos, obj := range g.world.Objects() {
		if !core.IsPlayer(obj) {
			s.Boxes = append(s.Boxes, pos)
		}
	}
	slices.SortFunc(s.Boxes, core.Position.Compare)
	s.Covered = g.world.CoveredGoals()
	s.Goals = g.world.GoalCount()
	return s
}
