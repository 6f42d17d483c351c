// Package sokoban provides the box-pushing puzzle game: level progression,
// move history and rendering on top of the step engine.
package sokoban

import (
	"errors"

	platformcore "github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/registry"
)

// Game implements the puzzle over an ordered list of levels.
type Game struct {
	pack   registry.PackInfo
	levels []levels.Level

	cfg        platformcore.RuntimeConfig
	levelIndex int
	world      *core.World
	loadErr    error

	tick    uint64
	moves   int
	path    []core.Direction
	history []historyEntry

	// Last engine result and its HUD message
	lastResult core.StepResult
	message    string

	best map[string]int

	// Game state flags
	solved        bool // Current level complete, waiting to advance
	completeTicks int
	won           bool
	paused        bool
}

var errNoLevels = errors.New("sokoban: no levels to play")

// historyEntry is the state before one accepted move.
type historyEntry struct {
	placement core.Placement
	moves     int
	pathLen   int
}

// Ensure Game implements registry.Game
var _ registry.Game = (*Game)(nil)

func init() {
	registry.SetGame(func(info registry.PackInfo, lvls []levels.Level) registry.Game {
		return New(info, lvls)
	})
}

// New creates a game over lvls. Call Reset before stepping it.
func New(info registry.PackInfo, lvls []levels.Level) *Game {
	return &Game{
		pack:   info,
		levels: lvls,
		cfg:    platformcore.DefaultConfig(),
		best:   make(map[string]int),
	}
}

// ID returns the pack identifier.
func (g *Game) ID() string {
	return g.pack.ID
}

// Title returns the pack's display name.
func (g *Game) Title() string {
	return g.pack.Title
}

// Reset starts over from cfg.StartLevel.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = cfg
	g.tick = 0
	g.won = false
	g.paused = false
	g.levelIndex = max(min(cfg.StartLevel, len(g.levels)-1), 0)
	g.loadLevel()
}

// loadLevel builds a fresh world for the current level and clears history.
func (g *Game) loadLevel() {
	g.moves = 0
	g.path = g.path[:0]
	g.history = g.history[:0]
	g.lastResult = core.Ok
	g.message = ""
	g.solved = false
	g.completeTicks = 0
	g.world = nil
	g.loadErr = nil

	if len(g.levels) == 0 {
		g.loadErr = errNoLevels
		return
	}
	g.world, g.loadErr = g.levels[g.levelIndex].NewWorld()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.world == nil {
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(platformcore.ActionPause) && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if g.won {
		if in.Has(platformcore.ActionRestart) {
			g.levelIndex = 0
			g.won = false
			g.loadLevel()
		}
		return platformcore.StepResult{State: g.State()}
	}

	// Level complete screen
	if g.solved {
		g.completeTicks++
		delay := g.cfg.CompleteDelayTicks
		if in.Has(platformcore.ActionConfirm) || (delay > 0 && g.completeTicks >= delay) {
			g.advanceLevel()
		}
		return platformcore.StepResult{State: g.State()}
	}

	switch {
	case in.Has(platformcore.ActionRestart):
		g.loadLevel()
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionUndo):
		g.Undo()
		return platformcore.StepResult{State: g.State()}
	}

	dir, ok := directionFrom(in)
	if !ok {
		return platformcore.StepResult{State: g.State()}
	}
	return g.move(dir)
}

// move applies one player move and records it when accepted.
func (g *Game) move(dir core.Direction) platformcore.StepResult {
	before := g.world.Snapshot()
	res := g.world.Step(dir)
	g.lastResult = res
	g.message = resultMessage(res)
	if res.Rejected() {
		return platformcore.StepResult{State: g.State()}
	}

	g.pushHistory(historyEntry{placement: before, moves: g.moves, pathLen: len(g.path)})
	g.moves++
	g.path = append(g.path, dir)

	if res != core.LevelComplete {
		return platformcore.StepResult{State: g.State()}
	}

	g.solved = true
	g.completeTicks = 0
	lvl := g.levels[g.levelIndex]
	if prev, ok := g.best[lvl.ID]; !ok || g.moves < prev {
		g.best[lvl.ID] = g.moves
	}
	return platformcore.StepResult{
		State: g.State(),
		Completed: &platformcore.Completion{
			LevelID:  lvl.ID,
			Moves:    g.moves,
			Solution: core.FormatSolution(g.path),
		},
	}
}

// pushHistory records an undo point, dropping the oldest beyond the limit.
func (g *Game) pushHistory(e historyEntry) {
	g.history = append(g.history, e)
	if limit := g.cfg.UndoLimit; limit > 0 && len(g.history) > limit {
		g.history = g.history[len(g.history)-limit:]
	}
}

// Undo reverts the last accepted move. It reports false when there is
// nothing to undo.
func (g *Game) Undo() bool {
	if g.world == nil || g.solved || len(g.history) == 0 {
		return false
	}
	e := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.world.Restore(e.placement)
	g.moves = e.moves
	g.path = g.path[:e.pathLen]
	g.lastResult = core.Ok
	g.message = "Undone"
	return true
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	if g.levelIndex >= len(g.levels)-1 {
		// Completed all levels
		g.solved = false
		g.won = true
		return
	}
	g.levelIndex++
	g.loadLevel()
}

// SetBest seeds the best known move counts, keyed by level ID.
func (g *Game) SetBest(best map[string]int) {
	for id, moves := range best {
		if prev, ok := g.best[id]; !ok || moves < prev {
			g.best[id] = moves
		}
	}
}

// Best returns the best known move count for a level, or 0.
func (g *Game) Best(levelID string) int {
	return g.best[levelID]
}

// LevelCount returns the number of levels in the game.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	if len(g.levels) == 0 {
		return levels.Level{}
	}
	return g.levels[g.levelIndex]
}

// World exposes the live world for inspection.
func (g *Game) World() *core.World {
	return g.world
}

// Err returns the error that prevented the current level from loading.
func (g *Game) Err() error {
	return g.loadErr
}

// Message returns the HUD message for the last action.
func (g *Game) Message() string {
	return g.message
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Level:    g.levelIndex,
		Moves:    g.moves,
		Solved:   g.solved,
		GameOver: g.won || g.world == nil,
		Paused:   g.paused,
	}
}

// directionFrom returns the first movement action set in the frame.
func directionFrom(in platformcore.InputFrame) (core.Direction, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.Up, true
	case in.Has(platformcore.ActionDown):
		return core.Down, true
	case in.Has(platformcore.ActionLeft):
		return core.Left, true
	case in.Has(platformcore.ActionRight):
		return core.Right, true
	}
	return 0, false
}

// resultMessage is the HUD text for an engine result.
func resultMessage(r core.StepResult) string {
	switch r {
	case core.HitWall:
		return "Bump!"
	case core.SlamOnDoor:
		return "Door is closed"
	case core.InvalidDirection:
		return "Can't go that way"
	case core.PushTwoObjects:
		return "Too heavy to push"
	case core.PushYourself:
		return "You're in your own way"
	case core.LevelComplete:
		return "Solved!"
	default:
		return ""
	}
}
