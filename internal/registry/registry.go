// Package registry provides a global registry of level packs and the game
// contract the platform drives.
// Packs register themselves in init() functions, allowing the platform
// to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the identifier of the pack being played.
	// Used for records and replays.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset restarts the game from cfg.StartLevel.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Up, Undo, etc.).
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID          string
	Title       string
	Description string
	Builtin     bool
}

// Source returns a loader for a pack's level files.
type Source func() *levels.Loader

// GameFactory creates a game over an ordered list of levels.
type GameFactory func(info PackInfo, lvls []levels.Level) Game

type pack struct {
	info PackInfo
	src  Source
}

var (
	packs   = make(map[string]pack)
	newGame GameFactory
	mu      sync.RWMutex
)

// Register adds a pack to the registry.
// Typically called from a pack's init() function.
// Panics if a pack with the same ID is already registered.
func Register(info PackInfo, src Source) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[info.ID]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	packs[info.ID] = pack{info: info, src: src}
}

// SetGame installs the factory used by Create.
func SetGame(f GameFactory) {
	mu.Lock()
	defer mu.Unlock()
	newGame = f
}

// List returns information about all registered packs.
// Built-in packs come first, each group sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for _, p := range packs {
		result = append(result, p.info)
	}

	slices.SortFunc(result, func(a, b PackInfo) int {
		if a.Builtin != b.Builtin {
			if a.Builtin {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	return result
}

// Info returns the metadata of a registered pack.
func Info(id string) (PackInfo, error) {
	p, err := lookup(id)
	if err != nil {
		return PackInfo{}, err
	}
	return p.info, nil
}

// Loader returns a fresh loader for the pack's files.
func Loader(id string) (*levels.Loader, error) {
	p, err := lookup(id)
	if err != nil {
		return nil, err
	}
	return p.src(), nil
}

// Levels loads the valid levels of a pack that do not exceed ceiling, in ID order.
func Levels(id string, ceiling levels.Difficulty) ([]levels.Level, error) {
	l, err := Loader(id)
	if err != nil {
		return nil, err
	}
	all, err := l.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("registry: pack %q: %w", id, err)
	}
	return levels.Filter(all, ceiling), nil
}

// Level loads a single level of a pack. Its signature fits replay lookups.
func Level(packID, levelID string) (levels.Level, error) {
	l, err := Loader(packID)
	if err != nil {
		return levels.Level{}, err
	}
	return l.LoadByID(levelID)
}

// Create instantiates a game over the pack's levels.
// Returns an error if the pack is unknown or has no playable level.
func Create(id string, ceiling levels.Difficulty) (Game, error) {
	mu.RLock()
	f := newGame
	mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("registry: no game installed")
	}

	info, err := Info(id)
	if err != nil {
		return nil, err
	}
	lvls, err := Levels(id, ceiling)
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("registry: pack %q has no playable levels", id)
	}
	return f(info, lvls), nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := packs[id]
	return ok
}

func lookup(id string) (pack, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := packs[id]
	if !ok {
		return pack{}, fmt.Errorf("registry: unknown pack %q", id)
	}
	return p, nil
}
