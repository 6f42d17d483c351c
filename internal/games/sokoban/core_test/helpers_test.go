package core_test

import (
	"maps"
	"testing"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
)

// row returns floor tiles for x in [x0, x1] on row y.
func row(y, x0, x1 int) map[core.Position]core.Tile {
	tiles := make(map[core.Position]core.Tile)
	for x := x0; x <= x1; x++ {
		tiles[core.P(x, y)] = core.Floor{}
	}
	return tiles
}

func mustWorld(t *testing.T, tiles map[core.Position]core.Tile, objects map[core.Position]core.Object) *core.World {
	t.Helper()
	w, err := core.NewWorld(tiles, objects)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

func playerAt(t *testing.T, w *core.World) core.Position {
	t.Helper()
	p, ok := w.PlayerPosition()
	if !ok {
		t.Fatal("world has no player")
	}
	return p
}

// expectRejected checks that a step is refused with want and leaves the
// placement untouched.
func expectRejected(t *testing.T, w *core.World, dir core.Direction, want core.StepResult) {
	t.Helper()
	before := w.Snapshot()
	got := w.Step(dir)
	if got != want {
		t.Errorf("Step(%v): expected %v, got %v", dir, want, got)
	}
	if !maps.Equal(before, w.Snapshot()) {
		t.Errorf("Step(%v) returned %v but changed the placement", dir, got)
	}
}
