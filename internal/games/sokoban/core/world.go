package core

import (
	"iter"
	"maps"
	"slices"
)

// DoorSet groups a door with the buttons that open it.
type DoorSet struct {
	Door    Position
	Buttons []Position
}

// PortalPair holds the two member positions of a portal id.
type PortalPair struct {
	A Position
	B Position
}

// Other returns the member of the pair that is not p.
func (pp PortalPair) Other(p Position) Position {
	if p == pp.A {
		return pp.B
	}
	return pp.A
}

// Placement maps positions to the objects standing on them.
// It is the only part of a World that changes between steps.
type Placement map[Position]Object

// World is the complete puzzle state. Tiles, doors, portals and goals are
// fixed at construction; only object placement changes, and only through Step
// or Restore.
type World struct {
	goals   map[Position]struct{}
	tiles   map[Position]Tile
	objects Placement
	doors   map[uint32]DoorSet
	portals map[uint32]PortalPair
}

// TileAt returns the tile at p. The second result is false for walls.
func (w *World) TileAt(p Position) (Tile, bool) {
	t, ok := w.tiles[p]
	return t, ok
}

// ObjectAt returns the object at p, if any.
func (w *World) ObjectAt(p Position) (Object, bool) {
	o, ok := w.objects[p]
	return o, ok
}

// Tiles iterates over all non-wall tiles in unspecified order.
func (w *World) Tiles() iter.Seq2[Position, Tile] {
	return maps.All(w.tiles)
}

// Objects iterates over all placed objects in unspecified order.
func (w *World) Objects() iter.Seq2[Position, Object] {
	return maps.All(w.objects)
}

// Goals returns the goal positions in sorted order.
func (w *World) Goals() []Position {
	goals := slices.Collect(maps.Keys(w.goals))
	slices.SortFunc(goals, Position.Compare)
	return goals
}

// Door returns the door group for id.
func (w *World) Door(id uint32) (DoorSet, bool) {
	ds, ok := w.doors[id]
	return ds, ok
}

// PortalPair returns the portal pair for id.
func (w *World) PortalPair(id uint32) (PortalPair, bool) {
	pp, ok := w.portals[id]
	return pp, ok
}

// PlayerPosition scans the placement for the player.
func (w *World) PlayerPosition() (Position, bool) {
	for pos, obj := range w.objects {
		if IsPlayer(obj) {
			return pos, true
		}
	}
	return Position{}, false
}

// IsDoorOpen reports whether at least one button of the door group is
// occupied by any object.
func (w *World) IsDoorOpen(id uint32) bool {
	ds, ok := w.doors[id]
	if !ok {
		return false
	}
	for _, b := range ds.Buttons {
		if _, occupied := w.objects[b]; occupied {
			return true
		}
	}
	return false
}

// CoveredGoals counts goals holding a non-player object.
func (w *World) CoveredGoals() int {
	covered := 0
	for g := range w.goals {
		if obj, ok := w.objects[g]; ok && !IsPlayer(obj) {
			covered++
		}
	}
	return covered
}

// GoalCount returns the number of goals.
func (w *World) GoalCount() int {
	return len(w.goals)
}

// IsComplete reports whether a world with at least one goal has every goal
// covered.
func (w *World) IsComplete() bool {
	return len(w.goals) > 0 && w.CoveredGoals() == len(w.goals)
}

// Bounds returns the smallest and largest tile coordinates.
func (w *World) Bounds() (minPos, maxPos Position) {
	first := true
	for p := range w.tiles {
		if first {
			minPos, maxPos = p, p
			first = false
			continue
		}
		minPos.X = min(minPos.X, p.X)
		minPos.Y = min(minPos.Y, p.Y)
		maxPos.X = max(maxPos.X, p.X)
		maxPos.Y = max(maxPos.Y, p.Y)
	}
	return minPos, maxPos
}

// Snapshot returns a copy of the current object placement.
func (w *World) Snapshot() Placement {
	return maps.Clone(w.objects)
}

// Restore replaces the object placement with a copy of p.
// p must come from Snapshot on this world.
func (w *World) Restore(p Placement) {
	w.objects = maps.Clone(p)
}

// portalExit returns the cell beyond the twin of the portal at entry, and
// the direction of travel out of it.
func (w *World) portalExit(entry Position, id uint32) (Position, Direction) {
	twin := w.portals[id].Other(entry)
	exitDir := Up
	if p, ok := w.tiles[twin].(Portal); ok {
		exitDir = p.InDir.Reverse()
	}
	return twin.Move(exitDir), exitDir
}
