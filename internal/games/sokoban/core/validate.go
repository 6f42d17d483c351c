package core

import (
	"fmt"
	"maps"
	"slices"
)

// Validation error codes returned by NewWorld.
const (
	CodeMissingPlayer      = "MISSING_PLAYER"
	CodeTooManyPlayers     = "TOO_MANY_PLAYERS"
	CodeGoalBoxMismatch    = "GOAL_BOX_MISMATCH"
	CodeDanglingDoor       = "DANGLING_DOOR"
	CodeDuplicateDoor      = "DUPLICATE_DOOR"
	CodeDanglingButton     = "DANGLING_BUTTON"
	CodeUnpairedPortal     = "UNPAIRED_PORTAL"
	CodeTooManyPortals     = "TOO_MANY_PORTALS"
	CodeObjectOffGrid      = "OBJECT_OFF_GRID"
	CodeOverlappingObjects = "OVERLAPPING_OBJECTS"
)

// ValidationError contains details about a world that cannot be played.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewWorld validates tiles and objects and derives the door groups, portal
// pairs and goal set. The maps are copied; the caller keeps ownership of its
// arguments.
//
// A world is valid when:
//   - there is exactly one Player
//   - every object stands on a tile
//   - the number of Goal tiles equals the number of Box and DirBox objects
//   - every door id has exactly one Door and at least one Button
//   - every portal id has exactly two Portal tiles
func NewWorld(tiles map[Position]Tile, objects map[Position]Object) (*World, error) {
	w := &World{
		goals:   make(map[Position]struct{}),
		tiles:   maps.Clone(tiles),
		objects: maps.Clone(objects),
		doors:   make(map[uint32]DoorSet),
		portals: make(map[uint32]PortalPair),
	}
	if w.tiles == nil {
		w.tiles = make(map[Position]Tile)
	}
	if w.objects == nil {
		w.objects = make(Placement)
	}

	if err := w.validateObjects(); err != nil {
		return nil, err
	}
	if err := w.groupTiles(); err != nil {
		return nil, err
	}

	boxes := len(w.objects) - 1
	if boxes != len(w.goals) {
		return nil, ValidationError{
			Code:    CodeGoalBoxMismatch,
			Message: fmt.Sprintf("%d boxes but %d goals", boxes, len(w.goals)),
		}
	}

	return w, nil
}

// validateObjects checks player count and that objects stand on tiles.
func (w *World) validateObjects() error {
	players := 0
	for _, pos := range sortedPositions(w.objects) {
		if _, ok := w.tiles[pos]; !ok {
			return ValidationError{
				Code:    CodeObjectOffGrid,
				Message: fmt.Sprintf("object at %s is not on a tile", pos),
			}
		}
		if IsPlayer(w.objects[pos]) {
			players++
		}
	}

	switch {
	case players == 0:
		return ValidationError{Code: CodeMissingPlayer, Message: "level has no player"}
	case players > 1:
		return ValidationError{
			Code:    CodeTooManyPlayers,
			Message: fmt.Sprintf("level has %d players", players),
		}
	}
	return nil
}

// groupTiles derives goals, door groups and portal pairs from the tiles.
func (w *World) groupTiles() error {
	doorSeen := make(map[uint32]bool)
	portalCount := make(map[uint32]int)

	for _, pos := range sortedPositions(w.tiles) {
		switch t := w.tiles[pos].(type) {
		case Goal:
			w.goals[pos] = struct{}{}

		case Button:
			ds := w.doors[t.DoorID]
			ds.Buttons = append(ds.Buttons, pos)
			w.doors[t.DoorID] = ds

		case Door:
			if doorSeen[t.DoorID] {
				return ValidationError{
					Code:    CodeDuplicateDoor,
					Message: fmt.Sprintf("door %d appears more than once (again at %s)", t.DoorID, pos),
				}
			}
			doorSeen[t.DoorID] = true
			ds := w.doors[t.DoorID]
			ds.Door = pos
			w.doors[t.DoorID] = ds

		case Portal:
			pp := w.portals[t.PortalID]
			switch portalCount[t.PortalID] {
			case 0:
				pp.A = pos
			case 1:
				pp.B = pos
			default:
				return ValidationError{
					Code:    CodeTooManyPortals,
					Message: fmt.Sprintf("portal %d has more than two ends (extra at %s)", t.PortalID, pos),
				}
			}
			portalCount[t.PortalID]++
			w.portals[t.PortalID] = pp
		}
	}

	for _, id := range sortedIDs(w.doors) {
		ds := w.doors[id]
		if !doorSeen[id] {
			return ValidationError{
				Code:    CodeDanglingButton,
				Message: fmt.Sprintf("button for door %d but no such door", id),
			}
		}
		if len(ds.Buttons) == 0 {
			return ValidationError{
				Code:    CodeDanglingDoor,
				Message: fmt.Sprintf("door %d at %s has no buttons", id, ds.Door),
			}
		}
	}

	for _, id := range sortedIDs(portalCount) {
		if portalCount[id] != 2 {
			return ValidationError{
				Code:    CodeUnpairedPortal,
				Message: fmt.Sprintf("portal %d at %s has no twin", id, w.portals[id].A),
			}
		}
	}

	return nil
}

// sortedPositions returns map keys in a deterministic order so that the
// first reported validation problem is stable.
func sortedPositions[V any](m map[Position]V) []Position {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, Position.Compare)
	return keys
}

func sortedIDs[V any](m map[uint32]V) []uint32 {
	return slices.Sorted(maps.Keys(m))
}
