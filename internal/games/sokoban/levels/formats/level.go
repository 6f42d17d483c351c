// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
)

// Tile and object type names used by every format.
const (
	TypeFloor    = "floor"
	TypeButton   = "button"
	TypeDoor     = "door"
	TypePortal   = "portal"
	TypeDirFloor = "dir_floor"
	TypeGoal     = "goal"

	TypePlayer = "player"
	TypeBox    = "box"
	TypeDirBox = "dir_box"
)

// TileEntry is one explicit tile in a level file.
type TileEntry struct {
	X        int     `yaml:"x" json:"x"`
	Y        int     `yaml:"y" json:"y"`
	Type     string  `yaml:"type" json:"type"`
	DoorID   *uint32 `yaml:"door_id,omitempty" json:"door_id,omitempty"`
	PortalID *uint32 `yaml:"portal_id,omitempty" json:"portal_id,omitempty"`
	InDir    string  `yaml:"in_dir,omitempty" json:"in_dir,omitempty"`
	Dir      string  `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// ObjectEntry is one explicit object in a level file.
type ObjectEntry struct {
	X    int    `yaml:"x" json:"x"`
	Y    int    `yaml:"y" json:"y"`
	Type string `yaml:"type" json:"type"`
	Dir  string `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID         string
	Name       string
	Theme      string
	Difficulty string
	Solution   string
	Tiles      map[core.Position]core.Tile
	Objects    map[core.Position]core.Object
	Metadata   map[string]string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

// Parse routes data to the parser for ext.
func Parse(data []byte, ext string) (Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// applyEntries adds the explicit tile and object lists to lvl. Explicit tiles
// replace whatever a map block put at the same cell. Objects from a map block
// may be replaced too, but two explicit objects on one cell are an error.
func applyEntries(lvl *Level, tiles []TileEntry, objects []ObjectEntry) error {
	for i, te := range tiles {
		t, err := te.toTile()
		if err != nil {
			return fmt.Errorf("tile %d at (%d,%d): %w", i, te.X, te.Y, err)
		}
		lvl.Tiles[core.P(te.X, te.Y)] = t
	}

	explicit := make(map[core.Position]bool, len(objects))
	for i, oe := range objects {
		pos := core.P(oe.X, oe.Y)
		if explicit[pos] {
			return core.ValidationError{
				Code:    core.CodeOverlappingObjects,
				Message: fmt.Sprintf("two objects at %s", pos),
			}
		}
		o, err := oe.toObject()
		if err != nil {
			return fmt.Errorf("object %d at %s: %w", i, pos, err)
		}
		explicit[pos] = true
		lvl.Objects[pos] = o
	}
	return nil
}

func (te TileEntry) toTile() (core.Tile, error) {
	switch te.Type {
	case TypeFloor:
		return core.Floor{}, nil
	case TypeGoal:
		return core.Goal{}, nil
	case TypeButton:
		return core.Button{DoorID: idOf(te.DoorID)}, nil
	case TypeDoor:
		return core.Door{DoorID: idOf(te.DoorID)}, nil
	case TypePortal:
		d, err := core.ParseDirection(te.InDir)
		if err != nil {
			return nil, fmt.Errorf("portal in_dir: %w", err)
		}
		return core.Portal{PortalID: idOf(te.PortalID), InDir: d}, nil
	case TypeDirFloor:
		d, err := core.ParseDirection(te.Dir)
		if err != nil {
			return nil, fmt.Errorf("dir_floor dir: %w", err)
		}
		return core.DirFloor{Dir: d}, nil
	default:
		return nil, fmt.Errorf("unknown tile type %q", te.Type)
	}
}

// idOf reads an optional id; a missing id is 0.
func idOf(id *uint32) uint32 {
	if id == nil {
		return 0
	}
	return *id
}

func (oe ObjectEntry) toObject() (core.Object, error) {
	switch oe.Type {
	case TypePlayer:
		return core.Player{}, nil
	case TypeBox:
		return core.Box{}, nil
	case TypeDirBox:
		d, err := core.ParseDirection(oe.Dir)
		if err != nil {
			return nil, fmt.Errorf("dir_box dir: %w", err)
		}
		return core.DirBox{Dir: d}, nil
	default:
		return nil, fmt.Errorf("unknown object type %q", oe.Type)
	}
}

func newLevel(id, name, theme, difficulty, solution string, metadata map[string]string) Level {
	return Level{
		ID:         id,
		Name:       name,
		Theme:      theme,
		Difficulty: difficulty,
		Solution:   solution,
		Tiles:      make(map[core.Position]core.Tile),
		Objects:    make(map[core.Position]core.Object),
		Metadata:   metadata,
	}
}

// tileEntries lists lvl's tiles as explicit entries in position order.
func tileEntries(lvl Level) []TileEntry {
	entries := make([]TileEntry, 0, len(lvl.Tiles))
	for _, pos := range sortedPositions(lvl.Tiles) {
		te := TileEntry{X: pos.X, Y: pos.Y}
		switch t := lvl.Tiles[pos].(type) {
		case core.Floor:
			te.Type = TypeFloor
		case core.Goal:
			te.Type = TypeGoal
		case core.Button:
			te.Type, te.DoorID = TypeButton, &t.DoorID
		case core.Door:
			te.Type, te.DoorID = TypeDoor, &t.DoorID
		case core.Portal:
			te.Type, te.PortalID, te.InDir = TypePortal, &t.PortalID, dirName(t.InDir)
		case core.DirFloor:
			te.Type, te.Dir = TypeDirFloor, dirName(t.Dir)
		}
		entries = append(entries, te)
	}
	return entries
}

// objectEntries lists lvl's objects as explicit entries in position order.
func objectEntries(lvl Level) []ObjectEntry {
	entries := make([]ObjectEntry, 0, len(lvl.Objects))
	for _, pos := range sortedPositions(lvl.Objects) {
		oe := ObjectEntry{X: pos.X, Y: pos.Y}
		switch o := lvl.Objects[pos].(type) {
		case core.Player:
			oe.Type = TypePlayer
		case core.Box:
			oe.Type = TypeBox
		case core.DirBox:
			oe.Type, oe.Dir = TypeDirBox, dirName(o.Dir)
		}
		entries = append(entries, oe)
	}
	return entries
}

func sortedPositions[V any](m map[core.Position]V) []core.Position {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, core.Position.Compare)
	return keys
}

func dirName(d core.Direction) string {
	return strings.ToLower(d.String())
}
