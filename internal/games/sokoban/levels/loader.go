// Package levels provides level loading functionality for the sokoban game.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels/formats"
)

// Level represents a complete level definition.
type Level struct {
	ID         string
	Name       string
	Theme      string
	Difficulty Difficulty
	Solution   string
	Tiles      map[core.Position]core.Tile
	Objects    map[core.Position]core.Object
	Metadata   map[string]string
	FilePath   string
}

// NewWorld builds a fresh validated world for this level.
// Every call returns an independent world, so it doubles as a restart.
func (l *Level) NewWorld() (*core.World, error) {
	return core.NewWorld(l.Tiles, l.Objects)
}

// Title returns the level name, falling back to its ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	FS     fs.FS
	Root   string
	Logger *log.Logger
}

// NewLoader creates a level loader rooted at a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: "."}
}

// NewFSLoader creates a level loader over fsys, scanning from root.
func NewFSLoader(fsys fs.FS, root string) *Loader {
	return &Loader{FS: fsys, Root: root}
}

// CheckResult is the outcome of loading and validating one level file.
type CheckResult struct {
	Path  string
	Level Level
	Err   error
}

// Check loads every level file and reports each one, valid or not.
func (l *Loader) Check() ([]CheckResult, error) {
	var results []CheckResult

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err == nil {
			_, err = lvl.NewWorld()
		}
		results = append(results, CheckResult{Path: p, Level: lvl, Err: err})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	return results, nil
}

// LoadAll recursively scans and loads all valid level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	results, err := l.Check()
	if err != nil {
		return nil, err
	}

	levels := make([]Level, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			// Skip invalid files
			if l.Logger != nil {
				l.Logger.Warn("skipping level", "path", r.Path, "error", r.Err)
			}
			continue
		}
		levels = append(levels, r.Level)
	}

	slices.SortFunc(levels, func(a, b Level) int {
		return strings.Compare(a.ID, b.ID)
	})

	return levels, nil
}

// LoadFile loads a single level file from the loader's filesystem.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(data, p)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// ReadFile loads a single level file from disk.
func ReadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(data, p)
}

// CheckPath checks a file or every level file under a directory on disk.
func CheckPath(p string) ([]CheckResult, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		results, err := NewLoader(p).Check()
		for i := range results {
			results[i].Path = filepath.Join(p, results[i].Path)
		}
		return results, err
	}

	lvl, err := ReadFile(p)
	if err == nil {
		_, err = lvl.NewWorld()
	}
	return []CheckResult{{Path: p, Level: lvl, Err: err}}, nil
}

// parse routes data to the correct format parser by extension.
func parse(data []byte, p string) (Level, error) {
	ext := strings.ToLower(path.Ext(p))
	parsed, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	difficulty, err := ParseDifficulty(parsed.Difficulty)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:         parsed.ID,
		Name:       parsed.Name,
		Theme:      parsed.Theme,
		Difficulty: difficulty,
		Solution:   parsed.Solution,
		Tiles:      parsed.Tiles,
		Objects:    parsed.Objects,
		Metadata:   parsed.Metadata,
		FilePath:   p,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

// Format converts a level back into the JSON file format.
func Format(l Level) ([]byte, error) {
	return formats.MarshalJSON(formats.Level{
		ID:         l.ID,
		Name:       l.Name,
		Theme:      l.Theme,
		Difficulty: l.Difficulty.String(),
		Solution:   l.Solution,
		Tiles:      l.Tiles,
		Objects:    l.Objects,
		Metadata:   l.Metadata,
	})
}
