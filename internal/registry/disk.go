package registry

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
)

// RegisterDir registers every subdirectory of root as a pack named after it.
// A missing root is not an error. Subdirectories whose name collides with an
// already registered pack are skipped with a warning.
func RegisterDir(root string, logger *log.Logger) ([]string, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var added []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		id := e.Name()
		if Exists(id) {
			if logger != nil {
				logger.Warn("pack directory shadows a registered pack", "pack", id, "dir", root)
			}
			continue
		}
		dir := filepath.Join(root, id)
		Register(PackInfo{ID: id, Title: id, Description: dir}, func() *levels.Loader {
			l := levels.NewLoader(dir)
			l.Logger = logger
			return l
		})
		added = append(added, id)
	}
	return added, nil
}
