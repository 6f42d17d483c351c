// Package packs embeds the built-in level packs and registers them.
package packs

import (
	"embed"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/registry"
)

//go:embed classic mechanisms
var data embed.FS

// Builtin lists the embedded packs. Each ID is also its directory name.
var Builtin = []registry.PackInfo{
	{ID: "classic", Title: "Classic", Description: "Plain box pushing", Builtin: true},
	{ID: "mechanisms", Title: "Mechanisms", Description: "Doors, portals, one-way floors and arrow crates", Builtin: true},
}

func init() {
	for _, info := range Builtin {
		dir := info.ID
		registry.Register(info, func() *levels.Loader {
			return levels.NewFSLoader(data, dir)
		})
	}
}
