// Package content embeds the default dungeon shipped with the game.
package content

import (
	"embed"
	"io/fs"

	"github.com/nathoo/dungeonexplorer/loader"
	"github.com/nathoo/dungeonexplorer/types"
)

//go:embed dungeon/*.lua
var files embed.FS

// Dir is the directory inside FS holding the default dungeon.
const Dir = "dungeon"

// FS returns the embedded world files.
func FS() fs.FS {
	return files
}

// Load compiles the embedded default dungeon.
func Load() (*types.WorldDef, error) {
	return loader.LoadFS(files, Dir)
}
