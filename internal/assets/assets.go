// Package assets embeds the default theme and background image catalogs.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// FS returns the embedded catalogs rooted at the static directory, so that
// "themes.json" and "images.json" resolve directly.
func FS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
