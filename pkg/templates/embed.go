package templates

import (
	"embed"
	"io/fs"
)

//go:embed builtin/*.yaml
var embeddedTemplates embed.FS

// EmbeddedFS returns the bundled template documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "builtin")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
