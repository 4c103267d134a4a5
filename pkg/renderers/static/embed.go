package static

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded deck, slide and missing-template layouts.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
