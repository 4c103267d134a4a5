// Package slidegen renders template-driven slide decks to HTML and PPTX.
//
// Most callers only need the helpers in this package; the orchestrator,
// template registry and renderers live under pkg/ for finer control.
package slidegen

import (
	"context"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-slidegen/pkg/export/pptx"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/orchestrator"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/renderers/interactive"
	"github.com/goliatone/go-slidegen/pkg/templates"
	"github.com/goliatone/go-slidegen/pkg/themes"
)

type (
	Deck          = model.Deck
	Slide         = model.Slide
	Template      = model.Template
	RenderOptions = render.RenderOptions
)

// NewOrchestrator exposes the orchestrator constructor from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML renders deck with the named HTML renderer ("interactive" or
// "static"). An empty name uses the interactive renderer.
func RenderHTML(ctx context.Context, deck Deck, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	result, err := orchestrator.New(options...).Render(ctx, orchestrator.Request{
		Deck:     deck,
		Renderer: rendererName,
	})
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// ExportPPTX renders deck to a PPTX document.
func ExportPPTX(ctx context.Context, deck Deck, options ...orchestrator.Option) ([]byte, error) {
	result, err := orchestrator.New(options...).Render(ctx, orchestrator.Request{
		Deck:     deck,
		Renderer: pptx.Name,
	})
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// LoadTemplates reads every JSON and YAML template under dir on top of the
// built-in set. Ids defined in dir must not collide with built-in ids.
func LoadTemplates(dir string) (*templates.Registry, error) {
	registry, err := templates.Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return registry, nil
	}
	if err := registry.LoadFS(os.DirFS(dir)); err != nil {
		return nil, err
	}
	return registry, nil
}

// EmbeddedTemplates exposes the built-in template documents.
func EmbeddedTemplates() fs.FS {
	return templates.EmbeddedFS()
}

// RuntimeAssetsFS exposes the interactive renderer's stylesheet and editing
// runtime. Mount it under themes.AssetPrefix + "/<theme>/":
//
//	mux.Handle("/assets/themes/slidegen/",
//	  http.StripPrefix("/assets/themes/slidegen/",
//	    http.FileServerFS(slidegen.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return interactive.AssetsFS()
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithBuiltinThemes registers the built-in theme manifests.
func WithBuiltinThemes() orchestrator.Option {
	return orchestrator.WithThemeSelector(themes.Default())
}
