package render

import (
	"context"

	"github.com/goliatone/go-slidegen/pkg/model"
)

// Renderer converts resolved slides into a byte representation (HTML, PPTX,
// JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, slides []model.ResolvedSlide, options RenderOptions) ([]byte, error)
}

// MissingTemplateRenderer is implemented by renderers that can draw a
// placeholder card for slides whose template could not be found. Callers
// pass such slides with a nil Template instead of failing the request.
type MissingTemplateRenderer interface {
	Renderer
	RendersMissingTemplates() bool
}

// AcceptsMissing reports whether renderer opts into missing-template slides.
func AcceptsMissing(renderer Renderer) bool {
	m, ok := renderer.(MissingTemplateRenderer)
	return ok && m.RendersMissingTemplates()
}
