package gotemplate

import (
	"fmt"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-slidegen/pkg/render/template"
)

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// NewStandard builds a go-template engine with the slide filters (px,
// percent, trim) available. It fits the same renderer seam as Engine and
// adds go-template's pre and post render hooks.
func NewStandard(options ...gotemplatepkg.Option) (*gotemplatepkg.Engine, error) {
	registerSlideFilters()

	filterMu.Lock()
	defer filterMu.Unlock()
	engine, err := gotemplatepkg.NewRenderer(options...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: go-template engine: %w", err)
	}
	return engine, nil
}
