package static

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
	rendertemplate "github.com/goliatone/go-slidegen/pkg/render/template"
	gotemplate "github.com/goliatone/go-slidegen/pkg/render/template/gotemplate"
)

const (
	// Name identifies the renderer in a registry.
	Name = "static"

	deckTemplate    = "templates/deck.tmpl"
	slideTemplate   = "templates/slide.tmpl"
	missingTemplate = "templates/missing.tmpl"

	// DefaultContainerWidth is used when RenderOptions.Container has no width.
	DefaultContainerWidth = 800

	// Theme partial keys replacing the slide and missing-template layouts.
	PartialSlide   = "static.slide"
	PartialMissing = "static.missing"

	defaultTextColor   = "#333333"
	placeholderFill    = "#d0d0d0"
	placeholderText    = "#666666"
	missingCardFill    = "#f5f5f5"
	missingCardBorder  = "#e0e0e0"
	placeholderLabelPx = 12
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	icon             string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPlaceholderIcon replaces the glyph shown in unresolved image slots.
func WithPlaceholderIcon(markup string) Option {
	return func(cfg *config) {
		if icon := render.SanitizeIcon(markup); icon != "" {
			cfg.icon = icon
		}
	}
}

// Renderer draws resolved slides as responsive HTML fragments suitable for
// thumbnails and read-only previews. Geometry is expressed as percentages of
// an aspect-ratio box, so the fragment scales with its parent.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	icon      string
}

// New constructs the static renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		icon:       render.DefaultPlaceholderIcon,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		if cfg.templateFS == nil {
			cfg.templateFS = TemplatesFS()
		}
		for _, name := range []string{deckTemplate, slideTemplate, missingTemplate} {
			if _, err := fs.Stat(cfg.templateFS, name); err != nil {
				return nil, fmt.Errorf("static renderer: template %q not found: %w", name, err)
			}
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("static renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, icon: cfg.icon}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return Name
}

// ContentType returns the MIME type for generated fragments.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RendersMissingTemplates opts into "Template not found" cards.
func (r *Renderer) RendersMissingTemplates() bool {
	return true
}

// Render produces one fragment per slide wrapped in a deck container.
func (r *Renderer) Render(ctx context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("static renderer: template renderer is nil")
	}
	if len(slides) == 0 {
		return nil, render.ErrNoSlides
	}

	containerWidth := opts.Container.Width
	if containerWidth <= 0 {
		containerWidth = DefaultContainerWidth
	}

	rendered := make([]string, 0, len(slides))
	for i, slide := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			name string
			data map[string]any
		)
		if slide.Missing() {
			name = partialOr(opts, PartialMissing, missingTemplate)
			data = map[string]any{
				"slide": missingView(i, slide, containerWidth),
				"label": opts.Label(render.LabelTemplateMissing),
			}
		} else {
			name = partialOr(opts, PartialSlide, slideTemplate)
			data = map[string]any{
				"slide": buildSlideView(i, slide, containerWidth, opts),
				"icon":  r.icon,
			}
		}
		html, err := r.templates.RenderTemplate(name, data)
		if err != nil {
			return nil, &render.SlideError{Index: i, SlideID: slide.SlideID, TemplateID: slide.TemplateID, Err: err}
		}
		rendered = append(rendered, strings.TrimRight(html, "\n"))
	}

	deck, err := r.templates.RenderTemplate(deckTemplate, map[string]any{
		"slides": rendered,
		"theme":  render.BuildThemeContext(opts.Theme),
	})
	if err != nil {
		return nil, fmt.Errorf("static renderer: render deck: %w", err)
	}
	return []byte(deck), nil
}

func partialOr(opts render.RenderOptions, key, fallback string) string {
	if partial := strings.TrimSpace(opts.Partial(key)); partial != "" {
		return partial
	}
	return fallback
}

type slideView struct {
	Index      int           `json:"index"`
	ID         string        `json:"id"`
	TemplateID string        `json:"templateId"`
	Style      string        `json:"style"`
	LabelStyle string        `json:"labelStyle,omitempty"`
	Elements   []elementView `json:"elements,omitempty"`
}

type elementView struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Style       string `json:"style"`
	ImageStyle  string `json:"imageStyle,omitempty"`
	Text        string `json:"text,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Link        string `json:"link,omitempty"`
}

func aspectBox(css *render.CSS, containerWidth, ratio float64) {
	css.Set("position", "relative").
		Set("width", "100%").
		Px("max-width", containerWidth).
		Set("height", "0").
		Percent("padding-bottom", ratio*100).
		Set("overflow", "hidden")
}

func buildSlideView(index int, slide model.ResolvedSlide, containerWidth float64, opts render.RenderOptions) slideView {
	tpl := slide.Template
	factor := layout.WidthScale(tpl.Size, containerWidth)

	var css render.CSS
	aspectBox(&css, containerWidth, tpl.Size.AspectRatio())
	css.Color("background-color", render.CanvasBackground(opts))

	view := slideView{
		Index:      index,
		ID:         slide.SlideID,
		TemplateID: slide.TemplateID,
		Style:      css.String(),
	}
	textColor := opts.Token("text", defaultTextColor)
	for _, el := range slide.Elements {
		if el.Source == model.SourceNone {
			continue
		}
		view.Elements = append(view.Elements, buildElementView(el, tpl.Size, factor, textColor))
	}
	return view
}

func buildElementView(el model.ResolvedElement, canvas model.Size, factor float64, textColor string) elementView {
	def := el.Element
	box := layout.Percent(def, canvas)

	var css render.CSS
	css.Set("position", "absolute").Percent("left", box.Left).Percent("top", box.Top)
	if !box.AutoWidth {
		css.Percent("width", box.Width)
	}
	if !box.AutoHeight {
		css.Percent("height", box.Height)
	}
	css.Set("z-index", fmt.Sprint(box.Z)).Set("box-sizing", "border-box")
	render.BoxStyle(&css, def.Style, factor)

	view := elementView{
		ID:   def.ID,
		Kind: string(def.Kind),
		Text: el.Text,
		Link: el.Link,
	}

	switch {
	case def.Kind == model.ElementText:
		render.TextStyle(&css, el, el.FontSize()*factor, textColor)
		render.LineClamp(&css, def.MaxLines())
	case el.HasImage():
		css.Set("overflow", "hidden")
		view.ImageURL = el.ImageURL
		view.Alt = def.ImageQuery
		var img render.CSS
		img.Set("width", "100%").Set("height", "100%").Set("object-fit", render.ObjectFit(def.Style)).Set("display", "block")
		view.ImageStyle = img.String()
	case el.Placeholder != "":
		view.Placeholder = el.Placeholder
		if def.Style.BackgroundColor == "" {
			css.Set("background-color", placeholderFill)
		}
		css.Set("color", placeholderText).
			Px("font-size", placeholderLabelPx).
			Set("display", "flex").
			Set("align-items", "center").
			Set("justify-content", "center").
			Set("text-align", "center").
			Set("overflow", "hidden")
	}
	view.Style = css.String()
	return view
}

func missingView(index int, slide model.ResolvedSlide, containerWidth float64) slideView {
	var css render.CSS
	aspectBox(&css, containerWidth, layout.DefaultAspect)
	css.Set("background-color", missingCardFill).Set("border", "1px solid "+missingCardBorder)

	var label render.CSS
	label.Set("position", "absolute").
		Set("inset", "0").
		Set("display", "flex").
		Set("flex-direction", "column").
		Set("align-items", "center").
		Set("justify-content", "center").
		Set("color", "#999999").
		Set("text-align", "center")

	return slideView{
		Index:      index,
		ID:         slide.SlideID,
		TemplateID: slide.TemplateID,
		Style:      css.String(),
		LabelStyle: label.String(),
	}
}
