package interactive

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
	Name = "interactive"

	pageTemplate  = "templates/page.tmpl"
	slideTemplate = "templates/slide.tmpl"

	// PartialSlide is the theme partial key that replaces the slide template.
	PartialSlide = "interactive.slide"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	icon             string
	stylesheet       string
	script           string
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

// WithPlaceholderIcon replaces the camera glyph shown in unresolved image
// slots. SVG markup is sanitized; markup that sanitizes to nothing keeps the
// default.
func WithPlaceholderIcon(markup string) Option {
	return func(cfg *config) {
		if icon := render.SanitizeIcon(markup); icon != "" {
			cfg.icon = icon
		}
	}
}

// WithStylesheet replaces the inlined stylesheet.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = css
	}
}

// Renderer draws resolved slides as an editable HTML document. Each slide
// keeps its native pixel layout inside a canvas scaled to the container.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	icon       string
	stylesheet string
	script     string
}

// New constructs the interactive renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		icon:       render.DefaultPlaceholderIcon,
		stylesheet: readAsset(StylesheetName),
		script:     readAsset(RuntimeScriptName),
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
		for _, name := range []string{pageTemplate, slideTemplate} {
			if _, err := fs.Stat(cfg.templateFS, name); err != nil {
				return nil, fmt.Errorf("interactive renderer: template %q not found: %w", name, err)
			}
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("interactive renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		icon:       cfg.icon,
		stylesheet: cfg.stylesheet,
		script:     cfg.script,
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return Name
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces a complete HTML document for slides.
func (r *Renderer) Render(ctx context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("interactive renderer: template renderer is nil")
	}
	if len(slides) == 0 {
		return nil, render.ErrNoSlides
	}

	slideName := slideTemplate
	if partial := strings.TrimSpace(opts.Partial(PartialSlide)); partial != "" {
		slideName = partial
	}

	rendered := make([]string, 0, len(slides))
	for i, slide := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if slide.Missing() {
			return nil, &render.SlideError{Index: i, SlideID: slide.SlideID, TemplateID: slide.TemplateID, Err: errors.New("template not found")}
		}
		html, err := r.templates.RenderTemplate(slideName, map[string]any{
			"slide":      buildSlideView(i, slide, opts),
			"editable":   opts.Editable,
			"action":     opts.ImageAction,
			"icon":       r.icon,
			"regenerate": opts.Label(render.LabelImageRegenerate),
		})
		if err != nil {
			return nil, &render.SlideError{Index: i, SlideID: slide.SlideID, TemplateID: slide.TemplateID, Err: err}
		}
		rendered = append(rendered, strings.TrimRight(html, "\n"))
	}

	title := opts.Title
	if title == "" && slides[0].Template != nil {
		title = slides[0].Template.Name
	}
	lang := opts.Locale
	if lang == "" {
		lang = "en"
	}

	page, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"lang":       lang,
		"title":      title,
		"stylesheet": r.stylesheet,
		"script":     r.script,
		"editable":   opts.Editable,
		"dark":       opts.Dark,
		"theme":      render.BuildThemeContext(opts.Theme),
		"slides":     rendered,
	})
	if err != nil {
		return nil, fmt.Errorf("interactive renderer: render page: %w", err)
	}
	return []byte(page), nil
}

type slideView struct {
	Index       int           `json:"index"`
	ID          string        `json:"id"`
	TemplateID  string        `json:"templateId"`
	Scale       float64       `json:"scale"`
	OuterStyle  string        `json:"outerStyle"`
	CanvasStyle string        `json:"canvasStyle"`
	Elements    []elementView `json:"elements"`
}

type elementView struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Slot        string `json:"slot"`
	Style       string `json:"style"`
	ImageStyle  string `json:"imageStyle,omitempty"`
	Text        string `json:"text,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Query       string `json:"query,omitempty"`
	Link        string `json:"link,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

func buildSlideView(index int, slide model.ResolvedSlide, opts render.RenderOptions) slideView {
	tpl := slide.Template
	scale := layout.Scale(tpl.Size, opts.Container)

	var outer render.CSS
	outer.Px("width", tpl.Size.Width*scale).Px("height", tpl.Size.Height*scale)

	var canvas render.CSS
	canvas.Px("width", tpl.Size.Width).
		Px("height", tpl.Size.Height).
		Set("transform", "scale("+gotemplate.FormatNumber(scale)+")").
		Color("background-color", render.CanvasBackground(opts))

	view := slideView{
		Index:       index,
		ID:          slide.SlideID,
		TemplateID:  slide.TemplateID,
		Scale:       scale,
		OuterStyle:  outer.String(),
		CanvasStyle: canvas.String(),
	}
	textColor := opts.Token("text", "")
	for _, el := range slide.Elements {
		if el.Source != model.SourceNone {
			view.Elements = append(view.Elements, buildElementView(el, textColor))
			continue
		}
		if !opts.Editable {
			continue
		}
		// Empty slots stay editable: text becomes an empty editable box and
		// images a "Select Image" click target.
		var hint string
		if el.Element.Kind != model.ElementText {
			el.Placeholder = opts.Label(render.LabelImageSelect)
			hint = opts.Label(render.LabelImageAdd)
		}
		ev := buildElementView(el, textColor)
		ev.Query = el.Element.ImageQuery
		ev.Hint = hint
		view.Elements = append(view.Elements, ev)
	}
	return view
}

func buildElementView(el model.ResolvedElement, textColor string) elementView {
	def := el.Element
	box := layout.BoxFor(def)

	var css render.CSS
	css.Px("left", box.X).Px("top", box.Y)
	if !box.AutoWidth {
		css.Px("width", box.Width)
	}
	if !box.AutoHeight {
		css.Px("height", box.Height)
	}
	css.Set("z-index", fmt.Sprint(box.Z))
	render.BoxStyle(&css, def.Style, 1)

	view := elementView{
		ID:    def.ID,
		Kind:  string(def.Kind),
		Slot:  def.Key(),
		Text:  el.Text,
		Link:  el.Link,
		Query: def.ImageQuery,
	}

	switch {
	case def.Kind == model.ElementText:
		render.TextStyle(&css, el, el.FontSize(), textColor)
		render.LineClamp(&css, def.MaxLines())
	case el.HasImage():
		css.Set("overflow", "hidden")
		view.ImageURL = el.ImageURL
		var img render.CSS
		img.Set("width", "100%").Set("height", "100%").Set("object-fit", render.ObjectFit(def.Style)).Set("display", "block")
		view.ImageStyle = img.String()
	case el.Placeholder != "":
		view.Placeholder = el.Placeholder
		view.Query = el.Placeholder
		css.Set("border", "2px dashed #ccc")
		if def.Style.BackgroundColor == "" {
			css.Set("background-color", "#f0f0f0")
		}
		css.Set("color", "#666666").Px("font-size", 14)
	}
	view.Style = css.String()
	return view
}
