package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-slidegen/pkg/export/pptx"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/renderers/interactive"
	"github.com/goliatone/go-slidegen/pkg/renderers/static"
	"github.com/goliatone/go-slidegen/pkg/slots"
	"github.com/goliatone/go-slidegen/pkg/templates"
	"github.com/goliatone/go-slidegen/pkg/themes"
)

const defaultRendererName = "interactive"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTemplates injects the template registry. Defaults to the built-in
// templates.
func WithTemplates(registry *templates.Registry) Option {
	return func(o *Orchestrator) {
		o.templates = registry
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithResolver injects a configured slot resolver.
func WithResolver(resolver *slots.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithThemeSelector resolves request theme names ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets the partials used when the selected theme does not
// override them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// WithDeckTransformer registers a Transformer that can rewrite the deck
// before slot resolution.
func WithDeckTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithRenderers adds renderers to the default set. A renderer sharing a
// default's name replaces it. Ignored when WithRegistry is used.
func WithRenderers(renderers ...render.Renderer) Option {
	return func(o *Orchestrator) {
		for _, r := range renderers {
			if r != nil {
				o.extraRenderers = append(o.extraRenderers, r)
			}
		}
	}
}

// Orchestrator coordinates template lookup, slot resolution, theme selection
// and rendering. Missing dependencies are initialised with the built-in
// implementations so callers can start with a single constructor call.
type Orchestrator struct {
	templates       *templates.Registry
	registry        *render.Registry
	resolver        *slots.Resolver
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	transformer     Transformer
	extraRenderers  []render.Renderer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a deck to render.
type Request struct {
	Deck model.Deck

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Options carries per-request rendering instructions. A Theme set here
	// wins over ThemeName/ThemeVariant.
	Options render.RenderOptions

	ThemeName    string
	ThemeVariant string
}

// Result is a rendered deck together with the renderer that produced it.
type Result struct {
	Renderer    string
	ContentType string
	Body        []byte
}

// Render executes the transform → resolve → theme → render sequence.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	deck := req.Deck
	if err := o.applyTransformer(ctx, &deck); err != nil {
		return Result{}, err
	}

	slides, err := o.Resolve(ctx, deck, render.AcceptsMissing(renderer))
	if err != nil {
		return Result{}, err
	}

	opts := req.Options
	if opts.Title == "" {
		opts.Title = deck.Title
	}
	if err := o.applyTheme(&opts, req, deck); err != nil {
		return Result{}, err
	}

	body, err := renderer.Render(ctx, slides, opts)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Result{
		Renderer:    renderer.Name(),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

// Resolve binds every slide of deck to its template. Slides without an id
// receive a fresh one. When allowMissing is set, slides naming an unknown
// template resolve to a ResolvedSlide with a nil Template.
func (o *Orchestrator) Resolve(ctx context.Context, deck model.Deck, allowMissing bool) ([]model.ResolvedSlide, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if len(deck.Slides) == 0 {
		return nil, render.ErrNoSlides
	}

	out := make([]model.ResolvedSlide, 0, len(deck.Slides))
	for i, slide := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if slide.ID == "" {
			slide.ID = model.NewSlideID()
		}

		tpl, err := o.templates.Get(slide.TemplateID)
		if err != nil {
			if allowMissing && errors.Is(err, templates.ErrTemplateNotFound) {
				out = append(out, model.ResolvedSlide{SlideID: slide.ID, TemplateID: slide.TemplateID})
				continue
			}
			return nil, &render.SlideError{Index: i, SlideID: slide.ID, TemplateID: slide.TemplateID, Err: err}
		}

		resolved, err := o.resolver.Resolve(tpl, slide)
		if err != nil {
			return nil, &render.SlideError{Index: i, SlideID: slide.ID, TemplateID: slide.TemplateID, Err: err}
		}
		out = append(out, resolved)
	}
	return out, nil
}

// Templates exposes the template registry.
func (o *Orchestrator) Templates() *templates.Registry {
	return o.templates
}

// Renderers exposes the renderer registry.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

// Renderer returns the named renderer, the default renderer when name is
// empty, or the first registered renderer when no default is available.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyTransformer(ctx context.Context, deck *model.Deck) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, deck); err != nil {
		return fmt.Errorf("orchestrator: transform deck: %w", err)
	}
	return nil
}

// applyTheme resolves the request theme into opts.Theme. Deck token
// overrides apply on top of the selection, or on their own when no selector
// is configured.
func (o *Orchestrator) applyTheme(opts *render.RenderOptions, req Request, deck model.Deck) error {
	if opts.Theme != nil {
		return nil
	}

	if o.themeSelector != nil {
		selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return fmt.Errorf("orchestrator: select theme: %w", err)
		}
		opts.Theme = themes.RendererConfig(selection, o.fallbacks(), deck.Theme)
	} else if len(deck.Theme) > 0 {
		opts.Theme = &theme.RendererConfig{
			Partials: o.fallbacks(),
			Tokens:   deck.Theme,
			CSSVars:  themes.CSSVars(deck.Theme),
		}
	}

	if opts.Theme != nil && opts.Theme.Variant == themes.VariantDark {
		opts.Dark = true
	}
	return nil
}

func (o *Orchestrator) fallbacks() map[string]string {
	if o.themeFallbacks != nil {
		return o.themeFallbacks
	}
	return defaultThemeFallbacks()
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		interactive.PartialSlide: "templates/slide.tmpl",
		static.PartialSlide:      "templates/slide.tmpl",
		static.PartialMissing:    "templates/missing.tmpl",
	}
}

func (o *Orchestrator) applyDefaults() {
	if o.templates == nil {
		registry, err := templates.Builtin()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: builtin templates: %w", err)
			o.templates = templates.NewRegistry()
		} else {
			o.templates = registry
		}
	}
	if o.resolver == nil {
		o.resolver = slots.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := registerDefaultRenderers(o.registry, o.extraRenderers...); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// DefaultRenderers returns the interactive, static and pptx renderers.
func DefaultRenderers() (*render.Registry, error) {
	registry := render.NewRegistry()
	if err := registerDefaultRenderers(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func registerDefaultRenderers(registry *render.Registry, extras ...render.Renderer) error {
	interactiveRenderer, err := interactive.New()
	if err != nil {
		return err
	}
	staticRenderer, err := static.New()
	if err != nil {
		return err
	}

	for _, r := range []render.Renderer{interactiveRenderer, staticRenderer, pptx.New()} {
		if err := registry.Register(r); err != nil {
			return err
		}
	}
	for _, r := range extras {
		if _, err := registry.Replace(r); err != nil {
			return err
		}
	}
	return nil
}
