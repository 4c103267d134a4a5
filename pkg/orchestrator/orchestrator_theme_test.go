package orchestrator

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/renderers/static"
	"github.com/goliatone/go-slidegen/pkg/themes"
)

func sampleDeck() model.Deck {
	return model.Deck{
		Title: "Reviews",
		Slides: []model.Slide{
			{ID: "s1", TemplateID: "product-review-square", Content: map[string]string{"title": "Great phone"}},
		},
	}
}

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
	}

	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}

	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	_, err := orch.Render(context.Background(), Request{
		Deck:         sampleDeck(),
		Renderer:     renderer.Name(),
		ThemeName:    "custom-theme",
		ThemeVariant: "custom-variant",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "custom-theme" || selector.calls[0].variant != "custom-variant" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != selection.Theme || cfg.Variant != selection.Variant {
		t.Fatalf("theme identity mismatch: got %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := cfg.Partials[static.PartialMissing]; got != defaultThemeFallbacks()[static.PartialMissing] {
		t.Fatalf("partials not merged with fallbacks: got %s", got)
	}
	if cfg.Tokens["brand"] != manifest.Tokens["brand"] {
		t.Fatalf("tokens not propagated")
	}
	if cfg.CSSVars["--brand"] != manifest.Tokens["brand"] {
		t.Fatalf("css vars not derived from tokens")
	}
	if renderer.options.Dark {
		t.Fatalf("custom variant should not switch to the dark canvas")
	}
	if renderer.options.Title != "Reviews" {
		t.Fatalf("expected deck title forwarded, got %q", renderer.options.Title)
	}
}

func TestOrchestrator_DarkVariantAndDeckTokens(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithThemeSelector(themes.Default()),
		WithDefaultRenderer(renderer.Name()),
	)

	deck := sampleDeck()
	deck.Theme = map[string]string{"accent": "#ff00ff"}
	if _, err := orch.Render(context.Background(), Request{Deck: deck, ThemeVariant: themes.VariantDark}); err != nil {
		t.Fatalf("render: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil || cfg.Theme != themes.DefaultTheme || cfg.Variant != themes.VariantDark {
		t.Fatalf("unexpected theme config %+v", cfg)
	}
	if !renderer.options.Dark {
		t.Fatalf("expected dark variant to select the dark canvas")
	}
	if cfg.Tokens["background"] != "#111827" {
		t.Fatalf("expected dark palette, got %s", cfg.Tokens["background"])
	}
	if cfg.Tokens["accent"] != "#ff00ff" || cfg.CSSVars["--accent"] != "#ff00ff" {
		t.Fatalf("deck token override missing: %v", cfg.Tokens)
	}
}

func TestOrchestrator_DeckTokensWithoutSelector(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(WithRegistry(registry), WithDefaultRenderer(renderer.Name()))

	deck := sampleDeck()
	if _, err := orch.Render(context.Background(), Request{Deck: deck}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.options.Theme != nil {
		t.Fatalf("expected no theme without selector or deck tokens")
	}

	deck.Theme = map[string]string{"text": "#010101"}
	if _, err := orch.Render(context.Background(), Request{Deck: deck}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := renderer.options.Token("text", ""); got != "#010101" {
		t.Fatalf("expected deck token, got %q", got)
	}
}

func TestOrchestrator_ExplicitThemeWins(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	selector := &stubThemeSelector{}

	orch := New(WithRegistry(registry), WithThemeSelector(selector), WithDefaultRenderer(renderer.Name()))
	explicit := &theme.RendererConfig{Theme: "explicit"}
	if _, err := orch.Render(context.Background(), Request{Deck: sampleDeck(), Options: render.RenderOptions{Theme: explicit}}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(selector.calls) != 0 {
		t.Fatalf("selector should not run when a theme is supplied")
	}
	if renderer.options.Theme != explicit {
		t.Fatalf("explicit theme replaced")
	}
}

type captureRenderer struct {
	options render.RenderOptions
	slides  []model.ResolvedSlide
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	r.slides = slides
	return []byte(slides[0].TemplateID), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

type namedRenderer struct {
	captureRenderer
	name string
}

func (r *namedRenderer) Name() string { return r.name }

func TestOrchestrator_WithRenderersReplacesDefaults(t *testing.T) {
	custom := &namedRenderer{name: "pptx"}
	extra := &namedRenderer{name: "outline"}
	orch := New(WithRenderers(custom, extra, nil))

	got := orch.Renderers().List()
	want := []string{"interactive", "outline", "pptx", "static"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	if _, err := orch.Render(context.Background(), Request{Deck: sampleDeck(), Renderer: "pptx"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(custom.slides) != 1 {
		t.Fatalf("expected the replacement pptx renderer to run")
	}
}
