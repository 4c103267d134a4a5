package interactive_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-slidegen/pkg/renderers/interactive"
	"github.com/goliatone/go-slidegen/pkg/slots"
	"github.com/goliatone/go-slidegen/pkg/testsupport"
)

func cardTemplate() model.Template {
	return model.Template{
		ID:   "card",
		Name: "Card",
		Size: model.Size{Width: 1280, Height: 720},
		Elements: []model.Element{
			{
				ID: "photo", Kind: model.ElementImage, Slot: "main-image",
				Position:   model.Point{X: 100, Y: 100},
				Size:       model.Dimensions{Width: model.Px(300), Height: model.Px(400)},
				ImageQuery: "portrait of a smiling customer",
			},
			{
				ID: "title", Kind: model.ElementText, Slot: "title",
				Position:       model.Point{X: 500, Y: 100},
				Size:           model.Dimensions{Width: model.Px(600), Height: model.AutoLength()},
				Style:          model.Style{FontSize: 40, Color: "#8B4513"},
				ExampleContent: "Card title",
			},
			{
				ID: "social", Kind: model.ElementText, Slot: "social",
				Position: model.Point{X: 500, Y: 600},
				Size:     model.Dimensions{Width: model.Px(200), Height: model.Px(40)},
				Style:    model.Style{FontSize: 20},
				Optional: true,
			},
		},
	}
}

func resolveCard(t *testing.T, slide model.Slide) []model.ResolvedSlide {
	t.Helper()
	resolved, err := slots.New().Resolve(cardTemplate(), slide)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return []model.ResolvedSlide{resolved}
}

func newRenderer(t *testing.T, opts ...interactive.Option) *interactive.Renderer {
	t.Helper()
	r, err := interactive.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderScalesCanvasAndPlacesElements(t *testing.T) {
	slides := resolveCard(t, model.Slide{ID: "s1", Content: map[string]string{"title": "Tom & Jerry"}})

	out, err := newRenderer(t).Render(context.Background(), slides, render.RenderOptions{
		Container: layout.Container{Width: 640},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Card</title>",
		`data-slide-id="s1"`,
		`data-template-id="card"`,
		"width:640px;height:360px",
		"transform:scale(0.5)",
		"background-color:#ffffff",
		"left:500px;top:100px;width:600px;z-index:1",
		"font-size:40px",
		"color:#8b4513",
		"-webkit-line-clamp:10",
		"Tom &amp; Jerry",
		"border:2px dashed #ccc",
		"📷",
		"portrait of a smiling customer",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, `contenteditable="true" spellcheck`) || strings.Contains(html, "<script>") {
		t.Fatalf("expected read-only output without runtime")
	}
	if strings.Contains(html, `data-element-id="social"`) {
		t.Fatalf("expected empty optional slot to be skipped")
	}
}

func TestRenderEditableAddsRuntimeAndActions(t *testing.T) {
	slides := resolveCard(t, model.Slide{
		Content: map[string]string{"title": "Hello", "social": "Buy"},
		Images:  map[string]string{"main-image": "https://cdn.example.com/a.jpg"},
		Links:   map[string]string{"social": "https://shop.example.com/p?id=1&ref=deck"},
	})

	out, err := newRenderer(t).Render(context.Background(), slides, render.RenderOptions{
		Editable:    true,
		Dark:        true,
		ImageAction: "/api/images",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`contenteditable="true" spellcheck="false"`,
		`data-action="/api/images"`,
		`title="Click to regenerate image"`,
		`src="https://cdn.example.com/a.jpg"`,
		"object-fit:cover",
		`href="https://shop.example.com/p?id=1&amp;ref=deck"`,
		"background-color:#1a1a2e",
		`class="slidegen slidegen-dark"`,
		"slidegen:edit",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderBuiltinExamples(t *testing.T) {
	reg := testsupport.BuiltinTemplates(t)
	slides := testsupport.MustExampleSlides(t, reg)

	out, err := newRenderer(t).Render(testsupport.Context(), slides, render.RenderOptions{Container: layout.Container{Width: 800}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if got := strings.Count(html, `<section class="slidegen-slide"`); got != len(slides) {
		t.Fatalf("expected %d slides, got %d", len(slides), got)
	}
	if !strings.Contains(html, "Claudia Alves") {
		t.Fatalf("expected example content in output")
	}
}

func TestRenderErrors(t *testing.T) {
	r := newRenderer(t)
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{}); !errors.Is(err, render.ErrNoSlides) {
		t.Fatalf("expected ErrNoSlides, got %v", err)
	}

	_, err := r.Render(context.Background(), []model.ResolvedSlide{{TemplateID: "ghost"}}, render.RenderOptions{})
	var slideErr *render.SlideError
	if !errors.As(err, &slideErr) || slideErr.TemplateID != "ghost" {
		t.Fatalf("expected SlideError for missing template, got %v", err)
	}
}

func TestRenderThemePartialAndIcon(t *testing.T) {
	files := fstest.MapFS{
		"templates/page.tmpl":  {Data: []byte(`{% for slide in slides %}{{ slide|safe }}{% endfor %}`)},
		"templates/slide.tmpl": {Data: []byte(`default`)},
		"themes/compact.tmpl":  {Data: []byte(`compact:{{ slide.templateId }}:{{ icon|safe }}`)},
	}
	r := newRenderer(t,
		interactive.WithTemplatesFS(files),
		interactive.WithPlaceholderIcon(`<svg viewBox="0 0 4 4"><script>x()</script><rect width="4" height="4"/></svg>`),
	)

	out, err := r.Render(context.Background(), resolveCard(t, model.Slide{}), render.RenderOptions{
		Theme: &theme.RendererConfig{Partials: map[string]string{interactive.PartialSlide: "themes/compact"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.HasPrefix(got, "compact:card:<svg") || strings.Contains(got, "script") {
		t.Fatalf("unexpected partial output %q", got)
	}
}

func logoTemplate() model.Template {
	return model.Template{
		ID:   "logo",
		Name: "Logo",
		Size: model.Size{Width: 400, Height: 300},
		Elements: []model.Element{
			{
				ID: "logo", Kind: model.ElementImage, Slot: "logo",
				Position: model.Point{X: 10, Y: 10},
				Size:     model.Dimensions{Width: model.Px(100), Height: model.Px(100)},
				Optional: true,
			},
			{
				ID: "hero", Kind: model.ElementImage, Slot: "hero",
				Position:   model.Point{X: 150, Y: 10},
				Size:       model.Dimensions{Width: model.Px(200), Height: model.Px(200)},
				Style:      model.Style{BackgroundColor: "#123456"},
				ImageQuery: "harbour at dusk",
			},
		},
	}
}

func TestRenderEditableEmptyImageSlot(t *testing.T) {
	resolved, err := slots.New().Resolve(logoTemplate(), model.Slide{ID: "s1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	slides := []model.ResolvedSlide{resolved}

	out, err := newRenderer(t).Render(context.Background(), slides, render.RenderOptions{
		Editable:    true,
		ImageAction: "/api/images",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`data-element-id="logo"`,
		"Select Image",
		`title="Click to add image"`,
		`title="Click to regenerate image"`,
		"harbour at dusk",
		"background-color:#123456",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if got := strings.Count(html, "background-color:#f0f0f0"); got != 1 {
		t.Fatalf("expected the default placeholder fill only on the empty slot, got %d:\n%s", got, html)
	}

	out, err = newRenderer(t).Render(context.Background(), slides, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render read-only: %v", err)
	}
	if strings.Contains(string(out), `data-element-id="logo"`) {
		t.Fatalf("expected empty optional image to be skipped when read-only")
	}
}

func TestRenderStandardTemplateEngine(t *testing.T) {
	engine, err := gotemplate.NewStandard(
		gotemplatepkg.WithFS(interactive.TemplatesFS()),
		gotemplatepkg.WithExtension(".tmpl"),
	)
	if err != nil {
		t.Fatalf("new standard engine: %v", err)
	}
	slides := resolveCard(t, model.Slide{
		ID:      "s1",
		Content: map[string]string{"title": "Tom & Jerry", "social": "Buy"},
		Links:   map[string]string{"social": "https://shop.example.com/p/1"},
	})
	opts := render.RenderOptions{Container: layout.Container{Width: 640}, Editable: true, ImageAction: "/api/images"}

	want, err := newRenderer(t).Render(context.Background(), slides, opts)
	if err != nil {
		t.Fatalf("render default: %v", err)
	}
	got, err := newRenderer(t, interactive.WithTemplateRenderer(engine)).Render(context.Background(), slides, opts)
	if err != nil {
		t.Fatalf("render standard: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("engines disagree\nwant:\n%s\ngot:\n%s", want, got)
	}
}
