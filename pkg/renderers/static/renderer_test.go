package static_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-slidegen/pkg/renderers/static"
	"github.com/goliatone/go-slidegen/pkg/slots"
	"github.com/goliatone/go-slidegen/pkg/testsupport"
)

func squareTemplate() model.Template {
	return model.Template{
		ID:   "square",
		Name: "Square",
		Size: model.Size{Width: 1080, Height: 1080},
		Elements: []model.Element{
			{
				ID: "bg", Kind: model.ElementBackground, Slot: "background-image",
				Size:       model.Dimensions{Width: model.Px(1080), Height: model.Px(1080)},
				Style:      model.Style{ZIndex: intPtr(0)},
				ImageQuery: "mountain lake",
			},
			{
				ID: "title", Kind: model.ElementText, Slot: "title",
				Position:       model.Point{X: 270, Y: 540},
				Size:           model.Dimensions{Width: model.Px(540), Height: model.AutoLength()},
				Style:          model.Style{FontSize: 54, BorderRadius: 27},
				Constraints:    &model.Constraints{MaxLines: 2},
				ExampleContent: "Quiet mornings",
			},
		},
	}
}

func intPtr(v int) *int { return &v }

func newRenderer(t *testing.T) *static.Renderer {
	t.Helper()
	r, err := static.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderPercentLayout(t *testing.T) {
	resolved, err := slots.New().Resolve(squareTemplate(), model.Slide{ID: "s1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	out, err := newRenderer(t).Render(context.Background(), []model.ResolvedSlide{resolved}, render.RenderOptions{
		Container: layout.Container{Width: 540},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<div class="slidegen-static-deck">`,
		`data-slide-id="s1"`,
		"max-width:540px;height:0;padding-bottom:100%",
		"left:25%;top:50%;width:50%;z-index:1",
		"font-size:27px",
		"border-radius:13.5px",
		"color:#333333",
		"-webkit-line-clamp:2",
		"Quiet mornings",
		"background-color:#d0d0d0",
		"mountain lake",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "contenteditable") {
		t.Fatalf("static output must not be editable")
	}
}

func TestRenderDefaultsContainerWidth(t *testing.T) {
	resolved, err := slots.New().Resolve(squareTemplate(), model.Slide{
		Images: map[string]string{"background-image": "/static/lake.jpg"},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	out, err := newRenderer(t).Render(context.Background(), []model.ResolvedSlide{resolved}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "max-width:800px") {
		t.Fatalf("expected default container width, got:\n%s", html)
	}
	if !strings.Contains(html, `src="/static/lake.jpg"`) || !strings.Contains(html, `loading="lazy"`) {
		t.Fatalf("expected image element, got:\n%s", html)
	}
}

func TestRenderMissingTemplateCard(t *testing.T) {
	r := newRenderer(t)
	if !render.AcceptsMissing(r) {
		t.Fatalf("expected static renderer to accept missing templates")
	}

	out, err := r.Render(context.Background(), []model.ResolvedSlide{{TemplateID: "ghost"}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"slidegen-static-missing", "Template not found", "<small>ghost</small>", "padding-bottom:56.25%"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}

	out, err = r.Render(context.Background(), []model.ResolvedSlide{{TemplateID: "ghost"}}, render.RenderOptions{Locale: "zh"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "模板未找到") {
		t.Fatalf("expected localized card, got:\n%s", out)
	}
}

func TestRenderBuiltinExamples(t *testing.T) {
	reg := testsupport.BuiltinTemplates(t)
	slides := testsupport.MustExampleSlides(t, reg)

	out, err := newRenderer(t).Render(testsupport.Context(), slides, render.RenderOptions{Container: layout.Container{Width: 320}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Count(string(out), `<div class="slidegen-static" `); got != len(slides) {
		t.Fatalf("expected %d slides, got %d", len(slides), got)
	}
}

func TestRenderEmptyDeck(t *testing.T) {
	if _, err := newRenderer(t).Render(context.Background(), nil, render.RenderOptions{}); !errors.Is(err, render.ErrNoSlides) {
		t.Fatalf("expected ErrNoSlides, got %v", err)
	}
}

func TestRenderPlaceholderKeepsAuthorBackground(t *testing.T) {
	tpl := squareTemplate()
	tpl.Elements[0].Style.BackgroundColor = "#123456"
	resolved, err := slots.New().Resolve(tpl, model.Slide{ID: "s1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	out, err := newRenderer(t).Render(context.Background(), []model.ResolvedSlide{resolved}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "background-color:#123456") || strings.Contains(html, "#d0d0d0") {
		t.Fatalf("expected author background on placeholder, got:\n%s", html)
	}
}

func TestRenderStandardTemplateEngine(t *testing.T) {
	engine, err := gotemplate.NewStandard(
		gotemplatepkg.WithFS(static.TemplatesFS()),
		gotemplatepkg.WithExtension(".tmpl"),
	)
	if err != nil {
		t.Fatalf("new standard engine: %v", err)
	}
	withEngine, err := static.New(static.WithTemplateRenderer(engine))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	reg := testsupport.BuiltinTemplates(t)
	slides := append(testsupport.MustExampleSlides(t, reg), model.ResolvedSlide{TemplateID: "ghost"})
	opts := render.RenderOptions{Container: layout.Container{Width: 320}}

	want, err := newRenderer(t).Render(testsupport.Context(), slides, opts)
	if err != nil {
		t.Fatalf("render default: %v", err)
	}
	got, err := withEngine.Render(testsupport.Context(), slides, opts)
	if err != nil {
		t.Fatalf("render standard: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("engines disagree\nwant:\n%s\ngot:\n%s", want, got)
	}
}
