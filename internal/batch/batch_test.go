package batch

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-slidegen/internal/extract"
	"github.com/goliatone/go-slidegen/internal/imagesource"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/testsupport"
)

type stubAnalyzer struct {
	calls []string
}

func (s *stubAnalyzer) Analyze(_ context.Context, article io.Reader, tpl model.Template) (extract.Analysis, error) {
	data, err := io.ReadAll(article)
	if err != nil {
		return extract.Analysis{}, err
	}
	s.calls = append(s.calls, tpl.ID)
	if strings.Contains(string(data), "broken") {
		return extract.Analysis{}, errors.New("model refused")
	}
	bg := "https://img.example.com/bg.jpg"
	if strings.Contains(string(data), "missing-bg") {
		bg = "https://img.example.com/404.jpg"
	}
	product := "https://shop.example.com/item"
	return extract.Analysis{Title: "Great Kettle", Rating: 4, Review: "Boils fast.", ProductURL: &product, BackgroundImageURL: &bg}, nil
}

type stubInliner struct{}

func (stubInliner) DataURI(_ context.Context, ref string) (string, error) {
	if strings.Contains(ref, "404") {
		return "", errors.New("status 404")
	}
	return "data:image/png;base64,iVBORw0KGgo=", nil
}

type captureExporter struct {
	slides [][]model.ResolvedSlide
	titles []string
}

func (c *captureExporter) Render(_ context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) ([]byte, error) {
	c.slides = append(c.slides, slides)
	c.titles = append(c.titles, opts.Title)
	return []byte("pptx"), nil
}

func writeArticles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func imageOf(slide model.ResolvedSlide, id string) model.ResolvedElement {
	for _, el := range slide.Elements {
		if el.Element.ID == id {
			return el
		}
	}
	return model.ResolvedElement{}
}

func TestRunner_Run(t *testing.T) {
	in := writeArticles(t, map[string]string{
		"a-kettle.html": "<html><body><p>kettle</p></body></html>",
		"b-broken.html": "<html><body><p>broken</p></body></html>",
		"c-lamp.html":   "<html><body><p>missing-bg</p></body></html>",
		"notes.txt":     "skip me",
	})
	out := filepath.Join(t.TempDir(), "out")

	files, err := HTMLFiles(in)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 html files, got %v", files)
	}

	analyzer := &stubAnalyzer{}
	exporter := &captureExporter{}
	var progressed int
	runner, err := New(analyzer, exporter, testsupport.BuiltinTemplates(t),
		WithTemplateIDs("canvas-template-1"),
		WithInliner(stubInliner{}),
		WithProgress(func(Item, error) { progressed++ }),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	report, err := runner.Run(context.Background(), files, out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if progressed != 3 {
		t.Fatalf("expected 3 progress callbacks, got %d", progressed)
	}

	var outputs []string
	for _, item := range report.Items {
		outputs = append(outputs, filepath.Base(item.Output))
	}
	want := []string{"a-kettle_canvas-template-1.pptx", "c-lamp_canvas-template-1.pptx"}
	if diff := cmp.Diff(want, outputs); diff != "" {
		t.Fatalf("outputs mismatch (-want +got):\n%s", diff)
	}
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("expected %s on disk: %v", name, err)
		}
	}

	if len(report.Failures) != 1 || report.Failures[0].TemplateID != "canvas-template-1" {
		t.Fatalf("expected one failure, got %+v", report.Failures)
	}
	if err := report.Err(); err == nil || !strings.Contains(err.Error(), "b-broken.html [canvas-template-1]: model refused") {
		t.Fatalf("unexpected report error %v", err)
	}

	if diff := cmp.Diff([]string{"Great Kettle", "Great Kettle"}, exporter.titles); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}

	first := exporter.slides[0][0]
	if got := imageOf(first, "background").ImageURL; !strings.HasPrefix(got, "data:image/png") {
		t.Fatalf("expected inlined background, got %q", got)
	}
	if got := imageOf(first, "avatar").ImageURL; got != imagesource.DefaultAvatar {
		t.Fatalf("expected default avatar, got %q", got)
	}
	if got := imageOf(first, "social-handle").Link; got != "https://shop.example.com/item" {
		t.Fatalf("expected product link, got %q", got)
	}

	lamp := exporter.slides[1][0]
	bg := imageOf(lamp, "background")
	if bg.ImageURL != "" || bg.Placeholder == "" {
		t.Fatalf("failed background should become a placeholder, got %+v", bg)
	}
}

func TestRunner_RandomTemplate(t *testing.T) {
	in := writeArticles(t, map[string]string{"one.html": "<p>one</p>"})
	files, _ := HTMLFiles(in)

	analyzer := &stubAnalyzer{}
	runner, err := New(analyzer, &captureExporter{}, testsupport.BuiltinTemplates(t),
		WithInliner(stubInliner{}),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := runner.Run(context.Background(), files, t.TempDir()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(analyzer.calls) != 1 || analyzer.calls[0] == "" {
		t.Fatalf("expected one analyze call with a template, got %v", analyzer.calls)
	}
}

func TestRunner_UnknownTemplateAndCancel(t *testing.T) {
	in := writeArticles(t, map[string]string{"one.html": "<p>one</p>"})
	files, _ := HTMLFiles(in)

	runner, _ := New(&stubAnalyzer{}, &captureExporter{}, testsupport.BuiltinTemplates(t), WithTemplateIDs("nope"))
	report, err := runner.Run(context.Background(), files, t.TempDir())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Failures) != 1 || len(report.Items) != 0 {
		t.Fatalf("expected unknown template failure, got %+v", report)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Run(ctx, files, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, &captureExporter{}, testsupport.BuiltinTemplates(t)); err == nil {
		t.Fatalf("expected analyzer error")
	}
	if got := OutputName("/tmp/articles/kettle.html", "canvas-template-2"); got != "kettle_canvas-template-2.pptx" {
		t.Fatalf("unexpected output name %q", got)
	}
}
