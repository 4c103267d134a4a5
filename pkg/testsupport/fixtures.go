// Package testsupport holds helpers shared by the slidegen test suites:
// built-in template fixtures, slide resolution and golden files.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/slots"
	"github.com/goliatone/go-slidegen/pkg/templates"
)

// UpdateGoldensEnv names the variable that rewrites golden files.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// BuiltinTemplates returns the embedded template registry or fails the test.
func BuiltinTemplates(t *testing.T) *templates.Registry {
	t.Helper()
	reg, err := templates.Builtin()
	if err != nil {
		t.Fatalf("load builtin templates: %v", err)
	}
	return reg
}

// MustResolve resolves every slide of deck against reg with the default
// resolver.
func MustResolve(t *testing.T, reg *templates.Registry, deck model.Deck) []model.ResolvedSlide {
	t.Helper()
	resolver := slots.New()
	out := make([]model.ResolvedSlide, 0, len(deck.Slides))
	for i, slide := range deck.Slides {
		tpl, err := reg.Get(slide.TemplateID)
		if err != nil {
			t.Fatalf("slide %d: %v", i, err)
		}
		resolved, err := resolver.Resolve(tpl, slide)
		if err != nil {
			t.Fatalf("slide %d: resolve: %v", i, err)
		}
		out = append(out, resolved)
	}
	return out
}

// MustExampleSlides resolves every template in reg against its own example
// content, in registry order.
func MustExampleSlides(t *testing.T, reg *templates.Registry) []model.ResolvedSlide {
	t.Helper()
	var deck model.Deck
	for _, tpl := range reg.Templates() {
		deck.Slides = append(deck.Slides, slots.ExampleSlide(tpl))
	}
	return MustResolve(t, reg, deck)
}

// MustReadGoldenString returns the content of a golden file.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// AssertGolden compares got with the golden file at path. With
// UPDATE_GOLDENS set the file is rewritten instead.
func AssertGolden(t *testing.T, path string, got string) {
	t.Helper()
	if os.Getenv(UpdateGoldensEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}
	if diff := cmp.Diff(MustReadGoldenString(t, path), got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written, so tests can check they agree.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
