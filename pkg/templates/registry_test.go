package templates

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/goliatone/go-slidegen/pkg/model"
)

func sampleTemplate(id string, category model.Category) model.Template {
	z := 2
	return model.Template{
		ID:       id,
		Name:     id,
		Category: category,
		Size:     model.Size{Width: 640, Height: 360},
		Elements: []model.Element{{
			ID:             "title",
			Kind:           model.ElementText,
			Slot:           "title",
			Style:          model.Style{FontSize: 20, ZIndex: &z},
			Constraints:    &model.Constraints{MaxChars: 10},
			ExampleContent: "Title",
		}},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(sampleTemplate("a", model.CategoryTitle)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(sampleTemplate("a", model.CategoryTitle)); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := r.Register(model.Template{}); err == nil {
		t.Fatalf("expected empty id to fail")
	}

	if !r.Has("a") {
		t.Fatalf("expected template a to be registered")
	}
	_, err := r.Get("missing")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRegistryReturnsCopies(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(sampleTemplate("a", model.CategoryTitle))

	got := r.MustGet("a")
	*got.Elements[0].Style.ZIndex = 99
	got.Elements[0].Constraints.MaxChars = 1
	got.Elements[0].ID = "mutated"

	again := r.MustGet("a")
	if again.Elements[0].ID != "title" || again.Elements[0].Style.Z() != 2 || again.Elements[0].Constraints.MaxChars != 10 {
		t.Fatalf("registry state leaked through returned template: %+v", again.Elements[0])
	}
}

func TestRegistryRandomAndCategory(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Random(nil); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected empty registry error, got %v", err)
	}

	r.MustRegister(sampleTemplate("a", model.CategoryTitle))
	r.MustRegister(sampleTemplate("b", model.CategoryContent))
	r.MustRegister(sampleTemplate("c", model.CategoryContent))

	rng := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		tpl, err := r.Random(rng)
		if err != nil {
			t.Fatalf("random: %v", err)
		}
		seen[tpl.ID] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected every template to be picked eventually, got %v", seen)
	}

	content := r.ByCategory(model.CategoryContent)
	if len(content) != 2 || content[0].ID != "b" || content[1].ID != "c" {
		t.Fatalf("unexpected category listing: %+v", content)
	}
}
