package templates

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/validation"
)

// ErrTemplateNotFound is returned (wrapped) when a lookup misses.
var ErrTemplateNotFound = errors.New("template not found")

// ValidationError reports a template rejected at registration.
type ValidationError struct {
	TemplateID string
	Result     validation.TemplateValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("templates: template %q is invalid: %s", e.TemplateID, e.Result.Error())
}

// Registry stores templates by id. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]model.Template
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]model.Template),
	}
}

// Register validates and stores a template. Duplicate ids return an error.
func (r *Registry) Register(tpl model.Template) error {
	if tpl.ID == "" {
		return fmt.Errorf("templates: template id is required")
	}
	result := validation.ValidateTemplate(tpl)
	if !result.Valid {
		return &ValidationError{TemplateID: tpl.ID, Result: result}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[tpl.ID]; exists {
		return fmt.Errorf("templates: template %q already registered", tpl.ID)
	}
	r.templates[tpl.ID] = cloneTemplate(tpl)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(tpl model.Template) {
	if err := r.Register(tpl); err != nil {
		panic(err)
	}
}

// Get retrieves a copy of the template registered under id.
func (r *Registry) Get(id string) (model.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.templates[id]
	if !ok {
		return model.Template{}, fmt.Errorf("templates: template %q: %w", id, ErrTemplateNotFound)
	}
	return cloneTemplate(tpl), nil
}

// MustGet panics if the template is missing.
func (r *Registry) MustGet(id string) model.Template {
	tpl, err := r.Get(id)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Has reports whether a template is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.templates[id]
	return ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// List returns a sorted list of template ids.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Templates returns copies of every template sorted by id.
func (r *Registry) Templates() []model.Template {
	ids := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Template, 0, len(ids))
	for _, id := range ids {
		if tpl, ok := r.templates[id]; ok {
			out = append(out, cloneTemplate(tpl))
		}
	}
	return out
}

// ByCategory returns the templates of a category sorted by id.
func (r *Registry) ByCategory(category model.Category) []model.Template {
	var out []model.Template
	for _, tpl := range r.Templates() {
		if tpl.Category == category {
			out = append(out, tpl)
		}
	}
	return out
}

// Random picks a template uniformly. A nil rng uses the global source.
func (r *Registry) Random(rng *rand.Rand) (model.Template, error) {
	all := r.Templates()
	if len(all) == 0 {
		return model.Template{}, fmt.Errorf("templates: registry is empty: %w", ErrTemplateNotFound)
	}
	var idx int
	if rng != nil {
		idx = rng.IntN(len(all))
	} else {
		idx = rand.IntN(len(all))
	}
	return all[idx], nil
}

func cloneTemplate(tpl model.Template) model.Template {
	out := tpl
	if tpl.Elements != nil {
		out.Elements = make([]model.Element, len(tpl.Elements))
		for i, el := range tpl.Elements {
			out.Elements[i] = cloneElement(el)
		}
	}
	if tpl.PromptHints != nil {
		out.PromptHints = append([]string(nil), tpl.PromptHints...)
	}
	return out
}

func cloneElement(el model.Element) model.Element {
	out := el
	if el.Style.ZIndex != nil {
		z := *el.Style.ZIndex
		out.Style.ZIndex = &z
	}
	if el.Constraints != nil {
		c := *el.Constraints
		out.Constraints = &c
	}
	return out
}
