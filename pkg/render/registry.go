package render

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps output names to renderers. The HTML renderers and the PPTX
// exporter share one registry, so a request picks its output by name alone.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry returns a registry holding renderers. It panics when two of
// them share a name.
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{byName: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		r.MustRegister(renderer)
	}
	return r
}

// Register adds renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	name, err := rendererName(renderer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	return nil
}

// MustRegister is Register for init-time wiring; it panics on error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Replace stores renderer under its Name whether or not the name is taken,
// and returns the renderer it displaced.
func (r *Registry) Replace(renderer Renderer) (Renderer, error) {
	name, err := rendererName(renderer)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.byName[name]
	r.byName[name] = renderer
	return previous, nil
}

// Get returns the renderer called name or an *UnknownRendererError listing
// the registered names.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byName[name]; ok {
		return renderer, nil
	}
	return nil, &UnknownRendererError{Name: name, Available: slices.Sorted(maps.Keys(r.byName))}
}

// List returns the registered names in order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byName))
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

func rendererName(renderer Renderer) (string, error) {
	if renderer == nil {
		return "", errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return "", errors.New("render: renderer name is required")
	}
	return name, nil
}
