package themes

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Selector resolves a theme name and variant against registered manifests.
// It implements theme.ThemeSelector.
type Selector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests; the first one becomes the default theme.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{manifests: make(map[string]*theme.Manifest)}
	for _, m := range manifests {
		if err := s.Register(m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Default returns a selector over the built-in manifests defaulting to the
// light slidegen theme.
func Default() *Selector {
	s, err := NewSelector(Builtin()...)
	if err != nil {
		panic(err)
	}
	s.SetDefaults(DefaultTheme, VariantLight)
	return s
}

// Register adds a manifest. Names must be unique.
func (s *Selector) Register(m *theme.Manifest) error {
	if m == nil || m.Name == "" {
		return fmt.Errorf("themes: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[m.Name]; exists {
		return fmt.Errorf("themes: theme %q already registered", m.Name)
	}
	s.manifests[m.Name] = m
	if s.defaultTheme == "" {
		s.defaultTheme = m.Name
	}
	return nil
}

// SetDefaults changes the theme and variant used when Select receives
// empty values.
func (s *Selector) SetDefaults(name, variant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.defaultTheme = name
	}
	s.defaultVariant = variant
}

// Names lists registered themes in sorted order.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants lists the variants of a theme in sorted order.
func (s *Selector) Variants(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.manifests[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m.Variants))
	for v := range m.Variants {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Select implements theme.ThemeSelector. Empty arguments fall back to the
// defaults; the default variant only applies when the theme defines it.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		name = s.defaultTheme
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("themes: theme %q not found", name)
	}
	if variant == "" {
		if _, ok := m.Variants[s.defaultVariant]; ok {
			variant = s.defaultVariant
		}
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("themes: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}
