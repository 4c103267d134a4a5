package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSlides is returned when a renderer is asked to draw an empty deck.
var ErrNoSlides = errors.New("render: no slides to render")

// UnknownRendererError reports a lookup for a renderer that was never
// registered.
type UnknownRendererError struct {
	Name      string
	Available []string
}

func (e *UnknownRendererError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("render: renderer %q not found", e.Name)
	}
	return fmt.Sprintf("render: renderer %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// SlideError attaches the slide position to a failure raised while drawing
// that slide.
type SlideError struct {
	Index      int
	SlideID    string
	TemplateID string
	Err        error
}

func (e *SlideError) Error() string {
	label := fmt.Sprintf("slide %d", e.Index+1)
	if e.SlideID != "" {
		label += " (" + e.SlideID + ")"
	}
	if e.TemplateID != "" {
		label += fmt.Sprintf(" template %q", e.TemplateID)
	}
	return fmt.Sprintf("render: %s: %v", label, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}
