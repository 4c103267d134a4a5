package model

import "github.com/google/uuid"

// Slide binds caller content to a template. Content, Images and Links are
// keyed by slot name or element id; slot keys win when both are present.
type Slide struct {
	ID         string            `json:"id,omitempty" yaml:"id,omitempty"`
	TemplateID string            `json:"templateId" yaml:"templateId"`
	Content    map[string]string `json:"content,omitempty" yaml:"content,omitempty"`
	Images     map[string]string `json:"images,omitempty" yaml:"images,omitempty"`
	Links      map[string]string `json:"links,omitempty" yaml:"links,omitempty"`
}

// NewSlideID returns a fresh slide identifier.
func NewSlideID() string {
	return uuid.NewString()
}

// Deck is an ordered list of slides rendered or exported together. Theme
// holds token overrides (primary, secondary, accent, background, text,
// heading, muted) applied on top of the selected theme.
type Deck struct {
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Slides []Slide           `json:"slides" yaml:"slides"`
	Theme  map[string]string `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// ValueSource records where a resolved value came from.
type ValueSource string

const (
	SourceContent ValueSource = "content"
	SourceExample ValueSource = "example"
	SourceFill    ValueSource = "fill"
	SourceNone    ValueSource = "none"
)

// ResolvedElement is an element paired with the content it will render.
type ResolvedElement struct {
	Element Element `json:"element"`
	// Text holds the constrained text for text elements.
	Text string `json:"text,omitempty"`
	// ImageURL is a renderable image reference (http(s), absolute path or
	// data URI). Empty when the element shows a placeholder or a fill.
	ImageURL string `json:"imageUrl,omitempty"`
	// Placeholder labels an image slot that has no renderable reference.
	Placeholder string      `json:"placeholder,omitempty"`
	Link        string      `json:"link,omitempty"`
	Source      ValueSource `json:"source"`
	// FontScale multiplies the styled font size; 1 unless auto-scale shrank
	// the text to fit.
	FontScale float64 `json:"fontScale"`
	Truncated bool    `json:"truncated,omitempty"`
}

// HasImage reports whether the element resolved to a renderable image.
func (r ResolvedElement) HasImage() bool {
	return r.ImageURL != ""
}

// FontSize returns the styled font size multiplied by FontScale.
func (r ResolvedElement) FontSize() float64 {
	scale := r.FontScale
	if scale <= 0 {
		scale = 1
	}
	return r.Element.Style.FontSize * scale
}

// ResolvedSlide is a slide ready for rendering. Elements are in paint order.
// Template is nil when the slide referenced an unknown template and the
// resolver was asked to keep going.
type ResolvedSlide struct {
	SlideID    string            `json:"slideId,omitempty"`
	TemplateID string            `json:"templateId"`
	Template   *Template         `json:"template,omitempty"`
	Elements   []ResolvedElement `json:"elements"`
}

// Missing reports whether the slide's template could not be found.
func (s ResolvedSlide) Missing() bool {
	return s.Template == nil
}
