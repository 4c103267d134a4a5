package model

import "strings"

// DefaultZIndex is the paint order applied to elements that omit zIndex.
const DefaultZIndex = 1

// ElementKind enumerates the visual primitives a template can place.
type ElementKind string

const (
	ElementText       ElementKind = "text"
	ElementImage      ElementKind = "image"
	ElementBackground ElementKind = "background"
)

// Valid reports whether the kind is one of the known primitives.
func (k ElementKind) Valid() bool {
	switch k {
	case ElementText, ElementImage, ElementBackground:
		return true
	default:
		return false
	}
}

// Category groups templates for discovery.
type Category string

const (
	CategoryTitle       Category = "title"
	CategoryContent     Category = "content"
	CategoryTestimonial Category = "testimonial"
	CategorySummary     Category = "summary"
)

// Valid reports whether the category is known. Empty categories are allowed
// and treated as uncategorised.
func (c Category) Valid() bool {
	switch c {
	case "", CategoryTitle, CategoryContent, CategoryTestimonial, CategorySummary:
		return true
	default:
		return false
	}
}

// OverflowStrategy controls how text exceeding its constraints is handled.
type OverflowStrategy string

const (
	OverflowAutoScale OverflowStrategy = "auto-scale"
	OverflowTruncate  OverflowStrategy = "truncate"
	OverflowStrict    OverflowStrategy = "strict"
)

// Valid reports whether the strategy is known. Empty means "unspecified".
func (s OverflowStrategy) Valid() bool {
	switch s {
	case "", OverflowAutoScale, OverflowTruncate, OverflowStrict:
		return true
	default:
		return false
	}
}

// ObjectFit mirrors the CSS object-fit values supported for images.
type ObjectFit string

const (
	FitCover   ObjectFit = "cover"
	FitContain ObjectFit = "contain"
	FitFill    ObjectFit = "fill"
)

// Valid reports whether the fit mode is known. Empty defaults to cover.
func (f ObjectFit) Valid() bool {
	switch f {
	case "", FitCover, FitContain, FitFill:
		return true
	default:
		return false
	}
}

// ImageStyle hints at the kind of picture an image slot expects.
type ImageStyle string

const (
	ImagePhoto        ImageStyle = "photo"
	ImageIllustration ImageStyle = "illustration"
	ImageIcon         ImageStyle = "icon"
	ImageAbstract     ImageStyle = "abstract"
)

// Size is a fixed canvas size in pixels.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// AspectRatio returns height/width, or 0 for a degenerate canvas.
func (s Size) AspectRatio() float64 {
	if s.Width <= 0 {
		return 0
	}
	return s.Height / s.Width
}

// Point is an absolute position on the canvas in pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Dimensions is an element size where either axis may be auto.
type Dimensions struct {
	Width  Length `json:"width" yaml:"width"`
	Height Length `json:"height" yaml:"height"`
}

// Style captures the presentational attributes of an element.
type Style struct {
	FontSize        float64   `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontFamily      string    `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontWeight      string    `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	Color           string    `json:"color,omitempty" yaml:"color,omitempty"`
	LineHeight      float64   `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	TextAlign       string    `json:"textAlign,omitempty" yaml:"textAlign,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	BorderRadius    float64   `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
	ObjectFit       ObjectFit `json:"objectFit,omitempty" yaml:"objectFit,omitempty"`
	BoxShadow       string    `json:"boxShadow,omitempty" yaml:"boxShadow,omitempty"`
	LetterSpacing   string    `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
	ZIndex          *int      `json:"zIndex,omitempty" yaml:"zIndex,omitempty"`
}

// Z returns the element paint order, applying DefaultZIndex when unset.
func (s Style) Z() int {
	if s.ZIndex == nil {
		return DefaultZIndex
	}
	return *s.ZIndex
}

// Bold reports whether the font weight renders as bold.
func (s Style) Bold() bool {
	switch strings.ToLower(strings.TrimSpace(s.FontWeight)) {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	default:
		return false
	}
}

// PrimaryFont returns the first family of the font stack without quotes.
func (s Style) PrimaryFont() string {
	family := s.FontFamily
	if idx := strings.Index(family, ","); idx >= 0 {
		family = family[:idx]
	}
	return strings.Trim(strings.TrimSpace(family), `"'`)
}

// Constraints bound the text an element accepts.
type Constraints struct {
	MaxChars int              `json:"maxChars,omitempty" yaml:"maxChars,omitempty"`
	MaxLines int              `json:"maxLines,omitempty" yaml:"maxLines,omitempty"`
	Overflow OverflowStrategy `json:"overflowStrategy,omitempty" yaml:"overflowStrategy,omitempty"`
}

// Element is a single positioned visual unit within a template.
type Element struct {
	ID             string       `json:"id" yaml:"id"`
	Kind           ElementKind  `json:"type" yaml:"type"`
	Slot           string       `json:"slot" yaml:"slot"`
	Position       Point        `json:"position" yaml:"position"`
	Size           Dimensions   `json:"size" yaml:"size"`
	Style          Style        `json:"style" yaml:"style"`
	Constraints    *Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	ImageQuery     string       `json:"imageQuery,omitempty" yaml:"imageQuery,omitempty"`
	ImageStyle     ImageStyle   `json:"imageStyle,omitempty" yaml:"imageStyle,omitempty"`
	Optional       bool         `json:"optional,omitempty" yaml:"optional,omitempty"`
	ExampleContent string       `json:"exampleContent,omitempty" yaml:"exampleContent,omitempty"`
}

// Key returns the identifier content maps are matched against first: the
// slot name, falling back to the element id.
func (e Element) Key() string {
	if e.Slot != "" {
		return e.Slot
	}
	return e.ID
}

// MaxLines returns the configured line limit or zero.
func (e Element) MaxLines() int {
	if e.Constraints == nil {
		return 0
	}
	return e.Constraints.MaxLines
}

// Template is a declarative slide layout.
type Template struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category  `json:"category,omitempty" yaml:"category,omitempty"`
	Size        Size      `json:"size" yaml:"size"`
	Elements    []Element `json:"elements" yaml:"elements"`
	PromptHints []string  `json:"promptHints,omitempty" yaml:"promptHints,omitempty"`
}

// Element looks up an element by id.
func (t Template) Element(id string) (Element, bool) {
	for _, el := range t.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// Slots returns the distinct slot keys in declaration order.
func (t Template) Slots() []string {
	seen := make(map[string]struct{}, len(t.Elements))
	out := make([]string, 0, len(t.Elements))
	for _, el := range t.Elements {
		key := el.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
