package slots

import (
	"strings"

	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/model"
)

const (
	defaultMinFontScale = 0.5
	defaultScaleStep    = 0.05
)

// Option customises a Resolver.
type Option func(*Resolver)

// WithMinFontScale sets the smallest font scale auto-scale may pick.
func WithMinFontScale(scale float64) Option {
	return func(r *Resolver) {
		if scale > 0 && scale <= 1 {
			r.minFontScale = scale
		}
	}
}

// WithSanitizer replaces the plain-text sanitizer applied to text content.
// Pass nil to keep text untouched.
func WithSanitizer(fn func(string) string) Option {
	return func(r *Resolver) {
		r.sanitize = fn
		r.sanitizeSet = true
	}
}

// Resolver merges slides with their templates.
type Resolver struct {
	minFontScale float64
	scaleStep    float64
	sanitize     func(string) string
	sanitizeSet  bool
}

// New constructs a Resolver with the plain-text sanitizer and a 0.5 minimum
// font scale.
func New(options ...Option) *Resolver {
	r := &Resolver{
		minFontScale: defaultMinFontScale,
		scaleStep:    defaultScaleStep,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if !r.sanitizeSet {
		r.sanitize = PlainText
	}
	return r
}

// Resolve binds slide content to every template element and returns the
// elements in paint order.
func (r *Resolver) Resolve(tpl model.Template, slide model.Slide) (model.ResolvedSlide, error) {
	resolved := make([]model.ResolvedElement, 0, len(tpl.Elements))
	var missing []string

	for _, el := range tpl.Elements {
		var (
			item model.ResolvedElement
			err  error
		)
		switch el.Kind {
		case model.ElementText:
			item, err = r.resolveText(tpl, el, slide)
		default:
			item = r.resolveVisual(el, slide)
		}
		if err != nil {
			return model.ResolvedSlide{}, err
		}
		if link, ok := lookup(slide.Links, el); ok {
			item.Link = SafeLink(link)
		}
		if !el.Optional && item.Source == model.SourceNone {
			missing = append(missing, el.ID)
		}
		resolved = append(resolved, item)
	}

	if len(missing) > 0 {
		return model.ResolvedSlide{}, &MissingSlotError{TemplateID: tpl.ID, Elements: missing}
	}

	tplCopy := tpl
	return model.ResolvedSlide{
		SlideID:    slide.ID,
		TemplateID: tpl.ID,
		Template:   &tplCopy,
		Elements:   layout.OrderResolved(resolved),
	}, nil
}

func (r *Resolver) resolveText(tpl model.Template, el model.Element, slide model.Slide) (model.ResolvedElement, error) {
	item := model.ResolvedElement{Element: el, FontScale: 1, Source: model.SourceNone}

	text := ""
	if raw, ok := lookup(slide.Content, el); ok {
		text = r.clean(raw)
		if text != "" {
			item.Source = model.SourceContent
		}
	}
	if text == "" {
		text = r.clean(el.ExampleContent)
		if text != "" {
			item.Source = model.SourceExample
		}
	}

	out, err := r.applyConstraints(tpl, el, text)
	if err != nil {
		return item, err
	}
	item.Text = out.text
	item.FontScale = out.scale
	item.Truncated = out.truncated
	return item, nil
}

func (r *Resolver) resolveVisual(el model.Element, slide model.Slide) model.ResolvedElement {
	item := model.ResolvedElement{Element: el, FontScale: 1, Source: model.SourceNone}

	ref, supplied := lookup(slide.Images, el)
	ref = strings.TrimSpace(ref)
	if supplied && IsImageRef(ref) {
		item.ImageURL = ref
		item.Source = model.SourceContent
		return item
	}

	// A supplied value that is not a reference is an image query.
	if supplied && ref != "" {
		item.Placeholder = ref
		item.Source = model.SourceContent
		return item
	}

	if el.Kind == model.ElementBackground && el.ImageQuery == "" {
		if el.Style.BackgroundColor != "" {
			item.Source = model.SourceFill
			return item
		}
	}

	switch {
	case el.ImageQuery != "":
		item.Placeholder = el.ImageQuery
		item.Source = model.SourceExample
	case el.ExampleContent != "":
		item.Placeholder = el.ExampleContent
		item.Source = model.SourceExample
	}
	return item
}

func (r *Resolver) clean(raw string) string {
	if r.sanitize == nil {
		return strings.TrimSpace(raw)
	}
	return r.sanitize(raw)
}

// lookup finds the value bound to an element: slot key first, element id
// second. Blank values count as absent.
func lookup(values map[string]string, el model.Element) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	if el.Slot != "" {
		if v, ok := values[el.Slot]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	if v, ok := values[el.ID]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return "", false
}

// ExampleSlide returns a slide whose content maps hold every element's
// example content, keyed by slot. Image elements are left empty so they
// render as placeholders.
func ExampleSlide(tpl model.Template) model.Slide {
	slide := model.Slide{
		TemplateID: tpl.ID,
		Content:    make(map[string]string),
	}
	for _, el := range tpl.Elements {
		if el.Kind != model.ElementText || el.ExampleContent == "" {
			continue
		}
		slide.Content[el.Key()] = el.ExampleContent
	}
	return slide
}
