package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-slidegen/pkg/layout"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the resolved slides.
type RenderOptions struct {
	// Container is the box the slide is drawn into. Zero width renders the
	// canvas at its native size.
	Container layout.Container
	// Dark selects the dark canvas background.
	Dark bool
	// Editable turns text elements into contenteditable regions and image
	// slots into regenerate targets (interactive renderer only).
	Editable bool
	// ImageAction is the endpoint image slots post to when clicked. Empty
	// disables the data-action attribute.
	ImageAction string
	// Title names the document (HTML title, PPTX properties).
	Title string
	// Theme carries the selected theme tokens, partial overrides and asset
	// resolver. Nil falls back to built-in colours.
	Theme *theme.RendererConfig
	// Locale selects chrome labels such as the missing-template card.
	Locale string
	// Translator overrides the built-in label catalog.
	Translator Translator
	// OnMissing customises the string used when a label has no translation.
	OnMissing MissingTranslationHandler
}

// Token returns the theme token for key, or fallback when unset.
func (o RenderOptions) Token(key, fallback string) string {
	if o.Theme == nil || o.Theme.Tokens == nil {
		return fallback
	}
	if v := o.Theme.Tokens[key]; v != "" {
		return v
	}
	return fallback
}

// Partial returns the theme partial override for name, or "" when the theme
// does not override it.
func (o RenderOptions) Partial(name string) string {
	if o.Theme == nil || o.Theme.Partials == nil {
		return ""
	}
	return o.Theme.Partials[name]
}

// AssetURL resolves a theme asset key, returning key unchanged when the theme
// has no resolver.
func (o RenderOptions) AssetURL(key string) string {
	if o.Theme == nil || o.Theme.AssetURL == nil {
		return key
	}
	if url := o.Theme.AssetURL(key); url != "" {
		return url
	}
	return key
}

// CSSVars returns the theme CSS variables, or nil.
func (o RenderOptions) CSSVars() map[string]string {
	if o.Theme == nil {
		return nil
	}
	return o.Theme.CSSVars
}
