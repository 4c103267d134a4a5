package tui

import (
	"io"

	"github.com/goliatone/go-slidegen/pkg/model"
)

// OutputFormat controls how the filled deck is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the deck as indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits the deck as YAML.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatPrettyText emits a human-friendly summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme sets prefixes for prompt labels and status lines.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DeckTransformer rewrites the filled deck before serialization, after
// dropped slides are removed.
type DeckTransformer func(model.Deck) (model.Deck, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver replaces the survey driver, typically with a scripted one.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithMessages sets the writer the default survey driver prints slide
// headers and validation messages to. Defaults to stderr so stdout stays
// clean for the serialized deck.
func WithMessages(w io.Writer) Option {
	return func(r *Renderer) {
		r.messages = w
	}
}

// WithDeckTransformer registers fn to run on the filled deck.
func WithDeckTransformer(fn DeckTransformer) Option {
	return func(r *Renderer) {
		r.transformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithSlideReview asks after every slide whether to keep it.
func WithSlideReview(enabled bool) Option {
	return func(r *Renderer) {
		r.review = enabled
	}
}
