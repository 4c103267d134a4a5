package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/slots"
)

// Name identifies the renderer in a registry.
const Name = "tui"

// Image slot actions offered by the select prompt, in display order.
const (
	imageKeep = iota
	imageURL
	imageQuery
	imageClear
)

var imageActions = []string{"Keep current", "Enter image URL", "Enter search query", "Clear"}

// Renderer implements render.Renderer for terminal-driven sessions: it walks
// every resolved slide, prompts for each slot and emits the filled deck.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	messages     io.Writer
	transformer  DeckTransformer
	theme        Theme
	review       bool
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.messages)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every slot of every slide. Prompt defaults come from the
// resolution, so accepting every default reproduces the resolved deck.
func (r *Renderer) Render(ctx context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if len(slides) == 0 {
		return nil, render.ErrNoSlides
	}

	state := newSession(slides, opts.Title)

	for i, slide := range slides {
		if slide.Missing() {
			return nil, &render.SlideError{Index: i, SlideID: slide.SlideID, TemplateID: slide.TemplateID, Err: errors.New("template not found")}
		}
		if err := r.info(ctx, fmt.Sprintf("Slide %d/%d: %s (%s)", i+1, len(slides), slide.Template.Name, slide.TemplateID)); err != nil {
			return nil, err
		}
		if err := r.promptSlide(ctx, i, slide, state); err != nil {
			return nil, err
		}
		if r.review {
			keep, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Keep slide %d?", i+1),
				Default: true,
			})
			if err != nil {
				return nil, err
			}
			if !keep {
				state.drop(i)
			}
		}
	}

	deck := state.result()
	if r.transformer != nil {
		var err error
		if deck, err = r.transformer(deck); err != nil {
			return nil, fmt.Errorf("tui: deck transformer: %w", err)
		}
	}
	if len(deck.Slides) == 0 {
		return nil, ErrEmptyDeck
	}
	return r.serialize(deck)
}

func (r *Renderer) promptSlide(ctx context.Context, index int, slide model.ResolvedSlide, state *session) error {
	resolved := make(map[string]model.ResolvedElement, len(slide.Elements))
	for _, el := range slide.Elements {
		resolved[el.Element.ID] = el
	}

	seen := make(map[string]bool)
	for _, def := range slide.Template.Elements {
		key := def.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		el, ok := resolved[def.ID]
		if !ok {
			el = model.ResolvedElement{Element: def, Source: model.SourceNone}
		}

		var err error
		switch def.Kind {
		case model.ElementText:
			err = r.promptText(ctx, index, el, state)
		default:
			if el.Source == model.SourceFill {
				continue
			}
			err = r.promptImage(ctx, index, el, state)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptText(ctx context.Context, index int, el model.ResolvedElement, state *session) error {
	def := el.Element
	key := def.Key()
	check := textRules(def)

	var (
		response string
		err      error
	)
	if multiline(def, el.Text) {
		response, err = r.driver.TextArea(ctx, TextAreaConfig{
			Message:   r.prompt(key),
			Default:   el.Text,
			Help:      describeConstraints(def),
			Validator: check,
		})
	} else {
		response, err = r.driver.Input(ctx, InputConfig{
			Message:   r.prompt(key),
			Default:   el.Text,
			Help:      describeConstraints(def),
			Validator: check,
		})
	}
	if err != nil {
		return err
	}

	state.setText(index, key, strings.TrimSpace(response))

	if el.Link == "" {
		return nil
	}
	link, err := r.driver.Input(ctx, InputConfig{
		Message: r.prompt(key + " link"),
		Default: el.Link,
		Validator: func(v string) error {
			if v = strings.TrimSpace(v); v != "" && slots.SafeLink(v) == "" {
				return errors.New("link must be an absolute http(s) URL")
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	state.setLink(index, key, strings.TrimSpace(link))
	return nil
}

func (r *Renderer) promptImage(ctx context.Context, index int, el model.ResolvedElement, state *session) error {
	def := el.Element
	key := def.Key()

	current := el.ImageURL
	if current == "" {
		current = el.Placeholder
	}
	help := "current: none"
	if current != "" {
		help = "current: " + current
	}

	action, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.prompt(key),
		Options:      imageActions,
		DefaultIndex: imageKeep,
		Help:         help,
	})
	if err != nil {
		return err
	}

	switch action {
	case imageURL:
		url, err := r.driver.Input(ctx, InputConfig{
			Message: r.prompt(key + " URL"),
			Default: el.ImageURL,
			Validator: func(v string) error {
				if !slots.IsImageRef(v) {
					return errors.New("expected an http(s) URL, an absolute path or a data:image URI")
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
		state.setImage(index, key, strings.TrimSpace(url))
		return nil
	case imageQuery:
		query, err := r.driver.Input(ctx, InputConfig{
			Message: r.prompt(key + " search query"),
			Default: def.ImageQuery,
		})
		if err != nil {
			return err
		}
		state.setImage(index, key, strings.TrimSpace(query))
		return nil
	case imageClear:
		state.setImage(index, key, "")
		return nil
	default:
		return nil
	}
}

func (r *Renderer) prompt(label string) string {
	return r.theme.PromptPrefix + label
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

// textRules returns the validator enforcing required and strict constraints.
func textRules(def model.Element) func(string) error {
	required := !def.Optional && def.ExampleContent == ""
	return func(raw string) error {
		value := strings.TrimSpace(raw)
		if value == "" {
			if required {
				return errors.New("value is required")
			}
			return nil
		}
		c := def.Constraints
		if c == nil || c.Overflow != model.OverflowStrict {
			return nil
		}
		if c.MaxChars > 0 && utf8.RuneCountInString(value) > c.MaxChars {
			return fmt.Errorf("at most %d characters", c.MaxChars)
		}
		if c.MaxLines > 0 && len(strings.Split(value, "\n")) > c.MaxLines {
			return fmt.Errorf("at most %d lines", c.MaxLines)
		}
		return nil
	}
}

func multiline(def model.Element, current string) bool {
	if strings.Contains(current, "\n") {
		return true
	}
	if c := def.Constraints; c != nil {
		return c.MaxLines > 1 || c.MaxChars >= 120
	}
	return false
}

func describeConstraints(def model.Element) string {
	c := def.Constraints
	if c == nil {
		return ""
	}
	var parts []string
	if c.MaxChars > 0 {
		parts = append(parts, fmt.Sprintf("max %d chars", c.MaxChars))
	}
	if c.MaxLines > 0 {
		parts = append(parts, fmt.Sprintf("max %d lines", c.MaxLines))
	}
	if c.Overflow != "" {
		parts = append(parts, string(c.Overflow))
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) serialize(deck model.Deck) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatYAML:
		return yaml.Marshal(deck)
	case OutputFormatPrettyText:
		return []byte(prettyPrint(deck)), nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(deck); err != nil {
			return nil, fmt.Errorf("tui: encode deck: %w", err)
		}
		return buf.Bytes(), nil
	}
}

func prettyPrint(deck model.Deck) string {
	var b strings.Builder
	if deck.Title != "" {
		fmt.Fprintf(&b, "%s\n", deck.Title)
	}
	for i, slide := range deck.Slides {
		fmt.Fprintf(&b, "Slide %d (%s)\n", i+1, slide.TemplateID)
		writeSection(&b, "content", slide.Content)
		writeSection(&b, "images", slide.Images)
		writeSection(&b, "links", slide.Links)
	}
	return b.String()
}

func writeSection(b *strings.Builder, name string, values map[string]string) {
	if len(values) == 0 {
		return
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "  %s:\n", name)
	for _, key := range keys {
		fmt.Fprintf(b, "    %s: %s\n", key, strings.ReplaceAll(values[key], "\n", " / "))
	}
}
