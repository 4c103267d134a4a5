package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/goliatone/go-slidegen/pkg/model"
)

// Transformer mutates a Deck before slot resolution. Implementations can
// inject default copy, rewrite templates or attach theme tokens.
type Transformer interface {
	Transform(ctx context.Context, deck *model.Deck) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, deck *model.Deck) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, deck *model.Deck) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, deck)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON
// document. Deck-wide defaults fill keys a slide leaves blank; per-slide
// patches are addressed by slide id or zero-based index and always win:
//
//	{
//	  "title": "Spring reviews",
//	  "theme": {"primary": "#ff6600"},
//	  "defaults": {"links": {"social": "https://shop.example.com"}},
//	  "slides": {
//	    "0": {"templateId": "canvas-template-2", "content": {"title": "Hello"}}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Title    string                    `json:"title"`
	Theme    map[string]string         `json:"theme"`
	Defaults jsonSlidePatch            `json:"defaults"`
	Slides   map[string]jsonSlidePatch `json:"slides"`
}

type jsonSlidePatch struct {
	TemplateID string            `json:"templateId"`
	Content    map[string]string `json:"content"`
	Images     map[string]string `json:"images"`
	Links      map[string]string `json:"links"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonPresetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied deck.
func (t *JSONPresetTransformer) Transform(ctx context.Context, deck *model.Deck) error {
	if deck == nil {
		return errors.New("json preset transformer: deck is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		deck.Title = t.document.Title
	}
	if len(t.document.Theme) > 0 {
		deck.Theme = mergeStringMap(cloneStringMap(deck.Theme), t.document.Theme)
	}

	slides := make([]model.Slide, len(deck.Slides))
	for i, slide := range deck.Slides {
		slides[i] = applyDefaults(slide, t.document.Defaults)
	}

	for key, patch := range t.document.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx := findSlide(slides, key)
		if idx < 0 {
			return fmt.Errorf("json preset transformer: slide %q not found", key)
		}
		slides[idx] = applySlidePatch(slides[idx], patch)
	}
	deck.Slides = slides
	return nil
}

func applyDefaults(slide model.Slide, defaults jsonSlidePatch) model.Slide {
	if slide.TemplateID == "" {
		slide.TemplateID = defaults.TemplateID
	}
	slide.Content = fillBlank(cloneStringMap(slide.Content), defaults.Content)
	slide.Images = fillBlank(cloneStringMap(slide.Images), defaults.Images)
	slide.Links = fillBlank(cloneStringMap(slide.Links), defaults.Links)
	return slide
}

func applySlidePatch(slide model.Slide, patch jsonSlidePatch) model.Slide {
	if patch.TemplateID != "" {
		slide.TemplateID = patch.TemplateID
	}
	slide.Content = mergeStringMap(slide.Content, patch.Content)
	slide.Images = mergeStringMap(slide.Images, patch.Images)
	slide.Links = mergeStringMap(slide.Links, patch.Links)
	return slide
}

// findSlide matches key against slide ids first, then as an index.
func findSlide(slides []model.Slide, key string) int {
	for i, slide := range slides {
		if slide.ID != "" && slide.ID == key {
			return i
		}
	}
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(slides) {
		return idx
	}
	return -1
}

func fillBlank(dst, src map[string]string) map[string]string {
	for key, value := range src {
		if strings.TrimSpace(dst[key]) != "" {
			continue
		}
		if dst == nil {
			dst = make(map[string]string, len(src))
		}
		dst[key] = value
	}
	return dst
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
