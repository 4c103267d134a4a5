package render

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Label keys used by the built-in renderers.
const (
	LabelTemplateMissing  = "template.missing"
	LabelImagePlaceholder = "image.placeholder"
	LabelImageRegenerate  = "image.regenerate"
	LabelImageSelect      = "image.select"
	LabelImageAdd         = "image.add"
	LabelBuyNow           = "link.buy"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a label key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler produces the string used when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	return key
}

// Catalog is a static Translator keyed by language tag. Lookups match the
// requested locale against the catalog languages, so "zh-CN" resolves to
// "zh" and unknown locales fall back to the first language.
type Catalog struct {
	tags     []language.Tag
	messages []map[string]string
	matcher  language.Matcher
}

// NewCatalog builds a catalog. The first entry is the fallback language.
func NewCatalog(entries map[string]map[string]string, order ...string) *Catalog {
	c := &Catalog{}
	add := func(lang string) {
		msgs, ok := entries[lang]
		if !ok {
			return
		}
		for _, tag := range c.tags {
			if tag == language.Make(lang) {
				return
			}
		}
		c.tags = append(c.tags, language.Make(lang))
		c.messages = append(c.messages, msgs)
	}
	for _, lang := range order {
		add(lang)
	}
	for lang := range entries {
		add(lang)
	}
	c.matcher = language.NewMatcher(c.tags)
	return c
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil || len(c.tags) == 0 {
		return "", ErrMissingTranslator
	}
	idx := 0
	if strings.TrimSpace(locale) != "" {
		if tag, err := language.Parse(locale); err == nil {
			_, idx, _ = c.matcher.Match(tag)
		}
	}
	msg, ok := c.messages[idx][key]
	if !ok {
		msg, ok = c.messages[0][key]
	}
	if !ok {
		return "", fmt.Errorf("render: no label %q for locale %q", key, locale)
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return msg, nil
}

// DefaultLabels holds the English and Chinese chrome labels.
var DefaultLabels = NewCatalog(map[string]map[string]string{
	"en": {
		LabelTemplateMissing:  "Template not found",
		LabelImagePlaceholder: "Image",
		LabelImageRegenerate:  "Click to regenerate image",
		LabelImageSelect:      "Select Image",
		LabelImageAdd:         "Click to add image",
		LabelBuyNow:           "Buy now",
	},
	"zh": {
		LabelTemplateMissing:  "模板未找到",
		LabelImagePlaceholder: "图片",
		LabelImageRegenerate:  "点击重新生成图片",
		LabelImageSelect:      "选择图片",
		LabelImageAdd:         "点击添加图片",
		LabelBuyNow:           "点击购买",
	},
}, "en", "zh")

// Label translates key for the options locale. The configured Translator is
// tried first, then DefaultLabels, then OnMissing.
func (o RenderOptions) Label(key string, args ...any) string {
	onMissing := o.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	var lastErr error = ErrMissingTranslator
	for _, t := range []Translator{o.Translator, DefaultLabels} {
		if t == nil {
			continue
		}
		msg, err := t.Translate(o.Locale, key, args...)
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
		lastErr = err
	}
	return onMissing(o.Locale, key, args, lastErr)
}

// LabelFuncs returns template helpers bound to opts: `label(key, ...args)`
// and `current_locale()`.
func LabelFuncs(opts RenderOptions) map[string]any {
	return map[string]any{
		"label": func(key string, args ...any) string {
			return opts.Label(strings.TrimSpace(key), args...)
		},
		"current_locale": func() string {
			return opts.Locale
		},
	}
}
