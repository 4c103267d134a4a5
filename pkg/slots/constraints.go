package slots

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/model"
)

const ellipsis = "…"

type constrained struct {
	text      string
	scale     float64
	truncated bool
}

// applyConstraints holds text to the element constraints.
func (r *Resolver) applyConstraints(tpl model.Template, el model.Element, text string) (constrained, error) {
	out := constrained{text: text, scale: 1}
	c := el.Constraints
	if c == nil || text == "" {
		return out, nil
	}

	strategy := c.Overflow
	if strategy == "" {
		strategy = model.OverflowTruncate
	}

	switch strategy {
	case model.OverflowStrict:
		if c.MaxChars > 0 {
			if n := utf8.RuneCountInString(text); n > c.MaxChars {
				return out, &ConstraintError{TemplateID: tpl.ID, ElementID: el.ID, Limit: "characters", Max: c.MaxChars, Got: n}
			}
		}
		if c.MaxLines > 0 {
			if n := len(strings.Split(text, "\n")); n > c.MaxLines {
				return out, &ConstraintError{TemplateID: tpl.ID, ElementID: el.ID, Limit: "lines", Max: c.MaxLines, Got: n}
			}
		}
	case model.OverflowTruncate:
		out.text, out.truncated = truncate(text, c.MaxChars, c.MaxLines)
	case model.OverflowAutoScale:
		box := layout.BoxFor(el).Clamp(tpl.Size)
		height := box.Height
		if el.Size.Height.Auto {
			height = 0
		}
		out.scale = fitScale(text, fitBox{
			width:      box.Width,
			height:     height,
			fontSize:   el.Style.FontSize,
			lineHeight: el.Style.LineHeight,
			maxLines:   c.MaxLines,
		}, r.minFontScale, r.scaleStep)
	}
	return out, nil
}

// truncate cuts text to maxChars runes (ending in an ellipsis) and drops hard
// lines past maxLines. Zero limits are ignored.
func truncate(text string, maxChars, maxLines int) (string, bool) {
	cut := false
	if maxLines > 0 {
		lines := strings.Split(text, "\n")
		if len(lines) > maxLines {
			text = strings.Join(lines[:maxLines], "\n")
			cut = true
		}
	}
	if maxChars > 0 {
		count := utf8.RuneCountInString(text)
		if count > maxChars || (cut && count+1 > maxChars) {
			runes := []rune(text)
			keep := min(max(maxChars-1, 0), len(runes))
			text = string(runes[:keep])
			cut = true
		}
	}
	if cut {
		text = strings.TrimRight(text, " \t\n") + ellipsis
	}
	return text, cut
}
