package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render/template/gotemplate"
)

// DefaultLineClamp caps visible lines for text without a maxLines constraint.
const DefaultLineClamp = 10

// Canvas backgrounds.
const (
	DarkCanvas  = "#1a1a2e"
	LightCanvas = "#ffffff"
)

// CSS accumulates inline style declarations in insertion order. Setting a
// property twice keeps the first position and the last value.
type CSS struct {
	props  []string
	values map[string]string
}

// Set records prop: value. Empty values are ignored and unsafe characters
// are stripped from the value.
func (c *CSS) Set(prop, value string) *CSS {
	value = CleanCSSValue(value)
	if prop == "" || value == "" {
		return c
	}
	if c.values == nil {
		c.values = make(map[string]string)
	}
	if _, exists := c.values[prop]; !exists {
		c.props = append(c.props, prop)
	}
	c.values[prop] = value
	return c
}

// Px records a pixel length.
func (c *CSS) Px(prop string, v float64) *CSS {
	return c.Set(prop, gotemplate.FormatNumber(v)+"px")
}

// Percent records a percentage length.
func (c *CSS) Percent(prop string, v float64) *CSS {
	return c.Set(prop, gotemplate.FormatNumber(v)+"%")
}

// Color records a color, normalising it through layout.ParseColor. Values
// that do not parse are dropped.
func (c *CSS) Color(prop, raw string) *CSS {
	col, ok := layout.ParseColor(raw)
	if !ok {
		return c
	}
	return c.Set(prop, CSSColor(col))
}

// String renders the declarations separated by semicolons.
func (c *CSS) String() string {
	if c == nil || len(c.props) == 0 {
		return ""
	}
	var b strings.Builder
	for i, prop := range c.props {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(prop)
		b.WriteString(":")
		b.WriteString(c.values[prop])
	}
	return b.String()
}

// CSSColor formats a color as #rrggbb or rgba().
func CSSColor(c layout.Color) string {
	if c.A >= 1 {
		return strings.ToLower(c.Hex())
	}
	return "rgba(" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B)) + "," + gotemplate.FormatNumber(c.A) + ")"
}

// CleanCSSValue removes characters that could terminate a declaration or
// escape the style attribute.
func CleanCSSValue(value string) string {
	value = strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\\', '\n', '\r':
			return -1
		}
		return r
	}, value)
	value = strings.TrimSpace(value)
	if strings.Contains(strings.ToLower(value), "url(") || strings.Contains(strings.ToLower(value), "expression(") {
		return ""
	}
	return value
}

// TextStyle records the typography of a text element with the font size
// already resolved to fontPx. textColor is used when the element has none.
func TextStyle(css *CSS, el model.ResolvedElement, fontPx float64, textColor string) {
	style := el.Element.Style
	if fontPx > 0 {
		css.Px("font-size", fontPx)
	}
	if style.FontFamily != "" {
		css.Set("font-family", style.FontFamily)
	}
	if style.FontWeight != "" {
		css.Set("font-weight", style.FontWeight)
	}
	if style.Color != "" {
		css.Color("color", style.Color)
	} else {
		css.Color("color", textColor)
	}
	if style.LineHeight > 0 {
		css.Set("line-height", gotemplate.FormatNumber(style.LineHeight))
	}
	switch style.TextAlign {
	case "left", "center", "right", "justify":
		css.Set("text-align", style.TextAlign)
	}
	if style.LetterSpacing != "" {
		css.Set("letter-spacing", style.LetterSpacing)
	}
	css.Set("white-space", "pre-wrap")
	css.Set("word-break", "break-word")
}

// LineClamp limits visible lines using the webkit box model. maxLines of 0
// applies DefaultLineClamp.
func LineClamp(css *CSS, maxLines int) {
	if maxLines <= 0 {
		maxLines = DefaultLineClamp
	}
	css.Set("display", "-webkit-box")
	css.Set("-webkit-line-clamp", strconv.Itoa(maxLines))
	css.Set("-webkit-box-orient", "vertical")
	css.Set("overflow", "hidden")
}

// BoxStyle records fill, radius and shadow shared by every element kind.
// Radius is multiplied by scale.
func BoxStyle(css *CSS, style model.Style, scale float64) {
	if style.BackgroundColor != "" {
		css.Color("background-color", style.BackgroundColor)
	}
	if style.BorderRadius > 0 {
		css.Px("border-radius", style.BorderRadius*scale)
	}
	if style.BoxShadow != "" {
		css.Set("box-shadow", style.BoxShadow)
	}
}

// ObjectFit returns the CSS object-fit for an image element.
func ObjectFit(style model.Style) string {
	if style.ObjectFit == "" {
		return string(model.FitCover)
	}
	return string(style.ObjectFit)
}

// CanvasBackground returns the canvas color for opts.
func CanvasBackground(opts RenderOptions) string {
	if opts.Dark {
		return DarkCanvas
	}
	return opts.Token("background", LightCanvas)
}
