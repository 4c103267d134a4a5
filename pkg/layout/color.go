package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an sRGB color with straight alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

var namedColors = map[string]Color{
	"black":       {A: 1},
	"white":       {R: 255, G: 255, B: 255, A: 1},
	"transparent": {},
}

// ParseColor understands #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() and a few
// keywords. It reports false for anything else.
func ParseColor(raw string) (Color, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return Color{}, false
	}
	if c, ok := namedColors[value]; ok {
		return c, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHex(value[1:])
	}
	if strings.HasPrefix(value, "rgb") {
		return parseFunctional(value)
	}
	return Color{}, false
}

// MustParseColor returns fallback when raw cannot be parsed.
func MustParseColor(raw string, fallback Color) Color {
	if c, ok := ParseColor(raw); ok {
		return c
	}
	return fallback
}

// Transparent reports whether the color paints nothing.
func (c Color) Transparent() bool {
	return c.A <= 0
}

// Hex returns #RRGGBB, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ARGB returns the AARRGGBB form used by OOXML writers.
func (c Color) ARGB() string {
	alpha := uint8(math.Round(clamp01(c.A) * 255))
	return fmt.Sprintf("%02X%02X%02X%02X", alpha, c.R, c.G, c.B)
}

// Blend composites c over an opaque background and returns an opaque color.
// Writers without alpha support use this to approximate translucent fills.
func (c Color) Blend(background Color) Color {
	a := clamp01(c.A)
	mix := func(fg, bg uint8) uint8 {
		return uint8(math.Round(float64(fg)*a + float64(bg)*(1-a)))
	}
	return Color{
		R: mix(c.R, background.R),
		G: mix(c.G, background.G),
		B: mix(c.B, background.B),
		A: 1,
	}
}

func parseHex(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	if len(hex) == 8 {
		return Color{
			R: uint8(v >> 24),
			G: uint8(v >> 16),
			B: uint8(v >> 8),
			A: float64(uint8(v)) / 255,
		}, true
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, true
}

func parseFunctional(value string) (Color, bool) {
	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return Color{}, false
	}
	parts := strings.Split(value[open+1:len(value)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || n < 0 || n > 255 {
			return Color{}, false
		}
		channels[i] = uint8(math.Round(n))
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, false
		}
		alpha = clamp01(a)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
