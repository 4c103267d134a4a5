package slots

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

const (
	wideEm   = 1.0
	narrowEm = 0.55
	spaceEm  = 0.3

	defaultLineHeight = 1.2
)

// textWidthEm estimates the advance of s in ems. East Asian wide and
// fullwidth runes take a full em; everything else is treated as narrow.
func textWidthEm(s string) float64 {
	var total float64
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			total += spaceEm
		case unicode.Is(unicode.Mn, r) || r == '\u200d' || r == '\ufe0f':
		default:
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				total += wideEm
			default:
				total += narrowEm
			}
		}
	}
	return total
}

// estimateLines returns how many lines text wraps to in a box of boxWidth
// pixels at fontSize. A non-positive boxWidth counts hard lines only.
func estimateLines(text string, fontSize, boxWidth float64) int {
	paragraphs := strings.Split(text, "\n")
	if boxWidth <= 0 || fontSize <= 0 {
		return len(paragraphs)
	}
	lines := 0
	for _, p := range paragraphs {
		w := textWidthEm(p) * fontSize
		n := int(math.Ceil(w / boxWidth))
		if n < 1 {
			n = 1
		}
		lines += n
	}
	return lines
}

type fitBox struct {
	width      float64
	height     float64
	fontSize   float64
	lineHeight float64
	maxLines   int
}

func (b fitBox) fits(text string, scale float64) bool {
	size := b.fontSize * scale
	lines := estimateLines(text, size, b.width)
	if b.maxLines > 0 && lines > b.maxLines {
		return false
	}
	if b.height > 0 {
		lh := b.lineHeight
		if lh <= 0 {
			lh = defaultLineHeight
		}
		if float64(lines)*size*lh > b.height {
			return false
		}
	}
	return true
}

// fitScale returns the largest scale in [minScale, 1], stepping by step, at
// which text fits the box. minScale is returned when nothing fits.
func fitScale(text string, box fitBox, minScale, step float64) float64 {
	if box.fontSize <= 0 || text == "" {
		return 1
	}
	for i := 0; ; i++ {
		scale := 1 - float64(i)*step
		if scale < minScale-1e-9 {
			break
		}
		if box.fits(text, scale) {
			return math.Round(scale*100) / 100
		}
	}
	return minScale
}
