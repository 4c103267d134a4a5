package pptx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

// SlideText is the visible text of one presentation slide, one entry per
// non-empty paragraph.
type SlideText struct {
	Index      int
	Paragraphs []string
}

// ReadFile extracts the text of every slide in a PPTX file.
func ReadFile(path string) ([]SlideText, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("export: open presentation: %w", err)
	}

	slides := pres.GetAllSlides()
	out := make([]SlideText, 0, len(slides))
	for i, slide := range slides {
		entry := SlideText{Index: i}
		for _, shape := range slide.GetShapes() {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			for _, para := range rts.GetParagraphs() {
				var text strings.Builder
				for _, elem := range para.GetElements() {
					if run, ok := elem.(*ppt.TextRun); ok {
						text.WriteString(run.GetText())
					}
				}
				if line := strings.TrimSpace(text.String()); line != "" {
					entry.Paragraphs = append(entry.Paragraphs, line)
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// ReadBytes extracts slide text from an encoded PPTX document.
func ReadBytes(data []byte) ([]SlideText, error) {
	dir, err := os.MkdirTemp("", "slidegen-pptx-")
	if err != nil {
		return nil, fmt.Errorf("export: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("export: write temp presentation: %w", err)
	}
	return ReadFile(path)
}
