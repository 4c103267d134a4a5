package pptx

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
)

// Thumbnails rasterises each slide to a PNG of the configured width.
func (e *Exporter) Thumbnails(ctx context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) ([][]byte, error) {
	p, err := e.Build(ctx, slides, opts)
	if err != nil {
		return nil, err
	}

	renderOpts := ppt.DefaultRenderOptions()
	renderOpts.Width = e.thumbWidth
	renderOpts.Format = ppt.ImageFormatPNG
	renderOpts.FontDirs = append(renderOpts.FontDirs, e.fontDirs...)
	renderOpts.FontCache = ppt.NewFontCache(renderOpts.FontDirs...)

	out := make([][]byte, 0, len(slides))
	for i := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := p.SlideToImage(i, renderOpts)
		if err != nil {
			return nil, fmt.Errorf("export: thumbnail %d: %w", i, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("export: encode thumbnail %d: %w", i, err)
		}
		out = append(out, buf.Bytes())
	}
	return out, nil
}
