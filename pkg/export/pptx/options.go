package pptx

import (
	"context"

	"github.com/goliatone/go-slidegen/internal/imagesource"
)

// ImageSource loads the bytes behind an image reference.
type ImageSource interface {
	Load(ctx context.Context, ref string) ([]byte, string, error)
}

// ImageSourceFunc adapts a function to ImageSource.
type ImageSourceFunc func(ctx context.Context, ref string) ([]byte, string, error)

// Load calls fn.
func (fn ImageSourceFunc) Load(ctx context.Context, ref string) ([]byte, string, error) {
	return fn(ctx, ref)
}

// Option customises an Exporter.
type Option func(*Exporter)

// WithImageSource replaces the default loader (data URIs, http(s) and local
// paths).
func WithImageSource(source ImageSource) Option {
	return func(e *Exporter) {
		if source != nil {
			e.images = source
		}
	}
}

// WithCreator sets the document creator property.
func WithCreator(creator string) Option {
	return func(e *Exporter) {
		if creator != "" {
			e.creator = creator
		}
	}
}

// WithFontFace sets the face used when a text element names no family.
func WithFontFace(face string) Option {
	return func(e *Exporter) {
		if face != "" {
			e.fontFace = face
		}
	}
}

// WithThumbnailWidth sets the pixel width of thumbnails.
func WithThumbnailWidth(width int) Option {
	return func(e *Exporter) {
		if width > 0 {
			e.thumbWidth = width
		}
	}
}

// WithFontDirs adds directories searched for TrueType fonts when
// rasterising thumbnails.
func WithFontDirs(dirs ...string) Option {
	return func(e *Exporter) {
		e.fontDirs = append(e.fontDirs, dirs...)
	}
}

func defaultImageSource() ImageSource {
	return imagesource.New()
}
