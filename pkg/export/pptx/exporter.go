package pptx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
)

const (
	// Name identifies the exporter in a render.Registry.
	Name = "pptx"
	// ContentType is the MIME type of the produced document.
	ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

	DefaultCreator        = "slidegen"
	DefaultFontFace       = "Arial"
	DefaultThumbnailWidth = 960

	// SlideWidthEMU and SlideHeightEMU are the 16:9 presentation slide.
	SlideWidthEMU  = 9144000
	SlideHeightEMU = 5143500

	defaultTextColor   = "#333333"
	placeholderFill    = "#f0f0f0"
	placeholderText    = "#999999"
	placeholderFontPx  = 18
	placeholderMinSide = 40
)

// ErrNoSlides is returned when asked to export an empty deck.
var ErrNoSlides = errors.New("no slides found in presentation")

// slideSize is the presentation slide in CSS pixels.
var slideSize = model.Size{
	Width:  float64(SlideWidthEMU) / layout.EMUPerPixel,
	Height: float64(SlideHeightEMU) / layout.EMUPerPixel,
}

// Exporter writes resolved slides to PPTX. It implements render.Renderer.
type Exporter struct {
	images     ImageSource
	creator    string
	fontFace   string
	thumbWidth int
	fontDirs   []string
}

var _ render.Renderer = (*Exporter)(nil)

// New constructs an Exporter.
func New(options ...Option) *Exporter {
	e := &Exporter{
		creator:    DefaultCreator,
		fontFace:   DefaultFontFace,
		thumbWidth: DefaultThumbnailWidth,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.images == nil {
		e.images = defaultImageSource()
	}
	return e
}

// Name implements render.Renderer.
func (e *Exporter) Name() string {
	return Name
}

// ContentType implements render.Renderer.
func (e *Exporter) ContentType() string {
	return ContentType
}

// Render builds the presentation and returns the encoded PPTX bytes.
func (e *Exporter) Render(ctx context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) ([]byte, error) {
	p, err := e.Build(ctx, slides, opts)
	if err != nil {
		return nil, err
	}
	return Encode(p)
}

// Encode serialises a presentation as PPTX.
func Encode(p *ppt.Presentation) ([]byte, error) {
	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("export: create writer: %w", err)
	}
	writer, ok := w.(*ppt.PPTXWriter)
	if !ok {
		return nil, errors.New("export: unexpected writer type")
	}
	var buf bytes.Buffer
	if err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("export: write presentation: %w", err)
	}
	return buf.Bytes(), nil
}

// Build draws every slide onto a new presentation.
func (e *Exporter) Build(ctx context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) (*ppt.Presentation, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	for i, slide := range slides {
		if slide.Missing() {
			return nil, &render.SlideError{
				Index:      i,
				SlideID:    slide.SlideID,
				TemplateID: slide.TemplateID,
				Err:        errors.New(opts.Label(render.LabelTemplateMissing)),
			}
		}
	}

	p := ppt.New()
	props := p.GetDocumentProperties()
	props.Title = opts.Title
	props.Creator = e.creator

	canvasColor := layout.MustParseColor(render.CanvasBackground(opts), layout.Color{R: 255, G: 255, B: 255, A: 1})
	textColor := opts.Token("text", defaultTextColor)

	for i, slide := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var target *ppt.Slide
		if i == 0 {
			target = p.GetActiveSlide()
		} else {
			target = p.CreateSlide()
		}

		d := &drawer{
			exporter: e,
			slide:    target,
			fit:      layout.Fit(slide.Template.Size, slideSize),
			canvas:   slide.Template.Size,
			bg:       canvasColor,
			text:     textColor,
			opts:     opts,
		}
		d.fillRect(layout.Box{Width: slideSize.Width, Height: slideSize.Height}, canvasColor)
		for _, el := range layout.OrderResolved(slide.Elements) {
			if err := d.element(ctx, el); err != nil {
				return nil, &render.SlideError{Index: i, SlideID: slide.SlideID, TemplateID: slide.TemplateID, Err: err}
			}
		}
	}
	return p, nil
}

type drawer struct {
	exporter *Exporter
	slide    *ppt.Slide
	fit      layout.Fitting
	canvas   model.Size
	bg       layout.Color
	text     string
	opts     render.RenderOptions
}

func (d *drawer) element(ctx context.Context, el model.ResolvedElement) error {
	box := d.fit.Apply(layout.BoxFor(el.Element).Clamp(d.canvas))
	if box.Width <= 0 || box.Height <= 0 {
		return nil
	}

	switch el.Element.Kind {
	case model.ElementText:
		if strings.TrimSpace(el.Text) == "" {
			return nil
		}
		d.textBox(box, el)
	case model.ElementImage, model.ElementBackground:
		if fill, ok := layout.ParseColor(el.Element.Style.BackgroundColor); ok && !fill.Transparent() {
			d.fillRect(box, fill.Blend(d.bg))
		}
		switch {
		case el.HasImage():
			if err := d.image(ctx, box, el); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				d.placeholder(box, placeholderLabel(el))
			}
		case el.Placeholder != "":
			d.placeholder(box, el.Placeholder)
		}
	}
	return nil
}

func (d *drawer) image(ctx context.Context, box layout.Box, el model.ResolvedElement) error {
	data, mime, err := d.exporter.images.Load(ctx, el.ImageURL)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("export: empty image")
	}
	shape := d.slide.CreateDrawingShape()
	shape.SetImageData(data, mime)
	shape.SetOffsetX(layout.PxToEMU(box.X)).SetOffsetY(layout.PxToEMU(box.Y))
	shape.SetWidth(layout.PxToEMU(box.Width)).SetHeight(layout.PxToEMU(box.Height))
	return nil
}

func (d *drawer) fillRect(box layout.Box, c layout.Color) {
	shape := d.slide.CreateRichTextShape()
	shape.SetOffsetX(layout.PxToEMU(box.X)).SetOffsetY(layout.PxToEMU(box.Y))
	shape.SetWidth(layout.PxToEMU(box.Width)).SetHeight(layout.PxToEMU(box.Height))
	shape.SetFill(solidFill(c))
}

// placeholder draws a grey rectangle labelled with the image query.
func (d *drawer) placeholder(box layout.Box, query string) {
	shape := d.slide.CreateRichTextShape()
	shape.SetOffsetX(layout.PxToEMU(box.X)).SetOffsetY(layout.PxToEMU(box.Y))
	shape.SetWidth(layout.PxToEMU(box.Width)).SetHeight(layout.PxToEMU(box.Height))
	shape.SetFill(solidFill(layout.MustParseColor(placeholderFill, layout.Color{A: 1})))

	if box.Width < placeholderMinSide || box.Height < placeholderMinSide {
		return
	}
	label := strings.TrimSpace(query)
	if label == "" {
		label = d.opts.Label(render.LabelImagePlaceholder)
	}
	run := shape.CreateTextRun(render.DefaultPlaceholderIcon + " " + label)
	font := run.GetFont()
	font.SetSize(layout.FontPoints(placeholderFontPx * d.fit.Scale)).
		SetColor(ppt.NewColor(layout.MustParseColor(placeholderText, layout.Color{A: 1}).ARGB()))
	font.Name = d.exporter.fontFace
	shape.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

func (d *drawer) textBox(box layout.Box, el model.ResolvedElement) {
	style := el.Element.Style
	shape := d.slide.CreateRichTextShape()
	shape.SetOffsetX(layout.PxToEMU(box.X)).SetOffsetY(layout.PxToEMU(box.Y))
	shape.SetWidth(layout.PxToEMU(box.Width)).SetHeight(layout.PxToEMU(box.Height))
	if fill, ok := layout.ParseColor(style.BackgroundColor); ok && !fill.Transparent() {
		shape.SetFill(solidFill(fill.Blend(d.bg)))
	}

	color := layout.MustParseColor(style.Color, layout.MustParseColor(d.text, layout.Color{R: 0x33, G: 0x33, B: 0x33, A: 1}))
	face := style.PrimaryFont()
	if face == "" {
		face = d.exporter.fontFace
	}
	size := layout.FontPoints(el.FontSize() * d.fit.Scale)
	alignment, aligned := horizontalAlignment(style.TextAlign)

	for i, line := range strings.Split(el.Text, "\n") {
		if i > 0 {
			shape.CreateParagraph()
		}
		if line == "" {
			line = " "
		}
		run := shape.CreateTextRun(line)
		font := run.GetFont()
		font.SetSize(size).SetBold(style.Bold()).SetColor(ppt.NewColor(color.Blend(d.bg).ARGB()))
		font.Name = face
		if el.Link != "" {
			run.SetHyperlink(ppt.NewHyperlink(el.Link))
		}
		if aligned {
			shape.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(alignment))
		}
	}
}

// horizontalAlignment maps CSS text-align; left aligned text keeps the
// writer default.
func horizontalAlignment(align string) (ppt.HorizontalAlignment, bool) {
	switch strings.ToLower(strings.TrimSpace(align)) {
	case "center":
		return ppt.HorizontalCenter, true
	case "right", "end":
		return ppt.HorizontalRight, true
	default:
		return ppt.HorizontalLeft, false
	}
}

func placeholderLabel(el model.ResolvedElement) string {
	if el.Placeholder != "" {
		return el.Placeholder
	}
	return el.Element.ImageQuery
}

func solidFill(c layout.Color) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(c.ARGB()))
}
