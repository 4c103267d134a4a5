package layout

import "github.com/goliatone/go-slidegen/pkg/model"

// Box is an absolute element rectangle in canvas pixels. AutoWidth and
// AutoHeight mark axes sized by content; the matching dimension is zero.
type Box struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	AutoWidth  bool
	AutoHeight bool
	Z          int
}

// BoxFor computes the pixel box of an element.
func BoxFor(el model.Element) Box {
	box := Box{
		X: el.Position.X,
		Y: el.Position.Y,
		Z: el.Style.Z(),
	}
	if el.Size.Width.Auto {
		box.AutoWidth = true
	} else {
		box.Width = el.Size.Width.Value
	}
	if el.Size.Height.Auto {
		box.AutoHeight = true
	} else {
		box.Height = el.Size.Height.Value
	}
	return box
}

// Scaled multiplies every coordinate by factor.
func (b Box) Scaled(factor float64) Box {
	b.X *= factor
	b.Y *= factor
	b.Width *= factor
	b.Height *= factor
	return b
}

// Clamp returns the box with auto axes replaced by the space left on the
// canvas, for targets that need a concrete size.
func (b Box) Clamp(canvas model.Size) Box {
	if b.AutoWidth || b.Width <= 0 {
		b.Width = max(canvas.Width-b.X, 0)
	}
	if b.AutoHeight || b.Height <= 0 {
		b.Height = max(canvas.Height-b.Y, 0)
	}
	return b
}

// PercentBox is a box expressed as percentages of the canvas.
type PercentBox struct {
	Left       float64
	Top        float64
	Width      float64
	Height     float64
	AutoWidth  bool
	AutoHeight bool
	Z          int
}

// Percent converts an element box into canvas-relative percentages.
func Percent(el model.Element, canvas model.Size) PercentBox {
	box := BoxFor(el)
	out := PercentBox{
		AutoWidth:  box.AutoWidth,
		AutoHeight: box.AutoHeight,
		Z:          box.Z,
	}
	if canvas.Width > 0 {
		out.Left = box.X / canvas.Width * 100
		out.Width = box.Width / canvas.Width * 100
	}
	if canvas.Height > 0 {
		out.Top = box.Y / canvas.Height * 100
		out.Height = box.Height / canvas.Height * 100
	}
	return out
}
