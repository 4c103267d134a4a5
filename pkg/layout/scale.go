package layout

import "github.com/goliatone/go-slidegen/pkg/model"

// DefaultAspect is the 16:9 height/width ratio assumed for containers that
// only specify a width.
const DefaultAspect = 0.5625

// Container is the space a rendered canvas must fit into. Zero values mean
// "unconstrained".
type Container struct {
	Width  float64
	Height float64
}

// Scale returns the uniform factor fitting canvas inside the container:
// min(cw/w, ch/h). A missing height defaults to cw*DefaultAspect and a missing
// container yields 1.
func Scale(canvas model.Size, container Container) float64 {
	if container.Width <= 0 || canvas.Width <= 0 || canvas.Height <= 0 {
		return 1
	}
	height := container.Height
	if height <= 0 {
		height = container.Width * DefaultAspect
	}
	return min(container.Width/canvas.Width, height/canvas.Height)
}

// WidthScale returns containerWidth/canvas width, the factor used by the
// static surface which preserves aspect through its wrapper instead.
func WidthScale(canvas model.Size, containerWidth float64) float64 {
	if containerWidth <= 0 || canvas.Width <= 0 {
		return 1
	}
	return containerWidth / canvas.Width
}

// Fitting places a canvas inside a target of a different size.
type Fitting struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Fit scales canvas uniformly into target and centers it, letterboxing the
// remaining axis.
func Fit(canvas, target model.Size) Fitting {
	if canvas.Width <= 0 || canvas.Height <= 0 || target.Width <= 0 || target.Height <= 0 {
		return Fitting{Scale: 1}
	}
	scale := min(target.Width/canvas.Width, target.Height/canvas.Height)
	return Fitting{
		Scale:   scale,
		OffsetX: (target.Width - canvas.Width*scale) / 2,
		OffsetY: (target.Height - canvas.Height*scale) / 2,
	}
}

// Apply maps a canvas box into target coordinates.
func (f Fitting) Apply(b Box) Box {
	out := b.Scaled(f.Scale)
	out.X += f.OffsetX
	out.Y += f.OffsetY
	return out
}
