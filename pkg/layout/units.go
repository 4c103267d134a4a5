package layout

import "math"

const (
	// PixelsPerInch is the CSS reference resolution.
	PixelsPerInch = 96.0
	// EMUPerInch is the OOXML English Metric Unit density.
	EMUPerInch = 914400
	// EMUPerPixel is EMUPerInch / PixelsPerInch.
	EMUPerPixel = 9525

	minFontPoints = 10
	maxFontPoints = 96
)

// PxToInch converts CSS pixels to inches.
func PxToInch(px float64) float64 {
	return px / PixelsPerInch
}

// PxToEMU converts CSS pixels to EMU, rounding to the nearest unit.
func PxToEMU(px float64) int64 {
	return int64(math.Round(px * EMUPerPixel))
}

// FontPoints converts a CSS pixel font size to points (px * 0.75), rounded and
// clamped to [10, 96].
func FontPoints(px float64) int {
	pt := int(math.Round(px * 0.75))
	if pt < minFontPoints {
		return minFontPoints
	}
	if pt > maxFontPoints {
		return maxFontPoints
	}
	return pt
}
