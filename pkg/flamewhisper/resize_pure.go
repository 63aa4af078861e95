//go:build purego || js

package flamewhisper

import (
	"image"

	"github.com/disintegration/imaging"
)

// Downscale resizes img to its analysis resolution with a bilinear filter.
// Images already within bounds are returned as-is.
func Downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := AnalysisSize(b.Dx(), b.Dy())
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Linear)
}
