//go:build !purego && !js

package flamewhisper

import (
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// Downscale resizes img to its analysis resolution with OpenCV's bilinear
// interpolation. Images already within bounds are returned as-is.
func Downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := AnalysisSize(b.Dx(), b.Dy())
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	src, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return imaging.Resize(img, w, h, imaging.Linear)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)

	out, err := dst.ToImage()
	if err != nil {
		return imaging.Resize(img, w, h, imaging.Linear)
	}
	return out
}
