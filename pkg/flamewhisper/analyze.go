package flamewhisper

import (
	"context"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// AnalysisSize returns the dimensions an image of w x h is scaled to before
// classification. Neither side exceeds MaxAnalysisSide and images are
// never upscaled.
func AnalysisSize(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := math.Min(math.Min(float64(MaxAnalysisSide)/float64(w), float64(MaxAnalysisSide)/float64(h)), 1)
	aw := int(math.Floor(float64(w) * scale))
	ah := int(math.Floor(float64(h) * scale))
	if aw < 1 {
		aw = 1
	}
	if ah < 1 {
		ah = 1
	}
	return aw, ah
}

// ToPixelBuffer copies img into a tightly packed RGBA buffer.
func ToPixelBuffer(img image.Image) PixelBuffer {
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*nrgba.Rect.Dx() {
		nrgba = imaging.Clone(img)
	}
	return PixelBuffer{Width: nrgba.Rect.Dx(), Height: nrgba.Rect.Dy(), Pix: nrgba.Pix}
}

// Decode turns encoded image bytes (or a data URI) into a pixel buffer at
// analysis resolution. It is the only step that may block on I/O-sized work;
// ctx is checked before and after decoding.
func Decode(ctx context.Context, src []byte) (PixelBuffer, error) {
	if err := ctx.Err(); err != nil {
		return PixelBuffer{}, err
	}

	data, err := ImageBytes(src)
	if err != nil {
		return PixelBuffer{}, err
	}
	img, _, err := DecodeImage(data)
	if err != nil {
		return PixelBuffer{}, err
	}

	if err := ctx.Err(); err != nil {
		return PixelBuffer{}, err
	}
	return ToPixelBuffer(Downscale(img)), nil
}

// Analyze runs the mask builder and report generator over a decoded buffer.
func Analyze(buf PixelBuffer) Analysis {
	mask := BuildMask(buf)
	return Analysis{
		Width:  buf.Width,
		Height: buf.Height,
		Mask:   mask,
		Report: GenerateReport(buf.Width, buf.Height, mask),
	}
}

// AnalyzeBytes decodes src and analyzes it.
func AnalyzeBytes(ctx context.Context, src []byte) (Analysis, error) {
	buf, err := Decode(ctx, src)
	if err != nil {
		return Analysis{}, err
	}
	return Analyze(buf), nil
}
