package flamewhisper

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Watermark is stamped in the corner of every exported image.
const Watermark = "Brigid - Flame Whisperer"

const (
	exportMaxWidth = 600
	exportMinWidth = 320
	exportPadding  = 16
	exportLineH    = 18
)

var (
	exportBackground = color.NRGBA{24, 18, 14, 255}
	exportTextColor  = color.NRGBA{240, 226, 210, 255}
	watermarkColor   = color.NRGBA{255, 150, 60, 255}
)

// RenderExport composites the snapshot image above its word-wrapped report
// and the watermark.
func RenderExport(s Snapshot) (*image.NRGBA, error) {
	data, err := ImageBytes([]byte(s.ImageSrc))
	if err != nil {
		return nil, err
	}
	src, _, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	// Scale to fit, never up
	b := src.Bounds()
	imgW, imgH := b.Dx(), b.Dy()
	if imgW > exportMaxWidth {
		imgH = imgH * exportMaxWidth / imgW
		if imgH < 1 {
			imgH = 1
		}
		imgW = exportMaxWidth
		src = imaging.Resize(src, imgW, imgH, imaging.Lanczos)
	}

	canvasW := imgW
	if canvasW < exportMinWidth {
		canvasW = exportMinWidth
	}

	face := basicfont.Face7x13
	lines := WrapText(face, s.ReportText, canvasW-2*exportPadding)
	textH := exportPadding*2 + len(lines)*exportLineH + exportLineH
	totalH := imgH + textH

	canvas := imaging.New(canvasW, totalH, exportBackground)
	canvas = imaging.Paste(canvas, src, image.Pt((canvasW-imgW)/2, 0))

	y := imgH + exportPadding + face.Metrics().Ascent.Ceil()
	for _, line := range lines {
		drawText(canvas, face, line, exportPadding, y, exportTextColor)
		y += exportLineH
	}

	// Watermark, bottom right, on its own layer
	layer := imaging.New(canvasW, totalH, color.Transparent)
	markW := font.MeasureString(face, Watermark).Ceil()
	drawText(layer, face, Watermark, canvasW-markW-exportPadding/2, totalH-exportPadding/2, watermarkColor)
	return imaging.Overlay(canvas, layer, image.Pt(0, 0), 0.8), nil
}

// ExportPNG renders s and encodes it as PNG.
func ExportPNG(s Snapshot) ([]byte, error) {
	img, err := RenderExport(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteExport writes the PNG export of s into dir and returns its path.
func WriteExport(s Snapshot, dir string) (string, error) {
	data, err := ExportPNG(s)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ExportFilename(s.Time))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// WrapText breaks text into lines no wider than maxWidth pixels. Existing
// newlines are kept; a single word wider than maxWidth gets its own line.
func WrapText(face font.Face, text string, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(face, candidate).Ceil() > maxWidth {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// drawText draws a string with its baseline at (x, y).
func drawText(img *image.NRGBA, face font.Face, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
