package flamewhisper

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func testSnapshot(t *testing.T, w, h int) Snapshot {
	report := GenerateReport(10, 10, detectedMask(BoundingBox{MinX: 0, MaxX: 4, MinY: 0, MaxY: 8}, 3, 1))
	now := time.Date(2026, 10, 15, 21, 4, 5, 0, time.UTC)
	return NewSnapshot(pngDataURI(t, uniformImage(w, h, color.NRGBA{255, 120, 40, 255})), report, now)
}

func TestExportPNG(t *testing.T) {
	s := testSnapshot(t, 800, 400)

	data, err := ExportPNG(s)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, 600, b.Dx())
	assert.Greater(t, b.Dy(), 300)

	// Top-left pixel still comes from the photo
	r, g, bl, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(255), r>>8)
	assert.InDelta(t, 120, float64(g>>8), 2)
	assert.InDelta(t, 40, float64(bl>>8), 2)
}

func TestExportNarrowImageIsCentered(t *testing.T) {
	s := testSnapshot(t, 100, 50)

	img, err := RenderExport(s)
	require.NoError(t, err)
	assert.Equal(t, exportMinWidth, img.Bounds().Dx())

	// Left margin beside a narrow photo is background
	assert.Equal(t, exportBackground, img.NRGBAAt(0, 0))
	assert.Equal(t, uint8(255), img.NRGBAAt(exportMinWidth/2, 10).R)
}

func TestExportBadImage(t *testing.T) {
	_, err := ExportPNG(Snapshot{ImageSrc: "data:image/png;base64,AAAA"})
	assert.Error(t, err)
}

func TestWriteExport(t *testing.T) {
	s := testSnapshot(t, 64, 64)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteExport(s, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "brigid-snapshot-20261015-210405.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWrapText(t *testing.T) {
	face := basicfont.Face7x13
	text := "Shape: Tall and tight. The flame reaches upward in a narrow column.\n\nSupercalifragilisticexpialidocious"

	lines := WrapText(face, text, 140)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		if strings.Contains(line, " ") {
			assert.LessOrEqual(t, font.MeasureString(face, line).Ceil(), 140, line)
		}
	}
	assert.Contains(t, lines, "")
	assert.Equal(t, "Supercalifragilisticexpialidocious", lines[len(lines)-1])
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
}
