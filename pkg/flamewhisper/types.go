package flamewhisper

import (
	"fmt"
	"image"
)

// Fixed heuristic parameters.
const (
	FlameThreshold   = 80.0
	BlueBonus        = 1.15
	WarmPenalty      = 0.8
	MaxAnalysisSide  = 256
	MemoryCapacity   = 4
	balanceTolerance = 0.1
)

// PixelBuffer is a decoded image at analysis resolution: Width*Height*4
// bytes of non-premultiplied RGBA in row-major order.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed buffer.
func NewPixelBuffer(width, height int) PixelBuffer {
	return PixelBuffer{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

// Set writes one opaque pixel.
func (b PixelBuffer) Set(x, y int, r, g, bl uint8) {
	i := (y*b.Width + x) * 4
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = 255
}

// BoundingBox is the inclusive extent of flame pixels.
type BoundingBox struct {
	MinX, MaxX int
	MinY, MaxY int
}

// Rect converts the inclusive box to an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1)
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("{x=%d..%d, y=%d..%d}", b.MinX, b.MaxX, b.MinY, b.MaxY)
}

// AggregateStats summarizes the flame pixels of one image.
type AggregateStats struct {
	Detected       bool
	Area           int
	LeftIntensity  float64
	RightIntensity float64
	TotalIntensity float64
}

// MaskResult is the output of BuildMask. Box is nil when nothing was detected.
type MaskResult struct {
	Stats AggregateStats
	Box   *BoundingBox
}

// Shape describes the vertical/horizontal extent of the flame.
type Shape int

const (
	ShapeIntermediate Shape = iota
	ShapeTallTight
	ShapeShortWide
)

func (s Shape) String() string {
	switch s {
	case ShapeTallTight:
		return "tall-tight"
	case ShapeShortWide:
		return "short-wide"
	case ShapeIntermediate:
		return "intermediate"
	default:
		return "unknown"
	}
}

// Balance describes how intensity splits between the two image halves.
type Balance int

const (
	BalanceBalanced Balance = iota
	BalanceLeftHeavy
	BalanceRightHeavy
)

func (b Balance) String() string {
	switch b {
	case BalanceBalanced:
		return "balanced"
	case BalanceLeftHeavy:
		return "left-heavy"
	case BalanceRightHeavy:
		return "right-heavy"
	default:
		return "unknown"
	}
}

// Stability is a coarse judgement of how settled the flame looks.
type Stability int

const (
	StabilityStable Stability = iota
	StabilityTooTight
	StabilityTooScattered
)

func (s Stability) String() string {
	switch s {
	case StabilityStable:
		return "stable"
	case StabilityTooTight:
		return "too-tight"
	case StabilityTooScattered:
		return "too-scattered"
	default:
		return "unknown"
	}
}

// Analysis is the full result for one image.
type Analysis struct {
	Width  int
	Height int
	Mask   MaskResult
	Report Report
}
