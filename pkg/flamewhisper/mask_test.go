package flamewhisper

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlameScore(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    float64
		flame   bool
	}{
		{"warm bright", 255, 100, 50, 135, true},
		{"blue dominant", 30, 60, 210, 100 * 1.15 * 0.8, true},
		{"gray", 90, 90, 90, 90 * 0.8, false},
		{"dim gray", 10, 10, 10, 10 * 0.8, false},
		{"green dominant", 50, 200, 50, 100 * 0.8, false},
		{"red at threshold", 240, 0, 0, 80, false},
		{"red just above", 241, 1, 0, 80.66666666666667, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FlameScore(tt.r, tt.g, tt.b), 1e-9)
			assert.Equal(t, tt.flame, IsFlame(tt.r, tt.g, tt.b))
		})
	}
}

func TestBuildMaskUniformWarm(t *testing.T) {
	buf := uniformBuffer(100, 100, 255, 100, 50)
	res := BuildMask(buf)

	require.True(t, res.Stats.Detected)
	require.NotNil(t, res.Box)
	assert.Equal(t, 10000, res.Stats.Area)
	assert.Equal(t, BoundingBox{MinX: 0, MaxX: 99, MinY: 0, MaxY: 99}, *res.Box)
	assert.InDelta(t, 135*10000, res.Stats.TotalIntensity, 1e-6)
	assert.Equal(t, res.Stats.LeftIntensity, res.Stats.RightIntensity)
}

func TestBuildMaskNothingDetected(t *testing.T) {
	res := BuildMask(uniformBuffer(64, 48, 10, 10, 10))

	assert.False(t, res.Stats.Detected)
	assert.Nil(t, res.Box)
	assert.Equal(t, AggregateStats{}, res.Stats)
}

func TestBuildMaskBelowBestCaseThreshold(t *testing.T) {
	// Even with the blue bonus these pixels cannot exceed the threshold.
	rng := rand.New(rand.NewSource(7))
	buf := NewPixelBuffer(40, 30)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			var r, g, b int
			for {
				r, g, b = rng.Intn(256), rng.Intn(256), rng.Intn(256)
				if float64(r+g+b)/3 <= FlameThreshold/BlueBonus {
					break
				}
			}
			buf.Set(x, y, uint8(r), uint8(g), uint8(b))
		}
	}

	res := BuildMask(buf)
	assert.False(t, res.Stats.Detected)
	assert.Nil(t, res.Box)
}

func TestBuildMaskLeftQuarter(t *testing.T) {
	buf := uniformBuffer(100, 80, 5, 5, 5)
	for y := 10; y < 70; y++ {
		for x := 0; x < 25; x++ {
			buf.Set(x, y, 255, 100, 50)
		}
	}

	res := BuildMask(buf)
	require.True(t, res.Stats.Detected)
	assert.Equal(t, 25*60, res.Stats.Area)
	assert.Equal(t, BoundingBox{MinX: 0, MaxX: 24, MinY: 10, MaxY: 69}, *res.Box)
	assert.Zero(t, res.Stats.RightIntensity)
	assert.Equal(t, res.Stats.LeftIntensity, res.Stats.TotalIntensity)
}

func TestBuildMaskOddWidthSplit(t *testing.T) {
	// width 5: x < 2.5 is left, so columns 0..2 are left and 3..4 right
	buf := uniformBuffer(5, 1, 255, 100, 50)
	res := BuildMask(buf)
	assert.InDelta(t, 3*135, res.Stats.LeftIntensity, 1e-9)
	assert.InDelta(t, 2*135, res.Stats.RightIntensity, 1e-9)
}

func TestBuildMaskInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		w, h := 1+rng.Intn(64), 1+rng.Intn(64)
		buf := NewPixelBuffer(w, h)
		rng.Read(buf.Pix)

		first := BuildMask(buf)
		second := BuildMask(buf)
		assert.Equal(t, first, second, "mask must be deterministic")

		if !first.Stats.Detected {
			assert.Nil(t, first.Box)
			continue
		}
		s := first.Stats
		assert.Equal(t, s.TotalIntensity, s.LeftIntensity+s.RightIntensity)
		assert.Positive(t, s.Area)

		b := first.Box
		assert.True(t, b.MinX >= 0 && b.MinX <= b.MaxX && b.MaxX < w, "x range %v in width %d", b, w)
		assert.True(t, b.MinY >= 0 && b.MinY <= b.MaxY && b.MaxY < h, "y range %v in height %d", b, h)
	}
}
