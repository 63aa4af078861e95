package flamewhisper

// FlameScore weights pixel brightness by its color bias. Blue-dominant
// pixels get a bonus, pixels that are not red-dominant get a penalty.
func FlameScore(r, g, b uint8) float64 {
	brightness := float64(int(r)+int(g)+int(b)) / 3

	blueScore := 1.0
	if b > r && b > g {
		blueScore = BlueBonus
	}
	warmScore := WarmPenalty
	if r > b && r > g {
		warmScore = 1.0
	}
	return brightness * blueScore * warmScore
}

// IsFlame reports whether a pixel counts as part of the flame.
func IsFlame(r, g, b uint8) bool {
	return FlameScore(r, g, b) > FlameThreshold
}

// BuildMask classifies every pixel of buf and aggregates the flame pixels
// into a bounding box and left/right intensity sums.
func BuildMask(buf PixelBuffer) MaskResult {
	var stats AggregateStats
	box := BoundingBox{MinX: buf.Width, MinY: buf.Height, MaxX: -1, MaxY: -1}
	half := float64(buf.Width) / 2

	for y := 0; y < buf.Height; y++ {
		row := y * buf.Width * 4
		for x := 0; x < buf.Width; x++ {
			i := row + x*4
			score := FlameScore(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2])
			if score <= FlameThreshold {
				continue
			}

			stats.Area++
			if float64(x) < half {
				stats.LeftIntensity += score
			} else {
				stats.RightIntensity += score
			}

			if x < box.MinX {
				box.MinX = x
			}
			if x > box.MaxX {
				box.MaxX = x
			}
			if y < box.MinY {
				box.MinY = y
			}
			if y > box.MaxY {
				box.MaxY = y
			}
		}
	}

	if stats.Area == 0 {
		return MaskResult{}
	}

	stats.Detected = true
	// Derived from the halves so the two always sum exactly.
	stats.TotalIntensity = stats.LeftIntensity + stats.RightIntensity
	return MaskResult{Stats: stats, Box: &box}
}
