package slidefx

import "github.com/chewxy/math32"

// InterpolationMode defines how texture sampling is performed.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest pixel (no interpolation).
	// Fast but produces blocky results when scaling.
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring pixels.
	// Good balance between quality and performance. This is the compositor's
	// baseline for scaled sprites.
	InterpBilinear

	// InterpBicubic performs cubic interpolation using a 4x4 pixel neighborhood.
	// Highest quality but slower than bilinear.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// Sample samples the pixmap at fractional pixel coordinates (x, y) using
// the specified interpolation mode. Coordinates outside the pixmap are
// clamped to the edge; the compositor rejects out-of-bounds texture
// coordinates before sampling, so clamping only affects the border.
func Sample(p *Pixmap, x, y float32, mode InterpolationMode) RGBA {
	switch mode {
	case InterpNearest:
		return SampleNearest(p, x, y)
	case InterpBilinear:
		return SampleBilinear(p, x, y)
	case InterpBicubic:
		return SampleBicubic(p, x, y)
	default:
		return Transparent
	}
}

// SampleNearest performs nearest-neighbor sampling at fractional pixel
// coordinates (x, y).
func SampleNearest(p *Pixmap, x, y float32) RGBA {
	xi := clampInt(int(math32.Floor(x)), 0, p.width-1)
	yi := clampInt(int(math32.Floor(y)), 0, p.height-1)
	return p.GetPixel(xi, yi)
}

// SampleBilinear performs bilinear interpolation at fractional pixel
// coordinates (x, y). Interpolates between 4 neighboring pixels using
// linear weights.
func SampleBilinear(p *Pixmap, x, y float32) RGBA {
	x0 := int(math32.Floor(x))
	y0 := int(math32.Floor(y))
	tx := x - float32(x0)
	ty := y - float32(y0)

	x1 := x0 + 1
	y1 := y0 + 1

	x0 = clampInt(x0, 0, p.width-1)
	y0 = clampInt(y0, 0, p.height-1)
	x1 = clampInt(x1, 0, p.width-1)
	y1 = clampInt(y1, 0, p.height-1)

	c00 := p.GetPixel(x0, y0)
	c10 := p.GetPixel(x1, y0)
	c01 := p.GetPixel(x0, y1)
	c11 := p.GetPixel(x1, y1)

	return RGBA{
		R: lerp2D(c00.R, c10.R, c01.R, c11.R, tx, ty),
		G: lerp2D(c00.G, c10.G, c01.G, c11.G, tx, ty),
		B: lerp2D(c00.B, c10.B, c01.B, c11.B, tx, ty),
		A: lerp2D(c00.A, c10.A, c01.A, c11.A, tx, ty),
	}
}

// SampleBicubic performs bicubic interpolation at fractional pixel
// coordinates (x, y). Uses Catmull-Rom splines with a 4x4 pixel
// neighborhood for smooth results.
func SampleBicubic(p *Pixmap, x, y float32) RGBA {
	xi := int(math32.Floor(x))
	yi := int(math32.Floor(y))
	tx := x - float32(xi)
	ty := y - float32(yi)

	var rVals, gVals, bVals, aVals [4][4]float32

	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			px := clampInt(xi+dx, 0, p.width-1)
			py := clampInt(yi+dy, 0, p.height-1)

			c := p.GetPixel(px, py)
			rVals[dy+1][dx+1] = c.R
			gVals[dy+1][dx+1] = c.G
			bVals[dy+1][dx+1] = c.B
			aVals[dy+1][dx+1] = c.A
		}
	}

	return RGBA{
		R: clamp01(bicubicInterp(rVals, tx, ty)),
		G: clamp01(bicubicInterp(gVals, tx, ty)),
		B: clamp01(bicubicInterp(bVals, tx, ty)),
		A: clamp01(bicubicInterp(aVals, tx, ty)),
	}
}

// clampInt clamps an integer value to [minVal, maxVal].
func clampInt(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float32) float32 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float32) float32 {
	// Catmull-Rom spline (Mitchell-Netravali with B=0, C=0.5):
	// |t| < 1: (1.5|t|³ - 2.5|t|² + 1)
	// 1 ≤ |t| < 2: (-0.5|t|³ + 2.5|t|² - 4|t| + 2)
	// |t| ≥ 2: 0
	absT := math32.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

// bicubicInterp performs bicubic interpolation on a 4x4 grid using
// Catmull-Rom weights.
func bicubicInterp(vals [4][4]float32, tx, ty float32) float32 {
	wx := [4]float32{
		cubicWeight(tx + 1),
		cubicWeight(tx),
		cubicWeight(tx - 1),
		cubicWeight(tx - 2),
	}
	wy := [4]float32{
		cubicWeight(ty + 1),
		cubicWeight(ty),
		cubicWeight(ty - 1),
		cubicWeight(ty - 2),
	}

	var result float32
	for i := range 4 {
		for j := range 4 {
			result += vals[i][j] * wx[j] * wy[i]
		}
	}
	return result
}
