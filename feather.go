package slidefx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/slidefx/slidefx/internal/parallel"
)

// FeatherCurve selects the falloff applied to the normalized edge
// distance when softening a mask edge.
type FeatherCurve uint8

const (
	// FeatherLinear ramps alpha linearly with distance.
	FeatherLinear FeatherCurve = iota

	// FeatherConic ramps as x^1.6, slower near the edge.
	FeatherConic

	// FeatherSmoothstep ramps as 3x²-2x³ with zero slope at both ends.
	FeatherSmoothstep

	// FeatherSigmoid ramps as 1/(1+e^(-6(x-0.5))), an s-curve that never
	// quite reaches 0 or 1.
	FeatherSigmoid
)

// String returns the canonical name of the curve.
func (c FeatherCurve) String() string {
	switch c {
	case FeatherLinear:
		return "linear"
	case FeatherConic:
		return "conic"
	case FeatherSmoothstep:
		return "smoothstep"
	case FeatherSigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// ErrUnknownCurve is returned by ParseFeatherCurve for unrecognized names.
var ErrUnknownCurve = errors.New("slidefx: unknown feather curve")

// ParseFeatherCurve resolves a curve name to its FeatherCurve value.
func ParseFeatherCurve(name string) (FeatherCurve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "":
		return FeatherLinear, nil
	case "conic":
		return FeatherConic, nil
	case "smoothstep":
		return FeatherSmoothstep, nil
	case "sigmoid":
		return FeatherSigmoid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
}

// Apply evaluates the curve at x. x is expected in [0, 1].
func (c FeatherCurve) Apply(x float32) float32 {
	switch c {
	case FeatherConic:
		return math32.Pow(x, 1.6)
	case FeatherSmoothstep:
		return x * x * (3 - 2*x)
	case FeatherSigmoid:
		return 1 / (1 + math32.Exp(-6*(x-0.5)))
	default:
		return x
	}
}

// dtInf marks pixels with no background anywhere in their row/column
// during the distance transform.
const dtInf = float32(1e20)

// applyFeather softens the field's edge in place: each covered pixel's
// alpha is scaled by the curve evaluated at its distance to the nearest
// uncovered pixel, normalized by the radius and clamped to [0, 1].
// Coverage is measured inward, so the gradient eats into the shape
// rather than growing past it. Uncovered pixels stay 0.
//
// The distance field is the exact Euclidean transform computed with the
// two-pass squared-distance algorithm of Felzenszwalb and Huttenlocher,
// one pass over columns and one over rows.
func applyFeather(field []float32, w, h int, radius float32, curve FeatherCurve, pool *parallel.WorkerPool) {
	if radius <= 0 {
		return
	}

	// Squared distance to the nearest pixel with coverage < 0.5.
	dist := make([]float32, len(field))
	for i, v := range field {
		if v < 0.5 {
			dist[i] = 0
		} else {
			dist[i] = dtInf
		}
	}

	// Pass 1: columns.
	parallel.ForRows(pool, w, func(x0, x1 int) {
		f := make([]float32, h)
		d := make([]float32, h)
		vBuf := make([]int, h)
		zBuf := make([]float32, h+1)
		for x := x0; x < x1; x++ {
			for y := range h {
				f[y] = dist[y*w+x]
			}
			dtOneDim(f, d, vBuf, zBuf)
			for y := range h {
				dist[y*w+x] = d[y]
			}
		}
	})

	// Pass 2: rows, then map distance to alpha.
	invRadius := 1 / radius
	parallel.ForRows(pool, h, func(y0, y1 int) {
		d := make([]float32, w)
		vBuf := make([]int, w)
		zBuf := make([]float32, w+1)
		for y := y0; y < y1; y++ {
			row := dist[y*w : (y+1)*w]
			dtOneDim(row, d, vBuf, zBuf)

			out := field[y*w : (y+1)*w]
			for x := range out {
				if out[x] <= 0 {
					continue
				}
				edge := math32.Sqrt(d[x]) * invRadius
				if edge > 1 {
					edge = 1
				}
				out[x] *= curve.Apply(edge)
			}
		}
	})
}

// dtOneDim computes the 1-D squared distance transform of f into d by
// lower-envelope of parabolas. v and z are caller-provided scratch of
// length len(f) and len(f)+1.
func dtOneDim(f, d []float32, v []int, z []float32) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = -dtInf
	z[1] = dtInf

	for q := 1; q < n; q++ {
		var s float32
		for {
			p := v[k]
			s = (f[q] + float32(q*q) - f[p] - float32(p*p)) / float32(2*(q-p))
			if s > z[k] {
				break
			}
			k--
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = dtInf
	}

	k = 0
	for q := range n {
		for z[k+1] < float32(q) {
			k++
		}
		p := v[k]
		dq := float32(q - p)
		d[q] = dq*dq + f[p]
	}
}
