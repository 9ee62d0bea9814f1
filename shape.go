package slidefx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Shape identifies the geometry of a mask's visible region.
type Shape uint8

const (
	// ShapeCircle is a circular reveal growing from the center.
	ShapeCircle Shape = iota

	// ShapeDiamond is a diamond (rotated square) reveal, a Manhattan
	// distance threshold.
	ShapeDiamond

	// ShapeRect is a rectangular reveal. With DirectionCenter it grows
	// from the center as a Chebyshev distance threshold; with an edge
	// or corner direction it is a linear wipe across the canvas.
	ShapeRect

	// ShapeTriangle is an equilateral triangle reveal, point up.
	ShapeTriangle

	// ShapeStar is a five-pointed star reveal.
	ShapeStar

	// ShapeHeart is a heart-shaped reveal bounded by a growing radius.
	ShapeHeart

	// ShapeCross is a plus-shaped reveal of two perpendicular bars
	// bounded by a growing radius.
	ShapeCross

	// ShapeBlinds is a venetian-blind reveal of parallel strips, each
	// strip fading in with a small progressive offset.
	ShapeBlinds

	// ShapeText reveals the silhouette of a rendered text string inside
	// a growing radial bound.
	ShapeText
)

// String returns the canonical name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeDiamond:
		return "diamond"
	case ShapeRect:
		return "rect"
	case ShapeTriangle:
		return "triangle"
	case ShapeStar:
		return "star"
	case ShapeHeart:
		return "heart"
	case ShapeCross:
		return "cross"
	case ShapeBlinds:
		return "blinds"
	case ShapeText:
		return "text"
	default:
		return "unknown"
	}
}

// ErrUnknownShape is returned by ParseShape for unrecognized shape names.
var ErrUnknownShape = errors.New("slidefx: unknown shape")

// ParseShape resolves a shape name to its Shape value. Names are
// case-insensitive and "star5" is accepted as an alias for "star".
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "circle":
		return ShapeCircle, nil
	case "diamond":
		return ShapeDiamond, nil
	case "rect", "rectangle":
		return ShapeRect, nil
	case "triangle":
		return ShapeTriangle, nil
	case "star", "star5":
		return ShapeStar, nil
	case "heart":
		return ShapeHeart, nil
	case "cross":
		return ShapeCross, nil
	case "blinds":
		return ShapeBlinds, nil
	case "text":
		return ShapeText, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

// Direction selects the growth direction for directional shapes and the
// movement direction for slide and push transitions.
type Direction uint8

const (
	// DirectionCenter grows outward from the mask center.
	DirectionCenter Direction = iota
	DirectionTop
	DirectionBottom
	DirectionLeft
	DirectionRight
	DirectionTopLeft
	DirectionTopRight
	DirectionBottomLeft
	DirectionBottomRight
)

// String returns the canonical name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionCenter:
		return "center"
	case DirectionTop:
		return "top"
	case DirectionBottom:
		return "bottom"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionTopLeft:
		return "top-left"
	case DirectionTopRight:
		return "top-right"
	case DirectionBottomLeft:
		return "bottom-left"
	case DirectionBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// ErrUnknownDirection is returned by ParseDirection for unrecognized names.
var ErrUnknownDirection = errors.New("slidefx: unknown direction")

// ParseDirection resolves a direction name to its Direction value.
// Both "top-left" and "top_left" spellings are accepted.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "center", "":
		return DirectionCenter, nil
	case "top":
		return DirectionTop, nil
	case "bottom":
		return DirectionBottom, nil
	case "left":
		return DirectionLeft, nil
	case "right":
		return DirectionRight, nil
	case "top-left":
		return DirectionTopLeft, nil
	case "top-right":
		return DirectionTopRight, nil
	case "bottom-left":
		return DirectionBottomLeft, nil
	case "bottom-right":
		return DirectionBottomRight, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, name)
	}
}

// Vector returns the unit movement vector for the direction in y-down
// canvas coordinates. DirectionCenter returns (0, 0).
func (d Direction) Vector() (float32, float32) {
	switch d {
	case DirectionTop:
		return 0, -1
	case DirectionBottom:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	case DirectionTopLeft:
		return -invSqrt2, -invSqrt2
	case DirectionTopRight:
		return invSqrt2, -invSqrt2
	case DirectionBottomLeft:
		return -invSqrt2, invSqrt2
	case DirectionBottomRight:
		return invSqrt2, invSqrt2
	default:
		return 0, 0
	}
}

const (
	sqrt2    = 1.4142135623730951
	invSqrt2 = 0.7071067811865476

	// starInnerRatio is the inner/outer radius ratio of the star, the
	// golden-ratio conjugate. The star kernel divides growth by it so
	// that the star's inner radius reaches the farthest corner at t=1.
	starInnerRatio = 0.381966
)

// Coordinates dx, dy passed to the shape kernels are offsets from the
// mask center normalized so that the farthest canvas corner lies at
// distance 1.0. Under that convention every canvas pixel satisfies
// dx²+dy² <= 1, which is what makes the coverage guarantees below hold.
//
// circleCoverage: covered iff dx²+dy² <= t². Full coverage at t=1.
func circleCoverage(dx, dy, t float32) float32 {
	if dx*dx+dy*dy <= t*t {
		return 1
	}
	return 0
}

// diamondCoverage: Manhattan distance threshold. The √2 factor makes
// t=1 cover every pixel, since |dx|+|dy| <= √2·√(dx²+dy²) <= √2.
func diamondCoverage(dx, dy, t float32) float32 {
	if math32.Abs(dx)+math32.Abs(dy) <= t*sqrt2 {
		return 1
	}
	return 0
}

// rectCenterCoverage: Chebyshev distance threshold, a square growing
// from the center. max(|dx|,|dy|) never exceeds the Euclidean distance,
// so t=1 covers every pixel.
func rectCenterCoverage(dx, dy, t float32) float32 {
	if math32.Max(math32.Abs(dx), math32.Abs(dy)) <= t {
		return 1
	}
	return 0
}

// rectDirectionalCoverage: linear wipe. u and v are the pixel's position
// as fractions of the canvas in [0,1]; the projection along the wipe
// direction is remapped to [0,1] and thresholded by t.
func rectDirectionalCoverage(u, v, t float32, dir Direction) float32 {
	var proj float32
	switch dir {
	case DirectionTop:
		proj = v
	case DirectionBottom:
		proj = 1 - v
	case DirectionLeft:
		proj = u
	case DirectionRight:
		proj = 1 - u
	case DirectionTopLeft:
		proj = (u + v) / 2
	case DirectionTopRight:
		proj = ((1 - u) + v) / 2
	case DirectionBottomLeft:
		proj = (u + (1 - v)) / 2
	case DirectionBottomRight:
		proj = ((1 - u) + (1 - v)) / 2
	default:
		proj = v
	}
	if proj <= t {
		return 1
	}
	return 0
}

// triangleCoverage: equilateral triangle, point up, centered on the
// mask center with inradius t. Its incircle is the t-circle, so t=1
// covers every pixel. Half-plane form with y-down coordinates:
// inside iff dy <= t and √3·|dx| - dy <= 2t.
func triangleCoverage(dx, dy, t float32) float32 {
	const sqrt3 = 1.7320508075688772
	if dy <= t && sqrt3*math32.Abs(dx)-dy <= 2*t {
		return 1
	}
	return 0
}

// starCoverage: five-pointed star as a polar radius threshold. The
// boundary radius interpolates between inner and outer along cos(5θ);
// growth is divided by the inner ratio so the star's concave inner
// radius equals t, giving full coverage at t=1.
func starCoverage(dx, dy, t float32) float32 {
	r := math32.Sqrt(dx*dx + dy*dy)
	if r == 0 {
		if t > 0 {
			return 1
		}
		return 0
	}
	theta := math32.Atan2(dy, dx)
	outer := t / starInnerRatio
	boundary := outer * (starInnerRatio + (1-starInnerRatio)*(math32.Cos(5*theta)*0.5+0.5))
	if r <= boundary {
		return 1
	}
	return 0
}

// heartCoverage: implicit heart curve (x²+y²-1)³ - x²y³ <= 0 in a
// rescaled frame, intersected with a radial bound r <= 1.3t. The heart
// silhouette itself does not grow; the radial bound reveals it, so this
// shape never covers the full canvas.
func heartCoverage(dx, dy, t float32) float32 {
	if dx*dx+dy*dy > 1.69*t*t {
		return 0
	}
	x := dx * 2
	y := dy*1.5 + 0.3
	a := x*x + y*y - 1
	if a*a*a-x*x*y*y*y <= 0 {
		return 1
	}
	return 0
}

// crossCoverage: union of a horizontal and a vertical bar whose width
// grows with t, bounded by a radius of 1.2t.
func crossCoverage(dx, dy, t float32) float32 {
	scaled := t * 1.2
	arm := 0.1 * scaled
	if math32.Abs(dy) > arm && math32.Abs(dx) > arm {
		return 0
	}
	if dx*dx+dy*dy <= scaled*scaled {
		return 1
	}
	return 0
}
