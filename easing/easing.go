// Package easing provides CSS-compatible easing curves for effect
// timing. The five standard CSS names are implemented as cubic Bézier
// curves solved the way browsers solve them, so an animation timed here
// matches the same transition declared in a stylesheet. Additional
// Penner-style curves (quad, sine, bounce and friends) are available
// under their conventional names.
package easing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Func maps raw progress t in [0, 1] to eased progress. Outputs may
// leave [0, 1] for overshooting curves such as back and elastic.
type Func func(t float32) float32

// ErrUnknownEasing is returned by Parse for unrecognized curve names.
var ErrUnknownEasing = errors.New("easing: unknown easing function")

// Linear applies no easing.
func Linear(t float32) float32 { return t }

// The CSS keyword curves, each a fixed cubic Bézier.
var (
	// Ease is the CSS default, cubic-bezier(0.25, 0.1, 0.25, 1).
	Ease = CubicBezier(0.25, 0.1, 0.25, 1)

	// EaseIn starts slow and accelerates, cubic-bezier(0.42, 0, 1, 1).
	EaseIn = CubicBezier(0.42, 0, 1, 1)

	// EaseOut starts fast and decelerates, cubic-bezier(0, 0, 0.58, 1).
	EaseOut = CubicBezier(0, 0, 0.58, 1)

	// EaseInOut is slow at both ends, cubic-bezier(0.42, 0, 0.58, 1).
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)

// CubicBezier builds an easing function from a cubic Bézier curve with
// endpoints (0,0) and (1,1) and the given control points. p1y and p2y
// may leave [0, 1] to produce overshoot. The curve is evaluated by
// solving x(t)=x with bisection, matching browser behavior.
func CubicBezier(p1x, p1y, p2x, p2y float32) Func {
	bezier := func(t, p1, p2 float32) float32 {
		mt := 1 - t
		return 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t
	}

	solveT := func(x float32) float32 {
		t0, t1 := float32(0), float32(1)
		const epsilon = 1e-6
		for range 20 {
			tMid := (t0 + t1) / 2
			xMid := bezier(tMid, p1x, p2x)
			if abs(xMid-x) < epsilon {
				return tMid
			}
			if xMid < x {
				t0 = tMid
			} else {
				t1 = tMid
			}
		}
		return (t0 + t1) / 2
	}

	return func(x float32) float32 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return bezier(solveT(x), p1y, p2y)
	}
}

// FromTween adapts a gween tween curve into a normalized easing
// function by evaluating it over the unit interval.
func FromTween(fn ease.TweenFunc) Func {
	return func(t float32) float32 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return fn(t, 0, 1, 1)
	}
}

var named = map[string]Func{
	"linear":      Linear,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,

	"in-quad":        FromTween(ease.InQuad),
	"out-quad":       FromTween(ease.OutQuad),
	"in-out-quad":    FromTween(ease.InOutQuad),
	"in-cubic":       FromTween(ease.InCubic),
	"out-cubic":      FromTween(ease.OutCubic),
	"in-out-cubic":   FromTween(ease.InOutCubic),
	"in-sine":        FromTween(ease.InSine),
	"out-sine":       FromTween(ease.OutSine),
	"in-out-sine":    FromTween(ease.InOutSine),
	"in-expo":        FromTween(ease.InExpo),
	"out-expo":       FromTween(ease.OutExpo),
	"in-out-expo":    FromTween(ease.InOutExpo),
	"in-back":        FromTween(ease.InBack),
	"out-back":       FromTween(ease.OutBack),
	"in-out-back":    FromTween(ease.InOutBack),
	"in-bounce":      FromTween(ease.InBounce),
	"out-bounce":     FromTween(ease.OutBounce),
	"in-out-bounce":  FromTween(ease.InOutBounce),
	"in-elastic":     FromTween(ease.InElastic),
	"out-elastic":    FromTween(ease.OutElastic),
	"in-out-elastic": FromTween(ease.InOutElastic),
}

// Names returns the recognized easing names, excluding the
// cubic-bezier(...) form.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	return names
}

// Parse resolves an easing name to its function. Recognized forms are
// the names returned by Names and "cubic-bezier(x1, y1, x2, y2)".
func Parse(name string) (Func, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if fn, ok := named[name]; ok {
		return fn, nil
	}

	if params, ok := strings.CutPrefix(name, "cubic-bezier("); ok {
		params, ok = strings.CutSuffix(params, ")")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
		}
		parts := strings.Split(params, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("%w: cubic-bezier wants 4 parameters, got %d", ErrUnknownEasing, len(parts))
		}
		var vals [4]float32
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
			if err != nil {
				return nil, fmt.Errorf("%w: bad cubic-bezier parameter %q", ErrUnknownEasing, p)
			}
			vals[i] = float32(v)
		}
		return CubicBezier(vals[0], vals[1], vals[2], vals[3]), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
