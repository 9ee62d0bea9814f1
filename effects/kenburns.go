package effects

import (
	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/easing"
)

// panFactory builds the Ken Burns hold effects: a slow zoom combined
// with a drift in the given direction. DirectionCenter drifts nowhere
// and is registered as zoom_center. Ken Burns runs linear by default
// so the drift speed is constant across the hold.
func panFactory(dir slidefx.Direction) Factory {
	return func(_ Phase, _ int, opts Options) (Effect, error) {
		var ease easing.Func = easing.Linear
		if opts.Easing != "" {
			var err error
			ease, err = easing.Parse(opts.Easing)
			if err != nil {
				return nil, err
			}
		}
		e := &kenburnsEffect{
			ease:      ease,
			dir:       dir,
			zoomRange: [2]float32{1.0, 1.2},
			intensity: 0.1,
		}
		if opts.ZoomRange != [2]float32{} {
			e.zoomRange = opts.ZoomRange
		}
		if opts.PanIntensity > 0 {
			e.intensity = opts.PanIntensity
		}
		if dir == slidefx.DirectionCenter {
			// Pure zoom, slightly deeper than the panning variants.
			e.zoomRange = [2]float32{1.0, 1.3}
			if opts.ZoomRange != [2]float32{} {
				e.zoomRange = opts.ZoomRange
			}
		}
		return e, nil
	}
}

type kenburnsEffect struct {
	ease      easing.Func
	dir       slidefx.Direction
	zoomRange [2]float32
	intensity float32
}

func (e *kenburnsEffect) Apply(sp *slidefx.Sprite, canvasW, canvasH int, progress float32) error {
	t := e.ease(clampProgress(progress))

	sp.Scale = e.zoomRange[0] + (e.zoomRange[1]-e.zoomRange[0])*t

	dx, dy := e.dir.Vector()
	sp.X = float32(canvasW)/2 + dx*float32(canvasW)*e.intensity*t
	sp.Y = float32(canvasH)/2 + dy*float32(canvasH)*e.intensity*t
	return nil
}
