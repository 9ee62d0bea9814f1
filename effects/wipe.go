package effects

import (
	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/easing"
)

// wipeFactory builds the shape wipe effects: the sprite is revealed
// through a procedurally grown mask of the given shape. The mask is
// created on the first frame, once the sprite's dimensions are known,
// and regrown every frame.
func wipeFactory(shape slidefx.Shape) Factory {
	return func(phase Phase, _ int, opts Options) (Effect, error) {
		ease, err := phaseEasing(phase, opts.Easing)
		if err != nil {
			return nil, err
		}

		e := &wipeEffect{
			phase:  phase,
			ease:   ease,
			shape:  shape,
			center: [2]float32{0.5, 0.5},
		}
		if opts.Center != [2]float32{} {
			e.center = opts.Center
		}
		if opts.Direction != "" {
			e.dir, err = slidefx.ParseDirection(opts.Direction)
			if err != nil {
				return nil, err
			}
		}
		if opts.FeatherRadius > 0 {
			e.featherRadius = opts.FeatherRadius
			e.featherCurve, err = slidefx.ParseFeatherCurve(opts.FeatherCurve)
			if err != nil {
				return nil, err
			}
		}
		e.text = opts.Text
		e.textSize = opts.TextSize
		return e, nil
	}
}

type wipeEffect struct {
	phase         Phase
	ease          easing.Func
	shape         slidefx.Shape
	dir           slidefx.Direction
	center        [2]float32
	featherRadius float32
	featherCurve  slidefx.FeatherCurve
	text          string
	textSize      float32

	mask *slidefx.Mask
}

func (e *wipeEffect) Apply(sp *slidefx.Sprite, _, _ int, progress float32) error {
	if e.mask == nil {
		mask, err := slidefx.NewMask(e.shape,
			sp.Texture.Width(), sp.Texture.Height(),
			slidefx.WithCenter(e.center[0], e.center[1]),
			slidefx.WithDirection(e.dir),
			slidefx.WithFeather(e.featherRadius, e.featherCurve),
			slidefx.WithText(e.text, e.textSize))
		if err != nil {
			return err
		}
		e.mask = mask
	}

	t := phaseProgress(e.phase, e.ease(clampProgress(progress)))
	if err := e.mask.Render(t); err != nil {
		return err
	}
	sp.Mask = e.mask
	return nil
}
