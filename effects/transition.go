package effects

import (
	"github.com/chewxy/math32"

	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/easing"
)

// Fade changes the sprite's opacity from 0 to 1 on entrance and back on
// exit.
func Fade(phase Phase, _ int, opts Options) (Effect, error) {
	ease, err := phaseEasing(phase, opts.Easing)
	if err != nil {
		return nil, err
	}
	return &fadeEffect{phase: phase, ease: ease}, nil
}

type fadeEffect struct {
	phase Phase
	ease  easing.Func
}

func (e *fadeEffect) Apply(sp *slidefx.Sprite, _, _ int, progress float32) error {
	sp.Opacity = phaseProgress(e.phase, e.ease(clampProgress(progress)))
	return nil
}

// Rotate spins the sprite in while scaling it up from half size. While
// the sprite is smaller than the frame its opacity tracks the scale, so
// the spin also fades.
func Rotate(phase Phase, _ int, opts Options) (Effect, error) {
	ease, err := phaseEasing(phase, opts.Easing)
	if err != nil {
		return nil, err
	}
	e := &rotateEffect{
		phase:      phase,
		ease:       ease,
		angleRange: [2]float32{0, 360},
		scaleRange: [2]float32{0.5, 1.0},
	}
	if opts.AngleRange != [2]float32{} {
		e.angleRange = opts.AngleRange
	}
	if opts.ZoomRange != [2]float32{} {
		e.scaleRange = opts.ZoomRange
	}
	return e, nil
}

type rotateEffect struct {
	phase      Phase
	ease       easing.Func
	angleRange [2]float32
	scaleRange [2]float32
}

func (e *rotateEffect) Apply(sp *slidefx.Sprite, _, _ int, progress float32) error {
	t := phaseProgress(e.phase, e.ease(clampProgress(progress)))

	degrees := e.angleRange[0] + (e.angleRange[1]-e.angleRange[0])*t
	sp.Angle = degrees * math32.Pi / 180
	sp.Scale = e.scaleRange[0] + (e.scaleRange[1]-e.scaleRange[0])*t
	if sp.Scale < 1 {
		sp.Opacity = sp.Scale
	} else {
		sp.Opacity = 1
	}
	return nil
}

// Slide moves the sprite in from one edge of the canvas, or out toward
// it on exit. Direction names the edge the sprite travels from.
func Slide(phase Phase, _ int, opts Options) (Effect, error) {
	ease, err := phaseEasing(phase, opts.Easing)
	if err != nil {
		return nil, err
	}
	dir := slidefx.DirectionLeft
	if opts.Direction != "" {
		var perr error
		dir, perr = slidefx.ParseDirection(opts.Direction)
		if perr != nil {
			return nil, perr
		}
	}
	return &slideEffect{phase: phase, ease: ease, dir: dir}, nil
}

type slideEffect struct {
	phase Phase
	ease  easing.Func
	dir   slidefx.Direction
}

func (e *slideEffect) Apply(sp *slidefx.Sprite, canvasW, canvasH int, progress float32) error {
	t := phaseProgress(e.phase, e.ease(clampProgress(progress)))
	remain := 1 - t

	cx := float32(canvasW) / 2
	cy := float32(canvasH) / 2
	switch e.dir {
	case slidefx.DirectionTop:
		sp.X, sp.Y = cx, cy-float32(canvasH)*remain
	case slidefx.DirectionBottom:
		sp.X, sp.Y = cx, cy+float32(canvasH)*remain
	case slidefx.DirectionRight:
		sp.X, sp.Y = cx+float32(canvasW)*remain, cy
	default:
		sp.X, sp.Y = cx-float32(canvasW)*remain, cy
	}
	return nil
}

// Push moves the sprite across the canvas in one direction: in from an
// edge on entrance, and out through the opposite edge on exit. Unlike
// Slide, an exiting push keeps traveling instead of backing out the way
// it came.
func Push(phase Phase, _ int, opts Options) (Effect, error) {
	ease, err := phaseEasing(phase, opts.Easing)
	if err != nil {
		return nil, err
	}
	dir := slidefx.DirectionLeft
	if opts.Direction != "" {
		var perr error
		dir, perr = slidefx.ParseDirection(opts.Direction)
		if perr != nil {
			return nil, perr
		}
	}
	return &pushEffect{phase: phase, ease: ease, dir: dir}, nil
}

type pushEffect struct {
	phase Phase
	ease  easing.Func
	dir   slidefx.Direction
}

func (e *pushEffect) Apply(sp *slidefx.Sprite, canvasW, canvasH int, progress float32) error {
	t := phaseProgress(e.phase, e.ease(clampProgress(progress)))
	remain := 1 - t

	var dx, dy float32
	switch e.dir {
	case slidefx.DirectionTop:
		dy = -float32(canvasH)
	case slidefx.DirectionBottom:
		dy = float32(canvasH)
	case slidefx.DirectionRight:
		dx = float32(canvasW)
	default:
		dx = -float32(canvasW)
	}
	if e.phase == PhaseOut {
		dx, dy = -dx, -dy
	}

	sp.X = float32(canvasW)/2 + dx*remain
	sp.Y = float32(canvasH)/2 + dy*remain
	return nil
}

// Zoom scales the sprite from half size up to full on entrance, and
// back down on exit.
func Zoom(phase Phase, _ int, opts Options) (Effect, error) {
	ease, err := phaseEasing(phase, opts.Easing)
	if err != nil {
		return nil, err
	}
	e := &zoomEffect{phase: phase, ease: ease, zoomRange: [2]float32{0.5, 1.0}}
	if opts.ZoomRange != [2]float32{} {
		e.zoomRange = opts.ZoomRange
	}
	return e, nil
}

type zoomEffect struct {
	phase     Phase
	ease      easing.Func
	zoomRange [2]float32
}

func (e *zoomEffect) Apply(sp *slidefx.Sprite, _, _ int, progress float32) error {
	t := phaseProgress(e.phase, e.ease(clampProgress(progress)))
	sp.Scale = e.zoomRange[0] + (e.zoomRange[1]-e.zoomRange[0])*t
	return nil
}

// Blinds reveals the sprite through parallel strips that open in
// sequence. Direction left or right makes the strips vertical.
func Blinds(phase Phase, _ int, opts Options) (Effect, error) {
	ease, err := phaseEasing(phase, opts.Easing)
	if err != nil {
		return nil, err
	}
	dir := slidefx.DirectionCenter
	if opts.Direction != "" {
		var perr error
		dir, perr = slidefx.ParseDirection(opts.Direction)
		if perr != nil {
			return nil, perr
		}
	}
	count := opts.BlindsCount
	if count <= 0 {
		count = 10
	}
	return &blindsEffect{phase: phase, ease: ease, dir: dir, count: count}, nil
}

type blindsEffect struct {
	phase Phase
	ease  easing.Func
	dir   slidefx.Direction
	count int

	mask *slidefx.Mask
}

func (e *blindsEffect) Apply(sp *slidefx.Sprite, _, _ int, progress float32) error {
	if e.mask == nil {
		mask, err := slidefx.NewMask(slidefx.ShapeBlinds,
			sp.Texture.Width(), sp.Texture.Height(),
			slidefx.WithCenter(0.5, 0.5),
			slidefx.WithDirection(e.dir),
			slidefx.WithBlindsCount(e.count))
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
