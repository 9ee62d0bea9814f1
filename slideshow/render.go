package slideshow

import (
	"fmt"

	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/easing"
	"github.com/slidefx/slidefx/effects"
	"github.com/slidefx/slidefx/imageio"
)

// FrameRenderer produces the frames of a show one slide at a time.
// Sprites are cached by image path so a slide that reappears does not
// reload and resize its image; cached sprites are reset to identity on
// checkout since effects mutate them freely.
//
// A renderer drives one Stage and must be used from a single goroutine.
type FrameRenderer struct {
	show  *Show
	stage *slidefx.Stage

	sprites map[string]*slidefx.Sprite

	// prevFrame is the previous slide's final frame, kept for entrance
	// transitions. scratch receives the merged result.
	prevFrame *slidefx.Pixmap
	scratch   *slidefx.Pixmap
}

// NewFrameRenderer creates a renderer drawing on the given stage. The
// stage canvas must match the show's output dimensions.
func NewFrameRenderer(show *Show, stage *slidefx.Stage) (*FrameRenderer, error) {
	if stage.Width() != show.Width || stage.Height() != show.Height {
		return nil, slidefx.ErrDimensionMismatch
	}
	scratch, err := slidefx.NewPixmap(show.Width, show.Height)
	if err != nil {
		return nil, err
	}
	return &FrameRenderer{
		show:    show,
		stage:   stage,
		sprites: make(map[string]*slidefx.Sprite),
		scratch: scratch,
	}, nil
}

// checkoutSprite returns the cached sprite for an image path, loading
// and cover-resizing the image on first use. The sprite comes back
// reset to identity transform.
func (r *FrameRenderer) checkoutSprite(path string) (*slidefx.Sprite, error) {
	if sp, ok := r.sprites[path]; ok {
		sp.Reset()
		return sp, nil
	}

	tex, err := imageio.LoadSized(path, r.show.Width, r.show.Height, imageio.ResizeCover)
	if err != nil {
		return nil, err
	}
	sp := slidefx.NewSprite(tex)
	r.sprites[path] = sp
	return sp, nil
}

// RenderSlide renders all frames of one slide in order, calling emit
// for each. The emitted pixmap is reused between frames; emit must
// consume it before returning. frameCount is the slide's scheduled
// share of the show's frames.
func (r *FrameRenderer) RenderSlide(slide *Slide, frameCount int, emit func(*slidefx.Pixmap) error) error {
	sp, err := r.checkoutSprite(slide.Path)
	if err != nil {
		return err
	}

	durations := []int{slide.In.DurationMs, slide.Hold.DurationMs, slide.Out.DurationMs}
	frameList, err := slidefx.DistributeFramesTo(r.show.FPS, durations, frameCount)
	if err != nil {
		return err
	}

	phases := []struct {
		phase effects.Phase
		cfg   PhaseEffect
	}{
		{effects.PhaseIn, slide.In},
		{effects.PhaseHold, slide.Hold},
		{effects.PhaseOut, slide.Out},
	}

	var transitionMask *slidefx.Mask
	var transitionEase easing.Func
	if slide.Transition != nil && r.prevFrame != nil {
		transitionMask, err = r.buildTransitionMask(slide.Transition)
		if err != nil {
			return err
		}
		transitionEase = easing.EaseInOut
	}

	for phaseIdx, p := range phases {
		name := p.cfg.Effect
		if name == "" {
			name = "hold"
		}
		effect, err := effects.New(name, p.phase, p.cfg.DurationMs, p.cfg.Options)
		if err != nil {
			return err
		}

		// Each phase starts from a neutral sprite; effects own all
		// transform state within their phase.
		sp.Reset()

		n := frameList[phaseIdx]
		for i := range n {
			progress := float32(i) / float32(max(n-1, 1))

			if err := effect.Apply(sp, r.show.Width, r.show.Height, progress); err != nil {
				return err
			}

			r.stage.Clear(r.show.Background)
			if err := r.stage.Draw(sp); err != nil {
				return err
			}

			frame := r.stage.Canvas()
			if p.phase == effects.PhaseIn && transitionMask != nil {
				if err := transitionMask.Render(transitionEase(progress)); err != nil {
					return err
				}
				if err := slidefx.MergeMasked(r.scratch, frame, r.prevFrame, transitionMask); err != nil {
					return err
				}
				frame = r.scratch
			}

			if err := emit(frame); err != nil {
				return fmt.Errorf("slideshow: emitting frame: %w", err)
			}

			if phaseIdx == len(phases)-1 && i == n-1 {
				r.rememberFrame(frame)
			}
		}
	}
	return nil
}

// rememberFrame keeps a copy of the slide's final frame for the next
// slide's entrance transition.
func (r *FrameRenderer) rememberFrame(frame *slidefx.Pixmap) {
	if r.prevFrame == nil {
		r.prevFrame = frame.Clone()
		return
	}
	_ = r.prevFrame.CopyFrom(frame)
}

func (r *FrameRenderer) buildTransitionMask(tr *Transition) (*slidefx.Mask, error) {
	shape, err := slidefx.ParseShape(tr.Shape)
	if err != nil {
		return nil, err
	}

	opts := []slidefx.MaskOption{slidefx.WithCenter(0.5, 0.5)}
	if tr.Direction != "" {
		dir, err := slidefx.ParseDirection(tr.Direction)
		if err != nil {
			return nil, err
		}
		opts = append(opts, slidefx.WithDirection(dir))
	}
	if tr.FeatherRadius > 0 {
		curve := slidefx.FeatherLinear
		if tr.FeatherCurve != "" {
			curve, err = slidefx.ParseFeatherCurve(tr.FeatherCurve)
			if err != nil {
				return nil, err
			}
		}
		opts = append(opts, slidefx.WithFeather(tr.FeatherRadius, curve))
	}
	return slidefx.NewMask(shape, r.show.Width, r.show.Height, opts...)
}
