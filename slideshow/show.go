// Package slideshow turns a list of timed, effect-annotated images into
// a rendered video. It owns the frame-production driver: scheduling
// frames per slide phase, checking sprites out of the cache, applying
// effects, compositing each frame and handing it to the encoder.
package slideshow

import (
	"errors"
	"fmt"

	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/effects"
)

// ErrNoSlides is returned when a show is built without any slides.
var ErrNoSlides = errors.New("slideshow: no slides")

// PhaseEffect names the effect and duration of one phase of a slide.
type PhaseEffect struct {
	// Effect is the registry name, e.g. "fade" or "pan_top". Empty
	// means hold still.
	Effect string

	// DurationMs is the phase length in milliseconds.
	DurationMs int

	// Options carries the effect's optional parameters.
	Options effects.Options
}

// Transition optionally blends a slide's entrance over the previous
// slide's final frame through a growing shape mask, instead of entering
// over the background color.
type Transition struct {
	// Shape names the mask shape, e.g. "circle" or "rect".
	Shape string

	// Direction steers directional shapes.
	Direction string

	// FeatherRadius softens the mask edge, in pixels.
	FeatherRadius float32

	// FeatherCurve names the feather falloff.
	FeatherCurve string
}

// Slide is one image with its three timed phases.
type Slide struct {
	// Path is the image file path.
	Path string

	// In, Hold and Out are the slide's phases, in timeline order.
	In   PhaseEffect
	Hold PhaseEffect
	Out  PhaseEffect

	// Transition, when set, crossfades this slide's entrance from the
	// previous slide's last frame.
	Transition *Transition
}

// DurationMs returns the slide's total duration.
func (s *Slide) DurationMs() int {
	return s.In.DurationMs + s.Hold.DurationMs + s.Out.DurationMs
}

// Show is a fully validated slideshow: output video parameters plus the
// slide list and its precomputed frame schedule. Build one with
// NewShow; an invalid configuration never produces a Show.
type Show struct {
	FPS        float64
	Width      int
	Height     int
	Output     string
	Codec      string
	AudioPath  string
	Background slidefx.RGBA

	Slides []Slide

	frameList []int
}

// NewShow validates the configuration and precomputes the per-slide
// frame schedule. Every effect name, easing, shape and direction is
// resolved here so that rendering cannot hit an unknown identifier.
func NewShow(fps float64, width, height int, slides []Slide) (*Show, error) {
	if fps <= 0 {
		return nil, slidefx.ErrInvalidFPS
	}
	if width <= 0 || height <= 0 {
		return nil, slidefx.ErrInvalidDimensions
	}
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	for i := range slides {
		if err := validateSlide(&slides[i]); err != nil {
			return nil, fmt.Errorf("slideshow: slide %d (%s): %w", i, slides[i].Path, err)
		}
	}

	durations := make([]int, len(slides))
	for i := range slides {
		durations[i] = slides[i].DurationMs()
	}
	frameList, err := slidefx.DistributeFrames(fps, durations)
	if err != nil {
		return nil, err
	}

	return &Show{
		FPS:        fps,
		Width:      width,
		Height:     height,
		Background: slidefx.Black,
		Slides:     slides,
		frameList:  frameList,
	}, nil
}

func validateSlide(s *Slide) error {
	for _, p := range []struct {
		phase effects.Phase
		cfg   PhaseEffect
	}{
		{effects.PhaseIn, s.In},
		{effects.PhaseHold, s.Hold},
		{effects.PhaseOut, s.Out},
	} {
		if p.cfg.DurationMs < 0 {
			return fmt.Errorf("%w: %s phase", slidefx.ErrNegativeDuration, p.phase)
		}
		name := p.cfg.Effect
		if name == "" {
			name = "hold"
		}
		if _, err := effects.New(name, p.phase, p.cfg.DurationMs, p.cfg.Options); err != nil {
			return err
		}
	}

	if tr := s.Transition; tr != nil {
		if _, err := slidefx.ParseShape(tr.Shape); err != nil {
			return err
		}
		if tr.Direction != "" {
			if _, err := slidefx.ParseDirection(tr.Direction); err != nil {
				return err
			}
		}
		if tr.FeatherCurve != "" {
			if _, err := slidefx.ParseFeatherCurve(tr.FeatherCurve); err != nil {
				return err
			}
		}
	}
	return nil
}

// TotalFrames returns the exact number of frames the show will produce.
func (s *Show) TotalFrames() int {
	total := 0
	for _, n := range s.frameList {
		total += n
	}
	return total
}

// DurationMs returns the show's total configured duration.
func (s *Show) DurationMs() int {
	total := 0
	for i := range s.Slides {
		total += s.Slides[i].DurationMs()
	}
	return total
}

// FrameCount returns the number of frames scheduled for one slide.
func (s *Show) FrameCount(slide int) int {
	return s.frameList[slide]
}

// FrameOffset returns the index of a slide's first frame within the
// show.
func (s *Show) FrameOffset(slide int) int {
	offset := 0
	for _, n := range s.frameList[:slide] {
		offset += n
	}
	return offset
}
