// Package effects is the catalog of named slide effects. Each effect
// mutates a sprite's transform fields (and sometimes its mask) as a
// function of frame progress; the compositor then renders the mutated
// sprite. Effects are resolved from their registry name once per phase,
// not per frame.
package effects

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/easing"
)

// Phase identifies which part of a slide's timeline an effect runs in.
type Phase uint8

const (
	// PhaseIn is the slide's entrance.
	PhaseIn Phase = iota

	// PhaseHold is the time the slide stays on screen.
	PhaseHold

	// PhaseOut is the slide's exit.
	PhaseOut
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIn:
		return "in"
	case PhaseHold:
		return "hold"
	case PhaseOut:
		return "out"
	default:
		return "unknown"
	}
}

// Effect mutates a sprite for one frame. Apply is called once per frame
// with monotonically increasing progress in [0, 1] before the frame is
// rendered. canvasW and canvasH are the output dimensions the sprite is
// composited into.
type Effect interface {
	Apply(sp *slidefx.Sprite, canvasW, canvasH int, progress float32) error
}

// Options carries the optional per-effect parameters from the show
// configuration. Zero values select each effect's defaults.
type Options struct {
	// Easing names the timing curve. Empty selects the phase default:
	// ease-out for entrances, ease-in for exits, linear for holds.
	Easing string

	// Direction steers slides, pushes, directional wipes and blinds.
	Direction string

	// ZoomRange overrides the start and end scale for zoom, rotate and
	// pan effects.
	ZoomRange [2]float32

	// AngleRange overrides the start and end angle in degrees for the
	// rotate effect.
	AngleRange [2]float32

	// PanIntensity is the pan distance as a fraction of the canvas
	// dimension for Ken Burns effects. Default 0.1.
	PanIntensity float32

	// Center positions a wipe mask's origin as fractions of the canvas.
	// Default (0.5, 0.5).
	Center [2]float32

	// FeatherRadius softens wipe mask edges, in pixels.
	FeatherRadius float32

	// FeatherCurve names the feather falloff. Default linear.
	FeatherCurve string

	// BlindsCount is the strip count for the blinds effect. Default 10.
	BlindsCount int

	// Text and TextSize configure the text wipe.
	Text     string
	TextSize float32
}

// Factory builds an effect instance for one phase of one slide.
type Factory func(phase Phase, durationMs int, opts Options) (Effect, error)

// ErrUnknownEffect is returned by New for unregistered effect names.
var ErrUnknownEffect = errors.New("effects: unknown effect")

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a factory under a name, replacing any previous entry.
// The built-in catalog registers itself in package init; callers can
// add custom effects before building a show.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// New builds the named effect for a phase. The name must have been
// registered; unknown names fail at configuration time.
func New(name string, phase Phase, durationMs int, opts Options) (Effect, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return f(phase, durationMs, opts)
}

// Names returns the registered effect names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// phaseEasing resolves the configured easing name, falling back to the
// phase default: entrances decelerate, exits accelerate, holds run
// linear.
func phaseEasing(phase Phase, name string) (easing.Func, error) {
	if name != "" {
		return easing.Parse(name)
	}
	switch phase {
	case PhaseIn:
		return easing.EaseOut, nil
	case PhaseOut:
		return easing.EaseIn, nil
	default:
		return easing.Linear, nil
	}
}

// phaseProgress orients eased progress for the phase: exits run their
// motion in reverse so the same effect serves both directions.
func phaseProgress(phase Phase, eased float32) float32 {
	if phase == PhaseOut {
		return 1 - eased
	}
	return eased
}

func clampProgress(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Hold keeps the sprite exactly as Reset left it. Used when a phase
// declares no motion.
func Hold(Phase, int, Options) (Effect, error) {
	return holdEffect{}, nil
}

type holdEffect struct{}

func (holdEffect) Apply(*slidefx.Sprite, int, int, float32) error { return nil }

func init() {
	Register("hold", Hold)
	Register("fade", Fade)
	Register("rotate", Rotate)
	Register("slide", Slide)
	Register("push", Push)
	Register("zoom", Zoom)
	Register("blinds", Blinds)

	Register("pan_top", panFactory(slidefx.DirectionTop))
	Register("pan_bottom", panFactory(slidefx.DirectionBottom))
	Register("pan_left", panFactory(slidefx.DirectionLeft))
	Register("pan_right", panFactory(slidefx.DirectionRight))
	Register("pan_top_left", panFactory(slidefx.DirectionTopLeft))
	Register("pan_top_right", panFactory(slidefx.DirectionTopRight))
	Register("pan_bottom_left", panFactory(slidefx.DirectionBottomLeft))
	Register("pan_bottom_right", panFactory(slidefx.DirectionBottomRight))
	Register("zoom_center", panFactory(slidefx.DirectionCenter))

	Register("wipe_circle", wipeFactory(slidefx.ShapeCircle))
	Register("wipe_diamond", wipeFactory(slidefx.ShapeDiamond))
	Register("wipe_rect", wipeFactory(slidefx.ShapeRect))
	Register("wipe_triangle", wipeFactory(slidefx.ShapeTriangle))
	Register("wipe_star", wipeFactory(slidefx.ShapeStar))
	Register("wipe_heart", wipeFactory(slidefx.ShapeHeart))
	Register("wipe_cross", wipeFactory(slidefx.ShapeCross))
	Register("wipe_text", wipeFactory(slidefx.ShapeText))
}
