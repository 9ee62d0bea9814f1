package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/slidefx/slidefx"
)

func newTestSprite(t *testing.T, w, h int) *slidefx.Sprite {
	t.Helper()
	tex, err := slidefx.NewPixmap(w, h)
	if err != nil {
		t.Fatalf("NewPixmap() error = %v", err)
	}
	tex.Clear(slidefx.White)
	return slidefx.NewSprite(tex)
}

func TestNew_UnknownEffect(t *testing.T) {
	if _, err := New("teleport", PhaseIn, 1000, Options{}); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("New(teleport) error = %v, want ErrUnknownEffect", err)
	}
}

func TestNames_ContainsCatalog(t *testing.T) {
	names := Names()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{
		"hold", "fade", "rotate", "slide", "push", "zoom", "blinds",
		"pan_left", "pan_top_right", "zoom_center",
		"wipe_circle", "wipe_star", "wipe_text",
	} {
		if !seen[want] {
			t.Errorf("Names() missing %q", want)
		}
	}
}

func TestRegister_Custom(t *testing.T) {
	called := false
	Register("test_noop", func(phase Phase, durationMs int, opts Options) (Effect, error) {
		called = true
		return holdEffect{}, nil
	})
	if _, err := New("test_noop", PhaseHold, 500, Options{}); err != nil {
		t.Fatalf("New(test_noop) error = %v", err)
	}
	if !called {
		t.Error("custom factory not invoked")
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseIn.String() != "in" || PhaseHold.String() != "hold" || PhaseOut.String() != "out" {
		t.Error("Phase.String() mismatch")
	}
}

func TestHold_LeavesSpriteAlone(t *testing.T) {
	eff, err := New("hold", PhaseHold, 1000, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 20, 20)
	before := *sp
	if err := eff.Apply(sp, 100, 100, 0.5); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if *sp != before {
		t.Errorf("hold mutated the sprite: %+v -> %+v", before, *sp)
	}
}

func TestFade_Entrance(t *testing.T) {
	eff, err := New("fade", PhaseIn, 1000, Options{Easing: "linear"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 20, 20)

	if err := eff.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Opacity != 0 {
		t.Errorf("opacity at 0 = %v, want 0", sp.Opacity)
	}

	if err := eff.Apply(sp, 100, 100, 0.5); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if math.Abs(float64(sp.Opacity)-0.5) > 1e-5 {
		t.Errorf("opacity at 0.5 = %v, want 0.5", sp.Opacity)
	}

	if err := eff.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Opacity != 1 {
		t.Errorf("opacity at 1 = %v, want 1", sp.Opacity)
	}
}

func TestFade_ExitReverses(t *testing.T) {
	eff, err := New("fade", PhaseOut, 1000, Options{Easing: "linear"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 20, 20)

	if err := eff.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Opacity != 1 {
		t.Errorf("exit opacity at 0 = %v, want 1", sp.Opacity)
	}
	if err := eff.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Opacity != 0 {
		t.Errorf("exit opacity at 1 = %v, want 0", sp.Opacity)
	}
}

func TestZoom_Range(t *testing.T) {
	eff, err := New("zoom", PhaseIn, 1000, Options{Easing: "linear"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 20, 20)

	if err := eff.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Scale != 0.5 {
		t.Errorf("scale at 0 = %v, want 0.5", sp.Scale)
	}
	if err := eff.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Scale != 1 {
		t.Errorf("scale at 1 = %v, want 1", sp.Scale)
	}
}

func TestZoom_CustomRange(t *testing.T) {
	eff, err := New("zoom", PhaseIn, 1000, Options{
		Easing:    "linear",
		ZoomRange: [2]float32{1, 2},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 20, 20)
	if err := eff.Apply(sp, 100, 100, 0.5); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if math.Abs(float64(sp.Scale)-1.5) > 1e-5 {
		t.Errorf("scale at 0.5 = %v, want 1.5", sp.Scale)
	}
}

func TestSlide_EntersFromEdge(t *testing.T) {
	tests := []struct {
		dir      string
		atStartX float32
		atStartY float32
	}{
		{"top", 50, -50},
		{"bottom", 50, 150},
		{"left", -50, 50},
		{"right", 150, 50},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			eff, err := New("slide", PhaseIn, 1000, Options{
				Easing:    "linear",
				Direction: tt.dir,
			})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			sp := newTestSprite(t, 20, 20)

			if err := eff.Apply(sp, 100, 100, 0); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if sp.X != tt.atStartX || sp.Y != tt.atStartY {
				t.Errorf("start position = (%v, %v), want (%v, %v)",
					sp.X, sp.Y, tt.atStartX, tt.atStartY)
			}

			if err := eff.Apply(sp, 100, 100, 1); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if sp.X != 50 || sp.Y != 50 {
				t.Errorf("end position = (%v, %v), want centered (50, 50)", sp.X, sp.Y)
			}
		})
	}
}

func TestPush_ExitsOppositeEdge(t *testing.T) {
	eff, err := New("push", PhaseIn, 1000, Options{Easing: "linear", Direction: "left"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 20, 20)

	if err := eff.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.X != -50 || sp.Y != 50 {
		t.Errorf("in start = (%v, %v), want (-50, 50)", sp.X, sp.Y)
	}
	if err := eff.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.X != 50 || sp.Y != 50 {
		t.Errorf("in end = (%v, %v), want centered (50, 50)", sp.X, sp.Y)
	}

	out, err := New("push", PhaseOut, 1000, Options{Easing: "linear", Direction: "left"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := out.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.X != 50 || sp.Y != 50 {
		t.Errorf("out start = (%v, %v), want centered (50, 50)", sp.X, sp.Y)
	}
	if err := out.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.X != 150 || sp.Y != 50 {
		t.Errorf("out end = (%v, %v), want (150, 50) past the far edge", sp.X, sp.Y)
	}
}

func TestRotate_FullTurn(t *testing.T) {
	eff, err := New("rotate", PhaseIn, 1000, Options{Easing: "linear"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 20, 20)

	if err := eff.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Angle != 0 || sp.Scale != 0.5 {
		t.Errorf("start = (angle %v, scale %v), want (0, 0.5)", sp.Angle, sp.Scale)
	}
	if sp.Opacity != 0.5 {
		t.Errorf("opacity tracks scale: %v, want 0.5", sp.Opacity)
	}

	if err := eff.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if math.Abs(float64(sp.Angle)-2*math.Pi) > 1e-4 {
		t.Errorf("end angle = %v, want 2pi", sp.Angle)
	}
	if sp.Scale != 1 || sp.Opacity != 1 {
		t.Errorf("end = (scale %v, opacity %v), want (1, 1)", sp.Scale, sp.Opacity)
	}
}

func TestBlinds_AttachesMask(t *testing.T) {
	eff, err := New("blinds", PhaseIn, 1000, Options{Easing: "linear", BlindsCount: 5})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 40, 40)

	if err := eff.Apply(sp, 100, 100, 0.5); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Mask == nil {
		t.Fatal("blinds did not attach a mask")
	}
	if sp.Mask.Width() != 40 || sp.Mask.Height() != 40 {
		t.Errorf("mask size = %dx%d, want texture size", sp.Mask.Width(), sp.Mask.Height())
	}
	if sp.Mask.Shape() != slidefx.ShapeBlinds {
		t.Errorf("mask shape = %v, want blinds", sp.Mask.Shape())
	}
}

func TestWipe_MaskProgress(t *testing.T) {
	eff, err := New("wipe_circle", PhaseIn, 1000, Options{Easing: "linear"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 40, 40)

	if err := eff.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.Mask == nil {
		t.Fatal("wipe did not attach a mask")
	}
	if got := sp.Mask.At(20, 20); got != 0 {
		t.Errorf("mask center at progress 0 = %v, want 0", got)
	}

	if err := eff.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := sp.Mask.At(20, 20); got != 1 {
		t.Errorf("mask center at progress 1 = %v, want 1", got)
	}
	if got := sp.Mask.At(0, 0); got != 1 {
		t.Errorf("mask corner at progress 1 = %v, want 1", got)
	}
}

func TestWipe_ExitReverses(t *testing.T) {
	eff, err := New("wipe_circle", PhaseOut, 1000, Options{Easing: "linear"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 40, 40)

	if err := eff.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := sp.Mask.At(0, 0); got != 1 {
		t.Errorf("exit wipe corner at progress 0 = %v, want 1 (fully shown)", got)
	}
	if err := eff.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := sp.Mask.At(20, 20); got != 0 {
		t.Errorf("exit wipe center at progress 1 = %v, want 0 (fully hidden)", got)
	}
}

func TestPan_DriftsAndZooms(t *testing.T) {
	eff, err := New("pan_right", PhaseHold, 3000, Options{Easing: "linear"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 100, 100)

	if err := eff.Apply(sp, 100, 100, 0); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	startX, startScale := sp.X, sp.Scale

	if err := eff.Apply(sp, 100, 100, 1); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.X <= startX {
		t.Errorf("pan_right did not move right: %v -> %v", startX, sp.X)
	}
	if sp.Scale <= startScale {
		t.Errorf("pan did not zoom in: %v -> %v", startScale, sp.Scale)
	}
	if startScale < 1 {
		t.Errorf("start scale = %v, want >= 1 to avoid exposing edges", startScale)
	}
}

func TestZoomCenter_NoDrift(t *testing.T) {
	eff, err := New("zoom_center", PhaseHold, 3000, Options{Easing: "linear"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sp := newTestSprite(t, 100, 100)

	if err := eff.Apply(sp, 100, 100, 0.5); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if sp.X != 50 || sp.Y != 50 {
		t.Errorf("zoom_center moved the sprite: (%v, %v)", sp.X, sp.Y)
	}
	if sp.Scale <= 1 {
		t.Errorf("zoom_center scale = %v, want > 1", sp.Scale)
	}
}

func TestPhaseEasing_Defaults(t *testing.T) {
	in, err := phaseEasing(PhaseIn, "")
	if err != nil {
		t.Fatalf("phaseEasing(in) error = %v", err)
	}
	out, err := phaseEasing(PhaseOut, "")
	if err != nil {
		t.Fatalf("phaseEasing(out) error = %v", err)
	}
	hold, err := phaseEasing(PhaseHold, "")
	if err != nil {
		t.Fatalf("phaseEasing(hold) error = %v", err)
	}

	// Entrances decelerate, exits accelerate, holds run linear.
	if in(0.25) <= 0.25 {
		t.Errorf("in default(0.25) = %v, want > 0.25", in(0.25))
	}
	if out(0.25) >= 0.25 {
		t.Errorf("out default(0.25) = %v, want < 0.25", out(0.25))
	}
	if hold(0.25) != 0.25 {
		t.Errorf("hold default(0.25) = %v, want 0.25", hold(0.25))
	}
}

func TestNew_BadEasingFailsAtBuild(t *testing.T) {
	if _, err := New("fade", PhaseIn, 1000, Options{Easing: "warp9"}); err == nil {
		t.Error("New() with bad easing succeeded, want error")
	}
	if _, err := New("slide", PhaseIn, 1000, Options{Direction: "diagonal-ish"}); err == nil {
		t.Error("New() with bad direction succeeded, want error")
	}
}
