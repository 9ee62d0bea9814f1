package slideshow

import (
	"errors"
	"testing"

	"github.com/slidefx/slidefx"
)

func testSlides() []Slide {
	return []Slide{
		{
			Path: "a.jpg",
			In:   PhaseEffect{Effect: "fade", DurationMs: 500},
			Hold: PhaseEffect{Effect: "pan_left", DurationMs: 2000},
			Out:  PhaseEffect{Effect: "fade", DurationMs: 500},
		},
		{
			Path: "b.jpg",
			In:   PhaseEffect{Effect: "wipe_circle", DurationMs: 700},
			Hold: PhaseEffect{DurationMs: 1800},
			Out:  PhaseEffect{Effect: "zoom", DurationMs: 500},
		},
	}
}

func TestNewShow(t *testing.T) {
	show, err := NewShow(30, 1280, 720, testSlides())
	if err != nil {
		t.Fatalf("NewShow() error = %v", err)
	}
	if show.Background != slidefx.Black {
		t.Errorf("default background = %+v, want black", show.Background)
	}
	// 3000ms + 3000ms at 30fps.
	if got := show.TotalFrames(); got != 180 {
		t.Errorf("TotalFrames() = %d, want 180", got)
	}
	if got := show.DurationMs(); got != 6000 {
		t.Errorf("DurationMs() = %d, want 6000", got)
	}
	if got := show.FrameCount(0) + show.FrameCount(1); got != 180 {
		t.Errorf("sum of FrameCount = %d, want 180", got)
	}
	if got := show.FrameOffset(1); got != show.FrameCount(0) {
		t.Errorf("FrameOffset(1) = %d, want %d", got, show.FrameCount(0))
	}
}

func TestNewShow_Validation(t *testing.T) {
	slides := testSlides()

	if _, err := NewShow(0, 1280, 720, slides); !errors.Is(err, slidefx.ErrInvalidFPS) {
		t.Errorf("fps=0 error = %v, want ErrInvalidFPS", err)
	}
	if _, err := NewShow(30, 0, 720, slides); !errors.Is(err, slidefx.ErrInvalidDimensions) {
		t.Errorf("width=0 error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := NewShow(30, 1280, 720, nil); !errors.Is(err, ErrNoSlides) {
		t.Errorf("no slides error = %v, want ErrNoSlides", err)
	}
}

func TestNewShow_BadEffectFailsFast(t *testing.T) {
	slides := testSlides()
	slides[1].In.Effect = "implode"
	if _, err := NewShow(30, 1280, 720, slides); err == nil {
		t.Error("NewShow() with unknown effect succeeded, want error")
	}

	slides = testSlides()
	slides[0].In.Options.Easing = "warp"
	if _, err := NewShow(30, 1280, 720, slides); err == nil {
		t.Error("NewShow() with unknown easing succeeded, want error")
	}

	slides = testSlides()
	slides[0].Out.DurationMs = -100
	if _, err := NewShow(30, 1280, 720, slides); !errors.Is(err, slidefx.ErrNegativeDuration) {
		t.Errorf("negative duration error = %v, want ErrNegativeDuration", err)
	}
}

func TestNewShow_BadTransitionFailsFast(t *testing.T) {
	slides := testSlides()
	slides[1].Transition = &Transition{Shape: "hexagon"}
	if _, err := NewShow(30, 1280, 720, slides); !errors.Is(err, slidefx.ErrUnknownShape) {
		t.Errorf("bad shape error = %v, want ErrUnknownShape", err)
	}

	slides = testSlides()
	slides[1].Transition = &Transition{Shape: "circle", FeatherCurve: "wavy"}
	if _, err := NewShow(30, 1280, 720, slides); !errors.Is(err, slidefx.ErrUnknownCurve) {
		t.Errorf("bad curve error = %v, want ErrUnknownCurve", err)
	}
}

func TestSlide_DurationMs(t *testing.T) {
	s := Slide{
		In:   PhaseEffect{DurationMs: 300},
		Hold: PhaseEffect{DurationMs: 2000},
		Out:  PhaseEffect{DurationMs: 700},
	}
	if got := s.DurationMs(); got != 3000 {
		t.Errorf("DurationMs() = %d, want 3000", got)
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
fps = 30
width = 1920
height = 1080
output = "demo.mp4"
codec = "h264_nvenc"
background = "#202030"

[[slides]]
image = "one.jpg"

[slides.in]
effect = "fade"
duration_ms = 500
easing = "ease-out"

[slides.hold]
effect = "pan_top_left"
duration_ms = 3000
pan_intensity = 0.15

[slides.out]
effect = "wipe_star"
duration_ms = 800
feather_radius = 12
feather_curve = "smoothstep"

[[slides]]
image = "two.png"

[slides.in]
effect = "blinds"
duration_ms = 600
blinds = 8
direction = "left"

[slides.hold]
duration_ms = 2000

[slides.out]
effect = "fade"
duration_ms = 400

[slides.transition]
shape = "circle"
feather_radius = 20
`)

	show, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if show.FPS != 30 || show.Width != 1920 || show.Height != 1080 {
		t.Errorf("video params = (%v, %d, %d)", show.FPS, show.Width, show.Height)
	}
	if show.Output != "demo.mp4" {
		t.Errorf("Output = %q, want demo.mp4", show.Output)
	}
	if show.Codec != "h264_nvenc" {
		t.Errorf("Codec = %q", show.Codec)
	}
	if show.Background == slidefx.Black {
		t.Error("background not parsed from hex")
	}
	if len(show.Slides) != 2 {
		t.Fatalf("len(Slides) = %d, want 2", len(show.Slides))
	}

	s0 := show.Slides[0]
	if s0.Path != "one.jpg" {
		t.Errorf("slide 0 path = %q", s0.Path)
	}
	if s0.In.Effect != "fade" || s0.In.DurationMs != 500 || s0.In.Options.Easing != "ease-out" {
		t.Errorf("slide 0 in = %+v", s0.In)
	}
	if s0.Hold.Effect != "pan_top_left" || s0.Hold.Options.PanIntensity != 0.15 {
		t.Errorf("slide 0 hold = %+v", s0.Hold)
	}
	if s0.Out.Options.FeatherRadius != 12 || s0.Out.Options.FeatherCurve != "smoothstep" {
		t.Errorf("slide 0 out options = %+v", s0.Out.Options)
	}

	s1 := show.Slides[1]
	if s1.In.Options.BlindsCount != 8 || s1.In.Options.Direction != "left" {
		t.Errorf("slide 1 in options = %+v", s1.In.Options)
	}
	if s1.Transition == nil || s1.Transition.Shape != "circle" || s1.Transition.FeatherRadius != 20 {
		t.Errorf("slide 1 transition = %+v", s1.Transition)
	}
}

func TestParseConfig_DefaultOutput(t *testing.T) {
	data := []byte(`
fps = 24
width = 640
height = 360

[[slides]]
image = "x.jpg"

[slides.hold]
duration_ms = 1000
`)
	show, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if show.Output != "output.mp4" {
		t.Errorf("Output = %q, want output.mp4", show.Output)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := ParseConfig([]byte("fps = {")); err == nil {
		t.Error("ParseConfig() with bad TOML succeeded")
	}

	noSlides := []byte("fps = 30\nwidth = 100\nheight = 100\n")
	if _, err := ParseConfig(noSlides); !errors.Is(err, ErrNoSlides) {
		t.Errorf("no slides error = %v, want ErrNoSlides", err)
	}
}
