package slideshow

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/effects"
)

// rootConfig is the TOML wire format of a show. It is decoded into
// plain structs first and validated into a Show second, so a config
// error is reported with its field name rather than surfacing later
// as a render failure.
type rootConfig struct {
	FPS        float64       `toml:"fps"`
	Width      int           `toml:"width"`
	Height     int           `toml:"height"`
	Output     string        `toml:"output"`
	Codec      string        `toml:"codec"`
	Audio      string        `toml:"audio"`
	Background string        `toml:"background"`
	Slides     []slideConfig `toml:"slides"`
}

type slideConfig struct {
	Image      string            `toml:"image"`
	In         phaseConfig       `toml:"in"`
	Hold       phaseConfig       `toml:"hold"`
	Out        phaseConfig       `toml:"out"`
	Transition *transitionConfig `toml:"transition"`
}

type phaseConfig struct {
	Effect     string     `toml:"effect"`
	DurationMs int        `toml:"duration_ms"`
	Easing     string     `toml:"easing"`
	Direction  string     `toml:"direction"`
	ZoomRange  []float32  `toml:"zoom_range"`
	AngleRange []float32  `toml:"angle_range"`
	Pan        float32    `toml:"pan_intensity"`
	Center     []float32  `toml:"center"`
	Feather    float32    `toml:"feather_radius"`
	Curve      string     `toml:"feather_curve"`
	Blinds     int        `toml:"blinds"`
	Text       string     `toml:"text"`
	TextSize   float32    `toml:"text_size"`
}

type transitionConfig struct {
	Shape     string  `toml:"shape"`
	Direction string  `toml:"direction"`
	Feather   float32 `toml:"feather_radius"`
	Curve     string  `toml:"feather_curve"`
}

// LoadConfig reads and validates a show configuration from a TOML file.
func LoadConfig(path string) (*Show, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path is user-provided
	if err != nil {
		return nil, fmt.Errorf("slideshow: reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig validates a show configuration from TOML bytes.
func ParseConfig(data []byte) (*Show, error) {
	var cfg rootConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("slideshow: parsing config: %w", err)
	}

	slides := make([]Slide, len(cfg.Slides))
	for i, sc := range cfg.Slides {
		if sc.Image == "" {
			return nil, fmt.Errorf("slideshow: slide %d: missing image path", i)
		}
		slides[i] = Slide{
			Path: sc.Image,
			In:   sc.In.phaseEffect(),
			Hold: sc.Hold.phaseEffect(),
			Out:  sc.Out.phaseEffect(),
		}
		if sc.Transition != nil {
			slides[i].Transition = &Transition{
				Shape:         sc.Transition.Shape,
				Direction:     sc.Transition.Direction,
				FeatherRadius: sc.Transition.Feather,
				FeatherCurve:  sc.Transition.Curve,
			}
		}
	}

	show, err := NewShow(cfg.FPS, cfg.Width, cfg.Height, slides)
	if err != nil {
		return nil, err
	}
	show.Output = cfg.Output
	if show.Output == "" {
		show.Output = "output.mp4"
	}
	show.Codec = cfg.Codec
	show.AudioPath = cfg.Audio

	if cfg.Background != "" {
		show.Background = slidefx.Hex(cfg.Background)
	}
	return show, nil
}

func (p *phaseConfig) phaseEffect() PhaseEffect {
	pe := PhaseEffect{
		Effect:     p.Effect,
		DurationMs: p.DurationMs,
		Options: effects.Options{
			Easing:        p.Easing,
			Direction:     p.Direction,
			PanIntensity:  p.Pan,
			FeatherRadius: p.Feather,
			FeatherCurve:  p.Curve,
			BlindsCount:   p.Blinds,
			Text:          p.Text,
			TextSize:      p.TextSize,
		},
	}
	if len(p.ZoomRange) == 2 {
		pe.Options.ZoomRange = [2]float32{p.ZoomRange[0], p.ZoomRange[1]}
	}
	if len(p.AngleRange) == 2 {
		pe.Options.AngleRange = [2]float32{p.AngleRange[0], p.AngleRange[1]}
	}
	if len(p.Center) == 2 {
		pe.Options.Center = [2]float32{p.Center[0], p.Center[1]}
	}
	return pe
}
