package slideshow

import (
	"time"

	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/encode"
)

// ProgressFunc receives render progress: frames written so far, the
// total frame count, and the render speed as a multiple of realtime.
type ProgressFunc func(current, total int, speed float64)

// VideoGenerator renders a show and pipes it through the encoder.
type VideoGenerator struct {
	show *Show

	// Encode overrides the encoder options. The show's codec and audio
	// path are applied on top.
	Encode encode.Options
}

// NewVideoGenerator creates a generator for a validated show.
func NewVideoGenerator(show *Show) *VideoGenerator {
	return &VideoGenerator{show: show}
}

// Generate renders every frame of the show into the show's output file.
// progress may be nil. On any error the encoder is aborted and the
// partial output file is left behind.
func (g *VideoGenerator) Generate(progress ProgressFunc) error {
	show := g.show

	opts := g.Encode
	if show.Codec != "" {
		opts.Codec = show.Codec
	}
	if show.AudioPath != "" {
		opts.AudioPath = show.AudioPath
	}

	writer, err := encode.NewWriter(show.Output, show.Width, show.Height, show.FPS, opts)
	if err != nil {
		return err
	}

	stage, err := slidefx.NewStage(show.Width, show.Height)
	if err != nil {
		writer.Abort()
		return err
	}
	defer stage.Close()

	renderer, err := NewFrameRenderer(show, stage)
	if err != nil {
		writer.Abort()
		return err
	}

	total := show.TotalFrames()
	start := time.Now()
	report := func(current int) {
		if progress == nil {
			return
		}
		elapsed := time.Since(start).Seconds()
		speed := 0.0
		if elapsed > 0 {
			speed = float64(current) / elapsed / show.FPS
		}
		progress(current, total, speed)
	}

	report(0)
	for i := range show.Slides {
		offset := show.FrameOffset(i)
		written := 0
		err := renderer.RenderSlide(&show.Slides[i], show.FrameCount(i), func(frame *slidefx.Pixmap) error {
			if err := writer.WriteFrame(frame); err != nil {
				return err
			}
			written++
			report(offset + written)
			return nil
		})
		if err != nil {
			writer.Abort()
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	slidefx.Logger().Info("show rendered",
		"output", show.Output,
		"frames", writer.FrameCount(),
		"duration", writer.Duration(),
		"elapsed", time.Since(start))
	return nil
}
