package slidefx

import (
	"github.com/chewxy/math32"

	"github.com/slidefx/slidefx/internal/parallel"
)

const (
	// alphaEpsilon is the blend threshold: pixels whose effective alpha
	// falls below it contribute nothing visible and are skipped.
	alphaEpsilon = 1e-3

	// scaleEpsilon bounds the scale band treated as unscaled. Within it
	// nearest sampling is exact, so the compositor avoids the cost of
	// bilinear filtering.
	scaleEpsilon = 1e-3

	// minDrawScale is the smallest scale a sprite is drawn at. Below it
	// the transform is singular as far as float32 inversion goes and the
	// sprite covers less than a pixel anyway, so it contributes nothing.
	minDrawScale = 1e-5
)

// Stage is a fixed-size canvas that sprites are composited onto.
// Each Draw call transforms the sprite's texture through its inverse
// matrix and alpha-blends the covered pixels, row-parallel across a
// worker pool.
//
// Thread safety: a Stage is NOT safe for concurrent Draw calls. Render
// one frame at a time; the parallelism lives inside each draw.
type Stage struct {
	canvas  *Pixmap
	pool    *parallel.WorkerPool
	ownPool bool
	interp  InterpolationMode
	auto    bool
}

// StageOption configures a Stage during creation.
type StageOption func(*Stage)

// WithPool sets the worker pool used for row-parallel drawing. The
// caller retains ownership; Close will not shut it down.
func WithPool(p *parallel.WorkerPool) StageOption {
	return func(s *Stage) {
		s.pool = p
		s.ownPool = false
	}
}

// WithWorkers creates a dedicated pool with the given number of workers
// for this stage. The pool is owned by the stage and shut down by Close.
func WithWorkers(n int) StageOption {
	return func(s *Stage) {
		s.pool = parallel.NewWorkerPool(n)
		s.ownPool = true
	}
}

// WithInterpolation fixes the sampling mode for all draws instead of
// the default scale-dependent selection (nearest when unscaled,
// bilinear otherwise).
func WithInterpolation(mode InterpolationMode) StageOption {
	return func(s *Stage) {
		s.interp = mode
		s.auto = false
	}
}

// NewStage creates a stage with a canvas of the given size. The canvas
// starts fully transparent black.
func NewStage(width, height int, opts ...StageOption) (*Stage, error) {
	canvas, err := NewPixmap(width, height)
	if err != nil {
		return nil, err
	}

	s := &Stage{
		canvas: canvas,
		auto:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = parallel.Default()
	}

	Logger().Debug("stage created",
		"width", width,
		"height", height,
		"workers", s.pool.Workers())
	return s, nil
}

// Canvas returns the stage's backing pixmap. Mutating it directly is
// allowed between draws.
func (s *Stage) Canvas() *Pixmap { return s.canvas }

// Width returns the canvas width in pixels.
func (s *Stage) Width() int { return s.canvas.Width() }

// Height returns the canvas height in pixels.
func (s *Stage) Height() int { return s.canvas.Height() }

// Clear fills the entire canvas with the given color.
func (s *Stage) Clear(c RGBA) {
	s.canvas.Clear(c)
}

// Close releases stage resources. If the stage owns its worker pool it
// is shut down; shared pools are left running.
func (s *Stage) Close() {
	if s.ownPool && s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

// Draw composites the sprite onto the canvas. Pixels outside the
// sprite's bounding box are untouched; covered pixels are alpha-blended
// using the sprite's opacity and, if the sprite carries a mask, the
// mask's opacity at the same texture pixel. Sprites that miss the
// canvas entirely are a no-op. Returns ErrDimensionMismatch if the
// sprite's mask does not match its texture size.
func (s *Stage) Draw(sp *Sprite) error {
	mask := sp.Mask
	if mask != nil && (mask.Width() != sp.Texture.Width() || mask.Height() != sp.Texture.Height()) {
		return ErrDimensionMismatch
	}
	s.draw(sp, mask)
	return nil
}

func (s *Stage) draw(sp *Sprite, mask *Mask) {
	if sp.Scale < minDrawScale {
		return
	}

	box, ok := sp.BoundingBox(s.canvas.Width(), s.canvas.Height())
	if !ok {
		return
	}

	inv := sp.Transform().Invert()
	opacity := clamp01(sp.Opacity)
	if opacity < alphaEpsilon {
		return
	}

	mode := s.interp
	if s.auto {
		if math32.Abs(sp.Scale-1) <= scaleEpsilon {
			mode = InterpNearest
		} else {
			mode = InterpBilinear
		}
	}

	tex := sp.Texture
	tw := float32(tex.Width() - 1)
	th := float32(tex.Height() - 1)

	rows := box.Y1 - box.Y0 + 1
	parallel.ForRows(s.pool, rows, func(r0, r1 int) {
		for y := box.Y0 + r0; y < box.Y0+r1; y++ {
			for x := box.X0; x <= box.X1; x++ {
				p := inv.Apply(Pt(float32(x), float32(y)))
				if p.X < 0 || p.X > tw || p.Y < 0 || p.Y > th {
					continue
				}

				src := Sample(tex, p.X, p.Y, mode)
				ea := src.A * opacity
				if mask != nil {
					// Mask and texture share pixel alignment, so the
					// mask is read at the rounded texture coordinate.
					ea *= mask.At(int(p.X+0.5), int(p.Y+0.5))
				}
				if ea < alphaEpsilon {
					continue
				}
				if ea > 1 {
					ea = 1
				}

				idx := (y*s.canvas.Width() + x) * 4
				d := s.canvas.data
				d[idx+0] = lerp(d[idx+0], src.R, ea)
				d[idx+1] = lerp(d[idx+1], src.G, ea)
				d[idx+2] = lerp(d[idx+2], src.B, ea)
				d[idx+3] = 1
			}
		}
	})
}
