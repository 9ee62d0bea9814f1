package slidefx

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/slidefx/slidefx/internal/parallel"
)

// ErrMaskCenterUnset is returned by Mask.Render when the mask's center
// was never configured. Using a mask before setting its center is a
// contract violation, not a degenerate geometry case.
var ErrMaskCenterUnset = errors.New("slidefx: mask center not set")

// Mask is a procedurally generated per-pixel opacity field. The shape
// is fixed at construction; the growth parameter t is supplied to each
// Render call, which recomputes the whole field. Larger t reveals a
// larger region: t=0 is empty and t=1 covers every pixel for the
// radially growing shapes (circle, diamond, centered rect, triangle,
// star).
//
// The normalized coordinate grid depends only on dimensions and center,
// so it is computed once in SetCenter and cached across Render calls.
//
// Thread safety: a Mask is NOT safe for concurrent Render calls. The
// field computation inside one Render is row-parallel.
type Mask struct {
	width  int
	height int
	shape  Shape
	dir    Direction

	feather float32
	curve   FeatherCurve

	blindsCount int
	text        string
	textSize    float32

	centerSet bool
	cx, cy    float32 // center as fraction of width/height

	// Normalized offsets from center, farthest corner at distance 1.
	// dxs is indexed by column, dys by row.
	dxs []float32
	dys []float32

	field       []float32
	textStencil []float32

	pool *parallel.WorkerPool
}

// MaskOption configures a Mask during creation.
type MaskOption func(*Mask)

// WithCenter sets the mask center as a fraction of width and height.
// (0.5, 0.5) is the canvas center. Values are clamped to [0, 1].
func WithCenter(cx, cy float32) MaskOption {
	return func(m *Mask) { m.SetCenter(cx, cy) }
}

// WithDirection sets the growth direction for directional shapes
// (ShapeRect wipes, ShapeBlinds strip orientation).
func WithDirection(d Direction) MaskOption {
	return func(m *Mask) { m.dir = d }
}

// WithFeather softens the mask edge over the given radius in pixels
// using the given falloff curve. A radius of 0 leaves the hard edge.
func WithFeather(radiusPixels float32, curve FeatherCurve) MaskOption {
	return func(m *Mask) {
		m.feather = math32.Max(0, radiusPixels)
		m.curve = curve
	}
}

// WithBlindsCount sets the number of strips for ShapeBlinds.
func WithBlindsCount(n int) MaskOption {
	return func(m *Mask) {
		if n > 0 {
			m.blindsCount = n
		}
	}
}

// WithText sets the string revealed by ShapeText. size is the text
// height as a fraction of the smaller canvas dimension.
func WithText(text string, size float32) MaskOption {
	return func(m *Mask) {
		m.text = text
		if size > 0 {
			m.textSize = size
		}
	}
}

// WithMaskPool sets the worker pool used for row-parallel field
// computation. The caller retains ownership of the pool.
func WithMaskPool(p *parallel.WorkerPool) MaskOption {
	return func(m *Mask) { m.pool = p }
}

// NewMask creates a mask of the given shape and size. The center starts
// unset; call SetCenter (or pass WithCenter) before the first Render.
func NewMask(shape Shape, width, height int, opts ...MaskOption) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	m := &Mask{
		width:       width,
		height:      height,
		shape:       shape,
		blindsCount: 10,
		textSize:    0.2,
		field:       make([]float32, width*height),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.pool == nil {
		m.pool = parallel.Default()
	}
	return m, nil
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.height }

// Shape returns the mask's shape.
func (m *Mask) Shape() Shape { return m.shape }

// SetCenter positions the mask center as a fraction of width and
// height, clamped to [0, 1], and rebuilds the cached coordinate grid.
func (m *Mask) SetCenter(cx, cy float32) {
	m.cx = clamp01(cx)
	m.cy = clamp01(cy)
	m.centerSet = true

	px := m.cx * float32(m.width-1)
	py := m.cy * float32(m.height-1)

	// Farthest corner from the center defines unit distance.
	w1 := float32(m.width - 1)
	h1 := float32(m.height - 1)
	far := float32(0)
	for _, c := range [4][2]float32{{0, 0}, {w1, 0}, {0, h1}, {w1, h1}} {
		dx := c[0] - px
		dy := c[1] - py
		far = math32.Max(far, math32.Sqrt(dx*dx+dy*dy))
	}
	if far == 0 {
		far = 1
	}
	inv := 1 / far

	if m.dxs == nil {
		m.dxs = make([]float32, m.width)
		m.dys = make([]float32, m.height)
	}
	for x := range m.dxs {
		m.dxs[x] = (float32(x) - px) * inv
	}
	for y := range m.dys {
		m.dys[y] = (float32(y) - py) * inv
	}
}

// Center returns the configured center fractions and whether the center
// has been set.
func (m *Mask) Center() (cx, cy float32, ok bool) {
	return m.cx, m.cy, m.centerSet
}

// At returns the opacity at pixel (x, y) from the last Render. Pixels
// outside the mask are 0.
func (m *Mask) At(x, y int) float32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.field[y*m.width+x]
}

// Field returns the backing opacity field in row-major order. The slice
// is owned by the mask and overwritten by Render.
func (m *Mask) Field() []float32 {
	return m.field
}

// Render recomputes the full opacity field for growth parameter t.
// The previous field contents are discarded. Returns ErrMaskCenterUnset
// if the center was never configured.
func (m *Mask) Render(t float32) error {
	if !m.centerSet {
		return ErrMaskCenterUnset
	}

	if t <= 0 {
		clear(m.field)
		return nil
	}

	switch m.shape {
	case ShapeBlinds:
		m.renderBlinds(t)
	case ShapeText:
		if err := m.renderText(t); err != nil {
			return err
		}
	default:
		m.renderClosedForm(t)
	}

	if m.feather > 0 {
		applyFeather(m.field, m.width, m.height, m.feather, m.curve, m.pool)
	}
	return nil
}

func (m *Mask) renderClosedForm(t float32) {
	invW := float32(0)
	invH := float32(0)
	if m.width > 1 {
		invW = 1 / float32(m.width-1)
	}
	if m.height > 1 {
		invH = 1 / float32(m.height-1)
	}
	directionalRect := m.shape == ShapeRect && m.dir != DirectionCenter

	parallel.ForRows(m.pool, m.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dy := m.dys[y]
			v := float32(y) * invH
			row := m.field[y*m.width : (y+1)*m.width]
			for x := range row {
				dx := m.dxs[x]
				switch {
				case directionalRect:
					row[x] = rectDirectionalCoverage(float32(x)*invW, v, t, m.dir)
				case m.shape == ShapeCircle:
					row[x] = circleCoverage(dx, dy, t)
				case m.shape == ShapeDiamond:
					row[x] = diamondCoverage(dx, dy, t)
				case m.shape == ShapeRect:
					row[x] = rectCenterCoverage(dx, dy, t)
				case m.shape == ShapeTriangle:
					row[x] = triangleCoverage(dx, dy, t)
				case m.shape == ShapeStar:
					row[x] = starCoverage(dx, dy, t)
				case m.shape == ShapeHeart:
					row[x] = heartCoverage(dx, dy, t)
				case m.shape == ShapeCross:
					row[x] = crossCoverage(dx, dy, t)
				default:
					row[x] = circleCoverage(dx, dy, t)
				}
			}
		}
	})
}

// renderBlinds fills each strip with a constant alpha. Strip i leads the
// base growth by (i/count)*0.2, so strips open in sequence rather than
// all at once. Left/right directions produce vertical strips, everything
// else horizontal.
func (m *Mask) renderBlinds(t float32) {
	n := m.blindsCount
	vertical := m.dir == DirectionLeft || m.dir == DirectionRight

	if vertical {
		stripW := m.width / n
		if stripW < 1 {
			stripW = 1
		}
		alphas := make([]float32, m.width)
		for x := range alphas {
			i := x / stripW
			if i >= n {
				i = n - 1
			}
			alphas[x] = clamp01(t + float32(i)/float32(n)*0.2)
		}
		parallel.ForRows(m.pool, m.height, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				copy(m.field[y*m.width:(y+1)*m.width], alphas)
			}
		})
		return
	}

	stripH := m.height / n
	if stripH < 1 {
		stripH = 1
	}
	parallel.ForRows(m.pool, m.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			i := y / stripH
			if i >= n {
				i = n - 1
			}
			alpha := clamp01(t + float32(i)/float32(n)*0.2)
			row := m.field[y*m.width : (y+1)*m.width]
			for x := range row {
				row[x] = alpha
			}
		}
	})
}

// renderText multiplies a rasterized text stencil by a radial bound
// growing at 1.5t, so the text emerges from the center outward. The
// stencil is rasterized once and cached.
func (m *Mask) renderText(t float32) error {
	if m.textStencil == nil {
		stencil, err := rasterTextStencil(m.text, m.textSize, m.width, m.height)
		if err != nil {
			return err
		}
		m.textStencil = stencil
	}

	bound := t * 1.5
	boundSq := bound * bound
	parallel.ForRows(m.pool, m.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dy := m.dys[y]
			row := m.field[y*m.width : (y+1)*m.width]
			stencilRow := m.textStencil[y*m.width : (y+1)*m.width]
			for x := range row {
				dx := m.dxs[x]
				if dx*dx+dy*dy <= boundSq {
					row[x] = stencilRow[x]
				} else {
					row[x] = 0
				}
			}
		}
	})
	return nil
}
