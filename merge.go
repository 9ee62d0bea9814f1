package slidefx

import (
	"github.com/slidefx/slidefx/internal/parallel"
)

const (
	// mergeHighCut and mergeLowCut bound the mask values treated as
	// fully foreground or fully background. Pixels past the cuts copy
	// directly instead of blending, which avoids accumulating float
	// error over repeated merges and enables the bounding-box skip.
	mergeHighCut = 0.999
	mergeLowCut  = 0.001
)

// MergeOption configures a MergeMasked call.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	pool *parallel.WorkerPool
}

// WithMergePool sets the worker pool used for the row-parallel blend
// pass. The caller retains ownership of the pool; without it the shared
// default pool is used.
func WithMergePool(p *parallel.WorkerPool) MergeOption {
	return func(c *mergeConfig) { c.pool = p }
}

// MergeMasked composites two whole pre-rendered frames through a mask:
// where the mask is 1 the foreground shows, where it is 0 the
// background shows, and in between the two are blended weighted by each
// image's own alpha. This is the frame-level counterpart of the sprite
// kernel, used by transitions that operate on finished frames.
//
// All four buffers must share dimensions. dst may alias bg (merge in
// place over the background) but must not alias fg. Pixels where the
// mask is outside its active bounding box copy straight from bg.
func MergeMasked(dst, fg, bg *Pixmap, mask *Mask, opts ...MergeOption) error {
	var cfg mergeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	w, h := dst.Width(), dst.Height()
	if fg.Width() != w || fg.Height() != h ||
		bg.Width() != w || bg.Height() != h ||
		mask.Width() != w || mask.Height() != h {
		return ErrDimensionMismatch
	}

	if dst != bg {
		// Background baseline first; the mask pass only touches pixels
		// inside the active region.
		copy(dst.data, bg.data)
	}

	box, ok := maskBounds(mask)
	if !ok {
		return nil
	}

	pool := cfg.pool
	if pool == nil {
		pool = parallel.Default()
	}
	rows := box.Y1 - box.Y0 + 1
	parallel.ForRows(pool, rows, func(r0, r1 int) {
		for y := box.Y0 + r0; y < box.Y0+r1; y++ {
			maskRow := mask.field[y*w:]
			for x := box.X0; x <= box.X1; x++ {
				a := maskRow[x]
				if a <= mergeLowCut {
					continue
				}
				idx := (y*w + x) * 4
				if a >= mergeHighCut {
					copy(dst.data[idx:idx+4], fg.data[idx:idx+4])
					continue
				}

				fgA := fg.data[idx+3]
				bgA := bg.data[idx+3]
				wf := a * fgA
				wb := (1 - a) * bgA
				dst.data[idx+0] = fg.data[idx+0]*wf + bg.data[idx+0]*wb
				dst.data[idx+1] = fg.data[idx+1]*wf + bg.data[idx+1]*wb
				dst.data[idx+2] = fg.data[idx+2]*wf + bg.data[idx+2]*wb
				dst.data[idx+3] = a*fgA + (1-a)*bgA
			}
		}
	})
	return nil
}

// maskBounds returns the bounding box of mask values above the low cut.
// ok is false when the mask is entirely background, in which case the
// merge is a plain background copy.
func maskBounds(m *Mask) (Rect, bool) {
	minX, minY := m.width, m.height
	maxX, maxY := -1, -1
	for y := range m.height {
		row := m.field[y*m.width : (y+1)*m.width]
		for x, v := range row {
			if v > mergeLowCut {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return Rect{}, false
	}
	return Rect{X0: minX, Y0: minY, X1: maxX, Y1: maxY}, true
}
