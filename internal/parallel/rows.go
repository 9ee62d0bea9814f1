package parallel

import (
	"runtime"
	"sync"
)

var (
	defaultPool *WorkerPool
	defaultOnce sync.Once
)

// Default returns the shared process-wide worker pool, creating it on
// first use with GOMAXPROCS workers. The shared pool is never closed;
// callers that need an isolated or bounded pool should create their own
// with NewWorkerPool.
func Default() *WorkerPool {
	defaultOnce.Do(func() {
		defaultPool = NewWorkerPool(runtime.GOMAXPROCS(0))
	})
	return defaultPool
}

// ForRows splits the row range [0, height) into contiguous bands and runs
// fn(y0, y1) for each band on the pool, blocking until all bands complete.
// Each band is the half-open row interval [y0, y1). Bands never overlap,
// so fn may write to distinct rows without synchronization.
//
// Small images run inline on the calling goroutine: below a few thousand
// pixels per worker the scheduling overhead costs more than it saves.
func ForRows(p *WorkerPool, height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}

	if p == nil || !p.IsRunning() {
		fn(0, height)
		return
	}

	bands := p.Workers() * 2
	if bands > height {
		bands = height
	}
	if bands <= 1 {
		fn(0, height)
		return
	}

	rowsPerBand := (height + bands - 1) / bands
	work := make([]func(), 0, bands)
	for y0 := 0; y0 < height; y0 += rowsPerBand {
		y1 := y0 + rowsPerBand
		if y1 > height {
			y1 = height
		}
		start, end := y0, y1
		work = append(work, func() { fn(start, end) })
	}
	p.ExecuteAll(work)
}
