// Package parallel runs per-frame pixel work across a small pool of
// goroutines. The compositor splits each draw into row bands and hands
// them to a WorkerPool through ForRows; everything here exists to make
// that barrier cheap to hit once per sprite per frame.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool executes batches of work functions across a fixed set of
// goroutines. Each worker owns a queue and steals from its siblings when
// idle, which keeps bands of uneven cost (a band full of skipped pixels
// next to a band of blended ones) from serializing the frame.
//
// A WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers, or
// GOMAXPROCS when n is zero or negative. Workers begin waiting for work
// immediately.
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: n,
		queues:  make([]chan func(), n),
		done:    make(chan struct{}),
	}

	// A few buffered slots per queue lets ExecuteAll enqueue a full set
	// of bands without blocking on a slow worker.
	size := n * 4
	if size < 8 {
		size = 8
	}
	for i := range n {
		p.queues[i] = make(chan func(), size)
	}

	p.running.Store(true)
	p.wg.Add(n)
	for i := range n {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	own := p.queues[id]
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			if job != nil {
				job()
			}
		default:
			if job := p.steal(id); job != nil {
				job()
				continue
			}
			// Nothing to steal either; block until work or shutdown.
			select {
			case <-p.done:
				p.drain(own)
				return
			case job := <-own:
				if job != nil {
					job()
				}
			}
		}
	}
}

// drain runs whatever is still queued so a Close never drops submitted
// work.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}

// steal takes one queued job from another worker, or returns nil when
// every sibling queue is empty.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every function in work on the pool and blocks until
// the last one finishes. Jobs are spread round-robin across the worker
// queues; stealing rebalances from there. On a closed pool this is a
// no-op.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		job := fn
		wrapped := func() {
			defer wg.Done()
			job()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()
}

// Close stops the pool: no new work is accepted, queued work is drained
// and all workers exit. Safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the pool size.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }
