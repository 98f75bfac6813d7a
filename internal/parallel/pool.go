package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size set of persistent workers.
//
// Work is submitted as scoped tasks: ParallelFor and Split block until every
// chunk has finished, so nothing submitted outlives the call. No task is
// retained by the pool after it runs.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers persistent workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for t := range p.workC {
		t.fn()
		t.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the workers. Calling Close multiple times is safe.
// A closed pool runs everything sequentially on the caller.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor splits [0, n) into at most NumWorkers contiguous chunks and
// runs fn(start, end) for each of them, returning once all are done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	p.Split(n, p.numWorkers, fn)
}

// Split splits [0, n) into at most chunks contiguous ranges and runs
// fn(start, end) for each of them on the pool, returning once all are done.
// The last range is run on the calling goroutine.
func (p *Pool) Split(n, chunks int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	chunks = min(chunks, n)
	if chunks <= 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunkSize := (n + chunks - 1) / chunks
	var wg sync.WaitGroup
	start := 0
	for ; start+chunkSize < n; start += chunkSize {
		s, e := start, start+chunkSize
		wg.Add(1)
		p.workC <- task{
			fn:      func() { fn(s, e) },
			barrier: &wg,
		}
	}
	fn(start, n)
	wg.Wait()
}
