// Package parallel provides the parallel-for strategies used by the solver passes.
//
// Every pass over the particle buffer is a data-parallel map: each index
// writes only its own slots and reads data finalized by the previous pass.
// An Executor splits [0, n) into contiguous chunks and returns once every
// chunk has run.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the minimum index count dispatched to workers.
// Below this, running inline is faster than the channel round trip.
const DefaultThreshold = 64

// Executor runs fn over disjoint sub-ranges covering [0, n).
// For blocks until all sub-ranges have completed.
type Executor interface {
	For(n int, fn func(start, end int))
	Workers() int
	Close()
}

// Serial runs every range inline on the calling goroutine.
type Serial struct{}

// For calls fn once with the full range.
func (Serial) For(n int, fn func(start, end int)) {
	if n > 0 {
		fn(0, n)
	}
}

// Workers reports one worker.
func (Serial) Workers() int { return 1 }

// Close is a no-op.
func (Serial) Close() {}

// workChunk represents a range of indices for a worker to process.
type workChunk struct {
	start, end int
	fn         func(start, end int)
}

// Pool is a persistent goroutine worker pool.
// Workers are started lazily on the first dispatch and live until Close.
// For is not reentrant and must not be called from multiple goroutines at once.
type Pool struct {
	numWorkers int
	threshold  int

	mu sync.Mutex

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// NewPool creates a pool with the given worker count and inline threshold.
// workers <= 0 uses GOMAXPROCS; threshold <= 0 uses DefaultThreshold.
func NewPool(workers, threshold int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Pool{
		numWorkers: workers,
		threshold:  threshold,
	}
}

// New returns Serial for a single worker and a Pool otherwise.
func New(workers, threshold int) Executor {
	if workers == 1 {
		return Serial{}
	}
	return NewPool(workers, threshold)
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.numWorkers }

// startWorkers launches persistent worker goroutines.
func (p *Pool) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.fn(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// For splits [0, n) into one chunk per worker and waits for all of them.
func (p *Pool) For(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n < p.threshold || p.numWorkers == 1 {
		fn(0, n)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- workChunk{start: start, end: end, fn: fn}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}

// Close signals all workers to exit and waits for them.
// The pool restarts its workers if used again.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}
