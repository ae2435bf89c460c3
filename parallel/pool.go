// Package parallel implements a fork-join loop primitive for running
// per-vertex functions across a fixed set of worker go-routines.
//
// Each loop splits the [0, n) index space into contiguous extents that are
// processed by exactly one task and returns only after every task has
// completed; the end of each loop is therefore a barrier.
package parallel

import (
	"fmt"
	"sync"

	"github.com/linksrus/rankflow/aggregator"
	"github.com/linksrus/rankflow/graph"
	"golang.org/x/xerrors"
)

// extentsPerWorker controls how finely loops are split so that workers
// finishing early can pick up more work.
const extentsPerWorker = 4

// Extent describes a [Start, End) range of vertex indices.
type Extent struct {
	Start int
	End   int
}

// Split partitions [0, n) into at most parts contiguous extents whose sizes
// differ by at most one.
func Split(n, parts int) []Extent {
	if n <= 0 || parts <= 0 {
		return nil
	}
	if parts > n {
		parts = n
	}

	var (
		out        = make([]Extent, parts)
		size, rem  = n / parts, n % parts
		start, end int
	)
	for i := range out {
		end = start + size
		if i < rem {
			end++
		}
		out[i] = Extent{Start: start, End: end}
		start = end
	}
	return out
}

// task is a unit of work that is handed off to a worker.
type task struct {
	ext Extent
	fn  func(Extent)
	run *loopRun
}

// loopRun tracks the tasks belonging to a single loop invocation.
type loopRun struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	panicVal interface{}
}

func (r *loopRun) recordPanic(val interface{}) {
	r.mu.Lock()
	if r.panicVal == nil {
		r.panicVal = val
	}
	r.mu.Unlock()
}

// Pool maintains a set of long-lived workers that execute loop bodies.
// It is important for callers to invoke Close() on the pool when they are
// done using it.
type Pool struct {
	cfg Config

	wg        sync.WaitGroup
	taskCh    chan task
	closeOnce sync.Once
}

// NewPool creates a new Pool instance using the specified configuration.
func NewPool(cfg Config) (*Pool, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("parallel pool config validation failed: %w", err)
	}

	p := &Pool{cfg: cfg}
	p.startWorkers(cfg.Workers)
	return p, nil
}

// Close shuts down the pool workers. Loops must not be invoked after the
// pool has been closed. Calling Close more than once is a no-op.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		close(p.taskCh)
		p.wg.Wait()
	})
	return nil
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int { return p.cfg.Workers }

// Threshold returns the configured parallel dispatch threshold.
func (p *Pool) Threshold() int { return p.cfg.Threshold }

// Parallel returns true if a loop over n items will be split across the
// pool workers.
func (p *Pool) Parallel(n int) bool {
	return p.cfg.Workers > 1 && n > p.cfg.Threshold
}

// ForEach invokes fn once for every vertex in [0, n). Calls to ForEach block
// until fn has returned for all vertices.
func (p *Pool) ForEach(n int, fn func(v graph.Vertex)) {
	p.run(n, func(ext Extent) {
		for v := ext.Start; v < ext.End; v++ {
			fn(graph.Vertex(v))
		}
	})
}

// Sum invokes fn once for every vertex in [0, n) and returns the sum of the
// returned values. Each task accumulates a private partial sum which is
// combined with the other partial sums once the task completes.
func (p *Pool) Sum(n int, fn func(v graph.Vertex) float64) float64 {
	var total aggregator.Float64Accumulator
	p.run(n, func(ext Extent) {
		var partial float64
		for v := ext.Start; v < ext.End; v++ {
			partial += fn(graph.Vertex(v))
		}
		total.Aggregate(partial)
	})
	return total.Get()
}

// run splits [0, n) into extents and blocks until fn has been executed for
// each one. If any invocation of fn panics, the panic is re-raised on the
// calling go-routine once all tasks have completed.
func (p *Pool) run(n int, fn func(Extent)) {
	if n <= 0 {
		return
	}
	if !p.Parallel(n) {
		fn(Extent{Start: 0, End: n})
		return
	}

	extents := Split(n, p.cfg.Workers*extentsPerWorker)
	run := new(loopRun)
	run.wg.Add(len(extents))
	for _, ext := range extents {
		p.taskCh <- task{ext: ext, fn: fn, run: run}
	}

	// Block until worker pool has finished processing all extents.
	run.wg.Wait()
	if run.panicVal != nil {
		panic(fmt.Sprintf("parallel loop task failed: %v", run.panicVal))
	}
}

// startWorkers allocates the task channel and spins up numWorkers.
func (p *Pool) startWorkers(numWorkers int) {
	p.taskCh = make(chan task)
	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
}

// worker polls taskCh for incoming tasks and executes them. The worker
// automatically exits when taskCh gets closed.
func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.taskCh {
		execTask(t)
	}
}

func execTask(t task) {
	defer t.run.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			t.run.recordPanic(r)
		}
	}()
	t.fn(t.ext)
}
