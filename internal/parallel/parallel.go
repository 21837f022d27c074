// Package parallel replicates one benchmark body across OS worker threads
// with synchronized start and stop.
package parallel

import (
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smykla-skalski/nanomark/pkg/bench"
)

// Aggregate is the reduction of one threaded run. CPU time is summed across
// threads; WallSpan is the coordinator's own wall-clock span from start
// barrier release to the completion of the end barrier. Counters are summed
// only after every worker has finished.
type Aggregate struct {
	Iterations  int64
	WallSpan    time.Duration
	CPU         time.Duration
	Items       int64
	Bytes       int64
	ComplexityN int64
}

// StateFactory creates the per-thread timing session for a run of the given
// iteration count.
type StateFactory func(iters int64) *bench.State

// Coordinator runs a body on N locked OS threads. Worker sessions are
// thread-local; nothing is shared during measurement, so the reduction needs
// no locks.
type Coordinator struct {
	Clock bench.Clock
}

// Run executes the body on threads workers, each driving its own session of
// iters iterations. No worker enters its timed loop before every worker has
// finished setup, and reduction starts only after every worker is done.
// The first usage error from any worker fails the whole run.
func (c *Coordinator) Run(threads int, iters int64, newState StateFactory, body bench.Body) (Aggregate, error) {
	if threads < 1 {
		threads = 1
	}

	samples := make([]bench.RunSample, threads)

	var ready sync.WaitGroup

	ready.Add(threads)

	start := make(chan struct{})

	// errgroup does not forward panics to Wait, so the first panic value is
	// stashed here and re-raised on the calling goroutine after the join.
	panicked := make(chan any, 1)

	var group errgroup.Group

	for i := range threads {
		group.Go(func() error {
			markReady := sync.OnceFunc(ready.Done)
			defer markReady()

			defer func() {
				if r := recover(); r != nil {
					select {
					case panicked <- r:
					default:
					}
				}
			}()

			// The per-thread CPU clock is only coherent while pinned to
			// one OS thread.
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			state := newState(iters)

			markReady()
			<-start

			body(state)

			samples[i] = state.Sample()

			return samples[i].Err
		})
	}

	ready.Wait()

	spanStart := c.Clock.WallNow()

	close(start)

	err := group.Wait()
	span := time.Duration(c.Clock.WallNow() - spanStart)

	select {
	case r := <-panicked:
		panic(r)
	default:
	}

	return reduce(samples, span), err
}

func reduce(samples []bench.RunSample, span time.Duration) Aggregate {
	agg := Aggregate{WallSpan: span}

	for _, s := range samples {
		agg.Iterations += s.Iterations
		agg.CPU += s.CPU
		agg.Items += s.Items
		agg.Bytes += s.Bytes

		if s.ComplexityN > agg.ComplexityN {
			agg.ComplexityN = s.ComplexityN
		}
	}

	return agg
}
