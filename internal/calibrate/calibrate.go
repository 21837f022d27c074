// Package calibrate chooses the iteration count that makes a measurement
// exceed its minimum duration.
package calibrate

import (
	"time"

	"github.com/smykla-skalski/nanomark/pkg/bench"
	"github.com/smykla-skalski/nanomark/pkg/logger"
)

// DefaultIterationCap bounds calibration growth. A body whose cost stays
// unmeasurable stops here with a calibration warning instead of looping
// forever.
const DefaultIterationCap = 1_000_000_000

const growthFloor = 2.0

// RunFunc executes the benchmark once with the given iteration count and
// returns the aggregate measurement.
type RunFunc func(iters int64) bench.RunSample

// Controller calibrates iteration counts by geometric growth. Iteration
// counts never decrease across rounds: each round at least doubles.
type Controller struct {
	MinTime time.Duration
	Cap     int64
	Log     logger.Logger
}

// Outcome is the accepted measurement plus calibration metadata.
type Outcome struct {
	Sample bench.RunSample

	// Iterations is the calibrated per-run iteration count.
	Iterations int64

	// Rounds is how many calibration rounds ran.
	Rounds int

	// Warning is set when the iteration cap was reached before the minimum
	// duration.
	Warning bool
}

// Run calibrates by running the body with growing iteration counts until the
// measured wall time exceeds MinTime or the cap is hit. The next count is
// iters * max(2, MinTime/elapsed). A usage error from the body aborts
// calibration immediately.
func (c *Controller) Run(run RunFunc) (Outcome, error) {
	minTime := c.MinTime
	if minTime <= 0 {
		minTime = bench.DefaultMinTime
	}

	iterCap := c.Cap
	if iterCap <= 0 {
		iterCap = DefaultIterationCap
	}

	log := c.Log
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	iters := int64(1)
	rounds := 0

	for {
		sample := run(iters)
		rounds++

		if sample.Err != nil {
			return Outcome{Sample: sample, Iterations: iters, Rounds: rounds}, sample.Err
		}

		log.Debug("calibration round",
			"round", rounds,
			"iterations", iters,
			"elapsed", sample.Wall,
		)

		if sample.Wall >= minTime {
			return Outcome{Sample: sample, Iterations: iters, Rounds: rounds}, nil
		}

		if iters >= iterCap {
			log.Debug("iteration cap reached below minimum duration",
				"cap", iterCap,
				"elapsed", sample.Wall,
			)

			return Outcome{Sample: sample, Iterations: iters, Rounds: rounds, Warning: true}, nil
		}

		iters = nextCount(iters, sample.Wall, minTime, iterCap)
	}
}

func nextCount(iters int64, elapsed, minTime time.Duration, iterCap int64) int64 {
	growth := growthFloor

	if elapsed > 0 {
		if ratio := float64(minTime) / float64(elapsed); ratio > growth {
			growth = ratio
		}
	}

	next := int64(float64(iters) * growth)

	// Guard float truncation and overflow; growth must stay monotonic.
	if next <= iters {
		next = iters * 2
	}

	if next > iterCap || next < 0 {
		next = iterCap
	}

	return next
}
