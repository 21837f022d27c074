// Package bench provides the public surface of the benchmark harness:
// benchmark registration, the per-run timing session handed to benchmark
// bodies, and the result records the harness emits.
package bench

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Clock abstracts the monotonic time sources a State measures with.
// WallNow returns monotonic wall-clock nanoseconds from an arbitrary origin;
// ThreadCPUNow returns CPU nanoseconds charged to the calling OS thread.
// Both are non-decreasing within a thread.
type Clock interface {
	WallNow() int64
	ThreadCPUNow() int64
}

type runStatus int

const (
	statusIdle runStatus = iota
	statusRunning
	statusPaused
	statusDone
)

// State is the per-run timing session handed to a benchmark body.
// The body drives the measured loop through Next:
//
//	func sortInts(s *bench.State) {
//		data := makeInput(s.Arg(0))
//		for s.Next() {
//			sort.Ints(data)
//		}
//	}
//
// A State is created at run start, lives for exactly one run, and is never
// shared across threads. Timing starts at the first Next call and stops when
// Next returns false. PauseTiming and ResumeTiming exclude setup work from
// the measurement without stopping execution.
type State struct {
	args     []int64
	maxIters int64
	iter     int64
	clk      Clock

	status runStatus

	startWall int64
	startCPU  int64
	endWall   int64
	endCPU    int64

	// Wall/CPU reading taken when the current pause began.
	pauseWall int64
	pauseCPU  int64

	// Accumulated time spent paused, subtracted from the elapsed totals.
	pausedWall int64
	pausedCPU  int64

	items       int64
	bytes       int64
	complexityN int64

	err error
}

// NewState creates a timing session for a run of maxIters iterations.
// Harness plumbing; benchmark bodies receive their State from the runner.
func NewState(args []int64, maxIters int64, clk Clock) *State {
	return &State{
		args:     args,
		maxIters: maxIters,
		clk:      clk,
	}
}

// Next reports whether the measured loop should run another iteration.
// The first call starts the timers; the call that returns false stops them.
// After a usage error Next returns false immediately so the body unwinds.
func (s *State) Next() bool {
	if s.err != nil {
		if s.status != statusDone {
			s.finish()
		}

		return false
	}

	if s.status == statusIdle {
		s.status = statusRunning
		s.startWall = s.clk.WallNow()
		s.startCPU = s.clk.ThreadCPUNow()

		if s.maxIters > 0 {
			return true
		}

		s.finish()

		return false
	}

	s.iter++
	if s.iter >= s.maxIters {
		s.finish()

		return false
	}

	return true
}

// PauseTiming freezes time accumulation. Valid only while timing is running;
// pausing twice in a row is a usage error that fails the run.
func (s *State) PauseTiming() {
	switch s.status {
	case statusRunning:
		s.pauseWall = s.clk.WallNow()
		s.pauseCPU = s.clk.ThreadCPUNow()
		s.status = statusPaused
	case statusPaused:
		s.fail("PauseTiming called while timing is already paused")
	default:
		s.fail("PauseTiming called outside the measurement loop")
	}
}

// ResumeTiming resumes time accumulation after PauseTiming. Resuming while
// timing is running is a usage error that fails the run.
func (s *State) ResumeTiming() {
	switch s.status {
	case statusPaused:
		s.pausedWall += s.clk.WallNow() - s.pauseWall
		s.pausedCPU += s.clk.ThreadCPUNow() - s.pauseCPU
		s.status = statusRunning
	case statusRunning:
		s.fail("ResumeTiming called while timing is running")
	default:
		s.fail("ResumeTiming called outside the measurement loop")
	}
}

// RecordItems adds n to the processed-items counter. Valid in any state;
// the counter only ever grows.
func (s *State) RecordItems(n int64) {
	s.items += n
}

// RecordBytes adds n to the processed-bytes counter. Valid in any state;
// the counter only ever grows.
func (s *State) RecordBytes(n int64) {
	s.bytes += n
}

// SetComplexityN declares the input size of this run for complexity fitting
// across a parameter sweep.
func (s *State) SetComplexityN(n int64) {
	s.complexityN = n
}

// Arg returns the i-th argument of this benchmark instance, or 0 when the
// instance has fewer arguments.
func (s *State) Arg(i int) int64 {
	if i < 0 || i >= len(s.args) {
		return 0
	}

	return s.args[i]
}

// Iterations returns the iteration budget of this run.
func (s *State) Iterations() int64 {
	return s.maxIters
}

func (s *State) fail(msg string) {
	if s.err == nil {
		s.err = errors.Wrap(ErrUsage, msg)
	}
}

func (s *State) finish() {
	if s.status == statusIdle {
		// The body never entered the loop; report a zero-length run.
		s.startWall = s.clk.WallNow()
		s.startCPU = s.clk.ThreadCPUNow()
	}

	s.endWall = s.clk.WallNow()
	s.endCPU = s.clk.ThreadCPUNow()

	if s.status == statusPaused {
		s.fail("benchmark finished while timing is paused")
	}

	s.status = statusDone
}

// RunSample is the immutable result of one completed timing session.
// Elapsed times are net of paused intervals.
type RunSample struct {
	Iterations  int64
	Wall        time.Duration
	CPU         time.Duration
	Items       int64
	Bytes       int64
	ComplexityN int64
	Err         error
}

// Sample captures the measurement of a finished run. Consumed by the harness
// after the benchmark body returns; calling it finalizes an aborted session.
func (s *State) Sample() RunSample {
	if s.status != statusDone {
		s.finish()
	}

	return RunSample{
		Iterations:  s.iter,
		Wall:        time.Duration(s.endWall - s.startWall - s.pausedWall),
		CPU:         time.Duration(s.endCPU - s.startCPU - s.pausedCPU),
		Items:       s.items,
		Bytes:       s.bytes,
		ComplexityN: s.complexityN,
		Err:         s.err,
	}
}
