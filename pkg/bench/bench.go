package bench

import (
	"time"
)

const (
	// DefaultMinTime is the minimum measured duration a calibration must
	// exceed before a run is accepted.
	DefaultMinTime = 500 * time.Millisecond

	// DefaultRangeMultiplier steps geometric argument ranges.
	DefaultRangeMultiplier = 8
)

// Body is a benchmark procedure. It receives the timing session for one run
// and drives the measured loop through State.Next.
type Body func(*State)

// argRange is a geometric argument range [Lo, Hi] stepped by Mult.
type argRange struct {
	Lo   int64
	Hi   int64
	Mult int64
}

// Definition describes one registered benchmark: its body plus the execution
// options the harness needs to expand, calibrate and aggregate it. Immutable
// once registered.
type Definition struct {
	Name        string
	Body        Body
	ArgTuples   [][]int64
	Ranges      []argRange
	ThreadCount int
	MinDuration time.Duration
	Repetitions int
	Complexity  Shape
	RealTime    bool
}

// Option configures a benchmark registration.
type Option func(*Definition)

// Args declares one explicit argument tuple. Repeat to register several
// instances sharing the same body.
func Args(args ...int64) Option {
	return func(d *Definition) {
		tuple := make([]int64, len(args))
		copy(tuple, args)
		d.ArgTuples = append(d.ArgTuples, tuple)
	}
}

// Range declares a geometric argument range [lo, hi] stepped by the range
// multiplier, one instance per generated value.
func Range(lo, hi int64) Option {
	return func(d *Definition) {
		d.Ranges = append(d.Ranges, argRange{Lo: lo, Hi: hi, Mult: DefaultRangeMultiplier})
	}
}

// RangeMultiplier overrides the step multiplier of all declared ranges.
func RangeMultiplier(mult int64) Option {
	return func(d *Definition) {
		for i := range d.Ranges {
			d.Ranges[i].Mult = mult
		}
	}
}

// Threads replicates the body across n OS threads with synchronized
// start/stop.
func Threads(n int) Option {
	return func(d *Definition) {
		d.ThreadCount = n
	}
}

// MinTime overrides the minimum measured duration for calibration.
func MinTime(dur time.Duration) Option {
	return func(d *Definition) {
		d.MinDuration = dur
	}
}

// Repetitions runs the calibrated benchmark r times and reports
// mean/median/stddev across the runs.
func Repetitions(r int) Option {
	return func(d *Definition) {
		d.Repetitions = r
	}
}

// Complexity declares the asymptotic shape for curve fitting across a
// parameter sweep. Use ShapeAuto to fit all candidates and keep the best.
func Complexity(shape Shape) Option {
	return func(d *Definition) {
		d.Complexity = shape
	}
}

// UseRealTime aggregates threaded runs by wall-clock span instead of summed
// per-thread CPU time.
func UseRealTime() Option {
	return func(d *Definition) {
		d.RealTime = true
	}
}

func newDefinition(name string, body Body, opts ...Option) *Definition {
	def := &Definition{
		Name:        name,
		Body:        body,
		ThreadCount: 1,
		Repetitions: 1,
	}

	for _, opt := range opts {
		opt(def)
	}

	if def.ThreadCount < 1 {
		def.ThreadCount = 1
	}

	if def.Repetitions < 1 {
		def.Repetitions = 1
	}

	return def
}
