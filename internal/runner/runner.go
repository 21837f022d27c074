// Package runner orchestrates benchmark execution: it expands definitions
// into instances, calibrates, repeats, aggregates and emits one result per
// instance.
package runner

import (
	"time"

	"github.com/smykla-skalski/nanomark/internal/calibrate"
	"github.com/smykla-skalski/nanomark/internal/complexity"
	"github.com/smykla-skalski/nanomark/internal/parallel"
	"github.com/smykla-skalski/nanomark/internal/stats"
	"github.com/smykla-skalski/nanomark/internal/sweep"
	"github.com/smykla-skalski/nanomark/pkg/bench"
	"github.com/smykla-skalski/nanomark/pkg/config"
	"github.com/smykla-skalski/nanomark/pkg/logger"
)

// Runner executes registered benchmark definitions sequentially. Instances
// never run concurrently with each other; only the thread coordinator fans
// out within one measurement.
type Runner struct {
	clock bench.Clock
	log   logger.Logger

	minTime           time.Duration
	repetitions       int
	iterationCap      int64
	varianceThreshold float64
}

// New creates a Runner with run-wide defaults from cfg. Per-definition
// options override the defaults.
func New(cfg *config.Config, clk bench.Clock, log logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Runner{
		clock:             clk,
		log:               log,
		minTime:           cfg.MinTime.ToDuration(),
		repetitions:       cfg.Repetitions,
		iterationCap:      cfg.IterationCap,
		varianceThreshold: cfg.VarianceThreshold,
	}
}

// Run executes all definitions and returns one result per instance, in
// expansion order. A usage error fails only its instance; a panicking body
// is not recovered and aborts the whole run.
func (r *Runner) Run(defs []*bench.Definition) []bench.Result {
	var results []bench.Result

	for _, def := range defs {
		results = append(results, r.runDefinition(def)...)
	}

	return results
}

func (r *Runner) runDefinition(def *bench.Definition) []bench.Result {
	instances := sweep.Expand(def)
	results := make([]bench.Result, 0, len(instances))

	var points []complexity.Point

	for _, inst := range instances {
		res := r.runInstance(def, inst)
		results = append(results, res)

		if def.Complexity != bench.ShapeNone && !res.Failed {
			if n := complexityN(res); n > 0 {
				points = append(points, complexity.Point{
					N:    n,
					Time: float64(res.TimePerIteration),
				})
			}
		}
	}

	if def.Complexity != bench.ShapeNone {
		r.attachFit(def, points, results)
	}

	return results
}

// complexityN prefers the size the body declared via SetComplexityN and
// falls back to the first argument of the instance.
func complexityN(res bench.Result) int64 {
	if res.ComplexityN > 0 {
		return res.ComplexityN
	}

	if len(res.Arguments) > 0 {
		return res.Arguments[0]
	}

	return 0
}

func (r *Runner) attachFit(def *bench.Definition, points []complexity.Point, results []bench.Result) {
	fit, err := complexity.FitCurve(points, def.Complexity)
	if err != nil {
		r.log.Info("complexity fit skipped",
			"benchmark", def.Name,
			"reason", err,
		)

		for i := range results {
			results[i].ComplexityNote = "insufficient data"
		}

		return
	}

	r.log.Debug("complexity fit",
		"benchmark", def.Name,
		"shape", fit.Shape,
		"coefficient", fit.Coefficient,
		"rmse", fit.RMSE,
	)

	for i := range results {
		if results[i].Failed {
			continue
		}

		results[i].Complexity = &bench.ComplexityFit{
			Shape:       fit.Shape,
			Coefficient: fit.Coefficient,
			RMSE:        fit.RMSE,
		}
	}
}

func (r *Runner) runInstance(def *bench.Definition, inst sweep.Instance) bench.Result {
	res := bench.Result{
		Name:        inst.Name,
		Arguments:   inst.Args,
		Threads:     def.ThreadCount,
		Repetitions: r.repetitionsFor(def),
		RealTime:    def.RealTime,
	}

	coord := &parallel.Coordinator{Clock: r.clock}

	run := func(iters int64) bench.RunSample {
		agg, err := coord.Run(def.ThreadCount, iters, func(n int64) *bench.State {
			return bench.NewState(inst.Args, n, r.clock)
		}, def.Body)

		return bench.RunSample{
			Iterations:  agg.Iterations,
			Wall:        agg.WallSpan,
			CPU:         agg.CPU,
			Items:       agg.Items,
			Bytes:       agg.Bytes,
			ComplexityN: agg.ComplexityN,
			Err:         err,
		}
	}

	ctrl := &calibrate.Controller{
		MinTime: r.minTimeFor(def),
		Cap:     r.iterationCap,
		Log:     r.log.With("benchmark", inst.Name),
	}

	outcome, err := ctrl.Run(run)
	if err != nil {
		return failed(res, err)
	}

	res.Flags.CalibrationWarning = outcome.Warning

	samples := []bench.RunSample{outcome.Sample}

	for rep := 1; rep < res.Repetitions; rep++ {
		sample := run(outcome.Iterations)
		if sample.Err != nil {
			return failed(res, sample.Err)
		}

		samples = append(samples, sample)
	}

	r.reduce(&res, def, samples)

	r.log.Info("benchmark complete",
		"benchmark", inst.Name,
		"iterations", res.Iterations,
		"time_per_iteration", res.TimePerIteration,
	)

	return res
}

func (r *Runner) reduce(res *bench.Result, def *bench.Definition, samples []bench.RunSample) {
	perIter := make([]float64, 0, len(samples))

	for _, s := range samples {
		if s.Iterations > 0 {
			perIter = append(perIter, float64(measured(s, def.RealTime))/float64(s.Iterations))
		}
	}

	summary := stats.Summarize(perIter)

	last := samples[len(samples)-1]

	res.Iterations = last.Iterations
	res.TimePerIteration = time.Duration(summary.Mean)
	res.MedianTime = time.Duration(summary.Median)
	res.StddevTime = time.Duration(summary.Stddev)
	res.Elapsed = measured(last, def.RealTime)
	res.ComplexityN = last.ComplexityN

	if summary.N > 1 && summary.CoefficientOfVariation() > r.varianceThreshold {
		res.Flags.HighVariance = true
	}

	if secs := res.Elapsed.Seconds(); secs > 0 {
		if last.Items > 0 {
			res.ItemsPerSecond = float64(last.Items) / secs
		}

		if last.Bytes > 0 {
			res.BytesPerSecond = float64(last.Bytes) / secs
		}
	}
}

// measured selects the aggregation basis: wall-clock span in real-time
// mode, summed per-thread CPU time otherwise.
func measured(s bench.RunSample, realTime bool) time.Duration {
	if realTime {
		return s.Wall
	}

	return s.CPU
}

func (r *Runner) minTimeFor(def *bench.Definition) time.Duration {
	if def.MinDuration > 0 {
		return def.MinDuration
	}

	return r.minTime
}

func (r *Runner) repetitionsFor(def *bench.Definition) int {
	if def.Repetitions > 1 {
		return def.Repetitions
	}

	return r.repetitions
}

func failed(res bench.Result, err error) bench.Result {
	res.Failed = true
	res.FailureReason = err.Error()

	return res
}
