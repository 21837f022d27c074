// Package stats reduces repetition samples to summary statistics.
package stats

import (
	"math"
	"slices"
)

// Summary holds the reduction of one set of per-iteration time samples.
type Summary struct {
	Mean   float64
	Median float64
	Stddev float64
	N      int
}

// Summarize computes mean, median and sample standard deviation. A single
// sample has zero stddev.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	mean := sum / float64(n)

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}

	var stddev float64
	if n > 1 {
		stddev = math.Sqrt(sqDiff / float64(n-1))
	}

	return Summary{
		Mean:   mean,
		Median: median(values),
		Stddev: stddev,
		N:      n,
	}
}

// CoefficientOfVariation returns stddev/mean, the relative spread used for
// the high-variance advisory. Zero when the mean is zero.
func (s Summary) CoefficientOfVariation() float64 {
	if s.Mean == 0 {
		return 0
	}

	return s.Stddev / s.Mean
}

func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}
