package bench

import "time"

// Flags carries the non-fatal advisories attached to a result.
type Flags struct {
	// CalibrationWarning is set when the minimum duration was unreachable
	// within the iteration cap.
	CalibrationWarning bool `json:"calibration_warning,omitempty"`

	// HighVariance is set when stddev/mean of per-iteration time across
	// repetitions exceeded the configured threshold.
	HighVariance bool `json:"high_variance,omitempty"`
}

// ComplexityFit is the fitted asymptotic curve of a parameter-swept family.
type ComplexityFit struct {
	Shape       Shape   `json:"shape"`
	Coefficient float64 `json:"coefficient"`
	RMSE        float64 `json:"rmse"`
}

// Result is the aggregated outcome of one benchmark instance: one argument
// expansion of one definition, calibrated, repeated and reduced. Every
// registered instance yields exactly one Result; a failed instance carries
// its failure annotation instead of silently disappearing.
type Result struct {
	Name        string  `json:"name"`
	Arguments   []int64 `json:"arguments,omitempty"`
	Threads     int     `json:"threads"`
	Repetitions int     `json:"repetitions"`
	RealTime    bool    `json:"real_time,omitempty"`

	// Iterations is the calibrated per-run iteration total (summed across
	// threads).
	Iterations int64 `json:"iterations"`

	// TimePerIteration is the mean per-iteration time across repetitions.
	TimePerIteration time.Duration `json:"time_per_iteration"`

	// MedianTime and StddevTime summarize the repetition samples.
	MedianTime time.Duration `json:"median_time"`
	StddevTime time.Duration `json:"stddev_time"`

	// Elapsed is the total measured span of the final repetition.
	Elapsed time.Duration `json:"elapsed"`

	ItemsPerSecond float64 `json:"items_per_second,omitempty"`
	BytesPerSecond float64 `json:"bytes_per_second,omitempty"`

	// ComplexityN is the input size the body declared via SetComplexityN,
	// when it declared one.
	ComplexityN int64 `json:"complexity_n,omitempty"`

	Complexity *ComplexityFit `json:"complexity,omitempty"`

	// ComplexityNote explains a skipped fit, such as insufficient sweep
	// points.
	ComplexityNote string `json:"complexity_note,omitempty"`

	Flags Flags `json:"flags"`

	// Failed marks an instance rejected by a usage error. FailureReason
	// holds the annotation.
	Failed        bool   `json:"failed,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}
