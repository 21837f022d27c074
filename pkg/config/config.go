// Package config provides the configuration schema for the benchmark
// harness.
package config

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrNegativeDuration is returned when a negative duration is provided.
var ErrNegativeDuration = errors.New("duration must be non-negative")

// Config is the harness configuration. Values here are run-wide defaults;
// per-benchmark options declared at registration take precedence.
type Config struct {
	// MinTime is the minimum measured duration a calibration must exceed.
	MinTime Duration `json:"min_time,omitempty" koanf:"min_time" toml:"min_time,omitempty"`

	// Repetitions is how many times each calibrated instance is re-run for
	// statistics.
	Repetitions int `json:"repetitions,omitempty" koanf:"repetitions" toml:"repetitions,omitempty"`

	// IterationCap bounds calibration growth.
	IterationCap int64 `json:"iteration_cap,omitempty" koanf:"iteration_cap" toml:"iteration_cap,omitempty"`

	// VarianceThreshold is the stddev/mean ratio above which a result is
	// flagged as high-variance.
	VarianceThreshold float64 `json:"variance_threshold,omitempty" koanf:"variance_threshold" toml:"variance_threshold,omitempty"`

	// Format selects the report renderer: console, json or csv.
	Format string `json:"format,omitempty" koanf:"format" toml:"format,omitempty"`

	// Filter is a glob pattern restricting which benchmarks run.
	Filter string `json:"filter,omitempty" koanf:"filter" toml:"filter,omitempty"`
}

// Duration wraps time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(err, "invalid duration")
	}

	if dur < 0 {
		return errors.Wrapf(ErrNegativeDuration, "got %s", dur)
	}

	*d = Duration(dur)

	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// ToDuration converts Duration to time.Duration.
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}
