// Package config provides internal configuration loading and processing.
package config

import (
	"time"

	"github.com/smykla-skalski/nanomark/internal/calibrate"
	"github.com/smykla-skalski/nanomark/pkg/config"
)

const (
	// DefaultMinTime is the default minimum measured duration.
	DefaultMinTime = 500 * time.Millisecond

	// DefaultRepetitions runs each calibrated instance once.
	DefaultRepetitions = 1

	// DefaultVarianceThreshold flags results whose stddev/mean across
	// repetitions exceeds 10%.
	DefaultVarianceThreshold = 0.10

	// DefaultFormat renders results as a console table.
	DefaultFormat = "console"
)

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *config.Config {
	return &config.Config{
		MinTime:           config.Duration(DefaultMinTime),
		Repetitions:       DefaultRepetitions,
		IterationCap:      calibrate.DefaultIterationCap,
		VarianceThreshold: DefaultVarianceThreshold,
		Format:            DefaultFormat,
	}
}

const defaultMinTimeStr = "500ms"

func defaultsToMap() map[string]any {
	return map[string]any{
		"min_time":           defaultMinTimeStr,
		"repetitions":        DefaultRepetitions,
		"iteration_cap":      int64(calibrate.DefaultIterationCap),
		"variance_threshold": DefaultVarianceThreshold,
		"format":             DefaultFormat,
		"filter":             "",
	}
}
