package reporter

import (
	"encoding/json"
	"io"
	"time"

	"github.com/smykla-skalski/nanomark/pkg/bench"
)

// Report is the top-level JSON document.
type Report struct {
	Timestamp  time.Time      `json:"timestamp"`
	Benchmarks []bench.Result `json:"benchmarks"`
}

// JSON renders results as an indented JSON document for downstream tooling.
type JSON struct {
	Out io.Writer

	// Now is injectable for deterministic tests; nil means time.Now.
	Now func() time.Time
}

func (j *JSON) Report(results []bench.Result) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}

	if results == nil {
		results = []bench.Result{}
	}

	enc := json.NewEncoder(j.Out)
	enc.SetIndent("", "  ")

	return enc.Encode(Report{
		Timestamp:  now().UTC(),
		Benchmarks: results,
	})
}
