package reporter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/smykla-skalski/nanomark/pkg/bench"
)

// csvHeader is the fixed column order of CSV output.
var csvHeader = []string{
	"name",
	"arguments",
	"threads",
	"repetitions",
	"real_time",
	"iterations",
	"time_per_iteration_ns",
	"median_time_ns",
	"stddev_time_ns",
	"items_per_second",
	"bytes_per_second",
	"complexity",
	"failed",
	"failure_reason",
}

// CSV renders one record per instance with a fixed header row.
type CSV struct {
	Out io.Writer
}

func (c *CSV) Report(results []bench.Result) error {
	w := csv.NewWriter(c.Out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, res := range results {
		if err := w.Write(csvRecord(res)); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func csvRecord(res bench.Result) []string {
	args := make([]string, 0, len(res.Arguments))
	for _, a := range res.Arguments {
		args = append(args, strconv.FormatInt(a, 10))
	}

	complexity := ""
	if res.Complexity != nil {
		complexity = res.Complexity.Shape.String()
	}

	return []string{
		res.Name,
		strings.Join(args, "/"),
		strconv.Itoa(res.Threads),
		strconv.Itoa(res.Repetitions),
		strconv.FormatBool(res.RealTime),
		strconv.FormatInt(res.Iterations, 10),
		strconv.FormatInt(res.TimePerIteration.Nanoseconds(), 10),
		strconv.FormatInt(res.MedianTime.Nanoseconds(), 10),
		strconv.FormatInt(res.StddevTime.Nanoseconds(), 10),
		strconv.FormatFloat(res.ItemsPerSecond, 'f', -1, 64),
		strconv.FormatFloat(res.BytesPerSecond, 'f', -1, 64),
		complexity,
		strconv.FormatBool(res.Failed),
		res.FailureReason,
	}
}
