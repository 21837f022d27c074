package bench

import "github.com/cockroachdb/errors"

var (
	// ErrUsage marks harness misuse local to one benchmark instance:
	// mismatched pause/resume, finishing a run while paused, or a complexity
	// fit requested with too few points. The affected instance is reported as
	// failed and the run continues with the remaining instances.
	ErrUsage = errors.New("benchmark usage error")

	// ErrInsufficientData is returned when complexity fitting is requested
	// for fewer than two distinct input sizes.
	ErrInsufficientData = errors.Wrap(ErrUsage, "insufficient data")

	// ErrDuplicateName is returned when a benchmark name is registered twice.
	ErrDuplicateName = errors.New("duplicate benchmark name")
)
