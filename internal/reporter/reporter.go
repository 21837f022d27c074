package reporter

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/nanomark/internal/color"
	"github.com/smykla-skalski/nanomark/pkg/bench"
)

// Reporter renders a result set to its output.
type Reporter interface {
	Report(results []bench.Result) error
}

// ErrUnknownFormat is returned for format names outside FormatStrings().
var ErrUnknownFormat = errors.New("unknown report format")

// New builds a Reporter for the named format. theme is only used by the
// console renderer.
func New(name string, out io.Writer, theme color.Theme) (Reporter, error) {
	format, err := FormatString(name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}

	switch format {
	case FormatConsole:
		return &Console{Out: out, Theme: theme}, nil
	case FormatJSON:
		return &JSON{Out: out}, nil
	case FormatCSV:
		return &CSV{Out: out}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}
