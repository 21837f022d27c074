package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/smykla-skalski/nanomark/internal/color"
	"github.com/smykla-skalski/nanomark/pkg/bench"
)

// Console renders results as a human-readable table followed by complexity
// fits and a run summary.
type Console struct {
	Out   io.Writer
	Theme color.Theme
}

// Report writes the table for all results. Failed instances stay in the
// table with their failure annotation in the notes column.
func (c *Console) Report(results []bench.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(c.Out, "no benchmarks matched")

		return err
	}

	headers := []string{"Benchmark", "Time", "Iterations", "Rate", "Notes"}

	nameW := nameColumnWidth(results)

	t := tablewriter.NewTable(c.Out,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
		tablewriter.WithConfig(tablewriter.NewConfigBuilder().
			WithTrimSpace(tw.Off).
			Build()),
	)

	t.Header(headers)

	for _, res := range results {
		_ = t.Append(c.buildRow(res, nameW))
	}

	if err := t.Render(); err != nil {
		return err
	}

	c.reportFits(results)
	c.reportSummary(results)

	return nil
}

func (c *Console) buildRow(res bench.Result, nameW int) []string {
	name := padToWidth(c.Theme.Benchmark.Render(res.Name), nameW)

	if res.Failed {
		return []string{
			name,
			"-",
			"-",
			"-",
			c.Theme.Failed.Render("FAILED: " + res.FailureReason),
		}
	}

	return []string{
		name,
		formatTime(res.TimePerIteration),
		humanize.Comma(res.Iterations),
		formatRate(res),
		c.notes(res),
	}
}

func (c *Console) notes(res bench.Result) string {
	var parts []string

	if res.Flags.CalibrationWarning {
		parts = append(parts, c.Theme.Warning.Render("iteration cap reached"))
	}

	if res.Flags.HighVariance {
		parts = append(parts, c.Theme.Warning.Render(
			fmt.Sprintf("high variance (±%s)", formatTime(res.StddevTime))))
	}

	if res.ComplexityNote != "" {
		parts = append(parts, c.Theme.Muted.Render(res.ComplexityNote))
	}

	return strings.Join(parts, ", ")
}

// reportFits prints one fitted curve line per swept family.
func (c *Console) reportFits(results []bench.Result) {
	seen := make(map[string]bool)

	for _, res := range results {
		if res.Complexity == nil {
			continue
		}

		family := familyName(res.Name)
		if seen[family] {
			continue
		}

		seen[family] = true

		fmt.Fprintf(c.Out, "%s %s: %s, coefficient %.4g ns, rms %.1f%%\n",
			c.Theme.Header.Render("Complexity"),
			c.Theme.Benchmark.Render(family),
			shapeLabel(res.Complexity.Shape),
			res.Complexity.Coefficient,
			rmsPercent(res.Complexity),
		)
	}
}

func (c *Console) reportSummary(results []bench.Result) {
	var (
		total  time.Duration
		failed int
	)

	for _, res := range results {
		total += res.Elapsed

		if res.Failed {
			failed++
		}
	}

	line := fmt.Sprintf("%d benchmark(s), %s measured",
		len(results),
		durafmt.Parse(total.Round(time.Millisecond)).LimitFirstN(2), //nolint:mnd // two units read best
	)

	if failed > 0 {
		line += ", " + c.Theme.Failed.Render(fmt.Sprintf("%d failed", failed))
	}

	fmt.Fprintln(c.Out, line)
}

// familyName strips the argument suffix from an instance name.
// "supersort/seq/1048576" → "supersort/seq" when the tail is numeric.
func familyName(name string) string {
	if i := strings.LastIndex(name, "/"); i > 0 {
		if isDigits(name[i+1:]) {
			return familyName(name[:i])
		}
	}

	return name
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func shapeLabel(s bench.Shape) string {
	switch s {
	case bench.ShapeOne:
		return "O(1)"
	case bench.ShapeLogN:
		return "O(lgN)"
	case bench.ShapeN:
		return "O(N)"
	case bench.ShapeNLogN:
		return "O(N lgN)"
	case bench.ShapeNSquared:
		return "O(N^2)"
	case bench.ShapeNCubed:
		return "O(N^3)"
	default:
		return s.String()
	}
}

// rmsPercent normalizes the fit residual by the mean fitted time so families
// with very different magnitudes report comparable quality.
func rmsPercent(fit *bench.ComplexityFit) float64 {
	if fit.Coefficient == 0 {
		return 0
	}

	return fit.RMSE / fit.Coefficient * 100 //nolint:mnd // fraction to percent
}

// formatTime renders a per-iteration duration with three significant-ish
// digits, picking the unit by magnitude.
func formatTime(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

func formatRate(res bench.Result) string {
	var parts []string

	if res.ItemsPerSecond > 0 {
		parts = append(parts, humanize.SIWithDigits(res.ItemsPerSecond, 2, "")+" items/s") //nolint:mnd // digits
	}

	if res.BytesPerSecond > 0 {
		parts = append(parts, humanize.Bytes(uint64(res.BytesPerSecond))+"/s")
	}

	if len(parts) == 0 {
		return "-"
	}

	return strings.Join(parts, ", ")
}

// nameColumnWidth finds the widest instance name so styled cells can be
// padded to a stable column width. Capped to a third of the terminal when
// attached to one.
func nameColumnWidth(results []bench.Result) int {
	w := len("Benchmark")

	for _, res := range results {
		if n := runewidth.StringWidth(res.Name); n > w {
			w = n
		}
	}

	if avail := termWidth(); avail > 0 && w > avail/3 { //nolint:mnd // leave room for the data columns
		w = avail / 3
	}

	return w
}

// padToWidth right-pads s with spaces so its display width reaches w.
// ANSI escape codes are excluded from width calculation.
func padToWidth(s string, w int) string {
	visible := runewidth.StringWidth(ansi.Strip(s))
	if visible >= w {
		return s
	}

	return s + strings.Repeat(" ", w-visible)
}

// termWidth returns the terminal width or 0 if not a terminal.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}

	return 0
}
