// Package reporter renders benchmark results for external consumption:
// console tables, JSON and CSV.
package reporter

//go:generate enumer -type=Format -trimprefix=Format -transform=lower -json -text

// Format selects a report renderer.
type Format int

const (
	// FormatConsole renders a human-readable table.
	FormatConsole Format = iota

	// FormatJSON renders a machine-readable JSON document.
	FormatJSON

	// FormatCSV renders comma-separated records.
	FormatCSV
)
