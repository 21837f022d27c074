// Package color provides color detection and theming for CLI output.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Profile reports whether colored output should be enabled. The --no-color
// flag wins, then NO_COLOR (any value, per https://no-color.org), CLICOLOR=0
// and TERM=dumb.
func Profile(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	return os.Getenv("CLICOLOR") != "0" && os.Getenv("TERM") != "dumb"
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Theme holds lipgloss styles for benchmark report output.
type Theme struct {
	Header    lipgloss.Style
	Benchmark lipgloss.Style
	Failed    lipgloss.Style
	Warning   lipgloss.Style
	Muted     lipgloss.Style
}

// NewTheme creates a Theme. When color is false, all styles are empty (no
// ANSI codes).
func NewTheme(color bool) Theme {
	if !color {
		return Theme{}
	}

	return Theme{
		Header:    lipgloss.NewStyle().Bold(true),
		Benchmark: lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // bright cyan
		Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // bright yellow
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // gray
	}
}
