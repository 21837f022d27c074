package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Overridden by ldflags on release builds; dev builds fall back to the
// VCS stamp embedded by the toolchain.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

const shortCommitLen = 12

// versionRequested is set by the --version/-v flag.
var versionRequested bool

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version, build and toolchain details for nanomark.",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Print(versionString())
		},
	})

	rootCmd.Flags().BoolVarP(
		&versionRequested,
		"version",
		"v",
		false,
		"Print version information",
	)
}

func checkVersionFlag() {
	if versionRequested {
		fmt.Print(versionString())
		os.Exit(ExitCodeOK)
	}
}

func versionString() string {
	rev, modified := buildRevision()

	var b strings.Builder

	fmt.Fprintf(&b, "nanomark %s\n", version)

	if rev != "" {
		fmt.Fprintf(&b, "  commit:   %s", rev)

		if modified {
			b.WriteString(" (modified)")
		}

		b.WriteString("\n")
	}

	if date != "" {
		fmt.Fprintf(&b, "  built:    %s\n", date)
	}

	fmt.Fprintf(&b, "  go:       %s\n", runtime.Version())
	fmt.Fprintf(&b, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	return b.String()
}

// buildRevision prefers the ldflags commit, then the VCS stamp.
func buildRevision() (rev string, modified bool) {
	if commit != "" {
		return commit, false
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
			if len(rev) > shortCommitLen {
				rev = rev[:shortCommitLen]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	return rev, modified
}
