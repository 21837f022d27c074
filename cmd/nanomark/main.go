// Package main provides the CLI entry point for nanomark.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/nanomark/internal/clock"
	"github.com/smykla-skalski/nanomark/internal/color"
	internalconfig "github.com/smykla-skalski/nanomark/internal/config"
	"github.com/smykla-skalski/nanomark/internal/reporter"
	"github.com/smykla-skalski/nanomark/internal/runner"
	"github.com/smykla-skalski/nanomark/pkg/bench"
	"github.com/smykla-skalski/nanomark/pkg/config"
	"github.com/smykla-skalski/nanomark/pkg/logger"
)

const (
	// ExitCodeOK indicates all benchmarks completed.
	ExitCodeOK = 0

	// ExitCodeError indicates a setup failure or failed benchmarks.
	ExitCodeError = 1

	// ExitCodeCrash indicates an unexpected panic occurred.
	ExitCodeCrash = 3
)

var (
	filterPattern string
	formatName    string
	minTimeFlag   string
	repetitions   int
	configPath    string
	listOnly      bool
	debugMode     bool
	traceMode     bool
	noColorFlag   bool
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, debug.Stack())

			exitCode = ExitCodeCrash
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return ExitCodeError
	}

	return ExitCodeOK
}

var rootCmd = &cobra.Command{
	Use:   "nanomark",
	Short: "Micro-benchmark execution harness",
	Long: `Micro-benchmark execution harness - calibrates iteration counts, measures
wall and per-thread CPU time, sweeps parameters and fits asymptotic complexity.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		checkVersionFlag()
	},
	RunE:              run,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.Flags().StringVarP(
		&filterPattern,
		"filter",
		"f",
		"",
		"Glob pattern selecting which benchmarks run (e.g. 'supersort/**')",
	)
	rootCmd.Flags().StringVarP(
		&formatName,
		"format",
		"o",
		"",
		"Report format: console, json or csv (default: console)",
	)
	rootCmd.Flags().StringVar(
		&minTimeFlag,
		"min-time",
		"",
		"Minimum measured duration per benchmark (default: 500ms)",
	)
	rootCmd.Flags().IntVarP(
		&repetitions,
		"repetitions",
		"r",
		0,
		"Repetitions per calibrated benchmark (default: 1)",
	)
	rootCmd.Flags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to project configuration file (default: .nanomark.toml)",
	)
	rootCmd.Flags().BoolVarP(
		&listOnly,
		"list",
		"l",
		false,
		"List matching benchmarks without running them",
	)
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging on stderr")
	rootCmd.Flags().BoolVar(&traceMode, "trace", false, "Enable trace logging on stderr")

	rootCmd.PersistentFlags().BoolVar(
		&noColorFlag,
		"no-color",
		false,
		"Disable colored output",
	)
}

func run(_ *cobra.Command, _ []string) error {
	log := logger.NewWriterLogger(os.Stderr, debugMode, traceMode)

	cfg, err := loadConfig(log)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	defs, err := bench.DefaultRegistry().Match(cfg.Filter)
	if err != nil {
		return err
	}

	log.Info("benchmarks selected",
		"registered", bench.DefaultRegistry().Count(),
		"matched", len(defs),
		"filter", cfg.Filter,
	)

	if listOnly {
		for _, def := range defs {
			fmt.Println(def.Name)
		}

		return nil
	}

	theme := color.NewTheme(color.Profile(noColorFlag) && color.IsTerminal(os.Stdout))

	rep, err := reporter.New(cfg.Format, os.Stdout, theme)
	if err != nil {
		return err
	}

	results := runner.New(cfg, clock.New(), log).Run(defs)

	if err := rep.Report(results); err != nil {
		return errors.Wrap(err, "failed to render report")
	}

	if n := countFailed(results); n > 0 {
		return errors.Newf("%d benchmark(s) failed", n)
	}

	return nil
}

// loadConfig loads configuration from all sources with precedence.
func loadConfig(log logger.Logger) (*config.Config, error) {
	loader, err := internalconfig.NewKoanfLoader()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config loader")
	}

	if configPath != "" {
		loader.SetProjectConfigPath(configPath)
	}

	cfg, err := loader.Load(buildFlagsMap())
	if err != nil {
		return nil, err
	}

	log.Debug("configuration loaded",
		"min_time", cfg.MinTime,
		"repetitions", cfg.Repetitions,
		"format", cfg.Format,
	)

	return cfg, nil
}

// buildFlagsMap converts set CLI flags to a map for the config provider.
// Unset flags are omitted so lower-precedence sources apply.
func buildFlagsMap() map[string]any {
	flags := make(map[string]any)

	if filterPattern != "" {
		flags["filter"] = filterPattern
	}

	if formatName != "" {
		flags["format"] = formatName
	}

	if minTimeFlag != "" {
		flags["min_time"] = minTimeFlag
	}

	if repetitions > 0 {
		flags["repetitions"] = repetitions
	}

	return flags
}

func countFailed(results []bench.Result) int {
	n := 0

	for _, res := range results {
		if res.Failed {
			n++
		}
	}

	return n
}
