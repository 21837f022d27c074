package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/nanomark/internal/calibrate"
	"github.com/smykla-skalski/nanomark/pkg/config"
)

// ErrInvalidTOML is returned when a TOML config file cannot be parsed.
var ErrInvalidTOML = errors.New("invalid TOML")

const (
	// GlobalConfigDir is the directory name for global configuration.
	GlobalConfigDir = ".nanomark"

	// GlobalConfigFile is the name of the global configuration file.
	GlobalConfigFile = "config.toml"

	// ProjectConfigFile is the project configuration file name.
	ProjectConfigFile = ".nanomark.toml"

	// envPrefix namespaces harness environment variables.
	envPrefix = "NANOMARK_"
)

// KoanfLoader loads harness configuration from multiple sources.
// Precedence order (highest to lowest):
// 1. CLI flags
// 2. Environment variables (NANOMARK_*)
// 3. Project config (.nanomark.toml)
// 4. Global config (~/.nanomark/config.toml)
// 5. Defaults
type KoanfLoader struct {
	k       *koanf.Koanf
	homeDir string
	workDir string

	// projectPathOverride replaces the default project config location when
	// set via --config.
	projectPathOverride string
}

// NewKoanfLoader creates a new KoanfLoader with default directories.
func NewKoanfLoader() (*KoanfLoader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get home directory")
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return NewKoanfLoaderWithDirs(homeDir, workDir), nil
}

// NewKoanfLoaderWithDirs creates a new KoanfLoader with custom directories
// (for testing).
func NewKoanfLoaderWithDirs(homeDir, workDir string) *KoanfLoader {
	return &KoanfLoader{
		k:       koanf.New("."),
		homeDir: homeDir,
		workDir: workDir,
	}
}

// Load loads configuration from all sources with precedence.
// Defaults → global TOML → project TOML → env vars → CLI flags.
func (l *KoanfLoader) Load(flags map[string]any) (*config.Config, error) {
	// Reset koanf instance for a fresh load.
	l.k = koanf.New(".")

	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if err := l.loadTOMLFile(l.GlobalConfigPath()); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load global config")
	}

	// An explicitly requested config file must exist; the default project
	// location is optional.
	if err := l.loadTOMLFile(l.ProjectConfigPath()); err != nil &&
		(l.projectPathOverride != "" || !os.IsNotExist(err)) {
		return nil, errors.Wrap(err, "failed to load project config")
	}

	envOpt := env.Opt{
		Prefix:        envPrefix,
		TransformFunc: envTransform,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if len(flags) > 0 {
		if err := l.k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg config.Config
	if err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	applyFloors(&cfg)

	return &cfg, nil
}

// GlobalConfigPath returns the path to the global configuration file.
func (l *KoanfLoader) GlobalConfigPath() string {
	return filepath.Join(l.homeDir, GlobalConfigDir, GlobalConfigFile)
}

// ProjectConfigPath returns the path to the project configuration file.
func (l *KoanfLoader) ProjectConfigPath() string {
	if l.projectPathOverride != "" {
		return l.projectPathOverride
	}

	return filepath.Join(l.workDir, ProjectConfigFile)
}

// SetProjectConfigPath overrides the project configuration file location.
func (l *KoanfLoader) SetProjectConfigPath(path string) {
	l.projectPathOverride = path
}

func (l *KoanfLoader) loadTOMLFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	if err := l.k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
		return errors.Wrapf(ErrInvalidTOML, "%s: %v", path, err)
	}

	return nil
}

// envTransform transforms environment variable names to config paths.
// NANOMARK_VARIANCE_THRESHOLD → variance_threshold
func envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)

	return key, value
}

// applyFloors backfills zero or negative values with defaults so a partial
// config cannot disable calibration.
func applyFloors(cfg *config.Config) {
	if cfg.MinTime <= 0 {
		cfg.MinTime = config.Duration(DefaultMinTime)
	}

	if cfg.Repetitions < 1 {
		cfg.Repetitions = DefaultRepetitions
	}

	if cfg.IterationCap < 1 {
		cfg.IterationCap = calibrate.DefaultIterationCap
	}

	if cfg.VarianceThreshold <= 0 {
		cfg.VarianceThreshold = DefaultVarianceThreshold
	}

	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
}
