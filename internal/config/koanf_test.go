package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanomark/internal/calibrate"
	internalconfig "github.com/smykla-skalski/nanomark/internal/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("KoanfLoader", func() {
	var (
		homeDir string
		workDir string
		loader  *internalconfig.KoanfLoader
	)

	writeGlobal := func(content string) {
		dir := filepath.Join(homeDir, internalconfig.GlobalConfigDir)
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		Expect(os.WriteFile(
			filepath.Join(dir, internalconfig.GlobalConfigFile),
			[]byte(content),
			0o644,
		)).To(Succeed())
	}

	writeProject := func(content string) {
		Expect(os.WriteFile(
			filepath.Join(workDir, internalconfig.ProjectConfigFile),
			[]byte(content),
			0o644,
		)).To(Succeed())
	}

	BeforeEach(func() {
		homeDir = GinkgoT().TempDir()
		workDir = GinkgoT().TempDir()
		loader = internalconfig.NewKoanfLoaderWithDirs(homeDir, workDir)
	})

	It("should apply defaults when no source is present", func() {
		cfg, err := loader.Load(nil)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.MinTime.ToDuration()).To(Equal(500 * time.Millisecond))
		Expect(cfg.Repetitions).To(Equal(1))
		Expect(cfg.IterationCap).To(Equal(int64(calibrate.DefaultIterationCap)))
		Expect(cfg.Format).To(Equal("console"))
		Expect(cfg.Filter).To(BeEmpty())
	})

	It("should layer project config over global config", func() {
		writeGlobal("min_time = \"1s\"\nrepetitions = 5\n")
		writeProject("min_time = \"2s\"\n")

		cfg, err := loader.Load(nil)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.MinTime.ToDuration()).To(Equal(2 * time.Second))
		Expect(cfg.Repetitions).To(Equal(5))
	})

	It("should let environment variables override files", func() {
		writeProject("repetitions = 5\n")
		GinkgoT().Setenv("NANOMARK_REPETITIONS", "7")

		cfg, err := loader.Load(nil)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Repetitions).To(Equal(7))
	})

	It("should give CLI flags the highest precedence", func() {
		writeProject("repetitions = 5\nformat = \"json\"\n")
		GinkgoT().Setenv("NANOMARK_REPETITIONS", "7")

		cfg, err := loader.Load(map[string]any{"repetitions": 9})

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Repetitions).To(Equal(9))
		Expect(cfg.Format).To(Equal("json"))
	})

	It("should load an explicitly requested config file", func() {
		path := filepath.Join(workDir, "custom.toml")
		Expect(os.WriteFile(path, []byte("repetitions = 4\n"), 0o644)).To(Succeed())

		loader.SetProjectConfigPath(path)

		cfg, err := loader.Load(nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Repetitions).To(Equal(4))
	})

	It("should fail when an explicitly requested config file is missing", func() {
		loader.SetProjectConfigPath(filepath.Join(workDir, "missing.toml"))

		_, err := loader.Load(nil)
		Expect(err).To(HaveOccurred())
	})

	It("should reject invalid TOML", func() {
		writeProject("min_time = [broken\n")

		_, err := loader.Load(nil)

		Expect(err).To(MatchError(internalconfig.ErrInvalidTOML))
	})

	It("should backfill zero values with defaults", func() {
		writeProject("repetitions = 0\nvariance_threshold = 0.0\n")

		cfg, err := loader.Load(nil)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Repetitions).To(Equal(1))
		Expect(cfg.VarianceThreshold).To(Equal(0.10))
	})

	It("should resolve config paths under the given directories", func() {
		Expect(loader.GlobalConfigPath()).To(Equal(
			filepath.Join(homeDir, ".nanomark", "config.toml")))
		Expect(loader.ProjectConfigPath()).To(Equal(
			filepath.Join(workDir, ".nanomark.toml")))
	})
})
