package runner_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanomark/internal/clock"
	"github.com/smykla-skalski/nanomark/internal/runner"
	"github.com/smykla-skalski/nanomark/pkg/bench"
	"github.com/smykla-skalski/nanomark/pkg/config"
	"github.com/smykla-skalski/nanomark/pkg/logger"
)

func TestRunner(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Runner Suite")
}

func newRunner(minTime time.Duration, repetitions int) *runner.Runner {
	cfg := &config.Config{
		MinTime:           config.Duration(minTime),
		Repetitions:       repetitions,
		IterationCap:      1 << 16,
		VarianceThreshold: 0.10,
	}

	return runner.New(cfg, clock.New(), logger.NewNoOpLogger())
}

func spin(s *bench.State) {
	for s.Next() {
	}
}

var _ = Describe("Runner", func() {
	var registry *bench.Registry

	BeforeEach(func() {
		registry = bench.NewRegistry()
	})

	It("should produce one result per argument tuple", func() {
		def, err := registry.Register("sorting", spin,
			bench.Args(3, 0), bench.Args(3, 1))
		Expect(err).ToNot(HaveOccurred())

		results := newRunner(time.Microsecond, 1).Run([]*bench.Definition{def})

		Expect(results).To(HaveLen(2))
		Expect(results[0].Name).To(Equal("sorting/3/0"))
		Expect(results[0].Arguments).To(Equal([]int64{3, 0}))
		Expect(results[1].Name).To(Equal("sorting/3/1"))
		Expect(results[0].Failed).To(BeFalse())
		Expect(results[0].Iterations).To(BeNumerically(">", 0))
	})

	It("should keep running after a failed instance", func() {
		body := func(s *bench.State) {
			if s.Arg(0) == 1 {
				s.ResumeTiming()
			}

			for s.Next() {
			}
		}

		def, err := registry.Register("misuse", body, bench.Args(1), bench.Args(2))
		Expect(err).ToNot(HaveOccurred())

		results := newRunner(time.Microsecond, 1).Run([]*bench.Definition{def})

		Expect(results).To(HaveLen(2))
		Expect(results[0].Failed).To(BeTrue())
		Expect(results[0].FailureReason).To(ContainSubstring("ResumeTiming"))
		Expect(results[1].Failed).To(BeFalse())
	})

	It("should run the requested repetitions", func() {
		def, err := registry.Register("repeated", spin)
		Expect(err).ToNot(HaveOccurred())

		results := newRunner(time.Microsecond, 3).Run([]*bench.Definition{def})

		Expect(results).To(HaveLen(1))
		Expect(results[0].Repetitions).To(Equal(3))
	})

	It("should attach a complexity fit across a sweep", func() {
		body := func(s *bench.State) {
			for s.Next() {
			}

			s.SetComplexityN(s.Arg(0))
		}

		def, err := registry.Register("swept", body,
			bench.Range(1<<10, 1<<16), bench.Complexity(bench.ShapeAuto))
		Expect(err).ToNot(HaveOccurred())

		results := newRunner(time.Microsecond, 1).Run([]*bench.Definition{def})

		Expect(results).To(HaveLen(3))

		for _, res := range results {
			Expect(res.Failed).To(BeFalse())
			Expect(res.Complexity).ToNot(BeNil())
			Expect(res.ComplexityNote).To(BeEmpty())
		}
	})

	It("should note insufficient data for a single-size family", func() {
		body := func(s *bench.State) {
			for s.Next() {
			}

			s.SetComplexityN(s.Arg(0))
		}

		def, err := registry.Register("single", body,
			bench.Args(1024), bench.Complexity(bench.ShapeNLogN))
		Expect(err).ToNot(HaveOccurred())

		results := newRunner(time.Microsecond, 1).Run([]*bench.Definition{def})

		Expect(results).To(HaveLen(1))
		Expect(results[0].Complexity).To(BeNil())
		Expect(results[0].ComplexityNote).To(Equal("insufficient data"))
	})

	It("should compute throughput from the recorded counters", func() {
		body := func(s *bench.State) {
			for s.Next() {
			}

			s.RecordItems(s.Iterations())
			s.RecordBytes(s.Iterations() * 4)
		}

		def, err := registry.Register("throughput", body, bench.UseRealTime())
		Expect(err).ToNot(HaveOccurred())

		results := newRunner(time.Millisecond, 1).Run([]*bench.Definition{def})

		Expect(results).To(HaveLen(1))
		Expect(results[0].Failed).To(BeFalse())
		Expect(results[0].ItemsPerSecond).To(BeNumerically(">", 0))
		Expect(results[0].BytesPerSecond).To(BeNumerically(">", 0))
	})

	It("should let a panicking body reach the caller", func() {
		body := func(s *bench.State) {
			for s.Next() {
				panic("boom")
			}
		}

		def, err := registry.Register("crashing", body, bench.Threads(2))
		Expect(err).ToNot(HaveOccurred())

		run := func() {
			newRunner(time.Microsecond, 1).Run([]*bench.Definition{def})
		}

		Expect(run).To(PanicWith("boom"))
	})

	It("should carry the thread count into the result", func() {
		def, err := registry.Register("threaded", spin, bench.Threads(4))
		Expect(err).ToNot(HaveOccurred())

		results := newRunner(time.Microsecond, 1).Run([]*bench.Definition{def})

		Expect(results).To(HaveLen(1))
		Expect(results[0].Threads).To(Equal(4))
		Expect(results[0].Failed).To(BeFalse())
	})
})
