package sweep_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanomark/internal/sweep"
	"github.com/smykla-skalski/nanomark/pkg/bench"
)

func TestSweep(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sweep Suite")
}

func noop(s *bench.State) {
	for s.Next() {
	}
}

var _ = Describe("GeometricValues", func() {
	It("should truncate the progression at the upper bound", func() {
		values := sweep.GeometricValues(1<<20, 1<<32, 8)

		Expect(values).To(Equal([]int64{
			1 << 20, 1 << 23, 1 << 26, 1 << 29, 1 << 32,
		}))
	})

	It("should include both endpoints when the progression lands on them", func() {
		Expect(sweep.GeometricValues(1, 1000, 10)).To(Equal([]int64{1, 10, 100, 1000}))
	})

	It("should exclude values past the upper bound", func() {
		Expect(sweep.GeometricValues(3, 100, 4)).To(Equal([]int64{3, 12, 48}))
	})

	It("should reject invalid ranges", func() {
		Expect(sweep.GeometricValues(0, 100, 2)).To(BeNil())
		Expect(sweep.GeometricValues(10, 5, 2)).To(BeNil())
		Expect(sweep.GeometricValues(1, 100, 1)).To(BeNil())
	})
})

var _ = Describe("Expand", func() {
	var registry *bench.Registry

	BeforeEach(func() {
		registry = bench.NewRegistry()
	})

	It("should expand one instance per argument tuple", func() {
		def, err := registry.Register("sorting", noop,
			bench.Args(3, 0), bench.Args(3, 1), bench.Args(4, 0))
		Expect(err).ToNot(HaveOccurred())

		instances := sweep.Expand(def)
		Expect(instances).To(HaveLen(3))
		Expect(instances[0].Name).To(Equal("sorting/3/0"))
		Expect(instances[0].Args).To(Equal([]int64{3, 0}))
		Expect(instances[1].Name).To(Equal("sorting/3/1"))
		Expect(instances[2].Name).To(Equal("sorting/4/0"))
	})

	It("should expand ranges into one instance per generated value", func() {
		def, err := registry.Register("supersort", noop,
			bench.Range(1<<20, 1<<32), bench.RangeMultiplier(8))
		Expect(err).ToNot(HaveOccurred())

		instances := sweep.Expand(def)
		Expect(instances).To(HaveLen(5))
		Expect(instances[0].Name).To(Equal("supersort/1048576"))
		Expect(instances[0].Args).To(Equal([]int64{1 << 20}))
		Expect(instances[4].Args).To(Equal([]int64{1 << 32}))
	})

	It("should run an argument-less definition as a single instance", func() {
		def, err := registry.Register("i32_addition", noop)
		Expect(err).ToNot(HaveOccurred())

		instances := sweep.Expand(def)
		Expect(instances).To(HaveLen(1))
		Expect(instances[0].Name).To(Equal("i32_addition"))
		Expect(instances[0].Args).To(BeEmpty())
	})
})
