package bench_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanomark/pkg/bench"
)

func noop(s *bench.State) {
	for s.Next() {
	}
}

var _ = Describe("Registry", func() {
	var registry *bench.Registry

	BeforeEach(func() {
		registry = bench.NewRegistry()
	})

	It("should reject duplicate names", func() {
		_, err := registry.Register("sorting", noop)
		Expect(err).ToNot(HaveOccurred())

		_, err = registry.Register("sorting", noop)
		Expect(err).To(MatchError(bench.ErrDuplicateName))
	})

	It("should return definitions in registration order", func() {
		for _, name := range []string{"c", "a", "b"} {
			_, err := registry.Register(name, noop)
			Expect(err).ToNot(HaveOccurred())
		}

		defs := registry.Definitions()
		Expect(defs).To(HaveLen(3))
		Expect(defs[0].Name).To(Equal("c"))
		Expect(defs[1].Name).To(Equal("a"))
		Expect(defs[2].Name).To(Equal("b"))
		Expect(registry.Count()).To(Equal(3))
	})

	Describe("Match", func() {
		BeforeEach(func() {
			for _, name := range []string{"supersort/seq", "supersort/par", "sorting"} {
				_, err := registry.Register(name, noop)
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should match glob patterns against names", func() {
			defs, err := registry.Match("supersort/**")
			Expect(err).ToNot(HaveOccurred())
			Expect(defs).To(HaveLen(2))
			Expect(defs[0].Name).To(Equal("supersort/seq"))
			Expect(defs[1].Name).To(Equal("supersort/par"))
		})

		It("should return everything for an empty pattern", func() {
			defs, err := registry.Match("")
			Expect(err).ToNot(HaveOccurred())
			Expect(defs).To(HaveLen(3))
		})

		It("should reject malformed patterns", func() {
			_, err := registry.Match("[")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Shape", func() {
	It("should parse shape names", func() {
		shape, err := bench.ShapeString("nlogn")
		Expect(err).ToNot(HaveOccurred())
		Expect(shape).To(Equal(bench.ShapeNLogN))
	})

	It("should reject unknown shape names", func() {
		_, err := bench.ShapeString("exponential")
		Expect(err).To(HaveOccurred())
	})

	It("should round-trip through text", func() {
		text, err := bench.ShapeNSquared.MarshalText()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(text)).To(Equal("nsquared"))

		var shape bench.Shape
		Expect(shape.UnmarshalText(text)).To(Succeed())
		Expect(shape).To(Equal(bench.ShapeNSquared))
	})
})
