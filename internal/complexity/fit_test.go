package complexity_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanomark/internal/complexity"
	"github.com/smykla-skalski/nanomark/pkg/bench"
)

func TestComplexity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Complexity Suite")
}

// nLogNPoints samples t = coeff * N * log2(N) at a few input sizes.
func nLogNPoints(coeff float64) []complexity.Point {
	sizes := []int64{1 << 10, 1 << 13, 1 << 16, 1 << 19}
	points := make([]complexity.Point, 0, len(sizes))

	for _, n := range sizes {
		points = append(points, complexity.Point{
			N:    n,
			Time: coeff * float64(n) * math.Log2(float64(n)),
		})
	}

	return points
}

var _ = Describe("FitCurve", func() {
	It("should recover the coefficient for a declared shape", func() {
		fit, err := complexity.FitCurve(nLogNPoints(3.0), bench.ShapeNLogN)

		Expect(err).ToNot(HaveOccurred())
		Expect(fit.Shape).To(Equal(bench.ShapeNLogN))
		Expect(fit.Coefficient).To(BeNumerically("~", 3.0, 1e-9))
		Expect(fit.RMSE).To(BeNumerically("~", 0, 1e-6))
	})

	It("should pick the best shape automatically", func() {
		fit, err := complexity.FitCurve(nLogNPoints(3.0), bench.ShapeAuto)

		Expect(err).ToNot(HaveOccurred())
		Expect(fit.Shape).To(Equal(bench.ShapeNLogN))
	})

	It("should fit a declared shape even when it matches poorly", func() {
		fit, err := complexity.FitCurve(nLogNPoints(3.0), bench.ShapeOne)

		Expect(err).ToNot(HaveOccurred())
		Expect(fit.Shape).To(Equal(bench.ShapeOne))
		Expect(fit.RMSE).To(BeNumerically(">", 0))
	})

	It("should require at least two distinct input sizes", func() {
		points := []complexity.Point{
			{N: 1024, Time: 100},
			{N: 1024, Time: 110},
		}

		_, err := complexity.FitCurve(points, bench.ShapeAuto)
		Expect(err).To(MatchError(bench.ErrInsufficientData))
	})
})

var _ = Describe("Value", func() {
	It("should evaluate candidate cost functions at base-2 logarithms", func() {
		Expect(complexity.Value(bench.ShapeOne, 8)).To(Equal(1.0))
		Expect(complexity.Value(bench.ShapeLogN, 8)).To(Equal(3.0))
		Expect(complexity.Value(bench.ShapeN, 8)).To(Equal(8.0))
		Expect(complexity.Value(bench.ShapeNLogN, 8)).To(Equal(24.0))
		Expect(complexity.Value(bench.ShapeNSquared, 8)).To(Equal(64.0))
		Expect(complexity.Value(bench.ShapeNCubed, 8)).To(Equal(512.0))
	})
})
