// Package complexity fits (input size, per-iteration time) samples from a
// parameter sweep to asymptotic cost curves.
package complexity

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/nanomark/pkg/bench"
)

// Point is one (input size, per-iteration time) sample. Time is in
// nanoseconds; the unit cancels out of shape selection and only scales the
// coefficient.
type Point struct {
	N    int64
	Time float64
}

// Fit is a fitted curve: the shape, the least-squares coefficient, and the
// root-mean-square error of the residuals.
type Fit struct {
	Shape       bench.Shape
	Coefficient float64
	RMSE        float64
}

// candidates are the shapes tried for an auto fit, cheapest curve first.
var candidates = []bench.Shape{
	bench.ShapeOne,
	bench.ShapeLogN,
	bench.ShapeN,
	bench.ShapeNLogN,
	bench.ShapeNSquared,
	bench.ShapeNCubed,
}

// Value evaluates a shape's cost function at input size n. Logarithms are
// base 2.
func Value(shape bench.Shape, n float64) float64 {
	switch shape {
	case bench.ShapeLogN:
		return math.Log2(n)
	case bench.ShapeN:
		return n
	case bench.ShapeNLogN:
		return n * math.Log2(n)
	case bench.ShapeNSquared:
		return n * n
	case bench.ShapeNCubed:
		return n * n * n
	default:
		return 1
	}
}

// FitCurve fits the points to the declared shape, or to every candidate when
// the shape is ShapeAuto, keeping the fit with the smallest RMSE. At least
// two distinct input sizes are required.
func FitCurve(points []Point, declared bench.Shape) (Fit, error) {
	if err := validate(points); err != nil {
		return Fit{}, err
	}

	if declared != bench.ShapeAuto {
		return fitShape(points, declared), nil
	}

	best := fitShape(points, candidates[0])
	for _, shape := range candidates[1:] {
		if fit := fitShape(points, shape); fit.RMSE < best.RMSE {
			best = fit
		}
	}

	return best, nil
}

func validate(points []Point) error {
	distinct := make(map[int64]struct{}, len(points))
	for _, p := range points {
		distinct[p.N] = struct{}{}
	}

	if len(distinct) < 2 {
		return errors.Wrapf(bench.ErrInsufficientData,
			"complexity fit needs at least 2 distinct input sizes, got %d", len(distinct))
	}

	return nil
}

// fitShape computes the closed-form least-squares coefficient
// C = sum(t*f(N)) / sum(f(N)^2) and the residual RMSE for one shape.
func fitShape(points []Point, shape bench.Shape) Fit {
	var num, den float64

	for _, p := range points {
		f := Value(shape, float64(p.N))
		num += p.Time * f
		den += f * f
	}

	coeff := num / den

	var sqErr float64

	for _, p := range points {
		d := p.Time - coeff*Value(shape, float64(p.N))
		sqErr += d * d
	}

	return Fit{
		Shape:       shape,
		Coefficient: coeff,
		RMSE:        math.Sqrt(sqErr / float64(len(points))),
	}
}
