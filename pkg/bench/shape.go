package bench

//go:generate enumer -type=Shape -trimprefix=Shape -transform=lower -json -text

// Shape identifies an asymptotic cost curve for complexity fitting.
type Shape int

const (
	// ShapeNone disables complexity fitting.
	ShapeNone Shape = iota

	// ShapeAuto fits every candidate curve and keeps the best match.
	ShapeAuto

	// ShapeOne is constant cost, independent of input size.
	ShapeOne

	// ShapeLogN is logarithmic cost (base 2).
	ShapeLogN

	// ShapeN is linear cost.
	ShapeN

	// ShapeNLogN is linearithmic cost.
	ShapeNLogN

	// ShapeNSquared is quadratic cost.
	ShapeNSquared

	// ShapeNCubed is cubic cost.
	ShapeNCubed
)
