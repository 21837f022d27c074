package bench

var (
	// alwaysFalse is never set. The compiler cannot prove that across the
	// call boundary, so the conditional store below survives optimization.
	alwaysFalse bool

	escapeSink any //nolint:unused // written only on the never-taken branch
)

// Escape is the optimization barrier for benchmark bodies. The value is
// passed across a call the compiler will not inline, so the computation that
// produced it must be materialized even when the result is otherwise unused:
//
//	for s.Next() {
//		bench.Escape(a + b)
//	}
//
// Escape has no semantic effect on the program. It cannot rescue a loop whose
// body folds to a constant before the call is reached; inspect the generated
// code on the target toolchain when a benchmark reports implausibly low times.
//
//go:noinline
func Escape[T any](v T) {
	if alwaysFalse {
		escapeSink = v
	}
}
