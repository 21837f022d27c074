// Package sweep expands a benchmark definition's declared arguments into
// concrete instances sharing one body.
package sweep

import (
	"fmt"
	"strings"

	"github.com/smykla-skalski/nanomark/pkg/bench"
)

// Instance is one concrete expansion of a definition: the instance name
// (base name plus argument suffix) and the argument tuple its runs receive.
type Instance struct {
	Name string
	Args []int64
}

// Expand generates the instances of a definition. Explicit tuples expand one
// instance each; geometric ranges expand one instance per generated value
// (lo, lo*mult, ... truncated at hi). A definition with neither runs as a
// single argument-less instance.
func Expand(def *bench.Definition) []Instance {
	instances := make([]Instance, 0, len(def.ArgTuples))

	for _, tuple := range def.ArgTuples {
		instances = append(instances, Instance{
			Name: instanceName(def.Name, tuple),
			Args: tuple,
		})
	}

	for _, values := range expandRanges(def) {
		instances = append(instances, Instance{
			Name: instanceName(def.Name, values),
			Args: values,
		})
	}

	if len(instances) == 0 {
		instances = append(instances, Instance{Name: def.Name})
	}

	return instances
}

func expandRanges(def *bench.Definition) [][]int64 {
	var tuples [][]int64

	for _, r := range def.Ranges {
		for _, v := range GeometricValues(r.Lo, r.Hi, r.Mult) {
			tuples = append(tuples, []int64{v})
		}
	}

	return tuples
}

// GeometricValues generates lo, lo*mult, lo*mult^2, ... inclusive of both
// endpoints when the progression lands on them; values exceeding hi are
// excluded.
func GeometricValues(lo, hi, mult int64) []int64 {
	if lo <= 0 || hi < lo || mult < 2 {
		return nil
	}

	var values []int64

	for v := lo; v <= hi; v *= mult {
		values = append(values, v)

		// Overflow guard: a further step would wrap.
		if v > hi/mult {
			break
		}
	}

	return values
}

func instanceName(base string, args []int64) string {
	if len(args) == 0 {
		return base
	}

	var b strings.Builder

	b.WriteString(base)

	for _, a := range args {
		fmt.Fprintf(&b, "/%d", a)
	}

	return b.String()
}
