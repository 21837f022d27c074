package main

import (
	"math"
	"math/bits"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smykla-skalski/nanomark/pkg/bench"
)

// seedCounter hands every run its own generator seed so threaded runs never
// share PRNG state.
var seedCounter atomic.Uint64

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(seedCounter.Add(1), 0x9e3779b97f4a7c15))
}

// i32Addition reports near-zero per-iteration time: nothing escapes, so the
// compiler eliminates the addition. Kept as the dead-code demonstration.
func i32Addition(s *bench.State) {
	var a, b, c int32

	for s.Next() {
		c = a + b
	}

	_ = c
}

func i32AdditionRandom(s *bench.State) {
	rng := newRand()

	var c int32

	for s.Next() {
		c = rng.Int32() + rng.Int32()
	}

	_ = c
}

func i32AdditionRandomAndUsed(s *bench.State) {
	rng := newRand()
	a, b := rng.Int32(), rng.Int32()

	var c int32

	for s.Next() {
		a++
		b++
		c = a + b
		bench.Escape(c)
	}
}

// sin(x) ~ x - x^3/3! + x^5/5!, first three terms of the Maclaurin series.
func f64SinMaclaurin(s *bench.State) {
	argument := float64(newRand().Int32())

	var result float64

	for s.Next() {
		result = argument - math.Pow(argument, 3)/6 + math.Pow(argument, 5)/120
		argument += 1.0
		result += argument
		bench.Escape(result)
	}
}

// Same series with the generic power calls spelled out as multiplications.
func f64SinMaclaurinPowless(s *bench.State) {
	argument := float64(newRand().Int32())

	var result float64

	for s.Next() {
		result = argument - (argument*argument*argument)/6.0 +
			(argument*argument*argument*argument*argument)/120.0
		argument += 1.0
		result += argument
		bench.Escape(result)
	}
}

func i64Division(s *bench.State) {
	rng := newRand()
	a, b := int64(rng.Int32()), int64(rng.Int32())

	var c int64

	for s.Next() {
		a++
		b++
		c = a / b
		bench.Escape(c)
	}
}

// opaqueDivisor is a package-level var so the compiler cannot treat the
// divisor as a constant and strength-reduce the division.
var opaqueDivisor int64 = math.MaxInt32

func i64DivisionByOpaque(s *bench.State) {
	a := int64(newRand().Int32())

	var c int64

	for s.Next() {
		a++
		c = a / opaqueDivisor
		bench.Escape(c)
	}
}

func i64DivisionByConst(s *bench.State) {
	const divisor = math.MaxInt32

	a := int64(newRand().Int32())

	var c int64

	for s.Next() {
		a++
		c = a / divisor
		bench.Escape(c)
	}
}

func u64PopulationCount(s *bench.State) {
	a := uint64(newRand().Int32())

	for s.Next() {
		a++
		bench.Escape(bits.OnesCount64(a))
	}
}

// sorting sorts Arg(0) elements from reversed order. Arg(1) selects whether
// the reversal is measured or excluded via pause/resume.
func sorting(s *bench.State) {
	count := s.Arg(0)
	includePreprocessing := s.Arg(1) != 0

	array := ascending(count)

	for s.Next() {
		if !includePreprocessing {
			s.PauseTiming()
		}

		// Reversed order is the classical worst case, but not the only one.
		slices.Reverse(array)

		if !includePreprocessing {
			s.ResumeTiming()
		}

		slices.Sort(array)
		bench.Escape(len(array))
	}
}

// sortingFixed is the branch-free variant: the preprocessing decision is
// baked into the registered closure instead of read per run.
func sortingFixed(includePreprocessing bool) bench.Body {
	return func(s *bench.State) {
		array := ascending(s.Arg(0))

		for s.Next() {
			if !includePreprocessing {
				s.PauseTiming()
			}

			slices.Reverse(array)

			if !includePreprocessing {
				s.ResumeTiming()
			}

			slices.Sort(array)
			bench.Escape(len(array))
		}
	}
}

func upperCostOfBranching(s *bench.State) {
	a := newRand().Int32()

	var c int32

	for s.Next() {
		preferAddition := (a*math.MaxInt32^c)%2 == 0

		a++

		if preferAddition {
			c += a
		} else {
			c -= a
		}

		bench.Escape(c)
	}
}

func upperCostOfPausing(s *bench.State) {
	a := newRand().Int32()

	var c int32

	for s.Next() {
		s.PauseTiming()
		a++
		s.ResumeTiming()

		c += a
		bench.Escape(c)
	}
}

const bytesPerElement = 4 // sizeof int32

// supersort reverses and re-sorts Arg(0) elements per iteration, reporting
// throughput counters and the input size for complexity fitting.
func supersort(sortFn func([]int32)) bench.Body {
	return func(s *bench.State) {
		count := s.Arg(0)
		array := ascending(count)

		for s.Next() {
			slices.Reverse(array)
			sortFn(array)
			bench.Escape(len(array))
		}

		s.SetComplexityN(count)
		s.RecordItems(count * s.Iterations())
		s.RecordBytes(count * s.Iterations() * bytesPerElement)
	}
}

func ascending(count int64) []int32 {
	array := make([]int32, count)
	for i := range array {
		array[i] = int32(i + 1)
	}

	return array
}

func sequentialSort(data []int32) {
	slices.Sort(data)
}

// minParallelSort is the size below which chunking costs more than it saves.
const minParallelSort = 1 << 14

// parallelSort sorts chunks concurrently, one per available CPU, then merges
// bottom-up. Small inputs fall through to the sequential sort.
func parallelSort(data []int32) {
	n := len(data)
	workers := runtime.GOMAXPROCS(0)

	if workers < 2 || n < minParallelSort {
		slices.Sort(data)

		return
	}

	chunk := (n + workers - 1) / workers

	var group errgroup.Group

	for lo := 0; lo < n; lo += chunk {
		part := data[lo:min(lo+chunk, n)]

		group.Go(func() error {
			slices.Sort(part)

			return nil
		})
	}

	_ = group.Wait()

	src, dst := data, make([]int32, n)

	for width := chunk; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeInto(dst[lo:hi], src[lo:mid], src[mid:hi])
		}

		src, dst = dst, src
	}

	if &src[0] != &data[0] {
		copy(data, src)
	}
}

func mergeInto(dst, a, b []int32) {
	i, j := 0, 0

	for k := range dst {
		switch {
		case i == len(a):
			dst[k] = b[j]
			j++
		case j == len(b) || a[i] <= b[j]:
			dst[k] = a[i]
			i++
		default:
			dst[k] = b[j]
			j++
		}
	}
}

//nolint:mnd // argument tuples and sweep bounds are the benchmark matrix
func init() {
	bench.Register("i32_addition", i32Addition)
	bench.Register("i32_addition_random", i32AdditionRandom)
	bench.Register("i32_addition_random_and_used", i32AdditionRandomAndUsed)

	// Generator state is per-run, so the threaded variants measure pure
	// scheduling overhead rather than hidden PRNG lock contention.
	bench.Register("i32_addition_random/threads:8", i32AdditionRandom, bench.Threads(8))
	bench.Register("i32_addition_random_and_used/threads:8", i32AdditionRandomAndUsed, bench.Threads(8))

	bench.Register("f64_sin_maclaurin", f64SinMaclaurin)
	bench.Register("f64_sin_maclaurin_powless", f64SinMaclaurinPowless)

	bench.Register("i64_division", i64Division)
	bench.Register("i64_division_by_opaque", i64DivisionByOpaque)
	bench.Register("i64_division_by_const", i64DivisionByConst)

	bench.Register("u64_population_count", u64PopulationCount, bench.MinTime(10*time.Second))

	bench.Register("sorting", sorting,
		bench.Args(3, 0), bench.Args(3, 1),
		bench.Args(4, 0), bench.Args(4, 1))

	bench.Register("upper_cost_of_branching", upperCostOfBranching)
	bench.Register("upper_cost_of_pausing", upperCostOfPausing)

	bench.Register("sorting_fixed/excluded", sortingFixed(false), bench.Args(3), bench.Args(4))
	bench.Register("sorting_fixed/included", sortingFixed(true), bench.Args(3), bench.Args(4))

	bench.Register("supersort/seq", supersort(sequentialSort),
		bench.Range(1<<20, 1<<32),
		bench.RangeMultiplier(8),
		bench.MinTime(10*time.Second),
		bench.Complexity(bench.ShapeNLogN))

	bench.Register("supersort/par", supersort(parallelSort),
		bench.Range(1<<20, 1<<32),
		bench.RangeMultiplier(8),
		bench.MinTime(10*time.Second),
		bench.Complexity(bench.ShapeNLogN))

	// CPU time keeps accumulating on every worker; wall span is what a user
	// actually waits for a parallel sort.
	bench.Register("supersort/par/real_time", supersort(parallelSort),
		bench.Range(1<<20, 1<<32),
		bench.RangeMultiplier(8),
		bench.MinTime(10*time.Second),
		bench.Complexity(bench.ShapeNLogN),
		bench.UseRealTime())
}
