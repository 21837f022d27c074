package bench_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanomark/pkg/bench"
)

func TestBench(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bench Suite")
}

// fakeClock is a manually advanced clock so tests control every reading.
type fakeClock struct {
	wall int64
	cpu  int64
}

func (c *fakeClock) WallNow() int64      { return c.wall }
func (c *fakeClock) ThreadCPUNow() int64 { return c.cpu }

func (c *fakeClock) advance(wall, cpu time.Duration) {
	c.wall += int64(wall)
	c.cpu += int64(cpu)
}

var _ = Describe("State", func() {
	var clk *fakeClock

	BeforeEach(func() {
		clk = &fakeClock{}
	})

	Describe("Next", func() {
		It("should run exactly the budgeted number of iterations", func() {
			state := bench.NewState(nil, 3, clk)

			runs := 0
			for state.Next() {
				runs++
			}

			Expect(runs).To(Equal(3))
			Expect(state.Sample().Iterations).To(Equal(int64(3)))
		})

		It("should report a zero-length run for a zero budget", func() {
			state := bench.NewState(nil, 0, clk)

			Expect(state.Next()).To(BeFalse())

			sample := state.Sample()
			Expect(sample.Iterations).To(BeZero())
			Expect(sample.Err).ToNot(HaveOccurred())
		})

		It("should measure only time spent inside the loop", func() {
			// Setup cost before the session starts must not count.
			clk.advance(time.Hour, time.Hour)

			state := bench.NewState(nil, 2, clk)
			for state.Next() {
				clk.advance(10*time.Millisecond, 7*time.Millisecond)
			}

			sample := state.Sample()
			Expect(sample.Wall).To(Equal(20 * time.Millisecond))
			Expect(sample.CPU).To(Equal(14 * time.Millisecond))
			Expect(sample.Err).ToNot(HaveOccurred())
		})
	})

	Describe("PauseTiming and ResumeTiming", func() {
		It("should exclude paused intervals from the measurement", func() {
			state := bench.NewState(nil, 1, clk)

			for state.Next() {
				clk.advance(5*time.Millisecond, 5*time.Millisecond)

				state.PauseTiming()
				clk.advance(100*time.Millisecond, 0)
				state.ResumeTiming()

				clk.advance(5*time.Millisecond, 5*time.Millisecond)
			}

			sample := state.Sample()
			Expect(sample.Wall).To(Equal(10 * time.Millisecond))
			Expect(sample.CPU).To(Equal(10 * time.Millisecond))
		})

		It("should fail the run when pausing twice in a row", func() {
			state := bench.NewState(nil, 10, clk)
			state.Next()

			state.PauseTiming()
			state.PauseTiming()

			Expect(state.Next()).To(BeFalse())
			Expect(state.Sample().Err).To(MatchError(bench.ErrUsage))
		})

		It("should fail the run when resuming while timing is running", func() {
			state := bench.NewState(nil, 10, clk)
			state.Next()

			state.ResumeTiming()

			Expect(state.Next()).To(BeFalse())
			Expect(state.Sample().Err).To(MatchError(bench.ErrUsage))
		})

		It("should fail the run when pausing outside the measurement loop", func() {
			state := bench.NewState(nil, 10, clk)

			state.PauseTiming()

			Expect(state.Next()).To(BeFalse())
			Expect(state.Sample().Err).To(MatchError(bench.ErrUsage))
		})

		It("should capture end readings when a usage error aborts the run", func() {
			state := bench.NewState(nil, 10, clk)

			clk.advance(50*time.Millisecond, 50*time.Millisecond)
			state.Next()
			clk.advance(5*time.Millisecond, 5*time.Millisecond)

			state.ResumeTiming()

			Expect(state.Next()).To(BeFalse())

			sample := state.Sample()
			Expect(sample.Err).To(MatchError(bench.ErrUsage))
			Expect(sample.Wall).To(Equal(5 * time.Millisecond))
			Expect(sample.CPU).To(Equal(5 * time.Millisecond))
		})

		It("should fail a run that finishes while paused", func() {
			state := bench.NewState(nil, 1, clk)
			state.Next()
			state.PauseTiming()

			for state.Next() {
			}

			Expect(state.Sample().Err).To(MatchError(bench.ErrUsage))
		})
	})

	Describe("counters", func() {
		It("should accumulate items and bytes", func() {
			state := bench.NewState(nil, 2, clk)
			for state.Next() {
				state.RecordItems(3)
				state.RecordBytes(12)
			}

			sample := state.Sample()
			Expect(sample.Items).To(Equal(int64(6)))
			Expect(sample.Bytes).To(Equal(int64(24)))
		})

		It("should carry the declared input size", func() {
			state := bench.NewState(nil, 1, clk)
			for state.Next() {
				state.SetComplexityN(4096)
			}

			Expect(state.Sample().ComplexityN).To(Equal(int64(4096)))
		})
	})

	Describe("Arg", func() {
		It("should return arguments by position and zero out of range", func() {
			state := bench.NewState([]int64{3, 1}, 1, clk)

			Expect(state.Arg(0)).To(Equal(int64(3)))
			Expect(state.Arg(1)).To(Equal(int64(1)))
			Expect(state.Arg(2)).To(BeZero())
			Expect(state.Arg(-1)).To(BeZero())
		})
	})
})
