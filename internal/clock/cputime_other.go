//go:build !linux

package clock

// ThreadCPUNow falls back to the wall clock on platforms without a portable
// per-thread CPU clock. CPU-time aggregates degrade to wall-time aggregates
// there; real-time mode is unaffected.
func (s System) ThreadCPUNow() int64 {
	return s.WallNow()
}
