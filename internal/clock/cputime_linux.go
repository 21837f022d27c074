//go:build linux

package clock

import "golang.org/x/sys/unix"

// ThreadCPUNow returns CPU nanoseconds charged to the calling OS thread via
// CLOCK_THREAD_CPUTIME_ID. Callers that compare readings across calls must
// stay locked to one OS thread (runtime.LockOSThread); the thread
// coordinator does this for every worker. Resolution is 1ns nominal, clamped
// by the kernel tick source in practice.
func (System) ThreadCPUNow() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_THREAD_CPUTIME_ID, &ts); err != nil {
		return 0
	}

	return ts.Nano()
}
