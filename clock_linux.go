//go:build linux

package rgmpcore

import "golang.org/x/sys/unix"

// monotonicClock reads CLOCK_MONOTONIC directly via golang.org/x/sys/unix,
// producing a raw Timespec rather than an opaque time.Time so that
// TsToTicks/TicksToTs apply without a lossy round trip through
// time.Duration.
type monotonicClock struct{}

// SystemClock is the production Clock on Linux.
var SystemClock Clock = monotonicClock{}

func (monotonicClock) Now() Timespec {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		panic("rgmpcore: clock_gettime(CLOCK_MONOTONIC): " + err.Error())
	}
	return Timespec{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}
}
