package rgmpcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now Timespec
}

func (c *fakeClock) Now() Timespec { return c.now }

type fakeProgrammer struct {
	programmed []Timespec
	canceled   int
}

func (p *fakeProgrammer) Program(deadline Timespec) {
	p.programmed = append(p.programmed, deadline)
}

func (p *fakeProgrammer) Cancel() {
	p.canceled++
}

func TestTsToTicksRoundsHalfUp(t *testing.T) {
	// 1.5ms at 1000 ticks/sec should round up to 2 ticks, not truncate to 1.
	ticks := TsToTicks(Timespec{Sec: 0, Nsec: 1_500_000}, 1000)
	require.Equal(t, int64(2), ticks)

	ticks = TsToTicks(Timespec{Sec: 0, Nsec: 1_400_000}, 1000)
	require.Equal(t, int64(1), ticks)
}

func TestTicksToTsRoundTrip(t *testing.T) {
	const ticksPerSec = 1000
	ts := Timespec{Sec: 3, Nsec: 250_000_000}
	ticks := TsToTicks(ts, ticksPerSec)
	back := TicksToTs(ticks, ticksPerSec)
	require.Equal(t, ts, back)
}

func TestTimespecAddSubNormalizes(t *testing.T) {
	a := Timespec{Sec: 1, Nsec: 900_000_000}
	b := Timespec{Sec: 0, Nsec: 200_000_000}

	sum := a.Add(b)
	require.Equal(t, Timespec{Sec: 2, Nsec: 100_000_000}, sum)

	diff := sum.Sub(a)
	require.Equal(t, b, diff)
}

func TestTimespecBefore(t *testing.T) {
	require.True(t, Timespec{Sec: 1}.Before(Timespec{Sec: 2}))
	require.False(t, Timespec{Sec: 2}.Before(Timespec{Sec: 2}))
	require.True(t, Timespec{Sec: 2, Nsec: 1}.Before(Timespec{Sec: 2, Nsec: 2}))
}

func TestIntervalTimerStartProgramsDeadline(t *testing.T) {
	clock := &fakeClock{now: Timespec{Sec: 10}}
	prog := &fakeProgrammer{}
	fired := false
	timer := NewIntervalTimer(clock, prog, DefaultTicksPerSec, func(Timespec) { fired = true })

	timer.Start(Timespec{Sec: 5})
	require.Equal(t, TimerArmed, timer.State())
	require.Equal(t, []Timespec{{Sec: 15}}, prog.programmed)

	timer.Expire(Timespec{Sec: 15})
	require.True(t, fired)
	require.Equal(t, TimerIdle, timer.State())
}

func TestIntervalTimerCancelReturnsRemaining(t *testing.T) {
	clock := &fakeClock{now: Timespec{Sec: 10}}
	prog := &fakeProgrammer{}
	timer := NewIntervalTimer(clock, prog, DefaultTicksPerSec, nil)

	timer.Start(Timespec{Sec: 5})
	clock.now = Timespec{Sec: 12}

	remaining, err := timer.Cancel()
	require.NoError(t, err)
	require.Equal(t, Timespec{Sec: 3}, remaining)
	require.Equal(t, 1, prog.canceled)
	require.Equal(t, TimerIdle, timer.State())
}

func TestIntervalTimerCancelWithoutArmReturnsZero(t *testing.T) {
	timer := NewIntervalTimer(&fakeClock{}, &fakeProgrammer{}, DefaultTicksPerSec, nil)
	remaining, err := timer.Cancel()
	require.NoError(t, err)
	require.Equal(t, Timespec{}, remaining)
}

func TestIntervalTimerQuantizesDeadlineToTickBoundary(t *testing.T) {
	clock := &fakeClock{now: Timespec{Sec: 0}}
	prog := &fakeProgrammer{}
	timer := NewIntervalTimer(clock, prog, 1000, nil)

	timer.Start(Timespec{Nsec: 1_500_000})
	require.Equal(t, []Timespec{{Nsec: 2_000_000}}, prog.programmed)
}

func TestAlarmTimerStartsAtAbsoluteDeadline(t *testing.T) {
	clock := &fakeClock{now: Timespec{Sec: 1}}
	prog := &fakeProgrammer{}
	timer := NewAlarmTimer(clock, prog, DefaultTicksPerSec, nil)

	timer.Start(Timespec{Sec: 42})
	require.Equal(t, []Timespec{{Sec: 42}}, prog.programmed)
	require.Equal(t, TimerArmed, timer.State())
}

func TestExpireIgnoredWhenNotArmed(t *testing.T) {
	timer := NewAlarmTimer(&fakeClock{}, &fakeProgrammer{}, DefaultTicksPerSec, func(Timespec) {
		t.Fatal("onExpire should not run on an idle timer")
	})
	timer.Expire(Timespec{})
	require.Equal(t, TimerIdle, timer.State())
}
