package rgmpcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduleSigactionRunsSynchronouslyForCurrentTask(t *testing.T) {
	c := NewCore(NewReadyQueue())
	tcb := NewTCB(1, PrioMin, TaskTypeUser)
	c.current.Store(tcb)

	var ran *TCB
	c.ScheduleSigaction(tcb, func(got *TCB) { ran = got })

	require.Equal(t, tcb, ran)
	require.Nil(t, tcb.sigPending)
}

func TestScheduleSigactionDefersForOtherTask(t *testing.T) {
	c := NewCore(NewReadyQueue())
	current := NewTCB(1, PrioMin, TaskTypeUser)
	other := NewTCB(2, PrioMin, TaskTypeUser)
	c.current.Store(current)

	ran := false
	c.ScheduleSigaction(other, func(*TCB) { ran = true })

	require.False(t, ran)
	require.NotNil(t, other.sigPending)

	c.DeliverPending(other)
	require.True(t, ran)
	require.Nil(t, other.sigPending)
}

func TestScheduleSigactionDefersWhenCurrentInInterrupt(t *testing.T) {
	c := NewCore(NewReadyQueue())
	tcb := NewTCB(1, PrioMin, TaskTypeUser)
	c.current.Store(tcb)
	c.EnterIRQ()

	ran := false
	c.ScheduleSigaction(tcb, func(*TCB) { ran = true })
	require.False(t, ran)

	c.LeaveIRQ()
	c.DeliverPending(tcb)
	require.True(t, ran)
}

func TestScheduleSigactionIsNoopWhenAlreadyPending(t *testing.T) {
	c := NewCore(NewReadyQueue())
	current := NewTCB(1, PrioMin, TaskTypeUser)
	other := NewTCB(2, PrioMin, TaskTypeUser)
	c.current.Store(current)

	firstRan, secondRan := false, false
	c.ScheduleSigaction(other, func(*TCB) { firstRan = true })
	c.ScheduleSigaction(other, func(*TCB) { secondRan = true })

	c.DeliverPending(other)
	require.True(t, firstRan)
	require.False(t, secondRan)
}

func TestScheduleSigactionPushesSyntheticFrameForDeferredDelivery(t *testing.T) {
	c := NewCore(NewReadyQueue())
	current := NewTCB(1, PrioMin, TaskTypeUser)
	other := NewTCB(2, PrioMin, TaskTypeUser)
	c.current.Store(current)
	require.NoError(t, other.CreateStack(4096))
	originalAdjSize := other.Stack.AdjSize

	c.ScheduleSigaction(other, func(*TCB) {})
	require.NotNil(t, other.sigSavedFrame)
	require.Less(t, other.Stack.AdjSize, originalAdjSize)

	c.DeliverPending(other)
	require.Nil(t, other.sigSavedFrame)
	require.Equal(t, originalAdjSize, other.Stack.AdjSize)
}

func TestDeliverPendingNoopWithoutHandler(t *testing.T) {
	c := NewCore(NewReadyQueue())
	tcb := NewTCB(1, PrioMin, TaskTypeUser)
	require.NotPanics(t, func() { c.DeliverPending(tcb) })
}

func TestPushAndPopXcpt(t *testing.T) {
	tcb := NewTCB(1, PrioMin, TaskTypeUser)
	require.NoError(t, tcb.CreateStack(4096))

	called := false
	require.NoError(t, tcb.PushXcpt(func() { called = true }))
	require.NotNil(t, tcb.sigSavedFrame)

	frame := tcb.PopXcpt()
	require.NotNil(t, frame)
	frame.resume()
	require.True(t, called)
	require.Nil(t, tcb.PopXcpt())
}
