package rgmpcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTCBClampsPriority(t *testing.T) {
	low := NewTCB(1, PrioMin-10, TaskTypeUser)
	require.Equal(t, PrioMin, low.Priority())

	high := NewTCB(2, PrioMax+10, TaskTypeUser)
	require.Equal(t, PrioMax, high.Priority())

	require.Equal(t, StatePending, low.State())
}

func TestTaskStateRanges(t *testing.T) {
	require.True(t, StatePending.isReadyRange())
	require.True(t, StateReadyToRun.isReadyRange())
	require.True(t, StateRunning.isReadyRange())
	require.False(t, StateWaitSemaphore.isReadyRange())

	require.True(t, StateWaitSemaphore.isBlockedRange())
	require.True(t, StateStopped.isBlockedRange())
	require.False(t, StateRunning.isBlockedRange())
}

func TestTaskStateString(t *testing.T) {
	require.Equal(t, "ReadyToRun", StateReadyToRun.String())
	require.Equal(t, "WaitSignal", StateWaitSignal.String())
	require.Equal(t, "Invalid", TaskState(999).String())
}

func TestTCBIsIdle(t *testing.T) {
	idle := NewTCB(0, PrioMin, TaskTypeKernel)
	require.True(t, idle.IsIdle())

	other := NewTCB(1, PrioMin, TaskTypeUser)
	require.False(t, other.IsIdle())
}

func TestTCBSetPriorityAndState(t *testing.T) {
	tcb := NewTCB(5, 10, TaskTypeUser)
	tcb.setPriority(20)
	require.Equal(t, 20, tcb.Priority())

	tcb.setState(StateWaitSemaphore)
	require.Equal(t, StateWaitSemaphore, tcb.State())
}
