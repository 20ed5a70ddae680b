package rgmpcore

import "sync"

// TaskState is the coarse lifecycle state of a TCB. It is always in one of
// two contiguous ranges: ready-to-run ([FirstReadyToRun, LastReadyToRun])
// or blocked ([FirstBlocked, LastBlocked]). Transitions between the two
// ranges only ever happen inside Core's scheduler interaction methods
// (Block, Unblock).
type TaskState int

const (
	// StatePending is a ready task that could not be dispatched because
	// preemption was disabled when it became ready, and the state NewTCB
	// starts every task in. Scheduler.MergePending (see Core.ReleasePending)
	// moves pending tasks onto the ready-to-run list without changing
	// this state.
	StatePending TaskState = iota + 1
	// StateReadyToRun is an eligible-for-dispatch task, not currently
	// running.
	StateReadyToRun
	// StateRunning is the task at the head of the ready-to-run list: the
	// current task.
	StateRunning

	// StateWaitSemaphore, StateWaitSignal, StateWaitMQEmpty, and
	// StateWaitMQFull are the blocked-range states a task may be parked
	// in by Core.Block.
	StateWaitSemaphore
	StateWaitSignal
	StateWaitMQEmpty
	StateWaitMQFull
	// StateStopped is a task suspended indefinitely (e.g. by a debugger).
	StateStopped
)

// FirstReadyToRun, LastReadyToRun, FirstBlocked, and LastBlocked bound the
// two contiguous state ranges described by the data model.
const (
	FirstReadyToRun = StatePending
	LastReadyToRun  = StateRunning

	FirstBlocked = StateWaitSemaphore
	LastBlocked  = StateStopped
)

func (s TaskState) isReadyRange() bool {
	return s >= FirstReadyToRun && s <= LastReadyToRun
}

func (s TaskState) isBlockedRange() bool {
	return s >= FirstBlocked && s <= LastBlocked
}

func (s TaskState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateReadyToRun:
		return "ReadyToRun"
	case StateRunning:
		return "Running"
	case StateWaitSemaphore:
		return "WaitSemaphore"
	case StateWaitSignal:
		return "WaitSignal"
	case StateWaitMQEmpty:
		return "WaitMQEmpty"
	case StateWaitMQFull:
		return "WaitMQFull"
	case StateStopped:
		return "Stopped"
	default:
		return "Invalid"
	}
}

// TaskType records whether a TCB is a kernel or a user task.
// TCB.CreateStack and TCB.ReleaseStack use the Go heap for both types.
type TaskType int

const (
	// TaskTypeUser tasks use the user heap.
	TaskTypeUser TaskType = iota
	// TaskTypeKernel tasks use the kernel heap, when a distinct one exists.
	TaskTypeKernel
)

func (t TaskType) String() string {
	if t == TaskTypeKernel {
		return "kernel"
	}
	return "user"
}

// PrioMin and PrioMax bound the inclusive priority range; Core.Reprioritize
// rejects values outside it.
const (
	PrioMin = 1
	PrioMax = 255
)

// SigHandler is a pending signal action, scheduled by
// Core.ScheduleSigaction and eventually run with the target TCB as its
// argument.
type SigHandler func(tcb *TCB)

// TCB is a task control block. It is intentionally the only "owned" data
// this package works with; the task's scheduling policy and its entry
// point are the caller's concern. The zero value is not usable; construct
// with NewTCB.
type TCB struct {
	mu sync.Mutex

	PID      int
	TaskType TaskType

	priority int
	state    TaskState

	Stack Stack

	ctx *contextSlot

	sigPending      SigHandler
	sigSavedFrame   *xcptFrame
}

// NewTCB constructs a TCB in StatePending with the given pid, priority,
// and task type. The idle task is conventionally pid 0.
func NewTCB(pid, priority int, taskType TaskType) *TCB {
	if priority < PrioMin {
		priority = PrioMin
	} else if priority > PrioMax {
		priority = PrioMax
	}
	return &TCB{
		PID:      pid,
		TaskType: taskType,
		priority: priority,
		state:    StatePending,
		ctx:      newContextSlot(),
	}
}

// State returns the TCB's current lifecycle state.
func (t *TCB) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *TCB) setState(s TaskState) {
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
}

// Priority returns the TCB's current priority.
func (t *TCB) Priority() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.priority
}

func (t *TCB) setPriority(p int) {
	t.mu.Lock()
	t.priority = p
	t.mu.Unlock()
}

// IsIdle reports whether this TCB is the idle task (pid 0).
func (t *TCB) IsIdle() bool {
	return t.PID == 0
}
