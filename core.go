package rgmpcore

import "sync/atomic"

// Scheduler is the set of ready/blocked/pending queue operations this core
// depends on but does not implement. A reference implementation over
// container/heap is provided in readyqueue.go for tests; production
// callers are expected to bring their own priority
// policy.
type Scheduler interface {
	// AddReadyToRun inserts tcb into the ready-to-run list in priority
	// order, reporting whether the insertion changed the head of the list.
	AddReadyToRun(tcb *TCB) bool
	// RemoveReadyToRun removes tcb from the ready-to-run list, reporting
	// whether tcb was the head of the list.
	RemoveReadyToRun(tcb *TCB) bool
	// AddBlocked appends tcb to the blocked list identified by state.
	AddBlocked(tcb *TCB, state TaskState)
	// RemoveBlocked removes tcb from whichever blocked list holds it.
	RemoveBlocked(tcb *TCB)
	// MergePending merges the pending list into the ready-to-run list,
	// reporting whether the merge changed the head.
	MergePending() bool
	// HasPending reports whether the pending list is non-empty.
	HasPending() bool
	// SuspendScheduler and ResumeScheduler bracket a context switch,
	// giving the scheduler a chance to update bookkeeping (e.g. run-time
	// accounting) for the outgoing and incoming task.
	SuspendScheduler(tcb *TCB)
	ResumeScheduler(tcb *TCB)
	// ThisTask returns the task at the head of the ready-to-run list.
	ThisTask() *TCB
	// TaskExit destroys the head of the ready-to-run list (the currently
	// exiting task) and returns it.
	TaskExit() *TCB
}

// AddressSpace is the per-task MMU state swapped on context switch when
// the port supports address environments. The handoff is invoked on
// every inter-task switch unconditionally here, rather than gated by a
// build option.
type AddressSpace interface {
	Close(tcb *TCB)
	Open(tcb *TCB)
}

type noopAddressSpace struct{}

func (noopAddressSpace) Close(*TCB) {}
func (noopAddressSpace) Open(*TCB)  {}

// CrashDumpFunc is the board-specific crashdump hook invoked by Assert
// before it panics or terminates the current task.
type CrashDumpFunc func(tcb *TCB, file string, line int)

// Core is the architecture-port core: the glue between a Scheduler and the
// goroutine substrate standing in for a concrete CPU. The zero value is
// not usable; construct with NewCore.
type Core struct {
	sched      Scheduler
	log        *Logger
	addrSpace  AddressSpace
	crashdump  CrashDumpFunc
	bootSteps  []BootStep
	capability CapabilityChecker

	irqNesting atomic.Int32
	current    atomic.Pointer[TCB]
}

// NewCore constructs a Core bound to the given Scheduler. The idle task
// (pid 0) becomes the current task only once Initialize is called.
func NewCore(sched Scheduler, opts ...Option) *Core {
	cfg := resolveCoreOptions(opts)
	return &Core{
		sched:      sched,
		log:        cfg.logger,
		addrSpace:  cfg.addrSpace,
		crashdump:  cfg.crashdump,
		bootSteps:  cfg.bootSteps,
		capability: cfg.capability,
	}
}

// CurrentTask returns the current task, or nil before Initialize has run.
func (c *Core) CurrentTask() *TCB {
	return c.current.Load()
}

// EnterIRQ and LeaveIRQ bracket interrupt servicing, maintaining the
// nesting counter InInterruptContext reads. They are the stand-in for
// the architecture's IRQ entry/exit shim.
func (c *Core) EnterIRQ() {
	c.irqNesting.Add(1)
}

func (c *Core) LeaveIRQ() {
	c.irqNesting.Add(-1)
}

// InInterruptContext reports whether the CPU is currently servicing an
// IRQ. No locking: it reads a counter maintained entirely by EnterIRQ and
// LeaveIRQ, which is sufficient on this uniprocessor core.
func (c *Core) InInterruptContext() bool {
	return c.irqNesting.Load() > 0
}
