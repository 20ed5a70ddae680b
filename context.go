package rgmpcore

// contextSlot is the storage sufficient to resume a task: an unbuffered
// handoff channel standing in for a saved register set. A bare-metal
// port would replace this file with a real register save/restore
// primitive and keep everything in sched_interaction.go unchanged.
type contextSlot struct {
	resume  chan struct{}
	started bool
}

func newContextSlot() *contextSlot {
	return &contextSlot{resume: make(chan struct{})}
}

// handoff is the primitive operation: wake the target, then (unless this
// is the discard-the-old-context case used by ExitCurrent) block until
// someone hands control back to fromSlot. It must run on the goroutine
// that is suspending, with interrupts already disabled by the caller.
func handoff(from, to *contextSlot) {
	to.resume <- struct{}{}
	if from != nil {
		<-from.resume
	}
}

// Switch is the context switch primitive. If from is nil, no save occurs and execution simply continues in the caller after
// to resumes elsewhere - the shape ExitCurrent needs, since the exiting
// task's context is intentionally discarded. Switch panics if called from
// interrupt context, and is a no-op if from and to are the same TCB by
// identity.
func (c *Core) Switch(from, to *TCB) {
	if from == to {
		return
	}
	if c.InInterruptContext() {
		panic("rgmpcore: context switch attempted from interrupt context")
	}
	c.current.Store(to)
	var fromSlot *contextSlot
	if from != nil {
		fromSlot = from.ctx
	}
	handoff(fromSlot, to.ctx)
}

// StartTask launches tcb's goroutine, parked until the first Switch
// targets it, then running entry to completion. Task creation itself
// (allocating a PID, building argv, installing a name) is out of scope
// for this package; StartTask exists so tests have a concrete way to give a TCB a body without depending on a full
// scheduler implementation.
//
// entry must itself call into Core (e.g. Core.Block, Core.ExitCurrent) to
// ever yield; StartTask does not impose any scheduling policy.
func StartTask(tcb *TCB, entry func()) {
	tcb.ctx.started = true
	go func() {
		<-tcb.ctx.resume
		entry()
	}()
}
