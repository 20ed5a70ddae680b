package rgmpcore

// switchTask brackets a context switch with the scheduler and
// address-space hooks required on every inter-task switch: suspend/close
// the outgoing task's bookkeeping, open/resume the incoming task's,
// perform the switch, then - once from is handed control back - deliver
// any signal that was scheduled against it while it was off the CPU.
func (c *Core) switchTask(from, to *TCB) {
	if from != nil {
		c.sched.SuspendScheduler(from)
		c.addrSpace.Close(from)
	}
	c.addrSpace.Open(to)
	c.sched.ResumeScheduler(to)
	c.Switch(from, to)
	if from != nil {
		c.DeliverPending(from)
	}
}

// Block moves tcb from the ready-to-run range into the blocked list under
// targetState. If tcb was not actually ready to run, or targetState is
// not one of the blocked-range states, this logs a warning via the
// configured Logger and leaves all state untouched rather than panicking
// - a soft "log and return" response to caller misuse rather than a hard
// assertion failure.
//
// If tcb was the running task, Block switches to whatever the scheduler
// now reports as ThisTask, blocking the calling goroutine until tcb is
// dispatched again.
func (c *Core) Block(tcb *TCB, targetState TaskState) {
	if tcb == nil {
		return
	}
	if !tcb.State().isReadyRange() {
		warnTask(c.log, "block: task is not in the ready-to-run range", tcb, nil)
		return
	}
	if !targetState.isBlockedRange() {
		warnTask(c.log, "block: target state is not a blocked-range state", tcb, map[string]any{"target_state": int(targetState)})
		return
	}

	current := c.CurrentTask()
	wasRunning := tcb == current

	c.sched.RemoveReadyToRun(tcb)
	tcb.setState(targetState)
	c.sched.AddBlocked(tcb, targetState)

	if !wasRunning {
		return
	}

	if c.sched.HasPending() {
		warnTask(c.log, "block: draining pending tasks before reselecting the next task", tcb, nil)
		c.sched.MergePending()
	}

	next := c.sched.ThisTask()
	if next == nil {
		return
	}
	next.setState(StateRunning)
	c.switchTask(tcb, next)
}

// Unblock moves tcb from the blocked list it is currently on back into
// the ready-to-run list. If tcb is not actually blocked, this logs and
// returns. If the insertion
// makes tcb the new head of the ready-to-run list and it differs from
// the currently running task, Unblock switches to it.
func (c *Core) Unblock(tcb *TCB) {
	if tcb == nil {
		return
	}
	if !tcb.State().isBlockedRange() {
		warnTask(c.log, "unblock: task is not in a blocked-range state", tcb, nil)
		return
	}

	c.sched.RemoveBlocked(tcb)
	tcb.setState(StateReadyToRun)
	if !c.sched.AddReadyToRun(tcb) {
		return
	}

	current := c.CurrentTask()
	next := c.sched.ThisTask()
	if next == nil || next == current {
		return
	}
	if current != nil {
		current.setState(StateReadyToRun)
	}
	next.setState(StateRunning)
	c.switchTask(current, next)
}

// Reprioritize changes tcb's priority. A blocked task's priority is
// simply updated in place. A ready-to-run task is removed and reinserted so the scheduler's
// priority ordering stays correct, which may change the head of the
// ready-to-run list and trigger a switch exactly as Unblock does. An
// out-of-range priority, or a task in neither range, is logged and
// ignored.
func (c *Core) Reprioritize(tcb *TCB, newPriority int) {
	if tcb == nil {
		return
	}
	if newPriority < PrioMin || newPriority > PrioMax {
		warnTask(c.log, "reprioritize: priority out of range", tcb, map[string]any{"priority": newPriority})
		return
	}
	if tcb.Priority() == newPriority {
		return
	}

	state := tcb.State()
	switch {
	case state.isBlockedRange():
		tcb.setPriority(newPriority)
		return
	case state.isReadyRange():
		removedHead := c.sched.RemoveReadyToRun(tcb)
		tcb.setPriority(newPriority)
		tcb.setState(StateReadyToRun)
		addedHead := c.sched.AddReadyToRun(tcb)
		if !removedHead && !addedHead {
			return
		}
	default:
		warnTask(c.log, "reprioritize: task in unexpected state", tcb, nil)
		return
	}

	if c.sched.HasPending() {
		warnTask(c.log, "reprioritize: draining pending tasks before reselecting the next task", tcb, nil)
		c.sched.MergePending()
	}

	current := c.CurrentTask()
	next := c.sched.ThisTask()
	if next == nil || next == current {
		return
	}
	if current != nil {
		current.setState(StateReadyToRun)
	}
	next.setState(StateRunning)
	c.switchTask(current, next)
}

// ReleasePending merges the scheduler's pending list into the
// ready-to-run list - the operation that drains tasks that became ready
// while preemption was disabled. If the merge changes the head of the
// ready-to-run list, ReleasePending switches to it.
func (c *Core) ReleasePending() {
	if !c.sched.MergePending() {
		return
	}

	current := c.CurrentTask()
	next := c.sched.ThisTask()
	if next == nil || next == current {
		return
	}
	if current != nil {
		current.setState(StateReadyToRun)
	}
	next.setState(StateRunning)
	c.switchTask(current, next)
}

// ExitCurrent terminates the running task: it asks the scheduler to
// remove the head of the ready-to-run list, closes its address space,
// and switches to whatever task is now at the head. Unlike the other
// operations here, the
// outgoing task's context is discarded rather than saved - the calling
// goroutine is expected to return immediately after ExitCurrent, and
// never to be resumed.
func (c *Core) ExitCurrent() {
	tcb := c.sched.TaskExit()
	if tcb != nil {
		c.addrSpace.Close(tcb)
	}

	next := c.sched.ThisTask()
	if next == nil {
		return
	}
	next.setState(StateRunning)
	c.addrSpace.Open(next)
	c.sched.ResumeScheduler(next)
	c.Switch(nil, next)
}
