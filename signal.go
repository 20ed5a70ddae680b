package rgmpcore

// xcptFrame is the synthetic saved-context slot pushed onto a task's
// stack when a signal is delivered out of band. On this hosted port
// there is no real register frame to save; what must be
// preserved is simply "what to run to resume the interrupted task",
// which is a closure rather than a byte frame.
type xcptFrame struct {
	resume    func()
	frameSize int
}

// PushXcpt reserves a frame-sized region on tcb's stack and records the
// closure that restores the interrupted task once the pending signal
// handler returns. It is the hook an architecture port would use to lay
// down a real saved-register frame; this port stores the equivalent
// information out of band because Go provides no way to splice a
// goroutine's call stack. This is the exported arch-hook half of signal
// delivery; ScheduleSigaction is the only caller in this package,
// but a board-specific dispatcher may call it directly when building its
// own delivery path.
func (t *TCB) PushXcpt(resume func()) error {
	if _, err := t.Stack.Frame(signalFrameSize); err != nil {
		return err
	}
	t.sigSavedFrame = &xcptFrame{resume: resume, frameSize: signalFrameSize}
	return nil
}

// PopXcpt retrieves and clears the most recently pushed exception frame,
// returning its stack region to the adjusted region so it can be carved
// again by a later PushXcpt.
func (t *TCB) PopXcpt() *xcptFrame {
	f := t.sigSavedFrame
	t.sigSavedFrame = nil
	if f != nil {
		t.Stack.AdjSize += f.frameSize
	}
	return f
}

// signalFrameSize is the nominal size reserved on the stack for a
// synthetic signal-delivery frame, standing in for the saved
// general-purpose register set a real architecture port would push.
const signalFrameSize = 16 * 8

// ScheduleSigaction arranges for handler to run against tcb, following a
// three-way branch on the target task's current state:
//
//   - tcb is the current task and the CPU is not servicing an interrupt:
//     the handler runs immediately, synchronously, on the caller's
//     goroutine, with the interrupted continuation preserved so normal
//     execution resumes afterward.
//   - tcb is the current task but the CPU is servicing an interrupt: the
//     handler cannot run until the interrupt returns, so it is recorded as
//     pending and DeliverPending must be called on IRQ exit.
//   - tcb is some other, non-running task: the handler is recorded as
//     pending against that task and runs via DeliverPending, which
//     switchTask calls on tcb's goroutine once tcb is switched back in.
//
// In both deferred cases, a synthetic frame is pushed onto tcb's stack
// via PushXcpt so the interrupted continuation can be resumed once the
// handler runs (see DeliverPending). If tcb already has a handler
// pending, ScheduleSigaction returns without queuing a second one - a
// signal arriving before the first is delivered is coalesced away
// rather than replacing it.
//
// ScheduleSigaction never blocks and never itself performs a context
// switch; the deferred cases run only when DeliverPending is invoked for
// tcb.
func (c *Core) ScheduleSigaction(tcb *TCB, handler SigHandler) {
	if tcb == nil || handler == nil {
		return
	}
	current := c.CurrentTask()

	tcb.mu.Lock()
	if tcb.sigPending != nil {
		tcb.mu.Unlock()
		return
	}
	if tcb == current && !c.InInterruptContext() {
		tcb.mu.Unlock()
		c.deliver(tcb, handler)
		return
	}
	tcb.sigPending = handler
	tcb.mu.Unlock()

	if err := tcb.PushXcpt(func() {}); err != nil {
		warnTask(c.log, "schedule sigaction: failed to push synthetic frame", tcb, map[string]any{"error": err.Error()})
	}
}

// deliver runs a signal handler against tcb immediately, on the calling
// goroutine. It is exported in spirit (lowercase because there is no
// external caller yet in this core), invoked directly by
// ScheduleSigaction for the synchronous case and by DeliverPending for
// the deferred cases recorded in tcb.sigPending.
func (c *Core) deliver(tcb *TCB, handler SigHandler) {
	handler(tcb)
}

// DeliverPending runs and clears tcb's pending signal handler, if any. A
// scheduler implementation should call this immediately after dispatching
// a task that was blocked or not running at the time ScheduleSigaction
// was called against it (the second and third branches above). Following
// up_sigdeliver's ordering, any synthetic frame pushed by ScheduleSigaction
// is popped before the handler runs and its resume closure is invoked
// afterward to restore the interrupted continuation.
func (c *Core) DeliverPending(tcb *TCB) {
	tcb.mu.Lock()
	handler := tcb.sigPending
	tcb.sigPending = nil
	tcb.mu.Unlock()
	if handler == nil {
		return
	}

	frame := tcb.PopXcpt()
	c.deliver(tcb, handler)
	if frame != nil && frame.resume != nil {
		frame.resume()
	}
}
