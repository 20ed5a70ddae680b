package rgmpcore

import "sync"

// BootStep is one named unit of a boot sequence: console bring-up, heap
// setup, device registration, and so on. Each step receives the Core so
// it can install boot-time state before the idle task is allowed to run.
type BootStep struct {
	Name string
	Run  func(c *Core) error
}

// DefaultBootSteps returns the minimal boot sequence: nothing beyond the
// hardware-capability gate Initialize always runs first. It exists as a
// named, overridable hook point (via WithBootSteps) for callers that want
// to register additional steps without this package hardcoding
// board-specific behavior.
func DefaultBootSteps() []BootStep {
	return nil
}

// HeapBounds records a boot-time heap region: from the current
// allocation high-water mark to the end of the reserved area. This core
// does not itself allocate a heap - Stack draws from the Go runtime's
// allocator - but a BootStep can stash bounds here for board code that
// wants to report or enforce them.
type HeapBounds struct {
	Start uintptr
	End   uintptr
}

// BootAllocator is a bump allocator for boot-time bookkeeping: it tracks
// a high-water mark within a fixed-size region and reports the remaining
// span as HeapBounds. It is not wired into any allocation path in this
// process-hosted core - Stack draws from the Go runtime's own allocator
// - but is kept as the concrete type a BootStep can use to compute and
// report real bounds on a board that does manage its own arena.
type BootAllocator struct {
	mu    sync.Mutex
	mark  uintptr
	limit uintptr
}

// NewBootAllocator constructs a BootAllocator spanning [0, limit).
func NewBootAllocator(limit uintptr) *BootAllocator {
	return &BootAllocator{limit: limit}
}

// Alloc advances the high-water mark by n bytes, returning the offset it
// was advanced from, or false if that would exceed limit.
func (a *BootAllocator) Alloc(n uintptr) (uintptr, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mark+n > a.limit {
		return 0, false
	}
	start := a.mark
	a.mark += n
	return start, true
}

// Bounds reports the heap region between the current high-water mark and
// the allocator's limit.
func (a *BootAllocator) Bounds() HeapBounds {
	a.mu.Lock()
	defer a.mu.Unlock()
	return HeapBounds{Start: a.mark, End: a.limit}
}

// DeviceBootSteps returns stub boot steps for the pseudo-devices a
// hosted kernel conventionally registers at startup (a null sink, a zero
// source, random-number sources, a loop device, a pty multiplexer).
// None of these are implemented here - device drivers are out of scope
// for this package - but the steps are kept as a concrete, individually
// droppable shape: a caller composes
// WithBootSteps(append(DeviceBootSteps(), ...)...) and can omit entries
// it doesn't want, or replace Run with a real implementation. Each step
// here is a documented no-op.
func DeviceBootSteps() []BootStep {
	names := []string{"devnull", "devzero", "devurandom", "devrandom", "devloop", "ptmx"}
	steps := make([]BootStep, len(names))
	for i, name := range names {
		steps[i] = BootStep{Name: name, Run: func(*Core) error { return nil }}
	}
	return steps
}

// Initialize runs the hardware-capability gate and then each configured
// boot step in order, stopping at the first failure. On success it
// installs idle as the current task without running it; the caller's
// dispatch loop is responsible for the first Switch into it.
//
// If the capability gate itself fails there is nothing safe left to run:
// Initialize logs and then halts forever rather than returning, the
// hosted-port equivalent of masking every interrupt and spinning on
// cli;hlt.
func (c *Core) Initialize(idle *TCB) error {
	if c.capability != nil {
		if err := c.capability(); err != nil {
			warnTask(c.log, "initialize: missing hardware capability, halting", nil, map[string]any{"error": err.Error()})
			haltForever()
		}
	}
	for _, step := range c.bootSteps {
		if step.Run == nil {
			continue
		}
		if err := step.Run(c); err != nil {
			return wrapBootStep(step.Name, err)
		}
	}
	if idle != nil {
		idle.setState(StateRunning)
		c.current.Store(idle)
	}
	return nil
}

// Idle runs the idle task's body in a tight loop until stop is closed,
// calling MergePending on every iteration so tasks made ready while
// preemption was disabled get picked up promptly. body is invoked once
// per iteration after the merge; it is the caller's hook for a halt
// instruction equivalent, or simply runtime.Gosched.
func (c *Core) Idle(stop <-chan struct{}, body func()) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		c.sched.MergePending()
		if body != nil {
			body()
		}
	}
}
