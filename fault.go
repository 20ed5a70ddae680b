package rgmpcore

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// CapabilityChecker validates that the host CPU provides whatever this
// port's boot sequence assumes is present, returning a descriptive error
// for the first missing feature. See CheckCapabilities for the default.
type CapabilityChecker func() error

// CheckCapabilities is the default CapabilityChecker. It validates the
// subset of a boot-time capability gate (x2APIC, TSC-deadline, SSE3,
// RDRAND, PCID) that golang.org/x/sys/cpu actually exposes on amd64:
// SSE3 and RDRAND. x2APIC, TSC-deadline mode, and PCID are APIC/MSR-level
// facts this package has no portable way to probe from Go, so they are
// not checked here; a caller targeting a specific board should supply its
// own CapabilityChecker via WithCapabilityChecker that also validates
// those bits.
func CheckCapabilities() error {
	if !cpu.X86.HasSSE3 {
		return fmt.Errorf("rgmpcore: missing required capability SSE3: %w", ErrCapabilityMissing)
	}
	if !cpu.X86.HasRDRAND {
		return fmt.Errorf("rgmpcore: missing required capability RDRAND: %w", ErrCapabilityMissing)
	}
	return nil
}

// Assert implements the fault path: it invokes the crashdump hook if one
// was installed, then either panics (when the faulting task is the idle
// task or there is no current task - an idle-task crash is always fatal)
// or terminates the current task via ExitCurrent, returning control to
// the caller's scheduler loop.
func (c *Core) Assert(file string, line int) {
	current := c.CurrentTask()
	if c.crashdump != nil {
		c.crashdump(current, file, line)
	}
	if current == nil || current.IsIdle() {
		panic(fmt.Sprintf("rgmpcore: assertion failed at %s:%d (pid=%v)", file, line, pidOf(current)))
	}
	c.ExitCurrent()
}

func pidOf(tcb *TCB) any {
	if tcb == nil {
		return "none"
	}
	return tcb.PID
}

// haltForever blocks the calling goroutine permanently - the hosted-port
// equivalent of masking every interrupt and executing cli;hlt in a loop.
// There is no hardware halt instruction to fall back on here, so this
// parks on an unbuffered channel that nothing ever sends to.
func haltForever() {
	<-make(chan struct{})
}
