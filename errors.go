package rgmpcore

import (
	"errors"
	"fmt"
)

// Standard errors returned by this package's allocation and delivery paths.
var (
	// ErrNoMemory is returned by TCB.CreateStack, wrapped in an
	// AllocError, when the requested size cannot be allocated.
	ErrNoMemory = errors.New("rgmpcore: allocation failed")

	// ErrNoStack is returned by Stack.Frame when the task has no stack
	// allocated yet.
	ErrNoStack = errors.New("rgmpcore: no stack allocated")

	// ErrFrameTooLarge is returned by Stack.Frame when the requested frame
	// would not leave the guard word.
	ErrFrameTooLarge = errors.New("rgmpcore: frame exceeds available stack")

	// ErrCapabilityMissing is returned by CheckCapabilities when a required
	// CPU feature is absent. Callers that see this must mask interrupts and
	// halt; there is no recoverable state at that point.
	ErrCapabilityMissing = errors.New("rgmpcore: required CPU capability missing")

	// ErrBootStepFailed wraps the first failing step of Initialize.
	ErrBootStepFailed = errors.New("rgmpcore: boot step failed")
)

// AllocError wraps an allocator failure with the task and requested size,
// for callers that want structured detail beyond errors.Is(err, ErrNoMemory).
type AllocError struct {
	TaskType     TaskType
	RequestBytes int
	Cause        error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("rgmpcore: allocate %d bytes for %s stack: %v", e.RequestBytes, e.TaskType, e.Cause)
}

func (e *AllocError) Unwrap() error {
	return e.Cause
}

// wrapBootStep gives a failing BootStep's error an identity checkable via
// errors.Is(err, ErrBootStepFailed), while preserving the original cause.
func wrapBootStep(name string, cause error) error {
	return fmt.Errorf("%s: %q: %w", ErrBootStepFailed, name, cause)
}
