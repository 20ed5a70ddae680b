package rgmpcore

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured-logging sink used throughout this package for
// the soft precondition warnings described by the scheduler interaction
// layer and signal delivery (see Core.Block, Core.Unblock,
// Core.Reprioritize, Core.ScheduleSigaction).
//
// The zero value of *logiface.Logger[*stumpy.Event] is not meaningful;
// use NewLogger or DiscardLogger. A nil Logger passed to NewCore is
// replaced with DiscardLogger().
type Logger = logiface.Logger[*stumpy.Event]

// NewLogger returns a Logger that writes newline-delimited JSON events to
// the given writer option set, backed by stumpy.
func NewLogger(options ...stumpy.Option) *Logger {
	return stumpy.L.New(stumpy.WithStumpy(options...))
}

// DiscardLogger returns a Logger with logging disabled, for callers that
// don't want any output. It is the default used by NewCore when no
// WithLogger option is supplied.
func DiscardLogger() *Logger {
	return stumpy.L.New(stumpy.WithStumpy(), logiface.WithLevel[*stumpy.Event](logiface.LevelDisabled))
}

// warnTask logs a soft precondition violation against a single TCB. These
// correspond to the "log a warning and return without mutating state"
// paths in Core.Block, Core.Unblock, and Core.Reprioritize.
func warnTask(log *Logger, msg string, tcb *TCB, fields map[string]any) {
	if log == nil {
		return
	}
	b := log.Warning()
	if tcb != nil {
		b = b.Int("pid", tcb.PID).Int("state", int(tcb.State())).Int("priority", tcb.Priority())
	}
	for k, v := range fields {
		b = b.Interface(k, v)
	}
	b.Log(msg)
}
