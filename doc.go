// Package rgmpcore is the architecture-port core of a small cooperatively
// scheduled RTOS: task context and stack framing, voluntary and involuntary
// context switching between task control blocks, the scheduler-queue
// transitions (block/unblock/reprioritize/release-pending/exit),
// asynchronous signal delivery, and a tickless deadline timer.
//
// There is no real CPU underneath this process, so the "virtual CPU" a
// hosted port would provide is realized literally: every TCB is backed by
// a goroutine, and [Core.Switch] hands control from one to the other over
// an unbuffered channel. Everything above that line - the scheduler queue
// transitions, the signal trampoline, the timer - behaves exactly as it
// would on real hardware; only the register save/restore is host-native.
//
// The scheduler's queues and priority policy are intentionally out of
// scope here: Core depends only on the [Scheduler] interface. A reference
// implementation, built over container/heap, lives in readyqueue.go for
// tests.
package rgmpcore
