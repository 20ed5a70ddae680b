package rgmpcore

import "container/heap"

// ReadyQueue is a reference Scheduler implementation: a priority-ordered
// ready-to-run list backed by container/heap (ordered by highest task
// priority, FIFO among equal priorities), a pending list merged in by
// MergePending, and blocked lists keyed by TaskState.
//
// ReadyQueue is not safe for concurrent use; callers serialize access to
// it, typically by disabling interrupts around the calls that touch it.
type ReadyQueue struct {
	ready   rtrHeap
	pending []*TCB
	blocked map[TaskState][]*TCB
	seq     int
}

// NewReadyQueue constructs an empty ReadyQueue.
func NewReadyQueue() *ReadyQueue {
	return &ReadyQueue{
		blocked: make(map[TaskState][]*TCB),
	}
}

// rtrEntry pairs a TCB with the sequence number it was inserted at, so
// equal-priority tasks stay FIFO instead of reordering arbitrarily the
// way a bare priority compare would allow.
type rtrEntry struct {
	tcb *TCB
	seq int
}

type rtrHeap []rtrEntry

func (h rtrHeap) Len() int { return len(h) }
func (h rtrHeap) Less(i, j int) bool {
	pi, pj := h[i].tcb.Priority(), h[j].tcb.Priority()
	if pi != pj {
		return pi > pj
	}
	return h[i].seq < h[j].seq
}
func (h rtrHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *rtrHeap) Push(x any)   { *h = append(*h, x.(rtrEntry)) }
func (h *rtrHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

func (q *ReadyQueue) indexOf(tcb *TCB) int {
	for i, e := range q.ready {
		if e.tcb == tcb {
			return i
		}
	}
	return -1
}

// AddReadyToRun implements Scheduler.
func (q *ReadyQueue) AddReadyToRun(tcb *TCB) bool {
	prevHead := q.ThisTask()
	q.seq++
	heap.Push(&q.ready, rtrEntry{tcb: tcb, seq: q.seq})
	return q.ThisTask() != prevHead
}

// RemoveReadyToRun implements Scheduler.
func (q *ReadyQueue) RemoveReadyToRun(tcb *TCB) bool {
	i := q.indexOf(tcb)
	if i < 0 {
		return false
	}
	wasHead := i == 0
	heap.Remove(&q.ready, i)
	return wasHead
}

// AddBlocked implements Scheduler.
func (q *ReadyQueue) AddBlocked(tcb *TCB, state TaskState) {
	q.blocked[state] = append(q.blocked[state], tcb)
}

// RemoveBlocked implements Scheduler.
func (q *ReadyQueue) RemoveBlocked(tcb *TCB) {
	for state, list := range q.blocked {
		for i, t := range list {
			if t == tcb {
				q.blocked[state] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// AddPending queues tcb to be merged into the ready-to-run list by the
// next MergePending call. Not part of the Scheduler interface: a caller
// that has disabled preemption redirects a would-be AddReadyToRun call
// here instead, so the ready list ordering isn't disturbed until the
// scheduler is unlocked.
func (q *ReadyQueue) AddPending(tcb *TCB) {
	q.pending = append(q.pending, tcb)
}

// MergePending implements Scheduler.
func (q *ReadyQueue) MergePending() bool {
	if len(q.pending) == 0 {
		return false
	}
	prevHead := q.ThisTask()
	for _, tcb := range q.pending {
		q.seq++
		heap.Push(&q.ready, rtrEntry{tcb: tcb, seq: q.seq})
	}
	q.pending = q.pending[:0]
	return q.ThisTask() != prevHead
}

// HasPending implements Scheduler.
func (q *ReadyQueue) HasPending() bool {
	return len(q.pending) > 0
}

// SuspendScheduler and ResumeScheduler implement Scheduler as no-ops;
// ReadyQueue does not track per-task run-time accounting.
func (q *ReadyQueue) SuspendScheduler(*TCB) {}
func (q *ReadyQueue) ResumeScheduler(*TCB)  {}

// ThisTask implements Scheduler.
func (q *ReadyQueue) ThisTask() *TCB {
	if len(q.ready) == 0 {
		return nil
	}
	return q.ready[0].tcb
}

// TaskExit implements Scheduler.
func (q *ReadyQueue) TaskExit() *TCB {
	if len(q.ready) == 0 {
		return nil
	}
	e := heap.Pop(&q.ready).(rtrEntry)
	return e.tcb
}
