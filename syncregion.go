package rgmpcore

import "sync"

// syncRegion is a goroutine-identity-reentrant mutual exclusion lock. A
// nestable critical section built on IRQ save/restore relies on running
// on a single CPU to make nested entry from the same logical caller
// safe; neither assumption holds across goroutines, so nesting here is
// tracked explicitly by goroutine id instead.
type syncRegion struct {
	mu    sync.Mutex
	owner uint64
	depth int
	free  chan struct{}
}

func newSyncRegion() *syncRegion {
	r := &syncRegion{free: make(chan struct{}, 1)}
	r.free <- struct{}{}
	return r
}

// Lock enters the region. A goroutine already holding the region may
// call Lock again without blocking; each such call must be balanced by
// an Unlock.
func (r *syncRegion) Lock() {
	gid := getGoroutineID()

	r.mu.Lock()
	if r.depth > 0 && r.owner == gid {
		r.depth++
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	<-r.free

	r.mu.Lock()
	r.owner = gid
	r.depth = 1
	r.mu.Unlock()
}

// Unlock leaves one level of nesting. It panics if called by a goroutine
// that does not currently hold the region, which indicates a programming
// error rather than a condition callers should recover from.
func (r *syncRegion) Unlock() {
	gid := getGoroutineID()

	r.mu.Lock()
	if r.depth == 0 || r.owner != gid {
		r.mu.Unlock()
		panic("rgmpcore: sync region unlocked by non-owner")
	}
	r.depth--
	done := r.depth == 0
	r.mu.Unlock()

	if done {
		r.free <- struct{}{}
	}
}
