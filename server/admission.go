package server

import "sync"

// Admission gates how many connections may be held at once, pending
// and in-game together. A limit of zero means unlimited. This is a
// pure synchronization primitive: no error conditions, no side effect
// beyond the shared counter and the wake signal.
type Admission struct {
	mu    sync.Mutex
	cond  *sync.Cond
	limit int
	held  int
}

func NewAdmission(limit int) *Admission {
	a := &Admission{limit: limit}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// Acquire blocks until a slot is free, then counts the caller as held.
func (a *Admission) Acquire() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for a.limit > 0 && a.held >= a.limit {
		a.cond.Wait()
	}
	a.held++
}

// Release uncounts one held connection and wakes one blocked acquirer.
func (a *Admission) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.held--
	a.cond.Signal()
}

// Held reports the number of currently held connections.
func (a *Admission) Held() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.held
}
