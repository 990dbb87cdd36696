package converter

import (
	"path/filepath"
	"sync"
)

// RunLocks hands out non-blocking, per-destination locks so two batch
// conversions never write into the same output directory at once.
type RunLocks struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewRunLocks creates an empty lock set
func NewRunLocks() *RunLocks {
	return &RunLocks{active: make(map[string]struct{})}
}

// TryAcquire attempts to lock dest without blocking.
// Returns true if the lock was acquired, false if another run holds it.
func (l *RunLocks) TryAcquire(dest string) bool {
	key := filepath.Clean(dest)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.active[key]; held {
		return false
	}
	l.active[key] = struct{}{}
	return true
}

// Release unlocks dest. Must only be called after a successful TryAcquire.
func (l *RunLocks) Release(dest string) {
	l.mu.Lock()
	delete(l.active, filepath.Clean(dest))
	l.mu.Unlock()
}
