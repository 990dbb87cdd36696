package converter

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunLocks(t *testing.T) {
	locks := NewRunLocks()

	assert.True(t, locks.TryAcquire("out"))
	assert.False(t, locks.TryAcquire(filepath.Join("out", ".")), "same directory after cleaning")
	assert.True(t, locks.TryAcquire("other"))

	locks.Release("out")
	assert.True(t, locks.TryAcquire("out"))
}

func TestRunLocks_Concurrent(t *testing.T) {
	locks := NewRunLocks()
	var acquired int32
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if locks.TryAcquire("out") {
				atomic.AddInt32(&acquired, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), acquired)
}
