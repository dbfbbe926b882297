// Package arena provides the bump allocator backing file contents.
package arena

import (
	"fmt"
	"sync"

	"github.com/brettbedarf/ramvfs"
)

// Arena is a non-reclaiming bump allocator over a fixed pool. Free only
// updates statistics; memory is never returned to the pool.
type Arena struct {
	pool   []byte
	offset int
	stats  ramvfs.AllocStats
	mu     sync.Mutex
}

var _ ramvfs.Allocator = (*Arena)(nil)

// New returns an arena with a pool of size bytes
func New(size int) *Arena {
	return &Arena{pool: make([]byte, size)}
}

// Alloc carves size bytes off the pool. The returned slice has its capacity
// clipped so appends can never spill into a neighbouring allocation.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative allocation size %d", size)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.offset+size > len(a.pool) {
		return nil, fmt.Errorf("alloc %d bytes with %d free: %w", size, len(a.pool)-a.offset, ramvfs.ErrNoMemory)
	}
	buf := a.pool[a.offset : a.offset+size : a.offset+size]
	a.offset += size
	a.stats.TotalAllocated += uint64(size)
	a.stats.Allocations++
	a.stats.PeakUsage = max(a.stats.PeakUsage, a.stats.TotalAllocated)
	return buf, nil
}

// Free counts the release; the bytes stay claimed
func (a *Arena) Free(_ []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Frees++
}

// Stats returns a snapshot of the allocation counters
func (a *Arena) Stats() ramvfs.AllocStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Available returns the unclaimed bytes left in the pool
func (a *Arena) Available() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pool) - a.offset
}
