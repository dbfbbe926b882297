package ramvfs

import "context"

// ContentProvider produces the initial bytes of a file created from a node
// definition. Instances are 1:1 with the file they seed.
type ContentProvider interface {
	// Content fetches the full initial content
	Content(ctx context.Context) ([]byte, error)

	// ReadOnly reports whether the resulting file must reject writes
	ReadOnly() bool
}

// ProviderFactory builds a [ContentProvider] from its raw JSON source config
type ProviderFactory func(raw []byte) (ContentProvider, error)

// AllocStats mirrors the counters kept by an [Allocator]
type AllocStats struct {
	TotalAllocated uint64
	Allocations    uint64
	Frees          uint64
	PeakUsage      uint64
}

// Allocator hands out content buffers. The filesystem treats a returned buffer
// as exclusively owned by one node for its lifetime. Implementations are not
// required to reclaim memory on Free.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
	Stats() AllocStats
}
