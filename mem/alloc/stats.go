package alloc

// Stats holds allocator counters for testing and instrumentation.
type Stats struct {
	AllocCalls    int // Total Allocate() calls
	AllocFastPath int // Allocations satisfied from the free lists
	AllocSlowPath int // Allocations that required a region extension
	FreeCalls     int // Total Free() calls
	ResizeCalls   int // Total Resize() calls

	ExtendCalls int   // Number of region extensions
	ExtendBytes int64 // Total bytes added via extension

	SplitCount       int // Number of block splits
	CoalesceForward  int // Merges with the physical successor
	CoalesceBackward int // Merges with the physical predecessor
	GrowInPlace      int // Resizes grown by absorbing the successor
	ShrinkInPlace    int // Resizes shrunk by splitting in place

	BytesAllocated int64 // Total bytes allocated (including tags)
	BytesFreed     int64 // Total bytes freed
}

// Stats returns a copy of the current counters.
func (a *Allocator) Stats() Stats { return a.stats }

// LiveBytes returns the bytes currently held by allocated blocks,
// including their tag overhead.
func (a *Allocator) LiveBytes() int64 {
	return a.stats.BytesAllocated - a.stats.BytesFreed
}
