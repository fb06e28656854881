package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/internal/format"
	"github.com/heapkit/heapkit/mem"
	"github.com/heapkit/heapkit/mem/verify"
)

// newTestAllocator builds an allocator over a slice-backed region.
// limit caps the provider (0 = unlimited) for exhaustion tests.
func newTestAllocator(t testing.TB, limit int, cfg *Config) *Allocator {
	t.Helper()
	r := mem.NewRegion(mem.NewSliceProvider(limit))
	a, err := New(r, cfg)
	require.NoError(t, err)
	return a
}

// sweep validates every region invariant.
func sweep(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, verify.AllInvariants(a.r.Bytes()))
}

// blockInfo mirrors one block observed while walking the region.
type blockInfo struct {
	ref       int
	size      int
	allocated bool
}

// regionBlocks walks the chain from the first real block to the epilogue
// and returns what it saw. It assumes the chain is well-formed; tests that
// corrupt the region deliberately must not use it afterwards.
func regionBlocks(t testing.TB, a *Allocator) []blockInfo {
	t.Helper()
	data := a.r.Bytes()

	var blocks []blockInfo
	for bp := format.HeapBase; ; {
		size, allocated := format.ReadTag(data, bp-format.TagSize)
		if size == 0 {
			require.Equal(t, len(data), bp, "epilogue must sit at the region end")
			return blocks
		}
		blocks = append(blocks, blockInfo{ref: bp, size: int(size), allocated: allocated})
		bp += int(size)
	}
}

// fillChunk allocates count equal blocks that together consume exactly one
// standard chunk, giving tests full control over physical adjacency.
// With the standard config, count must divide format.ChunkSize.
func fillChunk(t testing.TB, a *Allocator, count int) []Ref {
	t.Helper()
	blockSize := format.ChunkSize / count
	refs := make([]Ref, count)
	for i := range refs {
		ref, payload, err := a.Allocate(blockSize - format.BlockOverhead)
		require.NoError(t, err)
		require.Len(t, payload, blockSize-format.BlockOverhead)
		refs[i] = ref
	}
	return refs
}
