package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/internal/format"
)

// The four neighbor cases use a chunk carved into four equal blocks so the
// physical layout is fully known: [b0 | b1 | b2 | b3] with the epilogue
// directly after b3.

func Test_CoalesceBothNeighborsAllocated(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 4)

	require.NoError(t, a.Free(refs[1]))
	sweep(t, a)

	blocks := regionBlocks(t, a)
	require.Len(t, blocks, 4, "no merge may happen")
	require.False(t, blocks[1].allocated)
	require.Equal(t, format.ChunkSize/4, blocks[1].size)
	require.Zero(t, a.Stats().CoalesceForward)
	require.Zero(t, a.Stats().CoalesceBackward)
}

func Test_CoalesceForwardOnly(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 4)

	require.NoError(t, a.Free(refs[2]))
	require.NoError(t, a.Free(refs[1]))
	sweep(t, a)

	blocks := regionBlocks(t, a)
	require.Len(t, blocks, 3)
	require.Equal(t, blockInfo{
		ref:       int(refs[1]),
		size:      format.ChunkSize / 2,
		allocated: false,
	}, blocks[1], "merged block anchored at the released block")
	require.Equal(t, 1, a.Stats().CoalesceForward)
	require.Zero(t, a.Stats().CoalesceBackward)
}

func Test_CoalesceBackwardOnly(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 4)

	require.NoError(t, a.Free(refs[1]))
	require.NoError(t, a.Free(refs[2]))
	sweep(t, a)

	blocks := regionBlocks(t, a)
	require.Len(t, blocks, 3)
	require.Equal(t, blockInfo{
		ref:       int(refs[1]),
		size:      format.ChunkSize / 2,
		allocated: false,
	}, blocks[1], "merged block anchored at the predecessor's address")
	require.Equal(t, 1, a.Stats().CoalesceBackward)
	require.Zero(t, a.Stats().CoalesceForward)
}

func Test_CoalesceBothNeighborsFree(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 4)

	require.NoError(t, a.Free(refs[1]))
	require.NoError(t, a.Free(refs[3]))
	require.NoError(t, a.Free(refs[2]))
	sweep(t, a)

	blocks := regionBlocks(t, a)
	require.Len(t, blocks, 2)
	require.Equal(t, blockInfo{
		ref:       int(refs[1]),
		size:      3 * format.ChunkSize / 4,
		allocated: false,
	}, blocks[1], "all three spans merge into one block at the predecessor")
}

func Test_CoalescedSizeIsExactSum(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 8)

	data := a.r.Bytes()
	sizeA := blockSize(data, int(refs[4]))
	sizeB := blockSize(data, int(refs[5]))

	require.NoError(t, a.Free(refs[4]))
	require.NoError(t, a.Free(refs[5]))
	sweep(t, a)

	require.Equal(t, sizeA+sizeB, blockSize(a.r.Bytes(), int(refs[4])))
}

func Test_CoalescedBlockLeavesOldLists(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 4)

	require.NoError(t, a.Free(refs[1]))
	require.NoError(t, a.Free(refs[2]))

	// One merged block remains; the two original free blocks must be gone
	// from every class list.
	counts := a.freeCountByClass()
	total := 0
	for _, c := range counts {
		total += c
	}
	require.Equal(t, 1, total)
}

func Test_ExtensionMergesWithTrailingFreeBlock(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 4)

	// Free the block that sits against the epilogue, then force growth.
	require.NoError(t, a.Free(refs[3]))
	ref, _, err := a.Allocate(format.ChunkSize - format.BlockOverhead)
	require.NoError(t, err)
	sweep(t, a)

	// The fresh space merged backwards with the trailing free block, so
	// placement reused the pre-growth address.
	require.Equal(t, refs[3], ref)
	require.Equal(t, 1, a.Stats().CoalesceBackward)
}
