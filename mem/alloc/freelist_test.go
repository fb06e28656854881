package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/internal/format"
)

func Test_ClassifyBaselineAndSaturation(t *testing.T) {
	a := newTestAllocator(t, 0, nil)

	require.Zero(t, a.Classify(format.MinBlockSize))
	require.Zero(t, a.Classify(format.MinBlockSize-8))

	// Very large sizes saturate at the last class.
	require.Equal(t, a.cfg.ClassCount-1, a.Classify(1<<30))
}

func Test_ClassifyMonotonic(t *testing.T) {
	a := newTestAllocator(t, 0, nil)

	prev := 0
	for size := format.MinBlockSize; size <= 1<<20; size += 8 {
		sc := a.Classify(size)
		require.GreaterOrEqual(t, sc, prev, "classify must not decrease at size %d", size)
		require.Less(t, sc, a.cfg.ClassCount)
		prev = sc
	}
}

func Test_ClassifyRoughlyDoubles(t *testing.T) {
	a := newTestAllocator(t, 0, nil)

	// Each doubling of the size advances at least one class until
	// saturation, which keeps the search cost bounded by the class count.
	for size := format.MinBlockSize; size < 1<<24; size *= 2 {
		sc, next := a.Classify(size), a.Classify(size*2)
		if sc == a.cfg.ClassCount-1 {
			require.Equal(t, sc, next)
			continue
		}
		require.Greater(t, next, sc, "doubling %d must advance the class", size)
	}
}

func Test_InsertAndSearchAgreeOnClass(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 8)

	// Three same-sized free blocks, deliberately non-adjacent.
	for _, i := range []int{0, 2, 4} {
		require.NoError(t, a.Free(refs[i]))
	}

	counts := a.freeCountByClass()
	sc := a.Classify(format.ChunkSize / 8)
	require.Equal(t, 3, counts[sc], "all three blocks filed under their class")

	// A matching request must find them without growing the region.
	grewBefore := a.Stats().ExtendCalls
	ref, _, err := a.Allocate(format.ChunkSize/8 - format.BlockOverhead)
	require.NoError(t, err)
	require.Equal(t, grewBefore, a.Stats().ExtendCalls)
	require.Contains(t, []Ref{refs[0], refs[2], refs[4]}, ref)
}

func Test_RemoveStructuralCases(t *testing.T) {
	// Freeing in this order builds a class list [b4, b2, b0] (insert
	// prepends). Allocation removes head, interior, and tail members.
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 8)
	for _, i := range []int{0, 2, 4} {
		require.NoError(t, a.Free(refs[i]))
	}
	data := a.r.Bytes()
	sc := a.Classify(format.ChunkSize / 8)

	// Head with successor.
	require.NoError(t, a.remove(int(refs[4])))
	require.Equal(t, int(refs[2]), a.classes[sc])
	require.Zero(t, linkPrev(data, int(refs[2])))

	// Tail.
	require.NoError(t, a.remove(int(refs[0])))
	require.Zero(t, linkNext(data, int(refs[2])))

	// Sole member.
	require.NoError(t, a.remove(int(refs[2])))
	require.Zero(t, a.classes[sc])

	// Re-link and unlink the interior member of a three-element list.
	a.insert(int(refs[0]))
	a.insert(int(refs[2]))
	a.insert(int(refs[4]))
	require.NoError(t, a.remove(int(refs[2])))
	require.Equal(t, int(refs[4]), a.classes[sc])
	require.Equal(t, int(refs[0]), linkNext(data, int(refs[4])))
	require.Equal(t, int(refs[4]), linkPrev(data, int(refs[0])))
}

func Test_RemoveRejectsAllocatedBlock(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 4)

	require.ErrorIs(t, a.remove(int(refs[0])), ErrNotFree)
}

func Test_FindFitEscalatesClasses(t *testing.T) {
	a := newTestAllocator(t, 0, nil)

	// Only free block is the big initial chunk in a high class; a tiny
	// request must still find it.
	bp, ok := a.findFit(format.MinBlockSize)
	require.True(t, ok)
	require.Equal(t, format.HeapBase, bp)
}

func Test_FindFitReportsMiss(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	fillChunk(t, a, 4)

	_, ok := a.findFit(format.MinBlockSize)
	require.False(t, ok, "no free blocks remain")
}

func Test_FindFitFirstFitWithinClass(t *testing.T) {
	a := newTestAllocator(t, 0, nil)
	refs := fillChunk(t, a, 8)

	require.NoError(t, a.Free(refs[2]))
	require.NoError(t, a.Free(refs[4]))

	// Both free blocks are the same size and class; first fit returns
	// the most recently inserted one.
	bp, ok := a.findFit(format.ChunkSize / 8)
	require.True(t, ok)
	require.Equal(t, int(refs[4]), bp)
}
