package alloc

import "github.com/heapkit/heapkit/internal/format"

// Resize changes the payload capacity of the block named by ref to at
// least n bytes, returning the (possibly different) reference and payload.
//
// Degenerate forms: a NoRef behaves as Allocate(n); n == 0 behaves as
// Free(ref) and returns NoRef. A request that rounds to the block's
// current size is a no-op.
//
// Growing prefers merging the free physical successor in place, which
// keeps the original address and avoids a copy; the whole successor is
// absorbed without splitting the surplus. When in-place growth is
// insufficient, a fresh block is allocated, the old payload is copied, and
// the old block is released. Shrinking splits off the freed remainder in
// place when it can form a legal block, and otherwise leaves the block
// over-provisioned; shrinking never forces a copy.
func (a *Allocator) Resize(ref Ref, n int) (Ref, []byte, error) {
	a.stats.ResizeCalls++

	if ref == NoRef {
		return a.Allocate(n)
	}
	if n == 0 {
		return NoRef, nil, a.Free(ref)
	}
	if n < 0 {
		return NoRef, nil, ErrBadRequest
	}

	bp := int(ref)
	if err := a.checkAllocated(bp); err != nil {
		return NoRef, nil, err
	}

	data := a.r.Bytes()
	asize := adjustSize(n)
	old := blockSize(data, bp)

	switch {
	case asize == old:
		return ref, data[bp : bp+payloadSize(data, bp)], nil

	case asize > old:
		// In-place growth: absorb the free successor when the combined
		// span suffices.
		next := nextBlock(data, bp)
		if !blockAllocated(data, next) && old+blockSize(data, next) >= asize {
			if err := a.remove(next); err != nil {
				return NoRef, nil, err
			}
			merged := old + blockSize(data, next)
			writeTags(data, bp, merged, true)
			a.stats.GrowInPlace++
			a.stats.BytesAllocated += int64(merged - old)
			return ref, data[bp : bp+payloadSize(data, bp)], nil
		}

		// Relocate: allocate, copy the old payload, release. The copy is
		// bounded by the old block's payload capacity; Allocate may have
		// replaced the backing slice, so it is re-fetched first.
		newRef, payload, err := a.Allocate(n)
		if err != nil {
			return NoRef, nil, err
		}
		data = a.r.Bytes()
		copy(payload, data[bp:bp+old-format.BlockOverhead])
		if err := a.Free(ref); err != nil {
			return NoRef, nil, err
		}
		return newRef, payload, nil

	default:
		// Shrink in place when the remainder can stand as a block of its
		// own; otherwise keep the over-provisioned size unchanged.
		if old-asize >= format.MinBlockSize {
			writeTags(data, bp, asize, true)
			rest := bp + asize
			writeTags(data, rest, old-asize, false)
			rest, err := a.coalesce(rest)
			if err != nil {
				return NoRef, nil, err
			}
			a.insert(rest)
			a.stats.ShrinkInPlace++
			a.stats.BytesFreed += int64(old - asize)
		}
		return ref, data[bp : bp+payloadSize(data, bp)], nil
	}
}
