package alloc

import (
	"fmt"
	"os"

	"github.com/heapkit/heapkit/internal/buf"
	"github.com/heapkit/heapkit/internal/format"
	"github.com/heapkit/heapkit/mem"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugAlloc = false

// Runtime flag for allocation logging - controlled by HEAPKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Allocator manages a region as a chain of boundary-tagged blocks with
// segregated free lists. All allocator state lives in this value; multiple
// independent allocators over separate regions may coexist.
type Allocator struct {
	r   *mem.Region
	cfg Config

	// classes holds one list head (payload offset) per size class;
	// 0 marks an empty class.
	classes []int

	stats Stats
}

// New initializes an allocator over an empty region: it lays down the
// padding word, the prologue and epilogue sentinels, then performs one
// initial chunk-sized extension. A nil cfg selects DefaultConfig. Fails
// with the provider's error when the initial region cannot be obtained.
func New(r *mem.Region, cfg *Config) (*Allocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if r.Size() != 0 {
		return nil, ErrRegionInUse
	}

	a := &Allocator{
		r:       r,
		cfg:     *cfg,
		classes: make([]int, cfg.ClassCount),
	}

	if _, err := r.Extend(format.RegionOverhead); err != nil {
		return nil, fmt.Errorf("alloc: initialize region: %w", err)
	}
	data := r.Bytes()
	// Padding word stays zero. Prologue: an allocated 8-byte block of head
	// and tail tag only. Epilogue: a lone allocated tag of declared size 0.
	format.PutTag(data, format.PadSize, format.PrologueSize, true)
	format.PutTag(data, format.PadSize+format.TagSize, format.PrologueSize, true)
	format.PutTag(data, format.RegionOverhead-format.TagSize, 0, true)

	if _, err := a.extendHeap(a.cfg.ChunkSize); err != nil {
		return nil, err
	}
	return a, nil
}

// Region exposes the managed region, mainly for verification sweeps.
func (a *Allocator) Region() *mem.Region { return a.r }

// adjustSize converts a requested payload size to a block size: payload
// rounded up to double-word alignment plus both tags, floored at the
// minimum block size.
func adjustSize(n int) int {
	asize := format.Align8(n) + format.BlockOverhead
	if asize < format.MinBlockSize {
		asize = format.MinBlockSize
	}
	return asize
}

// Allocate returns a reference to a block whose payload holds at least n
// bytes, along with the payload slice. Fails with ErrBadRequest for
// non-positive n, or with the provider's error when the region cannot grow
// to satisfy the request. The failure path never mutates block metadata.
func (a *Allocator) Allocate(n int) (Ref, []byte, error) {
	a.stats.AllocCalls++

	if n <= 0 {
		return NoRef, nil, ErrBadRequest
	}
	asize := adjustSize(n)

	bp, ok := a.findFit(asize)
	if ok {
		a.stats.AllocFastPath++
	} else {
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[ALLOC] need grow: asize=%d region=%d\n", asize, a.r.Size())
		}
		grow := asize
		if grow < a.cfg.ChunkSize {
			grow = a.cfg.ChunkSize
		}
		var err error
		bp, err = a.extendHeap(grow)
		if err != nil {
			return NoRef, nil, err
		}
		a.stats.AllocSlowPath++
	}

	if err := a.place(bp, asize); err != nil {
		return NoRef, nil, err
	}

	data := a.r.Bytes()
	a.stats.BytesAllocated += int64(blockSize(data, bp))
	return Ref(bp), data[bp : bp+payloadSize(data, bp)], nil
}

// place carves an allocated block of asize bytes out of the free block at
// bp. The block is removed from its list first; when the leftover is at
// least the minimum block size it is split off as a new free block and
// reinserted, otherwise the whole block is consumed.
func (a *Allocator) place(bp, asize int) error {
	if err := a.remove(bp); err != nil {
		return err
	}
	data := a.r.Bytes()
	csize := blockSize(data, bp)

	debugLogf("place bp=%d asize=%d csize=%d", bp, asize, csize)
	if csize-asize >= format.MinBlockSize {
		a.stats.SplitCount++
		writeTags(data, bp, asize, true)
		rest := bp + asize
		writeTags(data, rest, csize-asize, false)
		a.insert(rest)
	} else {
		writeTags(data, bp, csize, true)
	}
	return nil
}

// Free releases the block named by ref. The reference is validated first:
// freeing a ref the allocator never returned yields ErrBadRef or
// ErrNotAllocated instead of corrupting the region. The block is marked
// free, merged with any free physical neighbors, and the result is
// inserted into its class list.
func (a *Allocator) Free(ref Ref) error {
	a.stats.FreeCalls++

	bp := int(ref)
	if err := a.checkAllocated(bp); err != nil {
		return err
	}
	data := a.r.Bytes()
	size := blockSize(data, bp)

	writeTags(data, bp, size, false)
	a.stats.BytesFreed += int64(size)

	bp, err := a.coalesce(bp)
	if err != nil {
		return err
	}
	debugLogf("free bp=%d size=%d", bp, blockSize(data, bp))
	a.insert(bp)
	return nil
}

// coalesce merges the free block at bp with free physical neighbors and
// returns the resulting block, anchored at the predecessor's address when
// merging backwards. The result is NOT inserted into a free list; that is
// the caller's responsibility, preserving the invariant that a block is
// listed iff it is free and not mid-operation.
func (a *Allocator) coalesce(bp int) (int, error) {
	data := a.r.Bytes()
	size := blockSize(data, bp)

	next := nextBlock(data, bp)
	nextAlloc := blockAllocated(data, next)
	prevAlloc := !prevFree(data, bp)

	switch {
	case prevAlloc && nextAlloc:
		return bp, nil

	case prevAlloc && !nextAlloc:
		a.stats.CoalesceForward++
		if err := a.remove(next); err != nil {
			return 0, err
		}
		size += blockSize(data, next)
		writeTags(data, bp, size, false)

	case !prevAlloc && nextAlloc:
		a.stats.CoalesceBackward++
		prev := prevBlock(data, bp)
		if err := a.remove(prev); err != nil {
			return 0, err
		}
		size += blockSize(data, prev)
		writeTags(data, prev, size, false)
		bp = prev

	default:
		a.stats.CoalesceForward++
		a.stats.CoalesceBackward++
		prev := prevBlock(data, bp)
		if err := a.remove(prev); err != nil {
			return 0, err
		}
		if err := a.remove(next); err != nil {
			return 0, err
		}
		size += blockSize(data, prev) + blockSize(data, next)
		writeTags(data, prev, size, false)
		bp = prev
	}
	return bp, nil
}

// extendHeap grows the region by at least min bytes, formats the new space
// as one free block, writes a fresh epilogue after it, merges with a free
// block that was adjacent to the old epilogue, and inserts the result.
// Returns the resulting free block. The provider's failure is propagated
// before any block metadata is touched.
func (a *Allocator) extendHeap(min int) (int, error) {
	size := format.Align8(min)
	start, err := a.r.Extend(size)
	if err != nil {
		return 0, fmt.Errorf("alloc: extend: %w", err)
	}
	a.stats.ExtendCalls++
	a.stats.ExtendBytes += int64(size)

	data := a.r.Bytes()
	// The old epilogue tag at start-4 becomes the new block's head tag;
	// its payload begins exactly where the new space does.
	bp := start
	writeTags(data, bp, size, false)
	format.PutTag(data, nextBlock(data, bp)-format.TagSize, 0, true)

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[GROW] #%d: +%d bytes, region=%d\n",
			a.stats.ExtendCalls, size, a.r.Size())
	}

	bp, err = a.coalesce(bp)
	if err != nil {
		return 0, err
	}
	a.insert(bp)
	return bp, nil
}

// checkAllocated validates an untrusted block reference: in bounds,
// aligned, allocated, tags in agreement, and not one of the sentinels.
func (a *Allocator) checkAllocated(bp int) error {
	data := a.r.Bytes()

	if bp < format.HeapBase || bp%format.DWordSize != 0 ||
		!buf.Has(data, hdrOff(bp), format.TagSize) {
		return ErrBadRef
	}
	size, allocated := format.ReadTag(data, hdrOff(bp))
	if size < format.MinBlockSize || !buf.Has(data, bp, int(size)-format.TagSize) {
		return ErrBadRef
	}
	ftrSize, ftrAllocated := format.ReadTag(data, ftrOff(data, bp))
	if ftrSize != size || ftrAllocated != allocated {
		return ErrBadRef
	}
	if !allocated {
		return ErrNotAllocated
	}
	return nil
}

// debugLogf prints debug messages if debugAlloc is enabled.
func debugLogf(f string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+f+"\n", args...)
	}
}
