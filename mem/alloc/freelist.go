package alloc

import "github.com/heapkit/heapkit/internal/format"

// Segregated free lists. Each size class holds a doubly-linked list of free
// blocks threaded through the blocks' own payload bytes; the head of each
// list lives in the allocator's class table.

// Classify maps a total block size to its size class index.
//
// The partition is the classic repeated-halving policy with a remainder
// correction: sizes at or below MinBlockSize map to class 0, each doubling
// roughly advances one class, and the index saturates at the last class.
// The exact boundaries are a policy choice; insertion and search use this
// same function, so a block is always found under the class it was
// inserted with.
func (a *Allocator) Classify(size int) int {
	class, rem := 0, 0
	for size > format.MinBlockSize && class < a.cfg.ClassCount-1 {
		class++
		rem += size % 2
		size /= 2
	}
	if class < a.cfg.ClassCount-1 && rem > 0 && size == format.MinBlockSize {
		class++
	}
	return class
}

// insert prepends a free block to its class's list. O(1); does not touch
// the block's boundary tags.
func (a *Allocator) insert(bp int) {
	data := a.r.Bytes()
	sc := a.Classify(blockSize(data, bp))
	head := a.classes[sc]

	setLinkPrev(data, bp, 0)
	setLinkNext(data, bp, head)
	if head != 0 {
		setLinkPrev(data, head, bp)
	}
	a.classes[sc] = bp
}

// remove unlinks a block from whatever list it occupies, rewriting the
// neighbor links or the class head. The four structural cases (sole
// member, head with successor, interior, tail) collapse into the two
// branches below. Returns ErrNotFree if the block's allocated flag is
// already set; that is a programming error, not a recoverable condition.
func (a *Allocator) remove(bp int) error {
	data := a.r.Bytes()
	if blockAllocated(data, bp) {
		return ErrNotFree
	}

	prev := linkPrev(data, bp)
	next := linkNext(data, bp)

	if prev == 0 {
		a.classes[a.Classify(blockSize(data, bp))] = next
	} else {
		setLinkNext(data, prev, next)
	}
	if next != 0 {
		setLinkPrev(data, next, prev)
	}

	clearLinks(data, bp)
	return nil
}

// findFit searches for the first free block able to hold asize bytes:
// best-fit by class, first-fit within a class. Starting at the request's
// own class, each class list is scanned in order before escalating to the
// next larger class. Returns false when no class has a sufficient block,
// signaling the caller to extend the region.
func (a *Allocator) findFit(asize int) (int, bool) {
	data := a.r.Bytes()
	for sc := a.Classify(asize); sc < a.cfg.ClassCount; sc++ {
		for bp := a.classes[sc]; bp != 0; bp = linkNext(data, bp) {
			if blockSize(data, bp) >= asize {
				return bp, true
			}
		}
	}
	return 0, false
}

// freeCountByClass walks every class list and returns the per-class block
// counts. Used by the utilization report and by tests.
func (a *Allocator) freeCountByClass() []int {
	data := a.r.Bytes()
	counts := make([]int, a.cfg.ClassCount)
	for sc := range a.classes {
		for bp := a.classes[sc]; bp != 0; bp = linkNext(data, bp) {
			counts[sc]++
		}
	}
	return counts
}
