// Package alloc implements a general-purpose heap allocator over a single
// growable memory region, using boundary-tag block metadata and segregated
// free lists.
//
// # Overview
//
// The allocator manages the region handed to it by package mem as a chain of
// blocks. Every block carries a boundary tag (size plus allocated flag) at
// both its head and its tail, so the chain can be walked in either direction
// without separate bookkeeping. Free blocks are kept in segregated
// free lists bucketed by size class, with the doubly-linked list links
// stored inside the free blocks' own payload bytes.
//
// # Operations
//
//   - Allocate(n): find a fitting free block (best-fit by class, first-fit
//     within a class), extending the region when none fits, and split off
//     any sufficiently large remainder.
//   - Free(ref): mark the block free, merge it with free physical
//     neighbors, and reinsert the result.
//   - Resize(ref, n): grow in place by absorbing a free successor, shrink
//     in place by splitting, or fall back to allocate-copy-free.
//
// # Region layout
//
// The region begins with one word of alignment padding followed by two
// permanently allocated sentinel blocks: an 8-byte prologue and a size-zero
// epilogue tag at the region end. The sentinels are never split, freed, or
// coalesced; they exist purely to remove edge-of-region special cases.
//
//	0        4        8        12                  len-4
//	| pad    | pro hdr | pro ftr | blocks ...      | epi hdr |
//
// # Invariants
//
//   - Head and tail tags of every block always agree.
//   - No two physically adjacent blocks are ever simultaneously free;
//     coalescing is immediate, not deferred.
//   - Every block size is a multiple of 8 and at least MinBlockSize, which
//     is sized so a free block can host its two list links.
//   - A block is linked into a free list iff it is free and not
//     mid-operation.
//
// # Addressing
//
// Blocks are identified by a Ref: the byte offset of the block's payload
// within the region. Ref 0 is never a valid block and doubles as the "no
// block" sentinel. Free and Resize validate the target block's tags before
// touching anything and return a checked error for refs the allocator never
// handed out, rather than corrupting the region.
//
// # Errors
//
// Invalid requests fail with ErrBadRequest without mutating state.
// Exhaustion of the underlying provider surfaces as a wrapped
// mem.ErrNoMemory from Allocate or Resize and is never retried internally.
//
// # Thread safety
//
// Allocator instances are not thread-safe. Every operation is assumed to
// run to completion without interleaving; callers must serialize access.
package alloc
