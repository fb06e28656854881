package alloc

import "github.com/heapkit/heapkit/internal/format"

// Block addressing helpers. A block reference bp is the byte offset of the
// block's payload; the head tag sits one word before it and the tail tag
// one word before the payload end:
//
//	bp-4       bp            bp+size-8   bp+size-4
//	| head tag | payload ... | tail tag  | next head tag ...
//
// For free blocks the first two payload words hold the class-list links:
//
//	bp+0  prev block ref (0 = list head)
//	bp+4  next block ref (0 = list tail)
//
// These helpers assume bp names a well-formed block; callers validate
// untrusted refs with checkAllocated before using them.

func hdrOff(bp int) int { return bp - format.TagSize }

func ftrOff(data []byte, bp int) int {
	return bp + blockSize(data, bp) - format.BlockOverhead
}

// blockSize returns the block's total size, including both tags.
func blockSize(data []byte, bp int) int {
	size, _ := format.ReadTag(data, hdrOff(bp))
	return int(size)
}

// blockAllocated reads the allocated flag from the head tag.
func blockAllocated(data []byte, bp int) bool {
	_, allocated := format.ReadTag(data, hdrOff(bp))
	return allocated
}

// payloadSize returns the usable payload bytes of the block.
func payloadSize(data []byte, bp int) int {
	return blockSize(data, bp) - format.BlockOverhead
}

// writeTags stamps the head and tail tags with a matching size/flag pair.
// The tail position is derived from the size being written, not the old
// head tag, so this is also used to retag a block to a new size.
func writeTags(data []byte, bp, size int, allocated bool) {
	format.PutTag(data, hdrOff(bp), uint32(size), allocated)
	format.PutTag(data, bp+size-format.BlockOverhead, uint32(size), allocated)
}

// nextBlock returns the payload offset of the physically following block.
// On the last real block this lands on the epilogue sentinel's payload
// position, where the head tag reads as size 0, allocated.
func nextBlock(data []byte, bp int) int {
	return bp + blockSize(data, bp)
}

// prevBlock returns the payload offset of the physically preceding block,
// read from that block's tail tag just before our head tag.
func prevBlock(data []byte, bp int) int {
	prevSize, _ := format.ReadTag(data, bp-format.BlockOverhead)
	return bp - int(prevSize)
}

// prevFree reports whether the physically preceding block is free, read
// from its tail tag. At the start of the region this inspects the prologue
// footer, which is permanently allocated, so no bounds special case is
// needed.
func prevFree(data []byte, bp int) bool {
	_, allocated := format.ReadTag(data, bp-format.BlockOverhead)
	return !allocated
}

// Free-list links, stored inside the free block's payload.

func linkPrev(data []byte, bp int) int {
	return int(format.ReadU32(data, bp))
}

func linkNext(data []byte, bp int) int {
	return int(format.ReadU32(data, bp+format.WordSize))
}

func setLinkPrev(data []byte, bp, prev int) {
	format.PutU32(data, bp, uint32(prev))
}

func setLinkNext(data []byte, bp, next int) {
	format.PutU32(data, bp+format.WordSize, uint32(next))
}

func clearLinks(data []byte, bp int) {
	setLinkPrev(data, bp, 0)
	setLinkNext(data, bp, 0)
}
