// Package format houses the low-level layout constants and boundary-tag
// codecs for the managed heap region. The goal is to keep the byte-level
// encoding focused and allocation-free so higher-level packages can
// orchestrate blocks in a more ergonomic form.
package format

const (
	// WordSize is the size of a single machine word in the region layout.
	// Boundary tags occupy exactly one word.
	WordSize = 4

	// DWordSize is the double-word alignment every block size must satisfy.
	DWordSize = 8

	// TagSize is the number of bytes used by a boundary tag. Each block
	// carries one tag at its head and a duplicate at its tail.
	TagSize = WordSize

	// BlockOverhead is the metadata cost per block: head tag plus tail tag.
	BlockOverhead = 2 * TagSize

	// MinBlockSize is the smallest legal block, in bytes, including both
	// tags. A free block must host two word-sized list links inside its
	// payload, so the floor is head + prev + next + tail = 16 bytes.
	MinBlockSize = WordSize + 2*WordSize + WordSize

	// ChunkSize is the default region growth increment. Extensions are
	// rounded up to at least this amount to amortize provider calls.
	ChunkSize = 1 << 12

	// ClassCount is the number of segregated free-list size classes.
	ClassCount = 17

	// PadSize is the alignment padding word at the very start of the
	// region. It shifts the prologue payload onto an 8-byte boundary.
	PadSize = WordSize

	// PrologueSize is the size of the prologue sentinel block: a permanently
	// allocated block of head tag + tail tag and no payload.
	PrologueSize = DWordSize

	// PrologueRef is the payload offset of the prologue sentinel.
	PrologueRef = PadSize + TagSize

	// RegionOverhead is the fixed cost of the empty region: padding,
	// prologue head and tail, and the epilogue head tag.
	RegionOverhead = PadSize + PrologueSize + TagSize

	// HeapBase is the payload offset of the first real block after the
	// prologue, once the region has been extended at least once. The first
	// extension turns the initial epilogue tag into the block's head tag.
	HeapBase = PadSize + PrologueSize + TagSize

	// AllocBit is the low tag bit marking a block as allocated. Sizes are
	// 8-byte aligned, so the low three bits are free for flags.
	AllocBit = 0x1

	// SizeMask extracts the block size from a tag word.
	SizeMask = ^uint32(DWordSize - 1)

	// DWordMask is the bitmask used for aligning to 8-byte boundaries.
	DWordMask = DWordSize - 1

	// ChunkMask is the bitmask used for aligning to chunk boundaries.
	ChunkMask = ChunkSize - 1
)
