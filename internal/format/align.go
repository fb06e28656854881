package format

// Alignment utilities for the heap region layout. Block sizes must be
// double-word (8-byte) aligned; region extensions are rounded to the chunk
// growth increment.

// Align8 returns n aligned up to the next 8-byte boundary.
// Used for block sizes, which must be double-word aligned.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n int) int {
	return (n + DWordMask) & ^DWordMask
}

// AlignChunk returns n aligned up to the next chunk (4096-byte) boundary.
// Used when sizing region extensions.
//
// Example:
//
//	AlignChunk(1)    = 4096
//	AlignChunk(4096) = 4096
//	AlignChunk(4097) = 8192
func AlignChunk(n int) int {
	return (n + ChunkMask) & ^ChunkMask
}
