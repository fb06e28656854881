package format

import "encoding/binary"

// Binary encoding utilities for little-endian words.
//
// Boundary tags and free-list links are stored as little-endian uint32
// values inside the region. Go's standard binary.LittleEndian calls are
// inlined by the compiler, so no unsafe variants are needed.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}
