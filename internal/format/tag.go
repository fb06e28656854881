package format

// Boundary tag codec.
//
// Tag layout (little-endian uint32):
//
//	31                     3  2  1  0
//	-----------------------------------
//	| s  s  s  ...  s  s  s  0  0  a |
//	-----------------------------------
//
// where s are the size bits (the block size is always a multiple of 8, so
// the low three bits are zero) and a is set iff the block is allocated.
// The same word is written at the block's head and duplicated at its tail.

// PackTag combines a block size and an allocated flag into a tag word.
func PackTag(size uint32, allocated bool) uint32 {
	if allocated {
		return size | AllocBit
	}
	return size
}

// TagBlockSize extracts the block size from a tag word.
func TagBlockSize(tag uint32) uint32 {
	return tag & SizeMask
}

// TagAllocated reports whether the tag word marks an allocated block.
func TagAllocated(tag uint32) bool {
	return tag&AllocBit != 0
}

// PutTag writes a packed tag word at the given byte offset.
func PutTag(b []byte, off int, size uint32, allocated bool) {
	PutU32(b, off, PackTag(size, allocated))
}

// ReadTag reads the tag word at the given byte offset and unpacks it.
func ReadTag(b []byte, off int) (size uint32, allocated bool) {
	tag := ReadU32(b, off)
	return TagBlockSize(tag), TagAllocated(tag)
}
