package alloc

import "errors"

var (
	// ErrBadRequest indicates a non-positive allocation or resize size.
	ErrBadRequest = errors.New("alloc: size must be positive")

	// ErrBadRef indicates a reference that does not name a well-formed
	// block: out of bounds, misaligned, or with disagreeing boundary tags.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrNotAllocated indicates an attempt to free or resize a block that
	// is not marked allocated.
	ErrNotAllocated = errors.New("alloc: block is not allocated")

	// ErrNotFree indicates an attempt to unlink a block whose allocated
	// flag is set. This is a checked programmer error, not a recoverable
	// condition.
	ErrNotFree = errors.New("alloc: expected free block")

	// ErrRegionInUse indicates New was handed a region that already
	// contains data.
	ErrRegionInUse = errors.New("alloc: region is not empty")
)
