// Package verify provides validation sweeps over a managed heap region.
// These helpers are used in tests and by the CLI to ensure region
// invariants are maintained after every operation.
package verify

import (
	"fmt"

	"github.com/heapkit/heapkit/internal/buf"
	"github.com/heapkit/heapkit/internal/format"
)

// ValidationError describes a failed invariant with its location.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates every region invariant in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte) error {
	if err := Sentinels(data); err != nil {
		return err
	}
	return BlockChain(data)
}

// Sentinels validates the prologue and epilogue marker blocks.
func Sentinels(data []byte) error {
	if len(data) < format.RegionOverhead {
		return &ValidationError{
			Type:    "Sentinels",
			Message: fmt.Sprintf("region too small: %d bytes (need %d)", len(data), format.RegionOverhead),
			Offset:  -1,
		}
	}

	hdr := buf.U32LE(data[format.PadSize:])
	ftr := buf.U32LE(data[format.PadSize+format.TagSize:])
	want := format.PackTag(format.PrologueSize, true)
	if hdr != want || ftr != want {
		return &ValidationError{
			Type:    "Sentinels",
			Message: fmt.Sprintf("bad prologue tags: head %#x, tail %#x, want %#x", hdr, ftr, want),
			Offset:  format.PadSize,
		}
	}

	epi := buf.U32LE(data[len(data)-format.TagSize:])
	if format.TagBlockSize(epi) != 0 || !format.TagAllocated(epi) {
		return &ValidationError{
			Type:    "Sentinels",
			Message: fmt.Sprintf("bad epilogue tag: %#x", epi),
			Offset:  len(data) - format.TagSize,
		}
	}
	return nil
}

// BlockChain walks every block from the prologue to the epilogue and
// validates, for each one:
//
//   - the head tag is in bounds and the size is aligned and legal;
//   - the tail tag agrees with the head tag;
//   - no two consecutive blocks are both free (immediate coalescing);
//   - the walk terminates exactly at the epilogue tag.
func BlockChain(data []byte) error {
	if len(data) < format.RegionOverhead {
		return Sentinels(data)
	}

	bp := format.HeapBase
	prevWasFree := false

	for {
		if !buf.Has(data, bp-format.TagSize, format.TagSize) {
			return &ValidationError{
				Type:    "BlockChain",
				Message: "walk ran past the region end",
				Offset:  bp,
			}
		}
		size, allocated := format.ReadTag(data, bp-format.TagSize)

		if size == 0 {
			if !allocated || bp != len(data) {
				return &ValidationError{
					Type:    "BlockChain",
					Message: fmt.Sprintf("stray zero-size tag (allocated=%v, region end %d)", allocated, len(data)),
					Offset:  bp - format.TagSize,
				}
			}
			return nil // reached the epilogue
		}

		if size%format.DWordSize != 0 || size < format.MinBlockSize {
			return &ValidationError{
				Type:    "BlockChain",
				Message: fmt.Sprintf("illegal block size %d", size),
				Offset:  bp - format.TagSize,
			}
		}
		if !buf.Has(data, bp, int(size)-format.TagSize) {
			return &ValidationError{
				Type:    "BlockChain",
				Message: fmt.Sprintf("block of size %d overruns the region", size),
				Offset:  bp - format.TagSize,
			}
		}

		ftrSize, ftrAllocated := format.ReadTag(data, bp+int(size)-format.BlockOverhead)
		if ftrSize != size || ftrAllocated != allocated {
			return &ValidationError{
				Type:    "BlockChain",
				Message: fmt.Sprintf("boundary tags disagree: head (%d,%v), tail (%d,%v)", size, allocated, ftrSize, ftrAllocated),
				Offset:  bp - format.TagSize,
			}
		}

		if !allocated {
			if prevWasFree {
				return &ValidationError{
					Type:    "BlockChain",
					Message: "two adjacent free blocks",
					Offset:  bp - format.TagSize,
				}
			}
			prevWasFree = true
		} else {
			prevWasFree = false
		}

		bp += int(size)
	}
}
