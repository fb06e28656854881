package format

import (
	"encoding/binary"
	"testing"
)

func TestPackTagRoundTrip(t *testing.T) {
	cases := []struct {
		size      uint32
		allocated bool
	}{
		{16, true},
		{16, false},
		{4096, true},
		{0, true}, // epilogue tag
		{1 << 20, false},
	}
	for _, c := range cases {
		tag := PackTag(c.size, c.allocated)
		if got := TagBlockSize(tag); got != c.size {
			t.Fatalf("TagBlockSize(PackTag(%d, %v)) = %d", c.size, c.allocated, got)
		}
		if got := TagAllocated(tag); got != c.allocated {
			t.Fatalf("TagAllocated(PackTag(%d, %v)) = %v", c.size, c.allocated, got)
		}
	}
}

func TestPutReadTag(t *testing.T) {
	b := make([]byte, 32)
	PutTag(b, 8, 48, true)

	raw := binary.LittleEndian.Uint32(b[8:])
	if raw != 48|AllocBit {
		t.Fatalf("raw tag = %#x, want %#x", raw, 48|AllocBit)
	}

	size, allocated := ReadTag(b, 8)
	if size != 48 || !allocated {
		t.Fatalf("ReadTag = (%d, %v), want (48, true)", size, allocated)
	}
}

func TestMinBlockHostsFreeLinks(t *testing.T) {
	// A free block stores two word-sized links inside its payload, so the
	// minimum block must be at least both tags plus both links.
	if MinBlockSize < BlockOverhead+2*WordSize {
		t.Fatalf("MinBlockSize %d cannot host free-list links", MinBlockSize)
	}
	if MinBlockSize%DWordSize != 0 {
		t.Fatalf("MinBlockSize %d not double-word aligned", MinBlockSize)
	}
}
