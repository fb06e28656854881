package mem

import "fmt"

// Region is a single contiguous, growable span of managed memory.
//
// The region starts empty and grows only through Extend. All addressing
// into the region is by byte offset; offsets never move once handed out.
type Region struct {
	p    Provider
	data []byte
}

// NewRegion returns an empty region backed by the given provider.
func NewRegion(p Provider) *Region {
	return &Region{p: p}
}

// Bytes returns the current backing slice. The slice may be replaced by a
// later Extend call; callers must not retain it across extensions.
func (r *Region) Bytes() []byte { return r.data }

// Size returns the current region size in bytes.
func (r *Region) Size() int { return len(r.data) }

// Extend grows the region by n bytes and returns the offset where the new
// space begins. A provider failure is propagated unchanged so callers can
// distinguish exhaustion (ErrNoMemory) from misuse.
func (r *Region) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, ErrBadGrow
	}
	start := len(r.data)
	data, err := r.p.Grow(n)
	if err != nil {
		return 0, err
	}
	if len(data) != start+n {
		return 0, fmt.Errorf("mem: provider grew to %d bytes, want %d", len(data), start+n)
	}
	r.data = data
	return start, nil
}
