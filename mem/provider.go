package mem

import "errors"

var (
	// ErrNoMemory indicates the provider cannot extend the span any further.
	ErrNoMemory = errors.New("mem: no memory available")

	// ErrBadGrow indicates a non-positive growth request.
	ErrBadGrow = errors.New("mem: growth size must be positive")
)

// Provider supplies raw memory to a Region.
//
// Grow extends the raw span by exactly n bytes and returns the full backing
// slice including the new, zeroed bytes. Growth is monotonic: a provider
// never shrinks the span, and byte offsets handed out before a Grow call
// remain valid after it.
type Provider interface {
	Grow(n int) ([]byte, error)
}

// SliceProvider is a Provider backed by an ordinary byte slice.
//
// A non-zero limit caps the total span size; once reached, Grow fails with
// ErrNoMemory. Tests use the limit to exercise exhaustion deterministically.
type SliceProvider struct {
	data  []byte
	limit int
}

// NewSliceProvider returns a slice-backed provider. limit is the maximum
// total span size in bytes; zero means unlimited.
func NewSliceProvider(limit int) *SliceProvider {
	return &SliceProvider{limit: limit}
}

// Grow implements Provider.
func (p *SliceProvider) Grow(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrBadGrow
	}
	if p.limit > 0 && len(p.data)+n > p.limit {
		return nil, ErrNoMemory
	}
	p.data = append(p.data, make([]byte, n)...)
	return p.data, nil
}
