//go:build !unix

package mem

// MmapProvider falls back to a slice-backed provider on platforms without
// the anonymous-mapping path. The Grow contract is identical.
type MmapProvider struct {
	inner *SliceProvider
}

// NewMmapProvider returns a slice-backed provider capped at maxBytes.
func NewMmapProvider(maxBytes int) (*MmapProvider, error) {
	if maxBytes <= 0 {
		return nil, ErrBadGrow
	}
	return &MmapProvider{inner: NewSliceProvider(maxBytes)}, nil
}

// Grow implements Provider.
func (p *MmapProvider) Grow(n int) ([]byte, error) {
	return p.inner.Grow(n)
}

// Close is a no-op on the fallback provider.
func (p *MmapProvider) Close() error { return nil }
