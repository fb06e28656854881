//go:build unix

package mem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapProvider is a Provider backed by an anonymous memory mapping.
//
// The full reservation is mapped PROT_NONE up front and pages are committed
// with mprotect as the span grows, so the backing memory never relocates.
// Uncommitted pages stay inaccessible, which turns stray out-of-span writes
// into faults instead of silent corruption.
type MmapProvider struct {
	buf       []byte // full reservation
	used      int    // bytes handed out via Grow
	committed int    // bytes made readable/writable (page-rounded)
	pageSize  int
}

// NewMmapProvider reserves maxBytes of address space (rounded up to the
// page size) and returns a provider that commits it incrementally.
func NewMmapProvider(maxBytes int) (*MmapProvider, error) {
	if maxBytes <= 0 {
		return nil, ErrBadGrow
	}
	pageSize := unix.Getpagesize()
	reserve := roundUp(maxBytes, pageSize)
	buf, err := unix.Mmap(-1, 0, reserve, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mem: reserve %d bytes: %w", reserve, err)
	}
	return &MmapProvider{buf: buf, pageSize: pageSize}, nil
}

// Grow implements Provider.
func (p *MmapProvider) Grow(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrBadGrow
	}
	if p.buf == nil {
		return nil, fmt.Errorf("mem: provider is closed")
	}
	if p.used+n > len(p.buf) {
		return nil, ErrNoMemory
	}
	commitEnd := roundUp(p.used+n, p.pageSize)
	if commitEnd > len(p.buf) {
		commitEnd = len(p.buf)
	}
	if commitEnd > p.committed {
		if err := unix.Mprotect(p.buf[p.committed:commitEnd], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return nil, fmt.Errorf("mem: commit pages: %w", err)
		}
		p.committed = commitEnd
	}
	p.used += n
	return p.buf[:p.used], nil
}

// Close releases the reservation. The region backed by this provider must
// not be used afterwards.
func (p *MmapProvider) Close() error {
	if p.buf == nil {
		return nil
	}
	err := unix.Munmap(p.buf)
	p.buf = nil
	return err
}

func roundUp(n, to int) int {
	return (n + to - 1) / to * to
}
