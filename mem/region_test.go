package mem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionExtendReturnsStartOffset(t *testing.T) {
	r := NewRegion(NewSliceProvider(0))

	off, err := r.Extend(64)
	require.NoError(t, err)
	require.Equal(t, 0, off)
	require.Equal(t, 64, r.Size())

	off, err = r.Extend(128)
	require.NoError(t, err)
	require.Equal(t, 64, off, "new space must begin at the old region end")
	require.Equal(t, 192, r.Size())
}

func TestRegionExtendZeroFills(t *testing.T) {
	r := NewRegion(NewSliceProvider(0))

	_, err := r.Extend(32)
	require.NoError(t, err)
	for i, b := range r.Bytes() {
		require.Zero(t, b, "byte %d should be zero-initialized", i)
	}
}

func TestRegionOffsetsStableAcrossGrowth(t *testing.T) {
	r := NewRegion(NewSliceProvider(0))

	_, err := r.Extend(16)
	require.NoError(t, err)
	r.Bytes()[8] = 0xAB

	_, err = r.Extend(4096)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), r.Bytes()[8], "contents must survive extension")
}

func TestRegionExtendRejectsNonPositive(t *testing.T) {
	r := NewRegion(NewSliceProvider(0))

	_, err := r.Extend(0)
	require.ErrorIs(t, err, ErrBadGrow)

	_, err = r.Extend(-8)
	require.ErrorIs(t, err, ErrBadGrow)
}

func TestRegionExtendPropagatesExhaustion(t *testing.T) {
	r := NewRegion(NewSliceProvider(100))

	_, err := r.Extend(64)
	require.NoError(t, err)

	_, err = r.Extend(64)
	require.ErrorIs(t, err, ErrNoMemory)
	require.Equal(t, 64, r.Size(), "failed extension must not change the region")
}
