package hostudf

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colstream/hostagg/pkg/stream"
)

func TestDeriveValidityAllValid(t *testing.T) {
	s := newTestStream(t)
	mask, nulls := DeriveValidity(s, 100, func(idx int) bool { return true })
	require.Nil(t, mask)
	require.Equal(t, 0, nulls)
}

func TestDeriveValidityMixed(t *testing.T) {
	s := newTestStream(t)
	mask, nulls := DeriveValidity(s, 19, func(idx int) bool { return idx%3 != 0 })
	require.NotNil(t, mask)
	require.Equal(t, 7, nulls)
	for idx := 0; idx < 19; idx++ {
		require.Equal(t, idx%3 != 0, mask.RowIsValid(uint64(idx)))
	}
}

func TestDeriveValidityEmpty(t *testing.T) {
	s := newTestStream(t)
	mask, nulls := DeriveValidity(s, 0, func(idx int) bool { return false })
	require.Nil(t, mask)
	require.Equal(t, 0, nulls)
}

func TestDeriveValidityTailBitsClear(t *testing.T) {
	s := newTestStream(t)
	mask, nulls := DeriveValidity(s, 10, func(idx int) bool { return idx != 0 })
	require.Equal(t, 1, nulls)
	// rows 8 and 9 live in the second entry; bits beyond count stay
	// clear, matching SetAllValid
	require.Equal(t, uint8(0xFE), mask.Bits[0])
	require.Equal(t, uint8(0x03), mask.Bits[1])
}

type countingAlloc struct {
	allocs atomic.Int32
}

func (a *countingAlloc) Alloc(sz int) []byte {
	a.allocs.Add(1)
	return make([]byte, sz)
}

func (a *countingAlloc) Free(bytes []byte) {
}

func TestDeriveValidityUsesStreamAllocator(t *testing.T) {
	alloc := &countingAlloc{}
	s := stream.NewStream("test", alloc, 2)
	t.Cleanup(s.Close)

	mask, nulls := DeriveValidity(s, 5, func(idx int) bool { return idx%2 == 0 })
	require.NotNil(t, mask)
	require.Equal(t, 2, nulls)
	require.GreaterOrEqual(t, alloc.allocs.Load(), int32(1))
}

func TestDeriveValidityAllNull(t *testing.T) {
	s := newTestStream(t)
	mask, nulls := DeriveValidity(s, 9, func(idx int) bool { return false })
	require.NotNil(t, mask)
	require.Equal(t, 9, nulls)
	require.Equal(t, 9, mask.CountInvalid(9))
}
