package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBack(t *testing.T) {
	require.Equal(t, 3, Back([]int{1, 2, 3}))
	require.Equal(t, 7, Back([]int{7}))
	require.Panics(t, func() { Back([]int{}) })
}

func TestEmptyAndSize(t *testing.T) {
	require.True(t, Empty([]int{}))
	require.False(t, Empty([]int{1}))
	require.Equal(t, 2, Size([]int{1, 2}))
}

func TestFill(t *testing.T) {
	data := make([]uint8, 4)
	Fill(data, 3, 0xFF)
	require.Equal(t, []uint8{0xFF, 0xFF, 0xFF, 0}, data)
}

func TestCopyTo(t *testing.T) {
	src := []uint8{1, 2, 3}
	dst := CopyTo(src)
	require.Equal(t, src, dst)
	dst[0] = 9
	require.Equal(t, uint8(1), src[0])
}
