package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colstream/hostagg/pkg/chunk"
	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/hostudf"
)

func TestRegistryBuildsByName(t *testing.T) {
	reg := DefaultRegistry()
	require.Equal(t, []string{
		"sum_of_squares_grouped",
		"sum_of_squares_reduce",
		"sum_of_squares_segmented",
	}, reg.Names())

	udf, err := reg.New("sum_of_squares_reduce")
	require.NoError(t, err)
	require.Equal(t, "sum_of_squares_reduce", udf.Name())

	_, err = reg.New("median")
	require.Error(t, err)
}

func TestResultCacheHit(t *testing.T) {
	c := NewResultCache()
	udf := hostudf.NewSumSquaresReduce()
	want := &hostudf.Result{
		Scalar: chunk.NewNumericScalar(common.BigintType(), int64(55)),
	}
	c.Put("tag-a", udf, want)
	require.Equal(t, 1, c.Len())

	// a fresh instance of the same kind must hit
	got, has := c.Get("tag-a", hostudf.NewSumSquaresReduce())
	require.True(t, has)
	require.Same(t, want, got)
}

func TestResultCacheCrossKindMiss(t *testing.T) {
	c := NewResultCache()
	c.Put("tag-a", hostudf.NewSumSquaresReduce(), &hostudf.Result{})

	_, has := c.Get("tag-a", hostudf.NewSumSquaresGrouped())
	require.False(t, has)
}

func TestResultCacheTagMiss(t *testing.T) {
	c := NewResultCache()
	c.Put("tag-a", hostudf.NewSumSquaresReduce(), &hostudf.Result{})

	_, has := c.Get("tag-b", hostudf.NewSumSquaresReduce())
	require.False(t, has)
}
