package hostudf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colstream/hostagg/pkg/chunk"
	"github.com/colstream/hostagg/pkg/common"
)

func TestGroupedTwoGroups(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresGrouped()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{1, 2, 3})
	bundle := NewInputBundle().
		SetGroupedValues(values).
		SetOffsets([]int{0, 1, 3}).
		SetGroupLabels([]int{0, 1})

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	require.NotNil(t, res.Column)
	require.True(t, res.Column.Typ().Equal(common.DoubleType()))
	require.Equal(t, 2, res.Column.Count())

	data := chunk.GetSliceFlat[float64](res.Column)
	require.Equal(t, float64(1), data[0])
	require.Equal(t, float64(26), data[1])
}

func TestGroupedEmptyGroupIsNull(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresGrouped()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{5})
	bundle := NewInputBundle().
		SetGroupedValues(values).
		SetOffsets([]int{0, 0, 1}).
		SetGroupLabels([]int{0, 1})

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	require.Equal(t, 1, res.Column.NullCount())
	require.False(t, res.Column.RowIsValid(0))
	require.True(t, res.Column.RowIsValid(1))

	data := chunk.GetSliceFlat[float64](res.Column)
	require.Equal(t, float64((1+1)*25), data[1])
}

func TestGroupedNullsAlwaysExcluded(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresGrouped()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{2, 100, 3}, 1)
	bundle := NewInputBundle().
		SetGroupedValues(values).
		SetOffsets([]int{0, 3}).
		SetGroupLabels([]int{0})

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	data := chunk.GetSliceFlat[float64](res.Column)
	require.Equal(t, float64(4+9), data[0])
}

func TestGroupedFloatElements(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresGrouped()

	values := chunk.NewNumericColumn(common.FloatType(), []float32{0.5, 1.5})
	bundle := NewInputBundle().
		SetGroupedValues(values).
		SetOffsets([]int{0, 2}).
		SetGroupLabels([]int{2})

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	data := chunk.GetSliceFlat[float64](res.Column)
	require.InDelta(t, 3*(0.25+2.25), data[0], 1e-9)
}

func TestGroupedLabelCountMismatch(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresGrouped()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{1, 2})
	bundle := NewInputBundle().
		SetGroupedValues(values).
		SetOffsets([]int{0, 1, 2}).
		SetGroupLabels([]int{0})

	_, err := udf.Invoke(s, bundle)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestGroupedRejectsUnexpectedKind(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresGrouped()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{1})
	bundle := NewInputBundle().
		SetGroupedValues(values).
		SetOffsets([]int{0, 1}).
		SetGroupLabels([]int{0}).
		SetNullPolicy(NullInclude)

	_, err := udf.Invoke(s, bundle)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestGroupedUnsupportedElementType(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresGrouped()

	bundle := NewInputBundle().
		SetGroupedValues(chunk.NewColumn(common.BooleanType(), 0, nil)).
		SetOffsets([]int{0}).
		SetGroupLabels([]int{})

	_, err := udf.Invoke(s, bundle)
	require.ErrorIs(t, err, ErrUnsupportedType)
}
