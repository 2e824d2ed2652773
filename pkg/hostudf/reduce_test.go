package hostudf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colstream/hostagg/pkg/chunk"
	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/stream"
)

func newTestStream(t *testing.T) *stream.Stream {
	t.Helper()
	s := stream.NewStream("test", nil, 4)
	t.Cleanup(s.Close)
	return s
}

func TestReduceWholeColumn(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{0, 1, 2, 3, 4, 5})
	bundle := NewInputBundle().
		SetValues(values).
		SetOutputType(common.BigintType())

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	require.NotNil(t, res.Scalar)
	require.False(t, res.Scalar.IsNull)
	require.Equal(t, int64(55), res.Scalar.I64)
}

func TestReduceSkipsNulls(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{1, 100, 3}, 1)
	bundle := NewInputBundle().
		SetValues(values).
		SetOutputType(common.BigintType())

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	require.Equal(t, int64(10), res.Scalar.I64)
}

func TestReduceWithInit(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{2, 3})
	init := chunk.NewNumericScalar(common.BigintType(), int64(7))
	bundle := NewInputBundle().
		SetValues(values).
		SetOutputType(common.BigintType()).
		SetInitValue(init)

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	require.Equal(t, int64(7+4+9), res.Scalar.I64)
}

func TestReduceCrossTypePair(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	values := chunk.NewNumericColumn(common.IntegerType(), []int32{3, 4})
	bundle := NewInputBundle().
		SetValues(values).
		SetOutputType(common.DoubleType())

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	require.Equal(t, float64(25), res.Scalar.F64)
}

func TestReduceInitTypeMismatch(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	values := chunk.NewNumericColumn(common.BigintType(), []int64{1})
	init := chunk.NewNumericScalar(common.IntegerType(), int32(1))
	bundle := NewInputBundle().
		SetValues(values).
		SetOutputType(common.BigintType()).
		SetInitValue(init)

	_, err := udf.Invoke(s, bundle)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestReduceUnsupportedElementType(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	// VARCHAR payload is irrelevant; dispatch must fail before any
	// output allocation
	bundle := NewInputBundle().
		SetValues(chunk.NewColumn(common.VarcharType(), 0, nil)).
		SetOutputType(common.BigintType())

	_, err := udf.Invoke(s, bundle)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestReduceDateElementRejected(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	bundle := NewInputBundle().
		SetValues(chunk.NewColumn(common.DateType(), 0, nil)).
		SetOutputType(common.BigintType())

	_, err := udf.Invoke(s, bundle)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestReduceUnsupportedOutputType(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	bundle := NewInputBundle().
		SetValues(chunk.NewNumericColumn(common.BigintType(), []int64{1})).
		SetOutputType(common.DecimalType(10, 2))

	_, err := udf.Invoke(s, bundle)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestReduceMissingKind(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	bundle := NewInputBundle().
		SetValues(chunk.NewNumericColumn(common.BigintType(), []int64{1}))

	_, err := udf.Invoke(s, bundle)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestReduceEmptyInputEchoesInit(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	empty := chunk.NewNumericColumn(common.BigintType(), []int64{})
	init := chunk.NewNumericScalar(common.BigintType(), int64(9))
	bundle := NewInputBundle().
		SetValues(empty).
		SetOutputType(common.BigintType()).
		SetInitValue(init)

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.True(t, res.Scalar.Equal(init))
}

func TestReduceEmptyInputZeroWithoutInit(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	empty := chunk.NewNumericColumn(common.BigintType(), []int64{})
	bundle := NewInputBundle().
		SetValues(empty).
		SetOutputType(common.BigintType())

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.True(t, res.Scalar.Equal(chunk.ZeroScalar(common.BigintType())))
}

func TestEmptyOutputInitMismatch(t *testing.T) {
	udf := NewSumSquaresReduce()
	init := chunk.NewNumericScalar(common.IntegerType(), int32(1))
	_, err := udf.EmptyOutput(common.BigintType(), init)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestReduceLargeColumnTreeShape(t *testing.T) {
	s := newTestStream(t)
	udf := NewSumSquaresReduce()

	// spans several reduction blocks
	n := 3*reduceBlockSize + 17
	vals := make([]int64, n)
	var want int64
	for i := range vals {
		vals[i] = int64(i % 7)
		want += vals[i] * vals[i]
	}
	bundle := NewInputBundle().
		SetValues(chunk.NewNumericColumn(common.BigintType(), vals)).
		SetOutputType(common.BigintType())

	res, err := udf.Invoke(s, bundle)
	require.NoError(t, err)
	require.NoError(t, s.Synchronize())
	require.Equal(t, want, res.Scalar.I64)
}
