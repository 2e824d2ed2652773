package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/util"
)

func TestNewNumericColumn(t *testing.T) {
	col := NewNumericColumn(common.BigintType(), []int64{1, 2, 3, 4})
	require.Equal(t, 4, col.Count())
	require.Equal(t, 0, col.NullCount())
	require.False(t, col.Mask.IsMaskSet())

	data := GetSliceFlat[int64](col)
	require.Equal(t, int64(3), data[2])
}

func TestNewNumericColumnWithNulls(t *testing.T) {
	col := NewNumericColumn(common.DoubleType(), []float64{1.5, 0, 3.5}, 1)
	require.Equal(t, 3, col.Count())
	require.Equal(t, 1, col.NullCount())
	require.True(t, col.RowIsValid(0))
	require.False(t, col.RowIsValid(1))

	val := col.GetValue(1)
	require.True(t, val.IsNull)
	val = col.GetValue(2)
	require.False(t, val.IsNull)
	require.Equal(t, 3.5, val.F64)
}

func TestColumnAttachMask(t *testing.T) {
	col := NewColumn(common.BigintType(), 4, util.GAlloc)
	mask := &util.Bitmap{}
	mask.Init(4)
	mask.SetInvalidUnsafe(2)
	col.AttachMask(mask)
	require.Equal(t, 1, col.NullCount())
	require.False(t, col.RowIsValid(2))

	// nil means all valid and no stored mask
	col.AttachMask(nil)
	require.Equal(t, 0, col.NullCount())
	require.False(t, col.Mask.IsMaskSet())
}

func TestScalarEqual(t *testing.T) {
	a := NewNumericScalar(common.BigintType(), int64(42))
	b := NewNumericScalar(common.BigintType(), int64(42))
	require.True(t, a.Equal(b))

	c := NewNumericScalar(common.IntegerType(), int32(42))
	require.False(t, a.Equal(c))

	n := NullScalar(common.BigintType())
	require.False(t, a.Equal(n))
	require.True(t, n.Equal(NullScalar(common.BigintType())))
}

func TestScalarRoundTrip(t *testing.T) {
	s := NewNumericScalar(common.UbigintType(), uint64(1)<<63)
	require.Equal(t, uint64(1)<<63, NumericScalarValue[uint64](s))

	f := NewNumericScalar(common.FloatType(), float32(2.5))
	require.Equal(t, float32(2.5), NumericScalarValue[float32](f))
}
