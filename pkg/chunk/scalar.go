package chunk

import (
	"fmt"

	"github.com/colstream/hostagg/pkg/common"
)

// Scalar is a single typed value with a validity flag. Numeric payload
// lives in the field matching the type's class.
type Scalar struct {
	Typ    common.LType
	IsNull bool
	I64    int64
	U64    uint64
	F64    float64
	Dec    common.Decimal
	Str    string
}

func NullScalar(typ common.LType) *Scalar {
	return &Scalar{Typ: typ, IsNull: true}
}

func ZeroScalar(typ common.LType) *Scalar {
	return &Scalar{Typ: typ}
}

// NewNumericScalar stores val into the class field of typ.
func NewNumericScalar[T Numeric](typ common.LType, val T) *Scalar {
	ret := &Scalar{Typ: typ}
	SetNumericScalar(ret, val)
	return ret
}

func SetNumericScalar[T Numeric](s *Scalar, val T) {
	pTyp := s.Typ.GetInternalType()
	switch {
	case pTyp.IsFloat():
		s.F64 = float64(val)
	case pTyp == common.UINT8 || pTyp == common.UINT16 ||
		pTyp == common.UINT32 || pTyp == common.UINT64:
		s.U64 = uint64(val)
	case pTyp.IsInteger():
		s.I64 = int64(val)
	default:
		panic("usp")
	}
}

// NumericScalarValue reads the scalar back as T. The caller resolves T
// from the scalar's type through the dispatcher first.
func NumericScalarValue[T Numeric](s *Scalar) T {
	pTyp := s.Typ.GetInternalType()
	switch {
	case pTyp.IsFloat():
		return T(s.F64)
	case pTyp == common.UINT8 || pTyp == common.UINT16 ||
		pTyp == common.UINT32 || pTyp == common.UINT64:
		return T(s.U64)
	case pTyp.IsInteger():
		return T(s.I64)
	default:
		panic("usp")
	}
}

func (s *Scalar) Equal(o *Scalar) bool {
	if !s.Typ.Equal(o.Typ) {
		return false
	}
	if s.IsNull != o.IsNull {
		return false
	}
	if s.IsNull {
		return true
	}
	pTyp := s.Typ.GetInternalType()
	switch {
	case pTyp.IsFloat():
		return s.F64 == o.F64
	case pTyp == common.UINT8 || pTyp == common.UINT16 ||
		pTyp == common.UINT32 || pTyp == common.UINT64:
		return s.U64 == o.U64
	case pTyp.IsInteger():
		return s.I64 == o.I64
	case pTyp == common.DECIMAL:
		return s.Dec.Equal(&o.Dec)
	case pTyp == common.VARCHAR:
		return s.Str == o.Str
	default:
		panic("usp")
	}
}

func (s *Scalar) String() string {
	if s.IsNull {
		return "NULL"
	}
	pTyp := s.Typ.GetInternalType()
	switch {
	case pTyp.IsFloat():
		return fmt.Sprintf("%v", s.F64)
	case pTyp == common.UINT8 || pTyp == common.UINT16 ||
		pTyp == common.UINT32 || pTyp == common.UINT64:
		return fmt.Sprintf("%d", s.U64)
	case pTyp.IsInteger():
		return fmt.Sprintf("%d", s.I64)
	case pTyp == common.DECIMAL:
		return s.Dec.String()
	case pTyp == common.VARCHAR:
		return s.Str
	default:
		return s.Typ.String()
	}
}
