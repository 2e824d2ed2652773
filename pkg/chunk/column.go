// Copyright 2024-2025 colstream
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chunk

import (
	"go.uber.org/zap"

	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/util"
)

// Numeric is the element-type set the kernels operate on.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Column is a flat, nullable, typed sequence. Payload bytes at a null
// position carry no meaning.
type Column struct {
	typ   common.LType
	count int
	Data  []byte
	Mask  *util.Bitmap
}

func NewColumn(typ common.LType, count int, alloc util.BytesAllocator) *Column {
	if alloc == nil {
		alloc = util.GAlloc
	}
	col := &Column{
		typ:   typ,
		count: count,
		Mask:  &util.Bitmap{},
	}
	sz := typ.GetInternalType().Size()
	if sz > 0 && count > 0 {
		col.Data = alloc.Alloc(sz * count)
	}
	return col
}

// NewNumericColumn builds a column from values; nullIdx lists the rows
// to mark null.
func NewNumericColumn[T Numeric](typ common.LType, vals []T, nullIdx ...int) *Column {
	col := NewColumn(typ, len(vals), util.GAlloc)
	data := GetSliceFlat[T](col)
	copy(data, vals)
	if len(nullIdx) > 0 {
		col.Mask.PrepareSpace(len(vals))
		col.Mask.SetAllValid(len(vals))
		for _, idx := range nullIdx {
			col.Mask.SetInvalidUnsafe(uint64(idx))
		}
	}
	return col
}

func (col *Column) Typ() common.LType {
	return col.typ
}

func (col *Column) Count() int {
	return col.count
}

func (col *Column) NullCount() int {
	return col.Mask.CountInvalid(col.count)
}

func (col *Column) RowIsValid(idx int) bool {
	return col.Mask.RowIsValid(uint64(idx))
}

func (col *Column) SetNull(idx int, null bool) {
	if null && col.Mask.Invalid() {
		col.Mask.PrepareSpace(col.count)
		col.Mask.SetAllValid(col.count)
	}
	col.Mask.Set(uint64(idx), !null)
}

// AttachMask installs a derived validity mask. A nil mask means all
// rows valid; the column then stores no mask at all.
func (col *Column) AttachMask(mask *util.Bitmap) {
	if mask == nil || mask.AllValid() {
		col.Mask.Reset()
		return
	}
	col.Mask.CopyFrom(mask, col.count)
}

func GetSliceFlat[T any](col *Column) []T {
	pSize := col.Typ().GetInternalType().Size()
	return util.ToSlice[T](col.Data, pSize)
}

func (col *Column) GetValue(idx int) *Scalar {
	util.AssertFunc(idx < col.count)
	if !col.RowIsValid(idx) {
		return &Scalar{Typ: col.typ, IsNull: true}
	}
	val := &Scalar{Typ: col.typ}
	switch col.typ.GetInternalType() {
	case common.INT8:
		val.I64 = int64(GetSliceFlat[int8](col)[idx])
	case common.INT16:
		val.I64 = int64(GetSliceFlat[int16](col)[idx])
	case common.INT32:
		val.I64 = int64(GetSliceFlat[int32](col)[idx])
	case common.INT64:
		val.I64 = GetSliceFlat[int64](col)[idx]
	case common.UINT8:
		val.U64 = uint64(GetSliceFlat[uint8](col)[idx])
	case common.UINT16:
		val.U64 = uint64(GetSliceFlat[uint16](col)[idx])
	case common.UINT32:
		val.U64 = uint64(GetSliceFlat[uint32](col)[idx])
	case common.UINT64:
		val.U64 = GetSliceFlat[uint64](col)[idx]
	case common.FLOAT:
		val.F64 = float64(GetSliceFlat[float32](col)[idx])
	case common.DOUBLE:
		val.F64 = GetSliceFlat[float64](col)[idx]
	default:
		panic("usp")
	}
	return val
}

func (col *Column) Print2(prefix string, rowCount int) {
	fields := make([]zap.Field, 0)
	if rowCount > col.count {
		rowCount = col.count
	}
	for j := 0; j < rowCount; j++ {
		val := col.GetValue(j)
		fields = append(fields, zap.String("", val.String()))
	}
	util.Info(prefix, fields...)
}
