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

package common

import "fmt"

type LTypeId int

const (
	LTID_INVALID   LTypeId = 0
	LTID_NULL      LTypeId = 1
	LTID_BOOLEAN   LTypeId = 2
	LTID_TINYINT   LTypeId = 3
	LTID_SMALLINT  LTypeId = 4
	LTID_INTEGER   LTypeId = 5
	LTID_BIGINT    LTypeId = 6
	LTID_UTINYINT  LTypeId = 7
	LTID_USMALLINT LTypeId = 8
	LTID_UINTEGER  LTypeId = 9
	LTID_UBIGINT   LTypeId = 10
	LTID_FLOAT     LTypeId = 11
	LTID_DOUBLE    LTypeId = 12
	LTID_DECIMAL   LTypeId = 13
	LTID_VARCHAR   LTypeId = 14
	LTID_DATE      LTypeId = 15
)

var lTypeIdToStr = map[LTypeId]string{
	LTID_INVALID:   "INVALID",
	LTID_NULL:      "NULL",
	LTID_BOOLEAN:   "BOOLEAN",
	LTID_TINYINT:   "TINYINT",
	LTID_SMALLINT:  "SMALLINT",
	LTID_INTEGER:   "INTEGER",
	LTID_BIGINT:    "BIGINT",
	LTID_UTINYINT:  "UTINYINT",
	LTID_USMALLINT: "USMALLINT",
	LTID_UINTEGER:  "UINTEGER",
	LTID_UBIGINT:   "UBIGINT",
	LTID_FLOAT:     "FLOAT",
	LTID_DOUBLE:    "DOUBLE",
	LTID_DECIMAL:   "DECIMAL",
	LTID_VARCHAR:   "VARCHAR",
	LTID_DATE:      "DATE",
}

func (id LTypeId) String() string {
	if s, has := lTypeIdToStr[id]; has {
		return s
	}
	panic(fmt.Sprintf("usp %d", id))
}

type LType struct {
	Id    LTypeId
	Width int
	Scale int
}

func MakeLType(id LTypeId) LType {
	return LType{Id: id}
}

func Null() LType {
	return MakeLType(LTID_NULL)
}

func BooleanType() LType {
	return MakeLType(LTID_BOOLEAN)
}

func TinyintType() LType {
	return MakeLType(LTID_TINYINT)
}

func SmallintType() LType {
	return MakeLType(LTID_SMALLINT)
}

func IntegerType() LType {
	return MakeLType(LTID_INTEGER)
}

func BigintType() LType {
	return MakeLType(LTID_BIGINT)
}

func UtinyintType() LType {
	return MakeLType(LTID_UTINYINT)
}

func UsmallintType() LType {
	return MakeLType(LTID_USMALLINT)
}

func UintegerType() LType {
	return MakeLType(LTID_UINTEGER)
}

func UbigintType() LType {
	return MakeLType(LTID_UBIGINT)
}

func FloatType() LType {
	return MakeLType(LTID_FLOAT)
}

func DoubleType() LType {
	return MakeLType(LTID_DOUBLE)
}

func DecimalType(width, scale int) LType {
	ret := MakeLType(LTID_DECIMAL)
	ret.Width = width
	ret.Scale = scale
	return ret
}

func VarcharType() LType {
	return MakeLType(LTID_VARCHAR)
}

func DateType() LType {
	return MakeLType(LTID_DATE)
}

// Numeric lists the element types the kernels can dispatch on.
func Numeric() []LType {
	typs := []LTypeId{
		LTID_TINYINT, LTID_SMALLINT, LTID_INTEGER,
		LTID_BIGINT, LTID_UTINYINT, LTID_USMALLINT,
		LTID_UINTEGER, LTID_UBIGINT, LTID_FLOAT,
		LTID_DOUBLE,
	}
	ret := make([]LType, len(typs))
	for i, typ := range typs {
		ret[i] = MakeLType(typ)
	}
	return ret
}

func (lt LType) Equal(o LType) bool {
	if lt.Id != o.Id {
		return false
	}
	switch lt.Id {
	case LTID_DECIMAL:
		return lt.Width == o.Width && lt.Scale == o.Scale
	default:
	}
	return true
}

func (lt LType) IsNumeric() bool {
	return lt.GetInternalType().IsNumeric()
}

func (lt LType) IsIntegral() bool {
	return lt.GetInternalType().IsInteger()
}

func (lt LType) IsFloat() bool {
	return lt.GetInternalType().IsFloat()
}

func (lt LType) GetInternalType() PhyType {
	switch lt.Id {
	case LTID_BOOLEAN:
		return BOOL
	case LTID_TINYINT:
		return INT8
	case LTID_SMALLINT:
		return INT16
	case LTID_INTEGER:
		return INT32
	case LTID_BIGINT:
		return INT64
	case LTID_UTINYINT:
		return UINT8
	case LTID_USMALLINT:
		return UINT16
	case LTID_UINTEGER:
		return UINT32
	case LTID_UBIGINT:
		return UINT64
	case LTID_FLOAT:
		return FLOAT
	case LTID_DOUBLE:
		return DOUBLE
	case LTID_DECIMAL:
		return DECIMAL
	case LTID_VARCHAR:
		return VARCHAR
	case LTID_DATE:
		return DATE
	case LTID_NULL, LTID_INVALID:
		return UNKNOWN
	default:
		panic("usp")
	}
}

func (lt LType) String() string {
	switch lt.Id {
	case LTID_DECIMAL:
		return fmt.Sprintf("DECIMAL(%d,%d)", lt.Width, lt.Scale)
	default:
	}
	return lt.Id.String()
}
