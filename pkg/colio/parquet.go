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

package colio

import (
	"errors"
	"fmt"
	"io"

	pqLocal "github.com/xitongsys/parquet-go-source/local"
	pqReader "github.com/xitongsys/parquet-go/reader"

	"github.com/colstream/hostagg/pkg/chunk"
	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/util"
)

// ReadNumericColumn loads up to maxRows values of one parquet column
// into a flat column of typ. A nil field marks a null row.
func ReadNumericColumn(path string, colIdx int, typ common.LType, maxRows int) (*chunk.Column, error) {
	if !typ.IsNumeric() {
		return nil, fmt.Errorf("column type %s is not numeric", typ)
	}
	pqFile, err := pqLocal.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer pqFile.Close()

	reader, err := pqReader.NewParquetColumnReader(pqFile, 1)
	if err != nil {
		return nil, err
	}
	defer reader.ReadStop()

	values, _, _, err := reader.ReadColumnByIndex(int64(colIdx), int64(maxRows))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	col := chunk.NewColumn(typ, len(values), util.GAlloc)
	for i, field := range values {
		if field == nil {
			col.SetNull(i, true)
			continue
		}
		if err = setColValue(col, i, field, typ); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func setColValue(col *chunk.Column, idx int, field any, typ common.LType) error {
	switch typ.GetInternalType() {
	case common.INT32:
		data := chunk.GetSliceFlat[int32](col)
		switch v := field.(type) {
		case int32:
			data[idx] = v
		case int64:
			data[idx] = int32(v)
		default:
			return fmt.Errorf("field %v does not fit %s", field, typ)
		}
	case common.INT64:
		data := chunk.GetSliceFlat[int64](col)
		switch v := field.(type) {
		case int32:
			data[idx] = int64(v)
		case int64:
			data[idx] = v
		default:
			return fmt.Errorf("field %v does not fit %s", field, typ)
		}
	case common.FLOAT:
		data := chunk.GetSliceFlat[float32](col)
		switch v := field.(type) {
		case float32:
			data[idx] = v
		case float64:
			data[idx] = float32(v)
		default:
			return fmt.Errorf("field %v does not fit %s", field, typ)
		}
	case common.DOUBLE:
		data := chunk.GetSliceFlat[float64](col)
		switch v := field.(type) {
		case float32:
			data[idx] = float64(v)
		case float64:
			data[idx] = v
		default:
			return fmt.Errorf("field %v does not fit %s", field, typ)
		}
	default:
		return fmt.Errorf("usp parquet column type %s", typ)
	}
	return nil
}
