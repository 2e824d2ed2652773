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

package hostudf

import (
	clone "github.com/huandu/go-clone"
	"go.uber.org/zap"

	"github.com/colstream/hostagg/pkg/chunk"
	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/stream"
	"github.com/colstream/hostagg/pkg/util"
)

// groupedSumSquares fills one float64 entry per group, weighted by
// (label + 1). Nulls never contribute; there is no policy parameter.
func groupedSumSquares[E chunk.Numeric](s *stream.Stream, values *chunk.Column,
	offsets []int, labels []int, out *chunk.Column) {
	data := chunk.GetSliceFlat[E](values)
	mask := values.Mask
	outData := chunk.GetSliceFlat[float64](out)

	n := len(offsets) - 1
	s.ParallelFor(n, func(idx int) {
		start, end := offsets[idx], offsets[idx+1]
		if start == end {
			return
		}
		sum := float64(0)
		for i := start; i < end; i++ {
			if !mask.RowIsValid(uint64(i)) {
				continue
			}
			v := float64(data[i])
			sum += v * v
		}
		outData[idx] = float64(labels[idx]+1) * sum
	})

	dmask, nulls := DeriveValidity(s, n, func(idx int) bool {
		return offsets[idx] < offsets[idx+1]
	})
	if nulls > 0 {
		out.AttachMask(dmask)
	} else {
		out.AttachMask(nil)
	}
}

const groupedName = "sum_of_squares_grouped"

// SumSquaresGrouped is the groupby variant. The output element type is
// fixed to DOUBLE, so dispatch needs only the element type.
type SumSquaresGrouped struct {
}

func NewSumSquaresGrouped() *SumSquaresGrouped {
	return &SumSquaresGrouped{}
}

func (u *SumSquaresGrouped) Name() string {
	return groupedName
}

func (u *SumSquaresGrouped) RequiredKinds() KindSet {
	return NewKindSet(KindGroupedValues, KindOffsets, KindGroupLabels)
}

func (u *SumSquaresGrouped) Invoke(s *stream.Stream, bundle *InputBundle) (*Result, error) {
	if err := bundle.checkKinds(u.RequiredKinds(), NewKindSet()); err != nil {
		return nil, err
	}
	values := bundle.GroupedValues()
	kernel, err := dispatchGrouped(values.Typ())
	if err != nil {
		return nil, err
	}
	offsets := bundle.Offsets()
	if err = checkOffsets(offsets, values.Count()); err != nil {
		return nil, err
	}
	labels := bundle.GroupLabels()
	n := len(offsets) - 1
	if len(labels) != n {
		return nil, configErrf("group labels length %d does not match group count %d",
			len(labels), n)
	}
	if values.Count() == 0 {
		return u.EmptyOutput(common.DoubleType(), nil)
	}
	out := chunk.NewColumn(common.DoubleType(), n, s.Alloc())
	util.Debug("launch grouped reduce",
		zap.String("stream", s.Name()),
		zap.Int("groups", n),
		zap.String("elem", values.Typ().String()))
	s.Submit(func() error {
		kernel(s, values, offsets, labels, out)
		return nil
	})
	return columnResult(out), nil
}

func (u *SumSquaresGrouped) EmptyOutput(outputType common.LType, init *chunk.Scalar) (*Result, error) {
	// output element type is fixed for this variant
	return columnResult(chunk.NewColumn(common.DoubleType(), 0, util.GAlloc)), nil
}

func (u *SumSquaresGrouped) Equals(other HostUDF) bool {
	_, ok := other.(*SumSquaresGrouped)
	return ok
}

func (u *SumSquaresGrouped) Hash() uint64 {
	return hashName(groupedName)
}

func (u *SumSquaresGrouped) Clone() HostUDF {
	return clone.Clone(u).(HostUDF)
}

var _ HostUDF = (*SumSquaresGrouped)(nil)
