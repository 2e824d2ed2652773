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

// segmentedSumSquares fills one output entry per segment. Segments are
// disjoint, so the per-segment tasks share nothing; within a segment
// the accumulation is sequential.
func segmentedSumSquares[E, O chunk.Numeric](s *stream.Stream, values *chunk.Column,
	offsets []int, policy NullPolicy, init *chunk.Scalar, out *chunk.Column) {
	var iv O
	if init != nil && !init.IsNull {
		iv = chunk.NumericScalarValue[O](init)
	}
	data := chunk.GetSliceFlat[E](values)
	mask := values.Mask
	outData := chunk.GetSliceFlat[O](out)

	n := len(offsets) - 1
	s.ParallelFor(n, func(idx int) {
		start, end := offsets[idx], offsets[idx+1]
		if start == end {
			// null output; payload stays zero by convention
			return
		}
		sum := iv
		for i := start; i < end; i++ {
			if !mask.RowIsValid(uint64(i)) {
				if policy == NullInclude {
					sum += iv * iv
				}
				continue
			}
			v := O(data[i])
			sum += v * v
		}
		outData[idx] = O(end-start) * sum
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

const segmentedName = "sum_of_squares_segmented"

// SumSquaresSegmented is the per-segment variant: one nullable column
// entry per segment, scaled by segment length.
type SumSquaresSegmented struct {
}

func NewSumSquaresSegmented() *SumSquaresSegmented {
	return &SumSquaresSegmented{}
}

var segmentedOptionalKinds = NewKindSet(KindInitValue)

func (u *SumSquaresSegmented) Name() string {
	return segmentedName
}

func (u *SumSquaresSegmented) RequiredKinds() KindSet {
	return NewKindSet(KindValues, KindOutputType, KindNullPolicy, KindOffsets)
}

func (u *SumSquaresSegmented) Invoke(s *stream.Stream, bundle *InputBundle) (*Result, error) {
	if err := bundle.checkKinds(u.RequiredKinds(), segmentedOptionalKinds); err != nil {
		return nil, err
	}
	values := bundle.Values()
	outputType := bundle.OutputType()
	init := bundle.InitValue()
	if err := checkInit(init, outputType); err != nil {
		return nil, err
	}
	ks, err := dispatchPair(values.Typ(), outputType)
	if err != nil {
		return nil, err
	}
	offsets := bundle.Offsets()
	if err = checkOffsets(offsets, values.Count()); err != nil {
		return nil, err
	}
	if values.Count() == 0 {
		return u.EmptyOutput(outputType, init)
	}
	policy := bundle.NullPolicy()
	n := len(offsets) - 1
	out := chunk.NewColumn(outputType, n, s.Alloc())
	util.Debug("launch segmented reduce",
		zap.String("stream", s.Name()),
		zap.Int("segments", n),
		zap.String("policy", policy.String()),
		zap.String("elem", values.Typ().String()),
		zap.String("out", outputType.String()))
	s.Submit(func() error {
		ks.segmented(s, values, offsets, policy, init, out)
		return nil
	})
	return columnResult(out), nil
}

func (u *SumSquaresSegmented) EmptyOutput(outputType common.LType, init *chunk.Scalar) (*Result, error) {
	if err := checkInit(init, outputType); err != nil {
		return nil, err
	}
	return columnResult(chunk.NewColumn(outputType, 0, util.GAlloc)), nil
}

func (u *SumSquaresSegmented) Equals(other HostUDF) bool {
	_, ok := other.(*SumSquaresSegmented)
	return ok
}

func (u *SumSquaresSegmented) Hash() uint64 {
	return hashName(segmentedName)
}

func (u *SumSquaresSegmented) Clone() HostUDF {
	return clone.Clone(u).(HostUDF)
}

var _ HostUDF = (*SumSquaresSegmented)(nil)
