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

const reduceBlockSize = 1024

// reduceSumSquares computes init + sum of squares of valid elements as
// a block-partitioned tree reduction. The sum is associative and
// commutative; block boundaries do not change the algebraic result.
func reduceSumSquares[E, O chunk.Numeric](s *stream.Stream, values *chunk.Column,
	init *chunk.Scalar, out *chunk.Scalar) {
	var start O
	if init != nil && !init.IsNull {
		start = chunk.NumericScalarValue[O](init)
	}
	data := chunk.GetSliceFlat[E](values)
	mask := values.Mask
	count := values.Count()

	numBlocks := (count + reduceBlockSize - 1) / reduceBlockSize
	partials := make([]O, numBlocks)
	s.ParallelFor(numBlocks, func(b int) {
		lo := b * reduceBlockSize
		hi := min(lo+reduceBlockSize, count)
		var acc O
		for i := lo; i < hi; i++ {
			if mask.RowIsValid(uint64(i)) {
				v := O(data[i])
				acc += v * v
			}
		}
		partials[b] = acc
	})
	sum := start
	for _, p := range partials {
		sum += p
	}
	chunk.SetNumericScalar(out, sum)
}

const reduceName = "sum_of_squares_reduce"

// SumSquaresReduce is the whole-column variant: one always-valid
// scalar out.
type SumSquaresReduce struct {
}

func NewSumSquaresReduce() *SumSquaresReduce {
	return &SumSquaresReduce{}
}

var reduceOptionalKinds = NewKindSet(KindInitValue)

func (u *SumSquaresReduce) Name() string {
	return reduceName
}

func (u *SumSquaresReduce) RequiredKinds() KindSet {
	return NewKindSet(KindValues, KindOutputType)
}

func (u *SumSquaresReduce) Invoke(s *stream.Stream, bundle *InputBundle) (*Result, error) {
	if err := bundle.checkKinds(u.RequiredKinds(), reduceOptionalKinds); err != nil {
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
	if values.Count() == 0 {
		return u.EmptyOutput(outputType, init)
	}
	out := chunk.ZeroScalar(outputType)
	util.Debug("launch reduce",
		zap.String("stream", s.Name()),
		zap.Int("count", values.Count()),
		zap.String("elem", values.Typ().String()),
		zap.String("out", outputType.String()))
	s.Submit(func() error {
		ks.reduce(s, values, init, out)
		return nil
	})
	return scalarResult(out), nil
}

func (u *SumSquaresReduce) EmptyOutput(outputType common.LType, init *chunk.Scalar) (*Result, error) {
	if err := checkInit(init, outputType); err != nil {
		return nil, err
	}
	if init != nil && !init.IsNull {
		echo := *init
		return scalarResult(&echo), nil
	}
	return scalarResult(chunk.ZeroScalar(outputType)), nil
}

func (u *SumSquaresReduce) Equals(other HostUDF) bool {
	_, ok := other.(*SumSquaresReduce)
	return ok
}

func (u *SumSquaresReduce) Hash() uint64 {
	return hashName(reduceName)
}

func (u *SumSquaresReduce) Clone() HostUDF {
	return clone.Clone(u).(HostUDF)
}

var _ HostUDF = (*SumSquaresReduce)(nil)
