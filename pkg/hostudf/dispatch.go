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
	"github.com/colstream/hostagg/pkg/chunk"
	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/stream"
	"github.com/colstream/hostagg/pkg/util"
)

// The dispatch table resolves runtime type tags into statically typed
// kernels, built once at package init. Reduce and segmented reduce
// dispatch on the (element, output) pair; grouped reduce dispatches on
// the element type alone with a float64 output.

type reduceKernel func(s *stream.Stream, values *chunk.Column, init *chunk.Scalar, out *chunk.Scalar)

type segmentedKernel func(s *stream.Stream, values *chunk.Column, offsets []int,
	policy NullPolicy, init *chunk.Scalar, out *chunk.Column)

type groupedKernel func(s *stream.Stream, values *chunk.Column, offsets []int,
	labels []int, out *chunk.Column)

type kernelSet struct {
	reduce    reduceKernel
	segmented segmentedKernel
}

// pairKey is (element type, output type).
type pairKey = util.Pair[common.PhyType, common.PhyType]

var pairTable map[pairKey]kernelSet
var groupedTable map[common.PhyType]groupedKernel

func init() {
	pairTable = make(map[pairKey]kernelSet)
	groupedTable = make(map[common.PhyType]groupedKernel)
	registerElem[int8](common.INT8)
	registerElem[int16](common.INT16)
	registerElem[int32](common.INT32)
	registerElem[int64](common.INT64)
	registerElem[uint8](common.UINT8)
	registerElem[uint16](common.UINT16)
	registerElem[uint32](common.UINT32)
	registerElem[uint64](common.UINT64)
	registerElem[float32](common.FLOAT)
	registerElem[float64](common.DOUBLE)
}

func registerElem[E chunk.Numeric](elem common.PhyType) {
	registerPair[E, int8](elem, common.INT8)
	registerPair[E, int16](elem, common.INT16)
	registerPair[E, int32](elem, common.INT32)
	registerPair[E, int64](elem, common.INT64)
	registerPair[E, uint8](elem, common.UINT8)
	registerPair[E, uint16](elem, common.UINT16)
	registerPair[E, uint32](elem, common.UINT32)
	registerPair[E, uint64](elem, common.UINT64)
	registerPair[E, float32](elem, common.FLOAT)
	registerPair[E, float64](elem, common.DOUBLE)
	groupedTable[elem] = groupedSumSquares[E]
}

func registerPair[E, O chunk.Numeric](elem, out common.PhyType) {
	pairTable[pairKey{First: elem, Second: out}] = kernelSet{
		reduce:    reduceSumSquares[E, O],
		segmented: segmentedSumSquares[E, O],
	}
}

// dispatchPair rejects non-numeric combinations before any output is
// allocated or data touched.
func dispatchPair(elem, out common.LType) (kernelSet, error) {
	if !elem.IsNumeric() {
		return kernelSet{}, unsupportedErrf("element type %s is not numeric", elem)
	}
	if !out.IsNumeric() {
		return kernelSet{}, unsupportedErrf("output type %s is not numeric", out)
	}
	ks, has := pairTable[pairKey{
		First:  elem.GetInternalType(),
		Second: out.GetInternalType(),
	}]
	if !has {
		return kernelSet{}, unsupportedErrf("no kernel for pair (%s, %s)", elem, out)
	}
	return ks, nil
}

func dispatchGrouped(elem common.LType) (groupedKernel, error) {
	if !elem.IsNumeric() {
		return nil, unsupportedErrf("element type %s is not numeric", elem)
	}
	kernel, has := groupedTable[elem.GetInternalType()]
	if !has {
		return nil, unsupportedErrf("no grouped kernel for element type %s", elem)
	}
	return kernel, nil
}
