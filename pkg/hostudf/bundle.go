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
	"fmt"
	"sort"

	"github.com/colstream/hostagg/pkg/chunk"
	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/util"
)

type InputKind int

const (
	KindValues InputKind = iota
	KindGroupedValues
	KindOutputType
	KindInitValue
	KindNullPolicy
	KindOffsets
	KindGroupLabels
)

var kindToStr = map[InputKind]string{
	KindValues:        "VALUES",
	KindGroupedValues: "GROUPED_VALUES",
	KindOutputType:    "OUTPUT_TYPE",
	KindInitValue:     "INIT_VALUE",
	KindNullPolicy:    "NULL_POLICY",
	KindOffsets:       "OFFSETS",
	KindGroupLabels:   "GROUP_LABELS",
}

func (k InputKind) String() string {
	if s, has := kindToStr[k]; has {
		return s
	}
	panic(fmt.Sprintf("usp %d", k))
}

type KindSet map[InputKind]struct{}

func NewKindSet(kinds ...InputKind) KindSet {
	ret := make(KindSet, len(kinds))
	for _, k := range kinds {
		ret[k] = struct{}{}
	}
	return ret
}

func (ks KindSet) Has(k InputKind) bool {
	_, has := ks[k]
	return has
}

func (ks KindSet) Ordered() []InputKind {
	ret := make([]InputKind, 0, len(ks))
	for k := range ks {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

type NullPolicy int

const (
	NullExclude NullPolicy = iota
	NullInclude
)

func (p NullPolicy) String() string {
	if p == NullInclude {
		return "INCLUDE"
	}
	return "EXCLUDE"
}

// InputBundle carries one invocation's inputs, keyed by kind. The
// orchestrator builds it right before the call and discards it after;
// kernels keep no references into it.
type InputBundle struct {
	values        *chunk.Column
	groupedValues *chunk.Column
	outputType    common.LType
	initValue     *chunk.Scalar
	nullPolicy    NullPolicy
	offsets       []int
	groupLabels   []int

	present KindSet
}

func NewInputBundle() *InputBundle {
	return &InputBundle{
		present: NewKindSet(),
	}
}

func (b *InputBundle) SetValues(col *chunk.Column) *InputBundle {
	b.values = col
	b.present[KindValues] = struct{}{}
	return b
}

func (b *InputBundle) SetGroupedValues(col *chunk.Column) *InputBundle {
	b.groupedValues = col
	b.present[KindGroupedValues] = struct{}{}
	return b
}

func (b *InputBundle) SetOutputType(typ common.LType) *InputBundle {
	b.outputType = typ
	b.present[KindOutputType] = struct{}{}
	return b
}

func (b *InputBundle) SetInitValue(val *chunk.Scalar) *InputBundle {
	b.initValue = val
	b.present[KindInitValue] = struct{}{}
	return b
}

func (b *InputBundle) SetNullPolicy(policy NullPolicy) *InputBundle {
	b.nullPolicy = policy
	b.present[KindNullPolicy] = struct{}{}
	return b
}

func (b *InputBundle) SetOffsets(offsets []int) *InputBundle {
	b.offsets = offsets
	b.present[KindOffsets] = struct{}{}
	return b
}

func (b *InputBundle) SetGroupLabels(labels []int) *InputBundle {
	b.groupLabels = labels
	b.present[KindGroupLabels] = struct{}{}
	return b
}

func (b *InputBundle) Has(kind InputKind) bool {
	return b.present.Has(kind)
}

func (b *InputBundle) Kinds() KindSet {
	return b.present
}

func (b *InputBundle) Values() *chunk.Column {
	return b.values
}

func (b *InputBundle) GroupedValues() *chunk.Column {
	return b.groupedValues
}

func (b *InputBundle) OutputType() common.LType {
	return b.outputType
}

// InitValue returns nil when no initial value was supplied or when the
// supplied scalar is null.
func (b *InputBundle) InitValue() *chunk.Scalar {
	if b.initValue == nil || b.initValue.IsNull {
		return nil
	}
	return b.initValue
}

func (b *InputBundle) NullPolicy() NullPolicy {
	return b.nullPolicy
}

func (b *InputBundle) Offsets() []int {
	return b.offsets
}

func (b *InputBundle) GroupLabels() []int {
	return b.groupLabels
}

// checkKinds enforces the capability contract's input shape: every
// required kind present, nothing outside required+optional.
func (b *InputBundle) checkKinds(required, optional KindSet) error {
	for _, kind := range required.Ordered() {
		if !b.present.Has(kind) {
			return configErrf("missing input kind %s", kind)
		}
	}
	for _, kind := range b.present.Ordered() {
		if !required.Has(kind) && !optional.Has(kind) {
			return configErrf("unexpected input kind %s", kind)
		}
	}
	return nil
}

// checkOffsets validates the segment/group boundary array against the
// values it delimits.
func checkOffsets(offsets []int, valueCount int) error {
	if util.Empty(offsets) {
		return configErrf("offsets must not be empty")
	}
	if offsets[0] < 0 {
		return configErrf("offsets[0] is negative: %d", offsets[0])
	}
	for i := 1; i < util.Size(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return configErrf("offsets not non-decreasing at %d: %d < %d",
				i, offsets[i], offsets[i-1])
		}
	}
	if last := util.Back(offsets); last > valueCount {
		return configErrf("offsets end %d exceeds value count %d", last, valueCount)
	}
	return nil
}
