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

// Result is the tagged output of an invocation: a scalar for
// whole-column reduction, a column otherwise.
type Result struct {
	Scalar *chunk.Scalar
	Column *chunk.Column
}

func scalarResult(s *chunk.Scalar) *Result {
	return &Result{Scalar: s}
}

func columnResult(c *chunk.Column) *Result {
	return &Result{Column: c}
}

// HostUDF is the capability contract a host-defined aggregation
// implements. Invoke submits work to the given stream; the caller must
// Synchronize the stream before reading the result. Equals, Hash and
// Clone form the identity contract the result cache relies on.
type HostUDF interface {
	Name() string
	RequiredKinds() KindSet
	Invoke(s *stream.Stream, bundle *InputBundle) (*Result, error)
	EmptyOutput(outputType common.LType, init *chunk.Scalar) (*Result, error)
	Equals(other HostUDF) bool
	Hash() uint64
	Clone() HostUDF
}

// checkInit enforces that a supplied initial value matches the declared
// output type.
func checkInit(init *chunk.Scalar, outputType common.LType) error {
	if init == nil || init.IsNull {
		return nil
	}
	if !init.Typ.Equal(outputType) {
		return mismatchErrf("init value type %s differs from output type %s",
			init.Typ, outputType)
	}
	return nil
}

func hashName(name string) uint64 {
	return util.HashString(name)
}
