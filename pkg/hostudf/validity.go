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
	"sync/atomic"

	"github.com/colstream/hostagg/pkg/stream"
	"github.com/colstream/hostagg/pkg/util"
)

// DeriveValidity compacts a per-output predicate into a bitmask plus a
// null count in one parallel pass. A nil mask means every output is
// valid; callers attach nothing in that case.
func DeriveValidity(s *stream.Stream, count int, pred func(idx int) bool) (*util.Bitmap, int) {
	if count == 0 {
		return nil, 0
	}
	mask := &util.Bitmap{}
	mask.InitWith(s.Alloc(), count)
	eCnt := util.EntryCount(count)
	var nulls atomic.Int64
	s.ParallelFor(eCnt, func(e int) {
		entry := uint8(0xFF)
		invalid := 0
		base := e * 8
		limit := count - base
		if limit > 8 {
			limit = 8
		}
		for pos := 0; pos < limit; pos++ {
			if !pred(base + pos) {
				entry &= ^(uint8(1) << pos)
				invalid++
			}
		}
		if limit < 8 {
			// bits beyond count stay clear, as SetAllValid leaves them
			entry &= ^(uint8(0xFF) << limit)
		}
		mask.Bits[e] = entry
		if invalid > 0 {
			nulls.Add(int64(invalid))
		}
	})
	if nulls.Load() == 0 {
		return nil, 0
	}
	return mask, int(nulls.Load())
}
