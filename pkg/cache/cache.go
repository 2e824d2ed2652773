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

package cache

import (
	"sync"

	"github.com/tidwall/btree"

	"github.com/colstream/hostagg/pkg/hostudf"
)

type entry struct {
	tag    string
	hash   uint64
	udf    hostudf.HostUDF
	result *hostudf.Result
}

func entryLess(a, b *entry) bool {
	if a.tag != b.tag {
		return a.tag < b.tag
	}
	return a.hash < b.hash
}

// ResultCache reuses aggregation results across structurally identical
// requests. tag is the orchestrator's digest of the request inputs; the
// UDF side of the key goes through the identity contract: lookup by
// Hash, verification by Equals against a Clone taken at Put time.
type ResultCache struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[*entry]
}

func NewResultCache() *ResultCache {
	return &ResultCache{
		tree: btree.NewBTreeG[*entry](entryLess),
	}
}

func (c *ResultCache) Put(tag string, udf hostudf.HostUDF, result *hostudf.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.Set(&entry{
		tag:    tag,
		hash:   udf.Hash(),
		udf:    udf.Clone(),
		result: result,
	})
}

func (c *ResultCache) Get(tag string, udf hostudf.HostUDF) (*hostudf.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	probe := &entry{tag: tag, hash: udf.Hash()}
	ent, has := c.tree.Get(probe)
	if !has {
		return nil, false
	}
	// hash agreement is not enough; Equals decides reuse
	if !ent.udf.Equals(udf) {
		return nil, false
	}
	return ent.result, true
}

func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Len()
}
