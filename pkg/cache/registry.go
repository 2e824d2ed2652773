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
	"fmt"
	"strings"
	"sync"

	treemap "github.com/liyue201/gostl/ds/map"

	"github.com/colstream/hostagg/pkg/hostudf"
)

type Builder func() hostudf.HostUDF

// Registry maps aggregation names to builders. Orchestrators construct
// UDF instances by name.
type Registry struct {
	mu       sync.RWMutex
	builders *treemap.Map[string, Builder]
}

func NewRegistry() *Registry {
	cmp := func(a, b string) int {
		return strings.Compare(a, b)
	}
	reg := &Registry{
		builders: treemap.New[string, Builder](cmp),
	}
	return reg
}

func (reg *Registry) Register(name string, builder Builder) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.builders.Insert(name, builder)
}

func (reg *Registry) New(name string) (hostudf.HostUDF, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	builder, err := reg.builders.Get(name)
	if err != nil {
		return nil, fmt.Errorf("no aggregation named %s", name)
	}
	return builder(), nil
}

func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, 0)
	for iter := reg.builders.Begin(); iter.IsValid(); iter.Next() {
		names = append(names, iter.Key())
	}
	return names
}

// DefaultRegistry carries the built-in sum-of-squares variants.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("sum_of_squares_reduce", func() hostudf.HostUDF {
		return hostudf.NewSumSquaresReduce()
	})
	reg.Register("sum_of_squares_segmented", func() hostudf.HostUDF {
		return hostudf.NewSumSquaresSegmented()
	})
	reg.Register("sum_of_squares_grouped", func() hostudf.HostUDF {
		return hostudf.NewSumSquaresGrouped()
	})
	return reg
}
