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

package stream

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/colstream/hostagg/pkg/util"
)

type Task func() error

// Stream executes submitted tasks one at a time in submission order,
// asynchronously with respect to the submitter. Outputs written by a
// task must not be read before Synchronize returns.
type Stream struct {
	name        string
	alloc       util.BytesAllocator
	parallelism int

	submitMu *util.ReentryLock
	tasks    chan Task
	pending  sync.WaitGroup

	errMu sync.Mutex
	err   error
}

func NewStream(name string, alloc util.BytesAllocator, parallelism int) *Stream {
	if alloc == nil {
		alloc = util.GAlloc
	}
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	s := &Stream{
		name:        name,
		alloc:       alloc,
		parallelism: parallelism,
		submitMu:    util.NewReentryLock(),
		tasks:       make(chan Task, util.DefaultVectorSize),
	}
	go s.run()
	return s
}

func (s *Stream) run() {
	for task := range s.tasks {
		if err := s.safeExec(task); err != nil {
			s.recordErr(err)
		}
		s.pending.Done()
	}
}

func (s *Stream) safeExec(task Task) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = util.ConvertPanicError(v)
		}
	}()
	return task()
}

func (s *Stream) recordErr(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = err
	}
	util.Error("stream task failed",
		zap.String("stream", s.name),
		zap.Error(err))
}

func (s *Stream) Name() string {
	return s.name
}

func (s *Stream) Alloc() util.BytesAllocator {
	return s.alloc
}

// Submit enqueues a launch. It never blocks on the launch itself, only
// on queue backpressure.
func (s *Stream) Submit(task Task) {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()
	s.pending.Add(1)
	s.tasks <- task
}

// Synchronize joins every launch submitted so far and reports the first
// failure among them.
func (s *Stream) Synchronize() error {
	s.pending.Wait()
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

// Close stops the worker. Pending tasks still run.
func (s *Stream) Close() {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()
	close(s.tasks)
}

// ParallelFor runs body for every index in [0,count). Indices are
// partitioned into contiguous blocks; each output index is visited by
// exactly one goroutine.
func (s *Stream) ParallelFor(count int, body func(idx int)) {
	if count <= 0 {
		return
	}
	blockSize := (count + s.parallelism - 1) / s.parallelism
	if blockSize < 1 {
		blockSize = 1
	}
	g := &errgroup.Group{}
	g.SetLimit(s.parallelism)
	for start := 0; start < count; start += blockSize {
		start := start
		end := min(start+blockSize, count)
		g.Go(func() error {
			for i := start; i < end; i++ {
				body(i)
			}
			return nil
		})
	}
	// bodies do not fail; the group is only a join point
	_ = g.Wait()
}
