// Copyright 2025 go-softfloat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workerpool runs softfloat workloads across a fixed set of
// goroutines. Every worker owns a softfloat.Status, reset to the pool's
// environment before each chunk, so no Status is ever shared between
// goroutines. The flags raised by all chunks are merged and returned.
//
// Usage:
//
//	pool := workerpool.New(0, softfloat.NewStatus())
//	defer pool.Close()
//
//	flags := pool.ParallelFor(len(xs), func(st *softfloat.Status, start, end int) {
//	    for i := start; i < end; i++ {
//	        out[i] = softfloat.F32Sqrt(xs[i], st)
//	    }
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ajroetker/go-softfloat/softfloat"
)

// Func processes indices [start, end) using st for rounding and flags.
type Func func(st *softfloat.Status, start, end int)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	env        softfloat.Status
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func(st *softfloat.Status)
	barrier *sync.WaitGroup
}

// New creates a pool of numWorkers goroutines (GOMAXPROCS if <= 0). env is
// copied; its accumulated flags are ignored. A nil env means
// softfloat.NewStatus().
func New(numWorkers int, env *softfloat.Status) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if env == nil {
		env = softfloat.NewStatus()
	}

	p := &Pool{
		numWorkers: numWorkers,
		env:        *env,
		workC:      make(chan workItem, numWorkers*2),
	}
	p.env.Flags = 0

	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	st := new(softfloat.Status)
	for item := range p.workC {
		*st = p.env
		item.fn(st)
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Env returns a copy of the environment each chunk starts from.
func (p *Pool) Env() softfloat.Status {
	return p.env
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// sequential runs fn on the calling goroutine with a fresh environment.
func (p *Pool) sequential(n int, fn Func) softfloat.Flags {
	st := p.env
	fn(&st, 0, n)
	return st.Flags
}

// ParallelFor splits [0, n) into one contiguous chunk per worker and
// blocks until all chunks are done. It returns the union of the flags the
// chunks raised.
func (p *Pool) ParallelFor(n int, fn Func) softfloat.Flags {
	if n <= 0 {
		return 0
	}
	workers := min(p.numWorkers, n)
	if p.closed.Load() || workers == 1 {
		return p.sequential(n, fn)
	}

	chunkSize := (n + workers - 1) / workers

	var flags atomic.Uint32
	var wg sync.WaitGroup
	for i := range workers {
		start := i * chunkSize
		if start >= n {
			break
		}
		end := min(start+chunkSize, n)
		wg.Add(1)
		p.workC <- workItem{
			fn: func(st *softfloat.Status) {
				fn(st, start, end)
				flags.Or(uint32(st.Flags))
			},
			barrier: &wg,
		}
	}
	wg.Wait()
	return softfloat.Flags(flags.Load())
}

// ParallelForAtomicBatched hands out batches of batchSize indices through
// an atomic counter, which balances load when the cost per index varies.
// fn may be called many times per worker; st keeps accumulating across
// the batches a worker takes.
func (p *Pool) ParallelForAtomicBatched(n, batchSize int, fn Func) softfloat.Flags {
	if n <= 0 {
		return 0
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if p.closed.Load() || workers == 1 {
		return p.sequential(n, fn)
	}

	var nextBatch atomic.Int64
	var flags atomic.Uint32
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func(st *softfloat.Status) {
				for {
					start := int(nextBatch.Add(1)-1) * batchSize
					if start >= n {
						break
					}
					fn(st, start, min(start+batchSize, n))
				}
				flags.Or(uint32(st.Flags))
			},
			barrier: &wg,
		}
	}
	wg.Wait()
	return softfloat.Flags(flags.Load())
}
