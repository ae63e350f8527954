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

package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ajroetker/go-softfloat/softfloat"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew(t *testing.T) {
	pool := New(4, nil)
	defer pool.Close()

	assert.Equal(t, 4, pool.NumWorkers())
	assert.Equal(t, softfloat.RoundNearEven, pool.Env().RoundingMode)
	assert.Equal(t, softfloat.FlagsAll, pool.Env().Masks)
}

func TestNewDefault(t *testing.T) {
	env := softfloat.NewStatus()
	env.Flags = softfloat.FlagInvalid
	pool := New(0, env)
	defer pool.Close()

	assert.Equal(t, runtime.GOMAXPROCS(0), pool.NumWorkers())
	assert.Zero(t, pool.Env().Flags, "accumulated flags must not leak into the pool environment")
}

// sqrtAll returns a Func storing sqrt(i*i) into out[i]. Every result is
// exact.
func sqrtAll(n int) ([]softfloat.Float32, Func) {
	out := make([]softfloat.Float32, n)
	return out, func(st *softfloat.Status, start, end int) {
		for i := start; i < end; i++ {
			out[i] = softfloat.F32Sqrt(softfloat.F32(float32(i*i)), st)
		}
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4, nil)
	defer pool.Close()

	const n = 1000
	out, fn := sqrtAll(n)
	flags := pool.ParallelFor(n, fn)
	for i, v := range out {
		require.Equal(t, float32(i), v.Host(), "sqrt(%d^2)", i)
	}
	assert.Zero(t, flags, "exact square roots raised %v", flags)
}

func TestParallelForMergesFlags(t *testing.T) {
	pool := New(4, nil)
	defer pool.Close()

	const n = 64
	flags := pool.ParallelFor(n, func(st *softfloat.Status, start, end int) {
		for i := start; i < end; i++ {
			switch i {
			case 3:
				softfloat.F32Div(softfloat.F32(1), 0, st)
			case n - 1:
				softfloat.F32Sqrt(softfloat.F32(-1), st)
			}
		}
	})
	assert.Equal(t, softfloat.FlagInfinite|softfloat.FlagInvalid, flags)
}

func TestParallelForUsesEnvironment(t *testing.T) {
	env := softfloat.NewStatus()
	env.RoundingMode = softfloat.RoundUp
	pool := New(3, env)
	defer pool.Close()

	const n = 30
	out := make([]softfloat.Float32, n)
	flags := pool.ParallelFor(n, func(st *softfloat.Status, start, end int) {
		for i := start; i < end; i++ {
			out[i] = softfloat.F32Div(softfloat.F32(1), softfloat.F32(3), st)
		}
	})
	assert.Equal(t, softfloat.FlagInexact|softfloat.FlagRoundedUp, flags)
	for i := range out {
		assert.Equal(t, softfloat.Float32(0x3EAAAAAB), out[i])
	}
}

func TestParallelForAtomicBatched(t *testing.T) {
	pool := New(4, nil)
	defer pool.Close()

	const n = 1003
	out, fn := sqrtAll(n)
	var calls atomic.Int32
	flags := pool.ParallelForAtomicBatched(n, 10, func(st *softfloat.Status, start, end int) {
		calls.Add(1)
		assert.LessOrEqual(t, end-start, 10)
		fn(st, start, end)
	})
	assert.Zero(t, flags)
	assert.Equal(t, int32(101), calls.Load())
	for i, v := range out {
		require.Equal(t, float32(i), v.Host())
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8, nil)
	defer pool.Close()

	var count atomic.Int32
	pool.ParallelFor(3, func(_ *softfloat.Status, start, end int) {
		count.Add(int32(end - start))
	})
	assert.Equal(t, int32(3), count.Load())
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4, nil)
	defer pool.Close()

	var called bool
	flags := pool.ParallelFor(0, func(*softfloat.Status, int, int) { called = true })
	assert.False(t, called, "ParallelFor with n=0 should not call fn")
	assert.Zero(t, flags)
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4, nil)
	pool.Close()
	pool.Close()
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4, nil)
	pool.Close()

	const n = 100
	out, fn := sqrtAll(n)
	pool.ParallelFor(n, fn)
	pool.ParallelForAtomicBatched(n, 7, fn)
	for i, v := range out {
		require.Equal(t, float32(i), v.Host())
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0, nil)
	defer pool.Close()

	const n = 4096
	_, fn := sqrtAll(n)
	b.ResetTimer()
	for range b.N {
		pool.ParallelFor(n, fn)
	}
}
