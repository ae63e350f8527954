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

package verify

import (
	"math"
	"math/big"

	"github.com/ajroetker/go-softfloat/softfloat"
	"github.com/ajroetker/go-softfloat/testfloat"
)

// hostEval answers binary32 and binary64 operations in round to nearest
// even from the host FPU. It declines (ok false) whenever an operand or the
// result is outside the range where the error terms below are exact:
// specials, subnormals, results near underflow and results near overflow
// all go to math/big.
func (o *Oracle) hostEval(f testfloat.Format, name string, args []testfloat.Value) (testfloat.Value, softfloat.Flags, bool) {
	switch f {
	case testfloat.F32:
		return hostEval32(name, args)
	case testfloat.F64:
		return o.hostEval64(name, args)
	}
	return testfloat.Value{}, 0, false
}

// safe32 and safe64 bound the magnitudes accepted by the fast path.
const (
	safe32Min = 0x1p-100
	safe32Max = 0x1p100
	safe64Min = 0x1p-900
	safe64Max = 0x1p900
)

func inRange[T float32 | float64](x, lo, hi T) bool {
	a := T(math.Abs(float64(x)))
	return a >= lo && a <= hi
}

func inexact(exact bool) softfloat.Flags {
	if exact {
		return 0
	}
	return softfloat.FlagInexact
}

// twoSum returns s = fl(a+b) and the rounding error e with a+b = s+e.
func twoSum[T float32 | float64](a, b T) (s, e T) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

func hostEval32(name string, args []testfloat.Value) (testfloat.Value, softfloat.Flags, bool) {
	x := make([]float32, len(args))
	for i, a := range args {
		x[i] = math.Float32frombits(uint32(a.Bits))
		if !inRange(x[i], safe32Min, safe32Max) {
			return testfloat.Value{}, 0, false
		}
	}
	var z float32
	var exact bool
	switch name {
	case "add", "sub":
		b := x[1]
		if name == "sub" {
			b = -b
		}
		var e float32
		z, e = twoSum(x[0], b)
		exact = e == 0
		if z == 0 {
			// Exact cancellation: the zero sign depends on the mode only.
			return testfloat.Value{}, 0, true
		}
	case "mul":
		// Products of two 24-bit significands are exact in binary64.
		p := float64(x[0]) * float64(x[1])
		z = float32(p)
		exact = float64(z) == p
	case "div":
		z = x[0] / x[1]
		exact = float64(z)*float64(x[1]) == float64(x[0])
	case "sqrt":
		// Rounding the binary64 root to binary32 is correctly rounded.
		z = float32(math.Sqrt(float64(x[0])))
		exact = float64(z)*float64(z) == float64(x[0])
	default:
		return testfloat.Value{}, 0, false
	}
	if !inRange(z, safe32Min, safe32Max) {
		return testfloat.Value{}, 0, false
	}
	return testfloat.Value{Bits: uint64(math.Float32bits(z))}, inexact(exact), true
}

func (o *Oracle) hostEval64(name string, args []testfloat.Value) (testfloat.Value, softfloat.Flags, bool) {
	x := make([]float64, len(args))
	for i, a := range args {
		x[i] = math.Float64frombits(a.Bits)
		if !inRange(x[i], safe64Min, safe64Max) {
			return testfloat.Value{}, 0, false
		}
	}
	var z float64
	var exact bool
	switch name {
	case "add", "sub":
		b := x[1]
		if name == "sub" {
			b = -b
		}
		var e float64
		z, e = twoSum(x[0], b)
		exact = e == 0
		if z == 0 {
			return testfloat.Value{}, 0, true
		}
	case "mul":
		z = x[0] * x[1]
		exact = math.FMA(x[0], x[1], -z) == 0
	case "div":
		z = x[0] / x[1]
		exact = math.FMA(-z, x[1], x[0]) == 0
	case "sqrt":
		z = math.Sqrt(x[0])
		exact = math.FMA(-z, z, x[0]) == 0
	case "mulAdd":
		// Without a hardware FMA, math.FMA is slower than math/big.
		if !o.features.FMA {
			return testfloat.Value{}, 0, false
		}
		z = math.FMA(x[0], x[1], x[2])
		if z == 0 {
			return testfloat.Value{}, 0, false
		}
		p := exactMul(big.NewFloat(x[0]), big.NewFloat(x[1]))
		exact = big.NewFloat(z).Cmp(exactAdd(p, big.NewFloat(x[2]))) == 0
	default:
		return testfloat.Value{}, 0, false
	}
	if !inRange(z, safe64Min, safe64Max) {
		return testfloat.Value{}, 0, false
	}
	return testfloat.Value{Bits: math.Float64bits(z)}, inexact(exact), true
}
