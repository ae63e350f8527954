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

package testfloat

import (
	"math/rand/v2"

	"github.com/ajroetker/go-softfloat/softfloat"
)

// Generator produces operands biased toward the encodings where rounding
// and exception logic branches: signed zeros, subnormals, the normal range
// limits, infinities, quiet and signaling NaNs, values next to one and
// values next to integer boundaries.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a deterministic generator for seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

type layout struct {
	fracBits uint
	expBits  uint
}

var layouts = map[Format]layout{
	F16: {10, 5},
	F32: {23, 8},
	F64: {52, 11},
}

// Value returns one operand of format f.
func (g *Generator) Value(f Format) Value {
	switch f {
	case ExtF80:
		return g.ext()
	case I32, UI32:
		return Value{Bits: g.integer(32)}
	case I64, UI64:
		return Value{Bits: g.integer(64)}
	case Bool:
		return Value{Bits: g.rng.Uint64() & 1}
	}
	l := layouts[f]
	sign := g.rng.Uint64() & 1 << (l.fracBits + l.expBits)
	expMax := uint64(1)<<l.expBits - 1
	bias := expMax >> 1
	fracMask := uint64(1)<<l.fracBits - 1
	frac := g.frac(l.fracBits)
	var exp uint64
	switch g.rng.IntN(16) {
	case 0:
		exp, frac = 0, 0
	case 1:
		exp = 0
	case 2:
		exp = 1
	case 3:
		exp = expMax - 1
	case 4:
		exp, frac = expMax, 0
	case 5:
		// NaN, quiet or signaling.
		exp = expMax
		if frac == 0 {
			frac = 1
		}
	case 6, 7:
		// Near one.
		exp = bias - 1 + g.rng.Uint64N(3)
	case 8, 9:
		// Near an integer boundary: the ulp is between 2^-2 and 1.
		exp = bias + uint64(l.fracBits) - 2 + g.rng.Uint64N(3)
	case 10:
		// Exponents from half to twice the bias, where narrowing
		// conversions overflow and underflow.
		exp = bias + uint64(g.rng.IntN(2*int(bias))) - bias/2
		exp = min(max(exp, 1), expMax-1)
	default:
		exp = g.rng.Uint64N(expMax + 1)
	}
	return Value{Bits: sign | exp<<l.fracBits | frac&fracMask}
}

// frac returns a significand field with long runs of ones or zeros at
// either end half of the time, since those exercise carries and sticky
// bits.
func (g *Generator) frac(bits uint) uint64 {
	mask := uint64(1)<<bits - 1
	r := g.rng.Uint64() & mask
	switch g.rng.IntN(6) {
	case 0:
		return r >> (bits - 2) << (bits - 2)
	case 1:
		return r | mask>>2
	case 2:
		return r & 3
	case 3:
		return mask &^ (r & 3)
	}
	return r
}

func (g *Generator) integer(bits uint) uint64 {
	mask := uint64(1)<<(bits-1)<<1 - 1
	var v uint64
	switch g.rng.IntN(8) {
	case 0:
		v = g.rng.Uint64N(16)
	case 1:
		v = -g.rng.Uint64N(16)
	case 2:
		// Around 2^k.
		k := g.rng.UintN(bits)
		v = 1<<k + g.rng.Uint64N(5) - 2
	case 3:
		v = mask >> 1
	default:
		v = g.rng.Uint64()
	}
	return v & mask
}

func (g *Generator) ext() Value {
	sign := uint16(g.rng.Uint64()&1) << 15
	sig := g.frac(63) | 1<<63
	var exp uint16
	switch g.rng.IntN(14) {
	case 0:
		exp, sig = 0, 0
	case 1:
		exp, sig = 0, sig&^(1<<63)
	case 2:
		exp = 1
	case 3:
		exp = 0x7FFE
	case 4:
		exp, sig = 0x7FFF, 1<<63
	case 5:
		exp = 0x7FFF
		if sig == 1<<63 {
			sig |= 1
		}
	case 6, 7:
		exp = 0x3FFE + uint16(g.rng.IntN(3))
	case 8:
		exp = 0x3FFF + 62 + uint16(g.rng.IntN(3)) - 2
	default:
		exp = uint16(g.rng.IntN(0x7FFF))
	}
	return Value{Hi: sign | exp, Bits: sig}
}

// Operands returns operands for op.
func (g *Generator) Operands(op *Op) []Value {
	vs := make([]Value, len(op.Args))
	for i, f := range op.Args {
		vs[i] = g.Value(f)
	}
	return vs
}

// Mode returns one of modes at random.
func (g *Generator) Mode(modes []softfloat.RoundingMode) softfloat.RoundingMode {
	return modes[g.rng.IntN(len(modes))]
}
