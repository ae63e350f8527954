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
	"math/big"

	"github.com/ajroetker/go-softfloat/softfloat"
	"github.com/ajroetker/go-softfloat/testfloat"
)

type class uint8

const (
	classFinite class = iota
	classZero
	classInf
	classQNaN
	classSNaN
	classUnsupported // extended precision encodings the x87 rejects
)

// operand is a decoded floating-point input.
type operand struct {
	class class
	sign  bool
	x     *big.Float // exact value of finite operands
	v     testfloat.Value
}

func (o operand) isNaN() bool { return o.class == classQNaN || o.class == classSNaN }

func (l layout) decode(v testfloat.Value) operand {
	op := operand{v: v}
	var exp int
	var sig uint64
	if l.ext {
		op.sign = v.Hi&0x8000 != 0
		exp, sig = int(v.Hi&0x7FFF), v.Bits
		if exp != 0 && sig&(1<<63) == 0 {
			op.class = classUnsupported
			return op
		}
		sig &^= 1 << 63
	} else {
		frac := l.prec - 1
		op.sign = v.Bits&l.signBit() != 0
		exp = int(v.Bits>>frac) & l.expMax()
		sig = v.Bits & (1<<frac - 1)
	}
	switch {
	case exp == l.expMax() && sig == 0:
		op.class = classInf
		return op
	case exp == l.expMax():
		op.class = classSNaN
		if sig&(1<<(l.prec-2)) != 0 {
			op.class = classQNaN
		}
		return op
	case exp == 0 && sig == 0 && (!l.ext || v.Bits == 0):
		op.class = classZero
		op.x = new(big.Float)
		if op.sign {
			op.x.Neg(op.x)
		}
		return op
	}
	if exp == 0 {
		// Subnormals, and pseudo-denormals that keep the integer bit, both
		// use the exponent of the smallest normal.
		exp = 1
		if l.ext {
			sig = v.Bits
		}
	} else {
		sig |= 1 << (l.prec - 1)
	}
	op.x = new(big.Float).SetUint64(sig)
	op.x.SetMantExp(op.x, exp-l.bias()-int(l.prec)+1)
	if op.sign {
		op.x.Neg(op.x)
	}
	return op
}

// payload returns the NaN fraction left-aligned in 64 bits, quiet bit at
// bit 63.
func (l layout) payload(o operand) uint64 {
	if l.ext {
		return o.v.Bits << 1
	}
	frac := l.prec - 1
	return o.v.Bits << (64 - frac)
}

func (l layout) nan(sign bool, payload uint64) testfloat.Value {
	if l.ext {
		hi := uint16(0x7FFF)
		if sign {
			hi |= 0x8000
		}
		return testfloat.Value{Hi: hi, Bits: 0xC000000000000000 | payload>>1}
	}
	return l.pack(sign, l.expMax(), 1<<(l.prec-2)|payload>>(64-(l.prec-1)))
}

func (l layout) quiet(o operand) testfloat.Value {
	v := o.v
	v.Bits |= 1 << (l.prec - 2)
	return v
}

func nanFlags(ops ...operand) softfloat.Flags {
	for _, o := range ops {
		if o.class == classSNaN {
			return softfloat.FlagInvalid
		}
	}
	return 0
}

// propagate selects the NaN result of a two-operand operation. Binary
// formats follow SSE: a NaN a wins. Extended precision follows the x87: a
// quiet NaN beats a signaling one, otherwise the larger significand wins.
func (l layout) propagate(a, b operand) (testfloat.Value, softfloat.Flags) {
	flags := nanFlags(a, b)
	if !l.ext {
		if a.isNaN() {
			return l.quiet(a), flags
		}
		return l.quiet(b), flags
	}
	switch {
	case !b.isNaN():
		return l.quiet(a), flags
	case !a.isNaN():
		return l.quiet(b), flags
	case a.class != b.class:
		if a.class == classQNaN {
			return l.quiet(a), flags
		}
		return l.quiet(b), flags
	}
	if a.v.Bits > b.v.Bits || (a.v.Bits == b.v.Bits && !a.sign && b.sign) {
		return l.quiet(a), flags
	}
	return l.quiet(b), flags
}

// propagate3 returns the first NaN among the operands of a fused
// multiply-add.
func (l layout) propagate3(a, b, c operand) (testfloat.Value, softfloat.Flags) {
	flags := nanFlags(a, b, c)
	for _, o := range []operand{a, b} {
		if o.isNaN() {
			return l.quiet(o), flags
		}
	}
	return l.quiet(c), flags
}

func (l layout) invalid() (testfloat.Value, softfloat.Flags) {
	return l.defaultNaN(), softfloat.FlagInvalid
}

// signedZero is the sign of an exact zero sum of x and y: the common sign
// when both are zeros of the same sign, otherwise negative only when
// rounding down.
func signedZero(xZero, yZero bool, xSign, ySign bool, mode softfloat.RoundingMode) bool {
	if xZero && yZero && xSign == ySign {
		return xSign
	}
	return mode == softfloat.RoundDown
}
