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

package softfloat

import (
	"fmt"
	"math"
)

// Float16 is an IEEE 754 binary16 value stored as its bit pattern:
// 1 sign bit, 5 exponent bits (bias 15), 10 fraction bits.
type Float16 uint16

// Float32 is an IEEE 754 binary32 value stored as its bit pattern:
// 1 sign bit, 8 exponent bits (bias 127), 23 fraction bits.
type Float32 uint32

// Float64 is an IEEE 754 binary64 value stored as its bit pattern:
// 1 sign bit, 11 exponent bits (bias 1023), 52 fraction bits.
type Float64 uint64

// ExtFloat80 is an x87 double-extended value. SignExp holds the sign in
// bit 15 and the 15-bit exponent (bias 16383). Signif is the 64-bit
// significand including the explicit integer bit 63.
type ExtFloat80 struct {
	SignExp uint16
	Signif  uint64
}

// String formats the value as its hex encoding, e.g. "3fff.8000000000000000".
func (a ExtFloat80) String() string {
	return fmt.Sprintf("%04x.%016x", a.SignExp, a.Signif)
}

// Class is the IEEE category of a value.
type Class uint8

const (
	ClassZero Class = iota
	ClassSNaN
	ClassQNaN
	ClassNegativeInf
	ClassPositiveInf
	ClassDenormal
	ClassNormal
)

// String returns a human-readable name for the class.
func (c Class) String() string {
	switch c {
	case ClassZero:
		return "zero"
	case ClassSNaN:
		return "snan"
	case ClassQNaN:
		return "qnan"
	case ClassNegativeInf:
		return "-inf"
	case ClassPositiveInf:
		return "+inf"
	case ClassDenormal:
		return "denormal"
	case ClassNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Relation is the result of a comparison.
type Relation int8

const (
	RelationLess      Relation = -1
	RelationEqual     Relation = 0
	RelationGreater   Relation = 1
	RelationUnordered Relation = 2
)

// String returns "lt", "eq", "gt" or "un".
func (r Relation) String() string {
	switch r {
	case RelationLess:
		return "lt"
	case RelationEqual:
		return "eq"
	case RelationGreater:
		return "gt"
	case RelationUnordered:
		return "un"
	default:
		return "invalid"
	}
}

// MulAddOp selects the sign variant of a fused multiply-add. Bit 0 negates
// the addend and bit 1 the product, so MulAddNegateResult sets both.
type MulAddOp uint8

const (
	// MulAdd computes a*b + c.
	MulAdd MulAddOp = 0
	// MulAddSubC computes a*b - c.
	MulAddSubC MulAddOp = 1
	// MulAddSubProd computes -(a*b) + c.
	MulAddSubProd MulAddOp = 2
	// MulAddNegateResult computes -(a*b + c). NaN results keep their sign.
	MulAddNegateResult MulAddOp = 3
)

// Integer results of invalid conversions (the x86 "integer indefinite").
// Positive and negative overflow, and NaN inputs, all return these values.
const (
	I16Indefinite  int16  = math.MinInt16
	I32Indefinite  int32  = math.MinInt32
	I64Indefinite  int64  = math.MinInt64
	UI16Indefinite uint16 = math.MaxUint16
	UI32Indefinite uint32 = math.MaxUint32
	UI64Indefinite uint64 = math.MaxUint64
)

// Bit layout constants.
const (
	f16ExpMask  = 0x1F
	f16FracMask = 0x03FF
	f16SignBit  = 0x8000
	f16Bias     = 0xF

	f32ExpMask  = 0xFF
	f32FracMask = 0x007FFFFF
	f32SignBit  = 0x80000000
	f32Bias     = 0x7F

	f64ExpMask  = 0x7FF
	f64FracMask = 0x000FFFFFFFFFFFFF
	f64SignBit  = 0x8000000000000000
	f64Bias     = 0x3FF

	extF80ExpMask = 0x7FFF
	extF80Bias    = 0x3FFF
	extF80IntBit  = 0x8000000000000000
)

// expSig is a decomposed exponent/significand pair produced by the
// subnormal normalizers.
type expSig16 struct {
	exp int
	sig uint16
}

type expSig32 struct {
	exp int
	sig uint32
}

type expSig64 struct {
	exp int
	sig uint64
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func b2u32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func b2u64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func formatHex16(v uint16) string { return fmt.Sprintf("%04x", v) }
func formatHex32(v uint32) string { return fmt.Sprintf("%08x", v) }
func formatHex64(v uint64) string { return fmt.Sprintf("%016x", v) }
