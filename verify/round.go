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

// layout describes a floating-point format for exact rounding.
type layout struct {
	prec    uint // significand bits, integer bit included
	expBits uint
	emin    int  // the smallest normal is 2^emin
	emax    int  // the largest finite value is below 2^(emax+1)
	ext     bool // explicit integer bit, sign and exponent in Value.Hi
}

var layouts = map[testfloat.Format]layout{
	testfloat.F16:    {prec: 11, expBits: 5, emin: -14, emax: 15},
	testfloat.F32:    {prec: 24, expBits: 8, emin: -126, emax: 127},
	testfloat.F64:    {prec: 53, expBits: 11, emin: -1022, emax: 1023},
	testfloat.ExtF80: {prec: 64, expBits: 15, emin: -16382, emax: 16383, ext: true},
}

// stickyBits is the guard precision added to inexact quotients and roots.
const stickyBits = 8

func pow2(e int) *big.Float {
	return new(big.Float).SetMantExp(big.NewFloat(1), e)
}

// cmpAbs compares |x| and |y|.
func cmpAbs(x, y *big.Float) int {
	return new(big.Float).Abs(x).Cmp(new(big.Float).Abs(y))
}

// exactAdd returns x+y without rounding.
func exactAdd(x, y *big.Float) *big.Float {
	prec := max(x.MinPrec(), y.MinPrec()) + 2
	if x.Sign() != 0 && y.Sign() != 0 {
		d := x.MantExp(nil) - y.MantExp(nil)
		if d < 0 {
			d = -d
		}
		prec += uint(d)
	}
	return new(big.Float).SetPrec(prec).Add(x, y)
}

// exactMul returns x*y without rounding.
func exactMul(x, y *big.Float) *big.Float {
	return new(big.Float).SetPrec(x.MinPrec() + y.MinPrec() + 1).Mul(x, y)
}

func bigMode(mode softfloat.RoundingMode) big.RoundingMode {
	switch mode {
	case softfloat.RoundDown:
		return big.ToNegativeInf
	case softfloat.RoundUp:
		return big.ToPositiveInf
	case softfloat.RoundToZero:
		return big.ToZero
	case softfloat.RoundNearMaxMag:
		return big.ToNearestAway
	}
	return big.ToNearestEven
}

func (l layout) bias() int      { return l.emax }
func (l layout) expMax() int    { return 1<<l.expBits - 1 }
func (l layout) signBit() uint64 { return 1 << (l.prec - 1 + l.expBits) }

// pack assembles an encoding from a biased exponent and a significand that
// carries the integer bit for normal numbers.
func (l layout) pack(sign bool, exp int, sig uint64) testfloat.Value {
	if l.ext {
		hi := uint16(exp)
		if sign {
			hi |= 0x8000
		}
		return testfloat.Value{Hi: hi, Bits: sig}
	}
	frac := l.prec - 1
	bits := uint64(exp)<<frac | sig&(1<<frac-1)
	if sign {
		bits |= l.signBit()
	}
	return testfloat.Value{Bits: bits}
}

func (l layout) zero(sign bool) testfloat.Value { return l.pack(sign, 0, 0) }

func (l layout) inf(sign bool) testfloat.Value {
	if l.ext {
		return l.pack(sign, l.expMax(), 1<<63)
	}
	return l.pack(sign, l.expMax(), 0)
}

func (l layout) maxFinite(sign bool) testfloat.Value {
	return l.pack(sign, l.expMax()-1, 1<<l.prec-1)
}

// defaultNaN is the x86 indefinite: negative, quiet, zero payload.
func (l layout) defaultNaN() testfloat.Value {
	if l.ext {
		return testfloat.Value{Hi: 0xFFFF, Bits: 0xC000000000000000}
	}
	return l.pack(true, l.expMax(), 1<<(l.prec-2))
}

// encode converts a value already rounded to l into its encoding.
func (l layout) encode(r *big.Float) testfloat.Value {
	sign := r.Signbit()
	if r.Sign() == 0 {
		return l.zero(sign)
	}
	a := new(big.Float).Abs(r)
	mant := new(big.Float)
	e := a.MantExp(mant)
	if e-1 < l.emin {
		k, _ := new(big.Float).SetMantExp(a, int(l.prec)-1-l.emin).Uint64()
		return l.pack(sign, 0, k)
	}
	sig, _ := new(big.Float).SetMantExp(mant, int(l.prec)).Uint64()
	return l.pack(sign, e-1+l.bias(), sig)
}

// overflow returns the result of an overflowing rounding in mode.
func (l layout) overflow(sign bool, mode softfloat.RoundingMode) testfloat.Value {
	switch mode {
	case softfloat.RoundToZero:
		return l.maxFinite(sign)
	case softfloat.RoundDown:
		if !sign {
			return l.maxFinite(false)
		}
	case softfloat.RoundUp:
		if sign {
			return l.maxFinite(true)
		}
	}
	return l.inf(sign)
}

// round rounds x to l in mode with all exceptions masked. x must be exact,
// or carry a sticky bit stickyBits below the target precision (see
// sticky). Tininess is detected after rounding, as on x86: a result is tiny
// when rounding it to full precision with an unbounded exponent stays
// below the smallest normal.
func (l layout) round(x *big.Float, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	if x.Sign() == 0 {
		return l.zero(x.Signbit()), 0
	}
	bm := bigMode(mode)
	r := new(big.Float).SetMode(bm).SetPrec(l.prec).Set(x)
	if r.MantExp(nil) > l.emax+1 {
		return l.overflow(x.Signbit(), mode), softfloat.FlagOverflow | softfloat.FlagInexact
	}

	tiny := cmpAbs(r, pow2(l.emin)) < 0
	if tiny {
		// Adding 2^emin with the sign of x makes the precision l.prec ulp
		// equal to the subnormal quantum.
		s := pow2(l.emin)
		if x.Signbit() {
			s.Neg(s)
		}
		y := new(big.Float).SetMode(bm).SetPrec(l.prec).Add(x, s)
		r = new(big.Float).SetPrec(l.prec).Sub(y, s)
		if r.Sign() == 0 && r.Signbit() != x.Signbit() {
			r.Neg(r)
		}
	}

	var flags softfloat.Flags
	if r.Cmp(x) != 0 {
		flags |= softfloat.FlagInexact
		if tiny {
			flags |= softfloat.FlagUnderflow
		}
	}
	return l.encode(r), flags
}

// sticky turns a value truncated to prec bits into one that rounds like
// the exact value at any precision up to prec-2: when inexact, it adds
// half an ulp, landing strictly between the truncation and the next
// representable value, as the exact value does.
func sticky(t *big.Float, prec uint, exact bool) *big.Float {
	if exact || t.Sign() == 0 {
		return t
	}
	half := pow2(t.MantExp(nil) - int(prec) - 1)
	if t.Signbit() {
		half.Neg(half)
	}
	return new(big.Float).SetPrec(prec+1).Add(t, half)
}
