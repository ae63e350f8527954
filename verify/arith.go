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

// quotient returns x/y, exact or carrying a sticky bit.
func quotient(x, y *big.Float, prec uint) *big.Float {
	h := prec + stickyBits
	q := new(big.Float).SetPrec(h).SetMode(big.ToZero).Quo(x, y)
	return sticky(q, h, exactMul(q, y).Cmp(x) == 0)
}

// root returns the square root of x >= 0, exact or carrying a sticky bit.
// big.Float.Sqrt does not report accuracy, so the truncated root is
// corrected until t*t <= x < (t+ulp)^2.
func root(x *big.Float, prec uint) *big.Float {
	h := prec + stickyBits
	t := new(big.Float).SetPrec(h).SetMode(big.ToZero).Sqrt(x)
	ulp := func() *big.Float { return pow2(t.MantExp(nil) - int(h)) }
	for exactMul(t, t).Cmp(x) > 0 {
		t.Sub(t, ulp())
	}
	for {
		n := exactAdd(t, ulp())
		if exactMul(n, n).Cmp(x) > 0 {
			break
		}
		t.Set(n)
	}
	return sticky(t, h, exactMul(t, t).Cmp(x) == 0)
}

// roundInt rounds x to an integer in mode. A zero result keeps the sign of
// x.
func roundInt(x *big.Float, mode softfloat.RoundingMode) (*big.Float, bool) {
	t, _ := x.Int(nil)
	frac := exactAdd(x, new(big.Float).Neg(new(big.Float).SetInt(t)))
	if frac.Sign() == 0 {
		return x, false
	}
	var away bool
	half := cmpAbs(frac, big.NewFloat(0.5))
	switch mode {
	case softfloat.RoundNearEven:
		away = half > 0 || (half == 0 && t.Bit(0) == 1)
	case softfloat.RoundNearMaxMag:
		away = half >= 0
	case softfloat.RoundDown:
		away = x.Sign() < 0
	case softfloat.RoundUp:
		away = x.Sign() > 0
	}
	if away {
		t.Add(t, big.NewInt(int64(x.Sign())))
	}
	r := new(big.Float).SetInt(t)
	if r.Sign() == 0 && x.Signbit() {
		r.Neg(r)
	}
	return r, true
}

func (l layout) add(a, b operand, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	switch {
	case a.class == classUnsupported || b.class == classUnsupported:
		return l.invalid()
	case a.isNaN() || b.isNaN():
		return l.propagate(a, b)
	case a.class == classInf && b.class == classInf && a.sign != b.sign:
		return l.invalid()
	case a.class == classInf:
		return l.inf(a.sign), 0
	case b.class == classInf:
		return l.inf(b.sign), 0
	}
	sum := exactAdd(a.x, b.x)
	if sum.Sign() == 0 {
		return l.zero(signedZero(a.class == classZero, b.class == classZero, a.sign, b.sign, mode)), 0
	}
	return l.round(sum, mode)
}

// sub flips the sign of b after NaN selection, which sees b as given.
func (l layout) sub(a, b operand, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	if a.isNaN() || b.isNaN() || a.class == classUnsupported || b.class == classUnsupported {
		return l.add(a, b, mode)
	}
	b.sign = !b.sign
	if b.x != nil {
		b.x = new(big.Float).Neg(b.x)
	}
	return l.add(a, b, mode)
}

func (l layout) mul(a, b operand, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	sign := a.sign != b.sign
	switch {
	case a.class == classUnsupported || b.class == classUnsupported:
		return l.invalid()
	case a.isNaN() || b.isNaN():
		return l.propagate(a, b)
	case a.class == classInf && b.class == classZero, a.class == classZero && b.class == classInf:
		return l.invalid()
	case a.class == classInf || b.class == classInf:
		return l.inf(sign), 0
	case a.class == classZero || b.class == classZero:
		return l.zero(sign), 0
	}
	return l.round(exactMul(a.x, b.x), mode)
}

func (l layout) div(a, b operand, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	sign := a.sign != b.sign
	switch {
	case a.class == classUnsupported || b.class == classUnsupported:
		return l.invalid()
	case a.isNaN() || b.isNaN():
		return l.propagate(a, b)
	case a.class == classInf && b.class == classInf, a.class == classZero && b.class == classZero:
		return l.invalid()
	case a.class == classInf:
		return l.inf(sign), 0
	case b.class == classInf, a.class == classZero:
		return l.zero(sign), 0
	case b.class == classZero:
		return l.inf(sign), softfloat.FlagInfinite
	}
	return l.round(quotient(a.x, b.x, l.prec), mode)
}

func (l layout) sqrt(a operand, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	switch {
	case a.class == classUnsupported:
		return l.invalid()
	case a.isNaN():
		return l.quiet(a), nanFlags(a)
	case a.class == classZero:
		return a.v, 0
	case a.sign:
		return l.invalid()
	case a.class == classInf:
		return a.v, 0
	}
	return l.round(root(a.x, l.prec), mode)
}

func (l layout) mulAdd(a, b, c operand, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	sign := a.sign != b.sign
	switch {
	case a.class == classUnsupported || b.class == classUnsupported || c.class == classUnsupported:
		return l.invalid()
	case a.isNaN() || b.isNaN() || c.isNaN():
		return l.propagate3(a, b, c)
	case a.class == classInf && b.class == classZero, a.class == classZero && b.class == classInf:
		return l.invalid()
	case a.class == classInf || b.class == classInf:
		if c.class == classInf && c.sign != sign {
			return l.invalid()
		}
		return l.inf(sign), 0
	case c.class == classInf:
		return c.v, 0
	}
	p := exactMul(a.x, b.x)
	pZero := a.class == classZero || b.class == classZero
	if pZero && sign {
		p.Neg(p.Abs(p))
	}
	sum := exactAdd(p, c.x)
	if sum.Sign() == 0 {
		return l.zero(signedZero(pZero, c.class == classZero, sign, c.sign, mode)), 0
	}
	return l.round(sum, mode)
}

func (l layout) roundToInt(a operand, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	switch a.class {
	case classUnsupported:
		return l.invalid()
	case classQNaN, classSNaN:
		return l.quiet(a), nanFlags(a)
	case classZero, classInf:
		return a.v, 0
	}
	r, inexact := roundInt(a.x, mode)
	if !inexact {
		return a.v, 0
	}
	return l.encode(r), softfloat.FlagInexact
}

// compare orders a and b. ok is false for unordered operands; signaling
// comparisons raise invalid for every NaN, quiet ones only for signaling
// NaNs.
func (l layout) compare(a, b operand, signaling bool) (cmp int, ok bool, flags softfloat.Flags) {
	switch {
	case a.class == classUnsupported || b.class == classUnsupported:
		return 0, false, softfloat.FlagInvalid
	case a.isNaN() || b.isNaN():
		if signaling {
			return 0, false, softfloat.FlagInvalid
		}
		return 0, false, nanFlags(a, b)
	}
	return l.value(a).Cmp(l.value(b)), true, 0
}

// value returns the ordering key of a non-NaN operand.
func (l layout) value(o operand) *big.Float {
	if o.class == classInf {
		v := pow2(l.emax + 2)
		if o.sign {
			v.Neg(v)
		}
		return v
	}
	return o.x
}

// minMax follows MINSS and MAXSS: the second operand is returned unless
// the first is strictly smaller (larger), so NaNs and equal values yield b.
func (l layout) minMax(a, b operand, isMax bool) (testfloat.Value, softfloat.Flags) {
	cmp, ok, flags := l.compare(a, b, true)
	if ok && ((isMax && cmp > 0) || (!isMax && cmp < 0)) {
		return a.v, flags
	}
	return b.v, flags
}

// convert rounds a into the layout to.
func (l layout) convert(a operand, to layout, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	switch a.class {
	case classUnsupported:
		return to.invalid()
	case classQNaN, classSNaN:
		return to.nan(a.sign, l.payload(a)), nanFlags(a)
	case classInf:
		return to.inf(a.sign), 0
	case classZero:
		return to.zero(a.sign), 0
	}
	return to.round(a.x, mode)
}

// intRange is the representable range of an integer format.
type intRange struct {
	min, max   *big.Int
	indefinite uint64
	bits       uint
}

var intRanges = map[testfloat.Format]intRange{
	testfloat.I32:  {big.NewInt(-1 << 31), big.NewInt(1<<31 - 1), 1 << 31, 32},
	testfloat.I64:  {big.NewInt(-1 << 63), big.NewInt(1<<63 - 1), 1 << 63, 64},
	testfloat.UI32: {big.NewInt(0), big.NewInt(1<<32 - 1), 1<<32 - 1, 32},
	testfloat.UI64: {big.NewInt(0), new(big.Int).SetUint64(1<<64 - 1), 1<<64 - 1, 64},
}

// toInt converts a to an integer format, raising inexact for fractions.
func (l layout) toInt(a operand, to testfloat.Format, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	rng := intRanges[to]
	switch a.class {
	case classZero:
		return testfloat.Value{}, 0
	case classFinite:
	default:
		return testfloat.Value{Bits: rng.indefinite}, softfloat.FlagInvalid
	}
	r, inexact := roundInt(a.x, mode)
	n, _ := r.Int(nil)
	if n.Cmp(rng.min) < 0 || n.Cmp(rng.max) > 0 {
		return testfloat.Value{Bits: rng.indefinite}, softfloat.FlagInvalid
	}
	var flags softfloat.Flags
	if inexact {
		flags = softfloat.FlagInexact
	}
	bits := n.Uint64()
	if n.Sign() < 0 {
		bits = uint64(n.Int64())
	}
	if rng.bits == 32 {
		bits &= 1<<32 - 1
	}
	return testfloat.Value{Bits: bits}, flags
}

// fromInt rounds an integer operand of format f into l.
func (l layout) fromInt(v testfloat.Value, f testfloat.Format, mode softfloat.RoundingMode) (testfloat.Value, softfloat.Flags) {
	x := new(big.Float)
	switch f {
	case testfloat.I32:
		x.SetInt64(int64(int32(uint32(v.Bits))))
	case testfloat.I64:
		x.SetInt64(int64(v.Bits))
	case testfloat.UI32:
		x.SetUint64(uint64(uint32(v.Bits)))
	default:
		x.SetUint64(v.Bits)
	}
	if x.Sign() == 0 {
		return l.zero(false), 0
	}
	return l.round(x, mode)
}
