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

// x87 double-extended arithmetic. Results are rounded at the precision
// selected by Status.ExtF80Precision. Unsupported encodings (unnormals,
// pseudo-NaNs and pseudo-infinities) are invalid operands; pseudo-denormals
// are accepted and read with exponent 1.

// Sign reports whether the sign bit is set.
func (a ExtFloat80) Sign() bool { return a.SignExp>>15 != 0 }

// Exp returns the biased 15-bit exponent.
func (a ExtFloat80) Exp() int { return int(a.SignExp & extF80ExpMask) }

// Frac returns the 64-bit significand including the integer bit.
func (a ExtFloat80) Frac() uint64 { return a.Signif }

func (a ExtFloat80) IsNaN() bool          { return isNaNExtF80UI(a.SignExp, a.Signif) }
func (a ExtFloat80) IsSignalingNaN() bool { return isSigNaNExtF80UI(a.SignExp, a.Signif) }
func (a ExtFloat80) IsUnsupported() bool  { return isUnsupportedExtF80UI(a.SignExp, a.Signif) }

// IsInf reports a true infinity; pseudo-infinities are unsupported.
func (a ExtFloat80) IsInf() bool {
	return a.Exp() == extF80ExpMask && a.Signif == extF80IntBit
}

func (a ExtFloat80) IsZero() bool     { return a.Exp() == 0 && a.Signif == 0 }
func (a ExtFloat80) IsDenormal() bool { return a.Exp() == 0 && a.Signif != 0 }

func (a ExtFloat80) Neg() ExtFloat80 {
	a.SignExp ^= 0x8000
	return a
}

func (a ExtFloat80) Abs() ExtFloat80 {
	a.SignExp &^= 0x8000
	return a
}

// Class returns the IEEE category of a. Unsupported encodings report as
// signaling NaNs, matching what an arithmetic instruction makes of them.
func (a ExtFloat80) Class() Class {
	exp, sig := a.Exp(), a.Signif
	if isUnsupportedExtF80UI(a.SignExp, sig) {
		return ClassSNaN
	}
	switch {
	case exp == extF80ExpMask:
		if sig<<1 == 0 {
			if a.Sign() {
				return ClassNegativeInf
			}
			return ClassPositiveInf
		}
		if sig&0x4000000000000000 != 0 {
			return ClassQNaN
		}
		return ClassSNaN
	case exp == 0:
		if sig == 0 {
			return ClassZero
		}
		return ClassDenormal
	}
	return ClassNormal
}

var extF80Inf = [2]ExtFloat80{
	{SignExp: 0x7FFF, Signif: extF80IntBit},
	{SignExp: 0xFFFF, Signif: extF80IntBit},
}

func infExtF80(sign bool) ExtFloat80 { return extF80Inf[b2i(sign)] }

func addMagsExtF80(a, b ExtFloat80, signZ bool, st *Status) ExtFloat80 {
	if a.IsUnsupported() || b.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	expA, sigA := a.Exp(), a.Signif
	expB, sigB := b.Exp(), b.Signif
	if expA == 0x7FFF {
		if sigA<<1 != 0 || (expB == 0x7FFF && sigB<<1 != 0) {
			return propagateNaNExtF80(a, b, st)
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return a
	}
	if expB == 0x7FFF {
		if sigB<<1 != 0 {
			return propagateNaNExtF80(a, b, st)
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return infExtF80(signZ)
	}
	if expA == 0 {
		if sigA == 0 {
			if expB == 0 && sigB != 0 {
				st.Raise(FlagDenormal)
				n := normSubnormalExtF80Sig(sigB)
				expB, sigB = n.exp, n.sig
			}
			return roundPackToExtF80(signZ, expB, sigB, 0, st)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if expB == 0 {
		if sigB == 0 {
			return roundPackToExtF80(signZ, expA, sigA, 0, st)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	expDiff := expA - expB
	expZ := expA
	var sigZ, sigZExtra uint64
	switch {
	case expDiff > 0:
		z := shiftRightJam64Extra(sigB, 0, uint(expDiff))
		sigB, sigZExtra = z.v, z.extra
	case expDiff < 0:
		z := shiftRightJam64Extra(sigA, 0, uint(-expDiff))
		sigA, sigZExtra = z.v, z.extra
		expZ = expB
	}
	sigZ = sigA + sigB
	if expDiff == 0 || int64(sigZ) >= 0 {
		z := shortShiftRightJam64Extra(sigZ, sigZExtra, 1)
		sigZ, sigZExtra = z.v|extF80IntBit, z.extra
		expZ++
	}
	return roundPackToExtF80(signZ, expZ, sigZ, sigZExtra, st)
}

func subMagsExtF80(a, b ExtFloat80, signZ bool, st *Status) ExtFloat80 {
	if a.IsUnsupported() || b.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	expA, sigA := a.Exp(), a.Signif
	expB, sigB := b.Exp(), b.Signif
	if expA == 0x7FFF {
		if sigA<<1 != 0 {
			return propagateNaNExtF80(a, b, st)
		}
		if expB == 0x7FFF {
			if sigB<<1 != 0 {
				return propagateNaNExtF80(a, b, st)
			}
			st.Raise(FlagInvalid)
			return DefaultNaNExtF80
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return a
	}
	if expB == 0x7FFF {
		if sigB<<1 != 0 {
			return propagateNaNExtF80(a, b, st)
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return infExtF80(!signZ)
	}
	if expA == 0 {
		if sigA == 0 {
			if expB == 0 {
				if sigB != 0 {
					st.Raise(FlagDenormal)
					n := normSubnormalExtF80Sig(sigB)
					return roundPackToExtF80(!signZ, n.exp, n.sig, 0, st)
				}
				return packToExtF80(st.RoundingMode == RoundDown, 0, 0)
			}
			return roundPackToExtF80(!signZ, expB, sigB, 0, st)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if expB == 0 {
		if sigB == 0 {
			return roundPackToExtF80(signZ, expA, sigA, 0, st)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	expDiff := expA - expB
	bigA := uint128{hi: sigA}
	bigB := uint128{hi: sigB}
	var expZ int
	switch {
	case expDiff > 0:
		bigB = shiftRightJam128(bigB, uint(expDiff))
	case expDiff < 0:
		bigA = shiftRightJam128(bigA, uint(-expDiff))
	}
	var z uint128
	switch {
	case lt128(bigB, bigA):
		z, expZ = sub128(bigA, bigB), expA
	case lt128(bigA, bigB):
		z, expZ, signZ = sub128(bigB, bigA), expB, !signZ
	default:
		return packToExtF80(st.RoundingMode == RoundDown, 0, 0)
	}
	return normRoundPackToExtF80(signZ, expZ, z.hi, z.lo, st)
}

// ExtF80Add returns a+b.
func ExtF80Add(a, b ExtFloat80, st *Status) ExtFloat80 {
	if a.Sign() == b.Sign() {
		return addMagsExtF80(a, b, a.Sign(), st)
	}
	return subMagsExtF80(a, b, a.Sign(), st)
}

// ExtF80Sub returns a-b.
func ExtF80Sub(a, b ExtFloat80, st *Status) ExtFloat80 {
	if a.Sign() == b.Sign() {
		return subMagsExtF80(a, b, a.Sign(), st)
	}
	return addMagsExtF80(a, b, a.Sign(), st)
}

// ExtF80Mul returns a*b.
func ExtF80Mul(a, b ExtFloat80, st *Status) ExtFloat80 {
	if a.IsUnsupported() || b.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	expA, sigA := a.Exp(), a.Signif
	expB, sigB := b.Exp(), b.Signif
	signZ := a.Sign() != b.Sign()
	if expA == 0x7FFF {
		if sigA<<1 != 0 || (expB == 0x7FFF && sigB<<1 != 0) {
			return propagateNaNExtF80(a, b, st)
		}
		if expB == 0 {
			if sigB == 0 {
				st.Raise(FlagInvalid)
				return DefaultNaNExtF80
			}
			st.Raise(FlagDenormal)
		}
		return infExtF80(signZ)
	}
	if expB == 0x7FFF {
		if sigB<<1 != 0 {
			return propagateNaNExtF80(a, b, st)
		}
		if expA == 0 {
			if sigA == 0 {
				st.Raise(FlagInvalid)
				return DefaultNaNExtF80
			}
			st.Raise(FlagDenormal)
		}
		return infExtF80(signZ)
	}
	if expA == 0 {
		if sigA == 0 {
			if sigB != 0 && expB == 0 {
				st.Raise(FlagDenormal)
			}
			return packToExtF80(signZ, 0, 0)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if expB == 0 {
		if sigB == 0 {
			return packToExtF80(signZ, 0, 0)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	expZ := expA + expB - 0x3FFE
	z := mul64To128(sigA, sigB)
	if int64(z.hi) >= 0 {
		z = shortShiftLeft128(z, 1)
		expZ--
	}
	return roundPackToExtF80(signZ, expZ, z.hi, z.lo, st)
}

// ExtF80Div returns a/b. The quotient is developed 29 bits at a time from
// a 32-bit reciprocal of the divisor; the last chunk is checked against
// the exact remainder when it lies close to a rounding boundary.
func ExtF80Div(a, b ExtFloat80, st *Status) ExtFloat80 {
	if a.IsUnsupported() || b.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	expA, sigA := a.Exp(), a.Signif
	expB, sigB := b.Exp(), b.Signif
	signZ := a.Sign() != b.Sign()
	if expA == 0x7FFF {
		if sigA<<1 != 0 {
			return propagateNaNExtF80(a, b, st)
		}
		if expB == 0x7FFF {
			if sigB<<1 != 0 {
				return propagateNaNExtF80(a, b, st)
			}
			st.Raise(FlagInvalid)
			return DefaultNaNExtF80
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return infExtF80(signZ)
	}
	if expB == 0x7FFF {
		if sigB<<1 != 0 {
			return propagateNaNExtF80(a, b, st)
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return packToExtF80(signZ, 0, 0)
	}
	if expB == 0 {
		if sigB == 0 {
			if expA == 0 && sigA == 0 {
				st.Raise(FlagInvalid)
				return DefaultNaNExtF80
			}
			st.Raise(FlagDivByZero)
			return infExtF80(signZ)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	if expA == 0 {
		if sigA == 0 {
			return packToExtF80(signZ, 0, 0)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	expZ := expA - expB + 0x3FFF
	var rem uint128
	if sigA < sigB {
		expZ--
		rem = shortShiftLeft128(uint128{lo: sigA}, 32)
	} else {
		rem = shortShiftLeft128(uint128{lo: sigA}, 31)
	}
	recip32 := approxRecip32_1(uint32(sigB >> 32))
	var sigZ uint64
	var q uint32
	for ix := 2; ; {
		q64 := uint64(uint32(rem.hi>>2)) * uint64(recip32)
		q = uint32((q64 + 0x80000000) >> 32)
		ix--
		if ix < 0 {
			break
		}
		rem = shortShiftLeft128(rem, 29)
		rem = sub128(rem, mul64ByShifted32To128(sigB, q))
		if rem.hi&0x8000000000000000 != 0 {
			q--
			rem = add128(rem, uint128{hi: sigB >> 32, lo: sigB << 32})
		}
		sigZ = sigZ<<29 + uint64(q)
	}
	if (q+1)&0x3FFFFF < 2 {
		rem = shortShiftLeft128(rem, 29)
		rem = sub128(rem, mul64ByShifted32To128(sigB, q))
		term := shortShiftLeft128(uint128{lo: sigB}, 32)
		if rem.hi&0x8000000000000000 != 0 {
			q--
			rem = add128(rem, term)
		} else if le128(term, rem) {
			q++
			rem = sub128(rem, term)
		}
		if rem.hi|rem.lo != 0 {
			q |= 1
		}
	}
	sigZ = sigZ<<6 + uint64(q>>23)
	sigZExtra := uint64(q) << 41
	return roundPackToExtF80(signZ, expZ, sigZ, sigZExtra, st)
}

// ExtF80Sqrt returns the square root of a. A 32-bit estimate from the
// reciprocal square root seed is refined by one Newton step to 64 bits,
// corrected against the exact remainder, then extended by a second
// 64-bit quotient digit.
func ExtF80Sqrt(a ExtFloat80, st *Status) ExtFloat80 {
	if a.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	exp, sig := a.Exp(), a.Signif
	if exp == 0x7FFF {
		if sig<<1 != 0 {
			return propagateNaNOneExtF80(a, st)
		}
		if !a.Sign() {
			return a
		}
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	if a.Sign() {
		if exp == 0 && sig == 0 {
			return a
		}
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	if exp == 0 {
		if sig == 0 {
			return packToExtF80(false, 0, 0)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sig)
		exp, sig = n.exp, n.sig
	}
	expZ := (exp-0x3FFF)>>1 + 0x3FFF
	oddExp := uint(exp & 1)

	// Seed: 2^31 * sqrt of the leading 32 bits read in [1, 4).
	sig32A := uint32(sig >> 32)
	prod := uint64(sig32A) * uint64(approxRecipSqrt32_1(oddExp, sig32A))
	seed := prod >> 31
	if oddExp != 0 {
		seed = prod >> 32
	}
	seed = min(max(seed, 0x80000000), 0xFFFFFFFF)

	aSig := shortShiftRight128(uint128{hi: sig}, 2+oddExp)
	sigZ0 := estimateDiv128To64(aSig.hi, aSig.lo, seed<<32) + seed<<30
	doubleZ0 := sigZ0 << 1
	rem := sub128(aSig, mul64To128(sigZ0, sigZ0))
	for int64(rem.hi) < 0 {
		sigZ0--
		doubleZ0 -= 2
		rem = add128(rem, uint128{hi: sigZ0 >> 63, lo: doubleZ0 | 1})
	}
	sigZ1 := estimateDiv128To64(rem.lo, 0, doubleZ0)
	if sigZ1&0x3FFFFFFFFFFFFFFF <= 5 {
		if sigZ1 == 0 {
			sigZ1 = 1
		}
		t := mul64To128(doubleZ0, sigZ1)
		r := uint256{0, rem.lo, 0, 0}
		r = sub256(r, uint256{0, t.hi, t.lo, 0})
		sq := mul64To128(sigZ1, sigZ1)
		r = sub256(r, uint256{0, 0, sq.hi, sq.lo})
		for int64(r[0]) < 0 {
			sigZ1--
			d := shortShiftLeft128(uint128{lo: sigZ1}, 1)
			r = add256(r, uint256{0, 0, d.hi | doubleZ0, d.lo | 1})
		}
		sigZ1 |= b2u64(r[0]|r[1]|r[2]|r[3] != 0)
	}
	z := shortShiftLeft128(uint128{lo: sigZ1}, 1)
	return roundPackToExtF80(false, expZ, z.hi|doubleZ0, z.lo, st)
}
