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

import "math"

// F64 returns the binary64 encoding of a host float64.
func F64(x float64) Float64 {
	return Float64(math.Float64bits(x))
}

// Host returns the value as a host float64.
func (a Float64) Host() float64 {
	return math.Float64frombits(uint64(a))
}

func (a Float64) Sign() bool           { return a>>63 != 0 }
func (a Float64) Exp() int             { return int(a>>52) & f64ExpMask }
func (a Float64) Frac() uint64         { return uint64(a) & f64FracMask }
func (a Float64) IsNaN() bool          { return isNaNF64UI(uint64(a)) }
func (a Float64) IsSignalingNaN() bool { return isSigNaNF64UI(uint64(a)) }
func (a Float64) IsInf() bool          { return uint64(a)<<1 == 0xFFE0000000000000 }
func (a Float64) IsZero() bool         { return uint64(a)<<1 == 0 }
func (a Float64) IsDenormal() bool     { return a.Exp() == 0 && a.Frac() != 0 }
func (a Float64) Neg() Float64         { return a ^ f64SignBit }
func (a Float64) Abs() Float64         { return a &^ f64SignBit }

// Class returns the IEEE category of a.
func (a Float64) Class() Class {
	exp, frac := a.Exp(), a.Frac()
	switch {
	case exp == f64ExpMask:
		if frac == 0 {
			if a.Sign() {
				return ClassNegativeInf
			}
			return ClassPositiveInf
		}
		if frac&f64QuietBit != 0 {
			return ClassQNaN
		}
		return ClassSNaN
	case exp == 0:
		if frac == 0 {
			return ClassZero
		}
		return ClassDenormal
	}
	return ClassNormal
}

func (a Float64) String() string {
	return formatHex64(uint64(a))
}

func unpackF64(a Float64, st *Status) (sign bool, exp int, sig uint64) {
	sign, exp, sig = a.Sign(), a.Exp(), a.Frac()
	if exp == 0 && st.DenormalsAreZeros {
		sig = 0
	}
	return sign, exp, sig
}

func addMagsF64(a, b Float64, signZ bool, st *Status) Float64 {
	_, expA, sigA := unpackF64(a, st)
	_, expB, sigB := unpackF64(b, st)
	expDiff := expA - expB
	sigA <<= 9
	sigB <<= 9
	var expZ int
	switch {
	case expDiff > 0:
		if expA == 0x7FF {
			if sigA != 0 {
				return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
			}
			if sigB != 0 && expB == 0 {
				st.Raise(FlagDenormal)
			}
			return a
		}
		if expA == 0 && sigA != 0 {
			st.Raise(FlagDenormal)
		}
		if expB == 0 {
			if sigB != 0 {
				st.Raise(FlagDenormal)
			}
			expDiff--
		} else {
			sigB |= 0x2000000000000000
		}
		sigB = shiftRightJam64(sigB, uint(expDiff))
		expZ = expA
	case expDiff < 0:
		if expB == 0x7FF {
			if sigB != 0 {
				return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
			}
			if sigA != 0 && expA == 0 {
				st.Raise(FlagDenormal)
			}
			return Float64(packToF64UI(signZ, 0x7FF, 0))
		}
		if expB == 0 && sigB != 0 {
			st.Raise(FlagDenormal)
		}
		if expA == 0 {
			if sigA != 0 {
				st.Raise(FlagDenormal)
			}
			expDiff++
		} else {
			sigA |= 0x2000000000000000
		}
		sigA = shiftRightJam64(sigA, uint(-expDiff))
		expZ = expB
	default:
		if expA == 0x7FF {
			if sigA|sigB != 0 {
				return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
			}
			return a
		}
		if expA == 0 {
			sigZ := (sigA + sigB) >> 9
			if sigA|sigB != 0 {
				st.Raise(FlagDenormal)
				tiny := sigZ&^f64FracMask == 0
				if tiny && st.FlushUnderflowToZero {
					st.Raise(FlagUnderflow | FlagInexact)
					return Float64(packToF64UI(signZ, 0, 0))
				}
				if tiny && !st.IsMasked(FlagUnderflow) {
					st.Raise(FlagUnderflow)
				}
			}
			return Float64(packToF64UI(signZ, 0, sigZ))
		}
		return roundPackToF64(signZ, expA, 0x4000000000000000+sigA+sigB, st)
	}
	sigA |= 0x2000000000000000
	sigZ := (sigA + sigB) << 1
	expZ--
	if int64(sigZ) < 0 {
		sigZ = sigA + sigB
		expZ++
	}
	return roundPackToF64(signZ, expZ, sigZ, st)
}

func subMagsF64(a, b Float64, signZ bool, st *Status) Float64 {
	_, expA, sigA := unpackF64(a, st)
	_, expB, sigB := unpackF64(b, st)
	expDiff := expA - expB
	sigA <<= 10
	sigB <<= 10
	var expZ int
	var sigZ uint64
	switch {
	case expDiff > 0:
		if expA == 0x7FF {
			if sigA != 0 {
				return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
			}
			if sigB != 0 && expB == 0 {
				st.Raise(FlagDenormal)
			}
			return a
		}
		if expA == 0 && sigA != 0 {
			st.Raise(FlagDenormal)
		}
		if expB == 0 {
			if sigB != 0 {
				st.Raise(FlagDenormal)
			}
			expDiff--
		} else {
			sigB |= 0x4000000000000000
		}
		sigB = shiftRightJam64(sigB, uint(expDiff))
		sigA |= 0x4000000000000000
		sigZ, expZ = sigA-sigB, expA
	case expDiff < 0:
		if expB == 0x7FF {
			if sigB != 0 {
				return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
			}
			if sigA != 0 && expA == 0 {
				st.Raise(FlagDenormal)
			}
			return Float64(packToF64UI(!signZ, 0x7FF, 0))
		}
		if expB == 0 && sigB != 0 {
			st.Raise(FlagDenormal)
		}
		if expA == 0 {
			if sigA != 0 {
				st.Raise(FlagDenormal)
			}
			expDiff++
		} else {
			sigA |= 0x4000000000000000
		}
		sigA = shiftRightJam64(sigA, uint(-expDiff))
		sigB |= 0x4000000000000000
		sigZ, expZ, signZ = sigB-sigA, expB, !signZ
	default:
		if expA == 0x7FF {
			if sigA|sigB != 0 {
				return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
			}
			st.Raise(FlagInvalid)
			return DefaultNaNF64
		}
		if expA == 0 {
			if sigA|sigB != 0 {
				st.Raise(FlagDenormal)
			}
			expA, expB = 1, 1
		}
		switch {
		case sigB < sigA:
			sigZ, expZ = sigA-sigB, expA
		case sigA < sigB:
			sigZ, expZ, signZ = sigB-sigA, expB, !signZ
		default:
			return Float64(packToF64UI(st.RoundingMode == RoundDown, 0, 0))
		}
	}
	return normRoundPackToF64(signZ, expZ-1, sigZ, st)
}

// F64Add returns a+b.
func F64Add(a, b Float64, st *Status) Float64 {
	if a.Sign() == b.Sign() {
		return addMagsF64(a, b, a.Sign(), st)
	}
	return subMagsF64(a, b, a.Sign(), st)
}

// F64Sub returns a-b.
func F64Sub(a, b Float64, st *Status) Float64 {
	if a.Sign() == b.Sign() {
		return subMagsF64(a, b, a.Sign(), st)
	}
	return addMagsF64(a, b, a.Sign(), st)
}

// F64Mul returns a*b using a 64x64->128 product.
func F64Mul(a, b Float64, st *Status) Float64 {
	signA, expA, sigA := unpackF64(a, st)
	signB, expB, sigB := unpackF64(b, st)
	signZ := signA != signB
	if expA == 0x7FF {
		if sigA != 0 || (expB == 0x7FF && sigB != 0) {
			return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
		}
		if expB == 0 && sigB == 0 {
			st.Raise(FlagInvalid)
			return DefaultNaNF64
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return Float64(packToF64UI(signZ, 0x7FF, 0))
	}
	if expB == 0x7FF {
		if sigB != 0 {
			return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
		}
		if expA == 0 && sigA == 0 {
			st.Raise(FlagInvalid)
			return DefaultNaNF64
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return Float64(packToF64UI(signZ, 0x7FF, 0))
	}
	if expA == 0 {
		if sigA == 0 {
			if sigB != 0 && expB == 0 {
				st.Raise(FlagDenormal)
			}
			return Float64(packToF64UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if expB == 0 {
		if sigB == 0 {
			return Float64(packToF64UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	expZ := expA + expB - 0x3FF
	sigA = (sigA | 0x0010000000000000) << 10
	sigB = (sigB | 0x0010000000000000) << 11
	p := mul64To128(sigA, sigB)
	sigZ := p.hi | b2u64(p.lo != 0)
	if int64(sigZ<<1) >= 0 {
		sigZ <<= 1
		expZ--
	}
	return roundPackToF64(signZ, expZ, sigZ, st)
}

// F64Div returns a/b. The quotient is built from a 32-bit reciprocal
// estimate in two steps of 32 and 29 bits, followed by a remainder check
// when the low bits are too close to a rounding boundary.
func F64Div(a, b Float64, st *Status) Float64 {
	signA, expA, sigA := unpackF64(a, st)
	signB, expB, sigB := unpackF64(b, st)
	signZ := signA != signB
	if expA == 0x7FF {
		if sigA != 0 {
			return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
		}
		if expB == 0x7FF {
			if sigB != 0 {
				return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
			}
			st.Raise(FlagInvalid)
			return DefaultNaNF64
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return Float64(packToF64UI(signZ, 0x7FF, 0))
	}
	if expB == 0x7FF {
		if sigB != 0 {
			return Float64(propagateNaNF64UI(uint64(a), uint64(b), st))
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return Float64(packToF64UI(signZ, 0, 0))
	}
	if expB == 0 {
		if sigB == 0 {
			if expA == 0 && sigA == 0 {
				st.Raise(FlagInvalid)
				return DefaultNaNF64
			}
			st.Raise(FlagDivByZero)
			return Float64(packToF64UI(signZ, 0x7FF, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	if expA == 0 {
		if sigA == 0 {
			return Float64(packToF64UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	expZ := expA - expB + 0x3FE
	sigA |= 0x0010000000000000
	sigB |= 0x0010000000000000
	if sigA < sigB {
		expZ--
		sigA <<= 11
	} else {
		sigA <<= 10
	}
	sigB <<= 11
	sigBHi := uint64(uint32(sigB >> 32))
	sigBLo := uint64(uint32(sigB) >> 4)
	recip32 := approxRecip32_1(uint32(sigB>>32)) - 2
	sig32Z := uint32((uint64(uint32(sigA>>32)) * uint64(recip32)) >> 32)
	doubleTerm := sig32Z << 1
	rem := (sigA-uint64(doubleTerm)*sigBHi)<<28 - uint64(doubleTerm)*sigBLo
	q := uint32((uint64(uint32(rem>>32))*uint64(recip32))>>32) + 4
	sigZ := uint64(sig32Z)<<32 + uint64(q)<<4
	if sigZ&0x1FF < 4<<4 {
		q &^= 7
		sigZ &^= 0x7F
		doubleTerm = q << 1
		rem = (rem-uint64(doubleTerm)*sigBHi)<<28 - uint64(doubleTerm)*sigBLo
		if rem&0x8000000000000000 != 0 {
			sigZ -= 1 << 7
		} else if rem != 0 {
			sigZ |= 1
		}
	}
	return roundPackToF64(signZ, expZ, sigZ, st)
}

// F64Sqrt returns the square root of a.
func F64Sqrt(a Float64, st *Status) Float64 {
	sign, exp, sig := a.Sign(), a.Exp(), a.Frac()
	if exp == 0x7FF {
		if sig != 0 {
			return Float64(propagateNaNF64UI(uint64(a), 0, st))
		}
		if !sign {
			return a
		}
		st.Raise(FlagInvalid)
		return DefaultNaNF64
	}
	if exp == 0 && st.DenormalsAreZeros {
		sig = 0
	}
	if sign {
		if exp == 0 && sig == 0 {
			return Float64(packToF64UI(true, 0, 0))
		}
		st.Raise(FlagInvalid)
		return DefaultNaNF64
	}
	if exp == 0 {
		if sig == 0 {
			return 0
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sig)
		exp, sig = n.exp, n.sig
	}
	expZ := (exp-0x3FF)>>1 + 0x3FE
	oddExp := uint(exp & 1)
	sig |= 0x0010000000000000
	sig32A := uint32(sig >> 21)
	recipSqrt32 := approxRecipSqrt32_1(oddExp, sig32A)
	sig32Z := uint32((uint64(sig32A) * uint64(recipSqrt32)) >> 32)
	if oddExp != 0 {
		sig <<= 8
		sig32Z >>= 1
	} else {
		sig <<= 9
	}
	rem := sig - uint64(sig32Z)*uint64(sig32Z)
	q := uint32((uint64(uint32(rem>>2)) * uint64(recipSqrt32)) >> 32)
	sigZ := (uint64(sig32Z)<<32 | 1<<5) + uint64(q)<<3
	if sigZ&0x1FF < 0x22 {
		sigZ &^= 0x3F
		shifted := sigZ >> 6
		rem = sig<<52 - shifted*shifted
		if rem&0x8000000000000000 != 0 {
			sigZ--
		} else if rem != 0 {
			sigZ |= 1
		}
	}
	return roundPackToF64(false, expZ, sigZ, st)
}
