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

// F32 returns the binary32 encoding of a host float32.
func F32(x float32) Float32 {
	return Float32(math.Float32bits(x))
}

// Host returns the value as a host float32.
func (a Float32) Host() float32 {
	return math.Float32frombits(uint32(a))
}

// Sign reports whether the sign bit is set.
func (a Float32) Sign() bool { return a>>31 != 0 }

// Exp returns the biased exponent field.
func (a Float32) Exp() int { return int(a>>23) & f32ExpMask }

// Frac returns the fraction field.
func (a Float32) Frac() uint32 { return uint32(a) & f32FracMask }

func (a Float32) IsNaN() bool          { return isNaNF32UI(uint32(a)) }
func (a Float32) IsSignalingNaN() bool { return isSigNaNF32UI(uint32(a)) }
func (a Float32) IsInf() bool          { return uint32(a)<<1 == 0xFF000000 }
func (a Float32) IsZero() bool         { return uint32(a)<<1 == 0 }
func (a Float32) IsDenormal() bool     { return a.Exp() == 0 && a.Frac() != 0 }

// Neg flips the sign bit. It never raises flags, even for signaling NaNs.
func (a Float32) Neg() Float32 { return a ^ f32SignBit }

// Abs clears the sign bit.
func (a Float32) Abs() Float32 { return a &^ f32SignBit }

// Class returns the IEEE category of a. Denormals are reported as such
// regardless of the denormals-are-zeros setting.
func (a Float32) Class() Class {
	exp, frac := a.Exp(), a.Frac()
	switch {
	case exp == f32ExpMask:
		if frac == 0 {
			if a.Sign() {
				return ClassNegativeInf
			}
			return ClassPositiveInf
		}
		if frac&f32QuietBit != 0 {
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

func (a Float32) String() string {
	return formatHex32(uint32(a))
}

// unpackF32 splits a, zeroing a denormal significand under DAZ.
func unpackF32(a Float32, st *Status) (sign bool, exp int, sig uint32) {
	sign, exp, sig = a.Sign(), a.Exp(), a.Frac()
	if exp == 0 && st.DenormalsAreZeros {
		sig = 0
	}
	return sign, exp, sig
}

func addMagsF32(a, b Float32, signZ bool, st *Status) Float32 {
	_, expA, sigA := unpackF32(a, st)
	_, expB, sigB := unpackF32(b, st)
	expDiff := expA - expB
	sigA <<= 6
	sigB <<= 6
	var expZ int
	switch {
	case expDiff > 0:
		if expA == 0xFF {
			if sigA != 0 {
				return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
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
			sigB |= 0x20000000
		}
		sigB = shiftRightJam32(sigB, uint(expDiff))
		expZ = expA
	case expDiff < 0:
		if expB == 0xFF {
			if sigB != 0 {
				return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
			}
			if sigA != 0 && expA == 0 {
				st.Raise(FlagDenormal)
			}
			return Float32(packToF32UI(signZ, 0xFF, 0))
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
			sigA |= 0x20000000
		}
		sigA = shiftRightJam32(sigA, uint(-expDiff))
		expZ = expB
	default:
		if expA == 0xFF {
			if sigA|sigB != 0 {
				return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
			}
			return a
		}
		if expA == 0 {
			sigZ := (sigA + sigB) >> 6
			if sigA|sigB != 0 {
				st.Raise(FlagDenormal)
				tiny := sigZ&^f32FracMask == 0
				if tiny && st.FlushUnderflowToZero {
					st.Raise(FlagUnderflow | FlagInexact)
					return Float32(packToF32UI(signZ, 0, 0))
				}
				if tiny && !st.IsMasked(FlagUnderflow) {
					st.Raise(FlagUnderflow)
				}
			}
			return Float32(packToF32UI(signZ, 0, sigZ))
		}
		return roundPackToF32(signZ, expA, 0x40000000+sigA+sigB, st)
	}
	sigA |= 0x20000000
	sigZ := (sigA + sigB) << 1
	expZ--
	if int32(sigZ) < 0 {
		sigZ = sigA + sigB
		expZ++
	}
	return roundPackToF32(signZ, expZ, sigZ, st)
}

func subMagsF32(a, b Float32, signZ bool, st *Status) Float32 {
	_, expA, sigA := unpackF32(a, st)
	_, expB, sigB := unpackF32(b, st)
	expDiff := expA - expB
	sigA <<= 7
	sigB <<= 7
	var expZ int
	var sigZ uint32
	switch {
	case expDiff > 0:
		if expA == 0xFF {
			if sigA != 0 {
				return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
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
			sigB |= 0x40000000
		}
		sigB = shiftRightJam32(sigB, uint(expDiff))
		sigA |= 0x40000000
		sigZ, expZ = sigA-sigB, expA
	case expDiff < 0:
		if expB == 0xFF {
			if sigB != 0 {
				return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
			}
			if sigA != 0 && expA == 0 {
				st.Raise(FlagDenormal)
			}
			return Float32(packToF32UI(!signZ, 0xFF, 0))
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
			sigA |= 0x40000000
		}
		sigA = shiftRightJam32(sigA, uint(-expDiff))
		sigB |= 0x40000000
		sigZ, expZ, signZ = sigB-sigA, expB, !signZ
	default:
		if expA == 0xFF {
			if sigA|sigB != 0 {
				return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
			}
			st.Raise(FlagInvalid)
			return DefaultNaNF32
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
			return Float32(packToF32UI(st.RoundingMode == RoundDown, 0, 0))
		}
	}
	return normRoundPackToF32(signZ, expZ-1, sigZ, st)
}

// F32Add returns a+b.
func F32Add(a, b Float32, st *Status) Float32 {
	if a.Sign() == b.Sign() {
		return addMagsF32(a, b, a.Sign(), st)
	}
	return subMagsF32(a, b, a.Sign(), st)
}

// F32Sub returns a-b.
func F32Sub(a, b Float32, st *Status) Float32 {
	if a.Sign() == b.Sign() {
		return subMagsF32(a, b, a.Sign(), st)
	}
	return addMagsF32(a, b, a.Sign(), st)
}

// F32Mul returns a*b.
func F32Mul(a, b Float32, st *Status) Float32 {
	signA, expA, sigA := unpackF32(a, st)
	signB, expB, sigB := unpackF32(b, st)
	signZ := signA != signB
	if expA == 0xFF {
		if sigA != 0 || (expB == 0xFF && sigB != 0) {
			return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
		}
		if expB == 0 && sigB == 0 {
			st.Raise(FlagInvalid)
			return DefaultNaNF32
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return Float32(packToF32UI(signZ, 0xFF, 0))
	}
	if expB == 0xFF {
		if sigB != 0 {
			return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
		}
		if expA == 0 && sigA == 0 {
			st.Raise(FlagInvalid)
			return DefaultNaNF32
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return Float32(packToF32UI(signZ, 0xFF, 0))
	}
	if expA == 0 {
		if sigA == 0 {
			if sigB != 0 && expB == 0 {
				st.Raise(FlagDenormal)
			}
			return Float32(packToF32UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if expB == 0 {
		if sigB == 0 {
			return Float32(packToF32UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	expZ := expA + expB - 0x7F
	sigA = (sigA | 0x00800000) << 7
	sigB = (sigB | 0x00800000) << 8
	sigZ := uint32(shiftRightJam64(uint64(sigA)*uint64(sigB), 32))
	if int32(sigZ<<1) >= 0 {
		sigZ <<= 1
		expZ--
	}
	return roundPackToF32(signZ, expZ, sigZ, st)
}

// F32Div returns a/b.
func F32Div(a, b Float32, st *Status) Float32 {
	signA, expA, sigA := unpackF32(a, st)
	signB, expB, sigB := unpackF32(b, st)
	signZ := signA != signB
	if expA == 0xFF {
		if sigA != 0 {
			return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
		}
		if expB == 0xFF {
			if sigB != 0 {
				return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
			}
			st.Raise(FlagInvalid)
			return DefaultNaNF32
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return Float32(packToF32UI(signZ, 0xFF, 0))
	}
	if expB == 0xFF {
		if sigB != 0 {
			return Float32(propagateNaNF32UI(uint32(a), uint32(b), st))
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return Float32(packToF32UI(signZ, 0, 0))
	}
	if expB == 0 {
		if sigB == 0 {
			if expA == 0 && sigA == 0 {
				st.Raise(FlagInvalid)
				return DefaultNaNF32
			}
			st.Raise(FlagDivByZero)
			return Float32(packToF32UI(signZ, 0xFF, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	if expA == 0 {
		if sigA == 0 {
			return Float32(packToF32UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	sigZ, expZ := f32DivSig(sigA|0x00800000, sigB|0x00800000, expA-expB+0x7E)
	return roundPackToF32(signZ, expZ, sigZ, st)
}

// F32Sqrt returns the square root of a. Negative non-zero operands are
// invalid; -0 returns -0.
func F32Sqrt(a Float32, st *Status) Float32 {
	sign, exp, sig := a.Sign(), a.Exp(), a.Frac()
	if exp == 0xFF {
		if sig != 0 {
			return Float32(propagateNaNF32UI(uint32(a), 0, st))
		}
		if !sign {
			return a
		}
		st.Raise(FlagInvalid)
		return DefaultNaNF32
	}
	if exp == 0 && st.DenormalsAreZeros {
		sig = 0
	}
	if sign {
		if exp == 0 && sig == 0 {
			return Float32(packToF32UI(true, 0, 0))
		}
		st.Raise(FlagInvalid)
		return DefaultNaNF32
	}
	if exp == 0 {
		if sig == 0 {
			return 0
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sig)
		exp, sig = n.exp, n.sig
	}
	expZ := (exp-0x7F)>>1 + 0x7E
	oddExp := uint(exp & 1)
	sig = (sig | 0x00800000) << 8
	sigZ := uint32((uint64(sig) * uint64(approxRecipSqrt32_1(oddExp, sig))) >> 32)
	if oddExp != 0 {
		sigZ >>= 1
	}
	sigZ += 2
	if sigZ&0x3F < 2 {
		shifted := sigZ >> 2
		negRem := shifted * shifted
		sigZ &^= 3
		if negRem&0x80000000 != 0 {
			sigZ |= 1
		} else if negRem != 0 {
			sigZ--
		}
	}
	return roundPackToF32(false, expZ, sigZ, st)
}
