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

func (a Float16) Sign() bool           { return a>>15 != 0 }
func (a Float16) Exp() int             { return int(a>>10) & f16ExpMask }
func (a Float16) Frac() uint16         { return uint16(a) & f16FracMask }
func (a Float16) IsNaN() bool          { return isNaNF16UI(uint16(a)) }
func (a Float16) IsSignalingNaN() bool { return isSigNaNF16UI(uint16(a)) }
func (a Float16) IsInf() bool          { return uint16(a)<<1 == 0xF800 }
func (a Float16) IsZero() bool         { return uint16(a)<<1 == 0 }
func (a Float16) IsDenormal() bool     { return a.Exp() == 0 && a.Frac() != 0 }
func (a Float16) Neg() Float16         { return a ^ f16SignBit }
func (a Float16) Abs() Float16         { return a &^ f16SignBit }

// Class returns the IEEE category of a.
func (a Float16) Class() Class {
	exp, frac := a.Exp(), a.Frac()
	switch {
	case exp == f16ExpMask:
		if frac == 0 {
			if a.Sign() {
				return ClassNegativeInf
			}
			return ClassPositiveInf
		}
		if frac&f16QuietBit != 0 {
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

func (a Float16) String() string {
	return formatHex16(uint16(a))
}

func unpackF16(a Float16, st *Status) (sign bool, exp int, sig uint16) {
	sign, exp, sig = a.Sign(), a.Exp(), a.Frac()
	if exp == 0 && st.DenormalsAreZeros {
		sig = 0
	}
	return sign, exp, sig
}

func shiftRightJam16(a uint16, dist uint) uint16 {
	return uint16(shiftRightJam32(uint32(a), dist))
}

func addMagsF16(a, b Float16, signZ bool, st *Status) Float16 {
	_, expA, sigA := unpackF16(a, st)
	_, expB, sigB := unpackF16(b, st)
	expDiff := expA - expB
	sigA <<= 3
	sigB <<= 3
	var expZ int
	switch {
	case expDiff > 0:
		if expA == 0x1F {
			if sigA != 0 {
				return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
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
			sigB |= 0x2000
		}
		sigB = shiftRightJam16(sigB, uint(expDiff))
		expZ = expA
	case expDiff < 0:
		if expB == 0x1F {
			if sigB != 0 {
				return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
			}
			if sigA != 0 && expA == 0 {
				st.Raise(FlagDenormal)
			}
			return Float16(packToF16UI(signZ, 0x1F, 0))
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
			sigA |= 0x2000
		}
		sigA = shiftRightJam16(sigA, uint(-expDiff))
		expZ = expB
	default:
		if expA == 0x1F {
			if sigA|sigB != 0 {
				return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
			}
			return a
		}
		if expA == 0 {
			sigZ := (sigA + sigB) >> 3
			if sigA|sigB != 0 {
				st.Raise(FlagDenormal)
				tiny := sigZ&^f16FracMask == 0
				if tiny && st.FlushUnderflowToZero {
					st.Raise(FlagUnderflow | FlagInexact)
					return Float16(packToF16UI(signZ, 0, 0))
				}
				if tiny && !st.IsMasked(FlagUnderflow) {
					st.Raise(FlagUnderflow)
				}
			}
			return Float16(packToF16UI(signZ, 0, sigZ))
		}
		return roundPackToF16(signZ, expA, 0x4000+sigA+sigB, st)
	}
	sigA |= 0x2000
	sigZ := (sigA + sigB) << 1
	expZ--
	if int16(sigZ) < 0 {
		sigZ = sigA + sigB
		expZ++
	}
	return roundPackToF16(signZ, expZ, sigZ, st)
}

func subMagsF16(a, b Float16, signZ bool, st *Status) Float16 {
	_, expA, sigA := unpackF16(a, st)
	_, expB, sigB := unpackF16(b, st)
	expDiff := expA - expB
	sigA <<= 4
	sigB <<= 4
	var expZ int
	var sigZ uint16
	switch {
	case expDiff > 0:
		if expA == 0x1F {
			if sigA != 0 {
				return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
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
			sigB |= 0x4000
		}
		sigB = shiftRightJam16(sigB, uint(expDiff))
		sigA |= 0x4000
		sigZ, expZ = sigA-sigB, expA
	case expDiff < 0:
		if expB == 0x1F {
			if sigB != 0 {
				return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
			}
			if sigA != 0 && expA == 0 {
				st.Raise(FlagDenormal)
			}
			return Float16(packToF16UI(!signZ, 0x1F, 0))
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
			sigA |= 0x4000
		}
		sigA = shiftRightJam16(sigA, uint(-expDiff))
		sigB |= 0x4000
		sigZ, expZ, signZ = sigB-sigA, expB, !signZ
	default:
		if expA == 0x1F {
			if sigA|sigB != 0 {
				return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
			}
			st.Raise(FlagInvalid)
			return DefaultNaNF16
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
			return Float16(packToF16UI(st.RoundingMode == RoundDown, 0, 0))
		}
	}
	return normRoundPackToF16(signZ, expZ-1, sigZ, st)
}

// F16Add returns a+b.
func F16Add(a, b Float16, st *Status) Float16 {
	if a.Sign() == b.Sign() {
		return addMagsF16(a, b, a.Sign(), st)
	}
	return subMagsF16(a, b, a.Sign(), st)
}

// F16Sub returns a-b.
func F16Sub(a, b Float16, st *Status) Float16 {
	if a.Sign() == b.Sign() {
		return subMagsF16(a, b, a.Sign(), st)
	}
	return addMagsF16(a, b, a.Sign(), st)
}

// F16Mul returns a*b.
func F16Mul(a, b Float16, st *Status) Float16 {
	signA, expA, sigA := unpackF16(a, st)
	signB, expB, sigB := unpackF16(b, st)
	signZ := signA != signB
	if expA == 0x1F {
		if sigA != 0 || (expB == 0x1F && sigB != 0) {
			return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
		}
		if expB == 0 && sigB == 0 {
			st.Raise(FlagInvalid)
			return DefaultNaNF16
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return Float16(packToF16UI(signZ, 0x1F, 0))
	}
	if expB == 0x1F {
		if sigB != 0 {
			return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
		}
		if expA == 0 && sigA == 0 {
			st.Raise(FlagInvalid)
			return DefaultNaNF16
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return Float16(packToF16UI(signZ, 0x1F, 0))
	}
	if expA == 0 {
		if sigA == 0 {
			if sigB != 0 && expB == 0 {
				st.Raise(FlagDenormal)
			}
			return Float16(packToF16UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if expB == 0 {
		if sigB == 0 {
			return Float16(packToF16UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	expZ := expA + expB - 0xF
	sig32A := uint32(sigA|0x0400) << 4
	sig32B := uint32(sigB|0x0400) << 5
	sig32Z := sig32A * sig32B
	sigZ := uint16(sig32Z>>16) | uint16(b2u32(sig32Z&0xFFFF != 0))
	if sigZ < 0x4000 {
		expZ--
		sigZ <<= 1
	}
	return roundPackToF16(signZ, expZ, sigZ, st)
}

// F16Div returns a/b. binary16 quotients always use a native 32/16
// division.
func F16Div(a, b Float16, st *Status) Float16 {
	signA, expA, sigA := unpackF16(a, st)
	signB, expB, sigB := unpackF16(b, st)
	signZ := signA != signB
	if expA == 0x1F {
		if sigA != 0 {
			return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
		}
		if expB == 0x1F {
			if sigB != 0 {
				return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
			}
			st.Raise(FlagInvalid)
			return DefaultNaNF16
		}
		if sigB != 0 && expB == 0 {
			st.Raise(FlagDenormal)
		}
		return Float16(packToF16UI(signZ, 0x1F, 0))
	}
	if expB == 0x1F {
		if sigB != 0 {
			return Float16(propagateNaNF16UI(uint16(a), uint16(b), st))
		}
		if sigA != 0 && expA == 0 {
			st.Raise(FlagDenormal)
		}
		return Float16(packToF16UI(signZ, 0, 0))
	}
	if expB == 0 {
		if sigB == 0 {
			if expA == 0 && sigA == 0 {
				st.Raise(FlagInvalid)
				return DefaultNaNF16
			}
			st.Raise(FlagDivByZero)
			return Float16(packToF16UI(signZ, 0x1F, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sigB)
		expB, sigB = n.exp, n.sig
	}
	if expA == 0 {
		if sigA == 0 {
			return Float16(packToF16UI(signZ, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	expZ := expA - expB + 0xE
	sigA |= 0x0400
	sigB |= 0x0400
	var sig32A uint32
	if sigA < sigB {
		expZ--
		sig32A = uint32(sigA) << 15
	} else {
		sig32A = uint32(sigA) << 14
	}
	sig32Z := sig32A / uint32(sigB)
	if sig32Z&7 == 0 {
		sig32Z |= b2u32(uint32(sigB)*sig32Z != sig32A)
	}
	return roundPackToF16(signZ, expZ, uint16(sig32Z), st)
}

// F16Sqrt returns the square root of a. The reciprocal square root seed
// is within one unit of the final significand, which is then fixed up
// against the exact integer remainder.
func F16Sqrt(a Float16, st *Status) Float16 {
	sign, exp, sig := a.Sign(), a.Exp(), a.Frac()
	if exp == 0x1F {
		if sig != 0 {
			return Float16(propagateNaNF16UI(uint16(a), 0, st))
		}
		if !sign {
			return a
		}
		st.Raise(FlagInvalid)
		return DefaultNaNF16
	}
	if exp == 0 && st.DenormalsAreZeros {
		sig = 0
	}
	if sign {
		if exp == 0 && sig == 0 {
			return Float16(packToF16UI(true, 0, 0))
		}
		st.Raise(FlagInvalid)
		return DefaultNaNF16
	}
	if exp == 0 {
		if sig == 0 {
			return 0
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sig)
		exp, sig = n.exp, n.sig
	}
	expZ := (exp-0xF)>>1 + 0xE
	oddExp := uint(exp & 1)
	sig11 := uint32(sig | 0x0400)
	m := sig11 << 19
	if oddExp != 0 {
		m = sig11 << 18
	}
	sig32A := sig11 << 21
	z := uint32((uint64(sig32A) * uint64(approxRecipSqrt32_1(oddExp, sig32A))) >> 32)
	if oddExp != 0 {
		z >>= 1
	}
	sigZ := z >> 16
	for sigZ*sigZ > m {
		sigZ--
	}
	for (sigZ+1)*(sigZ+1) <= m {
		sigZ++
	}
	sigZ |= b2u32(sigZ*sigZ != m)
	return roundPackToF16(false, expZ, uint16(sigZ), st)
}
