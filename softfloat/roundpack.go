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

// Rounding and packing.
//
// The binary16/32/64 round-pack functions take a significand whose implicit
// bit sits one position below the sign position of the working integer
// (bit 14, 30 or 62) and an exponent one less than the true biased exponent:
// packing adds the implicit bit into the exponent field. The extended
// variant takes the true biased exponent and a 128-bit significand with the
// integer bit at 127.

func packToF16UI(sign bool, exp int, sig uint16) uint16 {
	return uint16(b2u32(sign))<<15 + uint16(exp)<<10 + sig
}

func packToF32UI(sign bool, exp int, sig uint32) uint32 {
	return b2u32(sign)<<31 + uint32(exp)<<23 + sig
}

func packToF64UI(sign bool, exp int, sig uint64) uint64 {
	return b2u64(sign)<<63 + uint64(exp)<<52 + sig
}

func packToExtF80(sign bool, exp int, sig uint64) ExtFloat80 {
	return ExtFloat80{SignExp: uint16(b2u32(sign))<<15 | uint16(exp), Signif: sig}
}

// roundIncrement returns the amount added to a significand before its low
// bits (mask) are discarded. half is one half of the discarded unit.
func roundIncrement(mode RoundingMode, sign bool, half, mask uint64) uint64 {
	switch mode {
	case RoundToZero:
		return 0
	case RoundDown:
		if sign {
			return mask
		}
		return 0
	case RoundUp:
		if sign {
			return 0
		}
		return mask
	default:
		return half
	}
}

// extraIncrement decides whether a significand followed by the 64 discarded
// bits in extra must be incremented.
func extraIncrement(mode RoundingMode, sign bool, extra uint64) bool {
	switch mode {
	case RoundToZero:
		return false
	case RoundDown:
		return sign && extra != 0
	case RoundUp:
		return !sign && extra != 0
	default:
		return extra&0x8000000000000000 != 0
	}
}

func normSubnormalF16Sig(sig uint16) expSig16 {
	shift := countLeadingZeros16(sig) - 5
	return expSig16{exp: 1 - shift, sig: sig << uint(shift)}
}

func normSubnormalF32Sig(sig uint32) expSig32 {
	shift := countLeadingZeros32(sig) - 8
	return expSig32{exp: 1 - shift, sig: sig << uint(shift)}
}

func normSubnormalF64Sig(sig uint64) expSig64 {
	shift := countLeadingZeros64(sig) - 11
	return expSig64{exp: 1 - shift, sig: sig << uint(shift)}
}

// normSubnormalExtF80Sig normalizes a denormal or pseudo-denormal
// significand so that bit 63 is set.
func normSubnormalExtF80Sig(sig uint64) expSig64 {
	shift := countLeadingZeros64(sig)
	return expSig64{exp: 1 - shift, sig: sig << uint(shift)}
}

// roundPackToF16 rounds sig (implicit bit at 14, four rounding bits).
// binary16 results have no unmasked-underflow exponent bias.
func roundPackToF16(sign bool, exp int, sig uint16, st *Status) Float16 {
	inc := uint16(roundIncrement(st.RoundingMode, sign, 0x8, 0xF))
	roundBits := sig & 0xF
	if exp < 0 || exp >= 0x1D {
		if exp > 0x1D || (exp == 0x1D && int16(sig+inc) < 0) {
			st.Raise(FlagOverflow)
			if roundBits != 0 || st.IsMasked(FlagOverflow) {
				st.Raise(FlagInexact)
				if inc != 0 {
					st.setRoundedUp()
				}
			}
			return Float16(packToF16UI(sign, 0x1F, 0) - uint16(b2u32(inc == 0)))
		}
		if exp < 0 {
			isTiny := exp < -1 || sig+inc < 0x8000
			sig = uint16(shiftRightJam32(uint32(sig), uint(-exp)))
			exp = 0
			roundBits = sig & 0xF
			if isTiny {
				if st.FlushUnderflowToZero {
					st.Raise(FlagUnderflow | FlagInexact)
					return Float16(packToF16UI(sign, 0, 0))
				}
				if roundBits != 0 || !st.IsMasked(FlagUnderflow) {
					st.Raise(FlagUnderflow)
				}
			}
		}
	}
	sigRound := (sig + inc) >> 4
	if st.RoundingMode == RoundNearEven && roundBits == 0x8 {
		sigRound &^= 1
	}
	if sigRound == 0 {
		exp = 0
	}
	if roundBits != 0 {
		st.Raise(FlagInexact)
		if sigRound<<4 > sig {
			st.setRoundedUp()
		}
	}
	return Float16(packToF16UI(sign, exp, sigRound))
}

func normRoundPackToF16(sign bool, exp int, sig uint16, st *Status) Float16 {
	shift := countLeadingZeros16(sig) - 1
	return roundPackToF16(sign, exp-shift, sig<<uint(shift), st)
}

// roundPackToF32 rounds sig (implicit bit at 30, seven rounding bits).
// An unmasked underflow biases the exponent by 192 instead of denormalizing.
func roundPackToF32(sign bool, exp int, sig uint32, st *Status) Float32 {
	inc := uint32(roundIncrement(st.RoundingMode, sign, 0x40, 0x7F))
	roundBits := sig & 0x7F
	if exp < 0 || exp >= 0xFD {
		if exp > 0xFD || (exp == 0xFD && int32(sig+inc) < 0) {
			st.Raise(FlagOverflow)
			if roundBits != 0 || st.IsMasked(FlagOverflow) {
				st.Raise(FlagInexact)
				if inc != 0 {
					st.setRoundedUp()
				}
			}
			return Float32(packToF32UI(sign, 0xFF, 0) - b2u32(inc == 0))
		}
		if exp < 0 {
			isTiny := exp < -1 || sig+inc < 0x80000000
			if isTiny && !st.IsMasked(FlagUnderflow) {
				st.Raise(FlagUnderflow)
				exp += 192
			}
			if exp < 0 {
				sig = shiftRightJam32(sig, uint(-exp))
				exp = 0
				roundBits = sig & 0x7F
				if isTiny {
					if st.FlushUnderflowToZero {
						st.Raise(FlagUnderflow | FlagInexact)
						return Float32(packToF32UI(sign, 0, 0))
					}
					if roundBits != 0 {
						st.Raise(FlagUnderflow)
					}
				}
			}
		}
	}
	sigRound := (sig + inc) >> 7
	if st.RoundingMode == RoundNearEven && roundBits == 0x40 {
		sigRound &^= 1
	}
	if sigRound == 0 {
		exp = 0
	}
	if roundBits != 0 {
		st.Raise(FlagInexact)
		if sigRound<<7 > sig {
			st.setRoundedUp()
		}
	}
	return Float32(packToF32UI(sign, exp, sigRound))
}

func normRoundPackToF32(sign bool, exp int, sig uint32, st *Status) Float32 {
	shift := countLeadingZeros32(sig) - 1
	return roundPackToF32(sign, exp-shift, sig<<uint(shift), st)
}

// roundPackToF64 rounds sig (implicit bit at 62, ten rounding bits).
// An unmasked underflow biases the exponent by 1536.
func roundPackToF64(sign bool, exp int, sig uint64, st *Status) Float64 {
	inc := roundIncrement(st.RoundingMode, sign, 0x200, 0x3FF)
	roundBits := sig & 0x3FF
	if exp < 0 || exp >= 0x7FD {
		if exp > 0x7FD || (exp == 0x7FD && int64(sig+inc) < 0) {
			st.Raise(FlagOverflow)
			if roundBits != 0 || st.IsMasked(FlagOverflow) {
				st.Raise(FlagInexact)
				if inc != 0 {
					st.setRoundedUp()
				}
			}
			return Float64(packToF64UI(sign, 0x7FF, 0) - b2u64(inc == 0))
		}
		if exp < 0 {
			isTiny := exp < -1 || sig+inc < 0x8000000000000000
			if isTiny && !st.IsMasked(FlagUnderflow) {
				st.Raise(FlagUnderflow)
				exp += 1536
			}
			if exp < 0 {
				sig = shiftRightJam64(sig, uint(-exp))
				exp = 0
				roundBits = sig & 0x3FF
				if isTiny {
					if st.FlushUnderflowToZero {
						st.Raise(FlagUnderflow | FlagInexact)
						return Float64(packToF64UI(sign, 0, 0))
					}
					if roundBits != 0 {
						st.Raise(FlagUnderflow)
					}
				}
			}
		}
	}
	sigRound := (sig + inc) >> 10
	if st.RoundingMode == RoundNearEven && roundBits == 0x200 {
		sigRound &^= 1
	}
	if sigRound == 0 {
		exp = 0
	}
	if roundBits != 0 {
		st.Raise(FlagInexact)
		if sigRound<<10 > sig {
			st.setRoundedUp()
		}
	}
	return Float64(packToF64UI(sign, exp, sigRound))
}

func normRoundPackToF64(sign bool, exp int, sig uint64, st *Status) Float64 {
	shift := countLeadingZeros64(sig) - 1
	return roundPackToF64(sign, exp-shift, sig<<uint(shift), st)
}

// roundPackToExtF80 rounds the extended value sig:sigExtra at the
// precision selected in st. When the rounding raises an unmasked underflow
// or overflow the result is re-packed with the exponent biased by 0x6000,
// as the x87 delivers it to an exception handler. Only the re-packed
// rounding reports inexact and rounded-up.
func roundPackToExtF80(sign bool, exp int, sig, sigExtra uint64, st *Status) ExtFloat80 {
	prec := st.precision()
	saved := st.SaveAndClear()
	z := roundPackToExtF80Prec(prec, sign, exp, sig, sigExtra, st)
	raised := st.Flags
	var bias int
	switch {
	case raised&FlagUnderflow != 0 && !st.IsMasked(FlagUnderflow):
		bias = 0x6000
		raised = FlagUnderflow
	case raised&FlagOverflow != 0 && !st.IsMasked(FlagOverflow):
		bias = -0x6000
		raised = FlagOverflow
	default:
		st.Flags |= saved
		return z
	}
	st.Flags = saved | raised
	return roundPackToExtF80Prec(prec, sign, exp+bias, sig, sigExtra, st)
}

func normRoundPackToExtF80(sign bool, exp int, sig, sigExtra uint64, st *Status) ExtFloat80 {
	if sig == 0 {
		exp -= 64
		sig, sigExtra = sigExtra, 0
	}
	shift := countLeadingZeros64(sig)
	z := shortShiftLeft128(uint128{hi: sig, lo: sigExtra}, uint(shift))
	return roundPackToExtF80(sign, exp-shift, z.hi, z.lo, st)
}

// extF80Overflow is the overflowed result at a precision whose discarded
// significand bits are roundMask: the largest finite value when the
// rounding direction points toward zero, otherwise infinity.
func extF80Overflow(sign bool, roundMask uint64, st *Status) ExtFloat80 {
	st.Raise(FlagOverflow | FlagInexact)
	mode := st.RoundingMode
	if mode == RoundToZero || (sign && mode == RoundUp) || (!sign && mode == RoundDown) {
		return packToExtF80(sign, 0x7FFE, ^roundMask)
	}
	st.setRoundedUp()
	return packToExtF80(sign, 0x7FFF, extF80IntBit)
}

func roundPackToExtF80Prec(prec Precision, sign bool, exp int, sig, sigExtra uint64, st *Status) ExtFloat80 {
	var half, roundMask uint64
	switch prec {
	case Precision64:
		half, roundMask = 0x400, 0x7FF
	case Precision32:
		half, roundMask = 0x0000008000000000, 0x000000FFFFFFFFFF
	default:
		return roundPackToExtF80Full(sign, exp, sig, sigExtra, st)
	}
	rne := st.RoundingMode == RoundNearEven
	sig |= b2u64(sigExtra != 0)
	inc := roundIncrement(st.RoundingMode, sign, half, roundMask)
	roundBits := sig & roundMask
	if exp <= 0 || exp >= 0x7FFE {
		if exp > 0x7FFE || (exp == 0x7FFE && sig+inc < sig) {
			return extF80Overflow(sign, roundMask, st)
		}
		if exp <= 0 {
			isTiny := exp < 0 || sig <= sig+inc
			sig = shiftRightJam64(sig, uint(1-exp))
			exact := sig
			exp = 0
			roundBits = sig & roundMask
			if isTiny && (roundBits != 0 || (sig != 0 && !st.IsMasked(FlagUnderflow))) {
				st.Raise(FlagUnderflow)
			}
			sig += inc
			if int64(sig) < 0 {
				exp = 1
			}
			unit := roundMask + 1
			if rne && roundBits<<1 == unit {
				roundMask |= unit
			}
			sig &^= roundMask
			if roundBits != 0 {
				st.Raise(FlagInexact)
				if sig > exact {
					st.setRoundedUp()
				}
			}
			return packToExtF80(sign, exp, sig)
		}
	}
	if roundBits != 0 {
		st.Raise(FlagInexact)
	}
	exact := sig
	sig += inc
	if sig < inc {
		exp++
		sig = extF80IntBit
		exact >>= 1
	}
	unit := roundMask + 1
	if rne && roundBits<<1 == unit {
		roundMask |= unit
	}
	sig &^= roundMask
	if sig > exact {
		st.setRoundedUp()
	}
	if sig == 0 {
		exp = 0
	}
	return packToExtF80(sign, exp, sig)
}

func roundPackToExtF80Full(sign bool, exp int, sig, sigExtra uint64, st *Status) ExtFloat80 {
	mode := st.RoundingMode
	rne := mode == RoundNearEven
	increment := extraIncrement(mode, sign, sigExtra)
	if exp <= 0 || exp >= 0x7FFE {
		if exp > 0x7FFE || (exp == 0x7FFE && sig == ^uint64(0) && increment) {
			return extF80Overflow(sign, 0, st)
		}
		if exp <= 0 {
			isTiny := exp < 0 || !increment || sig < ^uint64(0)
			z := shiftRightJam64Extra(sig, sigExtra, uint(1-exp))
			sig, sigExtra = z.v, z.extra
			exp = 0
			if isTiny && (sigExtra != 0 || (sig != 0 && !st.IsMasked(FlagUnderflow))) {
				st.Raise(FlagUnderflow)
			}
			if sigExtra != 0 {
				st.Raise(FlagInexact)
			}
			if extraIncrement(mode, sign, sigExtra) {
				exact := sig
				sig++
				if rne && sigExtra<<1 == 0 {
					sig &^= 1
				}
				if sig > exact {
					st.setRoundedUp()
				}
				if int64(sig) < 0 {
					exp = 1
				}
			}
			return packToExtF80(sign, exp, sig)
		}
	}
	if sigExtra != 0 {
		st.Raise(FlagInexact)
	}
	if increment {
		exact := sig
		sig++
		if sig == 0 {
			exp++
			sig = extF80IntBit
			exact >>= 1
		} else if rne && sigExtra<<1 == 0 {
			sig &^= 1
		}
		if sig > exact {
			st.setRoundedUp()
		}
	} else if sig == 0 {
		exp = 0
	}
	return packToExtF80(sign, exp, sig)
}

// roundToI32 rounds sig, a fixed-point magnitude with seven fraction bits
// and bit 63 clear, to a signed 32-bit integer. Inexact is raised only when
// exact is set; an out-of-range result always raises invalid.
func roundToI32(sign bool, sig uint64, mode RoundingMode, exact bool, st *Status) int32 {
	inc := roundIncrement(mode, sign, 0x40, 0x7F)
	roundBits := sig & 0x7F
	abs := (sig + inc) >> 7
	if mode == RoundNearEven && roundBits == 0x40 {
		abs &^= 1
	}
	z := int32(uint32(abs))
	if sign {
		z = -z
	}
	if abs>>32 != 0 || (z != 0 && (z < 0) != sign) {
		st.Raise(FlagInvalid)
		return I32Indefinite
	}
	if roundBits != 0 && exact {
		st.Raise(FlagInexact)
		if abs<<7 > sig {
			st.setRoundedUp()
		}
	}
	return z
}

// roundToUI32 is roundToI32 for an unsigned target. Negative values that
// round to zero are valid.
func roundToUI32(sign bool, sig uint64, mode RoundingMode, exact bool, st *Status) uint32 {
	inc := roundIncrement(mode, sign, 0x40, 0x7F)
	roundBits := sig & 0x7F
	abs := (sig + inc) >> 7
	if mode == RoundNearEven && roundBits == 0x40 {
		abs &^= 1
	}
	if abs>>32 != 0 || (sign && abs != 0) {
		st.Raise(FlagInvalid)
		return UI32Indefinite
	}
	if roundBits != 0 && exact {
		st.Raise(FlagInexact)
		if abs<<7 > sig {
			st.setRoundedUp()
		}
	}
	return uint32(abs)
}

// roundToI64 rounds the 128-bit fixed-point magnitude sig:extra, binary
// point between the words, to a signed 64-bit integer.
func roundToI64(sign bool, sig, extra uint64, mode RoundingMode, exact bool, st *Status) int64 {
	trunc := sig
	if extraIncrement(mode, sign, extra) {
		sig++
		if sig == 0 {
			st.Raise(FlagInvalid)
			return I64Indefinite
		}
		if mode == RoundNearEven && extra<<1 == 0 {
			sig &^= 1
		}
	}
	z := int64(sig)
	if sign {
		z = -z
	}
	if z != 0 && (z < 0) != sign {
		st.Raise(FlagInvalid)
		return I64Indefinite
	}
	if extra != 0 && exact {
		st.Raise(FlagInexact)
		if sig > trunc {
			st.setRoundedUp()
		}
	}
	return z
}

// roundToUI64 is roundToI64 for an unsigned target.
func roundToUI64(sign bool, sig, extra uint64, mode RoundingMode, exact bool, st *Status) uint64 {
	trunc := sig
	if extraIncrement(mode, sign, extra) {
		sig++
		if sig == 0 {
			st.Raise(FlagInvalid)
			return UI64Indefinite
		}
		if mode == RoundNearEven && extra<<1 == 0 {
			sig &^= 1
		}
	}
	if sign && sig != 0 {
		st.Raise(FlagInvalid)
		return UI64Indefinite
	}
	if extra != 0 && exact {
		st.Raise(FlagInexact)
		if sig > trunc {
			st.setRoundedUp()
		}
	}
	return sig
}
