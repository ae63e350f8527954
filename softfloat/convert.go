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

// Conversions between the floating-point formats and to and from integers.
//
// Float to integer conversions take the rounding mode explicitly. When
// exact is false the inexact flag is not raised (the result is the same).
// NaNs, infinities and out-of-range values raise invalid and return the x86
// integer indefinite for the target type. The RMinMag forms truncate.

// Integer to float.

func absSign64(a int64) (bool, uint64) {
	if a < 0 {
		return true, -uint64(a)
	}
	return false, uint64(a)
}

func ui64ToF16(sign bool, abs uint64, st *Status) Float16 {
	if abs == 0 {
		return 0
	}
	shift := countLeadingZeros64(abs)
	sig := uint16(shiftRightJam64(abs<<uint(shift), 49))
	return roundPackToF16(sign, 0x4D-shift, sig, st)
}

func ui64ToF32(sign bool, abs uint64, st *Status) Float32 {
	if abs == 0 {
		return 0
	}
	shift := countLeadingZeros64(abs)
	sig := uint32(shiftRightJam64(abs<<uint(shift), 33))
	return roundPackToF32(sign, 0xBD-shift, sig, st)
}

func ui64ToF64(sign bool, abs uint64, st *Status) Float64 {
	if abs == 0 {
		return 0
	}
	shift := countLeadingZeros64(abs)
	return roundPackToF64(sign, 0x43D-shift, shortShiftRightJam64(abs<<uint(shift), 1), st)
}

// Every 64-bit integer is exact in the extended format, whatever the
// precision control says.
func ui64ToExtF80(sign bool, abs uint64) ExtFloat80 {
	if abs == 0 {
		return packToExtF80(false, 0, 0)
	}
	shift := countLeadingZeros64(abs)
	return packToExtF80(sign, 0x403E-shift, abs<<uint(shift))
}

func I32ToF16(a int32, st *Status) Float16 { return I64ToF16(int64(a), st) }
func I32ToF32(a int32, st *Status) Float32 { return I64ToF32(int64(a), st) }
func I32ToF64(a int32, st *Status) Float64 { return I64ToF64(int64(a), st) }
func I32ToExtF80(a int32) ExtFloat80       { return I64ToExtF80(int64(a)) }

func I64ToF16(a int64, st *Status) Float16 {
	sign, abs := absSign64(a)
	return ui64ToF16(sign, abs, st)
}

func I64ToF32(a int64, st *Status) Float32 {
	sign, abs := absSign64(a)
	return ui64ToF32(sign, abs, st)
}

func I64ToF64(a int64, st *Status) Float64 {
	sign, abs := absSign64(a)
	return ui64ToF64(sign, abs, st)
}

func I64ToExtF80(a int64) ExtFloat80 {
	sign, abs := absSign64(a)
	return ui64ToExtF80(sign, abs)
}

func UI32ToF16(a uint32, st *Status) Float16 { return ui64ToF16(false, uint64(a), st) }
func UI32ToF32(a uint32, st *Status) Float32 { return ui64ToF32(false, uint64(a), st) }
func UI32ToF64(a uint32, st *Status) Float64 { return ui64ToF64(false, uint64(a), st) }
func UI32ToExtF80(a uint32) ExtFloat80       { return ui64ToExtF80(false, uint64(a)) }
func UI64ToF16(a uint64, st *Status) Float16 { return ui64ToF16(false, a, st) }
func UI64ToF32(a uint64, st *Status) Float32 { return ui64ToF32(false, a, st) }
func UI64ToF64(a uint64, st *Status) Float64 { return ui64ToF64(false, a, st) }
func UI64ToExtF80(a uint64) ExtFloat80       { return ui64ToExtF80(false, a) }

// Float to 32-bit integer. The magnitude is reduced to a fixed-point value
// with seven fraction bits before rounding.

func f16ToFixed7(a Float16, st *Status) (bool, uint64) {
	sign, exp, sig := unpackF16(a, st)
	if exp == 0x1F {
		// NaN or infinity: force an out-of-range magnitude.
		return sign && sig == 0, 1 << 40
	}
	if exp != 0 {
		sig |= 0x0400
	} else {
		exp = 1
	}
	// The value is sig * 2^(exp-25); seven fraction bits make it 2^(exp-18).
	if exp >= 0x12 {
		return sign, uint64(sig) << uint(exp-0x12)
	}
	return sign, shiftRightJam64(uint64(sig), uint(0x12-exp))
}

func f32ToFixed7(a Float32, st *Status) (bool, uint64) {
	sign, exp, sig := unpackF32(a, st)
	if exp == 0xFF && sig != 0 {
		sign = false
	}
	if exp != 0 {
		sig |= 0x00800000
	}
	sig64 := uint64(sig) << 32
	if shift := 0xAF - exp; shift > 0 {
		sig64 = shiftRightJam64(sig64, uint(shift))
	}
	return sign, sig64
}

func f64ToFixed7(a Float64, st *Status) (bool, uint64) {
	sign, exp, sig := unpackF64(a, st)
	if exp == 0x7FF && sig != 0 {
		sign = false
	}
	if exp != 0 {
		sig |= 0x0010000000000000
	}
	if shift := 0x42C - exp; shift > 0 {
		sig = shiftRightJam64(sig, uint(shift))
	}
	return sign, sig
}

func extF80ToFixed7(a ExtFloat80) (bool, uint64) {
	sign, exp, sig := a.Sign(), a.Exp(), a.Signif
	if exp == 0x7FFF && sig<<1 != 0 {
		sign = false
	}
	shift := 0x4037 - exp
	if shift <= 0 {
		shift = 1
	}
	return sign, shiftRightJam64(sig, uint(shift))
}

func F16ToI32(a Float16, mode RoundingMode, exact bool, st *Status) int32 {
	sign, sig := f16ToFixed7(a, st)
	return roundToI32(sign, sig, mode, exact, st)
}

func F16ToUI32(a Float16, mode RoundingMode, exact bool, st *Status) uint32 {
	sign, sig := f16ToFixed7(a, st)
	return roundToUI32(sign, sig, mode, exact, st)
}

func F32ToI32(a Float32, mode RoundingMode, exact bool, st *Status) int32 {
	sign, sig := f32ToFixed7(a, st)
	return roundToI32(sign, sig, mode, exact, st)
}

func F32ToUI32(a Float32, mode RoundingMode, exact bool, st *Status) uint32 {
	sign, sig := f32ToFixed7(a, st)
	return roundToUI32(sign, sig, mode, exact, st)
}

func F64ToI32(a Float64, mode RoundingMode, exact bool, st *Status) int32 {
	sign, sig := f64ToFixed7(a, st)
	return roundToI32(sign, sig, mode, exact, st)
}

func F64ToUI32(a Float64, mode RoundingMode, exact bool, st *Status) uint32 {
	sign, sig := f64ToFixed7(a, st)
	return roundToUI32(sign, sig, mode, exact, st)
}

func ExtF80ToI32(a ExtFloat80, mode RoundingMode, exact bool, st *Status) int32 {
	if a.IsUnsupported() {
		st.Raise(FlagInvalid)
		return I32Indefinite
	}
	sign, sig := extF80ToFixed7(a)
	return roundToI32(sign, sig, mode, exact, st)
}

func ExtF80ToUI32(a ExtFloat80, mode RoundingMode, exact bool, st *Status) uint32 {
	if a.IsUnsupported() {
		st.Raise(FlagInvalid)
		return UI32Indefinite
	}
	sign, sig := extF80ToFixed7(a)
	return roundToUI32(sign, sig, mode, exact, st)
}

// Float to 64-bit integer. The magnitude is split into an integer word and
// a fraction word; sources too large for 64 bits never reach the shift.

func f32ToFixed64(a Float32, st *Status) (sign bool, sig, extra uint64, ok bool) {
	sign, exp, frac := unpackF32(a, st)
	shift := 0xBE - exp
	if shift < 0 {
		return sign, 0, 0, false
	}
	if exp != 0 {
		frac |= 0x00800000
	}
	z := shiftRightJam64Extra(uint64(frac)<<40, 0, uint(shift))
	return sign, z.v, z.extra, true
}

func f64ToFixed64(a Float64, st *Status) (sign bool, sig, extra uint64, ok bool) {
	sign, exp, frac := unpackF64(a, st)
	if exp != 0 {
		frac |= 0x0010000000000000
	}
	shift := 0x433 - exp
	if shift <= 0 {
		if exp > 0x43E {
			return sign, 0, 0, false
		}
		return sign, frac << uint(-shift), 0, true
	}
	z := shiftRightJam64Extra(frac, 0, uint(shift))
	return sign, z.v, z.extra, true
}

func extF80ToFixed64(a ExtFloat80) (sign bool, sig, extra uint64, ok bool) {
	sign, exp, sig := a.Sign(), a.Exp(), a.Signif
	shift := 0x403E - exp
	if shift <= 0 {
		if shift != 0 {
			return sign, 0, 0, false
		}
		return sign, sig, 0, true
	}
	z := shiftRightJam64Extra(sig, 0, uint(shift))
	return sign, z.v, z.extra, true
}

// Every binary16 value fits in 32 bits, so the 64-bit forms widen.

func F16ToI64(a Float16, mode RoundingMode, exact bool, st *Status) int64 {
	z := F16ToI32(a, mode, exact, st)
	if z == I32Indefinite {
		return I64Indefinite
	}
	return int64(z)
}

func F16ToUI64(a Float16, mode RoundingMode, exact bool, st *Status) uint64 {
	z := F16ToUI32(a, mode, exact, st)
	if z == UI32Indefinite {
		return UI64Indefinite
	}
	return uint64(z)
}

func F32ToI64(a Float32, mode RoundingMode, exact bool, st *Status) int64 {
	sign, sig, extra, ok := f32ToFixed64(a, st)
	if !ok {
		st.Raise(FlagInvalid)
		return I64Indefinite
	}
	return roundToI64(sign, sig, extra, mode, exact, st)
}

func F32ToUI64(a Float32, mode RoundingMode, exact bool, st *Status) uint64 {
	sign, sig, extra, ok := f32ToFixed64(a, st)
	if !ok {
		st.Raise(FlagInvalid)
		return UI64Indefinite
	}
	return roundToUI64(sign, sig, extra, mode, exact, st)
}

func F64ToI64(a Float64, mode RoundingMode, exact bool, st *Status) int64 {
	sign, sig, extra, ok := f64ToFixed64(a, st)
	if !ok {
		st.Raise(FlagInvalid)
		return I64Indefinite
	}
	return roundToI64(sign, sig, extra, mode, exact, st)
}

func F64ToUI64(a Float64, mode RoundingMode, exact bool, st *Status) uint64 {
	sign, sig, extra, ok := f64ToFixed64(a, st)
	if !ok {
		st.Raise(FlagInvalid)
		return UI64Indefinite
	}
	return roundToUI64(sign, sig, extra, mode, exact, st)
}

func ExtF80ToI64(a ExtFloat80, mode RoundingMode, exact bool, st *Status) int64 {
	sign, sig, extra, ok := extF80ToFixed64(a)
	if a.IsUnsupported() || !ok {
		st.Raise(FlagInvalid)
		return I64Indefinite
	}
	return roundToI64(sign, sig, extra, mode, exact, st)
}

func ExtF80ToUI64(a ExtFloat80, mode RoundingMode, exact bool, st *Status) uint64 {
	sign, sig, extra, ok := extF80ToFixed64(a)
	if a.IsUnsupported() || !ok {
		st.Raise(FlagInvalid)
		return UI64Indefinite
	}
	return roundToUI64(sign, sig, extra, mode, exact, st)
}

// 16-bit targets go through the 32-bit conversion. Flags of the 32-bit
// step are kept only when the result fits; otherwise invalid alone is
// raised, as the hardware reports it.

func narrowI16(st *Status, conv func(*Status) int32) int16 {
	scratch := *st
	scratch.Clear()
	z := conv(&scratch)
	if z != int32(int16(z)) {
		st.Raise(FlagInvalid)
		return I16Indefinite
	}
	st.Flags |= scratch.Flags
	return int16(z)
}

func narrowUI16(st *Status, conv func(*Status) uint32) uint16 {
	scratch := *st
	scratch.Clear()
	z := conv(&scratch)
	if z > 0xFFFF {
		st.Raise(FlagInvalid)
		return UI16Indefinite
	}
	st.Flags |= scratch.Flags
	return uint16(z)
}

func F16ToI16(a Float16, mode RoundingMode, exact bool, st *Status) int16 {
	return narrowI16(st, func(s *Status) int32 { return F16ToI32(a, mode, exact, s) })
}

func F16ToUI16(a Float16, mode RoundingMode, exact bool, st *Status) uint16 {
	return narrowUI16(st, func(s *Status) uint32 { return F16ToUI32(a, mode, exact, s) })
}

func F32ToI16(a Float32, mode RoundingMode, exact bool, st *Status) int16 {
	return narrowI16(st, func(s *Status) int32 { return F32ToI32(a, mode, exact, s) })
}

func F32ToUI16(a Float32, mode RoundingMode, exact bool, st *Status) uint16 {
	return narrowUI16(st, func(s *Status) uint32 { return F32ToUI32(a, mode, exact, s) })
}

func F64ToI16(a Float64, mode RoundingMode, exact bool, st *Status) int16 {
	return narrowI16(st, func(s *Status) int32 { return F64ToI32(a, mode, exact, s) })
}

func F64ToUI16(a Float64, mode RoundingMode, exact bool, st *Status) uint16 {
	return narrowUI16(st, func(s *Status) uint32 { return F64ToUI32(a, mode, exact, s) })
}

func ExtF80ToI16(a ExtFloat80, mode RoundingMode, exact bool, st *Status) int16 {
	return narrowI16(st, func(s *Status) int32 { return ExtF80ToI32(a, mode, exact, s) })
}

// Truncating forms.

func F16ToI32RMinMag(a Float16, exact bool, st *Status) int32 {
	return F16ToI32(a, RoundToZero, exact, st)
}

func F16ToI64RMinMag(a Float16, exact bool, st *Status) int64 {
	return F16ToI64(a, RoundToZero, exact, st)
}

func F16ToUI32RMinMag(a Float16, exact bool, st *Status) uint32 {
	return F16ToUI32(a, RoundToZero, exact, st)
}

func F16ToUI64RMinMag(a Float16, exact bool, st *Status) uint64 {
	return F16ToUI64(a, RoundToZero, exact, st)
}

func F32ToI32RMinMag(a Float32, exact bool, st *Status) int32 {
	return F32ToI32(a, RoundToZero, exact, st)
}

func F32ToI64RMinMag(a Float32, exact bool, st *Status) int64 {
	return F32ToI64(a, RoundToZero, exact, st)
}

func F32ToUI32RMinMag(a Float32, exact bool, st *Status) uint32 {
	return F32ToUI32(a, RoundToZero, exact, st)
}

func F32ToUI64RMinMag(a Float32, exact bool, st *Status) uint64 {
	return F32ToUI64(a, RoundToZero, exact, st)
}

func F64ToI32RMinMag(a Float64, exact bool, st *Status) int32 {
	return F64ToI32(a, RoundToZero, exact, st)
}

func F64ToI64RMinMag(a Float64, exact bool, st *Status) int64 {
	return F64ToI64(a, RoundToZero, exact, st)
}

func F64ToUI32RMinMag(a Float64, exact bool, st *Status) uint32 {
	return F64ToUI32(a, RoundToZero, exact, st)
}

func F64ToUI64RMinMag(a Float64, exact bool, st *Status) uint64 {
	return F64ToUI64(a, RoundToZero, exact, st)
}

func ExtF80ToI32RMinMag(a ExtFloat80, exact bool, st *Status) int32 {
	return ExtF80ToI32(a, RoundToZero, exact, st)
}

func ExtF80ToI64RMinMag(a ExtFloat80, exact bool, st *Status) int64 {
	return ExtF80ToI64(a, RoundToZero, exact, st)
}

func ExtF80ToI16RMinMag(a ExtFloat80, exact bool, st *Status) int16 {
	return ExtF80ToI16(a, RoundToZero, exact, st)
}

// Float to float. Widening is exact; narrowing rounds in the target
// format. Signaling NaNs raise invalid and are quieted.

func F16ToF32(a Float16, st *Status) Float32 {
	sign, exp, frac := unpackF16(a, st)
	if exp == 0x1F {
		if frac != 0 {
			return Float32(commonNaNToF32UI(f16ToCommonNaN(uint16(a), st)))
		}
		return Float32(packToF32UI(sign, 0xFF, 0))
	}
	if exp == 0 {
		if frac == 0 {
			return Float32(packToF32UI(sign, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(frac)
		exp, frac = n.exp, n.sig&f16FracMask
	}
	return Float32(packToF32UI(sign, exp+0x70, uint32(frac)<<13))
}

func F16ToF64(a Float16, st *Status) Float64 {
	sign, exp, frac := unpackF16(a, st)
	if exp == 0x1F {
		if frac != 0 {
			return Float64(commonNaNToF64UI(f16ToCommonNaN(uint16(a), st)))
		}
		return Float64(packToF64UI(sign, 0x7FF, 0))
	}
	if exp == 0 {
		if frac == 0 {
			return Float64(packToF64UI(sign, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(frac)
		exp, frac = n.exp, n.sig&f16FracMask
	}
	return Float64(packToF64UI(sign, exp+0x3F0, uint64(frac)<<42))
}

// F16ToExtF80 widens a. Loading into the x87 stack ignores DAZ.
func F16ToExtF80(a Float16, st *Status) ExtFloat80 {
	sign, exp, sig := a.Sign(), a.Exp(), a.Frac()
	if exp == 0x1F {
		if sig != 0 {
			return commonNaNToExtF80(f16ToCommonNaN(uint16(a), st))
		}
		return infExtF80(sign)
	}
	if exp == 0 {
		if sig == 0 {
			return packToExtF80(sign, 0, 0)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sig)
		exp, sig = n.exp, n.sig
	}
	return packToExtF80(sign, exp+0x3FF0, uint64(sig|0x0400)<<53)
}

func F32ToF16(a Float32, st *Status) Float16 {
	sign, exp, frac := unpackF32(a, st)
	if exp == 0xFF {
		if frac != 0 {
			return Float16(commonNaNToF16UI(f32ToCommonNaN(uint32(a), st)))
		}
		return Float16(packToF16UI(sign, 0x1F, 0))
	}
	if exp == 0 {
		if frac == 0 {
			return Float16(packToF16UI(sign, 0, 0))
		}
		st.Raise(FlagDenormal)
	}
	sig := uint16(shiftRightJam32(frac, 9)) | 0x4000
	return roundPackToF16(sign, exp-0x71, sig, st)
}

func F32ToF64(a Float32, st *Status) Float64 {
	sign, exp, frac := unpackF32(a, st)
	if exp == 0xFF {
		if frac != 0 {
			return Float64(commonNaNToF64UI(f32ToCommonNaN(uint32(a), st)))
		}
		return Float64(packToF64UI(sign, 0x7FF, 0))
	}
	if exp == 0 {
		if frac == 0 {
			return Float64(packToF64UI(sign, 0, 0))
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(frac)
		exp, frac = n.exp, n.sig&f32FracMask
	}
	return Float64(packToF64UI(sign, exp+0x380, uint64(frac)<<29))
}

func F32ToExtF80(a Float32, st *Status) ExtFloat80 {
	sign, exp, sig := a.Sign(), a.Exp(), a.Frac()
	if exp == 0xFF {
		if sig != 0 {
			return commonNaNToExtF80(f32ToCommonNaN(uint32(a), st))
		}
		return infExtF80(sign)
	}
	if exp == 0 {
		if sig == 0 {
			return packToExtF80(sign, 0, 0)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sig)
		exp, sig = n.exp, n.sig
	}
	return packToExtF80(sign, exp+0x3F80, uint64(sig|0x00800000)<<40)
}

func F64ToF16(a Float64, st *Status) Float16 {
	sign, exp, frac := unpackF64(a, st)
	if exp == 0x7FF {
		if frac != 0 {
			return Float16(commonNaNToF16UI(f64ToCommonNaN(uint64(a), st)))
		}
		return Float16(packToF16UI(sign, 0x1F, 0))
	}
	if exp == 0 {
		if frac == 0 {
			return Float16(packToF16UI(sign, 0, 0))
		}
		st.Raise(FlagDenormal)
	}
	sig := uint16(shiftRightJam64(frac, 38)) | 0x4000
	return roundPackToF16(sign, exp-0x3F1, sig, st)
}

func F64ToF32(a Float64, st *Status) Float32 {
	sign, exp, frac := unpackF64(a, st)
	if exp == 0x7FF {
		if frac != 0 {
			return Float32(commonNaNToF32UI(f64ToCommonNaN(uint64(a), st)))
		}
		return Float32(packToF32UI(sign, 0xFF, 0))
	}
	if exp == 0 {
		if frac == 0 {
			return Float32(packToF32UI(sign, 0, 0))
		}
		st.Raise(FlagDenormal)
	}
	sig := uint32(shiftRightJam64(frac, 22)) | 0x40000000
	return roundPackToF32(sign, exp-0x381, sig, st)
}

func F64ToExtF80(a Float64, st *Status) ExtFloat80 {
	sign, exp, sig := a.Sign(), a.Exp(), a.Frac()
	if exp == 0x7FF {
		if sig != 0 {
			return commonNaNToExtF80(f64ToCommonNaN(uint64(a), st))
		}
		return infExtF80(sign)
	}
	if exp == 0 {
		if sig == 0 {
			return packToExtF80(sign, 0, 0)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sig)
		exp, sig = n.exp, n.sig
	}
	return packToExtF80(sign, exp+0x3C00, (sig|0x0010000000000000)<<11)
}

func ExtF80ToF16(a ExtFloat80, st *Status) Float16 {
	if a.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNF16
	}
	sign, exp, sig := a.Sign(), a.Exp(), a.Signif
	if exp == 0x7FFF {
		if sig<<1 != 0 {
			return Float16(commonNaNToF16UI(extF80ToCommonNaN(a.SignExp, sig, st)))
		}
		return Float16(packToF16UI(sign, 0x1F, 0))
	}
	sig16 := uint16(shiftRightJam64(sig, 49))
	if exp != 0 || sig16 != 0 {
		exp -= 0x3FF1
	}
	return roundPackToF16(sign, exp, sig16, st)
}

func ExtF80ToF32(a ExtFloat80, st *Status) Float32 {
	if a.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNF32
	}
	sign, exp, sig := a.Sign(), a.Exp(), a.Signif
	if exp == 0x7FFF {
		if sig<<1 != 0 {
			return Float32(commonNaNToF32UI(extF80ToCommonNaN(a.SignExp, sig, st)))
		}
		return Float32(packToF32UI(sign, 0xFF, 0))
	}
	sig32 := uint32(shiftRightJam64(sig, 33))
	if exp != 0 || sig32 != 0 {
		exp -= 0x3F81
	}
	return roundPackToF32(sign, exp, sig32, st)
}

func ExtF80ToF64(a ExtFloat80, st *Status) Float64 {
	if a.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNF64
	}
	sign, exp, sig := a.Sign(), a.Exp(), a.Signif
	if exp == 0x7FFF {
		if sig<<1 != 0 {
			return Float64(commonNaNToF64UI(extF80ToCommonNaN(a.SignExp, sig, st)))
		}
		return Float64(packToF64UI(sign, 0x7FF, 0))
	}
	sig64 := shortShiftRightJam64(sig, 1)
	if exp != 0 || sig != 0 {
		exp -= 0x3C01
	}
	return roundPackToF64(sign, exp, sig64, st)
}
