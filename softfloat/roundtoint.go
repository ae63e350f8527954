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

// binaryFormat describes an IEEE interchange layout held in a uint64.
type binaryFormat struct {
	fracBits uint
	expBits  uint
	bias     int
}

var (
	binary16 = binaryFormat{fracBits: 10, expBits: 5, bias: f16Bias}
	binary32 = binaryFormat{fracBits: 23, expBits: 8, bias: f32Bias}
	binary64 = binaryFormat{fracBits: 52, expBits: 11, bias: f64Bias}
)

func (f binaryFormat) signBit() uint64 { return 1 << (f.fracBits + f.expBits) }
func (f binaryFormat) expMax() int     { return 1<<f.expBits - 1 }

// unit returns the encoding of 2^-scale, which may be subnormal.
func (f binaryFormat) unit(sign bool, scale uint) uint64 {
	var z uint64
	if e := f.bias - int(scale); e >= 1 {
		z = uint64(e) << f.fracBits
	} else {
		z = 1 << (f.fracBits - 1 + uint(e))
	}
	if sign {
		z |= f.signBit()
	}
	return z
}

// roundBitsToInt rounds the finite non-NaN encoding a to a multiple of
// 2^-scale. Subnormal inputs are handled through their effective exponent
// of 1, so the mask arithmetic carries into the exponent field correctly.
func roundBitsToInt(a uint64, f binaryFormat, mode RoundingMode, exact bool, scale uint, st *Status) uint64 {
	signBit := f.signBit()
	sign := a&signBit != 0
	expField := int(a>>f.fracBits) & f.expMax()
	frac := a & (1<<f.fracBits - 1)
	exp := max(expField, 1) + int(scale)
	if exp >= f.bias+int(f.fracBits) {
		return a
	}
	if a&^signBit == 0 {
		return a
	}
	if exp < f.bias {
		// |a| * 2^scale < 1: the result is zero or one unit.
		if exact {
			st.Raise(FlagInexact)
		}
		half := exp == f.bias-1 && expField != 0
		switch mode {
		case RoundNearEven:
			if half && frac != 0 {
				return f.unit(sign, scale)
			}
		case RoundNearMaxMag:
			if half {
				return f.unit(sign, scale)
			}
		case RoundDown:
			if sign {
				return f.unit(true, scale)
			}
		case RoundUp:
			if !sign {
				return f.unit(false, scale)
			}
		}
		if sign {
			return signBit
		}
		return 0
	}
	lastBit := uint64(1) << uint(f.bias+int(f.fracBits)-exp)
	roundMask := lastBit - 1
	z := a
	switch mode {
	case RoundNearEven:
		z += lastBit >> 1
		if z&roundMask == 0 {
			z &^= lastBit
		}
	case RoundNearMaxMag:
		z += lastBit >> 1
	case RoundDown:
		if sign {
			z += roundMask
		}
	case RoundUp:
		if !sign {
			z += roundMask
		}
	}
	z &^= roundMask
	if z != a && exact {
		st.Raise(FlagInexact)
	}
	return z
}

// F16RoundToInt rounds a to a multiple of 2^-scale (scale 0..15, as in
// VRNDSCALE) in the given mode. Inexact is raised only when exact is set.
func F16RoundToInt(a Float16, mode RoundingMode, exact bool, scale uint8, st *Status) Float16 {
	if a.IsNaN() {
		return Float16(propagateNaNF16UI(uint16(a), uint16(a), st))
	}
	if st.DenormalsAreZeros && a.Exp() == 0 {
		a &= f16SignBit
	}
	return Float16(roundBitsToInt(uint64(a), binary16, mode, exact, uint(scale&0xF), st))
}

// F32RoundToInt is F16RoundToInt for binary32.
func F32RoundToInt(a Float32, mode RoundingMode, exact bool, scale uint8, st *Status) Float32 {
	if a.IsNaN() {
		return Float32(propagateNaNF32UI(uint32(a), uint32(a), st))
	}
	if st.DenormalsAreZeros && a.Exp() == 0 {
		a &= f32SignBit
	}
	return Float32(roundBitsToInt(uint64(a), binary32, mode, exact, uint(scale&0xF), st))
}

// F64RoundToInt is F16RoundToInt for binary64.
func F64RoundToInt(a Float64, mode RoundingMode, exact bool, scale uint8, st *Status) Float64 {
	if a.IsNaN() {
		return Float64(propagateNaNF64UI(uint64(a), uint64(a), st))
	}
	if st.DenormalsAreZeros && a.Exp() == 0 {
		a &= f64SignBit
	}
	return Float64(roundBitsToInt(uint64(a), binary64, mode, exact, uint(scale&0xF), st))
}

// ExtF80RoundToInt rounds a to an integer (FRNDINT). RoundedUp reports a
// result larger in magnitude than a.
func ExtF80RoundToInt(a ExtFloat80, mode RoundingMode, exact bool, st *Status) ExtFloat80 {
	if a.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	exp, sig := a.Exp(), a.Signif
	if exp >= 0x403E {
		if exp == 0x7FFF && sig<<1 != 0 {
			return propagateNaNOneExtF80(a, st)
		}
		return a
	}
	sign := a.Sign()
	if exp < 0x3FFF {
		if exp == 0 {
			if sig == 0 {
				return a
			}
			st.Raise(FlagDenormal)
		}
		if exact {
			st.Raise(FlagInexact)
		}
		one := packToExtF80(sign, 0x3FFF, extF80IntBit)
		switch mode {
		case RoundNearEven:
			if exp == 0x3FFE && sig<<1 != 0 {
				st.setRoundedUp()
				return one
			}
		case RoundNearMaxMag:
			if exp == 0x3FFE {
				st.setRoundedUp()
				return one
			}
		case RoundDown:
			if sign {
				st.setRoundedUp()
				return one
			}
		case RoundUp:
			if !sign {
				st.setRoundedUp()
				return one
			}
		}
		return packToExtF80(sign, 0, 0)
	}
	lastBit := uint64(1) << uint(0x403E-exp)
	roundMask := lastBit - 1
	z := a
	switch mode {
	case RoundNearEven:
		z.Signif += lastBit >> 1
		if z.Signif&roundMask == 0 {
			z.Signif &^= lastBit
		}
	case RoundNearMaxMag:
		z.Signif += lastBit >> 1
	case RoundDown:
		if sign {
			z.Signif += roundMask
		}
	case RoundUp:
		if !sign {
			z.Signif += roundMask
		}
	}
	z.Signif &^= roundMask
	if z.Signif == 0 {
		z.SignExp++
		z.Signif = extF80IntBit
	}
	if z != a {
		if exact {
			st.Raise(FlagInexact)
		}
		if z.Signif > a.Signif || z.SignExp != a.SignExp {
			st.setRoundedUp()
		}
	}
	return z
}
