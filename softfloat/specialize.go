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

// x86 NaN conventions: the default NaN is negative and quiet, a NaN is
// signaling when the top fraction bit is clear, and an invalid operation
// with a NaN operand returns that operand quieted.

// Default NaNs produced by invalid operations.
const (
	DefaultNaNF16 Float16 = 0xFE00
	DefaultNaNF32 Float32 = 0xFFC00000
	DefaultNaNF64 Float64 = 0xFFF8000000000000
)

// DefaultNaNExtF80 is the x87 "real indefinite".
var DefaultNaNExtF80 = ExtFloat80{SignExp: 0xFFFF, Signif: 0xC000000000000000}

const (
	f16QuietBit    = 0x0200
	f32QuietBit    = 0x00400000
	f64QuietBit    = 0x0008000000000000
	extF80QuietSig = 0xC000000000000000
)

// commonNaN carries a NaN's sign and payload between formats. The payload is
// left-aligned in hi.
type commonNaN struct {
	sign   bool
	hi, lo uint64
}

func isNaNF16UI(a uint16) bool {
	return a<<1 > 0xF800
}

func isSigNaNF16UI(a uint16) bool {
	return (a>>9)&0x3F == 0x3E && a&0x1FF != 0
}

func isNaNF32UI(a uint32) bool {
	return a<<1 > 0xFF000000
}

func isSigNaNF32UI(a uint32) bool {
	return (a>>22)&0x1FF == 0x1FE && a&0x003FFFFF != 0
}

func isNaNF64UI(a uint64) bool {
	return a<<1 > 0xFFE0000000000000
}

func isSigNaNF64UI(a uint64) bool {
	return (a>>51)&0xFFF == 0xFFE && a&0x0007FFFFFFFFFFFF != 0
}

func isNaNExtF80UI(signExp uint16, sig uint64) bool {
	return signExp&0x7FFF == 0x7FFF && sig<<1 != 0
}

func isSigNaNExtF80UI(signExp uint16, sig uint64) bool {
	low := sig &^ 0x4000000000000000
	return signExp&0x7FFF == 0x7FFF && low<<1 != 0 && sig == low
}

// isUnsupportedExtF80UI reports encodings the 387 and later reject: a
// non-zero exponent without the explicit integer bit (unnormals,
// pseudo-infinities, pseudo-NaNs).
func isUnsupportedExtF80UI(signExp uint16, sig uint64) bool {
	return signExp&0x7FFF != 0 && sig&extF80IntBit == 0
}

func f16ToCommonNaN(a uint16, st *Status) commonNaN {
	if isSigNaNF16UI(a) {
		st.Raise(FlagInvalid)
	}
	return commonNaN{sign: a>>15 != 0, hi: uint64(a) << 54}
}

func commonNaNToF16UI(a commonNaN) uint16 {
	return uint16(b2u32(a.sign))<<15 | 0x7E00 | uint16(a.hi>>54)
}

func f32ToCommonNaN(a uint32, st *Status) commonNaN {
	if isSigNaNF32UI(a) {
		st.Raise(FlagInvalid)
	}
	return commonNaN{sign: a>>31 != 0, hi: uint64(a) << 41}
}

func commonNaNToF32UI(a commonNaN) uint32 {
	return b2u32(a.sign)<<31 | 0x7FC00000 | uint32(a.hi>>41)
}

func f64ToCommonNaN(a uint64, st *Status) commonNaN {
	if isSigNaNF64UI(a) {
		st.Raise(FlagInvalid)
	}
	return commonNaN{sign: a>>63 != 0, hi: a << 12}
}

func commonNaNToF64UI(a commonNaN) uint64 {
	return b2u64(a.sign)<<63 | 0x7FF8000000000000 | a.hi>>12
}

func extF80ToCommonNaN(signExp uint16, sig uint64, st *Status) commonNaN {
	if isSigNaNExtF80UI(signExp, sig) {
		st.Raise(FlagInvalid)
	}
	return commonNaN{sign: signExp>>15 != 0, hi: sig << 1}
}

func commonNaNToExtF80(a commonNaN) ExtFloat80 {
	return ExtFloat80{
		SignExp: uint16(b2u32(a.sign))<<15 | 0x7FFF,
		Signif:  extF80QuietSig | a.hi>>1,
	}
}

// propagateNaNF16UI returns the NaN result of a two-operand operation where
// at least one operand is a NaN. Any signaling NaN raises invalid; a
// signaling a takes precedence, then whichever of a, b is a NaN.
func propagateNaNF16UI(a, b uint16, st *Status) uint16 {
	sigA := isSigNaNF16UI(a)
	if sigA || isSigNaNF16UI(b) {
		st.Raise(FlagInvalid)
		if sigA {
			return a | f16QuietBit
		}
	}
	if isNaNF16UI(a) {
		return a | f16QuietBit
	}
	return b | f16QuietBit
}

func propagateNaNF32UI(a, b uint32, st *Status) uint32 {
	sigA := isSigNaNF32UI(a)
	if sigA || isSigNaNF32UI(b) {
		st.Raise(FlagInvalid)
		if sigA {
			return a | f32QuietBit
		}
	}
	if isNaNF32UI(a) {
		return a | f32QuietBit
	}
	return b | f32QuietBit
}

func propagateNaNF64UI(a, b uint64, st *Status) uint64 {
	sigA := isSigNaNF64UI(a)
	if sigA || isSigNaNF64UI(b) {
		st.Raise(FlagInvalid)
		if sigA {
			return a | f64QuietBit
		}
	}
	if isNaNF64UI(a) {
		return a | f64QuietBit
	}
	return b | f64QuietBit
}

// propagateNaNExtF80 follows the x87 rule: when both operands are NaNs of
// the same kind the one with the larger significand wins.
func propagateNaNExtF80(a, b ExtFloat80, st *Status) ExtFloat80 {
	sigA := isSigNaNExtF80UI(a.SignExp, a.Signif)
	sigB := isSigNaNExtF80UI(b.SignExp, b.Signif)
	retA := ExtFloat80{SignExp: a.SignExp, Signif: a.Signif | extF80QuietSig}
	retB := ExtFloat80{SignExp: b.SignExp, Signif: b.Signif | extF80QuietSig}
	if sigA || sigB {
		st.Raise(FlagInvalid)
		if sigA {
			if !sigB {
				if isNaNExtF80UI(b.SignExp, b.Signif) {
					return retB
				}
				return retA
			}
		} else {
			if isNaNExtF80UI(a.SignExp, a.Signif) {
				return retA
			}
			return retB
		}
	}
	magA := a.SignExp & 0x7FFF
	magB := b.SignExp & 0x7FFF
	switch {
	case magA < magB:
		return retB
	case magB < magA:
		return retA
	case a.Signif < b.Signif:
		return retB
	case b.Signif < a.Signif:
		return retA
	case a.SignExp < b.SignExp:
		return retA
	}
	return retB
}

// propagateNaNOneExtF80 quiets a single NaN operand.
func propagateNaNOneExtF80(a ExtFloat80, st *Status) ExtFloat80 {
	if isSigNaNExtF80UI(a.SignExp, a.Signif) {
		st.Raise(FlagInvalid)
	}
	a.Signif |= extF80QuietSig
	return a
}

// Three-operand NaN selection for fused multiply-add: any signaling NaN
// raises invalid, and the first NaN among a, b, c is returned quieted.

func propagateNaNF16UI3(a, b, c uint16, st *Status) uint16 {
	if isSigNaNF16UI(a) || isSigNaNF16UI(b) || isSigNaNF16UI(c) {
		st.Raise(FlagInvalid)
	}
	switch {
	case isNaNF16UI(a):
		return a | f16QuietBit
	case isNaNF16UI(b):
		return b | f16QuietBit
	}
	return c | f16QuietBit
}

func propagateNaNF32UI3(a, b, c uint32, st *Status) uint32 {
	if isSigNaNF32UI(a) || isSigNaNF32UI(b) || isSigNaNF32UI(c) {
		st.Raise(FlagInvalid)
	}
	switch {
	case isNaNF32UI(a):
		return a | f32QuietBit
	case isNaNF32UI(b):
		return b | f32QuietBit
	}
	return c | f32QuietBit
}

func propagateNaNF64UI3(a, b, c uint64, st *Status) uint64 {
	if isSigNaNF64UI(a) || isSigNaNF64UI(b) || isSigNaNF64UI(c) {
		st.Raise(FlagInvalid)
	}
	switch {
	case isNaNF64UI(a):
		return a | f64QuietBit
	case isNaNF64UI(b):
		return b | f64QuietBit
	}
	return c | f64QuietBit
}

func propagateNaNExtF803(a, b, c ExtFloat80, st *Status) ExtFloat80 {
	if isSigNaNExtF80UI(a.SignExp, a.Signif) || isSigNaNExtF80UI(b.SignExp, b.Signif) ||
		isSigNaNExtF80UI(c.SignExp, c.Signif) {
		st.Raise(FlagInvalid)
	}
	switch {
	case isNaNExtF80UI(a.SignExp, a.Signif):
		a.Signif |= extF80QuietSig
		return a
	case isNaNExtF80UI(b.SignExp, b.Signif):
		b.Signif |= extF80QuietSig
		return b
	}
	c.Signif |= extF80QuietSig
	return c
}
