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

func (f binaryFormat) isNaN(a uint64) bool {
	return a&^f.signBit() > uint64(f.expMax())<<f.fracBits
}

func (f binaryFormat) isSigNaN(a uint64) bool {
	return f.isNaN(a) && a&(1<<(f.fracBits-1)) == 0
}

func (f binaryFormat) isDenormal(a uint64) bool {
	return a&^f.signBit() != 0 && a&(uint64(f.expMax())<<f.fracBits) == 0
}

// daz replaces a subnormal encoding by a signed zero.
func (f binaryFormat) daz(a uint64, st *Status) uint64 {
	if st.DenormalsAreZeros && f.isDenormal(a) {
		return a & f.signBit()
	}
	return a
}

// compareBits orders two IEEE encodings. A signaling NaN is always invalid;
// a quiet NaN only when quiet is false.
func compareBits(a, b uint64, f binaryFormat, quiet bool, st *Status) Relation {
	a, b = f.daz(a, st), f.daz(b, st)
	if f.isSigNaN(a) || f.isSigNaN(b) {
		st.Raise(FlagInvalid)
		return RelationUnordered
	}
	if f.isNaN(a) || f.isNaN(b) {
		if !quiet {
			st.Raise(FlagInvalid)
		}
		return RelationUnordered
	}
	if f.isDenormal(a) || f.isDenormal(b) {
		st.Raise(FlagDenormal)
	}
	signBit := f.signBit()
	if a == b || (a|b)&^signBit == 0 {
		return RelationEqual
	}
	signA, signB := a&signBit != 0, b&signBit != 0
	if signA != signB {
		if signA {
			return RelationLess
		}
		return RelationGreater
	}
	if signA != (a < b) {
		return RelationLess
	}
	return RelationGreater
}

// minMaxBits implements the IEEE minNum/maxNum family: a quiet NaN loses to
// a number, a signaling NaN is returned quieted. With abs set the
// magnitudes are compared but the chosen operand keeps its sign.
func minMaxBits(a, b uint64, f binaryFormat, isMax, abs bool, st *Status, propagate func(a, b uint64) uint64) uint64 {
	a, b = f.daz(a, st), f.daz(b, st)
	if f.isNaN(a) || f.isNaN(b) {
		switch {
		case f.isSigNaN(a):
			return propagate(a, a)
		case f.isSigNaN(b):
			return propagate(b, b)
		case !f.isNaN(b):
			if f.isDenormal(b) {
				st.Raise(FlagDenormal)
			}
			return b
		case !f.isNaN(a):
			if f.isDenormal(a) {
				st.Raise(FlagDenormal)
			}
			return a
		}
		return propagate(a, b)
	}
	if f.isDenormal(a) || f.isDenormal(b) {
		st.Raise(FlagDenormal)
	}
	signBit := f.signBit()
	ta, tb := a, b
	if abs {
		ta &^= signBit
		tb &^= signBit
	}
	signA, signB := ta&signBit != 0, tb&signBit != 0
	aFirst := signA
	if signA == signB {
		aFirst = signA != (ta < tb)
	}
	if aFirst != isMax {
		return a
	}
	return b
}

// F16Compare orders a and b. Quiet comparisons raise invalid only for
// signaling NaNs.
func F16Compare(a, b Float16, quiet bool, st *Status) Relation {
	return compareBits(uint64(a), uint64(b), binary16, quiet, st)
}

// F16CompareQuiet is F16Compare(a, b, true, st) (UCOMISS-style).
func F16CompareQuiet(a, b Float16, st *Status) Relation { return F16Compare(a, b, true, st) }

// F16CompareSignaling is F16Compare(a, b, false, st) (COMISS-style).
func F16CompareSignaling(a, b Float16, st *Status) Relation { return F16Compare(a, b, false, st) }

// F16Min returns a if a < b and b otherwise, which makes b the result for
// NaNs and for equal operands (MINSS semantics).
func F16Min(a, b Float16, st *Status) Float16 {
	a, b = Float16(binary16.daz(uint64(a), st)), Float16(binary16.daz(uint64(b), st))
	if F16CompareSignaling(a, b, st) == RelationLess {
		return a
	}
	return b
}

// F16Max is the MAXSS counterpart of F16Min.
func F16Max(a, b Float16, st *Status) Float16 {
	a, b = Float16(binary16.daz(uint64(a), st)), Float16(binary16.daz(uint64(b), st))
	if F16CompareSignaling(a, b, st) == RelationGreater {
		return a
	}
	return b
}

// F16MinMax is the IEEE minNum/maxNum operation (VRANGE, VMINMAX); abs
// compares magnitudes.
func F16MinMax(a, b Float16, isMax, abs bool, st *Status) Float16 {
	return Float16(minMaxBits(uint64(a), uint64(b), binary16, isMax, abs, st, func(x, y uint64) uint64 {
		return uint64(propagateNaNF16UI(uint16(x), uint16(y), st))
	}))
}

func F32Compare(a, b Float32, quiet bool, st *Status) Relation {
	return compareBits(uint64(a), uint64(b), binary32, quiet, st)
}

func F32CompareQuiet(a, b Float32, st *Status) Relation     { return F32Compare(a, b, true, st) }
func F32CompareSignaling(a, b Float32, st *Status) Relation { return F32Compare(a, b, false, st) }

func F32Min(a, b Float32, st *Status) Float32 {
	a, b = Float32(binary32.daz(uint64(a), st)), Float32(binary32.daz(uint64(b), st))
	if F32CompareSignaling(a, b, st) == RelationLess {
		return a
	}
	return b
}

func F32Max(a, b Float32, st *Status) Float32 {
	a, b = Float32(binary32.daz(uint64(a), st)), Float32(binary32.daz(uint64(b), st))
	if F32CompareSignaling(a, b, st) == RelationGreater {
		return a
	}
	return b
}

func F32MinMax(a, b Float32, isMax, abs bool, st *Status) Float32 {
	return Float32(minMaxBits(uint64(a), uint64(b), binary32, isMax, abs, st, func(x, y uint64) uint64 {
		return uint64(propagateNaNF32UI(uint32(x), uint32(y), st))
	}))
}

func F64Compare(a, b Float64, quiet bool, st *Status) Relation {
	return compareBits(uint64(a), uint64(b), binary64, quiet, st)
}

func F64CompareQuiet(a, b Float64, st *Status) Relation     { return F64Compare(a, b, true, st) }
func F64CompareSignaling(a, b Float64, st *Status) Relation { return F64Compare(a, b, false, st) }

func F64Min(a, b Float64, st *Status) Float64 {
	a, b = Float64(binary64.daz(uint64(a), st)), Float64(binary64.daz(uint64(b), st))
	if F64CompareSignaling(a, b, st) == RelationLess {
		return a
	}
	return b
}

func F64Max(a, b Float64, st *Status) Float64 {
	a, b = Float64(binary64.daz(uint64(a), st)), Float64(binary64.daz(uint64(b), st))
	if F64CompareSignaling(a, b, st) == RelationGreater {
		return a
	}
	return b
}

func F64MinMax(a, b Float64, isMax, abs bool, st *Status) Float64 {
	return Float64(minMaxBits(uint64(a), uint64(b), binary64, isMax, abs, st, func(x, y uint64) uint64 {
		return propagateNaNF64UI(x, y, st)
	}))
}

// ExtF80Compare orders a and b (FCOM/FUCOM). Unsupported encodings are
// invalid and unordered regardless of quiet.
func ExtF80Compare(a, b ExtFloat80, quiet bool, st *Status) Relation {
	if a.IsUnsupported() || b.IsUnsupported() {
		st.Raise(FlagInvalid)
		return RelationUnordered
	}
	if a.IsSignalingNaN() || b.IsSignalingNaN() {
		st.Raise(FlagInvalid)
		return RelationUnordered
	}
	if a.IsNaN() || b.IsNaN() {
		if !quiet {
			st.Raise(FlagInvalid)
		}
		return RelationUnordered
	}
	if a.IsDenormal() || b.IsDenormal() {
		st.Raise(FlagDenormal)
	}
	if a.IsZero() && b.IsZero() {
		return RelationEqual
	}
	signA, signB := a.Sign(), b.Sign()
	if signA != signB {
		if signA {
			return RelationLess
		}
		return RelationGreater
	}
	// Pseudo-denormals carry the integer bit and share exponent 1 with the
	// smallest normals.
	expA, expB := a.Exp(), b.Exp()
	if expA == 0 && a.Signif&extF80IntBit != 0 {
		expA = 1
	}
	if expB == 0 && b.Signif&extF80IntBit != 0 {
		expB = 1
	}
	if expA == expB && a.Signif == b.Signif {
		return RelationEqual
	}
	less := expA < expB || (expA == expB && a.Signif < b.Signif)
	if signA != less {
		return RelationLess
	}
	return RelationGreater
}

func ExtF80CompareQuiet(a, b ExtFloat80, st *Status) Relation {
	return ExtF80Compare(a, b, true, st)
}

func ExtF80CompareSignaling(a, b ExtFloat80, st *Status) Relation {
	return ExtF80Compare(a, b, false, st)
}
