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

// Fused multiply-add. The product a*b is formed exactly, the addend is
// aligned against it and the sum is rounded once.
//
// The op argument negates the addend (bit 0) and/or the product (bit 1)
// before the addition. Negating inside the operation differs from negating
// the operands in that NaN signs are left alone, and an exact cancellation
// still produces +0 (or -0 when rounding down) for every op.

func (op MulAddOp) negC() bool    { return op&MulAddSubC != 0 }
func (op MulAddOp) negProd() bool { return op&MulAddSubProd != 0 }

// F16MulAdd returns a*b+c with the sign variant selected by op.
func F16MulAdd(a, b, c Float16, op MulAddOp, st *Status) Float16 {
	if a.IsNaN() || b.IsNaN() || c.IsNaN() {
		return Float16(propagateNaNF16UI3(uint16(a), uint16(b), uint16(c), st))
	}
	signA, expA, sigA := unpackF16(a, st)
	signB, expB, sigB := unpackF16(b, st)
	signC, expC, sigC := unpackF16(c, st)
	if (expA == 0 && sigA == 0 && expB == 0x1F) || (expA == 0x1F && expB == 0 && sigB == 0) {
		st.Raise(FlagInvalid)
		return DefaultNaNF16
	}
	signC = signC != op.negC()
	signP := (signA != signB) != op.negProd()
	infP := expA == 0x1F || expB == 0x1F
	zeroP := (expA == 0 && sigA == 0) || (expB == 0 && sigB == 0)
	denA := expA == 0 && sigA != 0
	denB := expB == 0 && sigB != 0
	denC := expC == 0 && sigC != 0

	if expC == 0x1F {
		if infP && signP != signC {
			st.Raise(FlagInvalid)
			return DefaultNaNF16
		}
		if denA || denB {
			st.Raise(FlagDenormal)
		}
		return Float16(packToF16UI(signC, 0x1F, 0))
	}
	if infP {
		if denA || denB || denC {
			st.Raise(FlagDenormal)
		}
		return Float16(packToF16UI(signP, 0x1F, 0))
	}
	if zeroP {
		if expC == 0 {
			if sigC == 0 {
				return Float16(packToF16UI(zeroSumSign(signP, signC, st), 0, 0))
			}
			st.Raise(FlagDenormal)
			if st.FlushUnderflowToZero {
				st.Raise(FlagUnderflow | FlagInexact)
				return Float16(packToF16UI(signC, 0, 0))
			}
		}
		return Float16(packToF16UI(signC, expC, sigC))
	}
	if denA {
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if denB {
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sigB)
		expB, sigB = n.exp, n.sig
	}

	// Product with the explicit bit at position 30.
	expP := expA + expB - 0xE
	sigP := uint32(sigA|0x0400)<<4 * uint32(sigB|0x0400) << 5
	if int32(sigP<<1) >= 0 {
		sigP <<= 1
		expP--
	}
	signZ := signP
	if expC == 0 {
		if sigC == 0 {
			return roundPackToF16(signZ, expP-1, uint16(shiftRightJam32(sigP, 16)), st)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF16Sig(sigC)
		expC, sigC = n.exp, n.sig
	}
	sigC32 := uint32(sigC)<<20 | 0x40000000
	expDiff := expP - expC
	var expZ int
	var sigZ uint32
	if signP == signC {
		switch {
		case expDiff > 0:
			sigC32 = shiftRightJam32(sigC32, uint(expDiff))
			expZ = expP
		case expDiff < 0:
			sigP = shiftRightJam32(sigP, uint(-expDiff))
			expZ = expC
		default:
			expZ = expC
		}
		sigZ = sigP + sigC32
		if int32(sigZ) < 0 {
			sigZ = shiftRightJam32(sigZ, 1)
		} else {
			expZ--
		}
		return roundPackToF16(signZ, expZ, uint16(shiftRightJam32(sigZ, 16)), st)
	}
	switch {
	case expDiff > 0:
		sigC32 = shiftRightJam32(sigC32, uint(expDiff))
		sigZ, expZ = sigP-sigC32, expP
	case expDiff < 0:
		sigP = shiftRightJam32(sigP, uint(-expDiff))
		sigZ, expZ = sigC32-sigP, expC
		signZ = !signZ
	default:
		expZ = expP
		switch {
		case sigC32 < sigP:
			sigZ = sigP - sigC32
		case sigP < sigC32:
			sigZ = sigC32 - sigP
			signZ = !signZ
		default:
			return Float16(packToF16UI(st.RoundingMode == RoundDown, 0, 0))
		}
	}
	expZ--
	shift := countLeadingZeros32(sigZ) - 1
	sigZ <<= uint(shift)
	expZ -= shift
	return roundPackToF16(signZ, expZ, uint16(shiftRightJam32(sigZ, 16)), st)
}

// F32MulAdd returns a*b+c with the sign variant selected by op.
func F32MulAdd(a, b, c Float32, op MulAddOp, st *Status) Float32 {
	if a.IsNaN() || b.IsNaN() || c.IsNaN() {
		return Float32(propagateNaNF32UI3(uint32(a), uint32(b), uint32(c), st))
	}
	signA, expA, sigA := unpackF32(a, st)
	signB, expB, sigB := unpackF32(b, st)
	signC, expC, sigC := unpackF32(c, st)
	if (expA == 0 && sigA == 0 && expB == 0xFF) || (expA == 0xFF && expB == 0 && sigB == 0) {
		st.Raise(FlagInvalid)
		return DefaultNaNF32
	}
	signC = signC != op.negC()
	signP := (signA != signB) != op.negProd()
	infP := expA == 0xFF || expB == 0xFF
	zeroP := (expA == 0 && sigA == 0) || (expB == 0 && sigB == 0)
	denA := expA == 0 && sigA != 0
	denB := expB == 0 && sigB != 0
	denC := expC == 0 && sigC != 0

	if expC == 0xFF {
		if infP && signP != signC {
			st.Raise(FlagInvalid)
			return DefaultNaNF32
		}
		if denA || denB {
			st.Raise(FlagDenormal)
		}
		return Float32(packToF32UI(signC, 0xFF, 0))
	}
	if infP {
		if denA || denB || denC {
			st.Raise(FlagDenormal)
		}
		return Float32(packToF32UI(signP, 0xFF, 0))
	}
	if zeroP {
		if expC == 0 {
			if sigC == 0 {
				return Float32(packToF32UI(zeroSumSign(signP, signC, st), 0, 0))
			}
			st.Raise(FlagDenormal)
			if st.FlushUnderflowToZero {
				st.Raise(FlagUnderflow | FlagInexact)
				return Float32(packToF32UI(signC, 0, 0))
			}
		}
		return Float32(packToF32UI(signC, expC, sigC))
	}
	if denA {
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if denB {
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sigB)
		expB, sigB = n.exp, n.sig
	}

	// Product with the explicit bit at position 62.
	expP := expA + expB - 0x7E
	sigP := uint64((sigA|0x00800000)<<7) * uint64((sigB|0x00800000)<<8)
	if int64(sigP<<1) >= 0 {
		sigP <<= 1
		expP--
	}
	signZ := signP
	if expC == 0 {
		if sigC == 0 {
			return roundPackToF32(signZ, expP-1, uint32(shiftRightJam64(sigP, 32)), st)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF32Sig(sigC)
		expC, sigC = n.exp, n.sig
	}
	sigC64 := uint64(sigC)<<39 | 0x4000000000000000
	expDiff := expP - expC
	var expZ int
	var sigZ uint64
	if signP == signC {
		switch {
		case expDiff > 0:
			sigC64 = shiftRightJam64(sigC64, uint(expDiff))
			expZ = expP
		case expDiff < 0:
			sigP = shiftRightJam64(sigP, uint(-expDiff))
			expZ = expC
		default:
			expZ = expC
		}
		sigZ = sigP + sigC64
		if int64(sigZ) < 0 {
			sigZ = shiftRightJam64(sigZ, 1)
		} else {
			expZ--
		}
		return roundPackToF32(signZ, expZ, uint32(shiftRightJam64(sigZ, 32)), st)
	}
	switch {
	case expDiff > 0:
		sigC64 = shiftRightJam64(sigC64, uint(expDiff))
		sigZ, expZ = sigP-sigC64, expP
	case expDiff < 0:
		sigP = shiftRightJam64(sigP, uint(-expDiff))
		sigZ, expZ = sigC64-sigP, expC
		signZ = !signZ
	default:
		expZ = expP
		switch {
		case sigC64 < sigP:
			sigZ = sigP - sigC64
		case sigP < sigC64:
			sigZ = sigC64 - sigP
			signZ = !signZ
		default:
			return Float32(packToF32UI(st.RoundingMode == RoundDown, 0, 0))
		}
	}
	expZ--
	shift := countLeadingZeros64(sigZ) - 1
	sigZ <<= uint(shift)
	expZ -= shift
	return roundPackToF32(signZ, expZ, uint32(shiftRightJam64(sigZ, 32)), st)
}

// F64MulAdd returns a*b+c with the sign variant selected by op.
func F64MulAdd(a, b, c Float64, op MulAddOp, st *Status) Float64 {
	if a.IsNaN() || b.IsNaN() || c.IsNaN() {
		return Float64(propagateNaNF64UI3(uint64(a), uint64(b), uint64(c), st))
	}
	signA, expA, sigA := unpackF64(a, st)
	signB, expB, sigB := unpackF64(b, st)
	signC, expC, sigC := unpackF64(c, st)
	if (expA == 0 && sigA == 0 && expB == 0x7FF) || (expA == 0x7FF && expB == 0 && sigB == 0) {
		st.Raise(FlagInvalid)
		return DefaultNaNF64
	}
	signC = signC != op.negC()
	signP := (signA != signB) != op.negProd()
	infP := expA == 0x7FF || expB == 0x7FF
	zeroP := (expA == 0 && sigA == 0) || (expB == 0 && sigB == 0)
	denA := expA == 0 && sigA != 0
	denB := expB == 0 && sigB != 0
	denC := expC == 0 && sigC != 0

	if expC == 0x7FF {
		if infP && signP != signC {
			st.Raise(FlagInvalid)
			return DefaultNaNF64
		}
		if denA || denB {
			st.Raise(FlagDenormal)
		}
		return Float64(packToF64UI(signC, 0x7FF, 0))
	}
	if infP {
		if denA || denB || denC {
			st.Raise(FlagDenormal)
		}
		return Float64(packToF64UI(signP, 0x7FF, 0))
	}
	if zeroP {
		if expC == 0 {
			if sigC == 0 {
				return Float64(packToF64UI(zeroSumSign(signP, signC, st), 0, 0))
			}
			st.Raise(FlagDenormal)
			if st.FlushUnderflowToZero {
				st.Raise(FlagUnderflow | FlagInexact)
				return Float64(packToF64UI(signC, 0, 0))
			}
		}
		return Float64(packToF64UI(signC, expC, sigC))
	}
	if denA {
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if denB {
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sigB)
		expB, sigB = n.exp, n.sig
	}

	// Product with the explicit bit at position 126.
	expP := expA + expB - 0x3FE
	sigP := mul64To128((sigA|0x0010000000000000)<<10, (sigB|0x0010000000000000)<<11)
	if int64(sigP.hi<<1) >= 0 {
		sigP = shortShiftLeft128(sigP, 1)
		expP--
	}
	signZ := signP
	if expC == 0 {
		if sigC == 0 {
			return roundPackToF64(signZ, expP-1, shiftRightJam128(sigP, 64).lo, st)
		}
		st.Raise(FlagDenormal)
		n := normSubnormalF64Sig(sigC)
		expC, sigC = n.exp, n.sig
	}
	bigC := uint128{hi: sigC<<10 | 0x4000000000000000}
	expDiff := expP - expC
	var expZ int
	var z uint128
	if signP == signC {
		switch {
		case expDiff > 0:
			bigC = shiftRightJam128(bigC, uint(expDiff))
			expZ = expP
		case expDiff < 0:
			sigP = shiftRightJam128(sigP, uint(-expDiff))
			expZ = expC
		default:
			expZ = expC
		}
		z = add128(sigP, bigC)
		if int64(z.hi) < 0 {
			z = shortShiftRightJam128(z, 1)
		} else {
			expZ--
		}
		return roundPackToF64(signZ, expZ, shiftRightJam128(z, 64).lo, st)
	}
	switch {
	case expDiff > 0:
		bigC = shiftRightJam128(bigC, uint(expDiff))
		z, expZ = sub128(sigP, bigC), expP
	case expDiff < 0:
		sigP = shiftRightJam128(sigP, uint(-expDiff))
		z, expZ = sub128(bigC, sigP), expC
		signZ = !signZ
	default:
		expZ = expP
		switch {
		case lt128(bigC, sigP):
			z = sub128(sigP, bigC)
		case lt128(sigP, bigC):
			z = sub128(bigC, sigP)
			signZ = !signZ
		default:
			return Float64(packToF64UI(st.RoundingMode == RoundDown, 0, 0))
		}
	}
	expZ--
	if z.hi == 0 {
		z = uint128{hi: z.lo >> 1, lo: z.lo << 63}
		expZ -= 63
	}
	shift := countLeadingZeros64(z.hi) - 1
	z = shortShiftLeft128(z, uint(shift))
	expZ -= shift
	return roundPackToF64(signZ, expZ, z.hi|b2u64(z.lo != 0), st)
}

// ExtF80MulAdd returns a*b+c rounded once at the precision selected in st.
// The aligned sum is held in 256 bits, so the product is kept exactly and
// at least 128 bits lie below it before any bit is jammed.
func ExtF80MulAdd(a, b, c ExtFloat80, op MulAddOp, st *Status) ExtFloat80 {
	if a.IsUnsupported() || b.IsUnsupported() || c.IsUnsupported() {
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	if a.IsNaN() || b.IsNaN() || c.IsNaN() {
		return propagateNaNExtF803(a, b, c, st)
	}
	expA, sigA := a.Exp(), a.Signif
	expB, sigB := b.Exp(), b.Signif
	expC, sigC := c.Exp(), c.Signif
	if (a.IsZero() && expB == 0x7FFF) || (expA == 0x7FFF && b.IsZero()) {
		st.Raise(FlagInvalid)
		return DefaultNaNExtF80
	}
	signC := c.Sign() != op.negC()
	signP := (a.Sign() != b.Sign()) != op.negProd()
	infP := expA == 0x7FFF || expB == 0x7FFF
	zeroP := a.IsZero() || b.IsZero()
	denA, denB, denC := a.IsDenormal(), b.IsDenormal(), c.IsDenormal()

	if expC == 0x7FFF {
		if infP && signP != signC {
			st.Raise(FlagInvalid)
			return DefaultNaNExtF80
		}
		if denA || denB {
			st.Raise(FlagDenormal)
		}
		return infExtF80(signC)
	}
	if infP {
		if denA || denB || denC {
			st.Raise(FlagDenormal)
		}
		return infExtF80(signP)
	}
	if denC {
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigC)
		expC, sigC = n.exp, n.sig
	}
	if zeroP {
		if sigC == 0 {
			return packToExtF80(zeroSumSign(signP, signC, st), 0, 0)
		}
		return roundPackToExtF80(signC, expC, sigC, 0, st)
	}
	if denA {
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigA)
		expA, sigA = n.exp, n.sig
	}
	if denB {
		st.Raise(FlagDenormal)
		n := normSubnormalExtF80Sig(sigB)
		expB, sigB = n.exp, n.sig
	}

	expP := expA + expB - 0x3FFE
	p := mul64To128(sigA, sigB)
	if int64(p.hi) >= 0 {
		p = shortShiftLeft128(p, 1)
		expP--
	}
	signZ := signP
	if sigC == 0 {
		return roundPackToExtF80(signZ, expP, p.hi, p.lo, st)
	}

	// Both significands with the integer bit at position 254.
	sigP := uint256{p.hi >> 1, p.hi<<63 | p.lo>>1, p.lo << 63, 0}
	bigC := uint256{sigC >> 1, sigC << 63, 0, 0}
	expDiff := expP - expC
	expZ := expP
	switch {
	case expDiff > 0:
		bigC = shiftRightJam256(bigC, uint(expDiff))
	case expDiff < 0:
		sigP = shiftRightJam256(sigP, uint(-expDiff))
		expZ = expC
	}
	var z uint256
	switch {
	case signP == signC:
		z = add256(sigP, bigC)
	case lt256(bigC, sigP):
		z = sub256(sigP, bigC)
	case lt256(sigP, bigC):
		z = sub256(bigC, sigP)
		signZ = !signZ
	default:
		return packToExtF80(st.RoundingMode == RoundDown, 0, 0)
	}
	shift := countLeadingZeros256(z)
	z = shiftLeft256(z, uint(shift))
	expZ += 1 - shift
	return roundPackToExtF80(signZ, expZ, z[0], z[1]|b2u64(z[2]|z[3] != 0), st)
}

// zeroSumSign is the sign of an exact sum of two zeros: the common sign,
// or the rounding-direction sign when they differ.
func zeroSumSign(signP, signC bool, st *Status) bool {
	if signP == signC {
		return signP
	}
	return st.RoundingMode == RoundDown
}

// x86 FMA instruction forms.

func F16FMAdd(a, b, c Float16, st *Status) Float16  { return F16MulAdd(a, b, c, MulAdd, st) }
func F16FMSub(a, b, c Float16, st *Status) Float16  { return F16MulAdd(a, b, c, MulAddSubC, st) }
func F16FNMAdd(a, b, c Float16, st *Status) Float16 { return F16MulAdd(a, b, c, MulAddSubProd, st) }
func F16FNMSub(a, b, c Float16, st *Status) Float16 {
	return F16MulAdd(a, b, c, MulAddNegateResult, st)
}

func F32FMAdd(a, b, c Float32, st *Status) Float32  { return F32MulAdd(a, b, c, MulAdd, st) }
func F32FMSub(a, b, c Float32, st *Status) Float32  { return F32MulAdd(a, b, c, MulAddSubC, st) }
func F32FNMAdd(a, b, c Float32, st *Status) Float32 { return F32MulAdd(a, b, c, MulAddSubProd, st) }
func F32FNMSub(a, b, c Float32, st *Status) Float32 {
	return F32MulAdd(a, b, c, MulAddNegateResult, st)
}

func F64FMAdd(a, b, c Float64, st *Status) Float64  { return F64MulAdd(a, b, c, MulAdd, st) }
func F64FMSub(a, b, c Float64, st *Status) Float64  { return F64MulAdd(a, b, c, MulAddSubC, st) }
func F64FNMAdd(a, b, c Float64, st *Status) Float64 { return F64MulAdd(a, b, c, MulAddSubProd, st) }
func F64FNMSub(a, b, c Float64, st *Status) Float64 {
	return F64MulAdd(a, b, c, MulAddNegateResult, st)
}

func ExtF80FMAdd(a, b, c ExtFloat80, st *Status) ExtFloat80 {
	return ExtF80MulAdd(a, b, c, MulAdd, st)
}

func ExtF80FMSub(a, b, c ExtFloat80, st *Status) ExtFloat80 {
	return ExtF80MulAdd(a, b, c, MulAddSubC, st)
}

func ExtF80FNMAdd(a, b, c ExtFloat80, st *Status) ExtFloat80 {
	return ExtF80MulAdd(a, b, c, MulAddSubProd, st)
}

func ExtF80FNMSub(a, b, c ExtFloat80, st *Status) ExtFloat80 {
	return ExtF80MulAdd(a, b, c, MulAddNegateResult, st)
}
