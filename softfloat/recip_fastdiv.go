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

//go:build !softfloat_slowdiv

package softfloat

// FastDiv reports whether the package was built to use native 64/32
// division for reciprocal seeds.
const FastDiv = true

// approxRecip32_1 approximates 1/A where A is a, with bit 31 set, read as a
// fixed-point number in [1, 2). The result has 32 fraction bits and an
// implicit leading 1. It never exceeds the true reciprocal.
func approxRecip32_1(a uint32) uint32 {
	return uint32(0x7FFFFFFFFFFFFFFF / uint64(a))
}

// f32DivSig divides the binary32 significands sigA and sigB (implicit bit
// at 23) and returns the quotient with the implicit bit at 30, the
// rounding bits below it and a sticky LSB. expZ is decremented when
// sigA < sigB.
func f32DivSig(sigA, sigB uint32, expZ int) (uint32, int) {
	var sig64A uint64
	if sigA < sigB {
		expZ--
		sig64A = uint64(sigA) << 31
	} else {
		sig64A = uint64(sigA) << 30
	}
	sigZ := sig64A / uint64(sigB)
	if sigZ&0x3F == 0 {
		sigZ |= b2u64(uint64(sigB)*sigZ != sig64A)
	}
	return uint32(sigZ), expZ
}
