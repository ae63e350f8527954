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

//go:build softfloat_slowdiv

package softfloat

// FastDiv reports whether the package was built to use native 64/32
// division for reciprocal seeds.
const FastDiv = false

var (
	approxRecip1K0s = [16]uint16{
		0xFFC4, 0xF0BE, 0xE363, 0xD76F, 0xCCAD, 0xC2F0, 0xBA16, 0xB201,
		0xAA97, 0xA3C6, 0x9D7A, 0x97A6, 0x923C, 0x8D32, 0x887E, 0x8417,
	}
	approxRecip1K1s = [16]uint16{
		0xF0F1, 0xD62C, 0xBFA1, 0xAC77, 0x9C0A, 0x8DDB, 0x8185, 0x76BA,
		0x6D3B, 0x64D4, 0x5D5C, 0x56B1, 0x50B6, 0x4B55, 0x4679, 0x4211,
	}
)

// approxRecip32_1 approximates 1/A where A is a, with bit 31 set, read as a
// fixed-point number in [1, 2). A linear seed from the table is refined by
// one Newton-Raphson step with a quadratic correction term.
func approxRecip32_1(a uint32) uint32 {
	index := a >> 27 & 0xF
	eps := uint16(a >> 11)
	r0 := uint32(approxRecip1K0s[index]) -
		(uint32(approxRecip1K1s[index])*uint32(eps))>>20
	sigma0 := ^uint32((uint64(r0) * uint64(a)) >> 7)
	r := uint64(r0)<<16 + (uint64(r0)*uint64(sigma0))>>24
	sqrSigma0 := uint32((uint64(sigma0) * uint64(sigma0)) >> 32)
	r += (uint64(uint32(r)) * uint64(sqrSigma0)) >> 48
	return uint32(r)
}

// f32DivSig divides the binary32 significands sigA and sigB (implicit bit
// at 23) using the reciprocal seed and one remainder correction.
func f32DivSig(sigA, sigB uint32, expZ int) (uint32, int) {
	if sigA < sigB {
		expZ--
		sigA <<= 8
	} else {
		sigA <<= 7
	}
	sigB <<= 8
	sigZ := uint32((uint64(sigA) * uint64(approxRecip32_1(sigB))) >> 32)
	sigZ += 2
	if sigZ&0x3F < 2 {
		sigZ &^= 3
		rem := uint64(sigA)<<31 - uint64(sigZ)*uint64(sigB)
		if rem&0x8000000000000000 != 0 {
			sigZ -= 4
		} else if rem != 0 {
			sigZ |= 1
		}
	}
	return sigZ, expZ
}
