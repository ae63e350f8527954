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

// Piecewise-linear seeds for the reciprocal square root, indexed by the top
// three fraction bits and the exponent parity.
var (
	approxRecipSqrt1K0s = [16]uint16{
		0xB4C9, 0xFFAB, 0xAA7D, 0xF11C, 0xA1C5, 0xE4C7, 0x9A43, 0xDA29,
		0x93B5, 0xD0E5, 0x8DED, 0xC8B7, 0x88C6, 0xC16D, 0x8424, 0xBAE1,
	}
	approxRecipSqrt1K1s = [16]uint16{
		0xA5A5, 0xEA42, 0x8C21, 0xC62D, 0x788F, 0xAA7F, 0x6928, 0x94B6,
		0x5CC7, 0x8335, 0x52A6, 0x74E2, 0x4A3E, 0x68FE, 0x432B, 0x5EFD,
	}
)

// approxRecipSqrt32_1 approximates 1/sqrt(A) where A is a, with bit 31 set,
// read as a fixed-point number in [1, 2) when oddExpA is 1 and in [2, 4)
// when it is 0. The result has 32 fraction bits and an implicit leading 1,
// so it lies in [2^31, 2^32). It never exceeds the true value and is within
// 2.06 ulp of it.
func approxRecipSqrt32_1(oddExpA uint, a uint32) uint32 {
	index := (a>>27)&0xE + uint32(oddExpA)
	eps := uint16(a >> 12)
	r0 := uint32(approxRecipSqrt1K0s[index]) -
		(uint32(approxRecipSqrt1K1s[index])*uint32(eps))>>20
	eSqrR0 := r0 * r0
	if oddExpA == 0 {
		eSqrR0 <<= 1
	}
	sigma0 := ^uint32((uint64(eSqrR0) * uint64(a)) >> 23)
	r := uint64(r0)<<16 + (uint64(r0)*uint64(sigma0))>>25
	sqrSigma0 := uint32((uint64(sigma0) * uint64(sigma0)) >> 32)
	r += (uint64(uint32(r>>1+r>>3-uint64(r0)<<14)) * uint64(sqrSigma0)) >> 48
	if r&0x80000000 == 0 {
		r = 0x80000000
	}
	return uint32(r)
}
