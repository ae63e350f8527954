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

// Fixed-width integer building blocks. None of these raise exceptions.
//
// Shift distances are unsigned. Go defines shifts by the full width or more
// as producing zero, which the jam helpers below rely on for dist == 0.

// uint128 is a 128-bit unsigned integer.
type uint128 struct {
	hi, lo uint64
}

// uint64Extra is a 64-bit value plus the bits shifted out below it.
type uint64Extra struct {
	v, extra uint64
}

// uint128Extra is a 128-bit value plus the bits shifted out below it.
type uint128Extra struct {
	v     uint128
	extra uint64
}

// uint256 is a 256-bit unsigned integer, most significant word first.
type uint256 [4]uint64

// shortShiftRightJam64 shifts a right by 1..63 bits, ORing any lost bits
// into the least significant bit.
func shortShiftRightJam64(a uint64, dist uint) uint64 {
	return a>>dist | b2u64(a&(1<<dist-1) != 0)
}

// shiftRightJam32 shifts a right by any distance, jamming lost bits.
// Distances of 32 or more return 0 or 1.
func shiftRightJam32(a uint32, dist uint) uint32 {
	if dist < 31 {
		return a>>dist | b2u32(a<<(32-dist) != 0)
	}
	return b2u32(a != 0)
}

// shiftRightJam64 shifts a right by any distance, jamming lost bits.
func shiftRightJam64(a uint64, dist uint) uint64 {
	if dist < 63 {
		return a>>dist | b2u64(a<<(64-dist) != 0)
	}
	return b2u64(a != 0)
}

// shortShiftRightJam64Extra shifts the 128-bit value a:extra right by 1..63
// bits. The bits leaving a land in extra; any bit leaving extra is jammed.
func shortShiftRightJam64Extra(a, extra uint64, dist uint) uint64Extra {
	return uint64Extra{
		v:     a >> dist,
		extra: a<<(64-dist) | b2u64(extra != 0),
	}
}

// shiftRightJam64Extra is shortShiftRightJam64Extra for any distance.
func shiftRightJam64Extra(a, extra uint64, dist uint) uint64Extra {
	var z uint64Extra
	switch {
	case dist == 0:
		return uint64Extra{v: a, extra: extra}
	case dist < 64:
		z.v = a >> dist
		z.extra = a << (64 - dist)
	case dist == 64:
		z.extra = a
	default:
		z.extra = b2u64(a != 0)
	}
	z.extra |= b2u64(extra != 0)
	return z
}

// shortShiftLeft128 shifts a left by 0..63 bits.
func shortShiftLeft128(a uint128, dist uint) uint128 {
	return uint128{
		hi: a.hi<<dist | a.lo>>(64-dist),
		lo: a.lo << dist,
	}
}

// shortShiftRight128 shifts a right by 0..63 bits.
func shortShiftRight128(a uint128, dist uint) uint128 {
	return uint128{
		hi: a.hi >> dist,
		lo: a.hi<<(64-dist) | a.lo>>dist,
	}
}

// shortShiftRightJam128 shifts a right by 1..63 bits with jamming.
func shortShiftRightJam128(a uint128, dist uint) uint128 {
	return uint128{
		hi: a.hi >> dist,
		lo: a.hi<<(64-dist) | a.lo>>dist | b2u64(a.lo<<(64-dist) != 0),
	}
}

// shortShiftRightJam128Extra shifts a:extra right by 1..63 bits.
func shortShiftRightJam128Extra(a uint128, extra uint64, dist uint) uint128Extra {
	return uint128Extra{
		v: uint128{
			hi: a.hi >> dist,
			lo: a.hi<<(64-dist) | a.lo>>dist,
		},
		extra: a.lo<<(64-dist) | b2u64(extra != 0),
	}
}

// shiftRightJam128 shifts a right by any distance with jamming.
func shiftRightJam128(a uint128, dist uint) uint128 {
	if dist < 64 {
		return uint128{
			hi: a.hi >> dist,
			lo: a.hi<<(64-dist) | a.lo>>dist | b2u64(a.lo<<(64-dist) != 0),
		}
	}
	if dist < 127 {
		d := dist & 63
		return uint128{lo: a.hi>>d | b2u64((a.hi&(1<<d-1))|a.lo != 0)}
	}
	return uint128{lo: b2u64(a.hi|a.lo != 0)}
}

// shiftRightJam128Extra shifts a:extra right by any distance. Bits leaving
// a land in extra; bits leaving extra are jammed into its LSB.
func shiftRightJam128Extra(a uint128, extra uint64, dist uint) uint128Extra {
	var z uint128Extra
	switch {
	case dist == 0:
		return uint128Extra{v: a, extra: extra}
	case dist < 64:
		z.v.hi = a.hi >> dist
		z.v.lo = a.hi<<(64-dist) | a.lo>>dist
		z.extra = a.lo << (64 - dist)
	case dist == 64:
		z.v.lo = a.hi
		z.extra = a.lo
	default:
		extra |= a.lo
		switch {
		case dist < 128:
			d := dist & 63
			z.v.lo = a.hi >> d
			z.extra = a.hi << (64 - d)
		case dist == 128:
			z.extra = a.hi
		default:
			z.extra = b2u64(a.hi != 0)
		}
	}
	z.extra |= b2u64(extra != 0)
	return z
}

func eq128(a, b uint128) bool {
	return a.hi == b.hi && a.lo == b.lo
}

func le128(a, b uint128) bool {
	return a.hi < b.hi || (a.hi == b.hi && a.lo <= b.lo)
}

func lt128(a, b uint128) bool {
	return a.hi < b.hi || (a.hi == b.hi && a.lo < b.lo)
}

// add128 returns a+b modulo 2^128.
func add128(a, b uint128) uint128 {
	lo := a.lo + b.lo
	return uint128{hi: a.hi + b.hi + b2u64(lo < a.lo), lo: lo}
}

// sub128 returns a-b modulo 2^128.
func sub128(a, b uint128) uint128 {
	return uint128{hi: a.hi - b.hi - b2u64(a.lo < b.lo), lo: a.lo - b.lo}
}

// add256 returns a+b modulo 2^256.
func add256(a, b uint256) uint256 {
	var z uint256
	var carry uint64
	for i := 3; i >= 0; i-- {
		s := a[i] + carry
		c := b2u64(s < carry)
		s += b[i]
		c += b2u64(s < b[i])
		z[i] = s
		carry = c
	}
	return z
}

// sub256 returns a-b modulo 2^256.
func sub256(a, b uint256) uint256 {
	var z uint256
	var borrow uint64
	for i := 3; i >= 0; i-- {
		d := a[i] - b[i]
		nb := b2u64(a[i] < b[i])
		nb += b2u64(d < borrow)
		z[i] = d - borrow
		borrow = nb
	}
	return z
}

func lt256(a, b uint256) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func isZero256(a uint256) bool {
	return a[0]|a[1]|a[2]|a[3] == 0
}

// shiftRightJam256 shifts a right by any distance, jamming every lost bit
// into the least significant bit.
func shiftRightJam256(a uint256, dist uint) uint256 {
	if dist == 0 {
		return a
	}
	if dist >= 256 {
		return uint256{0, 0, 0, b2u64(!isZero256(a))}
	}
	words := int(dist / 64)
	bitsN := dist % 64
	var sticky uint64
	for i := 4 - words; i < 4; i++ {
		sticky |= a[i]
	}
	var z uint256
	for i := 3; i >= words; i-- {
		src := i - words
		z[i] = a[src] >> bitsN
		if src > 0 {
			z[i] |= a[src-1] << (64 - bitsN)
		}
	}
	sticky |= a[3-words] & (1<<bitsN - 1)
	z[3] |= b2u64(sticky != 0)
	return z
}

// shiftLeft256 shifts a left by 0..255 bits.
func shiftLeft256(a uint256, dist uint) uint256 {
	words := int(dist / 64)
	bitsN := dist % 64
	var z uint256
	for i := 0; i+words < 4; i++ {
		src := i + words
		z[i] = a[src] << bitsN
		if src < 3 {
			z[i] |= a[src+1] >> (64 - bitsN)
		}
	}
	return z
}

// countLeadingZeros256 returns the number of leading zero bits in a.
func countLeadingZeros256(a uint256) int {
	for i, w := range a {
		if w != 0 {
			return 64*i + countLeadingZeros64(w)
		}
	}
	return 256
}

// mul64ByShifted32To128 returns a * (b << 32).
func mul64ByShifted32To128(a uint64, b uint32) uint128 {
	mid := uint64(uint32(a)) * uint64(b)
	return uint128{
		hi: (a>>32)*uint64(b) + mid>>32,
		lo: mid << 32,
	}
}

// mul64To128 returns the full product of a and b from 32x32 partials.
func mul64To128(a, b uint64) uint128 {
	a32, a0 := a>>32, a&0xFFFFFFFF
	b32, b0 := b>>32, b&0xFFFFFFFF
	var z uint128
	z.lo = a0 * b0
	mid1 := a32 * b0
	mid := mid1 + a0*b32
	z.hi = a32 * b32
	z.hi += b2u64(mid < mid1)<<32 | mid>>32
	mid <<= 32
	z.lo += mid
	z.hi += b2u64(z.lo < mid)
	return z
}

// mul128By32 returns a*b modulo 2^128.
func mul128By32(a uint128, b uint32) uint128 {
	var z uint128
	z.lo = a.lo * uint64(b)
	mid := uint64(uint32(a.lo>>32)) * uint64(b)
	carry := uint64(uint32(z.lo>>32) - uint32(mid))
	z.hi = a.hi*uint64(b) + (mid+carry)>>32
	return z
}

// mul128To256 returns the full 256-bit product of a and b.
func mul128To256(a, b uint128) uint256 {
	var z uint256
	p0 := mul64To128(a.lo, b.lo)
	z[3] = p0.lo
	p64 := mul64To128(a.hi, b.lo)
	z64 := p64.lo + p0.hi
	z128 := p64.hi + b2u64(z64 < p64.lo)
	p128 := mul64To128(a.hi, b.hi)
	z128 += p128.lo
	z192 := p128.hi + b2u64(z128 < p128.lo)
	p64 = mul64To128(a.lo, b.hi)
	z64 += p64.lo
	z[2] = z64
	p64.hi += b2u64(z64 < p64.lo)
	z128 += p64.hi
	z[1] = z128
	z[0] = z192 + b2u64(z128 < p64.hi)
	return z
}

// estimateDiv128To64 approximates floor((a0:a1) / b) where b has bit 63 set
// and a0 < b. The estimate is never below the true quotient and exceeds it
// by at most 2. If a0 >= b the result saturates to all ones.
func estimateDiv128To64(a0, a1, b uint64) uint64 {
	if b <= a0 {
		return ^uint64(0)
	}
	b0 := b >> 32
	var z uint64
	if b0<<32 <= a0 {
		z = 0xFFFFFFFF00000000
	} else {
		z = (a0 / b0) << 32
	}
	rem := sub128(uint128{hi: a0, lo: a1}, mul64To128(b, z))
	for int64(rem.hi) < 0 {
		z -= 0x100000000
		rem = add128(rem, uint128{hi: b0, lo: b << 32})
	}
	rem0 := rem.hi<<32 | rem.lo>>32
	if b0<<32 <= rem0 {
		z |= 0xFFFFFFFF
	} else {
		z |= rem0 / b0
	}
	return z
}
