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

import (
	"math/big"
	"math/bits"
	"math/rand/v2"
	"testing"
)

func refJam64(a uint64, dist uint) uint64 {
	if dist >= 64 {
		return b2u64(a != 0)
	}
	return a>>dist | b2u64(a&(1<<dist-1) != 0)
}

func toBig256(a uint256) *big.Int {
	z := new(big.Int)
	for _, w := range a {
		z.Lsh(z, 64)
		z.Or(z, new(big.Int).SetUint64(w))
	}
	return z
}

func fromBig256(z *big.Int) uint256 {
	var a uint256
	mask := new(big.Int).SetUint64(^uint64(0))
	t := new(big.Int).Set(z)
	for i := 3; i >= 0; i-- {
		a[i] = new(big.Int).And(t, mask).Uint64()
		t.Rsh(t, 64)
	}
	return a
}

var primitiveSamples = []uint64{
	0, 1, 2, 3, 0x80, 0xFF, 0x8000000000000000, 0x8000000000000001,
	0xFFFFFFFFFFFFFFFF, 0x7FFFFFFFFFFFFFFF, 0x0123456789ABCDEF, 0x00000000FFFFFFFF,
}

func TestShiftRightJam(t *testing.T) {
	for _, a := range primitiveSamples {
		for dist := uint(0); dist <= 70; dist++ {
			if got, want := shiftRightJam64(a, dist), refJam64(a, dist); got != want {
				t.Errorf("shiftRightJam64(%#x, %d) = %#x, want %#x", a, dist, got, want)
			}
			a32 := uint32(a)
			want32 := uint32(refJam64(uint64(a32), dist))
			if dist >= 32 {
				want32 = b2u32(a32 != 0)
			}
			if got := shiftRightJam32(a32, dist); got != want32 {
				t.Errorf("shiftRightJam32(%#x, %d) = %#x, want %#x", a32, dist, got, want32)
			}
			if dist >= 1 && dist <= 63 {
				if got, want := shortShiftRightJam64(a, dist), refJam64(a, dist); got != want {
					t.Errorf("shortShiftRightJam64(%#x, %d) = %#x, want %#x", a, dist, got, want)
				}
			}
		}
	}
}

func TestShiftRightJam64Extra(t *testing.T) {
	for _, a := range primitiveSamples {
		for _, extra := range []uint64{0, 1, 0x8000000000000000} {
			for dist := uint(1); dist <= 130; dist++ {
				// Bits of a move into extra; the old extra only survives as
				// the sticky bit.
				var want uint64Extra
				switch {
				case dist < 64:
					want = uint64Extra{v: a >> dist, extra: a << (64 - dist)}
				case dist == 64:
					want = uint64Extra{extra: a}
				default:
					want = uint64Extra{extra: b2u64(a != 0)}
				}
				want.extra |= b2u64(extra != 0)
				if got := shiftRightJam64Extra(a, extra, dist); got != want {
					t.Errorf("shiftRightJam64Extra(%#x, %#x, %d) = %+v, want %+v", a, extra, dist, got, want)
				}
			}
			if got := shiftRightJam64Extra(a, extra, 0); got != (uint64Extra{a, extra}) {
				t.Errorf("shiftRightJam64Extra(%#x, %#x, 0) = %+v", a, extra, got)
			}
		}
	}
}

func TestShiftRightJam128(t *testing.T) {
	samples := []uint128{
		{0, 0}, {0, 1}, {1, 0}, {0x8000000000000000, 0}, {0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF},
		{0x0123456789ABCDEF, 0xFEDCBA9876543210}, {0, 0x8000000000000000},
	}
	for _, a := range samples {
		big128 := new(big.Int).Lsh(new(big.Int).SetUint64(a.hi), 64)
		big128.Or(big128, new(big.Int).SetUint64(a.lo))
		for dist := uint(0); dist <= 140; dist++ {
			want := new(big.Int).Rsh(big128, dist)
			if new(big.Int).Lsh(want, dist).Cmp(big128) != 0 {
				want.SetBit(want, 0, 1)
			}
			got := shiftRightJam128(a, dist)
			gotBig := new(big.Int).Lsh(new(big.Int).SetUint64(got.hi), 64)
			gotBig.Or(gotBig, new(big.Int).SetUint64(got.lo))
			if gotBig.Cmp(want) != 0 {
				t.Errorf("shiftRightJam128(%x:%x, %d) = %x:%x, want %x", a.hi, a.lo, dist, got.hi, got.lo, want)
			}
		}
	}
}

func TestMul64To128(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		a, b := r.Uint64(), r.Uint64()
		hi, lo := bits.Mul64(a, b)
		if got := mul64To128(a, b); got.hi != hi || got.lo != lo {
			t.Fatalf("mul64To128(%#x, %#x) = %x:%x, want %x:%x", a, b, got.hi, got.lo, hi, lo)
		}
		b32 := uint32(b)
		hi, lo = bits.Mul64(a, uint64(b32)<<32)
		if got := mul64ByShifted32To128(a, b32); got.hi != hi || got.lo != lo {
			t.Fatalf("mul64ByShifted32To128(%#x, %#x) = %x:%x, want %x:%x", a, b32, got.hi, got.lo, hi, lo)
		}
	}
}

func TestAddSub128(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 10000; i++ {
		a := uint128{r.Uint64(), r.Uint64()}
		b := uint128{r.Uint64(), r.Uint64()}
		lo, c := bits.Add64(a.lo, b.lo, 0)
		hi, _ := bits.Add64(a.hi, b.hi, c)
		if got := add128(a, b); got != (uint128{hi, lo}) {
			t.Fatalf("add128 mismatch for %v + %v", a, b)
		}
		lo, br := bits.Sub64(a.lo, b.lo, 0)
		hi, _ = bits.Sub64(a.hi, b.hi, br)
		if got := sub128(a, b); got != (uint128{hi, lo}) {
			t.Fatalf("sub128 mismatch for %v - %v", a, b)
		}
		if lt128(a, b) != (a.hi < b.hi || (a.hi == b.hi && a.lo < b.lo)) {
			t.Fatalf("lt128 mismatch for %v, %v", a, b)
		}
		if !le128(a, a) || lt128(a, a) || !eq128(a, a) {
			t.Fatalf("reflexive comparisons failed for %v", a)
		}
	}
}

func TestUint256(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	for i := 0; i < 2000; i++ {
		a := uint256{r.Uint64(), r.Uint64(), r.Uint64(), r.Uint64()}
		b := uint256{r.Uint64() >> (r.Uint64() % 64), r.Uint64(), r.Uint64(), r.Uint64()}
		ba, bb := toBig256(a), toBig256(b)

		sum := new(big.Int).Add(ba, bb)
		sum.Mod(sum, mod)
		if got := add256(a, b); got != fromBig256(sum) {
			t.Fatalf("add256(%x, %x) = %x, want %x", a, b, got, fromBig256(sum))
		}
		diff := new(big.Int).Sub(ba, bb)
		diff.Mod(diff, mod)
		if got := sub256(a, b); got != fromBig256(diff) {
			t.Fatalf("sub256(%x, %x) = %x, want %x", a, b, got, fromBig256(diff))
		}
		if lt256(a, b) != (ba.Cmp(bb) < 0) {
			t.Fatalf("lt256(%x, %x) wrong", a, b)
		}

		dist := uint(r.IntN(260))
		want := new(big.Int).Rsh(ba, dist)
		if new(big.Int).Lsh(want, dist).Cmp(ba) != 0 {
			want.SetBit(want, 0, 1)
		}
		if got := shiftRightJam256(a, dist); got != fromBig256(want) {
			t.Fatalf("shiftRightJam256(%x, %d) = %x, want %x", a, dist, got, fromBig256(want))
		}
		if dist < 256 {
			shl := new(big.Int).Lsh(ba, dist)
			shl.Mod(shl, mod)
			if got := shiftLeft256(a, dist); got != fromBig256(shl) {
				t.Fatalf("shiftLeft256(%x, %d) = %x, want %x", a, dist, got, fromBig256(shl))
			}
		}
		if got, want := countLeadingZeros256(a), 256-ba.BitLen(); got != want {
			t.Fatalf("countLeadingZeros256(%x) = %d, want %d", a, got, want)
		}
	}
}

func TestMul128To256(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 2000; i++ {
		a := uint128{r.Uint64(), r.Uint64()}
		b := uint128{r.Uint64(), r.Uint64()}
		ba := toBig256(uint256{0, 0, a.hi, a.lo})
		bb := toBig256(uint256{0, 0, b.hi, b.lo})
		want := fromBig256(new(big.Int).Mul(ba, bb))
		if got := mul128To256(a, b); got != want {
			t.Fatalf("mul128To256(%v, %v) = %x, want %x", a, b, got, want)
		}
	}
}

func TestCountLeadingZeros(t *testing.T) {
	for i := 0; i < 256; i++ {
		if got, want := countLeadingZeros8(uint8(i)), bits.LeadingZeros8(uint8(i)); got != want {
			t.Errorf("countLeadingZeros8(%#x) = %d, want %d", i, got, want)
		}
	}
	for i := 0; i < 1<<16; i++ {
		if got, want := countLeadingZeros16(uint16(i)), bits.LeadingZeros16(uint16(i)); got != want {
			t.Fatalf("countLeadingZeros16(%#x) = %d, want %d", i, got, want)
		}
	}
	r := rand.New(rand.NewPCG(9, 10))
	for i := 0; i < 10000; i++ {
		v := r.Uint64() >> (r.Uint64() % 64)
		if got, want := countLeadingZeros64(v), bits.LeadingZeros64(v); got != want {
			t.Fatalf("countLeadingZeros64(%#x) = %d, want %d", v, got, want)
		}
		if got, want := countLeadingZeros32(uint32(v)), bits.LeadingZeros32(uint32(v)); got != want {
			t.Fatalf("countLeadingZeros32(%#x) = %d, want %d", uint32(v), got, want)
		}
	}
}

func TestEstimateDiv128To64(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	for i := 0; i < 10000; i++ {
		b := r.Uint64() | 1<<63
		a0 := r.Uint64() % b
		a1 := r.Uint64()
		q, _ := bits.Div64(a0, a1, b)
		est := estimateDiv128To64(a0, a1, b)
		if est < q || est-q > 2 {
			t.Fatalf("estimateDiv128To64(%#x, %#x, %#x) = %#x, true quotient %#x", a0, a1, b, est, q)
		}
	}
	if got := estimateDiv128To64(1<<63, 0, 1<<63); got != ^uint64(0) {
		t.Errorf("saturated estimate = %#x, want all ones", got)
	}
}

func TestApproxRecip(t *testing.T) {
	// approxRecip32_1(a) ~ 2^63/a for a with bit 31 set.
	r := rand.New(rand.NewPCG(13, 14))
	for i := 0; i < 10000; i++ {
		a := r.Uint32() | 1<<31 | 1
		exact := (uint64(1) << 63) / uint64(a)
		got := uint64(approxRecip32_1(a))
		diff := int64(exact) - int64(got)
		if diff < -4 || diff > 4 {
			t.Fatalf("approxRecip32_1(%#x) = %#x, exact %#x", a, got, exact)
		}
	}
}
