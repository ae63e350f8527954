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
	"math/rand/v2"
	"testing"
)

func TestCompare(t *testing.T) {
	const (
		one    Float32 = 0x3F800000
		two    Float32 = 0x40000000
		negTwo Float32 = 0xC0000000
		posZ   Float32 = 0
		negZ   Float32 = 0x80000000
		inf    Float32 = 0x7F800000
		qnan   Float32 = 0x7FC00000
		snan   Float32 = 0x7F800001
		denorm Float32 = 0x00000001
	)
	tests := []struct {
		name      string
		a, b      Float32
		quiet     bool
		want      Relation
		wantFlags Flags
	}{
		{"Less", one, two, true, RelationLess, 0},
		{"Greater", two, one, true, RelationGreater, 0},
		{"NegativeLess", negTwo, one, true, RelationLess, 0},
		{"NegativeOrder", negTwo, negZ, true, RelationLess, 0},
		{"SignedZeros", negZ, posZ, true, RelationEqual, 0},
		{"Infinity", inf, two, true, RelationGreater, 0},
		{"QuietNaN", qnan, one, true, RelationUnordered, 0},
		{"QuietNaNSignaling", one, qnan, false, RelationUnordered, FlagInvalid},
		{"SignalingNaNQuiet", snan, one, true, RelationUnordered, FlagInvalid},
		{"Denormal", denorm, posZ, true, RelationGreater, FlagDenormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStatus()
			if got := F32Compare(tt.a, tt.b, tt.quiet, st); got != tt.want {
				t.Errorf("F32Compare(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if st.Flags != tt.wantFlags {
				t.Errorf("flags = %v, want %v", st.Flags, tt.wantFlags)
			}
		})
	}

	st := NewStatus()
	st.DenormalsAreZeros = true
	if got := F32CompareQuiet(denorm, negZ, st); got != RelationEqual || st.Flags != 0 {
		t.Errorf("DAZ compare = %v flags %v", got, st.Flags)
	}
}

func TestCompareAgainstHost(t *testing.T) {
	r := rand.New(rand.NewPCG(41, 42))
	for i := 0; i < 100000; i++ {
		a, b := Float64(r.Uint64()), Float64(r.Uint64())
		if i%3 == 0 {
			b = a ^ Float64(r.Uint64()&0x8000000000000003)
		}
		x, y := a.Host(), b.Host()
		var want Relation
		switch {
		case x != x || y != y:
			want = RelationUnordered
		case x < y:
			want = RelationLess
		case x > y:
			want = RelationGreater
		default:
			want = RelationEqual
		}
		if got := F64CompareQuiet(a, b, NewStatus()); got != want {
			t.Fatalf("F64CompareQuiet(%v, %v) = %v, want %v", a, b, got, want)
		}
		ea, eb := F64ToExtF80(a, NewStatus()), F64ToExtF80(b, NewStatus())
		if got := ExtF80CompareQuiet(ea, eb, NewStatus()); got != want {
			t.Fatalf("ExtF80CompareQuiet(%v, %v) = %v, want %v", ea, eb, got, want)
		}
		ha, hb := F64ToF16(a, NewStatus()), F64ToF16(b, NewStatus())
		hx, hy := F16ToF64(ha, NewStatus()).Host(), F16ToF64(hb, NewStatus()).Host()
		var hwant Relation
		switch {
		case hx != hx || hy != hy:
			hwant = RelationUnordered
		case hx < hy:
			hwant = RelationLess
		case hx > hy:
			hwant = RelationGreater
		default:
			hwant = RelationEqual
		}
		if got := F16CompareQuiet(ha, hb, NewStatus()); got != hwant {
			t.Fatalf("F16CompareQuiet(%v, %v) = %v, want %v", ha, hb, got, hwant)
		}
	}
}

func TestExtF80ComparePseudoDenormal(t *testing.T) {
	pseudo := ExtFloat80{SignExp: 0, Signif: 0x8000000000000000}
	smallest := ExtFloat80{SignExp: 1, Signif: 0x8000000000000000}
	st := NewStatus()
	if got := ExtF80CompareQuiet(pseudo, smallest, st); got != RelationEqual {
		t.Errorf("pseudo-denormal vs 2^-16382 = %v", got)
	}
	if st.Flags != FlagDenormal {
		t.Errorf("flags = %v, want denormal", st.Flags)
	}
	st.Clear()
	unnormal := ExtFloat80{SignExp: 0x3FFF, Signif: 0x4000000000000000}
	if got := ExtF80CompareQuiet(unnormal, extOne, st); got != RelationUnordered || st.Flags != FlagInvalid {
		t.Errorf("unnormal compare = %v flags %v", got, st.Flags)
	}
}

func TestMinMax(t *testing.T) {
	const (
		one  Float32 = 0x3F800000
		posZ Float32 = 0
		negZ Float32 = 0x80000000
		qnan Float32 = 0x7FC00000
		snan Float32 = 0x7F800001
	)
	st := NewStatus()
	if got := F32Min(posZ, negZ, st); got != negZ {
		t.Errorf("min(+0, -0) = %v, want second operand", got)
	}
	if got := F32Max(negZ, posZ, st); got != posZ {
		t.Errorf("max(-0, +0) = %v, want second operand", got)
	}
	if got := F32Min(qnan, one, st); got != one {
		t.Errorf("min(NaN, 1) = %v, want 1", got)
	}
	if got := F32Max(one, qnan, st); got != qnan {
		t.Errorf("max(1, NaN) = %v, want NaN", got)
	}
	if st.Flags != FlagInvalid {
		t.Errorf("MINSS/MAXSS on NaN flags = %v, want invalid", st.Flags)
	}

	st.Clear()
	if got := F32MinMax(qnan, one, false, false, st); got != one || st.Flags != 0 {
		t.Errorf("minNum(qNaN, 1) = %v flags %v", got, st.Flags)
	}
	if got := F32MinMax(snan, one, true, false, st); got != 0x7FC00001 || st.Flags != FlagInvalid {
		t.Errorf("maxNum(sNaN, 1) = %v flags %v", got, st.Flags)
	}
	st.Clear()
	if got := F32MinMax(F32(-3), F32(2), false, true, st); got != F32(2) {
		t.Errorf("minAbs(-3, 2) = %v", got)
	}
	if got := F32MinMax(F32(-3), F32(2), true, true, st); got != F32(-3) {
		t.Errorf("maxAbs(-3, 2) = %v", got)
	}
	if got := F64MinMax(F64(-1), F64(4), false, false, st); got != F64(-1) {
		t.Errorf("min(-1, 4) = %v", got)
	}
	if got := F16MinMax(0x4000, 0x3C00, true, false, st); got != 0x4000 {
		t.Errorf("f16 max(2, 1) = %v", got)
	}
}

func TestComparePredicates(t *testing.T) {
	if len(comparePredicates) != 32 {
		t.Fatalf("%d predicates, want 32", len(comparePredicates))
	}
	for i := range comparePredicates {
		p := ComparePredicate(i)
		back, ok := ParseComparePredicate(p.String())
		if !ok || back != p {
			t.Errorf("ParseComparePredicate(%q) = %d, %v", p.String(), back, ok)
		}
		// Predicates 16..31 repeat 0..15 with the signaling behaviour
		// flipped.
		if i < 16 {
			q := ComparePredicate(i + 16)
			for _, r := range []Relation{RelationLess, RelationEqual, RelationGreater, RelationUnordered} {
				if p.Holds(r) != q.Holds(r) {
					t.Errorf("%v and %v disagree on %v", p, q, r)
				}
			}
			if p.Quiet() == q.Quiet() {
				t.Errorf("%v and %v have the same signaling behaviour", p, q)
			}
		}
		// Predicate i+4 (mod 8 within each group) is the negation of i.
		if i%8 < 4 {
			n := ComparePredicate(i + 4)
			for _, r := range []Relation{RelationLess, RelationEqual, RelationGreater, RelationUnordered} {
				if p.Holds(r) == n.Holds(r) {
					t.Errorf("%v is not the negation of %v on %v", n, p, r)
				}
			}
		}
	}

	const one, two, qnan Float32 = 0x3F800000, 0x40000000, 0x7FC00000
	tests := []struct {
		p         ComparePredicate
		a, b      Float32
		want      bool
		wantFlags Flags
	}{
		{CmpLtOS, one, two, true, 0},
		{CmpLtOS, one, qnan, false, FlagInvalid},
		{CmpLtOQ, one, qnan, false, 0},
		{CmpNltUS, one, qnan, true, FlagInvalid},
		{CmpEqOQ, qnan, qnan, false, 0},
		{CmpEqUQ, qnan, qnan, true, 0},
		{CmpUnordQ, qnan, one, true, 0},
		{CmpOrdQ, one, one, true, 0},
		{CmpFalseOQ, one, one, false, 0},
		{CmpTrueUS, qnan, one, true, FlagInvalid},
		{CmpGeOQ, two, one, true, 0},
		{CmpNgtUQ, two, one, false, 0},
		{CmpNeqOQ, one, two, true, 0},
	}
	for _, tt := range tests {
		st := NewStatus()
		if got := F32ComparePredicate(tt.a, tt.b, tt.p, st); got != tt.want {
			t.Errorf("%v(%v, %v) = %v, want %v", tt.p, tt.a, tt.b, got, tt.want)
		}
		if st.Flags != tt.wantFlags {
			t.Errorf("%v(%v, %v) flags = %v, want %v", tt.p, tt.a, tt.b, st.Flags, tt.wantFlags)
		}
	}
}

func TestBigFloat(t *testing.T) {
	if F32(1.5).BigFloat().String() != "1.5" {
		t.Errorf("F32(1.5).BigFloat() = %v", F32(1.5).BigFloat())
	}
	if v, _ := Float16(0x0001).BigFloat().Float64(); v != 0x1p-24 {
		t.Errorf("smallest binary16 subnormal = %g", v)
	}
	if v, _ := extOne.Neg().BigFloat().Float64(); v != -1 {
		t.Errorf("extended -1 = %g", v)
	}
	if !Float64(0xFFF0000000000000).BigFloat().IsInf() {
		t.Error("binary64 -inf is not infinite")
	}
	if DefaultNaNF64.BigFloat() != nil || DefaultNaNExtF80.BigFloat() != nil {
		t.Error("NaNs must not convert")
	}
}
