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
	"fmt"
	"math"
	"testing"
)

var (
	extOne    = ExtFloat80{SignExp: 0x3FFF, Signif: 0x8000000000000000}
	extNegOne = ExtFloat80{SignExp: 0xBFFF, Signif: 0x8000000000000000}
	extTwo    = ExtFloat80{SignExp: 0x4000, Signif: 0x8000000000000000}
	extMax    = ExtFloat80{SignExp: 0x7FFE, Signif: 0xFFFFFFFFFFFFFFFF}
	extInf    = ExtFloat80{SignExp: 0x7FFF, Signif: 0x8000000000000000}
)

// TestScenarios covers the canonical results every x86 FPU agrees on.
func TestScenarios(t *testing.T) {
	t.Run("F32MulOne", func(t *testing.T) {
		st := NewStatus()
		if got := F32Mul(0x3F800000, 0x3F800000, st); got != 0x3F800000 {
			t.Errorf("1*1 = %v, want 3f800000", got)
		}
		if st.Flags != 0 {
			t.Errorf("flags = %v, want none", st.Flags)
		}
	})

	t.Run("F32DivByZero", func(t *testing.T) {
		st := NewStatus()
		if got := F32Div(0x3F800000, 0, st); got != 0x7F800000 {
			t.Errorf("1/0 = %v, want 7f800000", got)
		}
		if st.Flags != FlagDivByZero {
			t.Errorf("flags = %v, want %v", st.Flags, FlagDivByZero)
		}
	})

	t.Run("F64ZeroTimesInf", func(t *testing.T) {
		st := NewStatus()
		if got := F64Mul(0, 0x7FF0000000000000, st); got != DefaultNaNF64 {
			t.Errorf("0*inf = %v, want default NaN", got)
		}
		if st.Flags != FlagInvalid {
			t.Errorf("flags = %v, want invalid", st.Flags)
		}
	})

	t.Run("ExtF80SqrtNegative", func(t *testing.T) {
		st := NewStatus()
		if got := ExtF80Sqrt(extNegOne, st); got != DefaultNaNExtF80 {
			t.Errorf("sqrt(-1) = %v, want real indefinite", got)
		}
		if st.Flags != FlagInvalid {
			t.Errorf("flags = %v, want invalid", st.Flags)
		}
	})

	t.Run("F32ToI64Overflow", func(t *testing.T) {
		st := NewStatus()
		if got := F32ToI64(F32(1e19), RoundNearEven, true, st); got != I64Indefinite {
			t.Errorf("F32ToI64(1e19) = %#x, want integer indefinite", got)
		}
		if st.Flags != FlagInvalid {
			t.Errorf("flags = %v, want invalid", st.Flags)
		}
	})
}

func TestNaNPropagation(t *testing.T) {
	const (
		sNaN1 Float32 = 0x7F800001
		qNaN2 Float32 = 0x7FC00002
		qNaN3 Float32 = 0xFFC00003
	)
	tests := []struct {
		name      string
		got       func(st *Status) Float32
		want      Float32
		wantFlags Flags
	}{
		{"SNaNFirst", func(st *Status) Float32 { return F32Add(sNaN1, qNaN2, st) }, 0x7FC00001, FlagInvalid},
		{"QNaNFirstSNaNSecond", func(st *Status) Float32 { return F32Add(qNaN2, sNaN1, st) }, qNaN2, FlagInvalid},
		{"QNaNSecond", func(st *Status) Float32 { return F32Mul(0x3F800000, qNaN3, st) }, qNaN3, 0},
		{"QNaNs", func(st *Status) Float32 { return F32Div(qNaN3, qNaN2, st) }, qNaN3, 0},
		{"SqrtSNaN", func(st *Status) Float32 { return F32Sqrt(sNaN1, st) }, 0x7FC00001, FlagInvalid},
		{"FMAFirstNaN", func(st *Status) Float32 { return F32FMAdd(0x3F800000, qNaN3, qNaN2, st) }, qNaN3, 0},
		{"FMASignaling", func(st *Status) Float32 { return F32FMAdd(qNaN2, 0x3F800000, sNaN1, st) }, qNaN2, FlagInvalid},
		{"FMANegateKeepsNaNSign", func(st *Status) Float32 {
			return F32MulAdd(qNaN2, 0x3F800000, 0, MulAddNegateResult, st)
		}, qNaN2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStatus()
			if got := tt.got(st); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if st.Flags != tt.wantFlags {
				t.Errorf("flags = %v, want %v", st.Flags, tt.wantFlags)
			}
		})
	}
}

func TestExtF80NaNPropagation(t *testing.T) {
	small := ExtFloat80{SignExp: 0x7FFF, Signif: 0xC000000000000001}
	large := ExtFloat80{SignExp: 0xFFFF, Signif: 0xC000000000000100}
	snan := ExtFloat80{SignExp: 0x7FFF, Signif: 0x8000000000000001}

	st := NewStatus()
	if got := ExtF80Add(small, large, st); got != large {
		t.Errorf("larger significand should win: got %v", got)
	}
	if got := ExtF80Add(large, small, st); got != large {
		t.Errorf("larger significand should win regardless of order: got %v", got)
	}
	if st.Flags != 0 {
		t.Errorf("quiet NaNs raised %v", st.Flags)
	}
	if got := ExtF80Mul(snan, extOne, st); got != (ExtFloat80{SignExp: 0x7FFF, Signif: 0xC000000000000001}) {
		t.Errorf("signaling NaN not quieted: %v", got)
	}
	if st.Flags != FlagInvalid {
		t.Errorf("flags = %v, want invalid", st.Flags)
	}

	unnormal := ExtFloat80{SignExp: 0x3FFF, Signif: 0x4000000000000000}
	st.Clear()
	if got := ExtF80Add(unnormal, extOne, st); got != DefaultNaNExtF80 {
		t.Errorf("unnormal operand: got %v, want real indefinite", got)
	}
	if st.Flags != FlagInvalid {
		t.Errorf("flags = %v, want invalid", st.Flags)
	}
}

func TestFMAZeroSign(t *testing.T) {
	const one, negOne Float32 = 0x3F800000, 0xBF800000
	// Each case cancels exactly.
	tests := []struct {
		op MulAddOp
		c  Float32
	}{
		{MulAdd, negOne},
		{MulAddSubC, one},
		{MulAddSubProd, one},
		{MulAddNegateResult, negOne},
	}
	for _, tt := range tests {
		for _, mode := range RoundingModes {
			st := NewStatus()
			st.RoundingMode = mode
			want := Float32(0)
			if mode == RoundDown {
				want = 0x80000000
			}
			if got := F32MulAdd(one, one, tt.c, tt.op, st); got != want {
				t.Errorf("op %d mode %v: got %v, want %v", tt.op, mode, got, want)
			}
			if st.Flags != 0 {
				t.Errorf("op %d mode %v: flags %v", tt.op, mode, st.Flags)
			}
		}
	}

	st := NewStatus()
	st.RoundingMode = RoundDown
	if got := F64MulAdd(0, 0x3FF0000000000000, 0, MulAdd, st); got != 0 {
		t.Errorf("+0*1 + +0 = %v, want +0", got)
	}
	if got := F64MulAdd(0x8000000000000000, 0x3FF0000000000000, 0, MulAdd, st); got != 0x8000000000000000 {
		t.Errorf("-0*1 + +0 under RoundDown = %v, want -0", got)
	}
}

func TestFMASingleRounding(t *testing.T) {
	// a*a = 1 + 2^-29 + 2^-60; the low term only survives a fused operation.
	a := Float64(0x3FF0000000400000)
	p := Float64(0x3FF0000000800000)
	st := NewStatus()
	if got := F64Mul(a, a, st); got != p {
		t.Fatalf("a*a = %v, want %v", got, p)
	}
	st.Clear()
	got := F64FMSub(a, a, p, st)
	if got != 0x3C30000000000000 {
		t.Errorf("fma(a, a, -p) = %v, want 2^-60", got)
	}
	if want := math.FMA(a.Host(), a.Host(), -p.Host()); got.Host() != want {
		t.Errorf("fma(a, a, -p) = %g, host says %g", got.Host(), want)
	}
	if st.Flags != 0 {
		t.Errorf("flags = %v, want none", st.Flags)
	}
}

func TestTies(t *testing.T) {
	type result struct {
		mode RoundingMode
		want uint64
	}
	tests := []struct {
		name    string
		add     func(st *Status) uint64
		results []result
	}{
		{
			name: "F16OneHalfUlp",
			add:  func(st *Status) uint64 { return uint64(F16Add(0x3C00, 0x1000, st)) },
			results: []result{
				{RoundNearEven, 0x3C00}, {RoundNearMaxMag, 0x3C01}, {RoundUp, 0x3C01},
				{RoundDown, 0x3C00}, {RoundToZero, 0x3C00},
			},
		},
		{
			name: "F16OddTie",
			add:  func(st *Status) uint64 { return uint64(F16Add(0x3C01, 0x1000, st)) },
			results: []result{
				{RoundNearEven, 0x3C02}, {RoundNearMaxMag, 0x3C02}, {RoundToZero, 0x3C01},
			},
		},
		{
			name: "F32OneHalfUlp",
			add:  func(st *Status) uint64 { return uint64(F32Add(0x3F800000, 0x33800000, st)) },
			results: []result{
				{RoundNearEven, 0x3F800000}, {RoundNearMaxMag, 0x3F800001}, {RoundUp, 0x3F800001},
				{RoundDown, 0x3F800000}, {RoundToZero, 0x3F800000},
			},
		},
		{
			name: "F32OddTie",
			add:  func(st *Status) uint64 { return uint64(F32Add(0x3F800001, 0x33800000, st)) },
			results: []result{
				{RoundNearEven, 0x3F800002}, {RoundNearMaxMag, 0x3F800002}, {RoundDown, 0x3F800001},
			},
		},
		{
			name: "F64OneHalfUlp",
			add:  func(st *Status) uint64 { return uint64(F64Add(0x3FF0000000000000, 0x3CA0000000000000, st)) },
			results: []result{
				{RoundNearEven, 0x3FF0000000000000}, {RoundNearMaxMag, 0x3FF0000000000001},
				{RoundUp, 0x3FF0000000000001}, {RoundToZero, 0x3FF0000000000000},
			},
		},
		{
			name: "F64OddTie",
			add:  func(st *Status) uint64 { return uint64(F64Add(0x3FF0000000000001, 0x3CA0000000000000, st)) },
			results: []result{
				{RoundNearEven, 0x3FF0000000000002}, {RoundToZero, 0x3FF0000000000001},
			},
		},
		{
			name: "ExtF80OneHalfUlp",
			add: func(st *Status) uint64 {
				z := ExtF80Add(extOne, ExtFloat80{SignExp: 0x3FBF, Signif: 0x8000000000000000}, st)
				if z.SignExp != 0x3FFF {
					return 0
				}
				return z.Signif
			},
			results: []result{
				{RoundNearEven, 0x8000000000000000}, {RoundNearMaxMag, 0x8000000000000001},
				{RoundUp, 0x8000000000000001}, {RoundDown, 0x8000000000000000},
			},
		},
	}
	for _, tt := range tests {
		for _, r := range tt.results {
			t.Run(tt.name+"/"+r.mode.String(), func(t *testing.T) {
				st := NewStatus()
				st.RoundingMode = r.mode
				if got := tt.add(st); got != r.want {
					t.Errorf("got %#x, want %#x", got, r.want)
				}
				if st.Flags&FlagInexact == 0 {
					t.Errorf("inexact not raised: %v", st.Flags)
				}
			})
		}
	}
}

func TestRoundedUp(t *testing.T) {
	for _, tt := range []struct {
		mode RoundingMode
		up   bool
	}{
		{RoundUp, true}, {RoundDown, false}, {RoundToZero, false}, {RoundNearMaxMag, true}, {RoundNearEven, false},
	} {
		st := NewStatus()
		st.RoundingMode = tt.mode
		F32Add(0x3F800000, 0x33800000, st)
		if got := st.Flags&FlagRoundedUp != 0; got != tt.up {
			t.Errorf("%v: rounded up = %v, want %v", tt.mode, got, tt.up)
		}
	}
}

func TestExtF80Precision(t *testing.T) {
	half53 := ExtFloat80{SignExp: 0x3FFF - 53, Signif: 0x8000000000000000}
	tests := []struct {
		prec Precision
		mode RoundingMode
		want uint64
	}{
		{Precision64, RoundNearEven, 0x8000000000000000},
		{Precision64, RoundUp, 0x8000000000000800},
		{Precision64, RoundNearMaxMag, 0x8000000000000800},
		{Precision80, RoundNearEven, 0x8000000000000400},
		{Precision32, RoundUp, 0x8000010000000000},
		{Precision32, RoundNearEven, 0x8000000000000000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%v", tt.prec, tt.mode), func(t *testing.T) {
			st := NewStatus()
			st.ExtF80Precision = tt.prec
			st.RoundingMode = tt.mode
			z := ExtF80Add(extOne, half53, st)
			if z.SignExp != 0x3FFF || z.Signif != tt.want {
				t.Errorf("precision %d: got %v, want 3fff:%016x", tt.prec, z, tt.want)
			}
			if exact := tt.prec == Precision80; (st.Flags&FlagInexact == 0) != exact {
				t.Errorf("precision %d: flags %v", tt.prec, st.Flags)
			}
		})
	}
}

func TestExtF80DirectedOverflow(t *testing.T) {
	tests := []struct {
		prec  Precision
		mode  RoundingMode
		sign  bool
		want  ExtFloat80
		upped bool
	}{
		{Precision80, RoundNearEven, false, extInf, true},
		{Precision80, RoundToZero, false, extMax, false},
		{Precision80, RoundDown, false, extMax, false},
		{Precision80, RoundUp, false, extInf, true},
		{Precision80, RoundUp, true, extMax.Neg(), false},
		{Precision80, RoundDown, true, extInf.Neg(), true},
		{Precision64, RoundToZero, false, ExtFloat80{SignExp: 0x7FFE, Signif: 0xFFFFFFFFFFFFF800}, false},
		{Precision32, RoundToZero, false, ExtFloat80{SignExp: 0x7FFE, Signif: 0xFFFFFF0000000000}, false},
	}
	for _, tt := range tests {
		st := NewStatus()
		st.ExtF80Precision = tt.prec
		st.RoundingMode = tt.mode
		a := extMax
		if tt.sign {
			a = a.Neg()
		}
		got := ExtF80Mul(a, extTwo, st)
		if got != tt.want {
			t.Errorf("prec %d %v sign %v: got %v, want %v", tt.prec, tt.mode, tt.sign, got, tt.want)
		}
		if st.Flags&(FlagOverflow|FlagInexact) != FlagOverflow|FlagInexact {
			t.Errorf("prec %d %v: flags %v", tt.prec, tt.mode, st.Flags)
		}
		if (st.Flags&FlagRoundedUp != 0) != tt.upped {
			t.Errorf("prec %d %v: rounded-up flag %v, want %v", tt.prec, tt.mode, st.Flags&FlagRoundedUp != 0, tt.upped)
		}
	}
}

func TestExtF80UnmaskedOverflowRebias(t *testing.T) {
	st := NewStatus()
	st.Masks &^= FlagOverflow
	got := ExtF80Mul(extMax, extTwo, st)
	want := ExtFloat80{SignExp: 0x7FFF - 0x6000, Signif: 0xFFFFFFFFFFFFFFFF}
	if got != want {
		t.Errorf("unmasked overflow: got %v, want %v", got, want)
	}
	if st.Flags != FlagOverflow {
		t.Errorf("flags = %v, want overflow only for an exact product", st.Flags)
	}
}

func TestExtF80UnmaskedUnderflowRebias(t *testing.T) {
	tests := []struct {
		name  string
		a     ExtFloat80
		want  ExtFloat80
		flags Flags
	}{
		{
			// 2^-10000 squared is exact once rebiased.
			"exact", ExtFloat80{SignExp: 0x18EF, Signif: 0x8000000000000000},
			ExtFloat80{SignExp: 0x51DF, Signif: 0x8000000000000000}, FlagUnderflow,
		},
		{
			"inexact", ExtFloat80{SignExp: 0x18EF, Signif: 0xFFFFFFFFFFFFFFFF},
			ExtFloat80{SignExp: 0x51E0, Signif: 0xFFFFFFFFFFFFFFFE}, FlagUnderflow | FlagInexact,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStatus()
			st.Masks &^= FlagUnderflow
			if got := ExtF80Mul(tt.a, tt.a, st); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if st.Flags != tt.flags {
				t.Errorf("flags = %v, want %v", st.Flags, tt.flags)
			}
		})
	}

	t.Run("keeps earlier flags", func(t *testing.T) {
		st := NewStatus()
		st.Masks &^= FlagUnderflow
		st.Flags = FlagInvalid
		ExtF80Mul(tests[0].a, tests[0].a, st)
		if st.Flags != FlagInvalid|FlagUnderflow {
			t.Errorf("flags = %v, want invalid|underflow", st.Flags)
		}
	})
}

func TestF32UnmaskedUnderflowRebias(t *testing.T) {
	st := NewStatus()
	st.Masks &^= FlagUnderflow
	// 2^-100 * 2^-100 = 2^-200, delivered as 2^-200 * 2^192 = 2^-8.
	tiny := Float32((0x7F - 100) << 23)
	if got := F32Mul(tiny, tiny, st); got != Float32((0x7F-8)<<23) {
		t.Errorf("got %v, want 2^-8", got)
	}
	if st.Flags&FlagUnderflow == 0 {
		t.Errorf("underflow not raised: %v", st.Flags)
	}
}

func TestFlushToZero(t *testing.T) {
	st := NewStatus()
	st.FlushUnderflowToZero = true
	tiny := Float32((0x7F - 100) << 23)
	if got := F32Mul(tiny, tiny.Neg(), st); got != 0x80000000 {
		t.Errorf("got %v, want -0", got)
	}
	if st.Flags != FlagUnderflow|FlagInexact {
		t.Errorf("flags = %v, want underflow|inexact", st.Flags)
	}
}

func TestDenormalsAreZeros(t *testing.T) {
	const denorm Float32 = 0x00000001
	st := NewStatus()
	if got := F32Add(denorm, 0, st); got != denorm {
		t.Errorf("without DAZ: got %v", got)
	}
	if st.Flags != FlagDenormal {
		t.Errorf("without DAZ flags = %v, want denormal", st.Flags)
	}
	st = NewStatus()
	st.DenormalsAreZeros = true
	if got := F32Mul(denorm, 0x3F800000, st); got != 0 {
		t.Errorf("with DAZ: got %v, want +0", got)
	}
	if st.Flags != 0 {
		t.Errorf("with DAZ flags = %v, want none", st.Flags)
	}
}

func TestSuppressedFlags(t *testing.T) {
	st := NewStatus()
	st.Suppress = FlagInexact
	F32Div(0x3F800000, 0x40400000, st)
	if st.Flags&FlagInexact != 0 {
		t.Errorf("suppressed inexact was recorded: %v", st.Flags)
	}
}

func TestSaveAndClear(t *testing.T) {
	st := NewStatus()
	F32Div(0x3F800000, 0, st)
	if saved := st.SaveAndClear(); saved != FlagDivByZero || st.Flags != 0 {
		t.Errorf("SaveAndClear = %v, left %v", saved, st.Flags)
	}
}

// TestPackRoundTrip decomposes normal, subnormal and zero encodings and
// re-packs them, both directly and through round-and-pack with no extra
// bits.
func TestPackRoundTrip(t *testing.T) {
	t.Run("F16", func(t *testing.T) {
		for _, a := range []Float16{0x0000, 0x8000, 0x0001, 0x03FF, 0x8200, 0x0400, 0x3C00, 0xBC01, 0x7BFF} {
			st := NewStatus()
			if got := Float16(packToF16UI(a.Sign(), a.Exp(), a.Frac())); got != a {
				t.Errorf("pack %v: got %v", a, got)
			}
			if a.Frac() == 0 && a.Exp() == 0 {
				continue
			}
			exp, sig := a.Exp(), a.Frac()|0x400
			if exp == 0 {
				n := normSubnormalF16Sig(a.Frac())
				exp, sig = n.exp, n.sig
			}
			if got := roundPackToF16(a.Sign(), exp-1, sig<<4, st); got != a || st.Flags != 0 {
				t.Errorf("round-pack %v: got %v, flags %v", a, got, st.Flags)
			}
		}
	})
	t.Run("F32", func(t *testing.T) {
		for _, a := range []Float32{0x00000000, 0x80000000, 0x00000001, 0x007FFFFF, 0x80400000, 0x00800000, 0x3F800000, 0xBF800001, 0x7F7FFFFF} {
			st := NewStatus()
			if got := Float32(packToF32UI(a.Sign(), a.Exp(), a.Frac())); got != a {
				t.Errorf("pack %v: got %v", a, got)
			}
			if a.Frac() == 0 && a.Exp() == 0 {
				continue
			}
			exp, sig := a.Exp(), a.Frac()|0x00800000
			if exp == 0 {
				n := normSubnormalF32Sig(a.Frac())
				exp, sig = n.exp, n.sig
			}
			if got := roundPackToF32(a.Sign(), exp-1, sig<<7, st); got != a || st.Flags != 0 {
				t.Errorf("round-pack %v: got %v, flags %v", a, got, st.Flags)
			}
		}
	})
	t.Run("F64", func(t *testing.T) {
		for _, a := range []Float64{0, 1 << 63, 1, 0x000FFFFFFFFFFFFF, 0x8008000000000000, 0x0010000000000000, 0x3FF0000000000000, 0xBFF0000000000001, 0x7FEFFFFFFFFFFFFF} {
			st := NewStatus()
			if got := Float64(packToF64UI(a.Sign(), a.Exp(), a.Frac())); got != a {
				t.Errorf("pack %v: got %v", a, got)
			}
			if a.Frac() == 0 && a.Exp() == 0 {
				continue
			}
			exp, sig := a.Exp(), a.Frac()|1<<52
			if exp == 0 {
				n := normSubnormalF64Sig(a.Frac())
				exp, sig = n.exp, n.sig
			}
			if got := roundPackToF64(a.Sign(), exp-1, sig<<10, st); got != a || st.Flags != 0 {
				t.Errorf("round-pack %v: got %v, flags %v", a, got, st.Flags)
			}
		}
	})
	t.Run("ExtF80", func(t *testing.T) {
		for _, a := range []ExtFloat80{
			{SignExp: 0x0000, Signif: 0},
			{SignExp: 0x8000, Signif: 0},
			{SignExp: 0x0000, Signif: 1},
			{SignExp: 0x8000, Signif: 0x7FFFFFFFFFFFFFFF},
			{SignExp: 0x0001, Signif: 0x8000000000000000},
			extOne,
			{SignExp: 0xBFFF, Signif: 0x8000000000000001},
			extMax,
		} {
			st := NewStatus()
			if got := packToExtF80(a.Sign(), a.Exp(), a.Signif); got != a {
				t.Errorf("pack %v: got %v", a, got)
			}
			if a.Signif == 0 {
				continue
			}
			exp, sig := a.Exp(), a.Signif
			if exp == 0 {
				n := normSubnormalExtF80Sig(sig)
				exp, sig = n.exp, n.sig
			}
			if got := roundPackToExtF80(a.Sign(), exp, sig, 0, st); got != a || st.Flags != 0 {
				t.Errorf("round-pack %v: got %v, flags %v", a, got, st.Flags)
			}
		}
	})
}
