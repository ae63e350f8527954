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

package testfloat

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-softfloat/softfloat"
)

func TestParseVector(t *testing.T) {
	tests := []struct {
		line string
		want Vector
	}{
		{
			"f32_mul rne 3f800000 40000000 => 40000000 0",
			Vector{Op: "f32_mul", Mode: softfloat.RoundNearEven,
				Operands: []Value{{Bits: 0x3F800000}, {Bits: 0x40000000}}, Result: Value{Bits: 0x40000000}},
		},
		{
			"extF80_sqrt rtz bfff.8000000000000000   =>  ffff.c000000000000000 1",
			Vector{Op: "extF80_sqrt", Mode: softfloat.RoundToZero,
				Operands: []Value{{Hi: 0xBFFF, Bits: 1 << 63}},
				Result:   ExtValue(softfloat.DefaultNaNExtF80), Flags: softfloat.FlagInvalid},
		},
		{
			"f64_mulAdd rmm 1 2 3 => 4 220",
			Vector{Op: "f64_mulAdd", Mode: softfloat.RoundNearMaxMag,
				Operands: []Value{{Bits: 1}, {Bits: 2}, {Bits: 3}}, Result: Value{Bits: 4},
				Flags: softfloat.FlagInexact | softfloat.FlagRoundedUp},
		},
	}
	for _, tt := range tests {
		t.Run(tt.want.Op, func(t *testing.T) {
			got, err := ParseVector(tt.line)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseVector(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseVectorErrors(t *testing.T) {
	for _, line := range []string{
		"f32_mul rne 3f800000 40000000 40000000 0",
		"f32_mul rne => 40000000 0",
		"f32_mul xyz 3f800000 40000000 => 40000000 0",
		"f32_mul rne 3f80000g 40000000 => 40000000 0",
		"f32_mul rne 3f800000 40000000 => 40000000",
		"f32_mul rne 3f800000 40000000 => 40000000 zz",
		"extF80_add rne 3fff.8000000000000000 13fff.8 => 0 0",
	} {
		_, err := ParseVector(line)
		assert.True(t, errors.Is(err, ErrMalformedVector), "ParseVector(%q) = %v", line, err)
	}
}

func TestVectorFormat(t *testing.T) {
	reg := NewRegistry()
	op, err := reg.Lookup("extF80_to_f16")
	require.NoError(t, err)
	v := Vector{Op: op.Name, Mode: softfloat.RoundUp,
		Operands: []Value{ExtValue(softfloat.I32ToExtF80(1))}, Result: Value{Bits: 0x3C00}}
	assert.Equal(t, "extF80_to_f16 rup 3fff.8000000000000000 => 3c00 0", v.Format(op))

	back, err := ParseVector(v.Format(op))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(v, back))
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Lookup("f128_mul")
	assert.True(t, errors.Is(err, ErrUnknownOp))

	names := reg.Names()
	assert.IsNonDecreasing(t, names)
	for _, want := range []string{"f16_add", "f32_mulAdd", "f64_le_quiet", "extF80_roundToInt", "extF80_to_i64_r_minMag", "ui64_to_extF80", "f32_min"} {
		assert.Contains(t, names, want)
	}

	ops, err := reg.Match("f32_to_*", "f32_to_f64")
	require.NoError(t, err)
	for _, op := range ops {
		assert.True(t, strings.HasPrefix(op.Name, "f32_to_"), op.Name)
		assert.Equal(t, []Format{F32}, op.Args)
	}
	assert.Len(t, ops, 11, "f16/f64/extF80 plus four integer and four r_minMag conversions")

	_, err = reg.Match("f8_*")
	assert.True(t, errors.Is(err, ErrUnknownOp))
	_, err = reg.Match("[")
	assert.Error(t, err)
}

func TestOpRun(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		op    string
		mode  softfloat.RoundingMode
		args  []Value
		want  Value
		flags softfloat.Flags
	}{
		{"f32_mul", softfloat.RoundNearEven, []Value{{Bits: 0x3F800000}, {Bits: 0x3F800000}}, Value{Bits: 0x3F800000}, 0},
		{"f32_div", softfloat.RoundNearEven, []Value{{Bits: 0x3F800000}, {Bits: 0}}, Value{Bits: 0x7F800000}, softfloat.FlagInfinite},
		{"f64_mul", softfloat.RoundNearEven, []Value{{Bits: 0}, {Bits: 0x7FF0000000000000}}, Value{Bits: 0xFFF8000000000000}, softfloat.FlagInvalid},
		{"extF80_sqrt", softfloat.RoundNearEven, []Value{ExtValue(softfloat.I32ToExtF80(-1))}, ExtValue(softfloat.DefaultNaNExtF80), softfloat.FlagInvalid},
		{"f32_to_i64", softfloat.RoundNearEven, []Value{{Bits: 0x5F800000}}, Value{Bits: 1 << 63}, softfloat.FlagInvalid},
		{"f64_to_i32", softfloat.RoundDown, []Value{{Bits: 0xBFF8000000000000}}, Value{Bits: 0xFFFFFFFE}, softfloat.FlagInexact},
		{"f64_to_i32_r_minMag", softfloat.RoundDown, []Value{{Bits: 0xBFF8000000000000}}, Value{Bits: 0xFFFFFFFF}, softfloat.FlagInexact},
		{"i32_to_extF80", softfloat.RoundNearEven, []Value{{Bits: 0xFFFFFFFF}}, ExtValue(softfloat.I32ToExtF80(-1)), 0},
		{"f16_to_f32", softfloat.RoundNearEven, []Value{{Bits: 0x3C00}}, Value{Bits: 0x3F800000}, 0},
		{"f32_eq", softfloat.RoundNearEven, []Value{{Bits: 0x7FC00000}, {Bits: 0}}, Value{}, 0},
		{"f32_lt", softfloat.RoundNearEven, []Value{{Bits: 0x7FC00000}, {Bits: 0}}, Value{}, softfloat.FlagInvalid},
		{"f32_le", softfloat.RoundNearEven, []Value{{Bits: 0x80000000}, {Bits: 0}}, Value{Bits: 1}, 0},
		{"f64_roundToInt", softfloat.RoundUp, []Value{{Bits: 0x3FE0000000000000}}, Value{Bits: 0x3FF0000000000000}, softfloat.FlagInexact},
		{"f32_max", softfloat.RoundNearEven, []Value{{Bits: 0x3F800000}, {Bits: 0x7FC00000}}, Value{Bits: 0x7FC00000}, softfloat.FlagInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			op, err := reg.Lookup(tt.op)
			require.NoError(t, err)
			require.Len(t, tt.args, len(op.Args))
			got, flags := op.Run(tt.mode, tt.args)
			assert.Equal(t, tt.want, got, "result")
			assert.Equal(t, tt.flags, flags&softfloat.FlagsAll, "flags %v", flags)
		})
	}
}

func TestCheck(t *testing.T) {
	reg := NewRegistry()
	op, err := reg.Lookup("f32_add")
	require.NoError(t, err)
	v := Vector{Op: op.Name, Mode: softfloat.RoundNearEven, Operands: []Value{{Bits: 0x3F800000}, {Bits: 0x33800000}}}
	v.Result, v.Flags = op.Run(v.Mode, v.Operands)

	_, _, ok := v.Check(op, softfloat.FlagsAll)
	assert.True(t, ok)

	bad := v
	bad.Result.Bits++
	_, _, ok = bad.Check(op, softfloat.FlagsAll)
	assert.False(t, ok)

	bad = v
	bad.Flags = 0
	_, _, ok = bad.Check(op, softfloat.FlagsAll)
	assert.False(t, ok)
	_, _, ok = bad.Check(op, softfloat.FlagsAll&^softfloat.FlagInexact)
	assert.True(t, ok, "inexact is outside the mask")
}

func sampleVectors(t *testing.T, reg *Registry, n int) []Vector {
	t.Helper()
	ops, err := reg.Match("f16_*", "extF80_mul", "i64_to_f32")
	require.NoError(t, err)
	g := NewGenerator(7)
	vs := make([]Vector, n)
	for i := range vs {
		op := ops[i%len(ops)]
		v := Vector{Op: op.Name, Mode: g.Mode(softfloat.RoundingModes), Operands: g.Operands(op)}
		v.Result, v.Flags = op.Run(v.Mode, v.Operands)
		vs[i] = v
	}
	return vs
}

func TestReaderWriter(t *testing.T) {
	reg := NewRegistry()
	want := sampleVectors(t, reg, 500)
	for _, c := range []Compression{None, Gzip, Zstd} {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, c, reg)
		require.NoError(t, err)
		require.NoError(t, w.Comment("generated"))
		for _, v := range want {
			require.NoError(t, w.Write(v))
		}
		require.NoError(t, w.Close())

		r, err := NewReader(&buf, c, reg)
		require.NoError(t, err)
		got, err := r.ReadAll()
		require.NoError(t, err)
		require.NoError(t, r.Close())
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("compression %d: round trip mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestOpenCreate(t *testing.T) {
	reg := NewRegistry()
	want := sampleVectors(t, reg, 50)
	for _, name := range []string{"v.tf", "v.tf.gz", "v.tf.zst"} {
		path := filepath.Join(t.TempDir(), name)
		w, err := Create(path, reg)
		require.NoError(t, err)
		for _, v := range want {
			require.NoError(t, w.Write(v))
		}
		require.NoError(t, w.Close())

		r, err := Open(path, reg)
		require.NoError(t, err)
		got, err := r.ReadAll()
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Empty(t, cmp.Diff(want, got), name)
	}

	_, err := Open(filepath.Join(t.TempDir(), "missing.tf"), reg)
	assert.Error(t, err)
}

func TestReaderValidation(t *testing.T) {
	reg := NewRegistry()
	input := strings.Join([]string{
		"# header",
		"",
		"f32_add rne 3f800000 3f800000 => 40000000 0",
		"f32_sqrt rne 3f800000 3f800000 => 3f800000 0",
		"f9_add rne 1 1 => 2 0",
	}, "\n")

	r, err := NewReader(strings.NewReader(input), None, reg)
	require.NoError(t, err)
	v, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "f32_add", v.Op)

	_, err = r.Next()
	assert.True(t, errors.Is(err, ErrMalformedVector))
	assert.Contains(t, err.Error(), "line 4")

	_, err = r.Next()
	assert.True(t, errors.Is(err, ErrUnknownOp))
	assert.Contains(t, err.Error(), "line 5")

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)

	r, err = NewReader(strings.NewReader("f16_sqrt rne 10000 => 0 0"), None, reg)
	require.NoError(t, err)
	_, err = r.Next()
	assert.True(t, errors.Is(err, ErrMalformedVector), "binary16 operand out of range: %v", err)
}

func TestGenerator(t *testing.T) {
	a, b := NewGenerator(1), NewGenerator(1)
	for _, f := range []Format{F16, F32, F64, ExtF80, I32, I64, UI32, UI64, Bool} {
		for range 100 {
			x, y := a.Value(f), b.Value(f)
			require.Equal(t, x, y, "generators with one seed diverged")
			require.True(t, x.fits(f), "%v does not fit %v", x, f)
		}
	}

	g := NewGenerator(2)
	seen := map[softfloat.Class]int{}
	for range 5000 {
		seen[softfloat.Float32(g.Value(F32).Bits).Class()]++
	}
	for _, c := range []softfloat.Class{
		softfloat.ClassZero, softfloat.ClassDenormal, softfloat.ClassNormal,
		softfloat.ClassPositiveInf, softfloat.ClassNegativeInf, softfloat.ClassQNaN, softfloat.ClassSNaN,
	} {
		assert.Positive(t, seen[c], "class %v never generated", c)
	}
}
