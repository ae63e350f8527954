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

// Package testfloat reads, writes and generates test vectors in a text
// format modelled on Berkeley TestFloat, and maps operation names such as
// "f32_mul" to softfloat calls.
//
// A vector is one line:
//
//	op mode a [b [c]] => result flags
//
// Operands and result are hexadecimal encodings. Extended precision
// values are written as sign/exponent and significand separated by a dot
// (3fff.8000000000000000). Flags is the hexadecimal softfloat.Flags
// value. Blank lines and lines starting with '#' are ignored.
package testfloat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-softfloat/softfloat"
)

// Format is the encoding of an operand or result.
type Format uint8

const (
	F16 Format = iota
	F32
	F64
	ExtF80
	I32
	I64
	UI32
	UI64
	Bool
)

var formatNames = [...]string{"f16", "f32", "f64", "extF80", "i32", "i64", "ui32", "ui64", "bool"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("format(%d)", f)
}

// IsFloat reports whether f is a floating-point format.
func (f Format) IsFloat() bool { return f <= ExtF80 }

// digits is the zero-padded hex width of the low word.
func (f Format) digits() int {
	switch f {
	case F16:
		return 4
	case F32, I32, UI32:
		return 8
	case Bool:
		return 1
	}
	return 16
}

// Value is an operand or result. Hi holds the sign and exponent of an
// extended precision value and is zero for every other format.
type Value struct {
	Hi   uint16
	Bits uint64
}

// ExtValue wraps an extended precision value.
func ExtValue(x softfloat.ExtFloat80) Value { return Value{Hi: x.SignExp, Bits: x.Signif} }

// Ext returns v as an extended precision value.
func (v Value) Ext() softfloat.ExtFloat80 {
	return softfloat.ExtFloat80{SignExp: v.Hi, Signif: v.Bits}
}

// Format renders v zero-padded for f.
func (v Value) Format(f Format) string {
	if f == ExtF80 {
		return fmt.Sprintf("%04x.%016x", v.Hi, v.Bits)
	}
	return fmt.Sprintf("%0*x", f.digits(), v.Bits)
}

func (v Value) String() string {
	if v.Hi != 0 {
		return v.Format(ExtF80)
	}
	return strconv.FormatUint(v.Bits, 16)
}

// ParseValue parses a hexadecimal value, with or without the extended
// precision dot.
func ParseValue(s string) (Value, error) {
	hi, lo, dotted := strings.Cut(s, ".")
	if !dotted {
		bits, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return Value{}, errors.Wrapf(ErrMalformedVector, "value %q", s)
		}
		return Value{Bits: bits}, nil
	}
	h, err := strconv.ParseUint(hi, 16, 16)
	if err != nil {
		return Value{}, errors.Wrapf(ErrMalformedVector, "value %q: sign/exponent", s)
	}
	bits, err := strconv.ParseUint(lo, 16, 64)
	if err != nil {
		return Value{}, errors.Wrapf(ErrMalformedVector, "value %q: significand", s)
	}
	return Value{Hi: uint16(h), Bits: bits}, nil
}

// fits reports whether v is a valid encoding in f.
func (v Value) fits(f Format) bool {
	if f != ExtF80 && v.Hi != 0 {
		return false
	}
	switch f {
	case F16:
		return v.Bits <= 0xFFFF
	case F32, I32, UI32:
		return v.Bits <= 0xFFFFFFFF
	case Bool:
		return v.Bits <= 1
	}
	return true
}

// IsNaN reports whether v encodes a NaN in f.
func (v Value) IsNaN(f Format) bool {
	switch f {
	case F16:
		return softfloat.Float16(v.Bits).IsNaN()
	case F32:
		return softfloat.Float32(v.Bits).IsNaN()
	case F64:
		return softfloat.Float64(v.Bits).IsNaN()
	case ExtF80:
		return v.Ext().IsNaN()
	}
	return false
}
