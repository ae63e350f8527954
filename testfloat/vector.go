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
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-softfloat/softfloat"
)

// Vector is one test case: an operation applied to operands in a rounding
// mode, with the expected result and flags.
type Vector struct {
	Op       string
	Mode     softfloat.RoundingMode
	Operands []Value
	Result   Value
	Flags    softfloat.Flags
}

// Format renders v as a vector line. With op nil the values are written
// without padding.
func (v Vector) Format(op *Op) string {
	var b strings.Builder
	b.WriteString(v.Op)
	b.WriteByte(' ')
	b.WriteString(v.Mode.String())
	for i, x := range v.Operands {
		b.WriteByte(' ')
		if op != nil && i < len(op.Args) {
			b.WriteString(x.Format(op.Args[i]))
		} else {
			b.WriteString(x.String())
		}
	}
	b.WriteString(" => ")
	if op != nil {
		b.WriteString(v.Result.Format(op.Result))
	} else {
		b.WriteString(v.Result.String())
	}
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(uint64(v.Flags), 16))
	return b.String()
}

func (v Vector) String() string { return v.Format(nil) }

// ParseVector parses one vector line.
func ParseVector(line string) (Vector, error) {
	lhs, rhs, ok := strings.Cut(line, "=>")
	if !ok {
		return Vector{}, errors.Wrap(ErrMalformedVector, "missing \"=>\"")
	}
	in, out := strings.Fields(lhs), strings.Fields(rhs)
	if len(in) < 3 || len(out) != 2 {
		return Vector{}, errors.Wrapf(ErrMalformedVector, "%d input and %d output fields", len(in), len(out))
	}
	mode, ok := softfloat.ParseRoundingMode(in[1])
	if !ok {
		return Vector{}, errors.Wrapf(ErrMalformedVector, "rounding mode %q", in[1])
	}
	v := Vector{Op: in[0], Mode: mode}
	for _, s := range in[2:] {
		x, err := ParseValue(s)
		if err != nil {
			return Vector{}, err
		}
		v.Operands = append(v.Operands, x)
	}
	var err error
	if v.Result, err = ParseValue(out[0]); err != nil {
		return Vector{}, err
	}
	flags, err := strconv.ParseUint(out[1], 16, 16)
	if err != nil {
		return Vector{}, errors.Wrapf(ErrMalformedVector, "flags %q", out[1])
	}
	v.Flags = softfloat.Flags(flags)
	return v, nil
}

// Validate checks v against the signature of op.
func (v Vector) Validate(op *Op) error {
	if len(v.Operands) != len(op.Args) {
		return errors.Wrapf(ErrMalformedVector, "%s takes %d operands, got %d", op.Name, len(op.Args), len(v.Operands))
	}
	for i, f := range op.Args {
		if !v.Operands[i].fits(f) {
			return errors.Wrapf(ErrMalformedVector, "%s operand %d: %v is not a valid %v", op.Name, i, v.Operands[i], f)
		}
	}
	if !v.Result.fits(op.Result) {
		return errors.Wrapf(ErrMalformedVector, "%s result: %v is not a valid %v", op.Name, v.Result, op.Result)
	}
	return nil
}

// Check evaluates op on v's operands and reports whether the library
// agrees with v on the result and on the flags selected by mask.
func (v Vector) Check(op *Op, mask softfloat.Flags) (got Value, flags softfloat.Flags, ok bool) {
	got, flags = op.Run(v.Mode, v.Operands)
	return got, flags, got == v.Result && flags&mask == v.Flags&mask
}
