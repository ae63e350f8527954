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
	"path"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ajroetker/go-softfloat/softfloat"
)

// Op is a named softfloat operation. Eval reads the rounding mode from st
// and raises flags in it.
type Op struct {
	Name   string
	Args   []Format
	Result Format
	Eval   func(st *softfloat.Status, args []Value) Value
}

// Run evaluates op in a fresh power-on environment with the given mode and
// returns the result and the raised flags.
func (op *Op) Run(mode softfloat.RoundingMode, args []Value) (Value, softfloat.Flags) {
	st := softfloat.NewStatus()
	st.RoundingMode = mode
	return op.RunWith(st, args)
}

// RunWith evaluates op using st, which the caller has reset.
func (op *Op) RunWith(st *softfloat.Status, args []Value) (Value, softfloat.Flags) {
	v := op.Eval(st, args)
	return v, st.Flags
}

// Registry maps operation names to operations.
type Registry struct {
	ops map[string]*Op
}

// NewRegistry returns a registry holding every operation of package
// softfloat that has a TestFloat name.
func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]*Op)}
	registerFloat(r, f16Ops)
	registerFloat(r, f32Ops)
	registerFloat(r, f64Ops)
	registerFloat(r, extF80Ops)
	registerSSE(r, f16Ops.codec, softfloat.F16Min, softfloat.F16Max)
	registerSSE(r, f32Ops.codec, softfloat.F32Min, softfloat.F32Max)
	registerSSE(r, f64Ops.codec, softfloat.F64Min, softfloat.F64Max)
	registerConversions(r)
	return r
}

// Register adds op, replacing any operation of the same name.
func (r *Registry) Register(op *Op) {
	r.ops[op.Name] = op
}

// Lookup returns the named operation.
func (r *Registry) Lookup(name string) (*Op, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOp, "%q", name)
	}
	return op, nil
}

// Names returns the sorted operation names.
func (r *Registry) Names() []string {
	names := lo.Keys(r.ops)
	slices.Sort(names)
	return names
}

// Match returns the operations whose names match any of the path.Match
// patterns, sorted by name. A pattern that matches nothing is an error.
func (r *Registry) Match(patterns ...string) ([]*Op, error) {
	names := r.Names()
	var matched []string
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, errors.Wrapf(err, "pattern %q", p)
		}
		hits := lo.Filter(names, func(name string, _ int) bool {
			ok, _ := path.Match(p, name)
			return ok
		})
		if len(hits) == 0 {
			return nil, errors.Wrapf(ErrUnknownOp, "no operation matches %q", p)
		}
		matched = append(matched, hits...)
	}
	matched = lo.Uniq(matched)
	slices.Sort(matched)
	return lo.Map(matched, func(name string, _ int) *Op { return r.ops[name] }), nil
}

type codec[T any] struct {
	format Format
	dec    func(Value) T
	enc    func(T) Value
}

var (
	f16Codec = codec[softfloat.Float16]{F16,
		func(v Value) softfloat.Float16 { return softfloat.Float16(v.Bits) },
		func(x softfloat.Float16) Value { return Value{Bits: uint64(x)} }}
	f32Codec = codec[softfloat.Float32]{F32,
		func(v Value) softfloat.Float32 { return softfloat.Float32(v.Bits) },
		func(x softfloat.Float32) Value { return Value{Bits: uint64(x)} }}
	f64Codec = codec[softfloat.Float64]{F64,
		func(v Value) softfloat.Float64 { return softfloat.Float64(v.Bits) },
		func(x softfloat.Float64) Value { return Value{Bits: uint64(x)} }}
	extF80Codec = codec[softfloat.ExtFloat80]{ExtF80, Value.Ext, ExtValue}

	i32Codec = codec[int32]{I32,
		func(v Value) int32 { return int32(uint32(v.Bits)) },
		func(x int32) Value { return Value{Bits: uint64(uint32(x))} }}
	i64Codec = codec[int64]{I64,
		func(v Value) int64 { return int64(v.Bits) },
		func(x int64) Value { return Value{Bits: uint64(x)} }}
	ui32Codec = codec[uint32]{UI32,
		func(v Value) uint32 { return uint32(v.Bits) },
		func(x uint32) Value { return Value{Bits: uint64(x)} }}
	ui64Codec = codec[uint64]{UI64,
		func(v Value) uint64 { return v.Bits },
		func(x uint64) Value { return Value{Bits: x} }}
	boolCodec = codec[bool]{Bool,
		func(v Value) bool { return v.Bits != 0 },
		func(x bool) Value {
			if x {
				return Value{Bits: 1}
			}
			return Value{}
		}}
)

func unary[A, R any](name string, a codec[A], r codec[R], fn func(A, *softfloat.Status) R) *Op {
	return &Op{
		Name:   name,
		Args:   []Format{a.format},
		Result: r.format,
		Eval: func(st *softfloat.Status, args []Value) Value {
			return r.enc(fn(a.dec(args[0]), st))
		},
	}
}

func binary[A, R any](name string, a codec[A], r codec[R], fn func(A, A, *softfloat.Status) R) *Op {
	return &Op{
		Name:   name,
		Args:   []Format{a.format, a.format},
		Result: r.format,
		Eval: func(st *softfloat.Status, args []Value) Value {
			return r.enc(fn(a.dec(args[0]), a.dec(args[1]), st))
		},
	}
}

func ternary[A any](name string, a codec[A], fn func(A, A, A, *softfloat.Status) A) *Op {
	return &Op{
		Name:   name,
		Args:   []Format{a.format, a.format, a.format},
		Result: a.format,
		Eval: func(st *softfloat.Status, args []Value) Value {
			return a.enc(fn(a.dec(args[0]), a.dec(args[1]), a.dec(args[2]), st))
		},
	}
}

// floatOps lists the per-format entry points of package softfloat.
type floatOps[T any] struct {
	codec      codec[T]
	add        func(a, b T, st *softfloat.Status) T
	sub        func(a, b T, st *softfloat.Status) T
	mul        func(a, b T, st *softfloat.Status) T
	div        func(a, b T, st *softfloat.Status) T
	sqrt       func(a T, st *softfloat.Status) T
	mulAdd     func(a, b, c T, st *softfloat.Status) T
	roundToInt func(a T, mode softfloat.RoundingMode, exact bool, st *softfloat.Status) T
	compare    func(a, b T, quiet bool, st *softfloat.Status) softfloat.Relation
}

func scaled[T any](fn func(T, softfloat.RoundingMode, bool, uint8, *softfloat.Status) T) func(T, softfloat.RoundingMode, bool, *softfloat.Status) T {
	return func(a T, mode softfloat.RoundingMode, exact bool, st *softfloat.Status) T {
		return fn(a, mode, exact, 0, st)
	}
}

var (
	f16Ops = floatOps[softfloat.Float16]{f16Codec,
		softfloat.F16Add, softfloat.F16Sub, softfloat.F16Mul, softfloat.F16Div, softfloat.F16Sqrt,
		softfloat.F16FMAdd, scaled(softfloat.F16RoundToInt), softfloat.F16Compare}
	f32Ops = floatOps[softfloat.Float32]{f32Codec,
		softfloat.F32Add, softfloat.F32Sub, softfloat.F32Mul, softfloat.F32Div, softfloat.F32Sqrt,
		softfloat.F32FMAdd, scaled(softfloat.F32RoundToInt), softfloat.F32Compare}
	f64Ops = floatOps[softfloat.Float64]{f64Codec,
		softfloat.F64Add, softfloat.F64Sub, softfloat.F64Mul, softfloat.F64Div, softfloat.F64Sqrt,
		softfloat.F64FMAdd, scaled(softfloat.F64RoundToInt), softfloat.F64Compare}
	extF80Ops = floatOps[softfloat.ExtFloat80]{extF80Codec,
		softfloat.ExtF80Add, softfloat.ExtF80Sub, softfloat.ExtF80Mul, softfloat.ExtF80Div, softfloat.ExtF80Sqrt,
		softfloat.ExtF80FMAdd, softfloat.ExtF80RoundToInt, softfloat.ExtF80Compare}
)

func registerFloat[T any](r *Registry, ops floatOps[T]) {
	c := ops.codec
	name := c.format.String()
	r.Register(binary(name+"_add", c, c, ops.add))
	r.Register(binary(name+"_sub", c, c, ops.sub))
	r.Register(binary(name+"_mul", c, c, ops.mul))
	r.Register(binary(name+"_div", c, c, ops.div))
	r.Register(unary(name+"_sqrt", c, c, ops.sqrt))
	r.Register(ternary(name+"_mulAdd", c, ops.mulAdd))
	r.Register(unary(name+"_roundToInt", c, c, func(a T, st *softfloat.Status) T {
		return ops.roundToInt(a, st.RoundingMode, true, st)
	}))

	cmp := func(suffix string, quiet bool, holds func(softfloat.Relation) bool) {
		r.Register(binary(name+suffix, c, boolCodec, func(a, b T, st *softfloat.Status) bool {
			return holds(ops.compare(a, b, quiet, st))
		}))
	}
	eq := func(rel softfloat.Relation) bool { return rel == softfloat.RelationEqual }
	le := func(rel softfloat.Relation) bool {
		return rel == softfloat.RelationLess || rel == softfloat.RelationEqual
	}
	lt := func(rel softfloat.Relation) bool { return rel == softfloat.RelationLess }
	cmp("_eq", true, eq)
	cmp("_le", false, le)
	cmp("_lt", false, lt)
	cmp("_eq_signaling", false, eq)
	cmp("_le_quiet", true, le)
	cmp("_lt_quiet", true, lt)
}

// registerSSE adds the MINSS/MAXSS style operations.
func registerSSE[T any](r *Registry, c codec[T], minFn, maxFn func(a, b T, st *softfloat.Status) T) {
	name := c.format.String()
	r.Register(binary(name+"_min", c, c, minFn))
	r.Register(binary(name+"_max", c, c, maxFn))
}
