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

// Package verify checks package softfloat against an independent oracle.
//
// The oracle computes every result exactly with math/big and rounds it
// once, so it shares no code with the bit-level algorithms it checks. For
// binary32 and binary64 in round-to-nearest-even it can answer from the
// host FPU instead, recovering the inexact flag from error-free
// transformations. A Runner drives generated vectors through the library
// and the oracle in parallel and collects a Report.
package verify

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-softfloat/internal/hostfpu"
	"github.com/ajroetker/go-softfloat/softfloat"
	"github.com/ajroetker/go-softfloat/testfloat"
)

// Kind selects how the oracle computes.
type Kind string

const (
	// KindAuto uses the host FPU where it is exact and math/big elsewhere.
	KindAuto Kind = "auto"
	// KindBig computes every result with math/big.
	KindBig Kind = "big"
)

// ErrUnsupported is returned for operations the oracle cannot evaluate.
var ErrUnsupported = errors.New("operation not supported by the oracle")

// DefaultFlagMask is the set of flags compared by default. The denormal
// operand flag is an x86 extension with no IEEE definition, so the oracle
// does not model it.
const DefaultFlagMask = softfloat.FlagsAll &^ softfloat.FlagDenormal

// Oracle evaluates testfloat operations independently of package
// softfloat. It is safe for concurrent use.
type Oracle struct {
	kind     Kind
	host     bool
	features hostfpu.Features
}

// NewOracle returns an oracle of the given kind. KindAuto degrades to
// KindBig when SOFTFLOAT_NO_HOST is set.
func NewOracle(kind Kind) (*Oracle, error) {
	switch kind {
	case KindAuto, "":
		o := &Oracle{kind: KindAuto, features: hostfpu.Detect()}
		o.host = !hostfpu.NoHostEnv()
		return o, nil
	case KindBig:
		return &Oracle{kind: KindBig}, nil
	}
	return nil, errors.Errorf("unknown oracle %q", kind)
}

// Kind reports the configured kind.
func (o *Oracle) Kind() Kind { return o.kind }

// Host reports whether the host fast path is enabled.
func (o *Oracle) Host() bool { return o.host }

// opKind is the operation part of a testfloat name.
type opKind struct {
	name   string // add, mul, to, ...
	minMag bool   // conversions that truncate regardless of the mode
}

func parseOp(op *testfloat.Op) (opKind, error) {
	if src, dst, ok := strings.Cut(op.Name, "_to_"); ok {
		if src != op.Args[0].String() {
			return opKind{}, errors.Wrap(ErrUnsupported, op.Name)
		}
		dst, minMag := strings.CutSuffix(dst, "_r_minMag")
		if dst != op.Result.String() {
			return opKind{}, errors.Wrap(ErrUnsupported, op.Name)
		}
		return opKind{name: "to", minMag: minMag}, nil
	}
	f, name, ok := strings.Cut(op.Name, "_")
	if !ok || len(op.Args) == 0 || f != op.Args[0].String() {
		return opKind{}, errors.Wrap(ErrUnsupported, op.Name)
	}
	switch name {
	case "add", "sub", "mul", "div", "sqrt", "mulAdd", "roundToInt",
		"eq", "le", "lt", "eq_signaling", "le_quiet", "lt_quiet":
	case "min", "max":
		if op.Args[0] == testfloat.ExtF80 {
			return opKind{}, errors.Wrap(ErrUnsupported, op.Name)
		}
	default:
		return opKind{}, errors.Wrap(ErrUnsupported, op.Name)
	}
	return opKind{name: name}, nil
}

// Supports reports whether Eval can evaluate op.
func (o *Oracle) Supports(op *testfloat.Op) bool {
	_, err := parseOp(op)
	return err == nil
}

// Eval computes the result and flags of op applied to args in mode, with
// every exception masked.
func (o *Oracle) Eval(op *testfloat.Op, mode softfloat.RoundingMode, args []testfloat.Value) (testfloat.Value, softfloat.Flags, error) {
	v, flags, _, err := o.eval(op, mode, args)
	return v, flags, err
}

// Path names reported by eval.
const (
	pathHost = "host"
	pathBig  = "big"
)

// eval is Eval that also reports which path produced the result.
func (o *Oracle) eval(op *testfloat.Op, mode softfloat.RoundingMode, args []testfloat.Value) (testfloat.Value, softfloat.Flags, string, error) {
	k, err := parseOp(op)
	if err != nil {
		return testfloat.Value{}, 0, pathBig, err
	}
	if len(args) != len(op.Args) {
		return testfloat.Value{}, 0, pathBig, errors.Errorf("%s: %d operands, want %d", op.Name, len(args), len(op.Args))
	}

	if k.name == "to" {
		v, flags := o.convert(op, k, mode, args[0])
		return v, flags, pathBig, nil
	}

	l := layouts[op.Args[0]]
	if o.host && mode == softfloat.RoundNearEven {
		if v, flags, ok := o.hostEval(op.Args[0], k.name, args); ok {
			return v, flags, pathHost, nil
		}
	}
	ops := make([]operand, len(args))
	for i, a := range args {
		ops[i] = l.decode(a)
	}
	var v testfloat.Value
	var flags softfloat.Flags
	switch k.name {
	case "add":
		v, flags = l.add(ops[0], ops[1], mode)
	case "sub":
		v, flags = l.sub(ops[0], ops[1], mode)
	case "mul":
		v, flags = l.mul(ops[0], ops[1], mode)
	case "div":
		v, flags = l.div(ops[0], ops[1], mode)
	case "sqrt":
		v, flags = l.sqrt(ops[0], mode)
	case "mulAdd":
		v, flags = l.mulAdd(ops[0], ops[1], ops[2], mode)
	case "roundToInt":
		v, flags = l.roundToInt(ops[0], mode)
	case "min", "max":
		v, flags = l.minMax(ops[0], ops[1], k.name == "max")
	default:
		v, flags = l.predicate(k.name, ops[0], ops[1])
	}
	return v, flags, pathBig, nil
}

// predicate evaluates the TestFloat comparison names. The plain forms eq,
// le and lt follow IEEE: eq is quiet, le and lt signal on any NaN.
func (l layout) predicate(name string, a, b operand) (testfloat.Value, softfloat.Flags) {
	base, suffix, _ := strings.Cut(name, "_")
	signaling := base != "eq"
	switch suffix {
	case "signaling":
		signaling = true
	case "quiet":
		signaling = false
	}
	cmp, ok, flags := l.compare(a, b, signaling)
	var holds bool
	if ok {
		switch base {
		case "eq":
			holds = cmp == 0
		case "le":
			holds = cmp <= 0
		case "lt":
			holds = cmp < 0
		}
	}
	if holds {
		return testfloat.Value{Bits: 1}, flags
	}
	return testfloat.Value{}, flags
}

func (o *Oracle) convert(op *testfloat.Op, k opKind, mode softfloat.RoundingMode, arg testfloat.Value) (testfloat.Value, softfloat.Flags) {
	from, to := op.Args[0], op.Result
	if !from.IsFloat() {
		return layouts[to].fromInt(arg, from, mode)
	}
	l := layouts[from]
	a := l.decode(arg)
	if to.IsFloat() {
		return l.convert(a, layouts[to], mode)
	}
	if k.minMag {
		mode = softfloat.RoundToZero
	}
	return l.toInt(a, to, mode)
}
