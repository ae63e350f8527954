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

//go:generate go run ../cmd/sfgen -output compare_predicates.go

// ComparePredicate is the imm8 operand of VCMPPS/VCMPPD/VCMPSH. Only the low
// five bits are significant.
type ComparePredicate uint8

type relMask uint8

const (
	relLess relMask = 1 << iota
	relEqual
	relGreater
	relUnordered
)

type predicateInfo struct {
	name  string
	mask  relMask
	quiet bool
}

func (p ComparePredicate) info() predicateInfo { return comparePredicates[p&31] }

// String returns the assembler suffix, e.g. "NLT_US".
func (p ComparePredicate) String() string { return p.info().name }

// Quiet reports whether a quiet NaN operand leaves FlagInvalid clear.
func (p ComparePredicate) Quiet() bool { return p.info().quiet }

// Holds reports whether r satisfies the predicate.
func (p ComparePredicate) Holds(r Relation) bool {
	var m relMask
	switch r {
	case RelationLess:
		m = relLess
	case RelationEqual:
		m = relEqual
	case RelationGreater:
		m = relGreater
	default:
		m = relUnordered
	}
	return p.info().mask&m != 0
}

// ParseComparePredicate is the inverse of ComparePredicate.String.
func ParseComparePredicate(s string) (ComparePredicate, bool) {
	for i, info := range comparePredicates {
		if info.name == s {
			return ComparePredicate(i), true
		}
	}
	return 0, false
}

func F16ComparePredicate(a, b Float16, p ComparePredicate, st *Status) bool {
	return p.Holds(F16Compare(a, b, p.Quiet(), st))
}

func F32ComparePredicate(a, b Float32, p ComparePredicate, st *Status) bool {
	return p.Holds(F32Compare(a, b, p.Quiet(), st))
}

func F64ComparePredicate(a, b Float64, p ComparePredicate, st *Status) bool {
	return p.Holds(F64Compare(a, b, p.Quiet(), st))
}
