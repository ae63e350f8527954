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

package main

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func TestBuildPredicates(t *testing.T) {
	preds, err := buildPredicates(predicateNames)
	if err != nil {
		t.Fatalf("buildPredicates: %v", err)
	}
	if len(preds) != 32 {
		t.Fatalf("got %d predicates, want 32", len(preds))
	}

	tests := []struct {
		imm   int
		konst string
		mask  string
		quiet bool
	}{
		{0, "CmpEqOQ", "relEqual", true},
		{1, "CmpLtOS", "relLess", false},
		{3, "CmpUnordQ", "relUnordered", true},
		{5, "CmpNltUS", "relEqual | relGreater | relUnordered", false},
		{7, "CmpOrdQ", "relLess | relEqual | relGreater", true},
		{11, "CmpFalseOQ", "0", true},
		{15, "CmpTrueUQ", "relLess | relEqual | relGreater | relUnordered", true},
		{19, "CmpUnordS", "relUnordered", false},
		{29, "CmpGeOQ", "relEqual | relGreater", true},
		{31, "CmpTrueUS", "relLess | relEqual | relGreater | relUnordered", false},
	}
	for _, tt := range tests {
		p := preds[tt.imm]
		if p.Imm != tt.imm || p.Const != tt.konst || p.Mask != tt.mask || p.Quiet != tt.quiet {
			t.Errorf("predicate %d = %+v, want %s %q quiet=%v", tt.imm, p, tt.konst, tt.mask, tt.quiet)
		}
	}

	// The map values must not be aliased by the appended relUnordered.
	if got := baseRelations["EQ"]; len(got) != 1 {
		t.Errorf("baseRelations[EQ] was modified: %v", got)
	}
}

func TestBuildPredicatesErrors(t *testing.T) {
	for _, name := range []string{"EQ", "EQ_", "EQ_OQS", "FOO_OQ", "EQ_XQ", "EQ_OX"} {
		if _, err := buildPredicates([]string{name}); err == nil {
			t.Errorf("buildPredicates(%q) succeeded", name)
		}
	}
}

func TestRender(t *testing.T) {
	preds, err := buildPredicates(predicateNames)
	if err != nil {
		t.Fatal(err)
	}
	src, err := render("softfloat", "compare_predicates.go", preds)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(src)
	if !strings.HasPrefix(out, "// Code generated by sfgen. DO NOT EDIT.\n") {
		t.Errorf("missing generated-code header:\n%s", out)
	}
	for _, want := range []string{
		"CmpEqOQ ComparePredicate = iota",
		`{"NLT_US", relEqual | relGreater | relUnordered, false},`,
		`{"FALSE_OS", 0, false},`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if _, err := parser.ParseFile(token.NewFileSet(), "compare_predicates.go", src, 0); err != nil {
		t.Errorf("generated source does not parse: %v", err)
	}
}
