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
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

// predicateNames lists the VCMPPS/VCMPPD predicates in imm8 order.
var predicateNames = []string{
	"EQ_OQ", "LT_OS", "LE_OS", "UNORD_Q", "NEQ_UQ", "NLT_US", "NLE_US", "ORD_Q",
	"EQ_UQ", "NGE_US", "NGT_US", "FALSE_OQ", "NEQ_OQ", "GE_OS", "GT_OS", "TRUE_UQ",
	"EQ_OS", "LT_OQ", "LE_OQ", "UNORD_S", "NEQ_US", "NLT_UQ", "NLE_UQ", "ORD_S",
	"EQ_US", "NGE_UQ", "NGT_UQ", "FALSE_OS", "NEQ_OS", "GE_OQ", "GT_OQ", "TRUE_US",
}

// Relation sets of each base predicate over ordered operands.
var baseRelations = map[string][]string{
	"EQ":    {"relEqual"},
	"LT":    {"relLess"},
	"LE":    {"relLess", "relEqual"},
	"UNORD": nil,
	"NEQ":   {"relLess", "relGreater"},
	"NLT":   {"relEqual", "relGreater"},
	"NLE":   {"relGreater"},
	"ORD":   {"relLess", "relEqual", "relGreater"},
	"NGE":   {"relLess"},
	"NGT":   {"relLess", "relEqual"},
	"FALSE": nil,
	"GE":    {"relEqual", "relGreater"},
	"GT":    {"relGreater"},
	"TRUE":  {"relLess", "relEqual", "relGreater"},
}

type predicate struct {
	Imm   int
	Name  string // assembler suffix, e.g. NLT_US
	Const string // Go constant, e.g. CmpNltUS
	Mask  string
	Quiet bool
}

// buildPredicates decodes names of the form BASE_[O|U](Q|S). UNORD and ORD
// carry no O/U letter: they are true for unordered and ordered operands
// respectively.
func buildPredicates(names []string) ([]predicate, error) {
	preds := make([]predicate, 0, len(names))
	for i, name := range names {
		base, suffix, ok := strings.Cut(name, "_")
		if !ok || len(suffix) == 0 || len(suffix) > 2 {
			return nil, fmt.Errorf("predicate %q: malformed name", name)
		}
		rels, known := baseRelations[base]
		if !known {
			return nil, fmt.Errorf("predicate %q: unknown base %q", name, base)
		}
		unordered := base == "UNORD"
		if len(suffix) == 2 {
			switch suffix[0] {
			case 'O':
			case 'U':
				unordered = true
			default:
				return nil, fmt.Errorf("predicate %q: bad ordering letter %q", name, suffix[0])
			}
		}
		var quiet bool
		switch suffix[len(suffix)-1] {
		case 'Q':
			quiet = true
		case 'S':
		default:
			return nil, fmt.Errorf("predicate %q: bad signaling letter %q", name, suffix[len(suffix)-1])
		}
		if unordered {
			rels = append(rels[:len(rels):len(rels)], "relUnordered")
		}
		mask := "0"
		if len(rels) > 0 {
			mask = strings.Join(rels, " | ")
		}
		preds = append(preds, predicate{
			Imm:   i,
			Name:  name,
			Const: "Cmp" + titleCase(base) + suffix,
			Mask:  mask,
			Quiet: quiet,
		})
	}
	return preds, nil
}

func titleCase(s string) string {
	return s[:1] + strings.ToLower(s[1:])
}

var fileTemplate = template.Must(template.New("predicates").Parse(`// Code generated by sfgen. DO NOT EDIT.

package {{.Package}}

// VCMPPS/VCMPPD predicate immediates.
const (
{{- range $i, $p := .Predicates}}
{{- if eq $i 0}}
	{{$p.Const}} ComparePredicate = iota
{{- else}}
	{{$p.Const}}
{{- end}}
{{- end}}
)

var comparePredicates = [...]predicateInfo{
{{- range .Predicates}}
	{"{{.Name}}", {{.Mask}}, {{.Quiet}}},
{{- end}}
}
`))

// render executes the template and formats the result.
func render(pkg, filename string, preds []predicate) ([]byte, error) {
	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, struct {
		Package    string
		Predicates []predicate
	}{pkg, preds})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	src, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}
