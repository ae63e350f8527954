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

package verify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ajroetker/go-softfloat/softfloat"
	"github.com/ajroetker/go-softfloat/testfloat"
)

// Mismatch is a vector on which the library disagreed with the expected
// result.
type Mismatch struct {
	Want     testfloat.Vector
	Got      testfloat.Value
	GotFlags softfloat.Flags
}

// Format renders m using the operand formats of op.
func (m Mismatch) Format(op *testfloat.Op) string {
	got := m.Got.String()
	if op != nil {
		got = m.Got.Format(op.Result)
	}
	return fmt.Sprintf("%s, got %s %x", m.Want.Format(op), got, uint16(m.GotFlags))
}

// OpReport holds the outcome for one operation.
type OpReport struct {
	Op       string
	Checked  int
	Failed   int
	Samples  []Mismatch
	Duration time.Duration
}

func (r *OpReport) record(m Mismatch, maxSamples int) {
	r.Failed++
	if len(r.Samples) < maxSamples {
		r.Samples = append(r.Samples, m)
	}
}

// merge adds the counts and samples of o to r.
func (r *OpReport) merge(o *OpReport, maxSamples int) {
	r.Checked += o.Checked
	r.Failed += o.Failed
	r.Duration += o.Duration
	for _, m := range o.Samples {
		if len(r.Samples) >= maxSamples {
			break
		}
		r.Samples = append(r.Samples, m)
	}
}

// Report is the outcome of a run, with one entry per operation sorted by
// name.
type Report struct {
	Oracle  Kind
	Seed    uint64
	Ops     []*OpReport
	Elapsed time.Duration
	// Raised is the union of the flags the library raised.
	Raised softfloat.Flags
}

// Checked is the total number of vectors checked.
func (r *Report) Checked() int {
	n := 0
	for _, op := range r.Ops {
		n += op.Checked
	}
	return n
}

// Failed is the total number of mismatches.
func (r *Report) Failed() int {
	n := 0
	for _, op := range r.Ops {
		n += op.Failed
	}
	return n
}

// OK reports whether every vector matched.
func (r *Report) OK() bool { return r.Failed() == 0 }

// Summary renders a one-line overview such as
// "1,250,000 vectors, 0 mismatches in 52 ops (3.1s, 403,225/s)".
func (r *Report) Summary() string {
	checked := r.Checked()
	rate := ""
	if secs := r.Elapsed.Seconds(); secs > 0 {
		rate = ", " + humanize.Comma(int64(float64(checked)/secs)) + "/s"
	}
	return fmt.Sprintf("%s vectors, %s mismatches in %d ops (%s%s)",
		humanize.Comma(int64(checked)), humanize.Comma(int64(r.Failed())), len(r.Ops),
		r.Elapsed.Round(time.Millisecond), rate)
}

// Details lists every failing operation with its samples, formatted with
// the operand formats from reg.
func (r *Report) Details(reg *testfloat.Registry) string {
	var b strings.Builder
	for _, op := range r.Ops {
		if op.Failed == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s of %s failed\n", op.Op, humanize.Comma(int64(op.Failed)), humanize.Comma(int64(op.Checked)))
		def, _ := reg.Lookup(op.Op)
		for _, m := range op.Samples {
			fmt.Fprintf(&b, "  %s\n", m.Format(def))
		}
	}
	return b.String()
}
