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

// Package softfloat implements bit-exact IEEE 754 arithmetic in software for
// the formats an x86 FPU works with: binary16, binary32, binary64 and the x87
// 80-bit extended format.
//
// Every operation takes a *Status describing the rounding mode, exception
// masks and denormal policy, and ORs the exceptions it raises into
// Status.Flags. Operations never panic and never return errors: an invalid
// operation yields the default NaN (or the integer indefinite value for
// conversions) plus FlagInvalid, exactly as the hardware would.
//
// # Usage
//
//	st := softfloat.NewStatus()
//	z := softfloat.F32Mul(softfloat.F32(1.5), softfloat.F32(2), st)
//	if st.Flags&softfloat.FlagInexact != 0 {
//	    // result was rounded
//	}
//
// # Formats
//
// Float16, Float32 and Float64 hold the raw IEEE bit patterns. ExtFloat80
// holds the x87 sign/exponent word and the 64-bit significand with its
// explicit integer bit. Values are never reinterpreted outside the accessors
// in this package, so a Float32 can be stored in guest memory as-is.
//
// # Status ownership
//
// A Status is mutated by every call. The package keeps no mutable global
// state (its lookup tables are read-only), so concurrent use is safe as long
// as each goroutine owns its own Status.
//
// # Build tags
//
// The reciprocal approximation that seeds division is computed with a 64/32
// integer divide by default. Building with -tags softfloat_slowdiv switches
// to a 16-entry piecewise-linear table for hosts without fast division.
package softfloat
