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

import "strings"

// RoundingMode selects how inexact results are rounded.
// The values match the x87 RC and SSE MXCSR.RC encodings for the first four.
type RoundingMode uint8

const (
	// RoundNearEven rounds to nearest, ties to even.
	RoundNearEven RoundingMode = 0
	// RoundDown rounds toward negative infinity.
	RoundDown RoundingMode = 1
	// RoundUp rounds toward positive infinity.
	RoundUp RoundingMode = 2
	// RoundToZero truncates toward zero.
	RoundToZero RoundingMode = 3
	// RoundNearMaxMag rounds to nearest, ties away from zero.
	RoundNearMaxMag RoundingMode = 4
)

// Aliases in IEEE 754-2008 vocabulary.
const (
	RoundMin    = RoundDown
	RoundMax    = RoundUp
	RoundMinMag = RoundToZero
)

// RoundingModes lists every supported mode, in encoding order.
var RoundingModes = []RoundingMode{RoundNearEven, RoundDown, RoundUp, RoundToZero, RoundNearMaxMag}

// String returns the TestFloat style mode name.
func (m RoundingMode) String() string {
	switch m {
	case RoundNearEven:
		return "rne"
	case RoundDown:
		return "rdn"
	case RoundUp:
		return "rup"
	case RoundToZero:
		return "rtz"
	case RoundNearMaxMag:
		return "rmm"
	default:
		return "r?"
	}
}

// ParseRoundingMode is the inverse of RoundingMode.String.
func ParseRoundingMode(s string) (RoundingMode, bool) {
	for _, m := range RoundingModes {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// Flags is a set of IEEE exception flags. The low six bits use the x87
// status word and MXCSR bit positions.
type Flags uint16

const (
	FlagInvalid   Flags = 0x01
	FlagDenormal  Flags = 0x02
	FlagInfinite  Flags = 0x04 // divide by zero
	FlagOverflow  Flags = 0x08
	FlagUnderflow Flags = 0x10
	FlagInexact   Flags = 0x20

	// FlagRoundedUp reports that the last rounding increased the magnitude
	// of the result. The x87 exposes it as condition code C1.
	FlagRoundedUp Flags = 0x200

	// FlagDivByZero is the IEEE name for FlagInfinite.
	FlagDivByZero = FlagInfinite

	// FlagsAll covers the six IEEE exceptions.
	FlagsAll Flags = 0x3F
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagInvalid, "invalid"},
	{FlagDenormal, "denormal"},
	{FlagInfinite, "infinite"},
	{FlagOverflow, "overflow"},
	{FlagUnderflow, "underflow"},
	{FlagInexact, "inexact"},
	{FlagRoundedUp, "roundedup"},
}

// String lists the set flags separated by '|', or "none".
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Precision is the x87 precision-control setting for extended results.
type Precision uint8

const (
	Precision32 Precision = 32
	Precision64 Precision = 64
	Precision80 Precision = 80
)

// Status is the floating-point environment threaded through every
// operation. Operations only OR bits into Flags; clearing them is the
// caller's job.
type Status struct {
	RoundingMode RoundingMode

	// Flags accumulates raised exceptions (and FlagRoundedUp).
	Flags Flags

	// Masks holds the masked exceptions. Unmasked overflow and underflow
	// change the delivered result the way x87 and SSE hardware do.
	Masks Flags

	// Suppress lists exceptions that are never recorded in Flags.
	Suppress Flags

	// DenormalsAreZeros treats subnormal inputs as signed zeros (MXCSR.DAZ).
	DenormalsAreZeros bool

	// FlushUnderflowToZero replaces tiny results by signed zero
	// (MXCSR.FTZ).
	FlushUnderflowToZero bool

	// ExtF80Precision rounds extended results to 32, 64 or 80 bits.
	ExtF80Precision Precision
}

// NewStatus returns the power-on environment: round to nearest even, all
// exceptions masked, full extended precision.
func NewStatus() *Status {
	return &Status{
		RoundingMode:    RoundNearEven,
		Masks:           FlagsAll,
		ExtF80Precision: Precision80,
	}
}

// Raise records exceptions in Flags, dropping suppressed ones.
func (s *Status) Raise(f Flags) {
	s.Flags |= f &^ s.Suppress
}

// IsMasked reports whether every exception in f is masked.
func (s *Status) IsMasked(f Flags) bool {
	return s.Masks&f == f
}

// Clear resets the accumulated flags.
func (s *Status) Clear() {
	s.Flags = 0
}

// SaveAndClear returns the accumulated flags and clears them, so a caller
// can observe the exceptions of a single operation and merge them back.
func (s *Status) SaveAndClear() Flags {
	f := s.Flags
	s.Flags = 0
	return f
}

// Unmasked returns the raised exceptions that are not masked.
func (s *Status) Unmasked() Flags {
	return s.Flags & FlagsAll &^ s.Masks
}

func (s *Status) setRoundedUp() {
	s.Flags |= FlagRoundedUp
}

func (s *Status) precision() Precision {
	switch s.ExtF80Precision {
	case Precision32, Precision64:
		return s.ExtF80Precision
	default:
		return Precision80
	}
}
