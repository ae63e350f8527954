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

// Package fpuenv translates between the x87 and SSE control/status
// registers and softfloat.Status.
//
// An emulator keeps FCW/FSW or MXCSR as plain integers, builds a Status
// from the control bits before each instruction, and folds the raised
// flags back into the status bits afterwards:
//
//	st := fpuenv.FromFCW(fcw)
//	r := softfloat.ExtF80Add(a, b, &st)
//	fsw = fpuenv.ApplyFSW(fsw, &st)
//	if fpuenv.Unmasked(&st) != 0 {
//	    // deliver #MF
//	}
package fpuenv

import "github.com/ajroetker/go-softfloat/softfloat"

// x87 control word fields.
const (
	FCWExceptionMask uint16 = 0x003F
	FCWPrecision     uint16 = 0x0300
	FCWRounding      uint16 = 0x0C00
	FCWInfinity      uint16 = 0x1000

	// fcwReserved are the bits that read as zero, except bit 6 which reads
	// as one.
	fcwReserved uint16 = 0xE0C0
)

// x87 status word fields.
const (
	FSWExceptions uint16 = 0x003F
	FSWStackFault uint16 = 0x0040
	FSWSummary    uint16 = 0x0080
	FSWC0         uint16 = 0x0100
	FSWC1         uint16 = 0x0200
	FSWC2         uint16 = 0x0400
	FSWTop        uint16 = 0x3800
	FSWC3         uint16 = 0x4000
	FSWBusy       uint16 = 0x8000
)

// MXCSR fields.
const (
	MXCSRExceptions uint32 = 0x003F
	MXCSRDAZ        uint32 = 0x0040
	MXCSRMasks      uint32 = 0x1F80
	MXCSRRounding   uint32 = 0x6000
	MXCSRFTZ        uint32 = 0x8000

	// MXCSRDefault is the power-on value: all exceptions masked, round to
	// nearest.
	MXCSRDefault uint32 = 0x1F80
)

// FCWDefault is the FNINIT control word: all exceptions masked, 64-bit
// precision, round to nearest.
const FCWDefault uint16 = 0x037F

// FromFCW builds the environment selected by an x87 control word. DAZ and
// FTZ do not exist on the x87 and are left off.
func FromFCW(fcw uint16) softfloat.Status {
	var prec softfloat.Precision
	switch (fcw & FCWPrecision) >> 8 {
	case 0:
		prec = softfloat.Precision32
	case 2:
		prec = softfloat.Precision64
	default:
		// 1 is reserved and behaves as 64-bit significand precision.
		prec = softfloat.Precision80
	}
	return softfloat.Status{
		RoundingMode:    softfloat.RoundingMode((fcw & FCWRounding) >> 10),
		Masks:           softfloat.Flags(fcw & FCWExceptionMask),
		ExtF80Precision: prec,
	}
}

// ToFCW encodes the control state of st as an x87 control word.
func ToFCW(st *softfloat.Status) uint16 {
	fcw := uint16(st.Masks&softfloat.FlagsAll) | 0x0040
	switch st.ExtF80Precision {
	case softfloat.Precision32:
	case softfloat.Precision64:
		fcw |= 2 << 8
	default:
		fcw |= 3 << 8
	}
	mode := st.RoundingMode
	if mode == softfloat.RoundNearMaxMag {
		mode = softfloat.RoundNearEven
	}
	return fcw | uint16(mode)<<10
}

// ApplyFSW merges the flags raised in st into the status word fsw and
// returns the result. Exception bits are sticky, C1 reports a rounded-up
// result, and ES and B are set while an unmasked exception is pending.
func ApplyFSW(fsw uint16, st *softfloat.Status) uint16 {
	fsw |= uint16(st.Flags & softfloat.FlagsAll)
	if st.Flags&softfloat.FlagRoundedUp != 0 {
		fsw |= FSWC1
	} else {
		fsw &^= FSWC1
	}
	return updateSummary(fsw, uint16(st.Masks))
}

// SetFCW mirrors FLDCW: it returns the control word with its reserved bits
// normalized and the status word with ES and B recomputed against the new
// masks.
func SetFCW(fcw, fsw uint16) (uint16, uint16) {
	fcw = fcw&^fcwReserved | 0x0040
	return fcw, updateSummary(fsw, fcw)
}

func updateSummary(fsw, masks uint16) uint16 {
	if fsw&^masks&FSWExceptions != 0 {
		return fsw | FSWSummary | FSWBusy
	}
	return fsw &^ (FSWSummary | FSWBusy)
}

// FromMXCSR builds the SSE environment selected by mxcsr. Extended
// precision stays at 80 bits since MXCSR does not control it.
func FromMXCSR(mxcsr uint32) softfloat.Status {
	return softfloat.Status{
		RoundingMode:         softfloat.RoundingMode((mxcsr & MXCSRRounding) >> 13),
		Masks:                softfloat.Flags((mxcsr & MXCSRMasks) >> 7),
		DenormalsAreZeros:    mxcsr&MXCSRDAZ != 0,
		FlushUnderflowToZero: mxcsr&MXCSRFTZ != 0,
		ExtF80Precision:      softfloat.Precision80,
	}
}

// ToMXCSR encodes the control state and flags of st as an MXCSR value.
func ToMXCSR(st *softfloat.Status) uint32 {
	mxcsr := uint32(st.Flags&softfloat.FlagsAll) | uint32(st.Masks&softfloat.FlagsAll)<<7
	mode := st.RoundingMode
	if mode == softfloat.RoundNearMaxMag {
		mode = softfloat.RoundNearEven
	}
	mxcsr |= uint32(mode) << 13
	if st.DenormalsAreZeros {
		mxcsr |= MXCSRDAZ
	}
	if st.FlushUnderflowToZero {
		mxcsr |= MXCSRFTZ
	}
	return mxcsr
}

// ApplyMXCSR ORs the flags raised in st into mxcsr.
func ApplyMXCSR(mxcsr uint32, st *softfloat.Status) uint32 {
	return mxcsr | uint32(st.Flags&softfloat.FlagsAll)
}

// Unmasked returns the exceptions raised in st that the environment does
// not mask. A non-zero result means the instruction must trap.
func Unmasked(st *softfloat.Status) softfloat.Flags {
	return st.Unmasked()
}
