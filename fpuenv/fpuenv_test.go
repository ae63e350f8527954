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

package fpuenv

import (
	"testing"

	"github.com/ajroetker/go-softfloat/softfloat"
)

func TestFromFCW(t *testing.T) {
	tests := []struct {
		name  string
		fcw   uint16
		mode  softfloat.RoundingMode
		prec  softfloat.Precision
		masks softfloat.Flags
	}{
		{"Default", FCWDefault, softfloat.RoundNearEven, softfloat.Precision80, softfloat.FlagsAll},
		{"Double", 0x027F, softfloat.RoundNearEven, softfloat.Precision64, softfloat.FlagsAll},
		{"SingleTruncate", 0x0C7F, softfloat.RoundToZero, softfloat.Precision32, softfloat.FlagsAll},
		{"ReservedPrecision", 0x017F, softfloat.RoundNearEven, softfloat.Precision80, softfloat.FlagsAll},
		{"DownInvalidUnmasked", 0x077E, softfloat.RoundDown, softfloat.Precision80, softfloat.FlagsAll &^ softfloat.FlagInvalid},
		{"Up", 0x0A40, softfloat.RoundUp, softfloat.Precision64, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := FromFCW(tt.fcw)
			if st.RoundingMode != tt.mode || st.ExtF80Precision != tt.prec || st.Masks != tt.masks {
				t.Errorf("FromFCW(%#04x) = mode %v prec %d masks %v", tt.fcw, st.RoundingMode, st.ExtF80Precision, st.Masks)
			}
			if st.DenormalsAreZeros || st.FlushUnderflowToZero {
				t.Error("x87 environment must not enable DAZ or FTZ")
			}
		})
	}
}

func TestToFCW(t *testing.T) {
	for _, fcw := range []uint16{FCWDefault, 0x027F, 0x0C7F, 0x077E, 0x0A40} {
		st := FromFCW(fcw)
		if got := ToFCW(&st); got != fcw {
			t.Errorf("ToFCW(FromFCW(%#04x)) = %#04x", fcw, got)
		}
	}
	st := softfloat.NewStatus()
	st.RoundingMode = softfloat.RoundNearMaxMag
	if got := ToFCW(st); got != FCWDefault {
		t.Errorf("ToFCW with ties-away = %#04x, want %#04x", got, FCWDefault)
	}
}

func TestApplyFSW(t *testing.T) {
	tests := []struct {
		name  string
		fsw   uint16
		flags softfloat.Flags
		masks softfloat.Flags
		want  uint16
	}{
		{"Clean", 0, 0, softfloat.FlagsAll, 0},
		{"InexactRoundedUp", 0, softfloat.FlagInexact | softfloat.FlagRoundedUp, softfloat.FlagsAll, 0x0220},
		{"C1Cleared", FSWC1 | FSWC3, softfloat.FlagInexact, softfloat.FlagsAll, 0x4020},
		{"Sticky", 0x0001, softfloat.FlagOverflow | softfloat.FlagInexact, softfloat.FlagsAll, 0x0029},
		{"Unmasked", 0, softfloat.FlagInvalid, softfloat.FlagsAll &^ softfloat.FlagInvalid, 0x8081},
		{"PendingFromEarlier", 0x0004, 0, softfloat.FlagsAll &^ softfloat.FlagInfinite, 0x8084},
		{"TopPreserved", 0x3800, softfloat.FlagDenormal, softfloat.FlagsAll, 0x3802},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := softfloat.Status{Flags: tt.flags, Masks: tt.masks}
			if got := ApplyFSW(tt.fsw, &st); got != tt.want {
				t.Errorf("ApplyFSW(%#04x, %v) = %#04x, want %#04x", tt.fsw, tt.flags, got, tt.want)
			}
		})
	}
}

func TestSetFCW(t *testing.T) {
	fcw, fsw := SetFCW(0x0000, 0x0001)
	if fcw != 0x0040 || fsw != 0x8081 {
		t.Errorf("SetFCW(0, 1) = %#04x, %#04x", fcw, fsw)
	}
	fcw, fsw = SetFCW(0xFFFF, fsw)
	if fcw != 0x1F7F || fsw != 0x0001 {
		t.Errorf("SetFCW(0xffff, 0x8081) = %#04x, %#04x", fcw, fsw)
	}
}

func TestMXCSR(t *testing.T) {
	st := FromMXCSR(MXCSRDefault)
	if st.RoundingMode != softfloat.RoundNearEven || st.Masks != softfloat.FlagsAll || st.DenormalsAreZeros || st.FlushUnderflowToZero {
		t.Errorf("FromMXCSR(default) = %+v", st)
	}
	st = FromMXCSR(0xFFC0)
	if st.RoundingMode != softfloat.RoundToZero || !st.DenormalsAreZeros || !st.FlushUnderflowToZero {
		t.Errorf("FromMXCSR(0xffc0) = %+v", st)
	}
	if got := ToMXCSR(&st); got != 0xFFC0 {
		t.Errorf("ToMXCSR = %#x, want 0xffc0", got)
	}
	st.Flags = softfloat.FlagOverflow | softfloat.FlagInexact | softfloat.FlagRoundedUp
	if got := ApplyMXCSR(MXCSRDefault, &st); got != 0x1FA8 {
		t.Errorf("ApplyMXCSR = %#x, want 0x1fa8", got)
	}
}

func TestFlushToZeroThroughMXCSR(t *testing.T) {
	const minNormal, half softfloat.Float32 = 0x00800000, 0x3F000000
	st := FromMXCSR(MXCSRDefault | MXCSRFTZ)
	if got := softfloat.F32Mul(minNormal, half, &st); got != 0 {
		t.Errorf("FTZ product = %v, want +0", got)
	}
	if got := ApplyMXCSR(MXCSRDefault|MXCSRFTZ, &st); got != 0x9FB0 {
		t.Errorf("MXCSR after FTZ = %#x, want 0x9fb0", got)
	}
	if Unmasked(&st) != 0 {
		t.Errorf("masked underflow reported as pending: %v", Unmasked(&st))
	}

	st = FromMXCSR(MXCSRDefault &^ (uint32(softfloat.FlagUnderflow) << 7))
	softfloat.F32Mul(minNormal, half, &st)
	if got := Unmasked(&st); got != softfloat.FlagUnderflow {
		t.Errorf("unmasked underflow: pending = %v", got)
	}
}

func TestRoundedUpSetsC1(t *testing.T) {
	one := softfloat.I32ToExtF80(1)
	three := softfloat.I32ToExtF80(3)
	st := FromFCW(FCWDefault)
	q := softfloat.ExtF80Div(one, three, &st)
	if q.Signif != 0xAAAAAAAAAAAAAAAB {
		t.Fatalf("1/3 = %v", q)
	}
	if got := ApplyFSW(0, &st); got != FSWC1|0x0020 {
		t.Errorf("FSW after 1/3 = %#04x, want C1|PE", got)
	}
}
