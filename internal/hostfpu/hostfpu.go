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

// Package hostfpu reports which floating-point features the host CPU
// provides, so the verification tools know when the native FPU can serve
// as a reference.
package hostfpu

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Features describes the host floating-point hardware.
type Features struct {
	Arch string

	// FMA is a fused multiply-add instruction (x86 FMA3, always on arm64).
	FMA bool

	// F16C converts between binary16 and binary32 (Haswell+).
	F16C bool

	// AVX512FP16 is native binary16 arithmetic (Sapphire Rapids+).
	AVX512FP16 bool

	// ARMFP16 is native binary16 arithmetic on arm64 (FEAT_FP16).
	ARMFP16 bool
}

// String lists the present features, e.g. "amd64 fma f16c".
func (f Features) String() string {
	parts := []string{f.Arch}
	for _, feat := range []struct {
		on   bool
		name string
	}{
		{f.FMA, "fma"},
		{f.F16C, "f16c"},
		{f.AVX512FP16, "avx512fp16"},
		{f.ARMFP16, "fp16"},
	} {
		if feat.on {
			parts = append(parts, feat.name)
		}
	}
	return strings.Join(parts, " ")
}

// detected is set by init() in detect_*.go files.
var detected = Features{Arch: runtime.GOARCH}

// Detect returns the features of the running CPU. With SOFTFLOAT_NO_HOST
// set every feature reads as absent.
func Detect() Features {
	if NoHostEnv() {
		return Features{Arch: runtime.GOARCH}
	}
	return detected
}

// NoHostEnv checks if the SOFTFLOAT_NO_HOST environment variable is set.
// When set, verification uses the exact big.Float oracle for every format
// instead of the host FPU.
func NoHostEnv() bool {
	val := os.Getenv("SOFTFLOAT_NO_HOST")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
