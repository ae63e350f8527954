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

//go:build amd64

package hostfpu

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX {
		detected.FMA = cpu.X86.HasFMA
		// F16C shipped alongside FMA on every CPU that has both.
		detected.F16C = cpu.X86.HasFMA
	}
	// AVX-512 FP16 is not reported by x/sys/cpu yet.
	detected.AVX512FP16 = false
}
