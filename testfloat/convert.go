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

package testfloat

import "github.com/ajroetker/go-softfloat/softfloat"

// toInt adapts a conversion taking an explicit mode and exact flag. The
// vector's rounding mode is used and inexact is always reported.
func toInt[A, R any](fn func(A, softfloat.RoundingMode, bool, *softfloat.Status) R) func(A, *softfloat.Status) R {
	return func(a A, st *softfloat.Status) R { return fn(a, st.RoundingMode, true, st) }
}

// minMag adapts the round-toward-zero conversions.
func minMag[A, R any](fn func(A, bool, *softfloat.Status) R) func(A, *softfloat.Status) R {
	return func(a A, st *softfloat.Status) R { return fn(a, true, st) }
}

// noStatus adapts the exact conversions to extended precision.
func noStatus[A, R any](fn func(A) R) func(A, *softfloat.Status) R {
	return func(a A, _ *softfloat.Status) R { return fn(a) }
}

func registerConversions(r *Registry) {
	r.Register(unary("f16_to_f32", f16Codec, f32Codec, softfloat.F16ToF32))
	r.Register(unary("f16_to_f64", f16Codec, f64Codec, softfloat.F16ToF64))
	r.Register(unary("f16_to_extF80", f16Codec, extF80Codec, softfloat.F16ToExtF80))
	r.Register(unary("f32_to_f16", f32Codec, f16Codec, softfloat.F32ToF16))
	r.Register(unary("f32_to_f64", f32Codec, f64Codec, softfloat.F32ToF64))
	r.Register(unary("f32_to_extF80", f32Codec, extF80Codec, softfloat.F32ToExtF80))
	r.Register(unary("f64_to_f16", f64Codec, f16Codec, softfloat.F64ToF16))
	r.Register(unary("f64_to_f32", f64Codec, f32Codec, softfloat.F64ToF32))
	r.Register(unary("f64_to_extF80", f64Codec, extF80Codec, softfloat.F64ToExtF80))
	r.Register(unary("extF80_to_f16", extF80Codec, f16Codec, softfloat.ExtF80ToF16))
	r.Register(unary("extF80_to_f32", extF80Codec, f32Codec, softfloat.ExtF80ToF32))
	r.Register(unary("extF80_to_f64", extF80Codec, f64Codec, softfloat.ExtF80ToF64))

	r.Register(unary("i32_to_f16", i32Codec, f16Codec, softfloat.I32ToF16))
	r.Register(unary("i32_to_f32", i32Codec, f32Codec, softfloat.I32ToF32))
	r.Register(unary("i32_to_f64", i32Codec, f64Codec, softfloat.I32ToF64))
	r.Register(unary("i32_to_extF80", i32Codec, extF80Codec, noStatus(softfloat.I32ToExtF80)))
	r.Register(unary("i64_to_f16", i64Codec, f16Codec, softfloat.I64ToF16))
	r.Register(unary("i64_to_f32", i64Codec, f32Codec, softfloat.I64ToF32))
	r.Register(unary("i64_to_f64", i64Codec, f64Codec, softfloat.I64ToF64))
	r.Register(unary("i64_to_extF80", i64Codec, extF80Codec, noStatus(softfloat.I64ToExtF80)))
	r.Register(unary("ui32_to_f16", ui32Codec, f16Codec, softfloat.UI32ToF16))
	r.Register(unary("ui32_to_f32", ui32Codec, f32Codec, softfloat.UI32ToF32))
	r.Register(unary("ui32_to_f64", ui32Codec, f64Codec, softfloat.UI32ToF64))
	r.Register(unary("ui32_to_extF80", ui32Codec, extF80Codec, noStatus(softfloat.UI32ToExtF80)))
	r.Register(unary("ui64_to_f16", ui64Codec, f16Codec, softfloat.UI64ToF16))
	r.Register(unary("ui64_to_f32", ui64Codec, f32Codec, softfloat.UI64ToF32))
	r.Register(unary("ui64_to_f64", ui64Codec, f64Codec, softfloat.UI64ToF64))
	r.Register(unary("ui64_to_extF80", ui64Codec, extF80Codec, noStatus(softfloat.UI64ToExtF80)))

	r.Register(unary("f16_to_i32", f16Codec, i32Codec, toInt(softfloat.F16ToI32)))
	r.Register(unary("f16_to_i64", f16Codec, i64Codec, toInt(softfloat.F16ToI64)))
	r.Register(unary("f16_to_ui32", f16Codec, ui32Codec, toInt(softfloat.F16ToUI32)))
	r.Register(unary("f16_to_ui64", f16Codec, ui64Codec, toInt(softfloat.F16ToUI64)))
	r.Register(unary("f32_to_i32", f32Codec, i32Codec, toInt(softfloat.F32ToI32)))
	r.Register(unary("f32_to_i64", f32Codec, i64Codec, toInt(softfloat.F32ToI64)))
	r.Register(unary("f32_to_ui32", f32Codec, ui32Codec, toInt(softfloat.F32ToUI32)))
	r.Register(unary("f32_to_ui64", f32Codec, ui64Codec, toInt(softfloat.F32ToUI64)))
	r.Register(unary("f64_to_i32", f64Codec, i32Codec, toInt(softfloat.F64ToI32)))
	r.Register(unary("f64_to_i64", f64Codec, i64Codec, toInt(softfloat.F64ToI64)))
	r.Register(unary("f64_to_ui32", f64Codec, ui32Codec, toInt(softfloat.F64ToUI32)))
	r.Register(unary("f64_to_ui64", f64Codec, ui64Codec, toInt(softfloat.F64ToUI64)))
	r.Register(unary("extF80_to_i32", extF80Codec, i32Codec, toInt(softfloat.ExtF80ToI32)))
	r.Register(unary("extF80_to_i64", extF80Codec, i64Codec, toInt(softfloat.ExtF80ToI64)))
	r.Register(unary("extF80_to_ui32", extF80Codec, ui32Codec, toInt(softfloat.ExtF80ToUI32)))
	r.Register(unary("extF80_to_ui64", extF80Codec, ui64Codec, toInt(softfloat.ExtF80ToUI64)))

	r.Register(unary("f16_to_i32_r_minMag", f16Codec, i32Codec, minMag(softfloat.F16ToI32RMinMag)))
	r.Register(unary("f16_to_i64_r_minMag", f16Codec, i64Codec, minMag(softfloat.F16ToI64RMinMag)))
	r.Register(unary("f16_to_ui32_r_minMag", f16Codec, ui32Codec, minMag(softfloat.F16ToUI32RMinMag)))
	r.Register(unary("f16_to_ui64_r_minMag", f16Codec, ui64Codec, minMag(softfloat.F16ToUI64RMinMag)))
	r.Register(unary("f32_to_i32_r_minMag", f32Codec, i32Codec, minMag(softfloat.F32ToI32RMinMag)))
	r.Register(unary("f32_to_i64_r_minMag", f32Codec, i64Codec, minMag(softfloat.F32ToI64RMinMag)))
	r.Register(unary("f32_to_ui32_r_minMag", f32Codec, ui32Codec, minMag(softfloat.F32ToUI32RMinMag)))
	r.Register(unary("f32_to_ui64_r_minMag", f32Codec, ui64Codec, minMag(softfloat.F32ToUI64RMinMag)))
	r.Register(unary("f64_to_i32_r_minMag", f64Codec, i32Codec, minMag(softfloat.F64ToI32RMinMag)))
	r.Register(unary("f64_to_i64_r_minMag", f64Codec, i64Codec, minMag(softfloat.F64ToI64RMinMag)))
	r.Register(unary("f64_to_ui32_r_minMag", f64Codec, ui32Codec, minMag(softfloat.F64ToUI32RMinMag)))
	r.Register(unary("f64_to_ui64_r_minMag", f64Codec, ui64Codec, minMag(softfloat.F64ToUI64RMinMag)))
	r.Register(unary("extF80_to_i32_r_minMag", extF80Codec, i32Codec, minMag(softfloat.ExtF80ToI32RMinMag)))
	r.Register(unary("extF80_to_i64_r_minMag", extF80Codec, i64Codec, minMag(softfloat.ExtF80ToI64RMinMag)))
}
