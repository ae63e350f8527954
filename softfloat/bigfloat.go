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

import "math/big"

// bigFromParts returns (-1)^sign * sig * 2^exp exactly.
func bigFromParts(sign bool, sig uint64, exp int) *big.Float {
	z := new(big.Float).SetPrec(64).SetUint64(sig)
	z.SetMantExp(z, exp)
	if sign {
		z.Neg(z)
	}
	return z
}

func bigInf(sign bool) *big.Float { return new(big.Float).SetInf(sign) }

// BigFloat returns the exact value of a, or nil for NaNs.
func (a Float16) BigFloat() *big.Float {
	return bitsToBig(uint64(a), binary16)
}

// BigFloat returns the exact value of a, or nil for NaNs.
func (a Float32) BigFloat() *big.Float {
	return bitsToBig(uint64(a), binary32)
}

// BigFloat returns the exact value of a, or nil for NaNs.
func (a Float64) BigFloat() *big.Float {
	return bitsToBig(uint64(a), binary64)
}

func bitsToBig(a uint64, f binaryFormat) *big.Float {
	sign := a&f.signBit() != 0
	exp := int(a>>f.fracBits) & f.expMax()
	frac := a & (1<<f.fracBits - 1)
	switch {
	case exp == f.expMax() && frac != 0:
		return nil
	case exp == f.expMax():
		return bigInf(sign)
	case exp == 0:
		return bigFromParts(sign, frac, 1-f.bias-int(f.fracBits))
	}
	return bigFromParts(sign, frac|1<<f.fracBits, exp-f.bias-int(f.fracBits))
}

// BigFloat returns the exact value of a, or nil for NaNs and unsupported
// encodings. Denormals and pseudo-denormals use the exponent of 1.
func (a ExtFloat80) BigFloat() *big.Float {
	if a.IsNaN() || a.IsUnsupported() {
		return nil
	}
	if a.Exp() == extF80ExpMask {
		return bigInf(a.Sign())
	}
	return bigFromParts(a.Sign(), a.Signif, max(a.Exp(), 1)-extF80Bias-63)
}
