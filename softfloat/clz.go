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

// countLeadingZeros8Table[i] is the number of leading zero bits in the byte i.
// Built once at package initialisation and never written afterwards.
var countLeadingZeros8Table = func() (t [256]uint8) {
	for i := range t {
		n := uint8(8)
		for v := i; v != 0; v >>= 1 {
			n--
		}
		t[i] = n
	}
	return t
}()

func countLeadingZeros8(a uint8) int {
	return int(countLeadingZeros8Table[a])
}

func countLeadingZeros16(a uint16) int {
	count := 8
	if a >= 0x100 {
		count = 0
		a >>= 8
	}
	return count + int(countLeadingZeros8Table[a])
}

func countLeadingZeros32(a uint32) int {
	count := 0
	if a < 0x10000 {
		count = 16
		a <<= 16
	}
	if a < 0x1000000 {
		count += 8
		a <<= 8
	}
	return count + int(countLeadingZeros8Table[a>>24])
}

func countLeadingZeros64(a uint64) int {
	count := 0
	a32 := uint32(a >> 32)
	if a32 == 0 {
		count = 32
		a32 = uint32(a)
	}
	if a32 < 0x10000 {
		count += 16
		a32 <<= 16
	}
	if a32 < 0x1000000 {
		count += 8
		a32 <<= 8
	}
	return count + int(countLeadingZeros8Table[a32>>24])
}
