// Copyright 2025 go-highway Authors
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

package hwy

// This file provides sign-extending promotions between the integer lane types.
// Go generics can't express "T is narrower than U", so each widening has
// its own function. A full register of the narrow type widens into two
// registers of the wide type: PromoteLower takes the first half of the lanes
// and PromoteUpper the second.

// PromoteLowerI8ToI16 promotes only the lower half of int8 lanes to int16.
func PromoteLowerI8ToI16(v Vec[int8]) Vec[int16] {
	n := len(v.data) / 2
	result := make([]int16, n)
	for i := range n {
		result[i] = int16(v.data[i])
	}
	return Vec[int16]{data: result}
}

// PromoteUpperI8ToI16 promotes only the upper half of int8 lanes to int16.
func PromoteUpperI8ToI16(v Vec[int8]) Vec[int16] {
	half := len(v.data) / 2
	n := len(v.data) - half
	result := make([]int16, n)
	for i := range n {
		result[i] = int16(v.data[half+i])
	}
	return Vec[int16]{data: result}
}

// PromoteLowerI16ToI32 promotes only the lower half of int16 lanes to int32.
func PromoteLowerI16ToI32(v Vec[int16]) Vec[int32] {
	n := len(v.data) / 2
	result := make([]int32, n)
	for i := range n {
		result[i] = int32(v.data[i])
	}
	return Vec[int32]{data: result}
}

// PromoteUpperI16ToI32 promotes only the upper half of int16 lanes to int32.
func PromoteUpperI16ToI32(v Vec[int16]) Vec[int32] {
	half := len(v.data) / 2
	n := len(v.data) - half
	result := make([]int32, n)
	for i := range n {
		result[i] = int32(v.data[half+i])
	}
	return Vec[int32]{data: result}
}

// PromoteI32ToI64 widens int32 lanes into 64-bit accumulators.
// The result is a plain slice because int64 is not a lane type.
func PromoteI32ToI64(v Vec[int32]) []int64 {
	result := make([]int64, len(v.data))
	for i, val := range v.data {
		result[i] = int64(val)
	}
	return result
}
