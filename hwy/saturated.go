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

import (
	"math"
	"unsafe"
)

// This file provides saturated and fixed-point arithmetic.
// Saturated operations clamp results to the type's valid range instead of wrapping.

// SaturatedAdd performs element-wise addition with saturation.
// For example, int8: 120 + 10 = 127 (not -126).
func SaturatedAdd[T Integers](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = saturate[T](int64(a.data[i]) + int64(b.data[i]))
	}
	return Vec[T]{data: result}
}

// SaturatedSub performs element-wise subtraction with saturation.
// For example, int8: -120 - 10 = -128 (not 126).
func SaturatedSub[T Integers](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = saturate[T](int64(a.data[i]) - int64(b.data[i]))
	}
	return Vec[T]{data: result}
}

// SaturatedNeg negates each lane, mapping the most negative value to the
// most positive one.
func SaturatedNeg[T Integers](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, val := range v.data {
		result[i] = saturate[T](-int64(val))
	}
	return Vec[T]{data: result}
}

// SaturatedAbs computes |x| for each lane, mapping the most negative value
// to the most positive one.
func SaturatedAbs[T Integers](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, val := range v.data {
		w := int64(val)
		if w < 0 {
			w = -w
		}
		result[i] = saturate[T](w)
	}
	return Vec[T]{data: result}
}

// MulShift computes the fixed-point product (a * b) >> shift per lane.
// The full product is formed in 64 bits, shifted arithmetically and then
// truncated to T without saturation.
func MulShift[T Integers](a, b Vec[T], shift int) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = T((int64(a.data[i]) * int64(b.data[i])) >> uint(shift))
	}
	return Vec[T]{data: result}
}

// Limits returns the most negative and most positive values of T.
func Limits[T Integers]() (lo, hi int64) {
	var zero T
	switch unsafe.Sizeof(zero) {
	case 1:
		return math.MinInt8, math.MaxInt8
	case 2:
		return math.MinInt16, math.MaxInt16
	default:
		return math.MinInt32, math.MaxInt32
	}
}

func saturate[T Integers](v int64) T {
	lo, hi := Limits[T]()
	if v > hi {
		return T(hi)
	}
	if v < lo {
		return T(lo)
	}
	return T(v)
}
