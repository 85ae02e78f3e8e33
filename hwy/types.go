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

// Package hwy provides 128-bit lane vectors over the four element types of
// the fixed-point vector library: int8, int16, int32 and float32.
//
// A Vec holds one register's worth of lanes (16 bytes). Kernels walk a slice
// with ProcessWithTail, loading complete registers with LoadFull and the
// remainder as one partial register with Load:
//
//	hwy.ProcessWithTail[int16](len(out),
//		func(i int) {
//			r := hwy.SaturatedAdd(hwy.LoadFull(a[i:]), hwy.LoadFull(b[i:]))
//			hwy.StoreFull(r, out[i:])
//		},
//		func(i, n int) {
//			r := hwy.SaturatedAdd(hwy.Load(a[i:i+n]), hwy.Load(b[i:i+n]))
//			hwy.Store(r, out[i:i+n])
//		},
//	)
package hwy

// Floats is a constraint for the floating-point lane type.
type Floats interface {
	~float32
}

// Integers is a constraint for the signed integer lane types.
type Integers interface {
	~int8 | ~int16 | ~int32
}

// Lanes is a constraint for all types that can be stored in a lane.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable lane vector. It wraps at most MaxLanes[T]() elements.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Mask represents the result of a comparison operation.
//
// Mask instances should not be created directly; use Equal, LessThan or
// GreaterThan instead.
type Mask[T Lanes] struct {
	bits []bool
}
