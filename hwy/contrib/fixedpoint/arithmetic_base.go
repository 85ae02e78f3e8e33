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

package fixedpoint

import "github.com/ajroetker/go-fixvec/hwy"

// BaseAddSatTo performs saturating element-wise addition: dst[i] = a[i] + b[i].
//
// Results outside the range of T clamp to its limits. All slices must have
// the same length.
//
// Example:
//
//	a := []int8{120, -120}
//	b := []int8{10, -10}
//	BaseAddSatTo(dst, a, b) // dst is now {127, -128}
func BaseAddSatTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.SaturatedAdd[T])
}

// BaseSubSatTo performs saturating element-wise subtraction: dst[i] = a[i] - b[i].
func BaseSubSatTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.SaturatedSub[T])
}

// BaseAddTo performs IEEE element-wise addition: dst[i] = a[i] + b[i].
func BaseAddTo[T hwy.Floats](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.Add[T])
}

// BaseSubTo performs IEEE element-wise subtraction: dst[i] = a[i] - b[i].
func BaseSubTo[T hwy.Floats](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.Sub[T])
}

// BaseAddScalarSatTo adds s to every element with saturation.
func BaseAddScalarSatTo[T hwy.Integers](dst, a []T, s T) {
	vs := hwy.Set(s)
	unaryTo(dst, a, func(v hwy.Vec[T]) hwy.Vec[T] { return hwy.SaturatedAdd(v, vs) })
}

// BaseAddScalarTo adds s to every element.
func BaseAddScalarTo[T hwy.Floats](dst, a []T, s T) {
	vs := hwy.Set(s)
	unaryTo(dst, a, func(v hwy.Vec[T]) hwy.Vec[T] { return hwy.Add(v, vs) })
}

// BaseMulShiftTo computes the fixed-point product dst[i] = (a[i] * b[i]) >> shift.
//
// The product is formed at 64-bit precision and shifted arithmetically; the
// result is truncated to T, not saturated.
//
// Example:
//
//	a := []int8{4}
//	b := []int8{32}
//	BaseMulShiftTo(dst, a, b, 3) // dst is now {16}
func BaseMulShiftTo[T hwy.Integers](dst, a, b []T, shift uint) {
	binaryTo(dst, a, b, func(x, y hwy.Vec[T]) hwy.Vec[T] { return hwy.MulShift(x, y, int(shift)) })
}

// BaseMulTo computes dst[i] = a[i] * b[i].
func BaseMulTo[T hwy.Floats](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.Mul[T])
}

// BaseMulScalarShiftTo computes dst[i] = (a[i] * s) >> shift with the same
// truncation rules as BaseMulShiftTo.
func BaseMulScalarShiftTo[T hwy.Integers](dst, a []T, s T, shift uint) {
	vs := hwy.Set(s)
	unaryTo(dst, a, func(v hwy.Vec[T]) hwy.Vec[T] { return hwy.MulShift(v, vs, int(shift)) })
}

// BaseMulScalarTo computes dst[i] = a[i] * s.
func BaseMulScalarTo[T hwy.Floats](dst, a []T, s T) {
	vs := hwy.Set(s)
	unaryTo(dst, a, func(v hwy.Vec[T]) hwy.Vec[T] { return hwy.Mul(v, vs) })
}

// BaseMulWidenI8To computes the exact int16 products of two int8 slices.
// One int8 register widens into two int16 registers.
func BaseMulWidenI8To(dst []int16, a, b []int8) {
	widenBinaryTo(dst, a, b, func(va, vb hwy.Vec[int8]) []hwy.Vec[int16] {
		return []hwy.Vec[int16]{
			hwy.Mul(hwy.PromoteLowerI8ToI16(va), hwy.PromoteLowerI8ToI16(vb)),
			hwy.Mul(hwy.PromoteUpperI8ToI16(va), hwy.PromoteUpperI8ToI16(vb)),
		}
	})
}

// BaseMulWidenI16To computes the exact int32 products of two int16 slices.
func BaseMulWidenI16To(dst []int32, a, b []int16) {
	widenBinaryTo(dst, a, b, func(va, vb hwy.Vec[int16]) []hwy.Vec[int32] {
		return []hwy.Vec[int32]{
			hwy.Mul(hwy.PromoteLowerI16ToI32(va), hwy.PromoteLowerI16ToI32(vb)),
			hwy.Mul(hwy.PromoteUpperI16ToI32(va), hwy.PromoteUpperI16ToI32(vb)),
		}
	})
}
