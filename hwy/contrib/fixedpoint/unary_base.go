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

// signMask clears the sign bit of an IEEE-754 float32.
const signMask int32 = 0x7FFFFFFF

// BaseAbsSatTo computes dst[i] = |a[i]|, mapping the most negative value of
// T to the most positive one.
func BaseAbsSatTo[T hwy.Integers](dst, a []T) {
	unaryTo(dst, a, hwy.SaturatedAbs[T])
}

// BaseNegSatTo computes dst[i] = -a[i], mapping the most negative value of T
// to the most positive one.
func BaseNegSatTo[T hwy.Integers](dst, a []T) {
	unaryTo(dst, a, hwy.SaturatedNeg[T])
}

// BaseAbsWrapTo computes the two's-complement absolute value; the most
// negative value maps to itself.
func BaseAbsWrapTo[T hwy.Integers](dst, a []T) {
	unaryTo(dst, a, hwy.Abs[T])
}

// BaseNegWrapTo computes the two's-complement negation; the most negative
// value maps to itself.
func BaseNegWrapTo[T hwy.Integers](dst, a []T) {
	unaryTo(dst, a, hwy.Neg[T])
}

// BaseAbsF32To clears the sign bit of every element. NaN payloads are kept.
func BaseAbsF32To(dst, a []float32) {
	mask := hwy.Set(signMask)
	unaryTo(dst, a, func(v hwy.Vec[float32]) hwy.Vec[float32] {
		return hwy.BitCastI32ToF32(hwy.And(hwy.BitCastF32ToI32(v), mask))
	})
}

// BaseNegTo computes dst[i] = -a[i].
func BaseNegTo[T hwy.Floats](dst, a []T) {
	unaryTo(dst, a, hwy.Neg[T])
}

// BaseCeilTo clamps every element from above: dst[i] = min(a[i], bound).
func BaseCeilTo[T hwy.Lanes](dst, a []T, bound T) {
	vb := hwy.Set(bound)
	unaryTo(dst, a, func(v hwy.Vec[T]) hwy.Vec[T] { return hwy.Min(v, vb) })
}

// BaseFloorTo clamps every element from below: dst[i] = max(a[i], bound).
func BaseFloorTo[T hwy.Lanes](dst, a []T, bound T) {
	vb := hwy.Set(bound)
	unaryTo(dst, a, func(v hwy.Vec[T]) hwy.Vec[T] { return hwy.Max(v, vb) })
}

// BaseReLUTo computes the fixed-point leaky ReLU: positive elements pass
// through and the rest become (a[i] * mult) >> shift, truncated to T.
//
// With mult = 0 this is the plain ReLU.
func BaseReLUTo[T hwy.Integers](dst, a []T, mult T, shift uint) {
	vm := hwy.Set(mult)
	zero := hwy.Zero[T]()
	unaryTo(dst, a, func(v hwy.Vec[T]) hwy.Vec[T] {
		leak := hwy.MulShift(v, vm, int(shift))
		return hwy.IfThenElse(hwy.GreaterThan(v, zero), v, leak)
	})
}
