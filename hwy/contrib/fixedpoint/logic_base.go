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

// BaseAndTo computes dst[i] = a[i] & b[i].
func BaseAndTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.And[T])
}

// BaseOrTo computes dst[i] = a[i] | b[i].
func BaseOrTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.Or[T])
}

// BaseXorTo computes dst[i] = a[i] ^ b[i].
func BaseXorTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.Xor[T])
}

// BaseNotTo computes dst[i] = ^a[i].
func BaseNotTo[T hwy.Integers](dst, a []T) {
	unaryTo(dst, a, hwy.Not[T])
}

// BaseCopyTo copies a into dst one register at a time.
func BaseCopyTo[T hwy.Integers](dst, a []T) {
	unaryTo(dst, a, func(v hwy.Vec[T]) hwy.Vec[T] { return v })
}

// BaseFill sets every element of dst to v.
func BaseFill[T hwy.Integers](dst []T, v T) {
	vv := hwy.Set(v)
	hwy.ProcessWithTail[T](len(dst),
		func(i int) { hwy.StoreFull(vv, dst[i:]) },
		func(i, n int) { hwy.Store(vv, dst[i:i+n]) },
	)
}

// BaseMaxTo computes dst[i] = max(a[i], b[i]).
func BaseMaxTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.Max[T])
}

// BaseMinTo computes dst[i] = min(a[i], b[i]).
func BaseMinTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, hwy.Min[T])
}

// BaseGreaterThanTo writes -1 where a[i] > b[i] and 0 elsewhere.
func BaseGreaterThanTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, maskOf(hwy.GreaterThan[T]))
}

// BaseLessThanTo writes -1 where a[i] < b[i] and 0 elsewhere.
func BaseLessThanTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, maskOf(hwy.LessThan[T]))
}

// BaseEqualTo writes -1 where a[i] == b[i] and 0 elsewhere.
func BaseEqualTo[T hwy.Integers](dst, a, b []T) {
	binaryTo(dst, a, b, maskOf(hwy.Equal[T]))
}

func maskOf[T hwy.Integers](cmp func(a, b hwy.Vec[T]) hwy.Mask[T]) func(a, b hwy.Vec[T]) hwy.Vec[T] {
	return func(a, b hwy.Vec[T]) hwy.Vec[T] { return hwy.MaskToVec(cmp(a, b)) }
}

// BaseConvertI8ToI16 sign-extends src into dst.
func BaseConvertI8ToI16(dst []int16, src []int8) {
	widenTo(dst, src, func(v hwy.Vec[int8]) []hwy.Vec[int16] {
		return []hwy.Vec[int16]{hwy.PromoteLowerI8ToI16(v), hwy.PromoteUpperI8ToI16(v)}
	})
}

// BaseConvertI8ToI32 sign-extends src into dst.
func BaseConvertI8ToI32(dst []int32, src []int8) {
	widenTo(dst, src, func(v hwy.Vec[int8]) []hwy.Vec[int32] {
		q := widenI8(v)
		return q[:]
	})
}

// BaseConvertI16ToI32 sign-extends src into dst.
func BaseConvertI16ToI32(dst []int32, src []int16) {
	widenTo(dst, src, func(v hwy.Vec[int16]) []hwy.Vec[int32] {
		return []hwy.Vec[int32]{hwy.PromoteLowerI16ToI32(v), hwy.PromoteUpperI16ToI32(v)}
	})
}
