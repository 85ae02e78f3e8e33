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

import (
	"math"

	"github.com/ajroetker/go-fixvec/hwy"
)

// widenI8 sign-extends one int8 register into four int32 registers.
func widenI8(v hwy.Vec[int8]) [4]hwy.Vec[int32] {
	lo := hwy.PromoteLowerI8ToI16(v)
	hi := hwy.PromoteUpperI8ToI16(v)
	return [4]hwy.Vec[int32]{
		hwy.PromoteLowerI16ToI32(lo),
		hwy.PromoteUpperI16ToI32(lo),
		hwy.PromoteLowerI16ToI32(hi),
		hwy.PromoteUpperI16ToI32(hi),
	}
}

// BaseSumI8 sums an int8 slice in a wrapping int32 accumulator.
func BaseSumI8(v []int8) int32 {
	lanes := hwy.MaxLanes[int8]()
	acc := hwy.Zero[int32]()
	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		for _, w := range widenI8(hwy.LoadFull(v[i:])) {
			acc = hwy.Add(acc, w)
		}
	}
	sum := hwy.ReduceSum(acc)
	for ; i < len(v); i++ {
		sum += int32(v[i])
	}
	return sum
}

// BaseSumI16 sums an int16 slice in a wrapping int32 accumulator.
func BaseSumI16(v []int16) int32 {
	lanes := hwy.MaxLanes[int16]()
	acc := hwy.Zero[int32]()
	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		va := hwy.LoadFull(v[i:])
		acc = hwy.Add(acc, hwy.PromoteLowerI16ToI32(va))
		acc = hwy.Add(acc, hwy.PromoteUpperI16ToI32(va))
	}
	sum := hwy.ReduceSum(acc)
	for ; i < len(v); i++ {
		sum += int32(v[i])
	}
	return sum
}

// BaseSumI32 sums an int32 slice.
//
// Full registers accumulate into one 64-bit accumulator per lane, each
// clamped to the int32 range after every addition. The clamped lanes and
// the tail elements are then combined with wrapping 32-bit addition.
func BaseSumI32(v []int32) int32 {
	lanes := hwy.MaxLanes[int32]()
	acc := make([]int64, lanes)
	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		for l, x := range hwy.PromoteI32ToI64(hwy.LoadFull(v[i:])) {
			acc[l] = min(max(acc[l]+x, math.MinInt32), math.MaxInt32)
		}
	}
	var sum uint32
	for _, a := range acc {
		sum += uint32(int32(a))
	}
	for ; i < len(v); i++ {
		sum += uint32(v[i])
	}
	return int32(sum)
}

// BaseSum sums a float slice.
func BaseSum[T hwy.Floats](v []T) T {
	lanes := hwy.MaxLanes[T]()
	acc := hwy.Zero[T]()
	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		acc = hwy.Add(acc, hwy.LoadFull(v[i:]))
	}
	sum := hwy.ReduceSum(acc)
	for ; i < len(v); i++ {
		sum += v[i]
	}
	return sum
}

// BaseDotI8 computes the dot product of two int8 slices in a wrapping int32
// accumulator. Each product is exact in 16 bits.
func BaseDotI8(a, b []int8) int32 {
	lanes := hwy.MaxLanes[int8]()
	acc := hwy.Zero[int32]()
	var i int
	for i = 0; i+lanes <= len(a); i += lanes {
		va := hwy.LoadFull(a[i:])
		vb := hwy.LoadFull(b[i:])
		for _, p := range []hwy.Vec[int16]{
			hwy.Mul(hwy.PromoteLowerI8ToI16(va), hwy.PromoteLowerI8ToI16(vb)),
			hwy.Mul(hwy.PromoteUpperI8ToI16(va), hwy.PromoteUpperI8ToI16(vb)),
		} {
			acc = hwy.Add(acc, hwy.PromoteLowerI16ToI32(p))
			acc = hwy.Add(acc, hwy.PromoteUpperI16ToI32(p))
		}
	}
	dot := hwy.ReduceSum(acc)
	for ; i < len(a); i++ {
		dot += int32(a[i]) * int32(b[i])
	}
	return dot
}

// BaseDotI16 computes the dot product of two int16 slices in a wrapping int32
// accumulator.
func BaseDotI16(a, b []int16) int32 {
	lanes := hwy.MaxLanes[int16]()
	acc := hwy.Zero[int32]()
	var i int
	for i = 0; i+lanes <= len(a); i += lanes {
		va := hwy.LoadFull(a[i:])
		vb := hwy.LoadFull(b[i:])
		acc = hwy.Add(acc, hwy.Mul(hwy.PromoteLowerI16ToI32(va), hwy.PromoteLowerI16ToI32(vb)))
		acc = hwy.Add(acc, hwy.Mul(hwy.PromoteUpperI16ToI32(va), hwy.PromoteUpperI16ToI32(vb)))
	}
	dot := hwy.ReduceSum(acc)
	for ; i < len(a); i++ {
		dot += int32(a[i]) * int32(b[i])
	}
	return dot
}

// BaseDotI32 computes the dot product of two int32 slices. Each product keeps
// its low 32 bits and the accumulator wraps.
func BaseDotI32(a, b []int32) int32 {
	lanes := hwy.MaxLanes[int32]()
	acc := hwy.Zero[int32]()
	var i int
	for i = 0; i+lanes <= len(a); i += lanes {
		acc = hwy.Add(acc, hwy.Mul(hwy.LoadFull(a[i:]), hwy.LoadFull(b[i:])))
	}
	dot := hwy.ReduceSum(acc)
	for ; i < len(a); i++ {
		dot += a[i] * b[i]
	}
	return dot
}

// BaseDot computes the dot product of two float slices.
func BaseDot[T hwy.Floats](a, b []T) T {
	lanes := hwy.MaxLanes[T]()
	acc := hwy.Zero[T]()
	var i int
	for i = 0; i+lanes <= len(a); i += lanes {
		acc = hwy.Add(acc, hwy.Mul(hwy.LoadFull(a[i:]), hwy.LoadFull(b[i:])))
	}
	dot := hwy.ReduceSum(acc)
	for ; i < len(a); i++ {
		dot += a[i] * b[i]
	}
	return dot
}

// BaseMACI8 adds the sum of a[i]*mult to *acc with wrapping 32-bit arithmetic.
func BaseMACI8(a []int8, acc *int32, mult int8) {
	lanes := hwy.MaxLanes[int8]()
	vm := hwy.Set(int32(mult))
	sum := hwy.Zero[int32]()
	var i int
	for i = 0; i+lanes <= len(a); i += lanes {
		for _, w := range widenI8(hwy.LoadFull(a[i:])) {
			sum = hwy.Add(sum, hwy.Mul(w, vm))
		}
	}
	total := hwy.ReduceSum(sum)
	for ; i < len(a); i++ {
		total += int32(a[i]) * int32(mult)
	}
	*acc += total
}

// BaseMACI16 adds the sum of a[i]*mult to *acc with wrapping 32-bit arithmetic.
func BaseMACI16(a []int16, acc *int32, mult int16) {
	lanes := hwy.MaxLanes[int16]()
	vm := hwy.Set(int32(mult))
	sum := hwy.Zero[int32]()
	var i int
	for i = 0; i+lanes <= len(a); i += lanes {
		va := hwy.LoadFull(a[i:])
		sum = hwy.Add(sum, hwy.Mul(hwy.PromoteLowerI16ToI32(va), vm))
		sum = hwy.Add(sum, hwy.Mul(hwy.PromoteUpperI16ToI32(va), vm))
	}
	total := hwy.ReduceSum(sum)
	for ; i < len(a); i++ {
		total += int32(a[i]) * int32(mult)
	}
	*acc += total
}

// BaseMACI32 adds the sum of a[i]*mult to *acc with wrapping 32-bit arithmetic.
func BaseMACI32(a []int32, acc *int32, mult int32) {
	lanes := hwy.MaxLanes[int32]()
	vm := hwy.Set(mult)
	sum := hwy.Zero[int32]()
	var i int
	for i = 0; i+lanes <= len(a); i += lanes {
		sum = hwy.Add(sum, hwy.Mul(hwy.LoadFull(a[i:]), vm))
	}
	total := hwy.ReduceSum(sum)
	for ; i < len(a); i++ {
		total += a[i] * mult
	}
	*acc += total
}

// BaseMAC adds the sum of a[i]*mult to *acc.
func BaseMAC[T hwy.Floats](a []T, acc *T, mult T) {
	lanes := hwy.MaxLanes[T]()
	vm := hwy.Set(mult)
	sum := hwy.Zero[T]()
	var i int
	for i = 0; i+lanes <= len(a); i += lanes {
		sum = hwy.Add(sum, hwy.Mul(hwy.LoadFull(a[i:]), vm))
	}
	total := *acc + hwy.ReduceSum(sum)
	for ; i < len(a); i++ {
		total += a[i] * mult
	}
	*acc = total
}
