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

package reference

import (
	"math"

	"github.com/ajroetker/go-fixvec/vector"
)

// fill writes v into every element; float32 vectors receive v as raw bits.
func fill(a *vector.Vector, v int32) {
	switch a.DType() {
	case vector.Int8:
		x := a.Int8s()
		for i := range x {
			x[i] = int8(v)
		}
	case vector.Int16:
		x := a.Int16s()
		for i := range x {
			x[i] = int16(v)
		}
	default:
		x := a.Bits32()
		for i := range x {
			x[i] = v
		}
	}
}

// Zeros sets every element to zero.
func Zeros(a *vector.Vector) error {
	if err := a.OK(); err != nil {
		return err
	}
	fill(a, 0)
	return nil
}

// Ones sets every element to one; float32 elements become 1.0.
func Ones(a *vector.Vector) error {
	if err := a.OK(); err != nil {
		return err
	}
	if a.DType() == vector.Float32 {
		fill(a, int32(math.Float32bits(1)))
	} else {
		fill(a, 1)
	}
	return nil
}

// Fill sets every element of an integer vector to v.
func Fill(a *vector.Vector, v int32) error {
	if err := a.OK(); err != nil {
		return err
	}
	if a.DType() == vector.Float32 {
		return vector.ErrUnsupported
	}
	if err := vector.CheckScalar(a.DType(), v); err != nil {
		return err
	}
	fill(a, v)
	return nil
}

// FillF32 sets every element of a float32 vector to v.
func FillF32(a *vector.Vector, v float32) error {
	if err := a.OK(); err != nil {
		return err
	}
	if a.DType() != vector.Float32 {
		return vector.ErrUnsupported
	}
	fill(a, int32(math.Float32bits(v)))
	return nil
}

// Copy copies src into dst element by element.
func Copy(src, dst *vector.Vector) error {
	if err := vector.CheckSame(src, dst); err != nil {
		return err
	}
	s, d := src.Bytes(), dst.Bytes()
	for i := range d {
		d[i] = s[i]
	}
	return nil
}

func widen[S int8 | int16, D int16 | int32](src []S, dst []D) {
	for i := range dst {
		dst[i] = D(src[i])
	}
}

// Convert sign-extends src into the wider dst.
func Convert(src, dst *vector.Vector) error {
	if err := vector.CheckHandles(src, dst); err != nil {
		return err
	}
	if err := vector.CheckSizes(src, dst); err != nil {
		return err
	}
	if !vector.CanConvert(src.DType(), dst.DType()) {
		return vector.ErrNotImplemented
	}
	switch {
	case src.DType() == vector.Int8 && dst.DType() == vector.Int16:
		widen(src.Int8s(), dst.Int16s())
	case src.DType() == vector.Int8:
		widen(src.Int8s(), dst.Int32s())
	default:
		widen(src.Int16s(), dst.Int32s())
	}
	return nil
}

// bitwise applies f to the raw bits of every element. Int8 and int16 are
// handled directly; int32 and float32 share the 32-bit view.
func bitwise(a, b, out *vector.Vector, f func(x, y int32) int32) error {
	if err := vector.CheckSame(a, b, out); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		x, y, o := a.Int8s(), b.Int8s(), out.Int8s()
		for i := range o {
			o[i] = int8(f(int32(x[i]), int32(y[i])))
		}
	case vector.Int16:
		x, y, o := a.Int16s(), b.Int16s(), out.Int16s()
		for i := range o {
			o[i] = int16(f(int32(x[i]), int32(y[i])))
		}
	default:
		x, y, o := a.Bits32(), b.Bits32(), out.Bits32()
		for i := range o {
			o[i] = f(x[i], y[i])
		}
	}
	return nil
}

// And computes out = a & b on the raw bits.
func And(a, b, out *vector.Vector) error {
	return bitwise(a, b, out, func(x, y int32) int32 { return x & y })
}

// Or computes out = a | b on the raw bits.
func Or(a, b, out *vector.Vector) error {
	return bitwise(a, b, out, func(x, y int32) int32 { return x | y })
}

// Xor computes out = a ^ b on the raw bits.
func Xor(a, b, out *vector.Vector) error {
	return bitwise(a, b, out, func(x, y int32) int32 { return x ^ y })
}

// Not computes out = ^a on the raw bits.
func Not(a, out *vector.Vector) error {
	return bitwise(a, a, out, func(x, _ int32) int32 { return ^x })
}

// compare applies f to integer elements. Float32 is not implemented.
func compare(a, b, out *vector.Vector, f func(x, y int32) int32) error {
	if err := vector.CheckSame(a, b, out); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		x, y, o := a.Int8s(), b.Int8s(), out.Int8s()
		for i := range o {
			o[i] = int8(f(int32(x[i]), int32(y[i])))
		}
	case vector.Int16:
		x, y, o := a.Int16s(), b.Int16s(), out.Int16s()
		for i := range o {
			o[i] = int16(f(int32(x[i]), int32(y[i])))
		}
	case vector.Int32:
		x, y, o := a.Int32s(), b.Int32s(), out.Int32s()
		for i := range o {
			o[i] = f(x[i], y[i])
		}
	default:
		return vector.ErrNotImplemented
	}
	return nil
}

func mask(ok bool) int32 {
	if ok {
		return -1
	}
	return 0
}

// Max computes the element-wise maximum of two integer vectors.
func Max(a, b, out *vector.Vector) error {
	return compare(a, b, out, func(x, y int32) int32 { return max(x, y) })
}

// Min computes the element-wise minimum of two integer vectors.
func Min(a, b, out *vector.Vector) error {
	return compare(a, b, out, func(x, y int32) int32 { return min(x, y) })
}

// Gt writes -1 where a > b and 0 elsewhere.
func Gt(a, b, out *vector.Vector) error {
	return compare(a, b, out, func(x, y int32) int32 { return mask(x > y) })
}

// Lt writes -1 where a < b and 0 elsewhere.
func Lt(a, b, out *vector.Vector) error {
	return compare(a, b, out, func(x, y int32) int32 { return mask(x < y) })
}

// Eq writes -1 where a == b and 0 elsewhere.
func Eq(a, b, out *vector.Vector) error {
	return compare(a, b, out, func(x, y int32) int32 { return mask(x == y) })
}
