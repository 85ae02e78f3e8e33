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

// Package reference is the scalar oracle for every vector operation.
//
// Each function takes the same arguments as its vector.Ops counterpart,
// validates them in the same order and returns the same errors, but computes
// the result with plain element-by-element loops. The differential harness
// checks the dispatch layer against these functions.
package reference

import (
	"math"

	"github.com/ajroetker/go-fixvec/vector"
)

type integer interface {
	int8 | int16 | int32
}

func saturate[T integer](v int64) T {
	lo, hi := vector.ScalarRange(vector.DTypeOf[T]())
	switch {
	case v > int64(hi):
		return T(hi)
	case v < int64(lo):
		return T(lo)
	default:
		return T(v)
	}
}

func addSat[T integer](a, b, out []T) {
	for i := range out {
		out[i] = saturate[T](int64(a[i]) + int64(b[i]))
	}
}

func subSat[T integer](a, b, out []T) {
	for i := range out {
		out[i] = saturate[T](int64(a[i]) - int64(b[i]))
	}
}

// Add computes out = a + b, saturating for integer dtypes.
func Add(a, b, out *vector.Vector) error {
	if err := vector.CheckSame(a, b, out); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		addSat(a.Int8s(), b.Int8s(), out.Int8s())
	case vector.Int16:
		addSat(a.Int16s(), b.Int16s(), out.Int16s())
	case vector.Int32:
		addSat(a.Int32s(), b.Int32s(), out.Int32s())
	case vector.Float32:
		x, y, o := a.Float32s(), b.Float32s(), out.Float32s()
		for i := range o {
			o[i] = x[i] + y[i]
		}
	}
	return nil
}

// Sub computes out = a - b, saturating for integer dtypes.
func Sub(a, b, out *vector.Vector) error {
	if err := vector.CheckSame(a, b, out); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		subSat(a.Int8s(), b.Int8s(), out.Int8s())
	case vector.Int16:
		subSat(a.Int16s(), b.Int16s(), out.Int16s())
	case vector.Int32:
		subSat(a.Int32s(), b.Int32s(), out.Int32s())
	case vector.Float32:
		x, y, o := a.Float32s(), b.Float32s(), out.Float32s()
		for i := range o {
			o[i] = x[i] - y[i]
		}
	}
	return nil
}

// checkIntScalar validates a vector/scalar integer operation: float32 is
// unsupported and s must fit the dtype.
func checkIntScalar(a, out *vector.Vector, s int32) error {
	if err := vector.CheckSame(a, out); err != nil {
		return err
	}
	if a.DType() == vector.Float32 {
		return vector.ErrUnsupported
	}
	return vector.CheckScalar(a.DType(), s)
}

func checkFloatScalar(a, out *vector.Vector) error {
	if err := vector.CheckSame(a, out); err != nil {
		return err
	}
	if a.DType() != vector.Float32 {
		return vector.ErrUnsupported
	}
	return nil
}

func addScalarSat[T integer](a []T, s int32, out []T) {
	for i := range out {
		out[i] = saturate[T](int64(a[i]) + int64(s))
	}
}

// AddScalar computes out = a + s with saturation.
func AddScalar(a *vector.Vector, s int32, out *vector.Vector) error {
	if err := checkIntScalar(a, out, s); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		addScalarSat(a.Int8s(), s, out.Int8s())
	case vector.Int16:
		addScalarSat(a.Int16s(), s, out.Int16s())
	case vector.Int32:
		addScalarSat(a.Int32s(), s, out.Int32s())
	}
	return nil
}

// AddScalarF32 computes out = a + s for float32 vectors.
func AddScalarF32(a *vector.Vector, s float32, out *vector.Vector) error {
	if err := checkFloatScalar(a, out); err != nil {
		return err
	}
	x, o := a.Float32s(), out.Float32s()
	for i := range o {
		o[i] = x[i] + s
	}
	return nil
}

func mulShift[T integer](a, b, out []T, shift uint) {
	for i := range out {
		out[i] = T((int64(a[i]) * int64(b[i])) >> shift)
	}
}

// Mul computes out = (a * b) >> shift, truncated, for integer dtypes and
// the plain product for float32.
func Mul(a, b, out *vector.Vector, shift uint) error {
	if err := vector.CheckSame(a, b, out); err != nil {
		return err
	}
	if a.DType().IsInteger() {
		if err := vector.CheckShift(a.DType(), shift); err != nil {
			return err
		}
	}
	switch a.DType() {
	case vector.Int8:
		mulShift(a.Int8s(), b.Int8s(), out.Int8s(), shift)
	case vector.Int16:
		mulShift(a.Int16s(), b.Int16s(), out.Int16s(), shift)
	case vector.Int32:
		mulShift(a.Int32s(), b.Int32s(), out.Int32s(), shift)
	case vector.Float32:
		x, y, o := a.Float32s(), b.Float32s(), out.Float32s()
		for i := range o {
			o[i] = x[i] * y[i]
		}
	}
	return nil
}

func mulScalarShift[T integer](a []T, s int32, out []T, shift uint) {
	for i := range out {
		out[i] = T((int64(a[i]) * int64(s)) >> shift)
	}
}

// MulScalar computes out = (a * s) >> shift, truncated.
func MulScalar(a *vector.Vector, s int32, out *vector.Vector, shift uint) error {
	if err := checkIntScalar(a, out, s); err != nil {
		return err
	}
	if err := vector.CheckShift(a.DType(), shift); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		mulScalarShift(a.Int8s(), s, out.Int8s(), shift)
	case vector.Int16:
		mulScalarShift(a.Int16s(), s, out.Int16s(), shift)
	case vector.Int32:
		mulScalarShift(a.Int32s(), s, out.Int32s(), shift)
	}
	return nil
}

// MulScalarF32 computes out = a * s for float32 vectors.
func MulScalarF32(a *vector.Vector, s float32, out *vector.Vector) error {
	if err := checkFloatScalar(a, out); err != nil {
		return err
	}
	x, o := a.Float32s(), out.Float32s()
	for i := range o {
		o[i] = x[i] * s
	}
	return nil
}

// MulWiden computes the exact products of two int8 vectors into int16, or of
// two int16 vectors into int32.
func MulWiden(a, b, out *vector.Vector) error {
	if err := vector.CheckHandles(a, b, out); err != nil {
		return err
	}
	if err := vector.CheckSizes(a, b, out); err != nil {
		return err
	}
	if err := vector.CheckDTypes(a, b); err != nil {
		return err
	}
	if target, ok := vector.WidenTarget(a.DType()); !ok || out.DType() != target {
		return vector.ErrTypeMismatch
	}
	switch a.DType() {
	case vector.Int8:
		x, y, o := a.Int8s(), b.Int8s(), out.Int16s()
		for i := range o {
			o[i] = int16(x[i]) * int16(y[i])
		}
	case vector.Int16:
		x, y, o := a.Int16s(), b.Int16s(), out.Int32s()
		for i := range o {
			o[i] = int32(x[i]) * int32(y[i])
		}
	}
	return nil
}

func absSat[T integer](a, out []T) {
	for i := range out {
		x := int64(a[i])
		if x < 0 {
			x = -x
		}
		out[i] = saturate[T](x)
	}
}

func negSat[T integer](a, out []T) {
	for i := range out {
		out[i] = saturate[T](-int64(a[i]))
	}
}

// Abs computes out = |a|. Int8 and int16 map the minimum to the maximum;
// int32 wraps. Float32 clears the sign bit.
func Abs(a, out *vector.Vector) error {
	if err := vector.CheckSame(a, out); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		absSat(a.Int8s(), out.Int8s())
	case vector.Int16:
		absSat(a.Int16s(), out.Int16s())
	case vector.Int32:
		x, o := a.Int32s(), out.Int32s()
		for i := range o {
			if x[i] < 0 {
				o[i] = -x[i]
			} else {
				o[i] = x[i]
			}
		}
	case vector.Float32:
		x, o := a.Float32s(), out.Float32s()
		for i := range o {
			o[i] = math.Float32frombits(math.Float32bits(x[i]) & 0x7FFFFFFF)
		}
	}
	return nil
}

// Neg computes out = -a with the saturation rules of Abs.
func Neg(a, out *vector.Vector) error {
	if err := vector.CheckSame(a, out); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		negSat(a.Int8s(), out.Int8s())
	case vector.Int16:
		negSat(a.Int16s(), out.Int16s())
	case vector.Int32:
		x, o := a.Int32s(), out.Int32s()
		for i := range o {
			o[i] = -x[i]
		}
	case vector.Float32:
		x, o := a.Float32s(), out.Float32s()
		for i := range o {
			o[i] = -x[i]
		}
	}
	return nil
}

func clampAbove[T integer | float32](a []T, bound T, out []T) {
	for i := range out {
		if a[i] > bound {
			out[i] = bound
		} else {
			out[i] = a[i]
		}
	}
}

func clampBelow[T integer | float32](a []T, bound T, out []T) {
	for i := range out {
		if a[i] < bound {
			out[i] = bound
		} else {
			out[i] = a[i]
		}
	}
}

// Ceil computes out = min(a, bound).
func Ceil(a, out *vector.Vector, bound int32) error {
	if err := checkIntScalar(a, out, bound); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		clampAbove(a.Int8s(), int8(bound), out.Int8s())
	case vector.Int16:
		clampAbove(a.Int16s(), int16(bound), out.Int16s())
	case vector.Int32:
		clampAbove(a.Int32s(), bound, out.Int32s())
	}
	return nil
}

// CeilF32 computes out = min(a, bound) for float32 vectors.
func CeilF32(a, out *vector.Vector, bound float32) error {
	if err := checkFloatScalar(a, out); err != nil {
		return err
	}
	clampAbove(a.Float32s(), bound, out.Float32s())
	return nil
}

// Floor computes out = max(a, bound).
func Floor(a, out *vector.Vector, bound int32) error {
	if err := checkIntScalar(a, out, bound); err != nil {
		return err
	}
	switch a.DType() {
	case vector.Int8:
		clampBelow(a.Int8s(), int8(bound), out.Int8s())
	case vector.Int16:
		clampBelow(a.Int16s(), int16(bound), out.Int16s())
	case vector.Int32:
		clampBelow(a.Int32s(), bound, out.Int32s())
	}
	return nil
}

// FloorF32 computes out = max(a, bound) for float32 vectors.
func FloorF32(a, out *vector.Vector, bound float32) error {
	if err := checkFloatScalar(a, out); err != nil {
		return err
	}
	clampBelow(a.Float32s(), bound, out.Float32s())
	return nil
}

func relu[T integer](a []T, mult int32, shift uint, out []T) {
	for i := range out {
		if a[i] > 0 {
			out[i] = a[i]
		} else {
			out[i] = T((int64(a[i]) * int64(mult)) >> shift)
		}
	}
}

// ReLU computes the leaky ReLU of an int8 or int16 vector: positive elements
// pass through, the rest become (x * mult) >> shift.
func ReLU(a, out *vector.Vector, mult int32, shift uint) error {
	if err := vector.CheckSame(a, out); err != nil {
		return err
	}
	dt := a.DType()
	if dt != vector.Int8 && dt != vector.Int16 {
		return vector.ErrUnsupported
	}
	if err := vector.CheckScalar(dt, mult); err != nil {
		return err
	}
	if err := vector.CheckShift(dt, shift); err != nil {
		return err
	}
	if dt == vector.Int8 {
		relu(a.Int8s(), mult, shift, out.Int8s())
	} else {
		relu(a.Int16s(), mult, shift, out.Int16s())
	}
	return nil
}
