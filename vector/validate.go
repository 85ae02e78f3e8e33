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

package vector

import "math"

// The checks in this file run before any element is touched. Every
// operation applies them in the same order: handle validity, then sizes,
// then dtypes, then dtype support, then scalar ranges.

// CheckHandles runs OK on every handle and returns the first failure.
func CheckHandles(vs ...*Vector) error {
	for _, v := range vs {
		if err := v.OK(); err != nil {
			return err
		}
	}
	return nil
}

// CheckSizes returns ErrSizeMismatch unless all vectors share a length.
func CheckSizes(first *Vector, rest ...*Vector) error {
	for _, v := range rest {
		if v.size != first.size {
			return ErrSizeMismatch
		}
	}
	return nil
}

// CheckDTypes returns ErrTypeMismatch unless all vectors share a dtype.
func CheckDTypes(first *Vector, rest ...*Vector) error {
	for _, v := range rest {
		if v.dtype != first.dtype {
			return ErrTypeMismatch
		}
	}
	return nil
}

// CheckSame validates the handles and requires a common length and dtype.
func CheckSame(first *Vector, rest ...*Vector) error {
	if err := first.OK(); err != nil {
		return err
	}
	if err := CheckHandles(rest...); err != nil {
		return err
	}
	if err := CheckSizes(first, rest...); err != nil {
		return err
	}
	return CheckDTypes(first, rest...)
}

// ScalarRange returns the inclusive range of scalars representable by dt.
// Float32 reports the int32 range, which the float variants never consult.
func ScalarRange(dt DType) (lo, hi int32) {
	switch dt {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	default:
		return math.MinInt32, math.MaxInt32
	}
}

// CheckScalar returns ErrInvalidArgument if s is not representable in dt.
func CheckScalar(dt DType, s int32) error {
	lo, hi := ScalarRange(dt)
	if s < lo || s > hi {
		return ErrInvalidArgument
	}
	return nil
}

// MaxShift returns the largest fixed-point shift allowed for dt: one less
// than the element width in bits.
func MaxShift(dt DType) uint {
	return uint(dt.Size()*8 - 1)
}

// CheckShift returns ErrInvalidArgument if shift exceeds MaxShift(dt).
func CheckShift(dt DType, shift uint) error {
	if shift > MaxShift(dt) {
		return ErrInvalidArgument
	}
	return nil
}

// WidenTarget returns the dtype produced by multiply-widen of dt, and
// whether the widening is defined.
func WidenTarget(dt DType) (DType, bool) {
	switch dt {
	case Int8:
		return Int16, true
	case Int16:
		return Int32, true
	default:
		return 0, false
	}
}

// CanConvert reports whether the widening copy from src to dst is defined.
// Only int8→int16, int8→int32 and int16→int32 are.
func CanConvert(src, dst DType) bool {
	switch {
	case src == Int8 && (dst == Int16 || dst == Int32):
		return true
	case src == Int16 && dst == Int32:
		return true
	default:
		return false
	}
}
