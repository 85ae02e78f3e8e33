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

func sumNarrow[T int8 | int16](a []T) int32 {
	var s int32
	for _, x := range a {
		s += int32(x)
	}
	return s
}

// sumInt32 keeps four 64-bit partial sums, one per 128-bit lane position,
// clamping each to the int32 range after every addition. The partials and
// the leftover elements are then combined with wrapping 32-bit addition.
func sumInt32(a []int32) int32 {
	var lanes [4]int64
	n := len(a) &^ 3
	for i := 0; i < n; i += 4 {
		for l := range lanes {
			lanes[l] = min(max(lanes[l]+int64(a[i+l]), math.MinInt32), math.MaxInt32)
		}
	}
	var s uint32
	for _, l := range lanes {
		s += uint32(int32(l))
	}
	for _, x := range a[n:] {
		s += uint32(x)
	}
	return int32(s)
}

// Sum returns the sum of an integer vector in a 32-bit accumulator.
func Sum(a *vector.Vector) (int32, error) {
	if err := a.OK(); err != nil {
		return 0, err
	}
	switch a.DType() {
	case vector.Int8:
		return sumNarrow(a.Int8s()), nil
	case vector.Int16:
		return sumNarrow(a.Int16s()), nil
	case vector.Int32:
		return sumInt32(a.Int32s()), nil
	default:
		return 0, vector.ErrUnsupported
	}
}

// SumF32 returns the sequential sum of a float32 vector.
func SumF32(a *vector.Vector) (float32, error) {
	if err := a.OK(); err != nil {
		return 0, err
	}
	if a.DType() != vector.Float32 {
		return 0, vector.ErrUnsupported
	}
	var s float32
	for _, x := range a.Float32s() {
		s += x
	}
	return s, nil
}

func dotNarrow[T int8 | int16](a, b []T) int32 {
	var s int32
	for i := range a {
		s += int32(a[i]) * int32(b[i])
	}
	return s
}

// Dot returns the dot product of two integer vectors. The accumulator wraps.
func Dot(a, b *vector.Vector) (int32, error) {
	if err := vector.CheckSame(a, b); err != nil {
		return 0, err
	}
	switch a.DType() {
	case vector.Int8:
		return dotNarrow(a.Int8s(), b.Int8s()), nil
	case vector.Int16:
		return dotNarrow(a.Int16s(), b.Int16s()), nil
	case vector.Int32:
		x, y := a.Int32s(), b.Int32s()
		var s int32
		for i := range x {
			s += int32(int64(x[i]) * int64(y[i]))
		}
		return s, nil
	default:
		return 0, vector.ErrUnsupported
	}
}

// DotF32 returns the sequential dot product of two float32 vectors.
func DotF32(a, b *vector.Vector) (float32, error) {
	if err := vector.CheckSame(a, b); err != nil {
		return 0, err
	}
	if a.DType() != vector.Float32 {
		return 0, vector.ErrUnsupported
	}
	x, y := a.Float32s(), b.Float32s()
	var s float32
	for i := range x {
		s += x[i] * y[i]
	}
	return s, nil
}

func macSum[T int8 | int16 | int32](a []T, mult int32) int32 {
	var s int32
	for _, x := range a {
		s += int32(x) * mult
	}
	return s
}

// MAC adds the sum of a[i]*mult to *acc with wrapping arithmetic.
func MAC(a *vector.Vector, acc *int32, mult int32) error {
	if err := a.OK(); err != nil {
		return err
	}
	if acc == nil {
		return vector.ErrInvalidArgument
	}
	switch a.DType() {
	case vector.Int8:
		if err := vector.CheckScalar(vector.Int8, mult); err != nil {
			return err
		}
		*acc += macSum(a.Int8s(), mult)
	case vector.Int16:
		if err := vector.CheckScalar(vector.Int16, mult); err != nil {
			return err
		}
		*acc += macSum(a.Int16s(), mult)
	case vector.Int32:
		*acc += macSum(a.Int32s(), mult)
	default:
		return vector.ErrUnsupported
	}
	return nil
}

// MACF32 adds the sum of a[i]*mult to *acc, starting from *acc.
func MACF32(a *vector.Vector, acc *float32, mult float32) error {
	if err := a.OK(); err != nil {
		return err
	}
	if acc == nil {
		return vector.ErrInvalidArgument
	}
	if a.DType() != vector.Float32 {
		return vector.ErrUnsupported
	}
	s := *acc
	for _, x := range a.Float32s() {
		s += x * mult
	}
	*acc = s
	return nil
}
