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

// Package fixedpoint is the numeric backend of the vector library.
//
// Every kernel walks its inputs one 128-bit register at a time with the hwy
// lane operations. Element-wise kernels treat the remainder as one partial
// register; reductions finish it with scalar code. Kernels
// assume the dispatch layer has already validated lengths, dtypes and
// scalar ranges; they never fail on their own.
//
// Kernels returns the table that plugs the backend into vector.NewOps:
//
//	ops := vector.NewOps(fixedpoint.Kernels())
package fixedpoint

import (
	"github.com/ajroetker/go-fixvec/hwy"
	"github.com/ajroetker/go-fixvec/vector"
)

// Name identifies this backend.
const Name = "fixedpoint"

// Target returns the backend name qualified by the host lane target,
// for example "fixedpoint/avx2".
func Target() string {
	return Name + "/" + hwy.CurrentName()
}

// Dispatch returns the lane target detected on the host.
func Dispatch() hwy.DispatchLevel {
	return hwy.CurrentLevel()
}

// Kernels returns the complete kernel table of the backend.
func Kernels() vector.Kernels {
	return vector.Kernels{
		Name: Target(),
		Add: vector.BinaryKernels{
			I8:  binary(BaseAddSatTo[int8]),
			I16: binary(BaseAddSatTo[int16]),
			I32: binary(BaseAddSatTo[int32]),
			F32: binary(BaseAddTo[float32]),
		},
		Sub: vector.BinaryKernels{
			I8:  binary(BaseSubSatTo[int8]),
			I16: binary(BaseSubSatTo[int16]),
			I32: binary(BaseSubSatTo[int32]),
			F32: binary(BaseSubTo[float32]),
		},
		AddScalar: vector.ScalarKernels{
			I8:  scalar(BaseAddScalarSatTo[int8]),
			I16: scalar(BaseAddScalarSatTo[int16]),
			I32: scalar(BaseAddScalarSatTo[int32]),
			F32: scalar(BaseAddScalarTo[float32]),
		},
		Mul: vector.MulKernels{
			I8:  binaryShift(BaseMulShiftTo[int8]),
			I16: binaryShift(BaseMulShiftTo[int16]),
			I32: binaryShift(BaseMulShiftTo[int32]),
			F32: binary(BaseMulTo[float32]),
		},
		MulScalar: vector.MulScalarKernels{
			I8:  scalarShift(BaseMulScalarShiftTo[int8]),
			I16: scalarShift(BaseMulScalarShiftTo[int16]),
			I32: scalarShift(BaseMulScalarShiftTo[int32]),
			F32: scalar(BaseMulScalarTo[float32]),
		},
		MulWiden: vector.WidenKernels{
			I8: func(a, b []int8, out []int16) error {
				BaseMulWidenI8To(out, a, b)
				return nil
			},
			I16: func(a, b []int16, out []int32) error {
				BaseMulWidenI16To(out, a, b)
				return nil
			},
		},
		Sum: vector.SumKernels{
			I8:  reduce(BaseSumI8),
			I16: reduce(BaseSumI16),
			I32: reduce(BaseSumI32),
			F32: reduce(BaseSum[float32]),
		},
		Dot: vector.DotKernels{
			I8:  pairwise(BaseDotI8),
			I16: pairwise(BaseDotI16),
			I32: pairwise(BaseDotI32),
			F32: pairwise(BaseDot[float32]),
		},
		Abs: vector.UnaryKernels{
			I8:  unary(BaseAbsSatTo[int8]),
			I16: unary(BaseAbsSatTo[int16]),
			I32: unary(BaseAbsWrapTo[int32]),
			F32: unary(BaseAbsF32To),
		},
		Neg: vector.UnaryKernels{
			I8:  unary(BaseNegSatTo[int8]),
			I16: unary(BaseNegSatTo[int16]),
			I32: unary(BaseNegWrapTo[int32]),
			F32: unary(BaseNegTo[float32]),
		},
		Ceil: vector.ScalarKernels{
			I8:  scalar(BaseCeilTo[int8]),
			I16: scalar(BaseCeilTo[int16]),
			I32: scalar(BaseCeilTo[int32]),
			F32: scalar(BaseCeilTo[float32]),
		},
		Floor: vector.ScalarKernels{
			I8:  scalar(BaseFloorTo[int8]),
			I16: scalar(BaseFloorTo[int16]),
			I32: scalar(BaseFloorTo[int32]),
			F32: scalar(BaseFloorTo[float32]),
		},
		MAC: vector.MACKernels{
			I8:  mac(BaseMACI8),
			I16: mac(BaseMACI16),
			I32: mac(BaseMACI32),
			F32: mac(BaseMAC[float32]),
		},
		Fill: vector.FillKernels{
			I8:  fill(BaseFill[int8]),
			I16: fill(BaseFill[int16]),
			I32: fill(BaseFill[int32]),
		},
		Copy: vector.IntUnaryKernels{
			I8:  unary(BaseCopyTo[int8]),
			I16: unary(BaseCopyTo[int16]),
			I32: unary(BaseCopyTo[int32]),
		},
		Convert: vector.ConvertKernels{
			I8ToI16: func(src []int8, dst []int16) error {
				BaseConvertI8ToI16(dst, src)
				return nil
			},
			I8ToI32: func(src []int8, dst []int32) error {
				BaseConvertI8ToI32(dst, src)
				return nil
			},
			I16ToI32: func(src []int16, dst []int32) error {
				BaseConvertI16ToI32(dst, src)
				return nil
			},
		},
		And: intBinary(BaseAndTo[int8], BaseAndTo[int16], BaseAndTo[int32]),
		Or:  intBinary(BaseOrTo[int8], BaseOrTo[int16], BaseOrTo[int32]),
		Xor: intBinary(BaseXorTo[int8], BaseXorTo[int16], BaseXorTo[int32]),
		Not: vector.IntUnaryKernels{
			I8:  unary(BaseNotTo[int8]),
			I16: unary(BaseNotTo[int16]),
			I32: unary(BaseNotTo[int32]),
		},
		Max: intBinary(BaseMaxTo[int8], BaseMaxTo[int16], BaseMaxTo[int32]),
		Min: intBinary(BaseMinTo[int8], BaseMinTo[int16], BaseMinTo[int32]),
		Gt:  intBinary(BaseGreaterThanTo[int8], BaseGreaterThanTo[int16], BaseGreaterThanTo[int32]),
		Lt:  intBinary(BaseLessThanTo[int8], BaseLessThanTo[int16], BaseLessThanTo[int32]),
		Eq:  intBinary(BaseEqualTo[int8], BaseEqualTo[int16], BaseEqualTo[int32]),
		ReLU: vector.ReLUKernels{
			I8:  relu(BaseReLUTo[int8]),
			I16: relu(BaseReLUTo[int16]),
		},
	}
}

// The adapters below lift the Base functions, which take the destination
// first and cannot fail, into the kernel signatures of the vector package.

func binary[T vector.Element](f func(dst, a, b []T)) vector.Binary[T] {
	return func(a, b, out []T) error {
		f(out, a, b)
		return nil
	}
}

func intBinary(i8 func(dst, a, b []int8), i16 func(dst, a, b []int16), i32 func(dst, a, b []int32)) vector.IntBinaryKernels {
	return vector.IntBinaryKernels{I8: binary(i8), I16: binary(i16), I32: binary(i32)}
}

func binaryShift[T vector.Element](f func(dst, a, b []T, shift uint)) vector.BinaryShift[T] {
	return func(a, b, out []T, shift uint) error {
		f(out, a, b, shift)
		return nil
	}
}

func unary[T vector.Element](f func(dst, a []T)) vector.Unary[T] {
	return func(a, out []T) error {
		f(out, a)
		return nil
	}
}

func scalar[T vector.Element](f func(dst, a []T, s T)) vector.Scalar[T] {
	return func(a []T, s T, out []T) error {
		f(out, a, s)
		return nil
	}
}

func scalarShift[T vector.Element](f func(dst, a []T, s T, shift uint)) vector.ScalarShift[T] {
	return func(a []T, s T, out []T, shift uint) error {
		f(out, a, s, shift)
		return nil
	}
}

func reduce[T vector.Element, R int32 | float32](f func(a []T) R) vector.Reduce[T, R] {
	return func(a []T) (R, error) {
		return f(a), nil
	}
}

func pairwise[T vector.Element, R int32 | float32](f func(a, b []T) R) vector.Pairwise[T, R] {
	return func(a, b []T) (R, error) {
		return f(a, b), nil
	}
}

func mac[T vector.Element, A int32 | float32](f func(a []T, acc *A, mult T)) func(a []T, acc *A, mult T) error {
	return func(a []T, acc *A, mult T) error {
		f(a, acc, mult)
		return nil
	}
}

func fill[T vector.Element](f func(dst []T, v T)) func(a []T, v T) error {
	return func(a []T, v T) error {
		f(a, v)
		return nil
	}
}

func relu[T vector.Element](f func(dst, a []T, mult T, shift uint)) func(a []T, mult T, shift uint, out []T) error {
	return func(a []T, mult T, shift uint, out []T) error {
		f(out, a, mult, shift)
		return nil
	}
}
