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

// Kernels is the numeric backend consumed by Ops: one function per
// (operation, dtype) pair. Every kernel receives slices of exactly the
// vector length, must not read or write beyond them, and must tolerate out
// aliasing an input. A nil kernel means the pair is not implemented; a
// non-nil error returned by a kernel is passed to the caller unchanged.
//
// Float32 bitwise logic, Zeros, Ones, FillF32 and Copy never reach a float
// kernel: Ops routes them through the Int32 kernels on the raw bit pattern.
type Kernels struct {
	// Name identifies the backend in logs and reports.
	Name string

	Add       BinaryKernels
	Sub       BinaryKernels
	AddScalar ScalarKernels
	Mul       MulKernels
	MulScalar MulScalarKernels
	MulWiden  WidenKernels
	Sum       SumKernels
	Dot       DotKernels
	Abs       UnaryKernels
	Neg       UnaryKernels
	Ceil      ScalarKernels
	Floor     ScalarKernels
	MAC       MACKernels
	Fill      FillKernels
	Copy      IntUnaryKernels
	Convert   ConvertKernels
	And       IntBinaryKernels
	Or        IntBinaryKernels
	Xor       IntBinaryKernels
	Not       IntUnaryKernels
	Max       IntBinaryKernels
	Min       IntBinaryKernels
	Gt        IntBinaryKernels
	Lt        IntBinaryKernels
	Eq        IntBinaryKernels
	ReLU      ReLUKernels
}

// Binary computes out[i] = f(a[i], b[i]).
type Binary[T Element] func(a, b, out []T) error

// Unary computes out[i] = f(a[i]).
type Unary[T Element] func(a, out []T) error

// Scalar computes out[i] = f(a[i], s).
type Scalar[T Element] func(a []T, s T, out []T) error

// ScalarShift computes out[i] = (a[i] * s) >> shift.
type ScalarShift[T Element] func(a []T, s T, out []T, shift uint) error

// BinaryShift computes out[i] = (a[i] * b[i]) >> shift.
type BinaryShift[T Element] func(a, b, out []T, shift uint) error

// Reduce folds a into a single accumulator value.
type Reduce[T Element, R int32 | float32] func(a []T) (R, error)

// Pairwise folds a and b into a single accumulator value.
type Pairwise[T Element, R int32 | float32] func(a, b []T) (R, error)

// BinaryKernels holds an element-wise two-input kernel per dtype.
type BinaryKernels struct {
	I8  Binary[int8]
	I16 Binary[int16]
	I32 Binary[int32]
	F32 Binary[float32]
}

// IntBinaryKernels holds an element-wise two-input kernel per integer dtype.
type IntBinaryKernels struct {
	I8  Binary[int8]
	I16 Binary[int16]
	I32 Binary[int32]
}

// UnaryKernels holds an element-wise one-input kernel per dtype.
type UnaryKernels struct {
	I8  Unary[int8]
	I16 Unary[int16]
	I32 Unary[int32]
	F32 Unary[float32]
}

// IntUnaryKernels holds an element-wise one-input kernel per integer dtype.
type IntUnaryKernels struct {
	I8  Unary[int8]
	I16 Unary[int16]
	I32 Unary[int32]
}

// ScalarKernels holds a vector-scalar kernel per dtype.
type ScalarKernels struct {
	I8  Scalar[int8]
	I16 Scalar[int16]
	I32 Scalar[int32]
	F32 Scalar[float32]
}

// MulKernels holds the fixed-point multiply per integer dtype and the plain
// float32 multiply.
type MulKernels struct {
	I8  BinaryShift[int8]
	I16 BinaryShift[int16]
	I32 BinaryShift[int32]
	F32 Binary[float32]
}

// MulScalarKernels holds the fixed-point scalar multiply per integer dtype
// and the plain float32 scalar multiply.
type MulScalarKernels struct {
	I8  ScalarShift[int8]
	I16 ScalarShift[int16]
	I32 ScalarShift[int32]
	F32 Scalar[float32]
}

// WidenKernels holds the exact widening multiplies.
type WidenKernels struct {
	I8  func(a, b []int8, out []int16) error
	I16 func(a, b []int16, out []int32) error
}

// SumKernels holds the sum reductions.
type SumKernels struct {
	I8  Reduce[int8, int32]
	I16 Reduce[int16, int32]
	I32 Reduce[int32, int32]
	F32 Reduce[float32, float32]
}

// DotKernels holds the dot products.
type DotKernels struct {
	I8  Pairwise[int8, int32]
	I16 Pairwise[int16, int32]
	I32 Pairwise[int32, int32]
	F32 Pairwise[float32, float32]
}

// MACKernels holds the multiply-accumulate kernels. Each adds
// sum(a[i] * mult) to *acc.
type MACKernels struct {
	I8  func(a []int8, acc *int32, mult int8) error
	I16 func(a []int16, acc *int32, mult int16) error
	I32 func(a []int32, acc *int32, mult int32) error
	F32 func(a []float32, acc *float32, mult float32) error
}

// FillKernels holds the constant fill per integer dtype.
type FillKernels struct {
	I8  func(a []int8, v int8) error
	I16 func(a []int16, v int16) error
	I32 func(a []int32, v int32) error
}

// ConvertKernels holds the sign-extending widening copies.
type ConvertKernels struct {
	I8ToI16  func(src []int8, dst []int16) error
	I8ToI32  func(src []int8, dst []int32) error
	I16ToI32 func(src []int16, dst []int32) error
}

// ReLUKernels holds the fixed-point leaky ReLU:
// out[i] = a[i] if a[i] > 0, else (a[i] * mult) >> shift.
type ReLUKernels struct {
	I8  func(a []int8, mult int8, shift uint, out []int8) error
	I16 func(a []int16, mult int16, shift uint, out []int16) error
}
