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

import (
	"context"
	"io"
	"log/slog"
	"math"
)

// onesBits is the IEEE-754 bit pattern of 1.0f.
const onesBits int32 = 0x3F800000

// Ops is the dispatch layer. It validates the participating handles and
// routes each call to the backend kernel for the vectors' dtype. Validation
// failures are reported before any element is read or written.
//
// Ops holds no mutable state; the vectors passed to it are owned by the
// caller for the duration of the call.
type Ops struct {
	k      Kernels
	logger *slog.Logger
}

// Option configures an Ops.
type Option func(*Ops)

// WithLogger logs every rejected call at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *Ops) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewOps returns a dispatch layer over the kernels in k.
func NewOps(k Kernels, opts ...Option) *Ops {
	o := &Ops{
		k:      k,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Backend returns the name of the kernel set.
func (o *Ops) Backend() string { return o.k.Name }

func (o *Ops) check(op string, err error, vs ...*Vector) error {
	if err != nil && o.logger.Enabled(context.Background(), slog.LevelDebug) {
		o.logger.Debug("vector operation failed",
			slog.String("op", op),
			slog.String("status", StatusOf(err).String()),
			slog.Any("vectors", describe(vs)),
		)
	}
	return err
}

func describe(vs []*Vector) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func callBinary[T Element](k Binary[T], a, b, out *Vector) error {
	if k == nil {
		return ErrNotImplemented
	}
	return k(Data[T](a), Data[T](b), Data[T](out))
}

func callUnary[T Element](k Unary[T], a, out *Vector) error {
	if k == nil {
		return ErrNotImplemented
	}
	return k(Data[T](a), Data[T](out))
}

func callBits(k Binary[int32], a, b, out *Vector) error {
	if k == nil {
		return ErrNotImplemented
	}
	return k(a.Bits32(), b.Bits32(), out.Bits32())
}

func callScalar[T Element](k Scalar[T], a *Vector, s T, out *Vector) error {
	if k == nil {
		return ErrNotImplemented
	}
	return k(Data[T](a), s, Data[T](out))
}

// intScalar range-checks s against the dtype of a before narrowing it.
func intScalar[T int8 | int16 | int32](k Scalar[T], a *Vector, s int32, out *Vector) error {
	if err := CheckScalar(a.dtype, s); err != nil {
		return err
	}
	return callScalar(k, a, T(s), out)
}

func (o *Ops) binary(op string, k BinaryKernels, a, b, out *Vector) error {
	if err := CheckSame(a, b, out); err != nil {
		return o.check(op, err, a, b, out)
	}
	var err error
	switch a.dtype {
	case Int8:
		err = callBinary(k.I8, a, b, out)
	case Int16:
		err = callBinary(k.I16, a, b, out)
	case Int32:
		err = callBinary(k.I32, a, b, out)
	case Float32:
		err = callBinary(k.F32, a, b, out)
	default:
		err = ErrInternal
	}
	return o.check(op, err, a, b, out)
}

// intBinary dispatches an integer kernel. With floatBits set, float32
// vectors run through the int32 kernel on their bit patterns; otherwise
// float32 is not implemented.
func (o *Ops) intBinary(op string, k IntBinaryKernels, floatBits bool, a, b, out *Vector) error {
	if err := CheckSame(a, b, out); err != nil {
		return o.check(op, err, a, b, out)
	}
	var err error
	switch a.dtype {
	case Int8:
		err = callBinary(k.I8, a, b, out)
	case Int16:
		err = callBinary(k.I16, a, b, out)
	case Int32:
		err = callBinary(k.I32, a, b, out)
	case Float32:
		if floatBits {
			err = callBits(k.I32, a, b, out)
		} else {
			err = ErrNotImplemented
		}
	default:
		err = ErrInternal
	}
	return o.check(op, err, a, b, out)
}

func (o *Ops) unary(op string, k UnaryKernels, a, out *Vector) error {
	if err := CheckSame(a, out); err != nil {
		return o.check(op, err, a, out)
	}
	var err error
	switch a.dtype {
	case Int8:
		err = callUnary(k.I8, a, out)
	case Int16:
		err = callUnary(k.I16, a, out)
	case Int32:
		err = callUnary(k.I32, a, out)
	case Float32:
		err = callUnary(k.F32, a, out)
	default:
		err = ErrInternal
	}
	return o.check(op, err, a, out)
}

// intUnary dispatches an integer one-input kernel; float32 vectors run
// through the int32 kernel on their bit patterns.
func (o *Ops) intUnary(op string, k IntUnaryKernels, a, out *Vector) error {
	if err := CheckSame(a, out); err != nil {
		return o.check(op, err, a, out)
	}
	var err error
	switch a.dtype {
	case Int8:
		err = callUnary(k.I8, a, out)
	case Int16:
		err = callUnary(k.I16, a, out)
	case Int32:
		err = callUnary(k.I32, a, out)
	case Float32:
		if k.I32 == nil {
			err = ErrNotImplemented
		} else {
			err = k.I32(a.Bits32(), out.Bits32())
		}
	default:
		err = ErrInternal
	}
	return o.check(op, err, a, out)
}

// intScalarOp dispatches an integer vector-scalar kernel with a range
// checked scalar; float32 is unsupported and must use the F32 variant.
func (o *Ops) intScalarOp(op string, k ScalarKernels, a *Vector, s int32, out *Vector) error {
	if err := CheckSame(a, out); err != nil {
		return o.check(op, err, a, out)
	}
	var err error
	switch a.dtype {
	case Int8:
		err = intScalar(k.I8, a, s, out)
	case Int16:
		err = intScalar(k.I16, a, s, out)
	case Int32:
		err = intScalar(k.I32, a, s, out)
	case Float32:
		err = ErrUnsupported
	default:
		err = ErrInternal
	}
	return o.check(op, err, a, out)
}

// floatScalarOp dispatches the float32 vector-scalar kernel; integer
// dtypes are unsupported.
func (o *Ops) floatScalarOp(op string, k Scalar[float32], a *Vector, s float32, out *Vector) error {
	if err := CheckSame(a, out); err != nil {
		return o.check(op, err, a, out)
	}
	var err error
	if a.dtype == Float32 {
		err = callScalar(k, a, s, out)
	} else {
		err = ErrUnsupported
	}
	return o.check(op, err, a, out)
}

// Add computes out = a + b, saturating for integer dtypes.
func (o *Ops) Add(a, b, out *Vector) error {
	return o.binary("add", o.k.Add, a, b, out)
}

// Sub computes out = a - b, saturating for integer dtypes.
func (o *Ops) Sub(a, b, out *Vector) error {
	return o.binary("sub", o.k.Sub, a, b, out)
}

// AddScalar computes out = a + s with saturation. s must be representable
// in the dtype. Float32 vectors must use AddScalarF32.
func (o *Ops) AddScalar(a *Vector, s int32, out *Vector) error {
	return o.intScalarOp("add_scalar", o.k.AddScalar, a, s, out)
}

// AddScalarF32 computes out = a + s for float32 vectors.
func (o *Ops) AddScalarF32(a *Vector, s float32, out *Vector) error {
	return o.floatScalarOp("add_scalar_f32", o.k.AddScalar.F32, a, s, out)
}

// Mul computes the fixed-point product out = (a * b) >> shift for integer
// dtypes. shift must not exceed MaxShift of the dtype. Float32 vectors get
// the plain product and shift is ignored.
func (o *Ops) Mul(a, b, out *Vector, shift uint) error {
	const op = "mul"
	if err := CheckSame(a, b, out); err != nil {
		return o.check(op, err, a, b, out)
	}
	if a.dtype.IsInteger() {
		if err := CheckShift(a.dtype, shift); err != nil {
			return o.check(op, err, a, b, out)
		}
	}
	var err error
	switch a.dtype {
	case Int8:
		err = callBinaryShift(o.k.Mul.I8, a, b, out, shift)
	case Int16:
		err = callBinaryShift(o.k.Mul.I16, a, b, out, shift)
	case Int32:
		err = callBinaryShift(o.k.Mul.I32, a, b, out, shift)
	case Float32:
		err = callBinary(o.k.Mul.F32, a, b, out)
	default:
		err = ErrInternal
	}
	return o.check(op, err, a, b, out)
}

func callBinaryShift[T Element](k BinaryShift[T], a, b, out *Vector, shift uint) error {
	if k == nil {
		return ErrNotImplemented
	}
	return k(Data[T](a), Data[T](b), Data[T](out), shift)
}

func callScalarShift[T int8 | int16 | int32](k ScalarShift[T], a *Vector, s int32, out *Vector, shift uint) error {
	if err := CheckScalar(a.dtype, s); err != nil {
		return err
	}
	if err := CheckShift(a.dtype, shift); err != nil {
		return err
	}
	if k == nil {
		return ErrNotImplemented
	}
	return k(Data[T](a), T(s), Data[T](out), shift)
}

// MulScalar computes out = (a * s) >> shift for integer dtypes. s must be
// representable in the dtype. Float32 vectors must use MulScalarF32.
func (o *Ops) MulScalar(a *Vector, s int32, out *Vector, shift uint) error {
	const op = "mul_scalar"
	if err := CheckSame(a, out); err != nil {
		return o.check(op, err, a, out)
	}
	var err error
	switch a.dtype {
	case Int8:
		err = callScalarShift(o.k.MulScalar.I8, a, s, out, shift)
	case Int16:
		err = callScalarShift(o.k.MulScalar.I16, a, s, out, shift)
	case Int32:
		err = callScalarShift(o.k.MulScalar.I32, a, s, out, shift)
	case Float32:
		err = ErrUnsupported
	default:
		err = ErrInternal
	}
	return o.check(op, err, a, out)
}

// MulScalarF32 computes out = a * s for float32 vectors.
func (o *Ops) MulScalarF32(a *Vector, s float32, out *Vector) error {
	return o.floatScalarOp("mul_scalar_f32", o.k.MulScalar.F32, a, s, out)
}

// MulWiden computes the exact product of two int8 vectors into an int16
// vector, or of two int16 vectors into an int32 vector. Any other dtype
// combination is a type mismatch.
func (o *Ops) MulWiden(a, b, out *Vector) error {
	const op = "mul_widen"
	if err := CheckHandles(a, b, out); err != nil {
		return o.check(op, err, a, b, out)
	}
	if err := CheckSizes(a, b, out); err != nil {
		return o.check(op, err, a, b, out)
	}
	if err := CheckDTypes(a, b); err != nil {
		return o.check(op, err, a, b, out)
	}
	if target, ok := WidenTarget(a.dtype); !ok || out.dtype != target {
		return o.check(op, ErrTypeMismatch, a, b, out)
	}
	var err error
	switch a.dtype {
	case Int8:
		if o.k.MulWiden.I8 == nil {
			err = ErrNotImplemented
		} else {
			err = o.k.MulWiden.I8(a.Int8s(), b.Int8s(), out.Int16s())
		}
	case Int16:
		if o.k.MulWiden.I16 == nil {
			err = ErrNotImplemented
		} else {
			err = o.k.MulWiden.I16(a.Int16s(), b.Int16s(), out.Int32s())
		}
	}
	return o.check(op, err, a, b, out)
}

func callReduce[T Element, R int32 | float32](k Reduce[T, R], a *Vector) (R, error) {
	if k == nil {
		return 0, ErrNotImplemented
	}
	return k(Data[T](a))
}

func callPairwise[T Element, R int32 | float32](k Pairwise[T, R], a, b *Vector) (R, error) {
	if k == nil {
		return 0, ErrNotImplemented
	}
	return k(Data[T](a), Data[T](b))
}

// Sum returns the sum of an integer vector in a 32-bit accumulator.
// Int32 inputs accumulate with wraparound rather than saturation.
// Float32 vectors must use SumF32.
func (o *Ops) Sum(a *Vector) (int32, error) {
	const op = "sum"
	if err := a.OK(); err != nil {
		return 0, o.check(op, err, a)
	}
	var (
		sum int32
		err error
	)
	switch a.dtype {
	case Int8:
		sum, err = callReduce(o.k.Sum.I8, a)
	case Int16:
		sum, err = callReduce(o.k.Sum.I16, a)
	case Int32:
		sum, err = callReduce(o.k.Sum.I32, a)
	case Float32:
		err = ErrUnsupported
	default:
		err = ErrInternal
	}
	return sum, o.check(op, err, a)
}

// SumF32 returns the sum of a float32 vector.
func (o *Ops) SumF32(a *Vector) (float32, error) {
	const op = "sum_f32"
	if err := a.OK(); err != nil {
		return 0, o.check(op, err, a)
	}
	if a.dtype != Float32 {
		return 0, o.check(op, ErrUnsupported, a)
	}
	sum, err := callReduce(o.k.Sum.F32, a)
	return sum, o.check(op, err, a)
}

// Dot returns the dot product of two integer vectors in a 32-bit
// accumulator. Accumulator overflow wraps. Float32 vectors must use DotF32.
func (o *Ops) Dot(a, b *Vector) (int32, error) {
	const op = "dot"
	if err := CheckSame(a, b); err != nil {
		return 0, o.check(op, err, a, b)
	}
	var (
		dot int32
		err error
	)
	switch a.dtype {
	case Int8:
		dot, err = callPairwise(o.k.Dot.I8, a, b)
	case Int16:
		dot, err = callPairwise(o.k.Dot.I16, a, b)
	case Int32:
		dot, err = callPairwise(o.k.Dot.I32, a, b)
	case Float32:
		err = ErrUnsupported
	default:
		err = ErrInternal
	}
	return dot, o.check(op, err, a, b)
}

// DotF32 returns the dot product of two float32 vectors.
func (o *Ops) DotF32(a, b *Vector) (float32, error) {
	const op = "dot_f32"
	if err := CheckSame(a, b); err != nil {
		return 0, o.check(op, err, a, b)
	}
	if a.dtype != Float32 {
		return 0, o.check(op, ErrUnsupported, a, b)
	}
	dot, err := callPairwise(o.k.Dot.F32, a, b)
	return dot, o.check(op, err, a, b)
}

// Abs computes out = |a|. Int8 and int16 map the most negative value to the
// most positive one; int32 uses plain two's-complement, so MinInt32 stays
// MinInt32. Float32 clears the sign bit.
func (o *Ops) Abs(a, out *Vector) error {
	return o.unary("abs", o.k.Abs, a, out)
}

// Neg computes out = -a with the same saturation rules as Abs.
func (o *Ops) Neg(a, out *Vector) error {
	return o.unary("neg", o.k.Neg, a, out)
}

// Ceil computes out = min(a, bound). bound must be representable in the
// dtype. Float32 vectors must use CeilF32.
func (o *Ops) Ceil(a, out *Vector, bound int32) error {
	return o.intScalarOp("ceil", o.k.Ceil, a, bound, out)
}

// CeilF32 computes out = min(a, bound) for float32 vectors.
func (o *Ops) CeilF32(a, out *Vector, bound float32) error {
	return o.floatScalarOp("ceil_f32", o.k.Ceil.F32, a, bound, out)
}

// Floor computes out = max(a, bound). bound must be representable in the
// dtype. Float32 vectors must use FloorF32.
func (o *Ops) Floor(a, out *Vector, bound int32) error {
	return o.intScalarOp("floor", o.k.Floor, a, bound, out)
}

// FloorF32 computes out = max(a, bound) for float32 vectors.
func (o *Ops) FloorF32(a, out *Vector, bound float32) error {
	return o.floatScalarOp("floor_f32", o.k.Floor.F32, a, bound, out)
}

// MAC adds the sum of a[i]*mult to *acc. mult must be representable in the
// dtype; accumulator overflow wraps. The operation is unsupported on
// float32 vectors, which must use MACF32.
func (o *Ops) MAC(a *Vector, acc *int32, mult int32) error {
	const op = "mac"
	if err := a.OK(); err != nil {
		return o.check(op, err, a)
	}
	if acc == nil {
		return o.check(op, ErrInvalidArgument, a)
	}
	var err error
	switch a.dtype {
	case Int8:
		if err = CheckScalar(Int8, mult); err == nil {
			err = notNil(o.k.MAC.I8 != nil, func() error { return o.k.MAC.I8(a.Int8s(), acc, int8(mult)) })
		}
	case Int16:
		if err = CheckScalar(Int16, mult); err == nil {
			err = notNil(o.k.MAC.I16 != nil, func() error { return o.k.MAC.I16(a.Int16s(), acc, int16(mult)) })
		}
	case Int32:
		err = notNil(o.k.MAC.I32 != nil, func() error { return o.k.MAC.I32(a.Int32s(), acc, mult) })
	case Float32:
		err = ErrUnsupported
	default:
		err = ErrInternal
	}
	return o.check(op, err, a)
}

// MACF32 adds the sum of a[i]*mult to *acc for float32 vectors.
func (o *Ops) MACF32(a *Vector, acc *float32, mult float32) error {
	const op = "mac_f32"
	if err := a.OK(); err != nil {
		return o.check(op, err, a)
	}
	if acc == nil {
		return o.check(op, ErrInvalidArgument, a)
	}
	if a.dtype != Float32 {
		return o.check(op, ErrUnsupported, a)
	}
	err := notNil(o.k.MAC.F32 != nil, func() error { return o.k.MAC.F32(a.Float32s(), acc, mult) })
	return o.check(op, err, a)
}

func notNil(ok bool, call func() error) error {
	if !ok {
		return ErrNotImplemented
	}
	return call()
}

// fill writes the integer v into every element. Float32 vectors receive v
// as a raw 32-bit pattern through the int32 kernel.
func (o *Ops) fill(a *Vector, v int32) error {
	k := o.k.Fill
	switch a.dtype {
	case Int8:
		return notNil(k.I8 != nil, func() error { return k.I8(a.Int8s(), int8(v)) })
	case Int16:
		return notNil(k.I16 != nil, func() error { return k.I16(a.Int16s(), int16(v)) })
	case Int32:
		return notNil(k.I32 != nil, func() error { return k.I32(a.Int32s(), v) })
	case Float32:
		return notNil(k.I32 != nil, func() error { return k.I32(a.Bits32(), v) })
	default:
		return ErrInternal
	}
}

// Zeros sets every element to zero.
func (o *Ops) Zeros(a *Vector) error {
	if err := a.OK(); err != nil {
		return o.check("zeros", err, a)
	}
	return o.check("zeros", o.fill(a, 0), a)
}

// Ones sets every element to one. Float32 vectors receive the bit pattern
// of 1.0f through an integer store.
func (o *Ops) Ones(a *Vector) error {
	if err := a.OK(); err != nil {
		return o.check("ones", err, a)
	}
	v := int32(1)
	if a.dtype == Float32 {
		v = onesBits
	}
	return o.check("ones", o.fill(a, v), a)
}

// Fill sets every element of an integer vector to v, which must be
// representable in the dtype. Float32 vectors must use FillF32.
func (o *Ops) Fill(a *Vector, v int32) error {
	const op = "fill"
	if err := a.OK(); err != nil {
		return o.check(op, err, a)
	}
	if a.dtype == Float32 {
		return o.check(op, ErrUnsupported, a)
	}
	if err := CheckScalar(a.dtype, v); err != nil {
		return o.check(op, err, a)
	}
	return o.check(op, o.fill(a, v), a)
}

// FillF32 sets every element of a float32 vector to v by storing its
// bit pattern.
func (o *Ops) FillF32(a *Vector, v float32) error {
	const op = "fill_f32"
	if err := a.OK(); err != nil {
		return o.check(op, err, a)
	}
	if a.dtype != Float32 {
		return o.check(op, ErrUnsupported, a)
	}
	return o.check(op, o.fill(a, int32(math.Float32bits(v))), a)
}

// Copy copies src into dst. Float32 elements are copied as raw bits.
func (o *Ops) Copy(src, dst *Vector) error {
	return o.intUnary("copy", o.k.Copy, src, dst)
}

// Convert sign-extends src into the wider dst. Only int8→int16,
// int8→int32 and int16→int32 are implemented.
func (o *Ops) Convert(src, dst *Vector) error {
	const op = "convert"
	if err := CheckHandles(src, dst); err != nil {
		return o.check(op, err, src, dst)
	}
	if err := CheckSizes(src, dst); err != nil {
		return o.check(op, err, src, dst)
	}
	if !CanConvert(src.dtype, dst.dtype) {
		return o.check(op, ErrNotImplemented, src, dst)
	}
	k := o.k.Convert
	var err error
	switch {
	case src.dtype == Int8 && dst.dtype == Int16:
		err = notNil(k.I8ToI16 != nil, func() error { return k.I8ToI16(src.Int8s(), dst.Int16s()) })
	case src.dtype == Int8 && dst.dtype == Int32:
		err = notNil(k.I8ToI32 != nil, func() error { return k.I8ToI32(src.Int8s(), dst.Int32s()) })
	default:
		err = notNil(k.I16ToI32 != nil, func() error { return k.I16ToI32(src.Int16s(), dst.Int32s()) })
	}
	return o.check(op, err, src, dst)
}

// And computes out = a & b. Float32 vectors are combined bitwise as int32.
func (o *Ops) And(a, b, out *Vector) error {
	return o.intBinary("and", o.k.And, true, a, b, out)
}

// Or computes out = a | b. Float32 vectors are combined bitwise as int32.
func (o *Ops) Or(a, b, out *Vector) error {
	return o.intBinary("or", o.k.Or, true, a, b, out)
}

// Xor computes out = a ^ b. Float32 vectors are combined bitwise as int32.
func (o *Ops) Xor(a, b, out *Vector) error {
	return o.intBinary("xor", o.k.Xor, true, a, b, out)
}

// Not computes out = ^a. Float32 vectors are inverted bitwise as int32.
func (o *Ops) Not(a, out *Vector) error {
	return o.intUnary("not", o.k.Not, a, out)
}

// Max computes the element-wise maximum of two integer vectors.
func (o *Ops) Max(a, b, out *Vector) error {
	return o.intBinary("max", o.k.Max, false, a, b, out)
}

// Min computes the element-wise minimum of two integer vectors.
func (o *Ops) Min(a, b, out *Vector) error {
	return o.intBinary("min", o.k.Min, false, a, b, out)
}

// Gt writes -1 where a > b and 0 elsewhere.
func (o *Ops) Gt(a, b, out *Vector) error {
	return o.intBinary("gt", o.k.Gt, false, a, b, out)
}

// Lt writes -1 where a < b and 0 elsewhere.
func (o *Ops) Lt(a, b, out *Vector) error {
	return o.intBinary("lt", o.k.Lt, false, a, b, out)
}

// Eq writes -1 where a == b and 0 elsewhere.
func (o *Ops) Eq(a, b, out *Vector) error {
	return o.intBinary("eq", o.k.Eq, false, a, b, out)
}

// ReLU computes the fixed-point leaky ReLU of an int8 or int16 vector:
// positive elements pass through, the rest become (x * mult) >> shift.
// mult must be representable in the dtype and shift must not exceed
// MaxShift. Int32 and float32 are unsupported.
func (o *Ops) ReLU(a, out *Vector, mult int32, shift uint) error {
	const op = "relu"
	if err := CheckSame(a, out); err != nil {
		return o.check(op, err, a, out)
	}
	var err error
	switch a.dtype {
	case Int8, Int16:
		if err = CheckScalar(a.dtype, mult); err != nil {
			break
		}
		if err = CheckShift(a.dtype, shift); err != nil {
			break
		}
		if a.dtype == Int8 {
			err = notNil(o.k.ReLU.I8 != nil, func() error { return o.k.ReLU.I8(a.Int8s(), int8(mult), shift, out.Int8s()) })
		} else {
			err = notNil(o.k.ReLU.I16 != nil, func() error { return o.k.ReLU.I16(a.Int16s(), int16(mult), shift, out.Int16s()) })
		}
	case Int32, Float32:
		err = ErrUnsupported
	default:
		err = ErrInternal
	}
	return o.check(op, err, a, out)
}
