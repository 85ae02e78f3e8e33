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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-fixvec/vector"
)

func from[T vector.Element](t *testing.T, vals ...T) *vector.Vector {
	t.Helper()
	v, err := vector.From(vals)
	require.NoError(t, err)
	t.Cleanup(v.Release)
	return v
}

func alloc(t *testing.T, size int, dt vector.DType) *vector.Vector {
	t.Helper()
	v, err := vector.New(size, dt)
	require.NoError(t, err)
	t.Cleanup(v.Release)
	return v
}

func TestAddSaturation(t *testing.T) {
	a := from[int8](t, 127, -128, 100, -5)
	b := from[int8](t, 1, -1, 27, 5)
	out := alloc(t, 4, vector.Int8)
	require.NoError(t, Add(a, b, out))
	if diff := cmp.Diff([]int8{127, -128, 127, 0}, out.Int8s()); diff != "" {
		t.Errorf("Add mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, Sub(a, b, out))
	if diff := cmp.Diff([]int8{126, -127, 73, -10}, out.Int8s()); diff != "" {
		t.Errorf("Sub mismatch (-want +got):\n%s", diff)
	}

	c := from[int32](t, math.MaxInt32, math.MinInt32)
	d := from[int32](t, 1, -1)
	out32 := alloc(t, 2, vector.Int32)
	require.NoError(t, Add(c, d, out32))
	assert.Equal(t, []int32{math.MaxInt32, math.MinInt32}, out32.Int32s())
}

func TestAbsNeg(t *testing.T) {
	a := from[int8](t, -128, -1, 0, 127)
	out := alloc(t, 4, vector.Int8)
	require.NoError(t, Abs(a, out))
	assert.Equal(t, []int8{127, 1, 0, 127}, out.Int8s())
	require.NoError(t, Neg(a, out))
	assert.Equal(t, []int8{127, 1, 0, -127}, out.Int8s())

	// Int32 keeps plain two's-complement semantics.
	c := from[int32](t, math.MinInt32, -7)
	out32 := alloc(t, 2, vector.Int32)
	require.NoError(t, Abs(c, out32))
	assert.Equal(t, []int32{math.MinInt32, 7}, out32.Int32s())
	require.NoError(t, Neg(c, out32))
	assert.Equal(t, []int32{math.MinInt32, 7}, out32.Int32s())

	f := from[float32](t, -2.5, float32(math.Copysign(0, -1)), 3)
	outF := alloc(t, 3, vector.Float32)
	require.NoError(t, Abs(f, outF))
	assert.Equal(t, []int32{0x40200000, 0, 0x40400000}, outF.Bits32())
}

func TestMulShift(t *testing.T) {
	a := from[int8](t, 4, -128, -3)
	b := from[int8](t, 32, -128, 3)
	out := alloc(t, 3, vector.Int8)
	require.NoError(t, Mul(a, b, out, 3))
	// 16384 >> 3 = 2048, truncated to int8 is 0; -9 >> 3 = -2.
	assert.Equal(t, []int8{16, 0, -2}, out.Int8s())

	assert.ErrorIs(t, Mul(a, b, out, 8), vector.ErrInvalidArgument)

	require.NoError(t, MulScalar(a, 2, out, 1))
	assert.Equal(t, []int8{4, -128, -3}, out.Int8s())
	assert.ErrorIs(t, MulScalar(a, 128, out, 0), vector.ErrInvalidArgument)

	f := from[float32](t, 1.5, -2)
	outF := alloc(t, 2, vector.Float32)
	require.NoError(t, Mul(f, f, outF, 99))
	assert.Equal(t, []float32{2.25, 4}, outF.Float32s())
	assert.ErrorIs(t, MulScalar(f, 2, outF, 0), vector.ErrUnsupported)
	require.NoError(t, MulScalarF32(f, 2, outF))
	assert.Equal(t, []float32{3, -4}, outF.Float32s())
}

func TestMulWiden(t *testing.T) {
	a := from[int8](t, 100, -128, 7)
	out := alloc(t, 3, vector.Int16)
	require.NoError(t, MulWiden(a, a, out))
	assert.Equal(t, []int16{10000, 16384, 49}, out.Int16s())

	b := from[int16](t, -32768, 2, 3)
	out32 := alloc(t, 3, vector.Int32)
	require.NoError(t, MulWiden(b, b, out32))
	assert.Equal(t, []int32{1 << 30, 4, 9}, out32.Int32s())

	assert.ErrorIs(t, MulWiden(a, b, out32), vector.ErrTypeMismatch)
	assert.ErrorIs(t, MulWiden(a, a, out32), vector.ErrTypeMismatch)
	c := from[int32](t, 1, 2, 3)
	assert.ErrorIs(t, MulWiden(c, c, out32), vector.ErrTypeMismatch)
	short := alloc(t, 2, vector.Int16)
	assert.ErrorIs(t, MulWiden(a, a, short), vector.ErrSizeMismatch)
}

func TestScalarOps(t *testing.T) {
	a := from[int16](t, 32000, -32000, 5)
	out := alloc(t, 3, vector.Int16)
	require.NoError(t, AddScalar(a, 1000, out))
	assert.Equal(t, []int16{32767, -31000, 1005}, out.Int16s())
	assert.ErrorIs(t, AddScalar(a, 40000, out), vector.ErrInvalidArgument)

	require.NoError(t, Ceil(a, out, 10))
	assert.Equal(t, []int16{10, -32000, 5}, out.Int16s())
	require.NoError(t, Floor(a, out, 10))
	assert.Equal(t, []int16{32000, 10, 10}, out.Int16s())
	assert.ErrorIs(t, Floor(a, out, -40000), vector.ErrInvalidArgument)

	f := from[float32](t, 1, 5)
	outF := alloc(t, 2, vector.Float32)
	assert.ErrorIs(t, AddScalar(f, 1, outF), vector.ErrUnsupported)
	assert.ErrorIs(t, Ceil(f, outF, 1), vector.ErrUnsupported)
	assert.ErrorIs(t, AddScalarF32(a, 1, out), vector.ErrUnsupported)
	require.NoError(t, CeilF32(f, outF, 2))
	assert.Equal(t, []float32{1, 2}, outF.Float32s())
	require.NoError(t, FloorF32(f, outF, 2))
	assert.Equal(t, []float32{2, 5}, outF.Float32s())
}

func TestSum(t *testing.T) {
	got, err := Sum(from[int8](t, 127, 127, 127, -1))
	require.NoError(t, err)
	assert.Equal(t, int32(380), got)

	// Each lane clamps at MaxInt32, then the four lanes wrap when combined.
	big := make([]int32, 8)
	for i := range big {
		big[i] = math.MaxInt32
	}
	got, err = Sum(from(t, big...))
	require.NoError(t, err)
	assert.Equal(t, int32(-4), got)

	// Tail elements are added with wrapping arithmetic.
	got, err = Sum(from[int32](t, 0, 0, 0, 0, math.MaxInt32, 1))
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), got)

	_, err = Sum(from[float32](t, 1))
	assert.ErrorIs(t, err, vector.ErrUnsupported)
	f, err := SumF32(from[float32](t, 1, 2.5))
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f)
	_, err = SumF32(from[int8](t, 1))
	assert.ErrorIs(t, err, vector.ErrUnsupported)
}

func TestDot(t *testing.T) {
	got, err := Dot(from[int8](t, -128, 3), from[int8](t, -128, 4))
	require.NoError(t, err)
	assert.Equal(t, int32(16396), got)

	// The int32 product keeps its low 32 bits: 65536*65536 = 2^32 -> 0.
	got, err = Dot(from[int32](t, 65536, 2), from[int32](t, 65536, 3))
	require.NoError(t, err)
	assert.Equal(t, int32(6), got)

	_, err = Dot(from[float32](t, 1), from[float32](t, 1))
	assert.ErrorIs(t, err, vector.ErrUnsupported)
	_, err = Dot(from[int8](t, 1), from[int8](t, 1, 2))
	assert.ErrorIs(t, err, vector.ErrSizeMismatch)
	_, err = Dot(from[int8](t, 1), from[int16](t, 1))
	assert.ErrorIs(t, err, vector.ErrTypeMismatch)

	f, err := DotF32(from[float32](t, 1, 2), from[float32](t, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, float32(11), f)
}

func TestMAC(t *testing.T) {
	acc := int32(10)
	require.NoError(t, MAC(from[int8](t, 1, 2, 3), &acc, -2))
	assert.Equal(t, int32(-2), acc)

	assert.ErrorIs(t, MAC(from[int8](t, 1), nil, 1), vector.ErrInvalidArgument)
	assert.ErrorIs(t, MAC(from[int8](t, 1), &acc, 200), vector.ErrInvalidArgument)
	assert.ErrorIs(t, MAC(from[float32](t, 1), &acc, 1), vector.ErrUnsupported)
	assert.Equal(t, int32(-2), acc)

	facc := float32(0.5)
	require.NoError(t, MACF32(from[float32](t, 1, 2), &facc, 3))
	assert.Equal(t, float32(9.5), facc)
	assert.ErrorIs(t, MACF32(from[int16](t, 1), &facc, 3), vector.ErrUnsupported)
}

func TestFillAndCopy(t *testing.T) {
	f := alloc(t, 3, vector.Float32)
	require.NoError(t, Ones(f))
	assert.Equal(t, []float32{1, 1, 1}, f.Float32s())
	require.NoError(t, Zeros(f))
	assert.Equal(t, []float32{0, 0, 0}, f.Float32s())
	require.NoError(t, FillF32(f, -0.5))
	assert.Equal(t, []float32{-0.5, -0.5, -0.5}, f.Float32s())
	assert.ErrorIs(t, Fill(f, 1), vector.ErrUnsupported)

	i := alloc(t, 2, vector.Int8)
	require.NoError(t, Fill(i, -7))
	assert.Equal(t, []int8{-7, -7}, i.Int8s())
	assert.ErrorIs(t, Fill(i, 300), vector.ErrInvalidArgument)
	assert.ErrorIs(t, FillF32(i, 1), vector.ErrUnsupported)

	dst := alloc(t, 3, vector.Float32)
	require.NoError(t, Copy(f, dst))
	assert.Equal(t, f.Float32s(), dst.Float32s())
}

func TestConvert(t *testing.T) {
	src := from[int8](t, -128, -1, 127)
	dst16 := alloc(t, 3, vector.Int16)
	require.NoError(t, Convert(src, dst16))
	assert.Equal(t, []int16{-128, -1, 127}, dst16.Int16s())

	dst32 := alloc(t, 3, vector.Int32)
	require.NoError(t, Convert(dst16, dst32))
	assert.Equal(t, []int32{-128, -1, 127}, dst32.Int32s())

	assert.ErrorIs(t, Convert(dst32, dst16), vector.ErrNotImplemented)
	assert.ErrorIs(t, Convert(src, alloc(t, 3, vector.Float32)), vector.ErrNotImplemented)
	assert.ErrorIs(t, Convert(src, alloc(t, 2, vector.Int16)), vector.ErrSizeMismatch)
}

func TestBitwiseAndCompare(t *testing.T) {
	a := from[int16](t, 0x0F0F, -1, 5)
	b := from[int16](t, 0x00FF, 0, 6)
	out := alloc(t, 3, vector.Int16)

	require.NoError(t, And(a, b, out))
	assert.Equal(t, []int16{0x000F, 0, 4}, out.Int16s())
	require.NoError(t, Or(a, b, out))
	assert.Equal(t, []int16{0x0FFF, -1, 7}, out.Int16s())
	require.NoError(t, Xor(a, b, out))
	assert.Equal(t, []int16{0x0FF0, -1, 3}, out.Int16s())
	require.NoError(t, Not(a, out))
	assert.Equal(t, []int16{^0x0F0F, 0, -6}, out.Int16s())

	require.NoError(t, Gt(a, b, out))
	assert.Equal(t, []int16{-1, 0, 0}, out.Int16s())
	require.NoError(t, Lt(a, b, out))
	assert.Equal(t, []int16{0, -1, -1}, out.Int16s())
	require.NoError(t, Eq(a, a, out))
	assert.Equal(t, []int16{-1, -1, -1}, out.Int16s())
	require.NoError(t, Max(a, b, out))
	assert.Equal(t, []int16{0x0F0F, 0, 6}, out.Int16s())
	require.NoError(t, Min(a, b, out))
	assert.Equal(t, []int16{0x00FF, -1, 5}, out.Int16s())

	f := from[float32](t, -1, 2)
	outF := alloc(t, 2, vector.Float32)
	require.NoError(t, Xor(f, f, outF))
	assert.Equal(t, []int32{0, 0}, outF.Bits32())
	require.NoError(t, Not(f, outF))
	assert.Equal(t, []int32{^int32(-0x40800000), ^int32(0x40000000)}, outF.Bits32())
	assert.ErrorIs(t, Gt(f, f, outF), vector.ErrNotImplemented)
	assert.ErrorIs(t, Max(f, f, outF), vector.ErrNotImplemented)
}

func TestReLU(t *testing.T) {
	a := from[int8](t, 50, 0, -64, -1)
	out := alloc(t, 4, vector.Int8)
	require.NoError(t, ReLU(a, out, 0, 0))
	assert.Equal(t, []int8{50, 0, 0, 0}, out.Int8s())

	// Leaky slope of 1/8: -64 * 1 >> 3 = -8, -1 >> 3 = -1.
	require.NoError(t, ReLU(a, out, 1, 3))
	assert.Equal(t, []int8{50, 0, -8, -1}, out.Int8s())

	assert.ErrorIs(t, ReLU(a, out, 1, 8), vector.ErrInvalidArgument)
	assert.ErrorIs(t, ReLU(a, out, -129, 0), vector.ErrInvalidArgument)
	c := from[int32](t, 1)
	assert.ErrorIs(t, ReLU(c, alloc(t, 1, vector.Int32), 0, 0), vector.ErrUnsupported)
}

func TestAliasing(t *testing.T) {
	a := from[int8](t, 100, -100, 3)
	b := from[int8](t, 100, -100, 4)
	require.NoError(t, Add(a, b, a))
	assert.Equal(t, []int8{127, -128, 7}, a.Int8s())
}

func TestNullHandles(t *testing.T) {
	a := from[int8](t, 1)
	released, err := vector.New(1, vector.Int8)
	require.NoError(t, err)
	released.Release()

	assert.ErrorIs(t, Add(a, released, a), vector.ErrNull)
	assert.ErrorIs(t, Add(nil, a, a), vector.ErrNull)
	_, err = Sum(nil)
	assert.ErrorIs(t, err, vector.ErrNull)
	assert.ErrorIs(t, Zeros(released), vector.ErrNull)
}
