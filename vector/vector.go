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

// Package vector provides the dtype-tagged vector handle of the fixed-point
// vector library and the dispatch layer that routes operations on handles
// to a numeric backend.
//
// A Vector is a typed, sized view over a 16-byte aligned buffer. Vectors are
// either owned (allocated by New and freed by Release) or borrowed (wrapping
// a caller-managed buffer that Release never frees):
//
//	a, _ := vector.New(512, vector.Int16)
//	defer a.Release()
//
//	ops := vector.NewOps(fixedpoint.Kernels())
//	if err := ops.AddScalar(a, 3, a); err != nil {
//		// errors.Is(err, vector.ErrInvalidArgument), ...
//	}
package vector

import (
	"fmt"
	"unsafe"
)

// Ownership records whether a Vector is responsible for its buffer.
type Ownership uint8

const (
	// Owned vectors release their buffer through their allocator.
	Owned Ownership = iota
	// Borrowed vectors never release their buffer; its lifetime is managed
	// by the caller.
	Borrowed
)

func (o Ownership) String() string {
	if o == Owned {
		return "owned"
	}
	return "borrowed"
}

// Vector is a typed, sized, 16-byte aligned view over a buffer.
//
// A Vector is not safe for concurrent use. It must not be used after Release.
type Vector struct {
	buf   []byte
	dtype DType
	size  int
	own   Ownership
	alloc Allocator
}

var defaultAllocator Allocator = HeapAllocator{}

// New allocates an owned vector of size elements of type dt from the heap.
func New(size int, dt DType) (*Vector, error) {
	return NewWithAllocator(defaultAllocator, size, dt)
}

// NewWithAllocator allocates an owned vector through alloc. An invalid dtype
// or a non-positive size yields ErrNull, as does an allocation failure.
func NewWithAllocator(alloc Allocator, size int, dt DType) (*Vector, error) {
	if !dt.Valid() || size <= 0 {
		return nil, ErrNull
	}
	n := size * dt.Size()
	buf, err := alloc.Alloc(n)
	if err != nil {
		return nil, fmt.Errorf("%w: allocate %d bytes: %w", ErrNull, n, err)
	}
	if len(buf) < n {
		alloc.Free(buf)
		return nil, fmt.Errorf("%w: allocator returned %d of %d bytes", ErrInternal, len(buf), n)
	}
	if !IsAligned(buf) {
		alloc.Free(buf)
		return nil, ErrUnaligned
	}
	return &Vector{
		buf:   buf[:n:n],
		dtype: dt,
		size:  size,
		own:   Owned,
		alloc: alloc,
	}, nil
}

// Borrow wraps the first size elements of buf without taking ownership.
// buf must be 16-byte aligned and hold at least size*dt.Size() bytes.
func Borrow(buf []byte, dt DType, size int) (*Vector, error) {
	if !dt.Valid() {
		return nil, ErrTypeMismatch
	}
	if size <= 0 {
		return nil, ErrNull
	}
	n := size * dt.Size()
	if len(buf) < n {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, need %d", ErrInvalidArgument, len(buf), n)
	}
	if !IsAligned(buf) {
		return nil, ErrUnaligned
	}
	return &Vector{
		buf:   buf[:n:n],
		dtype: dt,
		size:  size,
		own:   Borrowed,
	}, nil
}

// From allocates an owned vector holding a copy of vals.
func From[T Element](vals []T) (*Vector, error) {
	v, err := New(len(vals), DTypeOf[T]())
	if err != nil {
		return nil, err
	}
	copy(Data[T](v), vals)
	return v, nil
}

// Release frees the buffer if the vector owns it and invalidates the handle.
// Releasing a nil or already released vector does nothing.
func (v *Vector) Release() {
	if v == nil || v.buf == nil {
		return
	}
	if v.own == Owned && v.alloc != nil {
		v.alloc.Free(v.buf)
	}
	v.buf = nil
	v.alloc = nil
}

// OK validates the handle: nil or released handles are ErrNull, misaligned
// buffers ErrUnaligned and invalid dtypes ErrTypeMismatch.
func (v *Vector) OK() error {
	if v == nil || v.buf == nil {
		return ErrNull
	}
	if !IsAligned(v.buf) {
		return ErrUnaligned
	}
	if !v.dtype.Valid() {
		return ErrTypeMismatch
	}
	return nil
}

// DType returns the element type.
func (v *Vector) DType() DType { return v.dtype }

// Len returns the number of elements.
func (v *Vector) Len() int { return v.size }

// Ownership reports whether the vector owns its buffer.
func (v *Vector) Ownership() Ownership { return v.own }

// Bytes returns the raw element bytes, exactly Len()*DType().Size() long.
func (v *Vector) Bytes() []byte { return v.buf }

// Data returns the elements of v as a []T. It panics if T does not match
// the vector's dtype.
func Data[T Element](v *Vector) []T {
	if want := DTypeOf[T](); v.dtype != want {
		panic(fmt.Sprintf("vector: %s view of %s vector", want, v.dtype))
	}
	if len(v.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&v.buf[0])), v.size) //nolint:gosec // buffer is aligned and sized for T
}

// Int8s returns the elements of an Int8 vector.
func (v *Vector) Int8s() []int8 { return Data[int8](v) }

// Int16s returns the elements of an Int16 vector.
func (v *Vector) Int16s() []int16 { return Data[int16](v) }

// Int32s returns the elements of an Int32 vector.
func (v *Vector) Int32s() []int32 { return Data[int32](v) }

// Float32s returns the elements of a Float32 vector.
func (v *Vector) Float32s() []float32 { return Data[float32](v) }

// Bits32 returns the raw 32-bit words of an Int32 or Float32 vector as int32.
// Float32 elements are exposed as their IEEE-754 bit patterns.
func (v *Vector) Bits32() []int32 {
	if v.dtype != Int32 && v.dtype != Float32 {
		panic(fmt.Sprintf("vector: 32-bit view of %s vector", v.dtype))
	}
	if len(v.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&v.buf[0])), v.size) //nolint:gosec // buffer is aligned and sized for int32
}

// Clone returns an owned deep copy of v allocated from the heap.
func (v *Vector) Clone() (*Vector, error) {
	if err := v.OK(); err != nil {
		return nil, err
	}
	c, err := New(v.size, v.dtype)
	if err != nil {
		return nil, err
	}
	copy(c.buf, v.buf)
	return c, nil
}

// CopyFrom overwrites v with the bytes of src. Both vectors must share
// dtype and length.
func (v *Vector) CopyFrom(src *Vector) error {
	if err := v.OK(); err != nil {
		return err
	}
	if err := src.OK(); err != nil {
		return err
	}
	if v.size != src.size {
		return ErrSizeMismatch
	}
	if v.dtype != src.dtype {
		return ErrTypeMismatch
	}
	copy(v.buf, src.buf)
	return nil
}

func (v *Vector) String() string {
	if v == nil {
		return "vector(nil)"
	}
	return fmt.Sprintf("vector(%s x %d, %s)", v.dtype, v.size, v.own)
}
