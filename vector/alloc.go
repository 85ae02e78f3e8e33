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
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Alignment is the byte alignment of every vector buffer (one 128-bit lane
// register).
const Alignment = 16

// Allocator supplies aligned buffers for owned vectors.
type Allocator interface {
	// Alloc returns a buffer of exactly n bytes whose first byte is
	// Alignment-aligned, or an error.
	Alloc(n int) ([]byte, error)
	// Free releases a buffer previously returned by Alloc.
	Free(buf []byte)
}

// ErrAllocSize is returned by allocators asked for a non-positive size.
var ErrAllocSize = errors.New("vector: allocation size must be positive")

// HeapAllocator allocates from the Go heap. Free is a no-op; the garbage
// collector reclaims the backing array once the last slice is dropped.
type HeapAllocator struct{}

// Alloc allocates n bytes aligned to Alignment.
func (HeapAllocator) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrAllocSize, n)
	}
	return AllocAligned(n), nil
}

// Free does nothing.
func (HeapAllocator) Free([]byte) {}

// AllocAligned returns a zeroed byte slice of length n whose first byte is
// aligned to Alignment. The backing array is over-allocated by Alignment
// bytes and the result starts at the first aligned offset.
func AllocAligned(n int) []byte {
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n+Alignment)
	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // alignment requires the address
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)
	return buf[offset : offset+uintptr(n) : offset+uintptr(n)]
}

// IsAligned reports whether buf starts on an Alignment boundary.
// An empty buffer is never aligned.
func IsAligned(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&buf[0]))&(Alignment-1) == 0 //nolint:gosec // alignment requires the address
}

// CountingAllocator wraps an Allocator and tracks the number of live
// allocations.
type CountingAllocator struct {
	Allocator Allocator

	live   atomic.Int64
	allocs atomic.Int64
}

// NewCountingAllocator wraps a; a nil a means HeapAllocator.
func NewCountingAllocator(a Allocator) *CountingAllocator {
	if a == nil {
		a = HeapAllocator{}
	}
	return &CountingAllocator{Allocator: a}
}

// Alloc forwards to the wrapped allocator and counts successful allocations.
func (c *CountingAllocator) Alloc(n int) ([]byte, error) {
	buf, err := c.Allocator.Alloc(n)
	if err != nil {
		return nil, err
	}
	c.live.Add(1)
	c.allocs.Add(1)
	return buf, nil
}

// Free forwards to the wrapped allocator.
func (c *CountingAllocator) Free(buf []byte) {
	c.live.Add(-1)
	c.Allocator.Free(buf)
}

// Live returns the number of allocations not yet freed.
func (c *CountingAllocator) Live() int64 { return c.live.Load() }

// Total returns the number of successful allocations.
func (c *CountingAllocator) Total() int64 { return c.allocs.Load() }

