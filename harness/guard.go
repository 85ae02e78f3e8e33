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

package harness

import (
	"encoding/binary"
	"fmt"

	"github.com/ajroetker/go-fixvec/vector"
)

const (
	// Sentinel is the guard word written directly after every test buffer.
	Sentinel uint32 = 0xDEADBEEF
	// GuardSize is the size of the guard region in bytes.
	GuardSize = 4
)

// Guarded is a borrowed vector followed by a guard word. Writes past the end
// of the vector's data overwrite the sentinel.
type Guarded struct {
	*vector.Vector

	raw   []byte
	alloc vector.Allocator
}

// NewGuarded allocates size elements of dt plus the guard region.
func NewGuarded(alloc vector.Allocator, size int, dt vector.DType) (*Guarded, error) {
	if !dt.Valid() || size <= 0 {
		return nil, fmt.Errorf("guarded vector of %d x %s: %w", size, dt, vector.ErrNull)
	}
	n := size * dt.Size()
	raw, err := alloc.Alloc(n + GuardSize)
	if err != nil {
		return nil, fmt.Errorf("allocate guarded vector: %w", err)
	}
	binary.LittleEndian.PutUint32(raw[n:], Sentinel)
	v, err := vector.Borrow(raw[:n], dt, size)
	if err != nil {
		alloc.Free(raw)
		return nil, fmt.Errorf("borrow guarded vector: %w", err)
	}
	return &Guarded{Vector: v, raw: raw, alloc: alloc}, nil
}

// GuardIntact reports whether the sentinel after the data is unchanged.
func (g *Guarded) GuardIntact() bool {
	n := len(g.raw) - GuardSize
	return binary.LittleEndian.Uint32(g.raw[n:]) == Sentinel
}

// Release invalidates the vector and frees the buffer.
func (g *Guarded) Release() {
	if g == nil || g.raw == nil {
		return
	}
	g.Vector.Release()
	g.alloc.Free(g.raw)
	g.raw = nil
}
