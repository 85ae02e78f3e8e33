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
	"bytes"
	"fmt"
	"math"

	"github.com/ajroetker/go-fixvec/vector"
)

const (
	floatAbsTolerance = 1e-6
	floatRelTolerance = 1e-3
)

// FloatEqual compares two results of the float32 operations. NaN never
// compares equal, infinities must match exactly, values within 1e-6 are
// equal and otherwise the relative difference must not exceed 1e-3.
func FloatEqual(a, b float32) bool {
	x, y := float64(a), float64(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return x == y
	}
	d := math.Abs(x - y)
	if d <= floatAbsTolerance {
		return true
	}
	return d <= floatRelTolerance*max(math.Abs(x), math.Abs(y))
}

// Mismatch is one element where two vectors disagree.
type Mismatch struct {
	Index int    `json:"index"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("[%d] want %s, got %s", m.Index, m.Want, m.Got)
}

func diffExact[T int8 | int16 | int32](want, got []T) []Mismatch {
	var out []Mismatch
	for i := range want {
		if want[i] != got[i] {
			out = append(out, Mismatch{Index: i, Want: fmt.Sprint(want[i]), Got: fmt.Sprint(got[i])})
		}
	}
	return out
}

// Equal compares two vectors element by element. Float32 elements with
// identical bits always match; otherwise FloatEqual decides. Vectors of
// different dtype or length yield a single mismatch at index -1.
func Equal(want, got *vector.Vector) []Mismatch {
	if want.DType() != got.DType() || want.Len() != got.Len() {
		return []Mismatch{{Index: -1, Want: want.String(), Got: got.String()}}
	}
	switch want.DType() {
	case vector.Int8:
		return diffExact(want.Int8s(), got.Int8s())
	case vector.Int16:
		return diffExact(want.Int16s(), got.Int16s())
	case vector.Int32:
		return diffExact(want.Int32s(), got.Int32s())
	default:
		var out []Mismatch
		w, g := want.Float32s(), got.Float32s()
		for i := range w {
			if math.Float32bits(w[i]) != math.Float32bits(g[i]) && !FloatEqual(w[i], g[i]) {
				out = append(out, Mismatch{Index: i, Want: fmt.Sprint(w[i]), Got: fmt.Sprint(g[i])})
			}
		}
		return out
	}
}

// Snapshot returns a copy of the vector's bytes.
func Snapshot(v *vector.Vector) []byte {
	return bytes.Clone(v.Bytes())
}

// Mutated reports whether v differs from an earlier Snapshot.
func Mutated(v *vector.Vector, snap []byte) bool {
	return !bytes.Equal(v.Bytes(), snap)
}
