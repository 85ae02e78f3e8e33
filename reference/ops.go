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

import "github.com/ajroetker/go-fixvec/vector"

// Ops exposes the reference functions with the method set of vector.Ops so
// both layers can be driven through one interface.
type Ops struct{}

// Backend returns the name of the oracle.
func (Ops) Backend() string { return "reference" }

func (Ops) Add(a, b, out *vector.Vector) error { return Add(a, b, out) }
func (Ops) Sub(a, b, out *vector.Vector) error { return Sub(a, b, out) }

func (Ops) AddScalar(a *vector.Vector, s int32, out *vector.Vector) error {
	return AddScalar(a, s, out)
}

func (Ops) AddScalarF32(a *vector.Vector, s float32, out *vector.Vector) error {
	return AddScalarF32(a, s, out)
}

func (Ops) Mul(a, b, out *vector.Vector, shift uint) error { return Mul(a, b, out, shift) }

func (Ops) MulScalar(a *vector.Vector, s int32, out *vector.Vector, shift uint) error {
	return MulScalar(a, s, out, shift)
}

func (Ops) MulScalarF32(a *vector.Vector, s float32, out *vector.Vector) error {
	return MulScalarF32(a, s, out)
}

func (Ops) MulWiden(a, b, out *vector.Vector) error { return MulWiden(a, b, out) }
func (Ops) Sum(a *vector.Vector) (int32, error) { return Sum(a) }
func (Ops) SumF32(a *vector.Vector) (float32, error) { return SumF32(a) }
func (Ops) Dot(a, b *vector.Vector) (int32, error) { return Dot(a, b) }
func (Ops) DotF32(a, b *vector.Vector) (float32, error) { return DotF32(a, b) }
func (Ops) Abs(a, out *vector.Vector) error { return Abs(a, out) }
func (Ops) Neg(a, out *vector.Vector) error { return Neg(a, out) }
func (Ops) Ceil(a, out *vector.Vector, bound int32) error { return Ceil(a, out, bound) }
func (Ops) Floor(a, out *vector.Vector, bound int32) error { return Floor(a, out, bound) }

func (Ops) CeilF32(a, out *vector.Vector, bound float32) error { return CeilF32(a, out, bound) }
func (Ops) FloorF32(a, out *vector.Vector, bound float32) error { return FloorF32(a, out, bound) }

func (Ops) MAC(a *vector.Vector, acc *int32, mult int32) error { return MAC(a, acc, mult) }
func (Ops) MACF32(a *vector.Vector, acc *float32, mult float32) error { return MACF32(a, acc, mult) }

func (Ops) Zeros(a *vector.Vector) error { return Zeros(a) }
func (Ops) Ones(a *vector.Vector) error { return Ones(a) }
func (Ops) Fill(a *vector.Vector, v int32) error { return Fill(a, v) }
func (Ops) FillF32(a *vector.Vector, v float32) error { return FillF32(a, v) }
func (Ops) Copy(src, dst *vector.Vector) error { return Copy(src, dst) }
func (Ops) Convert(src, dst *vector.Vector) error { return Convert(src, dst) }
func (Ops) And(a, b, out *vector.Vector) error { return And(a, b, out) }
func (Ops) Or(a, b, out *vector.Vector) error { return Or(a, b, out) }
func (Ops) Xor(a, b, out *vector.Vector) error { return Xor(a, b, out) }
func (Ops) Not(a, out *vector.Vector) error { return Not(a, out) }
func (Ops) Max(a, b, out *vector.Vector) error { return Max(a, b, out) }
func (Ops) Min(a, b, out *vector.Vector) error { return Min(a, b, out) }
func (Ops) Gt(a, b, out *vector.Vector) error { return Gt(a, b, out) }
func (Ops) Lt(a, b, out *vector.Vector) error { return Lt(a, b, out) }
func (Ops) Eq(a, b, out *vector.Vector) error { return Eq(a, b, out) }

func (Ops) ReLU(a, out *vector.Vector, mult int32, shift uint) error {
	return ReLU(a, out, mult, shift)
}
