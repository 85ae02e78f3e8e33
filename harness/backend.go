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

// Package harness checks the dispatch layer against the reference oracle.
//
// A Runner executes Scenarios: for every trial it allocates guarded vectors
// of a random size, fills them from a seeded Source, runs the operation
// through both backends and records every disagreement in a Report. Status
// codes must match, outputs must match exactly (floats within a tolerance),
// inputs must be left untouched and the guard word after every buffer must
// survive.
package harness

import "github.com/ajroetker/go-fixvec/vector"

// Backend is the operation set shared by vector.Ops and reference.Ops.
type Backend interface {
	Backend() string

	Add(a, b, out *vector.Vector) error
	Sub(a, b, out *vector.Vector) error
	AddScalar(a *vector.Vector, s int32, out *vector.Vector) error
	AddScalarF32(a *vector.Vector, s float32, out *vector.Vector) error
	Mul(a, b, out *vector.Vector, shift uint) error
	MulScalar(a *vector.Vector, s int32, out *vector.Vector, shift uint) error
	MulScalarF32(a *vector.Vector, s float32, out *vector.Vector) error
	MulWiden(a, b, out *vector.Vector) error
	Sum(a *vector.Vector) (int32, error)
	SumF32(a *vector.Vector) (float32, error)
	Dot(a, b *vector.Vector) (int32, error)
	DotF32(a, b *vector.Vector) (float32, error)
	Abs(a, out *vector.Vector) error
	Neg(a, out *vector.Vector) error
	Ceil(a, out *vector.Vector, bound int32) error
	CeilF32(a, out *vector.Vector, bound float32) error
	Floor(a, out *vector.Vector, bound int32) error
	FloorF32(a, out *vector.Vector, bound float32) error
	MAC(a *vector.Vector, acc *int32, mult int32) error
	MACF32(a *vector.Vector, acc *float32, mult float32) error
	Zeros(a *vector.Vector) error
	Ones(a *vector.Vector) error
	Fill(a *vector.Vector, v int32) error
	FillF32(a *vector.Vector, v float32) error
	Copy(src, dst *vector.Vector) error
	Convert(src, dst *vector.Vector) error
	And(a, b, out *vector.Vector) error
	Or(a, b, out *vector.Vector) error
	Xor(a, b, out *vector.Vector) error
	Not(a, out *vector.Vector) error
	Max(a, b, out *vector.Vector) error
	Min(a, b, out *vector.Vector) error
	Gt(a, b, out *vector.Vector) error
	Lt(a, b, out *vector.Vector) error
	Eq(a, b, out *vector.Vector) error
	ReLU(a, out *vector.Vector, mult int32, shift uint) error
}
