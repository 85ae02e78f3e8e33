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
	"fmt"
	"math/bits"

	"github.com/ajroetker/go-fixvec/vector"
)

const (
	// StdDevSize is the sample count of the end-to-end scenario.
	StdDevSize = 512
	// SampleAmplitude bounds the samples of NewStdDevInput, keeping the
	// energy and variance sums inside int32.
	SampleAmplitude = 1000
)

// NewStdDevInput allocates StdDevSize int16 samples drawn from src.
func NewStdDevInput(src *Source) (*vector.Vector, error) {
	v, err := vector.New(StdDevSize, vector.Int16)
	if err != nil {
		return nil, err
	}
	src.FillSamples(v, SampleAmplitude)
	return v, nil
}

// Stats are the fixed-point statistics computed by StdDev.
type Stats struct {
	Mean     int32 `json:"mean"`
	Energy   int32 `json:"energy"`
	Variance int32 `json:"variance"`
	StdDev   int32 `json:"stddev"`
}

// StdDev computes the integer standard deviation of an int8 or int16 vector
// whose length is a power of two, using only vector operations:
// the mean is sum >> log2(n), the mean energy is the widened square summed
// and shifted, and the variance is the self dot product of the centered
// samples shifted the same way. The square root is taken with ISqrt.
//
// v is left unchanged.
func StdDev(b Backend, v *vector.Vector) (Stats, error) {
	if err := v.OK(); err != nil {
		return Stats{}, err
	}
	n := v.Len()
	if bits.OnesCount(uint(n)) != 1 {
		return Stats{}, fmt.Errorf("stddev of %d samples: length must be a power of two: %w", n, vector.ErrInvalidArgument)
	}
	shift := bits.TrailingZeros(uint(n))

	sum, err := b.Sum(v)
	if err != nil {
		return Stats{}, fmt.Errorf("sum: %w", err)
	}
	st := Stats{Mean: sum >> shift}

	wide, ok := vector.WidenTarget(v.DType())
	if !ok {
		return Stats{}, fmt.Errorf("stddev of %s samples: %w", v.DType(), vector.ErrUnsupported)
	}
	sq, err := vector.New(n, wide)
	if err != nil {
		return Stats{}, err
	}
	defer sq.Release()
	if err := b.MulWiden(v, v, sq); err != nil {
		return Stats{}, fmt.Errorf("mul_widen: %w", err)
	}
	energy, err := b.Sum(sq)
	if err != nil {
		return Stats{}, fmt.Errorf("sum of squares: %w", err)
	}
	st.Energy = energy >> shift

	centered, err := vector.New(n, v.DType())
	if err != nil {
		return Stats{}, err
	}
	defer centered.Release()
	if err := b.Copy(v, centered); err != nil {
		return Stats{}, fmt.Errorf("copy: %w", err)
	}
	if err := b.AddScalar(centered, -st.Mean, centered); err != nil {
		return Stats{}, fmt.Errorf("add_scalar: %w", err)
	}
	dot, err := b.Dot(centered, centered)
	if err != nil {
		return Stats{}, fmt.Errorf("dot: %w", err)
	}
	st.Variance = dot >> shift
	st.StdDev = int32(ISqrt(uint32(max(st.Variance, 0))))
	return st, nil
}

// ISqrt returns the floor of the square root of x.
func ISqrt(x uint32) uint32 {
	var r uint32
	bit := uint32(1) << 30
	for bit > x {
		bit >>= 2
	}
	for bit != 0 {
		if x >= r+bit {
			x -= r + bit
			r = r>>1 + bit
		} else {
			r >>= 1
		}
		bit >>= 2
	}
	return r
}
