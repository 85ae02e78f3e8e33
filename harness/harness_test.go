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
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-fixvec/hwy/contrib/fixedpoint"
	"github.com/ajroetker/go-fixvec/reference"
	"github.com/ajroetker/go-fixvec/vector"
)

func TestGuarded(t *testing.T) {
	counter := vector.NewCountingAllocator(nil)
	g, err := NewGuarded(counter, 5, vector.Int16)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, vector.Borrowed, g.Ownership())
	assert.Len(t, g.raw, 5*2+GuardSize)
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, g.raw[10:])
	assert.True(t, g.GuardIntact())

	g.raw[11] = 0
	assert.False(t, g.GuardIntact())

	g.Release()
	g.Release()
	assert.EqualValues(t, 0, counter.Live())
	assert.ErrorIs(t, g.OK(), vector.ErrNull)

	_, err = NewGuarded(counter, 0, vector.Int8)
	assert.ErrorIs(t, err, vector.ErrNull)
}

func TestSourceDeterministic(t *testing.T) {
	draw := func() []int32 {
		src := NewSource(SeedFixed, DefaultSeed)
		v, err := vector.New(64, vector.Int32)
		require.NoError(t, err)
		defer v.Release()
		src.FillRandom(v)
		return append([]int32(nil), v.Int32s()...)
	}
	if diff := cmp.Diff(draw(), draw()); diff != "" {
		t.Errorf("fixed seed is not reproducible (-first +second):\n%s", diff)
	}

	src := NewSource(SeedFixed, 7)
	assert.Equal(t, int64(7), src.Seed())
	for range 1000 {
		f := src.Float()
		assert.True(t, f > -128 && f < 128 && f == float32(math.Trunc(float64(f))), "float %v", f)
		s := src.Scalar(vector.Int8)
		assert.True(t, s >= -128 && s <= 127, "scalar %d", s)
		assert.LessOrEqual(t, src.Shift(vector.Int16), uint(15))
		n := src.Size(DefaultMaxSize)
		assert.True(t, n >= 1 && n <= DefaultMaxSize)
	}

	mode, err := ParseSeedMode("Clock")
	require.NoError(t, err)
	assert.Equal(t, SeedClock, mode)
	_, err = ParseSeedMode("random")
	assert.Error(t, err)
}

func TestFloatEqual(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		a, b float32
		want bool
	}{
		{1, 1, true},
		{0, 1e-7, true},
		{0, 1e-5, false},
		{1000, 1000.5, true},
		{1000, 1002, false},
		{nan, nan, false},
		{inf, inf, true},
		{inf, -inf, false},
		{inf, math.MaxFloat32, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FloatEqual(tt.a, tt.b), "FloatEqual(%v, %v)", tt.a, tt.b)
	}
}

func TestEqualAndMutated(t *testing.T) {
	a, err := vector.From([]float32{1, float32(math.NaN()), 3})
	require.NoError(t, err)
	defer a.Release()
	b, err := a.Clone()
	require.NoError(t, err)
	defer b.Release()

	// Identical bits match even for NaN.
	assert.Empty(t, Equal(a, b))
	b.Float32s()[2] = 4
	mm := Equal(a, b)
	require.Len(t, mm, 1)
	assert.Equal(t, 2, mm[0].Index)

	snap := Snapshot(a)
	assert.False(t, Mutated(a, snap))
	a.Float32s()[0] = 2
	assert.True(t, Mutated(a, snap))

	c, err := vector.New(3, vector.Int32)
	require.NoError(t, err)
	defer c.Release()
	assert.Equal(t, -1, Equal(a, c)[0].Index)
}

func TestMonotonicTimer(t *testing.T) {
	var tm MonotonicTimer
	assert.Panics(t, tm.Stop)
	tm.Start()
	assert.Panics(t, tm.Start)
	tm.Stop()
	assert.GreaterOrEqual(t, tm.Elapsed(), time.Duration(0))
	tm.Reset()
	assert.Zero(t, tm.Elapsed())
}

func TestRegistry(t *testing.T) {
	all := Registry()
	names := map[string]bool{}
	for _, sc := range all {
		assert.False(t, names[sc.Name], "duplicate scenario %s", sc.Name)
		names[sc.Name] = true
		assert.NotNil(t, sc.Call, sc.Name)
	}
	for _, want := range []string{
		"add/int8", "add/int8/alias", "mac/float32", "mac_f32/float32",
		"mul_widen/int16", "convert/int8->int32", "relu/int16/alias", "ones/float32",
	} {
		assert.True(t, names[want], "missing scenario %s", want)
	}

	widen := Filter(all, []string{"mul_widen"}, []vector.DType{vector.Int8})
	require.Len(t, widen, 1)
	assert.Equal(t, vector.Int16, widen[0].Out)

	ops := Ops(all)
	assert.Contains(t, ops, "dot_f32")
	assert.Len(t, Filter(all, nil, nil), len(all))
}

func TestRunnerMatchesReference(t *testing.T) {
	var logs bytes.Buffer
	r := &Runner{
		Ops:     vector.NewOps(fixedpoint.Kernels()),
		Logger:  slog.New(slog.NewJSONHandler(&logs, nil)),
		Trials:  8,
		MaxSize: 70,
	}
	report, err := r.Run(context.Background(), Registry())
	require.NoError(t, err)
	for _, s := range report.Scenarios {
		for _, f := range s.Failures {
			t.Errorf("%s: trial %d size %d: %s: %s", s.Name, f.Trial, f.Size, f.Kind, f.Detail)
		}
	}
	assert.NoError(t, report.Err())
	assert.Equal(t, DefaultSeed, report.Seed)
	assert.Len(t, report.Scenarios, len(Registry()))
	assert.Contains(t, logs.String(), "differential run finished")
}

// faultyOps corrupts selected operations of a correct backend.
type faultyOps struct {
	*vector.Ops
}

// Add is off by one in the last element.
func (f faultyOps) Add(a, b, out *vector.Vector) error {
	if err := f.Ops.Add(a, b, out); err != nil {
		return err
	}
	if out.DType() == vector.Int16 {
		out.Int16s()[out.Len()-1]++
	}
	return nil
}

// Neg writes into its input when not aliased.
func (f faultyOps) Neg(a, out *vector.Vector) error {
	if err := f.Ops.Neg(a, out); err != nil {
		return err
	}
	if a != out && a.DType() == vector.Int8 {
		a.Int8s()[0] ^= 1
	}
	return nil
}

// Sub flips the byte just past an int16 output, as an off-by-one kernel
// writing through a raw pointer would.
func (f faultyOps) Sub(a, b, out *vector.Vector) error {
	if err := f.Ops.Sub(a, b, out); err != nil {
		return err
	}
	if out.DType() == vector.Int16 {
		buf := out.Bytes()
		past := (*byte)(unsafe.Add(unsafe.Pointer(&buf[len(buf)-1]), 1))
		*past ^= 0xFF
	}
	return nil
}

// Sum reports the wrong status for float32.
func (f faultyOps) Sum(a *vector.Vector) (int32, error) {
	if a.DType() == vector.Float32 {
		return 0, vector.ErrNotImplemented
	}
	return f.Ops.Sum(a)
}

func TestRunnerDetectsFaults(t *testing.T) {
	r := &Runner{
		Ops:       faultyOps{vector.NewOps(fixedpoint.Kernels())},
		Trials:    3,
		FixedSize: 17,
	}
	scenarios := Filter(Registry(), []string{"add", "neg", "sub", "sum"}, nil)
	report, err := r.Run(context.Background(), scenarios)
	require.NoError(t, err)
	require.Error(t, report.Err())

	byName := map[string]ScenarioResult{}
	for _, s := range report.Scenarios {
		byName[s.Name] = s
	}
	assert.Equal(t, 3, byName["add/int16"].Failed)
	assert.Equal(t, FailMismatch, byName["add/int16"].Failures[0].Kind)
	assert.Equal(t, 17, byName["add/int16"].Failures[0].Size)
	assert.Equal(t, 3, byName["add/int16/alias"].Failed)
	assert.True(t, byName["add/int8"].Passed())
	assert.Equal(t, FailInputMutated, byName["neg/int8"].Failures[0].Kind)
	// The aliased variant writes into a copy, so the original inputs survive.
	assert.True(t, byName["neg/int8/alias"].Passed())
	assert.Equal(t, FailStatus, byName["sum/float32"].Failures[0].Kind)
	assert.Equal(t, 3, byName["sub/int16"].Failed)
	assert.Equal(t, FailGuard, byName["sub/int16"].Failures[0].Kind)
	assert.Contains(t, byName["sub/int16"].Failures[0].Detail, "buffer 3")
	assert.Equal(t, 3, byName["sub/int16/alias"].Failed)
	assert.Equal(t, FailGuard, byName["sub/int16/alias"].Failures[0].Kind)
	assert.True(t, byName["sub/int8"].Passed())
	assert.Equal(t, 18, report.Failures())

	var table bytes.Buffer
	require.NoError(t, report.WriteTable(&table))
	assert.Contains(t, table.String(), "add/int16")
	assert.Contains(t, table.String(), "Fail")
	assert.Contains(t, table.String(), "Input Mutated")
	assert.Contains(t, table.String(), "Guard")
	assert.Contains(t, table.String(), "SCENARIO  ")

	var js bytes.Buffer
	require.NoError(t, report.WriteJSON(&js))
	var decoded struct {
		Scenarios []struct {
			Name     string `json:"name"`
			Failed   int    `json:"failed"`
			Failures []struct {
				Kind string `json:"kind"`
			} `json:"failures"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	for _, s := range decoded.Scenarios {
		if s.Name == "sum/float32" {
			assert.Equal(t, "status", s.Failures[0].Kind)
		}
	}
}

// panickingOps indexes one element past the int16 output of Add.
type panickingOps struct {
	*vector.Ops
}

func (p panickingOps) Add(a, b, out *vector.Vector) error {
	if err := p.Ops.Add(a, b, out); err != nil {
		return err
	}
	if out.DType() == vector.Int16 {
		xs := out.Int16s()
		xs[len(xs)] = 1
	}
	return nil
}

func TestRunnerRecordsPanics(t *testing.T) {
	var logs bytes.Buffer
	r := &Runner{
		Ops:       panickingOps{vector.NewOps(fixedpoint.Kernels())},
		Logger:    slog.New(slog.NewJSONHandler(&logs, nil)),
		Trials:    3,
		FixedSize: 9,
	}
	scenarios := Filter(Registry(), []string{"add"}, []vector.DType{vector.Int16, vector.Int32})
	report, err := r.Run(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, report.Scenarios, len(scenarios))

	byName := map[string]ScenarioResult{}
	for _, s := range report.Scenarios {
		byName[s.Name] = s
	}
	for _, name := range []string{"add/int16", "add/int16/alias"} {
		res := byName[name]
		assert.Equal(t, 3, res.Trials, name)
		assert.Equal(t, 3, res.Failed, name)
		assert.Equal(t, FailPanic, res.Failures[0].Kind, name)
		assert.Contains(t, res.Failures[0].Detail, "dispatch: runtime error: index out of range", name)
	}
	assert.True(t, byName["add/int32"].Passed())
	assert.Equal(t, 6, report.Failures())
	assert.Contains(t, logs.String(), `"kind":"panic"`)
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Ops: vector.NewOps(fixedpoint.Kernels())}
	_, err := r.Run(ctx, Registry()[:1])
	assert.ErrorIs(t, err, context.Canceled)

	_, err = (&Runner{}).Run(context.Background(), nil)
	assert.Error(t, err)
}

type failingAllocator struct{}

func (failingAllocator) Alloc(int) ([]byte, error) { return nil, errors.New("no memory") }
func (failingAllocator) Free([]byte)               {}

func TestRunnerAllocationError(t *testing.T) {
	r := &Runner{Ops: vector.NewOps(fixedpoint.Kernels()), Allocator: failingAllocator{}}
	_, err := r.Run(context.Background(), Registry()[:1])
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no memory"))
}

func TestStdDev(t *testing.T) {
	v, err := NewStdDevInput(NewSource(SeedFixed, DefaultSeed))
	require.NoError(t, err)
	defer v.Release()
	xs := v.Int16s()
	for _, x := range xs {
		require.True(t, x >= -SampleAmplitude && x <= SampleAmplitude, "sample %d", x)
	}
	snap := Snapshot(v)

	want, err := StdDev(reference.Ops{}, v)
	require.NoError(t, err)
	got, err := StdDev(vector.NewOps(fixedpoint.Kernels()), v)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, Mutated(v, snap))

	// Compare with a float computation over the same samples.
	var mean float64
	for _, x := range xs {
		mean += float64(x)
	}
	mean /= StdDevSize
	var variance float64
	for _, x := range xs {
		d := float64(x) - math.Floor(mean)
		variance += d * d
	}
	variance /= StdDevSize
	assert.InDelta(t, math.Sqrt(variance), float64(got.StdDev), 2)
	assert.Greater(t, got.StdDev, int32(0))

	odd, err := vector.New(500, vector.Int16)
	require.NoError(t, err)
	defer odd.Release()
	_, err = StdDev(reference.Ops{}, odd)
	assert.ErrorIs(t, err, vector.ErrInvalidArgument)

	f, err := vector.New(8, vector.Float32)
	require.NoError(t, err)
	defer f.Release()
	_, err = StdDev(reference.Ops{}, f)
	assert.ErrorIs(t, err, vector.ErrUnsupported)
}

func TestISqrt(t *testing.T) {
	for _, x := range []uint32{0, 1, 2, 3, 4, 15, 16, 17, 99, 100, 1 << 20, math.MaxUint32} {
		want := uint32(math.Sqrt(float64(x)))
		assert.Equal(t, want, ISqrt(x), "ISqrt(%d)", x)
	}
}
