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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ajroetker/go-fixvec/reference"
	"github.com/ajroetker/go-fixvec/vector"
)

const (
	// DefaultTrials is the number of randomized trials per scenario.
	DefaultTrials = 64
	// DefaultMaxSize is the largest random vector length.
	DefaultMaxSize = 256
	// maxRecorded bounds the failures kept per scenario; the count is exact.
	maxRecorded = 8
)

// Runner drives scenarios through the reference oracle and the dispatch
// layer. The zero value of every field except Ops is usable.
type Runner struct {
	// Ops is the implementation under test, typically a *vector.Ops.
	Ops Backend
	// Reference is the oracle; nil means reference.Ops.
	Reference Backend
	// Allocator supplies the guarded buffers; nil means the heap.
	Allocator vector.Allocator
	Logger    *slog.Logger
	// Trials per scenario; zero means DefaultTrials.
	Trials int
	// MaxSize bounds random vector lengths; zero means DefaultMaxSize.
	MaxSize int
	// FixedSize, when positive, replaces the random length.
	FixedSize int
	SeedMode  SeedMode
	// Seed for SeedFixed; zero means DefaultSeed.
	Seed int64
	// NewTimer creates the timers of a scenario; nil means MonotonicTimer.
	NewTimer func() Timer
}

func (r *Runner) defaults() {
	if r.Reference == nil {
		r.Reference = reference.Ops{}
	}
	if r.Allocator == nil {
		r.Allocator = vector.HeapAllocator{}
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.Trials <= 0 {
		r.Trials = DefaultTrials
	}
	if r.MaxSize <= 0 {
		r.MaxSize = DefaultMaxSize
	}
	if r.Seed == 0 {
		r.Seed = DefaultSeed
	}
	if r.NewTimer == nil {
		r.NewTimer = func() Timer { return &MonotonicTimer{} }
	}
}

// Run executes every scenario sequentially. Verification failures are
// recorded in the report; only setup errors such as a failed allocation or
// a cancelled context are returned.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) (*Report, error) {
	if r.Ops == nil {
		return nil, errors.New("harness: runner has no backend under test")
	}
	r.defaults()
	src := NewSource(r.SeedMode, r.Seed)
	report := &Report{
		Backend: r.Ops.Backend(),
		Seed:    src.Seed(),
	}
	r.Logger.Info("starting differential run",
		slog.String("backend", report.Backend),
		slog.Int64("seed", report.Seed),
		slog.Int("scenarios", len(scenarios)),
		slog.Int("trials", r.Trials),
	)
	for _, sc := range scenarios {
		res, err := r.runScenario(ctx, src, sc)
		if err != nil {
			return report, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		report.Scenarios = append(report.Scenarios, res)
	}
	r.Logger.Info("differential run finished",
		slog.Int("scenarios", len(report.Scenarios)),
		slog.Int("failures", report.Failures()),
	)
	return report, nil
}

func (r *Runner) runScenario(ctx context.Context, src *Source, sc Scenario) (ScenarioResult, error) {
	res := ScenarioResult{
		Name:  sc.Name,
		Op:    sc.Op,
		DType: sc.DType.String(),
	}
	refTimer, implTimer := r.NewTimer(), r.NewTimer()
	for trial := range r.Trials {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		size := r.FixedSize
		if size <= 0 {
			size = src.Size(r.MaxSize)
		}
		failures, err := r.runTrial(src, sc, size, refTimer, implTimer)
		if err != nil {
			return res, err
		}
		res.Trials++
		for _, f := range failures {
			f.Trial = trial
			f.Size = size
			res.Failed++
			if len(res.Failures) < maxRecorded {
				res.Failures = append(res.Failures, f)
			}
			r.Logger.Error("scenario failure",
				slog.String("scenario", sc.Name),
				slog.Int("trial", trial),
				slog.Int("size", size),
				slog.String("kind", f.Kind.String()),
				slog.String("detail", f.Detail),
			)
		}
	}
	res.Reference = refTimer.Elapsed()
	res.Dispatch = implTimer.Elapsed()
	r.Logger.Info("scenario finished",
		slog.String("scenario", sc.Name),
		slog.Int("trials", res.Trials),
		slog.Int("failed", res.Failed),
		slog.Duration("reference", res.Reference),
		slog.Duration("dispatch", res.Dispatch),
	)
	return res, nil
}

// trialState owns every buffer allocated for one trial.
type trialState struct {
	alloc   vector.Allocator
	guarded []*Guarded
}

func (t *trialState) vec(size int, dt vector.DType) (*Guarded, error) {
	g, err := NewGuarded(t.alloc, size, dt)
	if err != nil {
		return nil, err
	}
	t.guarded = append(t.guarded, g)
	return g, nil
}

func (t *trialState) release() {
	for _, g := range t.guarded {
		g.Release()
	}
}

func (r *Runner) runTrial(src *Source, sc Scenario, size int, refTimer, implTimer Timer) ([]Failure, error) {
	st := &trialState{alloc: r.Allocator}
	defer st.release()

	var args Args
	if sc.Args != nil {
		args = sc.Args(src, sc.DType)
	}

	inputs := make([]*vector.Vector, sc.Inputs)
	snaps := make([][]byte, sc.Inputs)
	for i := range inputs {
		g, err := st.vec(size, sc.DType)
		if err != nil {
			return nil, err
		}
		src.FillRandom(g.Vector)
		inputs[i] = g.Vector
		snaps[i] = Snapshot(g.Vector)
	}

	var refOut, implOut *vector.Vector
	if sc.HasOut {
		ro, err := st.vec(size, sc.Out)
		if err != nil {
			return nil, err
		}
		impl, err := st.vec(size, sc.Out)
		if err != nil {
			return nil, err
		}
		src.FillRandom(ro.Vector)
		copy(impl.Bytes(), ro.Bytes())
		refOut, implOut = ro.Vector, impl.Vector
	}

	implIn := inputs
	if sc.Alias {
		alias, err := st.vec(size, sc.DType)
		if err != nil {
			return nil, err
		}
		copy(alias.Bytes(), inputs[0].Bytes())
		implIn = append([]*vector.Vector{alias.Vector}, inputs[1:]...)
		implOut = alias.Vector
	}

	ref := invoke(refTimer, r.Reference, sc, inputs, refOut, args)
	impl := invoke(implTimer, r.Ops, sc, implIn, implOut, args)
	refRes, refErr := ref.res, ref.err
	implRes, implErr := impl.res, impl.err

	var failures []Failure
	refStatus, implStatus := vector.StatusOf(refErr), vector.StatusOf(implErr)
	switch {
	case ref.panicked != nil || impl.panicked != nil:
		for _, c := range []struct {
			layer string
			p     any
		}{{"reference", ref.panicked}, {"dispatch", impl.panicked}} {
			if c.p != nil {
				failures = append(failures, Failure{Kind: FailPanic, Detail: fmt.Sprintf("%s: %v", c.layer, c.p)})
			}
		}
	case refStatus != implStatus:
		failures = append(failures, Failure{
			Kind:   FailStatus,
			Detail: fmt.Sprintf("reference %q, dispatch %q", refStatus, implStatus),
		})
	case refErr == nil:
		if sc.HasOut {
			if mm := Equal(refOut, implOut); len(mm) > 0 {
				failures = append(failures, Failure{Kind: FailMismatch, Detail: describeMismatches(mm)})
			}
		}
		if !resultsEqual(refRes, implRes) {
			failures = append(failures, Failure{
				Kind:   FailMismatch,
				Detail: fmt.Sprintf("result: reference %s, dispatch %s", refRes, implRes),
			})
		}
	}

	for i, in := range inputs {
		if Mutated(in, snaps[i]) {
			failures = append(failures, Failure{Kind: FailInputMutated, Detail: fmt.Sprintf("input %d", i)})
		}
	}
	for i, g := range st.guarded {
		if !g.GuardIntact() {
			failures = append(failures, Failure{Kind: FailGuard, Detail: fmt.Sprintf("buffer %d (%s)", i, g.Vector)})
		}
	}
	return failures, nil
}

type callResult struct {
	res      Result
	err      error
	panicked any
}

// invoke times one call of sc against b. A panic inside b is recovered and
// returned in panicked so that one broken kernel cannot abort the run.
func invoke(t Timer, b Backend, sc Scenario, in []*vector.Vector, out *vector.Vector, args Args) (cr callResult) {
	t.Start()
	defer func() {
		t.Stop()
		if p := recover(); p != nil {
			cr.panicked = p
		}
	}()
	cr.res, cr.err = sc.Call(b, in, out, args)
	return cr
}

func resultsEqual(a, b Result) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case IntResult:
		return a.Int == b.Int
	case FloatResult:
		return FloatEqual(a.Float, b.Float)
	default:
		return true
	}
}

func describeMismatches(mm []Mismatch) string {
	const show = 4
	parts := make([]string, 0, show+1)
	for i, m := range mm {
		if i == show {
			parts = append(parts, fmt.Sprintf("... %d more", len(mm)-show))
			break
		}
		parts = append(parts, m.String())
	}
	return strings.Join(parts, "; ")
}
