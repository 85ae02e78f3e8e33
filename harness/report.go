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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FailureKind classifies a failed check.
type FailureKind uint8

const (
	// FailStatus means the two layers returned different statuses.
	FailStatus FailureKind = iota
	// FailMismatch means the outputs or results differ.
	FailMismatch
	// FailInputMutated means an input vector changed.
	FailInputMutated
	// FailGuard means a guard word after a buffer was overwritten.
	FailGuard
	// FailPanic means a layer panicked, typically an out-of-range write
	// caught by the bounds-checked views.
	FailPanic
)

var failureNames = [...]string{
	FailStatus:       "status",
	FailMismatch:     "mismatch",
	FailInputMutated: "input mutated",
	FailGuard:        "guard",
	FailPanic:        "panic",
}

func (k FailureKind) String() string {
	if int(k) < len(failureNames) {
		return failureNames[k]
	}
	return fmt.Sprintf("failure(%d)", uint8(k))
}

// MarshalText encodes the kind by name.
func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Failure is one failed check in one trial.
type Failure struct {
	Kind   FailureKind `json:"kind"`
	Trial  int         `json:"trial"`
	Size   int         `json:"size"`
	Detail string      `json:"detail"`
}

// ScenarioResult aggregates the trials of one scenario.
type ScenarioResult struct {
	Name   string `json:"name"`
	Op     string `json:"op"`
	DType  string `json:"dtype"`
	Trials int    `json:"trials"`
	// Failed counts every failure; Failures keeps the first few.
	Failed    int           `json:"failed"`
	Failures  []Failure     `json:"failures,omitempty"`
	Reference time.Duration `json:"reference_ns"`
	Dispatch  time.Duration `json:"dispatch_ns"`
}

// Passed reports whether no check failed.
func (s ScenarioResult) Passed() bool { return s.Failed == 0 }

// Report is the outcome of a Runner.Run.
type Report struct {
	Backend   string           `json:"backend"`
	Seed      int64            `json:"seed"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// Failures returns the total number of failed checks.
func (r *Report) Failures() int {
	return lo.SumBy(r.Scenarios, func(s ScenarioResult) int { return s.Failed })
}

// Err returns an error naming the failing scenarios, or nil.
func (r *Report) Err() error {
	failing := lo.Filter(r.Scenarios, func(s ScenarioResult, _ int) bool { return !s.Passed() })
	if len(failing) == 0 {
		return nil
	}
	names := lo.Map(failing, func(s ScenarioResult, _ int) string { return s.Name })
	return fmt.Errorf("%d failures in %d scenarios: %v", r.Failures(), len(failing), names)
}

var tableColumns = []string{"scenario", "trials", "failed", "reference", "dispatch", "result"}

// WriteTable writes a human-readable summary, one row per scenario, followed
// by the recorded failures.
func (r *Report) WriteTable(w io.Writer) error {
	title := cases.Title(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "backend: %s\tseed: %d\n\n", r.Backend, r.Seed)
	upper := cases.Upper(language.English)
	fmt.Fprintln(tw, upper.String(strings.Join(tableColumns, "\t")))
	for _, s := range r.Scenarios {
		result := "pass"
		if !s.Passed() {
			result = "fail"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n",
			s.Name, s.Trials, s.Failed,
			s.Reference.Round(time.Microsecond), s.Dispatch.Round(time.Microsecond),
			title.String(result))
	}
	for _, s := range r.Scenarios {
		for _, f := range s.Failures {
			fmt.Fprintf(tw, "%s\ttrial %d\tsize %d\t%s\t%s\n", s.Name, f.Trial, f.Size, title.String(f.Kind.String()), f.Detail)
		}
	}
	passed := lo.CountBy(r.Scenarios, ScenarioResult.Passed)
	fmt.Fprintf(tw, "\n%d/%d scenarios passed\n", passed, len(r.Scenarios))
	return tw.Flush()
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
