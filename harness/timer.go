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

import "time"

// Timer measures the time spent inside the operations under test.
//
// Start and Stop must alternate; Elapsed returns the accumulated total.
type Timer interface {
	Start()
	Stop()
	Elapsed() time.Duration
	Reset()
}

// MonotonicTimer accumulates wall time using the monotonic clock.
// Starting a running timer or stopping an idle one panics.
type MonotonicTimer struct {
	start   time.Time
	running bool
	total   time.Duration
}

var _ Timer = (*MonotonicTimer)(nil)

// Start begins a measurement.
func (t *MonotonicTimer) Start() {
	if t.running {
		panic("harness: timer started twice")
	}
	t.running = true
	t.start = time.Now()
}

// Stop ends the current measurement and adds it to the total.
func (t *MonotonicTimer) Stop() {
	if !t.running {
		panic("harness: timer stopped while idle")
	}
	t.total += time.Since(t.start)
	t.running = false
}

// Elapsed returns the accumulated time of all completed measurements.
func (t *MonotonicTimer) Elapsed() time.Duration { return t.total }

// Reset clears the total and stops the timer.
func (t *MonotonicTimer) Reset() {
	*t = MonotonicTimer{}
}
