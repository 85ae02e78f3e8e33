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

package hwy

import (
	"math"
	"testing"
)

func TestPromotePartialI8ToI16(t *testing.T) {
	v := Load([]int8{-128, -1, 0, 1, 127})
	lo := PromoteLowerI8ToI16(v)
	hi := PromoteUpperI8ToI16(v)

	if lo.NumLanes() != 2 || hi.NumLanes() != 3 {
		t.Fatalf("Promote partial halves: got %d and %d lanes, want 2 and 3", lo.NumLanes(), hi.NumLanes())
	}
	got := append(append([]int16{}, lo.data...), hi.data...)
	want := []int16{-128, -1, 0, 1, 127}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Promote partial lane %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPromoteLowerUpperI8ToI16(t *testing.T) {
	src := make([]int8, 16)
	for i := range src {
		src[i] = int8(i - 8)
	}
	v := LoadFull(src)

	lo := PromoteLowerI8ToI16(v)
	hi := PromoteUpperI8ToI16(v)

	if lo.NumLanes() != 8 || hi.NumLanes() != 8 {
		t.Fatalf("Promote halves: got %d and %d lanes, want 8 each", lo.NumLanes(), hi.NumLanes())
	}
	for i := range 8 {
		if lo.data[i] != int16(src[i]) {
			t.Errorf("PromoteLowerI8ToI16 lane %d: got %v, want %v", i, lo.data[i], src[i])
		}
		if hi.data[i] != int16(src[8+i]) {
			t.Errorf("PromoteUpperI8ToI16 lane %d: got %v, want %v", i, hi.data[i], src[8+i])
		}
	}
}

func TestPromoteLowerUpperI16ToI32(t *testing.T) {
	src := []int16{-32768, -2, -1, 0, 1, 2, 3, 32767}
	v := LoadFull(src)

	lo := PromoteLowerI16ToI32(v)
	hi := PromoteUpperI16ToI32(v)

	for i := range 4 {
		if lo.data[i] != int32(src[i]) {
			t.Errorf("PromoteLowerI16ToI32 lane %d: got %v, want %v", i, lo.data[i], src[i])
		}
		if hi.data[i] != int32(src[4+i]) {
			t.Errorf("PromoteUpperI16ToI32 lane %d: got %v, want %v", i, hi.data[i], src[4+i])
		}
	}
}

func TestPromotePartialI16ToI32(t *testing.T) {
	v := Load([]int16{-32768, 32767, -5})
	lo := PromoteLowerI16ToI32(v)
	hi := PromoteUpperI16ToI32(v)

	if lo.NumLanes() != 1 || lo.data[0] != -32768 {
		t.Errorf("PromoteLowerI16ToI32 partial: got %v, want [-32768]", lo.data)
	}
	if hi.NumLanes() != 2 || hi.data[0] != 32767 || hi.data[1] != -5 {
		t.Errorf("PromoteUpperI16ToI32 partial: got %v, want [32767 -5]", hi.data)
	}
}

func TestPromoteI32ToI64(t *testing.T) {
	result := PromoteI32ToI64(Load([]int32{math.MinInt32, math.MaxInt32}))
	if result[0] != math.MinInt32 || result[1] != math.MaxInt32 {
		t.Errorf("PromoteI32ToI64: got %v", result)
	}
}

func TestWidenedProductIsExact(t *testing.T) {
	a := PromoteLowerI8ToI16(Load([]int8{100, -128, -128, 0, 0, 0}))
	b := PromoteLowerI8ToI16(Load([]int8{100, -128, 127, 0, 0, 0}))
	r := Mul(a, b)

	want := []int16{10000, 16384, -16256}
	for i := range want {
		if r.data[i] != want[i] {
			t.Errorf("widened Mul lane %d: got %v, want %v", i, r.data[i], want[i])
		}
	}
}
