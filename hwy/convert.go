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

import "math"

// BitCastF32ToI32 reinterprets float32 lanes as int32 bit patterns.
func BitCastF32ToI32(v Vec[float32]) Vec[int32] {
	result := make([]int32, len(v.data))
	for i, val := range v.data {
		result[i] = int32(math.Float32bits(val))
	}
	return Vec[int32]{data: result}
}

// BitCastI32ToF32 reinterprets int32 bit patterns as float32 lanes.
func BitCastI32ToF32(v Vec[int32]) Vec[float32] {
	result := make([]float32, len(v.data))
	for i, val := range v.data {
		result[i] = math.Float32frombits(uint32(val))
	}
	return Vec[float32]{data: result}
}
