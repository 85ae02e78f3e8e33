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

// ProcessWithTail walks [0, size) one register of T at a time. full is
// called with the offset of every complete register, then tail is called
// once with the offset and length of the partial register left over, if
// any. Kernels typically load the tail with Load and write it with Store so
// that both paths share the same lane operations.
func ProcessWithTail[T Lanes](size int, full func(offset int), tail func(offset, count int)) {
	lanes := MaxLanes[T]()
	offset := 0
	for ; offset+lanes <= size; offset += lanes {
		full(offset)
	}
	if offset < size {
		tail(offset, size-offset)
	}
}
