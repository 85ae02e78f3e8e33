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

package fixedpoint

import "github.com/ajroetker/go-fixvec/hwy"

// The element-wise kernels below walk their slices with hwy.ProcessWithTail.
// Complete registers go through LoadFull/StoreFull; the remainder is loaded
// as one partial register and written back with Store, so the tail runs the
// same lane operations as the body. Loads copy, which makes dst aliasing an
// input safe.

func unaryTo[T hwy.Lanes](dst, a []T, op func(hwy.Vec[T]) hwy.Vec[T]) {
	hwy.ProcessWithTail[T](len(dst),
		func(i int) {
			hwy.StoreFull(op(hwy.LoadFull(a[i:])), dst[i:])
		},
		func(i, n int) {
			hwy.Store(op(hwy.Load(a[i:i+n])), dst[i:i+n])
		},
	)
}

func binaryTo[T hwy.Lanes](dst, a, b []T, op func(a, b hwy.Vec[T]) hwy.Vec[T]) {
	hwy.ProcessWithTail[T](len(dst),
		func(i int) {
			hwy.StoreFull(op(hwy.LoadFull(a[i:]), hwy.LoadFull(b[i:])), dst[i:])
		},
		func(i, n int) {
			hwy.Store(op(hwy.Load(a[i:i+n]), hwy.Load(b[i:i+n])), dst[i:i+n])
		},
	)
}

// widenTo converts register by register. widen returns the promoted lanes
// of one source register as consecutive wide registers.
func widenTo[S, D hwy.Integers](dst []D, src []S, widen func(hwy.Vec[S]) []hwy.Vec[D]) {
	lanes := hwy.MaxLanes[S]()
	hwy.ProcessWithTail[S](len(dst),
		func(i int) {
			storeConsecutive(dst[i:i+lanes], widen(hwy.LoadFull(src[i:])))
		},
		func(i, n int) {
			storeConsecutive(dst[i:i+n], widen(hwy.Load(src[i:i+n])))
		},
	)
}

func widenBinaryTo[S, D hwy.Integers](dst []D, a, b []S, widen func(a, b hwy.Vec[S]) []hwy.Vec[D]) {
	lanes := hwy.MaxLanes[S]()
	hwy.ProcessWithTail[S](len(dst),
		func(i int) {
			storeConsecutive(dst[i:i+lanes], widen(hwy.LoadFull(a[i:]), hwy.LoadFull(b[i:])))
		},
		func(i, n int) {
			storeConsecutive(dst[i:i+n], widen(hwy.Load(a[i:i+n]), hwy.Load(b[i:i+n])))
		},
	)
}

func storeConsecutive[T hwy.Lanes](dst []T, vs []hwy.Vec[T]) {
	for _, v := range vs {
		hwy.Store(v, dst)
		dst = dst[v.NumLanes():]
	}
}
