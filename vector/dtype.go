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

package vector

import (
	"fmt"
	"strings"
)

// DType identifies the element type stored in a Vector.
type DType uint8

const (
	// Int8 is an 8-bit signed integer element.
	Int8 DType = iota
	// Int16 is a 16-bit signed integer element.
	Int16
	// Int32 is a 32-bit signed integer element.
	Int32
	// Float32 is a 32-bit IEEE-754 element.
	Float32
)

// DTypes lists every supported element type in declaration order.
var DTypes = []DType{Int8, Int16, Int32, Float32}

// Size returns the number of bytes per element, or 0 for an invalid DType.
func (d DType) Size() int {
	switch d {
	case Int8:
		return 1
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	default:
		return 0
	}
}

// Valid reports whether d is one of the four supported element types.
func (d DType) Valid() bool {
	return d <= Float32
}

// IsInteger reports whether d is a signed integer type.
func (d DType) IsInteger() bool {
	return d == Int8 || d == Int16 || d == Int32
}

func (d DType) String() string {
	switch d {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// ParseDType parses the name produced by DType.String, case-insensitively.
func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int8", "i8":
		return Int8, nil
	case "int16", "i16":
		return Int16, nil
	case "int32", "i32":
		return Int32, nil
	case "float32", "f32":
		return Float32, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q", s)
	}
}

// Element is the set of Go types a Vector can hold.
type Element interface {
	int8 | int16 | int32 | float32
}

// DTypeOf returns the DType that stores elements of type T.
func DTypeOf[T Element]() DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	default:
		return Float32
	}
}
