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

import "errors"

// Status is the closed set of outcomes reported by vector operations.
// Every non-OK Status is an error; operations return them directly so callers
// can match with errors.Is.
type Status uint8

const (
	// StatusOK reports success. It is never returned as an error.
	StatusOK Status = iota
	// StatusNull reports a nil, released or unallocated handle.
	StatusNull
	// StatusInvalidArgument reports a scalar, shift or multiplier outside the
	// range representable by the destination dtype.
	StatusInvalidArgument
	// StatusError reports a generic internal failure.
	StatusError
	// StatusUnsupported reports an operation that is permanently undefined for
	// the dtype, such as the integer MAC on a float32 vector.
	StatusUnsupported
	// StatusNotImplemented reports an operation/dtype pair with no
	// implementation yet.
	StatusNotImplemented
	// StatusUnaligned reports a buffer that is not 16-byte aligned.
	StatusUnaligned
	// StatusSizeMismatch reports participating vectors of different lengths.
	StatusSizeMismatch
	// StatusTypeMismatch reports participating vectors of incompatible dtypes,
	// or an invalid dtype.
	StatusTypeMismatch
)

var statusNames = [...]string{
	StatusOK:              "ok",
	StatusNull:            "null handle",
	StatusInvalidArgument: "invalid argument",
	StatusError:           "internal error",
	StatusUnsupported:     "unsupported operation",
	StatusNotImplemented:  "not implemented",
	StatusUnaligned:       "unaligned data",
	StatusSizeMismatch:    "size mismatch",
	StatusTypeMismatch:    "type mismatch",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown status"
}

func (s Status) Error() string {
	return "vector: " + s.String()
}

// Err returns nil for StatusOK and s otherwise.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return s
}

var (
	// ErrNull is returned for nil, released or unallocated handles.
	ErrNull error = StatusNull
	// ErrInvalidArgument is returned for out-of-range scalar arguments.
	ErrInvalidArgument error = StatusInvalidArgument
	// ErrInternal is the generic failure.
	ErrInternal error = StatusError
	// ErrUnsupported is returned for operations permanently undefined on a dtype.
	ErrUnsupported error = StatusUnsupported
	// ErrNotImplemented is returned for operations not yet available on a dtype.
	ErrNotImplemented error = StatusNotImplemented
	// ErrUnaligned is returned for buffers that are not 16-byte aligned.
	ErrUnaligned error = StatusUnaligned
	// ErrSizeMismatch is returned when participating vectors differ in length.
	ErrSizeMismatch error = StatusSizeMismatch
	// ErrTypeMismatch is returned when participating vectors differ in dtype.
	ErrTypeMismatch error = StatusTypeMismatch
)

// StatusOf maps an error returned by this package to its Status. A nil error
// is StatusOK; an error with no Status in its chain is StatusError.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusError
}
