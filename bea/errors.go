// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bea

import (
	"fmt"
)

// ErrorKind classifies the failures of this package.
type ErrorKind int

const (
	// MalformedParameters means the caller's parameters failed local checks.
	MalformedParameters ErrorKind = iota + 1
	// UnsupportedFrequency means the dataset does not offer the frequency.
	UnsupportedFrequency
	// MalformedPeriod means a period code could not be normalized to a date.
	MalformedPeriod
	// InvalidResponse means the transport failed, or the body lacks the
	// expected results structure.
	InvalidResponse
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedParameters:
		return "malformed parameters"
	case UnsupportedFrequency:
		return "unsupported frequency"
	case MalformedPeriod:
		return "malformed period"
	case InvalidResponse:
		return "invalid response"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the error type returned by the API calls. Use errors.Is with one
// of the Err* sentinels to test for its kind.
type Error struct {
	Kind   ErrorKind
	Reason string
	Cause  error // may be nil
}

var _ error = &Error{}

// Sentinels matching any Error of the same kind.
var (
	ErrMalformedParameters  = &Error{Kind: MalformedParameters}
	ErrUnsupportedFrequency = &Error{Kind: UnsupportedFrequency}
	ErrMalformedPeriod      = &Error{Kind: MalformedPeriod}
	ErrInvalidResponse      = &Error{Kind: InvalidResponse}
)

func newError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Reason != "" {
		s += ": " + e.Reason
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Reason == "" && t.Cause == nil
}
