// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bodyfile

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrRulesMismatch indicates a body produced under different consensus
	// rules.
	ErrRulesMismatch = ErrorKind("ErrRulesMismatch")

	// ErrNotWritable indicates an attempt to write to a body opened for
	// reading.
	ErrNotWritable = ErrorKind("ErrNotWritable")

	// ErrNotReadable indicates an attempt to read from a body created for
	// writing.
	ErrNotReadable = ErrorKind("ErrNotReadable")

	// ErrHeaderGap indicates header ranges that are not adjacent.
	ErrHeaderGap = ErrorKind("ErrHeaderGap")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to body files.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
