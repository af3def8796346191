// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrKeyNotFound indicates a keyed lookup on an object did not match any
	// of its keys.
	ErrKeyNotFound = ErrorKind("ErrKeyNotFound")

	// ErrIndexOutOfRange indicates a positional lookup on an object or array
	// was not less than its length.
	ErrIndexOutOfRange = ErrorKind("ErrIndexOutOfRange")

	// ErrWrongType indicates the requested operation is not supported by the
	// type the value currently holds.
	ErrWrongType = ErrorKind("ErrWrongType")

	// ErrNumberRange indicates a number could not be represented by the
	// requested Go type.
	ErrNumberRange = ErrorKind("ErrNumberRange")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to accessing a JSON value.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
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
