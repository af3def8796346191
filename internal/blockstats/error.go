// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstats

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidStat indicates a requested statistic name is not one of the
	// supported statistics.
	ErrInvalidStat = ErrorKind("ErrInvalidStat")

	// ErrTxIndexRequired indicates a requested statistic needs the values of
	// spent outputs which are only available with a transaction index.
	ErrTxIndexRequired = ErrorKind("ErrTxIndexRequired")

	// ErrInvalidBlock indicates the block data is inconsistent, such as a
	// transaction that spends more than its inputs provide.
	ErrInvalidBlock = ErrorKind("ErrInvalidBlock")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to computing block statistics.  It has
// full support for errors.Is and errors.As, so the caller can ascertain the
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
