// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package univalue implements a dynamically typed JSON value tree.

A Value holds one of null, false, true, a number, a string, an array, or an
object.  Objects keep their pairs in insertion order so documents built by a
program are always written back out in the same order.  The package is
intended for building and inspecting the results of RPC commands and has no
dependencies outside of the standard library.

# Ownership

Every container owns the values stored in it.  Values passed to PushBack,
PushKV, SetObject, SetArray and the container Append methods are deep copied,
so the tree is acyclic and no two parents ever share a child.  SetObjectOwned
and SetArrayOwned hand an existing container over without copying.

# Lookups

There are two families of lookups.  Get, Index, Front and Back never fail;
when the requested element does not exist they return the shared value from
Null.  The shared null is immutable: every setter called on it does nothing,
so writing through the result of a failed lookup can never affect later
lookups.  At and AtIndex instead return an error when the value has the wrong
type (ErrWrongType) or the element does not exist (ErrKeyNotFound,
ErrIndexOutOfRange).  Locate returns nil when a key does not exist and is the
building block for in-place updates such as PushKV.

Objects do not enforce unique keys.  PushKV updates an existing key in place,
while PushKVEnd and Object.Append append unconditionally.  Keyed lookups
always return the first matching pair.

# Numbers

Numbers are stored as text that is always a valid JSON number, so a writer
may emit it verbatim.  The numeric setters silently ignore input that cannot
be represented: SetNumStr ignores text that is not exactly one JSON number and
SetFloat ignores NaN and the infinities.  In both cases the value is left
exactly as it was.  Use IsValidNumber to check text beforehand when the
distinction matters.

Integers of every width are formatted in base 10 and floats with 16
significant digits independently of any locale.  Equality compares number
text byte for byte, so "1.50" and "1.5" are not equal.

# Concurrency

Values are not safe for concurrent modification.  Concurrent reads of a value
that is not being modified are safe, as are concurrent reads of the shared
null value.
*/
package univalue
