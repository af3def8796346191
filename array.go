// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

import "fmt"

// Array is an ordered sequence of values.
//
// The zero value is an empty array ready to use.  An Array owns every value
// stored in it; values are copied on the way in.  Pointers returned by the
// lookup methods refer to storage inside the array and are invalidated by a
// subsequent Append.
type Array struct {
	values []Value
}

// Len returns the number of elements in the array.
func (a *Array) Len() int {
	return len(a.values)
}

// Append adds a deep copy of the provided value to the end of the array.
func (a *Array) Append(v *Value) {
	a.values = append(a.values, v.Clone())
}

// Index returns the element at the provided position, or the shared null
// value when the position is out of range.  The result must never be assigned
// through; use AtIndex to modify an element.
func (a *Array) Index(index int) *Value {
	if index >= 0 && index < len(a.values) {
		return &a.values[index]
	}
	return Null()
}

// AtIndex returns the element at the provided position.  An error of kind
// ErrIndexOutOfRange carrying the index and the array length is returned when
// the position is out of range.
func (a *Array) AtIndex(index int) (*Value, error) {
	if index >= 0 && index < len(a.values) {
		return &a.values[index], nil
	}
	str := fmt.Sprintf("Index %d out of range in JSON array of length %d",
		index, len(a.values))
	return nil, makeError(ErrIndexOutOfRange, str)
}

// Front returns the first element or the shared null value when the array is
// empty.
func (a *Array) Front() *Value {
	if len(a.values) == 0 {
		return Null()
	}
	return &a.values[0]
}

// Back returns the last element or the shared null value when the array is
// empty.
func (a *Array) Back() *Value {
	if len(a.values) == 0 {
		return Null()
	}
	return &a.values[len(a.values)-1]
}

// ForEach invokes fn for every element in order until fn returns false.
func (a *Array) ForEach(fn func(index int, v *Value) bool) {
	for i := range a.values {
		if !fn(i, &a.values[i]) {
			return
		}
	}
}

// Equal returns whether both arrays hold equal elements in the same order.
func (a *Array) Equal(other *Array) bool {
	if len(a.values) != len(other.values) {
		return false
	}
	for i := range a.values {
		if !a.values[i].Equal(&other.values[i]) {
			return false
		}
	}
	return true
}

// clone returns a deep copy of the array.
func (a *Array) clone() Array {
	if a.values == nil {
		return Array{}
	}
	values := make([]Value, len(a.values))
	for i := range a.values {
		values[i] = a.values[i].Clone()
	}
	return Array{values: values}
}
