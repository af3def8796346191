// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

import "fmt"

// pair is a single key and the value it maps to within an Object.
type pair struct {
	key string
	val Value
}

// Object is an ordered sequence of key/value pairs.  Insertion order is
// preserved and keys are not required to be unique.  Keyed lookups scan the
// pairs in insertion order and return the first match, so a pair shadows any
// later pair with the same key.
//
// The zero value is an empty object ready to use.  An Object owns every value
// stored in it; values are copied on the way in.  Pointers returned by the
// lookup methods refer to storage inside the object and are invalidated by a
// subsequent Append.
type Object struct {
	pairs []pair
}

// Len returns the number of pairs in the object, including duplicates.
func (o *Object) Len() int {
	return len(o.pairs)
}

// Append adds a deep copy of the provided value under key to the end of the
// object without checking whether the key already exists.
func (o *Object) Append(key string, v *Value) {
	o.pairs = append(o.pairs, pair{key: key, val: v.Clone()})
}

// Locate returns the value of the first pair whose key matches or nil when
// there is no such pair.  The returned value may be modified in place.
func (o *Object) Locate(key string) *Value {
	for i := range o.pairs {
		if o.pairs[i].key == key {
			return &o.pairs[i].val
		}
	}
	return nil
}

// Get returns the value of the first pair whose key matches, or the shared
// null value returned by Null when there is no such pair.  The result must
// never be assigned through; use Locate to modify a pair in place.
func (o *Object) Get(key string) *Value {
	if found := o.Locate(key); found != nil {
		return found
	}
	return Null()
}

// Index returns the value of the pair at the provided position, or the shared
// null value when the position is out of range.
func (o *Object) Index(index int) *Value {
	if index >= 0 && index < len(o.pairs) {
		return &o.pairs[index].val
	}
	return Null()
}

// At returns the value of the first pair whose key matches.  An error of kind
// ErrKeyNotFound naming the key is returned when there is no such pair.
func (o *Object) At(key string) (*Value, error) {
	if found := o.Locate(key); found != nil {
		return found, nil
	}
	return nil, makeError(ErrKeyNotFound, "Key not found in JSON object: "+key)
}

// AtIndex returns the value of the pair at the provided position.  An error
// of kind ErrIndexOutOfRange carrying the index and the object length is
// returned when the position is out of range.
func (o *Object) AtIndex(index int) (*Value, error) {
	if index >= 0 && index < len(o.pairs) {
		return &o.pairs[index].val, nil
	}
	str := fmt.Sprintf("Index %d out of range in JSON object of length %d",
		index, len(o.pairs))
	return nil, makeError(ErrIndexOutOfRange, str)
}

// KeyAt returns the key of the pair at the provided position along with
// whether the position is in range.
func (o *Object) KeyAt(index int) (string, bool) {
	if index >= 0 && index < len(o.pairs) {
		return o.pairs[index].key, true
	}
	return "", false
}

// Front returns the value of the first pair or the shared null value when the
// object is empty.
func (o *Object) Front() *Value {
	if len(o.pairs) == 0 {
		return Null()
	}
	return &o.pairs[0].val
}

// Back returns the value of the last pair or the shared null value when the
// object is empty.
func (o *Object) Back() *Value {
	if len(o.pairs) == 0 {
		return Null()
	}
	return &o.pairs[len(o.pairs)-1].val
}

// Keys returns the keys of all pairs in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.pairs))
	for i := range o.pairs {
		keys = append(keys, o.pairs[i].key)
	}
	return keys
}

// ForEach invokes fn for every pair in insertion order until fn returns
// false.
func (o *Object) ForEach(fn func(key string, v *Value) bool) {
	for i := range o.pairs {
		if !fn(o.pairs[i].key, &o.pairs[i].val) {
			return
		}
	}
}

// Equal returns whether both objects hold equal pairs in the same order.
func (o *Object) Equal(other *Object) bool {
	if len(o.pairs) != len(other.pairs) {
		return false
	}
	for i := range o.pairs {
		if o.pairs[i].key != other.pairs[i].key {
			return false
		}
		if !o.pairs[i].val.Equal(&other.pairs[i].val) {
			return false
		}
	}
	return true
}

// clone returns a deep copy of the object.
func (o *Object) clone() Object {
	if o.pairs == nil {
		return Object{}
	}
	pairs := make([]pair, len(o.pairs))
	for i := range o.pairs {
		pairs[i] = pair{key: o.pairs[i].key, val: o.pairs[i].val.Clone()}
	}
	return Object{pairs: pairs}
}
