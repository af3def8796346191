// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

// PushBack appends a deep copy of elem to an array value.  It returns false
// without modifying anything when the value is not an array.
func (v *Value) PushBack(elem *Value) bool {
	if v.frozen() || v.typ != VArr {
		return false
	}
	v.values.Append(elem)
	return true
}

// PushKV stores a deep copy of val under key in an object value.  The first
// existing pair with the key is updated in place, otherwise a new pair is
// appended.  It returns false without modifying anything when the value is
// not an object.
func (v *Value) PushKV(key string, val *Value) bool {
	if v.frozen() || v.typ != VObj {
		return false
	}
	if found := v.entries.Locate(key); found != nil {
		*found = val.Clone()
		return true
	}
	v.entries.Append(key, val)
	return true
}

// PushKVEnd appends a deep copy of val under key to an object value without
// checking whether the key already exists.  Callers use it when the key is
// known to be new.  It returns false without modifying anything when the
// value is not an object.
func (v *Value) PushKVEnd(key string, val *Value) bool {
	if v.frozen() || v.typ != VObj {
		return false
	}
	v.entries.Append(key, val)
	return true
}

// PushKVs stores every pair of obj into an object value via PushKV.  It
// returns false without modifying anything when either value is not an
// object.
func (v *Value) PushKVs(obj *Value) bool {
	if v.frozen() || v.typ != VObj || obj.Type() != VObj {
		return false
	}
	// Copy first since obj may be v itself.
	src := obj.entries.clone()
	for i := range src.pairs {
		v.PushKV(src.pairs[i].key, &src.pairs[i].val)
	}
	return true
}
