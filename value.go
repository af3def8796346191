// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

import (
	"math"
	"strconv"
)

// Value is a single node of a JSON document.  It holds exactly one of the
// types described by VType along with the payload relevant to that type:
// numbers and strings carry text, arrays carry their elements, and objects
// carry their ordered pairs.  Booleans are distinguished by type alone.
//
// The zero value is null.  Setting a new type always discards the previous
// payload, so no state survives a type change.
//
// A Value is not safe for concurrent use.  Callers must not modify a value
// while any other goroutine accesses it.
type Value struct {
	typ     VType
	val     string
	entries Object
	values  Array
}

// nullValue is the shared null returned by lookups that fail.  It is never
// modified since every mutating method ignores it.
var nullValue Value

// Null returns the shared, immutable null value that non-failing lookups
// return when the requested element does not exist.  Calling any setter on
// it has no effect.
//
// A plain assignment through the pointer, such as *v.Get("key") = x, is not
// guarded and replaces the shared null for every later lookup in the process.
// Callers must never assign through a pointer returned by Get, Index, Front or
// Back.  Use Locate, which returns nil instead of the shared null, or PushKV to
// update a value in place.
func Null() *Value {
	return &nullValue
}

// frozen returns whether the value must not be modified.
func (v *Value) frozen() bool {
	return v == nil || v == &nullValue
}

// New returns a value of the provided type with an empty payload.  Numbers
// start as "0".  A type outside of the defined set yields null.
func New(t VType) *Value {
	v := new(Value)
	switch t {
	case VFalse, VTrue, VObj, VArr, VStr:
		v.typ = t
	case VNum:
		v.typ = VNum
		v.val = "0"
	}
	return v
}

// NewBool returns a value that holds the provided boolean.
func NewBool(b bool) *Value {
	v := new(Value)
	v.SetBool(b)
	return v
}

// NewStr returns a value that holds the provided string.
func NewStr(s string) *Value {
	v := new(Value)
	v.SetStr(s)
	return v
}

// NewNumStr returns a value that holds the provided number text.  The value
// is null when the text is not a valid JSON number.
func NewNumStr(s string) *Value {
	v := new(Value)
	v.SetNumStr(s)
	return v
}

// NewInt64 returns a number value for the provided signed integer.
func NewInt64(n int64) *Value {
	v := new(Value)
	v.SetInt64(n)
	return v
}

// NewUint64 returns a number value for the provided unsigned integer.
func NewUint64(n uint64) *Value {
	v := new(Value)
	v.SetUint64(n)
	return v
}

// NewFloat returns a number value for the provided float.  The value is null
// when the float is NaN or infinite.
func NewFloat(f float64) *Value {
	v := new(Value)
	v.SetFloat(f)
	return v
}

// NewObject returns a value holding a deep copy of the provided object.
func NewObject(obj *Object) *Value {
	v := new(Value)
	v.SetObject(obj)
	return v
}

// NewArray returns a value holding a deep copy of the provided array.
func NewArray(arr *Array) *Value {
	v := new(Value)
	v.SetArray(arr)
	return v
}

// Integer is the set of integer types accepted by NewInt and SetInt.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// NewInt returns a number value for an integer of any width.
func NewInt[T Integer](n T) *Value {
	v := new(Value)
	SetInt(v, n)
	return v
}

// SetInt stores an integer of any width in v as a number.  Signed types are
// formatted as signed and unsigned types as unsigned.
func SetInt[T Integer](v *Value, n T) {
	// A negative one only stays negative for signed types.
	if T(0)-1 < 0 {
		v.SetInt64(int64(n))
		return
	}
	v.SetUint64(uint64(n))
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() Value {
	if v == nil {
		return Value{}
	}
	c := Value{typ: v.typ, val: v.val}
	if v.typ == VObj {
		c.entries = v.entries.clone()
	}
	if v.typ == VArr {
		c.values = v.values.clone()
	}
	return c
}

// Type returns the type the value currently holds.
func (v *Value) Type() VType {
	if v == nil || v.typ == 0 {
		return VNull
	}
	return v.typ
}

// SetNull clears all payloads and makes the value null.
func (v *Value) SetNull() {
	if v.frozen() {
		return
	}
	v.typ = VNull
	v.val = ""
	v.entries = Object{}
	v.values = Array{}
}

// SetBool makes the value true or false.
func (v *Value) SetBool(b bool) {
	if v.frozen() {
		return
	}
	v.SetNull()
	if b {
		v.typ = VTrue
	} else {
		v.typ = VFalse
	}
}

// SetObject makes the value an object holding a deep copy of obj.  A nil obj
// yields an empty object.
func (v *Value) SetObject(obj *Object) {
	if v.frozen() {
		return
	}
	var entries Object
	if obj != nil {
		entries = obj.clone()
	}
	v.SetNull()
	v.typ = VObj
	v.entries = entries
}

// SetObjectOwned makes the value an object that takes over the pairs of obj
// without copying them.  obj is left empty.
func (v *Value) SetObjectOwned(obj *Object) {
	if v.frozen() || obj == &v.entries {
		return
	}
	v.SetNull()
	v.typ = VObj
	if obj != nil {
		v.entries = *obj
		*obj = Object{}
	}
}

// SetArray makes the value an array holding a deep copy of arr.  A nil arr
// yields an empty array.
func (v *Value) SetArray(arr *Array) {
	if v.frozen() {
		return
	}
	var values Array
	if arr != nil {
		values = arr.clone()
	}
	v.SetNull()
	v.typ = VArr
	v.values = values
}

// SetArrayOwned makes the value an array that takes over the elements of arr
// without copying them.  arr is left empty.
func (v *Value) SetArrayOwned(arr *Array) {
	if v.frozen() || arr == &v.values {
		return
	}
	v.SetNull()
	v.typ = VArr
	if arr != nil {
		v.values = *arr
		*arr = Array{}
	}
}

// SetStr makes the value a string holding s.
func (v *Value) SetStr(s string) {
	if v.frozen() {
		return
	}
	v.SetNull()
	v.typ = VStr
	v.val = s
}

// SetNumStr makes the value a number with the provided text.  Text that is
// not exactly one valid JSON number is ignored and the value is left
// unchanged.
func (v *Value) SetNumStr(s string) {
	if v.frozen() || !IsValidNumber(s) {
		return
	}
	v.SetNull()
	v.typ = VNum
	v.val = s
}

// maxIntLen is the longest base-10 text of any 64-bit integer, which is
// "-9223372036854775808" and "18446744073709551615", plus one byte of slack.
const maxIntLen = 21

// setIntText stores formatted integer text unless it is empty or overlong.
func (v *Value) setIntText(buf []byte) {
	if len(buf) == 0 || len(buf) >= maxIntLen {
		return
	}
	v.SetNull()
	v.typ = VNum
	v.val = string(buf)
}

// SetInt64 makes the value a number holding the base-10 text of n.
func (v *Value) SetInt64(n int64) {
	if v.frozen() {
		return
	}
	var buf [maxIntLen]byte
	v.setIntText(strconv.AppendInt(buf[:0], n, 10))
}

// SetUint64 makes the value a number holding the base-10 text of n.
func (v *Value) SetUint64(n uint64) {
	if v.frozen() {
		return
	}
	var buf [maxIntLen]byte
	v.setIntText(strconv.AppendUint(buf[:0], n, 10))
}

// SetFloat makes the value a number holding f formatted with 16 significant
// digits.  NaN and the infinities have no JSON representation, so they are
// ignored and the value is left unchanged.
//
// The text never depends on any locale: the decimal separator is always a
// period.
func (v *Value) SetFloat(f float64) {
	if v.frozen() || math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	v.SetNull()
	v.typ = VNum
	v.val = strconv.FormatFloat(f, 'g', 16, 64)
}

// Get returns the value of the first pair with the provided key when the
// value is an object.  The shared null value is returned for any other type
// or when the key does not exist, so the result must never be assigned
// through.  See Null.
func (v *Value) Get(key string) *Value {
	if found := v.Locate(key); found != nil {
		return found
	}
	return Null()
}

// Index returns the element at the provided position of an array, or the
// value of the pair at that position of an object.  The shared null value is
// returned for any other type or when the position is out of range, so the
// result must never be assigned through.  Use AtIndex to modify an element.
func (v *Value) Index(index int) *Value {
	switch v.Type() {
	case VObj:
		return v.entries.Index(index)
	case VArr:
		return v.values.Index(index)
	}
	return Null()
}

// Front returns the first element of an array or the first pair value of an
// object.  The shared null value is returned for any other type or when the
// container is empty, so the result must never be assigned through.
func (v *Value) Front() *Value {
	switch v.Type() {
	case VObj:
		return v.entries.Front()
	case VArr:
		return v.values.Front()
	}
	return Null()
}

// Back returns the last element of an array or the last pair value of an
// object.  The shared null value is returned for any other type or when the
// container is empty, so the result must never be assigned through.
func (v *Value) Back() *Value {
	switch v.Type() {
	case VObj:
		return v.entries.Back()
	case VArr:
		return v.values.Back()
	}
	return Null()
}

// Locate returns the value of the first pair with the provided key when the
// value is an object and the key exists, or nil otherwise.  The returned
// value may be modified in place.
func (v *Value) Locate(key string) *Value {
	if v.Type() != VObj {
		return nil
	}
	return v.entries.Locate(key)
}

// At returns the value of the first pair with the provided key.  An error of
// kind ErrWrongType is returned when the value is not an object and an error
// of kind ErrKeyNotFound when the key does not exist.
func (v *Value) At(key string) (*Value, error) {
	if v.Type() != VObj {
		str := "Cannot look up keys in JSON " + v.Type().String() +
			", expected object with key: " + key
		return nil, makeError(ErrWrongType, str)
	}
	return v.entries.At(key)
}

// AtIndex returns the element at the provided position of an array, or the
// value of the pair at that position of an object.  An error of kind
// ErrWrongType is returned for any other type and an error of kind
// ErrIndexOutOfRange when the position is out of range.
func (v *Value) AtIndex(index int) (*Value, error) {
	switch v.Type() {
	case VObj:
		return v.entries.AtIndex(index)
	case VArr:
		return v.values.AtIndex(index)
	}
	str := "Cannot look up indices in JSON " + v.Type().String() +
		", expected array or object larger than " + strconv.Itoa(index) +
		" elements"
	return nil, makeError(ErrWrongType, str)
}

// Equal returns whether both values have the same type and equal payloads.
// Numbers and strings compare their text byte for byte, so "1.50" and "1.5"
// are different numbers.  Objects and arrays compare their contents in order.
func (v *Value) Equal(other *Value) bool {
	if v.Type() != other.Type() {
		return false
	}
	switch v.Type() {
	case VObj:
		return v.entries.Equal(&other.entries)
	case VArr:
		return v.values.Equal(&other.values)
	case VNum, VStr:
		return v.val == other.val
	}
	return true
}
