// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

import (
	"errors"
	"math"
	"strconv"
)

// IsNull returns whether the value is null.
func (v *Value) IsNull() bool { return v.Type() == VNull }

// IsTrue returns whether the value is the boolean true.
func (v *Value) IsTrue() bool { return v.Type() == VTrue }

// IsFalse returns whether the value is the boolean false.
func (v *Value) IsFalse() bool { return v.Type() == VFalse }

// IsBool returns whether the value is either boolean.
func (v *Value) IsBool() bool { return v.Type()&(VTrue|VFalse) != 0 }

// IsNum returns whether the value is a number.
func (v *Value) IsNum() bool { return v.Type() == VNum }

// IsStr returns whether the value is a string.
func (v *Value) IsStr() bool { return v.Type() == VStr }

// IsObject returns whether the value is an object.
func (v *Value) IsObject() bool { return v.Type() == VObj }

// IsArray returns whether the value is an array.
func (v *Value) IsArray() bool { return v.Type() == VArr }

// Len returns the number of pairs of an object or elements of an array.  It
// is zero for every other type.
func (v *Value) Len() int {
	switch v.Type() {
	case VObj:
		return v.entries.Len()
	case VArr:
		return v.values.Len()
	}
	return 0
}

// Keys returns the keys of an object in insertion order.  It is empty for
// every other type.
func (v *Value) Keys() []string {
	if v.Type() != VObj {
		return nil
	}
	return v.entries.Keys()
}

// ValStr returns the raw text payload of a number or string.  It is empty
// for every other type.
func (v *Value) ValStr() string {
	if v == nil {
		return ""
	}
	return v.val
}

// Checked returns nil when the type of v is one of the types in mask and an
// error of kind ErrWrongType describing the expected types otherwise.
func Checked(v *Value, mask VType) error {
	if v.Type()&mask != 0 {
		return nil
	}
	str := "Expected type " + TypeName(mask) + ", got " + v.Type().String()
	return makeError(ErrWrongType, str)
}

// wrongType returns an ErrWrongType error for a getter that expected the
// provided kind of value.
func wrongType(what string) error {
	return makeError(ErrWrongType, "JSON value is not "+what+" as expected")
}

// Str returns the text of a string value.
func (v *Value) Str() (string, error) {
	if v.Type() != VStr {
		return "", wrongType("a string")
	}
	return v.val, nil
}

// Bool returns the boolean held by the value.
func (v *Value) Bool() (bool, error) {
	switch v.Type() {
	case VTrue:
		return true, nil
	case VFalse:
		return false, nil
	}
	return false, wrongType("a boolean")
}

// Int64 returns the signed integer held by a number value.  Numbers with a
// fraction or exponent are not integers.
func (v *Value) Int64() (int64, error) {
	if v.Type() != VNum {
		return 0, wrongType("an integer")
	}
	n, err := strconv.ParseInt(v.val, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, makeError(ErrNumberRange, "JSON integer out of range")
		}
		return 0, wrongType("an integer")
	}
	return n, nil
}

// Uint64 returns the unsigned integer held by a number value.
func (v *Value) Uint64() (uint64, error) {
	if v.Type() != VNum {
		return 0, wrongType("an integer")
	}
	if len(v.val) > 0 && v.val[0] == '-' {
		return 0, makeError(ErrNumberRange, "JSON integer out of range")
	}
	n, err := strconv.ParseUint(v.val, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, makeError(ErrNumberRange, "JSON integer out of range")
		}
		return 0, wrongType("an integer")
	}
	return n, nil
}

// Int returns the integer held by a number value when it fits in an int32,
// matching the width of the integers commonly used for RPC parameters.
func (v *Value) Int() (int, error) {
	n, err := v.Int64()
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, makeError(ErrNumberRange, "JSON integer out of range")
	}
	return int(n), nil
}

// Float64 returns the number held by the value as a float.
func (v *Value) Float64() (float64, error) {
	if v.Type() != VNum {
		return 0, wrongType("a number")
	}
	f, err := strconv.ParseFloat(v.val, 64)
	if err != nil {
		return 0, makeError(ErrNumberRange, "JSON double out of range")
	}
	return f, nil
}

// ObjectValue returns the object held by the value.  The object is live and
// modifications through it are reflected in the value.
func (v *Value) ObjectValue() (*Object, error) {
	if v.Type() != VObj || v.frozen() {
		return nil, wrongType("an object")
	}
	return &v.entries, nil
}

// ArrayValue returns the array held by the value.  The array is live and
// modifications through it are reflected in the value.
func (v *Value) ArrayValue() (*Array, error) {
	if v.Type() != VArr || v.frozen() {
		return nil, wrongType("an array")
	}
	return &v.values, nil
}
