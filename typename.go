// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

import "strings"

// VType identifies the JSON category a Value holds.  Each type is a distinct
// bit so several types may be combined into a mask, for example when
// describing the types a caller expected.
type VType uint8

// These constants define the possible types of a Value.
const (
	VNull VType = 1 << iota
	VFalse
	VTrue
	VObj
	VArr
	VNum
	VStr
)

// typeOrder is the canonical order in which the names of the types in a mask
// are joined.
var typeOrder = [...]VType{VNull, VFalse, VTrue, VObj, VArr, VNum, VStr}

// String returns the human-readable name of a single type, or the slash
// joined names when t is a mask of several types.
func (t VType) String() string {
	switch t {
	case VNull:
		return "null"
	case VFalse:
		return "false"
	case VTrue:
		return "true"
	case VObj:
		return "object"
	case VArr:
		return "array"
	case VNum:
		return "number"
	case VStr:
		return "string"
	}
	return TypeName(t)
}

// TypeName returns the names of every type set in mask joined by a slash in
// the order null, false, true, object, array, number, string.  An empty mask
// yields the empty string.
func TypeName(mask VType) string {
	var sb strings.Builder
	for _, t := range typeOrder {
		if mask&t == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}
