// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

import "testing"

// TestTypeName ensures single types and masks of types are named as
// expected.
func TestTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   VType
		want string
	}{
		{"null", VNull, "null"},
		{"false", VFalse, "false"},
		{"true", VTrue, "true"},
		{"object", VObj, "object"},
		{"array", VArr, "array"},
		{"number", VNum, "number"},
		{"string", VStr, "string"},
		{"empty mask", 0, ""},
		{"object and array", VObj | VArr, "object/array"},
		{"canonical order", VStr | VNull | VNum, "null/number/string"},
		{"booleans", VTrue | VFalse, "false/true"},
		{"all", VNull | VFalse | VTrue | VObj | VArr | VNum | VStr,
			"null/false/true/object/array/number/string"},
	}

	for _, test := range tests {
		if got := TypeName(test.in); got != test.want {
			t.Errorf("%s: unexpected type name: got %q, want %q", test.name,
				got, test.want)
		}
		if got := test.in.String(); got != test.want {
			t.Errorf("%s: unexpected stringer output: got %q, want %q",
				test.name, got, test.want)
		}
	}
}
