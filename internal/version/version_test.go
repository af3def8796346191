// Copyright (c) 2021-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import (
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestSemVerParsing ensures parsing a semantic version string works as
// expected.
func TestSemVerParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ver  string  // semantic version string to parse
		want *semVer // expected components, nil when invalid
	}{{
		ver:  "0.0.4",
		want: &semVer{patch: 4},
	}, {
		ver:  "10.20.30",
		want: &semVer{major: 10, minor: 20, patch: 30},
	}, {
		ver: "1.1.2-prerelease+meta",
		want: &semVer{major: 1, minor: 1, patch: 2, preRelease: "prerelease",
			buildMetadata: "meta"},
	}, {
		ver:  "1.1.2+meta-valid",
		want: &semVer{major: 1, minor: 1, patch: 2, buildMetadata: "meta-valid"},
	}, {
		ver:  "1.0.0-alpha.beta.1",
		want: &semVer{major: 1, preRelease: "alpha.beta.1"},
	}, {
		ver:  "1.0.0-pre",
		want: &semVer{major: 1, preRelease: "pre"},
	}, {
		ver: "1",
	}, {
		ver: "1.2",
	}, {
		ver: "01.1.1",
	}, {
		ver: "1.2.3-0123",
	}, {
		ver: "+justmeta",
	}, {
		ver: "9.8.7+meta+meta",
	}, {
		// Would be valid except major is > max uint64.
		ver: "99999999999999999999999.999999999999999999.99999999999999999",
	}}

	for _, test := range tests {
		got, err := parseSemVer(test.ver)
		if test.want == nil {
			if err == nil {
				t.Errorf("%q: did not receive expected error", test.ver)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected err: %v", test.ver, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%q: mismatched components -- got %s, want %s",
				test.ver, spew.Sdump(got), spew.Sdump(test.want))
		}
	}
}

// TestVersionParsed ensures the package level version components agree with
// the version string.
func TestVersionParsed(t *testing.T) {
	t.Parallel()

	ver, err := parseSemVer(String())
	if err != nil {
		t.Fatalf("invalid version %q: %v", String(), err)
	}
	if ver.major != Major || ver.minor != Minor || ver.patch != Patch ||
		ver.preRelease != PreRelease || ver.buildMetadata != BuildMetadata {

		t.Fatalf("components do not match version %q", String())
	}
}

// TestNormalizeString ensures invalid semver characters are stripped.
func TestNormalizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "abc123"},
		{"a b_c+d", "abcd"},
		{"release-1.0", "release-1.0"},
		{strings.Repeat("!", 3), ""},
	}

	for _, test := range tests {
		if got := NormalizeString(test.in); got != test.want {
			t.Errorf("%q: got %q, want %q", test.in, got, test.want)
		}
	}
}
