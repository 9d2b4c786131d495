// Copyright (c) 2021 The Decred developers
// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import (
	"strings"
	"testing"
)

// TestParse ensures parsing a semantic version string works as expected.
func TestParse(t *testing.T) {
	tests := []struct {
		ver     string
		want    SemVer
		invalid bool
	}{
		{ver: "0.0.4", want: SemVer{Patch: 4}},
		{ver: "10.20.30", want: SemVer{Major: 10, Minor: 20, Patch: 30}},
		{ver: "1.1.2-prerelease+meta", want: SemVer{Major: 1, Minor: 1, Patch: 2,
			PreRelease: "prerelease", BuildMetadata: "meta"}},
		{ver: "1.0.0-alpha.beta.1", want: SemVer{Major: 1,
			PreRelease: "alpha.beta.1"}},
		{ver: "1.1.2+meta-valid", want: SemVer{Major: 1, Minor: 1, Patch: 2,
			BuildMetadata: "meta-valid"}},
		{ver: "1", invalid: true},
		{ver: "1.2", invalid: true},
		{ver: "01.1.1", invalid: true},
		{ver: "1.2.3-0123", invalid: true},
		{ver: "1.2.3+meta..", invalid: true},
		{ver: "1.2.3.DEV", invalid: true},
		{ver: "99999999999999999999999.999999999999999999.99999999999999999", invalid: true},
	}

	for _, test := range tests {
		got, err := Parse(test.ver)
		if test.invalid {
			if err == nil {
				t.Errorf("%q: expected error", test.ver)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.ver, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: got %+v, want %+v", test.ver, got, test.want)
		}
	}
}

// TestNormalizeString ensures characters outside the semantic alphabet are
// stripped.
func TestNormalizeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "abc123"},
		{"a b_c!", "abc"},
		{"release.local", "release.local"},
		{"", ""},
	}
	for _, test := range tests {
		if got := NormalizeString(test.in); got != test.want {
			t.Errorf("NormalizeString(%q): got %q, want %q", test.in, got,
				test.want)
		}
	}
}

// TestString ensures the version string starts with the configured version.
func TestString(t *testing.T) {
	if got := String(); !strings.HasPrefix(got, Version) {
		t.Fatalf("version %q does not start with %q", got, Version)
	}
}
