// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version provides a single location to house the version information
// for mwd.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// semanticAlphabet defines the allowed characters for the pre-release and
// build metadata portions of a semantic version string.
const semanticAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-."

// semverRE is a regular expression used to parse a semantic version string into
// its constituent parts.
var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*` +
	`[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// Version is the application version per the semantic versioning 2.0.0 spec
// (https://semver.org/).
//
// It may be overridden during the build process with:
// '-ldflags "-X github.com/mwledger/mwd/internal/version.Version=fullsemver"'
//
// It MUST be a full semantic version or the package will panic at runtime.
var Version = "0.1.0-pre"

// SemVer holds the components of a semantic version.
type SemVer struct {
	Major         uint
	Minor         uint
	Patch         uint
	PreRelease    string
	BuildMetadata string
}

// Parsed is the parsed form of Version, set during init.
var Parsed SemVer

// Parse parses a semantic version string.  The pre-release and build
// metadata portions may only contain characters from semanticAlphabet.
func Parse(s string) (SemVer, error) {
	var v SemVer
	m := semverRE.FindStringSubmatch(s)
	if m == nil {
		return v, fmt.Errorf("malformed version string %q: does not "+
			"conform to semver specification", s)
	}

	fields := []*uint{&v.Major, &v.Minor, &v.Patch}
	names := []string{"major", "minor", "patch"}
	for i, field := range fields {
		n, err := strconv.ParseUint(m[i+1], 10, 0)
		if err != nil {
			return v, fmt.Errorf("malformed semver %s: %w", names[i], err)
		}
		*field = uint(n)
	}
	v.PreRelease, v.BuildMetadata = m[4], m[5]
	return v, nil
}

func init() {
	var err error
	Parsed, err = Parse(Version)
	if err != nil {
		panic(err)
	}
}

// String returns the application version.  Builds from a version control
// checkout without build metadata carry the abbreviated commit id as build
// metadata.
func String() string {
	if Parsed.BuildMetadata != "" {
		return Version
	}
	if commit := NormalizeString(vcsCommitID()); commit != "" {
		return Version + "+" + commit
	}
	return Version
}

// NormalizeString returns the passed string stripped of all characters which
// are not valid in pre-release and build metadata strings.
func NormalizeString(str string) string {
	var b strings.Builder
	for _, r := range str {
		if strings.ContainsRune(semanticAlphabet, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
