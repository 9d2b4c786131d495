// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the consensus rules of the supported networks.
//
// The rules of each network are an immutable value returned by a constructor
// such as MainNetRules.  Every validation entry point takes the rules it
// applies explicitly, so nodes for different networks can coexist in one
// process.
//
// All rules, along with the protocol constants and the curve generators, are
// condensed into a checksum.  Persisted data and peers whose checksum differs
// follow different rules and must be refused before anything else is parsed.
//
//	rules := chaincfg.MainNetRules()
//	fmt.Printf("%s rules %v\n", rules.Name, rules.Checksum())
package chaincfg
