// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package bodyfile stores block bodies and header ranges in flat files.

A body is kept in five files sharing a path prefix, one per stream:

	<path>ui  inputs
	<path>uo  outputs
	<path>ki  consumed kernels
	<path>ko  produced kernels
	<path>hd  rules checksum, body base, header prefix and header elements

Each element stream is the concatenation of the canonical encodings of its
elements in ascending order, so a body that summarizes many blocks can be
validated without holding it in memory.  RW implements both
blockchain.Reader and blockchain.Writer, and clones used for parallel
validation reopen the same files.

The header file starts with the checksum of the consensus rules the body was
produced under.  Opening a body under different rules fails with
ErrRulesMismatch before anything else is parsed.

CombineHeaders joins the header files of two adjacent ranges into one,
merging their body bases and checking that the second range continues the
first.
*/
package bodyfile
