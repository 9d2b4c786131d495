// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package pow implements the packed proof-of-work difficulty and the
proof-of-work record carried by block headers.

A Difficulty packs a 24-bit mantissa (with an implied leading one bit) and an
order into 32 bits.  Its raw value is mantissa<<order, a 256-bit integer that
is also the unit of chain work: the chain work of a header is the sum of the
raw difficulties of it and all of its ancestors.

A hash reaches a difficulty when hash*raw < 2^280, so doubling the raw
difficulty halves the number of acceptable hashes.
*/
package pow
