// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ecc adapts the secp256k1 group to the needs of a confidential
transaction ledger.

It provides serialized and native (Jacobian) point forms, scalars modulo the
group order, the two fixed generators G and H used by Pedersen commitments, a
typed hash processor and Fiat-Shamir oracle built on BLAKE-256, Schnorr
signatures, and the two range proof variants an output may carry.

A Pedersen commitment to value v with blinding factor k is

	C = k*G + v*H

Commitments are additively homomorphic, so a balanced transaction sums to the
point at infinity once the kernel excesses, the offset and the fee are taken
into account.
*/
package ecc
