// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package merkle implements the binary hash trees used to commit to sequences
of headers and to prove membership in them.

Trees are count aware: for n leaves the node at level l and index i exists
when i<<l < n, and a node whose right child does not exist takes the value of
its left child unchanged.  A tree over n leaves therefore has height
bits.Len64(n-1) and no padding.

Three proof forms are provided.  A Proof carries the direction of every
sibling explicitly.  A HardProof only carries the sibling hashes; the
directions follow from the leaf index and the leaf count.  A multi-proof
covers several leaves of the same tree and never repeats a hash the verifier
can already compute.
*/
package merkle
