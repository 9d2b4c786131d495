// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package chainwork implements compact proofs that the chain work claimed by a
header was actually performed.

Every header commits to the Merkle tree of all the headers before it, and the
chain work of a header together with its difficulty define the range of the
work axis the header covers.  A prover holding the whole chain answers random
points on the work axis with the headers covering them and their positions in
the tree; a verifier holding only the tip replays the same points and checks
the answers.  Since the points are derived from the hash of the tip, the
protocol is non-interactive.

Sampling proceeds downwards from the tip.  Each step draws a point within the
1/128th of the currently unproven range just below the part covered so far,
so that every suffix of the chain receives enough samples for an adversary
with less than two thirds of the work to pass with probability about 2^-60.
Consecutive headers are verified through their hash links and only headers
that are not the predecessor of the previously sampled one carry Merkle
proofs, which are combined into a single multi-proof.

A proof built once down to a low bound can be cropped to the prefix a
verifier with a higher lower bound actually consumes.  The cropped proof is
valid on its own.
*/
package chainwork
