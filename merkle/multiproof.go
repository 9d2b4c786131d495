// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import "fmt"

type nodeKey struct {
	level int
	index uint64
}

// MultiProofBuilder assembles a single proof for several leaves of one tree.
// Leaves must be added in the same order the verifier will process them.
type MultiProofBuilder struct {
	count uint64
	known map[nodeKey]struct{}
	proof HardProof
}

// NewMultiProofBuilder returns a builder for a tree over count leaves.
func NewMultiProofBuilder(count uint64) *MultiProofBuilder {
	return &MultiProofBuilder{
		count: count,
		known: make(map[nodeKey]struct{}),
	}
}

// Add appends whatever part of the leaf's hard proof the verifier cannot
// derive from the leaves added before it.
func (b *MultiProofBuilder) Add(index uint64, hp HardProof) error {
	if index >= b.count {
		return fmt.Errorf("leaf %d out of range for %d leaves", index, b.count)
	}
	if len(hp) != HardProofLen(index, b.count) {
		return fmt.Errorf("hard proof of leaf %d has %d hashes, want %d",
			index, len(hp), HardProofLen(index, b.count))
	}
	height := Height(b.count)
	pos := 0
	for l, j := 0, index; ; l, j = l+1, j>>1 {
		key := nodeKey{level: l, index: j}
		if _, ok := b.known[key]; ok {
			return nil
		}
		b.known[key] = struct{}{}
		if l == height {
			return nil
		}
		s := j ^ 1
		if !nodeExists(l, s, b.count) {
			continue
		}
		sk := nodeKey{level: l, index: s}
		if _, ok := b.known[sk]; !ok {
			b.known[sk] = struct{}{}
			b.proof = append(b.proof, hp[pos])
		}
		pos++
	}
}

// Proof returns the accumulated hashes.
func (b *MultiProofBuilder) Proof() HardProof {
	return b.proof
}

// MultiProofVerifier consumes a multi-proof leaf by leaf.  The root is
// checked once, the first time any leaf reaches it; later leaves stop at the
// first node whose value is already established and must agree with it.
type MultiProofVerifier struct {
	count       uint64
	proof       HardProof
	pos         int
	known       map[nodeKey]Hash
	isRootValid func(root *Hash) bool
}

// NewMultiProofVerifier returns a verifier of proof for a tree over count
// leaves.  isRootValid decides whether a reconstructed root is the committed
// one.
func NewMultiProofVerifier(proof HardProof, count uint64, isRootValid func(root *Hash) bool) *MultiProofVerifier {
	return &MultiProofVerifier{
		count:       count,
		proof:       proof,
		known:       make(map[nodeKey]Hash),
		isRootValid: isRootValid,
	}
}

// Process verifies that leaf is at index.  A false result is final: the
// verifier must not be used afterwards.
func (v *MultiProofVerifier) Process(index uint64, leaf *Hash) bool {
	if index >= v.count {
		return false
	}
	height := Height(v.count)
	hv := *leaf
	for l, j := 0, index; ; l, j = l+1, j>>1 {
		key := nodeKey{level: l, index: j}
		if known, ok := v.known[key]; ok {
			return known == hv
		}
		v.known[key] = hv
		if l == height {
			return v.isRootValid(&hv)
		}
		s := j ^ 1
		if !nodeExists(l, s, v.count) {
			continue
		}
		sk := nodeKey{level: l, index: s}
		sh, ok := v.known[sk]
		if !ok {
			if v.pos >= len(v.proof) {
				return false
			}
			sh = v.proof[v.pos]
			v.pos++
			v.known[sk] = sh
		}
		hv = InterpretWith(&hv, &sh, j&1 == 0)
	}
}

// Pos returns the number of proof hashes consumed so far.
func (v *MultiProofVerifier) Pos() int {
	return v.pos
}

// Len returns the total number of proof hashes.
func (v *MultiProofVerifier) Len() int {
	return len(v.proof)
}
