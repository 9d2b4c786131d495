// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"math/bits"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/ecc"
)

// Hash is a tree node value.
type Hash = chainhash.Hash

// Interpret returns the parent of the two child nodes.
func Interpret(left, right *Hash) Hash {
	return ecc.NewHashProcessor().WriteHash(left).WriteHash(right).Sum()
}

// InterpretWith folds a sibling into hv.  When onRight is set the sibling is
// the right child.
func InterpretWith(hv, sibling *Hash, onRight bool) Hash {
	if onRight {
		return Interpret(hv, sibling)
	}
	return Interpret(sibling, hv)
}

// Node is a sibling hash along with its position.
type Node struct {
	OnRight bool
	Hash    Hash
}

// Proof is an ordered list of siblings from the leaf level upwards.
type Proof []Node

// Interpret folds every node of the proof into hv and returns the result.
func (p Proof) Interpret(hv Hash) Hash {
	for i := range p {
		hv = InterpretWith(&hv, &p[i].Hash, p[i].OnRight)
	}
	return hv
}

// HardProof is an ordered list of sibling hashes from the leaf level
// upwards with directions implied by the leaf position.
type HardProof []Hash

// Height returns the height of a tree over count leaves.
func Height(count uint64) int {
	if count < 2 {
		return 0
	}
	return bits.Len64(count - 1)
}

// nodeExists returns whether node i at level l exists in a tree over count
// leaves.
func nodeExists(l int, i, count uint64) bool {
	return i < count>>uint(l) || (i == count>>uint(l) && count&((1<<uint(l))-1) != 0)
}

// HardProofLen returns the number of hashes in a hard proof of the leaf at
// index in a tree over count leaves.
func HardProofLen(index, count uint64) int {
	n := 0
	for l := 0; l < Height(count); l++ {
		if nodeExists(l, (index>>uint(l))^1, count) {
			n++
		}
	}
	return n
}

// InterpretHard folds the hard proof of the leaf at index in a tree over
// count leaves and returns the root.  It returns false when the index is
// out of range or the proof does not have exactly the expected length.
func InterpretHard(leaf Hash, index, count uint64, proof HardProof) (Hash, bool) {
	if index >= count {
		return Hash{}, false
	}
	hv := leaf
	pos := 0
	for l := 0; l < Height(count); l++ {
		j := index >> uint(l)
		if !nodeExists(l, j^1, count) {
			continue
		}
		if pos >= len(proof) {
			return Hash{}, false
		}
		hv = InterpretWith(&hv, &proof[pos], j&1 == 0)
		pos++
	}
	if pos != len(proof) {
		return Hash{}, false
	}
	return hv, true
}
