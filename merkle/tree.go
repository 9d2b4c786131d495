// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"fmt"

	"github.com/decred/dcrd/container/lru"
)

// partialCacheSize is the number of incomplete node values remembered by a
// tree.  Incomplete nodes depend on the leaf count they are evaluated for,
// so they cannot be stored alongside the complete ones.
const partialCacheSize = 4096

type partialKey struct {
	level int
	index uint64
	count uint64
}

// Tree is an append-only count-aware Merkle tree.  Complete nodes are
// stored permanently once formed, which lets the tree answer root and proof
// queries for any historical leaf count.
//
// Tree is not safe for concurrent use.
type Tree struct {
	// levels[0] holds the leaves and levels[l] the complete nodes at level
	// l.
	levels  [][]Hash
	partial *lru.Map[partialKey, Hash]
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		levels:  [][]Hash{nil},
		partial: lru.NewMap[partialKey, Hash](partialCacheSize),
	}
}

// Count returns the number of leaves.
func (t *Tree) Count() uint64 {
	return uint64(len(t.levels[0]))
}

// Append adds a leaf and forms every node it completes.
func (t *Tree) Append(leaf Hash) {
	t.levels[0] = append(t.levels[0], leaf)
	n := t.Count()
	for l := 1; n&((1<<uint(l))-1) == 0; l++ {
		if len(t.levels) <= l {
			t.levels = append(t.levels, nil)
		}
		below := t.levels[l-1]
		i := len(below) - 2
		t.levels[l] = append(t.levels[l], Interpret(&below[i], &below[i+1]))
	}
}

// node returns the value of node i at level l as seen by a tree over count
// leaves.  The node must exist.
func (t *Tree) node(l int, i, count uint64) Hash {
	if (i+1)<<uint(l) <= count {
		return t.levels[l][i]
	}
	key := partialKey{level: l, index: i, count: count}
	if hv, ok := t.partial.Get(key); ok {
		return hv
	}
	left := t.node(l-1, 2*i, count)
	hv := left
	if nodeExists(l-1, 2*i+1, count) {
		right := t.node(l-1, 2*i+1, count)
		hv = Interpret(&left, &right)
	}
	t.partial.Put(key, hv)
	return hv
}

// Root returns the root of the tree formed by the first count leaves.
func (t *Tree) Root(count uint64) (Hash, error) {
	if count == 0 || count > t.Count() {
		return Hash{}, fmt.Errorf("root of %d leaves requested from a tree "+
			"of %d", count, t.Count())
	}
	return t.node(Height(count), 0, count), nil
}

// Proof returns the proof of the leaf at index within the tree formed by the
// first count leaves.
func (t *Tree) Proof(index, count uint64) (Proof, error) {
	hp, err := t.HardProof(index, count)
	if err != nil {
		return nil, err
	}
	p := make(Proof, 0, len(hp))
	pos := 0
	for l := 0; l < Height(count); l++ {
		j := index >> uint(l)
		if !nodeExists(l, j^1, count) {
			continue
		}
		p = append(p, Node{OnRight: j&1 == 0, Hash: hp[pos]})
		pos++
	}
	return p, nil
}

// HardProof returns the hard proof of the leaf at index within the tree
// formed by the first count leaves.
func (t *Tree) HardProof(index, count uint64) (HardProof, error) {
	if count > t.Count() || index >= count {
		return nil, fmt.Errorf("proof of leaf %d of %d requested from a "+
			"tree of %d", index, count, t.Count())
	}
	hp := make(HardProof, 0, HardProofLen(index, count))
	for l := 0; l < Height(count); l++ {
		s := (index >> uint(l)) ^ 1
		if nodeExists(l, s, count) {
			hp = append(hp, t.node(l, s, count))
		}
	}
	return hp, nil
}
