// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"context"
	"fmt"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/chaincfg"
	"github.com/mwledger/mwd/ecc"
	"github.com/mwledger/mwd/merkle"
	"github.com/mwledger/mwd/pow"
)

// HeaderPrefix is the part of a header that follows from its predecessor.
type HeaderPrefix struct {
	Height    uint64
	Prev      chainhash.Hash
	ChainWork pow.Raw
}

// HeaderElement is the part of a header specific to its block.
type HeaderElement struct {
	// Definition commits to the history of headers and to the live UTXO
	// and kernel sets.  See Definition.
	Definition chainhash.Hash
	Timestamp  uint64
	PoW        pow.PoW
}

// SystemState is a block header.
type SystemState struct {
	HeaderPrefix
	HeaderElement
}

// StateID identifies a header by height and hash.
type StateID struct {
	Height uint64
	Hash   chainhash.Hash
}

// String returns the id as height-hash.
func (id StateID) String() string {
	return fmt.Sprintf("%d-%v", id.Height, id.Hash)
}

// Cmp orders ids by height and then by hash.
func (id *StateID) Cmp(o *StateID) int {
	if n := cmpUint64(id.Height, o.Height); n != 0 {
		return n
	}
	return bytes.Compare(id.Hash[:], o.Hash[:])
}

// LiveRoot returns the root of the live state from the roots of the UTXO
// and kernel sets.
func LiveRoot(utxos, kernels *chainhash.Hash) chainhash.Hash {
	return merkle.Interpret(utxos, kernels)
}

// Definition returns the header definition for the history root of all
// preceding headers and the live root.
func Definition(history, live *chainhash.Hash) chainhash.Hash {
	return merkle.Interpret(history, live)
}

func (s *SystemState) hash(total bool) chainhash.Hash {
	work := s.ChainWork.Bytes()
	hp := ecc.NewHashProcessor()
	hp.WriteUint64(s.Height).
		WriteHash(&s.Prev).
		WriteBytes(work[:]).
		WriteHash(&s.Definition).
		WriteUint64(s.Timestamp).
		WriteUint32(uint32(s.PoW.Difficulty))
	if total {
		hp.WriteBytes(s.PoW.Indices[:]).WriteUint64(s.PoW.Nonce)
	}
	return hp.Sum()
}

// HashForPoW returns the hash the proof of work solves: every field but the
// solution itself.
func (s *SystemState) HashForPoW() chainhash.Hash {
	return s.hash(false)
}

// Hash returns the hash identifying the header.
func (s *SystemState) Hash() chainhash.Hash {
	return s.hash(true)
}

// ID returns the identifier of the header.
func (s *SystemState) ID() StateID {
	return StateID{Height: s.Height, Hash: s.Hash()}
}

// NextPrefix turns the prefix into that of the following header.  The chain
// work must be advanced separately once the difficulty of the following
// header is known.
func (s *SystemState) NextPrefix() {
	s.Prev = s.Hash()
	s.Height++
}

// IsSane checks the height and the genesis link of the header.
func (s *SystemState) IsSane() error {
	if s.Height < chaincfg.HeightGenesis {
		str := fmt.Sprintf("header height %d is below genesis", s.Height)
		return ruleError(ErrHeaderHeight, str)
	}
	if s.Height == chaincfg.HeightGenesis && s.Prev != (chainhash.Hash{}) {
		return ruleError(ErrGenesisPrev, "genesis header references a "+
			"previous header")
	}
	return nil
}

// IsValidPoW checks the proof of work of the header.
func (s *SystemState) IsValidPoW(rules *chaincfg.Rules) error {
	if rules.FakePoW {
		return nil
	}
	hv := s.HashForPoW()
	if !s.PoW.IsValid(&hv) {
		str := fmt.Sprintf("header %d does not reach difficulty %v",
			s.Height, s.PoW.Difficulty)
		return ruleError(ErrHighHash, str)
	}
	return nil
}

// GeneratePoW solves the proof of work of the header.  It returns an error
// when ctx is done first.
func (s *SystemState) GeneratePoW(ctx context.Context, rules *chaincfg.Rules) error {
	if rules.FakePoW {
		return nil
	}
	hv := s.HashForPoW()
	return s.PoW.Solve(ctx, &hv)
}

// IsValidProofState returns whether proof shows that the header identified
// by id is an ancestor of s.  The proof is the hard proof of id within the
// tree of all headers preceding s, followed by the live root of s.
func (s *SystemState) IsValidProofState(id *StateID, proof merkle.HardProof) bool {
	if id.Height < chaincfg.HeightGenesis || id.Height >= s.Height || len(proof) == 0 {
		return false
	}
	count := s.Height - chaincfg.HeightGenesis
	root, ok := merkle.InterpretHard(id.Hash, id.Height-chaincfg.HeightGenesis,
		count, proof[:len(proof)-1])
	if !ok {
		return false
	}
	return Definition(&root, &proof[len(proof)-1]) == s.Definition
}

// IsValidProofKernel returns whether proof shows that the kernel is in the
// kernel set of s.  The last two nodes of the proof must be the UTXO root
// and the history root, both on the left.
func (s *SystemState) IsValidProofKernel(k *TxKernel, proof merkle.Proof) bool {
	n := len(proof)
	if n < 2 || proof[n-1].OnRight || proof[n-2].OnRight {
		return false
	}
	return proof.Interpret(k.ID(nil)) == s.Definition
}
