// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainwork

import (
	"fmt"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/blockchain"
	"github.com/mwledger/mwd/chaincfg"
	"github.com/mwledger/mwd/merkle"
	"github.com/mwledger/mwd/pow"
)

// Source answers the queries of the prover about the chain below the tip a
// proof is created for.
type Source interface {
	// StateAt returns the header whose work range covers work.
	StateAt(work *pow.Raw) (*blockchain.SystemState, error)

	// StateProof returns the hard proof of the header at index, counted
	// from genesis, within the tree of the first count headers.
	StateProof(index, count uint64) (merkle.HardProof, error)
}

// ChainWorkProof proves the chain work of its first header.  The remaining
// headers answer the sampled work points in the order they are drawn, and
// Proof establishes the position of every header that is not the
// predecessor of the header before it.
type ChainWorkProof struct {
	States []blockchain.SystemState
	Proof  merkle.HardProof

	// RootLive is the live root of the first header, which together with
	// the root of the header tree forms its definition.
	RootLive chainhash.Hash

	// LowerBound is the work below which no points are sampled.  It is set
	// by the prover, so a verifier checks the proof against its own bound
	// with IsValidAbove.
	LowerBound pow.Raw
}

// Root returns the header whose chain work is proven or nil for an empty
// proof.
func (p *ChainWorkProof) Root() *blockchain.SystemState {
	if len(p.States) == 0 {
		return nil
	}
	return &p.States[0]
}

// Create builds the proof for root, whose live root is rootLive, sampling
// down to lowerBound.
func Create(src Source, root *blockchain.SystemState, rootLive *chainhash.Hash, lowerBound *pow.Raw) (*ChainWorkProof, error) {
	p := &ChainWorkProof{
		States:     []blockchain.SystemState{*root},
		RootLive:   *rootLive,
		LowerBound: *lowerBound,
	}

	samp := newSampler(root)
	if samp.isDegenerate() {
		return nil, proofError(ErrInvalidInterval, "chain work of the "+
			"root is below its difficulty")
	}
	samp.lowerBound = p.LowerBound

	count := root.Height - chaincfg.HeightGenesis
	bld := merkle.NewMultiProofBuilder(count)
	for {
		var work pow.Raw
		if !samp.next(&work) {
			break
		}
		s, err := src.StateAt(&work)
		if err != nil {
			return nil, fmt.Errorf("unable to fetch state at work %v: %w",
				&work, err)
		}
		prev := &p.States[len(p.States)-1]
		if s.Height < chaincfg.HeightGenesis || s.Height >= prev.Height {
			return nil, fmt.Errorf("source returned state %d below state %d",
				s.Height, prev.Height)
		}
		if s.Height+1 != prev.Height {
			index := s.Height - chaincfg.HeightGenesis
			hp, err := src.StateProof(index, count)
			if err != nil {
				return nil, fmt.Errorf("unable to fetch proof of state %d: %w",
					s.Height, err)
			}
			if err := bld.Add(index, hp); err != nil {
				return nil, err
			}
		}
		p.States = append(p.States, *s)

		lo := s.PoW.Difficulty.Dec(&s.ChainWork)
		samp.cover(&lo)
	}
	p.Proof = bld.Proof()

	log.Debugf("Created chain work proof for %v with %d states and %d "+
		"hashes", root.ID(), len(p.States), len(p.Proof))
	return p, nil
}

// verify replays the sampling down to lowerBound and checks every answer.
// It returns the number of headers and proof hashes consumed.
func (p *ChainWorkProof) verify(rules *chaincfg.Rules, lowerBound *pow.Raw) (int, int, error) {
	if len(p.States) == 0 {
		return 0, 0, proofError(ErrEmptyProof, "proof has no states")
	}
	for i := range p.States {
		s := &p.States[i]
		if err := s.IsSane(); err != nil {
			return 0, 0, fmt.Errorf("state %d: %w", i, err)
		}
		if err := s.IsValidPoW(rules); err != nil {
			return 0, 0, fmt.Errorf("state %d: %w", i, err)
		}
	}

	root := &p.States[0]
	ver := merkle.NewMultiProofVerifier(p.Proof,
		root.Height-chaincfg.HeightGenesis, func(hv *merkle.Hash) bool {
			return blockchain.Definition(hv, &p.RootLive) == root.Definition
		})

	samp := newSampler(root)
	if samp.isDegenerate() {
		return 0, 0, proofError(ErrInvalidInterval, "chain work of the "+
			"root is below its difficulty")
	}
	samp.lowerBound = *lowerBound

	loPrev := root.PoW.Difficulty.Dec(&root.ChainWork)
	i := 1
	for ; ; i++ {
		var work pow.Raw
		if !samp.next(&work) {
			break
		}
		if i >= len(p.States) {
			str := fmt.Sprintf("proof ends after %d states", len(p.States))
			return 0, 0, proofError(ErrMissingStates, str)
		}

		s0, s := &p.States[i-1], &p.States[i]
		lo := s.PoW.Difficulty.Dec(&s.ChainWork)
		if !work.Lt(&s.ChainWork) || work.Lt(&lo) {
			str := fmt.Sprintf("state %d does not cover work %v", s.Height,
				&work)
			return 0, 0, proofError(ErrSampleOutOfRange, str)
		}

		hv := s.Hash()
		if s.Height+1 == s0.Height {
			if s0.Prev != hv {
				str := fmt.Sprintf("state %d is not the predecessor of "+
					"state %d", s.Height, s0.Height)
				return 0, 0, proofError(ErrBadLink, str)
			}
			if !s.ChainWork.Eq(&loPrev) {
				str := fmt.Sprintf("chain work of state %d does not end "+
					"where state %d begins", s.Height, s0.Height)
				return 0, 0, proofError(ErrBadChainWork, str)
			}
		} else {
			if s.Height >= s0.Height {
				str := fmt.Sprintf("state %d is not below state %d",
					s.Height, s0.Height)
				return 0, 0, proofError(ErrHeightOrder, str)
			}
			if !s.ChainWork.Lt(&loPrev) {
				str := fmt.Sprintf("chain work of state %d overlaps state "+
					"%d", s.Height, s0.Height)
				return 0, 0, proofError(ErrBadChainWork, str)
			}
			if !ver.Process(s.Height-chaincfg.HeightGenesis, &hv) {
				str := fmt.Sprintf("state %d is not in the history of "+
					"the root", s.Height)
				return 0, 0, proofError(ErrBadMerkleProof, str)
			}
		}

		loPrev = lo
		samp.cover(&lo)
	}
	return i, ver.Pos(), nil
}

// IsValid verifies the proof under rules, sampling down to the lower bound
// carried by the proof.  Every header and proof hash must be consumed.
//
// The bound comes from the prover and a higher one proves less work.  Use
// IsValidAbove to verify against a bound of the caller's choosing.
func (p *ChainWorkProof) IsValid(rules *chaincfg.Rules) error {
	return p.IsValidAbove(rules, &p.LowerBound)
}

// IsValidAbove verifies the proof under rules, sampling down to lowerBound
// regardless of the bound carried by the proof.  A proof sampled above
// lowerBound is missing headers and is rejected.  Every header and proof
// hash must be consumed, so a proof sampled below lowerBound must be
// cropped to it first.
func (p *ChainWorkProof) IsValidAbove(rules *chaincfg.Rules, lowerBound *pow.Raw) error {
	states, hashes, err := p.verify(rules, lowerBound)
	if err != nil {
		return err
	}
	if states != len(p.States) || hashes != len(p.Proof) {
		str := fmt.Sprintf("verification consumed %d of %d states and %d "+
			"of %d hashes", states, len(p.States), hashes, len(p.Proof))
		return proofError(ErrTrailingData, str)
	}
	return nil
}

// Crop verifies the proof under rules with its current lower bound and
// drops whatever verification does not consume.  Raising LowerBound
// beforehand crops a proof to the needs of a verifier trusting the chain
// up to that work.
func (p *ChainWorkProof) Crop(rules *chaincfg.Rules) error {
	states, hashes, err := p.verify(rules, &p.LowerBound)
	if err != nil {
		return err
	}
	log.Tracef("Cropped chain work proof from %d to %d states and from %d "+
		"to %d hashes", len(p.States), states, len(p.Proof), hashes)
	p.States = p.States[:states]
	p.Proof = p.Proof[:hashes]
	return nil
}
