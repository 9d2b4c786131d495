// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainwork

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/blockchain"
	"github.com/mwledger/mwd/chaincfg"
	"github.com/mwledger/mwd/merkle"
	"github.com/mwledger/mwd/pow"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
)

// memIndexCapacity is the initial capacity of the chain work index.
const memIndexCapacity = 64 * 1024

// MemSource is an in-memory chain of headers that serves as the Source of
// proofs for its tip or any of its headers.  Headers are indexed by their
// chain work, whose big-endian encoding sorts in the order of the work axis.
//
// MemSource is not safe for concurrent use.
type MemSource struct {
	states []blockchain.SystemState
	lives  []chainhash.Hash
	index  *memdb.DB
	tree   *merkle.Tree
}

// NewMemSource returns an empty chain.
func NewMemSource() *MemSource {
	return &MemSource{
		index: memdb.New(comparer.DefaultComparer, memIndexCapacity),
		tree:  merkle.NewTree(),
	}
}

// Len returns the number of headers.
func (m *MemSource) Len() int {
	return len(m.states)
}

// Tip returns the last header or nil for an empty chain.
func (m *MemSource) Tip() *blockchain.SystemState {
	if len(m.states) == 0 {
		return nil
	}
	return &m.states[len(m.states)-1]
}

// State returns the header at height.
func (m *MemSource) State(height uint64) (*blockchain.SystemState, error) {
	if height < chaincfg.HeightGenesis || height-chaincfg.HeightGenesis >= uint64(len(m.states)) {
		return nil, fmt.Errorf("no state at height %d", height)
	}
	return &m.states[height-chaincfg.HeightGenesis], nil
}

// LiveRoot returns the live root the header at height was built with.
func (m *MemSource) LiveRoot(height uint64) (chainhash.Hash, error) {
	if _, err := m.State(height); err != nil {
		return chainhash.Hash{}, err
	}
	return m.lives[height-chaincfg.HeightGenesis], nil
}

// Append adds a header to the chain.  It must follow the tip, and its work
// range must begin where that of the tip ends.
func (m *MemSource) Append(s *blockchain.SystemState, live *chainhash.Hash) error {
	want := chaincfg.HeightGenesis + uint64(len(m.states))
	if s.Height != want {
		return fmt.Errorf("state height %d does not follow the tip, want %d",
			s.Height, want)
	}
	var prevWork pow.Raw
	if tip := m.Tip(); tip != nil {
		if s.Prev != tip.Hash() {
			return fmt.Errorf("state %d does not reference the tip", s.Height)
		}
		prevWork = tip.ChainWork
	}
	if lo := s.PoW.Difficulty.Dec(&s.ChainWork); !lo.Eq(&prevWork) || !s.ChainWork.Gt(&prevWork) {
		return fmt.Errorf("work range of state %d does not extend the tip",
			s.Height)
	}

	work := s.ChainWork.Bytes()
	var height [8]byte
	binary.BigEndian.PutUint64(height[:], s.Height)
	if err := m.index.Put(work[:], height[:]); err != nil {
		return err
	}
	m.states = append(m.states, *s)
	m.lives = append(m.lives, *live)
	m.tree.Append(s.Hash())
	return nil
}

// Generate builds the header following the tip with the given difficulty,
// timestamp and live root, solves its proof of work and appends it.
func (m *MemSource) Generate(ctx context.Context, rules *chaincfg.Rules, d pow.Difficulty, timestamp uint64, live *chainhash.Hash) (*blockchain.SystemState, error) {
	var s blockchain.SystemState
	s.Height = chaincfg.HeightGenesis
	if tip := m.Tip(); tip != nil {
		s.HeaderPrefix = tip.HeaderPrefix
		s.Prev = tip.Hash()
		s.Height++
	}
	s.ChainWork = d.Inc(&s.ChainWork)
	s.Timestamp = timestamp
	s.PoW.Difficulty = d

	var history chainhash.Hash
	if count := m.tree.Count(); count > 0 {
		var err error
		if history, err = m.tree.Root(count); err != nil {
			return nil, err
		}
	}
	s.Definition = blockchain.Definition(&history, live)

	if err := s.GeneratePoW(ctx, rules); err != nil {
		return nil, err
	}
	if err := m.Append(&s, live); err != nil {
		return nil, err
	}
	return m.Tip(), nil
}

// StateAt returns the header whose work range covers work.
func (m *MemSource) StateAt(work *pow.Raw) (*blockchain.SystemState, error) {
	// The covering header is the first whose chain work exceeds work.
	var next pow.Raw
	next.Set(work).AddUint64(1)
	key := next.Bytes()
	if next.IsZero() {
		return nil, fmt.Errorf("no state covers work %v", work)
	}
	_, value, err := m.index.Find(key[:])
	if errors.Is(err, memdb.ErrNotFound) {
		return nil, fmt.Errorf("work %v is beyond the tip", work)
	}
	if err != nil {
		return nil, err
	}
	s, err := m.State(binary.BigEndian.Uint64(value))
	if err != nil {
		return nil, err
	}
	if lo := s.PoW.Difficulty.Dec(&s.ChainWork); work.Lt(&lo) {
		return nil, fmt.Errorf("work %v is not covered by state %d", work,
			s.Height)
	}
	return s, nil
}

// StateProof returns the hard proof of the header at index within the tree
// of the first count headers.
func (m *MemSource) StateProof(index, count uint64) (merkle.HardProof, error) {
	return m.tree.HardProof(index, count)
}

// Prove creates the proof of the header at height sampling down to
// lowerBound.
func (m *MemSource) Prove(height uint64, lowerBound *pow.Raw) (*ChainWorkProof, error) {
	root, err := m.State(height)
	if err != nil {
		return nil, err
	}
	live := m.lives[height-chaincfg.HeightGenesis]
	return Create(m, root, &live, lowerBound)
}
