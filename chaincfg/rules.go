// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math"
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/ecc"
	"github.com/mwledger/mwd/pow"
)

const (
	// HeightGenesis is the height of the first block of every chain.
	HeightGenesis = 1

	// Coin is the number of base units in one coin.
	Coin = 1000000

	// protocolVersion is bumped whenever the consensus rules change in a
	// way the rule fields do not capture.
	protocolVersion = 1
)

// Rules defines the consensus rules of a network.
type Rules struct {
	// Name is a human-readable identifier of the network.  It is not part
	// of the checksum.
	Name string

	// CoinbaseEmission is the subsidy of a single block.
	CoinbaseEmission uint64

	// MaturityCoinbase is the number of blocks before a coinbase output
	// may be spent.
	MaturityCoinbase uint64

	// MaturityStd is the number of blocks before a regular output may be
	// spent.
	MaturityStd uint64

	// MaxBodySize is the largest allowed serialized block body in bytes.
	MaxBodySize uint32

	// FakePoW disables proof-of-work solution checks for test networks.
	FakePoW bool

	// AllowPublicUtxos permits public range proofs on regular outputs.
	AllowPublicUtxos bool

	// DesiredRate is the target interval between blocks.
	DesiredRate time.Duration

	// DifficultyReviewCycle is the number of blocks between difficulty
	// adjustments.
	DifficultyReviewCycle uint32

	// MaxDifficultyChange bounds the order change of one adjustment.
	MaxDifficultyChange uint32

	// TimestampAheadThreshold is how far in the future a header timestamp
	// may be.
	TimestampAheadThreshold time.Duration

	// WindowForMedian is the number of blocks in the median timestamp
	// window.
	WindowForMedian uint32

	// StartDifficulty is the difficulty of the first block.
	StartDifficulty pow.Difficulty
}

// MainNetRules returns the rules of the main network.
func MainNetRules() *Rules {
	return &Rules{
		Name:                    "mainnet",
		CoinbaseEmission:        Coin * 40,
		MaturityCoinbase:        240,
		MaturityStd:             0,
		MaxBodySize:             0x100000,
		DesiredRate:             time.Minute,
		DifficultyReviewCycle:   1440,
		MaxDifficultyChange:     2,
		TimestampAheadThreshold: 2 * time.Hour,
		WindowForMedian:         25,
		StartDifficulty:         pow.Pack(22, 1<<pow.MantissaBits),
	}
}

// TestNetRules returns the rules of the public test network.
func TestNetRules() *Rules {
	r := MainNetRules()
	r.Name = "testnet"
	r.MaturityCoinbase = 60
	r.DifficultyReviewCycle = 240
	r.StartDifficulty = pow.Pack(16, 1<<pow.MantissaBits)
	return r
}

// SimNetRules returns the rules of the simulation network.  Proof-of-work
// checks are disabled and public outputs are allowed.
func SimNetRules() *Rules {
	r := MainNetRules()
	r.Name = "simnet"
	r.MaturityCoinbase = 2
	r.FakePoW = true
	r.AllowPublicUtxos = true
	r.DesiredRate = time.Second
	r.DifficultyReviewCycle = 10
	r.StartDifficulty = pow.Pack(0, 1<<pow.MantissaBits)
	return r
}

// Checksum returns the hash of every consensus parameter.
func (r *Rules) Checksum() chainhash.Hash {
	gen := ecc.Checksum()
	hp := ecc.NewHashProcessor()
	hp.WriteHash(&gen).
		WriteUint64(HeightGenesis).
		WriteUint64(Coin).
		WriteUint64(r.CoinbaseEmission).
		WriteUint64(r.MaturityCoinbase).
		WriteUint64(r.MaturityStd).
		WriteUint32(r.MaxBodySize).
		WriteBool(r.FakePoW).
		WriteBool(r.AllowPublicUtxos).
		WriteUint32(uint32(r.DesiredRate / time.Second)).
		WriteUint32(r.DifficultyReviewCycle).
		WriteUint32(r.MaxDifficultyChange).
		WriteUint32(uint32(r.TimestampAheadThreshold / time.Second)).
		WriteUint32(r.WindowForMedian).
		WriteUint32(uint32(r.StartDifficulty)).
		WriteUint32(pow.NumIndices).
		WriteUint32(pow.MantissaBits).
		WriteUint32(protocolVersion)
	return hp.Sum()
}

// AdjustDifficulty rescales d for a review cycle that started at cycleBegin
// and ended at cycleEnd, both in seconds since the epoch.
func (r *Rules) AdjustDifficulty(d *pow.Difficulty, cycleBegin, cycleEnd uint64) {
	target := uint32(r.DesiredRate/time.Second) * r.DifficultyReviewCycle

	var dt uint32
	if cycleEnd > cycleBegin {
		elapsed := cycleEnd - cycleBegin
		if elapsed < math.MaxUint32 {
			dt = uint32(elapsed)
		} else {
			dt = math.MaxUint32
		}
	}
	d.Adjust(dt, target, r.MaxDifficultyChange)
}
