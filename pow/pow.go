// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"lukechampine.com/blake3"
)

// NumIndices is the size of the solution carried by a PoW record.
const NumIndices = 32

// PoW is the proof-of-work record of a header.
type PoW struct {
	Indices    [NumIndices]byte
	Nonce      uint64
	Difficulty Difficulty
}

// solutionHash returns the hash compared against the difficulty target for
// the given header input.
func (p *PoW) solutionHash(input *chainhash.Hash) [32]byte {
	var buf [chainhash.HashSize + 8 + NumIndices]byte
	copy(buf[:], input[:])
	binary.BigEndian.PutUint64(buf[chainhash.HashSize:], p.Nonce)
	copy(buf[chainhash.HashSize+8:], p.Indices[:])
	return blake3.Sum256(buf[:])
}

// IsValid returns whether the record solves input at its difficulty.
func (p *PoW) IsValid(input *chainhash.Hash) bool {
	hv := p.solutionHash(input)
	return p.Difficulty.IsTargetReached(&hv)
}

// Solve searches nonces, starting at the current one, until the record
// solves input at its difficulty.  The search checks ctx periodically and
// returns its error when it is done.
func (p *PoW) Solve(ctx context.Context, input *chainhash.Hash) error {
	const checkInterval = 1 << 12
	seed := blake3.Sum256(input[:])
	copy(p.Indices[:], seed[:])
	for i := uint64(0); ; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("pow search aborted at nonce %d: %w",
					p.Nonce, err)
			}
		}
		if p.IsValid(input) {
			return nil
		}
		p.Nonce++
	}
}
