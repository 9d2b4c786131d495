// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/chaincfg"
	"github.com/mwledger/mwd/ecc"
)

// TxBase holds what transactions and block bodies share besides their
// elements: the aggregate blinding offset.
type TxBase struct {
	Offset ecc.Scalar
}

// Transaction is a standalone transaction.
type Transaction struct {
	TxBase
	TxVectors
}

// Cmp orders transactions by offset and then by elements.
func (tx *Transaction) Cmp(o *Transaction) int {
	if n := tx.Offset.Cmp(&o.Offset); n != 0 {
		return n
	}
	return tx.TxVectors.Cmp(&o.TxVectors)
}

// Key returns a value identifying the transaction.  Proper transactions
// have a random offset which is used directly; otherwise the key is derived
// from the X coordinates of the commitments and produced kernel excesses.
func (tx *Transaction) Key() chainhash.Hash {
	if !tx.Offset.IsZero() {
		return chainhash.Hash(tx.Offset)
	}
	var key chainhash.Hash
	xor := func(x *[32]byte) {
		for i := range key {
			key[i] ^= x[i]
		}
	}
	for _, in := range tx.Inputs {
		xor(&in.Commitment.X)
	}
	for _, out := range tx.Outputs {
		xor(&out.Commitment.X)
	}
	for _, k := range tx.KernelsOut {
		xor(&k.Excess.X)
	}
	return key
}

// IsValid validates the transaction with vc and checks that it balances.
func (tx *Transaction) IsValid(ctx context.Context, vc *ValidationContext) error {
	if err := vc.ValidateAndSummarize(ctx, &tx.TxBase, tx.Reader()); err != nil {
		return err
	}
	return vc.IsValidTransaction()
}

// Validate validates the transaction under rules and returns the context
// summarizing it, which holds the total fee and the permitted height range.
func (tx *Transaction) Validate(ctx context.Context, rules *chaincfg.Rules) (*ValidationContext, error) {
	vc := NewValidationContext(rules)
	if err := tx.IsValid(ctx, vc); err != nil {
		return nil, err
	}
	return vc, nil
}
