// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"
	"fmt"

	"github.com/mwledger/mwd/chaincfg"
	"github.com/mwledger/mwd/ecc"
)

// BodyBase holds the block-level fields of a body of one or more blocks.
type BodyBase struct {
	TxBase

	// Subsidy is the total value minted by the blocks.
	Subsidy AmountBig

	// SubsidyClosing marks the body that ends the opening subsidy window.
	// At most one body of a chain sets it.
	SubsidyClosing bool
}

// Merge folds the body base of the following blocks into bb.
func (bb *BodyBase) Merge(next *BodyBase) error {
	if bb.SubsidyClosing && next.SubsidyClosing {
		return ruleError(ErrSubsidyClosingTwice, "both bodies close the "+
			"subsidy")
	}
	bb.Subsidy.Add(&next.Subsidy)
	bb.SubsidyClosing = bb.SubsidyClosing || next.SubsidyClosing

	var a, b ecc.ModNScalar
	bb.Offset.Import(&a)
	next.Offset.Import(&b)
	a.Add(&b)
	bb.Offset = ecc.NewScalar(&a)
	return nil
}

// newBlockContext returns a validation context for the blocks at hr.
func newBlockContext(rules *chaincfg.Rules, hr HeightRange) (*ValidationContext, error) {
	if hr.IsEmpty() || hr.Min < chaincfg.HeightGenesis {
		str := fmt.Sprintf("block height range [%d, %d] is invalid",
			hr.Min, hr.Max)
		return nil, ruleError(ErrInvalidHeightRange, str)
	}
	vc := NewValidationContext(rules)
	vc.Height = hr
	vc.BlockMode = true
	return vc, nil
}

// IsValid validates the elements of r as the body of the blocks at hr.
// subsidyOpen reports whether the blocks are within the opening subsidy
// window.
func (bb *BodyBase) IsValid(ctx context.Context, rules *chaincfg.Rules, hr HeightRange, subsidyOpen bool, r Reader) error {
	vc, err := newBlockContext(rules, hr)
	if err != nil {
		return err
	}
	if err := vc.ValidateAndSummarize(ctx, &bb.TxBase, r); err != nil {
		return err
	}
	if err := vc.IsValidBlock(bb, subsidyOpen); err != nil {
		log.Debugf("Block body at [%d, %d] rejected: %v", hr.Min, hr.Max, err)
		return err
	}
	return nil
}

// IsValidParallel is IsValid with the elements validated across shards.
func (bb *BodyBase) IsValidParallel(ctx context.Context, rules *chaincfg.Rules, hr HeightRange, subsidyOpen bool, r Reader, shards uint32) error {
	proto, err := newBlockContext(rules, hr)
	if err != nil {
		return err
	}
	vc, err := ValidateParallel(ctx, proto, &bb.TxBase, r, shards)
	if err != nil {
		return err
	}
	if err := vc.IsValidBlock(bb, subsidyOpen); err != nil {
		log.Debugf("Block body at [%d, %d] rejected: %v", hr.Min, hr.Max, err)
		return err
	}
	return nil
}

// Body is an in-memory block body.
type Body struct {
	BodyBase
	TxVectors
}

// IsValid validates the body as the blocks at hr.
func (b *Body) IsValid(ctx context.Context, rules *chaincfg.Rules, hr HeightRange, subsidyOpen bool) error {
	return b.BodyBase.IsValid(ctx, rules, hr, subsidyOpen, b.Reader())
}

// MergeBodies returns the body of the blocks of a followed by those of b
// with an input of one cancelling out a matching output of the other.
func MergeBodies(ctx context.Context, a, b *Body) (*Body, error) {
	merged := &Body{BodyBase: a.BodyBase}
	if err := merged.BodyBase.Merge(&b.BodyBase); err != nil {
		return nil, err
	}
	if err := Combine(ctx, &merged.TxVectors, a.Reader(), b.Reader()); err != nil {
		return nil, err
	}
	return merged, nil
}
