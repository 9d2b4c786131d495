// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"
	"fmt"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/math/uint256"
	"github.com/mwledger/mwd/chaincfg"
	"github.com/mwledger/mwd/ecc"
)

// ValidationContext accumulates the balance of the elements it has
// validated.  Contexts validating disjoint shards of the same elements are
// reduced with Merge.
//
// A context must not be used concurrently.
type ValidationContext struct {
	// Sigma is the running sum of commitments, excesses and offsets.
	Sigma ecc.NativePoint

	// Fee is the total fee of the produced kernels.
	Fee AmountBig

	// Coinbase is the total value of the coinbase outputs.
	Coinbase AmountBig

	// Height is the range of heights the elements are valid for.  Outside
	// of block mode it shrinks to the intersection of the kernel ranges.
	Height HeightRange

	// BlockMode enables coinbase outputs and keeps Height fixed.
	BlockMode bool

	// Verifiers is the number of shards and Verifier the index of the
	// shard validated by this context.  Shard i validates every element
	// whose position in the concatenation of all streams, followed by the
	// offset, is i modulo Verifiers.
	Verifiers uint32
	Verifier  uint32

	rules *chaincfg.Rules
}

// NewValidationContext returns a context for a single verifier that permits
// every height.
func NewValidationContext(rules *chaincfg.Rules) *ValidationContext {
	return &ValidationContext{
		Height:    FullHeightRange(),
		Verifiers: 1,
		rules:     rules,
	}
}

// Rules returns the rules the context validates against.
func (vc *ValidationContext) Rules() *chaincfg.Rules {
	return vc.rules
}

// shardCursor selects the elements owned by a shard.
type shardCursor struct {
	skip  uint32
	total uint32
}

func (c *shardCursor) owned() bool {
	if c.skip != 0 {
		c.skip--
		return false
	}
	c.skip = c.total - 1
	return true
}

// handleHeight checks hr against the permitted range, shrinking it outside
// of block mode.
func (vc *ValidationContext) handleHeight(hr HeightRange) error {
	r := vc.Height
	r.Intersect(hr)
	if r.IsEmpty() {
		str := fmt.Sprintf("height range [%d, %d] does not intersect "+
			"the permitted range [%d, %d]", hr.Min, hr.Max, vc.Height.Min,
			vc.Height.Max)
		return ruleError(ErrHeightRangeMismatch, str)
	}
	if !vc.BlockMode {
		vc.Height = r
	}
	return nil
}

// Merge adds the summary of another shard into the context.
func (vc *ValidationContext) Merge(o *ValidationContext) error {
	if vc.BlockMode != o.BlockMode {
		return AssertError("merging validation contexts with different " +
			"block modes")
	}
	if err := vc.handleHeight(o.Height); err != nil {
		return err
	}
	vc.Sigma.AddAssign(&o.Sigma)
	vc.Fee.Add(&o.Fee)
	vc.Coinbase.Add(&o.Coinbase)
	return nil
}

// ValidateAndSummarize validates the elements of r owned by the context's
// shard and adds them into the summary.  Each stream must be in strictly
// increasing canonical order.  ctx is polled once per element.
func (vc *ValidationContext) ValidateAndSummarize(ctx context.Context, txb *TxBase, r Reader) error {
	if vc.Height.IsEmpty() {
		return ruleError(ErrInvalidHeightRange, "permitted height range is "+
			"empty")
	}
	if vc.Verifiers == 0 || vc.Verifier >= vc.Verifiers {
		return AssertError(fmt.Sprintf("verifier %d of %d", vc.Verifier,
			vc.Verifiers))
	}

	cur := shardCursor{skip: vc.Verifier, total: vc.Verifiers}
	var pt ecc.NativePoint

	// Inputs and consumed kernels are subtracted, so accumulate them into
	// the negated sum.
	vc.Sigma.Negate(&vc.Sigma)
	r.Reset()

	var prevIn *Input
	for in := r.UtxoIn(); in != nil; in = r.UtxoIn() {
		if err := ctx.Err(); err != nil {
			return abortedError(err)
		}
		if cur.owned() {
			if prevIn != nil && prevIn.Cmp(in) >= 0 {
				return ruleError(ErrBadOrder, "inputs are not strictly "+
					"increasing")
			}
			if !pt.Import(&in.Commitment) {
				return ruleError(ErrBadCommitment, "input commitment is "+
					"not a valid point")
			}
			vc.Sigma.AddAssign(&pt)
		}
		c := *in
		prevIn = &c
		r.NextUtxoIn()
	}
	if err := r.Err(); err != nil {
		return err
	}

	var discardedFee AmountBig
	var prevKrn *TxKernel
	for k := r.KernelIn(); k != nil; k = r.KernelIn() {
		if err := ctx.Err(); err != nil {
			return abortedError(err)
		}

		// Every shard advances the produced kernels to the one superseding
		// this kernel so that identical consumed kernels cannot share a
		// match.
		if err := matchKernel(r, k); err != nil {
			return err
		}

		if cur.owned() {
			if prevKrn != nil && prevKrn.Cmp(k) >= 0 {
				return ruleError(ErrBadOrder, "consumed kernels are not "+
					"strictly increasing")
			}
			// The signature was verified when the kernel was produced.
			var hv chainhash.Hash
			visit := kernelVisit{fee: &discardedFee, excess: &vc.Sigma}
			if err := k.traverse(&hv, &visit, nil, nil, 0); err != nil {
				return err
			}
		}
		prevKrn = k.Clone()
		r.NextKernelIn()
	}
	if err := r.Err(); err != nil {
		return err
	}

	vc.Sigma.Negate(&vc.Sigma)
	r.Reset()

	var prevOut *Output
	for out := r.UtxoOut(); out != nil; out = r.UtxoOut() {
		if err := ctx.Err(); err != nil {
			return abortedError(err)
		}
		if cur.owned() {
			if prevOut != nil && prevOut.Cmp(out) >= 0 {
				return ruleError(ErrBadOrder, "outputs are not strictly "+
					"increasing")
			}
			if err := out.IsValid(vc.rules, &pt); err != nil {
				return err
			}
			vc.Sigma.AddAssign(&pt)

			if out.Coinbase {
				if !vc.BlockMode {
					return ruleError(ErrCoinbaseNotAllowed, "coinbase "+
						"outputs are only allowed in blocks")
				}
				v, _ := out.PublicValue()
				vc.Coinbase.AddAmount(v)
			}
		}
		c := *out
		prevOut = &c
		r.NextUtxoOut()
	}
	if err := r.Err(); err != nil {
		return err
	}

	prevKrn = nil
	for k := r.KernelOut(); k != nil; k = r.KernelOut() {
		if err := ctx.Err(); err != nil {
			return abortedError(err)
		}
		if cur.owned() {
			if prevKrn != nil && prevKrn.Cmp(k) >= 0 {
				return ruleError(ErrBadOrder, "produced kernels are not "+
					"strictly increasing")
			}
			if err := k.IsValid(&vc.Fee, &vc.Sigma); err != nil {
				return err
			}
			if err := vc.handleHeight(k.Height); err != nil {
				return err
			}
		}
		prevKrn = k.Clone()
		r.NextKernelOut()
	}
	if err := r.Err(); err != nil {
		return err
	}

	if cur.owned() {
		var offset ecc.ModNScalar
		if !txb.Offset.Import(&offset) {
			return ruleError(ErrBadCommitment, "offset is not a valid "+
				"scalar")
		}
		og := ecc.MulG(&offset)
		vc.Sigma.AddAssign(&og)
	}
	return nil
}

// matchKernel advances the produced kernels of r past the one with the
// excess of k and a greater multiplier.
func matchKernel(r Reader, k *TxKernel) error {
	for {
		out := r.KernelOut()
		if out == nil {
			if err := r.Err(); err != nil {
				return err
			}
			return ruleError(ErrUnmatchedKernel, "consumed kernel has no "+
				"superseding kernel")
		}
		n := out.Excess.Cmp(&k.Excess)
		multiplier := out.Multiplier
		r.NextKernelOut()
		if n > 0 {
			return ruleError(ErrUnmatchedKernel, "consumed kernel has no "+
				"superseding kernel")
		}
		if n == 0 {
			if multiplier <= k.Multiplier {
				str := fmt.Sprintf("superseding kernel multiplier %d is "+
					"not above %d", multiplier, k.Multiplier)
				return ruleError(ErrUnmatchedKernel, str)
			}
			return nil
		}
	}
}

// IsValidTransaction checks that the summary of a standalone transaction
// balances once the fee is accounted for.
func (vc *ValidationContext) IsValidTransaction() error {
	if !vc.Coinbase.IsZero() {
		return ruleError(ErrNonZeroCoinbase, "transaction mints coinbase "+
			"value")
	}
	var sigma ecc.NativePoint
	sigma.Set(&vc.Sigma)
	vc.Fee.AddTo(&sigma)
	if !sigma.IsZero() {
		return ruleError(ErrUnbalanced, "transaction does not balance")
	}
	return nil
}

// IsValidBlock checks that the summary of a block body balances against its
// subsidy and, unless subsidyOpen is set, that the subsidy and the unspent
// coinbase obey the emission schedule and the coinbase maturity.
func (vc *ValidationContext) IsValidBlock(bb *BodyBase, subsidyOpen bool) error {
	var sigma ecc.NativePoint
	sigma.Negate(&vc.Sigma)
	bb.Subsidy.AddTo(&sigma)
	if !sigma.IsZero() {
		return ruleError(ErrUnbalanced, "block does not balance against "+
			"its subsidy")
	}
	if subsidyOpen {
		return nil
	}
	if bb.SubsidyClosing {
		return ruleError(ErrSubsidyClosed, "subsidy may only be closed "+
			"while it is open")
	}

	emission := vc.rules.CoinbaseEmission
	blocks := vc.Height.Max - vc.Height.Min + 1
	subsidy := bb.Subsidy.Uint256()

	var limit uint256.Uint256
	limit.SetUint64(blocks).MulUint64(emission)
	if subsidy.Gt(&limit) {
		str := fmt.Sprintf("subsidy %s exceeds the emission %s of %d "+
			"blocks", subsidy.String(), limit.String(), blocks)
		return ruleError(ErrExcessiveSubsidy, str)
	}

	// Coinbase issued more than the maturity ago may already be spent.
	required := subsidy
	if blocks > vc.rules.MaturityCoinbase {
		var spendable uint256.Uint256
		spendable.SetUint64(blocks - vc.rules.MaturityCoinbase).MulUint64(emission)
		if required.Gt(&spendable) {
			required.Sub(&spendable)
		} else {
			required.SetUint64(0)
		}
	}
	coinbase := vc.Coinbase.Uint256()
	if coinbase.Lt(&required) {
		str := fmt.Sprintf("unspent coinbase %s is below the required %s",
			coinbase.String(), required.String())
		return ruleError(ErrInsufficientCoinbase, str)
	}
	return nil
}
