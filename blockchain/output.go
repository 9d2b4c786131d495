// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/mwledger/mwd/chaincfg"
	"github.com/mwledger/mwd/ecc"
)

// CommitmentAndMaturity is the spendable identity of an output: its
// commitment and the first height at which it may be spent.
type CommitmentAndMaturity struct {
	Commitment ecc.Point
	Maturity   uint64
}

// CmpCaM orders by commitment and then by maturity.
func (c *CommitmentAndMaturity) CmpCaM(o *CommitmentAndMaturity) int {
	if n := c.Commitment.Cmp(&o.Commitment); n != 0 {
		return n
	}
	switch {
	case c.Maturity < o.Maturity:
		return -1
	case c.Maturity > o.Maturity:
		return 1
	}
	return 0
}

// Input references an unspent output being spent.
type Input struct {
	CommitmentAndMaturity
}

// Cmp orders inputs canonically.
func (in *Input) Cmp(o *Input) int {
	return in.CmpCaM(&o.CommitmentAndMaturity)
}

// Output is a newly created coin.  It carries exactly one range proof, owned
// by the output.
type Output struct {
	CommitmentAndMaturity
	Coinbase   bool
	Incubation uint64
	Proof      ecc.RangeProof
}

// proofOracle returns the oracle range proofs of the output are bound to.
func (out *Output) proofOracle() *ecc.Oracle {
	o := ecc.NewOracle()
	o.WriteUint64(out.Incubation)
	return o
}

// IsValid checks the commitment and the range proof of the output and
// returns the imported commitment in comm.
func (out *Output) IsValid(rules *chaincfg.Rules, comm *ecc.NativePoint) error {
	if !comm.Import(&out.Commitment) {
		return ruleError(ErrBadCommitment, "output commitment is not a "+
			"valid point")
	}

	switch proof := out.Proof.(type) {
	case nil:
		return ruleError(ErrMissingRangeProof, "output has no range proof")

	case *ecc.ConfidentialProof:
		if out.Coinbase {
			return ruleError(ErrConfidentialCoinbase, "coinbase output "+
				"must have a visible value")
		}
		if !proof.IsValid(comm, out.proofOracle()) {
			return ruleError(ErrBadRangeProof, "confidential range proof "+
				"does not verify")
		}

	case *ecc.PublicProof:
		if !rules.AllowPublicUtxos && !out.Coinbase {
			return ruleError(ErrPublicUtxo, "public outputs are not "+
				"allowed")
		}
		if !proof.IsValid(comm, out.proofOracle()) {
			return ruleError(ErrBadRangeProof, "public range proof does "+
				"not verify")
		}

	default:
		return ruleError(ErrMissingRangeProof, "unsupported range proof")
	}
	return nil
}

// Create sets the commitment of the output to sk*G + value*H and attaches a
// range proof bound to the current incubation.
func (out *Output) Create(sk *ecc.ModNScalar, value uint64, public bool) {
	comm := ecc.Commit(sk, value)
	out.Commitment = comm.Export()
	if public {
		out.Proof = ecc.NewPublicProof(sk, value, out.proofOracle())
	} else {
		out.Proof = ecc.NewConfidentialProof(sk, value, out.proofOracle())
	}
}

// MinMaturity returns the maturity of the output if created at height h.
func (out *Output) MinMaturity(rules *chaincfg.Rules, h uint64) uint64 {
	if out.Coinbase {
		h = HeightAdd(h, rules.MaturityCoinbase)
	} else {
		h = HeightAdd(h, rules.MaturityStd)
	}
	return HeightAdd(h, out.Incubation)
}

// PublicValue returns the disclosed value of the output, if any.
func (out *Output) PublicValue() (uint64, bool) {
	if p, ok := out.Proof.(*ecc.PublicProof); ok {
		return p.Value, true
	}
	return 0, false
}

// Cmp orders outputs canonically.
func (out *Output) Cmp(o *Output) int {
	if n := out.CmpCaM(&o.CommitmentAndMaturity); n != 0 {
		return n
	}
	if out.Coinbase != o.Coinbase {
		if !out.Coinbase {
			return -1
		}
		return 1
	}
	switch {
	case out.Incubation < o.Incubation:
		return -1
	case out.Incubation > o.Incubation:
		return 1
	}
	return ecc.CmpRangeProof(out.Proof, o.Proof)
}
