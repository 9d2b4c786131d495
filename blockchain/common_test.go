// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/mwledger/mwd/ecc"
)

// sumKeys returns the sum of the keys of the first slice minus those of the
// second.
func sumKeys(plus, minus []ecc.ModNScalar) ecc.ModNScalar {
	var sum ecc.ModNScalar
	for i := range plus {
		sum.Add(&plus[i])
	}
	for i := range minus {
		var neg ecc.ModNScalar
		neg.NegateVal(&minus[i])
		sum.Add(&neg)
	}
	return sum
}

// makeInputs returns inputs committing to the given values under random
// blinding keys along with the keys.
func makeInputs(values ...uint64) ([]*Input, []ecc.ModNScalar) {
	ins := make([]*Input, len(values))
	keys := make([]ecc.ModNScalar, len(values))
	for i, v := range values {
		keys[i] = ecc.RandomScalar()
		comm := ecc.Commit(&keys[i], v)
		ins[i] = &Input{CommitmentAndMaturity{Commitment: comm.Export()}}
	}
	return ins, keys
}

// makeOutputs returns outputs of the given values with range proofs under
// random blinding keys along with the keys.
func makeOutputs(public bool, values ...uint64) ([]*Output, []ecc.ModNScalar) {
	outs := make([]*Output, len(values))
	keys := make([]ecc.ModNScalar, len(values))
	for i, v := range values {
		keys[i] = ecc.RandomScalar()
		outs[i] = new(Output)
		outs[i].Create(&keys[i], v, public)
	}
	return outs, keys
}

// makeKernel returns a kernel signed by a random key along with the key.
func makeKernel(t *testing.T, fee uint64, hr HeightRange) (*TxKernel, ecc.ModNScalar) {
	t.Helper()

	sk := ecc.RandomScalar()
	k := &TxKernel{Fee: fee, Height: hr}
	if err := k.Sign(&sk); err != nil {
		t.Fatalf("unable to sign kernel: %v", err)
	}
	return k, sk
}

// offsetFor returns the offset balancing the blinding keys of the inputs
// against those of the outputs and the kernel excesses.
func offsetFor(inKeys, outKeys, excessKeys []ecc.ModNScalar) ecc.Scalar {
	minus := append(append([]ecc.ModNScalar{}, outKeys...), excessKeys...)
	offset := sumKeys(inKeys, minus)
	return ecc.NewScalar(&offset)
}

// makeTx returns a sorted balanced transaction spending inputs of the given
// values into confidential outputs while paying fee.
func makeTx(t *testing.T, ins, outs []uint64, fee uint64, hr HeightRange) *Transaction {
	t.Helper()

	inputs, inKeys := makeInputs(ins...)
	outputs, outKeys := makeOutputs(false, outs...)
	k, x := makeKernel(t, fee, hr)

	tx := &Transaction{
		TxBase: TxBase{Offset: offsetFor(inKeys, outKeys, []ecc.ModNScalar{x})},
		TxVectors: TxVectors{
			Inputs:     inputs,
			Outputs:    outputs,
			KernelsOut: []*TxKernel{k},
		},
	}
	tx.Sort()
	return tx
}

// makeBody returns a sorted balanced body minting subsidy into coinbase
// outputs of the given values and regular outputs of the given values.
func makeBody(t *testing.T, coinbase, regular []uint64) (*Body, []ecc.ModNScalar) {
	t.Helper()

	var subsidy uint64
	var outs []*Output
	var keys []ecc.ModNScalar
	for _, v := range coinbase {
		sk := ecc.RandomScalar()
		out := &Output{Coinbase: true}
		out.Create(&sk, v, true)
		outs = append(outs, out)
		keys = append(keys, sk)
		subsidy += v
	}
	regOuts, regKeys := makeOutputs(false, regular...)
	for _, v := range regular {
		subsidy += v
	}
	outs = append(outs, regOuts...)
	keys = append(keys, regKeys...)

	k, x := makeKernel(t, 0, FullHeightRange())
	body := &Body{
		BodyBase: BodyBase{
			TxBase: TxBase{Offset: offsetFor(nil, keys, []ecc.ModNScalar{x})},
		},
		TxVectors: TxVectors{
			Outputs:    outs,
			KernelsOut: []*TxKernel{k},
		},
	}
	body.Subsidy.AddAmount(subsidy)
	body.Sort()
	return body, keys
}
