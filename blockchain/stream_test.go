// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"
	"errors"
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/ecc"
)

// TestDeleteIntermediateOutputs ensures inputs spending outputs of the same
// vectors are cancelled along with those outputs.
func TestDeleteIntermediateOutputs(t *testing.T) {
	t.Parallel()

	outs, _ := makeOutputs(false, 1, 2, 3, 4)
	ins, _ := makeInputs(5, 6)
	v := TxVectors{Outputs: outs, Inputs: ins}
	v.Inputs = append(v.Inputs,
		&Input{outs[1].CommitmentAndMaturity},
		&Input{outs[3].CommitmentAndMaturity})
	v.Sort()

	// A matching commitment with another maturity is not the same output.
	other := &Input{outs[0].CommitmentAndMaturity}
	other.Maturity = 7
	v.Inputs = append(v.Inputs, other)
	v.Sort()

	if n := v.DeleteIntermediateOutputs(); n != 2 {
		t.Fatalf("deleted %d pairs, want 2", n)
	}
	if len(v.Inputs) != 3 || len(v.Outputs) != 2 {
		t.Fatalf("unexpected remaining elements: %d inputs, %d outputs",
			len(v.Inputs), len(v.Outputs))
	}
	for _, out := range v.Outputs {
		if out == outs[1] || out == outs[3] {
			t.Fatal("spent output survived")
		}
	}
	if n := v.DeleteIntermediateOutputs(); n != 0 {
		t.Fatalf("second pass deleted %d pairs", n)
	}
}

// TestCombine ensures combining readers yields sorted streams with spent
// outputs and consumed kernels cancelled.
func TestCombine(t *testing.T) {
	t.Parallel()

	a := makeTx(t, []uint64{100}, []uint64{60, 30}, 10, FullHeightRange())
	b := makeTx(t, []uint64{30}, []uint64{25}, 5, FullHeightRange())

	// b spends an output of a and consumes its kernel.
	spent := a.Outputs[0]
	b.Inputs = []*Input{{spent.CommitmentAndMaturity}}
	b.KernelsIn = []*TxKernel{a.KernelsOut[0].Clone()}

	var combined TxVectors
	if err := Combine(context.Background(), &combined, a.Reader(), b.Reader()); err != nil {
		t.Fatalf("unable to combine: %v", err)
	}
	if len(combined.Inputs) != 1 || len(combined.Outputs) != 2 {
		t.Fatalf("unexpected utxos: %d inputs, %d outputs",
			len(combined.Inputs), len(combined.Outputs))
	}
	if len(combined.KernelsIn) != 0 || len(combined.KernelsOut) != 1 {
		t.Fatalf("unexpected kernels: %d consumed, %d produced",
			len(combined.KernelsIn), len(combined.KernelsOut))
	}
	if combined.KernelsOut[0].Cmp(b.KernelsOut[0]) != 0 {
		t.Fatal("wrong kernel survived")
	}
	for i := 1; i < len(combined.Outputs); i++ {
		if combined.Outputs[i-1].Cmp(combined.Outputs[i]) >= 0 {
			t.Fatal("combined outputs are not sorted")
		}
	}

	// Dump reproduces the combined vectors.
	var dumped TxVectors
	if err := Dump(&dumped, combined.Reader()); err != nil {
		t.Fatalf("unable to dump: %v", err)
	}
	if dumped.Cmp(&combined) != 0 {
		t.Fatal("dumped vectors differ")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var aborted TxVectors
	err := Combine(ctx, &aborted, a.Reader(), b.Reader())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("unexpected error: got %v, want %v", err, ErrAborted)
	}
}

// TestVectorsCmp ensures vectors order by stream length first.
func TestVectorsCmp(t *testing.T) {
	t.Parallel()

	a := makeTx(t, []uint64{10}, []uint64{9}, 1, FullHeightRange())
	b := makeTx(t, []uint64{10}, []uint64{5, 4}, 1, FullHeightRange())
	if a.TxVectors.Cmp(&b.TxVectors) >= 0 {
		t.Fatal("vectors with fewer outputs do not sort first")
	}
	if a.Cmp(a) != 0 {
		t.Fatal("transaction differs from itself")
	}
}

// TestTransactionKey ensures the key is the offset when present and is
// otherwise derived from the commitments.
func TestTransactionKey(t *testing.T) {
	t.Parallel()

	tx := makeTx(t, []uint64{10}, []uint64{9}, 1, FullHeightRange())
	if tx.Key() != chainhash.Hash(tx.Offset) {
		t.Fatal("key is not the offset")
	}

	tx.Offset = ecc.Scalar{}
	var want chainhash.Hash
	for i := range want {
		want[i] = tx.Inputs[0].Commitment.X[i] ^
			tx.Outputs[0].Commitment.X[i] ^
			tx.KernelsOut[0].Excess.X[i]
	}
	if tx.Key() != want {
		t.Fatalf("got key %v, want %v", tx.Key(), want)
	}
}
