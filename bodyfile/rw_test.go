// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bodyfile

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/blockchain"
	"github.com/mwledger/mwd/blockchain/chainwork"
	"github.com/mwledger/mwd/chaincfg"
	"github.com/mwledger/mwd/ecc"
	"github.com/mwledger/mwd/pow"
)

// makeBody returns a sorted body of a single block minting the full
// emission of the rules into three coinbase outputs.
func makeBody(t *testing.T, rules *chaincfg.Rules) *blockchain.Body {
	t.Helper()

	em := rules.CoinbaseEmission
	var body blockchain.Body
	var keys ecc.ModNScalar
	for _, v := range []uint64{em / 4, em / 4, em - em/2} {
		sk := ecc.RandomScalar()
		out := &blockchain.Output{Coinbase: true}
		out.Create(&sk, v, true)
		body.Outputs = append(body.Outputs, out)
		keys.Add(&sk)
	}

	x := ecc.RandomScalar()
	k := &blockchain.TxKernel{Height: blockchain.FullHeightRange()}
	if err := k.Sign(&x); err != nil {
		t.Fatalf("unable to sign kernel: %v", err)
	}
	body.KernelsOut = append(body.KernelsOut, k)
	keys.Add(&x)
	keys.Negate()

	body.Offset = ecc.NewScalar(&keys)
	body.Subsidy.AddAmount(em)
	body.Sort()
	return &body
}

// writeBody stores the body and the headers in files at path.
func writeBody(t *testing.T, path string, rules *chaincfg.Rules, body *blockchain.Body, states []*blockchain.SystemState) {
	t.Helper()

	w, err := Create(path, rules)
	if err != nil {
		t.Fatalf("unable to create body: %v", err)
	}
	if err := blockchain.Dump(w, body.Reader()); err != nil {
		t.Fatalf("unable to write elements: %v", err)
	}
	var prefix blockchain.HeaderPrefix
	if len(states) > 0 {
		prefix = states[0].HeaderPrefix
	}
	if err := w.PutStart(&body.BodyBase, &prefix); err != nil {
		t.Fatalf("unable to write start: %v", err)
	}
	for _, s := range states {
		if err := w.PutNextHdr(&s.HeaderElement); err != nil {
			t.Fatalf("unable to write header: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unable to close body: %v", err)
	}
}

// makeStates returns a chain of n headers.
func makeStates(t *testing.T, rules *chaincfg.Rules, n int) []*blockchain.SystemState {
	t.Helper()

	src := chainwork.NewMemSource()
	states := make([]*blockchain.SystemState, 0, n)
	for i := 0; i < n; i++ {
		live := chainhash.Hash{byte(i), 0xbf}
		s, err := src.Generate(context.Background(), rules,
			pow.Pack(uint32(1+i%3), uint32(i)*31), uint64(1700000000+i*60),
			&live)
		if err != nil {
			t.Fatalf("unable to generate header %d: %v", i, err)
		}
		states = append(states, s)
	}
	return states
}

// TestRoundTrip ensures a body read back from files matches the one written
// and validates both serially and in parallel shards over clones.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	rules := chaincfg.SimNetRules()
	body := makeBody(t, rules)
	states := makeStates(t, rules, 1)
	path := filepath.Join(t.TempDir(), "body")
	writeBody(t, path, rules, body, states)

	rw, err := Open(path, rules)
	if err != nil {
		t.Fatalf("unable to open body: %v", err)
	}
	defer rw.Close()

	var got blockchain.TxVectors
	if err := blockchain.Dump(&got, rw); err != nil {
		t.Fatalf("unable to read elements: %v", err)
	}
	if got.Cmp(&body.TxVectors) != 0 {
		t.Fatalf("mismatched elements:\ngot %v\nwant %v", spew.Sdump(got),
			spew.Sdump(body.TxVectors))
	}

	var bb blockchain.BodyBase
	var prefix blockchain.HeaderPrefix
	if err := rw.Start(&bb, &prefix); err != nil {
		t.Fatalf("unable to read start: %v", err)
	}
	if !reflect.DeepEqual(bb, body.BodyBase) {
		t.Fatalf("mismatched body base: got %v, want %v", spew.Sdump(bb),
			spew.Sdump(body.BodyBase))
	}
	if prefix != states[0].HeaderPrefix {
		t.Fatalf("mismatched prefix: got %v, want %v", spew.Sdump(prefix),
			spew.Sdump(states[0].HeaderPrefix))
	}

	ctx := context.Background()
	hr := blockchain.HeightRange{Min: prefix.Height, Max: prefix.Height}
	if err := bb.IsValid(ctx, rules, hr, false, rw); err != nil {
		t.Fatalf("body from files rejected: %v", err)
	}
	for _, shards := range []uint32{2, 3, 5} {
		err := bb.IsValidParallel(ctx, rules, hr, false, rw, shards)
		if err != nil {
			t.Fatalf("body from files rejected by %d shards: %v", shards, err)
		}
	}

	// Invalidate the body by tampering with the subsidy.
	bb.Subsidy.AddAmount(1)
	if err := bb.IsValid(ctx, rules, hr, false, rw); !blockchain.IsRuleError(err) {
		t.Fatalf("tampered body not rejected: %v", err)
	}
}

// TestRulesMismatch ensures bodies are rejected under other rules before
// anything else is parsed.
func TestRulesMismatch(t *testing.T) {
	t.Parallel()

	rules := chaincfg.SimNetRules()
	path := filepath.Join(t.TempDir(), "body")
	writeBody(t, path, rules, makeBody(t, rules), nil)

	rw, err := Open(path, chaincfg.MainNetRules())
	if !errors.Is(err, ErrRulesMismatch) {
		t.Fatalf("unexpected error: got %v, want %v", err, ErrRulesMismatch)
	}
	if rw != nil {
		t.Fatalf("body opened under other rules: first output %v",
			spew.Sdump(rw.UtxoOut()))
	}
	var fileErr Error
	if !errors.As(err, &fileErr) {
		t.Fatalf("error %v is not an Error", err)
	}

	// The same body opens under the rules it was produced with, and Start
	// checks the rules again.
	rw, err = Open(path, rules)
	if err != nil {
		t.Fatalf("unable to open body: %v", err)
	}
	defer rw.Close()
	rw.rules = chaincfg.TestNetRules()
	var bb blockchain.BodyBase
	var prefix blockchain.HeaderPrefix
	if err := rw.Start(&bb, &prefix); !errors.Is(err, ErrRulesMismatch) {
		t.Fatalf("unexpected error: got %v, want %v", err, ErrRulesMismatch)
	}
}

// TestMissingChecksum ensures a body without a rules checksum is not
// opened.
func TestMissingChecksum(t *testing.T) {
	t.Parallel()

	rules := chaincfg.SimNetRules()
	path := filepath.Join(t.TempDir(), "body")
	w, err := Create(path, rules)
	if err != nil {
		t.Fatalf("unable to create body: %v", err)
	}
	if err := w.WriteOut(makeBody(t, rules).Outputs[0]); err != nil {
		t.Fatalf("unable to write output: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unable to close body: %v", err)
	}

	if _, err := Open(path, rules); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("unexpected error: got %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

// TestAccessMode ensures bodies are only written when created and only read
// when opened.
func TestAccessMode(t *testing.T) {
	t.Parallel()

	rules := chaincfg.SimNetRules()
	body := makeBody(t, rules)
	path := filepath.Join(t.TempDir(), "body")

	w, err := Create(path, rules)
	if err != nil {
		t.Fatalf("unable to create body: %v", err)
	}
	var bb blockchain.BodyBase
	var prefix blockchain.HeaderPrefix
	if err := w.Start(&bb, &prefix); !errors.Is(err, ErrNotReadable) {
		t.Fatalf("unexpected error: got %v, want %v", err, ErrNotReadable)
	}
	if _, err := w.Clone(); !errors.Is(err, ErrNotReadable) {
		t.Fatalf("unexpected error: got %v, want %v", err, ErrNotReadable)
	}
	w.Reset()
	if err := w.Err(); !errors.Is(err, ErrNotReadable) {
		t.Fatalf("unexpected error: got %v, want %v", err, ErrNotReadable)
	}
	if err := w.PutStart(&bb, &prefix); err != nil {
		t.Fatalf("unable to write start: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unable to close body: %v", err)
	}

	r, err := Open(path, rules)
	if err != nil {
		t.Fatalf("unable to open body: %v", err)
	}
	defer r.Close()
	if r.UtxoOut() != nil || r.KernelOut() != nil {
		t.Fatal("empty body has elements")
	}
	if err := r.WriteOut(body.Outputs[0]); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("unexpected error: got %v, want %v", err, ErrNotWritable)
	}
	if err := r.PutNextHdr(&blockchain.HeaderElement{}); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("unexpected error: got %v, want %v", err, ErrNotWritable)
	}
}

// TestTruncated ensures a truncated element is reported through Err rather
// than as the end of the stream.
func TestTruncated(t *testing.T) {
	t.Parallel()

	rules := chaincfg.SimNetRules()
	body := makeBody(t, rules)
	path := filepath.Join(t.TempDir(), "body")
	writeBody(t, path, rules, body, nil)

	name := Paths(path)[streamUtxoOut]
	fi, err := os.Stat(name)
	if err != nil {
		t.Fatalf("unable to stat outputs: %v", err)
	}
	if err := os.Truncate(name, fi.Size()-1); err != nil {
		t.Fatalf("unable to truncate outputs: %v", err)
	}

	rw, err := Open(path, rules)
	if err != nil {
		t.Fatalf("unable to open body: %v", err)
	}
	defer rw.Close()

	var got blockchain.TxVectors
	err = blockchain.Dump(&got, rw)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("unexpected error: got %v, want %v", err, io.ErrUnexpectedEOF)
	}
	if len(got.Outputs) != len(body.Outputs)-1 {
		t.Fatalf("unexpected number of outputs: got %d, want %d",
			len(got.Outputs), len(body.Outputs)-1)
	}

	// Validation reports the read error instead of a rule violation.
	var bb blockchain.BodyBase
	var prefix blockchain.HeaderPrefix
	if err := rw.Start(&bb, &prefix); err != nil {
		t.Fatalf("unable to read start: %v", err)
	}
	err = bb.IsValid(context.Background(), rules, blockchain.HeightRange{Min: 1, Max: 1}, false, rw)
	if !errors.Is(err, io.ErrUnexpectedEOF) || blockchain.IsRuleError(err) {
		t.Fatalf("unexpected error: got %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

// TestDelete ensures every file of a body is removed.
func TestDelete(t *testing.T) {
	t.Parallel()

	rules := chaincfg.SimNetRules()
	path := filepath.Join(t.TempDir(), "body")
	writeBody(t, path, rules, makeBody(t, rules), nil)

	rw, err := Open(path, rules)
	if err != nil {
		t.Fatalf("unable to open body: %v", err)
	}
	if err := rw.Delete(); err != nil {
		t.Fatalf("unable to delete body: %v", err)
	}
	for _, name := range Paths(path) {
		if _, err := os.Stat(name); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("file %s still exists: %v", name, err)
		}
	}
	if _, err := Open(path, rules); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("unexpected error: got %v, want %v", err, os.ErrNotExist)
	}
}

// TestCombineHeaders ensures adjacent header ranges are joined and gaps are
// rejected.
func TestCombineHeaders(t *testing.T) {
	t.Parallel()

	rules := chaincfg.SimNetRules()
	states := makeStates(t, rules, 7)
	dir := t.TempDir()
	var empty blockchain.Body

	open := func(name string, states []*blockchain.SystemState) *RW {
		t.Helper()
		path := filepath.Join(dir, name)
		writeBody(t, path, rules, &empty, states)
		rw, err := Open(path, rules)
		if err != nil {
			t.Fatalf("unable to open %s: %v", name, err)
		}
		t.Cleanup(func() { rw.Close() })
		return rw
	}

	tests := []struct {
		name   string
		first  []*blockchain.SystemState
		second []*blockchain.SystemState
		want   error
	}{{
		name:   "adjacent",
		first:  states[:3],
		second: states[3:],
	}, {
		name:   "empty second",
		first:  states,
		second: nil,
	}, {
		name:   "single headers",
		first:  states[:1],
		second: states[1:2],
	}, {
		name:   "gap",
		first:  states[:3],
		second: states[4:],
		want:   ErrHeaderGap,
	}, {
		name:   "overlap",
		first:  states[:3],
		second: states[2:],
		want:   ErrHeaderGap,
	}}

	ctx := context.Background()
	for i, test := range tests {
		r0 := open(test.name+"0", test.first)
		r1 := open(test.name+"1", test.second)
		outPath := filepath.Join(dir, test.name+"out")
		w, err := Create(outPath, rules)
		if err != nil {
			t.Fatalf("%q: unable to create body: %v", test.name, err)
		}
		err = CombineHeaders(ctx, w, r0, r1)
		if cerr := w.Close(); cerr != nil {
			t.Fatalf("%q: unable to close body: %v", test.name, cerr)
		}
		if !errors.Is(err, test.want) {
			t.Errorf("%q: unexpected error: got %v, want %v", test.name,
				err, test.want)
			continue
		}
		if test.want != nil {
			continue
		}

		out, err := Open(outPath, rules)
		if err != nil {
			t.Fatalf("%q: unable to open combined body: %v", test.name, err)
		}
		want := append(append([]*blockchain.SystemState{}, test.first...),
			test.second...)
		var n int
		last, err := out.ForEachState(ctx, func(s *blockchain.SystemState) error {
			if n >= len(want) || s.Hash() != want[n].Hash() {
				t.Errorf("%q: mismatched header %d", test.name, n)
			}
			n++
			return nil
		})
		out.Close()
		if err != nil {
			t.Fatalf("%q: unable to read combined headers: %v", test.name, err)
		}
		if n != len(want) {
			t.Errorf("%q: unexpected number of headers: got %d, want %d",
				test.name, n, len(want))
		}
		if last == nil || last.ID() != want[len(want)-1].ID() {
			t.Errorf("test #%d (%q): unexpected last header %v", i,
				test.name, spew.Sdump(last))
		}
	}
}

// TestCombineHeadersAborted ensures combining stops when its context is
// cancelled.
func TestCombineHeadersAborted(t *testing.T) {
	t.Parallel()

	rules := chaincfg.SimNetRules()
	states := makeStates(t, rules, 2)
	dir := t.TempDir()
	var empty blockchain.Body
	writeBody(t, filepath.Join(dir, "a"), rules, &empty, states[:1])
	writeBody(t, filepath.Join(dir, "b"), rules, &empty, states[1:])

	r0, err := Open(filepath.Join(dir, "a"), rules)
	if err != nil {
		t.Fatalf("unable to open body: %v", err)
	}
	defer r0.Close()
	r1, err := Open(filepath.Join(dir, "b"), rules)
	if err != nil {
		t.Fatalf("unable to open body: %v", err)
	}
	defer r1.Close()
	w, err := Create(filepath.Join(dir, "c"), rules)
	if err != nil {
		t.Fatalf("unable to create body: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = CombineHeaders(ctx, w, r0, r1)
	if !errors.Is(err, blockchain.ErrAborted) || !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error: got %v, want %v", err, blockchain.ErrAborted)
	}
}
