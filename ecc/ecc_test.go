// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"encoding/hex"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// hexToBytes converts the passed hex string into bytes and will panic if
// there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected.  It will only (and must only) be
// called with hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// TestPointRoundTrip ensures points survive export and import and that the
// point at infinity is represented by the zero value.
func TestPointRoundTrip(t *testing.T) {
	t.Parallel()

	var inf NativePoint
	if got := inf.Export(); !got.IsZero() {
		t.Fatalf("infinity exported as %v", got)
	}
	var imported NativePoint
	if !imported.Import(&Point{}) || !imported.IsZero() {
		t.Fatal("zero point did not import as infinity")
	}

	for i := 0; i < 16; i++ {
		k := RandomScalar()
		p := MulG(&k)
		ser := p.Export()
		var back NativePoint
		if !back.Import(&ser) {
			t.Fatalf("#%d: unable to import %v", i, ser)
		}
		if !back.Equals(&p) {
			t.Fatalf("#%d: round trip mismatch", i)
		}
		if again := back.Export(); again != ser {
			t.Fatalf("#%d: re-export mismatch: %v != %v", i, again, ser)
		}
	}
}

// TestPointImportInvalid ensures malformed serialized points are rejected.
func TestPointImportInvalid(t *testing.T) {
	t.Parallel()

	var overflowX Point
	copy(overflowX.X[:], hexToBytes("ffffffffffffffffffffffffffffffff"+
		"fffffffffffffffffffffffefffffc30"))

	g := G()
	badParity := g.Export()
	badParity.Y = 2

	tests := []struct {
		name string
		pt   Point
	}{
		{name: "x not in field", pt: overflowX},
		{name: "parity out of range", pt: badParity},
	}
	for _, test := range tests {
		var n NativePoint
		if n.Import(&test.pt) {
			t.Errorf("%s: import unexpectedly succeeded", test.name)
		}
	}

	// Find an X coordinate with no matching curve point.
	found := false
	for b := byte(1); b < 64 && !found; b++ {
		var pt Point
		pt.X[31] = b
		var n NativePoint
		if !n.Import(&pt) {
			found = true
		}
	}
	if !found {
		t.Fatal("no off-curve x coordinate found")
	}
}

// TestPointArithmetic exercises the group laws relied upon by balance
// checks.
func TestPointArithmetic(t *testing.T) {
	t.Parallel()

	a, b := RandomScalar(), RandomScalar()
	pa, pb := MulG(&a), MulG(&b)

	var sum ModNScalar
	sum.Add2(&a, &b)
	want := MulG(&sum)

	var got NativePoint
	got.Add(&pa, &pb)
	if !got.Equals(&want) {
		t.Fatal("a*G + b*G != (a+b)*G")
	}

	// Aliased receiver.
	got.Set(&pa)
	got.Add(&got, &got)
	two := ScalarFromUint64(2)
	var dbl NativePoint
	dbl.Mul(&pa, &two)
	if !got.Equals(&dbl) {
		t.Fatal("P + P != 2*P")
	}

	var neg NativePoint
	neg.Negate(&pa)
	got.Add(&pa, &neg)
	if !got.IsZero() {
		t.Fatal("P + -P is not infinity")
	}
	if exp := got.Export(); !exp.IsZero() {
		t.Fatalf("infinity exported as %v", exp)
	}
}

// TestCommitHomomorphic ensures commitments add component-wise.
func TestCommitHomomorphic(t *testing.T) {
	t.Parallel()

	k1, k2 := RandomScalar(), RandomScalar()
	c1, c2 := Commit(&k1, 100), Commit(&k2, 250)
	var sum NativePoint
	sum.Add(&c1, &c2)

	var k ModNScalar
	k.Add2(&k1, &k2)
	want := Commit(&k, 350)
	if !sum.Equals(&want) {
		t.Fatal("commitments are not additively homomorphic")
	}

	g, h := G(), H()
	if g.Equals(&h) {
		t.Fatal("G and H coincide")
	}
	if Checksum() != Checksum() {
		t.Fatal("generator checksum is not stable")
	}
}

// TestSignature ensures signatures verify for the signing key and message
// and fail otherwise.
func TestSignature(t *testing.T) {
	t.Parallel()

	sk := RandomScalar()
	pk := MulG(&sk)
	msg := chainhash.HashH([]byte("kernel"))

	var sig Signature
	sig.Sign(&msg, &sk)
	if !sig.IsValid(&msg, &pk) {
		t.Fatalf("valid signature rejected: %s", spew.Sdump(sig))
	}

	other := chainhash.HashH([]byte("other"))
	if sig.IsValid(&other, &pk) {
		t.Fatal("signature verified for a different message")
	}
	otherKey := RandomScalar()
	otherPK := MulG(&otherKey)
	if sig.IsValid(&msg, &otherPK) {
		t.Fatal("signature verified for a different key")
	}

	tampered := sig
	tampered.K[31] ^= 1
	if tampered.IsValid(&msg, &pk) {
		t.Fatal("tampered signature verified")
	}

	var again Signature
	again.Sign(&msg, &sk)
	if again.Cmp(&sig) != 0 {
		t.Fatal("signing is not deterministic")
	}
}

// TestPublicProof ensures public proofs bind the value and the oracle
// context.
func TestPublicProof(t *testing.T) {
	t.Parallel()

	sk := RandomScalar()
	const value = 5000
	comm := Commit(&sk, value)

	mkOracle := func(incubation uint64) *Oracle {
		o := NewOracle()
		o.WriteUint64(incubation)
		return o
	}

	proof := NewPublicProof(&sk, value, mkOracle(0))
	if !proof.IsValid(&comm, mkOracle(0)) {
		t.Fatal("valid public proof rejected")
	}
	if proof.IsValid(&comm, mkOracle(1)) {
		t.Fatal("public proof replayed under a different context")
	}

	wrong := *proof
	wrong.Value++
	if wrong.IsValid(&comm, mkOracle(0)) {
		t.Fatal("public proof accepted with altered value")
	}

	zero := NewPublicProof(&sk, 0, mkOracle(0))
	zc := Commit(&sk, 0)
	if zero.IsValid(&zc, mkOracle(0)) {
		t.Fatal("public proof of zero value accepted")
	}
}

// TestConfidentialProof ensures confidential proofs verify for the
// commitment they were created for and nothing else.
func TestConfidentialProof(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value uint64
	}{
		{name: "zero", value: 0},
		{name: "small", value: 12345},
		{name: "max", value: ^uint64(0)},
	}
	for _, test := range tests {
		sk := RandomScalar()
		comm := Commit(&sk, test.value)
		proof := NewConfidentialProof(&sk, test.value, NewOracle())
		if !proof.IsValid(&comm, NewOracle()) {
			t.Errorf("%s: valid proof rejected", test.name)
			continue
		}
		other := Commit(&sk, test.value+1)
		if proof.IsValid(&other, NewOracle()) {
			t.Errorf("%s: proof accepted for another commitment", test.name)
		}
		o := NewOracle()
		o.WriteUint64(1)
		if proof.IsValid(&comm, o) {
			t.Errorf("%s: proof accepted under another context", test.name)
		}
		bad := *proof
		bad.Bits[3].S1[31] ^= 1
		if bad.IsValid(&comm, NewOracle()) {
			t.Errorf("%s: tampered proof accepted", test.name)
		}
	}
}

// TestCmpRangeProof ensures range proofs order by variant before payload.
func TestCmpRangeProof(t *testing.T) {
	t.Parallel()

	sk := RandomScalar()
	pub := NewPublicProof(&sk, 1, NewOracle())
	conf := NewConfidentialProof(&sk, 1, NewOracle())

	tests := []struct {
		name string
		a, b RangeProof
		want int
	}{
		{name: "nil nil", a: nil, b: nil, want: 0},
		{name: "nil first", a: nil, b: pub, want: -1},
		{name: "public before confidential", a: pub, b: conf, want: -1},
		{name: "confidential after public", a: conf, b: pub, want: 1},
		{name: "same public", a: pub, b: pub, want: 0},
		{name: "same confidential", a: conf, b: conf, want: 0},
	}
	for _, test := range tests {
		if got := CmpRangeProof(test.a, test.b); got != test.want {
			t.Errorf("%s: got %d, want %d", test.name, got, test.want)
		}
	}
}

// TestOracle ensures oracle output is deterministic and chained.
func TestOracle(t *testing.T) {
	t.Parallel()

	o1, o2 := NewOracle(), NewOracle()
	o1.WriteUint64(7)
	o2.WriteUint64(7)
	a1, a2 := o1.NextHash(), o2.NextHash()
	if a1 != a2 {
		t.Fatal("identical oracles diverged")
	}
	if b := o1.NextHash(); b == a1 {
		t.Fatal("consecutive oracle outputs are equal")
	}
}
