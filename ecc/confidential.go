// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// ConfidentialBits is the number of value bits covered by a confidential
// proof.  Every uint64 value is provable.
const ConfidentialBits = 64

// BitProof proves that C commits to either 0 or 2^i with respect to H.  It is
// a two-branch Schnorr OR-proof: exactly one of the branches is real and the
// other is simulated, and the branch challenges must sum to the
// Fiat-Shamir challenge.
type BitProof struct {
	C  Point
	E0 Scalar
	S0 Scalar
	E1 Scalar
	S1 Scalar
}

// ConfidentialProof proves that a commitment hides a value in [0, 2^64)
// without disclosing it.  The commitment is decomposed into one commitment
// per bit; the bit commitments must sum to the output commitment.
type ConfidentialProof struct {
	Bits [ConfidentialBits]BitProof
}

// Kind returns RangeProofConfidential.
func (p *ConfidentialProof) Kind() RangeProofKind { return RangeProofConfidential }

func (p *ConfidentialProof) rangeProof() {}

func bitChallenge(seed *chainhash.Hash, i int, c, r0, r1 *Point) ModNScalar {
	o := NewOracle()
	o.WriteHash(seed).WriteUint32(uint32(i)).WritePoint(c).WritePoint(r0).WritePoint(r1)
	return o.NextScalar()
}

// bitBase returns 2^i * H.
func bitBase(i int) NativePoint {
	return MulH(uint64(1) << uint(i))
}

// branchNonce returns s*G + e*P.
func branchNonce(s, e *ModNScalar, p *NativePoint) NativePoint {
	r := MulG(s)
	var ep NativePoint
	ep.Mul(p, e)
	r.AddAssign(&ep)
	return r
}

func confidentialSeed(comm *NativePoint, o *Oracle) chainhash.Hash {
	c := comm.Export()
	o.WritePoint(&c)
	return o.NextHash()
}

// NewConfidentialProof creates a confidential proof for the commitment
// sk*G + value*H.
func NewConfidentialProof(sk *ModNScalar, value uint64, o *Oracle) *ConfidentialProof {
	comm := Commit(sk, value)
	seed := confidentialSeed(&comm, o)

	// Bit blindings are random except the last which makes the sum equal
	// to sk.
	var blinds [ConfidentialBits]ModNScalar
	var sum ModNScalar
	for i := 0; i < ConfidentialBits-1; i++ {
		blinds[i] = RandomScalar()
		sum.Add(&blinds[i])
	}
	blinds[ConfidentialBits-1].NegateVal(&sum).Add(sk)

	p := new(ConfidentialProof)
	for i := 0; i < ConfidentialBits; i++ {
		bit := (value >> uint(i)) & 1
		r := &blinds[i]

		c := MulG(r)
		base := bitBase(i)
		if bit == 1 {
			c.AddAssign(&base)
		}
		var negBase, p1 NativePoint
		negBase.Negate(&base)
		p1.Add(&c, &negBase)
		branches := [2]NativePoint{c, p1}

		a := RandomScalar()
		eSim, sSim := RandomScalar(), RandomScalar()
		var nonces [2]Point
		realNonce := MulG(&a)
		nonces[bit] = realNonce.Export()
		simNonce := branchNonce(&sSim, &eSim, &branches[1-bit])
		nonces[1-bit] = simNonce.Export()

		bp := &p.Bits[i]
		bp.C = c.Export()
		e := bitChallenge(&seed, i, &bp.C, &nonces[0], &nonces[1])

		var eReal, sReal ModNScalar
		eReal.NegateVal(&eSim).Add(&e)
		sReal.Mul2(&eReal, r).Negate().Add(&a)

		if bit == 0 {
			bp.E0, bp.S0 = NewScalar(&eReal), NewScalar(&sReal)
			bp.E1, bp.S1 = NewScalar(&eSim), NewScalar(&sSim)
		} else {
			bp.E0, bp.S0 = NewScalar(&eSim), NewScalar(&sSim)
			bp.E1, bp.S1 = NewScalar(&eReal), NewScalar(&sReal)
		}
		a.Zero()
	}
	for i := range blinds {
		blinds[i].Zero()
	}
	return p
}

// IsValid returns whether the proof holds for comm.
func (p *ConfidentialProof) IsValid(comm *NativePoint, o *Oracle) bool {
	seed := confidentialSeed(comm, o)

	var total NativePoint
	for i := 0; i < ConfidentialBits; i++ {
		bp := &p.Bits[i]
		var c NativePoint
		if !c.Import(&bp.C) {
			return false
		}
		var e0, s0, e1, s1 ModNScalar
		if !bp.E0.Import(&e0) || !bp.S0.Import(&s0) ||
			!bp.E1.Import(&e1) || !bp.S1.Import(&s1) {
			return false
		}

		base := bitBase(i)
		var negBase, p1 NativePoint
		negBase.Negate(&base)
		p1.Add(&c, &negBase)

		r0 := branchNonce(&s0, &e0, &c)
		r1 := branchNonce(&s1, &e1, &p1)
		r0s, r1s := r0.Export(), r1.Export()
		e := bitChallenge(&seed, i, &bp.C, &r0s, &r1s)

		var esum ModNScalar
		esum.Add2(&e0, &e1)
		if !esum.Equals(&e) {
			return false
		}
		total.AddAssign(&c)
	}
	return total.Equals(comm)
}

// Cmp orders confidential proofs by their bit proofs, lowest bit first.
func (p *ConfidentialProof) Cmp(o *ConfidentialProof) int {
	for i := range p.Bits {
		a, b := &p.Bits[i], &o.Bits[i]
		if c := a.C.Cmp(&b.C); c != 0 {
			return c
		}
		for _, pair := range [4][2]*Scalar{{&a.E0, &b.E0}, {&a.S0, &b.S0},
			{&a.E1, &b.E1}, {&a.S1, &b.S1}} {

			if c := pair[0].Cmp(pair[1]); c != 0 {
				return c
			}
		}
	}
	return 0
}
