// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Signature is a Schnorr signature over the group.  The challenge is derived
// from the nonce commitment and the message by an oracle, and the response
// satisfies K*G + e*P = NoncePub for the signer's public point P.
type Signature struct {
	NoncePub Point
	K        Scalar
}

func signatureChallenge(noncePub *Point, msg *chainhash.Hash) ModNScalar {
	o := NewOracle()
	o.WritePoint(noncePub).WriteHash(msg)
	return o.NextScalar()
}

// Sign produces a signature of msg under sk.  The nonce is derived
// deterministically from the key and message.
func (s *Signature) Sign(msg *chainhash.Hash, sk *ModNScalar) {
	skBytes := sk.Bytes()
	nonce := secp256k1.NonceRFC6979(skBytes[:], msg[:], nil, nil, 0)
	s.signWithNonce(msg, sk, nonce)
	nonce.Zero()
}

func (s *Signature) signWithNonce(msg *chainhash.Hash, sk, nonce *ModNScalar) {
	r := MulG(nonce)
	s.NoncePub = r.Export()
	e := signatureChallenge(&s.NoncePub, msg)

	var k ModNScalar
	k.Mul2(&e, sk).Negate().Add(nonce)
	s.K = NewScalar(&k)
}

// IsValid returns whether the signature verifies for msg under pk.
func (s *Signature) IsValid(msg *chainhash.Hash, pk *NativePoint) bool {
	var k ModNScalar
	if !s.K.Import(&k) {
		return false
	}
	var r NativePoint
	if !r.Import(&s.NoncePub) || r.IsZero() {
		return false
	}
	e := signatureChallenge(&s.NoncePub, msg)

	lhs := MulG(&k)
	var epk NativePoint
	epk.Mul(pk, &e)
	lhs.AddAssign(&epk)
	return lhs.Equals(&r)
}

// Cmp orders signatures by nonce commitment and then by response.
func (s *Signature) Cmp(o *Signature) int {
	if c := s.NoncePub.Cmp(&o.NoncePub); c != 0 {
		return c
	}
	return s.K.Cmp(&o.K)
}
