// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// RangeProofKind identifies the variant of a range proof.
type RangeProofKind uint8

// These constants define the supported range proof variants.  The numeric
// values are part of the serialized format and define the ordering of
// proofs of different kinds.
const (
	RangeProofPublic       RangeProofKind = 1
	RangeProofConfidential RangeProofKind = 2
)

// String returns the kind as a human-readable name.
func (k RangeProofKind) String() string {
	switch k {
	case RangeProofPublic:
		return "public"
	case RangeProofConfidential:
		return "confidential"
	}
	return "unknown"
}

// RangeProof proves that the value hidden in a commitment lies in the valid
// range.  The set of implementations is closed: *PublicProof and
// *ConfidentialProof.
type RangeProof interface {
	// Kind returns the variant tag of the proof.
	Kind() RangeProofKind

	// IsValid returns whether the proof holds for the commitment.  The
	// oracle must have absorbed the same context the prover used.
	IsValid(comm *NativePoint, o *Oracle) bool

	rangeProof()
}

// CmpRangeProof orders range proofs by variant and then by payload.  A nil
// proof sorts before any proof.
func CmpRangeProof(a, b RangeProof) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if ka, kb := a.Kind(), b.Kind(); ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	switch pa := a.(type) {
	case *PublicProof:
		return pa.Cmp(b.(*PublicProof))
	case *ConfidentialProof:
		return pa.Cmp(b.(*ConfidentialProof))
	}
	return 0
}

// MinimumPublicValue is the smallest value a public proof may disclose.
const MinimumPublicValue = 1

// PublicProof discloses the committed value and proves knowledge of the
// blinding factor with a signature under C - v*H.
type PublicProof struct {
	Value     uint64
	Signature Signature
}

// Kind returns RangeProofPublic.
func (p *PublicProof) Kind() RangeProofKind { return RangeProofPublic }

func (p *PublicProof) rangeProof() {}

func publicProofMsg(value uint64, o *Oracle) chainhash.Hash {
	o.WriteUint64(value)
	return o.NextHash()
}

// NewPublicProof creates a public proof for a commitment to value with
// blinding factor sk.
func NewPublicProof(sk *ModNScalar, value uint64, o *Oracle) *PublicProof {
	p := &PublicProof{Value: value}
	msg := publicProofMsg(value, o)
	p.Signature.Sign(&msg, sk)
	return p
}

// IsValid returns whether the proof holds for comm.
func (p *PublicProof) IsValid(comm *NativePoint, o *Oracle) bool {
	if p.Value < MinimumPublicValue {
		return false
	}
	vh := MulH(p.Value)
	var pk NativePoint
	pk.Negate(&vh).AddAssign(comm)

	msg := publicProofMsg(p.Value, o)
	return p.Signature.IsValid(&msg, &pk)
}

// Cmp orders public proofs by value and then by signature.
func (p *PublicProof) Cmp(o *PublicProof) int {
	switch {
	case p.Value < o.Value:
		return -1
	case p.Value > o.Value:
		return 1
	}
	return p.Signature.Cmp(&o.Signature)
}
