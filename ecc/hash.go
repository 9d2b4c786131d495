// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"encoding/binary"
	"hash"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/blake256"
)

// HashProcessor accumulates typed values into a running BLAKE-256 hash.
// Integers are always encoded big endian with their full width so that the
// encoding of a sequence of values is unambiguous.
type HashProcessor struct {
	h hash.Hash
}

// NewHashProcessor returns a hash processor with an empty state.
func NewHashProcessor() *HashProcessor {
	return &HashProcessor{h: blake256.New()}
}

// Reset discards the accumulated state.
func (p *HashProcessor) Reset() {
	p.h.Reset()
}

// WriteBytes appends raw bytes.
func (p *HashProcessor) WriteBytes(b []byte) *HashProcessor {
	p.h.Write(b)
	return p
}

// WriteUint64 appends an unsigned 64-bit integer.
func (p *HashProcessor) WriteUint64(v uint64) *HashProcessor {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	p.h.Write(buf[:])
	return p
}

// WriteUint32 appends an unsigned 32-bit integer.
func (p *HashProcessor) WriteUint32(v uint32) *HashProcessor {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	p.h.Write(buf[:])
	return p
}

// WriteBool appends a boolean as a single byte.
func (p *HashProcessor) WriteBool(v bool) *HashProcessor {
	b := []byte{0}
	if v {
		b[0] = 1
	}
	p.h.Write(b)
	return p
}

// WriteHash appends a hash value.
func (p *HashProcessor) WriteHash(v *chainhash.Hash) *HashProcessor {
	p.h.Write(v[:])
	return p
}

// WritePoint appends the serialized form of a point.
func (p *HashProcessor) WritePoint(pt *Point) *HashProcessor {
	p.h.Write(pt.X[:])
	p.h.Write([]byte{pt.Y})
	return p
}

// WriteScalar appends a serialized scalar.
func (p *HashProcessor) WriteScalar(s *Scalar) *HashProcessor {
	p.h.Write(s[:])
	return p
}

// Sum finalizes the hash and resets the processor so it may be reused.
func (p *HashProcessor) Sum() chainhash.Hash {
	var out chainhash.Hash
	copy(out[:], p.h.Sum(nil))
	p.h.Reset()
	return out
}

// Oracle is a public-coin random oracle.  Values written to it are absorbed
// into its state, and every output is fed back into the state so consecutive
// outputs are distinct and depend on everything written so far.
//
// Two oracles that absorbed identical values produce identical output
// sequences, which is what makes the Fiat-Shamir transforms in this module
// and the chain-work sampler reproducible by a verifier.
type Oracle struct {
	HashProcessor
}

// NewOracle returns an oracle with an empty state.
func NewOracle() *Oracle {
	return &Oracle{HashProcessor: HashProcessor{h: blake256.New()}}
}

// NextHash squeezes the next 32-byte output from the oracle.
func (o *Oracle) NextHash() chainhash.Hash {
	var out chainhash.Hash
	copy(out[:], o.h.Sum(nil))
	o.h.Write(out[:])
	return out
}

// NextScalar squeezes outputs until one is a canonical scalar and returns it.
func (o *Oracle) NextScalar() ModNScalar {
	for {
		hv := o.NextHash()
		var s ModNScalar
		if overflow := s.SetBytes((*[32]byte)(&hv)); overflow == 0 {
			return s
		}
	}
}
