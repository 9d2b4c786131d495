// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/decred/dcrd/wire"
	"github.com/mwledger/mwd/ecc"
	"github.com/mwledger/mwd/pow"
)

// ProtocolVersion is the encoding version passed to the variable length
// integer helpers.
const ProtocolVersion uint32 = 1

// maxNestedPerKernel bounds the nested kernel count read from a stream.
const maxNestedPerKernel = 1024

// Range proof tags on the wire.
const (
	proofTagNone         = 0
	proofTagPublic       = byte(ecc.RangeProofPublic)
	proofTagConfidential = byte(ecc.RangeProofConfidential)
)

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedElement, fmt.Sprintf(format, args...))
}

func writeBool(w io.Writer, v bool) error {
	b := [1]byte{}
	if v {
		b[0] = 1
	}
	_, err := w.Write(b[:])
	return err
}

func readBool(r io.Reader) (bool, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, malformed("boolean byte %#x", b[0])
}

func writePoint(w io.Writer, p *ecc.Point) error {
	if _, err := w.Write(p.X[:]); err != nil {
		return err
	}
	_, err := w.Write([]byte{p.Y})
	return err
}

func readPoint(r io.Reader, p *ecc.Point) error {
	if _, err := io.ReadFull(r, p.X[:]); err != nil {
		return err
	}
	var y [1]byte
	if _, err := io.ReadFull(r, y[:]); err != nil {
		return err
	}
	p.Y = y[0]
	return nil
}

func writeSignature(w io.Writer, s *ecc.Signature) error {
	if err := writePoint(w, &s.NoncePub); err != nil {
		return err
	}
	_, err := w.Write(s.K[:])
	return err
}

func readSignature(r io.Reader, s *ecc.Signature) error {
	if err := readPoint(r, &s.NoncePub); err != nil {
		return err
	}
	_, err := io.ReadFull(r, s.K[:])
	return err
}

// Serialize encodes the input to w.
func (in *Input) Serialize(w io.Writer) error {
	if err := writePoint(w, &in.Commitment); err != nil {
		return err
	}
	return wire.WriteVarInt(w, ProtocolVersion, in.Maturity)
}

// Deserialize decodes the input from r.
func (in *Input) Deserialize(r io.Reader) error {
	if err := readPoint(r, &in.Commitment); err != nil {
		return err
	}
	var err error
	in.Maturity, err = wire.ReadVarInt(r, ProtocolVersion)
	return err
}

func writeRangeProof(w io.Writer, p ecc.RangeProof) error {
	switch proof := p.(type) {
	case nil:
		_, err := w.Write([]byte{proofTagNone})
		return err

	case *ecc.PublicProof:
		if _, err := w.Write([]byte{proofTagPublic}); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, ProtocolVersion, proof.Value); err != nil {
			return err
		}
		return writeSignature(w, &proof.Signature)

	case *ecc.ConfidentialProof:
		if _, err := w.Write([]byte{proofTagConfidential}); err != nil {
			return err
		}
		for i := range proof.Bits {
			bp := &proof.Bits[i]
			if err := writePoint(w, &bp.C); err != nil {
				return err
			}
			for _, s := range []*ecc.Scalar{&bp.E0, &bp.S0, &bp.E1, &bp.S1} {
				if _, err := w.Write(s[:]); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported range proof %T", p)
}

func readRangeProof(r io.Reader) (ecc.RangeProof, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return nil, err
	}
	switch tag[0] {
	case proofTagNone:
		return nil, nil

	case proofTagPublic:
		proof := new(ecc.PublicProof)
		var err error
		if proof.Value, err = wire.ReadVarInt(r, ProtocolVersion); err != nil {
			return nil, err
		}
		if err := readSignature(r, &proof.Signature); err != nil {
			return nil, err
		}
		return proof, nil

	case proofTagConfidential:
		proof := new(ecc.ConfidentialProof)
		for i := range proof.Bits {
			bp := &proof.Bits[i]
			if err := readPoint(r, &bp.C); err != nil {
				return nil, err
			}
			for _, s := range []*ecc.Scalar{&bp.E0, &bp.S0, &bp.E1, &bp.S1} {
				if _, err := io.ReadFull(r, s[:]); err != nil {
					return nil, err
				}
			}
		}
		return proof, nil
	}
	return nil, malformed("range proof tag %d", tag[0])
}

// Serialize encodes the output to w.
func (out *Output) Serialize(w io.Writer) error {
	if err := writePoint(w, &out.Commitment); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, ProtocolVersion, out.Maturity); err != nil {
		return err
	}
	if err := writeBool(w, out.Coinbase); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, ProtocolVersion, out.Incubation); err != nil {
		return err
	}
	return writeRangeProof(w, out.Proof)
}

// Deserialize decodes the output from r.
func (out *Output) Deserialize(r io.Reader) error {
	if err := readPoint(r, &out.Commitment); err != nil {
		return err
	}
	var err error
	if out.Maturity, err = wire.ReadVarInt(r, ProtocolVersion); err != nil {
		return err
	}
	if out.Coinbase, err = readBool(r); err != nil {
		return err
	}
	if out.Incubation, err = wire.ReadVarInt(r, ProtocolVersion); err != nil {
		return err
	}
	out.Proof, err = readRangeProof(r)
	return err
}

// Serialize encodes the kernel and its nested kernels to w.
func (k *TxKernel) Serialize(w io.Writer) error {
	if err := writePoint(w, &k.Excess); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, ProtocolVersion, uint64(k.Multiplier)); err != nil {
		return err
	}
	if err := writeSignature(w, &k.Signature); err != nil {
		return err
	}
	for _, v := range []uint64{k.Fee, k.Height.Min, k.Height.Max} {
		if err := wire.WriteVarInt(w, ProtocolVersion, v); err != nil {
			return err
		}
	}
	if err := writeBool(w, k.HashLock != nil); err != nil {
		return err
	}
	if k.HashLock != nil {
		if _, err := w.Write(k.HashLock.Preimage[:]); err != nil {
			return err
		}
	}
	if err := wire.WriteVarInt(w, ProtocolVersion, uint64(len(k.Nested))); err != nil {
		return err
	}
	for _, nested := range k.Nested {
		if err := nested.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes the kernel and its nested kernels from r.
func (k *TxKernel) Deserialize(r io.Reader) error {
	return k.deserialize(r, 0)
}

func (k *TxKernel) deserialize(r io.Reader, depth int) error {
	if depth > MaxKernelDepth {
		return malformed("kernels nested deeper than %d", MaxKernelDepth)
	}
	if err := readPoint(r, &k.Excess); err != nil {
		return err
	}
	m, err := wire.ReadVarInt(r, ProtocolVersion)
	if err != nil {
		return err
	}
	if m > 0xffffffff {
		return malformed("kernel multiplier %d", m)
	}
	k.Multiplier = uint32(m)
	if err := readSignature(r, &k.Signature); err != nil {
		return err
	}
	for _, v := range []*uint64{&k.Fee, &k.Height.Min, &k.Height.Max} {
		if *v, err = wire.ReadVarInt(r, ProtocolVersion); err != nil {
			return err
		}
	}
	hasLock, err := readBool(r)
	if err != nil {
		return err
	}
	k.HashLock = nil
	if hasLock {
		k.HashLock = new(HashLock)
		if _, err := io.ReadFull(r, k.HashLock.Preimage[:]); err != nil {
			return err
		}
	}
	count, err := wire.ReadVarInt(r, ProtocolVersion)
	if err != nil {
		return err
	}
	if count > maxNestedPerKernel {
		return malformed("%d nested kernels exceeds the maximum %d", count,
			maxNestedPerKernel)
	}
	k.Nested = nil
	if count > 0 {
		k.Nested = make([]*TxKernel, count)
		for i := range k.Nested {
			k.Nested[i] = new(TxKernel)
			if err := k.Nested[i].deserialize(r, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Serialize encodes the body base to w.
func (bb *BodyBase) Serialize(w io.Writer) error {
	if _, err := w.Write(bb.Offset[:]); err != nil {
		return err
	}
	subsidy := bb.Subsidy.Bytes()
	if _, err := w.Write(subsidy[:]); err != nil {
		return err
	}
	return writeBool(w, bb.SubsidyClosing)
}

// Deserialize decodes the body base from r.
func (bb *BodyBase) Deserialize(r io.Reader) error {
	if _, err := io.ReadFull(r, bb.Offset[:]); err != nil {
		return err
	}
	var subsidy [32]byte
	if _, err := io.ReadFull(r, subsidy[:]); err != nil {
		return err
	}
	bb.Subsidy.SetBytes(&subsidy)
	var err error
	bb.SubsidyClosing, err = readBool(r)
	return err
}

// Serialize encodes the header prefix to w.
func (p *HeaderPrefix) Serialize(w io.Writer) error {
	if err := wire.WriteVarInt(w, ProtocolVersion, p.Height); err != nil {
		return err
	}
	if _, err := w.Write(p.Prev[:]); err != nil {
		return err
	}
	work := p.ChainWork.Bytes()
	_, err := w.Write(work[:])
	return err
}

// Deserialize decodes the header prefix from r.
func (p *HeaderPrefix) Deserialize(r io.Reader) error {
	var err error
	if p.Height, err = wire.ReadVarInt(r, ProtocolVersion); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, p.Prev[:]); err != nil {
		return err
	}
	var work [32]byte
	if _, err := io.ReadFull(r, work[:]); err != nil {
		return err
	}
	p.ChainWork.SetBytes(&work)
	return nil
}

// Serialize encodes the header element to w.
func (e *HeaderElement) Serialize(w io.Writer) error {
	if _, err := w.Write(e.Definition[:]); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, ProtocolVersion, e.Timestamp); err != nil {
		return err
	}
	if _, err := w.Write(e.PoW.Indices[:]); err != nil {
		return err
	}
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], e.PoW.Nonce)
	binary.BigEndian.PutUint32(buf[8:], uint32(e.PoW.Difficulty))
	_, err := w.Write(buf[:])
	return err
}

// Deserialize decodes the header element from r.
func (e *HeaderElement) Deserialize(r io.Reader) error {
	if _, err := io.ReadFull(r, e.Definition[:]); err != nil {
		return err
	}
	var err error
	if e.Timestamp, err = wire.ReadVarInt(r, ProtocolVersion); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, e.PoW.Indices[:]); err != nil {
		return err
	}
	var buf [12]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	e.PoW.Nonce = binary.BigEndian.Uint64(buf[:8])
	e.PoW.Difficulty = pow.Difficulty(binary.BigEndian.Uint32(buf[8:]))
	return nil
}
