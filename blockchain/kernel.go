// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"fmt"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/ecc"
)

// MaxKernelDepth is the deepest nesting of kernels accepted.
const MaxKernelDepth = 16

// HashLock makes a kernel spendable only by revealing the preimage of its
// image.
type HashLock struct {
	Preimage chainhash.Hash
}

// Image returns the hash committed to by the lock.
func (l *HashLock) Image() chainhash.Hash {
	return ecc.NewHashProcessor().WriteHash(&l.Preimage).Sum()
}

// TxKernel carries the excess of a transaction along with its signature,
// fee and validity window.  A kernel owns its nested kernels, which are
// stored in canonical order.
type TxKernel struct {
	Excess     ecc.Point
	Multiplier uint32
	Signature  ecc.Signature
	Fee        uint64
	Height     HeightRange
	HashLock   *HashLock
	Nested     []*TxKernel
}

// kernelVisit collects the side effects of a kernel traversal.  A nil field
// disables the respective accumulation.
type kernelVisit struct {
	fee    *AmountBig
	excess *ecc.NativePoint

	// verify enables signature checks.  It requires excess.
	verify bool
}

// traverse computes the signing hash of the kernel into hv while enforcing
// the nesting rules and performing the requested accumulation for the
// kernel and everything nested in it.
func (k *TxKernel) traverse(hv *chainhash.Hash, visit *kernelVisit, parent *TxKernel, lockImage *chainhash.Hash, depth int) error {
	if depth > MaxKernelDepth {
		return ruleError(ErrNestingTooDeep, "kernels are nested too deep")
	}
	if parent != nil {
		if k.Multiplier != parent.Multiplier {
			str := fmt.Sprintf("nested kernel multiplier %d differs from "+
				"parent multiplier %d", k.Multiplier, parent.Multiplier)
			return ruleError(ErrNestedMultiplier, str)
		}
		if !parent.Height.Contains(k.Height) {
			str := fmt.Sprintf("nested kernel height range [%d, %d] is "+
				"outside the parent range [%d, %d]", k.Height.Min,
				k.Height.Max, parent.Height.Min, parent.Height.Max)
			return ruleError(ErrNestedHeightRange, str)
		}
	}

	hp := ecc.NewHashProcessor()
	hp.WriteUint64(k.Fee).
		WriteUint64(k.Height.Min).
		WriteUint64(k.Height.Max).
		WriteBool(k.HashLock != nil)
	if k.HashLock != nil {
		if lockImage == nil {
			img := k.HashLock.Image()
			lockImage = &img
		}
		hp.WriteHash(lockImage)
	}

	var prev *TxKernel
	for _, nested := range k.Nested {
		hp.WriteBool(false)
		if prev != nil && prev.Cmp(nested) >= 0 {
			return ruleError(ErrNestedOrder, "nested kernels are not "+
				"strictly increasing")
		}
		prev = nested

		var nestedHash chainhash.Hash
		if err := nested.traverse(&nestedHash, visit, k, nil, depth+1); err != nil {
			return err
		}
		id := nested.hashToID(&nestedHash)
		hp.WriteHash(&id)
	}
	hp.WriteBool(true)
	*hv = hp.Sum()

	if visit.excess != nil {
		var pt ecc.NativePoint
		if !pt.Import(&k.Excess) {
			return ruleError(ErrBadCommitment, "kernel excess is not a "+
				"valid point")
		}
		if k.Multiplier != 0 {
			pt.MulUint64(&pt, uint64(k.Multiplier)+1)
		}
		if visit.verify && !k.Signature.IsValid(hv, &pt) {
			return ruleError(ErrBadSignature, "kernel signature does not "+
				"verify")
		}
		visit.excess.AddAssign(&pt)
	}
	if visit.fee != nil {
		visit.fee.AddAmount(k.Fee)
	}
	return nil
}

// hashToID mixes the parts of the kernel not covered by its signing hash,
// other than the signature, into hv.  The zero hash is reserved, so it is
// remapped.
func (k *TxKernel) hashToID(hv *chainhash.Hash) chainhash.Hash {
	id := ecc.NewHashProcessor().
		WriteHash(hv).
		WritePoint(&k.Excess).
		WriteUint32(k.Multiplier).
		Sum()
	if id == (chainhash.Hash{}) {
		id[len(id)-1] = 1
	}
	return id
}

// Hash returns the signing hash of the kernel.  When the kernel has a hash
// lock, lockImage may supply its image in place of the preimage.  Kernels
// that violate the nesting rules hash to the zero value.
func (k *TxKernel) Hash(lockImage *chainhash.Hash) chainhash.Hash {
	var hv chainhash.Hash
	if err := k.traverse(&hv, &kernelVisit{}, nil, lockImage, 0); err != nil {
		return chainhash.Hash{}
	}
	return hv
}

// ID returns the identifier of the kernel.  It is never zero.
func (k *TxKernel) ID(lockImage *chainhash.Hash) chainhash.Hash {
	hv := k.Hash(lockImage)
	return k.hashToID(&hv)
}

// IsValid verifies the kernel and everything nested in it, adding the fees
// into fee and the (scaled) excesses into excess.
func (k *TxKernel) IsValid(fee *AmountBig, excess *ecc.NativePoint) error {
	var hv chainhash.Hash
	visit := kernelVisit{fee: fee, excess: excess, verify: true}
	return k.traverse(&hv, &visit, nil, nil, 0)
}

// Sign sets the excess of the kernel to the public point of sk and signs
// it.  Nested kernels must be complete and sorted beforehand since the
// signing hash commits to them.
func (k *TxKernel) Sign(sk *ecc.ModNScalar) error {
	k.Excess = ecc.PublicKey(sk)
	var hv chainhash.Hash
	if err := k.traverse(&hv, &kernelVisit{}, nil, nil, 0); err != nil {
		return err
	}
	key := *sk
	if k.Multiplier != 0 {
		m := ecc.ScalarFromUint64(uint64(k.Multiplier) + 1)
		key.Mul(&m)
	}
	k.Signature.Sign(&hv, &key)
	key.Zero()
	return nil
}

// Cmp orders kernels canonically: by excess, multiplier, signature, fee,
// height range, hash lock and finally by nested kernels.
func (k *TxKernel) Cmp(o *TxKernel) int {
	if n := k.Excess.Cmp(&o.Excess); n != 0 {
		return n
	}
	if n := cmpUint64(uint64(k.Multiplier), uint64(o.Multiplier)); n != 0 {
		return n
	}
	if n := k.Signature.Cmp(&o.Signature); n != 0 {
		return n
	}
	if n := cmpUint64(k.Fee, o.Fee); n != 0 {
		return n
	}
	if n := cmpUint64(k.Height.Min, o.Height.Min); n != 0 {
		return n
	}
	if n := cmpUint64(k.Height.Max, o.Height.Max); n != 0 {
		return n
	}
	switch {
	case k.HashLock == nil && o.HashLock != nil:
		return -1
	case k.HashLock != nil && o.HashLock == nil:
		return 1
	case k.HashLock != nil:
		if n := bytes.Compare(k.HashLock.Preimage[:], o.HashLock.Preimage[:]); n != 0 {
			return n
		}
	}
	for i := range k.Nested {
		if i >= len(o.Nested) {
			return 1
		}
		if n := k.Nested[i].Cmp(o.Nested[i]); n != 0 {
			return n
		}
	}
	if len(o.Nested) > len(k.Nested) {
		return -1
	}
	return 0
}

// Clone returns a deep copy of the kernel.
func (k *TxKernel) Clone() *TxKernel {
	c := *k
	if k.HashLock != nil {
		lock := *k.HashLock
		c.HashLock = &lock
	}
	if k.Nested != nil {
		c.Nested = make([]*TxKernel, len(k.Nested))
		for i, nested := range k.Nested {
			c.Nested[i] = nested.Clone()
		}
	}
	return &c
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
