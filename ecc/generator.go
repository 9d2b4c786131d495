// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"sync"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// hGeneratorTag seeds the nothing-up-my-sleeve derivation of H.
const hGeneratorTag = "mwd.generator.H"

var (
	genOnce sync.Once
	genG    NativePoint
	genH    NativePoint
	genSum  chainhash.Hash
)

// deriveH hashes the tag together with an increasing counter until the
// digest is the X coordinate of a curve point.  Nobody knows the discrete log
// of the result with respect to G.
func deriveH() NativePoint {
	hp := NewHashProcessor()
	for ctr := uint32(0); ; ctr++ {
		hv := hp.WriteBytes([]byte(hGeneratorTag)).WriteUint32(ctr).Sum()
		var x, y secp256k1.FieldVal
		if overflow := x.SetBytes((*[32]byte)(&hv)); overflow != 0 {
			continue
		}
		if !secp256k1.DecompressY(&x, false, &y) {
			continue
		}
		var n NativePoint
		n.p.X.Set(&x)
		n.p.Y.Set(&y)
		n.p.Z.SetInt(1)
		return n
	}
}

func initGenerators() {
	genOnce.Do(func() {
		one := ScalarFromUint64(1)
		secp256k1.ScalarBaseMultNonConst(&one, &genG.p)
		genH = deriveH()

		g, h := genG.Export(), genH.Export()
		genSum = NewHashProcessor().WritePoint(&g).WritePoint(&h).Sum()
	})
}

// G returns the standard base point.
func G() NativePoint {
	initGenerators()
	return genG
}

// H returns the value generator used by commitments.
func H() NativePoint {
	initGenerators()
	return genH
}

// Checksum returns a hash identifying the generator set.  It is folded into
// the consensus rules checksum so nodes with different generators refuse to
// interoperate.
func Checksum() chainhash.Hash {
	initGenerators()
	return genSum
}

// MulG returns k*G.
func MulG(k *ModNScalar) NativePoint {
	var n NativePoint
	if k.IsZero() {
		return n
	}
	secp256k1.ScalarBaseMultNonConst(k, &n.p)
	return n
}

// MulH returns v*H.
func MulH(v uint64) NativePoint {
	h := H()
	var n NativePoint
	n.MulUint64(&h, v)
	return n
}

// MulHScalar returns k*H.
func MulHScalar(k *ModNScalar) NativePoint {
	h := H()
	var n NativePoint
	n.Mul(&h, k)
	return n
}

// Commit returns the Pedersen commitment k*G + v*H.
func Commit(k *ModNScalar, v uint64) NativePoint {
	c := MulG(k)
	vh := MulH(v)
	c.AddAssign(&vh)
	return c
}

// PublicKey returns the public point of the secret key sk.
func PublicKey(sk *ModNScalar) Point {
	p := MulG(sk)
	return p.Export()
}
