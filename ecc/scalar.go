// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"bytes"

	"github.com/decred/dcrd/crypto/rand"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ModNScalar is the native scalar type of the group: an integer modulo the
// group order.
type ModNScalar = secp256k1.ModNScalar

// Scalar is the serialized form of a scalar: 32 bytes, big endian.  A
// serialized scalar is only meaningful when it is canonical, i.e. less than
// the group order.
type Scalar [32]byte

// NewScalar returns the serialized form of the provided native scalar.
func NewScalar(k *ModNScalar) Scalar {
	return Scalar(k.Bytes())
}

// Import decodes the scalar into out.  It returns false when the serialized
// value is not canonical, in which case out holds the reduced value.
func (s *Scalar) Import(out *ModNScalar) bool {
	return out.SetBytes((*[32]byte)(s)) == 0
}

// IsZero returns whether all bytes of the scalar are zero.
func (s *Scalar) IsZero() bool {
	return *s == Scalar{}
}

// Cmp compares two serialized scalars as big-endian integers.
func (s *Scalar) Cmp(o *Scalar) int {
	return bytes.Compare(s[:], o[:])
}

// RandomScalar returns a uniformly random non-zero scalar drawn from the
// process-wide CSPRNG.
func RandomScalar() ModNScalar {
	var buf [32]byte
	for {
		rand.Read(buf[:])
		var k ModNScalar
		if overflow := k.SetBytes(&buf); overflow == 0 && !k.IsZero() {
			return k
		}
	}
}

// ScalarFromUint64 returns v as a native scalar.
func ScalarFromUint64(v uint64) ModNScalar {
	var buf [32]byte
	for i := 0; i < 8; i++ {
		buf[31-i] = byte(v >> (8 * i))
	}
	var k ModNScalar
	k.SetBytes(&buf)
	return k
}
