// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"bytes"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Point is the serialized form of a group element: the affine X coordinate
// and the parity of Y.  The zero value is the point at infinity.
type Point struct {
	X [32]byte
	Y uint8
}

// IsZero returns whether the point is the serialized point at infinity.
func (p *Point) IsZero() bool {
	return *p == Point{}
}

// Cmp orders points by X and then by the Y parity.
func (p *Point) Cmp(o *Point) int {
	if c := bytes.Compare(p.X[:], o.X[:]); c != 0 {
		return c
	}
	switch {
	case p.Y < o.Y:
		return -1
	case p.Y > o.Y:
		return 1
	}
	return 0
}

// String returns the point as hex followed by its parity.
func (p Point) String() string {
	return fmt.Sprintf("%x-%d", p.X[:], p.Y)
}

// NativePoint is a group element in Jacobian coordinates suitable for
// arithmetic.  The zero value is the point at infinity.
type NativePoint struct {
	p secp256k1.JacobianPoint
}

func isInfinity(p *secp256k1.JacobianPoint) bool {
	x, y, z := p.X, p.Y, p.Z
	x.Normalize()
	y.Normalize()
	z.Normalize()
	return z.IsZero() || (x.IsZero() && y.IsZero())
}

// Import decodes a serialized point.  It returns false when the X
// coordinate is not a field element, the parity byte is out of range, or no
// curve point has the given X coordinate.  On failure the receiver is left
// at infinity.
func (n *NativePoint) Import(pt *Point) bool {
	n.p = secp256k1.JacobianPoint{}
	if pt.IsZero() {
		return true
	}
	if pt.Y > 1 {
		return false
	}
	var x, y secp256k1.FieldVal
	if overflow := x.SetBytes(&pt.X); overflow != 0 {
		return false
	}
	if !secp256k1.DecompressY(&x, pt.Y == 1, &y) {
		return false
	}
	n.p.X.Set(&x)
	n.p.Y.Set(&y)
	n.p.Z.SetInt(1)
	return true
}

// Export returns the serialized form of the point.
func (n *NativePoint) Export() Point {
	if isInfinity(&n.p) {
		return Point{}
	}
	a := n.p
	a.ToAffine()
	var pt Point
	a.X.PutBytes(&pt.X)
	if a.Y.IsOdd() {
		pt.Y = 1
	}
	return pt
}

// IsZero returns whether the point is the point at infinity.
func (n *NativePoint) IsZero() bool {
	return isInfinity(&n.p)
}

// Set assigns o to the receiver and returns it.
func (n *NativePoint) Set(o *NativePoint) *NativePoint {
	n.p.Set(&o.p)
	return n
}

// SetZero resets the receiver to infinity.
func (n *NativePoint) SetZero() *NativePoint {
	n.p = secp256k1.JacobianPoint{}
	return n
}

// Add sets the receiver to a+b and returns it.  Any argument may alias the
// receiver.
func (n *NativePoint) Add(a, b *NativePoint) *NativePoint {
	switch {
	case isInfinity(&a.p):
		n.p.Set(&b.p)
		return n
	case isInfinity(&b.p):
		n.p.Set(&a.p)
		return n
	}
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a.p, &b.p, &r)
	n.p.Set(&r)
	return n
}

// AddAssign adds o to the receiver.
func (n *NativePoint) AddAssign(o *NativePoint) *NativePoint {
	return n.Add(n, o)
}

// Negate sets the receiver to -o and returns it.
func (n *NativePoint) Negate(o *NativePoint) *NativePoint {
	n.p.Set(&o.p)
	if isInfinity(&n.p) {
		n.p = secp256k1.JacobianPoint{}
		return n
	}
	n.p.Y.Normalize().Negate(1).Normalize()
	return n
}

// Mul sets the receiver to k*o and returns it.
func (n *NativePoint) Mul(o *NativePoint, k *ModNScalar) *NativePoint {
	if k.IsZero() || isInfinity(&o.p) {
		n.p = secp256k1.JacobianPoint{}
		return n
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(k, &o.p, &r)
	n.p.Set(&r)
	return n
}

// MulUint64 sets the receiver to v*o and returns it.
func (n *NativePoint) MulUint64(o *NativePoint, v uint64) *NativePoint {
	k := ScalarFromUint64(v)
	return n.Mul(o, &k)
}

// Equals returns whether both points represent the same group element.
func (n *NativePoint) Equals(o *NativePoint) bool {
	var neg, sum NativePoint
	neg.Negate(o)
	sum.Add(n, &neg)
	return sum.IsZero()
}
