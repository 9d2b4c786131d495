// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math"

	"github.com/decred/dcrd/math/uint256"
	"github.com/mwledger/mwd/ecc"
)

// MaxHeight is the largest representable height.
const MaxHeight = math.MaxUint64

// HeightAdd returns h+delta saturated at MaxHeight.
func HeightAdd(h, delta uint64) uint64 {
	if sum := h + delta; sum >= h {
		return sum
	}
	return MaxHeight
}

// HeightRange is an inclusive range of block heights.  It is empty when Min
// is above Max.
type HeightRange struct {
	Min uint64
	Max uint64
}

// FullHeightRange returns the range covering every height.
func FullHeightRange() HeightRange {
	return HeightRange{Min: 0, Max: MaxHeight}
}

// Reset sets the range to cover every height.
func (r *HeightRange) Reset() {
	*r = FullHeightRange()
}

// Intersect shrinks the range to its intersection with o.
func (r *HeightRange) Intersect(o HeightRange) {
	if o.Min > r.Min {
		r.Min = o.Min
	}
	if o.Max < r.Max {
		r.Max = o.Max
	}
}

// IsEmpty returns whether the range contains no heights.
func (r HeightRange) IsEmpty() bool {
	return r.Min > r.Max
}

// IsInRange returns whether h is within the range.
func (r HeightRange) IsInRange(h uint64) bool {
	return h >= r.Min && h <= r.Max
}

// IsInRangeRelative returns whether h-Min is within [0, Max-Min], which
// unlike IsInRange is well defined for ranges that wrap.
func (r HeightRange) IsInRangeRelative(h uint64) bool {
	return h-r.Min <= r.Max-r.Min
}

// Contains returns whether o is a subset of the range.
func (r HeightRange) Contains(o HeightRange) bool {
	return o.Min >= r.Min && o.Max <= r.Max
}

// AmountBig accumulates amounts without overflow.  The zero value is zero.
type AmountBig struct {
	v uint256.Uint256
}

// NewAmountBig returns the accumulator holding v.
func NewAmountBig(v uint64) AmountBig {
	var a AmountBig
	a.v.SetUint64(v)
	return a
}

// AddAmount adds v.
func (a *AmountBig) AddAmount(v uint64) *AmountBig {
	a.v.AddUint64(v)
	return a
}

// Add adds o.
func (a *AmountBig) Add(o *AmountBig) *AmountBig {
	a.v.Add(&o.v)
	return a
}

// Sub subtracts o, wrapping modulo 2^256.
func (a *AmountBig) Sub(o *AmountBig) *AmountBig {
	a.v.Sub(&o.v)
	return a
}

// Cmp compares the accumulator with o.
func (a *AmountBig) Cmp(o *AmountBig) int {
	return a.v.Cmp(&o.v)
}

// IsZero returns whether the accumulator is zero.
func (a *AmountBig) IsZero() bool {
	return a.v.IsZero()
}

// Uint256 returns the accumulated value.
func (a *AmountBig) Uint256() uint256.Uint256 {
	return a.v
}

// Bytes returns the accumulated value as 32 big-endian bytes.
func (a *AmountBig) Bytes() [32]byte {
	return a.v.Bytes()
}

// SetBytes sets the accumulator from 32 big-endian bytes.
func (a *AmountBig) SetBytes(b *[32]byte) *AmountBig {
	a.v.SetBytes(b)
	return a
}

// String returns the value in decimal.
func (a AmountBig) String() string {
	return a.v.String()
}

// AddTo adds the value times H to p.
func (a *AmountBig) AddTo(p *ecc.NativePoint) {
	if a.v.IsZero() {
		return
	}
	var vh ecc.NativePoint
	if a.v.BitLen() <= 64 {
		vh = ecc.MulH(a.v.Uint64())
	} else {
		b := a.v.Bytes()
		var k ecc.ModNScalar
		k.SetBytes(&b)
		vh = ecc.MulHScalar(&k)
	}
	p.AddAssign(&vh)
}
