// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/math/uint256"
)

const (
	// MantissaBits is the number of explicitly stored mantissa bits.
	MantissaBits = 24

	// MaxOrder is the largest order of a finite difficulty.
	MaxOrder = 256 - MantissaBits - 1

	// Inf is the packed value of the infinite difficulty.  Packed values
	// above it are invalid and reach no target.
	Inf Difficulty = (MaxOrder + 1) << MantissaBits

	// targetBits is the width below which hash*raw must stay.
	targetBits = 256 + MantissaBits

	leadingBit = 1 << MantissaBits
)

// Raw is the unpacked form of a difficulty and the unit of chain work.
type Raw = uint256.Uint256

// Difficulty is a packed proof-of-work difficulty.
type Difficulty uint32

// Pack builds a difficulty from an order and a mantissa that includes the
// leading bit.  Orders above MaxOrder yield Inf.
func Pack(order, mantissa uint32) Difficulty {
	if order > MaxOrder {
		return Inf
	}
	return Difficulty((mantissa & (leadingBit - 1)) | order<<MantissaBits)
}

// Unpack returns the order and the mantissa including its leading bit.
func (d Difficulty) Unpack() (order, mantissa uint32) {
	return uint32(d) >> MantissaBits, leadingBit | (uint32(d) & (leadingBit - 1))
}

// Raw returns the unpacked value.  Inf and invalid values unpack to the
// largest representable value.
func (d Difficulty) Raw() Raw {
	var res Raw
	if d >= Inf {
		return *res.Not()
	}
	order, mantissa := d.Unpack()
	res.SetUint64(uint64(mantissa)).Lsh(order)
	return res
}

// IsTargetReached returns whether the hash, read as a big-endian integer,
// satisfies the difficulty.
func (d Difficulty) IsTargetReached(hv *[32]byte) bool {
	if d > Inf {
		return false
	}
	raw := d.Raw()
	prod := new(big.Int).SetBytes(hv[:])
	prod.Mul(prod, raw.ToBig())
	return prod.BitLen() <= targetBits
}

// Inc adds the raw difficulty to base and returns the sum.
func (d Difficulty) Inc(base *Raw) Raw {
	res := d.Raw()
	res.Add(base)
	return res
}

// Dec subtracts the raw difficulty from base and returns the difference,
// wrapping modulo 2^256.
func (d Difficulty) Dec(base *Raw) Raw {
	raw := d.Raw()
	var res Raw
	res.Sub2(base, &raw)
	return res
}

// Adjust scales the difficulty by trg/src.  The order changes by at most
// maxOrderChange and the mantissa is only rescaled when the remaining ratio
// is below two.  Underflow yields zero and overflow yields Inf.
func (d *Difficulty) Adjust(src, trg, maxOrderChange uint32) {
	if src == 0 && trg == 0 {
		return
	}
	order, mantissa := d.Unpack()
	o := int64(order)
	mantissa = adjust(src, trg, maxOrderChange, &o, mantissa)
	switch {
	case o < 0:
		*d = 0
	case o > MaxOrder:
		*d = Inf
	default:
		*d = Pack(uint32(o), mantissa)
	}
}

func adjust(src, trg, maxOrderChange uint32, order *int64, mantissa uint32) uint32 {
	increase := src < trg

	for i := uint32(0); ; i++ {
		if i == maxOrderChange {
			return mantissa
		}
		srcAdj := src
		if increase {
			if srcAdj <<= 1; srcAdj > trg {
				break
			}
			if *order++; *order > MaxOrder {
				return mantissa
			}
		} else {
			if srcAdj >>= 1; srcAdj < trg {
				break
			}
			if *order--; *order < 0 {
				return mantissa
			}
		}
		src = srcAdj
	}

	// The remaining ratio is below two.
	val := uint64(trg) * uint64(mantissa) / uint64(src)
	mantissa = uint32(val)
	lead := mantissa >> MantissaBits
	if increase {
		if lead > 1 {
			*order++
			mantissa >>= 1
		}
	} else if lead == 0 {
		*order--
		mantissa <<= 1
	}
	return mantissa
}

// String returns the difficulty as hex order and hex mantissa.
func (d Difficulty) String() string {
	return fmt.Sprintf("%x-%x", uint32(d)>>MantissaBits,
		uint32(d)&(leadingBit-1))
}
