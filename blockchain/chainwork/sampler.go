// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainwork

import (
	"github.com/mwledger/mwd/blockchain"
	"github.com/mwledger/mwd/ecc"
	"github.com/mwledger/mwd/pow"
)

// fractionBits sets the sampled window to 1/2^fractionBits of the unproven
// range.
const fractionBits = 7

// sampler derives the sequence of work points to prove from the tip.  The
// range [begin, end) of the work axis is considered covered, and points are
// drawn below begin until they fall under lowerBound.
type sampler struct {
	oracle     *ecc.Oracle
	begin      pow.Raw
	end        pow.Raw
	lowerBound pow.Raw
}

// newSampler returns a sampler seeded from the hash of tip whose covered
// range is the work range of tip itself.
func newSampler(tip *blockchain.SystemState) *sampler {
	hv := tip.Hash()
	o := ecc.NewOracle()
	o.WriteHash(&hv)
	return &sampler{
		oracle: o,
		begin:  tip.PoW.Difficulty.Dec(&tip.ChainWork),
		end:    tip.ChainWork,
	}
}

// isDegenerate returns whether the tip leaves nothing to sample, which
// happens when its chain work is below its own difficulty.
func (s *sampler) isDegenerate() bool {
	return !s.begin.Lt(&s.end)
}

// cover extends the covered range down to lo.
func (s *sampler) cover(lo *pow.Raw) {
	if s.begin.Gt(lo) {
		s.begin = *lo
	}
}

// uniform returns a value drawn uniformly below threshold, which must not be
// zero.
func (s *sampler) uniform(threshold *pow.Raw) pow.Raw {
	var mask pow.Raw
	mask.SetUint64(1).Lsh(uint32(threshold.BitLen())).SubUint64(1)
	for {
		hv := s.oracle.NextHash()
		var v pow.Raw
		v.SetBytes((*[32]byte)(&hv)).And(&mask)
		if v.Lt(threshold) {
			return v
		}
	}
}

// next stores the next point to prove in out.  It returns false once the
// point would fall below the lower bound or wraps past the covered range.
func (s *sampler) next(out *pow.Raw) bool {
	var window pow.Raw
	window.Sub2(&s.end, &s.begin).Rsh(fractionBits)
	if window.IsZero() {
		window.SetUint64(1)
	}
	allCovered := window.GtEq(&s.begin)

	v := s.uniform(&window)
	out.Set(&v).Add(&s.begin).Sub(&window)
	if out.Lt(&s.lowerBound) || out.GtEq(&s.begin) {
		return false
	}

	if allCovered {
		s.begin.SetUint64(0)
	} else {
		s.begin.Sub(&window)
	}
	return true
}
