// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bodyfile

import (
	"context"
	"fmt"

	"github.com/mwledger/mwd/blockchain"
)

// ForEachState reads the headers of the body in order and calls fn with each
// of them.  The headers following the first are derived from their
// predecessor and their element.  The returned state is the last header, or
// nil when the body has none.
//
// The state passed to fn is reused between calls.
func (rw *RW) ForEachState(ctx context.Context, fn func(s *blockchain.SystemState) error) (*blockchain.SystemState, error) {
	var bb blockchain.BodyBase
	var s blockchain.SystemState
	if err := rw.Start(&bb, &s.HeaderPrefix); err != nil {
		return nil, err
	}

	var e blockchain.HeaderElement
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", blockchain.ErrAborted, err)
		}
		ok, err := rw.NextHdr(&e)
		if err != nil {
			return nil, err
		}
		if !ok {
			if n == 0 {
				return nil, nil
			}
			return &s, nil
		}
		if n > 0 {
			s.NextPrefix()
			s.ChainWork = e.PoW.Difficulty.Inc(&s.ChainWork)
		}
		s.HeaderElement = e
		if fn == nil {
			continue
		}
		if err := fn(&s); err != nil {
			return nil, err
		}
	}
}

// CombineHeaders writes to w the merged body base and the headers of r0
// followed by those of r1.  The first header of r1 must follow the last one
// of r0.
func CombineHeaders(ctx context.Context, w, r0, r1 *RW) error {
	var bb0, bb1 blockchain.BodyBase
	var p0, p1 blockchain.HeaderPrefix
	if err := r0.Start(&bb0, &p0); err != nil {
		return err
	}
	if err := r1.Start(&bb1, &p1); err != nil {
		return err
	}
	if err := bb0.Merge(&bb1); err != nil {
		return err
	}
	if err := w.PutStart(&bb0, &p0); err != nil {
		return err
	}

	last, err := r0.ForEachState(ctx, func(s *blockchain.SystemState) error {
		return w.PutNextHdr(&s.HeaderElement)
	})
	if err != nil {
		return err
	}

	first := true
	var count uint64
	_, err = r1.ForEachState(ctx, func(s *blockchain.SystemState) error {
		if first {
			first = false
			if err := checkAdjacent(last, &p0, s); err != nil {
				return err
			}
		}
		count++
		return w.PutNextHdr(&s.HeaderElement)
	})
	if err != nil {
		return err
	}
	log.Debugf("Combined headers of %s and %s into %s (%d headers from the "+
		"second range)", r0.path, r1.path, w.path, count)
	return nil
}

// checkAdjacent checks that next is the header following last.  When the
// first range is empty, next must start where it does.
func checkAdjacent(last *blockchain.SystemState, p0 *blockchain.HeaderPrefix, next *blockchain.SystemState) error {
	if last == nil {
		if next.HeaderPrefix != *p0 {
			str := fmt.Sprintf("header range at height %d does not start "+
				"at height %d of the empty range", next.Height, p0.Height)
			return makeError(ErrHeaderGap, str)
		}
		return nil
	}

	want := *last
	want.NextPrefix()
	if next.Height != want.Height || next.Prev != want.Prev {
		str := fmt.Sprintf("header %v does not follow header %v",
			next.ID(), last.ID())
		return makeError(ErrHeaderGap, str)
	}
	if lo := next.PoW.Difficulty.Dec(&next.ChainWork); !lo.Eq(&last.ChainWork) {
		str := fmt.Sprintf("chain work %v of header %v does not continue "+
			"chain work %v", &next.ChainWork, next.ID(), &last.ChainWork)
		return makeError(ErrHeaderGap, str)
	}
	return nil
}
