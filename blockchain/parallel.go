// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// ValidateParallel validates the elements of r across the given number of
// shards, each running in its own goroutine over a clone of r, and returns
// the merged summary.  proto supplies the rules, the block mode and the
// permitted height range; its accumulators must be empty.
//
// The first failing shard cancels the others, and its error is returned.
// Clones that implement io.Closer are closed before returning.
func ValidateParallel(ctx context.Context, proto *ValidationContext, txb *TxBase, r Reader, shards uint32) (*ValidationContext, error) {
	if shards == 0 {
		shards = 1
	}

	contexts := make([]*ValidationContext, shards)
	readers := make([]Reader, shards)
	defer func() {
		for _, rd := range readers[1:] {
			if c, ok := rd.(io.Closer); ok {
				c.Close()
			}
		}
	}()
	for i := range contexts {
		vc := &ValidationContext{
			Height:    proto.Height,
			BlockMode: proto.BlockMode,
			Verifiers: shards,
			Verifier:  uint32(i),
			rules:     proto.rules,
		}
		contexts[i] = vc

		if i == 0 {
			readers[i] = r
			continue
		}
		clone, err := r.Clone()
		if err != nil {
			return nil, fmt.Errorf("unable to clone reader for shard %d: %w",
				i, err)
		}
		readers[i] = clone
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range contexts {
		vc, rd := contexts[i], readers[i]
		g.Go(func() error {
			if err := vc.ValidateAndSummarize(gctx, txb, rd); err != nil {
				log.Debugf("Shard %d/%d rejected: %v", vc.Verifier, shards, err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := contexts[0]
	for _, vc := range contexts[1:] {
		if err := merged.Merge(vc); err != nil {
			return nil, err
		}
	}
	log.Tracef("Validated %d shards, fee %v, height range [%d, %d]", shards,
		merged.Fee, merged.Height.Min, merged.Height.Max)
	return merged, nil
}
