// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwledger/mwd/blockchain"
	"github.com/mwledger/mwd/bodyfile"
	"github.com/mwledger/mwd/internal/progresslog"
)

// errNoHeaders is returned when checking a body without any headers.
var errNoHeaders = errors.New("body has no headers")

// checkHeaders validates every header of the body stored in rw and returns
// the range of heights they cover.
func checkHeaders(ctx context.Context, cfg *config, rw *bodyfile.RW) (blockchain.HeightRange, error) {
	var hr blockchain.HeightRange
	last, err := rw.ForEachState(ctx, nil)
	if err != nil {
		return hr, err
	}
	if last == nil {
		return hr, errNoHeaders
	}

	var bb blockchain.BodyBase
	var prefix blockchain.HeaderPrefix
	if err := rw.Start(&bb, &prefix); err != nil {
		return hr, err
	}
	hr = blockchain.HeightRange{Min: prefix.Height, Max: last.Height}

	progressLogger := progresslog.New("Checked", mwdLog)
	total := float64(hr.Max - hr.Min + 1)
	_, err = rw.ForEachState(ctx, func(s *blockchain.SystemState) error {
		if err := s.IsSane(); err != nil {
			return fmt.Errorf("header %v: %w", s.ID(), err)
		}
		if err := s.IsValidPoW(cfg.rules); err != nil {
			return fmt.Errorf("header %v: %w", s.ID(), err)
		}
		progressFn := func() float64 {
			return float64(s.Height-hr.Min+1) * 100 / total
		}
		progressLogger.LogProgress(s, s.Height == hr.Max, progressFn)
		return nil
	})
	return hr, err
}

// checkBody validates the headers and then the elements of the body stored
// at path.
func checkBody(ctx context.Context, cfg *config, path string) error {
	rw, err := bodyfile.Open(path, cfg.rules)
	if err != nil {
		return err
	}
	defer rw.Close()

	var bb blockchain.BodyBase
	var prefix blockchain.HeaderPrefix
	if err := rw.Start(&bb, &prefix); err != nil {
		return err
	}

	hr, err := checkHeaders(ctx, cfg, rw)
	if err != nil {
		return err
	}

	start := time.Now()
	err = bb.IsValidParallel(ctx, cfg.rules, hr, cfg.SubsidyOpen, rw,
		cfg.Shards)
	if err != nil {
		return err
	}
	mwdLog.Infof("Body %s of blocks [%d, %d] is valid (%d shards, %s)", path,
		hr.Min, hr.Max, cfg.Shards, time.Since(start).Truncate(time.Millisecond))
	return nil
}

// combineBodies writes to out the body of the blocks of the body at first
// followed by those of the body at second.  Outputs created in the first
// body and spent in the second cancel out along with their inputs.
func combineBodies(ctx context.Context, cfg *config, out, first, second string) (err error) {
	r0, err := bodyfile.Open(first, cfg.rules)
	if err != nil {
		return err
	}
	defer r0.Close()
	r1, err := bodyfile.Open(second, cfg.rules)
	if err != nil {
		return err
	}
	defer r1.Close()

	w, err := bodyfile.Create(out, cfg.rules)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			w.Delete()
			return
		}
		err = w.Close()
	}()

	if err := blockchain.Combine(ctx, w, r0, r1); err != nil {
		return err
	}
	if err := bodyfile.CombineHeaders(ctx, w, r0, r1); err != nil {
		return err
	}
	mwdLog.Infof("Combined bodies %s and %s into %s", first, second, out)
	return nil
}
