// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"
	"time"

	"github.com/mwledger/mwd/pow"
)

// TestChecksum ensures the checksum is stable and changes with every rule.
func TestChecksum(t *testing.T) {
	t.Parallel()

	main := MainNetRules()
	if main.Checksum() != MainNetRules().Checksum() {
		t.Fatal("checksum is not deterministic")
	}

	mods := []struct {
		name string
		mod  func(r *Rules)
	}{
		{"emission", func(r *Rules) { r.CoinbaseEmission++ }},
		{"coinbase maturity", func(r *Rules) { r.MaturityCoinbase++ }},
		{"std maturity", func(r *Rules) { r.MaturityStd++ }},
		{"body size", func(r *Rules) { r.MaxBodySize++ }},
		{"fake pow", func(r *Rules) { r.FakePoW = true }},
		{"public utxos", func(r *Rules) { r.AllowPublicUtxos = true }},
		{"rate", func(r *Rules) { r.DesiredRate += time.Second }},
		{"review cycle", func(r *Rules) { r.DifficultyReviewCycle++ }},
		{"max change", func(r *Rules) { r.MaxDifficultyChange++ }},
		{"ahead", func(r *Rules) { r.TimestampAheadThreshold += time.Second }},
		{"median", func(r *Rules) { r.WindowForMedian++ }},
		{"start difficulty", func(r *Rules) { r.StartDifficulty++ }},
	}
	for _, m := range mods {
		r := MainNetRules()
		m.mod(r)
		if r.Checksum() == main.Checksum() {
			t.Errorf("%s: checksum unchanged", m.name)
		}
	}

	r := MainNetRules()
	r.Name = "renamed"
	if r.Checksum() != main.Checksum() {
		t.Error("name affects the checksum")
	}

	if TestNetRules().Checksum() == main.Checksum() ||
		SimNetRules().Checksum() == main.Checksum() {
		t.Error("networks share a checksum")
	}
}

// TestAdjustDifficulty ensures the elapsed time is clamped before the
// difficulty is rescaled.
func TestAdjustDifficulty(t *testing.T) {
	t.Parallel()

	r := SimNetRules()
	target := uint64(r.DesiredRate/time.Second) * uint64(r.DifficultyReviewCycle)
	start := pow.Pack(10, 1<<pow.MantissaBits)

	tests := []struct {
		name       string
		begin, end uint64
		want       pow.Difficulty
	}{
		{name: "on schedule", begin: 1000, end: 1000 + target, want: start},
		{name: "twice as fast", begin: 1000, end: 1000 + target/2,
			want: pow.Pack(11, 1<<pow.MantissaBits)},
		{name: "twice as slow", begin: 1000, end: 1000 + target*2,
			want: pow.Pack(9, 1<<pow.MantissaBits)},
		{name: "end before begin", begin: 1000, end: 10,
			want: pow.Pack(10+r.MaxDifficultyChange, 1<<pow.MantissaBits)},
		{name: "huge gap", begin: 0, end: 1 << 40,
			want: pow.Pack(10-r.MaxDifficultyChange, 1<<pow.MantissaBits)},
	}
	for _, test := range tests {
		d := start
		r.AdjustDifficulty(&d, test.begin, test.end)
		if d != test.want {
			t.Errorf("%s: got %v, want %v", test.name, d, test.want)
		}
	}
}
