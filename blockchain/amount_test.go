// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math"
	"testing"

	"github.com/mwledger/mwd/ecc"
)

// TestHeightAdd ensures height addition saturates.
func TestHeightAdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		h, delta uint64
		want     uint64
	}{
		{0, 0, 0},
		{5, 10, 15},
		{math.MaxUint64 - 1, 1, math.MaxUint64},
		{math.MaxUint64 - 1, 2, MaxHeight},
		{math.MaxUint64, math.MaxUint64, MaxHeight},
	}

	for i, test := range tests {
		if got := HeightAdd(test.h, test.delta); got != test.want {
			t.Errorf("#%d: got %d, want %d", i, got, test.want)
		}
	}
}

// TestHeightRange ensures the range operations behave at their bounds.
func TestHeightRange(t *testing.T) {
	t.Parallel()

	r := HeightRange{Min: 10, Max: 20}
	if !r.IsInRange(10) || !r.IsInRange(20) || r.IsInRange(9) || r.IsInRange(21) {
		t.Fatal("IsInRange does not respect inclusive bounds")
	}
	if !r.IsInRangeRelative(15) || r.IsInRangeRelative(5) || r.IsInRangeRelative(21) {
		t.Fatal("IsInRangeRelative mismatch")
	}
	if !r.Contains(HeightRange{Min: 12, Max: 20}) || r.Contains(HeightRange{Min: 9, Max: 15}) {
		t.Fatal("Contains mismatch")
	}

	i := r
	i.Intersect(HeightRange{Min: 15, Max: 30})
	if i != (HeightRange{Min: 15, Max: 20}) {
		t.Fatalf("unexpected intersection %+v", i)
	}
	i.Intersect(HeightRange{Min: 21, Max: 30})
	if !i.IsEmpty() {
		t.Fatalf("disjoint intersection %+v is not empty", i)
	}
	i.Reset()
	if i != FullHeightRange() || i.IsEmpty() {
		t.Fatalf("reset range %+v is not full", i)
	}
}

// TestAmountBig ensures the accumulator carries past 64 bits and commits to
// the full value.
func TestAmountBig(t *testing.T) {
	t.Parallel()

	a := NewAmountBig(math.MaxUint64)
	a.AddAmount(math.MaxUint64)
	b := NewAmountBig(1 << 63)
	b.Add(&b).Add(&b)
	// a = 2^65 - 2, b = 2^65
	if a.Cmp(&b) >= 0 {
		t.Fatalf("unexpected order of %v and %v", a, b)
	}
	if a.String() != "36893488147419103230" {
		t.Fatalf("unexpected value %v", a)
	}
	two := NewAmountBig(2)
	a.Add(&two)
	if a.Cmp(&b) != 0 {
		t.Fatalf("got %v, want %v", a, b)
	}

	raw := a.Bytes()
	var c AmountBig
	c.SetBytes(&raw)
	if c.Cmp(&a) != 0 {
		t.Fatalf("byte round trip got %v, want %v", c, a)
	}

	// (2^65)H == 4 * (2^63)H
	var got ecc.NativePoint
	a.AddTo(&got)
	want := ecc.MulH(1 << 63)
	want.MulUint64(&want, 4)
	if !got.Equals(&want) {
		t.Fatal("AddTo of a wide amount mismatch")
	}

	small := NewAmountBig(12345)
	var gotSmall ecc.NativePoint
	small.AddTo(&gotSmall)
	wantSmall := ecc.MulH(12345)
	if !gotSmall.Equals(&wantSmall) {
		t.Fatal("AddTo of a small amount mismatch")
	}

	var zero AmountBig
	var pt ecc.NativePoint
	zero.AddTo(&pt)
	if !zero.IsZero() || !pt.IsZero() {
		t.Fatal("zero amount is not neutral")
	}

	small.Sub(&small)
	if !small.IsZero() {
		t.Fatalf("x - x = %v", small)
	}
}
