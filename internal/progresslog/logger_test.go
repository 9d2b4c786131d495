// Copyright (c) 2020 The Decred developers
// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/decred/slog"
	"github.com/mwledger/mwd/blockchain"
	"github.com/mwledger/mwd/pow"
)

var (
	backendLog = slog.NewBackend(io.Discard)
	testLog    = backendLog.Logger("TEST")
)

// makeState returns a header at the given height with the given difficulty.
func makeState(height uint64, d pow.Difficulty) *blockchain.SystemState {
	var s blockchain.SystemState
	s.Height = height
	s.Timestamp = 1700000000 + height*60
	s.PoW.Difficulty = d
	return &s
}

// sumWork returns the total work of the given difficulties.
func sumWork(ds ...pow.Difficulty) pow.Raw {
	var work pow.Raw
	for _, d := range ds {
		work = d.Inc(&work)
	}
	return work
}

// TestLogProgress ensures the logging functionality works as expected via a
// test logger.
func TestLogProgress(t *testing.T) {
	d0, d1, d2 := pow.Pack(1, 5), pow.Pack(3, 0), pow.Pack(0, 1<<10)
	testStates := []*blockchain.SystemState{
		makeState(100000, d0),
		makeState(100001, d1),
		makeState(100002, d2),
	}

	tests := []struct {
		name                string
		reset               bool
		inputState          *blockchain.SystemState
		forceLog            bool
		inputLastLogTime    time.Time
		wantReceivedHeaders uint64
		wantReceivedWork    pow.Raw
	}{{
		name:                "round 1, header 0, last log time < 10 secs ago, not forced",
		inputState:          testStates[0],
		forceLog:            false,
		inputLastLogTime:    time.Now(),
		wantReceivedHeaders: 1,
		wantReceivedWork:    sumWork(d0),
	}, {
		name:                "round 1, header 1, last log time < 10 secs ago, not forced",
		inputState:          testStates[1],
		forceLog:            false,
		inputLastLogTime:    time.Now(),
		wantReceivedHeaders: 2,
		wantReceivedWork:    sumWork(d0, d1),
	}, {
		name:                "round 1, header 2, last log time < 10 secs ago, forced",
		inputState:          testStates[2],
		forceLog:            true,
		inputLastLogTime:    time.Now(),
		wantReceivedHeaders: 0,
	}, {
		name:                "round 2, header 0, last log time < 10 secs ago, not forced",
		reset:               true,
		inputState:          testStates[0],
		forceLog:            false,
		inputLastLogTime:    time.Now(),
		wantReceivedHeaders: 1,
		wantReceivedWork:    sumWork(d0),
	}, {
		name:                "round 2, header 1, last log time > 10 secs ago, not forced",
		inputState:          testStates[1],
		forceLog:            false,
		inputLastLogTime:    time.Now().Add(-11 * time.Second),
		wantReceivedHeaders: 0,
	}, {
		name:                "round 2, header 2, last log time > 10 secs ago, forced",
		inputState:          testStates[2],
		forceLog:            true,
		inputLastLogTime:    time.Now().Add(-11 * time.Second),
		wantReceivedHeaders: 0,
	}}

	progressFn := func() float64 { return 0.0 }
	progressLogger := New("Checked", testLog)
	for _, test := range tests {
		if test.reset {
			progressLogger = New("Checked", testLog)
		}
		progressLogger.SetLastLogTime(test.inputLastLogTime)
		progressLogger.LogProgress(test.inputState, test.forceLog, progressFn)
		wantProgressLogger := &Logger{
			receivedHeaders: test.wantReceivedHeaders,
			receivedWork:    test.wantReceivedWork,
			lastLogTime:     progressLogger.lastLogTime,
			progressAction:  progressLogger.progressAction,
			subsystemLogger: progressLogger.subsystemLogger,
		}
		if !reflect.DeepEqual(progressLogger, wantProgressLogger) {
			t.Errorf("%s:\nwant: %+v\ngot: %+v\n", test.name,
				wantProgressLogger, progressLogger)
		}
	}
}

// TestPickNoun ensures the singular form is only used for a count of one.
func TestPickNoun(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "headers"},
		{1, "header"},
		{2, "headers"},
	}
	for _, test := range tests {
		if got := pickNoun(test.n, "header", "headers"); got != test.want {
			t.Errorf("pickNoun(%d): got %q, want %q", test.n, got, test.want)
		}
	}
}
