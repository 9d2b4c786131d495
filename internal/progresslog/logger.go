// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/mwledger/mwd/blockchain"
	"github.com/mwledger/mwd/pow"
)

// pickNoun returns the singular or plural form of a noun depending on the
// provided count.
func pickNoun(n uint64, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Logger provides periodic logging of progress towards some action such as
// checking the headers of a body.
type Logger struct {
	sync.Mutex
	subsystemLogger slog.Logger
	progressAction  string

	// lastLogTime tracks the last time a log statement was shown.
	lastLogTime time.Time

	// These fields accumulate information about headers between log
	// statements.
	receivedHeaders uint64
	receivedWork    pow.Raw
}

// New returns a new header progress logger.
func New(progressAction string, logger slog.Logger) *Logger {
	return &Logger{
		lastLogTime:     time.Now(),
		progressAction:  progressAction,
		subsystemLogger: logger,
	}
}

// LogProgress accumulates details for the provided header and periodically
// (every 10 seconds) logs an information message to show progress to the user
// along with duration and totals included.
//
// The force flag may be used to force a log message to be shown regardless of
// the time the last one was shown.
//
// The progress message is templated as follows:
//  {progressAction} {numProcessed} {headers|header} in the last {timePeriod}
//  (work {work}, height {lastHeight}, {lastTimestamp}, ~{progress}% done)
func (l *Logger) LogProgress(s *blockchain.SystemState, forceLog bool, progressFn func() float64) {
	l.Lock()
	defer l.Unlock()

	l.receivedHeaders++
	l.receivedWork = s.PoW.Difficulty.Inc(&l.receivedWork)
	now := time.Now()
	duration := now.Sub(l.lastLogTime)
	if !forceLog && duration < time.Second*10 {
		return
	}

	// Truncate the duration to 10s of milliseconds.
	tDuration := duration.Truncate(10 * time.Millisecond)

	// Log information about progress.
	timestamp := time.Unix(int64(s.Timestamp), 0).UTC()
	l.subsystemLogger.Infof("%s %d %s in the last %s (work %s, height %d, "+
		"%s, ~%0.2f%% done)", l.progressAction, l.receivedHeaders,
		pickNoun(l.receivedHeaders, "header", "headers"), tDuration,
		l.receivedWork.String(), s.Height, timestamp, progressFn())

	l.receivedHeaders = 0
	l.receivedWork.SetUint64(0)
	l.lastLogTime = now
}

// SetLastLogTime updates the last time data was logged to the provided time.
func (l *Logger) SetLastLogTime(time time.Time) {
	l.Lock()
	l.lastLogTime = time
	l.Unlock()
}
