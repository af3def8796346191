// Copyright (c) 2021-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/decred/slog"
	"github.com/decred/univalue/internal/blockstats"
)

var (
	backendLog = slog.NewBackend(io.Discard)
	testLog    = backendLog.Logger("TEST")
)

// makeTxns returns the given number of transactions, each with the provided
// number of inputs and outputs.
func makeTxns(numTxns, numInputs, numOutputs int) []blockstats.Tx {
	txns := make([]blockstats.Tx, numTxns)
	for i := range txns {
		txns[i].Prevouts = make([]blockstats.Output, numInputs)
		txns[i].Outputs = make([]blockstats.Output, numOutputs)
	}
	return txns
}

// TestLogProgress ensures the logging functionality works as expected via a
// test logger.
func TestLogProgress(t *testing.T) {
	testBlocks := []blockstats.Block{{
		Height: 100000,
		Time:   1293623863, // 2010-12-29 11:57:43 +0000 UTC
		Txs:    makeTxns(4, 1, 2),
	}, {
		Height: 100001,
		Time:   1293624163, // 2010-12-29 12:02:43 +0000 UTC
		Txs:    makeTxns(2, 3, 1),
	}, {
		Height: 100002,
		Time:   1293624463, // 2010-12-29 12:07:43 +0000 UTC
		Txs:    makeTxns(3, 2, 2),
	}}

	tests := []struct {
		name                string
		reset               bool
		inputBlock          *blockstats.Block
		forceLog            bool
		inputLastLogTime    time.Time
		wantReceivedBlocks  uint64
		wantReceivedTxns    uint64
		wantReceivedInputs  uint64
		wantReceivedOutputs uint64
	}{{
		name:                "round 1, block 0, last log time < 10 secs ago, not forced",
		inputBlock:          &testBlocks[0],
		forceLog:            false,
		inputLastLogTime:    time.Now(),
		wantReceivedBlocks:  1,
		wantReceivedTxns:    4,
		wantReceivedInputs:  4,
		wantReceivedOutputs: 8,
	}, {
		name:                "round 1, block 1, last log time < 10 secs ago, not forced",
		inputBlock:          &testBlocks[1],
		forceLog:            false,
		inputLastLogTime:    time.Now(),
		wantReceivedBlocks:  2,
		wantReceivedTxns:    6,
		wantReceivedInputs:  10,
		wantReceivedOutputs: 10,
	}, {
		name:                "round 1, block 2, last log time < 10 secs ago, forced",
		inputBlock:          &testBlocks[2],
		forceLog:            true,
		inputLastLogTime:    time.Now(),
		wantReceivedBlocks:  0,
		wantReceivedTxns:    0,
		wantReceivedInputs:  0,
		wantReceivedOutputs: 0,
	}, {
		name:                "round 2, block 0, last log time < 10 secs ago, not forced",
		reset:               true,
		inputBlock:          &testBlocks[0],
		forceLog:            false,
		inputLastLogTime:    time.Now(),
		wantReceivedBlocks:  1,
		wantReceivedTxns:    4,
		wantReceivedInputs:  4,
		wantReceivedOutputs: 8,
	}, {
		name:                "round 2, block 1, last log time > 10 secs ago, not forced",
		inputBlock:          &testBlocks[1],
		forceLog:            false,
		inputLastLogTime:    time.Now().Add(-11 * time.Second),
		wantReceivedBlocks:  0,
		wantReceivedTxns:    0,
		wantReceivedInputs:  0,
		wantReceivedOutputs: 0,
	}, {
		name:                "round 2, block 2, last log time > 10 secs ago, forced",
		inputBlock:          &testBlocks[2],
		forceLog:            true,
		inputLastLogTime:    time.Now().Add(-11 * time.Second),
		wantReceivedBlocks:  0,
		wantReceivedTxns:    0,
		wantReceivedInputs:  0,
		wantReceivedOutputs: 0,
	}}

	progressLogger := New("Computed stats for", testLog)
	for _, test := range tests {
		if test.reset {
			progressLogger = New("Computed stats for", testLog)
		}
		progressLogger.SetLastLogTime(test.inputLastLogTime)
		progressLogger.LogProgress(test.inputBlock, test.forceLog)
		wantBlockProgressLogger := &Logger{
			receivedBlocks:  test.wantReceivedBlocks,
			receivedTxns:    test.wantReceivedTxns,
			receivedInputs:  test.wantReceivedInputs,
			receivedOutputs: test.wantReceivedOutputs,
			lastLogTime:     progressLogger.lastLogTime,
			progressAction:  progressLogger.progressAction,
			subsystemLogger: progressLogger.subsystemLogger,
		}
		if !reflect.DeepEqual(progressLogger, wantBlockProgressLogger) {
			t.Errorf("%s:\nwant: %+v\ngot: %+v\n", test.name,
				wantBlockProgressLogger, progressLogger)
		}
	}
}

// TestLogProgressMessage ensures the logged message is formatted with the
// accumulated totals and the singular nouns where appropriate.
func TestLogProgressMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.NewBackend(&buf).Logger("TEST")
	logger.SetLevel(slog.LevelInfo)

	block := blockstats.Block{
		Height: 100000,
		Time:   1293623863,
		Txs:    makeTxns(1, 1, 2),
	}
	New("Computed stats for", logger).LogProgress(&block, true)

	got := buf.String()
	wantParts := []string{
		"[INF] TEST: Computed stats for 1 block in the last ",
		"(1 transaction, 1 input, 2 outputs, height 100000, " +
			"2010-12-29 11:57:43 +0000 UTC)",
	}
	for _, want := range wantParts {
		if !strings.Contains(got, want) {
			t.Errorf("log message %q does not contain %q", got, want)
		}
	}
}
