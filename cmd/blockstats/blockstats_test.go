// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrjson/v4"
	"github.com/decred/univalue"
	"github.com/decred/univalue/internal/rpcserver"
)

// newTestServer returns a server for the test chain data along with the chain.
func newTestServer(t *testing.T, cfg *config) (*rpcserver.Server, *memChain) {
	t.Helper()

	chain, err := decodeChain(strings.NewReader(testChainData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := rpcserver.New(&rpcserver.Config{
		Chain:              chain,
		LogManager:         &logManager{},
		TxIndex:            cfg.TxIndex,
		MaxBlockSize:       cfg.MaxBlockSize,
		StatsCacheSize:     cfg.StatsCacheSize,
		TargetTimePerBlock: cfg.TargetTime,
	})
	return s, chain
}

// TestParseParam ensures command line arguments are converted to the expected
// JSON types.
func TestParseParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg      string
		wantType univalue.VType
		want     string
	}{
		{"null", univalue.VNull, "null"},
		{"true", univalue.VTrue, "true"},
		{"false", univalue.VFalse, "false"},
		{"12", univalue.VNum, "12"},
		{"-1", univalue.VNum, "-1"},
		{"1e3", univalue.VNum, "1e3"},
		{"012", univalue.VStr, `"012"`},
		{testHash0, univalue.VStr, `"` + testHash0 + `"`},
	}

	for _, test := range tests {
		got := parseParam(test.arg)
		if got.Type() != test.wantType || got.String() != test.want {
			t.Errorf("%q: got %v %s, want %v %s", test.arg, got.Type(), got,
				test.wantType, test.want)
		}
	}
}

// TestBuildParams ensures the selected statistics are only appended for a
// getblockstats command without an explicit stats parameter.
func TestBuildParams(t *testing.T) {
	t.Parallel()

	cfg := &config{Stats: []string{"height", "txs"}}
	tests := []struct {
		method string
		args   []string
		want   string
	}{
		{"getblockstats", []string{"1"}, `[1,["height","txs"]]`},
		{"getblockstats", []string{"1", "null"}, `[1,null]`},
		{"getblockhash", []string{"1"}, `[1]`},
		{"getblockcount", nil, `[]`},
	}

	for _, test := range tests {
		got := buildParams(cfg, test.method, test.args).String()
		if got != test.want {
			t.Errorf("%s %v: got %s, want %s", test.method, test.args, got,
				test.want)
		}
	}
}

// TestRunCommand ensures commands produce the expected output in both result
// and JSON-RPC reply modes.
func TestRunCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    config
		method string
		args   []string
		want   string
	}{{
		name:   "string result unquoted",
		cfg:    config{MaxBlockSize: 393216},
		method: "getbestblockhash",
		want:   testHash1 + "\n",
	}, {
		name:   "compact stats",
		cfg:    config{MaxBlockSize: 393216, TxIndex: true},
		method: "getblockstats",
		args:   []string{testHash1, "null"},
		want: `{"avgfee":0.01000000,"avgfeerate":0.00004000,"avgtxsize":250,` +
			`"blockhash":"` + testHash1 + `","feerate_percentiles":` +
			`[0.00004000,0.00004000,0.00004000,0.00004000,0.00004000],` +
			`"height":1,"ins":1,"maxfee":0.01000000,"maxfeerate":0.00004000,` +
			`"maxtxsize":250,"medianfee":0.01000000,` +
			`"medianfeerate":0.00004000,"mediantime":1699998500,` +
			`"mediantxsize":250,"minfee":0.01000000,"minfeerate":0.00004000,` +
			`"mintxsize":250,"outs":3,"subsidy":5.00000000,` +
			`"time":1700000300,"total_out":1.99000000,"total_size":250,` +
			`"totalfee":0.01000000,"txs":2,"utxo_increase":2,` +
			`"utxo_size_inc":142}` + "\n",
	}, {
		name: "indented stats",
		cfg: config{MaxBlockSize: 393216, Indent: 2,
			Stats: []string{"txs", "height"}},
		method: "getblockstats",
		args:   []string{"0"},
		want:   "{\n  \"height\": 0,\n  \"txs\": 1\n}\n",
	}, {
		name: "coinbase only fee stats without txindex",
		cfg: config{MaxBlockSize: 393216,
			Stats: []string{"totalfee", "txs"}},
		method: "getblockstats",
		args:   []string{"0"},
		want:   `{"totalfee":0.00000000,"txs":1}` + "\n",
	}, {
		name:   "chain tx stats",
		cfg:    config{MaxBlockSize: 393216},
		method: "getchaintxstats",
		args:   []string{"0"},
		want: `{"time":1700000300,"txcount":3,"window_final_block_hash":"` +
			testHash1 + `","window_block_count":0}` + "\n",
	}, {
		name:   "json-rpc reply",
		cfg:    config{MaxBlockSize: 393216, JSONRPC: true},
		method: "getblockcount",
		want:   `"result":1`,
	}}

	for _, test := range tests {
		s, _ := newTestServer(t, &test.cfg)
		params := buildParams(&test.cfg, test.method, test.args)
		var buf bytes.Buffer
		err := runCommand(context.Background(), &test.cfg, s, &buf, 1,
			test.method, params)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		if test.cfg.JSONRPC {
			if !strings.Contains(buf.String(), test.want) {
				t.Errorf("%q: reply %s does not contain %s", test.name, &buf,
					test.want)
			}
			continue
		}
		if buf.String() != test.want {
			t.Errorf("%q: unexpected output\ngot:  %q\nwant: %q", test.name,
				buf.String(), test.want)
		}
	}
}

// TestRunCommandError ensures RPC errors are returned to the caller.
func TestRunCommandError(t *testing.T) {
	t.Parallel()

	cfg := config{MaxBlockSize: 393216}
	s, _ := newTestServer(t, &cfg)
	params := buildParams(&cfg, "getblockstats", []string{"5"})
	var buf bytes.Buffer
	err := runCommand(context.Background(), &cfg, s, &buf, 1,
		"getblockstats", params)
	var rpcErr *dcrjson.RPCError
	if !errors.As(err, &rpcErr) ||
		rpcErr.Code != dcrjson.ErrRPCInvalidParameter {

		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

// TestReportAllBlocks ensures the statistics of every block are written in
// height order.
func TestReportAllBlocks(t *testing.T) {
	t.Parallel()

	cfg := config{MaxBlockSize: 393216, Stats: []string{"height", "outs"}}
	s, chain := newTestServer(t, &cfg)
	var buf bytes.Buffer
	err := reportAllBlocks(context.Background(), &cfg, chain, s, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"height":0,"outs":1}` + "\n" + `{"height":1,"outs":3}` + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected output\ngot:  %q\nwant: %q", buf.String(), want)
	}

	// A canceled context stops the report before any block.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	buf.Reset()
	if err := reportAllBlocks(ctx, &cfg, chain, s, &buf); err == nil {
		t.Fatal("did not receive expected error")
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
