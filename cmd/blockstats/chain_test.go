// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/univalue/internal/rpcserver"
)

const (
	testHash0 = "0000000000000000000000000000000000000000000000000000000000000001"
	testHash1 = "0000000000000000000000000000000000000000000000000000000000000002"
)

// testChainData is a two block chain in the chain data file format.
var testChainData = `{"blocks": [{
	"hash": "` + testHash0 + `", "height": 0, "time": 1700000000,
	"mediantime": 1699998200, "subsidy": 500000000,
	"txs": [{"coinbase": true, "size": 150,
		"outputs": [{"value": 500000000, "size": 30}]}]
}, {
	"hash": "` + testHash1 + `", "height": 1, "time": 1700000300,
	"mediantime": 1699998500, "subsidy": 500000000,
	"txs": [{"coinbase": true, "size": 150,
		"outputs": [{"value": 501000000, "size": 30}]},
	{"size": 250,
		"prevouts": [{"value": 200000000, "size": 30}],
		"outputs": [{"value": 100000000, "size": 30},
			{"value": 99000000, "size": 30}]}]
}]}`

// TestDecodeChain ensures chain data files are decoded into blocks that can be
// looked up by height and hash.
func TestDecodeChain(t *testing.T) {
	t.Parallel()

	chain, err := decodeChain(strings.NewReader(testChainData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chain.BestHeight() != 1 {
		t.Fatalf("unexpected best height %d", chain.BestHeight())
	}

	block, err := chain.BlockByHeight(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block.Hash.String() != testHash1 || len(block.Txs) != 2 {
		t.Fatalf("unexpected block %s with %d txns", block.Hash,
			len(block.Txs))
	}
	tx := block.Txs[1]
	if tx.Coinbase || tx.Size != 250 || len(tx.Prevouts) != 1 ||
		len(tx.Outputs) != 2 || tx.Outputs[1].Value != 99000000 ||
		tx.Prevouts[0].SerializeSize != 30 {

		t.Fatalf("unexpected transaction %+v", tx)
	}

	hash, _ := chainhash.NewHashFromStr(testHash0)
	block, err = chain.BlockByHash(hash)
	if err != nil || block.Height != 0 {
		t.Fatalf("unexpected lookup by hash: %v (err %v)", block, err)
	}

	missing := chainhash.Hash{0xff}
	if _, err := chain.BlockByHash(&missing); !errors.Is(err,
		rpcserver.ErrBlockNotFound) {

		t.Fatalf("unexpected error for missing block: %v", err)
	}
	if _, err := chain.BlockByHeight(2); err == nil {
		t.Fatal("did not receive expected error for height after tip")
	}
}

// TestDecodeChainErrors ensures malformed chain data is rejected.
func TestDecodeChainErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{{
		name: "not json",
		data: "blocks",
	}, {
		name: "no blocks",
		data: `{"blocks": []}`,
	}, {
		name: "unknown field",
		data: `{"blocks": [{"hash": "` + testHash0 + `", "weight": 1}]}`,
	}, {
		name: "height gap",
		data: `{"blocks": [{"hash": "` + testHash0 + `", "height": 1}]}`,
	}, {
		name: "bad hash",
		data: `{"blocks": [{"hash": "xyz", "height": 0}]}`,
	}, {
		name: "duplicate hash",
		data: `{"blocks": [{"hash": "` + testHash0 + `", "height": 0}, ` +
			`{"hash": "` + testHash0 + `", "height": 1}]}`,
	}, {
		name: "missing coinbase",
		data: `{"blocks": [{"hash": "` + testHash0 + `", "height": 0, ` +
			`"txs": [{"size": 100}]}]}`,
	}, {
		name: "second coinbase",
		data: `{"blocks": [{"hash": "` + testHash0 + `", "height": 0, ` +
			`"txs": [{"coinbase": true}, {"coinbase": true}]}]}`,
	}}

	for _, test := range tests {
		if _, err := decodeChain(strings.NewReader(test.data)); err == nil {
			t.Errorf("%q: did not receive expected error", test.name)
		}
	}
}
