// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/univalue/internal/blockstats"
	"github.com/decred/univalue/internal/rpcserver"
)

// jsonOutput describes an output in the chain data file.  Values are in
// atoms.
type jsonOutput struct {
	Value dcrutil.Amount `json:"value"`
	Size  int64          `json:"size"`
}

// jsonTx describes a transaction in the chain data file.
type jsonTx struct {
	Coinbase bool         `json:"coinbase"`
	Size     int64        `json:"size"`
	Prevouts []jsonOutput `json:"prevouts"`
	Outputs  []jsonOutput `json:"outputs"`
}

// jsonBlock describes a block in the chain data file.
type jsonBlock struct {
	Hash       string         `json:"hash"`
	Height     int64          `json:"height"`
	Time       int64          `json:"time"`
	MedianTime int64          `json:"mediantime"`
	Subsidy    dcrutil.Amount `json:"subsidy"`
	Txs        []jsonTx       `json:"txs"`
}

// jsonChain is the top level object of the chain data file.
type jsonChain struct {
	Blocks []jsonBlock `json:"blocks"`
}

// convertOutputs converts outputs read from the chain data file.
func convertOutputs(outputs []jsonOutput) []blockstats.Output {
	if len(outputs) == 0 {
		return nil
	}
	converted := make([]blockstats.Output, 0, len(outputs))
	for _, out := range outputs {
		converted = append(converted, blockstats.Output{
			Value:         out.Value,
			SerializeSize: out.Size,
		})
	}
	return converted
}

// memChain houses a chain of blocks in memory.  It implements the
// rpcserver.Chain interface.
type memChain struct {
	blocks []*blockstats.Block
	byHash map[chainhash.Hash]*blockstats.Block
}

// Ensure memChain implements the rpcserver.Chain interface.
var _ rpcserver.Chain = (*memChain)(nil)

// BestHeight returns the height of the last block in the chain.
//
// This is part of the rpcserver.Chain interface implementation.
func (c *memChain) BestHeight() int64 {
	return int64(len(c.blocks)) - 1
}

// BlockByHeight returns the block at the given height.
//
// This is part of the rpcserver.Chain interface implementation.
func (c *memChain) BlockByHeight(height int64) (*blockstats.Block, error) {
	if height < 0 || height >= int64(len(c.blocks)) {
		return nil, fmt.Errorf("no block at height %d", height)
	}
	return c.blocks[height], nil
}

// BlockByHash returns the block with the given hash.
//
// This is part of the rpcserver.Chain interface implementation.
func (c *memChain) BlockByHash(hash *chainhash.Hash) (*blockstats.Block, error) {
	block, ok := c.byHash[*hash]
	if !ok {
		return nil, rpcserver.ErrBlockNotFound
	}
	return block, nil
}

// decodeChain reads a chain of blocks in the chain data file format from r.
// The blocks must be ordered by height starting from zero and every block
// must start with a single coinbase transaction.
func decodeChain(r io.Reader) (*memChain, error) {
	var data jsonChain
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("malformed chain data: %w", err)
	}
	if len(data.Blocks) == 0 {
		return nil, fmt.Errorf("chain data contains no blocks")
	}

	chain := &memChain{
		blocks: make([]*blockstats.Block, 0, len(data.Blocks)),
		byHash: make(map[chainhash.Hash]*blockstats.Block, len(data.Blocks)),
	}
	for i := range data.Blocks {
		jb := &data.Blocks[i]
		if jb.Height != int64(i) {
			return nil, fmt.Errorf("block %d has height %d", i, jb.Height)
		}
		hash, err := chainhash.NewHashFromStr(jb.Hash)
		if err != nil {
			return nil, fmt.Errorf("block %d has an invalid hash: %w", i, err)
		}
		if _, ok := chain.byHash[*hash]; ok {
			return nil, fmt.Errorf("block %d has duplicate hash %s", i, hash)
		}

		block := &blockstats.Block{
			Hash:       *hash,
			Height:     jb.Height,
			Time:       jb.Time,
			MedianTime: jb.MedianTime,
			Subsidy:    jb.Subsidy,
			Txs:        make([]blockstats.Tx, 0, len(jb.Txs)),
		}
		for j, jtx := range jb.Txs {
			if jtx.Coinbase != (j == 0) {
				return nil, fmt.Errorf("block %s transaction %d: only the "+
					"first transaction must be a coinbase", hash, j)
			}
			block.Txs = append(block.Txs, blockstats.Tx{
				Coinbase: jtx.Coinbase,
				Size:     jtx.Size,
				Prevouts: convertOutputs(jtx.Prevouts),
				Outputs:  convertOutputs(jtx.Outputs),
			})
		}

		chain.blocks = append(chain.blocks, block)
		chain.byHash[*hash] = block
	}
	return chain, nil
}

// loadChain reads the chain data file at the given path.
func loadChain(path string) (*memChain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chain, err := decodeChain(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return chain, nil
}
