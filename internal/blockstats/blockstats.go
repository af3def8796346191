// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstats

import (
	"fmt"
	"sort"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/univalue"
)

// utxoOverhead is the number of bytes an unspent output occupies in the utxo
// index in addition to its serialized form: the outpoint it is stored under
// (a 32-byte hash and 4-byte index), its 4-byte height and a coinbase flag.
const utxoOverhead = 32 + 4 + 4 + 1

// Output describes a transaction output, or the output spent by an input,
// by its value and serialized size.
type Output struct {
	Value         dcrutil.Amount
	SerializeSize int64
}

// Tx describes the parts of a transaction the statistics are computed from.
// Prevouts holds the outputs spent by the inputs of the transaction in input
// order.  Their values are only meaningful when a transaction index is
// available.
type Tx struct {
	Coinbase bool
	Size     int64
	Prevouts []Output
	Outputs  []Output
}

// Block describes a block the statistics are computed for.  The first
// transaction is expected to be the coinbase.
type Block struct {
	Hash       chainhash.Hash
	Height     int64
	Time       int64
	MedianTime int64
	Subsidy    dcrutil.Amount
	Txs        []Tx
}

// Config houses the chain parameters the statistics depend on.
type Config struct {
	// MaxBlockSize is the maximum serialized size of a block.  It bounds the
	// minimum transaction size.
	MaxBlockSize int64

	// TxIndex indicates whether the values of the outputs spent by each
	// transaction are known.  Fee related statistics require it.
	TxIndex bool
}

// These are the names of every supported statistic in the order they are
// reported.
const (
	StatAvgFee             = "avgfee"
	StatAvgFeeRate         = "avgfeerate"
	StatAvgTxSize          = "avgtxsize"
	StatBlockHash          = "blockhash"
	StatFeeRatePercentiles = "feerate_percentiles"
	StatHeight             = "height"
	StatIns                = "ins"
	StatMaxFee             = "maxfee"
	StatMaxFeeRate         = "maxfeerate"
	StatMaxTxSize          = "maxtxsize"
	StatMedianFee          = "medianfee"
	StatMedianFeeRate      = "medianfeerate"
	StatMedianTime         = "mediantime"
	StatMedianTxSize       = "mediantxsize"
	StatMinFee             = "minfee"
	StatMinFeeRate         = "minfeerate"
	StatMinTxSize          = "mintxsize"
	StatOuts               = "outs"
	StatSubsidy            = "subsidy"
	StatTime               = "time"
	StatTotalOut           = "total_out"
	StatTotalSize          = "total_size"
	StatTotalFee           = "totalfee"
	StatTxs                = "txs"
	StatUtxoIncrease       = "utxo_increase"
	StatUtxoSizeInc        = "utxo_size_inc"
)

// selection tracks which statistics were requested.
type selection map[string]struct{}

// has returns whether any of the provided statistics were requested.
func (s selection) has(stats ...string) bool {
	for _, stat := range stats {
		if _, ok := s[stat]; ok {
			return true
		}
	}
	return false
}

// accumulator houses the running totals gathered while walking the
// transactions of a block.
type accumulator struct {
	maxFee, minFee         dcrutil.Amount
	maxFeeRate, minFeeRate dcrutil.Amount
	haveFee                bool
	totalOut, totalFee     dcrutil.Amount
	inputs, outputs        int64
	maxTxSize, minTxSize   int64
	totalSize              int64
	utxoSizeInc            int64
	fees                   []dcrutil.Amount
	feeRates               []FeeRateSize
	txSizes                []int64
}

// Compute returns the requested statistics for the block as a JSON object.
// Every statistic is returned when stats is empty.  Otherwise the result
// holds only the requested statistics, each once, ordered by name.  An error
// of kind ErrInvalidStat is returned for an unknown statistic and an error of
// kind ErrTxIndexRequired when a requested statistic needs the spent outputs
// of a non-coinbase transaction and no transaction index is available.
func Compute(cfg *Config, block *Block, stats []string) (*univalue.Value, error) {
	selected := make(selection, len(stats))
	for _, stat := range stats {
		selected[stat] = struct{}{}
	}

	// Work out which passes over the transactions are needed.
	doAll := len(selected) == 0
	doMedianTxSize := doAll || selected.has(StatMedianTxSize)
	doMedianFee := doAll || selected.has(StatMedianFee)
	doFeeRatePercentiles := doAll || selected.has(StatFeeRatePercentiles,
		StatMedianFeeRate)
	loopInputs := doAll || doMedianFee || doFeeRatePercentiles ||
		selected.has(StatUtxoSizeInc, StatTotalFee, StatAvgFee,
			StatAvgFeeRate, StatMinFee, StatMaxFee, StatMinFeeRate,
			StatMaxFeeRate)
	loopOutputs := doAll || loopInputs || selected.has(StatTotalOut)
	doCalculateSize := doMedianTxSize || loopInputs ||
		selected.has(StatTotalSize, StatAvgTxSize, StatMinTxSize,
			StatMaxTxSize)

	acc := accumulator{minTxSize: cfg.MaxBlockSize}
	for i := range block.Txs {
		tx := &block.Txs[i]
		acc.outputs += int64(len(tx.Outputs))
		var txTotalOut dcrutil.Amount
		if loopOutputs {
			for _, out := range tx.Outputs {
				txTotalOut += out.Value
				acc.utxoSizeInc += out.SerializeSize + utxoOverhead
			}
		}

		if tx.Coinbase {
			continue
		}

		acc.inputs += int64(len(tx.Prevouts))
		acc.totalOut += txTotalOut

		var txSize int64
		if doCalculateSize {
			txSize = tx.Size
			if doMedianTxSize {
				acc.txSizes = append(acc.txSizes, txSize)
			}
			if txSize > acc.maxTxSize {
				acc.maxTxSize = txSize
			}
			if txSize < acc.minTxSize {
				acc.minTxSize = txSize
			}
			acc.totalSize += txSize
		}

		if !loopInputs {
			continue
		}

		// Spent output values are only known with a transaction index.  A
		// block with only a coinbase never needs them.
		if !cfg.TxIndex {
			return nil, makeError(ErrTxIndexRequired, "One or more of the "+
				"selected stats requires -txindex enabled")
		}

		var txTotalIn dcrutil.Amount
		for _, prevout := range tx.Prevouts {
			txTotalIn += prevout.Value
			acc.utxoSizeInc -= prevout.SerializeSize + utxoOverhead
		}

		txFee := txTotalIn - txTotalOut
		if txFee < 0 {
			str := fmt.Sprintf("transaction %d of block %s spends %v more "+
				"than its inputs", i, block.Hash, -txFee)
			return nil, makeError(ErrInvalidBlock, str)
		}
		var feeRate dcrutil.Amount
		if txSize != 0 {
			feeRate = txFee / dcrutil.Amount(txSize)
		}
		if doMedianFee {
			acc.fees = append(acc.fees, txFee)
		}
		if doFeeRatePercentiles {
			acc.feeRates = append(acc.feeRates, FeeRateSize{feeRate, txSize})
		}
		if !acc.haveFee {
			acc.minFee, acc.minFeeRate = txFee, feeRate
			acc.haveFee = true
		}
		if txFee > acc.maxFee {
			acc.maxFee = txFee
		}
		if txFee < acc.minFee {
			acc.minFee = txFee
		}
		if feeRate > acc.maxFeeRate {
			acc.maxFeeRate = feeRate
		}
		if feeRate < acc.minFeeRate {
			acc.minFeeRate = feeRate
		}
		acc.totalFee += txFee
	}

	all := acc.result(cfg, block)
	log.Debugf("Computed statistics for block %s (height %d, %d txns)",
		block.Hash, block.Height, len(block.Txs))
	if doAll {
		return all, nil
	}
	return Select(all, stats)
}

// result builds the object holding every statistic from the accumulated
// totals.
func (acc *accumulator) result(cfg *Config, block *Block) *univalue.Value {
	percentiles := PercentilesBySize(acc.feeRates, acc.totalSize)
	feeRates := univalue.New(univalue.VArr)
	for _, feeRate := range percentiles {
		feeRates.PushBack(AmountValue(feeRate))
	}

	numTxns := int64(len(block.Txs))
	var avgFee, avgFeeRate dcrutil.Amount
	var avgTxSize int64
	if numTxns > 1 {
		avgFee = acc.totalFee / dcrutil.Amount(numTxns-1)
		avgTxSize = acc.totalSize / (numTxns - 1)
	}
	if acc.totalSize > 0 {
		avgFeeRate = acc.totalFee / dcrutil.Amount(acc.totalSize)
	}
	minTxSize := acc.minTxSize
	if minTxSize == cfg.MaxBlockSize {
		minTxSize = 0
	}

	ret := univalue.New(univalue.VObj)
	ret.PushKVEnd(StatAvgFee, AmountValue(avgFee))
	ret.PushKVEnd(StatAvgFeeRate, AmountValue(avgFeeRate))
	ret.PushKVEnd(StatAvgTxSize, univalue.NewInt64(avgTxSize))
	ret.PushKVEnd(StatBlockHash, univalue.NewStr(block.Hash.String()))
	ret.PushKVEnd(StatFeeRatePercentiles, feeRates)
	ret.PushKVEnd(StatHeight, univalue.NewInt64(block.Height))
	ret.PushKVEnd(StatIns, univalue.NewInt64(acc.inputs))
	ret.PushKVEnd(StatMaxFee, AmountValue(acc.maxFee))
	ret.PushKVEnd(StatMaxFeeRate, AmountValue(acc.maxFeeRate))
	ret.PushKVEnd(StatMaxTxSize, univalue.NewInt64(acc.maxTxSize))
	ret.PushKVEnd(StatMedianFee, AmountValue(TruncatedMedian(acc.fees)))
	ret.PushKVEnd(StatMedianFeeRate, AmountValue(percentiles[2]))
	ret.PushKVEnd(StatMedianTime, univalue.NewInt64(block.MedianTime))
	ret.PushKVEnd(StatMedianTxSize,
		univalue.NewInt64(TruncatedMedian(acc.txSizes)))
	ret.PushKVEnd(StatMinFee, AmountValue(acc.minFee))
	ret.PushKVEnd(StatMinFeeRate, AmountValue(acc.minFeeRate))
	ret.PushKVEnd(StatMinTxSize, univalue.NewInt64(minTxSize))
	ret.PushKVEnd(StatOuts, univalue.NewInt64(acc.outputs))
	ret.PushKVEnd(StatSubsidy, AmountValue(block.Subsidy))
	ret.PushKVEnd(StatTime, univalue.NewInt64(block.Time))
	ret.PushKVEnd(StatTotalOut, AmountValue(acc.totalOut))
	ret.PushKVEnd(StatTotalSize, univalue.NewInt64(acc.totalSize))
	ret.PushKVEnd(StatTotalFee, AmountValue(acc.totalFee))
	ret.PushKVEnd(StatTxs, univalue.NewInt64(numTxns))
	ret.PushKVEnd(StatUtxoIncrease,
		univalue.NewInt64(acc.outputs-acc.inputs))
	ret.PushKVEnd(StatUtxoSizeInc, univalue.NewInt64(acc.utxoSizeInc))
	return ret
}

// Select returns a new object holding the requested statistics from a full
// set of statistics as returned by Compute, each once and ordered by name.
// An error of kind ErrInvalidStat is returned when a requested statistic does
// not exist.
func Select(all *univalue.Value, stats []string) (*univalue.Value, error) {
	names := make([]string, 0, len(stats))
	seen := make(map[string]struct{}, len(stats))
	for _, stat := range stats {
		if _, ok := seen[stat]; ok {
			continue
		}
		seen[stat] = struct{}{}
		names = append(names, stat)
	}
	sort.Strings(names)

	ret := univalue.New(univalue.VObj)
	for _, stat := range names {
		value := all.Get(stat)
		if value.IsNull() {
			str := fmt.Sprintf("Invalid selected statistic %s", stat)
			return nil, makeError(ErrInvalidStat, str)
		}
		ret.PushKVEnd(stat, value)
	}
	return ret, nil
}
