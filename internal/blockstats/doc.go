// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockstats computes per-block statistics such as fees, feerates,
transaction sizes and unspent output deltas and returns them as JSON values.

The statistics mirror the getblockstats RPC.  Amounts are reported in coins as
exact decimal numbers with eight fractional digits, feerates are in coins per
byte, and the feerate percentiles are weighted by transaction size.

Callers may request a subset of the statistics by name.  Only the work needed
for the requested statistics is performed, and statistics that depend on the
values of spent outputs require a transaction index.
*/
package blockstats
