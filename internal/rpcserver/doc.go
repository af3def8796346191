// Copyright (c) 2019-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package rpcserver implements the JSON-RPC commands for querying block
statistics.

Overview

The server is transport agnostic.  Callers hand it a method name along with
the positional parameters as a JSON array value and receive either the result
value or a *dcrjson.RPCError suitable for use in replies.  HandleRequest goes
one step further and produces the fully marshalled JSON-RPC 1.0 reply.

The following methods are supported:

	getbestblockhash
	getblockcount
	getblockhash <height>
	getblockstats <hash_or_height> [stats]
	getchaintxstats [nblocks] [blockhash]
	debuglevel <levelspec>

The statistics for a block are computed in full once and cached by block hash
when a transaction index is available, so repeated queries for the same block
only select from the cached result.
*/
package rpcserver
