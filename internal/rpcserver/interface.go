// Copyright (c) 2019-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import (
	"errors"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/univalue/internal/blockstats"
)

// ErrBlockNotFound is returned by Chain implementations when the requested
// block is not known.
var ErrBlockNotFound = errors.New("block not found")

// Chain represents a chain of blocks for use with the RPC server.
//
// The interface contract requires that all of these methods are safe for
// concurrent access.
type Chain interface {
	// BestHeight returns the height of the current best chain tip.
	BestHeight() int64

	// BlockByHeight returns the block at the given height in the main chain.
	BlockByHeight(height int64) (*blockstats.Block, error)

	// BlockByHash returns the block with the given hash.  ErrBlockNotFound
	// is returned when no such block exists.
	BlockByHash(hash *chainhash.Hash) (*blockstats.Block, error)
}

// LogManager represents a log manager for use with the RPC server.
//
// The interface contract requires that all of these methods are safe for
// concurrent access.
type LogManager interface {
	// SupportedSubsystems returns a sorted slice of the supported subsystems
	// for logging purposes.
	SupportedSubsystems() []string

	// ParseAndSetDebugLevels attempts to parse the specified debug level and
	// set the levels accordingly.  An appropriate error is returned if
	// anything is invalid.
	ParseAndSetDebugLevels(debugLevel string) error
}
