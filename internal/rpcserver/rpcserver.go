// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/container/lru"
	"github.com/decred/dcrd/dcrjson/v4"
	"github.com/decred/univalue"
	"github.com/decred/univalue/internal/blockstats"
)

const (
	// jsonrpcSemverString is the JSON-RPC version used in replies.
	jsonrpcSemverString = "1.0"

	// DefaultStatsCacheSize is the default number of blocks for which the
	// full statistics are cached.
	DefaultStatsCacheSize = 100

	// defaultTargetTimePerBlock is the block interval assumed when the
	// configuration does not provide one.
	defaultTargetTimePerBlock = 5 * time.Minute

	// defaultTxStatsWindow is the default period covered by the
	// getchaintxstats command.
	defaultTxStatsWindow = 30 * 24 * time.Hour
)

type commandHandler func(context.Context, *Server, *univalue.Array) (*univalue.Value, error)

// rpcHandlers maps RPC command strings to appropriate handler functions.
var rpcHandlers = map[string]commandHandler{
	"debuglevel":       handleDebugLevel,
	"getbestblockhash": handleGetBestBlockHash,
	"getblockcount":    handleGetBlockCount,
	"getblockhash":     handleGetBlockHash,
	"getblockstats":    handleGetBlockStats,
	"getchaintxstats":  handleGetChainTxStats,
}

// rpcInternalError is a convenience function to convert an internal error to
// an RPC error with the appropriate code set.  It also logs the error to the
// RPC server subsystem since internal errors really should not occur.  The
// context parameter is only used in the log message and may be empty if it's
// not needed.
func rpcInternalError(errStr, context string) *dcrjson.RPCError {
	logStr := errStr
	if context != "" {
		logStr = context + ": " + errStr
	}
	log.Error(logStr)
	return dcrjson.NewRPCError(dcrjson.ErrRPCInternal.Code, errStr)
}

// rpcInvalidError is a convenience function to convert an invalid parameter
// error to an RPC error with the appropriate code set.
func rpcInvalidError(fmtStr string, args ...interface{}) *dcrjson.RPCError {
	return dcrjson.NewRPCError(dcrjson.ErrRPCInvalidParameter,
		fmt.Sprintf(fmtStr, args...))
}

// rpcTypeError is a convenience function to convert a parameter of the wrong
// JSON type to an RPC error with the appropriate code set.
func rpcTypeError(fmtStr string, args ...interface{}) *dcrjson.RPCError {
	return dcrjson.NewRPCError(dcrjson.ErrRPCType,
		fmt.Sprintf(fmtStr, args...))
}

// rpcAddressKeyError is a convenience function to convert an address/key error
// to an RPC error with the appropriate code set.
func rpcAddressKeyError(fmtStr string, args ...interface{}) *dcrjson.RPCError {
	return dcrjson.NewRPCError(dcrjson.ErrRPCInvalidAddressOrKey,
		fmt.Sprintf(fmtStr, args...))
}

// rpcMiscError is a convenience function for returning a nicely formatted RPC
// error which indicates there is an unquantifiable error.  Use this sparingly;
// misc return codes are a cop out.
func rpcMiscError(message string) *dcrjson.RPCError {
	return dcrjson.NewRPCError(dcrjson.ErrRPCMisc, message)
}

// checkNumParams returns an invalid parameter error when the number of
// provided parameters is outside of the passed inclusive range.
func checkNumParams(params *univalue.Array, min, max int) error {
	if n := params.Len(); n < min || n > max {
		if min == max {
			return rpcInvalidError("wrong number of params (expected %d, "+
				"received %d)", min, n)
		}
		return rpcInvalidError("wrong number of params (expected %d to %d, "+
			"received %d)", min, max, n)
	}
	return nil
}

// handleDebugLevel implements the debuglevel command.
func handleDebugLevel(_ context.Context, s *Server, params *univalue.Array) (*univalue.Value, error) {
	if err := checkNumParams(params, 1, 1); err != nil {
		return nil, err
	}
	levelSpec, err := params.Index(0).Str()
	if err != nil {
		return nil, rpcTypeError("levelspec must be a string")
	}
	if s.cfg.LogManager == nil {
		return nil, rpcMiscError("Log levels may not be changed")
	}

	// Special show command to list supported subsystems.
	if levelSpec == "show" {
		return univalue.NewStr(fmt.Sprintf("Supported subsystems %v",
			s.cfg.LogManager.SupportedSubsystems())), nil
	}

	err = s.cfg.LogManager.ParseAndSetDebugLevels(levelSpec)
	if err != nil {
		return nil, rpcInvalidError("Invalid debug level %v: %v",
			levelSpec, err)
	}

	return univalue.NewStr("Done."), nil
}

// handleGetBestBlockHash implements the getbestblockhash command.
func handleGetBestBlockHash(_ context.Context, s *Server, params *univalue.Array) (*univalue.Value, error) {
	if err := checkNumParams(params, 0, 0); err != nil {
		return nil, err
	}
	height := s.cfg.Chain.BestHeight()
	block, err := s.cfg.Chain.BlockByHeight(height)
	if err != nil {
		context := fmt.Sprintf("Failed to load best block at height %d",
			height)
		return nil, rpcInternalError(err.Error(), context)
	}
	return univalue.NewStr(block.Hash.String()), nil
}

// handleGetBlockCount implements the getblockcount command.
func handleGetBlockCount(_ context.Context, s *Server, params *univalue.Array) (*univalue.Value, error) {
	if err := checkNumParams(params, 0, 0); err != nil {
		return nil, err
	}
	return univalue.NewInt64(s.cfg.Chain.BestHeight()), nil
}

// handleGetBlockHash implements the getblockhash command.
func handleGetBlockHash(_ context.Context, s *Server, params *univalue.Array) (*univalue.Value, error) {
	if err := checkNumParams(params, 1, 1); err != nil {
		return nil, err
	}
	index, err := params.Index(0).Int64()
	if err != nil {
		return nil, rpcTypeError("index must be an integer")
	}
	if index < 0 || index > s.cfg.Chain.BestHeight() {
		return nil, &dcrjson.RPCError{
			Code:    dcrjson.ErrRPCOutOfRange,
			Message: fmt.Sprintf("Block number out of range: %v", index),
		}
	}
	block, err := s.cfg.Chain.BlockByHeight(index)
	if err != nil {
		context := fmt.Sprintf("Failed to load block at height %d", index)
		return nil, rpcInternalError(err.Error(), context)
	}

	return univalue.NewStr(block.Hash.String()), nil
}

// parseHash decodes the passed parameter as a hex encoded block hash.  The
// name of the parameter is used in error messages.
func parseHash(name string, param *univalue.Value) (*chainhash.Hash, error) {
	hashStr, err := param.Str()
	if err != nil {
		return nil, rpcTypeError("%s must be a string, got %s", name,
			param.Type())
	}
	if len(hashStr) != chainhash.MaxHashStringSize {
		return nil, rpcInvalidError("%s must be of length %d (not %d, for "+
			"'%s')", name, chainhash.MaxHashStringSize, len(hashStr), hashStr)
	}
	hash, err := chainhash.NewHashFromStr(hashStr)
	if err != nil {
		return nil, rpcInvalidError("%s must be hexadecimal string (not "+
			"'%s')", name, hashStr)
	}
	return hash, nil
}

// blockByHash returns the block with the passed hash, converting a missing
// block to the appropriate RPC error.
func (s *Server) blockByHash(hash *chainhash.Hash) (*blockstats.Block, error) {
	block, err := s.cfg.Chain.BlockByHash(hash)
	if err != nil {
		if errors.Is(err, ErrBlockNotFound) {
			return nil, rpcAddressKeyError("Block not found")
		}
		context := fmt.Sprintf("Failed to load block %s", hash)
		return nil, rpcInternalError(err.Error(), context)
	}
	return block, nil
}

// lookupBlock returns the block identified by the passed parameter which is
// either a block height or the hex encoded hash of the block.
func (s *Server) lookupBlock(hashOrHeight *univalue.Value) (*blockstats.Block, error) {
	switch {
	case hashOrHeight.IsNum():
		height, err := hashOrHeight.Int64()
		if err != nil {
			return nil, rpcInvalidError("Target block height %s is not "+
				"an integer", hashOrHeight)
		}
		if height < 0 {
			return nil, rpcInvalidError("Target block height %d is "+
				"negative", height)
		}
		if best := s.cfg.Chain.BestHeight(); height > best {
			return nil, rpcInvalidError("Target block height %d after "+
				"current tip %d", height, best)
		}
		block, err := s.cfg.Chain.BlockByHeight(height)
		if err != nil {
			context := fmt.Sprintf("Failed to load block at height %d",
				height)
			return nil, rpcInternalError(err.Error(), context)
		}
		return block, nil

	case hashOrHeight.IsStr():
		hash, err := parseHash("hash_or_height", hashOrHeight)
		if err != nil {
			return nil, err
		}
		return s.blockByHash(hash)
	}

	return nil, rpcTypeError("hash_or_height must be a block hash or "+
		"height, got %s", hashOrHeight.Type())
}

// parseStatNames returns the statistic names in the passed optional parameter.
func parseStatNames(param *univalue.Value) ([]string, error) {
	if param.IsNull() {
		return nil, nil
	}
	arr, err := param.ArrayValue()
	if err != nil {
		return nil, rpcTypeError("stats must be an array of strings")
	}
	stats := make([]string, 0, arr.Len())
	var typeErr error
	arr.ForEach(func(i int, v *univalue.Value) bool {
		stat, err := v.Str()
		if err != nil {
			typeErr = rpcTypeError("stats[%d] must be a string, got %s", i,
				v.Type())
			return false
		}
		stats = append(stats, stat)
		return true
	})
	if typeErr != nil {
		return nil, typeErr
	}
	return stats, nil
}

// statsError converts an error from computing block statistics to an RPC
// error with the appropriate code set.
func statsError(err error) error {
	var kind blockstats.ErrorKind
	if !errors.As(err, &kind) {
		return rpcInternalError(err.Error(), "Failed to compute block stats")
	}
	switch kind {
	case blockstats.ErrInvalidStat, blockstats.ErrTxIndexRequired:
		return rpcInvalidError("%s", err.Error())
	}
	return rpcMiscError(err.Error())
}

// handleGetBlockStats implements the getblockstats command.
func handleGetBlockStats(_ context.Context, s *Server, params *univalue.Array) (*univalue.Value, error) {
	if err := checkNumParams(params, 1, 2); err != nil {
		return nil, err
	}
	block, err := s.lookupBlock(params.Index(0))
	if err != nil {
		return nil, err
	}
	stats, err := parseStatNames(params.Index(1))
	if err != nil {
		return nil, err
	}

	cfg := blockstats.Config{
		MaxBlockSize: s.cfg.MaxBlockSize,
		TxIndex:      s.cfg.TxIndex,
	}

	// Without a transaction index only a subset of the statistics can be
	// computed, so there is no full result to cache.
	if !s.cfg.TxIndex || s.statsCache == nil {
		ret, err := blockstats.Compute(&cfg, block, stats)
		if err != nil {
			return nil, statsError(err)
		}
		return ret, nil
	}

	all, ok := s.statsCache.Get(block.Hash)
	if !ok {
		all, err = blockstats.Compute(&cfg, block, nil)
		if err != nil {
			// Some statistics may still be available when the full set
			// is not, such as the height of a block with an invalid fee.
			if len(stats) == 0 {
				return nil, statsError(err)
			}
			ret, err := blockstats.Compute(&cfg, block, stats)
			if err != nil {
				return nil, statsError(err)
			}
			return ret, nil
		}
		s.statsCache.Put(block.Hash, all)
	}
	if len(stats) == 0 {
		ret := all.Clone()
		return &ret, nil
	}
	ret, err := blockstats.Select(all, stats)
	if err != nil {
		return nil, statsError(err)
	}
	return ret, nil
}

// chainTxCount returns the total number of transactions in the chain up to and
// including the block at the passed height.
func (s *Server) chainTxCount(ctx context.Context, height int64) (int64, error) {
	var count int64
	for h := int64(0); h <= height; h++ {
		if ctx.Err() != nil {
			return 0, rpcMiscError("Request canceled")
		}
		block, err := s.cfg.Chain.BlockByHeight(h)
		if err != nil {
			context := fmt.Sprintf("Failed to load block at height %d", h)
			return 0, rpcInternalError(err.Error(), context)
		}
		count += int64(len(block.Txs))
	}
	return count, nil
}

// handleGetChainTxStats implements the getchaintxstats command.
func handleGetChainTxStats(ctx context.Context, s *Server, params *univalue.Array) (*univalue.Value, error) {
	if err := checkNumParams(params, 0, 2); err != nil {
		return nil, err
	}

	// The window ends at the best block unless a block hash is provided.
	var final *blockstats.Block
	var err error
	if hashParam := params.Index(1); hashParam.IsNull() {
		height := s.cfg.Chain.BestHeight()
		final, err = s.cfg.Chain.BlockByHeight(height)
		if err != nil {
			context := fmt.Sprintf("Failed to load best block at "+
				"height %d", height)
			return nil, rpcInternalError(err.Error(), context)
		}
	} else {
		hash, err := parseHash("blockhash", hashParam)
		if err != nil {
			return nil, err
		}
		final, err = s.blockByHash(hash)
		if err != nil {
			return nil, err
		}
		if final.Height > s.cfg.Chain.BestHeight() {
			return nil, rpcInvalidError("Block is not in main chain")
		}
		mainBlock, err := s.cfg.Chain.BlockByHeight(final.Height)
		if err != nil || mainBlock.Hash != final.Hash {
			return nil, rpcInvalidError("Block is not in main chain")
		}
	}

	// Default to a window of roughly one month of blocks.
	var blockCount int64
	if countParam := params.Index(0); countParam.IsNull() {
		targetTime := s.cfg.TargetTimePerBlock
		if targetTime <= 0 {
			targetTime = defaultTargetTimePerBlock
		}
		blockCount = int64(defaultTxStatsWindow / targetTime)
		if blockCount > final.Height-1 {
			blockCount = final.Height - 1
		}
		if blockCount < 0 {
			blockCount = 0
		}
	} else {
		blockCount, err = countParam.Int64()
		if err != nil {
			return nil, rpcTypeError("nblocks must be an integer")
		}
		if blockCount < 0 || (blockCount > 0 && blockCount >= final.Height) {
			return nil, rpcInvalidError("Invalid block count: should be " +
				"between 0 and the block's height - 1")
		}
	}

	past, err := s.cfg.Chain.BlockByHeight(final.Height - blockCount)
	if err != nil {
		context := fmt.Sprintf("Failed to load block at height %d",
			final.Height-blockCount)
		return nil, rpcInternalError(err.Error(), context)
	}
	pastTxCount, err := s.chainTxCount(ctx, past.Height)
	if err != nil {
		return nil, err
	}
	txCount := pastTxCount
	for h := past.Height + 1; h <= final.Height; h++ {
		block, err := s.cfg.Chain.BlockByHeight(h)
		if err != nil {
			context := fmt.Sprintf("Failed to load block at height %d", h)
			return nil, rpcInternalError(err.Error(), context)
		}
		txCount += int64(len(block.Txs))
	}
	timeDiff := final.MedianTime - past.MedianTime
	txDiff := txCount - pastTxCount

	ret := univalue.New(univalue.VObj)
	ret.PushKV("time", univalue.NewInt64(final.Time))
	ret.PushKV("txcount", univalue.NewInt64(txCount))
	ret.PushKV("window_final_block_hash", univalue.NewStr(final.Hash.String()))
	ret.PushKV("window_block_count", univalue.NewInt64(blockCount))
	if blockCount > 0 {
		ret.PushKV("window_tx_count", univalue.NewInt64(txDiff))
		ret.PushKV("window_interval", univalue.NewInt64(timeDiff))
		if timeDiff > 0 {
			txRate := float64(txDiff) / float64(timeDiff)
			ret.PushKV("txrate", univalue.NewFloat(txRate))
		}
	}
	return ret, nil
}

// Config is a descriptor containing the RPC server configuration.
type Config struct {
	// Chain provides access to the blocks statistics are computed for.
	Chain Chain

	// LogManager defines the log manager used by the debuglevel command.  It
	// may be nil in which case log levels may not be changed.
	LogManager LogManager

	// TxIndex indicates whether the values of spent outputs are available.
	TxIndex bool

	// MaxBlockSize is the maximum serialized size of a block.
	MaxBlockSize int64

	// TargetTimePerBlock is the desired interval between blocks.  It sizes
	// the default window of the getchaintxstats command and defaults to
	// five minutes when zero.
	TargetTimePerBlock time.Duration

	// StatsCacheSize is the number of blocks for which the full statistics
	// are cached.  Caching is disabled when it is zero.
	StatsCacheSize uint32
}

// Server provides a concurrent safe JSON-RPC command processor for block
// statistics.
type Server struct {
	cfg        Config
	statsCache *lru.Map[chainhash.Hash, *univalue.Value]
}

// Execute runs the handler for the passed method with the provided positional
// parameters, which must be a JSON array or null.  Errors are of type
// *dcrjson.RPCError.
//
// This function is safe for concurrent access.
func (s *Server) Execute(ctx context.Context, method string, params *univalue.Value) (*univalue.Value, error) {
	handler, ok := rpcHandlers[method]
	if !ok {
		return nil, dcrjson.ErrRPCMethodNotFound
	}

	args := &univalue.Array{}
	if params != nil && !params.IsNull() {
		arr, err := params.ArrayValue()
		if err != nil {
			return nil, dcrjson.NewRPCError(dcrjson.ErrRPCInvalidRequest.Code,
				"Invalid request: params must be an array")
		}
		args = arr
	}

	if err := ctx.Err(); err != nil {
		return nil, rpcMiscError("Request canceled")
	}

	log.Debugf("Received command <%s> with %d params", method, args.Len())
	return handler(ctx, s, args)
}

// createMarshalledReply returns a new marshalled JSON-RPC response given the
// passed parameters.  It will automatically convert errors that are not of the
// type *dcrjson.RPCError to the appropriate type as needed.
func createMarshalledReply(rpcVersion string, id interface{}, result *univalue.Value, replyErr error) ([]byte, error) {
	var jsonErr *dcrjson.RPCError
	if replyErr != nil && !errors.As(replyErr, &jsonErr) {
		jsonErr = rpcInternalError(replyErr.Error(), "")
	}

	// A nil result must be marshalled as null rather than a nil value.
	var reply interface{}
	if result != nil {
		reply = result
	}
	return dcrjson.MarshalResponse(rpcVersion, id, reply, jsonErr)
}

// HandleRequest executes the passed method and returns the marshalled
// JSON-RPC reply for it.  Notifications, which are requests without an id,
// are executed but produce no reply.
//
// This function is safe for concurrent access.
func (s *Server) HandleRequest(ctx context.Context, id interface{}, method string, params *univalue.Value) ([]byte, error) {
	if method == "" {
		jsonErr := &dcrjson.RPCError{
			Code:    dcrjson.ErrRPCInvalidRequest.Code,
			Message: "Invalid request: malformed",
		}
		return createMarshalledReply(jsonrpcSemverString, id, nil, jsonErr)
	}

	result, err := s.Execute(ctx, method, params)

	// Valid requests with no ID (notifications) must not have a response
	// per the JSON-RPC spec.
	if id == nil {
		return nil, nil
	}

	msg, mErr := createMarshalledReply(jsonrpcSemverString, id, result, err)
	if mErr != nil {
		log.Errorf("Failed to marshal reply: %v", mErr)
		return nil, mErr
	}
	return msg, nil
}

// New returns a new instance of the Server struct.
func New(config *Config) *Server {
	s := Server{cfg: *config}
	if config.StatsCacheSize > 0 {
		s.statsCache = lru.NewMap[chainhash.Hash, *univalue.Value](
			config.StatsCacheSize)
	}
	return &s
}
