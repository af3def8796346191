// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/decred/univalue"
	"github.com/decred/univalue/internal/progresslog"
	"github.com/decred/univalue/internal/rpcserver"
	"github.com/decred/univalue/internal/version"
)

// parseParam converts a command line argument to a JSON value.  Arguments
// that are JSON literals or numbers keep their type and everything else is a
// string.
func parseParam(arg string) *univalue.Value {
	switch arg {
	case "null":
		return univalue.New(univalue.VNull)
	case "true":
		return univalue.NewBool(true)
	case "false":
		return univalue.NewBool(false)
	}
	if univalue.IsValidNumber(arg) {
		return univalue.NewNumStr(arg)
	}
	return univalue.NewStr(arg)
}

// buildParams returns the positional parameters for the method from the
// command line arguments.  The statistics selected with --stat are passed to
// getblockstats as its second parameter.
func buildParams(cfg *config, method string, args []string) *univalue.Value {
	params := univalue.New(univalue.VArr)
	for _, arg := range args {
		params.PushBack(parseParam(arg))
	}
	if method == "getblockstats" && len(args) == 1 && len(cfg.Stats) > 0 {
		stats := univalue.New(univalue.VArr)
		for _, stat := range cfg.Stats {
			stats.PushBack(univalue.NewStr(stat))
		}
		params.PushBack(stats)
	}
	return params
}

// writeResult writes the result of a command to w.  Strings are written
// without quotes.
func writeResult(w io.Writer, result *univalue.Value, indent int) error {
	if result.IsStr() {
		_, err := fmt.Fprintln(w, result.ValStr())
		return err
	}
	_, err := fmt.Fprintln(w, result.Write(indent, 0))
	return err
}

// runCommand executes a single command and writes its result, or the full
// JSON-RPC reply when requested, to w.
func runCommand(ctx context.Context, cfg *config, s *rpcserver.Server, w io.Writer, id int, method string, params *univalue.Value) error {
	if cfg.JSONRPC {
		reply, err := s.HandleRequest(ctx, id, method, params)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", reply)
		return err
	}

	result, err := s.Execute(ctx, method, params)
	if err != nil {
		return err
	}
	return writeResult(w, result, cfg.Indent)
}

// reportAllBlocks writes the statistics of every block in the chain to w.
func reportAllBlocks(ctx context.Context, cfg *config, chain *memChain, s *rpcserver.Server, w io.Writer) error {
	progressLogger := progresslog.New("Computed statistics for", bstsLog)
	best := chain.BestHeight()
	for height := int64(0); height <= best; height++ {
		if shutdownRequested(ctx) {
			return ctx.Err()
		}

		params := buildParams(cfg, "getblockstats", []string{fmt.Sprint(height)})
		err := runCommand(ctx, cfg, s, w, int(height), "getblockstats", params)
		if err != nil {
			return fmt.Errorf("block %d: %w", height, err)
		}

		block, err := chain.BlockByHeight(height)
		if err != nil {
			return err
		}
		progressLogger.LogProgress(block, height == best)
	}
	return nil
}

// blockstatsMain is the real main function for blockstats.  It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func blockstatsMain() error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	cfg, args, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Get a context that will be canceled when a shutdown signal has been
	// triggered from an OS signal such as SIGINT (Ctrl+C).
	ctx := shutdownListener()

	mainLog.Debugf("Version %s (Go version %s %s/%s)", version.String(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// Enable http profiling server if requested.
	if cfg.Profile != "" {
		var profiler profileServer
		if err := profiler.Start(cfg.Profile); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to start profiler: %v\n", err)
			return err
		}
		defer profiler.Stop()
	}

	chain, err := loadChain(cfg.DataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load chain data: %v\n", err)
		return err
	}
	mainLog.Debugf("Loaded %d blocks from %s", chain.BestHeight()+1,
		cfg.DataFile)

	s := rpcserver.New(&rpcserver.Config{
		Chain:              chain,
		LogManager:         &logManager{},
		TxIndex:            cfg.TxIndex,
		MaxBlockSize:       cfg.MaxBlockSize,
		StatsCacheSize:     cfg.StatsCacheSize,
		TargetTimePerBlock: cfg.TargetTime,
	})

	if cfg.AllBlocks {
		err = reportAllBlocks(ctx, cfg, chain, s, os.Stdout)
	} else {
		method, args := args[0], args[1:]
		params := buildParams(cfg, method, args)
		err = runCommand(ctx, cfg, s, os.Stdout, 1, method, params)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

func main() {
	// Work around defer not working after os.Exit().
	if err := blockstatsMain(); err != nil {
		os.Exit(1)
	}
}
