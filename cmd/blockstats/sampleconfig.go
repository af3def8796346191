// Copyright (c) 2018-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// sampleConfigFileContents is a string containing the commented example config
// for blockstats.
const sampleConfigFileContents = `[Application Options]

; ------------------------------------------------------------------------------
; Data settings
; ------------------------------------------------------------------------------

; The JSON file describing the chain of blocks to report statistics for.
; datafile=~/.blockstats/chain.json

; The chain data includes the values of the outputs spent by every
; transaction.  Fee related statistics are only available when it does.
; txindex=1

; Maximum serialized size of a block in bytes.
; maxblocksize=393216

; Number of blocks to cache full statistics for.
; statscachesize=100

; Desired interval between blocks.  It sizes the default window of
; getchaintxstats, which covers about 30 days.
; targettimeperblock=5m


; ------------------------------------------------------------------------------
; Output settings
; ------------------------------------------------------------------------------

; Number of spaces to indent results with.  Use 0 for compact output.
; indent=2

; Print the full JSON-RPC reply instead of just the result.
; jsonrpc=1


; ------------------------------------------------------------------------------
; Debug
; ------------------------------------------------------------------------------

; Debug logging level.
; Valid levels are {trace, debug, info, warn, error, critical}
; You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set
; log level for individual subsystems.  Use blockstats --debuglevel=show to
; list available subsystems.
; debuglevel=info

; Disable writing logs to a file.
; nofilelogging=1

; Enable HTTP profiling on the given loopback [addr:]port.  The port must be
; between 1024 and 65535.
; profile=6060
`
