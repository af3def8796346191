// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstats

import (
	"fmt"

	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/univalue"
)

// AmountValue returns a number value holding the amount in coins with exactly
// eight fractional digits, for example 1.50000000 or -0.00000001.  Unlike a
// float conversion the text is exact for every amount.
func AmountValue(amt dcrutil.Amount) *univalue.Value {
	sign := ""
	abs := uint64(amt)
	if amt < 0 {
		sign = "-"
		abs = uint64(-amt)
	}
	const atomsPerCoin = uint64(dcrutil.AtomsPerCoin)
	str := fmt.Sprintf("%s%d.%08d", sign, abs/atomsPerCoin, abs%atomsPerCoin)
	return univalue.NewNumStr(str)
}
