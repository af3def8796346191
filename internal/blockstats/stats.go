// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstats

import (
	"sort"

	"github.com/decred/dcrd/dcrutil/v4"
)

// NumPercentiles is the number of feerate percentiles reported.
const NumPercentiles = 5

// integer is the set of integer types the median can be computed over.
type integer interface {
	~int | ~int32 | ~int64
}

// TruncatedMedian sorts the provided values in place and returns their
// median.  For an even number of values the two middle values are averaged
// with integer division.  The median of no values is zero.
func TruncatedMedian[T integer](s []T) T {
	if len(s) == 0 {
		return 0
	}

	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })

	middle := len(s) / 2
	if len(s)%2 != 0 {
		return s[middle]
	}
	return (s[middle-1] + s[middle]) / 2
}

// FeeRateSize pairs the feerate of a transaction with its size, which is
// used as the weight of the feerate when computing percentiles.
type FeeRateSize struct {
	FeeRate dcrutil.Amount
	Size    int64
}

// PercentilesBySize sorts the provided feerates in place and returns the
// feerates at the 10th, 25th, 50th, 75th and 90th percentile of the total
// size.  A percentile is the first feerate at which the cumulative size
// reaches the percentile weight.  Percentiles that are never reached take
// the last feerate.  All percentiles are zero when there are no feerates.
func PercentilesBySize(scores []FeeRateSize, totalSize int64) [NumPercentiles]dcrutil.Amount {
	var result [NumPercentiles]dcrutil.Amount
	if len(scores) == 0 {
		return result
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].FeeRate != scores[j].FeeRate {
			return scores[i].FeeRate < scores[j].FeeRate
		}
		return scores[i].Size < scores[j].Size
	})

	total := float64(totalSize)
	weights := [NumPercentiles]float64{
		total / 10.0,
		total / 4.0,
		total / 2.0,
		(total * 3.0) / 4.0,
		(total * 9.0) / 10.0,
	}

	var next int
	var cumulative int64
	for _, score := range scores {
		cumulative += score.Size
		for next < NumPercentiles && float64(cumulative) >= weights[next] {
			result[next] = score.FeeRate
			next++
		}
	}

	for i := next; i < NumPercentiles; i++ {
		result[i] = scores[len(scores)-1].FeeRate
	}
	return result
}
