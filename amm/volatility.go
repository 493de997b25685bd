// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"github.com/holiman/uint256"

	"github.com/luxfi/quant/fixedmath"
)

// daysPerYear annualizes daily log returns.
var daysPerYear = uint256.NewInt(365)

// Volatility returns the annualized volatility of a daily price series,
// scaled by Scale: log returns over consecutive prices, their sample
// variance, and a sqrt(365) annualization. Hops whose predecessor price is
// zero are skipped; negative log returns clamp to zero the way Ln does.
// Fewer than two usable returns leave the variance undefined and yield zero.
func Volatility(prices []*uint256.Int) *uint256.Int {
	returns := make([]*uint256.Int, 0, len(prices))
	for i := 1; i < len(prices); i++ {
		if prices[i-1].IsZero() {
			continue
		}
		ratio := fixedmath.MulDiv(prices[i], fixedmath.Scale, prices[i-1])
		returns = append(returns, fixedmath.Ln(ratio))
	}
	if len(returns) < 2 {
		return new(uint256.Int)
	}

	n := uint256.NewInt(uint64(len(returns)))
	sum := new(uint256.Int)
	for _, r := range returns {
		sum.Add(sum, r)
	}
	mean := new(uint256.Int).Div(sum, n)

	// Sample variance: each squared deviation rescaled by Scale so the
	// accumulator stays Scale scaled, then divided by n-1.
	varSum := new(uint256.Int)
	diff := new(uint256.Int)
	for _, r := range returns {
		if r.Gt(mean) {
			diff.Sub(r, mean)
		} else {
			diff.Sub(mean, r)
		}
		varSum.Add(varSum, fixedmath.MulDiv(diff, diff, fixedmath.Scale))
	}
	variance := varSum.Div(varSum, uint256.NewInt(uint64(len(returns)-1)))

	// Annualize: sqrt(variance·365·Scale) carries the stdev back to Scale.
	annual := new(uint256.Int).Mul(variance, daysPerYear)
	annual.Mul(annual, fixedmath.Scale)
	return fixedmath.Sqrt(annual)
}
