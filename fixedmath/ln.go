// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedmath

import "github.com/holiman/uint256"

// lnSeriesTerms is the truncated series length for ln around 1. After range
// reduction the argument sits in [1, 2), where five alternating terms hold
// the error under one part in a thousand.
const lnSeriesTerms = 5

// Ln returns ln(x) for x scaled by Scale, as a value scaled by Scale.
// Ln(Scale) = 0, and the result is clamped at zero: inputs below Scale,
// including the mathematically undefined Ln(0), return 0. The argument is
// not mutated.
func Ln(x *uint256.Int) *uint256.Int {
	if x.IsZero() || x.Eq(Scale) {
		return new(uint256.Int)
	}

	// ln(x) = n*ln(2) + ln(x / 2^n): halve until the residue sits below 2,
	// then expand around 1.
	var y uint256.Int
	y.Set(x)
	n := uint64(0)
	for y.Cmp(twoScale) >= 0 {
		y.Rsh(&y, 1)
		n++
	}
	if y.Lt(Scale) {
		// Inputs below Scale never enter the halving loop; their true ln
		// is negative and clamps to zero.
		return new(uint256.Int)
	}

	// u - u^2/2 + u^3/3 - u^4/4 + u^5/5 on u = y - 1. The alternating
	// signs accumulate in separate buckets so the unsigned arithmetic
	// never wraps; one subtraction settles the sum at the end.
	u := new(uint256.Int).Sub(&y, Scale)
	term := new(uint256.Int).Set(u)
	pos := new(uint256.Int).Set(u)
	neg := new(uint256.Int)
	var div uint256.Int
	for i := uint64(2); i <= lnSeriesTerms; i++ {
		term = MulDiv(term, u, Scale)
		div.SetUint64(i)
		contrib := new(uint256.Int).Div(term, &div)
		if i%2 == 0 {
			neg.Add(neg, contrib)
		} else {
			pos.Add(pos, contrib)
		}
	}

	result := new(uint256.Int).SetUint64(n)
	result.Mul(result, Ln2Scaled)
	result.Add(result, pos)
	if result.Lt(neg) {
		return new(uint256.Int)
	}
	return result.Sub(result, neg)
}
