// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedmath

import "github.com/holiman/uint256"

const (
	// expMaxTerms bounds the Taylor series length.
	expMaxTerms = 8

	// expTermCutoff ends the series once a term falls below Scale / 1e6;
	// later terms shrink further and cannot move the scaled result.
	expTermCutoff uint64 = ScaleUint / 1_000_000
)

// maxExpInput clamps Exp's argument at 20 * Scale. e^20 is already beyond
// any multiplier the fee formulas can absorb, and the clamp keeps the series
// terms inside 256 bits.
var maxExpInput = new(uint256.Int).Mul(uint256.NewInt(20), Scale)

// Exp returns e^x for x scaled by Scale, as a value scaled by Scale.
// Exp(0) = Scale. Arguments above 20 * Scale saturate to the clamped value's
// result. The argument is not mutated.
func Exp(x *uint256.Int) *uint256.Int {
	if x.IsZero() {
		return uint256.NewInt(ScaleUint)
	}

	var arg uint256.Int
	arg.Set(x)
	if arg.Gt(maxExpInput) {
		arg.Set(maxExpInput)
	}

	// 1 + x + x^2/2! + x^3/3! + ..., each term derived from the last via
	// term *= x / (i * Scale). Terms are added before the cutoff check so
	// nothing above the cutoff is ever dropped.
	result := uint256.NewInt(ScaleUint)
	term := uint256.NewInt(ScaleUint)
	var iScale uint256.Int
	for i := uint64(1); i <= expMaxTerms; i++ {
		iScale.SetUint64(i)
		iScale.Mul(&iScale, Scale)
		term = MulDiv(term, &arg, &iScale)
		result.Add(result, term)
		if term.LtUint64(expTermCutoff) {
			break
		}
	}
	return result
}
