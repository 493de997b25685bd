// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedmath

import "github.com/holiman/uint256"

// maxSqrtIterations caps the Newton loop. The bit-length seed starts within
// a factor of two of the root, so convergence takes under ten rounds for any
// 256-bit input; the cap is a hard stop, not an expected exit.
const maxSqrtIterations = 20

// Sqrt returns floor(sqrt(x)) via Newton-Raphson. Sqrt(0) = 0; inputs 1
// through 3 truncate to 1. The argument is not mutated.
func Sqrt(x *uint256.Int) *uint256.Int {
	if x.IsZero() {
		return new(uint256.Int)
	}
	if x.LtUint64(4) {
		return uint256.NewInt(1)
	}

	// Seed with the smallest power-of-two bracket at or above sqrt(x),
	// derived from the bit length. For b-bit x this is 2^ceil(b/2), at
	// most twice the true root.
	var y uint256.Int
	y.SetUint64(1)
	y.Lsh(&y, uint(x.BitLen()+1)/2)

	// y' = (y + x/y) / 2, descending monotonically once above the root;
	// the first non-decrease means the prior iterate was the floor.
	var z, quot uint256.Int
	for i := 0; i < maxSqrtIterations; i++ {
		z.Set(&y)
		quot.Div(x, &y)
		y.Add(&y, &quot)
		y.Rsh(&y, 1)
		if y.Cmp(&z) >= 0 {
			break
		}
	}
	return z.Clone()
}
