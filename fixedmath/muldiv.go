// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedmath

import "github.com/holiman/uint256"

// MulDiv returns (a * b) / denominator, truncating toward zero. The product
// is formed at 512 bits before dividing, so a*b overflowing 256 bits loses
// no digits. A zero a, b, or denominator returns zero; the division never
// traps. Arguments are not mutated.
func MulDiv(a, b, denominator *uint256.Int) *uint256.Int {
	z := new(uint256.Int)
	if a.IsZero() || b.IsZero() || denominator.IsZero() {
		return z
	}
	z.MulDivOverflow(a, b, denominator)
	return z
}
