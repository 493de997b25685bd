// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fixedmath implements deterministic 256-bit fixed-point arithmetic
// for AMM analytics: an overflow-safe multiply-divide primitive, an integer
// square root, and Taylor-series exponential and natural logarithm.
//
// Scaled values carry 18 decimals (Scale = 1e18). Every operation is a pure
// function over *uint256.Int arguments: no floating point, no shared state,
// no error returns. Degenerate inputs (zero denominators, out-of-domain
// arguments) yield zero or a clamped value rather than trapping, so a
// malformed pool upstream degrades to a zero quote instead of a revert.
package fixedmath

import "github.com/holiman/uint256"

// Fixed-point constants as uint64 literals.
const (
	// ScaleUint is the fixed-point scale, 1e18.
	ScaleUint uint64 = 1_000_000_000_000_000_000

	// Scale6Uint is the secondary 1e6 scale for six-decimal token amounts.
	Scale6Uint uint64 = 1_000_000

	// EScaledUint is Euler's number e scaled by 1e18.
	EScaledUint uint64 = 2_718_281_828_459_045_235

	// Ln2ScaledUint is ln(2) scaled by 1e18.
	Ln2ScaledUint uint64 = 693_147_180_559_945_309
)

// 256-bit forms of the constants above. Shared by the whole package and by
// callers building scaled arguments; never mutated after init.
var (
	Scale     = uint256.NewInt(ScaleUint)
	Scale6    = uint256.NewInt(Scale6Uint)
	EScaled   = uint256.NewInt(EScaledUint)
	Ln2Scaled = uint256.NewInt(Ln2ScaledUint)

	twoScale = uint256.NewInt(2 * ScaleUint)
)
