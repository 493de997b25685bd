// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"github.com/holiman/uint256"

	"github.com/luxfi/quant/fixedmath"
)

// MinimumLiquidity follows the Uniswap V2 convention: the first mint burns
// 1000 LP units so the pool can never be fully drained.
const MinimumLiquidity uint64 = 1000

// LPTokens returns the LP amount minted for a deposit of amount0/amount1
// into a pool holding reserve0/reserve1 with the given LP totalSupply.
//
// A fresh pool (zero supply) mints the geometric mean of the deposit minus
// MinimumLiquidity, floored at zero. An existing pool mints the smaller of
// the two proportional shares, so an unbalanced deposit is priced at its
// worse side. A zero reserve under nonzero supply is a malformed snapshot
// and mints zero.
func LPTokens(amount0, amount1, reserve0, reserve1, totalSupply *uint256.Int) *uint256.Int {
	zero := new(uint256.Int)

	if totalSupply.IsZero() {
		product, overflow := new(uint256.Int).MulOverflow(amount0, amount1)
		if overflow {
			return zero
		}
		minted := fixedmath.Sqrt(product)
		if !minted.GtUint64(MinimumLiquidity) {
			return zero
		}
		return minted.SubUint64(minted, MinimumLiquidity)
	}

	if reserve0.IsZero() || reserve1.IsZero() {
		return zero
	}
	share0 := fixedmath.MulDiv(amount0, totalSupply, reserve0)
	share1 := fixedmath.MulDiv(amount1, totalSupply, reserve1)
	if share0.Lt(share1) {
		return share0
	}
	return share1
}

// ImpermanentLoss returns the divergence loss, in basis points, of holding
// an LP position through a price move from initialPrice to currentPrice,
// versus holding the assets directly:
//
//	loss = 1 - 2·sqrt(r) / (1 + r)   with r = current/initial
//
// Equal prices lose nothing; a price collapse to zero loses everything
// (10000 bps). A zero initial price leaves the ratio undefined and returns
// zero; a ratio too large for the sqrt rescale saturates to full loss.
func ImpermanentLoss(initialPrice, currentPrice *uint256.Int) *uint256.Int {
	if initialPrice.IsZero() {
		return new(uint256.Int)
	}

	ratio := fixedmath.MulDiv(currentPrice, fixedmath.Scale, initialPrice)

	// sqrt(r) at Scale needs sqrt(ratio·Scale): the product of two Scale
	// scaled values is Scale² scaled, and its root lands back on Scale.
	rescaled, overflow := new(uint256.Int).MulOverflow(ratio, fixedmath.Scale)
	if overflow {
		return uint256.NewInt(BasisPoints)
	}
	sqrtRatio := fixedmath.Sqrt(rescaled)

	denom := new(uint256.Int).Add(fixedmath.Scale, ratio)
	numer := new(uint256.Int).Lsh(sqrtRatio, 1)
	ilFactor := fixedmath.MulDiv(numer, fixedmath.Scale, denom)

	if ilFactor.Cmp(fixedmath.Scale) >= 0 {
		return new(uint256.Int)
	}
	loss := new(uint256.Int).Sub(fixedmath.Scale, ilFactor)
	return fixedmath.MulDiv(loss, basisPoints, fixedmath.Scale)
}
