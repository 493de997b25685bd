// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"github.com/holiman/uint256"

	"github.com/luxfi/quant/fixedmath"
)

// Dynamic fee bounds in basis points.
const (
	BaseFeeBps uint64 = 30
	MinFeeBps  uint64 = 5
	MaxFeeBps  uint64 = 100

	// feeVolatilityThreshold is the volatility index reading above which
	// the exponential surcharge engages.
	feeVolatilityThreshold uint64 = 100

	// feeVolatilitySurchargeCap bounds the surcharge at +50 bps.
	feeVolatilitySurchargeCap uint64 = 50

	// feeVolumeDiscountCap bounds the volume discount at -10 bps.
	feeVolumeDiscountCap uint64 = 10

	// feeDepthRebate is the flat rebate for deep pools.
	feeDepthRebate uint64 = 5
)

var (
	// feeVolumeThreshold: discounts start above 1 ETH of 24h volume.
	feeVolumeThreshold = fixedmath.Scale

	// feeDepthThreshold: the rebate starts above 10 ETH of liquidity.
	feeDepthThreshold = new(uint256.Int).Mul(uint256.NewInt(10), fixedmath.Scale)

	// feeExpDivisor rescales excess volatility into Exp's argument range,
	// 1000 * BasisPoints.
	feeExpDivisor = uint256.NewInt(10_000_000)
)

// DynamicFee derives a swap fee in basis points from market conditions:
// BaseFeeBps plus an exponential volatility surcharge, minus a logarithmic
// volume discount and a flat deep-liquidity rebate, clamped into
// [MinFeeBps, MaxFeeBps].
//
// volatility is an index reading in basis points, volume24h and
// liquidityDepth are wei amounts (so already scaled by 1e18 relative to
// whole ETH).
func DynamicFee(volatility, volume24h, liquidityDepth *uint256.Int) uint64 {
	fee := BaseFeeBps

	if volatility.GtUint64(feeVolatilityThreshold) {
		excess := new(uint256.Int).SubUint64(volatility, feeVolatilityThreshold)
		expInput := fixedmath.MulDiv(excess, fixedmath.Scale, feeExpDivisor)
		surcharge := fixedmath.MulDiv(fixedmath.Exp(expInput), uint256.NewInt(feeVolatilitySurchargeCap), fixedmath.Scale)
		if !surcharge.IsUint64() || surcharge.Uint64() > feeVolatilitySurchargeCap {
			fee += feeVolatilitySurchargeCap
		} else {
			fee += surcharge.Uint64()
		}
	}

	if volume24h.Gt(feeVolumeThreshold) {
		logVolume := fixedmath.Ln(volume24h)
		discount := fixedmath.MulDiv(logVolume, uint256.NewInt(2), fixedmath.Scale)
		capped := feeVolumeDiscountCap
		if discount.IsUint64() && discount.Uint64() < capped {
			capped = discount.Uint64()
		}
		if capped >= fee {
			fee = 0
		} else {
			fee -= capped
		}
	}

	if liquidityDepth.Gt(feeDepthThreshold) {
		if feeDepthRebate >= fee {
			fee = 0
		} else {
			fee -= feeDepthRebate
		}
	}

	if fee < MinFeeBps {
		fee = MinFeeBps
	}
	if fee > MaxFeeBps {
		fee = MaxFeeBps
	}
	return fee
}
