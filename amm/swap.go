// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"github.com/holiman/uint256"

	"github.com/luxfi/quant/fixedmath"
)

// AmountOut quotes a constant-product swap with the fee taken on the input:
//
//	out = in·(10000-fee)·reserveOut / (reserveIn·10000 + in·(10000-fee))
//
// A zero amount, a zero reserve, or a fee at or past 100% quotes zero, as
// does an input so large that the fee-adjusted amount leaves 256 bits.
func AmountOut(amountIn, reserveIn, reserveOut *uint256.Int, feeBps uint64) *uint256.Int {
	zero := new(uint256.Int)
	if amountIn.IsZero() || reserveIn.IsZero() || reserveOut.IsZero() || feeBps >= BasisPoints {
		return zero
	}

	feeFactor := uint256.NewInt(BasisPoints - feeBps)
	inWithFee, overflow := new(uint256.Int).MulOverflow(amountIn, feeFactor)
	if overflow {
		return zero
	}
	denom, overflow := new(uint256.Int).MulOverflow(reserveIn, basisPoints)
	if overflow {
		return zero
	}
	denom, carry := denom.AddOverflow(denom, inWithFee)
	if carry {
		return zero
	}
	return fixedmath.MulDiv(inWithFee, reserveOut, denom)
}

// Slippage returns the realized slippage in basis points against an expected
// output: (expected - actual)·10000 / expected when the trade fell short,
// zero when it met or beat the expectation. A zero expectation or a zero
// input reserve returns zero.
func Slippage(amountIn, reserveIn, reserveOut *uint256.Int, feeBps uint64, expectedOut *uint256.Int) *uint256.Int {
	if expectedOut.IsZero() || reserveIn.IsZero() {
		return new(uint256.Int)
	}
	actual := AmountOut(amountIn, reserveIn, reserveOut, feeBps)
	if actual.Cmp(expectedOut) >= 0 {
		return new(uint256.Int)
	}
	shortfall := new(uint256.Int).Sub(expectedOut, actual)
	return fixedmath.MulDiv(shortfall, basisPoints, expectedOut)
}

// OptimalSwap sizes a trade against a single pool: the input amount that
// minimizes price impact is sqrt(k·total·(10000-fee)/10000) for constant
// product k, capped at the requested total. The plan carries the expected
// output at that size and the spot-versus-execution spread in basis points.
// Degenerate inputs (zero amounts or reserves, fee past 100%, reserves whose
// product leaves 256 bits) yield an all-zero plan.
func OptimalSwap(totalAmount, reserveIn, reserveOut *uint256.Int, feeBps uint64) SwapPlan {
	plan := SwapPlan{
		OptimalAmount:  new(uint256.Int),
		ExpectedOut:    new(uint256.Int),
		PriceImpactBps: new(uint256.Int),
	}
	if totalAmount.IsZero() || reserveIn.IsZero() || reserveOut.IsZero() || feeBps >= BasisPoints {
		return plan
	}

	k, overflow := new(uint256.Int).MulOverflow(reserveIn, reserveOut)
	if overflow {
		return plan
	}
	scaledTotal, overflow := new(uint256.Int).MulOverflow(totalAmount, uint256.NewInt(BasisPoints-feeBps))
	if overflow {
		return plan
	}

	inner := fixedmath.MulDiv(k, scaledTotal, basisPoints)
	optimal := fixedmath.Sqrt(inner)
	if optimal.Gt(totalAmount) {
		optimal.Set(totalAmount)
	}
	if optimal.IsZero() {
		return plan
	}

	expected := AmountOut(optimal, reserveIn, reserveOut, feeBps)

	spot := fixedmath.MulDiv(reserveOut, fixedmath.Scale, reserveIn)
	exec := fixedmath.MulDiv(expected, fixedmath.Scale, optimal)
	if spot.Gt(exec) {
		diff := new(uint256.Int).Sub(spot, exec)
		plan.PriceImpactBps = fixedmath.MulDiv(diff, basisPoints, spot)
	}

	plan.OptimalAmount = optimal
	plan.ExpectedOut = expected
	return plan
}
