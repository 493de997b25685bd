// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package amm implements constant-product market analytics on top of the
// fixedmath kernel: swap quoting, slippage, dynamic fees, optimal swap
// sizing, LP share minting, impermanent loss, route search, and return
// volatility.
//
// Every operation is a pure function over caller-supplied snapshots. Reserve
// or price arguments equal to zero mark a malformed pool and flow through as
// a zero result, never as an error or panic.
package amm

import "github.com/holiman/uint256"

// BasisPoints is the denominator for fee and percentage math.
const BasisPoints uint64 = 10000

var basisPoints = uint256.NewInt(BasisPoints)

// Pool is a directional reserve snapshot: a swap consumes ReserveIn-side
// tokens and emits ReserveOut-side tokens, charging FeeBps on the input.
type Pool struct {
	ReserveIn  *uint256.Int
	ReserveOut *uint256.Int
	FeeBps     uint64
}

// SwapPlan is the result of optimal swap sizing.
type SwapPlan struct {
	// OptimalAmount is the input size that minimizes price impact for the
	// trade, never exceeding the requested total.
	OptimalAmount *uint256.Int

	// ExpectedOut is the constant-product output at OptimalAmount.
	ExpectedOut *uint256.Int

	// PriceImpactBps is the spread between spot and execution price in
	// basis points.
	PriceImpactBps *uint256.Int
}

// BestRoute is the winning path from a route search: indices into the
// candidate slice, in hop order, plus the final output amount.
type BestRoute struct {
	Pools     []int
	AmountOut *uint256.Int
}
