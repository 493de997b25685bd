// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import "github.com/holiman/uint256"

// RouteOutput chains AmountOut across the route's hops in order, feeding
// each hop's output into the next. An empty route or a hop that quotes zero
// collapses the whole route to zero.
func RouteOutput(amountIn *uint256.Int, route []Pool) *uint256.Int {
	if len(route) == 0 {
		return new(uint256.Int)
	}
	amount := amountIn
	for _, pool := range route {
		amount = AmountOut(amount, pool.ReserveIn, pool.ReserveOut, pool.FeeBps)
		if amount.IsZero() {
			break
		}
	}
	return amount
}

// FindBestRoute searches the candidate pools for the highest-output path of
// at most two hops: every single pool first, then every ordered pair of
// distinct pools. A strictly greater output displaces the incumbent, so ties
// keep the earliest path found. No candidates, or no path with nonzero
// output, returns an empty route.
func FindBestRoute(amountIn *uint256.Int, candidates []Pool) BestRoute {
	best := BestRoute{AmountOut: new(uint256.Int)}
	if len(candidates) == 0 || amountIn.IsZero() {
		return best
	}

	for i, pool := range candidates {
		out := AmountOut(amountIn, pool.ReserveIn, pool.ReserveOut, pool.FeeBps)
		if out.Gt(best.AmountOut) {
			best.AmountOut = out
			best.Pools = []int{i}
		}
	}

	if len(candidates) < 2 {
		return best
	}
	for i := range candidates {
		intermediate := AmountOut(amountIn, candidates[i].ReserveIn, candidates[i].ReserveOut, candidates[i].FeeBps)
		if intermediate.IsZero() {
			continue
		}
		for j := range candidates {
			if i == j {
				continue
			}
			out := AmountOut(intermediate, candidates[j].ReserveIn, candidates[j].ReserveOut, candidates[j].FeeBps)
			if out.Gt(best.AmountOut) {
				best.AmountOut = out
				best.Pools = []int{i, j}
			}
		}
	}
	return best
}
