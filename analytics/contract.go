// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package analytics implements the quant analytics precompile for the Lux EVM.
// Address: 0x0000000000000000000000000000000000009210 (LP-9210)
//
// The precompile exposes a deterministic 1e18 fixed-point math kernel and the
// AMM formulas built on it, so contracts can quote swaps, fees, liquidity and
// routes without floating point and without reimplementing the math in
// Solidity:
//
// - mulDiv, sqrt, expFixed, lnFixed: the fixed-point kernel
// - getAmountOut, getSlippage, getOptimalSwap: constant-product swap quoting
// - getDynamicFee: volatility/volume/depth adjusted fee in basis points
// - getLPTokens, getImpermanentLoss: liquidity provider accounting
// - evalRoute, findBestRoute: multi-hop route evaluation and search
// - getVolatility: annualized log-return volatility of a price series
//
// Every operation is a pure function of its calldata and is safe for static
// calls. Calldata is 32-byte big-endian words after a 4-byte selector;
// variable-length lists are count-prefixed. Gas is charged up front from the
// selector and the supplied word count.
package analytics

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/quant/amm"
	"github.com/luxfi/quant/contract"
	"github.com/luxfi/quant/fixedmath"
)

var (
	ErrInputTooShort   = errors.New("input too short")
	ErrInvalidSelector = errors.New("invalid method selector")
	ErrTruncatedInput  = errors.New("truncated word list")
	ErrTooManyPools    = errors.New("route exceeds pool limit")
)

// Method selectors
const (
	SelectorMulDiv             uint32 = 0x01000000 // mulDiv(uint256,uint256,uint256)
	SelectorSqrt               uint32 = 0x02000000 // sqrt(uint256)
	SelectorExpFixed           uint32 = 0x03000000 // expFixed(uint256)
	SelectorLnFixed            uint32 = 0x04000000 // lnFixed(uint256)
	SelectorGetAmountOut       uint32 = 0x05000000 // getAmountOut(uint256,uint256,uint256,uint256)
	SelectorGetSlippage        uint32 = 0x06000000 // getSlippage(uint256,uint256,uint256,uint256,uint256)
	SelectorGetDynamicFee      uint32 = 0x07000000 // getDynamicFee(uint256,uint256,uint256)
	SelectorGetOptimalSwap     uint32 = 0x08000000 // getOptimalSwap(uint256,uint256,uint256,uint256)
	SelectorGetLPTokens        uint32 = 0x09000000 // getLPTokens(uint256,uint256,uint256,uint256,uint256)
	SelectorGetImpermanentLoss uint32 = 0x0A000000 // getImpermanentLoss(uint256,uint256)
	SelectorEvalRoute          uint32 = 0x0B000000 // evalRoute(uint256,uint256,(uint256,uint256,uint256)[])
	SelectorFindBestRoute      uint32 = 0x0C000000 // findBestRoute(uint256,uint256,(uint256,uint256,uint256)[])
	SelectorGetVolatility      uint32 = 0x0D000000 // getVolatility(uint256,uint256[])
	SelectorGetRouteLimit      uint32 = 0x0E000000 // getRouteLimit()
)

// Gas costs
const (
	GasMulDiv         uint64 = 30
	GasSqrt           uint64 = 200
	GasExp            uint64 = 400
	GasLn             uint64 = 400
	GasQuote          uint64 = 100 // getAmountOut, getSlippage
	GasDynamicFee     uint64 = 600 // runs exp and ln internally
	GasOptimalSwap    uint64 = 500
	GasLiquidity      uint64 = 300 // getLPTokens, getImpermanentLoss
	GasRouteBase      uint64 = 200
	GasPerPool        uint64 = 150
	GasVolatilityBase uint64 = 300
	GasPerSample      uint64 = 250
	GasRouteLimit     uint64 = 50
)

const (
	selectorSize = 4
	wordSize     = 32
	poolWords    = 3 // reserveIn, reserveOut, feeBps
)

// AnalyticsContract implements the quant analytics precompile
type AnalyticsContract struct {
	// routeLimit caps the candidate pool count of the route operations.
	// Set once at configuration time.
	routeLimit uint64
}

// Address returns the precompile address
func (c *AnalyticsContract) Address() common.Address {
	return ContractAddress
}

// RequiredGas returns the gas consumed by [input]. Flat per operation, plus
// a per-word charge for the list operations sized from the supplied
// calldata rather than the claimed count.
func (c *AnalyticsContract) RequiredGas(input []byte) uint64 {
	if len(input) < selectorSize {
		return 0
	}

	words := uint64(len(input)-selectorSize) / wordSize
	switch binary.BigEndian.Uint32(input[:selectorSize]) {
	case SelectorMulDiv:
		return GasMulDiv
	case SelectorSqrt:
		return GasSqrt
	case SelectorExpFixed:
		return GasExp
	case SelectorLnFixed:
		return GasLn
	case SelectorGetAmountOut, SelectorGetSlippage:
		return GasQuote
	case SelectorGetDynamicFee:
		return GasDynamicFee
	case SelectorGetOptimalSwap:
		return GasOptimalSwap
	case SelectorGetLPTokens, SelectorGetImpermanentLoss:
		return GasLiquidity
	case SelectorEvalRoute, SelectorFindBestRoute:
		var pools uint64
		if words > 2 {
			pools = (words - 2) / poolWords
		}
		return GasRouteBase + pools*GasPerPool
	case SelectorGetVolatility:
		var samples uint64
		if words > 1 {
			samples = words - 1
		}
		return GasVolatilityBase + samples*GasPerSample
	case SelectorGetRouteLimit:
		return GasRouteLimit
	default:
		return 0
	}
}

// Run executes the precompile
func (c *AnalyticsContract) Run(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	input []byte,
	suppliedGas uint64,
	readOnly bool,
) (ret []byte, remainingGas uint64, err error) {
	remainingGas, err = contract.DeductGas(suppliedGas, c.RequiredGas(input))
	if err != nil {
		return nil, 0, err
	}

	if len(input) < selectorSize {
		return nil, remainingGas, ErrInputTooShort
	}

	selector := binary.BigEndian.Uint32(input[:selectorSize])
	data := input[selectorSize:]

	if selector == SelectorGetRouteLimit {
		ret, err = c.runGetRouteLimit(accessibleState, addr)
		return ret, remainingGas, err
	}

	ret, err = c.runPure(selector, data)
	return ret, remainingGas, err
}

// runPure dispatches the stateless operations. The off-chain Service reuses
// this entry point, so on-chain and off-chain evaluation cannot diverge.
func (c *AnalyticsContract) runPure(selector uint32, input []byte) ([]byte, error) {
	switch selector {
	case SelectorMulDiv:
		return c.runMulDiv(input)
	case SelectorSqrt:
		return c.runSqrt(input)
	case SelectorExpFixed:
		return c.runExpFixed(input)
	case SelectorLnFixed:
		return c.runLnFixed(input)
	case SelectorGetAmountOut:
		return c.runGetAmountOut(input)
	case SelectorGetSlippage:
		return c.runGetSlippage(input)
	case SelectorGetDynamicFee:
		return c.runGetDynamicFee(input)
	case SelectorGetOptimalSwap:
		return c.runGetOptimalSwap(input)
	case SelectorGetLPTokens:
		return c.runGetLPTokens(input)
	case SelectorGetImpermanentLoss:
		return c.runGetImpermanentLoss(input)
	case SelectorEvalRoute:
		return c.runEvalRoute(input)
	case SelectorFindBestRoute:
		return c.runFindBestRoute(input)
	case SelectorGetVolatility:
		return c.runGetVolatility(input)
	default:
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidSelector, selector)
	}
}

func (c *AnalyticsContract) runMulDiv(input []byte) ([]byte, error) {
	if len(input) < 3*wordSize {
		return nil, ErrTruncatedInput
	}
	return packWords(fixedmath.MulDiv(word(input, 0), word(input, 1), word(input, 2))), nil
}

func (c *AnalyticsContract) runSqrt(input []byte) ([]byte, error) {
	if len(input) < wordSize {
		return nil, ErrTruncatedInput
	}
	return packWords(fixedmath.Sqrt(word(input, 0))), nil
}

func (c *AnalyticsContract) runExpFixed(input []byte) ([]byte, error) {
	if len(input) < wordSize {
		return nil, ErrTruncatedInput
	}
	return packWords(fixedmath.Exp(word(input, 0))), nil
}

func (c *AnalyticsContract) runLnFixed(input []byte) ([]byte, error) {
	if len(input) < wordSize {
		return nil, ErrTruncatedInput
	}
	return packWords(fixedmath.Ln(word(input, 0))), nil
}

func (c *AnalyticsContract) runGetAmountOut(input []byte) ([]byte, error) {
	if len(input) < 4*wordSize {
		return nil, ErrTruncatedInput
	}
	out := amm.AmountOut(word(input, 0), word(input, 1), word(input, 2), feeBps(word(input, 3)))
	return packWords(out), nil
}

func (c *AnalyticsContract) runGetSlippage(input []byte) ([]byte, error) {
	if len(input) < 5*wordSize {
		return nil, ErrTruncatedInput
	}
	bps := amm.Slippage(word(input, 0), word(input, 1), word(input, 2), feeBps(word(input, 3)), word(input, 4))
	return packWords(bps), nil
}

func (c *AnalyticsContract) runGetDynamicFee(input []byte) ([]byte, error) {
	if len(input) < 3*wordSize {
		return nil, ErrTruncatedInput
	}
	fee := amm.DynamicFee(word(input, 0), word(input, 1), word(input, 2))
	return packWords(uint256.NewInt(fee)), nil
}

func (c *AnalyticsContract) runGetOptimalSwap(input []byte) ([]byte, error) {
	if len(input) < 4*wordSize {
		return nil, ErrTruncatedInput
	}
	plan := amm.OptimalSwap(word(input, 0), word(input, 1), word(input, 2), feeBps(word(input, 3)))
	return packWords(plan.OptimalAmount, plan.ExpectedOut, plan.PriceImpactBps), nil
}

func (c *AnalyticsContract) runGetLPTokens(input []byte) ([]byte, error) {
	if len(input) < 5*wordSize {
		return nil, ErrTruncatedInput
	}
	minted := amm.LPTokens(word(input, 0), word(input, 1), word(input, 2), word(input, 3), word(input, 4))
	return packWords(minted), nil
}

func (c *AnalyticsContract) runGetImpermanentLoss(input []byte) ([]byte, error) {
	if len(input) < 2*wordSize {
		return nil, ErrTruncatedInput
	}
	return packWords(amm.ImpermanentLoss(word(input, 0), word(input, 1))), nil
}

func (c *AnalyticsContract) runEvalRoute(input []byte) ([]byte, error) {
	amountIn, pools, err := c.decodeRoute(input)
	if err != nil {
		return nil, err
	}
	return packWords(amm.RouteOutput(amountIn, pools)), nil
}

func (c *AnalyticsContract) runFindBestRoute(input []byte) ([]byte, error) {
	amountIn, pools, err := c.decodeRoute(input)
	if err != nil {
		return nil, err
	}

	best := amm.FindBestRoute(amountIn, pools)
	out := make([]*uint256.Int, 0, 2+len(best.Pools))
	out = append(out, best.AmountOut, uint256.NewInt(uint64(len(best.Pools))))
	for _, idx := range best.Pools {
		out = append(out, uint256.NewInt(uint64(idx)))
	}
	return packWords(out...), nil
}

func (c *AnalyticsContract) runGetVolatility(input []byte) ([]byte, error) {
	if len(input) < wordSize {
		return nil, ErrTruncatedInput
	}

	countWord := word(input, 0)
	words := uint64(len(input)) / wordSize
	if !countWord.IsUint64() || countWord.Uint64() > words-1 {
		return nil, ErrTruncatedInput
	}

	count := int(countWord.Uint64())
	prices := make([]*uint256.Int, count)
	for i := range prices {
		prices[i] = word(input, 1+i)
	}
	return packWords(amm.Volatility(prices)), nil
}

func (c *AnalyticsContract) runGetRouteLimit(accessibleState contract.AccessibleState, addr common.Address) ([]byte, error) {
	limit := new(uint256.Int)
	stored := accessibleState.GetStateDB().GetState(addr, routeLimitKey)
	limit.SetBytes(stored[:])
	if limit.IsZero() {
		// Not configured yet, report the in-memory default.
		limit.SetUint64(c.routeLimit)
	}
	return packWords(limit), nil
}

// decodeRoute parses an amountIn word, a pool count word, and [count] pool
// triples of (reserveIn, reserveOut, feeBps).
func (c *AnalyticsContract) decodeRoute(input []byte) (*uint256.Int, []amm.Pool, error) {
	if len(input) < 2*wordSize {
		return nil, nil, ErrTruncatedInput
	}

	amountIn := word(input, 0)
	countWord := word(input, 1)
	if !countWord.IsUint64() || countWord.Uint64() > c.routeLimit {
		return nil, nil, fmt.Errorf("%w: %s pools, limit %d", ErrTooManyPools, countWord, c.routeLimit)
	}

	count := int(countWord.Uint64())
	if uint64(len(input))/wordSize < uint64(2+poolWords*count) {
		return nil, nil, ErrTruncatedInput
	}

	pools := make([]amm.Pool, count)
	for i := range pools {
		base := 2 + poolWords*i
		pools[i] = amm.Pool{
			ReserveIn:  word(input, base),
			ReserveOut: word(input, base+1),
			FeeBps:     feeBps(word(input, base+2)),
		}
	}
	return amountIn, pools, nil
}

// word decodes the [i]th 32-byte word of [input].
func word(input []byte, i int) *uint256.Int {
	return new(uint256.Int).SetBytes(input[i*wordSize : (i+1)*wordSize])
}

// packWords encodes [values] as concatenated 32-byte big-endian words.
func packWords(values ...*uint256.Int) []byte {
	out := make([]byte, len(values)*wordSize)
	for i, v := range values {
		b := v.Bytes32()
		copy(out[i*wordSize:], b[:])
	}
	return out
}

// feeBps narrows a fee word to basis points. Values past uint64 are clamped
// to a full 100%, which the formula layer quotes as zero output.
func feeBps(w *uint256.Int) uint64 {
	if !w.IsUint64() {
		return amm.BasisPoints
	}
	return w.Uint64()
}
