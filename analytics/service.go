// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package analytics

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	log "github.com/luxfi/log"
	"github.com/zeebo/blake3"

	"github.com/luxfi/quant/amm"
)

// Service evaluates the analytics operations off-chain for node tooling and
// RPC handlers, going through the same dispatch as the precompile so the two
// can never disagree. Results are memoized in [db] keyed by a blake3 digest
// of the encoded request; pool snapshots repeat heavily across quote traffic,
// so the cache carries most of the load. A nil database disables memoization.
type Service struct {
	contract *AnalyticsContract
	db       database.Database
	log      log.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats is a snapshot of the service's cache counters.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

// NewService creates a service backed by [db]. If [logger] is nil a default
// logger is used.
func NewService(db database.Database, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewTestLogger(log.InfoLevel)
	}
	return &Service{
		contract: AnalyticsPrecompile,
		db:       db,
		log:      logger,
	}
}

// Stats returns the cache hit and miss counts so far.
func (s *Service) Stats() CacheStats {
	return CacheStats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
}

// Quote returns the constant-product output of a single swap.
func (s *Service) Quote(ctx context.Context, amountIn, reserveIn, reserveOut *uint256.Int, feeBps uint64) (*uint256.Int, error) {
	ret, err := s.evaluate(ctx, SelectorGetAmountOut, amountIn, reserveIn, reserveOut, uint256.NewInt(feeBps))
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(ret), nil
}

// Slippage returns the realized slippage of a swap in basis points, given
// the expected output it was quoted at.
func (s *Service) Slippage(ctx context.Context, amountIn, reserveIn, reserveOut *uint256.Int, feeBps uint64, expectedOut *uint256.Int) (*uint256.Int, error) {
	ret, err := s.evaluate(ctx, SelectorGetSlippage, amountIn, reserveIn, reserveOut, uint256.NewInt(feeBps), expectedOut)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(ret), nil
}

// Fee returns the dynamic fee in basis points for the given market state.
func (s *Service) Fee(ctx context.Context, volatility, volume24h, liquidityDepth *uint256.Int) (uint64, error) {
	ret, err := s.evaluate(ctx, SelectorGetDynamicFee, volatility, volume24h, liquidityDepth)
	if err != nil {
		return 0, err
	}
	return new(uint256.Int).SetBytes(ret).Uint64(), nil
}

// PlanSwap splits [totalAmount] into the swap plan that minimizes price
// impact on the pool.
func (s *Service) PlanSwap(ctx context.Context, totalAmount, reserveIn, reserveOut *uint256.Int, feeBps uint64) (amm.SwapPlan, error) {
	ret, err := s.evaluate(ctx, SelectorGetOptimalSwap, totalAmount, reserveIn, reserveOut, uint256.NewInt(feeBps))
	if err != nil {
		return amm.SwapPlan{}, err
	}
	if len(ret) < 3*wordSize {
		return amm.SwapPlan{}, ErrTruncatedInput
	}
	return amm.SwapPlan{
		OptimalAmount:  word(ret, 0),
		ExpectedOut:    word(ret, 1),
		PriceImpactBps: word(ret, 2),
	}, nil
}

// LPTokens returns the pool shares minted for a deposit.
func (s *Service) LPTokens(ctx context.Context, amount0, amount1, reserve0, reserve1, totalSupply *uint256.Int) (*uint256.Int, error) {
	ret, err := s.evaluate(ctx, SelectorGetLPTokens, amount0, amount1, reserve0, reserve1, totalSupply)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(ret), nil
}

// ImpermanentLoss returns the loss versus holding, in basis points, for a
// move from [initialPrice] to [currentPrice].
func (s *Service) ImpermanentLoss(ctx context.Context, initialPrice, currentPrice *uint256.Int) (*uint256.Int, error) {
	ret, err := s.evaluate(ctx, SelectorGetImpermanentLoss, initialPrice, currentPrice)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(ret), nil
}

// RouteQuote chains a swap through [route] and returns the final output.
func (s *Service) RouteQuote(ctx context.Context, amountIn *uint256.Int, route []amm.Pool) (*uint256.Int, error) {
	ret, err := s.evaluate(ctx, SelectorEvalRoute, routeWords(amountIn, route)...)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(ret), nil
}

// BestRoute searches [pools] for the best path of at most two hops.
func (s *Service) BestRoute(ctx context.Context, amountIn *uint256.Int, pools []amm.Pool) (amm.BestRoute, error) {
	ret, err := s.evaluate(ctx, SelectorFindBestRoute, routeWords(amountIn, pools)...)
	if err != nil {
		return amm.BestRoute{}, err
	}
	return decodeBestRoute(ret)
}

// Volatility returns the annualized log-return volatility of [prices].
func (s *Service) Volatility(ctx context.Context, prices []*uint256.Int) (*uint256.Int, error) {
	words := make([]*uint256.Int, 0, 1+len(prices))
	words = append(words, uint256.NewInt(uint64(len(prices))))
	words = append(words, prices...)

	ret, err := s.evaluate(ctx, SelectorGetVolatility, words...)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(ret), nil
}

// evaluate encodes the request in the precompile calldata format, serves it
// from the cache when possible, and otherwise dispatches it through the
// contract and stores the result.
func (s *Service) evaluate(ctx context.Context, selector uint32, words ...*uint256.Int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := make([]byte, selectorSize, selectorSize+len(words)*wordSize)
	binary.BigEndian.PutUint32(req, selector)
	req = append(req, packWords(words...)...)

	var cacheKey []byte
	if s.db != nil {
		digest := blake3.Sum256(req)
		cacheKey = digest[:]

		cached, err := s.db.Get(cacheKey)
		switch {
		case err == nil:
			s.hits.Add(1)
			s.log.Debug("analytics cache hit", "selector", fmt.Sprintf("0x%08x", selector))
			return cached, nil
		case !errors.Is(err, database.ErrNotFound):
			return nil, fmt.Errorf("analytics cache read: %w", err)
		}
		s.misses.Add(1)
	}

	ret, err := s.contract.runPure(selector, req[selectorSize:])
	if err != nil {
		return nil, err
	}

	if cacheKey != nil {
		if err := s.db.Put(cacheKey, ret); err != nil {
			// Losing a cache entry is not worth failing the query.
			s.log.Warn("analytics cache write failed", "err", err)
		}
	}
	return ret, nil
}

// routeWords encodes an amount and pool list in the calldata word layout.
func routeWords(amountIn *uint256.Int, pools []amm.Pool) []*uint256.Int {
	words := make([]*uint256.Int, 0, 2+poolWords*len(pools))
	words = append(words, amountIn, uint256.NewInt(uint64(len(pools))))
	for _, p := range pools {
		words = append(words, p.ReserveIn, p.ReserveOut, uint256.NewInt(p.FeeBps))
	}
	return words
}

// decodeBestRoute parses a findBestRoute response: the output amount, the
// hop count, and one pool index per hop.
func decodeBestRoute(ret []byte) (amm.BestRoute, error) {
	if len(ret) < 2*wordSize {
		return amm.BestRoute{}, ErrTruncatedInput
	}

	hopWord := word(ret, 1)
	words := uint64(len(ret)) / wordSize
	if !hopWord.IsUint64() || hopWord.Uint64() > words-2 {
		return amm.BestRoute{}, ErrTruncatedInput
	}

	best := amm.BestRoute{AmountOut: word(ret, 0)}
	hops := int(hopWord.Uint64())
	if hops == 0 {
		return best, nil
	}

	best.Pools = make([]int, hops)
	for i := range best.Pools {
		best.Pools[i] = int(word(ret, 2+i).Uint64())
	}
	return best, nil
}
