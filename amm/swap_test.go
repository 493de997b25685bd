// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/quant/fixedmath"
)

func TestAmountOut(t *testing.T) {
	tests := []struct {
		name       string
		amountIn   uint64
		reserveIn  uint64
		reserveOut uint64
		feeBps     uint64
		want       uint64
	}{
		{name: "thirty bps fee", amountIn: 10, reserveIn: 100, reserveOut: 200, feeBps: 30, want: 18},
		{name: "no fee", amountIn: 10, reserveIn: 100, reserveOut: 200, feeBps: 0, want: 18},
		{name: "second pool of the route fixture", amountIn: 10, reserveIn: 300, reserveOut: 100, feeBps: 30, want: 3},
		{name: "zero amount", amountIn: 0, reserveIn: 100, reserveOut: 200, feeBps: 30, want: 0},
		{name: "zero reserve in", amountIn: 10, reserveIn: 0, reserveOut: 200, feeBps: 30, want: 0},
		{name: "zero reserve out", amountIn: 10, reserveIn: 100, reserveOut: 0, feeBps: 30, want: 0},
		{name: "full fee", amountIn: 10, reserveIn: 100, reserveOut: 200, feeBps: 10000, want: 0},
		{name: "fee past full", amountIn: 10, reserveIn: 100, reserveOut: 200, feeBps: 10001, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountOut(
				uint256.NewInt(tt.amountIn),
				uint256.NewInt(tt.reserveIn),
				uint256.NewInt(tt.reserveOut),
				tt.feeBps,
			)
			require.Equal(t, tt.want, got.Uint64(),
				"AmountOut(%d, %d, %d, %d)", tt.amountIn, tt.reserveIn, tt.reserveOut, tt.feeBps)
		})
	}
}

func TestAmountOutProperties(t *testing.T) {
	reserveIn := uint256.NewInt(1_000_000)
	reserveOut := uint256.NewInt(2_000_000)

	t.Run("monotone in amount", func(t *testing.T) {
		prev := new(uint256.Int)
		for amount := uint64(1); amount <= 1_000_000; amount *= 10 {
			out := AmountOut(uint256.NewInt(amount), reserveIn, reserveOut, 30)
			require.True(t, out.Cmp(prev) >= 0,
				"output decreased at amountIn=%d", amount)
			prev = out
		}
	})

	t.Run("never drains the pool", func(t *testing.T) {
		// Even an input amount dwarfing the reserves stays under reserveOut.
		huge := new(uint256.Int).Mul(fixedmath.Scale, fixedmath.Scale)
		out := AmountOut(huge, reserveIn, reserveOut, 30)
		require.True(t, out.Lt(reserveOut),
			"out=%s should stay below reserveOut=%s", out, reserveOut)
	})

	t.Run("oversized input quotes zero", func(t *testing.T) {
		// The fee multiply would leave 256 bits, which quotes zero instead
		// of wrapping.
		almostMax := new(uint256.Int).Lsh(uint256.NewInt(1), 250)
		out := AmountOut(almostMax, reserveIn, reserveOut, 30)
		require.True(t, out.IsZero())
	})
}

func TestSlippage(t *testing.T) {
	reserveIn := uint256.NewInt(100)
	reserveOut := uint256.NewInt(200)

	t.Run("shortfall in basis points", func(t *testing.T) {
		// The pool pays 18 against an expectation of 20: 1000 bps short.
		got := Slippage(uint256.NewInt(10), reserveIn, reserveOut, 30, uint256.NewInt(20))
		require.Equal(t, uint64(1000), got.Uint64())
	})

	t.Run("met expectation is zero", func(t *testing.T) {
		got := Slippage(uint256.NewInt(10), reserveIn, reserveOut, 30, uint256.NewInt(18))
		require.True(t, got.IsZero())
	})

	t.Run("beaten expectation is zero", func(t *testing.T) {
		got := Slippage(uint256.NewInt(10), reserveIn, reserveOut, 30, uint256.NewInt(15))
		require.True(t, got.IsZero())
	})

	t.Run("zero expectation is zero", func(t *testing.T) {
		got := Slippage(uint256.NewInt(10), reserveIn, reserveOut, 30, uint256.NewInt(0))
		require.True(t, got.IsZero())
	})

	t.Run("zero reserve is zero", func(t *testing.T) {
		got := Slippage(uint256.NewInt(10), uint256.NewInt(0), reserveOut, 30, uint256.NewInt(20))
		require.True(t, got.IsZero())
	})
}

func TestOptimalSwap(t *testing.T) {
	t.Run("uncapped sizing", func(t *testing.T) {
		// k = 40_000, no fee: optimal = sqrt(40_000 * 1_000_000) = 200_000.
		plan := OptimalSwap(uint256.NewInt(1_000_000), uint256.NewInt(100), uint256.NewInt(400), 0)
		require.Equal(t, uint64(200_000), plan.OptimalAmount.Uint64())
		require.Equal(t, uint64(399), plan.ExpectedOut.Uint64())
		require.Equal(t, uint64(9995), plan.PriceImpactBps.Uint64())
	})

	t.Run("capped at the requested total", func(t *testing.T) {
		plan := OptimalSwap(uint256.NewInt(100), uint256.NewInt(100), uint256.NewInt(400), 0)
		require.Equal(t, uint64(100), plan.OptimalAmount.Uint64())
		require.Equal(t, uint64(200), plan.ExpectedOut.Uint64())
		require.Equal(t, uint64(5000), plan.PriceImpactBps.Uint64())
	})

	t.Run("zero total", func(t *testing.T) {
		plan := OptimalSwap(uint256.NewInt(0), uint256.NewInt(100), uint256.NewInt(400), 30)
		require.True(t, plan.OptimalAmount.IsZero())
		require.True(t, plan.ExpectedOut.IsZero())
		require.True(t, plan.PriceImpactBps.IsZero())
	})

	t.Run("zero reserves", func(t *testing.T) {
		plan := OptimalSwap(uint256.NewInt(100), uint256.NewInt(0), uint256.NewInt(400), 30)
		require.True(t, plan.OptimalAmount.IsZero())
		require.True(t, plan.ExpectedOut.IsZero())
		require.True(t, plan.PriceImpactBps.IsZero())
	})
}

func BenchmarkAmountOut(b *testing.B) {
	amountIn := uint256.NewInt(1_000_000)
	reserveIn := new(uint256.Int).Mul(uint256.NewInt(5_000), fixedmath.Scale)
	reserveOut := new(uint256.Int).Mul(uint256.NewInt(12_000), fixedmath.Scale)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AmountOut(amountIn, reserveIn, reserveOut, 30)
	}
}

func BenchmarkOptimalSwap(b *testing.B) {
	total := new(uint256.Int).Mul(uint256.NewInt(100), fixedmath.Scale)
	reserveIn := new(uint256.Int).Mul(uint256.NewInt(5_000), fixedmath.Scale)
	reserveOut := new(uint256.Int).Mul(uint256.NewInt(12_000), fixedmath.Scale)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		OptimalSwap(total, reserveIn, reserveOut, 30)
	}
}
