// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedmath

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestExp(t *testing.T) {
	t.Run("zero returns one", func(t *testing.T) {
		require.True(t, Scale.Eq(Exp(uint256.NewInt(0))))
	})

	t.Run("smallest step", func(t *testing.T) {
		// The first series term of Exp(1) is 1, far below the cutoff, so
		// the sum stops at Scale + 1.
		want := new(uint256.Int).AddUint64(Scale, 1)
		require.True(t, want.Eq(Exp(uint256.NewInt(1))))
	})

	t.Run("one lands between two and three", func(t *testing.T) {
		got := Exp(Scale)
		require.True(t, got.Gt(scaled(2)), "Exp(Scale)=%s should exceed 2", got)
		require.True(t, got.Lt(scaled(3)), "Exp(Scale)=%s should stay below 3", got)
	})

	t.Run("monotone on whole arguments", func(t *testing.T) {
		prev := Exp(scaled(1))
		for n := uint64(2); n <= 6; n++ {
			cur := Exp(scaled(n))
			require.True(t, cur.Gt(prev), "Exp(%d) should exceed Exp(%d)", n, n-1)
			prev = cur
		}
	})

	t.Run("clamp saturates above twenty", func(t *testing.T) {
		at := Exp(scaled(20))
		require.True(t, at.Eq(Exp(scaled(21))))
		require.True(t, at.Eq(Exp(scaled(1_000_000))))
	})

	t.Run("argument not mutated by clamp", func(t *testing.T) {
		x := scaled(50)
		Exp(x)
		require.True(t, scaled(50).Eq(x))
	})
}

func BenchmarkExp(b *testing.B) {
	x := Scale.Clone()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Exp(x)
	}
}
