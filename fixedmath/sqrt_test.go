// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedmath

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestSqrt(t *testing.T) {
	tests := []struct {
		name string
		x    *uint256.Int
		want *uint256.Int
	}{
		{name: "zero", x: uint256.NewInt(0), want: uint256.NewInt(0)},
		{name: "one", x: uint256.NewInt(1), want: uint256.NewInt(1)},
		{name: "two truncates", x: uint256.NewInt(2), want: uint256.NewInt(1)},
		{name: "three truncates", x: uint256.NewInt(3), want: uint256.NewInt(1)},
		{name: "four", x: uint256.NewInt(4), want: uint256.NewInt(2)},
		{name: "perfect square", x: uint256.NewInt(625), want: uint256.NewInt(25)},
		{name: "just below a square", x: uint256.NewInt(624), want: uint256.NewInt(24)},
		{name: "one million", x: uint256.NewInt(1_000_000), want: uint256.NewInt(1000)},
		{
			name: "scale squared",
			x:    new(uint256.Int).Mul(Scale, Scale),
			want: Scale.Clone(),
		},
		{
			name: "two to the 64",
			x:    new(uint256.Int).Lsh(uint256.NewInt(1), 64),
			want: new(uint256.Int).Lsh(uint256.NewInt(1), 32),
		},
		{
			name: "two to the 128",
			x:    new(uint256.Int).Lsh(uint256.NewInt(1), 128),
			want: new(uint256.Int).Lsh(uint256.NewInt(1), 64),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sqrt(tt.x)
			require.True(t, tt.want.Eq(got),
				"Sqrt(%s) = %s, want %s", tt.x, got, tt.want)
		})
	}
}

func TestSqrtFloorProperty(t *testing.T) {
	// floor correctness: sqrt(x)^2 <= x < (sqrt(x)+1)^2 across magnitudes.
	inputs := []*uint256.Int{
		uint256.NewInt(5),
		uint256.NewInt(99),
		uint256.NewInt(12_345),
		uint256.NewInt(1<<40 + 987),
		new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 64), uint256.NewInt(1)),
		new(uint256.Int).AddUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 80), 3),
		new(uint256.Int).Mul(Scale, Scale),
		new(uint256.Int).AddUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 77),
		new(uint256.Int).AddUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 200), 987_654_321),
	}
	for _, x := range inputs {
		root := Sqrt(x)
		lower := new(uint256.Int).Mul(root, root)
		upper := new(uint256.Int).AddUint64(root, 1)
		upper.Mul(upper, upper)
		require.True(t, lower.Cmp(x) <= 0, "Sqrt(%s) = %s overshoots", x, root)
		require.True(t, upper.Gt(x), "Sqrt(%s) = %s undershoots", x, root)
	}
}

func TestSqrtDoesNotMutate(t *testing.T) {
	x := uint256.NewInt(625)
	Sqrt(x)
	require.Equal(t, uint64(625), x.Uint64())
}

func BenchmarkSqrt(b *testing.B) {
	x := new(uint256.Int).Mul(Scale, Scale)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sqrt(x)
	}
}
