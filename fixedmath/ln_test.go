// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedmath

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestLn(t *testing.T) {
	tests := []struct {
		name string
		x    *uint256.Int
		want *uint256.Int
	}{
		{name: "zero is defined as zero", x: uint256.NewInt(0), want: uint256.NewInt(0)},
		{name: "one", x: Scale.Clone(), want: uint256.NewInt(0)},
		{name: "half clamps to zero", x: fraction(1, 2), want: uint256.NewInt(0)},
		{name: "tiny clamps to zero", x: uint256.NewInt(12_345), want: uint256.NewInt(0)},
		{name: "two", x: scaled(2), want: Ln2Scaled.Clone()},
		{
			name: "four is twice ln two",
			x:    scaled(4),
			want: new(uint256.Int).Mul(uint256.NewInt(2), Ln2Scaled),
		},
		{
			name: "1024 is ten times ln two",
			x:    scaled(1024),
			want: new(uint256.Int).Mul(uint256.NewInt(10), Ln2Scaled),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ln(tt.x)
			require.True(t, tt.want.Eq(got),
				"Ln(%s) = %s, want %s", tt.x, got, tt.want)
		})
	}
}

func TestLnAccuracy(t *testing.T) {
	// ln(3) needs both the halving step and the series; the truncated
	// series holds the error under half a percent on the reduced interval.
	got := Ln(scaled(3))
	want := uint256.NewInt(1_098_612_288_668_109_691)
	diff := new(uint256.Int)
	if got.Gt(want) {
		diff.Sub(got, want)
	} else {
		diff.Sub(want, got)
	}
	require.True(t, diff.LtUint64(5_000_000_000_000_000),
		"Ln(3) = %s too far from %s", got, want)
}

func TestLnMonotone(t *testing.T) {
	prev := Ln(scaled(2))
	for n := uint64(3); n <= 10; n++ {
		cur := Ln(scaled(n))
		require.True(t, cur.Gt(prev), "Ln(%d) should exceed Ln(%d)", n, n-1)
		prev = cur
	}
}

func TestLnDoesNotMutate(t *testing.T) {
	x := scaled(6)
	Ln(x)
	require.True(t, scaled(6).Eq(x))
}

func BenchmarkLn(b *testing.B) {
	x := scaled(3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Ln(x)
	}
}
