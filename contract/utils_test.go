// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeductGas(t *testing.T) {
	remaining, err := DeductGas(100, 40)
	require.NoError(t, err)
	require.Equal(t, uint64(60), remaining)

	remaining, err = DeductGas(40, 40)
	require.NoError(t, err)
	require.Equal(t, uint64(0), remaining)

	remaining, err = DeductGas(39, 40)
	require.ErrorIs(t, err, ErrOutOfGas)
	require.Equal(t, uint64(0), remaining)
}
