// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import "errors"

// ErrOutOfGas is returned when a precompile is invoked with less gas than
// its input requires.
var ErrOutOfGas = errors.New("out of gas")

// DeductGas subtracts [requiredGas] from [suppliedGas], failing with
// ErrOutOfGas when the supply is insufficient.
func DeductGas(suppliedGas uint64, requiredGas uint64) (uint64, error) {
	if suppliedGas < requiredGas {
		return 0, ErrOutOfGas
	}
	return suppliedGas - requiredGas, nil
}
