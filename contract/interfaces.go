// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the boundary between the EVM and stateful
// precompiled contracts: the state a precompile may touch, the block
// context it may read, and the configurator hooks the chain upgrade
// machinery drives.
package contract

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	ethtypes "github.com/luxfi/geth/core/types"

	"github.com/luxfi/quant/precompileconfig"
)

// StateDB is the subset of EVM state access exposed to stateful precompiles.
type StateDB interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	// SetState stores [value] under [key] at [addr] and returns the previous
	// value of the slot.
	SetState(addr common.Address, key, value common.Hash) common.Hash

	GetBalance(addr common.Address) *uint256.Int
	// AddBalance credits [amount] to [addr] and returns the previous balance.
	AddBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason) uint256.Int
	// SubBalance debits [amount] from [addr] and returns the previous balance.
	SubBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason) uint256.Int

	GetBalanceMultiCoin(addr common.Address, coinID common.Hash) *big.Int
	AddBalanceMultiCoin(addr common.Address, coinID common.Hash, amount *big.Int)
	SubBalanceMultiCoin(addr common.Address, coinID common.Hash, amount *big.Int)

	GetNonce(addr common.Address) uint64
	SetNonce(addr common.Address, nonce uint64, reason tracing.NonceChangeReason)

	CreateAccount(addr common.Address)
	Exist(addr common.Address) bool

	AddLog(log *ethtypes.Log)
	GetPredicateStorageSlots(addr common.Address, index int) ([]byte, bool)
	TxHash() common.Hash

	Snapshot() int
	RevertToSnapshot(snapshot int)
}

// AccessibleState is the EVM context a precompile can reach during Run.
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
	GetChainConfig() precompileconfig.ChainConfig
}

// ConfigurationBlockContext is the block information available while a
// precompile upgrade is being applied.
type ConfigurationBlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// BlockContext is the block information available to a precompile during Run.
type BlockContext interface {
	ConfigurationBlockContext
	// GetPredicateResults returns the serialized predicate results recorded
	// for [txHash] at [precompileAddress], if any.
	GetPredicateResults(txHash common.Hash, precompileAddress common.Address) []byte
}

// StatefulPrecompiledContract is the interface a precompile exposes to the EVM.
type StatefulPrecompiledContract interface {
	// Run executes the precompile with [input], returning the output, the
	// gas left over, and any execution error.
	Run(
		accessibleState AccessibleState,
		caller common.Address,
		addr common.Address,
		input []byte,
		suppliedGas uint64,
		readOnly bool,
	) (ret []byte, remainingGas uint64, err error)
}

// Configurator applies a precompile config to the chain state when the
// config's scheduled upgrade activates.
type Configurator interface {
	// MakeConfig returns a zero value of this precompile's config type, used
	// as the unmarshalling target for upgrade json.
	MakeConfig() precompileconfig.Config
	// Configure applies [precompileConfig] at activation.
	Configure(
		chainConfig precompileconfig.ChainConfig,
		precompileConfig precompileconfig.Config,
		state StateDB,
		blockContext ConfigurationBlockContext,
	) error
}
