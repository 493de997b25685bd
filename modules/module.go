// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modules

import (
	"bytes"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/quant/contract"
)

// Module bundles everything the EVM needs to install a stateful precompile.
type Module struct {
	// ConfigKey is the key used in json config files to specify this
	// precompile config.
	ConfigKey string
	// Address is where the stateful precompile is accessible.
	Address common.Address
	// Contract is the thread-safe singleton dispatched when this precompile
	// is enabled.
	Contract contract.StatefulPrecompiledContract
	// Configurator applies this precompile's config when its scheduled
	// upgrade activates.
	Configurator contract.Configurator
}

type moduleArray []Module

func (m moduleArray) Len() int {
	return len(m)
}

func (m moduleArray) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}

func (m moduleArray) Less(i, j int) bool {
	return bytes.Compare(m[i].Address.Bytes(), m[j].Address.Bytes()) < 0
}
