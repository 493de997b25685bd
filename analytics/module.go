// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package analytics

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/quant/contract"
	"github.com/luxfi/quant/modules"
	"github.com/luxfi/quant/precompileconfig"
	"github.com/luxfi/quant/registry"
)

var _ contract.Configurator = (*configurator)(nil)
var _ contract.StatefulPrecompiledContract = (*AnalyticsContract)(nil)
var _ precompileconfig.Config = (*Config)(nil)

// ConfigKey is the key used in json config files to specify this precompile config.
const ConfigKey = "quantAnalyticsConfig"

// ContractAddress is where the quant analytics precompile is installed (LP-9210).
var ContractAddress = common.HexToAddress(registry.QuantAnalytics)

// Route pool limits. Both route operations reject inputs carrying more
// candidate pools than the configured limit.
const (
	DefaultRouteLimit uint64 = 16
	MaxRouteLimit     uint64 = 128
)

// routeLimitKey is the storage slot at ContractAddress holding the active
// route pool limit, written when the precompile is configured.
var routeLimitKey = common.BytesToHash([]byte("routeLimit"))

// AnalyticsPrecompile is the singleton instance
var AnalyticsPrecompile = &AnalyticsContract{routeLimit: DefaultRouteLimit}

// Module is the precompile module
var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractAddress,
	Contract:     AnalyticsPrecompile,
	Configurator: &configurator{},
}

type configurator struct{}

func init() {
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

func (*configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

func (*configurator) Configure(
	chainConfig precompileconfig.ChainConfig,
	cfg precompileconfig.Config,
	state contract.StateDB,
	blockContext contract.ConfigurationBlockContext,
) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("expected config type %T, got %T: %v", &Config{}, cfg, cfg)
	}

	limit := config.MaxRoutePools
	if limit == 0 {
		limit = DefaultRouteLimit
	}
	AnalyticsPrecompile.routeLimit = limit
	state.SetState(ContractAddress, routeLimitKey, common.Hash(uint256.NewInt(limit).Bytes32()))
	return nil
}

// Config implements the precompileconfig.Config interface
type Config struct {
	Upgrade       precompileconfig.Upgrade `json:"upgrade,omitempty"`
	MaxRoutePools uint64                   `json:"maxRoutePools,omitempty"`
}

func (c *Config) Key() string {
	return ConfigKey
}

func (c *Config) Timestamp() *uint64 {
	return c.Upgrade.Timestamp()
}

func (c *Config) IsDisabled() bool {
	return c.Upgrade.Disable
}

func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) && c.MaxRoutePools == other.MaxRoutePools
}

func (c *Config) Verify(chainConfig precompileconfig.ChainConfig) error {
	if c.MaxRoutePools > MaxRouteLimit {
		return fmt.Errorf("maxRoutePools %d exceeds limit %d", c.MaxRoutePools, MaxRouteLimit)
	}
	return nil
}
