// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the configuration interface every
// stateful precompile exposes to the chain upgrade machinery. Configs are
// parsed from the chain's json upgrade files, verified, and applied at the
// block timestamp they schedule.
package precompileconfig

// Config is implemented by the config of every stateful precompile. A config
// schedules the activation (or deactivation) of its precompile and carries
// the precompile's own settings.
type Config interface {
	// Key returns the json key this config is registered under.
	Key() string
	// Timestamp returns the block timestamp at which this config activates.
	// A nil timestamp means the config never activates.
	Timestamp() *uint64
	// IsDisabled returns true if this config disables its precompile instead
	// of enabling it.
	IsDisabled() bool
	// Equal reports whether this config is semantically identical to [other].
	Equal(other Config) bool
	// Verify checks the config is internally consistent before it is applied.
	Verify(chainConfig ChainConfig) error
}

// ChainConfig exposes the chain rules available to precompile configs during
// verification. The EVM supplies its active chain config.
type ChainConfig interface {
	// IsPrecompileEnabled reports whether the precompile registered under
	// [configKey] is active at [timestamp].
	IsPrecompileEnabled(configKey string, timestamp uint64) bool
}
