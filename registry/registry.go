// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"fmt"
	"strings"

	"github.com/luxfi/geth/common"
)

// ============================================================================
// PRECOMPILE ADDRESS SCHEME - Aligned with LP Numbering (LP-0099)
// ============================================================================
//
// All Lux-native precompiles use trailing-significant 20-byte addresses:
//   Format: 0x0000000000000000000000000000000000PCII
//
// The address ends with the 16-bit LP number (PCII) for easy identification.
// The selector encodes:
//   0x 0000...0000 P C II
//                  │ │ └┴─ Item/function (8 bits, 256 items per family×chain)
//                  │ └──── Chain slot    (4 bits, 16 chains max)
//                  └────── Family page   (4 bits, aligned with LP-Pxxx)
//
// This module ships the quant analytics family on the DEX/Markets page:
//   P=9 → LP-9xxx (DEX/Markets)
//   C=2 → C-Chain (main EVM)
//
// Example: quant analytics on C-Chain = P=9, C=2, II=0x10
//          Address = 0x0000000000000000000000000000000000009210 (LP-9210)

const (
	// =========================================================================
	// PAGE 9: DEX/MARKETS → LP-9xxx (addresses match LP numbers directly)
	// =========================================================================
	// LP-9010: DEX Precompile - singleton PoolManager (trading venue)
	// LP-9011: Oracle Precompile - multi-source price aggregation
	// LP-9210: Quant Analytics Precompile - fixed-point math and AMM quoting

	// Core DEX trading venues (LP-9010 series)
	LXPool   = "0x0000000000000000000000000000000000009010" // LP-9010 LXPool (singleton AMM)
	LXOracle = "0x0000000000000000000000000000000000009011" // LP-9011 LXOracle (price aggregation)
	LXRouter = "0x0000000000000000000000000000000000009012" // LP-9012 LXRouter (swap routing)

	// Quant analytics (LP-9210 series)
	QuantAnalytics = "0x0000000000000000000000000000000000009210" // LP-9210 fixed-point math + AMM analytics
)

// PrecompileAddress calculates address from (P, C, II) nibbles
// P = Family page (aligned with LP-Pxxx), C = Chain slot, II = Item
// Returns trailing-significant format: 0x0000000000000000000000000000000000PCII
// The address ends with the LP number (e.g., 9210 for LP-9210 quant analytics)
func PrecompileAddress(p, c, ii uint8) common.Address {
	if p > 15 || c > 15 {
		return common.Address{}
	}
	// Build the 4-character selector: PCII (hex)
	selector := fmt.Sprintf("%x%x%02x", p, c, ii)
	// Pad with leading zeros to 40 hex chars (20 bytes)
	addr := "0000000000000000000000000000000000" + selector
	return common.HexToAddress("0x" + addr)
}

// ChainSlot returns the C-nibble for a chain name
func ChainSlot(chain string) uint8 {
	switch chain {
	case "P", "p":
		return 0
	case "X", "x":
		return 1
	case "C", "c":
		return 2
	case "Q", "q":
		return 3
	case "A", "a":
		return 4
	case "B", "b":
		return 5
	case "Z", "z":
		return 6
	case "M", "m":
		return 7
	case "Zoo", "zoo":
		return 8
	case "Hanzo", "hanzo":
		return 9
	case "SPC", "spc":
		return 0xA
	default:
		return 0xFF
	}
}

// FamilyPage returns the P-nibble for a family name
func FamilyPage(family string) uint8 {
	switch family {
	case "DEX", "dex", "Markets", "markets":
		return 9 // LP-9xxx
	default:
		return 0xFF
	}
}

// ChainPrecompiles maps each chain to the precompiles it enables.
// Zoo is DEX focused and reuses the C-Chain addresses.
var ChainPrecompiles = map[string][]string{
	"C": {
		LXPool, LXOracle, LXRouter,
		QuantAnalytics,
	},
	"Zoo": {
		LXPool, LXOracle, LXRouter,
		QuantAnalytics,
	},
}

// PrecompileInfo describes a precompile for discovery and tooling
type PrecompileInfo struct {
	Address     string
	Name        string
	Description string
	GasBase     uint64
	Chains      []string
	LPRange     string // LP-Pxxx range alignment
}

// AllPrecompiles lists all available precompiles with their metadata
var AllPrecompiles = []PrecompileInfo{
	{LXPool, "LX_POOL", "Singleton AMM pool manager", 50000, []string{"C", "Zoo"}, "LP-9010"},
	{LXOracle, "LX_ORACLE", "Price oracle aggregation", 15000, []string{"C", "Zoo"}, "LP-9011"},
	{LXRouter, "LX_ROUTER", "Optimized swap routing", 10000, []string{"C", "Zoo"}, "LP-9012"},
	{QuantAnalytics, "QUANT_ANALYTICS", "Fixed-point math and AMM analytics", 100, []string{"C", "Zoo"}, "LP-9210"},
}

// GetPrecompileAddress returns the address for a precompile by name
func GetPrecompileAddress(name string) common.Address {
	for _, p := range AllPrecompiles {
		if p.Name == name {
			return common.HexToAddress(p.Address)
		}
	}
	return common.Address{}
}

// GetChainPrecompiles returns all precompile addresses for a chain
func GetChainPrecompiles(chainLetter string) []common.Address {
	addrs, ok := ChainPrecompiles[chainLetter]
	if !ok {
		return nil
	}

	result := make([]common.Address, len(addrs))
	for i, addr := range addrs {
		result[i] = common.HexToAddress(addr)
	}
	return result
}

// IsPrecompileEnabled checks if a precompile is enabled for a chain
func IsPrecompileEnabled(chainLetter string, precompileAddr common.Address) bool {
	addrs := ChainPrecompiles[chainLetter]

	for _, addr := range addrs {
		if common.HexToAddress(addr) == precompileAddr {
			return true
		}
	}
	return false
}

// GetPrecompilesByFamily returns all precompiles for a family page
func GetPrecompilesByFamily(family string) []PrecompileInfo {
	page := FamilyPage(family)
	if page == 0xFF {
		return nil
	}

	prefix := fmt.Sprintf("LP-%x", page)
	var result []PrecompileInfo
	for _, p := range AllPrecompiles {
		if strings.HasPrefix(p.LPRange, prefix) {
			result = append(result, p)
		}
	}
	return result
}
