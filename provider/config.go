// Package provider resolves connection configuration for subnets and
// hands out the right subnet manager backend for a subnet identifier:
// the JSON-RPC node manager for UTXO-rooted subnets, the gateway
// contract manager for account-rooted ones. It also discovers bootstrap
// endpoints for a subnet over DNS.
package provider

import (
	"fmt"
	"time"
)

// RPCConfig holds the connection parameters for a subnet's RPC interface.
type RPCConfig struct {
	URL       string        `json:"url"`
	AuthToken string        `json:"auth_token"`
	Timeout   time.Duration `json:"timeout"`
	Network   string        `json:"network"`
}

// NetworkPresets contains default RPC configurations for known networks.
// Mainnet is intentionally omitted to require explicit configuration.
var NetworkPresets = map[string]RPCConfig{
	"localnet": {URL: "http://localhost:28332"},
	"testnet":  {URL: "http://localhost:28332"},
}

// ResolveConfig merges RPC configuration from three sources with
// decreasing priority:
//  1. Explicit values (highest priority)
//  2. Environment variables (SUBNET_RPC_URL, SUBNET_RPC_TOKEN)
//  3. Network presets (lowest priority, localnet/testnet only)
//
// For mainnet, explicit configuration is required. There is no preset.
func ResolveConfig(explicit *RPCConfig, env map[string]string, network string) (*RPCConfig, error) {
	result := RPCConfig{Network: network}

	// Layer 1: start with preset defaults if available.
	if preset, ok := NetworkPresets[network]; ok {
		result = preset
		result.Network = network
	}

	// Layer 2: environment variables override preset defaults.
	if env != nil {
		if v, ok := env["SUBNET_RPC_URL"]; ok && v != "" {
			result.URL = v
		}
		if v, ok := env["SUBNET_RPC_TOKEN"]; ok && v != "" {
			result.AuthToken = v
		}
	}

	// Layer 3: explicit values have highest priority.
	if explicit != nil {
		if explicit.URL != "" {
			result.URL = explicit.URL
		}
		if explicit.AuthToken != "" {
			result.AuthToken = explicit.AuthToken
		}
		if explicit.Timeout != 0 {
			result.Timeout = explicit.Timeout
		}
	}

	if result.URL == "" {
		return nil, fmt.Errorf("%w: %s requires an explicit endpoint (set the URL or SUBNET_RPC_URL)",
			ErrMissingConfig, network)
	}

	return &result, nil
}
