package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPreset(t *testing.T) {
	cfg, err := ResolveConfig(nil, nil, "localnet")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:28332", cfg.URL)
	assert.Equal(t, "localnet", cfg.Network)
	assert.Empty(t, cfg.AuthToken)
}

func TestResolveConfigEnvOverridesPreset(t *testing.T) {
	env := map[string]string{
		"SUBNET_RPC_URL":   "http://node.example:9944",
		"SUBNET_RPC_TOKEN": "sekrit",
	}
	cfg, err := ResolveConfig(nil, env, "localnet")
	require.NoError(t, err)
	assert.Equal(t, "http://node.example:9944", cfg.URL)
	assert.Equal(t, "sekrit", cfg.AuthToken)
}

func TestResolveConfigExplicitWins(t *testing.T) {
	explicit := &RPCConfig{URL: "http://explicit:1234", Timeout: 5 * time.Second}
	env := map[string]string{"SUBNET_RPC_URL": "http://env:9944", "SUBNET_RPC_TOKEN": "envtoken"}

	cfg, err := ResolveConfig(explicit, env, "localnet")
	require.NoError(t, err)
	assert.Equal(t, "http://explicit:1234", cfg.URL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	// Env still fills fields the explicit config left empty.
	assert.Equal(t, "envtoken", cfg.AuthToken)
}

func TestResolveConfigMainnetRequiresExplicit(t *testing.T) {
	_, err := ResolveConfig(nil, nil, "mainnet")
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "mainnet")

	cfg, err := ResolveConfig(&RPCConfig{URL: "https://rpc.mainnet.example"}, nil, "mainnet")
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.mainnet.example", cfg.URL)
}

func TestResolveConfigEmptyEnvValuesIgnored(t *testing.T) {
	env := map[string]string{"SUBNET_RPC_URL": "", "SUBNET_RPC_TOKEN": ""}
	cfg, err := ResolveConfig(nil, env, "testnet")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:28332", cfg.URL)
}
