package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArgs() []string {
	return []string{
		"rental-router",
		"--eth-node-address", "http://localhost:8545",
		"--token-address", "0x1111111111111111111111111111111111111111",
		"--factory-address", "0x2222222222222222222222222222222222222222",
		"--admin-private-key", "0xf8e9b2b7c3a1d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9",
		"--mysql-dsn", "root:secret@tcp(localhost:3306)/rental",
		"--web-address", "0.0.0.0:8080",
	}
}

func TestLoadConfigValid(t *testing.T) {
	var cfg Config
	args := validArgs()
	require.NoError(t, LoadConfig(&cfg, &args))

	assert.Equal(t, "http://localhost:8545", cfg.Blockchain.EthNodeAddress)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", cfg.Blockchain.TokenAddress)
	assert.Equal(t, "root:secret@tcp(localhost:3306)/rental", cfg.DB.DSN)
}

func TestLoadConfigMissingNodeAddress(t *testing.T) {
	var cfg Config
	args := []string{
		"rental-router",
		"--token-address", "0x1111111111111111111111111111111111111111",
		"--factory-address", "0x2222222222222222222222222222222222222222",
		"--admin-private-key", "0xf8e9b2b7c3a1d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9",
		"--mysql-dsn", "root:secret@tcp(localhost:3306)/rental",
		"--web-address", "0.0.0.0:8080",
	}
	err := LoadConfig(&cfg, &args)
	assert.ErrorIs(t, err, ErrConfigValidation)
}

func TestLoadConfigMalformedTokenAddress(t *testing.T) {
	var cfg Config
	args := validArgs()
	args[4] = "not-an-address"
	err := LoadConfig(&cfg, &args)
	assert.ErrorIs(t, err, ErrConfigValidation)
}

func TestLoadConfigCredentialAlternatives(t *testing.T) {
	// a mnemonic satisfies the credential requirement without a private key
	var cfg Config
	args := validArgs()
	args[7] = "--admin-mnemonic"
	args[8] = "tiny escape drive pupil flavor endless love walk gadget match filter luxury"
	require.NoError(t, LoadConfig(&cfg, &args))
	assert.Empty(t, cfg.Marketplace.WalletPrivateKey)
	assert.NotEmpty(t, cfg.Marketplace.Mnemonic)
}

func TestLoadConfigMissingCredentials(t *testing.T) {
	var cfg Config
	args := []string{
		"rental-router",
		"--eth-node-address", "http://localhost:8545",
		"--token-address", "0x1111111111111111111111111111111111111111",
		"--factory-address", "0x2222222222222222222222222222222222222222",
		"--mysql-dsn", "root:secret@tcp(localhost:3306)/rental",
		"--web-address", "0.0.0.0:8080",
	}
	err := LoadConfig(&cfg, &args)
	assert.ErrorIs(t, err, ErrConfigValidation)
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.Marketplace.WalletPrivateKey = "0xabcdef"
	cfg.SetDefaults()

	assert.Equal(t, uint64(3_000_000), cfg.Blockchain.GasLimit)
	assert.Equal(t, 30*time.Second, cfg.Blockchain.NodeCheckInterval)
	assert.Equal(t, "https://api.pinata.cloud", cfg.Pinning.Endpoint)
	assert.Equal(t, "abcdef", cfg.Marketplace.WalletPrivateKey, "0x prefix is stripped")
	assert.Equal(t, "0.0.0.0:8080", cfg.Web.Address)
}

func TestGetSanitizedHidesSecrets(t *testing.T) {
	var cfg Config
	cfg.Marketplace.WalletPrivateKey = "secret-key"
	cfg.Marketplace.Mnemonic = "secret words"
	cfg.Pinning.APIToken = "secret-token"
	cfg.DB.DSN = "root:secret@tcp(localhost:3306)/rental"
	cfg.Web.Address = "0.0.0.0:8080"

	public := cfg.GetSanitized().(Config)
	assert.Empty(t, public.Marketplace.WalletPrivateKey)
	assert.Empty(t, public.Marketplace.Mnemonic)
	assert.Empty(t, public.Pinning.APIToken)
	assert.Empty(t, public.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", public.Web.Address)
}
