package config

import (
	"strings"
	"time"
)

// BuildVersion is set at build time via ldflags
var BuildVersion = "development"

// Validation tags described here: https://pkg.go.dev/github.com/go-playground/validator/v10
//
// Required credentials have no fallback defaults on purpose: startup fails
// with a validation error when any of them is absent.
type Config struct {
	Blockchain struct {
		EthNodeAddress    string        `env:"ETH_NODE_ADDRESS"    flag:"eth-node-address"    validate:"required,url"`
		TokenAddress      string        `env:"CPT_TOKEN_ADDRESS"   flag:"token-address"       validate:"required,eth_addr"`
		FactoryAddress    string        `env:"AGREEMENT_FACTORY_ADDRESS" flag:"factory-address" validate:"required,eth_addr"`
		EthLegacyTx       bool          `env:"ETH_NODE_LEGACY_TX"  flag:"eth-node-legacy-tx"  desc:"use it to disable EIP-1559 transactions"`
		GasLimit          uint64        `env:"ETH_TX_GAS_LIMIT"    flag:"eth-tx-gas-limit"    validate:"omitempty,number" desc:"gas limit ceiling applied to state-changing calls"`
		NodeCheckInterval time.Duration `env:"ETH_NODE_CHECK_INTERVAL" flag:"eth-node-check-interval" desc:"minimum delay between node liveness probes"`
	}
	Environment string `env:"ENVIRONMENT" flag:"environment"`
	Marketplace struct {
		Mnemonic         string `env:"ADMIN_MNEMONIC"    flag:"admin-mnemonic"    validate:"required_without=WalletPrivateKey"`
		WalletPrivateKey string `env:"ADMIN_PRIVATE_KEY" flag:"admin-private-key" validate:"required_without=Mnemonic"`
	}
	DB struct {
		DSN string `env:"MYSQL_DSN" flag:"mysql-dsn" validate:"required" desc:"mysql connection string user:pass@tcp(host:port)/dbname"`
	}
	Pinning struct {
		Endpoint   string `env:"PINNING_ENDPOINT"   flag:"pinning-endpoint"    validate:"omitempty,url"`
		GatewayURL string `env:"PINNING_GATEWAY_URL" flag:"pinning-gateway-url" validate:"omitempty,url"`
		APIToken   string `env:"PINNING_API_TOKEN"  flag:"pinning-api-token"`
	}
	Documents struct {
		Dir string `env:"DOCUMENTS_DIR" flag:"documents-dir" validate:"omitempty,dirpath" desc:"folder for generated agreement PDFs"`
	}
	Log struct {
		Color    bool   `env:"LOG_COLOR"     flag:"log-color"`
		IsProd   bool   `env:"LOG_IS_PROD"   flag:"log-is-prod"   validate:"" desc:"affects the format of the log output"`
		JSON     bool   `env:"LOG_JSON"      flag:"log-json"`
		LevelApp string `env:"LOG_LEVEL_APP" flag:"log-level-app" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	}
	Web struct {
		Address   string `env:"WEB_ADDRESS"    flag:"web-address"    validate:"required,hostname_port" desc:"http server address host:port"`
		PublicUrl string `env:"WEB_PUBLIC_URL" flag:"web-public-url" validate:"omitempty,url"          desc:"public url of the backend, falls back to web-address if empty"`
	}
}

func (cfg *Config) SetDefaults() {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Blockchain
	if cfg.Blockchain.GasLimit == 0 {
		cfg.Blockchain.GasLimit = 3_000_000
	}
	if cfg.Blockchain.NodeCheckInterval == 0 {
		cfg.Blockchain.NodeCheckInterval = 30 * time.Second
	}

	// Marketplace

	// normalizes private key
	cfg.Marketplace.WalletPrivateKey = strings.TrimPrefix(cfg.Marketplace.WalletPrivateKey, "0x")

	// Pinning
	if cfg.Pinning.Endpoint == "" {
		cfg.Pinning.Endpoint = "https://api.pinata.cloud"
	}
	if cfg.Pinning.GatewayURL == "" {
		cfg.Pinning.GatewayURL = "https://gateway.pinata.cloud"
	}

	// Documents
	if cfg.Documents.Dir == "" {
		cfg.Documents.Dir = "documents"
	}

	// Log
	if cfg.Log.LevelApp == "" {
		cfg.Log.LevelApp = "debug"
	}

	// Web
	if cfg.Web.Address == "" {
		cfg.Web.Address = "0.0.0.0:8080"
	}
	if cfg.Web.PublicUrl == "" {
		cfg.Web.PublicUrl = "http://localhost:8080"
	}
}

// GetSanitized returns a copy of the config with sensitive data removed
// explicitly adding each field here to avoid accidentally leaking sensitive data
func (cfg *Config) GetSanitized() interface{} {
	publicCfg := Config{}

	publicCfg.Environment = cfg.Environment

	publicCfg.Blockchain.EthNodeAddress = cfg.Blockchain.EthNodeAddress
	publicCfg.Blockchain.TokenAddress = cfg.Blockchain.TokenAddress
	publicCfg.Blockchain.FactoryAddress = cfg.Blockchain.FactoryAddress
	publicCfg.Blockchain.EthLegacyTx = cfg.Blockchain.EthLegacyTx
	publicCfg.Blockchain.GasLimit = cfg.Blockchain.GasLimit
	publicCfg.Blockchain.NodeCheckInterval = cfg.Blockchain.NodeCheckInterval

	publicCfg.Pinning.Endpoint = cfg.Pinning.Endpoint
	publicCfg.Pinning.GatewayURL = cfg.Pinning.GatewayURL

	publicCfg.Documents.Dir = cfg.Documents.Dir

	publicCfg.Log.Color = cfg.Log.Color
	publicCfg.Log.IsProd = cfg.Log.IsProd
	publicCfg.Log.JSON = cfg.Log.JSON
	publicCfg.Log.LevelApp = cfg.Log.LevelApp

	publicCfg.Web.Address = cfg.Web.Address
	publicCfg.Web.PublicUrl = cfg.Web.PublicUrl

	return publicCfg
}
