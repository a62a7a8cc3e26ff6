// Package config loads the engine's node-level configuration: the data
// directory, log level, and the ledger's tunable-but-fixed constants. It
// is not part of the ledger core itself (the core's constants are fixed
// in pkg/validation); this package exists for embedders that want to
// override defaults from the environment or a config file.
package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rluna-dev/utxochain/pkg/validation"
)

// NodeConfig holds the knobs an embedding process may want to override.
// Difficulty, MinTransactionAmount, CoinbaseReward, and
// MaxTransactionsPerBlock default to pkg/validation's compile-time
// constants; overriding them here only affects this process's view and
// does not change the constants consensus-critical code reads directly.
type NodeConfig struct {
	NodeID                  string `mapstructure:"node_id"`
	DataDir                 string `mapstructure:"data_dir"`
	LogLevel                string `mapstructure:"log_level"`
	Difficulty              int    `mapstructure:"difficulty"`
	MinTransactionAmount    int64  `mapstructure:"min_transaction_amount"`
	CoinbaseReward          int64  `mapstructure:"coinbase_reward"`
	MaxTransactionsPerBlock int    `mapstructure:"max_transactions_per_block"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *NodeConfig {
	return &NodeConfig{
		NodeID:                  uuid.NewString(),
		DataDir:                 "./data",
		LogLevel:                "info",
		Difficulty:              validation.Difficulty,
		MinTransactionAmount:    validation.MinTransactionAmount,
		CoinbaseReward:          validation.CoinbaseReward,
		MaxTransactionsPerBlock: validation.MaxTransactionsPerBlock,
	}
}

// Load builds a NodeConfig from, in order of precedence: DefaultConfig(),
// a ".env" file if present (via godotenv), and environment variables /
// an optional "config.yaml" in configDir bound through viper. A missing
// .env or config file is not an error; both are optional overlays.
func Load(configDir string) (*NodeConfig, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("UTXOCHAIN")
	v.AutomaticEnv()
	v.SetDefault("node_id", cfg.NodeID)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("difficulty", cfg.Difficulty)
	v.SetDefault("min_transaction_amount", cfg.MinTransactionAmount)
	v.SetDefault("coinbase_reward", cfg.CoinbaseReward)
	v.SetDefault("max_transactions_per_block", cfg.MaxTransactionsPerBlock)

	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("config: reading config.yaml: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects a configuration with nonsensical limits.
func (c *NodeConfig) Validate() error {
	if c.Difficulty < 0 {
		return fmt.Errorf("config: difficulty must be non-negative")
	}
	if c.MinTransactionAmount <= 0 {
		return fmt.Errorf("config: min_transaction_amount must be positive")
	}
	if c.CoinbaseReward <= 0 {
		return fmt.Errorf("config: coinbase_reward must be positive")
	}
	if c.MaxTransactionsPerBlock <= 0 {
		return fmt.Errorf("config: max_transactions_per_block must be positive")
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir must not be empty")
	}
	return nil
}

func (c *NodeConfig) String() string {
	return fmt.Sprintf("NodeConfig{NodeID: %s, DataDir: %s, LogLevel: %s, Difficulty: %d}",
		c.NodeID, c.DataDir, c.LogLevel, c.Difficulty)
}
