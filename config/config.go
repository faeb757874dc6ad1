package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one analysis target: which address, which event, and
// which reference price series to join against.
type Config struct {
	Address     string `json:"address" yaml:"address"`
	Slug        string `json:"slug" yaml:"slug"`
	PriceSymbol string `json:"price_symbol" yaml:"price_symbol"`

	// Outcome labels of the binary market. OutcomeA pays when the reference
	// price falls, OutcomeB when it rises.
	OutcomeA string `json:"outcome_a" yaml:"outcome_a"`
	OutcomeB string `json:"outcome_b" yaml:"outcome_b"`

	OutputDir string `json:"output_dir" yaml:"output_dir"`

	API     APIConfig     `json:"api" yaml:"api"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// APIConfig overrides the public API endpoints, mainly for tests and
// mirrors. Empty values mean the defaults.
type APIConfig struct {
	GammaURL   string `json:"gamma_url,omitempty" yaml:"gamma_url,omitempty"`
	DataURL    string `json:"data_url,omitempty" yaml:"data_url,omitempty"`
	BinanceURL string `json:"binance_url,omitempty" yaml:"binance_url,omitempty"`
}

// JournalConfig selects where the built ledger and run metrics land.
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON), applies
// environment overrides, and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv lets the environment (or a godotenv-loaded .env) override the
// API endpoints without touching the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("POLYLEDGER_GAMMA_URL"); v != "" {
		c.API.GammaURL = v
	}
	if v := os.Getenv("POLYLEDGER_DATA_URL"); v != "" {
		c.API.DataURL = v
	}
	if v := os.Getenv("POLYLEDGER_BINANCE_URL"); v != "" {
		c.API.BinanceURL = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	if c.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if c.PriceSymbol == "" {
		return fmt.Errorf("price_symbol is required")
	}
	if c.OutcomeA == "" || c.OutcomeB == "" {
		return fmt.Errorf("outcome_a and outcome_b are required")
	}
	if c.OutcomeA == c.OutcomeB {
		return fmt.Errorf("outcome_a and outcome_b must differ")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		PriceSymbol: "BTCUSDT",
		OutcomeA:    "Down",
		OutcomeB:    "Up",
		OutputDir:   "./output",
		Journal: JournalConfig{
			Type: "csv",
		},
	}
}
