package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/lotbook/book"
	"github.com/rustyeddy/lotbook/market"
)

// Config is the complete run configuration.
type Config struct {
	Account book.AccountConfig `json:"account" yaml:"account"`
	Data    DataConfig         `json:"data" yaml:"data"`
	Journal JournalConfig      `json:"journal" yaml:"journal"`
}

// DataConfig says where the replay inputs live.
type DataConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// JournalConfig selects how fills and equity snapshots are persisted.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	FillsFile  string `json:"fills_file,omitempty" yaml:"fills_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, choosing the format by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration is usable before a run starts.
func (c *Config) Validate() error {
	if c.Account.Name == "" {
		return fmt.Errorf("account.name is required")
	}
	if c.Account.InitialBalance <= 0 {
		return fmt.Errorf("account.initial_balance must be positive")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.FillsFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal fills_file and equity_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: book.AccountConfig{
			Name:           "SIM-001",
			InitialBalance: 100000,
		},
		Data: DataConfig{
			Dir: ".",
		},
		Journal: JournalConfig{
			Type:       "csv",
			FillsFile:  "./fills.csv",
			EquityFile: "./equity.csv",
		},
	}
}

// LoadUniverse reads the ordered instrument universe from a YAML or JSON
// array. Order matters: positions, fills and fill models stay
// index-aligned with it for the whole run.
func LoadUniverse(path string) ([]market.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	var universe []market.Spec
	if err := unmarshal(data, &universe); err != nil {
		return nil, fmt.Errorf("parse universe: %w", err)
	}
	if len(universe) == 0 {
		return nil, fmt.Errorf("universe is empty")
	}
	for i, spec := range universe {
		if spec.UniqueID.Venue == "" || spec.UniqueID.Symbol == "" {
			return nil, fmt.Errorf("universe[%d]: venue and symbol are required", i)
		}
		if err := spec.Commission.Validate(); err != nil {
			return nil, fmt.Errorf("universe[%d] %s: %w", i, spec.UniqueID, err)
		}
	}
	return universe, nil
}

// LoadAccounts reads account configurations from a YAML or JSON array.
func LoadAccounts(path string) ([]book.AccountConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var accounts []book.AccountConfig
	if err := unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts configured")
	}
	return accounts, nil
}

// unmarshal tries YAML first and falls back to JSON.
func unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		if jsonErr := json.Unmarshal(data, v); jsonErr != nil {
			return fmt.Errorf("parse (tried YAML and JSON): %w", err)
		}
	}
	return nil
}
