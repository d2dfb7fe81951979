package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/lotbook/market"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", `
account:
  name: TEST-1
  initial_balance: 25000
data:
  dir: ./data
journal:
  type: sqlite
  db_path: ./runs.db
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TEST-1", cfg.Account.Name)
	assert.Equal(t, 25000.0, cfg.Account.InitialBalance)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "./runs.db", cfg.Journal.DBPath)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.json", `{
		"account": {"name": "TEST-2", "initial_balance": 1000},
		"data": {"dir": "."},
		"journal": {"type": "none"}
	}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TEST-2", cfg.Account.Name)
	assert.Equal(t, "none", cfg.Journal.Type)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_name", func(c *Config) { c.Account.Name = "" }},
		{"zero_balance", func(c *Config) { c.Account.InitialBalance = 0 }},
		{"negative_balance", func(c *Config) { c.Account.InitialBalance = -5 }},
		{"missing_data_dir", func(c *Config) { c.Data.Dir = "" }},
		{"bad_journal_type", func(c *Config) { c.Journal.Type = "parquet" }},
		{"csv_without_files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"sqlite_without_path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Default().SaveToFile(path))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUniverseJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "universe.json", `[
		{
			"unique_id": {"venue": "cme", "symbol": "ES"},
			"multiplier": 50,
			"commission": {"kind": "fixed", "amount": 1.5}
		},
		{
			"unique_id": {"venue": "binance", "symbol": "BTCUSDT"},
			"multiplier": 1,
			"commission": {
				"kind": "maker_taker",
				"maker": {"multiplier": 0.0002},
				"taker": {"multiplier": 0.0004}
			}
		}
	]`)

	universe, err := LoadUniverse(path)
	require.NoError(t, err)
	require.Len(t, universe, 2)

	assert.Equal(t, market.InstrumentID{Venue: "cme", Symbol: "ES"}, universe[0].ID())
	assert.Equal(t, 50.0, universe[0].Multiplier)
	assert.Equal(t, market.CommissionFixed, universe[0].Commission.Kind)

	assert.Equal(t, market.CommissionMakerTaker, universe[1].Commission.Kind)
	assert.InDelta(t, 0.0004, universe[1].Commission.Taker.Multiplier, 1e-12)
}

func TestLoadUniverseYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "universe.yaml", `
- unique_id:
    venue: cme
    symbol: NQ
  multiplier: 20
  commission:
    kind: per_unit
    amount: 0.85
`)

	universe, err := LoadUniverse(path)
	require.NoError(t, err)
	require.Len(t, universe, 1)
	assert.Equal(t, "cme:NQ", universe[0].ID().String())
	assert.Equal(t, market.CommissionPerUnit, universe[0].Commission.Kind)
}

func TestLoadUniverseRejectsBadSpecs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", `[]`},
		{"missing_id", `[{"multiplier": 1, "commission": {"kind": "fixed"}}]`},
		{"bad_commission", `[{
			"unique_id": {"venue": "cme", "symbol": "ES"},
			"multiplier": 1,
			"commission": {"kind": "flat"}
		}]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadUniverse(writeFile(t, "universe.json", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadAccounts(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "accounts.json", `[
		{"name": "A1", "initial_balance": 1000},
		{"name": "A2", "initial_balance": 2000}
	]`)

	accounts, err := LoadAccounts(path)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "A2", accounts[1].Name)
	assert.Equal(t, 2000.0, accounts[1].InitialBalance)

	_, err = LoadAccounts(writeFile(t, "empty.json", `[]`))
	assert.Error(t, err)
}
