package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/stockbook"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sbk.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "TWD", cfg.Currency)
	assert.Equal(t, "jsonl", cfg.Ledger.Driver)
	assert.Equal(t, stockbook.Truncate, cfg.Policy())
	assert.True(t, cfg.FeeSchedule().CommissionRate.Equal(decimal.RequireFromString("0.001425")))
	assert.True(t, cfg.Discount("unknown").Equal(decimal.RequireFromString("0.6")))
}

func TestLoadConfig_File(t *testing.T) {
	path := writeFile(t, `
currency = "TWD"

[ledger]
driver = "sqlite"
path = "book.db"

[fees]
min_commission = "1"

[[accounts]]
name = "fubon"
discount = "0.28"

[[accounts]]
name = "yuanta"

[engine]
strict_oversell = true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Ledger.Driver)
	assert.Equal(t, "book.db", cfg.Ledger.Path)
	assert.Equal(t, stockbook.Strict, cfg.Policy())
	assert.Equal(t, []string{"fubon", "yuanta"}, cfg.AccountNames())
	assert.True(t, cfg.Discount("fubon").Equal(decimal.RequireFromString("0.28")))
	assert.True(t, cfg.Discount("yuanta").Equal(decimal.RequireFromString("0.6")))

	fees := cfg.FeeSchedule()
	assert.True(t, fees.MinCommission.Equal(decimal.NewFromInt(1)))
	// untouched values keep their default
	assert.True(t, fees.EquityTaxRate.Equal(decimal.RequireFromString("0.003")))
	assert.Equal(t, "00", fees.ETFPrefix)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SBK_LEDGER", "other.jsonl")
	t.Setenv("SBK_LOG_LEVEL", "debug")
	t.Setenv("SBK_STRICT_OVERSELL", "true")
	t.Setenv("SBK_CURRENCY", "usd")

	cfg, err := LoadConfig(writeFile(t, "[ledger]\npath = \"file.jsonl\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "other.jsonl", cfg.Ledger.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "USD", cfg.Currency)
	assert.True(t, cfg.Engine.StrictOversell)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "[fees]\ncommission_rate = \"abc\"\n"))
	assert.ErrorContains(t, err, "fees.commission_rate")

	_, err = LoadConfig(writeFile(t, "[ledger]\ndriver = \"csv\"\n"))
	assert.ErrorContains(t, err, "unknown ledger driver")

	_, err = LoadConfig(writeFile(t, "not toml ["))
	assert.Error(t, err)
}
