// Package config loads the sbk configuration from TOML files, a .env file and
// SBK_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/etnz/stockbook"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "sbk.toml"

// Config holds all configuration for sbk.
type Config struct {
	Currency string        `toml:"currency"`
	Ledger   LedgerConfig  `toml:"ledger"`
	History  HistoryConfig `toml:"history"`
	Fees     FeesConfig    `toml:"fees"`
	Accounts []Account     `toml:"accounts"`
	Quotes   QuotesConfig  `toml:"quotes"`
	Engine   EngineConfig  `toml:"engine"`
	Logging  LoggingConfig `toml:"logging"`
}

// LedgerConfig locates the transaction ledger.
type LedgerConfig struct {
	Driver string `toml:"driver"` // "jsonl" or "sqlite"
	Path   string `toml:"path"`
}

// HistoryConfig locates the asset history database.
type HistoryConfig struct {
	Path string `toml:"path"`
}

// FeesConfig holds the exchange fee schedule. Rates are strings so that
// they keep their exact decimal value.
type FeesConfig struct {
	CommissionRate  string `toml:"commission_rate"`
	MinCommission   string `toml:"min_commission"`
	EquityTaxRate   string `toml:"equity_tax_rate"`
	ETFTaxRate      string `toml:"etf_tax_rate"`
	ETFPrefix       string `toml:"etf_prefix"`
	DefaultDiscount string `toml:"default_discount"`
}

// Account is a brokerage account and its commission discount.
type Account struct {
	Name     string `toml:"name"`
	Discount string `toml:"discount"`
}

// QuotesConfig locates the market price file.
type QuotesConfig struct {
	File string `toml:"file"`
	Path string `toml:"path"` // JSONPath of the price map in the file
}

// EngineConfig tunes the FIFO engine.
type EngineConfig struct {
	StrictOversell bool `toml:"strict_oversell"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Currency: stockbook.DefaultCurrency,
		Ledger:   LedgerConfig{Driver: "jsonl", Path: "ledger.jsonl"},
		History:  HistoryConfig{Path: "history.db"},
		Fees: FeesConfig{
			CommissionRate:  "0.001425",
			MinCommission:   "20",
			EquityTaxRate:   "0.003",
			ETFTaxRate:      "0.001",
			ETFPrefix:       "00",
			DefaultDiscount: "0.6",
		},
		Quotes:  QuotesConfig{Path: "$"},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// LoadConfig loads the .env file of the working directory if any, then
// merges each config file in order (later files override earlier, missing
// files are skipped), and finally applies environment overrides.
func LoadConfig(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := NewDefaultConfig()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SBK_CURRENCY"); v != "" {
		config.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv("SBK_LEDGER"); v != "" {
		config.Ledger.Path = v
	}
	if v := os.Getenv("SBK_LEDGER_DRIVER"); v != "" {
		config.Ledger.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SBK_HISTORY"); v != "" {
		config.History.Path = v
	}
	if v := os.Getenv("SBK_QUOTES"); v != "" {
		config.Quotes.File = v
	}
	if v := os.Getenv("SBK_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("SBK_STRICT_OVERSELL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Engine.StrictOversell = b
		}
	}
}

// Validate checks that every rate is a valid decimal and the ledger driver
// is known.
func (c *Config) Validate() error {
	var errs []error
	switch c.Ledger.Driver {
	case "jsonl", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unknown ledger driver %q", c.Ledger.Driver))
	}
	rates := map[string]string{
		"fees.commission_rate":  c.Fees.CommissionRate,
		"fees.min_commission":   c.Fees.MinCommission,
		"fees.equity_tax_rate":  c.Fees.EquityTaxRate,
		"fees.etf_tax_rate":     c.Fees.ETFTaxRate,
		"fees.default_discount": c.Fees.DefaultDiscount,
	}
	for _, a := range c.Accounts {
		rates["accounts."+a.Name+".discount"] = a.Discount
	}
	for name, v := range rates {
		if v == "" {
			continue
		}
		if _, err := decimal.NewFromString(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid decimal %q", name, v))
		}
	}
	return errors.Join(errs...)
}

// FeeSchedule returns the configured fee schedule. Blank values keep the
// exchange defaults.
func (c *Config) FeeSchedule() stockbook.FeeSchedule {
	s := stockbook.DefaultFees()
	set := func(dst *decimal.Decimal, v string) {
		if d, err := decimal.NewFromString(v); err == nil {
			*dst = d
		}
	}
	set(&s.CommissionRate, c.Fees.CommissionRate)
	set(&s.MinCommission, c.Fees.MinCommission)
	set(&s.EquityTaxRate, c.Fees.EquityTaxRate)
	set(&s.ETFTaxRate, c.Fees.ETFTaxRate)
	set(&s.DefaultDiscount, c.Fees.DefaultDiscount)
	if c.Fees.ETFPrefix != "" {
		s.ETFPrefix = c.Fees.ETFPrefix
	}
	return s
}

// Discount returns the commission discount of an account, or the default
// discount for accounts without one.
func (c *Config) Discount(account string) decimal.Decimal {
	for _, a := range c.Accounts {
		if a.Name != account {
			continue
		}
		if d, err := decimal.NewFromString(a.Discount); err == nil {
			return d
		}
	}
	return c.FeeSchedule().DefaultDiscount
}

// AccountNames returns the configured account names.
func (c *Config) AccountNames() []string {
	names := make([]string, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		names = append(names, a.Name)
	}
	return names
}

// Policy returns the configured oversell policy.
func (c *Config) Policy() stockbook.OversellPolicy {
	if c.Engine.StrictOversell {
		return stockbook.Strict
	}
	return stockbook.Truncate
}
