// Package cmd implements the sbk command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/config"
	"github.com/etnz/stockbook/logger"
	"github.com/etnz/stockbook/quotes"
	"github.com/etnz/stockbook/renderer"
	"github.com/etnz/stockbook/store"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", envOr(EnvConfigFile, config.DefaultFile), "Path to the configuration file")
	ledgerFile = flag.String("ledger", "", "Path to the ledger, overrides the configuration")
	raw        = flag.Bool("raw", false, "Print plain markdown instead of rendering it for the terminal")
	htmlOutput = flag.Bool("html", false, "Print reports as HTML")

	// reportCache holds the reports computed in this process. Every command
	// uses the same configuration, so the snapshot fingerprint is a
	// sufficient key.
	reportCache = stockbook.NewReportCache(5 * time.Minute)
)

// Commands lists all sbk subcommands by group.
var Commands = map[string][]subcommands.Command{
	"transactions": {&addCmd{}, &correctCmd{}, &txCmd{}, &importCmd{}, &exportCmd{}},
	"reports":      {&holdingCmd{}, &realizedCmd{}, &balanceCmd{}, &perfCmd{}, &summaryCmd{}, &historyCmd{}, &traceCmd{}},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// app holds what a command needs to run against the configured ledger.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	ledger store.Ledger
}

// openApp loads the configuration and opens the ledger. The returned context
// carries the logger.
func openApp(ctx context.Context) (*app, context.Context, error) {
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		return nil, ctx, err
	}
	if *ledgerFile != "" {
		cfg.Ledger.Path = *ledgerFile
	}
	log := logger.New(cfg.Logging.Level)
	ctx = logger.WithContext(ctx, log)

	ledger, err := store.OpenLedger(cfg.Ledger.Driver, cfg.Ledger.Path, log)
	if err != nil {
		return nil, ctx, err
	}
	log.Debug().Str("driver", cfg.Ledger.Driver).Str("path", cfg.Ledger.Path).Msg("ledger opened")
	return &app{cfg: cfg, log: log, ledger: ledger}, ctx, nil
}

func (a *app) Close() {
	if err := a.ledger.Close(); err != nil {
		a.log.Warn().Err(err).Msg("cannot close ledger")
	}
}

// accountant returns an accountant set up from the configuration.
func (a *app) accountant() *stockbook.Accountant {
	acc := stockbook.NewAccountant()
	acc.Fees = a.cfg.FeeSchedule()
	acc.Policy = a.cfg.Policy()
	acc.Log = a.log
	return acc
}

// transactions loads the whole ledger.
func (a *app) transactions(ctx context.Context) ([]stockbook.Transaction, error) {
	ledger, err := a.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Transactions(), nil
}

// prices loads the configured quote file. Without one, holdings are unpriced.
func (a *app) prices() (quotes.Prices, error) {
	if a.cfg.Quotes.File == "" {
		a.log.Debug().Msg("no quote file configured")
		return nil, nil
	}
	return quotes.Load(a.cfg.Quotes.File, a.cfg.Quotes.Path, a.cfg.Currency)
}

// history opens the asset history database.
func (a *app) history() (*store.SQLite, error) {
	return store.OpenSQLite(a.cfg.History.Path, a.log)
}

// reports returns all reports of the ledger as of on, at the current prices.
// Reports of an unchanged snapshot are served from reportCache.
func (a *app) reports(ctx context.Context, on stockbook.Date) (*stockbook.Reports, error) {
	txs, err := a.transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot load ledger: %w", err)
	}
	prices, err := a.prices()
	if err != nil {
		return nil, fmt.Errorf("cannot load quotes: %w", err)
	}
	return reportCache.Compute(ctx, a.accountant(), until(txs, on), prices)
}

// printMarkdown prints a report according to the output flags.
func printMarkdown(md string) {
	switch {
	case *htmlOutput:
		out, err := renderer.HTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering html: %v\n", err)
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	case *raw:
		fmt.Print(md)
	default:
		out, err := renderer.Terminal(md, 0)
		if err != nil {
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseDate parses a date flag, an empty value is today.
func parseDate(s string) (stockbook.Date, error) {
	if s == "" {
		return stockbook.Today(), nil
	}
	return stockbook.ParseDate(s)
}
