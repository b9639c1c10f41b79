package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/renderer"
)

type correctCmd struct {
	date    string
	account string
	actual  string
	dryRun  bool
}

func (*correctCmd) Name() string { return "correct" }
func (*correctCmd) Synopsis() string {
	return "align an account balance with the balance observed at the broker"
}
func (*correctCmd) Usage() string {
	return `sbk correct -a <account> -actual <amount> [-d <date>] [-n]

  Compares the computed cash balance of an account with the actual balance
  and records the deposit or withdrawal that reconciles them.
`
}

func (c *correctCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Correction date, today by default")
	f.StringVar(&c.account, "a", "", "Account to correct")
	f.StringVar(&c.actual, "actual", "", "Actual balance at the broker")
	f.BoolVar(&c.dryRun, "n", false, "Only print the correction")
}

func (c *correctCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required")
		return subcommands.ExitUsageError
	}
	actual, ok := stockbook.ParseNumber(c.actual)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid actual balance %q\n", c.actual)
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	txs, err := a.transactions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	system := stockbook.AccountBalances(txs)[c.account]
	tx, needed := stockbook.Correction(c.account, system, stockbook.M(actual, a.cfg.Currency), on)
	if !needed {
		fmt.Printf("Balance of %s is already %s\n", c.account, system)
		return subcommands.ExitSuccess
	}
	if c.dryRun {
		fmt.Printf("Would record: %s\n", renderer.Transaction(tx))
		return subcommands.ExitSuccess
	}
	if _, err := a.ledger.Append(ctx, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording correction: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded: %s\n", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}
