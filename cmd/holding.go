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

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	date string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display current holdings and unrealized gains" }
func (*holdingCmd) Usage() string {
	return `sbk holding [-d <date>]

  Displays the open positions with their FIFO cost, valued at the prices of
  the configured quote file. Transactions after the date are ignored.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the holdings report, today by default.")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	reports, err := a.reports(ctx, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating holding report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.InventoryMarkdown(reports.Inventory, on))
	return subcommands.ExitSuccess
}

// until returns the transactions dated on or before on.
func until(txs []stockbook.Transaction, on stockbook.Date) []stockbook.Transaction {
	var res []stockbook.Transaction
	for _, t := range txs {
		if !t.Date.After(on) {
			res = append(res, t)
		}
	}
	return res
}
