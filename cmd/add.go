package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/logger"
	"github.com/etnz/stockbook/renderer"
)

type addCmd struct {
	date       string
	account    string
	action     string
	instrument string
	name       string
	quantity   string
	price      string
	notes      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction with computed fees" }
func (*addCmd) Usage() string {
	return `sbk add -action <action> [-d <date>] [-a <account>] [-s <code>] [-n <name>] -q <quantity> -p <price> [-m <notes>]

  Records a transaction in the ledger. Commission, tax and net cash are
  computed from the fee schedule and the account discount.

  Actions: buy, sell, cash-dividend, stock-dividend, capital-injection,
  deposit, withdraw. Cash actions only need -p, the amount.

Usage Examples:
$ sbk add -action buy -s 2330 -n TSMC -q 1000 -p 580.5
$ sbk add -action deposit -a main -p 100000
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date, today by default. See the user manual for supported date formats.")
	f.StringVar(&c.account, "a", "", "Account, the first configured account by default")
	f.StringVar(&c.action, "action", "", "Transaction action")
	f.StringVar(&c.instrument, "s", "", "Security code")
	f.StringVar(&c.name, "n", "", "Security name, the last known name by default")
	f.StringVar(&c.quantity, "q", "1", "Quantity of shares")
	f.StringVar(&c.price, "p", "", "Unit price, or amount of a cash action")
	f.StringVar(&c.notes, "m", "", "Notes")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	action, err := stockbook.ParseAction(c.action)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, ok := stockbook.ParseNumber(c.quantity)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid quantity %q\n", c.quantity)
		return subcommands.ExitUsageError
	}
	price, ok := stockbook.ParseNumber(c.price)
	if !ok || c.price == "" {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q\n", c.price)
		return subcommands.ExitUsageError
	}

	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	account := c.account
	if account == "" {
		account = "main"
		if names := a.cfg.AccountNames(); len(names) > 0 {
			account = names[0]
		}
	}
	name := c.name
	if name == "" && c.instrument != "" {
		ledger, err := a.ledger.Load(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		name = ledger.Name(c.instrument)
	}

	tx := stockbook.NewTransaction(a.cfg.FeeSchedule(), on, account, action, c.instrument, name,
		stockbook.Q(quantity), stockbook.M(price, a.cfg.Currency), a.cfg.Discount(account), c.notes)
	tx.ID = ""

	recorded, err := a.ledger.Append(ctx, tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	lg := logger.FromContext(ctx)
	lg.Info().Str("id", recorded[0].ID).Msg("transaction added")
	fmt.Printf("%s: %s (fees %s)\n", recorded[0].Date, renderer.Transaction(recorded[0]), recorded[0].Fees())
	return subcommands.ExitSuccess
}
