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

type txCmd struct {
	period     string
	start      string
	end        string
	account    string
	instrument string
	head       int
	tail       int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions of the ledger" }
func (*txCmd) Usage() string {
	return `sbk tx [-s <code>] [-a <account>] [-p <period> | -from <date>] [-to <date>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger in replay order, with options for
  filtering and limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "s", "", "Only transactions of this security")
	f.StringVar(&c.account, "a", "", "Only transactions of this account")
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year) ending on -to")
	f.StringVar(&c.start, "from", "", "Start date, inclusive. Overrides -p.")
	f.StringVar(&c.end, "to", "", "End date, inclusive")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	var from, to stockbook.Date
	var err error
	if c.start != "" {
		if from, err = stockbook.ParseDate(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.end != "" {
		if to, err = stockbook.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	if c.period != "" && c.start == "" {
		p, err := stockbook.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
		end := to
		if end.IsZero() {
			end = stockbook.Today()
		}
		from = p.Range(end).From
	}
	window := stockbook.NewRange(from, to)

	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	ledger, err := a.ledger.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	txs := stockbook.Order(ledger.Filter(func(t stockbook.Transaction) bool {
		switch {
		case c.instrument != "" && t.Instrument != c.instrument:
			return false
		case c.account != "" && t.Account != c.account:
			return false
		case !window.Contains(t.Date):
			return false
		}
		return true
	}))

	if c.head > 0 && c.head < len(txs) {
		txs = txs[:c.head]
	}
	if c.tail > 0 && c.tail < len(txs) {
		txs = txs[len(txs)-c.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}
