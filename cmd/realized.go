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

type realizedCmd struct {
	year       int
	period     string
	date       string
	instrument string
}

func (*realizedCmd) Name() string     { return "realized" }
func (*realizedCmd) Synopsis() string { return "list realized gains of sells and dividends" }
func (*realizedCmd) Usage() string {
	return `sbk realized [-y <year> | -p <period> [-d <date>]] [-s <code>]

  Lists the gain realized by every sell, against its FIFO cost, and every
  cash dividend.

Usage Examples:
# gains of the current quarter
$ sbk realized -p quarter
`
}

func (c *realizedCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", 0, "Only events of this year")
	f.StringVar(&c.period, "p", "", "Only events of this period (day, week, month, quarter, year) containing the date")
	f.StringVar(&c.date, "d", "", "Date of the period, today by default")
	f.StringVar(&c.instrument, "s", "", "Only events of this security")
}

func (c *realizedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var period stockbook.Range
	if c.period != "" {
		p, err := stockbook.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
		on, err := parseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		period = p.Range(on)
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
	report, err := a.accountant().Realized(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating realized report: %v\n", err)
		return subcommands.ExitFailure
	}

	title := "Realized Gains"
	switch {
	case c.year > 0:
		title = fmt.Sprintf("Realized Gains %d", c.year)
	case c.period != "":
		title = fmt.Sprintf("Realized Gains %s", period)
	}
	inPeriod := stockbook.InRange(period)
	events := report.Filter(func(e stockbook.RealizedEvent) bool {
		if c.year > 0 && !stockbook.InYear(c.year)(e) {
			return false
		}
		if !inPeriod(e) {
			return false
		}
		return c.instrument == "" || e.Instrument == c.instrument
	})

	printMarkdown(renderer.RealizedMarkdown(report, events, title))
	return subcommands.ExitSuccess
}
