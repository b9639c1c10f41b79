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

type perfCmd struct {
	year   int
	months int
	rank   int
}

func (*perfCmd) Name() string     { return "perf" }
func (*perfCmd) Synopsis() string { return "display trading performance" }
func (*perfCmd) Usage() string {
	return `sbk perf [-y <year>] [-months <n>] [-rank <n>]

  Summarizes realized gains: win rate, average win and loss, monthly and
  yearly gains, and the best and worst contributing securities.
`
}

func (c *perfCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", 0, "Only events of this year")
	f.IntVar(&c.months, "months", 12, "Number of months shown")
	f.IntVar(&c.rank, "rank", 5, "Number of best and worst securities shown")
}

func (c *perfCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	title := "Performance"
	var keep func(stockbook.RealizedEvent) bool
	if c.year > 0 {
		title = fmt.Sprintf("Performance %d", c.year)
		keep = stockbook.InYear(c.year)
	}
	p := stockbook.NewPerformance(report.Events, keep)
	printMarkdown(renderer.PerformanceMarkdown(p, title, c.months, c.rank))
	return subcommands.ExitSuccess
}
