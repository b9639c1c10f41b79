package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/stockbook/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date   string
	record bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a portfolio overview" }
func (*summaryCmd) Usage() string {
	return `sbk summary [-d <date>] [-record]

  Displays total assets, cash ratio, unrealized and year to date realized
  gains, and the balance of every account. With -record, the total assets
  are saved in the asset history.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the summary, today by default. See the user manual for supported date formats.")
	f.BoolVar(&c.record, "record", false, "Record the total assets in the asset history")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		fmt.Fprintf(os.Stderr, "Error computing reports: %v\n", err)
		return subcommands.ExitFailure
	}
	overview := reports.Overview(on)

	if c.record {
		history, err := a.history()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening asset history: %v\n", err)
			return subcommands.ExitFailure
		}
		defer history.Close()
		if err := history.Record(ctx, overview.Snapshot()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	md := renderer.OverviewMarkdown(overview, reports.Balances)
	md += renderer.DiagnosticsMarkdown(reports.Inventory.Diagnostics)
	printMarkdown(md)
	return subcommands.ExitSuccess
}
