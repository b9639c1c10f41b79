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

type importCmd struct {
	account string
	dryRun  bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV file" }
func (*importCmd) Usage() string {
	return `sbk import [-a <account>] [-n] <file.csv>

  Imports transactions from a CSV file with a header row. English column
  names and the column names of the spreadsheet export are both accepted.
  Amounts missing from the file are kept as zero, invalid cells are
  reported and defaulted. The import is all or nothing.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account of rows without one")
	f.BoolVar(&c.dryRun, "n", false, "Only print what would be imported")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one CSV file")
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	diag := stockbook.NewDiagnostics(a.log)
	txs, err := stockbook.ImportCSV(file, diag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	for i := range txs {
		if txs[i].Account == "" {
			txs[i].Account = c.account
		}
	}

	if c.dryRun {
		printMarkdown(renderer.TransactionsMarkdown(txs) + "\n" + renderer.DiagnosticsMarkdown(diag))
		return subcommands.ExitSuccess
	}

	recorded, err := a.ledger.Append(ctx, txs...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	lg := logger.FromContext(ctx)
	lg.Info().Int("transactions", len(recorded)).Int("issues", len(diag.Issues)).Msg("csv imported")
	fmt.Printf("Imported %d transactions, %d issues\n", len(recorded), len(diag.Issues))
	for _, i := range diag.Issues {
		fmt.Fprintf(os.Stderr, "  %s\n", i)
	}
	return subcommands.ExitSuccess
}
