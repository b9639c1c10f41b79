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

type traceCmd struct {
	instrument string
}

func (*traceCmd) Name() string     { return "trace" }
func (*traceCmd) Synopsis() string { return "show how the FIFO engine replays the ledger" }
func (*traceCmd) Usage() string {
	return `sbk trace [-s <code>]

  Replays the ledger and shows, for every transaction, the holding before and
  after, the cost consumed by sells and any unmatched quantity.
`
}

func (c *traceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "s", "", "Only steps of this security")
}

func (c *traceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var steps []stockbook.TraceStep
	acc := a.accountant()
	acc.Trace = func(s stockbook.TraceStep) {
		if c.instrument == "" || s.Tx.Instrument == c.instrument {
			steps = append(steps, s)
		}
	}
	book, err := acc.Replay(txs)
	if err != nil {
		// strict mode stops at the first oversell, the steps so far are still shown
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printMarkdown(renderer.TraceMarkdown(steps))
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TraceMarkdown(steps) + "\n" + renderer.DiagnosticsMarkdown(book.Diagnostics))
	return subcommands.ExitSuccess
}
