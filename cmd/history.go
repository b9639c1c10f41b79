package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/stockbook/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the recorded total assets over time" }
func (*historyCmd) Usage() string {
	return `sbk history

  Displays the asset snapshots recorded by 'sbk summary -record'.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	history, err := a.history()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening asset history: %v\n", err)
		return subcommands.ExitFailure
	}
	defer history.Close()

	snapshots, err := history.History(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(snapshots))
	return subcommands.ExitSuccess
}
