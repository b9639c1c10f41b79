package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
)

// TraceMarkdown renders the replay of the FIFO engine, one line per
// transaction.
func TraceMarkdown(steps []stockbook.TraceStep) string {
	var b strings.Builder
	fmt.Fprint(&b, "# FIFO Trace\n\n")
	if len(steps) == 0 {
		fmt.Fprint(&b, "Nothing to replay.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Action | Security | Quantity | Before | After | Cost Consumed | Shortfall |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|")
	for _, s := range steps {
		cost, shortfall := "-", "-"
		if s.Tx.Action == stockbook.Sell {
			cost = s.Cost.String()
		}
		if s.Shortfall.IsPositive() {
			shortfall = "**" + s.Shortfall.String() + "**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			s.Tx.Date,
			s.Tx.Action,
			security(s.Tx.Instrument, s.Tx.Name),
			s.Tx.Quantity,
			s.Before,
			s.After,
			cost,
			shortfall,
		)
	}
	return b.String()
}

// DiagnosticsMarkdown renders the data quality issues, or nothing when there
// are none.
func DiagnosticsMarkdown(d *stockbook.Diagnostics) string {
	if d == nil || len(d.Issues) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## Issues (%d)\n\n", len(d.Issues))
	for _, i := range d.Issues {
		fmt.Fprintf(&b, "- %s\n", i)
	}
	fmt.Fprintln(&b)
	return b.String()
}
