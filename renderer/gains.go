package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/stockbook"
)

// RealizedMarkdown renders realized events, most recent last.
func RealizedMarkdown(r *stockbook.RealizedReport, events []stockbook.RealizedEvent, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(events) == 0 {
		fmt.Fprint(&b, "No realized gain.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Security | Type | Quantity | Proceeds | Cost Basis | Gain | Return |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|")
	var total stockbook.Money
	for _, e := range events {
		cost, ret := e.CostBasis.String(), e.Return.SignedString()
		if e.Type == stockbook.EventDividend {
			cost, ret = "-", "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			e.Date,
			security(e.Instrument, e.Name),
			e.Type,
			e.Quantity,
			e.Proceeds,
			cost,
			e.Gain.SignedString(),
			ret,
		)
		total = total.Add(e.Gain)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | **%s** | |\n\n", total.SignedString())

	b.WriteString(DiagnosticsMarkdown(r.Diagnostics))
	return b.String()
}

// PerformanceMarkdown renders a performance summary, the last months and the
// contributions ranking.
func PerformanceMarkdown(p *stockbook.Performance, title string, months, rank int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Realized Gain | %s |\n", p.Total.SignedString())
	fmt.Fprintf(&b, "| of which Dividends | %s |\n", p.Dividends.SignedString())
	fmt.Fprintf(&b, "| Trades | %d |\n", p.Trades)
	fmt.Fprintf(&b, "| Win Rate | %s (%d / %d) |\n", p.WinRate, p.Wins, p.Trades)
	fmt.Fprintf(&b, "| Average Win | %s |\n", p.AverageWin.SignedString())
	fmt.Fprintf(&b, "| Average Loss | %s |\n", p.AverageLoss.SignedString())
	fmt.Fprintln(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Yearly\n\n")
		bucketTable(w, "Year", p.Yearly)
		return len(p.Yearly) > 1
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		last := p.LastMonths(months)
		fmt.Fprint(w, "## Monthly\n\n")
		bucketTable(w, "Month", last)
		return len(last) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		ranking := p.Ranking(rank)
		fmt.Fprint(w, "## Contributions\n\n")
		fmt.Fprintln(w, "| Security | Gain |")
		fmt.Fprintln(w, "|:---|---:|")
		for _, c := range ranking {
			fmt.Fprintf(w, "| %s | %s |\n", security(c.Key, c.Name), c.Gain.SignedString())
		}
		fmt.Fprintln(w)
		return len(ranking) > 0
	})
	return b.String()
}

func bucketTable(w io.Writer, key string, buckets []stockbook.Bucket) {
	fmt.Fprintf(w, "| %s | Gain |\n", key)
	fmt.Fprintln(w, "|:---|---:|")
	for _, bucket := range buckets {
		fmt.Fprintf(w, "| %s | %s |\n", bucket.Key, bucket.Gain.SignedString())
	}
	fmt.Fprintln(w)
}
