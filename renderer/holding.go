package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/stockbook"
)

// InventoryMarkdown renders the current holdings, largest weight first.
func InventoryMarkdown(r *stockbook.InventoryReport, on stockbook.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings on %s\n\n", on)

	if len(r.Rows) == 0 {
		fmt.Fprint(&b, "No open position.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Security | Quantity | Avg Cost | Total Cost | Price | Market Value | Weight | Exit Fees | Unrealized | Return |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, row := range r.Rows {
		if !row.Priced {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | - | - | - | - | - | - |\n",
				security(row.Instrument, row.Name), row.Quantity, row.AverageCost, row.TotalCost)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			security(row.Instrument, row.Name),
			row.Quantity,
			row.AverageCost,
			row.TotalCost,
			row.Price,
			row.MarketValue,
			row.Weight,
			row.ExitFees,
			row.Unrealized.SignedString(),
			row.Return.SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | | **%s** | | | **%s** | |\n\n",
		r.TotalCost, r.MarketValue, r.Unrealized.SignedString())

	ConditionalBlock(&b, func(w io.Writer) bool {
		var missing []string
		for _, row := range r.Rows {
			if !row.Priced {
				missing = append(missing, row.Instrument)
			}
		}
		fmt.Fprintf(w, "Unpriced: %s\n\n", strings.Join(missing, ", "))
		return len(missing) > 0
	})

	b.WriteString(DiagnosticsMarkdown(r.Diagnostics))
	return b.String()
}
