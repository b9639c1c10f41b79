package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
)

// HistoryMarkdown renders the recorded asset snapshots with the change from
// one snapshot to the next.
func HistoryMarkdown(history []stockbook.AssetSnapshot) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Asset History\n\n")
	if len(history) == 0 {
		fmt.Fprint(&b, "No snapshot recorded, use `summary -record`.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Total Assets | Change | Cash | Stock |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for i, s := range history {
		change := "-"
		if i > 0 {
			prev := history[i-1].TotalAssets
			change = fmt.Sprintf("%s (%s)", s.TotalAssets.Sub(prev).SignedString(), s.TotalAssets.Sub(prev).Ratio(prev).SignedString())
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", s.Date, s.TotalAssets, change, s.Cash, s.Stock)
	}
	return b.String()
}
