package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
)

type accountLine struct {
	Name    string
	Balance stockbook.Money
}

// overview is the view of the overview templates.
type overview struct {
	*stockbook.Overview
	Warning  string
	Accounts []accountLine
}

// OverviewMarkdown renders the overview with the balance of each account.
func OverviewMarkdown(o *stockbook.Overview, balances stockbook.Balances) string {
	v := overview{Overview: o}
	switch o.CashLevel {
	case stockbook.CashLow:
		v.Warning = fmt.Sprintf("Cash is low: %s of total assets.", o.CashRatio)
	case stockbook.CashHigh:
		v.Warning = fmt.Sprintf("Cash is high: %s of total assets.", o.CashRatio)
	}
	for _, name := range balances.Accounts() {
		v.Accounts = append(v.Accounts, accountLine{Name: cell(name), Balance: balances[name]})
	}

	partials := map[string]string{
		"overview_title":    "overview_title.md",
		"overview_assets":   "overview_assets.md",
		"overview_accounts": "overview_accounts.md",
	}
	return renderTemplate("overview", "overview.md", partials, v)
}

// BalancesMarkdown renders the cash balance of every account.
func BalancesMarkdown(balances stockbook.Balances) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Account Balances\n\n")
	if len(balances) == 0 {
		fmt.Fprint(&b, "No account.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Account | Balance |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, name := range balances.Accounts() {
		fmt.Fprintf(&b, "| %s | %s |\n", cell(name), balances[name])
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", balances.Total())
	return b.String()
}
