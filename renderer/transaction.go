package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
)

// Transaction renders a transaction to a sentence.
func Transaction(tx stockbook.Transaction) string {
	switch tx.Action {
	case stockbook.Buy:
		return fmt.Sprintf("Bought %s %s at %s for %s", tx.Quantity, tx.Instrument, tx.Price, tx.NetCash.Abs())
	case stockbook.Sell:
		return fmt.Sprintf("Sold %s %s at %s for %s", tx.Quantity, tx.Instrument, tx.Price, tx.NetCash)
	case stockbook.CashDividend:
		return fmt.Sprintf("Dividend of %s from %s", tx.NetCash, tx.Instrument)
	case stockbook.StockDividend:
		return fmt.Sprintf("Received %s %s as stock dividend", tx.Quantity, tx.Instrument)
	case stockbook.CapitalInjection:
		return fmt.Sprintf("Subscribed %s %s at %s for %s", tx.Quantity, tx.Instrument, tx.Price, tx.NetCash.Abs())
	case stockbook.Deposit:
		return fmt.Sprintf("Deposited %s into %s", tx.Gross, tx.Account)
	case stockbook.Withdraw:
		return fmt.Sprintf("Withdrew %s from %s", tx.Gross, tx.Account)
	default:
		return fmt.Sprintf("Unknown action on %s, net cash %s", tx.Instrument, tx.NetCash.SignedString())
	}
}

// TransactionsMarkdown renders a list of transactions.
func TransactionsMarkdown(txs []stockbook.Transaction) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprint(&b, "No transaction.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Account | Action | Security | Quantity | Price | Fees | Net Cash |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|---:|---:|")
	for _, tx := range txs {
		quantity, price := tx.Quantity.String(), tx.Price.String()
		if tx.Action.IsCashOnly() {
			quantity, price = "-", "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date,
			cell(tx.Account),
			tx.Action,
			security(tx.Instrument, tx.Name),
			quantity,
			price,
			tx.Fees(),
			tx.NetCash.SignedString(),
		)
	}
	return b.String()
}
