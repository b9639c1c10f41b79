package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/etnz/stockbook"
)

var discount = decimal.RequireFromString("0.6")

func tx(on string, action stockbook.Action, instrument string, quantity, price float64) stockbook.Transaction {
	return stockbook.NewTransaction(stockbook.DefaultFees(), stockbook.MustParseDate(on), "main", action, instrument, "",
		stockbook.Q(quantity), stockbook.M(price, ""), discount, "")
}

func ledger() []stockbook.Transaction {
	return []stockbook.Transaction{
		tx("2024-01-02", stockbook.Deposit, "", 1, 2000000),
		tx("2024-01-10", stockbook.Buy, "2330", 1000, 500),
		tx("2024-01-10", stockbook.Buy, "0050", 1000, 130),
		tx("2024-03-10", stockbook.Sell, "2330", 400, 600),
		tx("2024-07-10", stockbook.CashDividend, "0050", 1, 3000),
		tx("2024-08-01", stockbook.Sell, "0050", 1500, 140),
	}
}

// contains checks that every part is found in md.
func contains(t *testing.T, md string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(md, p) {
			t.Errorf("markdown does not contain %q:\n%s", p, md)
		}
	}
}

func TestInventoryMarkdown(t *testing.T) {
	a := stockbook.NewAccountant()
	report, err := a.Inventory(ledger(), map[string]stockbook.Money{"2330": stockbook.M(610, "")})
	if err != nil {
		t.Fatalf("Inventory() unexpected error: %v", err)
	}
	md := InventoryMarkdown(report, stockbook.MustParseDate("2024-08-02"))

	row, _ := report.Row("2330")
	contains(t, md,
		"# Holdings on 2024-08-02",
		"| 2330 | 600 |",
		row.MarketValue.String(),
		"**Total**",
		"## Issues (1)",
	)
	if strings.Contains(md, "Unpriced") {
		t.Errorf("InventoryMarkdown() lists unpriced securities while all holdings are priced:\n%s", md)
	}
}

func TestInventoryMarkdown_Unpriced(t *testing.T) {
	a := stockbook.NewAccountant()
	report, err := a.Inventory(ledger()[:2], nil)
	if err != nil {
		t.Fatalf("Inventory() unexpected error: %v", err)
	}
	md := InventoryMarkdown(report, stockbook.MustParseDate("2024-02-01"))
	contains(t, md, "| 2330 | 1000 |", "Unpriced: 2330")
	if strings.Contains(md, "## Issues") {
		t.Errorf("InventoryMarkdown() renders issues for a clean ledger:\n%s", md)
	}
}

func TestRealizedMarkdown(t *testing.T) {
	a := stockbook.NewAccountant()
	report, err := a.Realized(ledger())
	if err != nil {
		t.Fatalf("Realized() unexpected error: %v", err)
	}
	md := RealizedMarkdown(report, report.Events, "Realized Gains")
	contains(t, md,
		"# Realized Gains",
		"| 2024-03-10 | 2330 | sell | 400 |",
		"| 2024-07-10 | 0050 | dividend |",
		"**"+report.Total.SignedString()+"**",
	)

	empty := RealizedMarkdown(report, nil, "Realized Gains 2023")
	contains(t, empty, "No realized gain.")
}

func TestPerformanceMarkdown(t *testing.T) {
	a := stockbook.NewAccountant()
	report, err := a.Realized(ledger())
	if err != nil {
		t.Fatalf("Realized() unexpected error: %v", err)
	}
	p := stockbook.NewPerformance(report.Events, nil)
	md := PerformanceMarkdown(p, "Performance", 12, 5)
	contains(t, md,
		"| Trades | 2 |",
		"## Monthly",
		"| 2024-03 |",
		"| 2024-07 |",
		"## Contributions",
	)
	if strings.Contains(md, "## Yearly") {
		t.Errorf("PerformanceMarkdown() renders a yearly table for a single year:\n%s", md)
	}
}

func TestOverviewMarkdown(t *testing.T) {
	a := stockbook.NewAccountant()
	reports, err := stockbook.ComputeReports(t.Context(), a, ledger()[:3], map[string]stockbook.Money{
		"2330": stockbook.M(500, ""),
		"0050": stockbook.M(130, ""),
	})
	if err != nil {
		t.Fatalf("ComputeReports() unexpected error: %v", err)
	}
	o := reports.Overview(stockbook.MustParseDate("2024-01-31"))
	md := OverviewMarkdown(o, reports.Balances)
	contains(t, md,
		"# Summary on 2024-01-31",
		"| Total Assets | "+o.TotalAssets.String()+" |",
		"## Accounts",
		"| main | "+reports.Balances["main"].String()+" |",
	)
	if o.CashLevel == stockbook.CashNormal && strings.Contains(md, "Cash is") {
		t.Errorf("OverviewMarkdown() warns for a normal cash level:\n%s", md)
	}
	if strings.Contains(md, "error") {
		t.Errorf("OverviewMarkdown() failed to render:\n%s", md)
	}
}

func TestOverviewMarkdown_LowCash(t *testing.T) {
	o := &stockbook.Overview{
		Date:        stockbook.MustParseDate("2024-01-31"),
		Cash:        stockbook.M(5, ""),
		TotalAssets: stockbook.M(100, ""),
		CashRatio:   5,
		CashLevel:   stockbook.CashLow,
	}
	md := OverviewMarkdown(o, nil)
	contains(t, md, "> **Cash is low: 5.00% of total assets.**")
	if strings.Contains(md, "## Accounts") {
		t.Errorf("OverviewMarkdown() renders accounts without balances:\n%s", md)
	}
}

func TestBalancesMarkdown(t *testing.T) {
	balances := stockbook.Balances{"main": stockbook.M(100, ""), "side": stockbook.M(-20, "")}
	md := BalancesMarkdown(balances)
	contains(t, md, "| main |", "| side |", "**"+stockbook.M(80, "").String()+"**")
	if strings.Index(md, "| main |") > strings.Index(md, "| side |") {
		t.Errorf("BalancesMarkdown() accounts are not sorted:\n%s", md)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	history := []stockbook.AssetSnapshot{
		{Date: stockbook.MustParseDate("2024-01-01"), TotalAssets: stockbook.M(1000, "")},
		{Date: stockbook.MustParseDate("2024-02-01"), TotalAssets: stockbook.M(1100, "")},
	}
	md := HistoryMarkdown(history)
	contains(t, md, "| 2024-01-01 |", "(+10.00%)")

	contains(t, HistoryMarkdown(nil), "No snapshot recorded")
}

func TestTraceMarkdown(t *testing.T) {
	a := stockbook.NewAccountant()
	var steps []stockbook.TraceStep
	a.Trace = func(s stockbook.TraceStep) { steps = append(steps, s) }
	if _, err := a.Replay(ledger()); err != nil {
		t.Fatalf("Replay() unexpected error: %v", err)
	}
	md := TraceMarkdown(steps)
	contains(t, md,
		"| 2024-01-10 | buy | 2330 | 1000 | 0 | 1000 |",
		"| 2024-08-01 | sell | 0050 | 1500 | 1000 | 0 |",
		"**500**",
	)
}

func TestTransactionsMarkdown(t *testing.T) {
	md := TransactionsMarkdown(ledger()[:2])
	contains(t, md,
		"| 2024-01-02 | main | deposit | - | - | - |",
		"| 2024-01-10 | main | buy | 2330 | 1000 |",
	)
}

func TestTransaction(t *testing.T) {
	tests := []struct {
		tx   stockbook.Transaction
		want string
	}{
		{tx("2024-01-10", stockbook.StockDividend, "2330", 50, 10), "Received 50 2330 as stock dividend"},
		{tx("2024-01-10", stockbook.Withdraw, "", 1, 100), "Withdrew " + stockbook.M(100, "").String() + " from main"},
	}
	for _, tt := range tests {
		t.Run(tt.tx.Action.String(), func(t *testing.T) {
			if got := Transaction(tt.tx); got != tt.want {
				t.Errorf("Transaction() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTML(t *testing.T) {
	html, err := HTML(BalancesMarkdown(stockbook.Balances{"main": stockbook.M(100, "")}))
	if err != nil {
		t.Fatalf("HTML() unexpected error: %v", err)
	}
	contains(t, html, "<h1>Account Balances</h1>", "<table>", ">main</td>")
}
