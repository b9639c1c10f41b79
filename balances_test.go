package stockbook

import (
	"testing"
)

func TestAccountBalances(t *testing.T) {
	txs := []Transaction{
		cash(day(1, 1), "main", Deposit, 1000000),
		trade(day(1, 10), Buy, "2330", 1000, 500),
		trade(day(6, 10), Sell, "2330", 1000, 550),
		cash(day(1, 1), "second", Deposit, 5000),
		cash(day(2, 1), "second", Withdraw, 2000),
		cash(day(2, 1), "", Deposit, 999),
		{Date: day(3, 1), Account: "second", Action: Unknown, NetCash: NO(-100)},
	}
	b := AccountBalances(txs)

	if got := b.Accounts(); len(got) != 2 || got[0] != "main" || got[1] != "second" {
		t.Fatalf("Accounts() = %v, want [main second]", got)
	}
	if !b["main"].Equal(NO(1000000 - 500427 + 547880)) {
		t.Errorf("main = %v", b["main"].Decimal())
	}
	if !b["second"].Equal(NO(2900)) {
		t.Errorf("second = %v, want 2900", b["second"].Decimal())
	}
	if !b.Total().Equal(NO(1047453 + 2900)) {
		t.Errorf("Total() = %v", b.Total().Decimal())
	}
}

func TestBalancesFromRecords(t *testing.T) {
	diag := &Diagnostics{}
	b := BalancesFromRecords([]Record{
		{Account: "main", NetCash: "100,000"},
		{Account: " main ", NetCash: "-500,427"},
		{Account: "main", NetCash: "n/a", Date: "2024-01-01"},
		{Account: "", NetCash: "10"},
	}, diag)
	if !b["main"].Equal(NO(-400427)) {
		t.Errorf("main = %v, want -400427", b["main"].Decimal())
	}
	if len(b) != 1 {
		t.Errorf("accounts = %v, want only main", b.Accounts())
	}
	if diag.Count(IssueUnparseable) != 1 {
		t.Errorf("issues = %v, want one unparseable", diag.Issues)
	}
}

func TestCorrection(t *testing.T) {
	tests := []struct {
		name   string
		system float64
		actual float64
		action Action
		amount float64
	}{
		{"broker holds more", 1000, 1500, Deposit, 500},
		{"broker holds less", 1000, 800, Withdraw, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, ok := Correction("main", NO(tt.system), NO(tt.actual), day(5, 1))
			if !ok {
				t.Fatal("Correction() returned no transaction")
			}
			if tx.Action != tt.action || !tx.Price.Equal(NO(tt.amount)) || tx.Notes != CorrectionNote {
				t.Errorf("Correction() = %v", tx)
			}
			after := AccountBalances([]Transaction{{Account: "main", NetCash: NO(tt.system)}, tx})
			if !after["main"].Equal(NO(tt.actual)) {
				t.Errorf("balance after correction = %v, want %v", after["main"].Decimal(), tt.actual)
			}
		})
	}

	if _, ok := Correction("main", NO(10), NO(10), day(5, 1)); ok {
		t.Error("Correction() of matching balances returned a transaction")
	}
}
