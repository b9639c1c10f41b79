package stockbook

import (
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"1,234", "1234", true},
		{"NT$1,234.50", "1234.5", true},
		{"  42 ", "42", true},
		{"-500,427", "-500427", true},
		{"(1,000)", "-1000", true},
		{"", "0", true},
		{"abc", "0", false},
		{"--", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got.String() != tt.want {
				t.Errorf("ParseNumber(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	diag := &Diagnostics{}
	txs := Normalize([]Record{
		{Date: "2024/3/1", Instrument: "2330", Name: "TSMC", Action: "買進", Quantity: "1,000", Price: "500", Commission: "427", Account: "main"},
		{Date: "2024-03-02", Action: "deposit", Quantity: "1", Price: "10,000", Gross: "10,000", NetCash: "10,000", Account: "main"},
		{Date: "not a date", Instrument: "2330", Action: "swap", Quantity: "x", Account: "main", NetCash: "-50"},
	}, diag)

	if len(txs) != 3 {
		t.Fatalf("Normalize() returned %d transactions, want 3", len(txs))
	}
	buy := txs[0]
	if buy.Action != Buy || buy.Date != day(3, 1) {
		t.Errorf("buy = %v", buy)
	}
	if !buy.Gross.Equal(NO(500000)) {
		t.Errorf("derived Gross = %v, want 500000", buy.Gross.Decimal())
	}
	if !buy.NetCash.Equal(NO(-500427)) {
		t.Errorf("derived NetCash = %v, want -500427", buy.NetCash.Decimal())
	}
	if !txs[1].NetCash.Equal(NO(10000)) {
		t.Errorf("deposit NetCash = %v, want 10000", txs[1].NetCash.Decimal())
	}

	bad := txs[2]
	if !bad.Date.IsZero() || bad.Action != Unknown || !bad.Quantity.IsZero() {
		t.Errorf("bad row = %#v, want zero date, unknown action, zero quantity", bad)
	}
	if !bad.NetCash.Equal(NO(-50)) {
		t.Errorf("bad row NetCash = %v, want -50", bad.NetCash.Decimal())
	}
	if got := diag.Count(IssueUnparseable); got != 2 {
		t.Errorf("unparseable issues = %d, want 2: %v", got, diag.Issues)
	}
	if got := diag.Count(IssueUnknownAction); got != 1 {
		t.Errorf("unknown action issues = %d, want 1", got)
	}
}

func TestNormalize_RelativeDate(t *testing.T) {
	diag := &Diagnostics{}
	txs := Normalize([]Record{{Date: "-1d", Action: "deposit", Price: "10", Account: "main"}}, diag)
	if !txs[0].Date.IsZero() {
		t.Errorf("Date = %v, want the zero date", txs[0].Date)
	}
	if got := diag.Count(IssueUnparseable); got != 1 {
		t.Errorf("unparseable issues = %d, want 1", got)
	}
}

func TestNormalize_NilDiagnostics(t *testing.T) {
	txs := Normalize([]Record{{Date: "?", Quantity: "?"}}, nil)
	if len(txs) != 1 {
		t.Fatalf("Normalize() returned %d transactions, want 1", len(txs))
	}
}

func TestOrder(t *testing.T) {
	sell := trade(day(3, 1), Sell, "2330", 500, 110)
	buy := trade(day(3, 1), Buy, "2330", 1000, 100)
	deposit := cash(day(3, 1), "main", Deposit, 1000)
	before := trade(day(2, 28), Sell, "2317", 10, 100)
	stock := trade(day(3, 1), StockDividend, "2330", 10, 10)

	input := []Transaction{sell, deposit, buy, before, stock}
	got := Order(input)

	want := []Transaction{before, buy, stock, sell, deposit}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("Order()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if input[0].ID != sell.ID {
		t.Error("Order() modified its input")
	}
}

func TestParseAction(t *testing.T) {
	tests := map[string]Action{
		"buy":               Buy,
		" Sell ":            Sell,
		"cash_dividend":     CashDividend,
		"Stock Dividend":    StockDividend,
		"capital-injection": CapitalInjection,
		"股息":                CashDividend,
		"現金股利":              CashDividend,
		"出金":                Withdraw,
	}
	for label, want := range tests {
		got, err := ParseAction(label)
		if err != nil || got != want {
			t.Errorf("ParseAction(%q) = %v, %v, want %v", label, got, err, want)
		}
	}
	if got, err := ParseAction("swap"); err == nil || got != Unknown {
		t.Errorf("ParseAction(swap) = %v, %v, want Unknown and an error", got, err)
	}
}
