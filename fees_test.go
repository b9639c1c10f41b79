package stockbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeeSchedule_Compute(t *testing.T) {
	tests := []struct {
		name       string
		quantity   float64
		price      float64
		action     Action
		discount   string
		instrument string
		gross      float64
		commission float64
		tax        float64
		netCash    float64
	}{
		{"buy", 1000, 500, Buy, "0.6", "2330", 500000, 427, 0, -500427},
		{"sell equity", 1000, 550, Sell, "0.6", "2330", 550000, 470, 1650, 547880},
		{"sell etf", 1000, 550, Sell, "0.6", "0050", 550000, 470, 550, 548980},
		{"minimum commission", 10, 100, Buy, "0.6", "2330", 1000, 20, 0, -1020},
		{"gross is floored", 3, 33.33, Buy, "1", "2330", 99, 20, 0, -119},
		{"no discount", 1000, 100, Buy, "1", "2330", 100000, 142, 0, -100142},
		{"capital injection has no commission", 1000, 10, CapitalInjection, "0.6", "2330", 10000, 0, 0, -10000},
		{"cash dividend", 1, 3000, CashDividend, "0.6", "2330", 3000, 0, 0, 3000},
		{"stock dividend", 50, 10, StockDividend, "0.6", "2330", 500, 0, 0, 0},
		{"deposit", 1, 100000, Deposit, "0.6", "", 100000, 0, 0, 100000},
		{"withdraw", 1, 5000, Withdraw, "0.6", "", 5000, 0, 0, -5000},
		{"zero quantity", 0, 500, Buy, "0.6", "2330", 0, 0, 0, 0},
		{"zero price", 1000, 0, Sell, "0.6", "2330", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFees().Compute(Q(tt.quantity), NO(tt.price), tt.action, decimal.RequireFromString(tt.discount), tt.instrument)
			if !f.Gross.Equal(NO(tt.gross)) {
				t.Errorf("Gross = %v, want %v", f.Gross.Decimal(), tt.gross)
			}
			if !f.Commission.Equal(NO(tt.commission)) {
				t.Errorf("Commission = %v, want %v", f.Commission.Decimal(), tt.commission)
			}
			if !f.Tax.Equal(NO(tt.tax)) {
				t.Errorf("Tax = %v, want %v", f.Tax.Decimal(), tt.tax)
			}
			if !f.NetCash.Equal(NO(tt.netCash)) {
				t.Errorf("NetCash = %v, want %v", f.NetCash.Decimal(), tt.netCash)
			}
		})
	}
}

func TestFeeSchedule_ExitFees(t *testing.T) {
	// no discount: floor(550000 * 0.001425) = 783, tax 1650
	got := DefaultFees().ExitFees(Q(1000), NO(550), "2330")
	if !got.Equal(NO(2433)) {
		t.Errorf("ExitFees() = %v, want 2433", got.Decimal())
	}
}

func TestFeeSchedule_IsETF(t *testing.T) {
	s := DefaultFees()
	for id, want := range map[string]bool{"0050": true, "00878": true, "2330": false, "": false, " 0056": true} {
		if got := s.IsETF(id); got != want {
			t.Errorf("IsETF(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestNewTransaction(t *testing.T) {
	tx := NewTransaction(DefaultFees(), day(3, 1), "main", Deposit, "", "", Q(5), NO(1000), discount, "")
	if !tx.Quantity.Equal(Q(1)) {
		t.Errorf("cash action quantity = %v, want 1", tx.Quantity)
	}
	if !tx.NetCash.Equal(NO(1000)) {
		t.Errorf("NetCash = %v, want 1000", tx.NetCash.Decimal())
	}
	if tx.ID == "" {
		t.Error("NewTransaction() did not assign an id")
	}
	if err := tx.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
