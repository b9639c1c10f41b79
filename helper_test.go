package stockbook

import (
	"time"

	"github.com/shopspring/decimal"
)

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

var discount = decimal.RequireFromString("0.6")

// day is a helper for test to create a 2024 date.
func day(month time.Month, d int) Date { return NewDate(2024, month, d) }

// trade is a helper for test to create a fully costed transaction on the
// "main" account with the default discount.
func trade(on Date, action Action, instrument string, quantity, price float64) Transaction {
	return NewTransaction(DefaultFees(), on, "main", action, instrument, "name "+instrument, Q(quantity), NO(price), discount, "")
}

// cash is a helper for test to create a deposit or withdraw.
func cash(on Date, account string, action Action, amount float64) Transaction {
	return NewTransaction(DefaultFees(), on, account, action, "", "", Q(1), NO(amount), discount, "")
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
