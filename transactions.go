package stockbook

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidTransaction is returned by Validate for transactions that cannot be
// recorded in the ledger.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Transaction is a single ledger record. Fees, gross amount and net cash flow
// are computed when the transaction is entered and stored along with it.
type Transaction struct {
	ID         string   `json:"id,omitempty"`
	Date       Date     `json:"date"`
	Instrument string   `json:"instrument,omitempty"` // Instrument is the exchange code, empty for cash actions.
	Name       string   `json:"name,omitempty"`
	Action     Action   `json:"action"`
	Quantity   Quantity `json:"quantity"`
	Price      Money    `json:"price"` // Price is the unit price, or the amount of cash actions.
	Commission Money    `json:"commission"`
	Tax        Money    `json:"tax"`
	OtherFees  Money    `json:"otherFees"`
	Gross      Money    `json:"gross"`
	NetCash    Money    `json:"netCash"` // NetCash is the signed impact on the account cash balance.
	Account    string   `json:"account,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// Fees returns the sum of commission, tax and other fees.
func (t Transaction) Fees() Money { return sum(t.Commission, t.Tax, t.OtherFees) }

// NetProceeds returns the gross amount less all fees.
func (t Transaction) NetProceeds() Money { return t.Gross.Sub(t.Fees()) }

// String returns a short human description.
func (t Transaction) String() string {
	if t.Action.IsCashOnly() {
		return fmt.Sprintf("%s %s %s %s", t.Date, t.Action, t.Gross, t.Account)
	}
	return fmt.Sprintf("%s %s %s %s@%s %s", t.Date, t.Action, t.Instrument, t.Quantity, t.Price, t.Account)
}

// Validate checks the entry rules of a transaction. All failures are reported
// at once, joined.
func (t Transaction) Validate() error {
	var errs []error
	if t.Date.IsZero() {
		errs = append(errs, errors.New("date is missing"))
	}
	if t.Account == "" {
		errs = append(errs, errors.New("account is missing"))
	}
	if t.Action == Unknown {
		errs = append(errs, errors.New("action is unknown"))
	}
	if !t.Action.IsCashOnly() {
		if t.Instrument == "" {
			errs = append(errs, errors.New("instrument id is missing"))
		}
		if t.Name == "" {
			errs = append(errs, errors.New("instrument name is missing"))
		}
	}
	if t.Action != CashDividend && !t.Quantity.IsPositive() {
		errs = append(errs, fmt.Errorf("quantity must be positive, got %s", t.Quantity))
	}
	switch t.Action {
	case Buy, Sell, Deposit, Withdraw:
		if !t.Price.IsPositive() {
			errs = append(errs, fmt.Errorf("price must be positive, got %s", t.Price.Decimal()))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, errors.Join(errs...))
	}
	return nil
}

// NewTransaction builds a ledger record from entry form values: it computes
// fees with the account brokerage discount and assigns a fresh id.
// Cash actions have their quantity forced to 1 so that price is the amount.
func NewTransaction(fees FeeSchedule, on Date, account string, action Action, instrument, name string, quantity Quantity, price Money, discount decimal.Decimal, notes string) Transaction {
	if action.IsCashOnly() {
		quantity = Q(1)
	}
	f := fees.Compute(quantity, price, action, discount, instrument)
	return Transaction{
		ID:         uuid.NewString(),
		Date:       on,
		Instrument: instrument,
		Name:       name,
		Action:     action,
		Quantity:   quantity,
		Price:      price,
		Commission: f.Commission,
		Tax:        f.Tax,
		OtherFees:  f.OtherFees,
		Gross:      f.Gross,
		NetCash:    f.NetCash,
		Account:    account,
		Notes:      notes,
	}
}
