package stockbook

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FeeSchedule holds the exchange and brokerage rates used to cost a trade.
type FeeSchedule struct {
	CommissionRate  decimal.Decimal // base brokerage commission rate, before discount
	MinCommission   decimal.Decimal // floor of a non zero commission
	EquityTaxRate   decimal.Decimal // transaction tax on sells of ordinary shares
	ETFTaxRate      decimal.Decimal // reduced transaction tax on sells of ETFs
	ETFPrefix       string          // instrument id prefix of ETFs
	DefaultDiscount decimal.Decimal // commission discount of accounts without one
}

// DefaultFees returns the Taiwan stock exchange schedule.
func DefaultFees() FeeSchedule {
	return FeeSchedule{
		CommissionRate:  decimal.RequireFromString("0.001425"),
		MinCommission:   decimal.NewFromInt(20),
		EquityTaxRate:   decimal.RequireFromString("0.003"),
		ETFTaxRate:      decimal.RequireFromString("0.001"),
		ETFPrefix:       "00",
		DefaultDiscount: decimal.RequireFromString("0.6"),
	}
}

// FeeBreakdown is the cost of a single transaction. Amounts are whole
// currency units.
type FeeBreakdown struct {
	Gross      Money
	Commission Money
	Tax        Money
	OtherFees  Money
	NetCash    Money
}

// Total returns the sum of all fees.
func (f FeeBreakdown) Total() Money { return sum(f.Commission, f.Tax, f.OtherFees) }

// IsETF reports whether the instrument id follows the ETF numbering convention.
func (s FeeSchedule) IsETF(instrument string) bool {
	return s.ETFPrefix != "" && strings.HasPrefix(strings.TrimSpace(instrument), s.ETFPrefix)
}

// taxRate returns the sell tax rate applicable to the instrument.
func (s FeeSchedule) taxRate(instrument string) decimal.Decimal {
	if s.IsETF(instrument) {
		return s.ETFTaxRate
	}
	return s.EquityTaxRate
}

// commission returns the brokerage commission on a gross amount.
func (s FeeSchedule) commission(gross Money, discount decimal.Decimal) Money {
	if !gross.IsPositive() {
		return Money{cur: gross.cur}
	}
	c := gross.MulRate(s.CommissionRate).MulRate(discount).Floor()
	if c.Decimal().LessThan(s.MinCommission) {
		c = Money{value: s.MinCommission, cur: gross.cur}
	}
	return c
}

// Compute returns the fees and cash flow of a transaction. It never fails:
// zero or negative inputs simply produce zero amounts.
func (s FeeSchedule) Compute(quantity Quantity, price Money, action Action, discount decimal.Decimal, instrument string) FeeBreakdown {
	zero := Money{cur: price.cur}
	f := FeeBreakdown{Gross: zero, Commission: zero, Tax: zero, OtherFees: zero, NetCash: zero}
	if !quantity.IsPositive() || !price.IsPositive() {
		return f
	}
	f.Gross = price.Mul(quantity).Floor()

	if action.IsTrade() {
		f.Commission = s.commission(f.Gross, discount)
	}
	if action == Sell {
		f.Tax = f.Gross.MulRate(s.taxRate(instrument)).Floor()
	}
	f.NetCash = netCash(action, f.Gross, f.Total())
	return f
}

// ExitFees returns the fees of selling the whole position at price, without
// brokerage discount.
func (s FeeSchedule) ExitFees(quantity Quantity, price Money, instrument string) Money {
	return s.Compute(quantity, price, Sell, decimal.NewFromInt(1), instrument).Total()
}

// netCash applies the sign convention of each action to its gross amount and fees.
func netCash(action Action, gross, fees Money) Money {
	switch action {
	case Buy, CapitalInjection:
		return gross.Add(fees).Neg()
	case Sell, CashDividend:
		return gross.Sub(fees)
	case Deposit:
		return gross
	case Withdraw:
		return gross.Neg()
	default:
		return Money{cur: gross.cur}
	}
}

// ComputeFees returns the fees of a transaction using DefaultFees.
func ComputeFees(quantity Quantity, price Money, action Action, discount decimal.Decimal, instrument string) FeeBreakdown {
	return DefaultFees().Compute(quantity, price, action, discount, instrument)
}
