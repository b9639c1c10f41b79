package stockbook

import (
	"cmp"
	"slices"
)

// InventoryRow is the current holding of one security.
type InventoryRow struct {
	Instrument  string
	Name        string
	Quantity    Quantity
	TotalCost   Money
	AverageCost Money

	// Priced is false when no market price was given for the security, in
	// which case the fields below are zero.
	Priced      bool
	Price       Money
	MarketValue Money
	Weight      Percent // Weight is the share of the total market value.
	ExitFees    Money   // ExitFees estimates commission and tax of selling it all now.
	Unrealized  Money
	Return      Percent
}

// InventoryReport lists current holdings, largest weight first.
type InventoryReport struct {
	Rows        []InventoryRow
	TotalCost   Money
	MarketValue Money
	Unrealized  Money
	Diagnostics *Diagnostics
}

// Inventory computes the open holdings of txs valued at prices, which maps
// instrument ids to a market price and may be nil.
func (a *Accountant) Inventory(txs []Transaction, prices map[string]Money) (*InventoryReport, error) {
	book, err := a.Replay(txs)
	if err != nil {
		return nil, err
	}
	return a.newInventoryReport(book, prices), nil
}

func (a *Accountant) newInventoryReport(book *Book, prices map[string]Money) *InventoryReport {
	report := &InventoryReport{Diagnostics: book.Diagnostics}

	for _, id := range book.Instruments() {
		p := book.positions[id]
		quantity := p.lots.Quantity()
		if quantity.IsDust() {
			continue
		}
		row := InventoryRow{
			Instrument: id,
			Name:       p.name,
			Quantity:   quantity,
			TotalCost:  p.lots.Cost(),
		}
		row.AverageCost = row.TotalCost.Div(quantity)

		if price, ok := prices[id]; ok {
			row.Priced = true
			row.Price = price
			row.MarketValue = price.Mul(quantity)
			row.ExitFees = a.Fees.ExitFees(quantity, price, id)
			row.Unrealized = row.MarketValue.Sub(row.TotalCost).Sub(row.ExitFees)
			row.Return = row.Unrealized.Ratio(row.TotalCost)
		}
		report.Rows = append(report.Rows, row)
		report.TotalCost = report.TotalCost.Add(row.TotalCost)
		report.MarketValue = report.MarketValue.Add(row.MarketValue)
		report.Unrealized = report.Unrealized.Add(row.Unrealized)
	}

	for i := range report.Rows {
		report.Rows[i].Weight = report.Rows[i].MarketValue.Ratio(report.MarketValue)
	}
	slices.SortStableFunc(report.Rows, func(x, y InventoryRow) int {
		if c := cmp.Compare(y.Weight, x.Weight); c != 0 {
			return c
		}
		return cmp.Compare(x.Instrument, y.Instrument)
	})
	return report
}

// Row returns the row of a security, if held.
func (r *InventoryReport) Row(instrument string) (InventoryRow, bool) {
	for _, row := range r.Rows {
		if row.Instrument == instrument {
			return row, true
		}
	}
	return InventoryRow{}, false
}
