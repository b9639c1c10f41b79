package stockbook

// EventType distinguishes the two sources of realized gains.
type EventType string

const (
	EventSell     EventType = "sell"
	EventDividend EventType = "dividend"
)

// RealizedEvent is the gain realized by a single sale or dividend.
type RealizedEvent struct {
	Date       Date
	Instrument string
	Name       string
	Type       EventType
	Gain       Money
	Return     Percent // Return is zero for dividends.
	CostBasis  Money   // CostBasis is the FIFO cost consumed, zero for dividends.
	Quantity   Quantity
	Proceeds   Money
}

func newSaleEvent(t Transaction, cost Money) RealizedEvent {
	proceeds := t.NetProceeds()
	gain := proceeds.Sub(cost)
	return RealizedEvent{
		Date:       t.Date,
		Instrument: t.Instrument,
		Name:       t.Name,
		Type:       EventSell,
		Gain:       gain,
		Return:     gain.Ratio(cost),
		CostBasis:  cost,
		Quantity:   t.Quantity,
		Proceeds:   proceeds,
	}
}

func newDividendEvent(t Transaction) RealizedEvent {
	proceeds := t.NetProceeds()
	return RealizedEvent{
		Date:       t.Date,
		Instrument: t.Instrument,
		Name:       t.Name,
		Type:       EventDividend,
		Gain:       proceeds,
		Quantity:   t.Quantity,
		Proceeds:   proceeds,
	}
}

// RealizedReport lists realized events in replay order.
type RealizedReport struct {
	Events      []RealizedEvent
	Total       Money
	Diagnostics *Diagnostics
}

// Realized computes the realized gain of every sell and cash dividend in txs.
// Sell cost basis comes from the same FIFO replay as the inventory, so both
// reports always agree.
func (a *Accountant) Realized(txs []Transaction) (*RealizedReport, error) {
	book, err := a.Replay(txs)
	if err != nil {
		return nil, err
	}
	return newRealizedReport(book), nil
}

func newRealizedReport(book *Book) *RealizedReport {
	report := &RealizedReport{
		Events:      book.Events(),
		Diagnostics: book.Diagnostics,
	}
	for _, e := range report.Events {
		report.Total = report.Total.Add(e.Gain)
	}
	return report
}

// Filter returns the events accepted by keep.
func (r *RealizedReport) Filter(keep func(RealizedEvent) bool) []RealizedEvent {
	var res []RealizedEvent
	for _, e := range r.Events {
		if keep(e) {
			res = append(res, e)
		}
	}
	return res
}

// InYear is a filter of events that occurred in year.
func InYear(year int) func(RealizedEvent) bool {
	return func(e RealizedEvent) bool { return e.Date.Year() == year }
}
