package stockbook

// CashLevel qualifies the share of cash in total assets.
type CashLevel int

const (
	CashNormal CashLevel = iota
	CashLow              // below 10% of total assets
	CashHigh             // above 80% of total assets
)

func (l CashLevel) String() string {
	switch l {
	case CashLow:
		return "low"
	case CashHigh:
		return "high"
	default:
		return "normal"
	}
}

// Overview is the at-a-glance state of the portfolio on a given date.
type Overview struct {
	Date        Date
	Cash        Money // sum of all account balances
	MarketValue Money
	TotalAssets Money
	CashRatio   Percent
	CashLevel   CashLevel
	TotalCost   Money
	Unrealized  Money
	Return      Percent // unrealized return on the cost of current holdings
	RealizedYTD Money   // realized gains since the start of the year of Date
}

// NewOverview combines the three reports of a snapshot into an overview as
// of on. Unpriced holdings contribute no market value.
func NewOverview(inventory *InventoryReport, balances Balances, realized *RealizedReport, on Date) *Overview {
	o := &Overview{
		Date:        on,
		Cash:        balances.Total(),
		MarketValue: inventory.MarketValue,
		TotalCost:   inventory.TotalCost,
		Unrealized:  inventory.Unrealized,
	}
	o.TotalAssets = o.Cash.Add(o.MarketValue)
	o.CashRatio = o.Cash.Ratio(o.TotalAssets)
	if !o.TotalAssets.IsZero() {
		o.CashLevel = o.CashRatio.cashLevel()
	}
	o.Return = o.Unrealized.Ratio(o.TotalCost)

	for _, e := range realized.Events {
		if e.Date.Year() == on.Year() && !e.Date.After(on) {
			o.RealizedYTD = o.RealizedYTD.Add(e.Gain)
		}
	}
	return o
}

// Snapshot returns the asset history record of the overview.
func (o *Overview) Snapshot() AssetSnapshot {
	return AssetSnapshot{Date: o.Date, TotalAssets: o.TotalAssets, Cash: o.Cash, Stock: o.MarketValue}
}

// AssetSnapshot is one point of the total asset history. There is at most
// one snapshot per date.
type AssetSnapshot struct {
	Date        Date  `json:"date"`
	TotalAssets Money `json:"totalAssets"`
	Cash        Money `json:"cash"`
	Stock       Money `json:"stock"`
}
