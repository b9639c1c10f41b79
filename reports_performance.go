package stockbook

import (
	"cmp"
	"slices"
	"strconv"
)

// Bucket is the realized gain accumulated over a period or a security.
type Bucket struct {
	Key  string // month "2006-01", year "2006", or instrument id
	Name string // instrument name, for contributions
	Gain Money
}

// Performance summarizes realized gains over a selection of events.
type Performance struct {
	Total       Money // all realized gains
	Dividends   Money // part of Total coming from cash dividends
	Trades      int   // number of sells
	Wins        int   // number of sells with a positive gain
	Losses      int   // number of sells with a negative gain
	WinRate     Percent
	AverageWin  Money
	AverageLoss Money // negative or zero

	Monthly []Bucket // chronological
	Yearly  []Bucket // chronological

	// Contributions ranks securities by realized gain, best first.
	Contributions []Bucket
}

// NewPerformance aggregates the events accepted by keep, or all events when
// keep is nil. Win rate and averages only look at sells: a dividend is not a
// trading decision.
func NewPerformance(events []RealizedEvent, keep func(RealizedEvent) bool) *Performance {
	p := &Performance{}
	monthly := make(map[string]Money)
	yearly := make(map[string]Money)
	contributions := make(map[string]*Bucket)
	var wins, losses Money

	for _, e := range events {
		if keep != nil && !keep(e) {
			continue
		}
		p.Total = p.Total.Add(e.Gain)
		monthly[e.Date.MonthKey()] = monthly[e.Date.MonthKey()].Add(e.Gain)
		year := strconv.Itoa(e.Date.Year())
		yearly[year] = yearly[year].Add(e.Gain)

		c, ok := contributions[e.Instrument]
		if !ok {
			c = &Bucket{Key: e.Instrument}
			contributions[e.Instrument] = c
		}
		if e.Name != "" {
			c.Name = e.Name
		}
		c.Gain = c.Gain.Add(e.Gain)

		switch e.Type {
		case EventDividend:
			p.Dividends = p.Dividends.Add(e.Gain)
		case EventSell:
			p.Trades++
			switch {
			case e.Gain.IsPositive():
				p.Wins++
				wins = wins.Add(e.Gain)
			case e.Gain.IsNegative():
				p.Losses++
				losses = losses.Add(e.Gain)
			}
		}
	}

	p.WinRate = percentOf(p.Wins, p.Trades)
	p.AverageWin = wins.Div(Q(p.Wins))
	p.AverageLoss = losses.Div(Q(p.Losses))

	p.Monthly = buckets(monthly)
	p.Yearly = buckets(yearly)
	for _, c := range contributions {
		p.Contributions = append(p.Contributions, *c)
	}
	slices.SortFunc(p.Contributions, func(a, b Bucket) int {
		if c := b.Gain.Decimal().Cmp(a.Gain.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return p
}

func buckets(m map[string]Money) []Bucket {
	res := make([]Bucket, 0, len(m))
	for k, v := range m {
		res = append(res, Bucket{Key: k, Gain: v})
	}
	slices.SortFunc(res, func(a, b Bucket) int { return cmp.Compare(a.Key, b.Key) })
	return res
}

// LastMonths returns at most the n most recent monthly buckets.
func (p *Performance) LastMonths(n int) []Bucket {
	if len(p.Monthly) <= n {
		return p.Monthly
	}
	return p.Monthly[len(p.Monthly)-n:]
}

// Ranking returns the contributions, keeping only the n best and the n worst
// when there are more than 2n securities.
func (p *Performance) Ranking(n int) []Bucket {
	if len(p.Contributions) <= 2*n {
		return p.Contributions
	}
	res := slices.Clone(p.Contributions[:n])
	return append(res, p.Contributions[len(p.Contributions)-n:]...)
}
