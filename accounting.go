package stockbook

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrOversell is returned in strict mode when a sell exceeds the holding.
var ErrOversell = errors.New("sell exceeds holding")

// OversellPolicy decides what happens to the unmatched part of a sell.
type OversellPolicy int

const (
	// Truncate consumes what is available and drops the remainder. Short
	// positions are not modelled. The incident is reported as a diagnostic.
	Truncate OversellPolicy = iota
	// Strict aborts the replay with ErrOversell.
	Strict
)

// TraceStep describes the effect of one replayed transaction on its security.
type TraceStep struct {
	Tx        Transaction
	Before    Quantity // holding before the transaction
	After     Quantity // holding after the transaction
	Cost      Money    // cost basis consumed by a sell
	Shortfall Quantity // unmatched part of a sell
}

// Accountant replays a ledger snapshot to compute reports. It holds no state
// between calls: every report is computed from scratch from the transactions
// it is given, which it never modifies.
type Accountant struct {
	Fees   FeeSchedule
	Policy OversellPolicy
	Log    zerolog.Logger

	// Trace, if set, is called for every transaction replayed by the FIFO engine.
	Trace func(TraceStep)
}

// NewAccountant returns an accountant with the default fee schedule, the
// truncate policy, and no logging.
func NewAccountant() *Accountant {
	return &Accountant{Fees: DefaultFees(), Policy: Truncate, Log: zerolog.Nop()}
}

// position is the FIFO state of a single security during a replay.
type position struct {
	instrument string
	name       string
	lots       lots
}

// Book is the outcome of a replay: the open lots of every security and the
// realized events in chronological order.
type Book struct {
	positions map[string]*position
	order     []string // instruments, by first appearance
	events    []RealizedEvent

	Diagnostics *Diagnostics
}

// Instruments returns the ids of all securities seen during the replay.
func (b *Book) Instruments() []string { return b.order }

// Position returns the remaining quantity of a security.
func (b *Book) Position(instrument string) Quantity {
	if p, ok := b.positions[instrument]; ok {
		return p.lots.Quantity()
	}
	return Quantity{}
}

// CostBasis returns the cost basis of the remaining quantity of a security.
func (b *Book) CostBasis(instrument string) Money {
	if p, ok := b.positions[instrument]; ok {
		return p.lots.Cost()
	}
	return Money{}
}

// Events returns the realized events.
func (b *Book) Events() []RealizedEvent { return b.events }

func (b *Book) position(t Transaction) *position {
	p, ok := b.positions[t.Instrument]
	if !ok {
		p = &position{instrument: t.Instrument}
		b.positions[t.Instrument] = p
		b.order = append(b.order, t.Instrument)
	}
	if t.Name != "" {
		p.name = t.Name
	}
	return p
}

// Replay runs the FIFO engine over txs. Transactions are first put in replay
// order (see Order). Cash only actions do not touch any lot.
//
// With the Truncate policy Replay never fails.
func (a *Accountant) Replay(txs []Transaction) (*Book, error) {
	book := &Book{
		positions:   make(map[string]*position),
		Diagnostics: NewDiagnostics(a.Log),
	}

	for _, t := range Order(txs) {
		switch t.Action {
		case Buy, CapitalInjection, StockDividend:
			if t.Instrument == "" || !t.Quantity.IsPositive() {
				continue
			}
			p := book.position(t)
			before := p.lots.Quantity()
			cost := t.Commission.Add(t.OtherFees)
			if t.Action != StockDividend {
				cost = cost.Add(t.Price.Mul(t.Quantity))
			}
			p.lots = p.lots.push(t.Date, t.Quantity, cost)
			a.trace(TraceStep{Tx: t, Before: before, After: before.Add(t.Quantity)})

		case Sell:
			p := book.position(t)
			before := p.lots.Quantity()
			var cost Money
			var shortfall Quantity
			p.lots, cost, shortfall = p.lots.consume(t.Quantity)
			if shortfall.IsPositive() {
				issue := Issue{Kind: IssueOversell, Date: t.Date, Instrument: t.Instrument, Requested: t.Quantity, Available: before}
				if a.Policy == Strict {
					return nil, fmt.Errorf("%w: %s", ErrOversell, issue)
				}
				book.Diagnostics.Add(issue)
			}
			a.trace(TraceStep{Tx: t, Before: before, After: p.lots.Quantity(), Cost: cost, Shortfall: shortfall})
			book.events = append(book.events, newSaleEvent(t, cost))

		case CashDividend:
			if t.Instrument != "" {
				book.position(t)
			}
			a.trace(TraceStep{Tx: t, Before: book.Position(t.Instrument), After: book.Position(t.Instrument)})
			book.events = append(book.events, newDividendEvent(t))
		}
	}
	return book, nil
}

func (a *Accountant) trace(s TraceStep) {
	if a.Trace != nil {
		a.Trace(s)
	}
}
