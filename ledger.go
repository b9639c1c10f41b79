package stockbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Ledger is the append-only list of transactions, in entry order.
//
// Reports never read a Ledger directly: they work on the snapshot returned by
// Transactions.
type Ledger struct {
	transactions []Transaction
	ids          map[string]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{ids: make(map[string]struct{})}
}

// NewLedgerFrom creates a ledger holding txs as they are, without
// validation: stored ledgers are human edited and reports cope with
// imperfect rows.
func NewLedgerFrom(txs []Transaction) *Ledger {
	l := NewLedger()
	l.load(txs...)
	return l
}

// Append validates and records transactions. A transaction without id gets a
// fresh one. Nothing is recorded if any transaction is rejected.
func (l *Ledger) Append(txs ...Transaction) error {
	added := make([]Transaction, 0, len(txs))
	seen := make(map[string]struct{})
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("cannot append %s: %w", t, err)
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if _, dup := l.ids[t.ID]; dup {
			return fmt.Errorf("cannot append %s: duplicate id %q", t, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("cannot append %s: duplicate id %q", t, t.ID)
		}
		seen[t.ID] = struct{}{}
		added = append(added, t)
	}
	for _, t := range added {
		l.ids[t.ID] = struct{}{}
		l.transactions = append(l.transactions, t)
	}
	return nil
}

// load records transactions without validation.
func (l *Ledger) load(txs ...Transaction) {
	for _, t := range txs {
		if t.ID != "" {
			l.ids[t.ID] = struct{}{}
		}
		l.transactions = append(l.transactions, t)
	}
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns a copy of the transactions in entry order.
func (l *Ledger) Transactions() []Transaction { return slices.Clone(l.transactions) }

// Accounts returns the sorted names of the accounts used in the ledger.
func (l *Ledger) Accounts() []string {
	var names []string
	for _, t := range l.transactions {
		name := strings.TrimSpace(t.Account)
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Name returns the last known name of a security.
func (l *Ledger) Name(instrument string) string {
	for _, t := range slices.Backward(l.transactions) {
		if t.Instrument == instrument && t.Name != "" {
			return t.Name
		}
	}
	return ""
}

// Filter returns the transactions accepted by keep, in entry order.
func (l *Ledger) Filter(keep func(Transaction) bool) []Transaction {
	var res []Transaction
	for _, t := range l.transactions {
		if keep(t) {
			res = append(res, t)
		}
	}
	return res
}
