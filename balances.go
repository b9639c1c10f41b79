package stockbook

import (
	"slices"
	"strings"
)

// Balances maps account names to their cash balance.
type Balances map[string]Money

// Accounts returns the account names, sorted.
func (b Balances) Accounts() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Total returns the sum of all balances.
func (b Balances) Total() Money {
	var total Money
	for _, name := range b.Accounts() {
		total = total.Add(b[name])
	}
	return total
}

// AccountBalances sums the net cash flow of txs per account. Transactions
// without an account are ignored. Every action contributes, including unknown
// ones, since net cash is stored with the transaction.
func AccountBalances(txs []Transaction) Balances {
	b := make(Balances)
	for _, t := range txs {
		account := strings.TrimSpace(t.Account)
		if account == "" {
			continue
		}
		b[account] = b[account].Add(t.NetCash)
	}
	return b
}

// BalancesFromRecords sums the net cash column of raw rows per account.
// Unreadable amounts count as zero and are reported to diag, which may be nil.
func BalancesFromRecords(records []Record, diag *Diagnostics) Balances {
	b := make(Balances)
	for _, r := range records {
		account := strings.TrimSpace(r.Account)
		if account == "" {
			continue
		}
		d, ok := ParseNumber(r.NetCash)
		if !ok {
			on, _ := parseAbsoluteDate(r.Date)
			diag.Add(Issue{Kind: IssueUnparseable, Date: on, Instrument: strings.TrimSpace(r.Instrument), Field: "netCash", Detail: r.NetCash})
		}
		b[account] = b[account].Add(M(d, ""))
	}
	return b
}

// CorrectionNote is the note attached to balance correction transactions.
const CorrectionNote = "balance correction"

// Correction returns the transaction that brings the system balance of an
// account to the actual balance observed at the broker: a deposit when the
// broker holds more, a withdrawal otherwise. It returns false when both
// balances already match.
func Correction(account string, system, actual Money, on Date) (Transaction, bool) {
	diff := actual.Sub(system)
	if diff.IsZero() {
		return Transaction{}, false
	}
	action := Deposit
	if diff.IsNegative() {
		action = Withdraw
	}
	amount := diff.Abs()
	t := NewTransaction(DefaultFees(), on, account, action, "", "", Q(1), amount, DefaultFees().DefaultDiscount, CorrectionNote)
	return t, true
}
