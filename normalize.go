package stockbook

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is a raw ledger row as exported by a spreadsheet: every field is
// text and numbers may carry thousands separators or currency symbols.
type Record struct {
	ID         string
	Date       string
	Instrument string
	Name       string
	Action     string
	Quantity   string
	Price      string
	Commission string
	Tax        string
	OtherFees  string
	Gross      string
	TotalFees  string
	NetCash    string
	Account    string
	Notes      string
}

// ParseNumber reads a decimal out of a decorated string such as "NT$1,234.50"
// or "(1,000)". It returns false when no number can be read; blank input
// reads as zero.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			negative = !negative
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// NumberOr is ParseNumber with a default for unreadable input.
func NumberOr(s string, def decimal.Decimal) decimal.Decimal {
	if d, ok := ParseNumber(s); ok {
		return d
	}
	return def
}

// decodeNumber reads a JSON amount. Quoted amounts go through NumberOr, so a
// formatted amount in a hand edited ledger never stops the ledger from
// loading.
func decodeNumber(data []byte) (decimal.Decimal, error) {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err == nil {
		return d, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return decimal.Zero, err
	}
	return NumberOr(s, decimal.Zero), nil
}

// Normalize converts raw rows into transactions. It never fails: unreadable
// values default to zero (or Unknown for actions) and are reported to diag,
// which may be nil. Missing gross amounts and net cash flows are derived from
// the other fields.
func Normalize(records []Record, diag *Diagnostics) []Transaction {
	txs := make([]Transaction, 0, len(records))
	for _, r := range records {
		txs = append(txs, normalize(r, diag))
	}
	return txs
}

func normalize(r Record, diag *Diagnostics) Transaction {
	t := Transaction{
		ID:         strings.TrimSpace(r.ID),
		Instrument: strings.TrimSpace(r.Instrument),
		Name:       strings.TrimSpace(r.Name),
		Account:    strings.TrimSpace(r.Account),
		Notes:      r.Notes,
	}

	on, err := parseAbsoluteDate(r.Date)
	if err != nil {
		diag.Add(Issue{Kind: IssueUnparseable, Instrument: t.Instrument, Field: "date", Detail: r.Date})
	}
	t.Date = on

	t.Action, err = ParseAction(r.Action)
	if err != nil {
		diag.Add(Issue{Kind: IssueUnknownAction, Date: on, Instrument: t.Instrument, Detail: r.Action})
	}

	num := func(field, value string) decimal.Decimal {
		d, ok := ParseNumber(value)
		if !ok {
			diag.Add(Issue{Kind: IssueUnparseable, Date: on, Instrument: t.Instrument, Field: field, Detail: value})
		}
		return d
	}
	money := func(field, value string) Money { return M(num(field, value), "") }

	t.Quantity = Q(num("quantity", r.Quantity))
	t.Price = money("price", r.Price)
	t.Commission = money("commission", r.Commission)
	t.Tax = money("tax", r.Tax)
	t.OtherFees = money("otherFees", r.OtherFees)

	if strings.TrimSpace(r.Gross) == "" {
		t.Gross = t.Price.Mul(t.Quantity).Floor()
	} else {
		t.Gross = money("gross", r.Gross)
	}
	if strings.TrimSpace(r.NetCash) == "" {
		t.NetCash = netCash(t.Action, t.Gross, t.Fees())
	} else {
		t.NetCash = money("netCash", r.NetCash)
	}
	return t
}

// Order returns a copy of txs in replay order: by date, then lot creating
// actions before sells, then everything else. Within the same date and class
// the input order is kept. A same-day buy and sell therefore always replays
// the buy first whatever order they were entered in.
func Order(txs []Transaction) []Transaction {
	ordered := slices.Clone(txs)
	slices.SortStableFunc(ordered, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmpInt(a.Action.class(), b.Action.class())
	})
	return ordered
}
