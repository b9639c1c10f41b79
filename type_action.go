package stockbook

import (
	"fmt"
	"strings"
)

// Action is the kind of a ledger transaction.
type Action int

const (
	// Unknown is an action label that could not be recognized. Such
	// transactions still carry a net cash flow for their account.
	Unknown Action = iota
	Buy
	Sell
	CashDividend
	StockDividend
	CapitalInjection
	Deposit
	Withdraw
)

var actionNames = map[Action]string{
	Unknown:          "unknown",
	Buy:              "buy",
	Sell:             "sell",
	CashDividend:     "cash-dividend",
	StockDividend:    "stock-dividend",
	CapitalInjection: "capital-injection",
	Deposit:          "deposit",
	Withdraw:         "withdraw",
}

// labels accepted on input, including the ones found in exported spreadsheets.
var actionLabels = map[string]Action{
	"buy":               Buy,
	"sell":              Sell,
	"cash-dividend":     CashDividend,
	"dividend":          CashDividend,
	"stock-dividend":    StockDividend,
	"capital-injection": CapitalInjection,
	"deposit":           Deposit,
	"withdraw":          Withdraw,
	"買進":                Buy,
	"賣出":                Sell,
	"現金股利":              CashDividend,
	"股息":                CashDividend,
	"股票股利":              StockDividend,
	"現金增資":              CapitalInjection,
	"入金":                Deposit,
	"出金":                Withdraw,
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAction parses an action label. Matching is case insensitive and
// ignores surrounding spaces and underscores.
func ParseAction(s string) (Action, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.ReplaceAll(key, " ", "-")
	if a, ok := actionLabels[key]; ok {
		return a, nil
	}
	return Unknown, fmt.Errorf("unknown action: %q", s)
}

// IsCashOnly reports whether the action only moves cash in or out of an account.
func (a Action) IsCashOnly() bool { return a == Deposit || a == Withdraw }

// IsTrade reports whether the action is charged a brokerage commission.
func (a Action) IsTrade() bool { return a == Buy || a == Sell }

// opensLot reports whether replaying the action adds a lot to the queue.
func (a Action) opensLot() bool {
	return a == Buy || a == CapitalInjection || a == StockDividend
}

// class is the same-day replay rank of an action: lots are created before
// they are consumed, and anything else comes last.
func (a Action) class() int {
	switch {
	case a.opensLot():
		return 1
	case a == Sell:
		return 2
	default:
		return 3
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized labels decode
// to Unknown rather than failing, the ledger is human edited.
func (a *Action) UnmarshalText(text []byte) error {
	*a, _ = ParseAction(string(text))
	return nil
}
