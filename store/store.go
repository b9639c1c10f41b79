// Package store persists the ledger and the asset history.
//
// Two ledger drivers exist: a JSONL file, human readable and easy to keep
// under version control, and a SQLite database. The asset history always
// lives in SQLite.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/etnz/stockbook"
)

// Ledger is a persistent, append-only ledger.
type Ledger interface {
	// Load reads the whole ledger.
	Load(ctx context.Context) (*stockbook.Ledger, error)
	// Append validates and records transactions, all or none. It returns
	// them as recorded, with their id.
	Append(ctx context.Context, txs ...stockbook.Transaction) ([]stockbook.Transaction, error)
	Close() error
}

// OpenLedger opens the ledger at path with the named driver, "jsonl" or "sqlite".
func OpenLedger(driver, path string, log zerolog.Logger) (Ledger, error) {
	switch driver {
	case "jsonl", "":
		return NewFile(path, log), nil
	case "sqlite":
		return OpenSQLite(path, log)
	default:
		return nil, fmt.Errorf("unknown ledger driver %q", driver)
	}
}

// prepare assigns ids and checks txs against the current ledger content.
// current is left unchanged.
func prepare(current *stockbook.Ledger, txs []stockbook.Transaction) ([]stockbook.Transaction, error) {
	res := make([]stockbook.Transaction, len(txs))
	for i, t := range txs {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		res[i] = t
	}
	check := stockbook.NewLedgerFrom(current.Transactions())
	if err := check.Append(res...); err != nil {
		return nil, err
	}
	return res, nil
}
