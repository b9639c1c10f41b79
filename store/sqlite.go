package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/etnz/stockbook"
)

// Amounts are stored as TEXT to keep their exact decimal value.
const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	date TEXT NOT NULL,
	instrument TEXT,
	name TEXT,
	action TEXT NOT NULL,
	quantity TEXT,
	price TEXT,
	commission TEXT,
	tax TEXT,
	other_fees TEXT,
	gross TEXT,
	net_cash TEXT,
	account TEXT,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS asset_history (
	date TEXT PRIMARY KEY,
	total_assets TEXT NOT NULL,
	cash TEXT NOT NULL,
	stock TEXT NOT NULL
);
`

// SQLite is a ledger and asset history kept in a SQLite database.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string, log zerolog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables in %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("database tables ensured")
	return &SQLite{db: db, log: log}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Load reads all transactions in entry order.
func (s *SQLite) Load(ctx context.Context) (*stockbook.Ledger, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, instrument, name, action, quantity, price, commission, tax, other_fees, gross, net_cash, account, notes
		FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("cannot query transactions: %w", err)
	}
	defer rows.Close()

	var records []stockbook.Record
	for rows.Next() {
		var r stockbook.Record
		var instrument, name, quantity, price, commission, tax, otherFees, gross, netCash, account, notes sql.NullString
		if err := rows.Scan(&r.ID, &r.Date, &instrument, &name, &r.Action, &quantity, &price, &commission, &tax, &otherFees, &gross, &netCash, &account, &notes); err != nil {
			return nil, fmt.Errorf("cannot read transaction: %w", err)
		}
		r.Instrument, r.Name = instrument.String, name.String
		r.Quantity, r.Price = quantity.String, price.String
		r.Commission, r.Tax, r.OtherFees = commission.String, tax.String, otherFees.String
		r.Gross, r.NetCash = gross.String, netCash.String
		r.Account, r.Notes = account.String, notes.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read transactions: %w", err)
	}

	diag := stockbook.NewDiagnostics(s.log)
	ledger := stockbook.NewLedgerFrom(stockbook.Normalize(records, diag))
	s.log.Debug().Int("transactions", ledger.Len()).Int("issues", len(diag.Issues)).Msg("ledger loaded")
	return ledger, nil
}

// Append records transactions in a single database transaction.
func (s *SQLite) Append(ctx context.Context, txs ...stockbook.Transaction) ([]stockbook.Transaction, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	recorded, err := prepare(current, txs)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, date, instrument, name, action, quantity, price, commission, tax, other_fees, gross, net_cash, account, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for _, t := range recorded {
		r := stockbook.NewRecord(t)
		if _, err := stmt.ExecContext(ctx, r.ID, r.Date, r.Instrument, r.Name, r.Action, r.Quantity, r.Price, r.Commission, r.Tax, r.OtherFees, r.Gross, r.NetCash, r.Account, r.Notes); err != nil {
			return nil, fmt.Errorf("cannot insert %s: %w", t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("cannot commit transactions: %w", err)
	}
	s.log.Info().Int("transactions", len(recorded)).Msg("transactions appended")
	return recorded, nil
}

// Record stores a snapshot of total assets, replacing any snapshot of the same date.
func (s *SQLite) Record(ctx context.Context, snap stockbook.AssetSnapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO asset_history (date, total_assets, cash, stock) VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET total_assets = excluded.total_assets, cash = excluded.cash, stock = excluded.stock`,
		snap.Date.String(), snap.TotalAssets.Decimal().String(), snap.Cash.Decimal().String(), snap.Stock.Decimal().String())
	if err != nil {
		return fmt.Errorf("cannot record asset snapshot of %s: %w", snap.Date, err)
	}
	s.log.Debug().Str("date", snap.Date.String()).Msg("asset snapshot recorded")
	return nil
}

// History returns all asset snapshots, oldest first.
func (s *SQLite) History(ctx context.Context) ([]stockbook.AssetSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, total_assets, cash, stock FROM asset_history ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("cannot query asset history: %w", err)
	}
	defer rows.Close()

	var res []stockbook.AssetSnapshot
	for rows.Next() {
		var date, total, cash, stock string
		if err := rows.Scan(&date, &total, &cash, &stock); err != nil {
			return nil, fmt.Errorf("cannot read asset snapshot: %w", err)
		}
		on, err := stockbook.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("invalid asset snapshot date: %w", err)
		}
		money := func(s string) stockbook.Money { return stockbook.M(stockbook.NumberOr(s, decimal.Zero), "") }
		res = append(res, stockbook.AssetSnapshot{Date: on, TotalAssets: money(total), Cash: money(cash), Stock: money(stock)})
	}
	return res, rows.Err()
}
