package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/stockbook"
)

var discount = decimal.RequireFromString("0.6")

func buy(on stockbook.Date, quantity, price float64) stockbook.Transaction {
	return stockbook.NewTransaction(stockbook.DefaultFees(), on, "main", stockbook.Buy, "2330", "TSMC",
		stockbook.Q(quantity), stockbook.M(price, ""), discount, "")
}

func deposit(on stockbook.Date, amount float64) stockbook.Transaction {
	t := stockbook.NewTransaction(stockbook.DefaultFees(), on, "main", stockbook.Deposit, "", "",
		stockbook.Q(1), stockbook.M(amount, ""), discount, "")
	t.ID = ""
	return t
}

// ledgers returns one empty ledger per driver.
func ledgers(t *testing.T) map[string]Ledger {
	t.Helper()
	dir := t.TempDir()
	res := make(map[string]Ledger)
	for driver, file := range map[string]string{"jsonl": "ledger.jsonl", "sqlite": "ledger.db"} {
		l, err := OpenLedger(driver, filepath.Join(dir, file), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { l.Close() })
		res[driver] = l
	}
	return res
}

func TestLedger_AppendLoad(t *testing.T) {
	ctx := context.Background()
	on := stockbook.MustParseDate("2024-01-10")

	for driver, l := range ledgers(t) {
		t.Run(driver, func(t *testing.T) {
			empty, err := l.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, empty.Len())

			recorded, err := l.Append(ctx, deposit(on, 1000000), buy(on, 1000, 500))
			require.NoError(t, err)
			require.Len(t, recorded, 2)
			assert.NotEmpty(t, recorded[0].ID, "an id is assigned")

			_, err = l.Append(ctx, buy(on.Add(1), 1000, 510))
			require.NoError(t, err)

			ledger, err := l.Load(ctx)
			require.NoError(t, err)
			txs := ledger.Transactions()
			require.Len(t, txs, 3)

			assert.Equal(t, recorded[0].ID, txs[0].ID)
			assert.Equal(t, stockbook.Deposit, txs[0].Action)
			assert.Equal(t, stockbook.Buy, txs[1].Action)
			assert.Equal(t, on, txs[1].Date)
			assert.True(t, txs[1].Commission.Equal(stockbook.M(427, "")))
			assert.True(t, txs[1].NetCash.Equal(stockbook.M(-500427, "")))
			assert.Equal(t, "TSMC", txs[1].Name)

			balances := stockbook.AccountBalances(txs)
			assert.True(t, balances["main"].Equal(stockbook.M(1000000-500427-510436, "")), balances["main"].Decimal().String())
		})
	}
}

func TestLedger_AppendRejects(t *testing.T) {
	ctx := context.Background()
	on := stockbook.MustParseDate("2024-01-10")

	for driver, l := range ledgers(t) {
		t.Run(driver, func(t *testing.T) {
			first, err := l.Append(ctx, buy(on, 10, 500))
			require.NoError(t, err)

			invalid := buy(on, 10, 500)
			invalid.Account = ""
			_, err = l.Append(ctx, deposit(on, 10), invalid)
			assert.ErrorIs(t, err, stockbook.ErrInvalidTransaction)

			_, err = l.Append(ctx, first[0])
			assert.ErrorContains(t, err, "duplicate id")

			ledger, err := l.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, ledger.Len(), "rejected appends record nothing")
		})
	}
}

func TestFile_HumanEdited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.jsonl")
	content := strings.Join([]string{
		`{"id":"a","date":"2024/1/10","action":"買進","instrument":"2330","name":"TSMC","quantity":1000,"price":500,"commission":427,"netCash":-500427,"account":"main"}`,
		``,
		`{"id":"b","date":"2024-01-11","action":"deposit","quantity":1,"price":10,"gross":10,"netCash":10}`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ledger, err := NewFile(path, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, ledger.Len())
	assert.Equal(t, "", ledger.Transactions()[1].Account, "invalid rows are loaded as they are")
}

func TestOpenLedger_UnknownDriver(t *testing.T) {
	_, err := OpenLedger("csv", "ledger.csv", zerolog.Nop())
	assert.Error(t, err)
}

func TestSQLite_History(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	snap := func(date string, total, cash, stock float64) stockbook.AssetSnapshot {
		return stockbook.AssetSnapshot{
			Date:        stockbook.MustParseDate(date),
			TotalAssets: stockbook.M(total, ""),
			Cash:        stockbook.M(cash, ""),
			Stock:       stockbook.M(stock, ""),
		}
	}
	require.NoError(t, db.Record(ctx, snap("2024-02-01", 1000, 400, 600)))
	require.NoError(t, db.Record(ctx, snap("2024-01-01", 900, 900, 0)))
	// same date replaces the previous snapshot
	require.NoError(t, db.Record(ctx, snap("2024-02-01", 1100.5, 400, 700.5)))

	history, err := db.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, stockbook.MustParseDate("2024-01-01"), history[0].Date)
	assert.Equal(t, "1100.5", history[1].TotalAssets.Decimal().String())
	assert.Equal(t, "700.5", history[1].Stock.Decimal().String())
}
