package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/etnz/stockbook"
)

// File is a ledger kept in a JSONL file, one transaction per line. New
// transactions are appended at the end of the file, existing lines are never
// rewritten.
type File struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewFile returns the ledger stored at path. The file is created on the first
// append.
func NewFile(path string, log zerolog.Logger) *File {
	return &File{path: path, log: log}
}

// Load reads the ledger file. A missing file is an empty ledger.
func (f *File) Load(ctx context.Context) (*stockbook.Ledger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) load() (*stockbook.Ledger, error) {
	r, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.log.Debug().Str("path", f.path).Msg("ledger file does not exist yet")
		return stockbook.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", f.path, err)
	}
	defer r.Close()

	ledger, err := stockbook.DecodeLedger(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger file %q: %w", f.path, err)
	}
	f.log.Debug().Str("path", f.path).Int("transactions", ledger.Len()).Msg("ledger loaded")
	return ledger, nil
}

// Append records transactions at the end of the file.
func (f *File) Append(ctx context.Context, txs ...stockbook.Transaction) ([]stockbook.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.load()
	if err != nil {
		return nil, err
	}
	recorded, err := prepare(current, txs)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", f.path, err)
	}
	if err := stockbook.EncodeTransactions(w, recorded...); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("cannot write ledger file %q: %w", f.path, err)
	}
	f.log.Info().Str("path", f.path).Int("transactions", len(recorded)).Msg("transactions appended")
	return recorded, nil
}

// Close implements Ledger, there is nothing to release.
func (f *File) Close() error { return nil }
