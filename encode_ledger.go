package stockbook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DecodeLedger reads a ledger from a stream of JSONL data: one transaction
// per line, blank lines ignored. Transactions are loaded as they are, without
// validation.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue // Skip empty lines
		}
		var t Transaction
		if err := json.Unmarshal(lineBytes, &t); err != nil {
			return nil, fmt.Errorf("line %d: could not decode transaction %q: %w", line, string(lineBytes), err)
		}
		ledger.load(t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	return ledger, nil
}

// EncodeLedger writes all transactions of the ledger in entry order, in the
// format read by DecodeLedger.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	return EncodeTransactions(w, ledger.transactions...)
}

// EncodeTransactions writes transactions as JSONL.
func EncodeTransactions(w io.Writer, txs ...Transaction) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, t := range txs {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("could not encode transaction %s: %w", t, err)
		}
	}
	return nil
}
