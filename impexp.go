package stockbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// this file contains functions to handle the spreadsheet import/export format.
// It is a CSV file with a header row and one transaction per row, columns in
// the order of Record.

// csvColumns are the exported header names, in Record order.
var csvColumns = []string{
	"id", "date", "instrument", "name", "action", "quantity", "price",
	"commission", "tax", "otherFees", "gross", "totalFees", "netCash", "account", "notes",
}

// csvAliases maps the header names of spreadsheets kept by hand to a column index.
var csvAliases = map[string]int{
	"交易id":  0,
	"交易日期":  1,
	"股票代號":  2,
	"股票名稱":  3,
	"交易類別":  4,
	"股數":    5,
	"單價":    6,
	"手續費":   7,
	"交易稅":   8,
	"其他費用":  9,
	"成交總金額": 10,
	"總費用":   11,
	"淨收付金額": 12,
	"交易帳戶":  13,
	"備註":    14,
}

func columnIndex(header string) (int, bool) {
	h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF")))
	for i, c := range csvColumns {
		if h == strings.ToLower(c) {
			return i, true
		}
	}
	i, ok := csvAliases[h]
	return i, ok
}

func (r *Record) set(i int, v string) {
	fields := r.fields()
	*fields[i] = v
}

func (r *Record) fields() []*string {
	return []*string{
		&r.ID, &r.Date, &r.Instrument, &r.Name, &r.Action, &r.Quantity, &r.Price,
		&r.Commission, &r.Tax, &r.OtherFees, &r.Gross, &r.TotalFees, &r.NetCash, &r.Account, &r.Notes,
	}
}

// ReadRecords reads raw rows from a CSV file. The first row must be a header;
// columns are matched by name, English or as found in the original
// spreadsheet, and unknown columns are ignored.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	index := make([]int, len(header))
	found := 0
	for i, h := range header {
		index[i] = -1
		if c, ok := columnIndex(h); ok {
			index[i] = c
			found++
		}
	}
	if found == 0 {
		return nil, errors.New("csv header has no known column")
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read csv: %w", err)
		}
		var rec Record
		empty := true
		for i, v := range row {
			if i < len(index) && index[i] >= 0 {
				rec.set(index[i], v)
				if strings.TrimSpace(v) != "" {
					empty = false
				}
			}
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ImportCSV reads and normalizes transactions from a CSV file. Data problems
// are reported to diag, which may be nil.
func ImportCSV(r io.Reader, diag *Diagnostics) ([]Transaction, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}
	return Normalize(records, diag), nil
}

// NewRecord formats a transaction as a raw row.
func NewRecord(t Transaction) Record {
	num := func(m Money) string { return m.Decimal().String() }
	return Record{
		ID:         t.ID,
		Date:       t.Date.String(),
		Instrument: t.Instrument,
		Name:       t.Name,
		Action:     t.Action.String(),
		Quantity:   t.Quantity.String(),
		Price:      num(t.Price),
		Commission: num(t.Commission),
		Tax:        num(t.Tax),
		OtherFees:  num(t.OtherFees),
		Gross:      num(t.Gross),
		TotalFees:  num(t.Fees()),
		NetCash:    num(t.NetCash),
		Account:    t.Account,
		Notes:      t.Notes,
	}
}

// ExportCSV writes transactions in the format read by ImportCSV.
func ExportCSV(w io.Writer, txs []Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return err
	}
	for _, t := range txs {
		rec := NewRecord(t)
		row := make([]string, 0, len(csvColumns))
		for _, f := range rec.fields() {
			row = append(row, *f)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("cannot write %s: %w", t, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
