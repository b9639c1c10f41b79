// Package quotes reads market prices from JSON documents. Prices are never
// fetched: the document is produced by some other tool, and a JSONPath
// expression selects the part of it holding the prices.
//
// The selected value is either an object mapping instrument ids to prices
//
//	{"2330": 1025, "0050": "187.5"}
//
// or an array of objects with an id and a price:
//
//	[{"id": "2330", "price": 1025}, {"code": "0050", "close": "187.5"}]
//
// Prices may be numbers or decorated strings.
package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/etnz/stockbook"
)

// Prices maps instrument ids to their market price.
type Prices map[string]stockbook.Money

// keys accepted in array entries, in order of preference.
var (
	idKeys    = []string{"id", "code", "instrument"}
	priceKeys = []string{"price", "close", "last"}
)

// Decode reads prices in currency out of a JSON document. An empty path
// selects the whole document.
func Decode(r io.Reader, path, currency string) (Prices, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode quotes: %w", err)
	}
	if path == "" {
		path = "$"
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q on quotes: %w", path, err)
	}
	prices := make(Prices)
	switch v := jval.(type) {
	case map[string]any:
		for id, p := range v {
			price, err := readPrice(p)
			if err != nil {
				return nil, fmt.Errorf("price of %q: %w", id, err)
			}
			prices[strings.TrimSpace(id)] = stockbook.M(price, currency)
		}
	case []any:
		for i, e := range v {
			entry, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("quote #%d is not an object: %v", i, e)
			}
			id, ok := first(entry, idKeys).(string)
			if !ok || id == "" {
				return nil, fmt.Errorf("quote #%d has no id", i)
			}
			price, err := readPrice(first(entry, priceKeys))
			if err != nil {
				return nil, fmt.Errorf("price of %q: %w", id, err)
			}
			prices[strings.TrimSpace(id)] = stockbook.M(price, currency)
		}
	default:
		return nil, fmt.Errorf("%q does not select an object or an array: %v", path, jval)
	}
	return prices, nil
}

// Load reads prices from a JSON file.
func Load(file, path, currency string) (Prices, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, path, currency)
}

func first(entry map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := entry[k]; ok {
			return v
		}
	}
	return nil
}

// readPrice accepts numbers and strings, the latter possibly decorated.
func readPrice(v any) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch p := v.(type) {
	case float64:
		d = decimal.NewFromFloat(p)
	case string:
		var ok bool
		if d, ok = stockbook.ParseNumber(p); !ok {
			return d, fmt.Errorf("not a price: %q", p)
		}
	default:
		return d, fmt.Errorf("not a price: %v", v)
	}
	if !d.IsPositive() {
		return d, fmt.Errorf("not a positive price: %v", v)
	}
	return d, nil
}
