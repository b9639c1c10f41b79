package quotes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Object(t *testing.T) {
	doc := `{"date": "2024-06-10", "prices": {"2330": 1025, "0050": "NT$187.5"}}`
	prices, err := Decode(strings.NewReader(doc), "$.prices", "TWD")
	require.NoError(t, err)

	require.Len(t, prices, 2)
	assert.Equal(t, "1025", prices["2330"].Decimal().String())
	assert.Equal(t, "187.5", prices["0050"].Decimal().String())
	assert.Equal(t, "TWD", prices["2330"].Currency())
}

func TestDecode_Array(t *testing.T) {
	doc := `{"data": [{"id": "2330", "price": 1025}, {"code": "2317", "close": "210.5"}]}`
	prices, err := Decode(strings.NewReader(doc), "$.data", "")
	require.NoError(t, err)

	assert.Equal(t, "1025", prices["2330"].Decimal().String())
	assert.Equal(t, "210.5", prices["2317"].Decimal().String())
}

func TestDecode_WholeDocument(t *testing.T) {
	prices, err := Decode(strings.NewReader(`{"2330": 1000}`), "", "")
	require.NoError(t, err)
	assert.Len(t, prices, 1)
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]struct{ doc, path string }{
		"invalid json":   {`{`, "$"},
		"missing path":   {`{"a": 1}`, "$.prices"},
		"scalar":         {`{"prices": 3}`, "$.prices"},
		"bad price":      {`{"2330": "n/a"}`, "$"},
		"negative price": {`{"2330": -1}`, "$"},
		"no id":          {`[{"price": 1}]`, "$"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.path, "")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"prices": {"2330": 1000}}`), 0o644))

	prices, err := Load(file, "$.prices", "TWD")
	require.NoError(t, err)
	assert.True(t, prices["2330"].IsPositive())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), "$", "")
	assert.Error(t, err)
}
