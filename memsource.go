package basket

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/etnz/basket/date"
)

// MemorySource is an in-memory Source. It backs tests and fixtures, and the
// offline mode of the CLI where prices are loaded from a JSON file instead
// of a remote service.
type MemorySource struct {
	listings map[string]*listing
}

type listing struct {
	Name   string              `json:"name"`
	Prices map[int]PriceRecord `json:"prices"`
}

// NewMemorySource returns a new empty in-memory price source.
func NewMemorySource() *MemorySource {
	return &MemorySource{listings: make(map[string]*listing)}
}

// Declare registers a symbol with its display name. Redeclaring a symbol
// keeps its existing prices.
func (m *MemorySource) Declare(symbol, name string) {
	symbol = strings.ToUpper(symbol)
	if l, ok := m.listings[symbol]; ok {
		l.Name = name
		return
	}
	m.listings[symbol] = &listing{Name: name, Prices: make(map[int]PriceRecord)}
}

// Set records the prices of a symbol on a given day. The symbol must have
// been declared first.
func (m *MemorySource) Set(symbol string, on date.Date, rec PriceRecord) error {
	l, ok := m.listings[strings.ToUpper(symbol)]
	if !ok {
		return fmt.Errorf("cannot set price for %q: %w", symbol, ErrUnknownSymbol)
	}
	l.Prices[on.Key()] = rec
	return nil
}

// SetClose records a bare closing price, leaving open/high/low equal to it.
// Most analytics only consume the close.
func (m *MemorySource) SetClose(symbol string, on date.Date, close float64) error {
	return m.Set(symbol, on, PriceRecord{Open: close, Close: close, High: close, Low: close})
}

// Symbols returns the declared symbols in lexicographic order.
func (m *MemorySource) Symbols() []string {
	symbols := make([]string, 0, len(m.listings))
	for s := range m.listings {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// HistoricalPrices implements Source.
func (m *MemorySource) HistoricalPrices(symbol string, from, to date.Date) (map[int]PriceRecord, error) {
	l, ok := m.listings[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", symbol, ErrUnknownSymbol)
	}
	prices := make(map[int]PriceRecord)
	lo, hi := from.Key(), to.Key()
	for key, rec := range l.Prices {
		if key >= lo && key <= hi {
			prices[key] = rec
		}
	}
	return prices, nil
}

// ResolveName implements Source.
func (m *MemorySource) ResolveName(symbol string) (string, error) {
	l, ok := m.listings[strings.ToUpper(symbol)]
	if !ok {
		return "", fmt.Errorf("%q: %w", symbol, ErrUnknownSymbol)
	}
	return l.Name, nil
}

// DecodeMemorySource reads a JSON price database, a map from symbol to
// listing as written by EncodeMemorySource.
func DecodeMemorySource(r io.Reader) (*MemorySource, error) {
	listings := make(map[string]*listing)
	if err := json.NewDecoder(r).Decode(&listings); err != nil {
		return nil, fmt.Errorf("cannot decode price database: %w", err)
	}
	m := NewMemorySource()
	for symbol, l := range listings {
		symbol = strings.ToUpper(symbol)
		if l.Prices == nil {
			l.Prices = make(map[int]PriceRecord)
		}
		for key := range l.Prices {
			if _, err := date.FromKey(key); err != nil {
				return nil, fmt.Errorf("price database entry for %q: %w", symbol, err)
			}
		}
		m.listings[symbol] = l
	}
	return m, nil
}

// EncodeMemorySource writes the price database as indented JSON.
func EncodeMemorySource(w io.Writer, m *MemorySource) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m.listings)
}
