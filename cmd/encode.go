package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/basket"
	"github.com/etnz/basket/date"
)

// persisted form of one basket: the engine itself defines no persistence
// format, so the CLI keeps its own.
type basketRecord struct {
	Created  date.Date      `json:"created"`
	Holdings map[string]int `json:"holdings"`
}

// EncodeRegistry writes all baskets of the registry as indented JSON.
func EncodeRegistry(w io.Writer, reg *basket.Registry) error {
	records := make(map[string]basketRecord)
	for _, name := range reg.Baskets() {
		b, _ := reg.Get(name)
		rec := basketRecord{Created: b.Created(), Holdings: make(map[string]int)}
		for _, h := range b.Holdings() {
			rec.Holdings[h.Instrument.Symbol()] = h.Shares
		}
		records[name] = rec
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// DecodeRegistry reads baskets from r into the registry, validating every
// symbol against the registry's price source.
func DecodeRegistry(r io.Reader, reg *basket.Registry) error {
	records := make(map[string]basketRecord)
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return fmt.Errorf("cannot decode baskets: %w", err)
	}
	for name, rec := range records {
		if err := reg.CreateBasketOn(name, rec.Created); err != nil {
			return fmt.Errorf("basket %q: %w", name, err)
		}
		for symbol, shares := range rec.Holdings {
			if err := reg.AddInstrument(symbol, shares, name); err != nil {
				return fmt.Errorf("basket %q holding %q: %w", name, symbol, err)
			}
		}
	}
	return nil
}
