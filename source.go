package basket

import (
	"errors"

	"github.com/etnz/basket/date"
)

// ErrUnknownSymbol is returned when a price source does not recognize a
// symbol. It is distinct from an empty series: a known symbol with no
// trading activity in a range yields an empty series and no error.
var ErrUnknownSymbol = errors.New("unknown symbol")

// ErrNoData is returned when a single-date lookup finds no price record:
// the date is a weekend, a holiday, a future day, or outside the data the
// source covers.
var ErrNoData = errors.New("no price data")

// PriceRecord is the record of the price of a single instrument on one
// trading date. It is immutable and produced only by a Source.
type PriceRecord struct {
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
}

// Source provides historical price data. It is the single external
// collaborator of the engine: business-day detection, instrument
// validation and every price series derive from it.
//
// A Source is treated as a blocking, potentially slow remote call with no
// retry or timeout semantics at this layer; failures propagate to the
// caller as-is.
type Source interface {
	// HistoricalPrices returns the sparse series of price records for all
	// trading days in [from, to], keyed by the YYYYMMDD encoding of the
	// date. Days with no trading data are absent from the result; a range
	// with no trading activity at all yields an empty map, not an error.
	// An unrecognized symbol yields ErrUnknownSymbol.
	HistoricalPrices(symbol string, from, to date.Date) (map[int]PriceRecord, error)

	// ResolveName returns the display name of the instrument with the
	// given symbol, or ErrUnknownSymbol.
	ResolveName(symbol string) (string, error)
}
