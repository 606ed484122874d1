package basket

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/etnz/basket/date"
)

// ErrEmptyBasket is returned by range analytics that are meaningless on a
// basket with no holdings.
var ErrEmptyBasket = errors.New("empty basket")

// DefaultCreation is the placeholder creation date used when a basket is
// created without an explicit one (Tuesday, June 20, 2017).
var DefaultCreation = date.New(2017, time.June, 20)

// Holding is one (instrument, share count) entry of a basket.
type Holding struct {
	Instrument *Instrument
	Shares     int
}

// Basket is a named-by-its-owner, dated collection of holdings. Share
// counts are always strictly positive: a mutation that would create or
// leave a zero or negative entry is rejected, so no invalid holding ever
// persists.
//
// Analytics aggregate the per-instrument closing prices into composite
// values, moving averages and trend with the same algorithms as a single
// Instrument.
type Basket struct {
	created  date.Date
	src      Source
	cal      *Calendar
	holdings map[string]*Holding
	strategy Strategy // optional, defaults to dollar-cost averaging
}

// NewBasket returns an empty basket created on the given business day. It
// fails if created is the null date or not a business day.
func NewBasket(src Source, cal *Calendar, created date.Date) (*Basket, error) {
	business, err := cal.IsBusinessDay(created)
	if err != nil {
		return nil, err
	}
	if !business {
		return nil, fmt.Errorf("creation date %s is not a business day", created)
	}
	return &Basket{
		created:  created,
		src:      src,
		cal:      cal,
		holdings: make(map[string]*Holding),
	}, nil
}

// Created returns the creation date of the basket.
func (b *Basket) Created() date.Date { return b.created }

// Len returns the number of holdings.
func (b *Basket) Len() int { return len(b.holdings) }

// Holdings returns the holdings ordered by instrument symbol.
func (b *Basket) Holdings() []Holding {
	symbols := make([]string, 0, len(b.holdings))
	for s := range b.holdings {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	holdings := make([]Holding, 0, len(symbols))
	for _, s := range symbols {
		holdings = append(holdings, *b.holdings[s])
	}
	return holdings
}

// Contains reports whether the basket holds the given symbol.
func (b *Basket) Contains(symbol string) bool {
	_, ok := b.holdings[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// Put sets the holding of symbol to the given share count, validating the
// symbol against the price source. It requires shares >= 1.
func (b *Basket) Put(symbol string, shares int) error {
	if shares < 1 {
		return fmt.Errorf("a holding needs at least 1 share, got %d", shares)
	}
	inst, err := NewInstrument(b.src, b.cal, symbol)
	if err != nil {
		return err
	}
	b.holdings[inst.Symbol()] = &Holding{Instrument: inst, Shares: shares}
	return nil
}

// IncrementShare adds delta shares to an existing holding. It requires the
// instrument to be already held and delta >= 1.
func (b *Basket) IncrementShare(symbol string, delta int) error {
	if delta < 1 {
		return fmt.Errorf("increment by at least 1 share, got %d", delta)
	}
	h, ok := b.holdings[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return fmt.Errorf("no holding of %q in this basket", symbol)
	}
	h.Shares += delta
	return nil
}

// Remove drops the holding of symbol. It is a no-op when the symbol is
// invalid or not held.
func (b *Basket) Remove(symbol string) {
	delete(b.holdings, strings.ToUpper(strings.TrimSpace(symbol)))
}

// ClosingPrice returns the composite value of the basket on the given
// business day: the sum of shares times closing price over all holdings.
// An empty basket is worth 0 on any business day. It fails with ErrNoData
// when the date is not a business day.
func (b *Basket) ClosingPrice(on date.Date) (float64, error) {
	if on.IsZero() {
		return 0, fmt.Errorf("null date")
	}
	business, err := b.cal.IsBusinessDay(on)
	if err != nil {
		return 0, err
	}
	if !business {
		return 0, fmt.Errorf("basket value on %s: %w", on, ErrNoData)
	}
	var sum float64
	for _, h := range b.holdings {
		price, err := h.Instrument.ClosingPrice(on)
		if err != nil {
			return 0, err
		}
		sum += price * float64(h.Shares)
	}
	return sum, nil
}

// ClosingPrices returns the composite closing-price series of the basket
// over [from, to]: for each date every holding has data on, the sum of
// shares times close, rounded to 2 decimal places. It fails on an empty
// basket or a malformed range.
//
// Like Instrument.ClosingPrices this is a topmost range query: a source
// failure degrades to missing dates instead of propagating.
func (b *Basket) ClosingPrices(from, to date.Date) (Series, error) {
	return b.compositePrices(from, to, (*Instrument).ClosingPrices)
}

// compositePrices aggregates the per-holding series produced by fetch into
// the shares-weighted composite. The moving averages pass the propagating
// per-instrument fetch so a provider outage surfaces as an error.
func (b *Basket) compositePrices(from, to date.Date, fetch func(*Instrument, date.Date, date.Date) (Series, error)) (Series, error) {
	if len(b.holdings) == 0 {
		return nil, fmt.Errorf("cannot get the prices of a basket with no holdings: %w", ErrEmptyBasket)
	}
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	composite := make(Series)
	first := true
	for _, h := range b.Holdings() {
		series, err := fetch(h.Instrument, from, to)
		if err != nil {
			return nil, err
		}
		if first {
			for key, close := range series {
				composite[key] = close * float64(h.Shares)
			}
			first = false
			continue
		}
		// keep only the dates every holding traded on
		for key := range composite {
			close, ok := series[key]
			if !ok {
				delete(composite, key)
				continue
			}
			composite[key] += close * float64(h.Shares)
		}
	}
	for key, sum := range composite {
		composite[key] = round2(sum)
	}
	return composite, nil
}

// Trend returns the two-end slope of the composite closing-price series
// over [from, to]. Same semantics and failure modes as Instrument.Trend.
func (b *Basket) Trend(from, to date.Date) (float64, error) {
	series, err := b.ClosingPrices(from, to)
	if err != nil {
		return 0, err
	}
	if len(series) == 0 {
		return 0, fmt.Errorf("no closing price data between %s and %s", from, to)
	}
	return twoEndTrend(series.Values()), nil
}

// NDayMovingAverages computes the n-day moving averages of the composite
// closing-price series for every business day in [from, to], with the same
// windowing algorithm and failure modes as Instrument.
func (b *Basket) NDayMovingAverages(from, to date.Date, n int) (Series, error) {
	if err := checkMovingAverageArgs(from, to, n); err != nil {
		return nil, err
	}
	series, err := b.compositePrices(from.Add(-2*n), to, (*Instrument).closingPrices)
	if err != nil {
		return nil, err
	}
	return nDayMovingAverages(series, from, n)
}

// MovingAverage returns the single n-day moving average of the composite
// value anchored at the given date, walking backward over non-business
// days like Instrument.MovingAverage.
func (b *Basket) MovingAverage(n int, at date.Date) (float64, error) {
	if len(b.holdings) == 0 {
		return 0, ErrEmptyBasket
	}
	return anchoredMovingAverage(n, at, b.NDayMovingAverages)
}

func (b *Basket) String() string {
	parts := make([]string, 0, len(b.holdings))
	for _, h := range b.Holdings() {
		parts = append(parts, fmt.Sprintf("%s * %d", h.Instrument.Name(), h.Shares))
	}
	return strings.Join(parts, ", ")
}
