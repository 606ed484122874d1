package basket

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/basket/date"
)

// movingAverageScanCap bounds the backward walk of MovingAverage when the
// anchor date keeps landing on dateless days. A year without a single
// trading day means the source has no history there at all.
const movingAverageScanCap = 366

// Instrument is a single tradable symbol. Identity and ordering are defined
// solely by the canonical (uppercase) symbol.
//
// No invalid Instrument can exist: NewInstrument validates the symbol
// against the price source and fails on a blank or unrecognized one.
type Instrument struct {
	symbol string
	name   string
	src    Source
	cal    *Calendar
}

// NewInstrument constructs an instrument, resolving the display name of
// symbol against src. The symbol is case-insensitive and canonicalized to
// uppercase.
func NewInstrument(src Source, cal *Calendar, symbol string) (*Instrument, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("blank instrument symbol")
	}
	name, err := src.ResolveName(strings.ToUpper(symbol))
	if err != nil {
		return nil, fmt.Errorf("invalid instrument symbol %q: %w", symbol, err)
	}
	return &Instrument{
		symbol: strings.ToUpper(symbol),
		name:   name,
		src:    src,
		cal:    cal,
	}, nil
}

// Symbol returns the canonical uppercase symbol.
func (s *Instrument) Symbol() string { return s.symbol }

// Name returns the display name resolved at construction time.
func (s *Instrument) Name() string { return s.name }

// Equal reports whether both instruments denote the same symbol.
func (s *Instrument) Equal(o *Instrument) bool { return o != nil && s.symbol == o.symbol }

func (s *Instrument) String() string {
	return fmt.Sprintf("%s (%s)", s.symbol, s.name)
}

// ClosingPrice returns the closing price on the given date. It fails with
// ErrNoData if no record exists for that date: a non-business day, a future
// day, or a date outside the source's coverage.
func (s *Instrument) ClosingPrice(on date.Date) (float64, error) {
	if on.IsZero() {
		return 0, fmt.Errorf("null date")
	}
	prices, err := s.src.HistoricalPrices(s.symbol, on, on)
	if err != nil {
		return 0, fmt.Errorf("closing price of %s on %s: %w", s.symbol, on, err)
	}
	rec, ok := prices[on.Key()]
	if !ok {
		return 0, fmt.Errorf("closing price of %s on %s: %w", s.symbol, on, ErrNoData)
	}
	return rec.Close, nil
}

// ClosingPrices returns the sparse series of closing prices for all
// business days in [from, to]. Days with no trading data are absent from
// the result. It fails if either date is the null date or to precedes from.
//
// This is a topmost range-query entry point: a source failure degrades to
// an empty series here instead of propagating.
func (s *Instrument) ClosingPrices(from, to date.Date) (Series, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	series, err := s.closingPrices(from, to)
	if err != nil {
		return Series{}, nil
	}
	return series, nil
}

// closingPrices is the propagating form of ClosingPrices: a source failure
// surfaces instead of degrading. Derived computations such as the moving
// averages fetch through it so an outage is never mistaken for a market
// holiday.
func (s *Instrument) closingPrices(from, to date.Date) (Series, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	prices, err := s.src.HistoricalPrices(s.symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("closing prices of %s between %s and %s: %w", s.symbol, from, to, err)
	}
	series := make(Series, len(prices))
	for key, rec := range prices {
		series[key] = rec.Close
	}
	return series, nil
}

// checkRange validates the shared preconditions of the range queries.
func checkRange(from, to date.Date) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("null date")
	}
	if to.Before(from) {
		return fmt.Errorf("end date %s should not be prior to start date %s", to, from)
	}
	return nil
}

// NDayMovingAverages computes, for every business day in [from, to], the
// mean of the n most recent business-day closes at or before that day.
//
// The algorithm over-fetches a single window starting 2n calendar days
// before from (enough to hold n business days of history at the usual
// trading-day density) and walks it from the most recent date backward.
// It fails if n is not positive, or with an insufficient-history error when
// an average would need more points than the window retrieved: it never
// silently averages fewer than n points.
func (s *Instrument) NDayMovingAverages(from, to date.Date, n int) (Series, error) {
	if err := checkMovingAverageArgs(from, to, n); err != nil {
		return nil, err
	}
	series, err := s.closingPrices(from.Add(-2*n), to)
	if err != nil {
		return nil, err
	}
	return nDayMovingAverages(series, from, n)
}

// checkMovingAverageArgs validates the shared preconditions of the n-day
// moving-average range queries.
func checkMovingAverageArgs(from, to date.Date, n int) error {
	if n < 1 {
		return fmt.Errorf("moving average window must be at least 1 day, got %d", n)
	}
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("null date")
	}
	return nil
}

// nDayMovingAverages is the windowing walk shared by Instrument and Basket.
// prefetched holds the closes from 2n days before the range start through
// its end.
func nDayMovingAverages(prefetched Series, from date.Date, n int) (Series, error) {
	// most recent first
	keys := prefetched.Keys()
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = prefetched[k]
	}

	startKey := from.Key()
	result := make(Series)
	for i := 0; i < len(keys) && keys[i] >= startKey; i++ {
		if i+n > len(keys) {
			first, _ := date.FromKey(keys[i])
			return nil, fmt.Errorf("insufficient history for a %d-day average at %s: only %d points retrieved", n, first, len(keys)-i)
		}
		result[keys[i]] = mean(values[i : i+n])
	}
	return result, nil
}

// MovingAverage returns the single n-day moving average anchored at the
// given date. When the date is not itself a business day the anchor walks
// backward one calendar day at a time until a day with a computable average
// is found.
func (s *Instrument) MovingAverage(n int, at date.Date) (float64, error) {
	return anchoredMovingAverage(n, at, s.NDayMovingAverages)
}

// anchoredMovingAverage computes the single n-day moving average at the
// given anchor, walking the anchor backward one calendar day at a time over
// dateless days. Shared by Instrument and Basket.
func anchoredMovingAverage(n int, at date.Date, averages func(from, to date.Date, n int) (Series, error)) (float64, error) {
	if err := checkMovingAverageArgs(at, at, n); err != nil {
		return 0, err
	}
	for attempts := 0; attempts < movingAverageScanCap; attempts++ {
		series, err := averages(at, at, n)
		if err != nil {
			return 0, err
		}
		if len(series) > 0 {
			return series[at.Key()], nil
		}
		at = at.Add(-1)
	}
	return 0, fmt.Errorf("%d-day moving average: no business day within %d days of anchor: %w", n, movingAverageScanCap, ErrNoData)
}

// Trend returns the slope of the straight line joining the first and last
// closing price in [from, to]: a two-point fit, not a least-squares
// regression. It is 0 for a single-point series and fails if the series is
// empty or the range is malformed.
func (s *Instrument) Trend(from, to date.Date) (float64, error) {
	series, err := s.ClosingPrices(from, to)
	if err != nil {
		return 0, err
	}
	if len(series) == 0 {
		return 0, fmt.Errorf("no closing price data between %s and %s", from, to)
	}
	return twoEndTrend(series.Values()), nil
}

// BuyingOpportunity reports whether the 50-day moving average is above the
// 200-day moving average on the given date.
func (s *Instrument) BuyingOpportunity(at date.Date) (bool, error) {
	short, err := s.MovingAverage(50, at)
	if err != nil {
		return false, err
	}
	long, err := s.MovingAverage(200, at)
	if err != nil {
		return false, err
	}
	return short > long, nil
}
