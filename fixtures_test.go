package basket

import (
	"fmt"
	"time"

	"github.com/etnz/basket/date"
)

// The package tests run against synthetic markets: every weekday between
// fixtureStart and fixtureEnd trades, weekends never do, and the clock is
// pinned so past/future classification stays deterministic.
//
// The trending source moves prices linearly so moving averages and trends
// have closed-form expectations; the flat source holds prices constant so
// investment simulations can be checked by hand.

var (
	fixtureStart = date.New(2016, time.July, 4)  // a Monday
	fixtureEnd   = date.New(2017, time.June, 30) // a Friday
	fixtureToday = date.New(2017, time.July, 10) // pinned clock, a Monday
)

func pinnedClock() date.Date { return fixtureToday }

// weekdaysBetween lists every Monday-to-Friday date in [from, to].
func weekdaysBetween(from, to date.Date) []date.Date {
	var days []date.Date
	for d := from; !d.After(to); d = d.Add(1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

// weekdayIndex returns the position of d among the fixture trading days.
func weekdayIndex(d date.Date) int {
	return len(weekdaysBetween(fixtureStart, d)) - 1
}

func aaplClose(d date.Date) float64 { return 100 + float64(weekdayIndex(d)) }
func googClose(d date.Date) float64 { return 200 + 2*float64(weekdayIndex(d)) }

// newTrendingSource prices AAPL and GOOG on straight rising lines and DECL
// on a falling one.
func newTrendingSource() *MemorySource {
	m := NewMemorySource()
	m.Declare("AAPL", "Apple Inc")
	m.Declare("GOOG", "Alphabet Inc")
	m.Declare("DECL", "Downhill Industries")
	for i, d := range weekdaysBetween(fixtureStart, fixtureEnd) {
		m.SetClose("AAPL", d, 100+float64(i))
		m.SetClose("GOOG", d, 200+2*float64(i))
		m.SetClose("DECL", d, 1000-float64(i))
	}
	return m
}

func newTrendingCalendar(src Source) *Calendar {
	return NewCalendar(src, "AAPL").WithToday(pinnedClock)
}

// newFlatSource prices ALFA at 10.00 until the end of May 2017 and 12.00
// from June on, BETA at a constant 40.00, and ZERO at 0.00 throughout.
func newFlatSource() *MemorySource {
	m := NewMemorySource()
	m.Declare("ALFA", "Alfa Holdings")
	m.Declare("BETA", "Beta Industries")
	m.Declare("ZERO", "Zero Point Energy")
	june := date.New(2017, time.June, 1)
	for _, d := range weekdaysBetween(fixtureStart, fixtureEnd) {
		alfa := 10.0
		if !d.Before(june) {
			alfa = 12.0
		}
		m.SetClose("ALFA", d, alfa)
		m.SetClose("BETA", d, 40)
		m.SetClose("ZERO", d, 0)
	}
	return m
}

func newFlatCalendar(src Source) *Calendar {
	return NewCalendar(src, "ALFA").WithToday(pinnedClock)
}

// failingSource resolves any name but fails every price query, standing in
// for an unreachable provider.
type failingSource struct{}

func (failingSource) HistoricalPrices(symbol string, from, to date.Date) (map[int]PriceRecord, error) {
	return nil, fmt.Errorf("provider unavailable")
}

func (failingSource) ResolveName(symbol string) (string, error) {
	return symbol + " Inc", nil
}
