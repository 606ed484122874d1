package basket

import (
	"fmt"

	"github.com/etnz/basket/date"
)

// nextBusinessDayCap bounds the unbounded NextBusinessDay scan: markets do
// not close for a full week, so 7 attempts always reach the next session.
const nextBusinessDayCap = 7

// Calendar classifies dates as past/future and business/non-business, and
// performs the date arithmetic of the engine.
//
// A business day is a derived property of data availability: a date is a
// business day iff the price source has trading data for a reference
// instrument on it. Weekends and provider-defined holidays are both
// detected as "no data". An explicit trading calendar can be substituted by
// implementing Source over it and keeping the same reference symbol.
type Calendar struct {
	src   Source
	ref   string
	today func() date.Date
}

// NewCalendar returns a calendar deriving business days from the price
// history of ref, the reference instrument probed by IsBusinessDay.
func NewCalendar(src Source, ref string) *Calendar {
	return &Calendar{src: src, ref: ref, today: date.Today}
}

// WithToday returns a copy of the calendar using the given clock instead of
// the local current date. Simulations and tests pin the clock to keep the
// past/future classification deterministic.
func (c *Calendar) WithToday(today func() date.Date) *Calendar {
	cp := *c
	cp.today = today
	return &cp
}

// IsFutureDay reports whether d is a future day. The current local date
// itself counts as a future day: "today" is never a tradable past day.
// It fails for the null date.
func (c *Calendar) IsFutureDay(d date.Date) (bool, error) {
	if d.IsZero() {
		return false, fmt.Errorf("null date")
	}
	return !d.Before(c.today()), nil
}

// IsBusinessDay reports whether d is a past business day: a past day for
// which the source has at least one price record of the reference
// instrument. Future days are never business days. A source failure
// propagates.
func (c *Calendar) IsBusinessDay(d date.Date) (bool, error) {
	future, err := c.IsFutureDay(d)
	if err != nil {
		return false, err
	}
	if future {
		return false, nil
	}
	prices, err := c.src.HistoricalPrices(c.ref, d, d)
	if err != nil {
		return false, fmt.Errorf("probing business day %s: %w", d, err)
	}
	return len(prices) != 0, nil
}

// NextBusinessDay returns the first business day at or after d, scanning at
// most 7 days forward. If d is itself a business day it is returned as-is.
// ok is false when no business day was found within the cap or before the
// scan crossed into future days. It fails if d is the null date or already
// a future day.
func (c *Calendar) NextBusinessDay(d date.Date) (next date.Date, ok bool, err error) {
	future, err := c.IsFutureDay(d)
	if err != nil {
		return date.Date{}, false, err
	}
	if future {
		return date.Date{}, false, fmt.Errorf("date %s is a future day", d)
	}
	business, err := c.IsBusinessDay(d)
	if err != nil {
		return date.Date{}, false, err
	}
	for count := 0; !business && count < nextBusinessDayCap; count++ {
		d = d.Add(1)
		business, err = c.IsBusinessDay(d)
		if err != nil {
			return date.Date{}, false, err
		}
	}
	if !business {
		return date.Date{}, false, nil
	}
	return d, true, nil
}

// NextBusinessDayBefore returns the first business day in [d, end]. If d is
// itself a business day it is returned as-is. ok is false when [d, end]
// holds no business day. It fails if either date is the null date or a
// future day, or if d is after end.
func (c *Calendar) NextBusinessDayBefore(d, end date.Date) (next date.Date, ok bool, err error) {
	for _, day := range []date.Date{d, end} {
		future, err := c.IsFutureDay(day)
		if err != nil {
			return date.Date{}, false, err
		}
		if future {
			return date.Date{}, false, fmt.Errorf("date %s is a future day", day)
		}
	}
	if d.After(end) {
		return date.Date{}, false, fmt.Errorf("date %s is after end %s", d, end)
	}
	business, err := c.IsBusinessDay(d)
	if err != nil {
		return date.Date{}, false, err
	}
	for !business && d.Before(end) {
		d = d.Add(1)
		business, err = c.IsBusinessDay(d)
		if err != nil {
			return date.Date{}, false, err
		}
	}
	if !business {
		return date.Date{}, false, nil
	}
	return d, true, nil
}

// Duration returns the inclusive day count between start and end: the
// duration of June 1 to June 5 is 5. It fails if either date is the null
// date or start is after end.
func (c *Calendar) Duration(start, end date.Date) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, fmt.Errorf("null date")
	}
	if start.After(end) {
		return 0, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	days := 0
	for d := start; !d.After(end); d = d.Add(1) {
		days++
	}
	return days, nil
}
