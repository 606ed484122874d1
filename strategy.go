package basket

import (
	"fmt"

	"github.com/etnz/basket/date"
	"github.com/shopspring/decimal"
)

// Strategy is a pluggable investment rule: it converts a money amount per
// period into whole-share purchases across a date range, and reports the
// resulting hypothetical basket and the total money actually invested.
type Strategy interface {
	// Invest drives the strategy over [start, end] at a fixed period of
	// calendar days, investing money at each scheduled date. The input
	// basket is never mutated: purchases accumulate into a fresh basket.
	Invest(b *Basket, start, end date.Date, money float64, period int) (*Basket, float64, error)
}

// Proportion is the allocation weight of one instrument, derived from the
// fraction of a basket's total value the holding represented on the
// basket's creation date.
type Proportion struct {
	Instrument *Instrument
	Weight     float64
}

// DollarCostAverage invests a fixed amount at fixed calendar intervals,
// split across instruments in the fixed proportions of the input basket.
type DollarCostAverage struct {
	cal *Calendar
}

// NewDollarCostAverage returns a dollar-cost-averaging strategy using the
// given calendar for business-day decisions.
func NewDollarCostAverage(cal *Calendar) *DollarCostAverage {
	return &DollarCostAverage{cal: cal}
}

// Proportions derives the allocation weights of the basket: for each
// holding, shares times price on the creation date over the basket's total
// value that day. Weights sum to 1. A zero total value on the creation date
// is a precondition violation.
func (dca *DollarCostAverage) Proportions(b *Basket) ([]Proportion, error) {
	total, err := b.ClosingPrice(b.Created())
	if err != nil {
		return nil, fmt.Errorf("valuing basket on its creation date: %w", err)
	}
	if total == 0 {
		return nil, fmt.Errorf("basket is worth 0 on its creation date %s", b.Created())
	}
	proportions := make([]Proportion, 0, b.Len())
	for _, h := range b.Holdings() {
		price, err := h.Instrument.ClosingPrice(b.Created())
		if err != nil {
			return nil, err
		}
		proportions = append(proportions, Proportion{
			Instrument: h.Instrument,
			Weight:     float64(h.Shares) * price / total,
		})
	}
	return proportions, nil
}

// IndividualInvest performs one periodic purchase: for each instrument it
// buys round(weight*money/price) whole shares (half-up, possibly 0) at the
// closing price of the given business day, accumulating them into dst.
// Zero-share purchases are skipped so no zero holding is ever created;
// instruments quoted at 0 are skipped the same way.
// It returns the money actually spent, which differs from money because
// only whole shares are purchased.
func (dca *DollarCostAverage) IndividualInvest(dst *Basket, proportions []Proportion, money float64, on date.Date) (float64, error) {
	if dst == nil {
		return 0, fmt.Errorf("nil basket")
	}
	if len(proportions) == 0 {
		return 0, fmt.Errorf("empty proportion map")
	}
	if money < 0 {
		return 0, fmt.Errorf("cannot invest a negative amount %.2f", money)
	}
	business, err := dca.cal.IsBusinessDay(on)
	if err != nil {
		return 0, err
	}
	if !business {
		return 0, fmt.Errorf("investment date %s is not a business day", on)
	}

	spent := decimal.Zero
	for _, p := range proportions {
		price, err := p.Instrument.ClosingPrice(on)
		if err != nil {
			return 0, err
		}
		if price <= 0 {
			// a worthless listing buys nothing; dividing by it would poison
			// the share count with NaN or Inf
			continue
		}
		// whole shares only
		shares := int(decimal.NewFromFloat(p.Weight * money / price).Round(0).IntPart())
		if shares == 0 {
			continue
		}
		spent = spent.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(shares))))
		if dst.Contains(p.Instrument.Symbol()) {
			err = dst.IncrementShare(p.Instrument.Symbol(), shares)
		} else {
			err = dst.Put(p.Instrument.Symbol(), shares)
		}
		if err != nil {
			return 0, err
		}
	}
	return spent.InexactFloat64(), nil
}

// Invest implements Strategy.
//
// The schedule is the exact sequence start, start+period, start+2*period,
// ... up to and including end. Each scheduled date is shifted forward to
// the next business day within the remaining window; if no business day
// exists before end the investment is skipped entirely, not deferred
// further. Every executed investment adds its purchases to the result
// basket and its cost to the running total.
func (dca *DollarCostAverage) Invest(b *Basket, start, end date.Date, money float64, period int) (*Basket, float64, error) {
	if b == nil {
		return nil, 0, fmt.Errorf("nil basket")
	}
	if b.Len() == 0 {
		return nil, 0, fmt.Errorf("cannot derive proportions: %w", ErrEmptyBasket)
	}
	if start.IsZero() || end.IsZero() {
		return nil, 0, fmt.Errorf("null date")
	}
	business, err := dca.cal.IsBusinessDay(start)
	if err != nil {
		return nil, 0, err
	}
	if !business {
		return nil, 0, fmt.Errorf("start date %s should be a past business day", start)
	}
	future, err := dca.cal.IsFutureDay(end)
	if err != nil {
		return nil, 0, err
	}
	if future {
		return nil, 0, fmt.Errorf("end date %s should be a past day", end)
	}
	if start.After(end) {
		return nil, 0, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	if money < 0 {
		return nil, 0, fmt.Errorf("cannot invest a negative amount %.2f", money)
	}
	if period < 7 {
		return nil, 0, fmt.Errorf("investment period must be at least 7 days, got %d", period)
	}

	// proportions are computed once, from the input basket's composition on
	// its creation date
	proportions, err := dca.Proportions(b)
	if err != nil {
		return nil, 0, err
	}

	result, err := NewBasket(b.src, b.cal, b.Created())
	if err != nil {
		return nil, 0, err
	}

	total := decimal.Zero
	for d := start; !d.After(end); d = d.Add(period) {
		actual, ok, err := dca.cal.NextBusinessDayBefore(d, end)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			// no business day left in [d, end]: this investment is dropped
			continue
		}
		spent, err := dca.IndividualInvest(result, proportions, money, actual)
		if err != nil {
			return nil, 0, err
		}
		total = total.Add(decimal.NewFromFloat(spent))
	}
	return result, total.InexactFloat64(), nil
}

// SetStrategy attaches an investment strategy to the basket. It fails on a
// nil strategy.
func (b *Basket) SetStrategy(s Strategy) error {
	if s == nil {
		return fmt.Errorf("nil strategy")
	}
	b.strategy = s
	return nil
}

// Strategy returns the basket's investment strategy, defaulting to
// dollar-cost averaging when none was set.
func (b *Basket) Strategy() Strategy {
	if b.strategy == nil {
		return NewDollarCostAverage(b.cal)
	}
	return b.strategy
}

// CalcProfits simulates investing money every period calendar days over
// [start, end] with the basket's strategy (dollar-cost averaging by
// default) and returns the profit as of the valuation date: the resulting
// basket's value minus the total money invested.
//
// Preconditions: money >= 0, all dates non-null, period >= 7, start a past
// business day, end a past day, start <= end, and valuation a business day
// not before end.
func (b *Basket) CalcProfits(start, end date.Date, money float64, period int, valuation date.Date) (float64, error) {
	if valuation.IsZero() {
		return 0, fmt.Errorf("null date")
	}
	business, err := b.cal.IsBusinessDay(valuation)
	if err != nil {
		return 0, err
	}
	if !business {
		return 0, fmt.Errorf("valuation date %s is not a business day", valuation)
	}
	if valuation.Before(end) {
		return 0, fmt.Errorf("valuation date %s is before end date %s", valuation, end)
	}

	result, invested, err := b.Strategy().Invest(b, start, end, money, period)
	if err != nil {
		return 0, err
	}
	value, err := result.ClosingPrice(valuation)
	if err != nil {
		return 0, err
	}
	return value - invested, nil
}
