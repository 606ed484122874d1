package basket

import (
	"testing"
	"time"

	"github.com/etnz/basket/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlatBasket builds a basket worth exactly 1000 on its creation date:
// 60 ALFA at 10.00 and 10 BETA at 40.00, weights 0.6 and 0.4.
func newFlatBasket(t *testing.T) *Basket {
	t.Helper()
	src := newFlatSource()
	b, err := NewBasket(src, newFlatCalendar(src), date.New(2017, time.April, 20))
	require.NoError(t, err)
	require.NoError(t, b.Put("ALFA", 60))
	require.NoError(t, b.Put("BETA", 10))
	return b
}

func TestProportions(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)

	proportions, err := dca.Proportions(b)
	require.NoError(t, err)
	require.Len(t, proportions, 2)

	weights := make(map[string]float64)
	for _, p := range proportions {
		weights[p.Instrument.Symbol()] = p.Weight
	}
	assert.InDelta(t, 0.6, weights["ALFA"], 1e-9)
	assert.InDelta(t, 0.4, weights["BETA"], 1e-9)
}

func TestProportionsWorthless(t *testing.T) {
	src := newFlatSource()
	b, err := NewBasket(src, newFlatCalendar(src), date.New(2017, time.April, 20))
	require.NoError(t, err)
	require.NoError(t, b.Put("ZERO", 5))

	dca := NewDollarCostAverage(b.cal)
	_, err = dca.Proportions(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worth 0")
}

func TestIndividualInvest(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)
	proportions, err := dca.Proportions(b)
	require.NoError(t, err)

	dst, err := NewBasket(b.src, b.cal, b.Created())
	require.NoError(t, err)

	// 1000 split 600/400 buys 60 ALFA at 10 and 10 BETA at 40, exactly
	monday := date.New(2017, time.May, 1)
	spent, err := dca.IndividualInvest(dst, proportions, 1000, monday)
	require.NoError(t, err)
	assert.InDelta(t, 1000, spent, 1e-9)

	holdings := dst.Holdings()
	require.Len(t, holdings, 2)
	assert.Equal(t, 60, holdings[0].Shares) // ALFA
	assert.Equal(t, 10, holdings[1].Shares) // BETA

	// a second investment accumulates
	_, err = dca.IndividualInvest(dst, proportions, 1000, date.New(2017, time.May, 8))
	require.NoError(t, err)
	assert.Equal(t, 120, dst.Holdings()[0].Shares)
}

func TestIndividualInvestRounding(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)
	proportions, err := dca.Proportions(b)
	require.NoError(t, err)

	dst, err := NewBasket(b.src, b.cal, b.Created())
	require.NoError(t, err)
	monday := date.New(2017, time.May, 1)

	// 50 splits into 30 for ALFA (3 shares) and 20 for BETA: 0.5 share
	// rounds half-up to a whole one, overspending to 70
	spent, err := dca.IndividualInvest(dst, proportions, 50, monday)
	require.NoError(t, err)
	assert.InDelta(t, 70, spent, 1e-9)
	require.Len(t, dst.Holdings(), 2)
	assert.Equal(t, 3, dst.Holdings()[0].Shares)
	assert.Equal(t, 1, dst.Holdings()[1].Shares)
}

func TestIndividualInvestSkipsZeroShares(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)
	proportions, err := dca.Proportions(b)
	require.NoError(t, err)

	dst, err := NewBasket(b.src, b.cal, b.Created())
	require.NoError(t, err)

	// 5 rounds to 0 shares of everything: nothing bought, nothing spent
	spent, err := dca.IndividualInvest(dst, proportions, 5, date.New(2017, time.May, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, spent)
	assert.Equal(t, 0, dst.Len())
}

func TestInvestWorthlessHolding(t *testing.T) {
	// a holding quoted at 0 carries no weight and buys no shares, but it
	// must not derail the rest of the schedule
	src := newFlatSource()
	b, err := NewBasket(src, newFlatCalendar(src), date.New(2017, time.April, 20))
	require.NoError(t, err)
	require.NoError(t, b.Put("ALFA", 60))
	require.NoError(t, b.Put("ZERO", 5))

	dca := NewDollarCostAverage(b.cal)
	result, spent, err := dca.Invest(b, date.New(2017, time.May, 1), date.New(2017, time.June, 3), 1000, 7)
	require.NoError(t, err)

	// the whole 1000 flows to ALFA on each of the five Mondays
	assert.InDelta(t, 5000, spent, 1e-9)
	holdings := result.Holdings()
	require.Len(t, holdings, 1)
	assert.Equal(t, "ALFA", holdings[0].Instrument.Symbol())
	assert.Equal(t, 500, holdings[0].Shares)
}

func TestIndividualInvestValidation(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)
	proportions, err := dca.Proportions(b)
	require.NoError(t, err)
	dst, err := NewBasket(b.src, b.cal, b.Created())
	require.NoError(t, err)
	monday := date.New(2017, time.May, 1)

	_, err = dca.IndividualInvest(nil, proportions, 100, monday)
	assert.Error(t, err)
	_, err = dca.IndividualInvest(dst, nil, 100, monday)
	assert.Error(t, err)
	_, err = dca.IndividualInvest(dst, proportions, -1, monday)
	assert.Error(t, err)
	_, err = dca.IndividualInvest(dst, proportions, 100, date.New(2017, time.May, 6)) // Saturday
	assert.Error(t, err)
}

func TestInvestWeekly(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)

	// five Mondays: May 1, 8, 15, 22, 29; June 5 is past the end
	result, spent, err := dca.Invest(b, date.New(2017, time.May, 1), date.New(2017, time.June, 3), 1000, 7)
	require.NoError(t, err)
	assert.InDelta(t, 5000, spent, 1e-9)

	holdings := result.Holdings()
	require.Len(t, holdings, 2)
	assert.Equal(t, 300, holdings[0].Shares) // ALFA
	assert.Equal(t, 50, holdings[1].Shares)  // BETA

	// the input basket is untouched
	assert.Equal(t, 60, b.Holdings()[0].Shares)
}

func TestInvestRegression(t *testing.T) {
	// fixed end-to-end scenario: 20 ALFA and 5 BETA held since April 20,
	// 10000 invested every 7 days from May 1 through June 3
	src := newFlatSource()
	b, err := NewBasket(src, newFlatCalendar(src), date.New(2017, time.April, 20))
	require.NoError(t, err)
	require.NoError(t, b.Put("ALFA", 20))
	require.NoError(t, b.Put("BETA", 5))

	dca := NewDollarCostAverage(b.cal)
	result, spent, err := dca.Invest(b, date.New(2017, time.May, 1), date.New(2017, time.June, 3), 10000, 7)
	require.NoError(t, err)

	// creation value 400 splits 200/200, so each of the five Mondays buys
	// 500 ALFA at 10 and 125 BETA at 40
	assert.InDelta(t, 50000, spent, 1e-9)
	holdings := result.Holdings()
	require.Len(t, holdings, 2)
	assert.Equal(t, 2500, holdings[0].Shares)
	assert.Equal(t, 625, holdings[1].Shares)
}

func TestProportionsRoundTrip(t *testing.T) {
	// re-applying the derived proportions on the creation date with the
	// basket's own value reproduces the holdings
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)
	proportions, err := dca.Proportions(b)
	require.NoError(t, err)

	total, err := b.ClosingPrice(b.Created())
	require.NoError(t, err)

	dst, err := NewBasket(b.src, b.cal, b.Created())
	require.NoError(t, err)
	spent, err := dca.IndividualInvest(dst, proportions, total, b.Created())
	require.NoError(t, err)
	assert.InDelta(t, total, spent, 1e-9)
	assert.Equal(t, b.Holdings(), dst.Holdings())
}

func TestInvestShiftsToBusinessDay(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)

	// schedule: May 1 (Mon), May 13 (Sat, shifted to Mon 15), May 25 (Thu)
	_, spent, err := dca.Invest(b, date.New(2017, time.May, 1), date.New(2017, time.June, 3), 1000, 12)
	require.NoError(t, err)
	assert.InDelta(t, 3000, spent, 1e-9)
}

func TestInvestDropsWhenNoBusinessDayRemains(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)

	// schedule: May 1 (Mon), May 13 (Sat). The window ends on the 13th,
	// so the second investment has no business day left and is dropped.
	result, spent, err := dca.Invest(b, date.New(2017, time.May, 1), date.New(2017, time.May, 13), 1000, 12)
	require.NoError(t, err)
	assert.InDelta(t, 1000, spent, 1e-9)
	assert.Equal(t, 60, result.Holdings()[0].Shares)
	assert.Equal(t, 10, result.Holdings()[1].Shares)
}

func TestInvestZeroMoney(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)

	result, spent, err := dca.Invest(b, date.New(2017, time.May, 1), date.New(2017, time.June, 3), 0, 7)
	require.NoError(t, err)
	assert.Equal(t, 0.0, spent)
	assert.Equal(t, 0, result.Len())
}

func TestInvestValidation(t *testing.T) {
	b := newFlatBasket(t)
	dca := NewDollarCostAverage(b.cal)
	start, end := date.New(2017, time.May, 1), date.New(2017, time.June, 3)

	_, _, err := dca.Invest(nil, start, end, 1000, 7)
	assert.Error(t, err)

	empty, err := NewBasket(b.src, b.cal, b.Created())
	require.NoError(t, err)
	_, _, err = dca.Invest(empty, start, end, 1000, 7)
	assert.ErrorIs(t, err, ErrEmptyBasket)

	_, _, err = dca.Invest(b, date.Date{}, end, 1000, 7)
	assert.Error(t, err)
	_, _, err = dca.Invest(b, start, date.Date{}, 1000, 7)
	assert.Error(t, err)
	_, _, err = dca.Invest(b, date.New(2017, time.May, 6), end, 1000, 7) // Saturday start
	assert.Error(t, err)
	_, _, err = dca.Invest(b, start, fixtureToday.Add(5), 1000, 7) // future end
	assert.Error(t, err)
	_, _, err = dca.Invest(b, date.New(2017, time.June, 5), end, 1000, 7) // start after end
	assert.Error(t, err)
	_, _, err = dca.Invest(b, start, end, -1, 7)
	assert.Error(t, err)
	_, _, err = dca.Invest(b, start, end, 1000, 6) // period too short
	assert.Error(t, err)
}

func TestSetStrategy(t *testing.T) {
	b := newFlatBasket(t)
	assert.Error(t, b.SetStrategy(nil))

	dca := NewDollarCostAverage(b.cal)
	require.NoError(t, b.SetStrategy(dca))
	assert.Equal(t, Strategy(dca), b.Strategy())
}

func TestCalcProfits(t *testing.T) {
	b := newFlatBasket(t)

	// five Mondays of May invest 5000 into 300 ALFA and 50 BETA. In June
	// ALFA trades at 12, so the position is worth 5600.
	profit, err := b.CalcProfits(date.New(2017, time.May, 1), date.New(2017, time.May, 29), 1000, 7, date.New(2017, time.June, 5))
	require.NoError(t, err)
	assert.InDelta(t, 600, profit, 1e-9)
}

func TestCalcProfitsValidation(t *testing.T) {
	b := newFlatBasket(t)
	start, end := date.New(2017, time.May, 1), date.New(2017, time.May, 29)

	_, err := b.CalcProfits(start, end, 1000, 7, date.Date{})
	assert.Error(t, err)
	_, err = b.CalcProfits(start, end, 1000, 7, date.New(2017, time.June, 3)) // Saturday
	assert.Error(t, err)
	_, err = b.CalcProfits(start, end, 1000, 7, date.New(2017, time.May, 26)) // before end
	assert.Error(t, err)
}
