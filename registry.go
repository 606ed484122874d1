package basket

import (
	"errors"
	"fmt"
	"sort"

	"github.com/etnz/basket/date"
)

// ErrUnknownBasket is returned when a registry operation names a basket
// that does not exist. It is distinct from an invalid argument so callers
// can branch on "does not exist" vs "bad input".
var ErrUnknownBasket = errors.New("no such basket")

// ErrBasketExists is returned when creating a basket under a name that is
// already taken.
var ErrBasketExists = errors.New("basket already exists")

// Registry owns named baskets and routes analytics calls to the right
// basket or instrument. It is an explicit context object: its lifetime is
// controlled entirely by its owner and there is no process-wide instance.
//
// A Registry is not safe for concurrent use; every operation either
// completes or fails before returning, leaving prior registry state
// unchanged on failure.
type Registry struct {
	src     Source
	cal     *Calendar
	baskets map[string]*Basket
}

// NewRegistry returns an empty registry over the given price source and
// calendar.
func NewRegistry(src Source, cal *Calendar) *Registry {
	return &Registry{
		src:     src,
		cal:     cal,
		baskets: make(map[string]*Basket),
	}
}

// CreateBasket creates an empty basket under the given name with the
// DefaultCreation placeholder date. It fails with ErrBasketExists when the
// name is taken.
func (r *Registry) CreateBasket(name string) error {
	return r.CreateBasketOn(name, DefaultCreation)
}

// CreateBasketOn creates an empty basket under the given name, created on
// the given business day.
func (r *Registry) CreateBasketOn(name string, created date.Date) error {
	if _, ok := r.baskets[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrBasketExists)
	}
	b, err := NewBasket(r.src, r.cal, created)
	if err != nil {
		return err
	}
	r.baskets[name] = b
	return nil
}

// Contains reports whether a basket with the given name exists.
func (r *Registry) Contains(name string) bool {
	_, ok := r.baskets[name]
	return ok
}

// Get returns the named basket, or false. The basket is shared, not a
// copy: mutations through it are visible to the registry.
func (r *Registry) Get(name string) (*Basket, bool) {
	b, ok := r.baskets[name]
	return b, ok
}

// Baskets returns the registered basket names in lexicographic order.
func (r *Registry) Baskets() []string {
	names := make([]string, 0, len(r.baskets))
	for name := range r.baskets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemoveBasket removes the named basket. It is unconditional: removing an
// absent name is not an error.
func (r *Registry) RemoveBasket(name string) {
	delete(r.baskets, name)
}

// AddInstrument adds shares of symbol into the named basket, incrementing
// the holding when the instrument is already held. It fails with
// ErrUnknownBasket for an unknown name, and rejects invalid symbols and
// shares < 1.
func (r *Registry) AddInstrument(symbol string, shares int, name string) error {
	b, ok := r.baskets[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownBasket)
	}
	if b.Contains(symbol) {
		return b.IncrementShare(symbol, shares)
	}
	return b.Put(symbol, shares)
}

// ValidSymbol reports whether the price source recognizes the symbol.
func (r *Registry) ValidSymbol(symbol string) bool {
	_, err := NewInstrument(r.src, r.cal, symbol)
	return err == nil
}

// BasketValue returns the composite value of the named basket on the given
// date. On a weekend or holiday there is no value: ok is false and err is
// nil, unlike the direct Basket.ClosingPrice which fails for that date.
func (r *Registry) BasketValue(name string, on date.Date) (value float64, ok bool, err error) {
	b, found := r.baskets[name]
	if !found {
		return 0, false, fmt.Errorf("%q: %w", name, ErrUnknownBasket)
	}
	value, err = b.ClosingPrice(on)
	if errors.Is(err, ErrNoData) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// BasketValues returns the composite closing-price series of the named
// basket over [from, to].
func (r *Registry) BasketValues(name string, from, to date.Date) (Series, error) {
	b, ok := r.baskets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBasket)
	}
	return b.ClosingPrices(from, to)
}

// BasketTrend returns the two-end trend of the named basket over [from, to].
func (r *Registry) BasketTrend(name string, from, to date.Date) (float64, error) {
	b, ok := r.baskets[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownBasket)
	}
	return b.Trend(from, to)
}

// BasketMovingAverage returns the n-day moving average of the named basket
// anchored at the given date.
func (r *Registry) BasketMovingAverage(name string, n int, at date.Date) (float64, error) {
	b, ok := r.baskets[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownBasket)
	}
	return b.MovingAverage(n, at)
}

// BasketMovingAverages returns the n-day moving averages of the named
// basket for every business day in [from, to].
func (r *Registry) BasketMovingAverages(name string, from, to date.Date, n int) (Series, error) {
	b, ok := r.baskets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBasket)
	}
	return b.NDayMovingAverages(from, to, n)
}

// Profit simulates the named basket's strategy (dollar-cost averaging by
// default) over [start, end] and returns the profit as of the valuation
// date. See Basket.CalcProfits for the preconditions.
func (r *Registry) Profit(name string, start, end date.Date, money float64, period int, valuation date.Date) (float64, error) {
	b, ok := r.baskets[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownBasket)
	}
	return b.CalcProfits(start, end, money, period, valuation)
}

// instrument constructs a validated instrument for the one-shot
// instrument-level reads below.
func (r *Registry) instrument(symbol string) (*Instrument, error) {
	return NewInstrument(r.src, r.cal, symbol)
}

// InstrumentPrice returns the closing price of symbol on the given date.
func (r *Registry) InstrumentPrice(symbol string, on date.Date) (float64, error) {
	inst, err := r.instrument(symbol)
	if err != nil {
		return 0, err
	}
	return inst.ClosingPrice(on)
}

// InstrumentPrices returns the sparse closing-price series of symbol over
// [from, to].
func (r *Registry) InstrumentPrices(symbol string, from, to date.Date) (Series, error) {
	inst, err := r.instrument(symbol)
	if err != nil {
		return nil, err
	}
	return inst.ClosingPrices(from, to)
}

// InstrumentTrend returns the two-end trend of symbol over [from, to].
func (r *Registry) InstrumentTrend(symbol string, from, to date.Date) (float64, error) {
	inst, err := r.instrument(symbol)
	if err != nil {
		return 0, err
	}
	return inst.Trend(from, to)
}

// InstrumentMovingAverage returns the n-day moving average of symbol
// anchored at the given date.
func (r *Registry) InstrumentMovingAverage(symbol string, n int, at date.Date) (float64, error) {
	inst, err := r.instrument(symbol)
	if err != nil {
		return 0, err
	}
	return inst.MovingAverage(n, at)
}

// InstrumentMovingAverages returns the n-day moving averages of symbol for
// every business day in [from, to].
func (r *Registry) InstrumentMovingAverages(symbol string, from, to date.Date, n int) (Series, error) {
	inst, err := r.instrument(symbol)
	if err != nil {
		return nil, err
	}
	return inst.NDayMovingAverages(from, to, n)
}

// BuyingOpportunity reports whether symbol's 50-day moving average is above
// its 200-day moving average on the given date.
func (r *Registry) BuyingOpportunity(symbol string, at date.Date) (bool, error) {
	inst, err := r.instrument(symbol)
	if err != nil {
		return false, err
	}
	return inst.BuyingOpportunity(at)
}
