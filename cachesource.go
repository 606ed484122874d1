package basket

import (
	"fmt"

	"github.com/etnz/basket/date"
)

// CachedSource memoizes the responses of another Source.
//
// The calendar probes one day at a time and the moving-average window is
// re-fetched per call, so against a remote source the same ranges come up
// over and over. Successful responses (including empty series) are kept for
// the lifetime of the cache; errors are never cached so a transient
// provider failure does not poison later calls.
//
// Like the rest of the engine it is not safe for concurrent use.
type CachedSource struct {
	src    Source
	ranges map[rangeKey]map[int]PriceRecord
	names  map[string]string
}

type rangeKey struct {
	symbol   string
	from, to int
}

// NewCachedSource wraps src with a memoizing layer.
func NewCachedSource(src Source) *CachedSource {
	return &CachedSource{
		src:    src,
		ranges: make(map[rangeKey]map[int]PriceRecord),
		names:  make(map[string]string),
	}
}

// HistoricalPrices implements Source.
func (c *CachedSource) HistoricalPrices(symbol string, from, to date.Date) (map[int]PriceRecord, error) {
	key := rangeKey{symbol: symbol, from: from.Key(), to: to.Key()}
	if prices, ok := c.ranges[key]; ok {
		return copyPrices(prices), nil
	}
	prices, err := c.src.HistoricalPrices(symbol, from, to)
	if err != nil {
		return nil, err
	}
	c.ranges[key] = copyPrices(prices)
	return prices, nil
}

// ResolveName implements Source.
func (c *CachedSource) ResolveName(symbol string) (string, error) {
	if name, ok := c.names[symbol]; ok {
		return name, nil
	}
	name, err := c.src.ResolveName(symbol)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", symbol, err)
	}
	c.names[symbol] = name
	return name, nil
}

// copyPrices guards the cache against callers mutating a returned series.
func copyPrices(prices map[int]PriceRecord) map[int]PriceRecord {
	cp := make(map[int]PriceRecord, len(prices))
	for k, v := range prices {
		cp[k] = v
	}
	return cp
}
