package basket

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Series is a sparse date-indexed series of values, keyed by the YYYYMMDD
// integer encoding of the date. Keys compare chronologically, so iteration
// over the sorted keys walks the series in time order. Days with no data
// are simply absent, never zero-filled.
type Series map[int]float64

// Keys returns the date keys of the series in chronological order.
func (s Series) Keys() []int {
	keys := make([]int, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Values returns the values of the series in chronological order.
func (s Series) Values() []float64 {
	keys := s.Keys()
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = s[k]
	}
	return values
}

// twoEndTrend returns the slope of the straight line joining the first and
// last value: (last-first)/(n-1). A single-point series has slope 0.
// values must be non-empty and in chronological order.
func twoEndTrend(values []float64) float64 {
	if len(values) == 1 {
		return 0
	}
	first, last := values[0], values[len(values)-1]
	return (last - first) / float64(len(values)-1)
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// mean returns the arithmetic mean of values, rounded to 2 decimal places.
func mean(values []float64) float64 {
	return round2(stat.Mean(values, nil))
}
