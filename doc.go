// Package basket tracks baskets of tradable instruments and computes
// time-series analytics on them: closing-price history, n-day moving
// averages, linear trend, and the outcome of a periodic dollar-cost
// averaging investment simulation.
//
// The core functionalities include:
//   - Calendar: past/future and business-day classification, with
//     business days derived from price-data availability of a reference
//     instrument.
//   - Instrument: a single validated symbol with per-symbol closing
//     prices, moving averages and trend.
//   - Basket: a dated collection of (instrument, share count) holdings
//     aggregating per-instrument prices into composite analytics.
//   - Strategy: pluggable allocation rules, currently proportional
//     dollar-cost averaging, driven across a date range by a simulation
//     that reports the resulting hypothetical basket and money invested.
//   - Registry: an explicit context object owning named baskets and
//     routing analytics calls to them.
//
// All date-indexed series are keyed by the 8-digit YYYYMMDD integer
// encoding, so map keys sort chronologically. Price data comes from a
// pluggable Source; in-memory, caching and EODHD-backed implementations
// are provided.
//
// This package serves as the foundational logic for the `bsk` command-line
// tool.
package basket
