package basket

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/basket/date"
	"github.com/rs/zerolog"
)

// WebSource fetches end-of-day prices from the EODHD API
// (https://eodhd.com). Responses are cached on disk with daily expiry, so
// repeated probes of the same day (the calendar does a lot of those) do not
// hammer the service.
//
// Symbols without an exchange suffix are looked up on the US exchange.
type WebSource struct {
	base   string
	apiKey string
	log    zerolog.Logger
}

// NewWebSource returns a source using the given EODHD API key.
func NewWebSource(apiKey string, log zerolog.Logger) *WebSource {
	return &WebSource{
		base:   "https://eodhd.com",
		apiKey: apiKey,
		log:    log.With().Str("source", "eodhd").Logger(),
	}
}

// ticker maps a plain symbol to the eodhd ticker format "SYMBOL.EXCHANGE".
func (w *WebSource) ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

// HistoricalPrices implements Source.
func (w *WebSource) HistoricalPrices(symbol string, from, to date.Date) (map[int]PriceRecord, error) {
	// https://eodhd.com/api/eod/AAPL.US?api_token=...&fmt=json&from=2017-01-05&to=2017-02-10
	// [
	//	{
	//		"date": "2017-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	addr := fmt.Sprintf("%s/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		w.base, w.ticker(symbol), w.apiKey, from, to)
	type info struct {
		Date  date.Date `json:"date"`
		Open  float64   `json:"open"`
		High  float64   `json:"high"`
		Low   float64   `json:"low"`
		Close float64   `json:"adjusted_close"`
	}

	content := make([]info, 0)
	if err := jwget(daily(w.log), addr, &content); err != nil {
		var status *httpStatusError
		if errors.As(err, &status) && status.code == http.StatusNotFound {
			// eodhd answers 404 for a ticker it does not list
			return nil, fmt.Errorf("%q: %w", symbol, ErrUnknownSymbol)
		}
		return nil, fmt.Errorf("fetching prices for %q: %w", symbol, err)
	}
	prices := make(map[int]PriceRecord, len(content))
	for _, rec := range content {
		prices[rec.Date.Key()] = PriceRecord{
			Open:  rec.Open,
			Close: rec.Close,
			High:  rec.High,
			Low:   rec.Low,
		}
	}
	return prices, nil
}

// ResolveName implements Source. It searches eodhd for the symbol and
// extracts the display name of the first match.
func (w *WebSource) ResolveName(symbol string) (string, error) {
	// https://eodhd.com/api/search/AAPL?api_token=...&fmt=json
	// [
	//   {
	//     "Code": "AAPL",
	//     "Exchange": "US",
	//     "Name": "Apple Inc",
	//     ...
	addr := fmt.Sprintf("%s/api/search/%s?fmt=json&api_token=%s",
		w.base, url.PathEscape(strings.ToUpper(strings.TrimSpace(symbol))), w.apiKey)

	var jobj any
	if err := jwget(daily(w.log), addr, &jobj); err != nil {
		return "", fmt.Errorf("searching for %q: %w", symbol, err)
	}
	if jlist, ok := jobj.([]any); ok && len(jlist) == 0 {
		return "", fmt.Errorf("%q: %w", symbol, ErrUnknownSymbol)
	}
	jval, err := jsonpath.Get("$[0].Name", jobj)
	if err != nil {
		return "", fmt.Errorf("parsing search result for %q: %w", symbol, err)
	}
	name, ok := jval.(string)
	if !ok || name == "" {
		return "", fmt.Errorf("%q: %w", symbol, ErrUnknownSymbol)
	}
	return name, nil
}
