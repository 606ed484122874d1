// Package cmd implements the CLI application to manage baskets of
// instruments and run analytics on them.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/basket"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "baskets")
	c.Register(&addCmd{}, "baskets")
	c.Register(&removeCmd{}, "baskets")
	c.Register(&listCmd{}, "baskets")

	c.Register(&valueCmd{}, "analytics")
	c.Register(&historyCmd{}, "analytics")
	c.Register(&trendCmd{}, "analytics")
	c.Register(&mavgCmd{}, "analytics")
	c.Register(&simulateCmd{}, "analytics")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const eodhdAPIKeyEnv = "EODHD_API_KEY"

var (
	pricesFile = flag.String("prices-file", "", "Path to a JSON price database. When set, prices are read offline from this file instead of eodhd.com.")
	apiKeyFlag = flag.String("eodhd-api-key", "", "EODHD API key for fetching prices from eodhd.com.\n If missing it is read from the environment variable \""+eodhdAPIKeyEnv+"\". You can get one at https://eodhd.com/")
	refSymbol  = flag.String("ref-symbol", "AAPL", "Reference instrument used to detect business days.")
	basketFile = flag.String("baskets-file", "baskets.json", "Path to the baskets file (JSON format)")
)

// Log is the logger shared by all subcommands; main configures it.
var Log = zerolog.Nop()

func apiKey() string {
	if *apiKeyFlag == "" {
		*apiKeyFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return *apiKeyFlag
}

// openSource builds the price source selected by the global flags: an
// offline JSON database or the EODHD web API, always behind a memoizing
// cache.
func openSource() (basket.Source, error) {
	if *pricesFile != "" {
		f, err := os.Open(*pricesFile)
		if err != nil {
			return nil, fmt.Errorf("cannot open price database %q: %w", *pricesFile, err)
		}
		defer f.Close()
		src, err := basket.DecodeMemorySource(f)
		if err != nil {
			return nil, err
		}
		return basket.NewCachedSource(src), nil
	}
	key := apiKey()
	if key == "" {
		return nil, fmt.Errorf("no price source: set -prices-file, -eodhd-api-key or %s", eodhdAPIKeyEnv)
	}
	return basket.NewCachedSource(basket.NewWebSource(key, Log)), nil
}

// OpenRegistry builds the registry from the global flags and loads the
// baskets file if it exists.
func OpenRegistry() (*basket.Registry, error) {
	src, err := openSource()
	if err != nil {
		return nil, err
	}
	cal := basket.NewCalendar(src, *refSymbol)
	reg := basket.NewRegistry(src, cal)

	f, err := os.Open(*basketFile)
	if errors.Is(err, fs.ErrNotExist) {
		Log.Debug().Str("file", *basketFile).Msg("baskets file does not exist, starting empty")
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open baskets file %q: %w", *basketFile, err)
	}
	defer f.Close()
	if err := DecodeRegistry(f, reg); err != nil {
		return nil, fmt.Errorf("cannot load baskets file %q: %w", *basketFile, err)
	}
	return reg, nil
}

// SaveRegistry writes the registry back to the baskets file.
func SaveRegistry(reg *basket.Registry) error {
	f, err := os.Create(*basketFile)
	if err != nil {
		return fmt.Errorf("cannot write baskets file %q: %w", *basketFile, err)
	}
	defer f.Close()
	return EncodeRegistry(f, reg)
}

// usd formats a value as US dollars for display.
func usd(v float64) string {
	return money.New(int64(math.Round(v*100)), money.USD).Display()
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw text
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
