package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/basket"
	"github.com/etnz/basket/date"
	"github.com/google/subcommands"
)

type historyCmd struct {
	basket string
	symbol string
	from   string
	to     string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print the closing value series over a date range" }
func (*historyCmd) Usage() string {
	return `history -b <basket> | -s <symbol> -from <date> -to <date>

  Prints one line per business day with the closing value of the basket
  or instrument, in chronological order.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.basket, "b", "", "basket to report")
	f.StringVar(&c.symbol, "s", "", "instrument symbol to report")
	f.StringVar(&c.from, "from", "", "range start (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "range end (YYYY-MM-DD)")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.basket == "" && c.symbol == "") || (c.basket != "" && c.symbol != "") {
		fmt.Fprintln(os.Stderr, "either -b or -s must be provided")
		return subcommands.ExitUsageError
	}
	from, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	reg, err := OpenRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var s basket.Series
	if c.symbol != "" {
		s, err = reg.InstrumentPrices(c.symbol, from, to)
	} else {
		s, err = reg.BasketValues(c.basket, from, to)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printSeries(s)
	return subcommands.ExitSuccess
}

// printSeries writes a series in chronological order, one date per line.
func printSeries(s basket.Series) {
	for _, k := range s.Keys() {
		d, err := date.FromKey(k)
		if err != nil {
			continue
		}
		fmt.Printf("%s\t%s\n", d, usd(s[k]))
	}
}
