package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/basket/date"
	"github.com/google/subcommands"
)

type trendCmd struct {
	basket string
	symbol string
	from   string
	to     string
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "average daily change of a basket or instrument" }
func (*trendCmd) Usage() string {
	return `trend -b <basket> | -s <symbol> -from <date> -to <date>

  Computes the average daily change of the closing value over the range,
  taking only the two end points into account.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.basket, "b", "", "basket to report")
	f.StringVar(&c.symbol, "s", "", "instrument symbol to report")
	f.StringVar(&c.from, "from", "", "range start (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "range end (YYYY-MM-DD)")
}

func (c *trendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var trend float64
	if c.symbol != "" {
		trend, err = reg.InstrumentTrend(c.symbol, from, to)
	} else {
		trend, err = reg.BasketTrend(c.basket, from, to)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%+.2f per day over %s..%s\n", trend, from, to)
	return subcommands.ExitSuccess
}
