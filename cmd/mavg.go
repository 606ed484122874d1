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

type mavgCmd struct {
	basket string
	symbol string
	n      int
	at     string
	from   string
	to     string
	signal bool
}

func (*mavgCmd) Name() string     { return "mavg" }
func (*mavgCmd) Synopsis() string { return "n-day moving averages of a basket or instrument" }
func (*mavgCmd) Usage() string {
	return `mavg -b <basket> | -s <symbol> -n <days> -d <date>
mavg -b <basket> | -s <symbol> -n <days> -from <date> -to <date>
mavg -s <symbol> -signal -d <date>

  With -d, prints a single moving average anchored at the given date.
  With -from/-to, prints one average per business day in the range.
  With -signal, prints whether the 50-day average is above the 200-day
  average on the given date.
`
}

func (c *mavgCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.basket, "b", "", "basket to report")
	f.StringVar(&c.symbol, "s", "", "instrument symbol to report")
	f.IntVar(&c.n, "n", 200, "window size in business days")
	f.StringVar(&c.at, "d", "", "single anchor date (YYYY-MM-DD)")
	f.StringVar(&c.from, "from", "", "range start (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "range end (YYYY-MM-DD)")
	f.BoolVar(&c.signal, "signal", false, "report the 50 over 200 day crossover instead")
}

func (c *mavgCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.basket == "" && c.symbol == "") || (c.basket != "" && c.symbol != "") {
		fmt.Fprintln(os.Stderr, "either -b or -s must be provided")
		return subcommands.ExitUsageError
	}

	reg, err := OpenRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.signal {
		if c.symbol == "" {
			fmt.Fprintln(os.Stderr, "-signal needs an instrument symbol")
			return subcommands.ExitUsageError
		}
		at, err := date.Parse(c.at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		buy, err := reg.BuyingOpportunity(c.symbol, at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if buy {
			fmt.Printf("%s: 50-day above 200-day on %s, buying opportunity\n", c.symbol, at)
		} else {
			fmt.Printf("%s: no buying opportunity on %s\n", c.symbol, at)
		}
		return subcommands.ExitSuccess
	}

	if c.at != "" {
		at, err := date.Parse(c.at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		var avg float64
		if c.symbol != "" {
			avg, err = reg.InstrumentMovingAverage(c.symbol, c.n, at)
		} else {
			avg, err = reg.BasketMovingAverage(c.basket, c.n, at)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s\t%s\n", at, usd(avg))
		return subcommands.ExitSuccess
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
	var s basket.Series
	if c.symbol != "" {
		s, err = reg.InstrumentMovingAverages(c.symbol, from, to, c.n)
	} else {
		s, err = reg.BasketMovingAverages(c.basket, from, to, c.n)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printSeries(s)
	return subcommands.ExitSuccess
}
