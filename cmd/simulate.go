package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/basket/date"
	"github.com/google/subcommands"
)

type simulateCmd struct {
	basket    string
	start     string
	end       string
	money     float64
	period    int
	valuation string
}

func (*simulateCmd) Name() string { return "simulate" }
func (*simulateCmd) Synopsis() string {
	return "simulate periodic investments into a basket"
}
func (*simulateCmd) Usage() string {
	return `simulate -b <basket> -start <date> -end <date> -money <amount> [-period <days>] [-d <date>]

  Simulates investing the given amount into the basket every period,
  keeping the proportions the basket had on its creation date, and prints
  the resulting holdings and total spent. With -d, also values the result
  on that date and prints the profit.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.basket, "b", "", "basket to simulate")
	f.StringVar(&c.start, "start", "", "first investment date (YYYY-MM-DD)")
	f.StringVar(&c.end, "end", "", "last investment date (YYYY-MM-DD)")
	f.Float64Var(&c.money, "money", 0, "amount to invest per period")
	f.IntVar(&c.period, "period", 7, "days between investments, at least 7")
	f.StringVar(&c.valuation, "d", "", "valuation date for the profit report (YYYY-MM-DD)")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.basket == "" {
		fmt.Fprintln(os.Stderr, "simulate needs a -b basket")
		return subcommands.ExitUsageError
	}
	start, err := date.Parse(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := date.Parse(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	reg, err := OpenRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	b, ok := reg.Get(c.basket)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no such basket %q\n", c.basket)
		return subcommands.ExitFailure
	}

	result, spent, err := b.Strategy().Invest(b, start, end, c.money, c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Invested %s between %s and %s:\n", usd(spent), start, end)
	for _, h := range result.Holdings() {
		fmt.Printf("  %-8s %6d  %s\n", h.Instrument.Symbol(), h.Shares, h.Instrument.Name())
	}

	if c.valuation != "" {
		valuation, err := date.Parse(c.valuation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		profit, err := reg.Profit(c.basket, start, end, c.money, c.period, valuation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Profit on %s: %s\n", valuation, usd(profit))
	}
	return subcommands.ExitSuccess
}
