package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/basket/date"
	"github.com/google/subcommands"
)

type valueCmd struct {
	basket string
	symbol string
	on     string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the value of a basket or instrument on a date" }
func (*valueCmd) Usage() string {
	return `value -b <basket> | -s <symbol> -d <date>

  Displays the closing value on the given date. For a basket on a weekend
  or holiday there is no value; a direct instrument lookup fails instead.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.basket, "b", "", "basket to value")
	f.StringVar(&c.symbol, "s", "", "instrument symbol to value")
	f.StringVar(&c.on, "d", "", "valuation date (YYYY-MM-DD)")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.basket == "" && c.symbol == "") || (c.basket != "" && c.symbol != "") {
		fmt.Fprintln(os.Stderr, "either -b or -s must be provided")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	reg, err := OpenRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.symbol != "" {
		price, err := reg.InstrumentPrice(c.symbol, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s\t%s\n", on, usd(price))
		return subcommands.ExitSuccess
	}

	value, ok, err := reg.BasketValue(c.basket, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !ok {
		fmt.Printf("%s\tno value (not a business day)\n", on)
		return subcommands.ExitSuccess
	}
	fmt.Printf("%s\t%s\n", on, usd(value))
	return subcommands.ExitSuccess
}
