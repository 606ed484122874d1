package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

type addCmd struct {
	basket string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add shares of an instrument into a basket" }
func (*addCmd) Usage() string {
	return `add -b <basket> <symbol> <shares>

  Adds shares of the given instrument into a basket, incrementing the
  holding if the instrument is already held.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.basket, "b", "", "basket to add into")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.basket == "" || f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "add needs -b and exactly <symbol> <shares>")
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	shares, err := strconv.Atoi(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid share count %q: %v\n", f.Arg(1), err)
		return subcommands.ExitUsageError
	}

	reg, err := OpenRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := reg.AddInstrument(symbol, shares, c.basket); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding %s into %q: %v\n", symbol, c.basket, err)
		return subcommands.ExitFailure
	}
	if err := SaveRegistry(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %d shares of %s into %q\n", shares, symbol, c.basket)
	return subcommands.ExitSuccess
}
